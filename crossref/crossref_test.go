package crossref_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fwojciec/staffscout"
	"github.com/fwojciec/staffscout/crossref"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnricher_Enrich(t *testing.T) {
	t.Parallel()

	t.Run("queries by author and returns work URLs", func(t *testing.T) {
		t.Parallel()

		var query map[string][]string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			query = r.URL.Query()
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"status":"ok","message":{"items":[
				{"URL":"https://doi.org/10.1109/tpel.2024.1"},
				{"title":["no url"]},
				{"URL":"https://doi.org/10.1109/tie.2023.2"}
			]}}`))
		}))
		defer srv.Close()

		e := crossref.NewEnricher(srv.Client())
		e.BaseURL = srv.URL
		e.Mailto = "ops@example.org"

		links, err := e.Enrich(context.Background(), "John Smith")

		require.NoError(t, err)
		assert.Equal(t, []string{"https://doi.org/10.1109/tpel.2024.1", "https://doi.org/10.1109/tie.2023.2"}, links)
		assert.Equal(t, []string{"John Smith"}, query["query.author"])
		assert.Equal(t, []string{"10"}, query["rows"])
		assert.Equal(t, []string{"issued"}, query["sort"])
		assert.Equal(t, []string{"desc"}, query["order"])
		assert.Equal(t, []string{"ops@example.org"}, query["mailto"])
	})

	t.Run("skips short names without a request", func(t *testing.T) {
		t.Parallel()

		called := false
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
		}))
		defer srv.Close()

		e := crossref.NewEnricher(srv.Client())
		e.BaseURL = srv.URL

		links, err := e.Enrich(context.Background(), " Li ")

		require.NoError(t, err)
		assert.Empty(t, links)
		assert.False(t, called)
	})

	t.Run("reports throttling as transient", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer srv.Close()

		e := crossref.NewEnricher(srv.Client())
		e.BaseURL = srv.URL

		_, err := e.Enrich(context.Background(), "John Smith")

		assert.True(t, staffscout.IsTransient(err))
	})

	t.Run("reports malformed bodies as internal", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`<html>`))
		}))
		defer srv.Close()

		e := crossref.NewEnricher(srv.Client())
		e.BaseURL = srv.URL

		_, err := e.Enrich(context.Background(), "John Smith")

		assert.Equal(t, staffscout.EINTERNAL, staffscout.ErrorCode(err))
	})
}
