//go:build integration

package rod_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fwojciec/staffscout"
	"github.com/fwojciec/staffscout/goquery"
	"github.com/fwojciec/staffscout/rod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChrome_Render_RunsScriptedStaffList(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<!DOCTYPE html>
<html>
<head><title>Team</title></head>
<body>
<div id="team">Loading...</div>
<script>
document.getElementById('team').innerHTML =
  '<div class="person"><h3>Prof. Dr. John Smith</h3>' +
  '<a href="mailto:john.smith@uni.edu">john.smith@uni.edu</a></div>';
</script>
</body>
</html>`))
	}))
	defer srv.Close()

	fetcher, err := rod.NewFetcher(rod.WithPoliteDelay(0))
	require.NoError(t, err)
	defer fetcher.Close()

	html, err := fetcher.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.NotContains(t, html, "Loading...")

	contacts, err := goquery.NewExtractor(staffscout.DefaultVocabulary()).ExtractContacts(html, srv.URL)
	require.NoError(t, err)
	require.Len(t, contacts, 1)
	assert.Equal(t, "John Smith", contacts[0].FullName)
	assert.Equal(t, "john.smith@uni.edu", contacts[0].Email)
}

func TestChrome_Render_SendsUserAgent(t *testing.T) {
	t.Parallel()

	got := make(chan string, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case got <- r.UserAgent():
		default:
		}
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><body>ok</body></html>`))
	}))
	defer srv.Close()

	chrome, err := rod.LaunchChrome()
	require.NoError(t, err)
	defer chrome.Close()

	_, err = chrome.Render(context.Background(), srv.URL, "staffscout-test/1.0")

	require.NoError(t, err)
	assert.Equal(t, "staffscout-test/1.0", <-got)
}

func TestChrome_Render_CancelledContext(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	fetcher, err := rod.NewFetcher()
	require.NoError(t, err)
	defer fetcher.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = fetcher.Fetch(ctx, srv.URL)

	assert.ErrorIs(t, err, context.Canceled)
}
