package slog_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/fwojciec/staffscout"
	"github.com/fwojciec/staffscout/mock"
	scoutslog "github.com/fwojciec/staffscout/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingContactExtractor_ExtractContacts(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	inner := &mock.ContactExtractor{
		ExtractContactsFn: func(html, pageURL string) ([]*staffscout.Contact, error) {
			return []*staffscout.Contact{{Email: "jane.doe@kit.edu"}}, nil
		},
	}

	e := scoutslog.NewLoggingContactExtractor(inner, newDebugLogger(&buf))
	contacts, err := e.ExtractContacts("<html></html>", "https://www.kit.edu/staff")

	require.NoError(t, err)
	assert.Len(t, contacts, 1)
	assert.Contains(t, buf.String(), "extract contacts")
	assert.Contains(t, buf.String(), "count=1")
}

func TestLoggingRelevanceFilter_IsRelevant(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	inner := &mock.RelevanceFilter{
		IsRelevantFn: func(ctx context.Context, url, title, snippet string) (bool, error) {
			return false, nil
		},
	}

	f := scoutslog.NewLoggingRelevanceFilter(inner, newDebugLogger(&buf))
	ok, err := f.IsRelevant(context.Background(), "https://www.kit.edu/staff", "Staff", "")

	require.NoError(t, err)
	assert.False(t, ok)
	assert.Contains(t, buf.String(), "relevant=false")
}

func TestLoggingLinkSuggester_SuggestLinks(t *testing.T) {
	t.Parallel()

	t.Run("logs suggestion with count", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.LinkSuggester{
			SuggestLinksFn: func(ctx context.Context, html, baseURL string) ([]string, error) {
				return []string{"https://www.kit.edu/a", "https://www.kit.edu/b"}, nil
			},
		}

		s := scoutslog.NewLoggingLinkSuggester(inner, newDebugLogger(&buf))
		urls, err := s.SuggestLinks(context.Background(), "", "https://www.kit.edu")

		require.NoError(t, err)
		assert.Len(t, urls, 2)
		assert.Contains(t, buf.String(), "link suggestion")
		assert.Contains(t, buf.String(), "count=2")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.LinkSuggester{
			SuggestLinksFn: func(ctx context.Context, html, baseURL string) ([]string, error) {
				return nil, errors.New("connection failed")
			},
		}

		s := scoutslog.NewLoggingLinkSuggester(inner, newDebugLogger(&buf))
		_, err := s.SuggestLinks(context.Background(), "", "https://www.kit.edu")

		require.Error(t, err)
		assert.Contains(t, buf.String(), "err=\"connection failed\"")
	})
}

func TestLoggingContactScorer_ScoreContacts(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	inner := &mock.ContactScorer{
		ScoreContactsFn: func(ctx context.Context, contacts []*staffscout.ScoredContact) error {
			return nil
		},
	}

	s := scoutslog.NewLoggingContactScorer(inner, newDebugLogger(&buf))
	err := s.ScoreContacts(context.Background(), make([]*staffscout.ScoredContact, 3))

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "score contacts")
	assert.Contains(t, buf.String(), "count=3")
}

func TestLoggingPublicationEnricher_Enrich(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	inner := &mock.PublicationEnricher{
		EnrichFn: func(ctx context.Context, name string) ([]string, error) {
			return []string{"https://doi.org/10.1/x"}, nil
		},
	}

	e := scoutslog.NewLoggingPublicationEnricher(inner, newDebugLogger(&buf))
	links, err := e.Enrich(context.Background(), "Jane Doe")

	require.NoError(t, err)
	assert.Len(t, links, 1)
	assert.Contains(t, buf.String(), "name=\"Jane Doe\"")
}
