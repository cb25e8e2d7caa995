package mock

import (
	"context"

	"github.com/fwojciec/staffscout"
)

var _ staffscout.RelevanceFilter = (*RelevanceFilter)(nil)

// RelevanceFilter is a mock implementation of staffscout.RelevanceFilter.
type RelevanceFilter struct {
	IsRelevantFn func(ctx context.Context, url, title, snippet string) (bool, error)
}

func (f *RelevanceFilter) IsRelevant(ctx context.Context, url, title, snippet string) (bool, error) {
	return f.IsRelevantFn(ctx, url, title, snippet)
}

var _ staffscout.LinkSuggester = (*LinkSuggester)(nil)

// LinkSuggester is a mock implementation of staffscout.LinkSuggester.
type LinkSuggester struct {
	SuggestLinksFn func(ctx context.Context, html, baseURL string) ([]string, error)
}

func (s *LinkSuggester) SuggestLinks(ctx context.Context, html, baseURL string) ([]string, error) {
	return s.SuggestLinksFn(ctx, html, baseURL)
}

var _ staffscout.ContactScorer = (*ContactScorer)(nil)

// ContactScorer is a mock implementation of staffscout.ContactScorer.
type ContactScorer struct {
	ScoreContactsFn func(ctx context.Context, contacts []*staffscout.ScoredContact) error
}

func (s *ContactScorer) ScoreContacts(ctx context.Context, contacts []*staffscout.ScoredContact) error {
	return s.ScoreContactsFn(ctx, contacts)
}

var _ staffscout.PublicationEnricher = (*PublicationEnricher)(nil)

// PublicationEnricher is a mock implementation of staffscout.PublicationEnricher.
type PublicationEnricher struct {
	EnrichFn func(ctx context.Context, name string) ([]string, error)
}

func (e *PublicationEnricher) Enrich(ctx context.Context, name string) ([]string, error) {
	return e.EnrichFn(ctx, name)
}
