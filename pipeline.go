package staffscout

import "context"

// RelevanceFilter decides whether a staff page belongs to the target
// research domain before it is mined.
type RelevanceFilter interface {
	// IsRelevant reports whether the page should be mined. The snippet is a
	// bounded prefix of the page text.
	IsRelevant(ctx context.Context, url, title, snippet string) (bool, error)
}

// LinkSuggester proposes extra crawl seeds for a site, beyond the links
// found on its pages.
type LinkSuggester interface {
	// SuggestLinks returns absolute URLs likely to lead to staff pages.
	SuggestLinks(ctx context.Context, html, baseURL string) ([]string, error)
}

// ContactScorer rates how well contacts match the target research domain.
type ContactScorer interface {
	// ScoreContacts fills Score, Field and Reason on each contact in place.
	ScoreContacts(ctx context.Context, contacts []*ScoredContact) error
}

// PublicationEnricher looks up publications for a person.
type PublicationEnricher interface {
	// Enrich returns links to recent publications authored by name.
	Enrich(ctx context.Context, name string) ([]string, error)
}

// ContactWriter persists scored contacts.
type ContactWriter interface {
	WriteContacts(ctx context.Context, contacts []*ScoredContact) error
}
