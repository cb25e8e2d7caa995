package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/staffscout"
)

// Ensure LoggingContactExtractor implements staffscout.ContactExtractor.
var _ staffscout.ContactExtractor = (*LoggingContactExtractor)(nil)

// LoggingContactExtractor wraps a ContactExtractor with debug logging.
type LoggingContactExtractor struct {
	next   staffscout.ContactExtractor
	logger *slog.Logger
}

// NewLoggingContactExtractor creates a new LoggingContactExtractor.
func NewLoggingContactExtractor(next staffscout.ContactExtractor, logger *slog.Logger) *LoggingContactExtractor {
	return &LoggingContactExtractor{next: next, logger: logger}
}

// ExtractContacts delegates to the wrapped extractor and logs the outcome.
func (e *LoggingContactExtractor) ExtractContacts(html, pageURL string) (contacts []*staffscout.Contact, err error) {
	defer func(begin time.Time) {
		e.logger.Debug("extract contacts",
			"url", pageURL,
			"count", len(contacts),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.ExtractContacts(html, pageURL)
}

// Ensure LoggingRelevanceFilter implements staffscout.RelevanceFilter.
var _ staffscout.RelevanceFilter = (*LoggingRelevanceFilter)(nil)

// LoggingRelevanceFilter wraps a RelevanceFilter with debug logging.
type LoggingRelevanceFilter struct {
	next   staffscout.RelevanceFilter
	logger *slog.Logger
}

// NewLoggingRelevanceFilter creates a new LoggingRelevanceFilter.
func NewLoggingRelevanceFilter(next staffscout.RelevanceFilter, logger *slog.Logger) *LoggingRelevanceFilter {
	return &LoggingRelevanceFilter{next: next, logger: logger}
}

// IsRelevant delegates to the wrapped filter and logs the verdict.
func (f *LoggingRelevanceFilter) IsRelevant(ctx context.Context, url, title, snippet string) (ok bool, err error) {
	defer func(begin time.Time) {
		f.logger.Debug("relevance",
			"url", url,
			"relevant", ok,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.IsRelevant(ctx, url, title, snippet)
}

// Ensure LoggingLinkSuggester implements staffscout.LinkSuggester.
var _ staffscout.LinkSuggester = (*LoggingLinkSuggester)(nil)

// LoggingLinkSuggester wraps a LinkSuggester with debug logging.
type LoggingLinkSuggester struct {
	next   staffscout.LinkSuggester
	logger *slog.Logger
}

// NewLoggingLinkSuggester creates a new LoggingLinkSuggester.
func NewLoggingLinkSuggester(next staffscout.LinkSuggester, logger *slog.Logger) *LoggingLinkSuggester {
	return &LoggingLinkSuggester{next: next, logger: logger}
}

// SuggestLinks delegates to the wrapped suggester and logs the operation.
func (s *LoggingLinkSuggester) SuggestLinks(ctx context.Context, html, baseURL string) (urls []string, err error) {
	defer func(begin time.Time) {
		s.logger.Info("link suggestion",
			"url", baseURL,
			"count", len(urls),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.SuggestLinks(ctx, html, baseURL)
}

// Ensure LoggingContactScorer implements staffscout.ContactScorer.
var _ staffscout.ContactScorer = (*LoggingContactScorer)(nil)

// LoggingContactScorer wraps a ContactScorer with logging.
type LoggingContactScorer struct {
	next   staffscout.ContactScorer
	logger *slog.Logger
}

// NewLoggingContactScorer creates a new LoggingContactScorer.
func NewLoggingContactScorer(next staffscout.ContactScorer, logger *slog.Logger) *LoggingContactScorer {
	return &LoggingContactScorer{next: next, logger: logger}
}

// ScoreContacts delegates to the wrapped scorer and logs the batch size.
func (s *LoggingContactScorer) ScoreContacts(ctx context.Context, contacts []*staffscout.ScoredContact) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("score contacts",
			"count", len(contacts),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.ScoreContacts(ctx, contacts)
}

// Ensure LoggingPublicationEnricher implements staffscout.PublicationEnricher.
var _ staffscout.PublicationEnricher = (*LoggingPublicationEnricher)(nil)

// LoggingPublicationEnricher wraps a PublicationEnricher with debug logging.
type LoggingPublicationEnricher struct {
	next   staffscout.PublicationEnricher
	logger *slog.Logger
}

// NewLoggingPublicationEnricher creates a new LoggingPublicationEnricher.
func NewLoggingPublicationEnricher(next staffscout.PublicationEnricher, logger *slog.Logger) *LoggingPublicationEnricher {
	return &LoggingPublicationEnricher{next: next, logger: logger}
}

// Enrich delegates to the wrapped enricher and logs the lookup.
func (e *LoggingPublicationEnricher) Enrich(ctx context.Context, name string) (links []string, err error) {
	defer func(begin time.Time) {
		e.logger.Debug("publications",
			"name", name,
			"count", len(links),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Enrich(ctx, name)
}
