package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/fwojciec/staffscout"
)

// Pipeline turns crawl results into scored, enriched contacts and hands
// them to every writer.
type Pipeline struct {
	Scorer   staffscout.ContactScorer
	Enricher staffscout.PublicationEnricher
	Writers  []staffscout.ContactWriter
	MinScore float64
	Logger   *slog.Logger
}

// Process scores the contacts of all results, drops those below MinScore,
// looks up publications for the rest and writes them. Enrichment failures
// leave a contact without publications. Scoring and writing failures abort.
func (p *Pipeline) Process(ctx context.Context, results []*staffscout.SiteResult) ([]*staffscout.ScoredContact, error) {
	var scored []*staffscout.ScoredContact
	for _, r := range results {
		if r == nil {
			continue
		}
		for _, c := range r.Contacts {
			scored = append(scored, &staffscout.ScoredContact{Contact: *c, Site: r.Site})
		}
	}
	if len(scored) == 0 {
		return nil, nil
	}

	if p.Scorer != nil {
		if err := p.Scorer.ScoreContacts(ctx, scored); err != nil {
			return nil, fmt.Errorf("score contacts: %w", err)
		}
	}

	kept := scored[:0]
	for _, c := range scored {
		if c.Score >= p.MinScore {
			kept = append(kept, c)
		}
	}

	if p.Enricher != nil {
		for _, c := range kept {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			links, err := p.Enricher.Enrich(ctx, c.FullName)
			if err != nil {
				p.logger().Warn("publication lookup failed", "name", c.FullName, "err", err)
				continue
			}
			c.Publications = links
		}
	}

	for _, w := range p.Writers {
		if err := w.WriteContacts(ctx, kept); err != nil {
			return nil, fmt.Errorf("write contacts: %w", err)
		}
	}
	return kept, nil
}

func (p *Pipeline) logger() *slog.Logger {
	if p.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return p.Logger
}
