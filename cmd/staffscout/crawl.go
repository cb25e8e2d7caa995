package main

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/fwojciec/staffscout"
	"github.com/fwojciec/staffscout/fs"
	"github.com/fwojciec/staffscout/sqlite"
)

// Run executes the crawl command.
func (c *CrawlCmd) Run(deps *Dependencies) error {
	sites, err := c.sites()
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", staffscout.ErrorMessage(err))
		return err
	}
	if len(sites) == 0 {
		err := staffscout.Errorf(staffscout.EINVALID, "no sites to crawl: pass URLs or --sites")
		fmt.Fprintf(deps.Stderr, "error: %s\n", staffscout.ErrorMessage(err))
		return err
	}

	run := &staffscout.Run{Sites: len(sites)}
	if err := deps.Runs.CreateRun(deps.Ctx, run); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", staffscout.ErrorMessage(err))
		return err
	}
	fmt.Fprintf(deps.Stdout, "Run %s: crawling %d sites\n", run.ID, len(sites))

	var mu sync.Mutex
	results := deps.Crawler.CrawlSites(deps.Ctx, sites, c.Parallel, func(r *staffscout.SiteResult) {
		mu.Lock()
		defer mu.Unlock()
		if r.Err != nil && len(r.Visited) == 0 {
			fmt.Fprintf(deps.Stderr, "  skip %s: %s\n", r.Site.URL, staffscout.ErrorMessage(r.Err))
			return
		}
		fmt.Fprintf(deps.Stdout, "  %s: %d contacts from %d staff pages (%d visited, %d failed)\n",
			r.Site.Name, len(r.Contacts), len(r.FoundPages), len(r.Visited), r.Failed)
	})

	// An interrupted crawl still saves what it found, without the slow
	// publication lookups.
	ctx := deps.Ctx
	pipeline := *deps.Pipeline
	if ctx.Err() != nil {
		ctx = context.WithoutCancel(ctx)
		pipeline.Enricher = nil
	}
	pipeline.Writers = append(slices.Clone(pipeline.Writers), sqlite.NewRunWriter(deps.Contacts, run.ID))
	contacts, err := pipeline.Process(ctx, results)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	if err := deps.Runs.FinishRun(ctx, run.ID, len(contacts)); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", staffscout.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Saved %d contacts (run %s)\n", len(contacts), run.ID)
	if err := deps.Ctx.Err(); err != nil {
		fmt.Fprintln(deps.Stderr, "interrupted: results are partial")
		return err
	}
	return nil
}

// sites merges the positional URLs with the sites file. Invalid entries
// and repeated URLs are dropped.
func (c *CrawlCmd) sites() ([]staffscout.Site, error) {
	var sites []staffscout.Site
	for _, u := range c.URLs {
		sites = append(sites, staffscout.SiteFromURL(u))
	}
	if c.Sites != "" {
		fromFile, err := fs.ReadSites(c.Sites)
		if err != nil {
			return nil, err
		}
		sites = append(sites, fromFile...)
	}

	seen := make(map[string]bool, len(sites))
	var out []staffscout.Site
	var firstErr error
	for _, s := range sites {
		if err := s.Validate(); err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		if seen[s.URL] {
			continue
		}
		seen[s.URL] = true
		out = append(out, s)
	}
	if len(out) == 0 && firstErr != nil {
		return nil, firstErr
	}
	return out, nil
}
