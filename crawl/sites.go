package crawl

import (
	"context"

	"github.com/fwojciec/staffscout"
	"golang.org/x/sync/errgroup"
)

// DefaultParallel is the number of sites crawled at once.
const DefaultParallel = 5

// SiteDoneFunc is called once per finished site, from the goroutine that
// crawled it.
type SiteDoneFunc func(result *staffscout.SiteResult)

// CrawlSites crawls sites with at most parallel crawls in flight. The
// results are returned in input order. A failing site never affects the
// others: its problem is recorded in its SiteResult.Err.
func (c *Crawler) CrawlSites(ctx context.Context, sites []staffscout.Site, parallel int, done SiteDoneFunc) []*staffscout.SiteResult {
	if parallel <= 0 {
		parallel = DefaultParallel
	}

	results := make([]*staffscout.SiteResult, len(sites))
	var g errgroup.Group
	g.SetLimit(parallel)
	for i, site := range sites {
		g.Go(func() error {
			results[i] = c.crawlSiteSafely(ctx, site)
			if done != nil {
				done(results[i])
			}
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func (c *Crawler) crawlSiteSafely(ctx context.Context, site staffscout.Site) (result *staffscout.SiteResult) {
	defer func() {
		if r := recover(); r != nil {
			result = &staffscout.SiteResult{
				Site: site,
				Err:  staffscout.Errorf(staffscout.EINTERNAL, "panic crawling %s: %v", site.URL, r),
			}
		}
	}()
	if err := site.Validate(); err != nil {
		return &staffscout.SiteResult{Site: site, Err: err}
	}
	if err := ctx.Err(); err != nil {
		return &staffscout.SiteResult{Site: site, Err: err}
	}
	return c.crawl(ctx, site)
}
