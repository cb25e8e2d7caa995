// Package crawl discovers staff pages on university websites and collects
// the contacts found on them.
//
// A site crawl is a breadth-limited traversal driven by one coordinator
// goroutine that owns the crawl State and frontier. Pages are fetched and
// mined by a small worker pool in fixed-size batches; workers never touch
// the State and report back over a channel.
package crawl

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/fwojciec/staffscout"
)

// Crawl defaults, applied when the corresponding Crawler field is zero.
const (
	DefaultMaxDepth   = 3
	DefaultMaxPages   = 200
	DefaultBatchSize  = 5
	DefaultBatchPause = 500 * time.Millisecond
)

// snippetLength bounds the page text handed to the relevance filter.
const snippetLength = 1500

// defaultPolicy is used when Crawler.Policy is nil.
var defaultPolicy = NewPolicy(staffscout.DefaultVocabulary())

// Crawler crawls university sites for staff contacts.
type Crawler struct {
	Fetcher    staffscout.Fetcher
	Parser     staffscout.PageParser
	Classifier staffscout.PageClassifier
	Extractor  staffscout.ContactExtractor
	Policy     *Policy

	// Filter, if set, may veto staff pages before they are mined.
	Filter staffscout.RelevanceFilter

	// Suggester, if set, proposes extra seeds from the root page.
	Suggester staffscout.LinkSuggester

	// RateLimiter, if set, paces requests per site.
	RateLimiter staffscout.DomainLimiter

	// Logger receives state transitions and page-level diagnostics.
	Logger *slog.Logger

	// Progress, if set, receives page events. When several sites are
	// crawled at once it is called from several goroutines.
	Progress ProgressFunc

	MaxDepth    int
	MaxPages    int
	BatchSize   int
	BatchPause  time.Duration
	RetryDelays []time.Duration
}

// ProgressEvent reports progress during a site crawl.
type ProgressEvent struct {
	Type     ProgressType
	Site     string
	URL      string
	Class    staffscout.PageClass
	Contacts int
	Visited  int
	Error    error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressPage
	ProgressSkipped
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting crawl progress.
type ProgressFunc func(event ProgressEvent)

// pageResult holds the outcome of processing a single link.
type pageResult struct {
	link      staffscout.DiscoveredLink
	class     staffscout.PageClass
	links     []staffscout.Link
	suggested []string
	contacts  []*staffscout.Contact
	skipped   bool
	err       error
}

// CrawlSite crawls one site starting at rootURL and returns the contacts
// found within the depth and page budgets.
//
// The error return is reserved for an invalid root URL. Page failures are
// counted in the result, and cancellation stops the crawl early with the
// partial result and ctx.Err() recorded in SiteResult.Err.
func (c *Crawler) CrawlSite(ctx context.Context, rootURL string) (*staffscout.SiteResult, error) {
	site := staffscout.SiteFromURL(rootURL)
	if err := site.Validate(); err != nil {
		return nil, err
	}
	return c.crawl(ctx, site), nil
}

func (c *Crawler) crawl(ctx context.Context, site staffscout.Site) *staffscout.SiteResult {
	maxDepth, maxPages, batchSize, pause := c.limits()
	logger := c.logger().With("site", site.URL)

	root, _ := NormalizeURL(nil, site.URL)
	state := NewState(maxPages * 8)
	frontier := NewFrontier()
	state.Enqueue(root)
	frontier.Push(staffscout.DiscoveredLink{URL: root, Priority: staffscout.PriorityStaff})

	logger.Debug("crawl state", "state", "running")
	c.report(ProgressEvent{Type: ProgressStarted, Site: site.URL})

	workCh := make(chan staffscout.DiscoveredLink, batchSize)
	resultCh := make(chan pageResult, batchSize)
	defer close(workCh)
	for range batchSize {
		go func() {
			for link := range workCh {
				res := c.processLink(ctx, logger, link)
				select {
				case resultCh <- res:
				case <-ctx.Done():
					return
				}
			}
		}()
	}

coordinatorLoop:
	for ctx.Err() == nil {
		batch := nextBatch(state, frontier, batchSize, maxPages)
		if len(batch) == 0 {
			break
		}
		for _, link := range batch {
			state.Visit(link.URL)
			workCh <- link
		}

		for range batch {
			select {
			case <-ctx.Done():
				break coordinatorLoop
			case res := <-resultCh:
				c.handleResult(site, root, res, state, frontier, maxDepth, logger)
			}
		}

		if frontier.Len() == 0 || state.VisitedCount() >= maxPages {
			break
		}
		select {
		case <-ctx.Done():
			break coordinatorLoop
		case <-time.After(pause):
		}
	}

	result := state.Result(site)
	result.Err = ctx.Err()
	logger.Debug("crawl state", "state", "done",
		"visited", len(result.Visited),
		"staff_pages", len(result.FoundPages),
		"contacts", len(result.Contacts),
		"err", result.Err)
	c.report(ProgressEvent{
		Type:     ProgressFinished,
		Site:     site.URL,
		Contacts: len(result.Contacts),
		Visited:  len(result.Visited),
		Error:    result.Err,
	})
	return result
}

// nextBatch pops up to size links without exceeding the page budget.
func nextBatch(state *State, frontier *Frontier, size, maxPages int) []staffscout.DiscoveredLink {
	var batch []staffscout.DiscoveredLink
	for len(batch) < size && state.VisitedCount()+len(batch) < maxPages {
		link, ok := frontier.Pop()
		if !ok {
			break
		}
		batch = append(batch, link)
	}
	return batch
}

// handleResult folds a worker result into the crawl state and schedules
// eligible links. It runs on the coordinator goroutine only.
func (c *Crawler) handleResult(
	site staffscout.Site,
	root string,
	res pageResult,
	state *State,
	frontier *Frontier,
	maxDepth int,
	logger *slog.Logger,
) {
	if res.err != nil {
		state.Failed++
		logger.Debug("page failed", "url", res.link.URL, "err", res.err)
		c.report(ProgressEvent{Type: ProgressFailed, Site: site.URL, URL: res.link.URL, Error: res.err, Visited: state.VisitedCount()})
		return
	}

	switch {
	case res.skipped:
		state.Skipped++
		logger.Debug("staff page rejected by relevance filter", "url", res.link.URL)
		c.report(ProgressEvent{Type: ProgressSkipped, Site: site.URL, URL: res.link.URL, Class: res.class, Visited: state.VisitedCount()})
	default:
		if res.class == staffscout.StaffPage {
			state.FoundPages = append(state.FoundPages, res.link.URL)
			state.Contacts = append(state.Contacts, res.contacts...)
		}
		c.report(ProgressEvent{
			Type:     ProgressPage,
			Site:     site.URL,
			URL:      res.link.URL,
			Class:    res.class,
			Contacts: len(res.contacts),
			Visited:  state.VisitedCount(),
		})
	}

	policy := c.policy()
	if res.link.Depth < maxDepth {
		for _, l := range res.links {
			u, ok := NormalizeURL(nil, l.URL)
			if !ok || !SameSite(root, u) || !policy.Allowed(u) || !state.Enqueue(u) {
				continue
			}
			frontier.Push(staffscout.DiscoveredLink{
				URL:      u,
				Text:     l.Text,
				Depth:    res.link.Depth + 1,
				Priority: policy.Priority(u, l.Text),
			})
		}
	}

	// Suggested links skip the same-site and denylist checks.
	if maxDepth >= 1 {
		for _, s := range res.suggested {
			u, ok := NormalizeURL(nil, s)
			if !ok || !state.Enqueue(u) {
				continue
			}
			frontier.Push(staffscout.DiscoveredLink{URL: u, Depth: 1, Priority: staffscout.PriorityStaff})
		}
	}
}

// processLink fetches, classifies and mines one page. It runs on a worker
// goroutine; a panic is recovered and reported as the link's error.
func (c *Crawler) processLink(ctx context.Context, logger *slog.Logger, link staffscout.DiscoveredLink) (res pageResult) {
	res.link = link
	defer func() {
		if r := recover(); r != nil {
			res.err = staffscout.Errorf(staffscout.EINTERNAL, "panic processing %s: %v", link.URL, r)
		}
	}()

	if c.RateLimiter != nil {
		u, err := url.Parse(link.URL)
		if err != nil {
			res.err = err
			return res
		}
		if err := c.RateLimiter.Wait(ctx, u.Host); err != nil {
			res.err = err
			return res
		}
	}

	delays := c.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	logf := func(format string, args ...any) {
		logger.Debug(fmt.Sprintf(format, args...))
	}
	html, err := FetchWithRetryDelays(ctx, link.URL, c.Fetcher.Fetch, logf, delays)
	if err != nil {
		res.err = err
		return res
	}

	page, err := c.Parser.ParsePage(html, link.URL)
	if err != nil {
		res.err = err
		return res
	}
	res.links = page.Links
	res.class = c.Classifier.Classify(link.URL, page.Title, page.Text)

	if link.Depth == 0 && c.Suggester != nil {
		suggested, err := c.Suggester.SuggestLinks(ctx, html, link.URL)
		if err != nil {
			logger.Warn("link suggestion failed", "url", link.URL, "err", err)
		}
		res.suggested = suggested
	}

	if res.class != staffscout.StaffPage {
		return res
	}
	if !c.relevant(ctx, logger, link.URL, page) {
		res.skipped = true
		return res
	}

	contacts, err := c.Extractor.ExtractContacts(html, link.URL)
	if err != nil {
		logger.Debug("extraction failed", "url", link.URL, "err", err)
		return res
	}
	res.contacts = contacts
	return res
}

// relevant consults the relevance filter. Bypass URLs and filter errors
// are treated as relevant.
func (c *Crawler) relevant(ctx context.Context, logger *slog.Logger, rawURL string, page *staffscout.Page) bool {
	if c.Filter == nil || c.policy().Bypass(rawURL) {
		return true
	}
	snippet := page.Text
	if r := []rune(snippet); len(r) > snippetLength {
		snippet = string(r[:snippetLength])
	}
	ok, err := c.Filter.IsRelevant(ctx, rawURL, page.Title, snippet)
	if err != nil {
		logger.Warn("relevance filter failed", "url", rawURL, "err", err)
		return true
	}
	return ok
}

func (c *Crawler) limits() (maxDepth, maxPages, batchSize int, pause time.Duration) {
	maxDepth, maxPages, batchSize, pause = c.MaxDepth, c.MaxPages, c.BatchSize, c.BatchPause
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	if pause <= 0 {
		pause = DefaultBatchPause
	}
	return maxDepth, maxPages, batchSize, pause
}

func (c *Crawler) policy() *Policy {
	if c.Policy != nil {
		return c.Policy
	}
	return defaultPolicy
}

func (c *Crawler) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.New(slog.DiscardHandler)
}

func (c *Crawler) report(event ProgressEvent) {
	if c.Progress != nil {
		c.Progress(event)
	}
}
