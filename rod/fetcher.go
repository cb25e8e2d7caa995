// Package rod provides a headless Chrome implementation of
// staffscout.Fetcher for staff directories rendered by JavaScript.
package rod

import (
	"context"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/staffscout"
)

const (
	// DefaultFetchTimeout bounds navigation and rendering of one page.
	DefaultFetchTimeout = 30 * time.Second

	// DefaultPageBudget is the number of pages a browser serves before it
	// is replaced. Long crawls otherwise grow Chrome's memory without bound.
	DefaultPageBudget = 75

	// DefaultPoliteDelay is the pause after each successful fetch.
	DefaultPoliteDelay = 250 * time.Millisecond
)

// Ensure Fetcher implements staffscout.Fetcher at compile time.
var _ staffscout.Fetcher = (*Fetcher)(nil)

// Browser renders pages for a Fetcher.
type Browser interface {
	Render(ctx context.Context, url, userAgent string) (string, error)
	Close() error
}

// Fetcher retrieves rendered HTML through a Browser, replacing the browser
// once it has served its page budget.
//
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	launch       func() (Browser, error)
	fetchTimeout time.Duration
	politeDelay  time.Duration
	pageBudget   int
	userAgents   []string

	mu      sync.Mutex
	current *session
	closed  bool
}

// session is a browser shared by in-flight fetches. A retired session takes
// no new pages and closes its browser when the last page is released.
type session struct {
	browser Browser
	served  int
	active  int
	retired bool
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithFetchTimeout sets the per-page timeout.
func WithFetchTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.fetchTimeout = d
	}
}

// WithPageBudget sets the number of pages after which the browser is
// replaced. Zero keeps one browser for the Fetcher's lifetime.
func WithPageBudget(n int) Option {
	return func(f *Fetcher) {
		f.pageBudget = n
	}
}

// WithPoliteDelay sets the pause after each successful fetch.
// Zero disables it.
func WithPoliteDelay(d time.Duration) Option {
	return func(f *Fetcher) {
		f.politeDelay = d
	}
}

// WithUserAgents sets the user agent pool. Each URL always gets the same
// agent from the pool.
func WithUserAgents(agents []string) Option {
	return func(f *Fetcher) {
		if len(agents) > 0 {
			f.userAgents = agents
		}
	}
}

// WithLauncher replaces the function that starts a browser.
// Defaults to LaunchChrome.
func WithLauncher(launch func() (Browser, error)) Option {
	return func(f *Fetcher) {
		f.launch = launch
	}
}

// NewFetcher starts the first browser. Close must be called when the
// Fetcher is no longer needed.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{
		launch:       func() (Browser, error) { return LaunchChrome() },
		fetchTimeout: DefaultFetchTimeout,
		politeDelay:  DefaultPoliteDelay,
		pageBudget:   DefaultPageBudget,
		userAgents:   staffscout.DefaultVocabulary().UserAgents,
	}
	for _, opt := range opts {
		opt(f)
	}

	b, err := f.launch()
	if err != nil {
		return nil, err
	}
	f.current = &session{browser: b}
	return f, nil
}

// Fetch renders the URL and returns its HTML.
//
// A page that does not load within the fetch timeout is EUNAVAILABLE so the
// crawler may retry it. Cancellation of ctx returns ctx.Err().
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s, err := f.acquire()
	if err != nil {
		return "", err
	}
	defer f.release(s)

	renderCtx, cancel := context.WithTimeout(ctx, f.fetchTimeout)
	defer cancel()

	html, err := s.browser.Render(renderCtx, url, f.userAgent(url))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		if renderCtx.Err() != nil {
			return "", staffscout.Errorf(staffscout.EUNAVAILABLE, "render %s: timed out after %s", url, f.fetchTimeout)
		}
		return "", staffscout.Errorf(staffscout.EUNAVAILABLE, "render %s: %v", url, err)
	}

	if f.politeDelay > 0 {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(f.politeDelay):
		}
	}
	return html, nil
}

// Close retires the current browser. A browser still rendering pages is
// closed when they finish. Close is safe to call multiple times.
func (f *Fetcher) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return nil
	}
	f.closed = true
	s := f.current
	f.current = nil
	return s.retire()
}

// acquire leases the current session for one page, swapping in a fresh
// browser when the budget is spent. A failed launch keeps the old browser.
func (f *Fetcher) acquire() (*session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return nil, staffscout.Errorf(staffscout.EINVALID, "fetcher is closed")
	}

	if f.pageBudget > 0 && f.current.served >= f.pageBudget {
		if b, err := f.launch(); err == nil {
			_ = f.current.retire()
			f.current = &session{browser: b}
		}
	}
	s := f.current
	s.served++
	s.active++
	return s, nil
}

func (f *Fetcher) release(s *session) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s.active--
	if s.retired && s.active == 0 {
		_ = s.browser.Close()
	}
}

// retire must be called with the Fetcher's mutex held.
func (s *session) retire() error {
	s.retired = true
	if s.active > 0 {
		return nil
	}
	return s.browser.Close()
}

func (f *Fetcher) userAgent(url string) string {
	if len(f.userAgents) == 0 {
		return ""
	}
	return f.userAgents[xxhash.Sum64String(url)%uint64(len(f.userAgents))]
}
