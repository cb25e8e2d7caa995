package staffscout

import "context"

// Link priorities used to order the crawl frontier.
const (
	PriorityOther = 0
	PriorityHub   = 1
	PriorityStaff = 2
)

// DiscoveredLink is a link found on a page and scheduled for crawling.
type DiscoveredLink struct {
	URL      string
	Text     string
	Depth    int
	Priority int
}

// URLFrontier holds links waiting to be crawled.
type URLFrontier interface {
	// Push adds a link to the frontier.
	Push(link DiscoveredLink)

	// Pop returns the highest priority link.
	// Returns false if the frontier is empty.
	Pop() (DiscoveredLink, bool)

	// Len returns the number of queued links.
	Len() int
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}
