package crawl

import (
	"github.com/fwojciec/staffscout"
	"github.com/fwojciec/staffscout/bloom"
)

// stateFalsePositiveRate is the Bloom prefilter's acceptable false positive rate.
const stateFalsePositiveRate = 0.01

// State is the per-site crawl state. It is owned by a single coordinator
// goroutine and is not safe for concurrent use.
type State struct {
	seen    *bloom.Filter
	visited map[string]bool
	queued  map[string]bool

	// Visited lists fetched or attempted URLs in dispatch order.
	Visited []string

	// FoundPages lists mined staff pages in completion order.
	FoundPages []string

	// Contacts accumulates extracted contacts before the final dedup pass.
	Contacts []*staffscout.Contact

	Skipped int
	Failed  int
}

// NewState creates an empty State sized for about expected URLs.
func NewState(expected int) *State {
	if expected < 64 {
		expected = 64
	}
	return &State{
		seen:    bloom.NewFilter(uint(expected), stateFalsePositiveRate),
		visited: make(map[string]bool),
		queued:  make(map[string]bool),
	}
}

// IsNew reports whether url has been neither visited nor queued.
func (s *State) IsNew(url string) bool {
	if !s.seen.MaybeSeen(url) {
		return true
	}
	return !s.visited[url] && !s.queued[url]
}

// Enqueue marks url as queued and reports whether it was new. The check and
// the insert happen in one step.
func (s *State) Enqueue(url string) bool {
	if !s.IsNew(url) {
		return false
	}
	s.seen.Add(url)
	s.queued[url] = true
	return true
}

// Visit moves url from the queued set to the visited set.
func (s *State) Visit(url string) {
	delete(s.queued, url)
	if s.visited[url] {
		return
	}
	s.seen.Add(url)
	s.visited[url] = true
	s.Visited = append(s.Visited, url)
}

// VisitedCount returns the number of visited URLs.
func (s *State) VisitedCount() int {
	return len(s.visited)
}

// QueuedCount returns the number of URLs waiting to be visited.
func (s *State) QueuedCount() int {
	return len(s.queued)
}

// Result hands the state off as a SiteResult with deduplicated contacts.
func (s *State) Result(site staffscout.Site) *staffscout.SiteResult {
	return &staffscout.SiteResult{
		Site:       site,
		Contacts:   staffscout.DedupContacts(s.Contacts),
		Visited:    s.Visited,
		FoundPages: s.FoundPages,
		Skipped:    s.Skipped,
		Failed:     s.Failed,
	}
}
