package crawl

import (
	"container/heap"
	"sync"

	"github.com/fwojciec/staffscout"
)

// Compile-time interface verification.
var _ staffscout.URLFrontier = (*Frontier)(nil)

// Frontier is an in-memory priority queue of links. Higher priority links
// pop first, then shallower links, then links in insertion order.
// Deduplication is the caller's job; see State.Enqueue.
// It is safe for concurrent use by multiple goroutines.
type Frontier struct {
	mu    sync.Mutex
	queue linkHeap
	seq   int
}

// NewFrontier creates an empty Frontier.
func NewFrontier() *Frontier {
	return &Frontier{}
}

// Push adds a link to the frontier.
func (f *Frontier) Push(link staffscout.DiscoveredLink) {
	f.mu.Lock()
	defer f.mu.Unlock()

	heap.Push(&f.queue, queuedLink{link: link, seq: f.seq})
	f.seq++
}

// Pop returns the next link by priority.
// The bool result is false if the frontier is empty.
func (f *Frontier) Pop() (staffscout.DiscoveredLink, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.queue.Len() == 0 {
		return staffscout.DiscoveredLink{}, false
	}
	item, _ := heap.Pop(&f.queue).(queuedLink)
	return item.link, true
}

// Len returns the number of queued links.
func (f *Frontier) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.queue.Len()
}

type queuedLink struct {
	link staffscout.DiscoveredLink
	seq  int
}

// linkHeap implements heap.Interface for the frontier.
type linkHeap []queuedLink

func (h linkHeap) Len() int { return len(h) }

func (h linkHeap) Less(i, j int) bool {
	a, b := h[i], h[j]
	if a.link.Priority != b.link.Priority {
		return a.link.Priority > b.link.Priority
	}
	if a.link.Depth != b.link.Depth {
		return a.link.Depth < b.link.Depth
	}
	return a.seq < b.seq
}

func (h linkHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *linkHeap) Push(x any) {
	item, _ := x.(queuedLink)
	*h = append(*h, item)
}

func (h *linkHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[0 : n-1]
	return x
}
