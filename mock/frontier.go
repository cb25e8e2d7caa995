package mock

import (
	"context"

	"github.com/fwojciec/staffscout"
)

var _ staffscout.URLFrontier = (*URLFrontier)(nil)

// URLFrontier is a mock implementation of staffscout.URLFrontier.
type URLFrontier struct {
	PushFn func(link staffscout.DiscoveredLink)
	PopFn  func() (staffscout.DiscoveredLink, bool)
	LenFn  func() int
}

func (f *URLFrontier) Push(link staffscout.DiscoveredLink) {
	f.PushFn(link)
}

func (f *URLFrontier) Pop() (staffscout.DiscoveredLink, bool) {
	return f.PopFn()
}

func (f *URLFrontier) Len() int {
	return f.LenFn()
}

var _ staffscout.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of staffscout.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return l.WaitFn(ctx, domain)
}
