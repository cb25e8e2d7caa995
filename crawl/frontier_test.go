package crawl_test

import (
	"sync"
	"testing"

	"github.com/fwojciec/staffscout"
	"github.com/fwojciec/staffscout/crawl"
	"github.com/stretchr/testify/assert"
)

func TestFrontier_Pop_OrdersByPriorityThenDepthThenInsertion(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier()
	f.Push(staffscout.DiscoveredLink{URL: "https://kit.edu/other", Depth: 1, Priority: staffscout.PriorityOther})
	f.Push(staffscout.DiscoveredLink{URL: "https://kit.edu/institute", Depth: 1, Priority: staffscout.PriorityHub})
	f.Push(staffscout.DiscoveredLink{URL: "https://kit.edu/a/staff", Depth: 2, Priority: staffscout.PriorityStaff})
	f.Push(staffscout.DiscoveredLink{URL: "https://kit.edu/staff", Depth: 1, Priority: staffscout.PriorityStaff})
	f.Push(staffscout.DiscoveredLink{URL: "https://kit.edu/people", Depth: 1, Priority: staffscout.PriorityStaff})

	var got []string
	for {
		link, ok := f.Pop()
		if !ok {
			break
		}
		got = append(got, link.URL)
	}

	assert.Equal(t, []string{
		"https://kit.edu/staff",
		"https://kit.edu/people",
		"https://kit.edu/a/staff",
		"https://kit.edu/institute",
		"https://kit.edu/other",
	}, got)
}

func TestFrontier_Len_TracksQueueSize(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier()
	assert.Equal(t, 0, f.Len())

	f.Push(staffscout.DiscoveredLink{URL: "https://kit.edu/a"})
	f.Push(staffscout.DiscoveredLink{URL: "https://kit.edu/b"})
	assert.Equal(t, 2, f.Len())

	f.Pop()
	assert.Equal(t, 1, f.Len())
}

func TestFrontier_IsSafeForConcurrentUse(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier()

	var wg sync.WaitGroup
	for i := range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			f.Push(staffscout.DiscoveredLink{URL: "https://kit.edu/x", Priority: i % 3})
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, f.Len())
}
