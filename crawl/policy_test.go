package crawl_test

import (
	"net/url"
	"testing"

	"github.com/fwojciec/staffscout"
	"github.com/fwojciec/staffscout/crawl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSameSite(t *testing.T) {
	t.Parallel()

	assert.True(t, crawl.SameSite("https://www.kit.edu", "https://etit.kit.edu/x"))
	assert.True(t, crawl.SameSite("https://www.kit.edu", "http://KIT.EDU:8080/staff"))
	assert.False(t, crawl.SameSite("https://kit.edu", "https://other.com"))
	assert.False(t, crawl.SameSite("https://kit.edu", "mailto:jane@kit.edu"))
	assert.False(t, crawl.SameSite("https://kit.edu", "::not a url"))
}

func TestRootDomain(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "kit.edu", crawl.RootDomain("www.etit.kit.edu"))
	assert.Equal(t, "kit.edu", crawl.RootDomain("KIT.edu:443"))
	assert.Equal(t, "localhost", crawl.RootDomain("localhost"))
	assert.Equal(t, "127.0.0.1", crawl.RootDomain("127.0.0.1:8080"))
}

func TestNormalizeURL(t *testing.T) {
	t.Parallel()

	base, err := url.Parse("https://www.kit.edu/institute/")
	require.NoError(t, err)

	got, ok := crawl.NormalizeURL(base, "staff.html#top")
	assert.True(t, ok)
	assert.Equal(t, "https://www.kit.edu/institute/staff.html", got)

	got, ok = crawl.NormalizeURL(base, "/people?page=2")
	assert.True(t, ok)
	assert.Equal(t, "https://www.kit.edu/people?page=2", got)

	got, ok = crawl.NormalizeURL(nil, "https://www.kit.edu")
	assert.True(t, ok)
	assert.Equal(t, "https://www.kit.edu/", got)

	got, ok = crawl.NormalizeURL(base, "https://www.kit.edu#main")
	assert.True(t, ok)
	assert.Equal(t, "https://www.kit.edu/", got)

	for _, ref := range []string{"mailto:jane@kit.edu", "javascript:void(0)", "tel:+49721"} {
		_, ok := crawl.NormalizeURL(base, ref)
		assert.False(t, ok, "ref %q", ref)
	}
}

func TestPolicy_Allowed(t *testing.T) {
	t.Parallel()

	p := crawl.NewPolicy(staffscout.DefaultVocabulary())

	assert.True(t, p.Allowed("https://www.kit.edu/staff"))
	assert.True(t, p.Allowed("https://www.kit.edu/institute/team.html"))
	assert.False(t, p.Allowed("https://www.kit.edu/news/2024"))
	assert.False(t, p.Allowed("https://www.kit.edu/Admissions/apply"))
	assert.False(t, p.Allowed("https://www.kit.edu/files/cv.PDF"))
	assert.False(t, p.Allowed("https://www.kit.edu/img/logo.png?v=2"))
}

func TestPolicy_Bypass(t *testing.T) {
	t.Parallel()

	p := crawl.NewPolicy(staffscout.DefaultVocabulary())

	assert.True(t, p.Bypass("https://www.kit.edu/institute/mitarbeiter"))
	assert.False(t, p.Bypass("https://www.kit.edu/research/overview"))
}

func TestPolicy_Priority(t *testing.T) {
	t.Parallel()

	p := crawl.NewPolicy(staffscout.DefaultVocabulary())

	assert.Equal(t, staffscout.PriorityStaff, p.Priority("https://www.kit.edu/staff", ""))
	assert.Equal(t, staffscout.PriorityStaff, p.Priority("https://www.kit.edu/p/123", "Our researchers"))
	assert.Equal(t, staffscout.PriorityHub, p.Priority("https://www.kit.edu/institute-of-power", "IPE"))
	assert.Equal(t, staffscout.PriorityOther, p.Priority("https://www.kit.edu/campus-map", "Map"))
}
