package http_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fwojciec/staffscout"
	scouthttp "github.com/fwojciec/staffscout/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSuggester(srv *httptest.Server) *scouthttp.SitemapSuggester {
	return scouthttp.NewSitemapSuggester(srv.Client(), staffscout.DefaultVocabulary())
}

func TestSitemapSuggester_SuggestLinks_FromRobotsTxt(t *testing.T) {
	t.Parallel()

	robotsTxt := `User-agent: *
Disallow: /private/
Sitemap: {{BASE}}/sitemap.xml
`
	sitemapXML := `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url><loc>{{BASE}}/news/2024/award</loc></url>
  <url><loc>{{BASE}}/institute/staff</loc></url>
  <url><loc>{{BASE}}/etit/mitarbeitende/</loc></url>
</urlset>`

	srv := newTestServer(t, map[string]string{
		"/robots.txt":  robotsTxt,
		"/sitemap.xml": sitemapXML,
	})
	defer srv.Close()

	urls, err := newSuggester(srv).SuggestLinks(context.Background(), "<html></html>", srv.URL+"/en/")

	require.NoError(t, err)
	assert.Equal(t, []string{srv.URL + "/institute/staff", srv.URL + "/etit/mitarbeitende/"}, urls)
}

func TestSitemapSuggester_SuggestLinks_FallbackToSitemapXML(t *testing.T) {
	t.Parallel()

	sitemapXML := `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url><loc>{{BASE}}/people/</loc></url>
</urlset>`

	srv := newTestServer(t, map[string]string{
		"/sitemap.xml": sitemapXML,
	})
	defer srv.Close()

	urls, err := newSuggester(srv).SuggestLinks(context.Background(), "", srv.URL)

	require.NoError(t, err)
	assert.Equal(t, []string{srv.URL + "/people/"}, urls)
}

func TestSitemapSuggester_SuggestLinks_SitemapIndexPrefersStaffSitemaps(t *testing.T) {
	t.Parallel()

	sitemapIndex := `<?xml version="1.0" encoding="UTF-8"?>
<sitemapindex xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <sitemap><loc>{{BASE}}/sitemap-news.xml</loc></sitemap>
  <sitemap><loc>{{BASE}}/sitemap-persons.xml</loc></sitemap>
</sitemapindex>`

	sitemapNews := `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url><loc>{{BASE}}/news/team-wins-prize</loc></url>
</urlset>`

	sitemapPersons := `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url><loc>{{BASE}}/personen/</loc></url>
</urlset>`

	srv := newTestServer(t, map[string]string{
		"/sitemap.xml":         sitemapIndex,
		"/sitemap-news.xml":    sitemapNews,
		"/sitemap-persons.xml": sitemapPersons,
	})
	defer srv.Close()

	s := newSuggester(srv)
	s.MaxSuggestions = 1
	urls, err := s.SuggestLinks(context.Background(), "", srv.URL)

	require.NoError(t, err)
	assert.Equal(t, []string{srv.URL + "/personen/"}, urls)
}

func TestSitemapSuggester_SuggestLinks_CapsSuggestions(t *testing.T) {
	t.Parallel()

	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?><urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">`)
	for i := range 100 {
		fmt.Fprintf(&b, "<url><loc>{{BASE}}/staff/%d</loc></url>", i)
	}
	b.WriteString(`</urlset>`)

	srv := newTestServer(t, map[string]string{"/sitemap.xml": b.String()})
	defer srv.Close()

	urls, err := newSuggester(srv).SuggestLinks(context.Background(), "", srv.URL)

	require.NoError(t, err)
	assert.Len(t, urls, scouthttp.DefaultMaxSuggestions)
}

func TestSitemapSuggester_SuggestLinks_ContextCancellation(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, map[string]string{})
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newSuggester(srv).SuggestLinks(ctx, "", srv.URL)

	require.ErrorIs(t, err, context.Canceled)
}

func TestSitemapSuggester_SuggestLinks_NoSitemapFound(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, map[string]string{})
	defer srv.Close()

	urls, err := newSuggester(srv).SuggestLinks(context.Background(), "", srv.URL)

	require.NoError(t, err)
	assert.Empty(t, urls)
}

// newTestServer creates a test HTTP server with the given path->content mapping.
// Content strings may contain {{BASE}} which is replaced with the server URL.
func newTestServer(t *testing.T, content map[string]string) *httptest.Server {
	t.Helper()

	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := content[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		body = strings.ReplaceAll(body, "{{BASE}}", srv.URL)

		if r.URL.Path == "/robots.txt" {
			w.Header().Set("Content-Type", "text/plain")
		} else {
			w.Header().Set("Content-Type", "application/xml")
		}
		_, _ = w.Write([]byte(body))
	}))

	return srv
}
