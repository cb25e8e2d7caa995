package http

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/staffscout"
)

const (
	// DefaultMaxSuggestions caps the links returned by SitemapSuggester.
	DefaultMaxSuggestions = 25

	// maxSitemaps bounds the sitemap documents read for one site, since
	// university sitemap indexes can reference hundreds of files.
	maxSitemaps = 20
)

// Ensure SitemapSuggester implements staffscout.LinkSuggester.
var _ staffscout.LinkSuggester = (*SitemapSuggester)(nil)

// SitemapSuggester proposes staff directory URLs listed in a site's
// sitemaps. Staff directories are often several clicks deep, while the
// sitemap lists them directly.
type SitemapSuggester struct {
	client     *http.Client
	vocabulary *staffscout.Vocabulary

	// MaxSuggestions caps the number of returned links.
	MaxSuggestions int
}

// NewSitemapSuggester creates a SitemapSuggester with the given HTTP client.
// If client is nil, http.DefaultClient is used.
func NewSitemapSuggester(client *http.Client, v *staffscout.Vocabulary) *SitemapSuggester {
	if client == nil {
		client = http.DefaultClient
	}
	return &SitemapSuggester{client: client, vocabulary: v, MaxSuggestions: DefaultMaxSuggestions}
}

// SuggestLinks returns the URLs listed in the sitemaps of baseURL's host
// whose path carries a staff keyword. The page HTML is not used. A site without sitemaps yields
// an empty slice.
func (s *SitemapSuggester) SuggestLinks(ctx context.Context, _ string, baseURL string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	base, err := url.Parse(baseURL)
	if err != nil || base.Host == "" {
		return nil, staffscout.Errorf(staffscout.EINVALID, "invalid base URL %q", baseURL)
	}
	root := &url.URL{Scheme: base.Scheme, Host: base.Host}

	sitemapURLs, err := s.findSitemapURLs(ctx, root)
	if err != nil {
		return nil, err
	}

	limit := s.MaxSuggestions
	if limit <= 0 {
		limit = DefaultMaxSuggestions
	}
	c := &sitemapCrawl{
		seenSitemaps: make(map[string]bool),
		seenURLs:     make(map[string]bool),
		keep:         s.isStaffURL,
		limit:        limit,
	}
	for _, sitemapURL := range sitemapURLs {
		if err := s.processSitemap(ctx, sitemapURL, c); err != nil {
			return nil, err
		}
		if c.full() {
			break
		}
	}
	if c.urls == nil {
		return []string{}, nil
	}
	return c.urls, nil
}

// sitemapCrawl accumulates matching URLs across the sitemaps of one site.
type sitemapCrawl struct {
	seenSitemaps map[string]bool
	seenURLs     map[string]bool
	keep         func(string) bool
	limit        int
	urls         []string
}

func (c *sitemapCrawl) full() bool {
	return len(c.urls) >= c.limit || len(c.seenSitemaps) >= maxSitemaps
}

func (c *sitemapCrawl) add(u string) {
	if len(c.urls) >= c.limit || c.seenURLs[u] || !c.keep(u) {
		return
	}
	c.seenURLs[u] = true
	c.urls = append(c.urls, u)
}

// isStaffURL reports whether the path of rawURL carries a staff keyword.
func (s *SitemapSuggester) isStaffURL(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	path := strings.ToLower(u.Path)
	if dec, err := url.PathUnescape(path); err == nil {
		path = dec
	}
	if !strings.HasSuffix(path, "/") {
		path += "/"
	}
	for _, kw := range s.vocabulary.StaffKeywords {
		if kw != "" && strings.Contains(path, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

// findSitemapURLs discovers sitemap URLs from robots.txt or falls back to /sitemap.xml.
func (s *SitemapSuggester) findSitemapURLs(ctx context.Context, base *url.URL) ([]string, error) {
	robotsURL := base.ResolveReference(&url.URL{Path: "/robots.txt"})
	sitemaps, err := s.parseSitemapsFromRobots(ctx, robotsURL.String())
	if err == nil && len(sitemaps) > 0 {
		return sitemaps, nil
	}

	sitemapURL := base.ResolveReference(&url.URL{Path: "/sitemap.xml"})
	exists, err := s.urlExists(ctx, sitemapURL.String())
	if err != nil {
		// Propagate context errors, treat other errors as "not found"
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, nil
	}
	if exists {
		return []string{sitemapURL.String()}, nil
	}

	return nil, nil
}

// parseSitemapsFromRobots extracts Sitemap: directives from robots.txt.
func (s *SitemapSuggester) parseSitemapsFromRobots(ctx context.Context, robotsURL string) ([]string, error) {
	body, err := s.fetchURL(ctx, robotsURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	var sitemaps []string
	scanner := bufio.NewScanner(body)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(strings.ToLower(line), "sitemap:") {
			sitemapURL := strings.TrimSpace(line[len("sitemap:"):])
			if sitemapURL != "" {
				sitemaps = append(sitemaps, sitemapURL)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading robots.txt: %w", err)
	}

	return sitemaps, nil
}

// processSitemap fetches and parses a sitemap, handling both urlset and
// sitemapindex documents. A sitemap that cannot be read is skipped.
func (s *SitemapSuggester) processSitemap(ctx context.Context, sitemapURL string, c *sitemapCrawl) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if c.seenSitemaps[sitemapURL] || c.full() {
		return nil
	}
	c.seenSitemaps[sitemapURL] = true

	body, err := s.fetchURL(ctx, sitemapURL)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return nil
	}
	defer body.Close()

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(body); err != nil {
		return nil
	}
	root := doc.Root()
	if root == nil {
		return nil
	}

	if root.Tag == "sitemapindex" {
		return s.processSitemapIndex(ctx, root, c)
	}
	for _, urlEl := range root.SelectElements("url") {
		if loc := urlEl.SelectElement("loc"); loc != nil {
			if u := strings.TrimSpace(loc.Text()); u != "" {
				c.add(u)
			}
		}
	}
	return nil
}

// processSitemapIndex visits child sitemaps, preferring those whose URL
// itself looks staff related.
func (s *SitemapSuggester) processSitemapIndex(ctx context.Context, root *etree.Element, c *sitemapCrawl) error {
	var preferred, rest []string
	for _, sitemap := range root.SelectElements("sitemap") {
		loc := sitemap.SelectElement("loc")
		if loc == nil {
			continue
		}
		sitemapURL := strings.TrimSpace(loc.Text())
		if sitemapURL == "" {
			continue
		}
		if s.isStaffURL(sitemapURL) || strings.Contains(strings.ToLower(sitemapURL), "person") {
			preferred = append(preferred, sitemapURL)
		} else {
			rest = append(rest, sitemapURL)
		}
	}

	for _, sitemapURL := range append(preferred, rest...) {
		if err := s.processSitemap(ctx, sitemapURL, c); err != nil {
			return err
		}
	}
	return nil
}

// fetchURL fetches a URL and returns the response body.
func (s *SitemapSuggester) fetchURL(ctx context.Context, targetURL string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, staffscout.Errorf(staffscout.ENOTFOUND, "HTTP %d for %s", resp.StatusCode, targetURL)
	}

	return resp.Body, nil
}

// urlExists checks if a URL returns 200 OK.
func (s *SitemapSuggester) urlExists(ctx context.Context, targetURL string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, targetURL, nil)
	if err != nil {
		return false, fmt.Errorf("creating request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return false, err
	}
	resp.Body.Close()

	return resp.StatusCode == http.StatusOK, nil
}
