// Package http provides the net/http implementation of staffscout.Fetcher
// and a sitemap-based link suggester.
package http

import (
	"context"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/staffscout"
	"golang.org/x/net/html/charset"
)

const (
	// DefaultFetchTimeout is the default timeout for one HTTP request.
	DefaultFetchTimeout = 15 * time.Second

	// DefaultPoliteDelay is the pause after each successful fetch.
	DefaultPoliteDelay = 250 * time.Millisecond

	// DefaultMaxBodySize caps the bytes read from one response.
	DefaultMaxBodySize = 5 << 20

	// maxIdleConnsPerHost bounds the connection pool per host.
	maxIdleConnsPerHost = 10
)

// Ensure Fetcher implements staffscout.Fetcher at compile time.
var _ staffscout.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML pages with plain HTTP requests. It does not
// execute JavaScript; see the rod package for rendered pages.
type Fetcher struct {
	client      *http.Client
	timeout     time.Duration
	politeDelay time.Duration
	maxBodySize int64
	userAgents  []string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (15s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
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

// WithMaxBodySize caps the number of bytes read from a response body.
func WithMaxBodySize(n int64) Option {
	return func(f *Fetcher) {
		f.maxBodySize = n
	}
}

// WithClient replaces the underlying HTTP client. The client's own timeout
// is left untouched.
func WithClient(c *http.Client) Option {
	return func(f *Fetcher) {
		f.client = c
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:     DefaultFetchTimeout,
		politeDelay: DefaultPoliteDelay,
		maxBodySize: DefaultMaxBodySize,
		userAgents:  staffscout.DefaultVocabulary().UserAgents,
	}
	for _, opt := range opts {
		opt(f)
	}

	if f.client == nil {
		transport := http.DefaultTransport.(*http.Transport).Clone()
		transport.MaxIdleConnsPerHost = maxIdleConnsPerHost
		f.client = &http.Client{
			Timeout:   f.timeout,
			Transport: transport,
		}
	}

	return f
}

// Fetch retrieves the HTML at url and returns it decoded to UTF-8.
//
// Network failures, timeouts and 5xx responses are EUNAVAILABLE and may be
// retried. 4xx responses are ENOTFOUND and non-HTML responses are
// EUNSUPPORTED.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", staffscout.Errorf(staffscout.EINVALID, "invalid request for %s: %v", url, err)
	}
	req.Header.Set("User-Agent", f.userAgent(url))
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.5")

	resp, err := f.client.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		return "", staffscout.Errorf(staffscout.EUNAVAILABLE, "fetch %s: %v", url, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 500:
		return "", staffscout.Errorf(staffscout.EUNAVAILABLE, "HTTP %d for %s", resp.StatusCode, url)
	case resp.StatusCode >= 400:
		return "", staffscout.Errorf(staffscout.ENOTFOUND, "HTTP %d for %s", resp.StatusCode, url)
	case resp.StatusCode != http.StatusOK:
		return "", staffscout.Errorf(staffscout.EUNSUPPORTED, "HTTP %d for %s", resp.StatusCode, url)
	}

	contentType := resp.Header.Get("Content-Type")
	if !isHTML(contentType) {
		return "", staffscout.Errorf(staffscout.EUNSUPPORTED, "content type %q for %s", contentType, url)
	}

	body, err := charset.NewReader(io.LimitReader(resp.Body, f.maxBodySize), contentType)
	if err != nil {
		return "", staffscout.Errorf(staffscout.EUNSUPPORTED, "decode %s: %v", url, err)
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return "", staffscout.Errorf(staffscout.EUNAVAILABLE, "read %s: %v", url, err)
	}

	if f.politeDelay > 0 {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(f.politeDelay):
		}
	}

	return string(data), nil
}

// Close releases idle connections.
func (f *Fetcher) Close() error {
	f.client.CloseIdleConnections()
	return nil
}

// userAgent picks the agent for url from the pool.
func (f *Fetcher) userAgent(url string) string {
	if len(f.userAgents) == 0 {
		return ""
	}
	return f.userAgents[xxhash.Sum64String(url)%uint64(len(f.userAgents))]
}

// isHTML reports whether a Content-Type header declares an HTML document.
func isHTML(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = strings.ToLower(strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0]))
	}
	return mediaType == "text/html" || mediaType == "application/xhtml+xml"
}
