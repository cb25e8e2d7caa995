package staffscout

import "context"

// Fetcher retrieves HTML from URLs.
type Fetcher interface {
	// Fetch performs a single attempt to retrieve the page and returns its
	// HTML decoded to UTF-8. Transient failures carry the EUNAVAILABLE code
	// so callers can decide whether to retry.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases resources held by the fetcher.
	Close() error
}
