// Package crossref looks up recent publications of a person through the
// Crossref REST API.
package crossref

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/fwojciec/staffscout"
	"golang.org/x/time/rate"
)

const (
	// DefaultBaseURL is the Crossref works endpoint.
	DefaultBaseURL = "https://api.crossref.org/works"

	// DefaultRows is the number of works requested per person.
	DefaultRows = 10

	// minNameLength is the shortest name worth a query.
	minNameLength = 3
)

// Ensure Enricher implements staffscout.PublicationEnricher.
var _ staffscout.PublicationEnricher = (*Enricher)(nil)

// Enricher returns the URLs of the newest works whose author matches a
// name. Requests are rate limited to stay within Crossref's public pool.
type Enricher struct {
	client  *http.Client
	limiter *rate.Limiter

	BaseURL string
	Rows    int

	// Mailto identifies the caller to Crossref's polite pool when set.
	Mailto string
}

// NewEnricher creates an Enricher. If client is nil, http.DefaultClient is
// used.
func NewEnricher(client *http.Client) *Enricher {
	if client == nil {
		client = http.DefaultClient
	}
	return &Enricher{
		client:  client,
		limiter: rate.NewLimiter(rate.Limit(5), 1),
		BaseURL: DefaultBaseURL,
		Rows:    DefaultRows,
	}
}

type worksResponse struct {
	Message struct {
		Items []struct {
			URL string `json:"URL"`
		} `json:"items"`
	} `json:"message"`
}

// Enrich returns up to Rows work URLs, newest first. Names shorter than
// three characters return no links without a request.
func (e *Enricher) Enrich(ctx context.Context, name string) ([]string, error) {
	name = strings.TrimSpace(name)
	if utf8.RuneCountInString(name) < minNameLength {
		return []string{}, nil
	}
	if err := e.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("query.author", name)
	q.Set("rows", strconv.Itoa(e.Rows))
	q.Set("sort", "issued")
	q.Set("order", "desc")
	if e.Mailto != "" {
		q.Set("mailto", e.Mailto)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, e.BaseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, staffscout.Errorf(staffscout.EUNAVAILABLE, "crossref: %v", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return nil, staffscout.Errorf(staffscout.EUNAVAILABLE, "crossref: HTTP %d", resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return nil, staffscout.Errorf(staffscout.EINVALID, "crossref: HTTP %d", resp.StatusCode)
	}

	var body worksResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, staffscout.Errorf(staffscout.EINTERNAL, "crossref: decode response: %v", err)
	}

	links := []string{}
	for _, item := range body.Message.Items {
		if item.URL != "" {
			links = append(links, item.URL)
		}
	}
	return links, nil
}
