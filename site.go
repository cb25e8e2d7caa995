package staffscout

import (
	"net/url"
	"strings"
)

// Site is a university website to crawl.
type Site struct {
	Name    string `json:"name"`
	Country string `json:"country"`
	URL     string `json:"url"`
}

// Validate returns an error if the site has no usable seed URL.
func (s *Site) Validate() error {
	if s.URL == "" {
		return Errorf(EINVALID, "site URL required")
	}
	u, err := url.Parse(s.URL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return Errorf(EINVALID, "invalid site URL %q", s.URL)
	}
	return nil
}

// SiteFromURL builds a Site from a bare URL, deriving a display name from
// the host (www.kit.edu becomes "Kit").
func SiteFromURL(rawURL string) Site {
	site := Site{Country: "Custom", URL: rawURL}
	u, err := url.Parse(rawURL)
	if err != nil || u.Hostname() == "" {
		site.Name = rawURL
		return site
	}
	host := strings.TrimPrefix(u.Hostname(), "www.")
	label := strings.SplitN(host, ".", 2)[0]
	if label == "" {
		site.Name = host
		return site
	}
	site.Name = strings.ToUpper(label[:1]) + label[1:]
	return site
}

// SiteResult is the outcome of crawling one site.
type SiteResult struct {
	Site       Site
	Contacts   []*Contact
	Visited    []string
	FoundPages []string

	// Skipped counts staff pages vetoed by the relevance filter.
	Skipped int

	// Failed counts pages that could not be fetched or parsed.
	Failed int

	// Err is set when the crawl stopped early, e.g. on cancellation.
	// Contacts gathered up to that point are still usable.
	Err error
}

// ScoredContact is a contact enriched by the downstream pipeline.
type ScoredContact struct {
	Contact
	Site         Site     `json:"site"`
	Score        float64  `json:"score"`
	Field        string   `json:"field"`
	Reason       string   `json:"reason"`
	Publications []string `json:"publications"`
}
