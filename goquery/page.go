// Package goquery parses HTML pages and reconstructs staff contacts from
// them using goquery.
package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/staffscout"
)

var _ staffscout.PageParser = (*Parser)(nil)

// Parser parses fetched HTML into the title, text and links the crawler
// works with.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// ParsePage parses html fetched from pageURL.
func (p *Parser) ParsePage(html, pageURL string) (*staffscout.Page, error) {
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, staffscout.Errorf(staffscout.EINVALID, "invalid page URL: %v", err)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, staffscout.Errorf(staffscout.EINVALID, "failed to parse HTML: %v", err)
	}

	return &staffscout.Page{
		Title: nodeText(doc.Find("title").First()),
		Text:  pageText(doc),
		Links: extractLinks(doc, base),
	}, nil
}

// extractLinks returns the http(s) links of doc in document order, resolved
// against base and deduplicated by URL.
func extractLinks(doc *goquery.Document, base *url.URL) []staffscout.Link {
	seen := make(map[string]bool)
	var links []staffscout.Link
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		if href == "" || isNonHTTPLink(href) {
			return
		}
		resolved := resolveURL(base, href)
		if resolved == "" || seen[resolved] {
			return
		}
		seen[resolved] = true
		links = append(links, staffscout.Link{URL: resolved, Text: nodeText(sel)})
	})
	return links
}

// resolveURL resolves href against base and strips the fragment. It
// returns the empty string for unparseable, non-http(s) or
// self-referential targets.
func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return ""
	}
	resolved := base.ResolveReference(ref)
	if resolved.Scheme != "http" && resolved.Scheme != "https" || resolved.Host == "" {
		return ""
	}
	result := canonical(*resolved)
	if result == canonical(*base) {
		return ""
	}
	return result
}

// canonical drops the fragment and spells an empty path as "/" so that
// "https://host" and "https://host/" name the same page.
func canonical(u url.URL) string {
	u.Fragment = ""
	u.RawFragment = ""
	if u.Path == "" && u.Opaque == "" {
		u.Path = "/"
	}
	return u.String()
}

// isNonHTTPLink checks if a href is a non-HTTP link that should be skipped.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}
