package staffscout

// Page is the parsed view of an HTML document used by the crawler.
type Page struct {
	// Title is the document title.
	Title string

	// Text is the visible page text, whitespace-collapsed and bounded.
	Text string

	// Links are absolute http(s) links found on the page, fragments removed.
	Links []Link
}

// Link is an outgoing hyperlink.
type Link struct {
	URL  string
	Text string
}

// PageParser parses raw HTML into a Page.
type PageParser interface {
	// ParsePage resolves links against pageURL and drops non-http(s) targets.
	ParsePage(html, pageURL string) (*Page, error)
}

// ContactExtractor reconstructs contact records from a staff page.
type ContactExtractor interface {
	// ExtractContacts returns the deduplicated contacts found in html.
	// Only a document that cannot be parsed at all yields an error.
	ExtractContacts(html, pageURL string) ([]*Contact, error)
}
