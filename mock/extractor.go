package mock

import "github.com/fwojciec/staffscout"

var _ staffscout.ContactExtractor = (*ContactExtractor)(nil)

// ContactExtractor is a mock implementation of staffscout.ContactExtractor.
type ContactExtractor struct {
	ExtractContactsFn func(html, pageURL string) ([]*staffscout.Contact, error)
}

func (e *ContactExtractor) ExtractContacts(html, pageURL string) ([]*staffscout.Contact, error) {
	return e.ExtractContactsFn(html, pageURL)
}

var _ staffscout.PageParser = (*PageParser)(nil)

// PageParser is a mock implementation of staffscout.PageParser.
type PageParser struct {
	ParsePageFn func(html, pageURL string) (*staffscout.Page, error)
}

func (p *PageParser) ParsePage(html, pageURL string) (*staffscout.Page, error) {
	return p.ParsePageFn(html, pageURL)
}

var _ staffscout.PageClassifier = (*PageClassifier)(nil)

// PageClassifier is a mock implementation of staffscout.PageClassifier.
type PageClassifier struct {
	ClassifyFn func(url, title, text string) staffscout.PageClass
}

func (c *PageClassifier) Classify(url, title, text string) staffscout.PageClass {
	return c.ClassifyFn(url, title, text)
}
