package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const (
	// maxPageText bounds the page-level text kept for scoring.
	maxPageText = 12000

	// maxCardText bounds the text kept for a single contact.
	maxCardText = 6000

	// minContentChunk is the length a content region needs to count as
	// page text.
	minContentChunk = 600

	// maxRootText bounds the whole-document text used when no content
	// region is large enough.
	maxRootText = 8000
)

var contentSelectors = []string{"main", "article", ".content", "#content", ".container", "body"}

// nodeText returns the visible text of sel with text nodes separated by
// spaces and whitespace collapsed. Script and style content is skipped.
func nodeText(sel *goquery.Selection) string {
	var b strings.Builder
	for _, n := range sel.Nodes {
		writeText(&b, n)
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

func htmlNodeText(n *html.Node) string {
	var b strings.Builder
	writeText(&b, n)
	return strings.Join(strings.Fields(b.String()), " ")
}

func writeText(b *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		b.WriteString(n.Data)
		b.WriteByte(' ')
		return
	case html.CommentNode:
		return
	case html.ElementNode:
		switch n.DataAtom {
		case atom.Script, atom.Style, atom.Noscript, atom.Template:
			return
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeText(b, c)
	}
}

// pageText collects the main content regions of doc. When none is large
// enough the whole document text is used instead.
func pageText(doc *goquery.Document) string {
	var chunks []string
	for _, s := range contentSelectors {
		if t := nodeText(doc.Find(s).First()); len(t) > minContentChunk {
			chunks = append(chunks, t)
		}
	}
	if len(chunks) == 0 {
		chunks = append(chunks, truncate(nodeText(doc.Selection), maxRootText))
	}
	return truncate(strings.Join(chunks, " "), maxPageText)
}

// truncate cuts s to at most n runes.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
