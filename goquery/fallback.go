package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/staffscout"
)

const (
	blockSelector = "p, li, tr, .row, .teaser, .card, .media, .grid, .list, .vcard"
	maxBlocks     = 400
	shortBlockLen = 600
)

// roleRE matches a position phrase such as "Research Associate in Power
// Systems" or "Leiter der Arbeitsgruppe".
var roleRE = regexp.MustCompile(`(?i)\b(?:professor|lecturer|research(?:er| associate| fellow| scientist)|wissenschaftl\w*|ingenieur\w*|engineer|head|leader|leiter\w*|chair|docente|ricercat\w*|chercheu\w*|investigador\w*)\b[^.,;\n@]{0,120}`)

// block is a short text region considered as context for an address.
type block struct {
	text   string
	emails map[string]bool
}

// fallbackContacts mines page-level addresses when no person cards were
// found. Each address takes its name and role from the best scoring block
// that mentions it: role words score two, short blocks score one.
func (e *Extractor) fallbackContacts(doc *goquery.Document, pageURL, pageText string) []*staffscout.Contact {
	emails := e.pageEmails(doc)
	if len(emails) == 0 {
		return nil
	}
	blocks := collectBlocks(doc)

	contacts := make([]*staffscout.Contact, 0, len(emails))
	for _, email := range emails {
		c := &staffscout.Contact{
			Email:     email,
			PageText:  truncate(pageText, maxCardText),
			SourceURL: pageURL,
		}
		if b := e.bestBlock(blocks, email); b != nil {
			e.fillFromBlock(c, b.text)
		}
		contacts = append(contacts, c)
	}
	return contacts
}

// pageEmails returns the academic addresses of the whole page: mailto
// links first, then addresses written in the text.
func (e *Extractor) pageEmails(doc *goquery.Document) []string {
	var out []string
	seen := make(map[string]bool)
	add := func(email string) {
		if email == "" || !e.Vocabulary.IsAcademicEmail(email) || seen[strings.ToLower(email)] {
			return
		}
		seen[strings.ToLower(email)] = true
		out = append(out, email)
	}
	for _, a := range mailtoAnchors(doc.Selection) {
		href, _ := a.Attr("href")
		add(staffscout.CleanEmail(href))
	}
	for _, email := range staffscout.FindEmails(nodeText(doc.Selection)) {
		add(email)
	}
	return out
}

func collectBlocks(doc *goquery.Document) []block {
	var blocks []block
	doc.Find(blockSelector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		b := block{text: nodeText(s), emails: make(map[string]bool)}
		for _, email := range staffscout.FindEmails(b.text) {
			b.emails[strings.ToLower(email)] = true
		}
		for _, a := range mailtoAnchors(s) {
			href, _ := a.Attr("href")
			if email := staffscout.CleanEmail(href); email != "" {
				b.emails[strings.ToLower(email)] = true
			}
		}
		if len(b.emails) > 0 {
			blocks = append(blocks, b)
		}
		return len(blocks) < maxBlocks
	})
	return blocks
}

func (e *Extractor) bestBlock(blocks []block, email string) *block {
	key := strings.ToLower(email)
	var best *block
	bestScore := -1
	for i := range blocks {
		b := &blocks[i]
		if !b.emails[key] {
			continue
		}
		score := 0
		if containsAny(strings.ToLower(b.text), e.Vocabulary.RoleWords) {
			score += 2
		}
		if len([]rune(b.text)) < shortBlockLen {
			score++
		}
		if score > bestScore {
			best, bestScore = b, score
		}
	}
	return best
}

// fillFromBlock sets name, title, role and field from block text.
func (e *Extractor) fillFromBlock(c *staffscout.Contact, text string) {
	c.PageText = truncate(text, maxCardText)
	c.FieldHint = e.Vocabulary.GuessField(text)
	c.Role = strings.TrimSpace(roleRE.FindString(text))

	stripped := strings.ReplaceAll(text, c.Email, " ")
	raw := e.nameInText(stripped)
	if raw == "" {
		return
	}
	title, name := e.Vocabulary.SplitAcademicTitle(raw)
	if title == "" {
		title = e.titleBefore(stripped, raw)
	}
	c.FullName = name
	c.AcademicTitle = title
}

// titleBefore returns the academic titles written directly before name.
func (e *Extractor) titleBefore(text, name string) string {
	i := strings.Index(text, name)
	if i <= 0 {
		return ""
	}
	words := strings.Fields(text[:i])
	for start := 0; start < len(words); start++ {
		title, rest := e.Vocabulary.SplitAcademicTitle(strings.Join(words[start:], " "))
		if title != "" && rest == "" {
			return title
		}
	}
	return ""
}
