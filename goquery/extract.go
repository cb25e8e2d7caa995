package goquery

import (
	"regexp"
	"slices"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/staffscout"
	"golang.org/x/net/html"
)

var _ staffscout.ContactExtractor = (*Extractor)(nil)

// capitalizedRunRE matches two to four capitalized words, the shape of a
// name embedded in running text.
var capitalizedRunRE = regexp.MustCompile(`\p{Lu}[\p{Ll}'-]+(?:\s+\p{Lu}[\p{Ll}'-]+){1,3}`)

var (
	nameSelectors = []string{
		"h1", "h2", "h3", "h4", "h5",
		".name", ".staff-name", ".person-name", ".profile-name", "[itemprop='name']",
		"strong", "b",
	}
	roleSelectors = []string{"small", ".role", ".position", ".title", "em", "i", "p"}
)

// Extractor reconstructs contacts from staff pages.
//
// Person cards are tried first: configured card selectors, containers whose
// attributes carry person vocabulary, and table rows listing an address.
// Pages without cards fall back to mining the blocks around each address.
type Extractor struct {
	Vocabulary *staffscout.Vocabulary
}

// NewExtractor creates an Extractor over the given vocabulary.
func NewExtractor(v *staffscout.Vocabulary) *Extractor {
	return &Extractor{Vocabulary: v}
}

// ExtractContacts returns the deduplicated contacts found in html.
func (e *Extractor) ExtractContacts(html, pageURL string) ([]*staffscout.Contact, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, staffscout.Errorf(staffscout.EINVALID, "failed to parse HTML: %v", err)
	}
	text := pageText(doc)

	var contacts []*staffscout.Contact
	for _, card := range e.findCards(doc) {
		contacts = append(contacts, e.safeCardContacts(card, pageURL, text)...)
	}
	if len(contacts) == 0 {
		contacts = e.fallbackContacts(doc, pageURL, text)
	}

	for _, c := range contacts {
		if c.FullName == "" && c.Email != "" {
			c.FullName = staffscout.NameFromEmail(c.Email)
		}
	}
	return staffscout.DedupContacts(contacts), nil
}

// findCards returns person cards in document order.
//
// Nested candidates are resolved from the innermost level outward. A
// candidate that encloses surviving cards is kept only when its own
// content, with those cards cut out, still lists an academic address; it is
// then mined from that pruned copy. The one exception is a nameless card
// inside a named wrapper, which the wrapper absorbs.
func (e *Extractor) findCards(doc *goquery.Document) []*goquery.Selection {
	set := make(map[*html.Node]bool)
	var nodes []*html.Node
	add := func(_ int, s *goquery.Selection) {
		n := s.Get(0)
		if !set[n] {
			set[n] = true
			nodes = append(nodes, n)
		}
	}

	for _, sel := range e.Vocabulary.CardSelectors {
		doc.Find(sel).Each(add)
	}
	doc.Find("div, section, article, li").Each(func(i int, s *goquery.Selection) {
		if e.hasPersonSignal(s) && hasEmail(s) {
			add(i, s)
		}
	})
	doc.Find("tr").Each(func(i int, s *goquery.Selection) {
		t := nodeText(s)
		if capitalizedRunRE.MatchString(t) && len(staffscout.FindEmails(t)) > 0 {
			add(i, s)
		}
	})

	slices.SortStableFunc(nodes, func(a, b *html.Node) int {
		return nodeDepth(b) - nodeDepth(a)
	})

	keep := make(map[*html.Node]*goquery.Selection)
	for _, n := range nodes {
		var inner []*html.Node
		for _, m := range nodes {
			if keep[m] != nil && isAncestor(n, m) {
				inner = append(inner, m)
			}
		}
		whole := goquery.NewDocumentFromNode(n).Selection
		if len(inner) == 0 {
			keep[n] = whole
			continue
		}

		cut := make(map[*html.Node]bool, len(inner))
		for _, m := range inner {
			cut[m] = true
		}
		pruned := goquery.NewDocumentFromNode(cloneWithout(n, cut)).Selection
		if e.hasAcademicEmail(pruned) {
			keep[n] = pruned
			continue
		}

		if len(inner) == 1 && e.cardName(keep[inner[0]]) == "" && e.cardName(whole) != "" {
			delete(keep, inner[0])
			keep[n] = whole
		}
	}

	var cards []*goquery.Selection
	doc.Find("*").Each(func(_ int, s *goquery.Selection) {
		if card := keep[s.Get(0)]; card != nil {
			cards = append(cards, card)
		}
	})
	return cards
}

func nodeDepth(n *html.Node) int {
	d := 0
	for p := n.Parent; p != nil; p = p.Parent {
		d++
	}
	return d
}

func isAncestor(a, n *html.Node) bool {
	for p := n.Parent; p != nil; p = p.Parent {
		if p == a {
			return true
		}
	}
	return false
}

// cloneWithout deep-copies n, leaving out the subtrees rooted at cut.
func cloneWithout(n *html.Node, cut map[*html.Node]bool) *html.Node {
	c := &html.Node{
		Type:      n.Type,
		DataAtom:  n.DataAtom,
		Data:      n.Data,
		Namespace: n.Namespace,
		Attr:      slices.Clone(n.Attr),
	}
	for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
		if !cut[ch] {
			c.AppendChild(cloneWithout(ch, cut))
		}
	}
	return c
}

func (e *Extractor) hasAcademicEmail(s *goquery.Selection) bool {
	for _, a := range mailtoAnchors(s) {
		href, _ := a.Attr("href")
		if email := staffscout.CleanEmail(href); email != "" && e.Vocabulary.IsAcademicEmail(email) {
			return true
		}
	}
	for _, email := range staffscout.FindEmails(nodeText(s)) {
		if e.Vocabulary.IsAcademicEmail(email) {
			return true
		}
	}
	return false
}

func (e *Extractor) hasPersonSignal(s *goquery.Selection) bool {
	var attrs []string
	for _, name := range []string{"class", "id", "role", "aria-label"} {
		if v, ok := s.Attr(name); ok {
			attrs = append(attrs, v)
		}
	}
	blob := strings.ToLower(strings.Join(attrs, " "))
	for _, signal := range e.Vocabulary.PersonSignals {
		if signal != "" && strings.Contains(blob, strings.ToLower(signal)) {
			return true
		}
	}
	return false
}

func hasEmail(s *goquery.Selection) bool {
	return len(mailtoAnchors(s)) > 0 || len(staffscout.FindEmails(nodeText(s))) > 0
}

func mailtoAnchors(s *goquery.Selection) []*goquery.Selection {
	var out []*goquery.Selection
	s.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		if strings.HasPrefix(strings.ToLower(strings.TrimSpace(href)), "mailto:") {
			out = append(out, a)
		}
	})
	return out
}

// safeCardContacts isolates a malformed card from the rest of the page.
func (e *Extractor) safeCardContacts(card *goquery.Selection, pageURL, pageText string) (contacts []*staffscout.Contact) {
	defer func() {
		if recover() != nil {
			contacts = nil
		}
	}()
	return e.cardContacts(card, pageURL, pageText)
}

// cardEmail is an address found on a card together with the name printed
// next to it, if any.
type cardEmail struct {
	email  string
	anchor *goquery.Selection
	name   string
}

func (e *Extractor) cardContacts(card *goquery.Selection, pageURL, pageText string) []*staffscout.Contact {
	text := truncate(nodeText(card), maxCardText)
	contextText := text
	if contextText == "" {
		contextText = truncate(pageText, maxCardText)
	}

	rawName := e.cardName(card)
	nameTitle, name := e.splitName(rawName)
	title, role := e.titleAndRole(nameTitle, e.cardRole(card, rawName, text))
	field := e.Vocabulary.GuessField(text)

	emails := e.cardEmails(card, text, name != "")
	if len(emails) == 0 {
		if name == "" && title == "" && role == "" {
			return nil
		}
		return []*staffscout.Contact{{
			FullName:      name,
			AcademicTitle: title,
			Role:          role,
			FieldHint:     field,
			PageText:      contextText,
			SourceURL:     pageURL,
		}}
	}

	contacts := make([]*staffscout.Contact, 0, len(emails))
	for _, em := range emails {
		c := &staffscout.Contact{
			FullName:      name,
			Email:         em.email,
			AcademicTitle: title,
			Role:          role,
			FieldHint:     field,
			PageText:      contextText,
			SourceURL:     pageURL,
		}
		if em.name != "" {
			localTitle, localName := e.splitName(em.name)
			c.FullName = localName
			if localTitle != "" {
				c.AcademicTitle = localTitle
			}
		}
		contacts = append(contacts, c)
	}
	return contacts
}

// cardName returns the first name-shaped text from headings, name classes
// and bold text, then from links, then from table cells and spans.
func (e *Extractor) cardName(card *goquery.Selection) string {
	for _, sel := range nameSelectors {
		n := card.Find(sel).First()
		if n.Length() == 0 {
			continue
		}
		if t := staffscout.CleanName(nodeText(n)); e.Vocabulary.LooksLikeName(t) {
			return t
		}
	}
	for _, sel := range []string{"a", "td, th, span"} {
		var found string
		card.Find(sel).EachWithBreak(func(_ int, n *goquery.Selection) bool {
			t := staffscout.CleanName(nodeText(n))
			if e.Vocabulary.LooksLikeName(t) {
				found = t
				return false
			}
			return true
		})
		if found != "" {
			return found
		}
	}
	return ""
}

// splitName separates leading academic titles from a name.
func (e *Extractor) splitName(raw string) (title, name string) {
	if raw == "" || !e.Vocabulary.LooksLikeName(raw) {
		return "", ""
	}
	return e.Vocabulary.SplitAcademicTitle(raw)
}

// cardRole returns the position text of a card: a title hint element,
// else a short emphasized element, else a comma-separated segment that
// carries a role word or an academic title.
func (e *Extractor) cardRole(card *goquery.Selection, rawName, text string) string {
	for _, sel := range e.Vocabulary.TitleHintSelectors {
		n := card.Find(sel).First()
		if n.Length() == 0 {
			continue
		}
		if t := nodeText(n); len(t) >= 3 && t != rawName && !e.isGenericLabel(t) {
			return t
		}
	}
	for _, sel := range roleSelectors {
		n := card.Find(sel).First()
		if n.Length() == 0 {
			continue
		}
		t := nodeText(n)
		if len(t) < 3 || len(t) >= 200 || strings.Contains(t, "@") || e.isGenericLabel(t) {
			continue
		}
		if rawName != "" && strings.Contains(t, rawName) || e.Vocabulary.LooksLikeName(t) {
			continue
		}
		return t
	}

	if rawName != "" {
		text = strings.Replace(text, rawName, ",", 1)
	}
	for _, seg := range strings.Split(text, ",") {
		seg = strings.TrimSpace(seg)
		if n := len([]rune(seg)); n < 3 || n > 120 || strings.Contains(seg, "@") {
			continue
		}
		if title, _ := e.Vocabulary.SplitAcademicTitle(seg); title != "" || containsAny(strings.ToLower(seg), e.Vocabulary.RoleWords) {
			return seg
		}
	}
	return ""
}

// titleAndRole combines the title carried by the name with the role text.
// A role that opens with an academic title lends it to a name without one,
// and keeps its full text when the remainder reads as a continuation, as in
// "Professor of Power Electronics".
func (e *Extractor) titleAndRole(nameTitle, role string) (string, string) {
	if role == "" {
		return nameTitle, ""
	}
	if nameTitle != "" {
		return nameTitle, role
	}
	title, rest := e.Vocabulary.SplitAcademicTitle(role)
	switch {
	case title == "":
		return "", role
	case rest == "":
		return title, ""
	case startsLower(rest):
		return title, role
	default:
		return title, rest
	}
}

// cardEmails returns the academic addresses on a card: mailto links first,
// then addresses written in the card text. Nearby names are looked up for
// linked addresses; beyond the link text itself this only happens when the
// card lists several addresses or has no name of its own.
func (e *Extractor) cardEmails(card *goquery.Selection, text string, hasName bool) []cardEmail {
	var out []cardEmail
	seen := make(map[string]bool)
	for _, a := range mailtoAnchors(card) {
		href, _ := a.Attr("href")
		email := staffscout.CleanEmail(href)
		if email == "" || !e.Vocabulary.IsAcademicEmail(email) || seen[strings.ToLower(email)] {
			continue
		}
		seen[strings.ToLower(email)] = true
		out = append(out, cardEmail{email: email, anchor: a})
	}
	for _, email := range staffscout.FindEmails(text) {
		if !e.Vocabulary.IsAcademicEmail(email) || seen[strings.ToLower(email)] {
			continue
		}
		seen[strings.ToLower(email)] = true
		out = append(out, cardEmail{email: email})
	}

	nearby := len(out) > 1 || !hasName
	for i := range out {
		if out[i].anchor != nil {
			out[i].name = e.localName(out[i].anchor, out[i].email, nearby)
		}
	}
	return out
}

// localName finds the name printed next to a mailto link: the link text,
// else the preceding sibling, else a capitalized run in the parent text.
func (e *Extractor) localName(a *goquery.Selection, email string, nearby bool) string {
	if t := staffscout.CleanName(nodeText(a)); e.isLocalName(t) {
		return t
	}
	if !nearby {
		return ""
	}

	for n := a.Get(0).PrevSibling; n != nil; n = n.PrevSibling {
		t := htmlNodeText(n)
		if t == "" {
			continue
		}
		if t = staffscout.CleanName(t); e.isLocalName(t) {
			return t
		}
		break
	}

	parent := nodeText(a.Parent())
	href, _ := a.Attr("href")
	for _, s := range []string{href, email} {
		parent = strings.ReplaceAll(parent, s, " ")
	}
	return e.nameInText(parent)
}

func (e *Extractor) isLocalName(t string) bool {
	return !strings.Contains(t, "@") && len(strings.Fields(t)) >= 2 && e.Vocabulary.LooksLikeName(t)
}

// nameInText returns the longest name-shaped part of the first capitalized
// run in text that contains one.
func (e *Extractor) nameInText(text string) string {
	for _, run := range capitalizedRunRE.FindAllString(text, -1) {
		words := strings.FieldsFunc(run, func(r rune) bool {
			return unicode.IsSpace(r) || r == ','
		})
		for size := len(words); size >= 2; size-- {
			for i := 0; i+size <= len(words); i++ {
				if cand := strings.Join(words[i:i+size], " "); e.Vocabulary.LooksLikeName(cand) {
					return cand
				}
			}
		}
	}
	return ""
}

func (e *Extractor) isGenericLabel(t string) bool {
	lower := strings.ToLower(strings.Trim(t, " :"))
	for _, label := range e.Vocabulary.GenericLabels {
		if lower == strings.ToLower(label) {
			return true
		}
	}
	return false
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if w != "" && strings.Contains(s, strings.ToLower(w)) {
			return true
		}
	}
	return false
}

func startsLower(s string) bool {
	for _, r := range s {
		return unicode.IsLower(r)
	}
	return false
}
