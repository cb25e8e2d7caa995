package crawl

import (
	"regexp"
	"strings"

	"github.com/fwojciec/staffscout"
)

var _ staffscout.PageClassifier = (*Classifier)(nil)

var (
	// profileURLRE matches individual profile paths: "/1234-jane-doe",
	// "/profile/jdoe" and "/~jdoe".
	profileURLRE = regexp.MustCompile(`(?i)/\d+-[a-z][a-z0-9-]+/?$|/(?:profile|profil|person|personen|people)/[a-z][a-z0-9._-]+/?$|/~[a-z][a-z0-9._-]*`)

	// nameTitleRE matches titles that open with a person's name, e.g.
	// "Prof. Dr. Jane Doe - Institute of Power Electronics".
	nameTitleRE = regexp.MustCompile(`^(?:(?:Prof\.|Dr\.(?:-Ing\.)?|Professor)\s+)*\p{Lu}[\p{Ll}'-]+(?:\s+\p{Lu}[\p{Ll}'-]+){1,3}\s*[-|–—:,]`)
)

// Classifier labels pages as staff directories, department hubs or neither.
type Classifier struct {
	Vocabulary *staffscout.Vocabulary
}

// NewClassifier creates a Classifier over the given vocabulary.
func NewClassifier(v *staffscout.Vocabulary) *Classifier {
	return &Classifier{Vocabulary: v}
}

// Classify decides the page class. Staff checks run before hub checks, so a
// page matching both vocabularies is a staff page.
//
// Keywords are matched against the URL and the title. Page text is only
// consulted for multi-word keywords such as "academic staff", since single
// words like "team" appear on nearly every page.
func (c *Classifier) Classify(rawURL, title, text string) staffscout.PageClass {
	lowerURL := pathWithSlash(rawURL)
	lowerTitle := strings.ToLower(title)

	for _, kw := range c.Vocabulary.StaffKeywords {
		kw = strings.ToLower(kw)
		if kw == "" {
			continue
		}
		if strings.Contains(lowerURL, kw) || strings.Contains(lowerTitle, kw) {
			return staffscout.StaffPage
		}
	}
	if c.staffPhrase(text) {
		return staffscout.StaffPage
	}
	if profileURLRE.MatchString(strings.TrimSuffix(lowerURL, "/")) || nameTitleRE.MatchString(strings.TrimSpace(title)) {
		return staffscout.StaffPage
	}

	if containsAny(lowerURL, c.Vocabulary.DepartmentKeywords) || containsAny(lowerTitle, c.Vocabulary.DepartmentKeywords) {
		return staffscout.DepartmentHub
	}
	return staffscout.Irrelevant
}

func (c *Classifier) staffPhrase(text string) bool {
	if text == "" {
		return false
	}
	lower := strings.ToLower(text)
	for _, kw := range c.Vocabulary.StaffKeywords {
		if strings.Contains(kw, " ") && strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}
