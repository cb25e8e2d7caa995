package staffscout

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
)

var (
	honorificRE   = regexp.MustCompile(`(?i)^(?:herr|frau|hr\.|fr\.|mr\.|mrs\.|ms\.)\s+`)
	parentheticRE = regexp.MustCompile(`\([^)]*\)`)
	phoneWordRE   = regexp.MustCompile(`^\+?\d[\d\-()/]*$`)
)

// nameStopWords end a name when cleaning text that runs on into contact details.
var nameStopWords = map[string]bool{
	"tel": true, "telefon": true, "telephone": true, "phone": true,
	"email": true, "e-mail": true, "mail": true, "fax": true,
	"bitte": true, "für": true, "und": true, "room": true, "raum": true,
}

// CleanName strips honorifics, parenthetical notes and trailing contact
// details from a candidate name.
func CleanName(name string) string {
	name = strings.Join(strings.Fields(name), " ")
	name = honorificRE.ReplaceAllString(name, "")
	name = parentheticRE.ReplaceAllString(name, "")

	var words []string
	for _, w := range strings.Fields(name) {
		clean := strings.Trim(w, ",;:-.|")
		if nameStopWords[strings.ToLower(clean)] || phoneWordRE.MatchString(clean) || strings.Contains(clean, "@") {
			break
		}
		words = append(words, w)
	}
	return strings.Trim(strings.Join(words, " "), ",;:-| ")
}

// LooksLikeName reports whether text reads as a person's name: two to six
// capitalized words once a leading academic title is removed, with no
// digits, addresses or generic contact labels. A single surname is
// accepted when it follows an academic title.
func (v *Vocabulary) LooksLikeName(text string) bool {
	text = strings.TrimSpace(text)
	if n := len([]rune(text)); n < 3 || n > 80 {
		return false
	}
	lower := strings.ToLower(text)
	if strings.ContainsAny(text, "@▶►→←•★©®™|/") || strings.ContainsFunc(text, unicode.IsDigit) {
		return false
	}
	for _, tld := range []string{".com", ".edu", ".php", ".html", "www."} {
		if strings.Contains(lower, tld) {
			return false
		}
	}
	labels := make(map[string]bool, len(v.GenericLabels))
	for _, label := range v.GenericLabels {
		l := strings.ToLower(label)
		if lower == l || strings.HasPrefix(lower, l+":") {
			return false
		}
		labels[l] = true
	}

	title, rest := v.SplitAcademicTitle(text)
	words := strings.Fields(rest)
	switch {
	case len(words) == 0 || len(words) > 6:
		return false
	case len(words) == 1 && (title == "" || len([]rune(words[0])) < 2):
		return false
	}
	if !startsUpper(words[0]) || !startsUpper(words[len(words)-1]) {
		return false
	}
	for _, w := range words {
		if labels[strings.ToLower(strings.Trim(w, ",;:."))] {
			return false
		}
	}
	if len(words) > 1 && strings.ToUpper(rest) == rest {
		return false
	}
	return true
}

func startsUpper(s string) bool {
	for _, r := range s {
		return unicode.IsUpper(r)
	}
	return false
}

// SplitAcademicTitle splits leading academic titles off a name or role.
// Titles are matched case-insensitively, longest first, and must be
// followed by whitespace, a comma or the end of the string. Consecutive
// titles are joined, so "Prof. Dr. h.c. Jane Doe" keeps every title.
func (v *Vocabulary) SplitAcademicTitle(raw string) (title, rest string) {
	titles := append([]string(nil), v.AcademicTitles...)
	sort.SliceStable(titles, func(i, j int) bool { return len(titles[i]) > len(titles[j]) })

	rest = strings.Join(strings.Fields(raw), " ")
	var found []string
	for {
		t, ok := matchTitle(rest, titles)
		if !ok {
			break
		}
		found = append(found, rest[:len(t)])
		rest = strings.TrimLeft(rest[len(t):], " ,")
	}
	return strings.Join(found, " "), rest
}

func matchTitle(s string, titles []string) (string, bool) {
	for _, t := range titles {
		if len(s) < len(t) || !strings.EqualFold(s[:len(t)], t) {
			continue
		}
		if len(s) == len(t) || s[len(t)] == ' ' || s[len(t)] == ',' {
			return t, true
		}
	}
	return "", false
}
