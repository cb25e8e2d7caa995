package staffscout

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	// emailRE matches plain addresses in text.
	emailRE = regexp.MustCompile(`[a-zA-Z0-9][a-zA-Z0-9._%+-]*@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)

	// bracketAtRE matches "jane [at] uni (dot) edu" and "jane(at)uni.edu".
	bracketAtRE = regexp.MustCompile(`(?i)\b[a-z0-9][a-z0-9._%+-]*\s*[\[({]\s*at\s*[\])}]\s*[a-z0-9-]+(?:(?:\s*[\[({]\s*dot\s*[\])}]\s*|\.|\s+dot\s+)[a-z0-9-]+)+`)

	// wordAtRE matches "jane at uni dot edu". The dot words are required so
	// that prose such as "works at kit.edu" is not mistaken for an address.
	wordAtRE = regexp.MustCompile(`(?i)\b[a-z0-9][a-z0-9._%+-]*\s+at\s+[a-z0-9-]+(?:\s+dot\s+[a-z0-9-]+)+`)

	// partialRE matches the "first last ∂ domain tld" form and its spam
	// protected variant "first last ∂does-not-exist.domain tld".
	partialRE = regexp.MustCompile(`\b(?:[a-z][a-z0-9._-]*\s+)?[A-Za-z0-9][A-Za-z0-9._%+-]*\s*∂\s*(?:(?:(?i:does-?not-?exist|no-?spam|remove-?this)\.)?[a-z0-9][a-z0-9-]*\s+[a-z]{2,4}\b|[A-Za-z0-9][A-Za-z0-9-]*(?:\.[A-Za-z0-9-]+)+)`)

	atTokenRE  = regexp.MustCompile(`(?i)\s*(?:[\[({]\s*at\s*[\])}]|∂)\s*|\s+at\s+`)
	dotTokenRE = regexp.MustCompile(`(?i)\s*[\[({]\s*dot\s*[\])}]\s*|\s+dot\s+`)
	fillerRE   = regexp.MustCompile(`(?i)(?:does-?not-?exist|no-?spam|remove-?this)[._-]?`)
	multiDotRE = regexp.MustCompile(`\.{2,}`)

	validEmailRE = regexp.MustCompile(`^[\p{L}\p{N}._%+'_-]+@[\p{L}\p{N}-]+(?:\.[\p{L}\p{N}-]+)*\.\p{L}{2,}$`)
)

// maxCleanPasses bounds the normalization loop in CleanEmail.
const maxCleanPasses = 4

// CleanEmail normalizes an email address that may be obfuscated.
//
// It rewrites "[at]", "(at)", " at " and "∂" to "@" and "[dot]", "(dot)",
// " dot " to ".", strips spam-protection fillers such as "does-not-exist",
// and joins space-separated forms: a side of the "@" with exactly one
// internal space is joined with a dot, other spaces are removed. Doubled
// dots are collapsed and dots are trimmed from both ends of each side.
//
// The result contains exactly one "@" followed by a dotted domain, or is
// empty when the input cannot be normalized. CleanEmail is idempotent and
// returns well-formed addresses unchanged.
func CleanEmail(raw string) string {
	s := raw
	for range maxCleanPasses {
		next := cleanEmailOnce(s)
		if next == s {
			if validEmailRE.MatchString(s) {
				return s
			}
			return ""
		}
		s = next
	}
	return ""
}

func cleanEmailOnce(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if len(s) >= 7 && strings.EqualFold(s[:7], "mailto:") {
		s = s[7:]
	}
	if i := strings.IndexByte(s, '?'); i >= 0 {
		s = s[:i]
	}
	s = atTokenRE.ReplaceAllString(s, "@")
	s = dotTokenRE.ReplaceAllString(s, ".")
	s = fillerRE.ReplaceAllString(s, "")
	s = strings.Trim(s, " <>()[]{},;:\"'")

	local, domain, ok := strings.Cut(s, "@")
	if !ok || strings.Contains(domain, "@") {
		return s
	}
	s = joinSpaced(local) + "@" + joinSpaced(domain)
	s = multiDotRE.ReplaceAllString(s, ".")

	local, domain, _ = strings.Cut(s, "@")
	return strings.Trim(local, ".") + "@" + strings.Trim(domain, ".")
}

// joinSpaced joins a two-word part with a dot and removes spaces otherwise.
func joinSpaced(part string) string {
	part = strings.TrimSpace(part)
	if strings.Count(part, " ") == 1 {
		return strings.Replace(part, " ", ".", 1)
	}
	return strings.ReplaceAll(part, " ", "")
}

// FindEmails returns the normalized addresses found in text, including
// obfuscated ones, in order of first appearance and without duplicates.
func FindEmails(text string) []string {
	type match struct {
		pos int
		raw string
	}
	var matches []match
	for _, re := range []*regexp.Regexp{emailRE, bracketAtRE, wordAtRE, partialRE} {
		for _, loc := range re.FindAllStringIndex(text, -1) {
			matches = append(matches, match{pos: loc[0], raw: text[loc[0]:loc[1]]})
		}
	}
	// Stable insertion sort keeps pattern order for matches at the same position.
	for i := 1; i < len(matches); i++ {
		for j := i; j > 0 && matches[j].pos < matches[j-1].pos; j-- {
			matches[j], matches[j-1] = matches[j-1], matches[j]
		}
	}

	var out []string
	seen := make(map[string]bool)
	for _, m := range matches {
		email := CleanEmail(m.raw)
		if email == "" || seen[strings.ToLower(email)] {
			continue
		}
		seen[strings.ToLower(email)] = true
		out = append(out, email)
	}
	return out
}

// IsAcademicEmail reports whether email looks like a personal address
// rather than a generic administrative one. Any configured pattern found
// anywhere in the lowercased address disqualifies it.
func (v *Vocabulary) IsAcademicEmail(email string) bool {
	if !strings.Contains(email, "@") {
		return false
	}
	lower := strings.ToLower(email)
	for _, p := range v.ExcludeEmailPatterns {
		if strings.Contains(lower, strings.ToLower(p)) {
			return false
		}
	}
	return true
}

// NameFromEmail derives a display name from an address whose local part is
// "first.last" ("First Last") or "f.last" ("F. Last"). Any other shape
// yields the empty string.
func NameFromEmail(email string) string {
	local, _, ok := strings.Cut(email, "@")
	if !ok {
		return ""
	}
	first, last, ok := strings.Cut(local, ".")
	if !ok || first == "" || last == "" || strings.Contains(last, ".") {
		return ""
	}
	if !isNameWord(first) || !isNameWord(last) || len([]rune(last)) < 2 {
		return ""
	}

	caser := cases.Title(language.Und)
	last = caser.String(last)
	if len([]rune(first)) == 1 {
		return strings.ToUpper(first) + ". " + last
	}
	return caser.String(first) + " " + last
}

func isNameWord(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) && r != '-' {
			return false
		}
	}
	return true
}
