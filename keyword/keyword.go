// Package keyword implements relevance filtering and contact scoring by
// multilingual keyword matching. It needs no network access and serves as
// the default when no LLM is configured.
package keyword

import (
	"context"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/fwojciec/staffscout"
)

const (
	// MatchScore is assigned to contacts whose text mentions the domain.
	MatchScore = 1.0

	// NoMatchScore is assigned to all other contacts.
	NoMatchScore = 0.3

	// maxReasonKeywords bounds the keywords quoted in a reason.
	maxReasonKeywords = 3

	// minStemLength is the shortest final keyword word that may also match
	// as the start of a longer word, as in "leistungselektronikgruppe".
	minStemLength = 5
)

// Ensure Scorer implements staffscout.ContactScorer.
var _ staffscout.ContactScorer = (*Scorer)(nil)

// Scorer rates contacts by the relevance keywords found in their title,
// role and page text. Keywords for the site's country language are added
// to the English ones.
type Scorer struct {
	vocabulary *staffscout.Vocabulary
}

// NewScorer creates a Scorer.
func NewScorer(v *staffscout.Vocabulary) *Scorer {
	return &Scorer{vocabulary: v}
}

// ScoreContacts fills Score, Field and Reason in place.
func (s *Scorer) ScoreContacts(ctx context.Context, contacts []*staffscout.ScoredContact) error {
	for _, c := range contacts {
		if err := ctx.Err(); err != nil {
			return err
		}
		text := words(c.AcademicTitle + " " + c.Role + " " + c.PageText)
		var matched []string
		for _, kw := range s.vocabulary.RelevanceKeywordsFor(c.Site.Country) {
			if newPhrase(kw).in(text) {
				matched = append(matched, kw)
			}
		}

		c.Field = c.FieldHint
		if c.Field == "" {
			c.Field = "Unknown"
		}
		if len(matched) == 0 {
			c.Score = NoMatchScore
			c.Reason = "No ICP keywords found"
			continue
		}
		c.Score = MatchScore
		c.Reason = "Keyword match: " + strings.Join(matched[:min(len(matched), maxReasonKeywords)], ", ")
	}
	return nil
}

// Ensure RelevanceFilter implements staffscout.RelevanceFilter.
var _ staffscout.RelevanceFilter = (*RelevanceFilter)(nil)

// RelevanceFilter accepts a page when its URL, title or text mentions any
// relevance keyword in any configured language. Keywords match whole words,
// so "hil" does not match "philosophy".
type RelevanceFilter struct {
	phrases []phrase
}

// NewRelevanceFilter creates a RelevanceFilter.
func NewRelevanceFilter(v *staffscout.Vocabulary) *RelevanceFilter {
	f := &RelevanceFilter{}
	add := func(kws []string) {
		for _, kw := range kws {
			f.phrases = append(f.phrases, newPhrase(kw))
		}
	}
	add(v.RelevanceKeywords)
	for _, kws := range v.RelevanceByLanguage {
		add(kws)
	}
	return f
}

// IsRelevant never fails.
func (f *RelevanceFilter) IsRelevant(_ context.Context, url, title, snippet string) (bool, error) {
	text := words(url + " " + title + " " + snippet)
	for _, p := range f.phrases {
		if p.in(text) {
			return true, nil
		}
	}
	return false, nil
}

// phrase is a keyword split into lowercase words.
type phrase []string

func newPhrase(keyword string) phrase {
	return words(keyword)
}

// words lowercases s and splits it on anything but letters and digits, so
// URL slugs and hyphenated terms break into words.
func words(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// in reports whether the phrase occurs as consecutive words of text.
func (p phrase) in(text []string) bool {
	if len(p) == 0 {
		return false
	}
	for i := 0; i+len(p) <= len(text); i++ {
		if p.at(text[i : i+len(p)]) {
			return true
		}
	}
	return false
}

// at compares the phrase with an equally long run of words. The last word
// may carry a plural "s"; a long last word may also begin a compound.
func (p phrase) at(text []string) bool {
	last := len(p) - 1
	for i := range last {
		if p[i] != text[i] {
			return false
		}
	}
	kw, w := p[last], text[last]
	if w == kw || w == kw+"s" {
		return true
	}
	return utf8.RuneCountInString(kw) >= minStemLength && strings.HasPrefix(w, kw)
}
