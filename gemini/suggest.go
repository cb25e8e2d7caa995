package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/fwojciec/staffscout"
)

const suggestInstruction = "You help a crawler find staff directories on university websites. " +
	"From the numbered links, pick those most likely to lead to lists of professors, researchers or staff " +
	"of institutes in the target domain. " +
	`Reply with a JSON object {"links": [numbers]} ordered from most to least promising.`

const (
	// DefaultMaxSuggestions caps the links returned by LinkSuggester.
	DefaultMaxSuggestions = 10

	// maxCandidates bounds the links shown to the model.
	maxCandidates = 150
)

// Ensure LinkSuggester implements staffscout.LinkSuggester.
var _ staffscout.LinkSuggester = (*LinkSuggester)(nil)

// LinkSuggester asks Gemini which links of a root page lead to staff
// directories. Only links present on the page are ever returned.
type LinkSuggester struct {
	gen        Generator
	parser     staffscout.PageParser
	vocabulary *staffscout.Vocabulary

	Model          string
	MaxSuggestions int
}

// NewLinkSuggester creates a LinkSuggester.
func NewLinkSuggester(gen Generator, parser staffscout.PageParser, v *staffscout.Vocabulary) *LinkSuggester {
	return &LinkSuggester{
		gen:            gen,
		parser:         parser,
		vocabulary:     v,
		Model:          DefaultModel,
		MaxSuggestions: DefaultMaxSuggestions,
	}
}

// SuggestLinks returns the links chosen by the model.
func (s *LinkSuggester) SuggestLinks(ctx context.Context, html, baseURL string) ([]string, error) {
	page, err := s.parser.ParsePage(html, baseURL)
	if err != nil {
		return nil, err
	}
	links := page.Links
	if len(links) > maxCandidates {
		links = links[:maxCandidates]
	}
	if len(links) == 0 {
		return []string{}, nil
	}

	var reply struct {
		Links []int `json:"links"`
	}
	prompt := BuildSuggestPrompt(s.vocabulary.RelevanceKeywords, baseURL, links)
	if err := generateJSON(ctx, s.gen, s.Model, suggestInstruction, prompt, &reply); err != nil {
		return nil, err
	}

	limit := s.MaxSuggestions
	if limit <= 0 {
		limit = DefaultMaxSuggestions
	}
	seen := make(map[int]bool)
	urls := []string{}
	for _, n := range reply.Links {
		if n < 1 || n > len(links) || seen[n] {
			continue
		}
		seen[n] = true
		urls = append(urls, links[n-1].URL)
		if len(urls) == limit {
			break
		}
	}
	return urls, nil
}

// BuildSuggestPrompt lists the candidate links numbered from 1.
func BuildSuggestPrompt(keywords []string, baseURL string, links []staffscout.Link) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Target domain: %s\n", strings.Join(keywords, ", "))
	fmt.Fprintf(&sb, "Site: %s\n\nLinks:\n", baseURL)
	for i, l := range links {
		fmt.Fprintf(&sb, "%d. %s | %s\n", i+1, l.Text, l.URL)
	}
	return sb.String()
}
