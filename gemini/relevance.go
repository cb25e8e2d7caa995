package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/fwojciec/staffscout"
)

const relevanceInstruction = "You screen university web pages for a lead generation crawler. " +
	"Decide whether the page belongs to a research group, institute or department working in the target domain. " +
	`Reply with a JSON object {"relevant": boolean, "reason": string}.`

// maxSnippet bounds the page text sent for a relevance decision.
const maxSnippet = 1500

// Ensure RelevanceFilter implements staffscout.RelevanceFilter.
var _ staffscout.RelevanceFilter = (*RelevanceFilter)(nil)

// RelevanceFilter asks Gemini whether a staff page belongs to the target
// research domain.
type RelevanceFilter struct {
	gen        Generator
	vocabulary *staffscout.Vocabulary
	Model      string
}

// NewRelevanceFilter creates a RelevanceFilter.
func NewRelevanceFilter(gen Generator, v *staffscout.Vocabulary) *RelevanceFilter {
	return &RelevanceFilter{gen: gen, vocabulary: v, Model: DefaultModel}
}

// IsRelevant reports the model's verdict for the page.
func (f *RelevanceFilter) IsRelevant(ctx context.Context, url, title, snippet string) (bool, error) {
	var reply struct {
		Relevant bool   `json:"relevant"`
		Reason   string `json:"reason"`
	}
	prompt := BuildRelevancePrompt(f.vocabulary.RelevanceKeywords, url, title, snippet)
	if err := generateJSON(ctx, f.gen, f.Model, relevanceInstruction, prompt, &reply); err != nil {
		return false, err
	}
	return reply.Relevant, nil
}

// BuildRelevancePrompt builds the user prompt for one page.
func BuildRelevancePrompt(keywords []string, url, title, snippet string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Target domain: %s\n\n", strings.Join(keywords, ", "))
	fmt.Fprintf(&sb, "URL: %s\n", url)
	fmt.Fprintf(&sb, "Title: %s\n", title)
	fmt.Fprintf(&sb, "Text:\n%s\n", truncateRunes(snippet, maxSnippet))
	return sb.String()
}
