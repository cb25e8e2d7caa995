// Package gemini implements the LLM-backed pipeline collaborators
// (relevance filter, link suggester and contact scorer) on Google Gemini.
package gemini

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/fwojciec/staffscout"
	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

// Generator is the subset of *genai.Models used by this package.
type Generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Ensure the SDK satisfies Generator.
var _ Generator = (*genai.Models)(nil)

// BuildConfig returns a JSON-mode generation config with the given system
// instruction.
func BuildConfig(instruction string) *genai.GenerateContentConfig {
	temp := float32(0.2)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: instruction}},
		},
		Temperature:      &temp,
		ResponseMIMEType: "application/json",
	}
}

// generateJSON sends prompt and decodes the JSON reply into v.
func generateJSON(ctx context.Context, gen Generator, model, instruction, prompt string, v any) error {
	result, err := gen.GenerateContent(ctx, model,
		[]*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)},
		BuildConfig(instruction),
	)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return staffscout.Errorf(staffscout.EUNAVAILABLE, "gemini: %v", err)
	}
	if result == nil {
		return staffscout.Errorf(staffscout.EINTERNAL, "gemini returned nil result")
	}

	text := stripCodeFence(result.Text())
	if err := json.Unmarshal([]byte(text), v); err != nil {
		return staffscout.Errorf(staffscout.EINTERNAL, "gemini returned malformed JSON: %v", err)
	}
	return nil
}

// stripCodeFence removes a markdown code fence around a JSON reply.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// truncateRunes cuts s to at most n runes.
func truncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
