package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/fwojciec/staffscout"
)

const scoreInstruction = "You qualify academic contacts for a research domain. " +
	"For each person decide how closely their research matches the target domain, using the full 0.0-1.0 scale: " +
	"0.9-1.0 direct researcher in the domain, 0.7-0.89 strong match, 0.5-0.69 related work, " +
	"0.3-0.49 peripheral, below 0.3 unrelated. " +
	`Reply with a JSON object {"contacts": [{"id": number, "score": number, "field": string, "reason": string}]}.`

const (
	// DefaultBatchSize is the number of contacts scored per request.
	DefaultBatchSize = 10

	// DefaultMaxPromptTokens is the prompt budget per request when a
	// TokenCounter is configured.
	DefaultMaxPromptTokens = 30000

	// maxContactText bounds the page text sent per contact.
	maxContactText = 2000
)

// Counter counts prompt tokens. TokenCounter implements it.
type Counter interface {
	CountTokens(ctx context.Context, text string) (int, error)
}

// Ensure Scorer implements staffscout.ContactScorer.
var _ staffscout.ContactScorer = (*Scorer)(nil)

// Scorer rates contacts with Gemini in batches.
type Scorer struct {
	gen        Generator
	vocabulary *staffscout.Vocabulary

	Model     string
	BatchSize int

	// Counter, when set, splits batches whose prompt exceeds MaxPromptTokens.
	Counter         Counter
	MaxPromptTokens int
}

// NewScorer creates a Scorer.
func NewScorer(gen Generator, v *staffscout.Vocabulary) *Scorer {
	return &Scorer{
		gen:             gen,
		vocabulary:      v,
		Model:           DefaultModel,
		BatchSize:       DefaultBatchSize,
		MaxPromptTokens: DefaultMaxPromptTokens,
	}
}

type scoreReply struct {
	Contacts []struct {
		ID     int     `json:"id"`
		Score  float64 `json:"score"`
		Field  string  `json:"field"`
		Reason string  `json:"reason"`
	} `json:"contacts"`
}

// ScoreContacts fills Score, Field and Reason on every contact. Contacts the
// model leaves out get a zero score.
func (s *Scorer) ScoreContacts(ctx context.Context, contacts []*staffscout.ScoredContact) error {
	size := s.BatchSize
	if size <= 0 {
		size = DefaultBatchSize
	}
	for start := 0; start < len(contacts); start += size {
		end := min(start+size, len(contacts))
		if err := s.scoreBatch(ctx, contacts[start:end]); err != nil {
			return err
		}
	}
	return nil
}

func (s *Scorer) scoreBatch(ctx context.Context, batch []*staffscout.ScoredContact) error {
	prompt := BuildScorePrompt(s.vocabulary.RelevanceKeywords, batch)

	if s.Counter != nil && len(batch) > 1 {
		n, err := s.Counter.CountTokens(ctx, prompt)
		if err != nil {
			return fmt.Errorf("count tokens: %w", err)
		}
		if n > s.MaxPromptTokens {
			half := len(batch) / 2
			if err := s.scoreBatch(ctx, batch[:half]); err != nil {
				return err
			}
			return s.scoreBatch(ctx, batch[half:])
		}
	}

	var reply scoreReply
	if err := generateJSON(ctx, s.gen, s.Model, scoreInstruction, prompt, &reply); err != nil {
		return err
	}

	for _, c := range batch {
		c.Score = 0
		c.Field = c.FieldHint
		c.Reason = "No score returned"
	}
	for _, r := range reply.Contacts {
		if r.ID < 0 || r.ID >= len(batch) {
			continue
		}
		c := batch[r.ID]
		c.Score = min(max(r.Score, 0), 1)
		if r.Field != "" {
			c.Field = r.Field
		}
		c.Reason = r.Reason
	}
	return nil
}

// BuildScorePrompt lists the contacts of one batch with ids from 0.
func BuildScorePrompt(keywords []string, batch []*staffscout.ScoredContact) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Target domain: %s\n\nContacts:\n", strings.Join(keywords, ", "))
	for i, c := range batch {
		fmt.Fprintf(&sb, "<contact id=\"%d\">\n", i)
		fmt.Fprintf(&sb, "name: %s\n", c.FullName)
		fmt.Fprintf(&sb, "email: %s\n", c.Email)
		fmt.Fprintf(&sb, "title: %s\n", c.AcademicTitle)
		fmt.Fprintf(&sb, "role: %s\n", c.Role)
		fmt.Fprintf(&sb, "university: %s\n", c.Site.Name)
		fmt.Fprintf(&sb, "text: %s\n", truncateRunes(c.PageText, maxContactText))
		sb.WriteString("</contact>\n")
	}
	return sb.String()
}
