package keyword_test

import (
	"context"
	"testing"

	"github.com/fwojciec/staffscout"
	"github.com/fwojciec/staffscout/keyword"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScorer_ScoreContacts(t *testing.T) {
	t.Parallel()

	t.Run("scores keyword matches and quotes up to three", func(t *testing.T) {
		t.Parallel()

		c := &staffscout.ScoredContact{Contact: staffscout.Contact{
			FullName:  "John Smith",
			Role:      "Professor of Power Electronics",
			PageText:  "Research on smart grid control, microgrid stability and energy storage.",
			FieldHint: "Power Electronics",
		}}

		err := keyword.NewScorer(staffscout.DefaultVocabulary()).ScoreContacts(context.Background(), []*staffscout.ScoredContact{c})

		require.NoError(t, err)
		assert.InDelta(t, keyword.MatchScore, c.Score, 0)
		assert.Equal(t, "Power Electronics", c.Field)
		assert.Equal(t, "Keyword match: power electronics, energy storage, microgrid", c.Reason)
	})

	t.Run("uses the country language", func(t *testing.T) {
		t.Parallel()

		german := &staffscout.ScoredContact{
			Contact: staffscout.Contact{Role: "Lehrstuhl für Leistungselektronik"},
			Site:    staffscout.Site{Country: "Germany"},
		}
		other := &staffscout.ScoredContact{
			Contact: staffscout.Contact{Role: "Lehrstuhl für Leistungselektronik"},
			Site:    staffscout.Site{Country: "Japan"},
		}

		err := keyword.NewScorer(staffscout.DefaultVocabulary()).ScoreContacts(context.Background(), []*staffscout.ScoredContact{german, other})

		require.NoError(t, err)
		assert.InDelta(t, keyword.MatchScore, german.Score, 0)
		assert.InDelta(t, keyword.NoMatchScore, other.Score, 0)
		assert.Equal(t, "No ICP keywords found", other.Reason)
		assert.Equal(t, "Unknown", other.Field)
	})

	t.Run("stops when the context is canceled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := keyword.NewScorer(staffscout.DefaultVocabulary()).ScoreContacts(ctx, []*staffscout.ScoredContact{{}})

		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestRelevanceFilter_IsRelevant(t *testing.T) {
	t.Parallel()

	f := keyword.NewRelevanceFilter(staffscout.DefaultVocabulary())

	tests := []struct {
		name            string
		url, title, txt string
		want            bool
	}{
		{"matches a URL slug", "https://www.kit.edu/power-electronics/staff", "Team", "", true},
		{"matches the title", "https://www.kit.edu/staff", "Smart Grid Lab - Team", "", true},
		{"matches translated text", "https://www.tum.de/team", "Team", "Lehrstuhl für Leistungselektronik", true},
		{"rejects unrelated pages", "https://www.kit.edu/staff", "Faculty of Law", "Civil procedure and contract law", false},
		{"matches a short keyword as a word", "https://www.kit.edu/staff", "HIL Lab", "", true},
		{"matches a hyphenated keyword in a slug", "https://www.kit.edu/dc-dc-converters/team", "Team", "", true},
		{"matches a German compound", "https://www.tum.de/team", "Team", "Leistungselektronikgruppe", true},
		{"ignores short keywords inside words", "https://www.uchile.cl/philosophy/staff", "Philosophy", "Chile, Hilbert spaces and submissions", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ok, err := f.IsRelevant(context.Background(), tt.url, tt.title, tt.txt)

			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
		})
	}
}
