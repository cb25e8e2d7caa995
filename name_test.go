package staffscout_test

import (
	"testing"

	"github.com/fwojciec/staffscout"
	"github.com/stretchr/testify/assert"
)

func TestVocabulary_SplitAcademicTitle(t *testing.T) {
	t.Parallel()

	v := staffscout.DefaultVocabulary()

	tests := []struct {
		raw       string
		wantTitle string
		wantRest  string
	}{
		{"Prof. Dr. John Smith", "Prof. Dr.", "John Smith"},
		{"Prof. Dr.-Ing. Jane Doe", "Prof. Dr.-Ing.", "Jane Doe"},
		{"Dr. rer. nat. Max Mustermann", "Dr. rer. nat.", "Max Mustermann"},
		{"Prof. Dr. h.c. Jane Doe", "Prof. Dr. h.c.", "Jane Doe"},
		{"Professor, Head of Lab", "Professor", "Head of Lab"},
		{"Professor of Power Electronics", "Professor", "of Power Electronics"},
		{"PhD", "PhD", ""},
		{"Drake Bell", "", "Drake Bell"},
		{"  John   Smith ", "", "John Smith"},
	}

	for _, tt := range tests {
		title, rest := v.SplitAcademicTitle(tt.raw)
		assert.Equal(t, tt.wantTitle, title, "title of %q", tt.raw)
		assert.Equal(t, tt.wantRest, rest, "rest of %q", tt.raw)
	}
}

func TestVocabulary_LooksLikeName(t *testing.T) {
	t.Parallel()

	v := staffscout.DefaultVocabulary()

	for _, s := range []string{
		"John Smith",
		"Prof. Dr. John Smith",
		"Dr. Smith",
		"Anna-Lena Müller",
		"Jean-Luc de la Fontaine",
	} {
		assert.True(t, v.LooksLikeName(s), "%q", s)
	}

	for _, s := range []string{
		"Email",
		"Team Members",
		"john.smith@uni.edu",
		"Room 101 Building",
		"Professor of Power Electronics",
		"JOHN SMITH",
		"Smith",
		"A Very Long Heading That Is Not A Name",
	} {
		assert.False(t, v.LooksLikeName(s), "%q", s)
	}
}

func TestCleanName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Max Mustermann", staffscout.CleanName("Herr Max Mustermann Tel. +49 721 608"))
	assert.Equal(t, "Jane Doe", staffscout.CleanName("Jane Doe (Secretary)"))
	assert.Equal(t, "Jane Doe", staffscout.CleanName("Jane Doe, E-Mail: jane@uni.edu"))
	assert.Equal(t, "Prof. Dr. John Smith", staffscout.CleanName("  Prof. Dr. John   Smith "))
}
