package text

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty string", "", ""},
		{"whitespace only", "   ", ""},
		{"numbered list marker", "1. Tomate", "Tomate"},
		{"bullet and padding", "  3) café  ", "Café"},
		{"dash marker", "- viñeta", "Viñeta"},
		{"dot bullet with whitespace runs", "•   Inteligencia   artificial  ", "Inteligencia artificial"},
		{"trailing symbols", "hello!!", "Hello"},
		{"already normalized", "Rock and Roll", "Rock and Roll"},
		{"lowercase single word", "programación", "Programación"},
		{"uppercase survives", "MÚSICA", "MÚSICA"},
		{"interior symbols removed", "self-esteem", "Selfesteem"},
		{"digits only", "123", ""},
		// The marker pattern eats any leading digit run, even when it is
		// part of the word.
		{"leading digit inside word", "3d printing", "D printing"},
		// Leading inverted punctuation is not a list marker, so the
		// capitalization step lands on it and the symbol step removes it.
		{"leading inverted exclamation", "¡hola!", "hola"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestNormalizeStable(t *testing.T) {
	// Normalizing an already normalized label must not change it again,
	// otherwise node identity in the graph would drift.
	inputs := []string{
		"",
		"  3) café  ",
		"1. Tomate",
		"•   Inteligencia   artificial",
		"MÚSICA",
		"Rock and Roll",
		"viñeta",
		"3d printing",
	}

	for _, input := range inputs {
		once := Normalize(input)
		assert.Equal(t, once, Normalize(once), "input %q", input)
	}
}
