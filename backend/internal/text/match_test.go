package text

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFindSimilarCloseMatch(t *testing.T) {
	got := FindSimilar("gato", []string{"Gata", "Perro"})
	assert.Equal(t, []string{"Gata"}, got)
}

func TestFindSimilarCaseInsensitive(t *testing.T) {
	got := FindSimilar("GATO", []string{"gata"})
	assert.Equal(t, []string{"gata"}, got)
}

func TestFindSimilarThresholdIsStrict(t *testing.T) {
	// lev("mango", "manta") is 2 over length 5, exactly 0.6. That must
	// not match; "manga" at 0.8 must.
	got := FindSimilar("mango", []string{"Manta", "Manga"})
	assert.Equal(t, []string{"Manga"}, got)
}

func TestFindSimilarSubstringBypassesLengthGate(t *testing.T) {
	// "gato" is contained in "gatos", so the pair is scored despite any
	// length difference, and 0.8 clears the threshold.
	assert.Equal(t, []string{"Gatos"}, FindSimilar("gato", []string{"Gatos"}))

	// Containment only earns the pair a score, not a match: the distance
	// between "programación" and the longer phrase is too large.
	assert.Empty(t, FindSimilar("programación avanzada", []string{"Programación"}))
}

func TestFindSimilarLengthGateBlocksScoring(t *testing.T) {
	candidate := "aaaaaaaaaab"
	existing := "aaaaaaaaaacccc"

	// The pair would clear the threshold if it were ever scored.
	assert.Greater(t, Similarity(strings.ToLower(candidate), strings.ToLower(existing)), 0.6)

	// But with no containment and a length gap over two runes it is
	// filtered out before scoring.
	assert.Empty(t, FindSimilar(candidate, []string{existing}))
}

func TestFindSimilarPreservesOrder(t *testing.T) {
	got := FindSimilar("gato", []string{"Pato", "Gato", "Gata"})
	assert.Equal(t, []string{"Pato", "Gato", "Gata"}, got)
}

func TestFindSimilarIncludesExactLabel(t *testing.T) {
	// The candidate's own label scores 1.0 and is reported like any other
	// match; callers linking nodes skip it themselves.
	got := FindSimilar("gato", []string{"Gato"})
	assert.Equal(t, []string{"Gato"}, got)
}

func TestFindSimilarEmptyInputs(t *testing.T) {
	assert.Empty(t, FindSimilar("gato", nil))
	assert.Empty(t, FindSimilar("", []string{"Gato", "Perro"}))
}
