package text

import (
	"strings"
	"unicode/utf8"
)

// similarityThreshold is the minimum score for two labels to be considered
// the same concept. Strictly greater wins: a pair scoring exactly 0.6 is
// not a match.
const similarityThreshold = 0.6

// maxLengthDelta is the widest rune-length gap a non-substring pair may
// have and still be scored.
const maxLengthDelta = 2

// FindSimilar returns the labels from existing that plausibly name the same
// concept as candidate, in the order existing provides them. Comparison is
// case-insensitive. A cheap pre-filter (substring containment or near-equal
// length) decides which pairs are worth scoring at all, so a pair that
// fails it is never considered regardless of its edit distance.
func FindSimilar(candidate string, existing []string) []string {
	candidateLower := strings.ToLower(candidate)
	candidateLen := utf8.RuneCountInString(candidateLower)

	var similar []string
	for _, label := range existing {
		labelLower := strings.ToLower(label)

		contained := strings.Contains(candidateLower, labelLower) ||
			strings.Contains(labelLower, candidateLower)
		delta := utf8.RuneCountInString(labelLower) - candidateLen
		if delta < 0 {
			delta = -delta
		}
		if !contained && delta > maxLengthDelta {
			continue
		}

		if Similarity(candidateLower, labelLower) > similarityThreshold {
			similar = append(similar, label)
		}
	}

	return similar
}
