package text

// Similarity scores how close two labels are on a 0.0 to 1.0 scale using
// Levenshtein distance normalized by the longer label's rune length.
// Two empty labels are identical (1.0); empty versus non-empty shares
// nothing (0.0).
func Similarity(a, b string) float64 {
	ra := []rune(a)
	rb := []rune(b)

	maxLen := len(ra)
	if len(rb) > maxLen {
		maxLen = len(rb)
	}
	if maxLen == 0 {
		return 1.0
	}
	if len(ra) == 0 || len(rb) == 0 {
		return 0.0
	}

	distance := levenshtein(ra, rb)
	return 1.0 - float64(distance)/float64(maxLen)
}

// levenshtein computes the edit distance between two rune slices with the
// classic dynamic programming matrix. Costs are 1 for insert, delete and
// substitute.
func levenshtein(a, b []rune) int {
	matrix := make([][]int, len(a)+1)
	for i := range matrix {
		matrix[i] = make([]int, len(b)+1)
		matrix[i][0] = i
	}
	for j := 0; j <= len(b); j++ {
		matrix[0][j] = j
	}

	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			matrix[i][j] = min(
				matrix[i-1][j]+1,      // deletion
				matrix[i][j-1]+1,      // insertion
				matrix[i-1][j-1]+cost, // substitution
			)
		}
	}

	return matrix[len(a)][len(b)]
}
