// Package text implements concept label normalization and the similarity
// scoring used to deduplicate and connect concepts in the graph.
package text

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	// Leading enumeration debris the model tends to emit ("1.", "- ", "• ").
	listMarkerPattern = regexp.MustCompile(`^[\d\-\*•.)]+\s*`)
	whitespacePattern = regexp.MustCompile(`\s+`)
	// Everything outside word chars, whitespace and accented Spanish letters.
	symbolPattern = regexp.MustCompile(`(?i)[^\w\sáéíóúüñ]`)
)

// Normalize canonicalizes a raw concept label: strips leading list markers,
// collapses whitespace, uppercases the first letter (the rest is left as-is)
// and removes symbols that are not Spanish text. Node identity in the graph
// is defined over the normalized form.
func Normalize(raw string) string {
	if raw == "" {
		return ""
	}

	cleaned := strings.TrimSpace(raw)
	cleaned = listMarkerPattern.ReplaceAllString(cleaned, "")
	cleaned = strings.TrimSpace(whitespacePattern.ReplaceAllString(cleaned, " "))
	cleaned = upperFirst(cleaned)
	cleaned = symbolPattern.ReplaceAllString(cleaned, "")

	return strings.TrimSpace(cleaned)
}

// upperFirst uppercases only the first rune. strings.Title and friends
// would also touch the rest of the label, which must stay untouched so
// acronyms like "IA" survive.
func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
