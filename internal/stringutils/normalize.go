package stringutils

import (
	"strings"
	"unicode"
)

// Normalize lower-cases s, strips everything except letters, digits and
// whitespace, and trims the result. Used for fuzzy question comparison.
func Normalize(s string) string {
	var builder strings.Builder
	builder.Grow(len(s))

	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			builder.WriteRune(r)
		}
	}

	return strings.TrimSpace(builder.String())
}

// CollapseWhitespace replaces every run of whitespace with a single space.
func CollapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
