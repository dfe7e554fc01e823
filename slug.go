package nforeport

import (
	"strings"
	"unicode"
)

// Slug normalizes a display string into a URL/ID-safe anchor: every rune
// that is not a letter (any script), digit, hyphen, or whitespace is
// dropped, whitespace runs collapse to a single hyphen, and the result is
// lower-cased. Hyphens survive so Slug is idempotent.
//
// Slug is the single source of truth for anchors. The composer consults
// it when emitting contents links and the HTML fixup consults it again
// when injecting heading IDs, so generated links and generated IDs always
// agree regardless of the Markdown engine's own heading-ID rule.
func Slug(s string) string {
	mapped := strings.Map(func(r rune) rune {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), r == '-':
			return unicode.ToLower(r)
		case unicode.IsSpace(r):
			return r
		default:
			return -1
		}
	}, s)

	return strings.Join(strings.Fields(mapped), "-")
}
