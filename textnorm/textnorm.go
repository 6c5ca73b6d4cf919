// Package textnorm canonicalises whitespace in extracted text.
package textnorm

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	// blankLines matches a newline, any whitespace (Unicode separators and
	// the C0 information separators included), and another newline.
	blankLines = regexp.MustCompile(`\n[\s\v\x1c-\x1f\x{85}\p{Z}]*\n`)
	spaceRuns  = regexp.MustCompile(` {2,}`)
)

// Normalize collapses every blank-line run to exactly one blank line
// ("\n\n"), squeezes runs of U+0020 to a single space, and trims
// surrounding whitespace. It is pure and idempotent:
// Normalize(Normalize(s)) == Normalize(s).
func Normalize(s string) string {
	s = blankLines.ReplaceAllLiteralString(s, "\n\n")
	s = spaceRuns.ReplaceAllLiteralString(s, " ")
	return strings.TrimFunc(s, isSpace)
}

// isSpace agrees with the character class used by blankLines.
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}
