// Package textnorm implements the text normalization used for every substring
// comparison in the graph view: NFD decomposition, removal of combining marks,
// case folding and trimming.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize returns s with diacritics stripped, case folded and surrounding
// whitespace removed. "  Investigación " becomes "investigacion".
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, s)
	if err != nil {
		stripped = s
	}
	return strings.TrimSpace(cases.Fold().String(stripped))
}

// Join normalizes the space-joined parts. Used to build a single search haystack
// out of several fields.
func Join(parts ...string) string {
	return Normalize(strings.Join(parts, " "))
}
