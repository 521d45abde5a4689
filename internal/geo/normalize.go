package geo

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// deaccent strips combining marks: "Álava" -> "Alava", "Coruña" -> "Coruna".
var deaccent = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// articleRe matches the comma-inverted catalogue form used by INE and EFFIS,
// e.g. "palmas, las" or "rioja, la".
var articleRe = regexp.MustCompile(`^(.+?)\s*,\s*(la|el|los|las)$`)

// Normalize produces the canonical lookup form of a place name: lowercase,
// accents stripped, "<base>, <article>" rewritten to "<article> <base>", and
// everything that is not a letter or digit collapsed to single spaces.
// Normalizing an already-normalized string returns it unchanged.
func Normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ""
	}

	if out, _, err := transform.String(deaccent, s); err == nil {
		s = out
	}

	// Inverted article before punctuation collapse, while the comma is
	// still visible: "palmas, las" -> "las palmas".
	if m := articleRe.FindStringSubmatch(s); m != nil {
		s = m[2] + " " + m[1]
	}

	var b strings.Builder
	b.Grow(len(s))
	prevSpace := false
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			prevSpace = false
			continue
		}
		if !prevSpace {
			b.WriteByte(' ')
			prevSpace = true
		}
	}

	return strings.TrimSpace(b.String())
}
