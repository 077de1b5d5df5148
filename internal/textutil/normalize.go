package textutil

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	dashReplacer = strings.NewReplacer(
		"’", "'",
		"‑", "-",
		"–", "-",
		"—", "-",
	)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// asciiPunctuation mirrors the printable ASCII punctuation set.
const asciiPunctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// StripAccents decomposes text and drops combining marks.
func StripAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// Normalize lowercases text, folds typographic dashes and apostrophes,
// strips accents and ASCII punctuation, and collapses whitespace.
func Normalize(s string) string {
	s = dashReplacer.Replace(s)
	s = StripAccents(strings.ToLower(s))
	s = strings.Map(func(r rune) rune {
		if r < 0x80 && strings.ContainsRune(asciiPunctuation, r) {
			return -1
		}
		return r
	}, s)
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(s, " "))
}

// CollapseSpaces trims s and reduces internal whitespace runs to one space.
func CollapseSpaces(s string) string {
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(s, " "))
}
