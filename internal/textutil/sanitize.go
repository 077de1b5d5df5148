package textutil

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// fileNameReplacer replaces filesystem-unsafe characters with safe alternatives.
var fileNameReplacer = strings.NewReplacer(
	"/", "-",
	"\\", "-",
	":", "-",
	"*", "-",
	"?", "",
	"\"", "",
	"<", "",
	">", "",
	"|", "",
)

// SanitizeFileName replaces filesystem-unsafe characters in a filename.
// Slashes, backslashes, colons, and asterisks become dashes; other unsafe
// characters are removed. The result is trimmed of leading/trailing whitespace.
func SanitizeFileName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	return strings.TrimSpace(fileNameReplacer.Replace(name))
}

// SanitizeToken converts a string to a lowercase filesystem-safe token.
// Letters are lowercased, digits and hyphens/underscores are kept, everything
// else becomes an underscore. Returns "unknown" for empty input.
func SanitizeToken(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return "unknown"
	}
	var b strings.Builder
	for _, r := range value {
		switch {
		case r >= 'a' && r <= 'z':
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r + ('a' - 'A'))
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '-' || r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	out := strings.Trim(b.String(), "_-")
	if out == "" {
		return "unknown"
	}
	return out
}

var (
	slugSpacePattern   = regexp.MustCompile(`\s+`)
	slugInvalidPattern = regexp.MustCompile(`[^a-z0-9_\-]+`)
)

// Slug converts a title into an output file stem: lowercase, whitespace
// becomes underscores, anything outside [a-z0-9_-] is removed. Returns
// "output" when nothing survives.
func Slug(value string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	value = slugSpacePattern.ReplaceAllString(value, "_")
	value = slugInvalidPattern.ReplaceAllString(value, "")
	if value == "" {
		return "output"
	}
	return value
}

// SanitizeTag lowercases a visual hint tag and keeps only letters, digits,
// and hyphens. Tags outside 2..24 characters yield "".
func SanitizeTag(tag string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(tag)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' {
			b.WriteRune(r)
		}
	}
	out := b.String()
	if n := utf8.RuneCountInString(out); n < 2 || n > 24 {
		return ""
	}
	return out
}
