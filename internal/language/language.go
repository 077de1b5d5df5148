package language

import (
	"strings"

	xlanguage "golang.org/x/text/language"
)

type entry struct {
	code    string   // canonical narration code (ISO 639-1 or regional)
	code3   string   // ISO 639-2
	display string   // human-readable name
	speech  string   // Google translate TTS "tl" value
	words   []string // full word forms
}

var languages = []entry{
	{"en", "eng", "English", "en", []string{"english"}},
	{"fr", "fra", "French", "fr", []string{"french", "fre"}},
	{"de", "deu", "German", "de", []string{"german", "ger"}},
	{"es", "spa", "Spanish", "es", []string{"spanish"}},
	{"it", "ita", "Italian", "it", []string{"italian"}},
	{"pt", "por", "Portuguese", "pt", []string{"portuguese"}},
	{"hi", "hin", "Hindi", "hi", []string{"hindi"}},
	{"zh-cn", "zho", "Chinese (Simplified)", "zh-CN", []string{"chinese", "zh", "chi"}},
	{"ru", "rus", "Russian", "ru", []string{"russian"}},
	// Google TTS has no Luxembourgish voice.
	{"lb", "ltz", "Luxembourgish", "en", []string{"luxembourgish"}},
	{"fa", "fas", "Persian", "fa", []string{"persian", "farsi", "per"}},
}

var (
	byCode map[string]*entry
	byWord map[string]*entry
)

func init() {
	byCode = make(map[string]*entry, len(languages)*2)
	byWord = make(map[string]*entry, len(languages)*3)
	for i := range languages {
		e := &languages[i]
		byCode[e.code] = e
		byCode[e.code3] = e
		for _, w := range e.words {
			byWord[w] = e
		}
	}
}

func clean(code string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(code)), "_", "-")
}

func lookup(code string) *entry {
	code = clean(code)
	if code == "" {
		return nil
	}
	if e, ok := byCode[code]; ok {
		return e
	}
	if e, ok := byWord[code]; ok {
		return e
	}
	return nil
}

// Canonical returns the configured narration code for any recognized form,
// or the cleaned input when unknown.
func Canonical(code string) string {
	if e := lookup(code); e != nil {
		return e.code
	}
	return clean(code)
}

// Base reduces a code to its primary language subtag ("zh-cn" -> "zh",
// "fr-FR" -> "fr"). Unparseable input is returned cleaned.
func Base(code string) string {
	cleaned := clean(code)
	if cleaned == "" {
		return ""
	}
	if e := lookup(cleaned); e != nil {
		cleaned = e.code
	}
	tag, err := xlanguage.Parse(cleaned)
	if err != nil {
		if i := strings.IndexByte(cleaned, '-'); i > 0 {
			return cleaned[:i]
		}
		return cleaned
	}
	base, _ := tag.Base()
	return base.String()
}

// Supported reports whether the code is one of the narration languages.
func Supported(code string) bool {
	return lookup(code) != nil
}

// SpeechCode returns the Google translate TTS language for a code, falling
// back to English for unknown languages.
func SpeechCode(code string) string {
	if e := lookup(code); e != nil {
		return e.speech
	}
	return "en"
}

// DisplayName returns a human-readable language name for any recognized code.
// Returns "Unknown" for empty input, or the uppercased code for unrecognized input.
func DisplayName(code string) string {
	if strings.TrimSpace(code) == "" {
		return "Unknown"
	}
	if e := lookup(code); e != nil {
		return e.display
	}
	return strings.ToUpper(strings.TrimSpace(code))
}

// NormalizeList canonicalizes and deduplicates a list of language codes,
// preserving order.
func NormalizeList(codes []string) []string {
	if len(codes) == 0 {
		return nil
	}
	normalized := make([]string, 0, len(codes))
	seen := make(map[string]struct{}, len(codes))
	for _, code := range codes {
		c := Canonical(code)
		if c == "" {
			continue
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		normalized = append(normalized, c)
	}
	return normalized
}
