package textutil

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const minTokenRunes = 3

var (
	persianLetters  = regexp.MustCompile(`[اآبپتثجچحخدذرزژسشصضطظعغفقکگلمنوهی]`)
	elisionReplacer = strings.NewReplacer("'", " ", "’", " ")
)

// Words normalizes text and splits it into words. Apostrophes separate
// words, so "l'arrêt" yields "l" and "arret".
func Words(text string) []string {
	return strings.Fields(Normalize(elisionReplacer.Replace(text)))
}

// Tokenize normalizes text and returns the informative words for lang,
// dropping stopwords and tokens shorter than 3 characters.
func Tokenize(text, lang string) []string {
	words := Words(text)
	terms := make([]string, 0, len(words))
	for _, w := range words {
		if utf8.RuneCountInString(w) < minTokenRunes || IsStopword(w, lang) {
			continue
		}
		terms = append(terms, w)
	}
	return terms
}

// GuessLanguage returns a coarse language code for reference text: "fa" for
// Persian script, "fr" or "de" for common function words, else "en".
func GuessLanguage(text string) string {
	if persianLetters.MatchString(text) {
		return "fa"
	}
	lower := strings.ToLower(text)
	for _, w := range []string{" le ", " la ", " les ", " une ", " un ", " je ", "vous ", "s'il "} {
		if strings.Contains(lower, w) {
			return "fr"
		}
	}
	for _, w := range []string{" der ", " die ", " das ", " ich ", " bitte ", "karte "} {
		if strings.Contains(lower, w) {
			return "de"
		}
	}
	return "en"
}
