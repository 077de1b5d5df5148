package textutil

import "strings"

var stopwordLists = map[string][]string{
	"en": {
		"the", "a", "an", "and", "or", "but", "in", "on", "at", "for", "with", "to", "of", "is", "are", "was", "were",
		"this", "that", "these", "those", "please", "can", "could", "you", "i", "it", "my", "your", "me", "we", "they",
		"do", "have", "has", "am", "be", "been", "being", "will", "would", "should", "may", "might",
		"make", "made", "take", "bring", "need", "want", "like", "show", "explain", "print", "charge", "put", "add",
		"less", "more", "without", "no", "not", "isn", "aren", "does", "did", "doesn", "don", "cannot", "ok",
		"size", "small", "medium", "large", "here", "there", "set", "card", "cash", "by", "from",
	},
	"fr": {
		"je", "tu", "il", "elle", "nous", "vous", "ils", "elles", "de", "des", "du", "le", "la", "les",
		"un", "une", "et", "ou", "mais", "dans", "en", "au", "aux", "avec", "pour", "par", "sur", "sous",
		"ce", "cet", "cette", "ces", "mon", "ma", "mes", "ton", "ta", "tes", "son", "sa", "ses", "leur", "leurs",
		"est", "suis", "es", "sommes", "êtes", "sont", "ne", "pas", "que", "qui", "quoi", "où", "quand", "comment",
		"aujourd’hui", "d", "l", "n", "c", "j", "t", "s", "moi", "toi", "lui", "y", "bien",
		"svp", "s’il", "plaît", "veuillez", "faire", "mettre", "prendre", "apporter", "besoin", "voudrais",
		"taille", "petite", "moyenne", "grande", "ici", "là", "place", "à", "emporter", "carte", "espèces",
	},
	"de": {
		"der", "die", "das", "ein", "eine", "einen", "einem", "einer", "und", "oder", "aber", "in", "auf", "an", "bei",
		"für", "mit", "zu", "von", "ist", "sind", "war", "waren", "bitte", "kann", "können", "könnten", "sie", "ich", "es",
		"mein", "meine", "dein", "deine", "ihr", "ihre", "unser", "unsere", "dies", "diese", "jene",
		"machen", "nehmen", "bringen", "brauche", "möchte", "mag", "zeigen", "erklären", "drucken", "belasten", "geben",
		"weniger", "mehr", "ohne", "nicht", "größe", "kleine", "mittlere", "große", "hier", "da", "karte", "bar",
	},
	"fa": {
		"و", "در", "به", "از", "که", "این", "آن", "برای", "با", "یا", "اما", "یک", "هم", "را", "تا", "ما", "شما",
		"او", "ایشان", "همه", "هر", "لطفاً", "خواهش", "می", "شود", "کنید", "است", "هستم", "هستید",
	},
}

// Stopword sets are keyed by normalized form so accented entries still match
// normalized tokens.
var stopwordSets = func() map[string]map[string]struct{} {
	sets := make(map[string]map[string]struct{}, len(stopwordLists))
	for lang, words := range stopwordLists {
		set := make(map[string]struct{}, len(words)*2)
		for _, w := range words {
			set[w] = struct{}{}
			if n := Normalize(w); n != "" {
				set[n] = struct{}{}
			}
		}
		sets[lang] = set
	}
	return sets
}()

// StopwordLanguage maps a language code to the stopword table used for it.
func StopwordLanguage(lang string) string {
	lang = strings.ToLower(strings.TrimSpace(lang))
	for _, prefix := range []string{"fr", "de", "fa"} {
		if strings.HasPrefix(lang, prefix) {
			return prefix
		}
	}
	return "en"
}

// IsStopword reports whether word is a stopword for lang.
func IsStopword(word, lang string) bool {
	_, ok := stopwordSets[StopwordLanguage(lang)][word]
	return ok
}
