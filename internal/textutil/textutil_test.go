package textutil

import (
	"math"
	"reflect"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "accents and punctuation", in: "J’ai besoin d'un Café!", want: "jai besoin dun cafe"},
		{name: "dashes", in: "check‑in — desk", want: "checkin desk"},
		{name: "whitespace", in: "  a \t  b\n", want: "a b"},
		{name: "persian untouched", in: "قهوه ساده", want: "قهوه ساده"},
		{name: "empty", in: "", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.in); got != tt.want {
				t.Fatalf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		text string
		lang string
		want []string
	}{
		{name: "english", text: "I need a coffee, please.", lang: "en", want: []string{"coffee"}},
		{name: "french accented stopwords", text: "Vous êtes à la pharmacie", lang: "fr", want: []string{"pharmacie"}},
		{name: "german", text: "Ich möchte einen Kaffee bitte", lang: "de-DE", want: []string{"kaffee"}},
		{name: "unsupported falls back to english", text: "the boarding pass", lang: "es", want: []string{"boarding", "pass"}},
		{name: "french elision", text: "Où est l'arrêt de bus ?", lang: "fr", want: []string{"arret", "bus"}},
		{name: "english contraction", text: "I don't need a receipt", lang: "en", want: []string{"receipt"}},
		{name: "empty", text: "", lang: "en", want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.text, tt.lang)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("Tokenize(%q, %q) = %#v, want %#v", tt.text, tt.lang, got, tt.want)
			}
		})
	}
}

func TestGuessLanguage(t *testing.T) {
	tests := map[string]string{
		"قهوه لطفا":              "fa",
		"Je voudrais une table": "fr",
		"Ich habe die Karte":     "de",
		"Where is the gate?":     "en",
	}
	for text, want := range tests {
		if got := GuessLanguage(text); got != want {
			t.Errorf("GuessLanguage(%q) = %q, want %q", text, got, want)
		}
	}
}

func TestTrigramSimilarity(t *testing.T) {
	if got := TrigramSimilarity("espresso", "Espresso"); got != 1 {
		t.Fatalf("identical strings similarity = %v, want 1", got)
	}
	typo := TrigramSimilarity("expreso", "espresso")
	if typo <= 0 || typo >= 1 {
		t.Fatalf("typo similarity = %v, want in (0,1)", typo)
	}
	if a, b := TrigramSimilarity("passport", "pasport"), TrigramSimilarity("pasport", "passport"); math.Abs(a-b) > 1e-12 {
		t.Fatalf("similarity not symmetric: %v vs %v", a, b)
	}
	if got := TrigramSimilarity("bank", "zzzz"); got >= 0.62 {
		t.Fatalf("unrelated similarity = %v, want below match threshold", got)
	}
}

func TestTrigramsPadding(t *testing.T) {
	grams := Trigrams("ab")
	for _, g := range []string{"  a", " ab", "ab ", "b  "} {
		if _, ok := grams[g]; !ok {
			t.Fatalf("missing trigram %q in %v", g, grams)
		}
	}
	if len(grams) != 4 {
		t.Fatalf("expected 4 trigrams, got %d", len(grams))
	}
}

func TestSlug(t *testing.T) {
	tests := map[string]string{
		"A1 Cafe Scenario": "a1_cafe_scenario",
		"  ":               "output",
		"Café/Bar #1":      "cafbar_1",
		"already-ok_name":  "already-ok_name",
	}
	for in, want := range tests {
		if got := Slug(in); got != want {
			t.Errorf("Slug(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSanitizeTag(t *testing.T) {
	tests := map[string]string{
		"Coffee":                        "coffee",
		" check-in ":                    "check-in",
		"x":                             "",
		"a_very_long_tag_that_overflows": "",
		"café!":                         "café",
	}
	for in, want := range tests {
		if got := SanitizeTag(in); got != want {
			t.Errorf("SanitizeTag(%q) = %q, want %q", in, got, want)
		}
	}
}
