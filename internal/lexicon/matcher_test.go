package lexicon

import (
	"reflect"
	"testing"
)

func TestDefaultTableIsValid(t *testing.T) {
	table := Default()
	if table.Len() != 76 {
		t.Fatalf("expected 76 built-in concepts, got %d", table.Len())
	}
	for _, c := range table.Concepts() {
		if c.Query == "" {
			t.Errorf("concept %q has no query template", c.Key)
		}
		if len(c.Variants["en"]) == 0 {
			t.Errorf("concept %q has no english forms", c.Key)
		}
	}
	if c, ok := table.Lookup("passport"); !ok || c.Domain != DomainAirport || c.Category != "travel" {
		t.Fatalf("unexpected passport concept: %+v ok=%v", c, ok)
	}
}

func TestNewTableRejectsDuplicates(t *testing.T) {
	concepts := []Concept{
		{Key: "tea", Query: "tea cup"},
		{Key: "tea", Query: "tea pot"},
	}
	if _, err := NewTable(concepts, nil, nil); err == nil {
		t.Fatal("expected duplicate key error")
	}
	if _, err := NewTable([]Concept{{Key: "tea"}}, nil, nil); err == nil {
		t.Fatal("expected missing template error")
	}
}

func TestMatch(t *testing.T) {
	m := NewMatcher(nil)
	tests := []struct {
		name     string
		sentence string
		lang     string
		want     []string
	}{
		{name: "english phrase", sentence: "I would like an espresso, please.", lang: "en", want: []string{"espresso"}},
		{name: "ordered by offset", sentence: "Boarding pass then passport", lang: "en", want: []string{"boarding pass", "passport"}},
		{name: "french", sentence: "Je voudrais un café noir", lang: "fr", want: []string{"black coffee"}},
		{name: "modifier inside concept kept", sentence: "I want a black coffee", lang: "en", want: []string{"black coffee"}},
		{name: "persian", sentence: "یک اسپرسو لطفاً", lang: "fa", want: []string{"espresso"}},
		{name: "english bridge for unsupported language", sentence: "Un espresso por favor", lang: "es", want: []string{"espresso"}},
		{name: "regional code", sentence: "Wo ist die Apotheke?", lang: "de-AT", want: []string{"pharmacy interior"}},
		{name: "surface with stopword", sentence: "J'ai mal de gorge", lang: "fr", want: []string{"sore throat"}},
		{name: "elided article", sentence: "Où est l'arrêt de bus ?", lang: "fr", want: []string{"bus stop"}},
		{name: "short word in surface", sentence: "I want to check in now", lang: "en", want: []string{"check in"}},
		{name: "single word stays bill", sentence: "Can I have the check, please?", lang: "en", want: []string{"bill"}},
		{name: "wider phrase wins", sentence: "Je voudrais du sirop contre la toux", lang: "fr", want: []string{"cough syrup"}},
		{name: "empty", sentence: "", lang: "en", want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := m.Match(tt.sentence, tt.lang)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("Match(%q, %q) = %#v, want %#v", tt.sentence, tt.lang, got, tt.want)
			}
		})
	}
}

func TestMatchFuzzyFallback(t *testing.T) {
	m := NewMatcher(nil)
	analysis := m.Analyze("Where is my pasport", "en")
	if len(analysis.Hits) == 0 || analysis.Hits[0].Concept.Key != "passport" {
		t.Fatalf("expected passport via trigram fallback, got %#v", analysis.Keys())
	}
	if sim := analysis.Hits[0].Similarity; sim < DefaultTrigramThreshold || sim >= 1 {
		t.Fatalf("unexpected fuzzy similarity %v", sim)
	}

	strict := NewMatcher(nil, WithTrigramThreshold(0.95))
	if keys := strict.Match("Where is my pasport", "en"); len(keys) != 0 {
		t.Fatalf("strict matcher should not match, got %v", keys)
	}
}

func TestMatchIsDeterministic(t *testing.T) {
	m := NewMatcher(nil)
	sentence := "My suitcase, passport and boarding pass are at the check-in counter"
	first := m.Match(sentence, "en")
	for i := 0; i < 20; i++ {
		if got := m.Match(sentence, "en"); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d returned %v, first run %v", i, got, first)
		}
	}
	if len(first) < 3 {
		t.Fatalf("expected several hits, got %v", first)
	}
}

func TestStripModifiers(t *testing.T) {
	table := Default()
	tests := map[string]string{
		"Coffee with milk and no sugar": "coffee and",
		"black coffee":                  "black coffee",
		"a black jacket":                "a jacket",
		"Online banking, please":        "online banking please",
	}
	for in, want := range tests {
		if got := table.StripModifiers(in); got != want {
			t.Errorf("StripModifiers(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestResolveLanguage(t *testing.T) {
	if got := ResolveLanguage("Je voudrais une table", "auto"); got != "fr" {
		t.Fatalf("auto french = %q", got)
	}
	if got := ResolveLanguage("anything", "zh-cn"); got != "zh" {
		t.Fatalf("zh-cn base = %q", got)
	}
	if got := ResolveLanguage("hello there", ""); got != "en" {
		t.Fatalf("empty code = %q", got)
	}
}
