package lexicon

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"lingoreel/internal/textutil"
)

// Domain is the coarse scenario a concept belongs to. It selects anchor
// phrases and mined corpus terms.
type Domain string

const (
	DomainFood       Domain = "food"
	DomainAirport    Domain = "airport"
	DomainPharmacy   Domain = "pharmacy"
	DomainBank       Domain = "bank"
	DomainClothing   Domain = "clothing"
	DomainDirections Domain = "directions"
	DomainDoctor     Domain = "doctor"
	DomainHotel      Domain = "hotel"
	DomainPhone      Domain = "phone"
	DomainPost       Domain = "post"
	DomainGeneric    Domain = "generic"
)

// Domains lists every domain in a stable order.
func Domains() []Domain {
	return []Domain{
		DomainFood, DomainAirport, DomainPharmacy, DomainBank, DomainClothing,
		DomainDirections, DomainDoctor, DomainHotel, DomainPhone, DomainPost, DomainGeneric,
	}
}

// Concept is one canonical vocabulary entry.
type Concept struct {
	Key      string
	Domain   Domain
	Query    string
	Category string
	// Variants holds surface forms keyed by base language code.
	Variants map[string][]string
}

// surface is a compiled variant. words is the full normalized form used for
// modifier protection and exact matching; tokens follow the same stopword
// rules as sentences, in the variant's own language.
type surface struct {
	words    []string
	full     string
	tokens   []string
	trigrams map[string]struct{}
}

type compiledConcept struct {
	Concept
	index   int
	byLang  map[string][]surface
	english []surface
}

// Table is an immutable concept vocabulary. It is safe for concurrent use.
type Table struct {
	concepts  []compiledConcept
	byKey     map[string]int
	modifiers [][]string
	negators  map[string]struct{}
	protected [][]string
}

var (
	defaultOnce  sync.Once
	defaultTable *Table
)

// Default returns the built-in vocabulary.
func Default() *Table {
	defaultOnce.Do(func() {
		t, err := NewTable(defaultConcepts, defaultModifiers, defaultNegators)
		if err != nil {
			panic(fmt.Sprintf("lexicon: invalid built-in table: %v", err))
		}
		defaultTable = t
	})
	return defaultTable
}

// NewTable compiles concepts, modifier phrases, and negators into a Table.
// Concept keys must be unique and every concept needs a query template.
func NewTable(concepts []Concept, modifiers, negators []string) (*Table, error) {
	t := &Table{
		concepts: make([]compiledConcept, 0, len(concepts)),
		byKey:    make(map[string]int, len(concepts)),
		negators: make(map[string]struct{}, len(negators)),
	}
	for i, c := range concepts {
		key := strings.TrimSpace(c.Key)
		if key == "" {
			return nil, fmt.Errorf("concept %d: empty key", i)
		}
		if _, dup := t.byKey[key]; dup {
			return nil, fmt.Errorf("concept %q: duplicate key", key)
		}
		if strings.TrimSpace(c.Query) == "" {
			return nil, fmt.Errorf("concept %q: empty query template", key)
		}
		if c.Domain == "" {
			c.Domain = DomainGeneric
		}
		cc := compiledConcept{Concept: c, index: i, byLang: make(map[string][]surface, len(c.Variants))}
		for lang, variants := range c.Variants {
			cc.byLang[lang] = compileSurfaces(variants, lang)
		}
		cc.english = cc.byLang["en"]
		t.byKey[key] = len(t.concepts)
		t.concepts = append(t.concepts, cc)
	}

	for _, m := range modifiers {
		if words := textutil.Words(m); len(words) > 0 {
			t.modifiers = append(t.modifiers, words)
		}
	}
	// Longest phrases first so "with milk" wins over "milk".
	sort.SliceStable(t.modifiers, func(i, j int) bool {
		return len(t.modifiers[i]) > len(t.modifiers[j])
	})
	for _, n := range negators {
		if n = strings.Join(textutil.Words(n), " "); n != "" {
			t.negators[n] = struct{}{}
		}
	}
	t.protected = t.protectedPhrases()
	return t, nil
}

func compileSurfaces(variants []string, lang string) []surface {
	seen := make(map[string]struct{}, len(variants))
	out := make([]surface, 0, len(variants))
	for _, v := range variants {
		words := textutil.Words(v)
		if len(words) == 0 {
			continue
		}
		full := strings.Join(words, " ")
		if _, ok := seen[full]; ok {
			continue
		}
		seen[full] = struct{}{}
		tokens := textutil.Tokenize(v, lang)
		if len(tokens) == 0 {
			tokens = words
		}
		out = append(out, surface{
			words:    words,
			full:     full,
			tokens:   tokens,
			trigrams: textutil.Trigrams(strings.Join(tokens, " ")),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return len(out[i].full) > len(out[j].full) })
	return out
}

// protectedPhrases returns concept surface forms that contain a modifier,
// such as "black coffee" or "online banking". Modifier stripping leaves
// these intact.
func (t *Table) protectedPhrases() [][]string {
	var out [][]string
	seen := make(map[string]struct{})
	for _, c := range t.concepts {
		for _, surfaces := range c.byLang {
			for _, s := range surfaces {
				if _, ok := seen[s.full]; ok {
					continue
				}
				for _, m := range t.modifiers {
					if containsWords(s.words, m) {
						out = append(out, s.words)
						seen[s.full] = struct{}{}
						break
					}
				}
			}
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if len(out[i]) != len(out[j]) {
			return len(out[i]) > len(out[j])
		}
		return strings.Join(out[i], " ") < strings.Join(out[j], " ")
	})
	return out
}

// Len reports the number of concepts.
func (t *Table) Len() int { return len(t.concepts) }

// Concepts returns the concepts in declaration order.
func (t *Table) Concepts() []Concept {
	out := make([]Concept, len(t.concepts))
	for i, c := range t.concepts {
		out[i] = c.Concept
	}
	return out
}

// Lookup returns the concept registered under key.
func (t *Table) Lookup(key string) (Concept, bool) {
	i, ok := t.byKey[key]
	if !ok {
		return Concept{}, false
	}
	return t.concepts[i].Concept, true
}

// StripModifiers normalizes text and removes modifier phrases and negators
// outside protected concept phrases.
func (t *Table) StripModifiers(text string) string {
	words := textutil.Words(text)
	kept := make([]string, 0, len(words))
	for i := 0; i < len(words); {
		if p := longestPrefix(words[i:], t.protected); p > 0 {
			kept = append(kept, words[i:i+p]...)
			i += p
			continue
		}
		if p := longestPrefix(words[i:], t.modifiers); p > 0 {
			i += p
			continue
		}
		if _, neg := t.negators[words[i]]; neg {
			i++
			continue
		}
		kept = append(kept, words[i])
		i++
	}
	return strings.Join(kept, " ")
}

func longestPrefix(words []string, phrases [][]string) int {
	for _, p := range phrases {
		if hasWordPrefix(words, p) {
			return len(p)
		}
	}
	return 0
}

func hasWordPrefix(words, phrase []string) bool {
	if len(phrase) == 0 || len(phrase) > len(words) {
		return false
	}
	for i := range phrase {
		if words[i] != phrase[i] {
			return false
		}
	}
	return true
}

func containsWords(words, phrase []string) bool {
	for i := range words {
		if hasWordPrefix(words[i:], phrase) {
			return true
		}
	}
	return false
}
