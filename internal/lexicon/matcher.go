package lexicon

import (
	"sort"
	"strings"

	"lingoreel/internal/language"
	"lingoreel/internal/textutil"
)

// DefaultTrigramThreshold is the minimum trigram similarity for a
// typo-tolerant concept match.
const DefaultTrigramThreshold = 0.62

// Hit is one concept evidenced by a sentence.
type Hit struct {
	Concept Concept
	// Offset is the byte position of the earliest match in the joined
	// token string.
	Offset int
	// Similarity is 1 for phrase matches and the trigram score otherwise.
	Similarity float64
}

// Analysis is the matcher's view of one sentence.
type Analysis struct {
	Lang   string
	Tokens []string
	Hits   []Hit
}

// Keys returns the hit concept keys in order.
func (a Analysis) Keys() []string {
	keys := make([]string, len(a.Hits))
	for i, h := range a.Hits {
		keys[i] = h.Concept.Key
	}
	return keys
}

// Matcher evidences canonical concepts in sentences.
type Matcher struct {
	table     *Table
	threshold float64
}

// Option customizes a Matcher.
type Option func(*Matcher)

// WithTrigramThreshold overrides the fuzzy match threshold.
func WithTrigramThreshold(v float64) Option {
	return func(m *Matcher) {
		if v > 0 && v <= 1 {
			m.threshold = v
		}
	}
}

// NewMatcher builds a matcher over table. A nil table uses Default().
func NewMatcher(table *Table, opts ...Option) *Matcher {
	if table == nil {
		table = Default()
	}
	m := &Matcher{table: table, threshold: DefaultTrigramThreshold}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Table exposes the vocabulary backing the matcher.
func (m *Matcher) Table() *Table { return m.table }

// ResolveLanguage returns the base language used for matching. An empty or
// "auto" code is guessed from the sentence.
func ResolveLanguage(sentence, lang string) string {
	lang = strings.TrimSpace(lang)
	if lang == "" || strings.EqualFold(lang, "auto") {
		lang = textutil.GuessLanguage(sentence)
	}
	if base := language.Base(lang); base != "" {
		return base
	}
	return "en"
}

// Match returns the concept keys evidenced by sentence.
func (m *Matcher) Match(sentence, lang string) []string {
	return m.Analyze(sentence, lang).Keys()
}

// Analyze tokenizes sentence and returns its concept hits.
func (m *Matcher) Analyze(sentence, lang string) Analysis {
	code := ResolveLanguage(sentence, lang)
	stripped := m.table.StripModifiers(sentence)
	tokens := textutil.Tokenize(stripped, code)
	analysis := Analysis{Lang: code, Tokens: tokens}
	if len(tokens) == 0 {
		return analysis
	}

	hits := m.phraseHits(tokens, " "+stripped+" ", code)
	if len(hits) == 0 {
		hits = m.fuzzyHits(tokens, code)
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Offset < hits[j].Offset })
	analysis.Hits = hits
	return analysis
}

func (m *Matcher) surfaces(c *compiledConcept, code string) []surface {
	own := c.byLang[code]
	if code == "en" {
		return own
	}
	out := make([]surface, 0, len(own)+len(c.english))
	out = append(out, own...)
	return append(out, c.english...)
}

// phraseMatch locates one concept in the token stream. exact reports that
// the full surface form, stopwords included, appears in the sentence.
type phraseMatch struct {
	hit        Hit
	start, end int
	exact      bool
	words      int
}

func (p phraseMatch) width() int { return p.end - p.start }

// outranks orders two matches over the same tokens: exact forms first, then
// the longer surface form.
func (p phraseMatch) outranks(q phraseMatch) bool {
	if p.exact != q.exact {
		return p.exact
	}
	return p.words > q.words
}

func (p phraseMatch) before(q phraseMatch) bool {
	if p.start != q.start {
		return p.start < q.start
	}
	if p.end != q.end {
		return p.end > q.end
	}
	return p.outranks(q)
}

// phraseHits matches surface tokens against sentence tokens. A hit whose
// tokens lie inside a wider hit, or inside an equal hit that outranks it, is
// dropped, so "sirop contre la toux" is cough syrup and not cough.
func (m *Matcher) phraseHits(tokens []string, padded, code string) []Hit {
	offsets := tokenOffsets(tokens)
	var found []phraseMatch
	for i := range m.table.concepts {
		c := &m.table.concepts[i]
		var best phraseMatch
		ok := false
		for _, s := range m.surfaces(c, code) {
			start := indexTokens(tokens, s.tokens)
			if start < 0 {
				continue
			}
			cand := phraseMatch{
				start: start,
				end:   start + len(s.tokens),
				exact: strings.Contains(padded, " "+s.full+" "),
				words: len(s.words),
			}
			if !ok || cand.before(best) {
				best, ok = cand, true
			}
		}
		if ok {
			best.hit = Hit{Concept: c.Concept, Offset: offsets[best.start], Similarity: 1}
			found = append(found, best)
		}
	}

	hits := make([]Hit, 0, len(found))
	for i, p := range found {
		if !covered(found, i) {
			hits = append(hits, p.hit)
		}
	}
	return hits
}

func covered(found []phraseMatch, i int) bool {
	p := found[i]
	for j, q := range found {
		if j == i || q.start > p.start || q.end < p.end {
			continue
		}
		if q.width() > p.width() || q.outranks(p) {
			return true
		}
	}
	return false
}

func indexTokens(tokens, phrase []string) int {
	for i := range tokens {
		if hasWordPrefix(tokens[i:], phrase) {
			return i
		}
	}
	return -1
}

func tokenOffsets(tokens []string) []int {
	offsets := make([]int, len(tokens))
	pos := 0
	for i, tok := range tokens {
		offsets[i] = pos
		pos += len(tok) + 1
	}
	return offsets
}

func (m *Matcher) fuzzyHits(tokens []string, code string) []Hit {
	offsets := tokenOffsets(tokens)
	grams := make([]map[string]struct{}, len(tokens))
	for i, tok := range tokens {
		grams[i] = textutil.Trigrams(tok)
	}

	var hits []Hit
	for i := range m.table.concepts {
		c := &m.table.concepts[i]
		best, bestTok := 0.0, -1
		for _, s := range m.surfaces(c, code) {
			for ti := range tokens {
				if sim := textutil.Jaccard(grams[ti], s.trigrams); sim > best {
					best, bestTok = sim, ti
				}
			}
		}
		if bestTok >= 0 && best >= m.threshold {
			hits = append(hits, Hit{Concept: c.Concept, Offset: offsets[bestTok], Similarity: best})
		}
	}
	return hits
}
