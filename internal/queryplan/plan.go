package queryplan

import (
	"regexp"
	"strings"

	"lingoreel/internal/lexicon"
)

const (
	// DefaultMaxQueryTokens caps sentence tokens used in a literal query.
	DefaultMaxQueryTokens = 6
	// DefaultMaxFallbacks caps plan entries after the primary query.
	DefaultMaxFallbacks = 8

	maxAlternateHits = 3
	maxPrefixedHints = 3
)

var asciiToken = regexp.MustCompile(`^[a-z0-9]+$`)

// Entry is one search attempt: a query string plus an optional provider
// category hint.
type Entry struct {
	Query    string
	Category string
}

// Plan is the ordered fallback list for one sentence.
type Plan struct {
	Entries  []Entry
	Domain   lexicon.Domain
	Category string
	Hits     []string
	Tokens   []string
}

// Primary returns the first entry. Plans from Build are never empty.
func (p Plan) Primary() Entry {
	if len(p.Entries) == 0 {
		return Entry{Query: Anchors(lexicon.DomainGeneric)[0]}
	}
	return p.Entries[0]
}

// Builder derives query plans from sentences.
type Builder struct {
	matcher      *lexicon.Matcher
	terms        *TermTable
	maxTokens    int
	maxFallbacks int
}

// Option customizes a Builder.
type Option func(*Builder)

// WithMaxQueryTokens caps the informative tokens used in literal queries.
func WithMaxQueryTokens(n int) Option {
	return func(b *Builder) {
		if n > 0 {
			b.maxTokens = n
		}
	}
}

// WithMaxFallbacks caps the number of entries after the primary query.
func WithMaxFallbacks(n int) Option {
	return func(b *Builder) {
		if n >= 0 {
			b.maxFallbacks = n
		}
	}
}

// NewBuilder wires a matcher and a mined term table. Either may be nil.
func NewBuilder(matcher *lexicon.Matcher, terms *TermTable, opts ...Option) *Builder {
	if matcher == nil {
		matcher = lexicon.NewMatcher(nil)
	}
	b := &Builder{
		matcher:      matcher,
		terms:        terms,
		maxTokens:    DefaultMaxQueryTokens,
		maxFallbacks: DefaultMaxFallbacks,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build returns the query plan for sentence in lang.
func (b *Builder) Build(sentence, lang string) Plan {
	analysis := b.matcher.Analyze(sentence, lang)
	tokens := analysis.Tokens

	plan := Plan{Domain: lexicon.DomainGeneric, Hits: analysis.Keys(), Tokens: tokens}
	var primary string
	if len(analysis.Hits) > 0 {
		first := analysis.Hits[0].Concept
		primary = first.Query
		plan.Category = first.Category
		plan.Domain = first.Domain
	} else {
		plan.Domain = GuessDomain(tokens)
		primary = b.literalQuery(tokens, plan.Domain)
	}

	anchors := Anchors(plan.Domain)
	hints := b.terms.Hints(plan.Domain)

	candidates := []Entry{{Query: primary, Category: plan.Category}}
	for i, hit := range analysis.Hits {
		if i >= maxAlternateHits {
			break
		}
		candidates = append(candidates, Entry{Query: hit.Concept.Query, Category: hit.Concept.Category})
	}

	literal := asciiPhrase(tokens)
	if literal != "" {
		candidates = append(candidates, Entry{Query: literal, Category: plan.Category})
	}
	for _, a := range anchors {
		candidates = append(candidates, Entry{Query: joinNonEmpty(literal, a), Category: plan.Category})
	}
	for i, h := range hints {
		if i >= maxPrefixedHints {
			break
		}
		candidates = append(candidates, Entry{Query: joinNonEmpty(literal, h), Category: plan.Category})
	}
	for _, q := range append(anchors, hints...) {
		candidates = append(candidates, Entry{Query: q, Category: plan.Category})
	}

	plan.Entries = dedupe(candidates, 1+b.maxFallbacks)
	if len(plan.Entries) == 0 {
		plan.Entries = []Entry{{Query: Anchors(lexicon.DomainGeneric)[0]}}
	}
	return plan
}

// literalQuery is the primary query when no concept matched: capped
// informative tokens, the first anchor, and the first mined term.
func (b *Builder) literalQuery(tokens []string, domain lexicon.Domain) string {
	informative := tokens
	if len(informative) > b.maxTokens {
		informative = informative[:b.maxTokens]
	}
	parts := append([]string(nil), informative...)
	parts = append(parts, Anchors(domain)[0])
	if hints := b.terms.Hints(domain); len(hints) > 0 {
		parts = append(parts, hints[0])
	}
	return strings.Join(parts, " ")
}

func asciiPhrase(tokens []string) string {
	var words []string
	for _, tok := range tokens {
		if asciiToken.MatchString(tok) {
			words = append(words, tok)
		}
	}
	return strings.Join(words, " ")
}

func joinNonEmpty(prefix, s string) string {
	return strings.TrimSpace(prefix + " " + s)
}

func dedupe(entries []Entry, limit int) []Entry {
	seen := make(map[Entry]struct{}, len(entries))
	out := make([]Entry, 0, limit)
	for _, e := range entries {
		q := strings.TrimSpace(e.Query)
		if q == "" {
			continue
		}
		key := Entry{Query: strings.ToLower(q), Category: e.Category}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, Entry{Query: q, Category: e.Category})
		if len(out) >= limit {
			break
		}
	}
	return out
}
