package queryplan

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode"

	"lingoreel/internal/lexicon"
	"lingoreel/internal/textutil"
)

const (
	// DefaultReferencePattern matches scenario reference texts such as
	// "A1_cafe.txt".
	DefaultReferencePattern = "A*_*.txt"

	maxTermsPerDomain = 200
	minTermFrequency  = 2
	minTermRunes      = 3
	maxHints          = 20
)

// TermSource is one reference text.
type TermSource struct {
	Name string
	Text string
}

// TermTable holds per-domain vocabulary mined from reference texts.
type TermTable struct {
	terms map[lexicon.Domain][]string
}

// NewTermTable wraps precomputed terms. Slices are copied and sorted.
func NewTermTable(terms map[lexicon.Domain][]string) *TermTable {
	t := &TermTable{terms: make(map[lexicon.Domain][]string, len(terms))}
	for domain, list := range terms {
		cp := append([]string(nil), list...)
		sort.Strings(cp)
		t.terms[domain] = cp
	}
	return t
}

// BuildTermTable counts informative tokens per domain and keeps the most
// frequent ones that appear at least twice. Each line is tokenized with the
// stopwords of its own guessed language.
func BuildTermTable(sources []TermSource) *TermTable {
	counts := make(map[lexicon.Domain]map[string]int)
	for _, src := range sources {
		domain := DomainFromFileName(src.Name)
		if counts[domain] == nil {
			counts[domain] = make(map[string]int)
		}
		for _, line := range strings.Split(src.Text, "\n") {
			lang := textutil.GuessLanguage(" " + line + " ")
			for _, tok := range textutil.Tokenize(line, lang) {
				if isDigits(tok) {
					continue
				}
				counts[domain][tok]++
			}
		}
	}

	terms := make(map[lexicon.Domain][]string, len(counts))
	for domain, counter := range counts {
		type termCount struct {
			term  string
			count int
		}
		ranked := make([]termCount, 0, len(counter))
		for term, n := range counter {
			ranked = append(ranked, termCount{term, n})
		}
		sort.Slice(ranked, func(i, j int) bool {
			if ranked[i].count != ranked[j].count {
				return ranked[i].count > ranked[j].count
			}
			return ranked[i].term < ranked[j].term
		})
		if len(ranked) > maxTermsPerDomain {
			ranked = ranked[:maxTermsPerDomain]
		}
		var keep []string
		for _, rc := range ranked {
			if rc.count >= minTermFrequency && len([]rune(rc.term)) >= minTermRunes {
				keep = append(keep, rc.term)
			}
		}
		if len(keep) > 0 {
			terms[domain] = keep
		}
	}
	return NewTermTable(terms)
}

// LoadTermTable reads every file matching pattern in dirs. Missing
// directories are skipped; unreadable files are reported.
func LoadTermTable(dirs []string, pattern string) (*TermTable, error) {
	if pattern == "" {
		pattern = DefaultReferencePattern
	}
	var sources []TermSource
	seen := make(map[string]struct{})
	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, fmt.Errorf("glob reference texts: %w", err)
		}
		sort.Strings(matches)
		for _, path := range matches {
			abs, err := filepath.Abs(path)
			if err == nil {
				path = abs
			}
			if _, ok := seen[path]; ok {
				continue
			}
			seen[path] = struct{}{}
			data, err := os.ReadFile(path)
			if err != nil {
				return nil, fmt.Errorf("read reference text %q: %w", path, err)
			}
			sources = append(sources, TermSource{Name: filepath.Base(path), Text: string(data)})
		}
	}
	return BuildTermTable(sources), nil
}

// Hints returns up to 20 mined terms for domain in sorted order.
func (t *TermTable) Hints(domain lexicon.Domain) []string {
	if t == nil {
		return nil
	}
	list := t.terms[domain]
	if len(list) > maxHints {
		list = list[:maxHints]
	}
	return append([]string(nil), list...)
}

// Domains reports how many terms were mined per domain.
func (t *TermTable) Domains() map[lexicon.Domain]int {
	out := make(map[lexicon.Domain]int)
	if t == nil {
		return out
	}
	for d, list := range t.terms {
		out[d] = len(list)
	}
	return out
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
