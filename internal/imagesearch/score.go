package imagesearch

import (
	"sort"
	"strings"
	"unicode/utf8"

	"lingoreel/internal/textutil"
)

// DefaultTagThreshold is the minimum tag/query trigram similarity that
// earns a boost.
const DefaultTagThreshold = 0.25

// Policy holds the tunable ranking knobs. The base overlap score is shared
// by every provider; the boosts are provider-specific.
type Policy struct {
	TagThreshold float64
	// PhotoTypeBoost multiplies Pixabay hits whose type is "photo".
	PhotoTypeBoost float64
	// LikesCap and LikesDivisor shape Unsplash's popularity boost:
	// score *= 1 + min(likes, LikesCap)/LikesDivisor.
	LikesCap     int
	LikesDivisor float64
}

// DefaultPolicy returns the stock ranking policy.
func DefaultPolicy() Policy {
	return Policy{
		TagThreshold:   DefaultTagThreshold,
		PhotoTypeBoost: 1.05,
		LikesCap:       200,
		LikesDivisor:   500,
	}
}

func (p Policy) withDefaults() Policy {
	d := DefaultPolicy()
	if p.TagThreshold <= 0 {
		p.TagThreshold = d.TagThreshold
	}
	if p.PhotoTypeBoost <= 0 {
		p.PhotoTypeBoost = d.PhotoTypeBoost
	}
	if p.LikesCap < 0 {
		p.LikesCap = 0
	}
	if p.LikesDivisor <= 0 {
		p.LikesDivisor = d.LikesDivisor
	}
	return p
}

// PopularityBoost returns the like-count multiplier.
func (p Policy) PopularityBoost(likes int) float64 {
	p = p.withDefaults()
	if likes < 0 {
		likes = 0
	}
	if likes > p.LikesCap {
		likes = p.LikesCap
	}
	return 1 + float64(likes)/p.LikesDivisor
}

// QueryTokens tokenizes a search query with the English rules.
func QueryTokens(query string) []string {
	return textutil.Tokenize(query, "en")
}

// ScoreTags scores candidate tag text against query tokens:
// overlap * (1 + trigram similarity when above threshold) * domain boost.
func ScoreTags(tags string, queryTokens []string, threshold float64) float64 {
	tagSet := make(map[string]struct{})
	for _, w := range strings.Fields(textutil.Normalize(tags)) {
		tagSet[w] = struct{}{}
	}
	if len(tagSet) == 0 {
		return 0
	}
	querySet := make(map[string]struct{})
	for _, w := range queryTokens {
		if utf8.RuneCountInString(w) > 2 {
			querySet[w] = struct{}{}
		}
	}
	inter := 0
	for w := range querySet {
		if _, ok := tagSet[w]; ok {
			inter++
		}
	}
	overlap := float64(inter) / float64(max(1, len(querySet)))

	boost := 1.0
	if len(querySet) > 0 {
		sim := textutil.TrigramSimilarity(joinSorted(tagSet), joinSorted(querySet))
		if sim >= threshold {
			boost += sim
		}
	}
	return overlap * boost * DomainBoost(tags)
}

type domainSignal struct {
	keywords []string
	boost    float64
}

// domainSignals is checked in order; the first group with a keyword
// contained in the tag text wins.
var domainSignals = []domainSignal{
	{[]string{"airport", "gate", "boarding", "passport"}, 1.10},
	{[]string{"pharmacy", "medicine", "clinic"}, 1.10},
	{[]string{"bank", "atm", "finance"}, 1.08},
	{[]string{"hotel", "reception", "lobby", "towel"}, 1.08},
	{[]string{"clothing", "fashion", "fitting room", "dress", "jacket"}, 1.08},
	{[]string{"post", "mail", "shipping", "stamp"}, 1.08},
	{[]string{"coffee", "cafe", "tea"}, 1.05},
	{[]string{"street", "bridge", "map", "square"}, 1.05},
}

// DomainBoost returns the multiplicative boost for domain-signal words in
// tag text.
func DomainBoost(tags string) float64 {
	text := strings.ToLower(tags)
	for _, sig := range domainSignals {
		for _, kw := range sig.keywords {
			if strings.Contains(text, kw) {
				return sig.boost
			}
		}
	}
	return 1.0
}

func joinSorted(set map[string]struct{}) string {
	words := make([]string, 0, len(set))
	for w := range set {
		words = append(words, w)
	}
	sort.Strings(words)
	return strings.Join(words, " ")
}
