package imagesearch

import (
	"context"
	"fmt"
	"sort"
)

// Provider names.
const (
	ProviderPixabay  = "pixabay"
	ProviderUnsplash = "unsplash"
)

// Attribution carries the author metadata needed for a credit line.
type Attribution struct {
	Author   string
	Username string
	UserID   string
	PageURL  string
	Likes    int
}

// Candidate is one ranked search hit.
type Candidate struct {
	Provider    string
	Score       float64
	SourceURL   string
	Tags        string
	Attribution Attribution
}

// Credit renders a human-readable attribution line, or "" when the
// provider supplied no author.
func (c Candidate) Credit() string {
	if c.Attribution.Author == "" {
		return ""
	}
	switch c.Provider {
	case ProviderUnsplash:
		return fmt.Sprintf("Photo by %s (@%s) on Unsplash", c.Attribution.Author, c.Attribution.Username)
	case ProviderPixabay:
		return fmt.Sprintf("Photo by %s on Pixabay", c.Attribution.Author)
	}
	return fmt.Sprintf("Photo by %s", c.Attribution.Author)
}

// Status classifies the outcome of one provider call.
type Status int

const (
	StatusOK Status = iota
	StatusEmpty
	StatusFailed
	StatusUnavailable
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusEmpty:
		return "empty"
	case StatusFailed:
		return "failed"
	case StatusUnavailable:
		return "unavailable"
	}
	return "unknown"
}

// Result is the outcome of one search call. Candidates are sorted by
// descending score.
type Result struct {
	Provider   string
	Status     Status
	Candidates []Candidate
	Err        error
}

// Searcher is one image provider.
type Searcher interface {
	Name() string
	// Available reports whether the provider has the credentials it needs.
	Available() bool
	Search(ctx context.Context, query, category string) Result
}

// Merge combines provider results into one list sorted by descending score.
// Equal scores keep provider order.
func Merge(results ...Result) []Candidate {
	var merged []Candidate
	for _, r := range results {
		merged = append(merged, r.Candidates...)
	}
	SortCandidates(merged)
	return merged
}

// SortCandidates orders candidates by descending score, stable on ties.
func SortCandidates(c []Candidate) {
	sort.SliceStable(c, func(i, j int) bool { return c[i].Score > c[j].Score })
}

func finish(provider string, candidates []Candidate) Result {
	SortCandidates(candidates)
	if len(candidates) == 0 {
		return Result{Provider: provider, Status: StatusEmpty}
	}
	return Result{Provider: provider, Status: StatusOK, Candidates: candidates}
}
