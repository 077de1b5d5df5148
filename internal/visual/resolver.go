package visual

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"lingoreel/internal/artifactcache"
	"lingoreel/internal/imagesearch"
	"lingoreel/internal/logging"
	"lingoreel/internal/queryplan"
	"lingoreel/internal/textutil"
)

// Namespace is the artifact cache namespace for downloaded images.
const Namespace = "images"

// Downloader fetches the bytes behind a candidate's source URL.
type Downloader interface {
	Download(ctx context.Context, url string) ([]byte, error)
}

// Store is the artifact cache used for image bytes and credit sidecars.
type Store interface {
	GetOrCreate(ctx context.Context, namespace, name, source string, fetch artifactcache.FetchFunc) (string, bool, error)
}

// Planner builds the NLP query plan for a sentence.
type Planner interface {
	Build(sentence, lang string) queryplan.Plan
}

// Image is one materialized candidate.
type Image struct {
	Path       string
	CreditPath string
	Query      string
	Cached     bool
	Candidate  imagesearch.Candidate
}

// Status summarizes a resolution.
type Status int

const (
	StatusResolved Status = iota
	StatusPartial
	StatusUnresolved
)

func (s Status) String() string {
	switch s {
	case StatusResolved:
		return "resolved"
	case StatusPartial:
		return "partial"
	case StatusUnresolved:
		return "unresolved"
	}
	return "unknown"
}

// Attempt records one plan entry that was searched.
type Attempt struct {
	Entry   queryplan.Entry
	Results []imagesearch.Result
}

// Resolution is the outcome for one sentence. Images are in rank order.
type Resolution struct {
	Status   Status
	Images   []Image
	Attempts []Attempt
	Plan     queryplan.Plan
}

// First returns the best image, if any.
func (r Resolution) First() (Image, bool) {
	if len(r.Images) == 0 {
		return Image{}, false
	}
	return r.Images[0], true
}

// Resolver implements the plan walk.
type Resolver struct {
	providers   []imagesearch.Searcher
	downloader  Downloader
	store       Store
	planner     Planner
	perSentence int
	logger      *slog.Logger

	missingOnce sync.Map
}

// Option customizes a Resolver.
type Option func(*Resolver)

// WithPerSentence sets how many distinct images to download per sentence.
func WithPerSentence(n int) Option {
	return func(r *Resolver) {
		if n > 0 {
			r.perSentence = n
		}
	}
}

// WithLogger sets the resolver logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) {
		r.logger = logging.NewComponentLogger(logger, "visual")
	}
}

// NewResolver builds a Resolver over providers in preference order.
func NewResolver(providers []imagesearch.Searcher, downloader Downloader, store Store, planner Planner, opts ...Option) *Resolver {
	r := &Resolver{
		providers:   providers,
		downloader:  downloader,
		store:       store,
		planner:     planner,
		perSentence: 1,
		logger:      logging.NewComponentLogger(nil, "visual"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Available reports whether at least one provider has credentials.
func (r *Resolver) Available() bool {
	for _, p := range r.providers {
		if p.Available() {
			return true
		}
	}
	return false
}

// TagEntries turns explicit line tags into leading plan entries: all tags
// joined first, then each tag alone. Tags are sanitized and deduplicated.
func TagEntries(tags []string, category string) []queryplan.Entry {
	clean := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		t := textutil.SanitizeTag(tag)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		clean = append(clean, t)
	}
	if len(clean) == 0 {
		return nil
	}
	entries := make([]queryplan.Entry, 0, len(clean)+1)
	entries = append(entries, queryplan.Entry{Query: strings.Join(clean, " "), Category: category})
	if len(clean) > 1 {
		for _, t := range clean {
			entries = append(entries, queryplan.Entry{Query: t, Category: category})
		}
	}
	return entries
}

// Resolve builds the sentence's plan and walks tag entries first, then the plan.
func (r *Resolver) Resolve(ctx context.Context, sentence, lang string, tags []string) Resolution {
	plan := r.planner.Build(sentence, lang)
	entries := append(TagEntries(tags, plan.Category), plan.Entries...)
	res := r.ResolveEntries(ctx, dedupeEntries(entries))
	res.Plan = plan
	return res
}

// ResolvePlan walks plan without any tag entries.
func (r *Resolver) ResolvePlan(ctx context.Context, plan queryplan.Plan) Resolution {
	res := r.ResolveEntries(ctx, plan.Entries)
	res.Plan = plan
	return res
}

// ResolveEntries searches entries in order until perSentence distinct images
// are downloaded or entries run out. It never fails; an exhausted walk
// returns StatusUnresolved.
func (r *Resolver) ResolveEntries(ctx context.Context, entries []queryplan.Entry) Resolution {
	var res Resolution
	seen := make(map[string]struct{})
	for _, entry := range entries {
		if len(res.Images) >= r.perSentence || ctx.Err() != nil {
			break
		}
		results := r.search(ctx, entry)
		res.Attempts = append(res.Attempts, Attempt{Entry: entry, Results: results})
		for _, cand := range imagesearch.Merge(results...) {
			if len(res.Images) >= r.perSentence || ctx.Err() != nil {
				break
			}
			if cand.SourceURL == "" {
				continue
			}
			if _, ok := seen[cand.SourceURL]; ok {
				continue
			}
			seen[cand.SourceURL] = struct{}{}
			img, err := r.materialize(ctx, entry.Query, cand)
			if err != nil {
				r.logger.Info("image download failed",
					logging.String("provider", cand.Provider),
					logging.String("query", entry.Query),
					logging.String("source_url", cand.SourceURL),
					logging.Error(err),
				)
				continue
			}
			res.Images = append(res.Images, img)
		}
	}
	switch {
	case len(res.Images) == 0:
		res.Status = StatusUnresolved
	case len(res.Images) < r.perSentence:
		res.Status = StatusPartial
	default:
		res.Status = StatusResolved
	}
	return res
}

// search queries every available provider concurrently; results keep
// provider order.
func (r *Resolver) search(ctx context.Context, entry queryplan.Entry) []imagesearch.Result {
	results := make([]imagesearch.Result, len(r.providers))
	var g errgroup.Group
	for i, p := range r.providers {
		if !p.Available() {
			r.warnMissing(p.Name())
			results[i] = imagesearch.Result{Provider: p.Name(), Status: imagesearch.StatusUnavailable}
			continue
		}
		g.Go(func() error {
			results[i] = p.Search(ctx, entry.Query, entry.Category)
			return nil
		})
	}
	_ = g.Wait()
	for _, res := range results {
		if res.Status == imagesearch.StatusFailed {
			r.logger.Info("image search failed",
				logging.String("provider", res.Provider),
				logging.String("query", entry.Query),
				logging.Error(res.Err),
			)
		}
	}
	return results
}

func (r *Resolver) warnMissing(provider string) {
	if _, loaded := r.missingOnce.LoadOrStore(provider, struct{}{}); loaded {
		return
	}
	logging.WarnWithContext(r.logger, "image provider disabled", "image_provider_unavailable",
		logging.String("provider", provider),
		logging.String(logging.FieldErrorHint, "set the provider API key in config, environment, or key file"),
		logging.String(logging.FieldImpact, "searches skip this provider"),
	)
}

func (r *Resolver) materialize(ctx context.Context, query string, cand imagesearch.Candidate) (Image, error) {
	name := CacheName(cand.Provider, query, cand.SourceURL)
	path, hit, err := r.store.GetOrCreate(ctx, Namespace, name, cand.SourceURL, func(ctx context.Context) ([]byte, error) {
		return r.downloader.Download(ctx, cand.SourceURL)
	})
	if err != nil {
		return Image{}, err
	}
	img := Image{Path: path, Query: query, Cached: hit, Candidate: cand}
	if credit := cand.Credit(); credit != "" {
		sidecar := strings.TrimSuffix(name, filepath.Ext(name)) + ".txt"
		creditPath, _, err := r.store.GetOrCreate(ctx, Namespace, sidecar, cand.Attribution.PageURL, func(context.Context) ([]byte, error) {
			return []byte(credit + "\n"), nil
		})
		if err != nil {
			r.logger.Debug("credit sidecar write failed", logging.Error(err))
		} else {
			img.CreditPath = creditPath
		}
	}
	return img, nil
}

// CacheName is the stable cache file name for a candidate downloaded for query.
func CacheName(provider, query, sourceURL string) string {
	sum := md5.Sum([]byte(provider + "|" + query + "|" + sourceURL))
	return hex.EncodeToString(sum[:]) + ".jpg"
}

func dedupeEntries(entries []queryplan.Entry) []queryplan.Entry {
	seen := make(map[string]struct{}, len(entries))
	out := make([]queryplan.Entry, 0, len(entries))
	for _, e := range entries {
		key := strings.ToLower(strings.TrimSpace(e.Query)) + "\x00" + e.Category
		if strings.TrimSpace(e.Query) == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, e)
	}
	return out
}
