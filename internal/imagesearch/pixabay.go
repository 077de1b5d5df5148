package imagesearch

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

const (
	defaultPixabayURL     = "https://pixabay.com/api/"
	defaultPixabayPerPage = 40
)

// PixabayConfig describes a Pixabay client.
type PixabayConfig struct {
	APIKey     string
	BaseURL    string
	PerPage    int
	SafeSearch bool
	Policy     Policy
}

// Pixabay searches the Pixabay photo API.
type Pixabay struct {
	transport
	key        string
	baseURL    string
	perPage    int
	safeSearch bool
	policy     Policy
}

// NewPixabay builds a Pixabay searcher. A missing key yields a client whose
// Available reports false.
func NewPixabay(cfg PixabayConfig, opts ...Option) *Pixabay {
	base := strings.TrimSpace(cfg.BaseURL)
	if base == "" {
		base = defaultPixabayURL
	}
	perPage := cfg.PerPage
	if perPage <= 0 {
		perPage = defaultPixabayPerPage
	}
	return &Pixabay{
		transport:  newTransport(opts),
		key:        strings.TrimSpace(cfg.APIKey),
		baseURL:    base,
		perPage:    perPage,
		safeSearch: cfg.SafeSearch,
		policy:     cfg.Policy.withDefaults(),
	}
}

// Name implements Searcher.
func (p *Pixabay) Name() string { return ProviderPixabay }

// Available implements Searcher.
func (p *Pixabay) Available() bool { return p != nil && p.key != "" }

type pixabayResponse struct {
	Hits []struct {
		Type          string `json:"type"`
		Tags          string `json:"tags"`
		PageURL       string `json:"pageURL"`
		LargeImageURL string `json:"largeImageURL"`
		WebformatURL  string `json:"webformatURL"`
		User          string `json:"user"`
		UserID        int64  `json:"user_id"`
	} `json:"hits"`
}

// Search implements Searcher.
func (p *Pixabay) Search(ctx context.Context, query, category string) Result {
	if !p.Available() {
		return Result{Provider: ProviderPixabay, Status: StatusUnavailable}
	}
	params := url.Values{}
	params.Set("key", p.key)
	params.Set("q", query)
	params.Set("image_type", "photo")
	params.Set("safesearch", strconv.FormatBool(p.safeSearch))
	params.Set("per_page", strconv.Itoa(p.perPage))
	params.Set("orientation", "horizontal")
	params.Set("lang", "en")
	if category = strings.TrimSpace(category); category != "" {
		params.Set("category", category)
	}
	endpoint := p.baseURL + "?" + params.Encode()

	var payload pixabayResponse
	err := p.getJSON(ctx, func(ctx context.Context) (*http.Request, error) {
		return http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	}, &payload)
	if err != nil {
		return Result{Provider: ProviderPixabay, Status: StatusFailed, Err: fmt.Errorf("pixabay: search %q: %w", query, err)}
	}

	tokens := QueryTokens(query)
	candidates := make([]Candidate, 0, len(payload.Hits))
	for _, h := range payload.Hits {
		src := h.LargeImageURL
		if src == "" {
			src = h.WebformatURL
		}
		if src == "" {
			continue
		}
		score := ScoreTags(h.Tags, tokens, p.policy.TagThreshold)
		if h.Type == "photo" {
			score *= p.policy.PhotoTypeBoost
		}
		attribution := Attribution{Author: h.User, PageURL: h.PageURL}
		if h.UserID != 0 {
			attribution.UserID = strconv.FormatInt(h.UserID, 10)
		}
		candidates = append(candidates, Candidate{
			Provider:    ProviderPixabay,
			Score:       score,
			SourceURL:   src,
			Tags:        h.Tags,
			Attribution: attribution,
		})
	}
	return finish(ProviderPixabay, candidates)
}
