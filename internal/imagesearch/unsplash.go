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
	defaultUnsplashURL     = "https://api.unsplash.com/search/photos"
	defaultUnsplashPerPage = 30
)

// UnsplashConfig describes an Unsplash client.
type UnsplashConfig struct {
	AccessKey string
	BaseURL   string
	PerPage   int
	Policy    Policy
}

// Unsplash searches the Unsplash photo API. It ignores category hints.
type Unsplash struct {
	transport
	key     string
	baseURL string
	perPage int
	policy  Policy
}

// NewUnsplash builds an Unsplash searcher.
func NewUnsplash(cfg UnsplashConfig, opts ...Option) *Unsplash {
	base := strings.TrimSpace(cfg.BaseURL)
	if base == "" {
		base = defaultUnsplashURL
	}
	perPage := cfg.PerPage
	if perPage <= 0 {
		perPage = defaultUnsplashPerPage
	}
	return &Unsplash{
		transport: newTransport(opts),
		key:       strings.TrimSpace(cfg.AccessKey),
		baseURL:   base,
		perPage:   perPage,
		policy:    cfg.Policy.withDefaults(),
	}
}

// Name implements Searcher.
func (u *Unsplash) Name() string { return ProviderUnsplash }

// Available implements Searcher.
func (u *Unsplash) Available() bool { return u != nil && u.key != "" }

type unsplashResponse struct {
	Results []struct {
		ID             string `json:"id"`
		Description    string `json:"description"`
		AltDescription string `json:"alt_description"`
		Likes          int    `json:"likes"`
		URLs           struct {
			Raw     string `json:"raw"`
			Full    string `json:"full"`
			Regular string `json:"regular"`
		} `json:"urls"`
		Links struct {
			HTML string `json:"html"`
		} `json:"links"`
		User struct {
			Name     string `json:"name"`
			Username string `json:"username"`
		} `json:"user"`
		Tags []struct {
			Title string `json:"title"`
		} `json:"tags"`
	} `json:"results"`
}

// Search implements Searcher.
func (u *Unsplash) Search(ctx context.Context, query, _ string) Result {
	if !u.Available() {
		return Result{Provider: ProviderUnsplash, Status: StatusUnavailable}
	}
	params := url.Values{}
	params.Set("query", query)
	params.Set("per_page", strconv.Itoa(u.perPage))
	params.Set("orientation", "landscape")
	params.Set("content_filter", "high")
	endpoint := u.baseURL + "?" + params.Encode()

	var payload unsplashResponse
	err := u.getJSON(ctx, func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", "Client-ID "+u.key)
		req.Header.Set("Accept-Version", "v1")
		return req, nil
	}, &payload)
	if err != nil {
		return Result{Provider: ProviderUnsplash, Status: StatusFailed, Err: fmt.Errorf("unsplash: search %q: %w", query, err)}
	}

	tokens := QueryTokens(query)
	candidates := make([]Candidate, 0, len(payload.Results))
	for _, ph := range payload.Results {
		src := firstNonEmpty(ph.URLs.Regular, ph.URLs.Full, ph.URLs.Raw)
		if src == "" {
			continue
		}
		titles := make([]string, 0, len(ph.Tags))
		for _, tag := range ph.Tags {
			if tag.Title != "" {
				titles = append(titles, tag.Title)
			}
		}
		var parts []string
		for _, s := range []string{strings.Join(titles, ","), ph.AltDescription, ph.Description} {
			if s != "" {
				parts = append(parts, s)
			}
		}
		tags := strings.Join(parts, ",")

		score := ScoreTags(tags, tokens, u.policy.TagThreshold)
		score *= u.policy.PopularityBoost(ph.Likes)
		candidates = append(candidates, Candidate{
			Provider:  ProviderUnsplash,
			Score:     score,
			SourceURL: src,
			Tags:      tags,
			Attribution: Attribution{
				Author:   ph.User.Name,
				Username: ph.User.Username,
				PageURL:  ph.Links.HTML,
				Likes:    ph.Likes,
			},
		})
	}
	return finish(ProviderUnsplash, candidates)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
