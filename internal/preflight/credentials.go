package preflight

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"lingoreel/internal/config"
	"lingoreel/internal/imagesearch"
)

const probeQuery = "coffee cup"

var keyHints = map[string]string{
	imagesearch.ProviderPixabay:  "set PIXABAY_API_KEY or " + config.PixabayKeyFile,
	imagesearch.ProviderUnsplash: "set UNSPLASH_ACCESS_KEY or " + config.UnsplashKeyFile,
}

// CheckImageCredentials reports one result per image provider. With probe
// set, each configured provider runs a single search to validate its key.
// Image providers are optional: a render without them uses solid backgrounds.
func CheckImageCredentials(ctx context.Context, cfg *config.Config, probe bool) []Result {
	if cfg == nil {
		return nil
	}
	searchers := imagesearch.FromConfig(cfg, imagesearch.WithRetries(0))
	results := make([]Result, 0, len(searchers))
	for _, s := range searchers {
		if probe {
			results = append(results, CheckSearcher(ctx, s))
			continue
		}
		results = append(results, credentialResult(s))
	}
	return results
}

func credentialResult(s imagesearch.Searcher) Result {
	name := displayName(s.Name())
	if !s.Available() {
		return Result{Name: name, Optional: true, Detail: "API key missing (" + keyHints[s.Name()] + ")"}
	}
	return Result{Name: name, Optional: true, Passed: true, Detail: "API key configured"}
}

// CheckSearcher runs one probe search against s.
func CheckSearcher(ctx context.Context, s imagesearch.Searcher) Result {
	if !s.Available() {
		return credentialResult(s)
	}
	name := displayName(s.Name())

	checkCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	res := s.Search(checkCtx, probeQuery, "")
	switch res.Status {
	case imagesearch.StatusOK:
		return Result{Name: name, Optional: true, Passed: true, Detail: fmt.Sprintf("reachable (%d results)", len(res.Candidates))}
	case imagesearch.StatusEmpty:
		return Result{Name: name, Optional: true, Passed: true, Detail: "reachable (no results for probe)"}
	default:
		return Result{Name: name, Optional: true, Detail: summarizeSearchError(res.Err)}
	}
}

// CheckElevenLabsKey reports whether the ElevenLabs key is present. Routes
// to ElevenLabs fall back to gtts without it.
func CheckElevenLabsKey(cfg *config.Config) Result {
	const name = "ElevenLabs"
	if cfg.TTS.ElevenLabs.APIKey == "" {
		return Result{Name: name, Optional: true, Detail: "API key missing (set ELEVENLABS_API_KEY or " + config.ElevenLabsKeyFile + "); routed languages use gtts"}
	}
	return Result{Name: name, Optional: true, Passed: true, Detail: "API key configured"}
}

func summarizeSearchError(err error) string {
	if err == nil {
		return "search failed"
	}
	var statusErr *imagesearch.StatusError
	if errors.As(err, &statusErr) {
		switch statusErr.Code {
		case http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden:
			return fmt.Sprintf("auth failed (invalid api key, HTTP %d)", statusErr.Code)
		case http.StatusTooManyRequests:
			return "rate limited (HTTP 429)"
		}
		return fmt.Sprintf("search failed (HTTP %d)", statusErr.Code)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "search timed out"
	}
	return err.Error()
}

func displayName(provider string) string {
	switch provider {
	case imagesearch.ProviderPixabay:
		return "Pixabay"
	case imagesearch.ProviderUnsplash:
		return "Unsplash"
	default:
		return provider
	}
}
