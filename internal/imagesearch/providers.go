package imagesearch

import (
	"time"

	"lingoreel/internal/config"
)

// FromConfig builds the Pixabay and Unsplash searchers, in ranking order,
// with the configured keys, page size and transport policy. Extra options
// are applied after the configured ones.
func FromConfig(cfg *config.Config, opts ...Option) []Searcher {
	if cfg == nil {
		return nil
	}
	policy := DefaultPolicy()
	policy.TagThreshold = cfg.Images.TagThreshold

	transportOpts := []Option{WithRetries(cfg.Images.Retries)}
	if cfg.Images.TimeoutSeconds > 0 {
		transportOpts = append(transportOpts, WithTimeout(time.Duration(cfg.Images.TimeoutSeconds)*time.Second))
	}
	transportOpts = append(transportOpts, opts...)

	return []Searcher{
		NewPixabay(PixabayConfig{
			APIKey:     cfg.Images.PixabayKey,
			PerPage:    cfg.Images.PerPage,
			SafeSearch: cfg.Images.SafeSearch,
			Policy:     policy,
		}, transportOpts...),
		NewUnsplash(UnsplashConfig{
			AccessKey: cfg.Images.UnsplashKey,
			PerPage:   cfg.Images.PerPage,
			Policy:    policy,
		}, transportOpts...),
	}
}
