package preflight

import (
	"context"
	"fmt"

	"lingoreel/internal/config"
	"lingoreel/internal/deps"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string

	// Optional failures degrade output instead of blocking a render.
	Optional bool
}

// Options toggles the checks that reach external services.
type Options struct {
	Network bool
	LLM     bool
}

// RunAll executes all applicable preflight checks for the given config.
func RunAll(ctx context.Context, cfg *config.Config, opts Options) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result

	results = append(results, CheckDirectoryAccess("Output directory", cfg.Paths.OutputDir))
	results = append(results, CheckDirectoryAccess("Cache directory", cfg.Paths.CacheDir))
	if cfg.Paths.ReferenceDir != "" {
		r := CheckDirectoryAccess("Reference corpus", cfg.Paths.ReferenceDir)
		r.Optional = true
		results = append(results, r)
	}

	for _, status := range CheckSystemDeps(cfg) {
		results = append(results, fromStatus(status))
	}

	results = append(results, CheckImageCredentials(ctx, cfg, opts.Network)...)
	if cfg.UsesProvider(config.ProviderElevenLabs) {
		results = append(results, CheckElevenLabsKey(cfg))
	}

	if opts.LLM {
		results = append(results, CheckLLM(ctx, "LLM ("+cfg.LLM.Provider+")", cfg.PrimaryLLM()))
		if fallback, ok := cfg.FallbackLLM(); ok {
			r := CheckLLM(ctx, "LLM fallback ("+fallback.Provider+")", fallback)
			r.Optional = true
			results = append(results, r)
		}
	}

	return results
}

// Failed returns the non-optional results that did not pass.
func Failed(results []Result) []Result {
	var out []Result
	for _, r := range results {
		if !r.Passed && !r.Optional {
			out = append(out, r)
		}
	}
	return out
}

func fromStatus(s deps.Status) Result {
	r := Result{Name: s.Name, Passed: s.Available, Optional: s.Optional}
	switch {
	case s.Available && s.Path != "":
		r.Detail = s.Path
	case s.Available:
		r.Detail = s.Command
	default:
		r.Detail = s.Detail
	}
	if r.Detail == "" {
		r.Detail = fmt.Sprintf("%s unavailable", s.Name)
	}
	return r
}
