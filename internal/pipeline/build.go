package pipeline

import (
	"errors"
	"log/slog"
	"time"

	"lingoreel/internal/artifactcache"
	"lingoreel/internal/audio"
	"lingoreel/internal/config"
	"lingoreel/internal/imagesearch"
	"lingoreel/internal/lexicon"
	"lingoreel/internal/logging"
	"lingoreel/internal/queryplan"
	"lingoreel/internal/slideshow"
	"lingoreel/internal/tts"
	"lingoreel/internal/visual"
)

// NewFromConfig wires the production collaborators. It holds a shared lock on
// the cache directory until the returned closer runs, so cache prune and
// clear refuse while the runner is alive.
func NewFromConfig(cfg *config.Config, logger *slog.Logger, opts ...Option) (*Runner, func() error, error) {
	if cfg == nil {
		return nil, nil, errors.New("pipeline: config required")
	}
	lock, err := artifactcache.AcquireShared(cfg.Paths.CacheDir)
	if err != nil {
		return nil, nil, err
	}
	cache, err := artifactcache.Open(cfg.Paths.CacheDir, logger)
	if err != nil {
		_ = lock.Release()
		return nil, nil, err
	}
	closer := func() error {
		return errors.Join(cache.Close(), lock.Release())
	}

	codec := audio.NewCodec(cfg.Video.FFmpegBinary, logger)
	speaker := tts.NewSynthesizer(ttsConfig(cfg), cache, codec, logger)
	resolver := newResolver(cfg, cache, logger)
	assembler := slideshow.NewAssembler(slideshow.Options{
		Width:  cfg.Video.Width,
		Height: cfg.Video.Height,
		FPS:    cfg.Video.FPS,
		Color:  cfg.Video.Color,
		FFmpeg: cfg.Video.FFmpegBinary,
	}, logger)

	runner := New(SettingsFromConfig(cfg), speaker, resolver, assembler, codec, logger, opts...)
	return runner, closer, nil
}

func ttsConfig(cfg *config.Config) tts.Config {
	seconds := func(n int) time.Duration { return time.Duration(n) * time.Second }
	el := cfg.TTS.ElevenLabs
	return tts.Config{
		Routes: cfg.TTS.Routes,
		GTTS: tts.GTTSConfig{
			BaseURL: cfg.TTS.GTTSBaseURL,
			Timeout: seconds(cfg.TTS.TimeoutSeconds),
		},
		ElevenLabs: tts.ElevenLabsConfig{
			APIKey:       el.APIKey,
			BaseURL:      el.BaseURL,
			Model:        el.Model,
			VoiceMap:     el.Voices,
			DefaultVoice: el.DefaultVoice,
			Stability:    el.Stability,
			Similarity:   el.Similarity,
			Timeout:      seconds(el.TimeoutSeconds),
		},
		Piper: tts.PiperConfig{
			Binary:      cfg.TTS.Piper.Binary,
			Models:      cfg.TTS.Piper.Models,
			Model:       cfg.TTS.Piper.Model,
			LengthScale: cfg.TTS.Piper.LengthScale,
			NoiseScale:  cfg.TTS.Piper.NoiseScale,
			NoiseW:      cfg.TTS.Piper.NoiseW,
		},
		PlaceholderMS: cfg.TTS.PlaceholderMS,
	}
}

// NewPlanner builds the query planner from the built-in lexicon and the
// reference corpus. A corpus that cannot be read is logged and skipped.
func NewPlanner(cfg *config.Config, logger *slog.Logger) *queryplan.Builder {
	matcher := lexicon.NewMatcher(lexicon.Default(), lexicon.WithTrigramThreshold(cfg.Images.TrigramThreshold))
	terms, err := queryplan.LoadTermTable([]string{cfg.Paths.ReferenceDir}, queryplan.DefaultReferencePattern)
	if err != nil {
		logging.WarnWithContext(logging.NewComponentLogger(logger, "pipeline"), "reference corpus unreadable", "reference_corpus_failed",
			logging.String("reference_dir", cfg.Paths.ReferenceDir),
			logging.Error(err),
			logging.String(logging.FieldImpact, "image queries use the built-in lexicon only"),
		)
	}
	return queryplan.NewBuilder(matcher, terms, queryplan.WithMaxFallbacks(cfg.Images.MaxFallbacks))
}

func newResolver(cfg *config.Config, cache *artifactcache.Cache, logger *slog.Logger) *visual.Resolver {
	downloadOpts := []imagesearch.Option{imagesearch.WithRetries(cfg.Images.Retries)}
	if cfg.Images.TimeoutSeconds > 0 {
		downloadOpts = append(downloadOpts, imagesearch.WithTimeout(time.Duration(cfg.Images.TimeoutSeconds)*time.Second))
	}
	return visual.NewResolver(
		imagesearch.FromConfig(cfg),
		imagesearch.NewDownloader(downloadOpts...),
		cache,
		NewPlanner(cfg, logger),
		visual.WithPerSentence(cfg.Images.PerSentence),
		visual.WithLogger(logger),
	)
}
