package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"lingoreel/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// Credentials are cleared so tests never reach real providers.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.InputFile = filepath.Join(base, "input.txt")
	cfgVal.Paths.OutputDir = filepath.Join(base, "Output")
	cfgVal.Paths.CacheDir = filepath.Join(base, "cache")
	cfgVal.Paths.WorkDir = filepath.Join(base, "work")
	cfgVal.Paths.ReferenceDir = filepath.Join(base, "reference")
	cfgVal.Paths.KeyDir = filepath.Join(base, "keys")
	cfgVal.Paths.EnvFile = ""
	cfgVal.Logging.Dir = filepath.Join(base, "logs")
	cfgVal.Images.PixabayKey = ""
	cfgVal.Images.UnsplashKey = ""
	cfgVal.TTS.ElevenLabs.APIKey = ""
	cfgVal.LLM.APIKey = ""

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithInputLines writes lines to the configured input file.
func WithInputLines(lines ...string) ConfigOption {
	return func(b *configBuilder) {
		WriteLines(b.t, b.cfg.Paths.InputFile, lines...)
	}
}

// WithBackground overrides the video background mode.
func WithBackground(mode string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Video.Background = mode
	}
}

// WithImageKeys sets both image provider credentials.
func WithImageKeys(pixabay, unsplash string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Images.PixabayKey = pixabay
		b.cfg.Images.UnsplashKey = unsplash
	}
}

// WithStubbedBinaries writes stub executables for the provided names and
// prepends them to PATH. If names is empty, ffmpeg is stubbed.
func WithStubbedBinaries(names ...string) ConfigOption {
	return func(b *configBuilder) {
		if len(names) == 0 {
			names = []string{"ffmpeg"}
		}
		binDir := filepath.Join(b.baseDir, "bin")
		for _, name := range names {
			WriteExecutable(b.t, filepath.Join(binDir, name), "#!/bin/sh\nexit 0\n")
		}

		oldPath := os.Getenv("PATH")
		if err := os.Setenv("PATH", binDir+string(os.PathListSeparator)+oldPath); err != nil {
			b.t.Fatalf("set PATH: %v", err)
		}
		b.t.Cleanup(func() {
			_ = os.Setenv("PATH", oldPath)
		})
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.OutputDir)
}
