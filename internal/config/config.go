package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains file and directory locations.
type Paths struct {
	InputFile    string `toml:"input_file"`
	OutputDir    string `toml:"output_dir"`
	CacheDir     string `toml:"cache_dir"`
	WorkDir      string `toml:"work_dir"`
	ReferenceDir string `toml:"reference_dir"`
	KeyDir       string `toml:"key_dir"`
	EnvFile      string `toml:"env_file"`
}

// Input describes how input lines are read.
type Input struct {
	// Languages lists the language of each "|" column, in column order.
	Languages      []string `toml:"languages"`
	PrimaryIndex   int      `toml:"primary_index"`
	SecondaryIndex int      `toml:"secondary_index"`
	Mode           string   `toml:"mode"`
	Title          string   `toml:"title"`
	Bilingual      bool     `toml:"bilingual"`
}

// Repeat holds per-role repeat counts and pauses in milliseconds.
type Repeat struct {
	PrimaryRepeat   int `toml:"primary_repeat"`
	SecondaryRepeat int `toml:"secondary_repeat"`
	PauseRepeatMS   int `toml:"pause_repeat_ms"`
	PauseSentenceMS int `toml:"pause_sentence_ms"`
}

// Timing contains cue timeline settings.
type Timing struct {
	Vocab    Repeat `toml:"vocab"`
	Scenario Repeat `toml:"scenario"`
	GridSnap bool   `toml:"grid_snap"`
	GridMS   int    `toml:"grid_ms"`

	// ExternalSRT replaces drafted cue timings when set.
	ExternalSRT string `toml:"external_srt"`
}

// ElevenLabs contains ElevenLabs speech settings.
type ElevenLabs struct {
	APIKey         string            `toml:"api_key"`
	BaseURL        string            `toml:"base_url"`
	Model          string            `toml:"model"`
	DefaultVoice   string            `toml:"default_voice"`
	Voices         map[string]string `toml:"voices"`
	Stability      float64           `toml:"stability"`
	Similarity     float64           `toml:"similarity"`
	TimeoutSeconds int               `toml:"timeout_seconds"`
}

// Piper contains local Piper speech settings. Negative noise values omit the
// flag.
type Piper struct {
	Binary      string            `toml:"binary"`
	Models      map[string]string `toml:"models"`
	Model       string            `toml:"model"`
	LengthScale float64           `toml:"length_scale"`
	NoiseScale  float64           `toml:"noise_scale"`
	NoiseW      float64           `toml:"noise_w"`
}

// TTS contains speech capability settings.
type TTS struct {
	// Routes maps a language code, or "default", to gtts, elevenlabs or piper.
	Routes         map[string]string `toml:"routes"`
	PlaceholderMS  int               `toml:"placeholder_ms"`
	GTTSBaseURL    string            `toml:"gtts_base_url"`
	TimeoutSeconds int               `toml:"timeout_seconds"`
	ElevenLabs     ElevenLabs        `toml:"elevenlabs"`
	Piper          Piper             `toml:"piper"`
}

// Images contains image search and ranking settings.
type Images struct {
	PixabayKey       string  `toml:"pixabay_key"`
	UnsplashKey      string  `toml:"unsplash_key"`
	PerSentence      int     `toml:"per_sentence"`
	PerPage          int     `toml:"per_page"`
	SafeSearch       bool    `toml:"safe_search"`
	TagThreshold     float64 `toml:"tag_threshold"`
	TrigramThreshold float64 `toml:"trigram_threshold"`
	MaxFallbacks     int     `toml:"max_fallbacks"`
	Retries          int     `toml:"retries"`
	TimeoutSeconds   int     `toml:"timeout_seconds"`
}

// Video contains slideshow and mux settings.
type Video struct {
	Width        int    `toml:"width"`
	Height       int    `toml:"height"`
	FPS          int    `toml:"fps"`
	Background   string `toml:"background"`
	Color        string `toml:"color"`
	Image        string `toml:"image"`
	FFmpegBinary string `toml:"ffmpeg_binary"`
	ExportMP3    bool   `toml:"export_mp3"`
}

// Subtitles contains ASS styling.
type Subtitles struct {
	Font     string `toml:"font"`
	FontSize int    `toml:"font_size"`
}

// Music contains optional background music settings.
type Music struct {
	Path   string  `toml:"path"`
	GainDB float64 `toml:"gain_db"`
}

// LLM contains line generation settings.
type LLM struct {
	Provider       string  `toml:"provider"`
	Model          string  `toml:"model"`
	APIKey         string  `toml:"api_key"`
	BaseURL        string  `toml:"base_url"`
	Fallback       string  `toml:"fallback"`
	Temperature    float64 `toml:"temperature"`
	TimeoutSeconds int     `toml:"timeout_seconds"`
	Topic          string  `toml:"topic"`
	Level          string  `toml:"level"`
	Count          int     `toml:"count"`
}

// Workers bounds provider concurrency.
type Workers struct {
	TTS               int `toml:"tts"`
	Images            int `toml:"images"`
	RunTimeoutSeconds int `toml:"run_timeout_seconds"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
	Dir    string `toml:"dir"`
}

// Config encapsulates all configuration values for lingoreel.
//
// Configuration sections by subsystem:
//   - Paths: input, output, cache and reference locations
//   - Input: column languages and indices, mode, title
//   - Timing: repeat policies, grid snap, external timing source
//   - TTS: per-language speech routing and provider settings
//   - Images: Pixabay/Unsplash credentials and ranking knobs
//   - Video, Subtitles, Music: slideshow rendering
//   - LLM: optional input line generation
//   - Workers: pool sizes and the provider phase timeout
//   - Logging: log format, level, and directory
type Config struct {
	Paths     Paths     `toml:"paths"`
	Input     Input     `toml:"input"`
	Timing    Timing    `toml:"timing"`
	TTS       TTS       `toml:"tts"`
	Images    Images    `toml:"images"`
	Video     Video     `toml:"video"`
	Subtitles Subtitles `toml:"subtitles"`
	Music     Music     `toml:"music"`
	LLM       LLM       `toml:"llm"`
	Workers   Workers   `toml:"workers"`
	Logging   Logging   `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/lingoreel/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and credentials resolved.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.loadEnvFile(); err != nil {
		return nil, "", false, err
	}
	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("lingoreel.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// loadEnvFile reads KEY=VALUE pairs into the process environment without
// overriding variables that are already set. A missing file is ignored.
func (c *Config) loadEnvFile() error {
	path := strings.TrimSpace(c.Paths.EnvFile)
	if path == "" {
		return nil
	}
	expanded, err := expandPath(path)
	if err != nil {
		return fmt.Errorf("paths.env_file: %w", err)
	}
	if _, err := os.Stat(expanded); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("stat env file: %w", err)
	}
	if err := godotenv.Load(expanded); err != nil {
		return fmt.Errorf("load env file %q: %w", expanded, err)
	}
	return nil
}

// EnsureDirectories creates the output, cache and work directories.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.OutputDir, c.Paths.CacheDir, c.Paths.WorkDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	if dir := strings.TrimSpace(c.Logging.Dir); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create log directory %q: %w", dir, err)
		}
	}
	return nil
}

// PrimaryLanguage returns the language of the primary column.
func (c *Config) PrimaryLanguage() string {
	return c.columnLanguage(c.Input.PrimaryIndex, "en")
}

// SecondaryLanguage returns the language of the secondary column.
func (c *Config) SecondaryLanguage() string {
	return c.columnLanguage(c.Input.SecondaryIndex, "fr")
}

func (c *Config) columnLanguage(index int, fallback string) string {
	if index >= 0 && index < len(c.Input.Languages) {
		if lang := strings.TrimSpace(c.Input.Languages[index]); lang != "" {
			return lang
		}
	}
	return fallback
}

// RepeatFor returns the repeat settings for mode, falling back to scenario.
func (c *Config) RepeatFor(mode string) Repeat {
	if strings.EqualFold(strings.TrimSpace(mode), ModeVocab) {
		return c.Timing.Vocab
	}
	return c.Timing.Scenario
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// SampleConfig returns the embedded sample configuration.
func SampleConfig() string {
	return sampleConfig
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

// LLMConfig contains resolved connection settings for one LLM provider.
type LLMConfig struct {
	Provider       string
	APIKey         string
	BaseURL        string
	Model          string
	Temperature    float64
	TimeoutSeconds int
}

// PrimaryLLM returns the settings for the configured line generation provider.
func (c *Config) PrimaryLLM() LLMConfig {
	return LLMConfig{
		Provider:       c.LLM.Provider,
		APIKey:         strings.TrimSpace(c.LLM.APIKey),
		BaseURL:        strings.TrimSpace(c.LLM.BaseURL),
		Model:          strings.TrimSpace(c.LLM.Model),
		Temperature:    c.LLM.Temperature,
		TimeoutSeconds: c.LLM.TimeoutSeconds,
	}
}

// FallbackLLM returns the provider tried when the primary one fails. The
// fallback uses that provider's default endpoint and model; only the OpenAI
// key is carried over from the environment.
func (c *Config) FallbackLLM() (LLMConfig, bool) {
	provider := strings.TrimSpace(c.LLM.Fallback)
	if provider == "" || provider == c.LLM.Provider {
		return LLMConfig{}, false
	}
	cfg := LLMConfig{
		Provider:       provider,
		Temperature:    c.LLM.Temperature,
		TimeoutSeconds: c.LLM.TimeoutSeconds,
	}
	if provider == LLMProviderOpenAI {
		cfg.APIKey = strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))
	}
	return cfg, true
}

// UsesProvider reports whether any speech route selects provider.
func (c *Config) UsesProvider(provider string) bool {
	for _, p := range c.TTS.Routes {
		if p == provider {
			return true
		}
	}
	return false
}
