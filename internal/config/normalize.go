package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"lingoreel/internal/language"
)

// Key file names looked up in paths.key_dir when a credential is unset.
const (
	PixabayKeyFile    = "pixabay.key"
	UnsplashKeyFile   = "unsplash.key"
	ElevenLabsKeyFile = "elevenlabs.key"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeInput()
	c.normalizeTiming()
	if err := c.normalizeTTS(); err != nil {
		return err
	}
	c.normalizeImages()
	c.normalizeVideo()
	c.normalizeLLM()
	c.normalizeWorkers()
	return c.normalizeLogging()
}

func (c *Config) normalizePaths() error {
	fields := []struct {
		key   string
		value *string
		def   string
	}{
		{"paths.input_file", &c.Paths.InputFile, ""},
		{"paths.output_dir", &c.Paths.OutputDir, defaultOutputDir},
		{"paths.cache_dir", &c.Paths.CacheDir, defaultCacheDir},
		{"paths.work_dir", &c.Paths.WorkDir, defaultWorkDir},
		{"paths.reference_dir", &c.Paths.ReferenceDir, ""},
		{"paths.key_dir", &c.Paths.KeyDir, ""},
		{"timing.external_srt", &c.Timing.ExternalSRT, ""},
		{"music.path", &c.Music.Path, ""},
		{"video.image", &c.Video.Image, ""},
	}
	for _, f := range fields {
		v := strings.TrimSpace(*f.value)
		if v == "" {
			v = f.def
		}
		expanded, err := expandPath(v)
		if err != nil {
			return fmt.Errorf("%s: %w", f.key, err)
		}
		*f.value = expanded
	}
	return nil
}

func (c *Config) normalizeInput() {
	langs := make([]string, 0, len(c.Input.Languages))
	for _, code := range c.Input.Languages {
		if code = language.Canonical(code); code != "" {
			langs = append(langs, code)
		}
	}
	if len(langs) == 0 {
		langs = append(langs, DefaultLanguages...)
	}
	c.Input.Languages = langs
	c.Input.Mode = strings.ToLower(strings.TrimSpace(c.Input.Mode))
	if c.Input.Mode == "" {
		c.Input.Mode = ModeScenario
	}
	c.Input.Title = strings.TrimSpace(c.Input.Title)
}

func (c *Config) normalizeTiming() {
	if c.Timing.GridMS <= 0 {
		c.Timing.GridMS = defaultGridMS
	}
}

func (c *Config) normalizeTTS() error {
	routes := make(map[string]string, len(c.TTS.Routes))
	for lang, provider := range c.TTS.Routes {
		key := strings.ToLower(strings.TrimSpace(lang))
		if key == "" {
			continue
		}
		if key == "_default" {
			key = "default"
		}
		routes[key] = strings.ToLower(strings.TrimSpace(provider))
	}
	if _, ok := routes["default"]; !ok {
		routes["default"] = ProviderGTTS
	}
	c.TTS.Routes = routes
	if c.TTS.PlaceholderMS <= 0 {
		c.TTS.PlaceholderMS = defaultPlaceholderMS
	}
	c.TTS.GTTSBaseURL = strings.TrimSpace(c.TTS.GTTSBaseURL)

	el := &c.TTS.ElevenLabs
	el.APIKey = strings.TrimSpace(el.APIKey)
	if el.APIKey == "" {
		el.APIKey = c.credential("ELEVENLABS_API_KEY", ElevenLabsKeyFile)
	}
	el.BaseURL = strings.TrimRight(strings.TrimSpace(el.BaseURL), "/")
	if el.BaseURL == "" {
		el.BaseURL = defaultElevenBaseURL
	}
	if el.Model = strings.TrimSpace(el.Model); el.Model == "" {
		el.Model = defaultElevenModel
	}
	if el.DefaultVoice = strings.TrimSpace(el.DefaultVoice); el.DefaultVoice == "" {
		el.DefaultVoice = defaultElevenVoice
	}
	if el.TimeoutSeconds <= 0 {
		el.TimeoutSeconds = defaultElevenTimeout
	}

	p := &c.TTS.Piper
	var err error
	if p.Binary = strings.TrimSpace(p.Binary); p.Binary != "" && strings.ContainsAny(p.Binary, `/\`) {
		if p.Binary, err = expandPath(p.Binary); err != nil {
			return fmt.Errorf("tts.piper.binary: %w", err)
		}
	}
	if p.Model, err = expandPath(strings.TrimSpace(p.Model)); err != nil {
		return fmt.Errorf("tts.piper.model: %w", err)
	}
	models := make(map[string]string, len(p.Models))
	for lang, model := range p.Models {
		expanded, err := expandPath(strings.TrimSpace(model))
		if err != nil {
			return fmt.Errorf("tts.piper.models.%s: %w", lang, err)
		}
		models[language.Canonical(lang)] = expanded
	}
	p.Models = models
	return nil
}

func (c *Config) normalizeImages() {
	c.Images.PixabayKey = strings.TrimSpace(c.Images.PixabayKey)
	if c.Images.PixabayKey == "" {
		c.Images.PixabayKey = c.credential("PIXABAY_API_KEY", PixabayKeyFile)
	}
	c.Images.UnsplashKey = strings.TrimSpace(c.Images.UnsplashKey)
	if c.Images.UnsplashKey == "" {
		c.Images.UnsplashKey = c.credential("UNSPLASH_ACCESS_KEY", UnsplashKeyFile)
	}
	if c.Images.PerSentence <= 0 {
		c.Images.PerSentence = defaultPerSentence
	}
	if c.Images.PerPage <= 0 {
		c.Images.PerPage = defaultPerPage
	}
	if c.Images.TagThreshold <= 0 {
		c.Images.TagThreshold = defaultTagThreshold
	}
	if c.Images.TrigramThreshold <= 0 {
		c.Images.TrigramThreshold = defaultTrigramThreshold
	}
	if c.Images.MaxFallbacks <= 0 {
		c.Images.MaxFallbacks = defaultMaxFallbacks
	}
	if c.Images.Retries < 0 {
		c.Images.Retries = 0
	}
	if c.Images.TimeoutSeconds <= 0 {
		c.Images.TimeoutSeconds = defaultImageTimeout
	}
}

func (c *Config) normalizeVideo() {
	c.Video.Background = strings.ToLower(strings.TrimSpace(c.Video.Background))
	switch c.Video.Background {
	case "", "per-sentence", "sentence":
		c.Video.Background = BackgroundPerSentence
	case "image":
		c.Video.Background = BackgroundSingle
	}
	if c.Video.Color = strings.TrimSpace(c.Video.Color); c.Video.Color == "" {
		c.Video.Color = defaultColor
	}
	c.Video.FFmpegBinary = strings.TrimSpace(c.Video.FFmpegBinary)
	if c.Video.FFmpegBinary == "" {
		c.Video.FFmpegBinary = defaultFFmpegBinary
	}
	if c.Subtitles.Font = strings.TrimSpace(c.Subtitles.Font); c.Subtitles.Font == "" {
		c.Subtitles.Font = defaultFont
	}
	if c.Subtitles.FontSize <= 0 {
		c.Subtitles.FontSize = defaultFontSize
	}
}

func (c *Config) normalizeLLM() {
	c.LLM.Provider = strings.ToLower(strings.TrimSpace(c.LLM.Provider))
	if c.LLM.Provider == "" {
		c.LLM.Provider = LLMProviderOpenAI
	}
	c.LLM.Fallback = strings.ToLower(strings.TrimSpace(c.LLM.Fallback))
	c.LLM.Model = strings.TrimSpace(c.LLM.Model)
	c.LLM.BaseURL = strings.TrimSpace(c.LLM.BaseURL)
	c.LLM.APIKey = strings.TrimSpace(c.LLM.APIKey)
	if c.LLM.APIKey == "" && c.LLM.Provider == LLMProviderOpenAI {
		if value, ok := os.LookupEnv("OPENAI_API_KEY"); ok {
			c.LLM.APIKey = strings.TrimSpace(value)
		}
	}
	if c.LLM.TimeoutSeconds <= 0 {
		c.LLM.TimeoutSeconds = defaultLLMTimeoutSeconds
	}
	c.LLM.Topic = strings.TrimSpace(c.LLM.Topic)
	if c.LLM.Level = strings.ToUpper(strings.TrimSpace(c.LLM.Level)); c.LLM.Level == "" {
		c.LLM.Level = defaultLLMLevel
	}
	if c.LLM.Count <= 0 {
		c.LLM.Count = defaultLLMCount
	}
}

func (c *Config) normalizeWorkers() {
	if c.Workers.TTS <= 0 {
		c.Workers.TTS = defaultTTSWorkers
	}
	if c.Workers.Images <= 0 {
		c.Workers.Images = defaultImageWorkers
	}
	if c.Workers.RunTimeoutSeconds < 0 {
		c.Workers.RunTimeoutSeconds = 0
	}
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	var err error
	if c.Logging.Dir, err = expandPath(strings.TrimSpace(c.Logging.Dir)); err != nil {
		return fmt.Errorf("logging.dir: %w", err)
	}
	return nil
}

// credential returns the first non-empty value of the environment variable
// or the key file in paths.key_dir.
func (c *Config) credential(envVar, keyFile string) string {
	if value, ok := os.LookupEnv(envVar); ok && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	if c.Paths.KeyDir == "" {
		return ""
	}
	data, err := os.ReadFile(filepath.Join(c.Paths.KeyDir, keyFile))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}
