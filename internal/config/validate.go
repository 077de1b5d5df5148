package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateInput(); err != nil {
		return err
	}
	if err := c.validateTiming(); err != nil {
		return err
	}
	if err := c.validateTTS(); err != nil {
		return err
	}
	if err := c.validateImages(); err != nil {
		return err
	}
	if err := c.validateVideo(); err != nil {
		return err
	}
	if err := c.validateLLM(); err != nil {
		return err
	}
	return c.validateWorkers()
}

func (c *Config) validateInput() error {
	if len(c.Input.Languages) == 0 {
		return errors.New("input.languages must include at least one language")
	}
	if c.Input.PrimaryIndex < 0 {
		return errors.New("input.primary_index must be >= 0")
	}
	if c.Input.SecondaryIndex < 0 {
		return errors.New("input.secondary_index must be >= 0")
	}
	if c.Input.PrimaryIndex == c.Input.SecondaryIndex {
		return errors.New("input.primary_index and input.secondary_index must differ")
	}
	if c.Input.Mode != ModeVocab && c.Input.Mode != ModeScenario {
		return fmt.Errorf("input.mode must be %q or %q", ModeVocab, ModeScenario)
	}
	return nil
}

func (c *Config) validateTiming() error {
	for name, r := range map[string]Repeat{"timing.vocab": c.Timing.Vocab, "timing.scenario": c.Timing.Scenario} {
		if r.PrimaryRepeat < 1 {
			return fmt.Errorf("%s.primary_repeat must be >= 1", name)
		}
		if r.SecondaryRepeat < 1 {
			return fmt.Errorf("%s.secondary_repeat must be >= 1", name)
		}
		if r.PauseRepeatMS < 0 {
			return fmt.Errorf("%s.pause_repeat_ms must be >= 0", name)
		}
		if r.PauseSentenceMS < 0 {
			return fmt.Errorf("%s.pause_sentence_ms must be >= 0", name)
		}
	}
	if c.Timing.GridMS > 1000 {
		return errors.New("timing.grid_ms must be a sub-second grid (<= 1000)")
	}
	return nil
}

func (c *Config) validateTTS() error {
	valid := []string{ProviderGTTS, ProviderElevenLabs, ProviderPiper}
	for lang, provider := range c.TTS.Routes {
		if !slices.Contains(valid, provider) {
			return fmt.Errorf("tts.routes.%s must be one of %s (got %q)", lang, strings.Join(valid, ", "), provider)
		}
	}
	el := c.TTS.ElevenLabs
	if el.Stability < 0 || el.Stability > 1 {
		return errors.New("tts.elevenlabs.stability must be between 0 and 1")
	}
	if el.Similarity < 0 || el.Similarity > 1 {
		return errors.New("tts.elevenlabs.similarity must be between 0 and 1")
	}
	if c.TTS.Piper.LengthScale < 0 {
		return errors.New("tts.piper.length_scale must be >= 0")
	}
	return nil
}

func (c *Config) validateImages() error {
	if c.Images.PerPage > 200 {
		return errors.New("images.per_page must be <= 200")
	}
	if c.Images.TagThreshold > 1 {
		return errors.New("images.tag_threshold must be between 0 and 1")
	}
	if c.Images.TrigramThreshold > 1 {
		return errors.New("images.trigram_threshold must be between 0 and 1")
	}
	return nil
}

func (c *Config) validateVideo() error {
	if err := ensurePositiveMap(map[string]int{
		"video.width":         c.Video.Width,
		"video.height":        c.Video.Height,
		"video.fps":           c.Video.FPS,
		"subtitles.font_size": c.Subtitles.FontSize,
	}); err != nil {
		return err
	}
	if c.Video.Width%2 != 0 || c.Video.Height%2 != 0 {
		return errors.New("video.width and video.height must be even for yuv420p output")
	}
	switch c.Video.Background {
	case BackgroundNone, BackgroundPerSentence:
	case BackgroundSingle:
		if c.Video.Image == "" {
			return errors.New("video.image must be set when video.background is \"single\"")
		}
	default:
		return fmt.Errorf("video.background must be %q, %q or %q", BackgroundNone, BackgroundSingle, BackgroundPerSentence)
	}
	if c.Music.GainDB > 0 {
		return errors.New("music.gain_db must be <= 0")
	}
	return nil
}

func (c *Config) validateLLM() error {
	for key, provider := range map[string]string{"llm.provider": c.LLM.Provider, "llm.fallback": c.LLM.Fallback} {
		switch provider {
		case "", LLMProviderOpenAI, LLMProviderOllama:
		default:
			return fmt.Errorf("%s must be %q or %q", key, LLMProviderOpenAI, LLMProviderOllama)
		}
	}
	if c.LLM.Temperature < 0 || c.LLM.Temperature > 2 {
		return errors.New("llm.temperature must be between 0 and 2")
	}
	return nil
}

func (c *Config) validateWorkers() error {
	if c.Workers.TTS > 64 || c.Workers.Images > 64 {
		return errors.New("workers.tts and workers.images must be <= 64")
	}
	return nil
}

func ensurePositiveMap(values map[string]int) error {
	for key, value := range values {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}
