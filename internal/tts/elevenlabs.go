package tts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"

	"lingoreel/internal/language"
)

const (
	defaultElevenLabsURL     = "https://api.elevenlabs.io"
	defaultElevenLabsModel   = "eleven_multilingual_v2"
	defaultElevenLabsVoice   = "EXAVITQu4vr4xnSDxMaL"
	defaultElevenLabsTimeout = 45 * time.Second
	defaultStability         = 0.45
	defaultSimilarity        = 0.7
)

// ElevenLabsConfig configures the ElevenLabs engine.
type ElevenLabsConfig struct {
	APIKey       string
	BaseURL      string
	Model        string
	VoiceMap     map[string]string
	DefaultVoice string
	Stability    float64
	Similarity   float64
	Timeout      time.Duration
}

// ElevenLabs renders speech with the ElevenLabs text-to-speech API.
type ElevenLabs struct {
	key        string
	baseURL    string
	model      string
	voices     map[string]string
	voice      string
	stability  float64
	similarity float64
	http       *http.Client
}

// NewElevenLabs builds an ElevenLabs engine. Zero values take defaults.
func NewElevenLabs(cfg ElevenLabsConfig) *ElevenLabs {
	e := &ElevenLabs{
		key:        strings.TrimSpace(cfg.APIKey),
		baseURL:    strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		model:      strings.TrimSpace(cfg.Model),
		voice:      strings.TrimSpace(cfg.DefaultVoice),
		stability:  cfg.Stability,
		similarity: cfg.Similarity,
		voices:     make(map[string]string, len(cfg.VoiceMap)),
	}
	if e.baseURL == "" {
		e.baseURL = defaultElevenLabsURL
	}
	if e.model == "" {
		e.model = defaultElevenLabsModel
	}
	if e.voice == "" {
		e.voice = defaultElevenLabsVoice
	}
	if e.stability <= 0 {
		e.stability = defaultStability
	}
	if e.similarity <= 0 {
		e.similarity = defaultSimilarity
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultElevenLabsTimeout
	}
	e.http = &http.Client{Timeout: timeout}
	for lang, voice := range cfg.VoiceMap {
		if voice = strings.TrimSpace(voice); voice != "" {
			e.voices[strings.ToLower(strings.TrimSpace(lang))] = voice
		}
	}
	return e
}

func (e *ElevenLabs) Name() string { return ProviderElevenLabs }

func (e *ElevenLabs) Ext() string { return ".mp3" }

// Available reports whether an API key is configured.
func (e *ElevenLabs) Available() bool { return e != nil && e.key != "" }

// Voice picks the voice for lang: an exact map entry, then an entry sharing
// the base language, then the default voice.
func (e *ElevenLabs) Voice(lang string) string {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if v, ok := e.voices[lang]; ok {
		return v
	}
	base := language.Base(lang)
	keys := slices.Sorted(maps.Keys(e.voices))
	for _, k := range keys {
		if language.Base(k) == base {
			return e.voices[k]
		}
	}
	return e.voice
}

func (e *ElevenLabs) CacheIdentity(lang string) (string, string) {
	return strings.ToLower(strings.TrimSpace(lang)), fmt.Sprintf("voice=%s|model=%s", e.Voice(lang), e.model)
}

type elevenLabsRequest struct {
	Text          string `json:"text"`
	ModelID       string `json:"model_id"`
	VoiceSettings struct {
		Stability       float64 `json:"stability"`
		SimilarityBoost float64 `json:"similarity_boost"`
	} `json:"voice_settings"`
}

// Render posts text to the voice endpoint and returns MP3 bytes.
func (e *ElevenLabs) Render(ctx context.Context, text, lang string) ([]byte, error) {
	if !e.Available() {
		return nil, fmt.Errorf("elevenlabs: api key not configured")
	}
	payload := elevenLabsRequest{Text: text, ModelID: e.model}
	payload.VoiceSettings.Stability = e.stability
	payload.VoiceSettings.SimilarityBoost = e.similarity
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	endpoint := e.baseURL + "/v1/text-to-speech/" + url.PathEscape(e.Voice(lang))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("xi-api-key", e.key)
	req.Header.Set("Accept", "audio/mpeg")
	req.Header.Set("Content-Type", "application/json")
	data, err := readAudio(e.http, req)
	if err != nil {
		return nil, fmt.Errorf("elevenlabs: %w", err)
	}
	return data, nil
}
