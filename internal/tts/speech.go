package tts

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"lingoreel/internal/artifactcache"
	"lingoreel/internal/audio"
	"lingoreel/internal/language"
	"lingoreel/internal/logging"
	"lingoreel/internal/services"
)

// Namespace is the artifact cache namespace for encoded speech.
const Namespace = "tts"

// DefaultPlaceholderMS is the length of the silence used when synthesis fails.
const DefaultPlaceholderMS = 800

// Provider names.
const (
	ProviderGTTS       = "gtts"
	ProviderElevenLabs = "elevenlabs"
	ProviderPiper      = "piper"
)

// DefaultRouteKey selects the provider for languages without their own route.
const DefaultRouteKey = "default"

// Outcome classifies how a Speech was produced.
type Outcome int

const (
	OutcomeSpoken Outcome = iota
	OutcomeFallback
	OutcomePlaceholder
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSpoken:
		return "spoken"
	case OutcomeFallback:
		return "fallback"
	case OutcomePlaceholder:
		return "placeholder"
	}
	return "unknown"
}

// Speech is one synthesized utterance.
type Speech struct {
	Audio    audio.Segment
	Provider string
	Outcome  Outcome
	Cached   bool
	// Err holds the last provider error for fallback and placeholder
	// outcomes.
	Err      error
}

// DurationMS returns the utterance length.
func (s Speech) DurationMS() int {
	return s.Audio.DurationMS()
}

// Store persists encoded engine output.
type Store interface {
	GetOrCreate(ctx context.Context, namespace, name, source string, fetch artifactcache.FetchFunc) (string, bool, error)
}

// Decoder converts a cached audio file to PCM.
type Decoder interface {
	DecodeFile(ctx context.Context, path string) (audio.Segment, error)
	Available() bool
	Binary() string
}

// engine renders encoded audio for one provider.
type engine interface {
	Name() string
	// Ext is the cached file extension, including the dot.
	Ext() string
	// CacheIdentity returns the language and extra settings folded into the
	// cache key.
	CacheIdentity(lang string) (keyLang, extra string)
	Render(ctx context.Context, text, lang string) ([]byte, error)
}

// Config configures a Synthesizer.
type Config struct {
	// Routes maps a language code, or DefaultRouteKey, to a provider name.
	Routes        map[string]string
	GTTS          GTTSConfig
	ElevenLabs    ElevenLabsConfig
	Piper         PiperConfig
	PlaceholderMS int
}

// Synthesizer implements the speech capability.
type Synthesizer struct {
	routes        map[string]string
	gtts          *GTTS
	eleven        *ElevenLabs
	piper         *Piper
	store         Store
	decoder       Decoder
	logger        *slog.Logger
	placeholderMS int
	elevenWarn    sync.Once
}

// Option customizes a Synthesizer.
type Option func(*Synthesizer)

// WithEngines replaces the default engines, typically with test doubles
// pointed at local servers.
func WithEngines(g *GTTS, e *ElevenLabs, p *Piper) Option {
	return func(s *Synthesizer) {
		if g != nil {
			s.gtts = g
		}
		if e != nil {
			s.eleven = e
		}
		if p != nil {
			s.piper = p
		}
	}
}

// NewSynthesizer builds a Synthesizer.
func NewSynthesizer(cfg Config, store Store, decoder Decoder, logger *slog.Logger, opts ...Option) *Synthesizer {
	routes := make(map[string]string, len(cfg.Routes))
	for lang, provider := range cfg.Routes {
		key := strings.ToLower(strings.TrimSpace(lang))
		if key != DefaultRouteKey && key != "_default" {
			key = language.Canonical(key)
		} else {
			key = DefaultRouteKey
		}
		routes[key] = strings.ToLower(strings.TrimSpace(provider))
	}
	placeholder := cfg.PlaceholderMS
	if placeholder <= 0 {
		placeholder = DefaultPlaceholderMS
	}
	s := &Synthesizer{
		routes:        routes,
		gtts:          NewGTTS(cfg.GTTS),
		eleven:        NewElevenLabs(cfg.ElevenLabs),
		piper:         NewPiper(cfg.Piper),
		store:         store,
		decoder:       decoder,
		logger:        logging.NewComponentLogger(logger, "tts"),
		placeholderMS: placeholder,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Ready returns ErrSpeechUnavailable when no audio can be decoded at all.
func (s *Synthesizer) Ready() error {
	if s == nil || s.decoder == nil {
		return services.Wrap(services.ErrSpeechUnavailable, "tts", "ready", "no decoder configured", nil)
	}
	if !s.decoder.Available() {
		return services.Wrap(services.ErrSpeechUnavailable, "tts", "ready",
			fmt.Sprintf("decoder binary %q not found", s.decoder.Binary()), nil)
	}
	return nil
}

// Route returns the provider configured for lang.
func (s *Synthesizer) Route(lang string) string {
	if p, ok := s.routes[language.Canonical(lang)]; ok && p != "" {
		return p
	}
	if p, ok := s.routes[DefaultRouteKey]; ok && p != "" {
		return p
	}
	return ProviderGTTS
}

// Synthesize renders text in lang. It never fails; see Speech.Outcome.
func (s *Synthesizer) Synthesize(ctx context.Context, text, lang string) Speech {
	text = strings.TrimSpace(text)
	if text == "" {
		return s.placeholder("", fmt.Errorf("empty text"))
	}
	provider := s.Route(lang)
	outcome := OutcomeSpoken

	var eng engine
	switch provider {
	case ProviderPiper:
		eng = s.piper
	case ProviderElevenLabs:
		if s.eleven.Available() {
			eng = s.eleven
			break
		}
		s.elevenWarn.Do(func() {
			logging.WarnWithContext(logging.WithContext(ctx, s.logger), "elevenlabs api key missing; using gtts", "tts_key_missing",
				logging.String(logging.FieldErrorHint, "set ELEVENLABS_API_KEY or tts.elevenlabs.api_key"),
				logging.String(logging.FieldImpact, "narration uses the gtts voice"),
			)
		})
		eng = s.gtts
		outcome = OutcomeFallback
	default:
		eng = s.gtts
	}

	speech, err := s.render(ctx, eng, text, lang)
	if err == nil {
		speech.Outcome = outcome
		return speech
	}
	if eng.Name() == ProviderElevenLabs {
		s.logger.Warn("elevenlabs synthesis failed; falling back to gtts",
			logging.String("lang", lang),
			logging.Error(err),
		)
		fallback, gErr := s.render(ctx, s.gtts, text, lang)
		if gErr == nil {
			fallback.Outcome = OutcomeFallback
			fallback.Err = err
			return fallback
		}
		err = gErr
	}
	logging.WarnWithContext(logging.WithContext(ctx, s.logger), "speech synthesis failed; using silent placeholder", "tts_placeholder",
		logging.String("provider", eng.Name()),
		logging.String("lang", lang),
		logging.String(logging.FieldImpact, "cue is silent"),
		logging.Error(err),
	)
	return s.placeholder(eng.Name(), err)
}

func (s *Synthesizer) placeholder(provider string, err error) Speech {
	return Speech{
		Audio:    audio.Silence(s.placeholderMS),
		Provider: provider,
		Outcome:  OutcomePlaceholder,
		Err:      err,
	}
}

func (s *Synthesizer) render(ctx context.Context, eng engine, text, lang string) (Speech, error) {
	keyLang, extra := eng.CacheIdentity(lang)
	name := CacheName(eng.Name(), keyLang, text, extra) + eng.Ext()
	path, hit, err := s.store.GetOrCreate(ctx, Namespace, name, eng.Name()+":"+keyLang, func(ctx context.Context) ([]byte, error) {
		return eng.Render(ctx, text, lang)
	})
	if err != nil {
		return Speech{}, err
	}
	seg, err := s.decoder.DecodeFile(ctx, path)
	if err != nil {
		return Speech{}, err
	}
	if seg.Empty() {
		return Speech{}, fmt.Errorf("%s produced no audio", eng.Name())
	}
	s.logger.Debug("speech ready",
		logging.String("provider", eng.Name()),
		logging.String("lang", lang),
		logging.Int("duration_ms", seg.DurationMS()),
		logging.Bool("cache_hit", hit),
	)
	return Speech{Audio: seg, Provider: eng.Name(), Cached: hit}, nil
}

// CacheName returns the hex SHA-256 of provider|lang|text, with |extra
// appended when extra is set.
func CacheName(provider, lang, text, extra string) string {
	h := sha256.New()
	h.Write([]byte(provider))
	h.Write([]byte("|"))
	h.Write([]byte(lang))
	h.Write([]byte("|"))
	h.Write([]byte(text))
	if extra != "" {
		h.Write([]byte("|"))
		h.Write([]byte(extra))
	}
	return hex.EncodeToString(h.Sum(nil))
}
