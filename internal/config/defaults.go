package config

// Input modes.
const (
	ModeVocab    = "vocab"
	ModeScenario = "scenario"
)

// Video background modes.
const (
	BackgroundNone        = "none"
	BackgroundSingle      = "single"
	BackgroundPerSentence = "per_sentence"
)

// Speech providers accepted in tts.routes.
const (
	ProviderGTTS       = "gtts"
	ProviderElevenLabs = "elevenlabs"
	ProviderPiper      = "piper"
)

// LLM providers.
const (
	LLMProviderOpenAI = "openai"
	LLMProviderOllama = "ollama"
)

const (
	defaultOutputDir         = "Output"
	defaultCacheDir          = ".cache"
	defaultWorkDir           = ".cache_video"
	defaultReferenceDir      = "reference"
	defaultKeyDir            = "~/.config/lingoreel"
	defaultEnvFile           = ".env"
	defaultGridMS            = 10
	defaultPlaceholderMS     = 800
	defaultTTSTimeoutSeconds = 20
	defaultElevenBaseURL     = "https://api.elevenlabs.io"
	defaultElevenModel       = "eleven_multilingual_v2"
	defaultElevenVoice       = "EXAVITQu4vr4xnSDxMaL"
	defaultElevenStability   = 0.45
	defaultElevenSimilarity  = 0.7
	defaultElevenTimeout     = 45
	defaultPiperLengthScale  = 1.0
	defaultPiperNoiseScale   = 0.667
	defaultPiperNoiseW       = 0.8
	defaultPerSentence       = 1
	defaultPerPage           = 20
	defaultTagThreshold      = 0.25
	defaultTrigramThreshold  = 0.62
	defaultMaxFallbacks      = 8
	defaultImageRetries      = 2
	defaultImageTimeout      = 15
	defaultWidth             = 1920
	defaultHeight            = 1080
	defaultFPS               = 30
	defaultColor             = "black"
	defaultFFmpegBinary      = "ffmpeg"
	defaultFont              = "Segoe UI Semibold"
	defaultFontSize          = 80
	defaultMusicGainDB       = -18
	defaultLLMTimeoutSeconds = 60
	defaultLLMTemperature    = 0.4
	defaultLLMLevel          = "A1"
	defaultLLMCount          = 8
	defaultTTSWorkers        = 4
	defaultImageWorkers      = 4
	defaultRunTimeoutSeconds = 900
	defaultLogFormat         = "console"
	defaultLogLevel          = "info"
)

// DefaultLanguages is the stock column language list.
var DefaultLanguages = []string{"en", "fr", "de", "es", "it", "pt", "hi", "zh-cn", "ru", "lb"}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			OutputDir:    defaultOutputDir,
			CacheDir:     defaultCacheDir,
			WorkDir:      defaultWorkDir,
			ReferenceDir: defaultReferenceDir,
			KeyDir:       defaultKeyDir,
			EnvFile:      defaultEnvFile,
		},
		Input: Input{
			Languages:      append([]string(nil), DefaultLanguages...),
			PrimaryIndex:   0,
			SecondaryIndex: 1,
			Mode:           ModeScenario,
			Bilingual:      true,
		},
		Timing: Timing{
			Vocab:    Repeat{PrimaryRepeat: 1, SecondaryRepeat: 2, PauseRepeatMS: 2500, PauseSentenceMS: 2500},
			Scenario: Repeat{PrimaryRepeat: 1, SecondaryRepeat: 2, PauseRepeatMS: 2500, PauseSentenceMS: 3500},
			GridSnap: true,
			GridMS:   defaultGridMS,
		},
		TTS: TTS{
			Routes:         map[string]string{"default": ProviderGTTS},
			PlaceholderMS:  defaultPlaceholderMS,
			TimeoutSeconds: defaultTTSTimeoutSeconds,
			ElevenLabs: ElevenLabs{
				BaseURL:        defaultElevenBaseURL,
				Model:          defaultElevenModel,
				DefaultVoice:   defaultElevenVoice,
				Stability:      defaultElevenStability,
				Similarity:     defaultElevenSimilarity,
				TimeoutSeconds: defaultElevenTimeout,
			},
			Piper: Piper{
				LengthScale: defaultPiperLengthScale,
				NoiseScale:  defaultPiperNoiseScale,
				NoiseW:      defaultPiperNoiseW,
			},
		},
		Images: Images{
			PerSentence:      defaultPerSentence,
			PerPage:          defaultPerPage,
			SafeSearch:       true,
			TagThreshold:     defaultTagThreshold,
			TrigramThreshold: defaultTrigramThreshold,
			MaxFallbacks:     defaultMaxFallbacks,
			Retries:          defaultImageRetries,
			TimeoutSeconds:   defaultImageTimeout,
		},
		Video: Video{
			Width:        defaultWidth,
			Height:       defaultHeight,
			FPS:          defaultFPS,
			Background:   BackgroundPerSentence,
			Color:        defaultColor,
			FFmpegBinary: defaultFFmpegBinary,
			ExportMP3:    true,
		},
		Subtitles: Subtitles{
			Font:     defaultFont,
			FontSize: defaultFontSize,
		},
		Music: Music{
			GainDB: defaultMusicGainDB,
		},
		LLM: LLM{
			Provider:       LLMProviderOpenAI,
			Temperature:    defaultLLMTemperature,
			TimeoutSeconds: defaultLLMTimeoutSeconds,
			Level:          defaultLLMLevel,
			Count:          defaultLLMCount,
		},
		Workers: Workers{
			TTS:               defaultTTSWorkers,
			Images:            defaultImageWorkers,
			RunTimeoutSeconds: defaultRunTimeoutSeconds,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
