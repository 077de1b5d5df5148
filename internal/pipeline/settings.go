package pipeline

import (
	"time"

	"lingoreel/internal/config"
	"lingoreel/internal/subtitles"
	"lingoreel/internal/timeline"
)

// Settings is the slice of configuration a Runner reads.
type Settings struct {
	Vocab          timeline.RepeatPolicy
	Scenario       timeline.RepeatPolicy
	Mode           string
	Title          string
	Bilingual      bool
	PrimaryLang    string
	SecondaryLang  string
	PrimaryIndex   int
	SecondaryIndex int

	GridSnap    bool
	GridMS      int
	ExternalSRT string

	InputFile string
	OutputDir string
	WorkDir   string

	Background  string
	SingleImage string
	ExportMP3   bool
	Subtitles   subtitles.ASSStyle
	MusicPath   string
	MusicGainDB float64

	TTSWorkers   int
	ImageWorkers int
	RunTimeout   time.Duration
}

// SettingsFromConfig maps a loaded configuration onto run settings.
func SettingsFromConfig(cfg *config.Config) Settings {
	if cfg == nil {
		def := config.Default()
		cfg = &def
	}
	return Settings{
		Vocab:          repeatPolicy(cfg.Timing.Vocab),
		Scenario:       repeatPolicy(cfg.Timing.Scenario),
		Mode:           cfg.Input.Mode,
		Title:          cfg.Input.Title,
		Bilingual:      cfg.Input.Bilingual,
		PrimaryLang:    cfg.PrimaryLanguage(),
		SecondaryLang:  cfg.SecondaryLanguage(),
		PrimaryIndex:   cfg.Input.PrimaryIndex,
		SecondaryIndex: cfg.Input.SecondaryIndex,
		GridSnap:       cfg.Timing.GridSnap,
		GridMS:         cfg.Timing.GridMS,
		ExternalSRT:    cfg.Timing.ExternalSRT,
		InputFile:      cfg.Paths.InputFile,
		OutputDir:      cfg.Paths.OutputDir,
		WorkDir:        cfg.Paths.WorkDir,
		Background:     cfg.Video.Background,
		SingleImage:    cfg.Video.Image,
		ExportMP3:      cfg.Video.ExportMP3,
		Subtitles: subtitles.ASSStyle{
			Font:     cfg.Subtitles.Font,
			FontSize: cfg.Subtitles.FontSize,
			Width:    cfg.Video.Width,
			Height:   cfg.Video.Height,
		},
		MusicPath:    cfg.Music.Path,
		MusicGainDB:  cfg.Music.GainDB,
		TTSWorkers:   cfg.Workers.TTS,
		ImageWorkers: cfg.Workers.Images,
		RunTimeout:   time.Duration(cfg.Workers.RunTimeoutSeconds) * time.Second,
	}
}

func repeatPolicy(r config.Repeat) timeline.RepeatPolicy {
	return timeline.RepeatPolicy{
		PrimaryRepeat:   r.PrimaryRepeat,
		SecondaryRepeat: r.SecondaryRepeat,
		PauseRepeatMS:   r.PauseRepeatMS,
		PauseSentenceMS: r.PauseSentenceMS,
	}
}

// policy returns the repeat policy for mode, defaulting to scenario.
func (s Settings) policy(mode string) timeline.RepeatPolicy {
	if mode == config.ModeVocab {
		return s.Vocab
	}
	return s.Scenario
}

func (s Settings) builder(mode string) timeline.Builder {
	return timeline.Builder{
		Policy:        s.policy(mode),
		Bilingual:     s.Bilingual,
		PrimaryLang:   s.PrimaryLang,
		SecondaryLang: s.SecondaryLang,
	}
}
