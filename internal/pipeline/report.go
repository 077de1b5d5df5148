package pipeline

import (
	"fmt"
	"time"
)

// Outputs lists the files a run produced. Empty paths were not written.
type Outputs struct {
	WAV   string
	MP3   string
	SRT   string
	ASS   string
	Video string
}

// SpeechCounts tallies synthesis outcomes across all voiced utterances.
type SpeechCounts struct {
	Spoken      int
	Fallback    int
	Placeholder int
	Cached      int
}

// ImageCounts tallies image resolution across primary cues.
type ImageCounts struct {
	Resolved int
	Partial  int
	Missing  int
	Cached   int
}

// Report summarizes one render.
type Report struct {
	RunID          string
	Title          string
	Slug           string
	Mode           string
	Lines          int
	Skipped        int
	Cues           int
	TotalMS        int
	Outputs        Outputs
	Speech         SpeechCounts
	Images         ImageCounts
	Overlaps       int
	ExternalTiming bool
	Warnings       []string
	Elapsed        time.Duration
}

// Degraded reports whether any cue fell back to silence or a solid
// background, or anything else was skipped.
func (r *Report) Degraded() bool {
	if r == nil {
		return false
	}
	return r.Skipped > 0 ||
		r.Speech.Placeholder > 0 ||
		r.Images.Missing > 0 ||
		r.Overlaps > 0 ||
		len(r.Warnings) > 0
}

func (r *Report) warn(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}
