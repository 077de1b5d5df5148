package slideshow

import (
	"math"

	"lingoreel/internal/timeline"
)

// Background modes.
const (
	ModeNone        = "none"
	ModeSingle      = "single"
	ModePerSentence = "per_sentence"
)

// Clip is one still segment of the base video. An empty Image renders the
// background colour.
type Clip struct {
	StartMS int
	EndMS   int
	Frames  int
	Image   string
}

// Spans returns the visual span of every cue: [start, next start), with the
// last span ending at totalMS. Spans never run backwards.
func Spans(cues []timeline.Cue, totalMS int) []timeline.Span {
	spans := make([]timeline.Span, len(cues))
	for i, c := range cues {
		end := totalMS
		if i < len(cues)-1 {
			end = cues[i+1].StartMS
		}
		spans[i] = timeline.Span{StartMS: c.StartMS, EndMS: max(end, c.StartMS)}
	}
	return spans
}

// FrameCount returns round(durationMS * fps / 1000). Empty and negative
// durations have no frames.
func FrameCount(durationMS, fps int) int {
	return int(math.Round(float64(max(durationMS, 0)) * float64(fps) / 1000))
}

// PerSentence plans one clip per cue. images aligns with cues by index; a
// missing or empty entry becomes a colour clip. When the first cue starts
// late, a leading colour clip covers the gap so the video starts at zero.
// Spans too short for a frame are skipped so later image changes stay on
// their cue starts.
func PerSentence(cues []timeline.Cue, images []string, totalMS, fps int) []Clip {
	spans := Spans(cues, totalMS)
	clips := make([]Clip, 0, len(spans)+1)
	if len(spans) > 0 {
		if frames := FrameCount(spans[0].StartMS, fps); frames > 0 {
			clips = append(clips, Clip{EndMS: spans[0].StartMS, Frames: frames})
		}
	}
	for i, span := range spans {
		clip := Clip{
			StartMS: span.StartMS,
			EndMS:   span.EndMS,
			Frames:  FrameCount(span.EndMS-span.StartMS, fps),
		}
		if clip.Frames == 0 {
			continue
		}
		if i < len(images) {
			clip.Image = images[i]
		}
		clips = append(clips, clip)
	}
	if len(clips) == 0 {
		return Single("", totalMS, fps)
	}
	return clips
}

// Single plans one clip covering the whole timeline. It always has at least
// one frame.
func Single(image string, totalMS, fps int) []Clip {
	frames := max(FrameCount(totalMS, fps), 1)
	return []Clip{{StartMS: 0, EndMS: max(totalMS, 0), Frames: frames, Image: image}}
}
