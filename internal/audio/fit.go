package audio

// Fit repeats utterance repeat times with gapMS of silence between copies and
// pads or truncates the result to exactly targetMS.
func Fit(utterance Segment, targetMS, repeat, gapMS int) Segment {
	targetMS = max(targetMS, 0)
	repeat = max(repeat, 1)
	gap := Silence(gapMS)

	parts := make([]Segment, 0, repeat*2-1)
	for i := range repeat {
		if i > 0 {
			parts = append(parts, gap)
		}
		parts = append(parts, utterance)
	}
	built := Concat(parts...)
	if built.DurationMS() < targetMS {
		return built.PadTo(targetMS)
	}
	return built.Truncate(targetMS)
}

// Placement is one cue's utterance and window on the output timeline.
type Placement struct {
	StartMS   int
	EndMS     int
	Utterance Segment
	Repeat    int
	GapMS     int
}

// Assembly is the final narration plus layout diagnostics.
type Assembly struct {
	Audio Segment
	// Overlaps counts placements whose start was already behind the output
	// cursor. They are appended at the cursor.
	Overlaps int
}

// Assemble fits every placement to its window and lays them out in order,
// inserting silence whenever the next start is ahead of the cursor. The
// result lasts at least totalMS.
func Assemble(placements []Placement, totalMS int) Assembly {
	parts := make([]Segment, 0, len(placements)*2+1)
	cursor := 0
	overlaps := 0
	for _, p := range placements {
		start := max(p.StartMS, 0)
		switch {
		case start > cursor:
			parts = append(parts, Silence(start-cursor))
			cursor = start
		case start < cursor:
			overlaps++
		}
		fitted := Fit(p.Utterance, p.EndMS-p.StartMS, p.Repeat, p.GapMS)
		parts = append(parts, fitted)
		cursor += fitted.DurationMS()
	}
	if totalMS > cursor {
		parts = append(parts, Silence(totalMS-cursor))
	}
	return Assembly{Audio: Concat(parts...), Overlaps: overlaps}
}

// MixMusic loops music under narration, attenuated by gainDB. The narration
// length is kept.
func MixMusic(narration, music Segment, gainDB float64) Segment {
	if music.Empty() || narration.Empty() {
		return narration
	}
	bed := music.Gain(gainDB).Loop(narration.DurationMS())
	return narration.Overlay(bed)
}
