package timeline

import (
	"fmt"
	"slices"
)

// Durations carries the measured length of one line's utterances. A zero
// SecondaryMS is valid for lines without a translation.
type Durations struct {
	PrimaryMS   int
	SecondaryMS int
}

// Builder drafts cue timelines.
type Builder struct {
	Policy        RepeatPolicy
	Bilingual     bool
	PrimaryLang   string
	SecondaryLang string
}

// Timeline is an ordered cue sequence plus its cumulative length.
type Timeline struct {
	Cues    []Cue
	TotalMS int
}

// Draft lays lines out back to back using the measured durations, which
// must align with lines by index.
func (b Builder) Draft(lines []Line, durations []Durations) (Timeline, error) {
	if len(lines) != len(durations) {
		return Timeline{}, fmt.Errorf("draft timeline: %d lines but %d durations", len(lines), len(durations))
	}
	policy := b.Policy
	policy.PauseSentenceMS = max(policy.PauseSentenceMS, 0)

	cues := make([]Cue, 0, len(lines)*2)
	t := 0
	for i, line := range lines {
		window := Window(durations[i].PrimaryMS, policy.PrimaryRepeat, policy.PauseRepeatMS)
		cues = append(cues, Cue{
			StartMS:     t,
			EndMS:       t + window,
			Text:        line.Primary,
			Lang:        b.PrimaryLang,
			RepeatCount: max(policy.PrimaryRepeat, 1),
			IsPrimary:   true,
			Tags:        slices.Clone(line.Tags),
		})
		t += window
		t += policy.TranslationGapMS()

		if b.Bilingual && line.HasSecondary() {
			window = Window(durations[i].SecondaryMS, policy.SecondaryRepeat, policy.PauseRepeatMS)
			cues = append(cues, Cue{
				StartMS:     t,
				EndMS:       t + window,
				Text:        line.Secondary,
				Lang:        b.SecondaryLang,
				RepeatCount: max(policy.SecondaryRepeat, 1),
			})
			t += window
		}
		t += policy.PauseSentenceMS
	}
	return Timeline{Cues: cues, TotalMS: t}, nil
}

// Speaks reports whether the secondary utterance of a line will be voiced.
func (b Builder) Speaks(line Line) bool {
	return b.Bilingual && line.HasSecondary()
}

// Span is an externally supplied cue window.
type Span struct {
	StartMS int
	EndMS   int
}

// ApplyExternal replaces cue windows by index with spans from an external
// timing source. Text, language and tags are untouched, and the timeline
// then ends with its last external cue. When the span count does not match
// the cue count the draft is kept and false is returned.
func (tl *Timeline) ApplyExternal(spans []Span) bool {
	if tl == nil || len(spans) == 0 || len(spans) != len(tl.Cues) {
		return false
	}
	for i, span := range spans {
		start := max(span.StartMS, 0)
		tl.Cues[i].StartMS = start
		tl.Cues[i].EndMS = max(span.EndMS, start)
	}
	tl.TotalMS = tl.LastEndMS()
	return true
}

// Snap rounds every boundary to the nearest multiple of gridMS and clamps
// each end so it never precedes its start.
func (tl *Timeline) Snap(gridMS int) {
	if tl == nil || gridMS <= 1 {
		return
	}
	for i := range tl.Cues {
		c := &tl.Cues[i]
		c.StartMS = roundTo(c.StartMS, gridMS)
		c.EndMS = max(roundTo(c.EndMS, gridMS), c.StartMS)
	}
	tl.TotalMS = max(tl.TotalMS, tl.LastEndMS())
}

// LastEndMS returns the largest cue end.
func (tl Timeline) LastEndMS() int {
	end := 0
	for _, c := range tl.Cues {
		end = max(end, c.EndMS)
	}
	return end
}

// Sorted reports whether cues are in nondecreasing start order with valid
// windows.
func (tl Timeline) Sorted() bool {
	for i, c := range tl.Cues {
		if c.EndMS < c.StartMS {
			return false
		}
		if i > 0 && c.StartMS < tl.Cues[i-1].StartMS {
			return false
		}
	}
	return true
}

// Primaries returns the index of the most recent primary cue for every cue,
// or -1 before the first primary.
func (tl Timeline) Primaries() []int {
	owners := make([]int, len(tl.Cues))
	last := -1
	for i, c := range tl.Cues {
		if c.IsPrimary {
			last = i
		}
		owners[i] = last
	}
	return owners
}

func roundTo(v, grid int) int {
	if v <= 0 {
		return 0
	}
	return (v + grid/2) / grid * grid
}
