package timeline

import "fmt"

// MinTranslationGapMS is the floor for the silence between a primary cue and
// its translation.
const MinTranslationGapMS = 1700

// DefaultGridMS is the snap unit used for subtitle compatibility.
const DefaultGridMS = 10

// Cue is one timed utterance. EndMS is never before StartMS.
type Cue struct {
	StartMS     int
	EndMS       int
	Text        string
	Lang        string
	RepeatCount int
	IsPrimary   bool
	Tags        []string
}

// DurationMS returns the cue window length.
func (c Cue) DurationMS() int {
	if c.EndMS < c.StartMS {
		return 0
	}
	return c.EndMS - c.StartMS
}

func (c Cue) String() string {
	role := "secondary"
	if c.IsPrimary {
		role = "primary"
	}
	return fmt.Sprintf("%s[%s] %d-%d %q", role, c.Lang, c.StartMS, c.EndMS, c.Text)
}

// Line is one parsed input line.
type Line struct {
	Primary   string
	Secondary string
	Tags      []string
}

// HasSecondary reports whether the line carries a translation.
func (l Line) HasSecondary() bool {
	return l.Secondary != ""
}

// RepeatPolicy holds per-role repeat counts and pauses.
type RepeatPolicy struct {
	PrimaryRepeat   int
	SecondaryRepeat int
	PauseRepeatMS   int
	PauseSentenceMS int
}

// VocabPolicy is the default policy for vocabulary drills.
func VocabPolicy() RepeatPolicy {
	return RepeatPolicy{PrimaryRepeat: 1, SecondaryRepeat: 2, PauseRepeatMS: 2500, PauseSentenceMS: 2500}
}

// ScenarioPolicy is the default policy for dialogue scenarios.
func ScenarioPolicy() RepeatPolicy {
	return RepeatPolicy{PrimaryRepeat: 1, SecondaryRepeat: 2, PauseRepeatMS: 2500, PauseSentenceMS: 3500}
}

// TranslationGapMS returns the gap inserted after every primary cue.
func (p RepeatPolicy) TranslationGapMS() int {
	return max(p.PauseSentenceMS, MinTranslationGapMS)
}

// Window returns the length of a cue holding repeat copies of an utterance
// lasting durationMS with pauseMS between copies.
func Window(durationMS, repeat, pauseMS int) int {
	repeat = max(repeat, 1)
	durationMS = max(durationMS, 0)
	pauseMS = max(pauseMS, 0)
	return repeat*durationMS + (repeat-1)*pauseMS
}
