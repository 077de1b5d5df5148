package pipeline

import (
	"context"

	"golang.org/x/sync/errgroup"

	"lingoreel/internal/audio"
	"lingoreel/internal/services"
	"lingoreel/internal/timeline"
	"lingoreel/internal/tts"
)

// lineSpeech holds the utterances of one input line. secondary is zero when
// the translation is not voiced.
type lineSpeech struct {
	primary   tts.Speech
	secondary tts.Speech
	voiced    bool
}

// synthesize renders every line on a bounded pool. Results are indexed by
// line so completion order is irrelevant.
func (r *Runner) synthesize(ctx context.Context, builder timeline.Builder, lines []timeline.Line) []lineSpeech {
	ctx = services.WithStage(ctx, StageSpeech)
	done := r.begin(ctx, StageSpeech, len(lines))
	defer done()

	out := make([]lineSpeech, len(lines))
	track := r.tracker(ctx, StageSpeech, len(lines))
	var g errgroup.Group
	g.SetLimit(max(r.settings.TTSWorkers, 1))
	for i, line := range lines {
		g.Go(func() error {
			lineCtx := services.WithCueIndex(ctx, i)
			out[i].primary = r.speaker.Synthesize(lineCtx, line.Primary, builder.PrimaryLang)
			if builder.Speaks(line) {
				out[i].secondary = r.speaker.Synthesize(lineCtx, line.Secondary, builder.SecondaryLang)
				out[i].voiced = true
			}
			track.step()
			return nil
		})
	}
	_ = g.Wait()
	return out
}

func durationsFor(speech []lineSpeech) []timeline.Durations {
	out := make([]timeline.Durations, len(speech))
	for i, s := range speech {
		out[i] = timeline.Durations{PrimaryMS: s.primary.DurationMS()}
		if s.voiced {
			out[i].SecondaryMS = s.secondary.DurationMS()
		}
	}
	return out
}

func countSpeech(speech []lineSpeech) SpeechCounts {
	var counts SpeechCounts
	add := func(s tts.Speech) {
		switch s.Outcome {
		case tts.OutcomeSpoken:
			counts.Spoken++
		case tts.OutcomeFallback:
			counts.Fallback++
		default:
			counts.Placeholder++
		}
		if s.Cached {
			counts.Cached++
		}
	}
	for _, s := range speech {
		add(s.primary)
		if s.voiced {
			add(s.secondary)
		}
	}
	return counts
}

// placementsFor pairs every cue with its utterance. Cues follow line order
// with each primary opening a new line, so a running line index is enough.
func placementsFor(tl timeline.Timeline, speech []lineSpeech, policy timeline.RepeatPolicy) []audio.Placement {
	out := make([]audio.Placement, 0, len(tl.Cues))
	line := -1
	for _, c := range tl.Cues {
		var utterance audio.Segment
		if c.IsPrimary {
			line++
			if line < len(speech) {
				utterance = speech[line].primary.Audio
			}
		} else if line >= 0 && line < len(speech) {
			utterance = speech[line].secondary.Audio
		}
		out = append(out, audio.Placement{
			StartMS:   c.StartMS,
			EndMS:     c.EndMS,
			Utterance: utterance,
			Repeat:    c.RepeatCount,
			GapMS:     policy.PauseRepeatMS,
		})
	}
	return out
}

// assembleAudio fits the narration and, when configured, mixes background
// music under it. A music failure is returned for reporting only; the
// narration is still usable.
func (r *Runner) assembleAudio(ctx context.Context, tl timeline.Timeline, placements []audio.Placement) (audio.Assembly, error) {
	ctx = services.WithStage(ctx, StageAudio)
	done := r.begin(ctx, StageAudio, len(placements))
	defer done()

	asm := audio.Assemble(placements, tl.TotalMS)
	if r.settings.MusicPath == "" || r.codec == nil {
		return asm, nil
	}
	music, err := r.codec.DecodeFile(ctx, r.settings.MusicPath)
	if err != nil {
		return asm, err
	}
	asm.Audio = audio.MixMusic(asm.Audio, music, r.settings.MusicGainDB)
	return asm, nil
}
