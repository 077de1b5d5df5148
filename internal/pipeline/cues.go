package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"lingoreel/internal/logging"
	"lingoreel/internal/services"
	"lingoreel/internal/subtitles"
	"lingoreel/internal/timeline"
)

// buildTimeline drafts cues from measured durations and writes the draft
// SRT. An external SRT, when configured, then replaces cue windows by index,
// and grid snapping runs last.
func (r *Runner) buildTimeline(ctx context.Context, builder timeline.Builder, lines []timeline.Line, speech []lineSpeech, slug string, report *Report) (timeline.Timeline, error) {
	ctx = services.WithStage(ctx, StageTimeline)
	done := r.begin(ctx, StageTimeline, len(lines))
	defer done()

	tl, err := builder.Draft(lines, durationsFor(speech))
	if err != nil {
		return timeline.Timeline{}, services.Wrap(services.ErrValidation, StageTimeline, "draft", "", err)
	}
	if err := os.MkdirAll(r.settings.OutputDir, 0o755); err != nil {
		return tl, services.Wrap(services.ErrConfiguration, StageTimeline, "create output dir", r.settings.OutputDir, err)
	}
	draftPath := filepath.Join(r.settings.OutputDir, slug+".srt")
	if err := subtitles.SaveSRT(draftPath, subtitles.FromCues(tl.Cues)); err != nil {
		return tl, services.Wrap(services.ErrConfiguration, StageTimeline, "write draft subtitles", draftPath, err)
	}

	if external := strings.TrimSpace(r.settings.ExternalSRT); external != "" {
		report.ExternalTiming = r.applyExternal(ctx, &tl, external, report)
	}
	if r.settings.GridSnap {
		tl.Snap(r.settings.GridMS)
	}
	return tl, nil
}

// applyExternal loads cue windows from an SRT file. Unreadable, malformed or
// mismatched files keep the draft timing and only add a warning.
func (r *Runner) applyExternal(ctx context.Context, tl *timeline.Timeline, path string, report *Report) bool {
	logger := logging.WithContext(ctx, r.logger)
	keep := func(reason string, attrs ...logging.Attr) bool {
		attrs = append(attrs,
			logging.String("path", path),
			logging.String(logging.FieldImpact, "draft timing is kept"),
		)
		logging.WarnWithContext(logger, "external timing ignored: "+reason, "external_timing_ignored", attrs...)
		report.warn("external timing ignored: %s", reason)
		return false
	}

	entries, err := subtitles.ReadSRT(path)
	if err != nil {
		return keep("unreadable", logging.Error(err))
	}
	if issues := subtitles.Validate(entries, 0); len(issues) > 0 {
		return keep("invalid", logging.String("issues", strings.Join(issues, "; ")))
	}
	if !tl.ApplyExternal(subtitles.Spans(entries)) {
		return keep("cue count mismatch",
			logging.Int("external_cues", len(entries)),
			logging.Int("cues", len(tl.Cues)),
		)
	}
	logger.Info("external timing applied",
		logging.String(logging.FieldEventType, "external_timing_applied"),
		logging.String("path", path),
		logging.Int("cues", len(tl.Cues)),
	)
	return true
}
