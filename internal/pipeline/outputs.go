package pipeline

import (
	"context"
	"os"
	"path/filepath"

	"lingoreel/internal/audio"
	"lingoreel/internal/config"
	"lingoreel/internal/logging"
	"lingoreel/internal/services"
	"lingoreel/internal/slideshow"
	"lingoreel/internal/subtitles"
	"lingoreel/internal/timeline"
)

// writeOutputs exports narration and subtitles, then renders and muxes the
// video. The MP3 export is best effort; every other failure is fatal.
func (r *Runner) writeOutputs(ctx context.Context, tl timeline.Timeline, narration audio.Segment, images []string, report *Report) error {
	ctx = services.WithStage(ctx, StageOutputs)
	logger := logging.WithContext(ctx, r.logger)
	done := r.begin(ctx, StageOutputs, len(tl.Cues))
	defer done()

	base := filepath.Join(r.settings.OutputDir, report.Slug)
	out := &report.Outputs

	out.WAV = base + ".wav"
	if err := audio.SaveWAV(out.WAV, narration); err != nil {
		return services.Wrap(services.ErrConfiguration, StageOutputs, "write wav", out.WAV, err)
	}
	if r.settings.ExportMP3 && r.codec != nil {
		mp3 := base + ".mp3"
		if err := r.codec.EncodeMP3(ctx, out.WAV, mp3); err != nil {
			logging.WarnWithContext(logger, "mp3 export failed", "mp3_export_failed",
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "check the ffmpeg build for libmp3lame"),
				logging.String(logging.FieldImpact, "only the wav narration is written"),
			)
			report.warn("mp3 export failed: %v", err)
		} else {
			out.MP3 = mp3
		}
	}

	entries := subtitles.FromCues(tl.Cues)
	out.SRT = base + ".srt"
	if err := subtitles.SaveSRT(out.SRT, entries); err != nil {
		return services.Wrap(services.ErrConfiguration, StageOutputs, "write srt", out.SRT, err)
	}
	out.ASS = base + ".ass"
	if err := subtitles.SaveASS(out.ASS, entries, r.settings.Subtitles); err != nil {
		return services.Wrap(services.ErrConfiguration, StageOutputs, "write ass", out.ASS, err)
	}

	workDir := filepath.Join(r.settings.WorkDir, report.RunID)
	clips := r.clips(ctx, tl, images, report)
	basePath, err := r.video.Render(ctx, workDir, clips)
	if err != nil {
		logger.Error("slideshow render failed",
			logging.String(logging.FieldEventType, "render_failed"),
			logging.String("work_dir", workDir),
			logging.Error(err),
		)
		return err
	}
	video := base + ".mp4"
	if err := r.video.Mux(ctx, slideshow.MuxRequest{
		VideoPath:     basePath,
		AudioPath:     out.WAV,
		SubtitlesPath: out.ASS,
		OutputPath:    video,
	}); err != nil {
		logger.Error("video mux failed",
			logging.String(logging.FieldEventType, "mux_failed"),
			logging.String("work_dir", workDir),
			logging.Error(err),
		)
		return err
	}
	out.Video = video
	if err := os.RemoveAll(workDir); err != nil {
		logger.Debug("work dir cleanup failed", logging.String("work_dir", workDir), logging.Error(err))
	}
	return nil
}

// clips plans the base video for the configured background mode.
func (r *Runner) clips(ctx context.Context, tl timeline.Timeline, images []string, report *Report) []slideshow.Clip {
	fps := r.video.FPS()
	switch r.settings.Background {
	case config.BackgroundNone:
		return slideshow.Single("", report.TotalMS, fps)
	case config.BackgroundSingle:
		image := r.settings.SingleImage
		if _, err := os.Stat(image); err != nil {
			logging.WarnWithContext(logging.WithContext(ctx, r.logger), "background image unavailable", "background_image_missing",
				logging.String("path", image),
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "set video.image to an existing file"),
				logging.String(logging.FieldImpact, "video uses a solid background"),
			)
			report.warn("background image unavailable: %s", image)
			image = ""
		}
		return slideshow.Single(image, report.TotalMS, fps)
	default:
		return slideshow.PerSentence(tl.Cues, images, report.TotalMS, fps)
	}
}
