package pipeline

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"lingoreel/internal/audio"
	"lingoreel/internal/config"
	"lingoreel/internal/ingest"
	"lingoreel/internal/logging"
	"lingoreel/internal/services"
	"lingoreel/internal/slideshow"
	"lingoreel/internal/textutil"
	"lingoreel/internal/timeline"
	"lingoreel/internal/tts"
	"lingoreel/internal/visual"
)

// Stage names used for logging and progress callbacks.
const (
	StageIngest   = "ingest"
	StageSpeech   = "speech"
	StageTimeline = "timeline"
	StageAudio    = "audio"
	StageImages   = "images"
	StageOutputs  = "outputs"
)

// Speaker is the speech capability. Synthesize never fails; degraded results
// are reported through tts.Speech.Outcome.
type Speaker interface {
	Ready() error
	Synthesize(ctx context.Context, text, lang string) tts.Speech
}

// ImageResolver grounds one sentence in images.
type ImageResolver interface {
	Resolve(ctx context.Context, sentence, lang string, tags []string) visual.Resolution
}

// VideoRenderer encodes slideshow clips and muxes the final video.
type VideoRenderer interface {
	FPS() int
	Render(ctx context.Context, workDir string, clips []slideshow.Clip) (string, error)
	Mux(ctx context.Context, req slideshow.MuxRequest) error
}

// AudioCodec decodes background music and encodes the MP3 export.
type AudioCodec interface {
	DecodeFile(ctx context.Context, path string) (audio.Segment, error)
	EncodeMP3(ctx context.Context, wavPath, mp3Path string) error
}

// ProgressFunc receives per-stage progress. Calls are serialized.
type ProgressFunc func(stage string, done, total int)

// Request describes one render.
type Request struct {
	// Lines replaces the input file when non-empty.
	Lines     []string
	InputPath string
	Title     string
	Mode      string
}

// Runner executes renders. It is safe to reuse across sequential runs.
type Runner struct {
	settings Settings
	speaker  Speaker
	images   ImageResolver
	video    VideoRenderer
	codec    AudioCodec
	logger   *slog.Logger
	progress ProgressFunc
	now      func() time.Time
}

// Option customizes a Runner.
type Option func(*Runner)

// WithProgress registers a progress callback.
func WithProgress(fn ProgressFunc) Option {
	return func(r *Runner) {
		r.progress = fn
	}
}

// WithClock overrides the clock used for elapsed times.
func WithClock(now func() time.Time) Option {
	return func(r *Runner) {
		if now != nil {
			r.now = now
		}
	}
}

// New builds a Runner. images and codec may be nil: without a resolver every
// cue gets a solid background, and without a codec music mixing and MP3
// export are skipped.
func New(settings Settings, speaker Speaker, images ImageResolver, video VideoRenderer, codec AudioCodec, logger *slog.Logger, opts ...Option) *Runner {
	r := &Runner{
		settings: settings,
		speaker:  speaker,
		images:   images,
		video:    video,
		codec:    codec,
		logger:   logging.NewComponentLogger(logger, "pipeline"),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes one render. Per-cue failures degrade the report; only fatal
// conditions (no usable input, no speech capability, a failed encode or an
// unwritable output) are returned as errors. The report is returned
// alongside any error raised after the timeline exists.
func (r *Runner) Run(ctx context.Context, req Request) (*Report, error) {
	if r == nil || r.speaker == nil || r.video == nil {
		return nil, services.Wrap(services.ErrConfiguration, "pipeline", "run", "speech and video collaborators are required", nil)
	}
	started := r.now()
	runID := uuid.NewString()
	ctx = services.WithRunID(ctx, runID)
	logger := logging.WithContext(ctx, r.logger)

	if err := r.speaker.Ready(); err != nil {
		return nil, err
	}

	parsed, source, err := r.ingest(ctx, req)
	if err != nil {
		return nil, err
	}
	mode := r.resolveMode(req.Mode)
	builder := r.settings.builder(mode)
	title := r.resolveTitle(req, source, parsed.Lines)
	slug := textutil.Slug(title)

	report := &Report{
		RunID:   runID,
		Title:   title,
		Slug:    slug,
		Mode:    mode,
		Lines:   len(parsed.Lines),
		Skipped: len(parsed.Skipped),
	}
	logger.Info("render started",
		logging.String(logging.FieldEventType, "run_start"),
		logging.String("title", title),
		logging.String("mode", mode),
		logging.Int("lines", len(parsed.Lines)),
		logging.Bool("bilingual", builder.Bilingual),
		logging.String("background", r.settings.Background),
	)

	providerCtx, cancel := r.providerContext(ctx)
	defer cancel()

	speech := r.synthesize(providerCtx, builder, parsed.Lines)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	report.Speech = countSpeech(speech)

	tl, err := r.buildTimeline(ctx, builder, parsed.Lines, speech, slug, report)
	if err != nil {
		return report, err
	}
	report.Cues = len(tl.Cues)

	placements := placementsFor(tl, speech, builder.Policy)
	var (
		assembly audio.Assembly
		musicErr error
		images   imageSet
	)
	var g errgroup.Group
	g.Go(func() error {
		assembly, musicErr = r.assembleAudio(ctx, tl, placements)
		return nil
	})
	g.Go(func() error {
		images = r.resolveImages(providerCtx, tl)
		return nil
	})
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return report, err
	}
	if musicErr != nil {
		report.warn("background music skipped: %v", musicErr)
	}
	report.Overlaps = assembly.Overlaps
	report.Images = images.counts
	if assembly.Overlaps > 0 {
		logging.WarnWithContext(logger, "cues overlap on the output timeline", "cue_overlap",
			logging.Int("overlaps", assembly.Overlaps),
			logging.String(logging.FieldImpact, "overlapping cues are appended after the previous one"),
		)
	}

	report.TotalMS = max(tl.TotalMS, assembly.Audio.DurationMS())
	if err := r.writeOutputs(ctx, tl, assembly.Audio, images.paths, report); err != nil {
		report.Elapsed = r.now().Sub(started)
		return report, err
	}

	report.Elapsed = r.now().Sub(started)
	logger.Info("render completed",
		logging.String(logging.FieldEventType, "run_complete"),
		logging.String("video", report.Outputs.Video),
		logging.Int("cues", report.Cues),
		logging.Duration("audio_duration", time.Duration(report.TotalMS)*time.Millisecond),
		logging.Duration("elapsed", report.Elapsed),
		logging.Bool("degraded", report.Degraded()),
	)
	return report, nil
}

// providerContext bounds speech and image provider calls by the run timeout.
func (r *Runner) providerContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.settings.RunTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, r.settings.RunTimeout)
}

func (r *Runner) ingest(ctx context.Context, req Request) (ingest.Result, string, error) {
	logger := logging.WithContext(services.WithStage(ctx, StageIngest), r.logger)
	opts := ingest.Options{PrimaryIndex: r.settings.PrimaryIndex, SecondaryIndex: r.settings.SecondaryIndex}

	var (
		res    ingest.Result
		source string
		err    error
	)
	if len(req.Lines) > 0 {
		res, err = ingest.Parse(req.Lines, opts)
	} else {
		source = strings.TrimSpace(req.InputPath)
		if source == "" {
			source = r.settings.InputFile
		}
		if source == "" {
			return ingest.Result{}, "", services.Wrap(services.ErrConfiguration, StageIngest, "read input", "no input file configured", nil)
		}
		res, err = ingest.ReadFile(source, opts)
	}
	for _, skipped := range res.Skipped {
		logging.WarnWithContext(logger, "input line skipped", "input_line_skipped",
			logging.Int("line", skipped.LineNumber),
			logging.String("reason", skipped.Reason),
			logging.String("text", skipped.Text),
			logging.String(logging.FieldImpact, "line is left out of the render"),
		)
	}
	return res, source, err
}

func (r *Runner) resolveMode(mode string) string {
	mode = strings.ToLower(strings.TrimSpace(mode))
	if mode == "" {
		mode = strings.ToLower(strings.TrimSpace(r.settings.Mode))
	}
	if mode != config.ModeVocab {
		return config.ModeScenario
	}
	return mode
}

// resolveTitle prefers the request, then configuration, then the input file
// name, then the first primary line.
func (r *Runner) resolveTitle(req Request, source string, lines []timeline.Line) string {
	for _, candidate := range []string{req.Title, r.settings.Title} {
		if v := strings.TrimSpace(candidate); v != "" {
			return v
		}
	}
	if source != "" {
		base := filepath.Base(source)
		if stem := strings.TrimSuffix(base, filepath.Ext(base)); stem != "" {
			return stem
		}
	}
	if len(lines) > 0 {
		return lines[0].Primary
	}
	return ""
}
