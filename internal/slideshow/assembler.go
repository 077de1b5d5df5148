package slideshow

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"lingoreel/internal/audio"
	"lingoreel/internal/fileutil"
	"lingoreel/internal/logging"
	"lingoreel/internal/services"
)

// Defaults for Options.
const (
	DefaultWidth  = 1920
	DefaultHeight = 1080
	DefaultFPS    = 30
	DefaultColor  = "black"
	ffmpegCommand = "ffmpeg"
	subtitleStyle = "Alignment=5,BorderStyle=1,Outline=3,Shadow=2"
)

// commandRunner executes name with args in dir.
type commandRunner func(ctx context.Context, dir, name string, args ...string) error

// Options configures frame geometry and tooling.
type Options struct {
	Width  int
	Height int
	FPS    int
	Color  string
	FFmpeg string
}

func (o Options) withDefaults() Options {
	if o.Width <= 0 {
		o.Width = DefaultWidth
	}
	if o.Height <= 0 {
		o.Height = DefaultHeight
	}
	if o.FPS <= 0 {
		o.FPS = DefaultFPS
	}
	if strings.TrimSpace(o.Color) == "" {
		o.Color = DefaultColor
	}
	if strings.TrimSpace(o.FFmpeg) == "" {
		o.FFmpeg = ffmpegCommand
	}
	return o
}

// Assembler renders clips with ffmpeg.
type Assembler struct {
	opts   Options
	logger *slog.Logger
	run    commandRunner
}

// NewAssembler constructs an assembler.
func NewAssembler(opts Options, logger *slog.Logger) *Assembler {
	return &Assembler{
		opts:   opts.withDefaults(),
		logger: logging.NewComponentLogger(logger, "slideshow"),
		run:    defaultCommandRunner,
	}
}

// WithCommandRunner allows injecting a custom command runner for tests.
func (a *Assembler) WithCommandRunner(r commandRunner) {
	if a != nil && r != nil {
		a.run = r
	}
}

// FPS returns the configured frame rate.
func (a *Assembler) FPS() int { return a.opts.FPS }

// Render encodes every clip into workDir and concatenates them into a silent
// base video, returning its path. Clips must be non-empty.
func (a *Assembler) Render(ctx context.Context, workDir string, clips []Clip) (string, error) {
	if len(clips) == 0 {
		return "", services.Wrap(services.ErrValidation, "slideshow", "render", "no clips", nil)
	}
	if err := os.MkdirAll(workDir, 0o755); err != nil {
		return "", services.Wrap(services.ErrConfiguration, "slideshow", "render", "create work dir", err)
	}
	workDir, err := filepath.Abs(workDir)
	if err != nil {
		return "", err
	}

	var list strings.Builder
	frames := 0
	for i, clip := range clips {
		seg := filepath.Join(workDir, fmt.Sprintf("seg_%04d.mp4", i+1))
		if err := a.run(ctx, workDir, a.opts.FFmpeg, a.ClipArgs(clip, seg)...); err != nil {
			return "", services.Wrap(services.ErrExternalTool, "slideshow", "render clip", fmt.Sprintf("clip %d", i+1), err)
		}
		fmt.Fprintf(&list, "file '%s'\n", strings.ReplaceAll(seg, "'", `'\''`))
		frames += clip.Frames
	}

	listPath := filepath.Join(workDir, "list.txt")
	if err := fileutil.WriteFileAtomic(listPath, []byte(list.String()), 0o644); err != nil {
		return "", err
	}
	out := filepath.Join(workDir, "slideshow.mp4")
	if err := a.run(ctx, workDir, a.opts.FFmpeg, ConcatArgs(listPath, out)...); err != nil {
		return "", services.Wrap(services.ErrExternalTool, "slideshow", "concat", "", err)
	}
	a.logger.Info("base video rendered",
		logging.Int("clip_count", len(clips)),
		logging.Int("frames", frames),
		logging.String("output_path", out),
	)
	return out, nil
}

// ClipArgs returns the ffmpeg arguments for one clip.
func (a *Assembler) ClipArgs(clip Clip, output string) []string {
	w, h, fps := a.opts.Width, a.opts.Height, strconv.Itoa(a.opts.FPS)
	args := []string{"-hide_banner", "-loglevel", "error", "-y"}
	if clip.Image != "" {
		vf := fmt.Sprintf("scale=w='if(gte(a,%d/%d),-1,%d)':h='if(gte(a,%d/%d),%d,-1)',crop=%d:%d,fps=%s,format=yuv420p",
			w, h, w, w, h, h, w, h, fps)
		args = append(args, "-loop", "1", "-i", clip.Image, "-vf", vf)
	} else {
		args = append(args, "-f", "lavfi", "-i", fmt.Sprintf("color=c=%s:s=%dx%d:r=%s", a.opts.Color, w, h, fps))
	}
	return append(args,
		"-r", fps,
		"-frames:v", strconv.Itoa(max(clip.Frames, 1)),
		"-c:v", "libx264", "-pix_fmt", "yuv420p",
		output,
	)
}

// ConcatArgs joins clip files listed in listPath without re-encoding.
func ConcatArgs(listPath, output string) []string {
	return []string{
		"-hide_banner", "-loglevel", "error", "-y",
		"-f", "concat", "-safe", "0",
		"-i", listPath,
		"-c", "copy",
		"-an",
		output,
	}
}

// MuxRequest describes the final mux inputs.
type MuxRequest struct {
	VideoPath     string
	AudioPath     string
	SubtitlesPath string // ASS file burned into the picture
	OutputPath    string
}

// Mux burns subtitles onto the base video and adds the narration, trimming
// to the shorter stream.
func (a *Assembler) Mux(ctx context.Context, req MuxRequest) error {
	if req.VideoPath == "" || req.AudioPath == "" || req.OutputPath == "" {
		return services.Wrap(services.ErrValidation, "slideshow", "mux", "video, audio and output paths are required", nil)
	}
	dir, args, err := a.MuxArgs(req)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(req.OutputPath), 0o755); err != nil {
		return services.Wrap(services.ErrConfiguration, "slideshow", "mux", "create output dir", err)
	}
	if err := a.run(ctx, dir, a.opts.FFmpeg, args...); err != nil {
		return services.Wrap(services.ErrExternalTool, "slideshow", "mux", req.OutputPath, err)
	}
	return nil
}

// MuxArgs returns the working directory and ffmpeg arguments for Mux. The
// subtitle filter references the ASS file by name from its own directory so
// no filter-graph path escaping is needed.
func (a *Assembler) MuxArgs(req MuxRequest) (string, []string, error) {
	video, err := filepath.Abs(req.VideoPath)
	if err != nil {
		return "", nil, err
	}
	audioPath, err := filepath.Abs(req.AudioPath)
	if err != nil {
		return "", nil, err
	}
	output, err := filepath.Abs(req.OutputPath)
	if err != nil {
		return "", nil, err
	}
	dir := filepath.Dir(output)
	args := []string{"-hide_banner", "-loglevel", "error", "-y", "-i", video, "-i", audioPath}
	if req.SubtitlesPath != "" {
		subs, err := filepath.Abs(req.SubtitlesPath)
		if err != nil {
			return "", nil, err
		}
		dir = filepath.Dir(subs)
		args = append(args, "-vf",
			fmt.Sprintf("subtitles=filename=%s:charenc=UTF-8:force_style='%s'", filepath.Base(subs), subtitleStyle))
	}
	args = append(args,
		"-c:v", "libx264", "-pix_fmt", "yuv420p",
		"-c:a", "aac", "-b:a", "192k",
		"-ar", strconv.Itoa(audio.SampleRate), "-ac", strconv.Itoa(audio.Channels),
		"-shortest", output,
	)
	return dir, args, nil
}

func defaultCommandRunner(ctx context.Context, dir, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec
	cmd.Dir = dir
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%w: %s", err, strings.TrimSpace(string(output)))
	}
	return nil
}
