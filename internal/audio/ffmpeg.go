package audio

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"strconv"
	"strings"

	"lingoreel/internal/logging"
	"lingoreel/internal/services"
)

// DefaultFFmpegBinary is used when no binary is configured.
const DefaultFFmpegBinary = "ffmpeg"

// MP3Bitrate is the export bitrate for narration MP3s.
const MP3Bitrate = "192k"

// CommandRunner executes name with args, feeding stdin when non-nil, and
// returns the captured stdout.
type CommandRunner func(ctx context.Context, stdin io.Reader, name string, args ...string) ([]byte, error)

// Codec converts provider audio to PCM segments and exports MP3 using ffmpeg.
type Codec struct {
	binary string
	logger *slog.Logger
	run    CommandRunner
}

// NewCodec constructs a codec for the given ffmpeg binary.
func NewCodec(binary string, logger *slog.Logger) *Codec {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = DefaultFFmpegBinary
	}
	return &Codec{
		binary: binary,
		logger: logging.NewComponentLogger(logger, "audio"),
		run:    defaultCommandRunner,
	}
}

// WithCommandRunner allows injecting a custom command runner for tests.
func (c *Codec) WithCommandRunner(r CommandRunner) {
	if c != nil && r != nil {
		c.run = r
	}
}

// Binary returns the configured ffmpeg command.
func (c *Codec) Binary() string {
	return c.binary
}

// Available reports whether the ffmpeg binary resolves on PATH.
func (c *Codec) Available() bool {
	_, err := exec.LookPath(c.binary)
	return err == nil
}

// Decode converts encoded audio bytes (mp3, wav, ...) to a PCM segment.
func (c *Codec) Decode(ctx context.Context, data []byte) (Segment, error) {
	if len(data) == 0 {
		return Segment{}, services.Wrap(services.ErrValidation, "audio", "decode", "empty input", nil)
	}
	out, err := c.run(ctx, bytes.NewReader(data), c.binary, decodeArgs("pipe:0")...)
	if err != nil {
		return Segment{}, services.Wrap(services.ErrExternalTool, "audio", "decode", "ffmpeg failed", err)
	}
	return NewSegment(out), nil
}

// DecodeFile converts an audio file on disk to a PCM segment.
func (c *Codec) DecodeFile(ctx context.Context, path string) (Segment, error) {
	out, err := c.run(ctx, nil, c.binary, decodeArgs(path)...)
	if err != nil {
		return Segment{}, services.Wrap(services.ErrExternalTool, "audio", "decode", path, err)
	}
	seg := NewSegment(out)
	c.logger.Debug("decoded audio file",
		logging.String("input_path", path),
		logging.Int("duration_ms", seg.DurationMS()),
	)
	return seg, nil
}

// EncodeMP3 transcodes a WAV file to MP3.
func (c *Codec) EncodeMP3(ctx context.Context, wavPath, mp3Path string) error {
	args := []string{
		"-hide_banner", "-loglevel", "error", "-y",
		"-i", wavPath,
		"-codec:a", "libmp3lame",
		"-b:a", MP3Bitrate,
		mp3Path,
	}
	if _, err := c.run(ctx, nil, c.binary, args...); err != nil {
		return services.Wrap(services.ErrExternalTool, "audio", "encode mp3", mp3Path, err)
	}
	return nil
}

func decodeArgs(input string) []string {
	return []string{
		"-hide_banner", "-loglevel", "error",
		"-i", input,
		"-f", "s16le",
		"-acodec", "pcm_s16le",
		"-ar", strconv.Itoa(SampleRate),
		"-ac", strconv.Itoa(Channels),
		"pipe:1",
	}
}

func defaultCommandRunner(ctx context.Context, stdin io.Reader, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec
	var stdout bytes.Buffer
	var stderr strings.Builder
	cmd.Stdin = stdin
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("%s %s: %w: %s", name, strings.Join(args, " "), err, strings.TrimSpace(stderr.String()))
	}
	return stdout.Bytes(), nil
}
