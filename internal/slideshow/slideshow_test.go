package slideshow

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"slices"
	"strings"
	"testing"

	"lingoreel/internal/logging"
	"lingoreel/internal/services"
	"lingoreel/internal/timeline"
)

func cuesAt(starts ...int) []timeline.Cue {
	cues := make([]timeline.Cue, len(starts))
	for i, s := range starts {
		cues[i] = timeline.Cue{StartMS: s, EndMS: s + 100, IsPrimary: true}
	}
	return cues
}

func TestSpansAndFrames(t *testing.T) {
	cues := cuesAt(0, 4300, 9000)
	spans := Spans(cues, 12000)
	want := []timeline.Span{{StartMS: 0, EndMS: 4300}, {StartMS: 4300, EndMS: 9000}, {StartMS: 9000, EndMS: 12000}}
	if !reflect.DeepEqual(spans, want) {
		t.Fatalf("Spans = %+v", spans)
	}
	clips := PerSentence(cues, []string{"a.jpg", "", "c.jpg"}, 12000, 30)
	frames := []int{clips[0].Frames, clips[1].Frames, clips[2].Frames}
	if !reflect.DeepEqual(frames, []int{129, 141, 90}) {
		t.Fatalf("frames = %v", frames)
	}
	if clips[1].Image != "" || clips[2].Image != "c.jpg" {
		t.Fatalf("images not aligned: %+v", clips)
	}
}

func TestSpansNeverRunBackwards(t *testing.T) {
	spans := Spans(cuesAt(500, 400), 300)
	for _, s := range spans {
		if s.EndMS < s.StartMS {
			t.Fatalf("inverted span %+v", s)
		}
	}
}

func TestFrameCount(t *testing.T) {
	tests := []struct{ ms, fps, want int }{
		{0, 30, 0},
		{10, 30, 0},
		{50, 30, 2},
		{1000, 25, 25},
		{4317, 30, 130},
		{-10, 30, 0},
	}
	for _, tt := range tests {
		if got := FrameCount(tt.ms, tt.fps); got != tt.want {
			t.Errorf("FrameCount(%d, %d) = %d, want %d", tt.ms, tt.fps, got, tt.want)
		}
	}
}

func TestPerSentenceLeadingGap(t *testing.T) {
	clips := PerSentence(cuesAt(1000, 2000), []string{"a.jpg", "b.jpg"}, 3000, 30)
	if len(clips) != 3 || clips[0].Image != "" || clips[0].EndMS != 1000 || clips[0].Frames != 30 {
		t.Fatalf("expected leading colour clip, got %+v", clips)
	}
}

func TestPerSentenceSkipsEmptySpans(t *testing.T) {
	cues := cuesAt(0, 1000, 1000, 2000)
	clips := PerSentence(cues, []string{"a.jpg", "b.jpg", "c.jpg", "d.jpg"}, 3000, 30)
	if len(clips) != 3 {
		t.Fatalf("expected the shared-start cue to be skipped, got %+v", clips)
	}
	if clips[1].Image != "c.jpg" || clips[1].StartMS != 1000 || clips[2].Image != "d.jpg" {
		t.Fatalf("unexpected clips %+v", clips)
	}
	elapsed := 0
	for i, c := range clips {
		if c.StartMS*30/1000 != elapsed {
			t.Fatalf("clip %d starts at frame %d, want %d", i, elapsed, c.StartMS*30/1000)
		}
		elapsed += c.Frames
	}
	if elapsed != 90 {
		t.Fatalf("total frames = %d, want 90", elapsed)
	}
}

func TestPerSentenceWithoutFramesFallsBackToColour(t *testing.T) {
	clips := PerSentence(cuesAt(0), []string{"a.jpg"}, 0, 30)
	if len(clips) != 1 || clips[0].Image != "" || clips[0].Frames != 1 {
		t.Fatalf("unexpected clips %+v", clips)
	}
}

func TestSingle(t *testing.T) {
	clips := Single("bg.jpg", 12000, 30)
	if len(clips) != 1 || clips[0].Frames != 360 || clips[0].Image != "bg.jpg" {
		t.Fatalf("unexpected clips %+v", clips)
	}
}

type call struct {
	dir  string
	args []string
}

func TestRenderSolidFallback(t *testing.T) {
	a := NewAssembler(Options{}, logging.NewNop())
	var calls []call
	a.WithCommandRunner(func(_ context.Context, dir, name string, args ...string) error {
		if name != "ffmpeg" {
			t.Errorf("binary = %q", name)
		}
		calls = append(calls, call{dir: dir, args: args})
		return nil
	})
	work := t.TempDir()
	clips := PerSentence(cuesAt(0, 4300, 9000), []string{"", "b.jpg", ""}, 12000, a.FPS())
	out, err := a.Render(context.Background(), work, clips)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if out != filepath.Join(work, "slideshow.mp4") {
		t.Fatalf("output = %q", out)
	}
	if len(calls) != 4 {
		t.Fatalf("expected 3 clips + concat, got %d calls", len(calls))
	}

	first := strings.Join(calls[0].args, " ")
	if !strings.Contains(first, "color=c=black:s=1920x1080:r=30") || !strings.Contains(first, "-frames:v 129") {
		t.Fatalf("unexpected colour clip args: %s", first)
	}
	second := strings.Join(calls[1].args, " ")
	if !strings.Contains(second, "-loop 1 -i b.jpg") || !strings.Contains(second, "crop=1920:1080") || !strings.Contains(second, "-frames:v 141") {
		t.Fatalf("unexpected image clip args: %s", second)
	}
	if !strings.Contains(strings.Join(calls[2].args, " "), "-frames:v 90") {
		t.Fatalf("unexpected third clip args: %v", calls[2].args)
	}
	concat := calls[3].args
	if !slices.Contains(concat, "concat") || !slices.Contains(concat, "copy") {
		t.Fatalf("concat should stream copy: %v", concat)
	}

	list, err := os.ReadFile(filepath.Join(work, "list.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.Count(string(list), "file '"); got != 3 {
		t.Fatalf("list has %d entries", got)
	}
}

func TestRenderErrors(t *testing.T) {
	a := NewAssembler(Options{FPS: 25}, logging.NewNop())
	if _, err := a.Render(context.Background(), t.TempDir(), nil); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	a.WithCommandRunner(func(context.Context, string, string, ...string) error {
		return errors.New("exit status 1")
	})
	_, err := a.Render(context.Background(), t.TempDir(), Single("", 1000, 25))
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected external tool error, got %v", err)
	}
}

func TestMuxArgs(t *testing.T) {
	dir := t.TempDir()
	a := NewAssembler(Options{}, logging.NewNop())
	req := MuxRequest{
		VideoPath:     filepath.Join(dir, "cache", "slideshow.mp4"),
		AudioPath:     filepath.Join(dir, "Output", "lesson.wav"),
		SubtitlesPath: filepath.Join(dir, "Output", "lesson.ass"),
		OutputPath:    filepath.Join(dir, "Output", "lesson.mp4"),
	}
	var gotDir string
	var gotArgs []string
	a.WithCommandRunner(func(_ context.Context, d, _ string, args ...string) error {
		gotDir = d
		gotArgs = args
		return nil
	})
	if err := a.Mux(context.Background(), req); err != nil {
		t.Fatalf("Mux: %v", err)
	}
	if gotDir != filepath.Join(dir, "Output") {
		t.Fatalf("dir = %q", gotDir)
	}
	joined := strings.Join(gotArgs, " ")
	for _, want := range []string{
		"subtitles=filename=lesson.ass:charenc=UTF-8:force_style='Alignment=5,BorderStyle=1,Outline=3,Shadow=2'",
		"-c:a aac -b:a 192k -ar 48000 -ac 2",
		"-shortest " + req.OutputPath,
	} {
		if !strings.Contains(joined, want) {
			t.Errorf("mux args missing %q: %s", want, joined)
		}
	}
	if err := a.Mux(context.Background(), MuxRequest{VideoPath: "v.mp4"}); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
