package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"lingoreel/internal/audio"
	"lingoreel/internal/config"
	"lingoreel/internal/logging"
	"lingoreel/internal/services"
	"lingoreel/internal/slideshow"
	"lingoreel/internal/subtitles"
	"lingoreel/internal/timeline"
	"lingoreel/internal/tts"
	"lingoreel/internal/visual"
)

type fakeSpeaker struct {
	readyErr    error
	placeholder map[string]bool
	mu          sync.Mutex
	calls       []string
}

func (f *fakeSpeaker) Ready() error { return f.readyErr }

// Synthesize voices primaries (en) for 1000ms and translations for 800ms.
func (f *fakeSpeaker) Synthesize(_ context.Context, text, lang string) tts.Speech {
	f.mu.Lock()
	f.calls = append(f.calls, lang+":"+text)
	f.mu.Unlock()
	if f.placeholder[text] {
		return tts.Speech{Audio: audio.Silence(800), Outcome: tts.OutcomePlaceholder, Err: errors.New("offline")}
	}
	ms := 800
	if lang == "en" {
		ms = 1000
	}
	return tts.Speech{Audio: audio.Silence(ms), Provider: tts.ProviderGTTS, Outcome: tts.OutcomeSpoken}
}

type fakeResolver struct {
	block bool
	mu    sync.Mutex
	tags  map[string][]string
}

func (f *fakeResolver) Resolve(ctx context.Context, sentence, _ string, tags []string) visual.Resolution {
	f.mu.Lock()
	if f.tags == nil {
		f.tags = make(map[string][]string)
	}
	f.tags[sentence] = tags
	f.mu.Unlock()
	if f.block {
		<-ctx.Done()
		return visual.Resolution{Status: visual.StatusUnresolved}
	}
	return visual.Resolution{
		Status: visual.StatusResolved,
		Images: []visual.Image{{Path: "/img/" + sentence + ".jpg"}},
	}
}

func (f *fakeResolver) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.tags)
}

type fakeVideo struct {
	muxErr error
	clips  []slideshow.Clip
	mux    slideshow.MuxRequest
}

func (f *fakeVideo) FPS() int { return 30 }

func (f *fakeVideo) Render(_ context.Context, workDir string, clips []slideshow.Clip) (string, error) {
	f.clips = clips
	if err := os.MkdirAll(workDir, 0o755); err != nil {
		return "", err
	}
	return filepath.Join(workDir, "base.mp4"), nil
}

func (f *fakeVideo) Mux(_ context.Context, req slideshow.MuxRequest) error {
	f.mux = req
	if f.muxErr != nil {
		return f.muxErr
	}
	return os.WriteFile(req.OutputPath, []byte("mp4"), 0o644)
}

type fakeCodec struct {
	musicErr error
	mp3s     []string
}

func (f *fakeCodec) DecodeFile(context.Context, string) (audio.Segment, error) {
	if f.musicErr != nil {
		return audio.Segment{}, f.musicErr
	}
	return audio.Silence(500), nil
}

func (f *fakeCodec) EncodeMP3(_ context.Context, _, mp3Path string) error {
	f.mp3s = append(f.mp3s, mp3Path)
	return nil
}

func testSettings(t *testing.T) Settings {
	t.Helper()
	root := t.TempDir()
	return Settings{
		Vocab:          timeline.VocabPolicy(),
		Scenario:       timeline.ScenarioPolicy(),
		Mode:           config.ModeScenario,
		Bilingual:      true,
		PrimaryLang:    "en",
		SecondaryLang:  "fr",
		PrimaryIndex:   0,
		SecondaryIndex: 1,
		GridSnap:       true,
		GridMS:         10,
		OutputDir:      filepath.Join(root, "Output"),
		WorkDir:        filepath.Join(root, "work"),
		Background:     config.BackgroundPerSentence,
		ExportMP3:      true,
		TTSWorkers:     2,
		ImageWorkers:   2,
	}
}

var lessonLines = []string{
	"Hello #greeting | Bonjour",
	"",
	"Thank you | Merci",
}

func cueStarts(t *testing.T, path string) []int {
	t.Helper()
	entries, err := subtitles.ReadSRT(path)
	if err != nil {
		t.Fatalf("read srt: %v", err)
	}
	starts := make([]int, len(entries))
	for i, e := range entries {
		starts[i] = e.StartMS
	}
	return starts
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestRunPerSentence(t *testing.T) {
	settings := testSettings(t)
	speaker := &fakeSpeaker{}
	resolver := &fakeResolver{}
	video := &fakeVideo{}
	codec := &fakeCodec{}

	var mu sync.Mutex
	progress := map[string]int{}
	runner := New(settings, speaker, resolver, video, codec, logging.NewNop(), WithProgress(func(stage string, done, total int) {
		mu.Lock()
		defer mu.Unlock()
		if done > total {
			t.Errorf("stage %s reported %d of %d", stage, done, total)
		}
		progress[stage] = done
	}))

	report, err := runner.Run(context.Background(), Request{Lines: lessonLines, Title: "Lesson One"})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if report.Slug != "lesson_one" || report.Mode != config.ModeScenario {
		t.Fatalf("unexpected slug/mode %q/%q", report.Slug, report.Mode)
	}
	if report.Lines != 2 || report.Cues != 4 {
		t.Fatalf("expected 2 lines and 4 cues, got %d/%d", report.Lines, report.Cues)
	}
	if report.TotalMS != 24200 {
		t.Fatalf("expected 24200ms timeline, got %d", report.TotalMS)
	}
	if report.Speech.Spoken != 4 || report.Speech.Placeholder != 0 {
		t.Fatalf("unexpected speech counts %+v", report.Speech)
	}
	if report.Images.Resolved != 2 || report.Images.Missing != 0 {
		t.Fatalf("unexpected image counts %+v", report.Images)
	}
	if report.Degraded() {
		t.Fatalf("expected clean run, warnings: %v", report.Warnings)
	}
	if len(speaker.calls) != 4 {
		t.Fatalf("expected 4 synthesis calls, got %v", speaker.calls)
	}
	if got := resolver.tags["Hello"]; len(got) != 1 || got[0] != "greeting" {
		t.Fatalf("expected hashtag passed to resolver, got %v", got)
	}
	if resolver.calls() != 2 {
		t.Fatalf("expected only primary cues resolved, got %d", resolver.calls())
	}

	if starts := cueStarts(t, report.Outputs.SRT); !equalInts(starts, []int{0, 4500, 12100, 16600}) {
		t.Fatalf("unexpected cue starts %v", starts)
	}
	info, err := os.Stat(report.Outputs.WAV)
	if err != nil {
		t.Fatalf("stat wav: %v", err)
	}
	if want := int64(44 + 24200*audio.BytesPerMS); info.Size() != want {
		t.Fatalf("expected wav of %d bytes, got %d", want, info.Size())
	}
	for _, path := range []string{report.Outputs.ASS, report.Outputs.Video} {
		if _, err := os.Stat(path); err != nil {
			t.Fatalf("expected output %s: %v", path, err)
		}
	}
	if len(codec.mp3s) != 1 || report.Outputs.MP3 != codec.mp3s[0] {
		t.Fatalf("expected mp3 export, got %v / %q", codec.mp3s, report.Outputs.MP3)
	}

	wantImages := []string{"/img/Hello.jpg", "/img/Hello.jpg", "/img/Thank you.jpg", "/img/Thank you.jpg"}
	if len(video.clips) != len(wantImages) {
		t.Fatalf("expected %d clips, got %d", len(wantImages), len(video.clips))
	}
	for i, clip := range video.clips {
		if clip.Image != wantImages[i] {
			t.Fatalf("clip %d image = %q, want %q", i, clip.Image, wantImages[i])
		}
	}
	if last := video.clips[3]; last.EndMS != 24200 || last.Frames != slideshow.FrameCount(24200-16600, 30) {
		t.Fatalf("last clip should absorb trailing silence, got %+v", last)
	}
	if video.mux.AudioPath != report.Outputs.WAV || video.mux.SubtitlesPath != report.Outputs.ASS {
		t.Fatalf("unexpected mux request %+v", video.mux)
	}
	if _, err := os.Stat(filepath.Join(settings.WorkDir, report.RunID)); !os.IsNotExist(err) {
		t.Fatalf("expected work dir removed, got %v", err)
	}
	if progress[StageSpeech] != 2 || progress[StageImages] != 2 {
		t.Fatalf("unexpected progress %v", progress)
	}
}

func TestRunVocabFromFileWithSolidBackground(t *testing.T) {
	settings := testSettings(t)
	settings.Background = config.BackgroundNone
	settings.ExportMP3 = false
	input := filepath.Join(t.TempDir(), "greetings.txt")
	if err := os.WriteFile(input, []byte(strings.Join(lessonLines, "\n")), 0o644); err != nil {
		t.Fatal(err)
	}
	resolver := &fakeResolver{}
	video := &fakeVideo{}
	codec := &fakeCodec{}
	runner := New(settings, &fakeSpeaker{}, resolver, video, codec, logging.NewNop())

	report, err := runner.Run(context.Background(), Request{InputPath: input, Mode: "VOCAB"})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if report.Title != "greetings" || report.Mode != config.ModeVocab {
		t.Fatalf("unexpected title/mode %q/%q", report.Title, report.Mode)
	}
	if report.TotalMS != 20200 {
		t.Fatalf("expected vocab timeline of 20200ms, got %d", report.TotalMS)
	}
	if resolver.calls() != 0 {
		t.Fatal("solid background must not search images")
	}
	if len(video.clips) != 1 || video.clips[0].Image != "" || video.clips[0].Frames != 606 {
		t.Fatalf("unexpected clips %+v", video.clips)
	}
	if report.Outputs.MP3 != "" || len(codec.mp3s) != 0 {
		t.Fatal("mp3 export should be disabled")
	}
	if filepath.Base(report.Outputs.Video) != "greetings.mp4" {
		t.Fatalf("unexpected video path %q", report.Outputs.Video)
	}
}

func TestRunFatalErrors(t *testing.T) {
	t.Run("no valid input", func(t *testing.T) {
		runner := New(testSettings(t), &fakeSpeaker{}, nil, &fakeVideo{}, nil, logging.NewNop())
		_, err := runner.Run(context.Background(), Request{Lines: []string{"no separator", "  "}})
		if !errors.Is(err, services.ErrNoValidInput) {
			t.Fatalf("expected ErrNoValidInput, got %v", err)
		}
		if !services.IsFatal(err) {
			t.Fatal("expected fatal error")
		}
	})
	t.Run("speech unavailable", func(t *testing.T) {
		speaker := &fakeSpeaker{readyErr: services.Wrap(services.ErrSpeechUnavailable, "tts", "ready", "ffmpeg missing", nil)}
		runner := New(testSettings(t), speaker, nil, &fakeVideo{}, nil, logging.NewNop())
		_, err := runner.Run(context.Background(), Request{Lines: lessonLines})
		if !errors.Is(err, services.ErrSpeechUnavailable) {
			t.Fatalf("expected ErrSpeechUnavailable, got %v", err)
		}
		if len(speaker.calls) != 0 {
			t.Fatal("nothing should be synthesized")
		}
	})
	t.Run("missing input file", func(t *testing.T) {
		runner := New(testSettings(t), &fakeSpeaker{}, nil, &fakeVideo{}, nil, logging.NewNop())
		_, err := runner.Run(context.Background(), Request{InputPath: filepath.Join(t.TempDir(), "missing.txt")})
		if !errors.Is(err, services.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
	t.Run("no input configured", func(t *testing.T) {
		runner := New(testSettings(t), &fakeSpeaker{}, nil, &fakeVideo{}, nil, logging.NewNop())
		_, err := runner.Run(context.Background(), Request{})
		if !errors.Is(err, services.ErrConfiguration) {
			t.Fatalf("expected ErrConfiguration, got %v", err)
		}
	})
	t.Run("mux failure", func(t *testing.T) {
		muxErr := services.Wrap(services.ErrExternalTool, "slideshow", "mux", "exit status 1", nil)
		runner := New(testSettings(t), &fakeSpeaker{}, &fakeResolver{}, &fakeVideo{muxErr: muxErr}, nil, logging.NewNop())
		report, err := runner.Run(context.Background(), Request{Lines: lessonLines})
		if !errors.Is(err, services.ErrExternalTool) {
			t.Fatalf("expected ErrExternalTool, got %v", err)
		}
		if report == nil || report.Outputs.WAV == "" || report.Outputs.Video != "" {
			t.Fatalf("expected partial outputs in report, got %+v", report)
		}
	})
}

func TestRunTimeoutDegradesImages(t *testing.T) {
	settings := testSettings(t)
	settings.RunTimeout = 20 * time.Millisecond
	speaker := &fakeSpeaker{placeholder: map[string]bool{"Merci": true}}
	video := &fakeVideo{}
	runner := New(settings, speaker, &fakeResolver{block: true}, video, nil, logging.NewNop())

	report, err := runner.Run(context.Background(), Request{Lines: lessonLines})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if report.Images.Missing != 2 {
		t.Fatalf("expected both sentences unresolved, got %+v", report.Images)
	}
	if report.Speech.Placeholder != 1 || report.Speech.Spoken != 3 {
		t.Fatalf("unexpected speech counts %+v", report.Speech)
	}
	if !report.Degraded() {
		t.Fatal("expected degraded report")
	}
	for i, clip := range video.clips {
		if clip.Image != "" {
			t.Fatalf("clip %d should be a solid background, got %q", i, clip.Image)
		}
	}
	if report.Outputs.Video == "" {
		t.Fatal("expected video despite timeout")
	}
}

func TestRunExternalTiming(t *testing.T) {
	external := []subtitles.Entry{
		{StartMS: 0, EndMS: 1000, Text: "Hello"},
		{StartMS: 5000, EndMS: 9000, Text: "Bonjour"},
		{StartMS: 12000, EndMS: 13000, Text: "Thank you"},
		{StartMS: 16000, EndMS: 20000, Text: "Merci"},
	}

	t.Run("applied", func(t *testing.T) {
		settings := testSettings(t)
		settings.ExternalSRT = filepath.Join(t.TempDir(), "aligned.srt")
		if err := subtitles.SaveSRT(settings.ExternalSRT, external); err != nil {
			t.Fatal(err)
		}
		runner := New(settings, &fakeSpeaker{}, &fakeResolver{}, &fakeVideo{}, nil, logging.NewNop())
		report, err := runner.Run(context.Background(), Request{Lines: lessonLines})
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
		if !report.ExternalTiming {
			t.Fatalf("expected external timing, warnings: %v", report.Warnings)
		}
		if starts := cueStarts(t, report.Outputs.SRT); !equalInts(starts, []int{0, 5000, 12000, 16000}) {
			t.Fatalf("unexpected cue starts %v", starts)
		}
		if report.TotalMS != 20000 {
			t.Fatalf("expected output to end with the last external cue at 20000ms, got %d", report.TotalMS)
		}
	})

	t.Run("count mismatch keeps draft", func(t *testing.T) {
		settings := testSettings(t)
		settings.ExternalSRT = filepath.Join(t.TempDir(), "short.srt")
		if err := subtitles.SaveSRT(settings.ExternalSRT, external[:2]); err != nil {
			t.Fatal(err)
		}
		runner := New(settings, &fakeSpeaker{}, &fakeResolver{}, &fakeVideo{}, nil, logging.NewNop())
		report, err := runner.Run(context.Background(), Request{Lines: lessonLines})
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
		if report.ExternalTiming {
			t.Fatal("mismatched external timing must be ignored")
		}
		if len(report.Warnings) != 1 || !strings.Contains(report.Warnings[0], "cue count mismatch") {
			t.Fatalf("unexpected warnings %v", report.Warnings)
		}
		if starts := cueStarts(t, report.Outputs.SRT); !equalInts(starts, []int{0, 4500, 12100, 16600}) {
			t.Fatalf("expected draft timing, got %v", starts)
		}
	})
}

func TestRunMusicFailureIsWarning(t *testing.T) {
	settings := testSettings(t)
	settings.MusicPath = "/music/loop.mp3"
	codec := &fakeCodec{musicErr: errors.New("decode failed")}
	runner := New(settings, &fakeSpeaker{}, &fakeResolver{}, &fakeVideo{}, codec, logging.NewNop())

	report, err := runner.Run(context.Background(), Request{Lines: lessonLines})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(report.Warnings) != 1 || !strings.Contains(report.Warnings[0], "background music skipped") {
		t.Fatalf("unexpected warnings %v", report.Warnings)
	}
}

func TestPlacementsFor(t *testing.T) {
	builder := timeline.Builder{Policy: timeline.VocabPolicy(), Bilingual: true, PrimaryLang: "en", SecondaryLang: "fr"}
	lines := []timeline.Line{{Primary: "One", Secondary: "Un"}, {Primary: "Two"}}
	speech := []lineSpeech{
		{primary: tts.Speech{Audio: audio.Silence(900)}, secondary: tts.Speech{Audio: audio.Silence(700)}, voiced: true},
		{primary: tts.Speech{Audio: audio.Silence(600)}},
	}
	tl, err := builder.Draft(lines, durationsFor(speech))
	if err != nil {
		t.Fatal(err)
	}
	placements := placementsFor(tl, speech, builder.Policy)
	if len(placements) != 3 {
		t.Fatalf("expected 3 placements, got %d", len(placements))
	}
	wantUtterances := []int{900, 700, 600}
	for i, p := range placements {
		if p.Utterance.DurationMS() != wantUtterances[i] {
			t.Fatalf("placement %d utterance = %dms, want %dms", i, p.Utterance.DurationMS(), wantUtterances[i])
		}
		fitted := audio.Fit(p.Utterance, p.EndMS-p.StartMS, p.Repeat, p.GapMS)
		if fitted.DurationMS() != p.EndMS-p.StartMS {
			t.Fatalf("placement %d does not fit its window", i)
		}
	}
}

func TestSettingsFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Input.Languages = []string{"de", "en"}
	cfg.Input.PrimaryIndex = 1
	cfg.Input.SecondaryIndex = 0
	cfg.Workers.RunTimeoutSeconds = 30

	settings := SettingsFromConfig(&cfg)
	if settings.PrimaryLang != "en" || settings.SecondaryLang != "de" {
		t.Fatalf("unexpected languages %q/%q", settings.PrimaryLang, settings.SecondaryLang)
	}
	if settings.RunTimeout != 30*time.Second {
		t.Fatalf("unexpected run timeout %v", settings.RunTimeout)
	}
	if settings.policy(config.ModeVocab) != settings.Vocab || settings.policy("") != settings.Scenario {
		t.Fatal("unexpected policy selection")
	}
	if settings.Subtitles.Width != cfg.Video.Width || settings.Subtitles.Font != cfg.Subtitles.Font {
		t.Fatalf("unexpected subtitle style %+v", settings.Subtitles)
	}
}
