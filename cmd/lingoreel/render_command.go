package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"lingoreel/internal/config"
	"lingoreel/internal/fileutil"
	"lingoreel/internal/linegen"
	"lingoreel/internal/pipeline"
	"lingoreel/internal/services/llm"
)

type renderOptions struct {
	input      string
	title      string
	mode       string
	background string
	timeout    time.Duration
	noProgress bool

	generate bool
	topic    string
	level    string
	count    int
}

func newRenderCommand(ctx *commandContext) *cobra.Command {
	var opts renderOptions

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render narration, subtitles and video from an input file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runRender(runCtx, cmd, cfg, logger, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.input, "input", "i", "", "Input file with 'primary | secondary' lines (defaults to paths.input_file)")
	flags.StringVarP(&opts.title, "title", "t", "", "Title used for output file names")
	flags.StringVarP(&opts.mode, "mode", "m", "", "Repeat policy: vocab or scenario")
	flags.StringVar(&opts.background, "background", "", "Video background: none, single or per_sentence")
	flags.DurationVar(&opts.timeout, "timeout", 0, "Bound on speech and image provider calls (e.g. 10m)")
	flags.BoolVar(&opts.noProgress, "no-progress", false, "Disable progress bars")
	flags.BoolVarP(&opts.generate, "generate", "g", false, "Generate the input lines with the configured LLM first")
	flags.StringVar(&opts.topic, "topic", "", "Topic for generated lines (defaults to llm.topic)")
	flags.StringVar(&opts.level, "level", "", "CEFR level for generated lines (defaults to llm.level)")
	flags.IntVar(&opts.count, "count", 0, "Number of generated lines (defaults to llm.count)")
	return cmd
}

func runRender(ctx context.Context, cmd *cobra.Command, base *config.Config, logger *slog.Logger, opts renderOptions) error {
	cfg := *base
	if opts.timeout > 0 {
		cfg.Workers.RunTimeoutSeconds = int(opts.timeout.Round(time.Second) / time.Second)
	}
	if bg := strings.TrimSpace(opts.background); bg != "" {
		cfg.Video.Background = bg
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	req := pipeline.Request{
		InputPath: strings.TrimSpace(opts.input),
		Title:     strings.TrimSpace(opts.title),
		Mode:      strings.TrimSpace(opts.mode),
	}
	if opts.generate {
		lines, path, err := generateInput(ctx, &cfg, logger, opts)
		if err != nil {
			return err
		}
		if path != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "Generated %d lines into %s\n", len(lines), path)
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "Generated %d lines\n", len(lines))
		}
		req.Lines = lines
		req.InputPath = path
		if req.Title == "" {
			req.Title = firstNonEmpty(opts.topic, cfg.LLM.Topic)
		}
	}

	var runnerOpts []pipeline.Option
	progress := newStageProgress(cmd.ErrOrStderr())
	if !opts.noProgress && shouldColorize(cmd.ErrOrStderr()) {
		runnerOpts = append(runnerOpts, pipeline.WithProgress(progress.update))
	}
	runner, closeRunner, err := pipeline.NewFromConfig(&cfg, logger, runnerOpts...)
	if err != nil {
		return err
	}
	defer closeRunner()

	report, err := runner.Run(ctx, req)
	progress.finish()
	if report != nil {
		printRenderReport(cmd.OutOrStdout(), report)
	}
	return err
}

// generateInput asks the LLM for lines and stores them as the input file so
// the render can be repeated without another request.
func generateInput(ctx context.Context, cfg *config.Config, logger *slog.Logger, opts renderOptions) ([]string, string, error) {
	var fallback linegen.Completer
	if fb, ok := cfg.FallbackLLM(); ok {
		fallback = newLLMClient(fb)
	}
	gen := linegen.NewGenerator(newLLMClient(cfg.PrimaryLLM()), fallback, logger)

	mode := firstNonEmpty(opts.mode, cfg.Input.Mode)
	count := opts.count
	if count <= 0 {
		count = cfg.LLM.Count
	}
	lines, err := gen.Generate(ctx, linegen.Request{
		Topic:         firstNonEmpty(opts.topic, cfg.LLM.Topic),
		Level:         firstNonEmpty(opts.level, cfg.LLM.Level),
		Mode:          mode,
		PrimaryLang:   cfg.PrimaryLanguage(),
		SecondaryLang: cfg.SecondaryLanguage(),
		Count:         count,
	})
	if err != nil {
		return nil, "", err
	}

	path := firstNonEmpty(opts.input, cfg.Paths.InputFile)
	if path == "" {
		return lines, "", nil
	}
	if err := fileutil.WriteFileAtomic(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644); err != nil {
		return nil, "", fmt.Errorf("write generated lines: %w", err)
	}
	return lines, path, nil
}

func newLLMClient(c config.LLMConfig) *llm.Client {
	return llm.NewClient(llm.Config{
		Provider:       c.Provider,
		APIKey:         c.APIKey,
		BaseURL:        c.BaseURL,
		Model:          c.Model,
		Temperature:    c.Temperature,
		TimeoutSeconds: c.TimeoutSeconds,
	})
}

func printRenderReport(out io.Writer, report *pipeline.Report) {
	audioLength := (time.Duration(report.TotalMS) * time.Millisecond).Round(time.Second)
	fmt.Fprintf(out, "Rendered %q (%s, %d lines, %d cues, %s) in %s\n",
		report.Title, report.Mode, report.Lines, report.Cues, audioLength, report.Elapsed.Round(time.Millisecond))

	o := report.Outputs
	printOutput(out, "Video", o.Video)
	printOutput(out, "Narration", o.WAV)
	printOutput(out, "MP3", o.MP3)
	printOutput(out, "Subtitles", o.SRT)
	printOutput(out, "Styled subs", o.ASS)

	s := report.Speech
	fmt.Fprintf(out, "  %-12s %d spoken, %d fallback, %d silent (%d cached)\n", "Speech:", s.Spoken, s.Fallback, s.Placeholder, s.Cached)
	if i := report.Images; i.Resolved+i.Partial+i.Missing > 0 {
		fmt.Fprintf(out, "  %-12s %d resolved, %d partial, %d solid background (%d cached)\n", "Images:", i.Resolved, i.Partial, i.Missing, i.Cached)
	}
	if report.Skipped > 0 {
		fmt.Fprintf(out, "  %-12s %d input line(s)\n", "Skipped:", report.Skipped)
	}
	if report.ExternalTiming {
		fmt.Fprintf(out, "  %-12s external\n", "Timing:")
	}
	for _, w := range report.Warnings {
		fmt.Fprintf(out, "  %-12s %s\n", "Warning:", w)
	}
	fmt.Fprintf(out, "  %-12s %s\n", "Degraded:", yesNo(report.Degraded()))
}

func printOutput(out io.Writer, label, path string) {
	if path == "" {
		return
	}
	fmt.Fprintf(out, "  %-12s %s\n", label+":", path)
}

// stageProgress shows one progress bar per pipeline stage.
type stageProgress struct {
	mu    sync.Mutex
	out   io.Writer
	stage string
	bar   *progressbar.ProgressBar
}

func newStageProgress(out io.Writer) *stageProgress {
	return &stageProgress{out: out}
}

func (p *stageProgress) update(stage string, done, total int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.bar == nil || stage != p.stage {
		if p.bar != nil {
			_ = p.bar.Finish()
		}
		p.stage = stage
		p.bar = progressbar.NewOptions(total,
			progressbar.OptionSetWriter(p.out),
			progressbar.OptionSetDescription(stage),
			progressbar.OptionSetWidth(30),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
	}
	_ = p.bar.Set(done)
}

func (p *stageProgress) finish() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.bar != nil {
		_ = p.bar.Finish()
		p.bar = nil
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
