package tts

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

const defaultPiperBinary = "piper"

// commandRunner executes an external binary.
type commandRunner func(ctx context.Context, name string, args ...string) error

// PiperConfig configures the local Piper engine.
type PiperConfig struct {
	Binary      string
	// Models maps a language code to an .onnx model file or a directory
	// holding one.
	Models      map[string]string
	Model       string
	Config      string
	LengthScale float64
	NoiseScale  float64
	NoiseW      float64
}

// Piper renders WAV speech with a local piper binary.
type Piper struct {
	cfg PiperConfig
	run commandRunner
}

// NewPiper builds a Piper engine.
func NewPiper(cfg PiperConfig) *Piper {
	models := make(map[string]string, len(cfg.Models))
	for lang, model := range cfg.Models {
		models[strings.ToLower(strings.TrimSpace(lang))] = strings.TrimSpace(model)
	}
	cfg.Models = models
	cfg.Binary = strings.TrimSpace(cfg.Binary)
	return &Piper{cfg: cfg, run: defaultCommandRunner}
}

// WithCommandRunner allows injecting a custom command runner for tests.
func (p *Piper) WithCommandRunner(r commandRunner) {
	if p != nil && r != nil {
		p.run = r
	}
}

func (p *Piper) Name() string { return ProviderPiper }

func (p *Piper) Ext() string { return ".wav" }

// ResolveBinary returns the piper executable path, or "" when none resolves.
func (p *Piper) ResolveBinary() string {
	if p.cfg.Binary != "" {
		if info, err := os.Stat(p.cfg.Binary); err == nil && !info.IsDir() {
			return p.cfg.Binary
		}
	}
	for _, cand := range []string{p.cfg.Binary, defaultPiperBinary, defaultPiperBinary + ".exe"} {
		if cand == "" {
			continue
		}
		if found, err := exec.LookPath(cand); err == nil {
			return found
		}
	}
	return ""
}

// ResolveModel returns the model and optional config file for lang. A model
// directory resolves to the first .onnx file inside it; the config defaults
// to "<model>.json" when that file exists.
func (p *Piper) ResolveModel(lang string) (model, config string) {
	model = p.cfg.Models[strings.ToLower(strings.TrimSpace(lang))]
	if model == "" {
		model = strings.TrimSpace(p.cfg.Model)
	}
	if model == "" {
		return "", strings.TrimSpace(p.cfg.Config)
	}
	if !strings.EqualFold(filepath.Ext(model), ".onnx") {
		if info, err := os.Stat(model); err == nil && info.IsDir() {
			if matches, _ := filepath.Glob(filepath.Join(model, "*.onnx")); len(matches) > 0 {
				model = matches[0]
			}
		}
	}
	candidate := strings.TrimSpace(p.cfg.Config)
	if candidate == "" {
		candidate = model + ".json"
	}
	if _, err := os.Stat(candidate); err == nil {
		config = candidate
	}
	return model, config
}

func (p *Piper) CacheIdentity(lang string) (string, string) {
	model, _ := p.ResolveModel(lang)
	return strings.ToLower(strings.TrimSpace(lang)), fmt.Sprintf("model=%s|len=%s|nz=%s|nw=%s",
		model, formatFloat(p.cfg.LengthScale), formatFloat(p.cfg.NoiseScale), formatFloat(p.cfg.NoiseW))
}

// Args builds the piper command line.
func (p *Piper) Args(model, config, inputPath, outputPath string) []string {
	args := []string{"--model", model, "--output_file", outputPath, "--input_file", inputPath}
	if config != "" {
		args = append(args, "--config", config)
	}
	if p.cfg.LengthScale > 0 {
		args = append(args, "--length_scale", formatFloat(p.cfg.LengthScale))
	}
	if p.cfg.NoiseScale >= 0 {
		args = append(args, "--noise_scale", formatFloat(p.cfg.NoiseScale))
	}
	if p.cfg.NoiseW >= 0 {
		args = append(args, "--noise-w-scale", formatFloat(p.cfg.NoiseW))
	}
	return args
}

// Render runs piper on text and returns the produced WAV bytes.
func (p *Piper) Render(ctx context.Context, text, lang string) ([]byte, error) {
	bin := p.ResolveBinary()
	if bin == "" {
		return nil, fmt.Errorf("piper binary not found; set tts.piper.binary")
	}
	model, config := p.ResolveModel(lang)
	if model == "" {
		return nil, fmt.Errorf("piper model not configured for %q", lang)
	}
	if _, err := os.Stat(model); err != nil {
		return nil, fmt.Errorf("piper model for %q: %w", lang, err)
	}

	work, err := os.MkdirTemp("", "lingoreel-piper-*")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(work)

	in := filepath.Join(work, "in.txt")
	out := filepath.Join(work, "out.wav")
	if err := os.WriteFile(in, []byte(text), 0o600); err != nil {
		return nil, err
	}
	if err := p.run(ctx, bin, p.Args(model, config, in, out)...); err != nil {
		return nil, fmt.Errorf("piper: %w", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		return nil, fmt.Errorf("piper produced no output: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("piper produced an empty file")
	}
	return data, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func defaultCommandRunner(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec
	var stderr strings.Builder
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(stderr.String()))
	}
	return nil
}
