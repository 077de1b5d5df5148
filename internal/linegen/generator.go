package linegen

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"lingoreel/internal/logging"
	"lingoreel/internal/services"
	"lingoreel/internal/services/llm"
)

// Completer is the chat-completions capability.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
	Provider() string
	Model() string
}

// Generator produces "primary | secondary" input lines.
type Generator struct {
	primary  Completer
	fallback Completer
	logger   *slog.Logger
}

// NewGenerator builds a Generator. fallback may be nil; it is tried when the
// primary completer fails.
func NewGenerator(primary, fallback Completer, logger *slog.Logger) *Generator {
	return &Generator{primary: primary, fallback: fallback, logger: logging.NewComponentLogger(logger, "linegen")}
}

// Generate requests lines for req. It returns an error when no usable line
// comes back.
func (g *Generator) Generate(ctx context.Context, req Request) ([]string, error) {
	if g == nil || g.primary == nil {
		return nil, services.Wrap(services.ErrConfiguration, "linegen", "generate", "no llm client configured", nil)
	}
	req = req.withDefaults()
	prompt := BuildPrompt(req)

	content, err := g.complete(ctx, g.primary, req, prompt)
	if err != nil && g.fallback != nil && ctx.Err() == nil {
		g.logger.Warn("llm request failed; trying fallback provider",
			logging.String("provider", g.primary.Provider()),
			logging.String("fallback", g.fallback.Provider()),
			logging.Error(err),
		)
		content, err = g.complete(ctx, g.fallback, req, prompt)
	}
	if err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "linegen", "generate", "llm request failed", err)
	}

	lines := ParseLines(content, req.Count)
	if len(lines) == 0 {
		return nil, services.Wrap(services.ErrExternalTool, "linegen", "generate", "response held no usable lines",
			errors.New(summarize(content)))
	}
	g.logger.Info("lines generated",
		logging.String("topic", req.Topic),
		logging.String("mode", req.Mode),
		logging.Int("requested", req.Count),
		logging.Int("line_count", len(lines)),
	)
	return lines, nil
}

func (g *Generator) complete(ctx context.Context, c Completer, req Request, prompt string) (string, error) {
	g.logger.Info("requesting lines",
		logging.String("provider", c.Provider()),
		logging.String("model", c.Model()),
		logging.String("topic", req.Topic),
		logging.Int("requested", req.Count),
	)
	content, err := c.Complete(ctx, systemPrompt, prompt)
	if err != nil {
		return "", err
	}
	content = strings.TrimSpace(llm.StripCodeFence(content))
	if content == "" {
		return "", fmt.Errorf("%s returned no text", c.Provider())
	}
	return content, nil
}

var (
	strictLine = regexp.MustCompile(`(?m)^\s*(.+?)\s*\|\s*(.+?)\s*$`)
	spaceRun   = regexp.MustCompile(`\s+`)
	pipeSplit  = regexp.MustCompile(`\s*\|\s*`)
)

// ParseLines extracts up to n unique "a | b" lines from raw model output.
// Strict pipe lines come first; when fewer than n are found, remaining lines
// are paired with their neighbours.
func ParseLines(raw string, n int) []string {
	var lines []string
	for _, m := range strictLine.FindAllStringSubmatch(raw, -1) {
		a := collapse(m[1])
		b := collapse(m[2])
		if a != "" && b != "" {
			lines = append(lines, a+" | "+b)
		}
	}
	if n > 0 && len(lines) < n {
		lines = append(lines, pairAdjacent(raw)...)
	}
	return dedupe(lines, n)
}

func pairAdjacent(raw string) []string {
	var rows []string
	for _, ln := range strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n") {
		if ln = strings.TrimSpace(ln); ln != "" {
			rows = append(rows, ln)
		}
	}
	var out []string
	for i := 0; i < len(rows); {
		cur := rows[i]
		if parts := splitPipe(cur); len(parts) >= 2 {
			out = append(out, parts[0]+" | "+parts[1])
			i++
			continue
		}
		if i+1 >= len(rows) {
			break
		}
		next := rows[i+1]
		if parts := splitPipe(next); strings.Contains(next, "|") && len(parts) >= 2 {
			out = append(out, cur+" | "+parts[len(parts)-1])
		} else {
			out = append(out, cur+" | "+next)
		}
		i += 2
	}
	return out
}

func splitPipe(s string) []string {
	if !strings.Contains(s, "|") {
		return nil
	}
	var parts []string
	for _, p := range pipeSplit.Split(s, -1) {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

func collapse(s string) string {
	return strings.TrimSpace(spaceRun.ReplaceAllString(s, " "))
}

func dedupe(lines []string, n int) []string {
	seen := make(map[string]struct{}, len(lines))
	out := make([]string, 0, len(lines))
	for _, ln := range lines {
		if _, ok := seen[ln]; ok {
			continue
		}
		seen[ln] = struct{}{}
		out = append(out, ln)
		if n > 0 && len(out) >= n {
			break
		}
	}
	return out
}

func summarize(content string) string {
	content = collapse(content)
	if len(content) > 160 {
		return content[:160] + "..."
	}
	if content == "" {
		return "empty response"
	}
	return content
}
