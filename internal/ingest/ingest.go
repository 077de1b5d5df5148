package ingest

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"lingoreel/internal/services"
	"lingoreel/internal/timeline"
)

var (
	bulletPrefix   = regexp.MustCompile(`^\s*([\-–—•●·*]|(\d+|[a-zA-Z])[.)\]:])\s+`)
	hashtagPattern = regexp.MustCompile(`#([^\s#.,;:!?()]+)`)
	hashtagStrip   = regexp.MustCompile(`\s*#[^\s#.,;:!?()]+`)
	multiSpace     = regexp.MustCompile(`\s{2,}`)
)

// Options selects which pipe-separated parts are primary and secondary.
type Options struct {
	PrimaryIndex   int
	SecondaryIndex int
}

// Skipped records an input line that could not be split.
type Skipped struct {
	LineNumber int
	Text       string
	Reason     string
}

// Result is the outcome of parsing.
type Result struct {
	Lines   []timeline.Line
	Skipped []Skipped
}

// Parse converts raw lines. Blank lines are ignored. It returns
// services.ErrNoValidInput, alongside the skipped lines, when nothing usable
// remains.
func Parse(raw []string, opts Options) (Result, error) {
	opts.PrimaryIndex = max(opts.PrimaryIndex, 0)
	opts.SecondaryIndex = max(opts.SecondaryIndex, 0)
	maxIdx := max(opts.PrimaryIndex, opts.SecondaryIndex)

	var res Result
	for i, line := range raw {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		parts := strings.Split(line, "|")
		for j := range parts {
			parts[j] = strings.TrimSpace(parts[j])
		}

		var primaryRaw, secondary string
		switch {
		case len(parts) > maxIdx:
			primaryRaw, secondary = parts[opts.PrimaryIndex], parts[opts.SecondaryIndex]
		case len(parts) >= 2:
			primaryRaw, secondary = parts[0], parts[1]
		default:
			res.Skipped = append(res.Skipped, Skipped{LineNumber: i + 1, Text: line, Reason: "no '|' separator"})
			continue
		}

		primaryRaw = StripBullet(primaryRaw)
		primary, tags := ExtractHashtags(primaryRaw)
		if primary == "" {
			primary = strings.TrimSpace(primaryRaw)
		}
		if primary == "" {
			res.Skipped = append(res.Skipped, Skipped{LineNumber: i + 1, Text: line, Reason: "empty primary text"})
			continue
		}
		res.Lines = append(res.Lines, timeline.Line{Primary: primary, Secondary: secondary, Tags: tags})
	}
	if len(res.Lines) == 0 {
		return res, services.Wrap(services.ErrNoValidInput, "ingest", "parse",
			fmt.Sprintf("%d line(s) skipped", len(res.Skipped)), nil)
	}
	return res, nil
}

// ParseReader reads lines from r and parses them.
func ParseReader(r io.Reader, opts Options) (Result, error) {
	var raw []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for scanner.Scan() {
		raw = append(raw, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return Result{}, services.Wrap(services.ErrValidation, "ingest", "read", "", err)
	}
	if len(raw) > 0 {
		raw[0] = strings.TrimPrefix(raw[0], "\ufeff")
	}
	return Parse(raw, opts)
}

// ReadFile parses the input file at path.
func ReadFile(path string, opts Options) (Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return Result{}, services.Wrap(services.ErrNotFound, "ingest", "open input", path, err)
	}
	defer f.Close()
	return ParseReader(f, opts)
}

// StripBullet removes one leading list marker such as "- ", "• ", "1. ",
// "a) " or "2] ".
func StripBullet(s string) string {
	if loc := bulletPrefix.FindStringIndex(s); loc != nil {
		return s[loc[1]:]
	}
	return s
}

// ExtractHashtags returns s without its #hashtags, plus the tags in order.
// Punctuation is kept for speech prosody.
func ExtractHashtags(s string) (string, []string) {
	text := strings.TrimSpace(s)
	if text == "" {
		return "", nil
	}
	var tags []string
	for _, m := range hashtagPattern.FindAllStringSubmatch(text, -1) {
		tags = append(tags, m[1])
	}
	cleaned := hashtagStrip.ReplaceAllString(text, "")
	cleaned = multiSpace.ReplaceAllString(cleaned, " ")
	return strings.TrimSpace(cleaned), tags
}
