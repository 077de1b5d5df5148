package subtitles

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"lingoreel/internal/fileutil"
	"lingoreel/internal/timeline"
)

// Entry is one subtitle event in milliseconds.
type Entry struct {
	StartMS   int
	EndMS     int
	Text      string
	Secondary bool
}

// FromCues converts cues to subtitle entries in order.
func FromCues(cues []timeline.Cue) []Entry {
	entries := make([]Entry, 0, len(cues))
	for _, c := range cues {
		entries = append(entries, Entry{StartMS: c.StartMS, EndMS: c.EndMS, Text: c.Text, Secondary: !c.IsPrimary})
	}
	return entries
}

// Spans extracts the timing of each entry.
func Spans(entries []Entry) []timeline.Span {
	spans := make([]timeline.Span, len(entries))
	for i, e := range entries {
		spans[i] = timeline.Span{StartMS: e.StartMS, EndMS: e.EndMS}
	}
	return spans
}

// FormatSRTTimestamp renders ms as HH:MM:SS,mmm.
func FormatSRTTimestamp(ms int) string {
	ms = max(ms, 0)
	h := ms / 3_600_000
	m := ms / 60_000 % 60
	s := ms / 1000 % 60
	return fmt.Sprintf("%02d:%02d:%02d,%03d", h, m, s, ms%1000)
}

// ParseSRTTimestamp parses HH:MM:SS,mmm (a period separator is accepted).
func ParseSRTTimestamp(value string) (int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("empty timestamp")
	}
	value = strings.ReplaceAll(value, ".", ",")
	timeParts := strings.Split(value, ",")
	if len(timeParts) != 2 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hms := strings.Split(timeParts[0], ":")
	if len(hms) != 3 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hours, errH := strconv.Atoi(hms[0])
	minutes, errM := strconv.Atoi(hms[1])
	seconds, errS := strconv.Atoi(hms[2])
	millis, errMS := strconv.Atoi(timeParts[1])
	if errH != nil || errM != nil || errS != nil || errMS != nil {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	if hours < 0 || minutes < 0 || seconds < 0 || millis < 0 {
		return 0, fmt.Errorf("negative timestamp %q", value)
	}
	// Fractions shorter than three digits are tenths or hundredths.
	switch len(timeParts[1]) {
	case 1:
		millis *= 100
	case 2:
		millis *= 10
	}
	return (hours*3600+minutes*60+seconds)*1000 + millis, nil
}

// WriteSRT writes numbered SRT blocks.
func WriteSRT(w io.Writer, entries []Entry) error {
	bw := bufio.NewWriter(w)
	for i, e := range entries {
		if i > 0 {
			bw.WriteString("\n")
		}
		fmt.Fprintf(bw, "%d\n%s --> %s\n%s\n", i+1,
			FormatSRTTimestamp(e.StartMS), FormatSRTTimestamp(e.EndMS), strings.TrimSpace(e.Text))
	}
	return bw.Flush()
}

// SaveSRT writes entries to path atomically.
func SaveSRT(path string, entries []Entry) error {
	return fileutil.WriteAtomic(path, 0o644, func(w io.Writer) error {
		return WriteSRT(w, entries)
	})
}

// ParseSRT reads SRT content. Blocks without a valid timing line are
// skipped; the index line is optional. Multi-line text is joined with "\n".
func ParseSRT(raw []byte) []Entry {
	content := strings.TrimPrefix(string(raw), "\ufeff")
	content = strings.ReplaceAll(content, "\r\n", "\n")
	blocks := splitBlocks(content)
	entries := make([]Entry, 0, len(blocks))
	for _, block := range blocks {
		lines := strings.Split(block, "\n")
		start, end, ok := blockTiming(lines)
		if !ok {
			continue
		}
		entries = append(entries, Entry{
			StartMS: start,
			EndMS:   end,
			Text:    strings.Join(subtitleTextLines(lines), "\n"),
		})
	}
	return entries
}

// ReadSRT parses the SRT file at path.
func ReadSRT(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read srt: %w", err)
	}
	return ParseSRT(data), nil
}

// Validate reports format issues in parsed entries. totalMS bounds the last
// end when positive. An empty slice means validation passed.
func Validate(entries []Entry, totalMS int) []string {
	if len(entries) == 0 {
		return []string{"empty_subtitle_file"}
	}
	var issues []string
	for i, e := range entries {
		if e.EndMS < e.StartMS {
			issues = append(issues, fmt.Sprintf("inverted_cue: #%d ends before it starts", i+1))
		}
		if i > 0 && e.StartMS < entries[i-1].StartMS {
			issues = append(issues, fmt.Sprintf("out_of_order: #%d starts before #%d", i+1, i))
		}
	}
	if totalMS > 0 {
		if last := entries[len(entries)-1].EndMS; last > totalMS {
			issues = append(issues, fmt.Sprintf("beyond_end: last cue ends at %dms, timeline is %dms", last, totalMS))
		}
	}
	return issues
}

func splitBlocks(content string) []string {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return nil
	}
	raw := strings.Split(trimmed, "\n\n")
	blocks := raw[:0]
	for _, b := range raw {
		if b = strings.Trim(b, "\n"); strings.TrimSpace(b) != "" {
			blocks = append(blocks, b)
		}
	}
	return blocks
}

func blockTiming(lines []string) (int, int, bool) {
	for _, line := range lines {
		if !strings.Contains(line, "-->") {
			continue
		}
		parts := strings.Split(line, "-->")
		if len(parts) != 2 {
			continue
		}
		start, err := ParseSRTTimestamp(parts[0])
		if err != nil {
			return 0, 0, false
		}
		// Position hints may follow the end timestamp.
		endText := strings.TrimSpace(parts[1])
		if fields := strings.Fields(endText); len(fields) > 0 {
			endText = fields[0]
		}
		end, err := ParseSRTTimestamp(endText)
		if err != nil {
			return 0, 0, false
		}
		return start, end, true
	}
	return 0, 0, false
}

func subtitleTextLines(lines []string) []string {
	start := 0
	if start < len(lines) && isNumeric(lines[start]) {
		start++
	}
	if start < len(lines) && strings.Contains(lines[start], "-->") {
		start++
	}
	if start >= len(lines) {
		return nil
	}
	text := make([]string, 0, len(lines)-start)
	for _, line := range lines[start:] {
		trimmed := strings.TrimSpace(line)
		if trimmed != "" {
			text = append(text, trimmed)
		}
	}
	return text
}

func isNumeric(value string) bool {
	value = strings.TrimSpace(value)
	if value == "" {
		return false
	}
	_, err := strconv.Atoi(value)
	return err == nil
}
