package subtitles

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"lingoreel/internal/fileutil"
)

// ASS defaults.
const (
	DefaultFont     = "Segoe UI Semibold"
	DefaultFontSize = 80
	DefaultWidth    = 1920
	DefaultHeight   = 1080
)

// ASSStyle configures the script header and styles.
type ASSStyle struct {
	Font     string
	FontSize int
	Width    int
	Height   int
}

func (s ASSStyle) withDefaults() ASSStyle {
	if strings.TrimSpace(s.Font) == "" {
		s.Font = DefaultFont
	}
	if s.FontSize <= 0 {
		s.FontSize = DefaultFontSize
	}
	if s.Width <= 0 {
		s.Width = DefaultWidth
	}
	if s.Height <= 0 {
		s.Height = DefaultHeight
	}
	return s
}

// FormatASSTimestamp renders ms as H:MM:SS.cc, rounding to centiseconds.
func FormatASSTimestamp(ms int) string {
	cs := (max(ms, 0) + 5) / 10
	h := cs / 360_000
	m := cs / 6000 % 60
	s := cs / 100 % 60
	return fmt.Sprintf("%d:%02d:%02d.%02d", h, m, s, cs%100)
}

const assStyleFormat = "Format: Name, Fontname, Fontsize, PrimaryColour, SecondaryColour, OutlineColour, BackColour, " +
	"Bold, Italic, Underline, StrikeOut, ScaleX, ScaleY, Spacing, Angle, BorderStyle, Outline, Shadow, " +
	"Alignment, MarginL, MarginR, MarginV, Encoding"

// WriteASS writes an Advanced SubStation script. Primary lines are white;
// translations are slightly smaller and yellow.
func WriteASS(w io.Writer, entries []Entry, style ASSStyle) error {
	style = style.withDefaults()
	margin := style.Width / 32
	secondarySize := style.FontSize * 85 / 100

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "[Script Info]\nScriptType: v4.00+\nPlayResX: %d\nPlayResY: %d\nWrapStyle: 0\nScaledBorderAndShadow: yes\n\n",
		style.Width, style.Height)
	fmt.Fprintf(bw, "[V4+ Styles]\n%s\n", assStyleFormat)
	fmt.Fprintf(bw, "Style: Primary,%s,%d,&H00FFFFFF,&H000000FF,&H00000000,&H64000000,-1,0,0,0,100,100,0,0,1,3,2,5,%d,%d,%d,1\n",
		style.Font, style.FontSize, margin, margin, margin)
	fmt.Fprintf(bw, "Style: Secondary,%s,%d,&H0000E6FF,&H000000FF,&H00000000,&H64000000,0,0,0,0,100,100,0,0,1,3,2,5,%d,%d,%d,1\n\n",
		style.Font, secondarySize, margin, margin, margin)
	bw.WriteString("[Events]\nFormat: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text\n")
	for _, e := range entries {
		name := "Primary"
		if e.Secondary {
			name = "Secondary"
		}
		fmt.Fprintf(bw, "Dialogue: 0,%s,%s,%s,,0,0,0,,%s\n",
			FormatASSTimestamp(e.StartMS), FormatASSTimestamp(e.EndMS), name, escapeASS(e.Text))
	}
	return bw.Flush()
}

// SaveASS writes entries to path atomically.
func SaveASS(path string, entries []Entry, style ASSStyle) error {
	return fileutil.WriteAtomic(path, 0o644, func(w io.Writer) error {
		return WriteASS(w, entries, style)
	})
}

var assEscaper = strings.NewReplacer(
	"\r\n", `\N`,
	"\n", `\N`,
	"{", "(",
	"}", ")",
)

func escapeASS(text string) string {
	return assEscaper.Replace(strings.TrimSpace(text))
}
