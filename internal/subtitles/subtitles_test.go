package subtitles

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"lingoreel/internal/timeline"
)

func TestSRTTimestamps(t *testing.T) {
	tests := map[int]string{
		0:         "00:00:00,000",
		4300:      "00:00:04,300",
		61_005:    "00:01:01,005",
		3_723_456: "01:02:03,456",
		-20:       "00:00:00,000",
	}
	for ms, want := range tests {
		if got := FormatSRTTimestamp(ms); got != want {
			t.Errorf("FormatSRTTimestamp(%d) = %q, want %q", ms, got, want)
		}
		if ms < 0 {
			continue
		}
		back, err := ParseSRTTimestamp(want)
		if err != nil || back != ms {
			t.Errorf("ParseSRTTimestamp(%q) = %d, %v", want, back, err)
		}
	}
	if got, err := ParseSRTTimestamp("00:00:01.5"); err != nil || got != 1500 {
		t.Fatalf("short fraction = %d, %v", got, err)
	}
	for _, bad := range []string{"", "1:2", "aa:bb:cc,ddd", "00:00:01"} {
		if _, err := ParseSRTTimestamp(bad); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}

func TestASSTimestamp(t *testing.T) {
	tests := map[int]string{0: "0:00:00.00", 4300: "0:00:04.30", 4304: "0:00:04.30", 4305: "0:00:04.31", 3_723_450: "1:02:03.45"}
	for ms, want := range tests {
		if got := FormatASSTimestamp(ms); got != want {
			t.Errorf("FormatASSTimestamp(%d) = %q, want %q", ms, got, want)
		}
	}
}

func TestWriteAndParseSRT(t *testing.T) {
	entries := []Entry{
		{StartMS: 0, EndMS: 4300, Text: "I need a coffee."},
		{StartMS: 6000, EndMS: 7200, Text: "J'ai besoin d'un café.", Secondary: true},
	}
	var buf bytes.Buffer
	if err := WriteSRT(&buf, entries); err != nil {
		t.Fatal(err)
	}
	want := "1\n00:00:00,000 --> 00:00:04,300\nI need a coffee.\n\n2\n00:00:06,000 --> 00:00:07,200\nJ'ai besoin d'un café.\n"
	if buf.String() != want {
		t.Fatalf("unexpected srt:\n%s", buf.String())
	}
	parsed := ParseSRT(buf.Bytes())
	if len(parsed) != 2 || parsed[1].StartMS != 6000 || parsed[1].Text != "J'ai besoin d'un café." {
		t.Fatalf("unexpected parse %+v", parsed)
	}
}

func TestParseSRTTolerant(t *testing.T) {
	raw := "\ufeff1\r\n00:00:01,000 --> 00:00:02,500 X1:0 X2:10\r\nLine one\r\nLine two\r\n\r\n\r\n" +
		"garbage block\r\n\r\n" +
		"00:00:03,000 --> 00:00:04,000\r\nNo index\r\n"
	got := ParseSRT([]byte(raw))
	want := []Entry{
		{StartMS: 1000, EndMS: 2500, Text: "Line one\nLine two"},
		{StartMS: 3000, EndMS: 4000, Text: "No index"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ParseSRT = %+v, want %+v", got, want)
	}
	if spans := Spans(got); spans[1] != (timeline.Span{StartMS: 3000, EndMS: 4000}) {
		t.Fatalf("unexpected spans %+v", spans)
	}
}

func TestSaveAndReadSRT(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Output", "lesson.srt")
	entries := FromCues([]timeline.Cue{
		{StartMS: 0, EndMS: 900, Text: "Hello", IsPrimary: true},
		{StartMS: 2600, EndMS: 3400, Text: "Bonjour"},
	})
	if !entries[1].Secondary || entries[0].Secondary {
		t.Fatalf("roles not carried: %+v", entries)
	}
	if err := SaveSRT(path, entries); err != nil {
		t.Fatal(err)
	}
	got, err := ReadSRT(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[1].EndMS != 3400 {
		t.Fatalf("unexpected entries %+v", got)
	}
	if _, err := ReadSRT(filepath.Join(t.TempDir(), "missing.srt")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestValidate(t *testing.T) {
	if issues := Validate(nil, 0); len(issues) != 1 || issues[0] != "empty_subtitle_file" {
		t.Fatalf("unexpected issues %v", issues)
	}
	good := []Entry{{StartMS: 0, EndMS: 100}, {StartMS: 200, EndMS: 300}}
	if issues := Validate(good, 300); len(issues) != 0 {
		t.Fatalf("unexpected issues %v", issues)
	}
	bad := []Entry{{StartMS: 500, EndMS: 400}, {StartMS: 100, EndMS: 900}}
	issues := Validate(bad, 800)
	if len(issues) != 3 {
		t.Fatalf("expected 3 issues, got %v", issues)
	}
	for i, prefix := range []string{"inverted_cue", "out_of_order", "beyond_end"} {
		if !strings.HasPrefix(issues[i], prefix) {
			t.Errorf("issue %d = %q, want prefix %q", i, issues[i], prefix)
		}
	}
}

func TestWriteASS(t *testing.T) {
	entries := []Entry{
		{StartMS: 0, EndMS: 4300, Text: "Hello {world}\nagain"},
		{StartMS: 6000, EndMS: 7200, Text: "Bonjour", Secondary: true},
	}
	path := filepath.Join(t.TempDir(), "lesson.ass")
	if err := SaveASS(path, entries, ASSStyle{}); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	out := string(data)
	for _, want := range []string{
		"PlayResX: 1920",
		"PlayResY: 1080",
		"Style: Primary,Segoe UI Semibold,80,",
		"Style: Secondary,Segoe UI Semibold,68,",
		`Dialogue: 0,0:00:00.00,0:00:04.30,Primary,,0,0,0,,Hello (world)\Nagain`,
		"Dialogue: 0,0:00:06.00,0:00:07.20,Secondary,,0,0,0,,Bonjour",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("ass output missing %q", want)
		}
	}
}
