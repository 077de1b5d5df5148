package language

import (
	"reflect"
	"testing"
)

func TestCanonical(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"en", "en"},
		{"EN", "en"},
		{"fra", "fr"},
		{"French", "fr"},
		{"zh_CN", "zh-cn"},
		{"chinese", "zh-cn"},
		{"ltz", "lb"},
		{"xx-YY", "xx-yy"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := Canonical(tt.input); got != tt.expected {
				t.Errorf("Canonical(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestBase(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"zh-cn", "zh"},
		{"fr-FR", "fr"},
		{"de", "de"},
		{"farsi", "fa"},
		{"lb", "lb"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := Base(tt.input); got != tt.expected {
				t.Errorf("Base(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestSpeechCode(t *testing.T) {
	tests := map[string]string{
		"zh-cn": "zh-CN",
		"lb":    "en",
		"fr":    "fr",
		"qq":    "en",
	}
	for in, want := range tests {
		if got := SpeechCode(in); got != want {
			t.Errorf("SpeechCode(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestDisplayName(t *testing.T) {
	if got := DisplayName(""); got != "Unknown" {
		t.Fatalf("DisplayName(\"\") = %q", got)
	}
	if got := DisplayName("de"); got != "German" {
		t.Fatalf("DisplayName(de) = %q", got)
	}
	if got := DisplayName("xx"); got != "XX" {
		t.Fatalf("DisplayName(xx) = %q", got)
	}
}

func TestNormalizeList(t *testing.T) {
	got := NormalizeList([]string{"EN", "english", "fr", " ", "zh_CN"})
	want := []string{"en", "fr", "zh-cn"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("NormalizeList = %v, want %v", got, want)
	}
}
