package deps

import (
	"os"
	"path/filepath"
	"testing"
)

var stubScript = []byte("#!/bin/sh\nexit 0\n")

func writeStub(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, stubScript, 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
}

func TestCheckBinaries(t *testing.T) {
	present := filepath.Join(t.TempDir(), "present")
	writeStub(t, present)
	reqs := []Requirement{
		{Name: "Present", Command: present},
		{Name: "Missing", Command: "clearly-not-present-binary"},
		{Name: "Blank", Command: "  ", Optional: true},
	}

	results := CheckBinaries(reqs)
	if len(results) != len(reqs) {
		t.Fatalf("expected %d results, got %d", len(reqs), len(results))
	}
	if !results[0].Available || results[0].Path != present || results[0].Detail != "" {
		t.Fatalf("expected first requirement to be available, got %#v", results[0])
	}
	if results[1].Available || results[1].Detail == "" {
		t.Fatalf("expected missing binary to be unavailable with detail, got %#v", results[1])
	}
	if results[1].Command != "clearly-not-present-binary" {
		t.Fatalf("unexpected command recorded: %s", results[1].Command)
	}
	if results[2].Detail != "command not configured" {
		t.Fatalf("unexpected detail for blank command: %q", results[2].Detail)
	}

	missing := Missing(results)
	if len(missing) != 1 || missing[0].Name != "Missing" {
		t.Fatalf("Missing() = %#v", missing)
	}
}

func TestFFmpegRequirementDefaultsCommand(t *testing.T) {
	if got := FFmpegRequirement("").Command; got != "ffmpeg" {
		t.Fatalf("expected ffmpeg default, got %q", got)
	}
	req := FFmpegRequirement("/opt/ffmpeg/bin/ffmpeg")
	if req.Command != "/opt/ffmpeg/bin/ffmpeg" || req.Optional {
		t.Fatalf("unexpected requirement %#v", req)
	}
}

func TestCheckPiperReleaseDirectory(t *testing.T) {
	dir := t.TempDir()
	piperPath := filepath.Join(dir, executableName("piper"))
	writeStub(t, piperPath)
	t.Setenv("PATH", "")

	status := CheckPiper(dir, true)
	if !status.Available {
		t.Fatalf("expected piper in release dir to be available, got detail %q", status.Detail)
	}
	if status.Command != piperPath || status.Optional {
		t.Fatalf("unexpected status %#v", status)
	}
}

func TestCheckPiperPathFallback(t *testing.T) {
	binDir := t.TempDir()
	piperPath := filepath.Join(binDir, executableName("piper"))
	writeStub(t, piperPath)
	t.Setenv("PATH", binDir)

	status := CheckPiper("", false)
	if !status.Available || status.Path != piperPath {
		t.Fatalf("expected PATH piper, got %#v", status)
	}
	if !status.Optional {
		t.Fatal("expected optional status when piper is not routed")
	}
}

func TestCheckPiperNotFound(t *testing.T) {
	t.Setenv("PATH", "")
	status := CheckPiper(filepath.Join(t.TempDir(), "missing-piper"), true)
	if status.Available {
		t.Fatal("expected piper resolution to fail")
	}
	if status.Detail == "" {
		t.Fatal("expected detail message when piper is unavailable")
	}
}
