package deps

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// FFmpegRequirement describes the encoder every render needs for speech
// decoding, slideshow clips and the final mux.
func FFmpegRequirement(binary string) Requirement {
	if strings.TrimSpace(binary) == "" {
		binary = "ffmpeg"
	}
	return Requirement{
		Name:        "FFmpeg",
		Command:     binary,
		Description: "Required for speech decoding, slideshow clips and muxing",
	}
}

// CheckPiper reports the piper binary speech synthesis will execute.
//
// Piper releases unpack into a directory holding the executable next to its
// espeak-ng data, so a configured directory resolves to the binary inside
// it. Otherwise the configured file is used, then "piper" from PATH.
func CheckPiper(configured string, required bool) Status {
	result := Status{
		Name:        "Piper",
		Description: "Local speech synthesis for languages routed to piper",
		Optional:    !required,
	}

	configured = strings.TrimSpace(configured)
	if configured != "" {
		candidate := configured
		if info, err := os.Stat(configured); err == nil && info.IsDir() {
			candidate = filepath.Join(configured, executableName("piper"))
		}
		if info, err := os.Stat(candidate); err == nil && isExecutable(info) {
			result.Command = candidate
			result.Path = candidate
			result.Available = true
			return result
		}
		if resolved, err := exec.LookPath(configured); err == nil {
			result.Command = configured
			result.Path = resolved
			result.Available = true
			return result
		}
	}

	name := executableName("piper")
	if resolved, err := exec.LookPath(name); err == nil {
		result.Command = name
		result.Path = resolved
		result.Available = true
		return result
	}

	result.Command = name
	if configured != "" {
		result.Command = configured
	}
	result.Detail = fmt.Sprintf("binary %q not found", result.Command)
	return result
}

func executableName(name string) string {
	if runtime.GOOS == "windows" {
		return name + ".exe"
	}
	return name
}

func isExecutable(info os.FileInfo) bool {
	if info == nil || info.IsDir() {
		return false
	}
	if runtime.GOOS == "windows" {
		return true
	}
	return info.Mode().Perm()&0o111 != 0
}
