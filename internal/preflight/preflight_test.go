package preflight

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"lingoreel/internal/config"
	"lingoreel/internal/imagesearch"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("test", dir)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if !strings.Contains(result.Detail, "does not exist") {
		t.Fatalf("unexpected detail %q", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckDirectoryAccess("test", f)
	if result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func pixabayServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("q") != probeQuery {
			t.Errorf("unexpected probe query %q", r.URL.Query().Get("q"))
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestCheckSearcher_OK(t *testing.T) {
	srv := pixabayServer(t, http.StatusOK, `{"hits":[{"type":"photo","tags":"coffee, cup","largeImageURL":"https://img.example/a.jpg","user":"ann"}]}`)
	s := imagesearch.NewPixabay(imagesearch.PixabayConfig{APIKey: "good", BaseURL: srv.URL})

	result := CheckSearcher(context.Background(), s)
	if !result.Passed || result.Name != "Pixabay" {
		t.Fatalf("expected pass, got %#v", result)
	}
}

func TestCheckSearcher_BadKey(t *testing.T) {
	srv := pixabayServer(t, http.StatusBadRequest, "[ERROR 400] Invalid or missing API key")
	s := imagesearch.NewPixabay(imagesearch.PixabayConfig{APIKey: "bad", BaseURL: srv.URL}, imagesearch.WithRetries(0))

	result := CheckSearcher(context.Background(), s)
	if result.Passed || !result.Optional {
		t.Fatalf("expected optional failure, got %#v", result)
	}
	if !strings.Contains(result.Detail, "invalid api key") {
		t.Fatalf("unexpected detail %q", result.Detail)
	}
}

func TestCheckSearcher_MissingKey(t *testing.T) {
	result := CheckSearcher(context.Background(), imagesearch.NewUnsplash(imagesearch.UnsplashConfig{}))
	if result.Passed || !strings.Contains(result.Detail, "UNSPLASH_ACCESS_KEY") {
		t.Fatalf("expected missing key result, got %#v", result)
	}
}

func TestCheckLLM_Ollama(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"{\"ok\":true}"},"finish_reason":"stop"}]}`))
	}))
	defer srv.Close()

	result := CheckLLM(context.Background(), "LLM", config.LLMConfig{Provider: config.LLMProviderOllama, BaseURL: srv.URL, Model: "llama3.1"})
	if !result.Passed {
		t.Fatalf("expected pass, got %q", result.Detail)
	}
}

func TestCheckLLM_MissingKey(t *testing.T) {
	result := CheckLLM(context.Background(), "LLM", config.LLMConfig{Provider: config.LLMProviderOpenAI})
	if result.Passed || result.Detail != "API key missing" {
		t.Fatalf("expected missing key failure, got %#v", result)
	}
}

func TestRunAll_NilConfig(t *testing.T) {
	if results := RunAll(context.Background(), nil, Options{}); results != nil {
		t.Fatal("expected nil results for nil config")
	}
}

func testConfig(t *testing.T) config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Paths.OutputDir = t.TempDir()
	cfg.Paths.CacheDir = t.TempDir()
	cfg.Paths.ReferenceDir = ""
	cfg.Images.PixabayKey = ""
	cfg.Images.UnsplashKey = ""
	return cfg
}

func stubPath(t *testing.T, names ...string) {
	t.Helper()
	dir := t.TempDir()
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("#!/bin/sh\nexit 0\n"), 0o755); err != nil {
			t.Fatal(err)
		}
	}
	t.Setenv("PATH", dir)
}

func TestRunAll_MinimalConfig(t *testing.T) {
	stubPath(t, "ffmpeg")
	cfg := testConfig(t)

	results := RunAll(context.Background(), &cfg, Options{})
	// output, cache, ffmpeg, pixabay, unsplash
	if len(results) != 5 {
		t.Fatalf("expected 5 results, got %d: %#v", len(results), results)
	}
	if failed := Failed(results); len(failed) != 0 {
		t.Fatalf("missing image keys must not block a render: %#v", failed)
	}
}

func TestRunAll_MissingFFmpegFails(t *testing.T) {
	stubPath(t)
	cfg := testConfig(t)

	failed := Failed(RunAll(context.Background(), &cfg, Options{}))
	if len(failed) != 1 || failed[0].Name != "FFmpeg" {
		t.Fatalf("expected ffmpeg failure, got %#v", failed)
	}
}

func TestCheckSystemDeps_PiperRouted(t *testing.T) {
	stubPath(t, "ffmpeg")
	cfg := testConfig(t)
	cfg.TTS.Routes["lb"] = config.ProviderPiper

	statuses := CheckSystemDeps(&cfg)
	if len(statuses) != 2 {
		t.Fatalf("expected ffmpeg and piper statuses, got %#v", statuses)
	}
	piper := statuses[1]
	if piper.Available || piper.Optional {
		t.Fatalf("routed piper must be required and missing, got %#v", piper)
	}
}

func TestRunAll_ElevenLabsRouted(t *testing.T) {
	stubPath(t, "ffmpeg")
	cfg := testConfig(t)
	cfg.TTS.Routes["fr"] = config.ProviderElevenLabs

	var found bool
	for _, r := range RunAll(context.Background(), &cfg, Options{}) {
		if r.Name == "ElevenLabs" {
			found = true
			if r.Passed || !r.Optional {
				t.Fatalf("expected optional missing key, got %#v", r)
			}
		}
	}
	if !found {
		t.Fatal("expected ElevenLabs check in results")
	}
}
