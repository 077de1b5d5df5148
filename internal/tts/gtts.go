package tts

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode"

	"lingoreel/internal/language"
)

const (
	defaultGTTSURL     = "https://translate.google.com/translate_tts"
	defaultGTTSTimeout = 20 * time.Second
	gttsChunkRunes     = 200
	maxSpeechBytes     = 16 << 20
	maxErrorSnippet    = 180
)

// GTTSConfig configures the Google translate speech engine.
type GTTSConfig struct {
	BaseURL string
	Timeout time.Duration
}

// GTTS renders speech through the public Google translate endpoint.
type GTTS struct {
	baseURL string
	http    *http.Client
}

// NewGTTS builds a GTTS engine.
func NewGTTS(cfg GTTSConfig) *GTTS {
	base := strings.TrimSpace(cfg.BaseURL)
	if base == "" {
		base = defaultGTTSURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultGTTSTimeout
	}
	return &GTTS{baseURL: base, http: &http.Client{Timeout: timeout}}
}

func (g *GTTS) Name() string { return ProviderGTTS }

func (g *GTTS) Ext() string { return ".mp3" }

// CacheIdentity keys gtts audio by the endpoint language, so languages that
// share a voice share cache entries.
func (g *GTTS) CacheIdentity(lang string) (string, string) {
	return language.SpeechCode(lang), ""
}

// Render fetches MP3 audio chunk by chunk and concatenates the frames.
func (g *GTTS) Render(ctx context.Context, text, lang string) ([]byte, error) {
	chunks := ChunkText(text, gttsChunkRunes)
	if len(chunks) == 0 {
		return nil, fmt.Errorf("gtts: empty text")
	}
	tl := language.SpeechCode(lang)
	var out bytes.Buffer
	for i, chunk := range chunks {
		q := url.Values{}
		q.Set("ie", "UTF-8")
		q.Set("client", "tw-ob")
		q.Set("tl", tl)
		q.Set("q", chunk)
		q.Set("total", strconv.Itoa(len(chunks)))
		q.Set("idx", strconv.Itoa(i))
		q.Set("textlen", strconv.Itoa(len([]rune(chunk))))
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"?"+q.Encode(), nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", "Mozilla/5.0")
		body, err := readAudio(g.http, req)
		if err != nil {
			return nil, fmt.Errorf("gtts chunk %d/%d (%s): %w", i+1, len(chunks), tl, err)
		}
		out.Write(body)
	}
	return out.Bytes(), nil
}

// ChunkText splits text into pieces of at most limit runes, preferring to
// break after punctuation and then at whitespace.
func ChunkText(text string, limit int) []string {
	text = strings.Join(strings.Fields(text), " ")
	if text == "" {
		return nil
	}
	if limit <= 0 {
		return []string{text}
	}
	var chunks []string
	runes := []rune(text)
	for len(runes) > limit {
		cut := breakPoint(runes[:limit+1])
		if cut <= 0 {
			cut = limit
		}
		if piece := strings.TrimSpace(string(runes[:cut])); piece != "" {
			chunks = append(chunks, piece)
		}
		runes = []rune(strings.TrimSpace(string(runes[cut:])))
	}
	if len(runes) > 0 {
		chunks = append(chunks, string(runes))
	}
	return chunks
}

func breakPoint(window []rune) int {
	for i := len(window) - 1; i > 0; i-- {
		if strings.ContainsRune(".!?;:,。！？", window[i-1]) && unicode.IsSpace(window[i]) {
			return i
		}
	}
	for i := len(window) - 1; i > 0; i-- {
		if unicode.IsSpace(window[i]) {
			return i
		}
	}
	return -1
}

// readAudio performs req and returns a non-empty body.
func readAudio(client *http.Client, req *http.Request) ([]byte, error) {
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorSnippet))
		return nil, &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(snippet))}
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxSpeechBytes+1))
	if err != nil {
		return nil, err
	}
	if len(body) > maxSpeechBytes {
		return nil, fmt.Errorf("response exceeds %d bytes", maxSpeechBytes)
	}
	if len(body) == 0 {
		return nil, fmt.Errorf("empty audio response")
	}
	return body, nil
}

// StatusError reports an HTTP error from a speech provider.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("http %d", e.Code)
	}
	return fmt.Sprintf("http %d: %s", e.Code, e.Body)
}
