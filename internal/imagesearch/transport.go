package imagesearch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"
)

const (
	defaultTimeout  = 12 * time.Second
	defaultRetries  = 3
	defaultBackoff  = 600 * time.Millisecond
	maxImageBytes   = 32 << 20
	maxErrorSnippet = 4096
)

// StatusError reports a non-2xx provider response.
type StatusError struct {
	Code   int
	Status string
	Body   string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("http %s", e.Status)
	}
	return fmt.Sprintf("http %s: %s", e.Status, e.Body)
}

// transport is the retrying HTTP core shared by providers and downloads.
type transport struct {
	http    *http.Client
	retries int
	backoff time.Duration
	sleep   func(context.Context, time.Duration) error
}

// Option customizes a provider client or Downloader.
type Option func(*transport)

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(t *transport) {
		if client != nil {
			t.http = client
		}
	}
}

// WithTimeout sets the per-request timeout on the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(t *transport) {
		if d > 0 {
			t.http = &http.Client{Timeout: d}
		}
	}
}

// WithRetries sets how many retries follow the first attempt.
func WithRetries(n int) Option {
	return func(t *transport) {
		if n >= 0 {
			t.retries = n
		}
	}
}

// WithBackoff sets the base backoff between retries.
func WithBackoff(d time.Duration) Option {
	return func(t *transport) {
		if d >= 0 {
			t.backoff = d
		}
	}
}

// WithSleeper replaces the backoff sleep, mainly for tests.
func WithSleeper(fn func(context.Context, time.Duration) error) Option {
	return func(t *transport) {
		if fn != nil {
			t.sleep = fn
		}
	}
}

func newTransport(opts []Option) transport {
	t := transport{
		http:    &http.Client{Timeout: defaultTimeout},
		retries: defaultRetries,
		backoff: defaultBackoff,
		sleep:   SleepWithContext,
	}
	for _, opt := range opts {
		opt(&t)
	}
	return t
}

// do executes build() with retries on transient failures and returns the
// body of the first successful response, capped at limit bytes.
func (t transport) do(ctx context.Context, build func(context.Context) (*http.Request, error), limit int64) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= t.retries; attempt++ {
		if attempt > 0 {
			delay := t.backoff * time.Duration(1<<(attempt-1))
			if err := t.sleep(ctx, delay); err != nil {
				return nil, err
			}
		}
		req, err := build(ctx)
		if err != nil {
			return nil, err
		}
		body, err := t.once(req, limit)
		if err == nil {
			return body, nil
		}
		lastErr = err
		if ctx.Err() != nil || !IsRetriable(err) {
			return nil, err
		}
	}
	return nil, lastErr
}

func (t transport) once(req *http.Request, limit int64) ([]byte, error) {
	resp, err := t.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorSnippet))
		return nil, &StatusError{Code: resp.StatusCode, Status: resp.Status, Body: strings.TrimSpace(string(snippet))}
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(body)) > limit {
		return nil, fmt.Errorf("response exceeds %d bytes", limit)
	}
	return body, nil
}

func (t transport) getJSON(ctx context.Context, build func(context.Context) (*http.Request, error), out any) error {
	body, err := t.do(ctx, build, maxImageBytes)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// Downloader fetches image bytes with the same retry policy as searches.
type Downloader struct {
	transport
}

// NewDownloader builds a Downloader.
func NewDownloader(opts ...Option) *Downloader {
	return &Downloader{transport: newTransport(opts)}
}

// Download returns the body at url.
func (d *Downloader) Download(ctx context.Context, url string) ([]byte, error) {
	body, err := d.do(ctx, func(ctx context.Context) (*http.Request, error) {
		return http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	}, maxImageBytes)
	if err != nil {
		return nil, fmt.Errorf("download %s: %w", url, err)
	}
	if len(body) == 0 {
		return nil, fmt.Errorf("download %s: empty body", url)
	}
	return body, nil
}

// SleepWithContext blocks for the given duration, returning early if the
// context is cancelled.
func SleepWithContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// IsRetriable reports whether err is a transient condition: rate limits,
// server errors, timeouts, or dropped connections.
func IsRetriable(err error) bool {
	if err == nil {
		return false
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		switch statusErr.Code {
		case http.StatusTooManyRequests, http.StatusInternalServerError,
			http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			return true
		}
		return false
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	message := strings.ToLower(err.Error())
	for _, token := range []string{"connection reset", "connection refused", "temporary failure", "eof"} {
		if strings.Contains(message, token) {
			return true
		}
	}
	return false
}
