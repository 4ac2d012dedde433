package pipeline

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ppiankov/legalyze/internal/model"
)

func testHTTPConfig() model.HTTPConfig {
	return model.HTTPConfig{
		Timeout:       5 * time.Second,
		UserAgent:     "test-agent",
		MaxBodyBytes:  1 << 20,
		RetryAttempts: 3,
		RetryDelay:    time.Millisecond,
	}
}

func TestFetch_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") != "test-agent" {
			t.Errorf("unexpected user agent %q", r.Header.Get("User-Agent"))
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("ETag", `"v1"`)
		_, _ = fmt.Fprint(w, "<html><body>OK</body></html>")
	}))
	defer server.Close()

	result, err := NewFetcher(testHTTPConfig()).Fetch(context.Background(), server.URL+"/legal/terms-of-service.html")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if string(result.Body) != "<html><body>OK</body></html>" {
		t.Errorf("Unexpected body: %s", result.Body)
	}
	if result.ContentType != "text/html; charset=utf-8" {
		t.Errorf("Unexpected content type: %s", result.ContentType)
	}
	if result.Meta.StatusCode != http.StatusOK || result.Meta.ETag != `"v1"` {
		t.Errorf("Unexpected meta: %+v", result.Meta)
	}
	if result.Subject != "terms of service" {
		t.Errorf("Unexpected subject: %q", result.Subject)
	}
}

func TestFetch_TransientThenSuccess(t *testing.T) {
	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) <= 2 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = fmt.Fprint(w, "OK")
	}))
	defer server.Close()

	result, err := NewFetcher(testHTTPConfig()).Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Expected success after retries, got %v", err)
	}
	if string(result.Body) != "OK" {
		t.Errorf("Unexpected body: %s", result.Body)
	}
	if attempts.Load() != 3 {
		t.Errorf("Expected 3 attempts, got %d", attempts.Load())
	}
}

func TestFetch_PermanentFailure(t *testing.T) {
	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := NewFetcher(testHTTPConfig()).Fetch(context.Background(), server.URL)
	if err == nil {
		t.Fatal("Expected error for 404, got nil")
	}
	if got := err.Error(); got != "unexpected status: 404 Not Found" {
		t.Errorf("Unexpected error: %s", got)
	}
	if attempts.Load() != 1 {
		t.Errorf("Expected 1 attempt for 404, got %d", attempts.Load())
	}
}

func TestFetch_AllRetriesExhausted(t *testing.T) {
	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	_, err := NewFetcher(testHTTPConfig()).Fetch(context.Background(), server.URL)
	var statusErr *StatusError
	if !errors.As(err, &statusErr) || statusErr.Code != http.StatusServiceUnavailable {
		t.Fatalf("Expected 503 StatusError, got %v", err)
	}
	if attempts.Load() != 3 {
		t.Errorf("Expected 3 attempts, got %d", attempts.Load())
	}
}

func TestFetch_429Retried(t *testing.T) {
	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = fmt.Fprint(w, "OK")
	}))
	defer server.Close()

	if _, err := NewFetcher(testHTTPConfig()).Fetch(context.Background(), server.URL); err != nil {
		t.Fatalf("Expected success after 429 retry, got %v", err)
	}
	if attempts.Load() != 2 {
		t.Errorf("Expected 2 attempts, got %d", attempts.Load())
	}
}

func TestFetch_SizeLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprint(w, "0123456789")
	}))
	defer server.Close()

	cfg := testHTTPConfig()
	cfg.MaxBodyBytes = 4
	result, err := NewFetcher(cfg).Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatal(err)
	}
	if string(result.Body) != "0123" {
		t.Errorf("Expected body cut to 4 bytes, got %q", result.Body)
	}
}

func TestFetch_RedirectCap(t *testing.T) {
	var hits atomic.Int32
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		http.Redirect(w, r, server.URL+fmt.Sprintf("/r%d", hits.Load()), http.StatusFound)
	}))
	defer server.Close()

	_, err := NewFetcher(testHTTPConfig()).Fetch(context.Background(), server.URL)
	if !errors.Is(err, ErrTooManyRedirects) {
		t.Fatalf("Expected ErrTooManyRedirects, got %v", err)
	}
	// the third redirect is refused and never retried
	if hits.Load() != 3 {
		t.Errorf("Expected 3 requests, got %d", hits.Load())
	}
}

func TestFetch_RobotsDisallowed(t *testing.T) {
	var docHits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			_, _ = fmt.Fprint(w, "User-agent: *\nDisallow: /private\n")
			return
		}
		docHits.Add(1)
		_, _ = fmt.Fprint(w, "secret")
	}))
	defer server.Close()

	cfg := testHTTPConfig()
	cfg.RespectRobots = true
	fetcher := NewFetcher(cfg)

	_, err := fetcher.Fetch(context.Background(), server.URL+"/private/policy")
	if !errors.Is(err, ErrRobotsDisallowed) {
		t.Fatalf("Expected ErrRobotsDisallowed, got %v", err)
	}
	if docHits.Load() != 0 {
		t.Errorf("Expected no document request, got %d", docHits.Load())
	}

	if _, err := fetcher.Fetch(context.Background(), server.URL+"/public/policy"); err != nil {
		t.Errorf("Expected allowed path to fetch, got %v", err)
	}
}

func TestIsRetryableFetchError(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		retryable bool
	}{
		{"nil", nil, false},
		{"503", &StatusError{Code: 503}, true},
		{"500", &StatusError{Code: 500}, true},
		{"429", &StatusError{Code: 429}, true},
		{"404", &StatusError{Code: 404}, false},
		{"403", &StatusError{Code: 403}, false},
		{"transport", fmt.Errorf("fetch: %w", &url.Error{Op: "Get", URL: "http://x", Err: errors.New("connection refused")}), true},
		{"redirects", fmt.Errorf("fetch: %w", &url.Error{Op: "Get", URL: "http://x", Err: ErrTooManyRedirects}), false},
		{"cancelled", fmt.Errorf("fetch: %w", &url.Error{Op: "Get", URL: "http://x", Err: context.Canceled}), false},
		{"create request", errors.New("create request: invalid URL"), false},
		{"read body", errors.New("read body: unexpected EOF"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isRetryableFetchError(tt.err); got != tt.retryable {
				t.Errorf("isRetryableFetchError(%v) = %v, want %v", tt.err, got, tt.retryable)
			}
		})
	}
}

func TestExtractSubject(t *testing.T) {
	tests := map[string]string{
		"https://example.com/":                         "example.com",
		"https://example.com/legal/privacy_policy.pdf": "privacy policy",
		"https://example.com/terms-of-use":             "terms of use",
	}
	for in, want := range tests {
		if got := extractSubject(in); got != want {
			t.Errorf("extractSubject(%q) = %q, want %q", in, got, want)
		}
	}
}

type recordingDelayer struct {
	mu     sync.Mutex
	urls   []string
	delays []time.Duration
}

func (r *recordingDelayer) SetCrawlDelay(rawURL string, delay time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.urls = append(r.urls, rawURL)
	r.delays = append(r.delays, delay)
}

func TestFetch_ForwardsCrawlDelay(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			_, _ = fmt.Fprint(w, "User-agent: *\nCrawl-delay: 3\n")
			return
		}
		_, _ = fmt.Fprint(w, "terms")
	}))
	defer server.Close()

	cfg := testHTTPConfig()
	cfg.RespectRobots = true
	delayer := &recordingDelayer{}
	fetcher := NewFetcher(cfg).WithCrawlDelays(delayer)

	if _, err := fetcher.Fetch(context.Background(), server.URL+"/terms"); err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if len(delayer.delays) != 1 || delayer.delays[0] != 3*time.Second {
		t.Fatalf("Expected one 3s crawl delay, got %v", delayer.delays)
	}
	if delayer.urls[0] != server.URL+"/terms" {
		t.Errorf("Expected delay for the fetched URL, got %s", delayer.urls[0])
	}
}

func TestFetch_NoCrawlDelayWithoutRobots(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprint(w, "terms")
	}))
	defer server.Close()

	delayer := &recordingDelayer{}
	fetcher := NewFetcher(testHTTPConfig()).WithCrawlDelays(delayer)
	if _, err := fetcher.Fetch(context.Background(), server.URL+"/terms"); err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if len(delayer.delays) != 0 {
		t.Errorf("Expected no crawl delay, got %v", delayer.delays)
	}
}
