package util

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestSnippet(t *testing.T) {
	text := "0123456789abcdefghij"
	if got := Snippet(text, 10, 12, 2); got != "...89abcd..." {
		t.Errorf("Snippet middle = %q", got)
	}
	if got := Snippet(text, 0, 2, 3); got != "01234..." {
		t.Errorf("Snippet start = %q", got)
	}
	if got := Snippet(text, 18, 20, 5); got != "...defghij" {
		t.Errorf("Snippet end = %q", got)
	}
}

func TestWindow_RuneBoundaries(t *testing.T) {
	text := "aé b"
	// byte 2 is inside 'é'
	if got := Window(text, 2, 3); got != "é" {
		t.Errorf("Window = %q", got)
	}
}

func TestLowerAligned(t *testing.T) {
	in := "The PARTY Agrees"
	got := LowerAligned(in)
	if got != "the party agrees" {
		t.Errorf("LowerAligned = %q", got)
	}
	if len(got) != len(in) {
		t.Errorf("length changed from %d to %d", len(in), len(got))
	}
}

func TestLowerAligned_NonASCII(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"latin-1 bytes copied through", "Caf\xe9 \xa7 GDPR", "caf\xe9 \xa7 gdpr"},
		{"leading continuation bytes", "\xa7\xa7 Consent", "\xa7\xa7 consent"},
		{"two-byte runes", "ÉTAT § ΔΕΔΟΜΕΝΑ", "état § δεδομενα"},
		{"width-changing rune kept", "\u212a Clause", "\u212a clause"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LowerAligned(tt.in)
			if got != tt.want {
				t.Errorf("LowerAligned(%q) = %q, want %q", tt.in, got, tt.want)
			}
			if len(got) != len(tt.in) {
				t.Errorf("length changed from %d to %d", len(tt.in), len(got))
			}
		})
	}
}

func TestRoundAndClamp(t *testing.T) {
	if got := Round(1.23456, 2); got != 1.23 {
		t.Errorf("Round = %v", got)
	}
	if got := Clamp(120, 0, 100); got != 100 {
		t.Errorf("Clamp high = %v", got)
	}
	if got := Clamp(-3, 0, 100); got != 0 {
		t.Errorf("Clamp low = %v", got)
	}
}

func TestNewProxyFunc(t *testing.T) {
	proxy := NewProxyFunc("http://proxy.internal:3128", "", "skip.example.com")

	req, _ := http.NewRequest(http.MethodGet, "https://docs.example.com/terms", nil)
	u, err := proxy(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u == nil || u.Host != "proxy.internal:3128" {
		t.Errorf("expected https to fall back to the http proxy, got %v", u)
	}

	req, _ = http.NewRequest(http.MethodGet, "http://skip.example.com/terms", nil)
	u, err = proxy(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u != nil {
		t.Errorf("expected no proxy for no_proxy host, got %v", u)
	}
}

func TestRobotsChecker(t *testing.T) {
	var robotsHits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			robotsHits.Add(1)
			_, _ = fmt.Fprint(w, "User-agent: Legalyze\nDisallow: /private\nCrawl-delay: 2\n\nUser-agent: *\nDisallow: /\n")
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	checker := NewRobotsChecker("Legalyze/0.1 (+https://example.com)", 5*time.Second)
	ctx := context.Background()

	allowed, delay, err := checker.CanFetch(ctx, server.URL+"/terms")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !allowed {
		t.Error("expected /terms to be allowed")
	}
	if delay != 2*time.Second {
		t.Errorf("crawl delay = %v, want 2s", delay)
	}

	if allowed, _, _ := checker.CanFetch(ctx, server.URL+"/private/doc"); allowed {
		t.Error("expected /private to be disallowed")
	}
	if robotsHits.Load() != 1 {
		t.Errorf("robots.txt fetched %d times, want 1", robotsHits.Load())
	}
}

func TestRobotsChecker_MissingRobotsAllows(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	checker := NewRobotsChecker("Legalyze/0.1", 5*time.Second)
	if allowed, _, _ := checker.CanFetch(context.Background(), server.URL+"/anything"); !allowed {
		t.Error("expected missing robots.txt to allow")
	}
}

func TestRobotsChecker_BadURL(t *testing.T) {
	checker := NewRobotsChecker("Legalyze/0.1", time.Second)
	if _, _, err := checker.CanFetch(context.Background(), "not a url"); err == nil {
		t.Error("expected error for URL without host")
	}
}

func TestNormalizeUserAgent(t *testing.T) {
	tests := map[string]string{
		"Legalyze/0.1 (+https://x)": "Legalyze",
		"curl":                      "curl",
		"":                          "",
	}
	for in, want := range tests {
		if got := NormalizeUserAgent(in); got != want {
			t.Errorf("NormalizeUserAgent(%q) = %q, want %q", in, got, want)
		}
	}
}
