package worker

import (
	"context"
	"testing"
	"time"

	"golang.org/x/time/rate"
)

func TestLimiter_New(t *testing.T) {
	limiter := NewLimiter(10, 5)
	if limiter.defaultBurst != 5 {
		t.Errorf("expected burst 5, got %d", limiter.defaultBurst)
	}

	l2 := NewLimiter(10, -1)
	if l2.defaultBurst != 5 {
		t.Errorf("expected default burst 5 for negative input, got %d", l2.defaultBurst)
	}
}

func TestLimiter_Wait(t *testing.T) {
	limiter := NewLimiter(100, 1)
	ctx := context.Background()

	if err := limiter.Wait(ctx, "http://example.com/terms"); err != nil {
		t.Errorf("wait failed: %v", err)
	}
	if err := limiter.Wait(ctx, "https://EXAMPLE.com/privacy"); err != nil {
		t.Errorf("wait failed: %v", err)
	}
	if err := limiter.Wait(ctx, "https://other.org"); err != nil {
		t.Errorf("wait failed: %v", err)
	}

	// host matching is case-insensitive
	if len(limiter.limiters) != 2 {
		t.Errorf("expected 2 hosts tracked, got %d", len(limiter.limiters))
	}
}

func TestLimiter_RejectsHostlessURL(t *testing.T) {
	limiter := NewLimiter(10, 1)
	if err := limiter.Wait(context.Background(), "contracts/nda.txt"); err == nil {
		t.Error("expected error for a path without host")
	}
}

func TestLimiter_WaitCancelled(t *testing.T) {
	limiter := NewLimiter(0.001, 1)
	if err := limiter.Wait(context.Background(), "https://slow.example"); err != nil {
		t.Fatalf("first wait failed: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if err := limiter.Wait(ctx, "https://slow.example"); err == nil {
		t.Error("expected error when the context expires before a token is available")
	}
}

func TestLimiter_SetCrawlDelay(t *testing.T) {
	limiter := NewLimiter(100, 5)

	// known host is slowed down
	if err := limiter.Wait(context.Background(), "https://example.com/a"); err != nil {
		t.Fatalf("wait failed: %v", err)
	}
	limiter.SetCrawlDelay("https://EXAMPLE.com/b", 2*time.Second)
	got := limiter.limiters["example.com"]
	if got.Limit() != rate.Every(2*time.Second) || got.Burst() != 1 {
		t.Errorf("limit = %v burst = %d, want one request per 2s", got.Limit(), got.Burst())
	}

	// a shorter delay never speeds a host up again
	limiter.SetCrawlDelay("https://example.com/c", 100*time.Millisecond)
	if got.Limit() != rate.Every(2*time.Second) {
		t.Errorf("shorter crawl delay changed limit to %v", got.Limit())
	}

	// unseen host starts limited
	limiter.SetCrawlDelay("https://new.example/", time.Second)
	if l := limiter.limiters["new.example"]; l == nil || l.Limit() != rate.Every(time.Second) {
		t.Errorf("expected new host limited to 1/s, got %v", l)
	}

	// default rate stricter than the crawl delay wins
	slow := NewLimiter(0.1, 1)
	slow.SetCrawlDelay("https://example.com", time.Second)
	if l := slow.limiters["example.com"]; l.Limit() != rate.Limit(0.1) {
		t.Errorf("limit = %v, want default 0.1", l.Limit())
	}
}

func TestLimiter_SetCrawlDelayNoop(t *testing.T) {
	var nilLimiter *Limiter
	nilLimiter.SetCrawlDelay("https://example.com", time.Second)

	limiter := NewLimiter(10, 1)
	limiter.SetCrawlDelay("https://example.com", 0)
	limiter.SetCrawlDelay("contracts/nda.txt", time.Second)
	if len(limiter.limiters) != 0 {
		t.Errorf("expected no hosts tracked, got %d", len(limiter.limiters))
	}
}

func TestLimiter_CrawlDelayThrottlesWait(t *testing.T) {
	limiter := NewLimiter(1000, 5)
	limiter.SetCrawlDelay("https://example.com", 50*time.Millisecond)

	ctx := context.Background()
	start := time.Now()
	for i := 0; i < 2; i++ {
		if err := limiter.Wait(ctx, "https://example.com/doc"); err != nil {
			t.Fatalf("wait %d failed: %v", i, err)
		}
	}
	if d := time.Since(start); d < 40*time.Millisecond {
		t.Errorf("expected second request to wait for the crawl delay, took %v", d)
	}
}
