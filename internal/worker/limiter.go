package worker

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Limiter rate-limits URL sources per host so a batch never hammers one site
type Limiter struct {
	limiters     map[string]*rate.Limiter
	mu           sync.RWMutex
	defaultRate  rate.Limit
	defaultBurst int
}

// NewLimiter creates a per-host limiter; burst defaults to 5
func NewLimiter(requestsPerSecond float64, burst int) *Limiter {
	if burst <= 0 {
		burst = 5
	}

	return &Limiter{
		limiters:     make(map[string]*rate.Limiter),
		defaultRate:  rate.Limit(requestsPerSecond),
		defaultBurst: burst,
	}
}

// Wait blocks until the host of rawURL may be fetched again
func (l *Limiter) Wait(ctx context.Context, rawURL string) error {
	host, err := hostOf(rawURL)
	if err != nil {
		return err
	}
	return l.limiterFor(host).Wait(ctx)
}

// SetCrawlDelay slows the host of rawURL to one request per delay, as asked
// by its robots.txt. A host already limited more strictly is left alone.
// Safe on a nil Limiter.
func (l *Limiter) SetCrawlDelay(rawURL string, delay time.Duration) {
	if l == nil || delay <= 0 {
		return
	}
	host, err := hostOf(rawURL)
	if err != nil {
		return
	}

	limit := rate.Every(delay)
	l.mu.Lock()
	defer l.mu.Unlock()

	existing, ok := l.limiters[host]
	if !ok {
		if l.defaultRate < limit {
			limit = l.defaultRate
		}
		l.limiters[host] = rate.NewLimiter(limit, 1)
		return
	}
	if existing.Limit() <= limit {
		return
	}
	existing.SetLimit(limit)
	existing.SetBurst(1)
}

func (l *Limiter) limiterFor(host string) *rate.Limiter {
	l.mu.RLock()
	limiter, exists := l.limiters[host]
	l.mu.RUnlock()

	if exists {
		return limiter
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if limiter, exists := l.limiters[host]; exists {
		return limiter
	}

	limiter = rate.NewLimiter(l.defaultRate, l.defaultBurst)
	l.limiters[host] = limiter
	return limiter
}

func hostOf(rawURL string) (string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	if parsed.Host == "" {
		return "", fmt.Errorf("no host in %q", rawURL)
	}
	return strings.ToLower(parsed.Host), nil
}
