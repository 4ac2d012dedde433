package pipeline

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/avast/retry-go"

	"github.com/ppiankov/legalyze/internal/logging"
	"github.com/ppiankov/legalyze/internal/metrics"
	"github.com/ppiankov/legalyze/internal/model"
	"github.com/ppiankov/legalyze/internal/util"
)

const maxRedirects = 3

var (
	// ErrTooManyRedirects is returned when a source redirects more than maxRedirects times
	ErrTooManyRedirects = errors.New("too many redirects")

	// ErrRobotsDisallowed is returned when robots.txt forbids fetching a source
	ErrRobotsDisallowed = errors.New("disallowed by robots.txt")
)

// StatusError is a non-2xx response
type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status: %d %s", e.Code, e.Status)
}

// CrawlDelayer receives the crawl delay a host asks for in robots.txt
type CrawlDelayer interface {
	SetCrawlDelay(rawURL string, delay time.Duration)
}

// Fetcher fetches documents from http(s) URLs
type Fetcher struct {
	httpClient *http.Client
	userAgent  string
	maxBytes   int64
	attempts   uint
	delay      time.Duration
	robots     *util.RobotsChecker
	delays     CrawlDelayer
	metrics    *metrics.Metrics
	logger     logging.Logger
}

// NewFetcher creates a new Fetcher with the given configuration
func NewFetcher(cfg model.HTTPConfig) *Fetcher {
	transport := &http.Transport{
		Proxy: util.NewProxyFunc(cfg.HTTPProxy, cfg.HTTPSProxy, cfg.NoProxy),
	}
	if cfg.InsecureTLS {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec // opt-in via http.insecure_tls
	}

	f := &Fetcher{
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: transport,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= maxRedirects {
					return fmt.Errorf("%w: stopped after %d", ErrTooManyRedirects, maxRedirects)
				}
				return nil
			},
		},
		userAgent: cfg.UserAgent,
		maxBytes:  cfg.MaxBodyBytes,
		attempts:  cfg.RetryAttempts,
		delay:     cfg.RetryDelay,
		logger:    logging.NewNopLogger(),
	}
	if f.attempts == 0 {
		f.attempts = 1
	}
	if cfg.RespectRobots {
		f.robots = util.NewRobotsChecker(cfg.UserAgent, cfg.Timeout)
	}
	return f
}

// WithMetrics counts fetch outcomes by status code
func (f *Fetcher) WithMetrics(m *metrics.Metrics) *Fetcher {
	f.metrics = m
	return f
}

// WithCrawlDelays forwards robots.txt crawl delays to d
func (f *Fetcher) WithCrawlDelays(d CrawlDelayer) *Fetcher {
	f.delays = d
	return f
}

// WithLogger sets the logger used for retry notices
func (f *Fetcher) WithLogger(l logging.Logger) *Fetcher {
	if l != nil {
		f.logger = l
	}
	return f
}

// FetchResult contains the fetched body and metadata
type FetchResult struct {
	Body        []byte
	ContentType string
	Meta        model.FetchMeta
	Subject     string
	FinalURL    string
}

// Fetch retrieves a document, retrying transient failures
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*FetchResult, error) {
	if f.robots != nil {
		allowed, crawlDelay, err := f.robots.CanFetch(ctx, rawURL)
		if err != nil {
			return nil, err
		}
		if !allowed {
			return nil, fmt.Errorf("%w: %s", ErrRobotsDisallowed, rawURL)
		}
		if crawlDelay > 0 && f.delays != nil {
			f.logger.Debug("robots.txt crawl delay", logging.String("url", rawURL), logging.Duration("delay", crawlDelay))
			f.delays.SetCrawlDelay(rawURL, crawlDelay)
		}
	}

	var result *FetchResult
	err := retry.Do(
		func() error {
			var err error
			result, err = f.fetchOnce(ctx, rawURL)
			return err
		},
		retry.Context(ctx),
		retry.Attempts(f.attempts),
		retry.Delay(f.delay),
		retry.LastErrorOnly(true),
		retry.RetryIf(isRetryableFetchError),
		retry.OnRetry(func(n uint, err error) {
			f.logger.Debug("retrying fetch",
				logging.String("url", rawURL),
				logging.Int("attempt", int(n)+1),
				logging.Err(err))
		}),
	)
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (f *Fetcher) fetchOnce(ctx context.Context, rawURL string) (*FetchResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,text/plain,text/markdown;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if f.metrics != nil {
		f.metrics.Fetched(resp.StatusCode)
	}

	meta := model.FetchMeta{
		StatusCode:   resp.StatusCode,
		ContentType:  resp.Header.Get("Content-Type"),
		LastModified: resp.Header.Get("Last-Modified"),
		ETag:         resp.Header.Get("ETag"),
		Headers:      make(map[string]string),
	}
	for _, key := range []string{"Content-Length", "Server", "Cache-Control"} {
		if val := resp.Header.Get(key); val != "" {
			meta.Headers[key] = val
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{Code: resp.StatusCode, Status: http.StatusText(resp.StatusCode)}
	}

	var body io.Reader = resp.Body
	if f.maxBytes > 0 {
		body = io.LimitReader(resp.Body, f.maxBytes)
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	finalURL := resp.Request.URL.String()
	return &FetchResult{
		Body:        data,
		ContentType: meta.ContentType,
		Meta:        meta,
		Subject:     extractSubject(finalURL),
		FinalURL:    finalURL,
	}, nil
}

// isRetryableFetchError reports whether err is a transient failure:
// 5xx, 429 or a transport error
func isRetryableFetchError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrTooManyRedirects) || errors.Is(err, context.Canceled) {
		return false
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Code == http.StatusTooManyRequests || statusErr.Code >= 500
	}
	var urlErr *url.Error
	return errors.As(err, &urlErr)
}

// extractSubject extracts a human-readable subject from the URL
func extractSubject(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}

	p := strings.Trim(parsed.Path, "/")
	if p == "" {
		return parsed.Host
	}

	last := path.Base(p)
	last = strings.TrimSuffix(last, path.Ext(last))
	last = strings.NewReplacer("_", " ", "-", " ").Replace(last)
	if last == "" {
		return parsed.Host
	}
	return last
}
