// Package fetcher retrieves the source page with bounded retries.
package fetcher

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gocolly/colly/v2"

	"github.com/tint-us/lm-api/internal/constants"
	"github.com/tint-us/lm-api/internal/logging"
	"github.com/tint-us/lm-api/internal/protection"
)

// Config holds configuration for creating a Fetcher.
type Config struct {
	Timeout   time.Duration // per attempt
	UserAgent string
	Retry     RetryPolicy
	Logger    *slog.Logger
}

// Fetcher performs GET requests through a fresh Colly collector per attempt
// and rejects bot-challenge pages served with a success status.
type Fetcher struct {
	timeout   time.Duration
	userAgent string
	retry     RetryPolicy
	detector  *protection.Detector
	logger    *slog.Logger
}

// New creates a Fetcher. Zero values fall back to the package defaults.
func New(cfg Config) *Fetcher {
	if cfg.Timeout <= 0 {
		cfg.Timeout = constants.DefaultHTTPTimeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = constants.UserAgent
	}
	if cfg.Retry.Unit == 0 && cfg.Retry.Base == 0 {
		sleep := cfg.Retry.Sleep
		cfg.Retry = DefaultRetryPolicy(cfg.Retry.MaxAttempts)
		cfg.Retry.Sleep = sleep
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Fetcher{
		timeout:   cfg.Timeout,
		userAgent: cfg.UserAgent,
		retry:     cfg.Retry,
		detector:  protection.NewDetector(),
		logger:    cfg.Logger,
	}
}

// Fetch returns the body of url. Transport errors, timeouts, non-2xx
// statuses and challenge pages all count as a failed attempt. When every
// attempt fails a *FetchError wrapping the last cause is returned.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	logger := logging.FromContext(ctx, f.logger)
	attempts := f.retry.attempts()

	var lastErr error
	for i := 0; i < attempts; i++ {
		start := time.Now()
		body, err := f.attempt(ctx, url)
		if err == nil {
			logger.Debug("fetch succeeded",
				"url", url,
				"attempt", i+1,
				"bytes", len(body),
				"duration_ms", time.Since(start).Milliseconds(),
			)
			return body, nil
		}
		lastErr = err

		if i == attempts-1 {
			break
		}
		delay := f.retry.Delay(i)
		logger.Warn("fetch attempt failed, retrying",
			"url", url,
			"attempt", i+1,
			"max_attempts", attempts,
			"backoff", delay,
			"error", err,
		)
		f.retry.sleep(delay)
	}

	return nil, &FetchError{URL: url, Attempts: attempts, Cause: lastErr}
}

// attempt performs a single GET.
func (f *Fetcher) attempt(ctx context.Context, url string) ([]byte, error) {
	var (
		statusCode int
		headers    http.Header
		body       []byte
	)

	c := colly.NewCollector(
		colly.UserAgent(f.userAgent),
		colly.AllowURLRevisit(),
		colly.StdlibContext(ctx),
	)
	c.SetRequestTimeout(f.timeout)
	// Error statuses are classified below instead of by Colly.
	c.ParseHTTPErrorResponse = true

	c.OnRequest(func(r *colly.Request) {
		r.Headers.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")
		r.Headers.Set("Accept-Language", "id-ID,id;q=0.9,en;q=0.8")
	})

	c.OnResponse(func(r *colly.Response) {
		statusCode = r.StatusCode
		body = r.Body
		if r.Headers != nil {
			headers = *r.Headers
		}
	})

	if err := c.Visit(url); err != nil {
		return nil, err
	}

	if statusCode < 200 || statusCode > 299 {
		return nil, &StatusError{StatusCode: statusCode}
	}

	if err := f.detector.DetectFromResponse(headers, body).Err(); err != nil {
		return nil, err
	}

	return body, nil
}
