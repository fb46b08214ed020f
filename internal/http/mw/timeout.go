package mw

import (
	"context"
	"net/http"
	"time"
)

// TimeoutConfig defines request deadlines for different path patterns.
type TimeoutConfig struct {
	// Default deadline for most endpoints
	Default time.Duration
	// Extended deadline for endpoints that may scrape upstream
	Extended time.Duration
	// Paths (see matchesPattern) that get the Extended deadline
	ExtendedPatterns []string
	// Paths that get no deadline
	SkipPatterns []string
}

// timeoutFor returns the deadline for path, or 0 for none.
func (cfg TimeoutConfig) timeoutFor(path string) time.Duration {
	for _, pattern := range cfg.SkipPatterns {
		if matchesPattern(path, pattern) {
			return 0
		}
	}
	for _, pattern := range cfg.ExtendedPatterns {
		if matchesPattern(path, pattern) {
			return cfg.Extended
		}
	}
	return cfg.Default
}

// Timeout returns a middleware that attaches a per-path deadline to the request
// context. Handlers are expected to observe ctx and answer 504 themselves.
func Timeout(cfg TimeoutConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			timeout := cfg.timeoutFor(r.URL.Path)
			if timeout <= 0 {
				next.ServeHTTP(w, r)
				return
			}

			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			defer cancel()
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
