// Package mw provides HTTP middleware for the lm-api server.
package mw

import (
	"net/http"
	"strings"
)

// CachePolicy defines caching behavior for a route pattern.
type CachePolicy struct {
	// Pattern is matched as an exact path or a prefix ending in "/".
	Pattern string
	// CacheControl is the Cache-Control header value to set.
	CacheControl string
}

// CacheConfig holds the cache middleware configuration.
type CacheConfig struct {
	// Policies are the cache policies to apply, matched in order.
	Policies []CachePolicy
	// DefaultPolicy is applied when no policy matches (empty = no header set).
	DefaultPolicy string
}

// DefaultCacheConfig returns the Cache-Control defaults for this API.
// /harga computes its own max-age from the cache age and overrides the default.
func DefaultCacheConfig() CacheConfig {
	return CacheConfig{
		DefaultPolicy: "private, no-cache",
		Policies: []CachePolicy{
			{Pattern: "/healthz", CacheControl: "no-store"},
			{Pattern: "/health", CacheControl: "no-cache"},
			{Pattern: "/docs", CacheControl: "public, max-age=3600"},
			{Pattern: "/openapi", CacheControl: "public, max-age=3600"},
		},
	}
}

// Cache returns middleware that sets Cache-Control headers based on route patterns.
// Non-GET/HEAD requests always get "no-store".
func Cache(cfg CacheConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet && r.Method != http.MethodHead {
				w.Header().Set("Cache-Control", "no-store")
				next.ServeHTTP(w, r)
				return
			}

			value := cfg.DefaultPolicy
			for _, policy := range cfg.Policies {
				if matchesPattern(r.URL.Path, policy.Pattern) {
					value = policy.CacheControl
					break
				}
			}
			if value != "" {
				w.Header().Set("Cache-Control", value)
			}

			next.ServeHTTP(w, r)
		})
	}
}

// matchesPattern reports whether path equals pattern, or lives under it.
// "/health" therefore does not match "/healthz".
func matchesPattern(path, pattern string) bool {
	if path == pattern {
		return true
	}
	if strings.HasSuffix(pattern, "/") {
		return strings.HasPrefix(path, pattern)
	}
	return strings.HasPrefix(path, pattern+"/") || strings.HasPrefix(path, pattern+".")
}
