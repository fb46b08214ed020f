// Package constants defines centralized configuration for the price scraper.
package constants

import "time"

// ServiceName is reported by the health endpoint and used as the API title.
const ServiceName = "lm-api"

// Upstream source configuration.
const (
	// DefaultSourceURL is the page carrying the daily ANTAM quotation.
	DefaultSourceURL = "https://emasantam.id/harga-emas-antam-harian/"

	// UserAgent is sent on every upstream request. The source serves a
	// reduced page to unknown clients, so a desktop browser string is used.
	UserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"
)

// Fetch retry and backoff configuration.
const (
	// DefaultHTTPTimeout bounds a single upstream attempt.
	DefaultHTTPTimeout = 12 * time.Second

	// DefaultHTTPRetries is the total number of attempts, not the number of retries
	// after the first one.
	DefaultHTTPRetries = 3

	// BackoffBase is the growth factor between attempts.
	// With BackoffUnit=1s: delays are 1s, 1.5s, 2.25s, etc.
	BackoffBase = 1.5

	// BackoffUnit is the delay after the first failed attempt.
	BackoffUnit = time.Second
)

// Cache configuration.
const (
	// DefaultCacheTTL is how long a scraped payload is served without refetching.
	DefaultCacheTTL = 300 * time.Second
)

// HTTP server configuration.
const (
	// DefaultPort matches the port the service has historically listened on.
	DefaultPort = 8000

	// DefaultRequestTimeout applies to every endpoint that never reaches upstream.
	DefaultRequestTimeout = 10 * time.Second

	// RequestTimeoutSlack is added on top of the worst case pipeline duration
	// for endpoints that may trigger a scrape.
	RequestTimeoutSlack = 5 * time.Second

	// DefaultRateLimitPerMinute is the per-IP request budget for our own API.
	// 0 leaves inbound limiting off unless RATE_LIMIT_PER_MINUTE is set.
	DefaultRateLimitPerMinute = 0

	// ThrottleLimit caps concurrent requests when inbound limiting is enabled.
	ThrottleLimit = 100
)

// Extraction trace notes.
const (
	NotePriceViaSelector = "harga via selector"
	NoteDateViaSelector  = "tanggal via selector"
	NoteSeparator        = " | "
)
