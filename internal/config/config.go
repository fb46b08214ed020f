// Package config handles application configuration.
package config

import (
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/tint-us/lm-api/internal/constants"
)

// Config holds all application configuration.
type Config struct {
	// Server settings
	Port    int
	BaseURL string

	// Upstream source
	SourceURL   string
	HTTPTimeout time.Duration // Per-attempt timeout
	HTTPRetries int           // Total attempts, at least 1

	// Cache
	CacheTTL time.Duration

	// Authentication. Either value enables /harga; neither set is a server fault.
	AppToken     string
	AppTokenHash string // bcrypt hash of the bearer token

	// CORS
	CORSOrigins []string

	// Inbound rate limiting (0 = disabled)
	RateLimitPerMinute int

	// Idle shutdown settings (for scale-to-zero on Fly.io)
	IdleTimeout time.Duration // Time before shutting down when idle (0 = disabled)
}

// Load reads configuration from environment variables.
// Invalid numeric values fall back to their defaults rather than failing startup.
func Load() (*Config, error) {
	port := getEnvInt("PORT", constants.DefaultPort)

	cfg := &Config{
		Port:    port,
		BaseURL: getEnv("BASE_URL", "http://localhost:"+strconv.Itoa(port)),

		SourceURL:   getEnv("SOURCE_URL", constants.DefaultSourceURL),
		HTTPTimeout: getEnvSeconds("HTTP_TIMEOUT", constants.DefaultHTTPTimeout),
		HTTPRetries: getEnvInt("HTTP_RETRIES", constants.DefaultHTTPRetries),
		CacheTTL:    getEnvSeconds("CACHE_TTL_SEC", constants.DefaultCacheTTL),

		AppToken:     os.Getenv("APP_TOKEN"),
		AppTokenHash: os.Getenv("APP_TOKEN_HASH"),

		CORSOrigins:        getEnvSlice("CORS_ORIGINS", []string{"*"}),
		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", constants.DefaultRateLimitPerMinute),

		IdleTimeout: getEnvDuration("IDLE_TIMEOUT", 0), // 0 = disabled
	}

	if cfg.HTTPRetries < 1 {
		cfg.HTTPRetries = 1
	}
	if cfg.HTTPTimeout <= 0 {
		cfg.HTTPTimeout = constants.DefaultHTTPTimeout
	}
	if cfg.CacheTTL < 0 {
		cfg.CacheTTL = 0
	}

	return cfg, nil
}

// AuthConfigured reports whether a bearer secret is available.
func (c *Config) AuthConfigured() bool {
	return c.AppToken != "" || c.AppTokenHash != ""
}

// PipelineBudget returns the worst case duration of an uncached scrape:
// every attempt times out and every backoff between attempts is slept.
func (c *Config) PipelineBudget() time.Duration {
	budget := time.Duration(c.HTTPRetries) * c.HTTPTimeout
	for i := 0; i < c.HTTPRetries-1; i++ {
		budget += time.Duration(float64(constants.BackoffUnit) * math.Pow(constants.BackoffBase, float64(i)))
	}
	return budget
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvSeconds reads an integer number of seconds.
func getEnvSeconds(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if secs, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
			return time.Duration(secs) * time.Second
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return defaultValue
}
