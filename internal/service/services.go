// Package service contains the business logic layer.
package service

import (
	"log/slog"

	"github.com/tint-us/lm-api/internal/config"
	"github.com/tint-us/lm-api/internal/extract"
	"github.com/tint-us/lm-api/internal/fetcher"
	"github.com/tint-us/lm-api/internal/pricecache"
)

// Services holds all service instances.
type Services struct {
	Auth  *AuthService
	Price *PriceService
}

// NewServices wires the services from configuration.
func NewServices(cfg *config.Config, logger *slog.Logger) *Services {
	f := fetcher.New(fetcher.Config{
		Timeout: cfg.HTTPTimeout,
		Retry:   fetcher.DefaultRetryPolicy(cfg.HTTPRetries),
		Logger:  logger,
	})

	return &Services{
		Auth: NewAuthService(cfg.AppToken, cfg.AppTokenHash),
		Price: NewPriceService(PriceServiceConfig{
			SourceURL: cfg.SourceURL,
			CacheTTL:  cfg.CacheTTL,
			Fetcher:   f,
			Extractor: extract.New(),
			Cache:     pricecache.New(),
		}, logger),
	}
}
