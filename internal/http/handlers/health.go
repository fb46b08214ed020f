package handlers

import (
	"context"

	"github.com/tint-us/lm-api/internal/constants"
	"github.com/tint-us/lm-api/internal/version"
)

// HealthBody is the public health payload.
type HealthBody struct {
	OK              bool     `json:"ok"`
	Service         string   `json:"service"`
	SourceURL       string   `json:"source_url" doc:"Page the price is scraped from"`
	Version         string   `json:"version"`
	CacheAgeSeconds *float64 `json:"cache_age_seconds" doc:"Age of the cached quotation, null when nothing is cached"`
}

// HealthCheckOutput represents health check response.
type HealthCheckOutput struct {
	Body HealthBody
}

// HealthHandler serves /health.
type HealthHandler struct {
	prices PriceProvider
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(prices PriceProvider) *HealthHandler {
	return &HealthHandler{prices: prices}
}

// HealthCheck reports service identity and cache state without authentication
// and without triggering a scrape.
func (h *HealthHandler) HealthCheck(ctx context.Context, input *struct{}) (*HealthCheckOutput, error) {
	body := HealthBody{
		OK:        true,
		Service:   constants.ServiceName,
		SourceURL: h.prices.SourceURL(),
		Version:   version.Get().Short(),
	}
	if age, ok := h.prices.CacheAge(); ok {
		secs := age.Seconds()
		body.CacheAgeSeconds = &secs
	}
	return &HealthCheckOutput{Body: body}, nil
}
