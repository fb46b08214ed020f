// Package handlers contains HTTP handlers for the API.
package handlers

import (
	"context"
	"time"

	"github.com/tint-us/lm-api/internal/models"
)

// PriceProvider is the subset of the price service the handlers need.
type PriceProvider interface {
	Current(ctx context.Context) (*models.PricePayload, error)
	SourceURL() string
	CacheTTL() time.Duration
	CacheAge() (time.Duration, bool)
}

// LivezOutput represents the liveness probe response.
type LivezOutput struct {
	Body struct {
		Status string `json:"status"`
	}
}

// Livez reports that the process is serving requests. It never touches upstream.
func Livez(ctx context.Context, input *struct{}) (*LivezOutput, error) {
	out := &LivezOutput{}
	out.Body.Status = "ok"
	return out, nil
}
