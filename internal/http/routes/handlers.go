package routes

import (
	"context"

	"github.com/tint-us/lm-api/internal/http/handlers"
)

// Handlers aggregates the endpoint functions for route registration.
// The server passes real implementations, the OpenAPI generator passes stubs.
type Handlers struct {
	// Public endpoints
	HealthCheck func(ctx context.Context, input *struct{}) (*handlers.HealthCheckOutput, error)

	// Liveness probe (hidden from docs)
	Livez func(ctx context.Context, input *struct{}) (*handlers.LivezOutput, error)

	// Protected endpoints
	GetHarga func(ctx context.Context, input *struct{}) (*handlers.HargaOutput, error)
}

// NewHandlers builds the production handler set.
func NewHandlers(health *handlers.HealthHandler, harga *handlers.HargaHandler) *Handlers {
	return &Handlers{
		HealthCheck: health.HealthCheck,
		Livez:       handlers.Livez,
		GetHarga:    harga.GetHarga,
	}
}
