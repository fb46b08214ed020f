package routes

import (
	"context"

	"github.com/tint-us/lm-api/internal/http/handlers"
)

// StubHandlers returns a Handlers instance whose functions return nil.
// Huma only needs the signatures to build the OpenAPI document.
func StubHandlers() *Handlers {
	return &Handlers{
		HealthCheck: stubHealthCheck,
		Livez:       stubLivez,
		GetHarga:    stubGetHarga,
	}
}

func stubHealthCheck(_ context.Context, _ *struct{}) (*handlers.HealthCheckOutput, error) {
	return nil, nil
}

func stubLivez(_ context.Context, _ *struct{}) (*handlers.LivezOutput, error) {
	return nil, nil
}

func stubGetHarga(_ context.Context, _ *struct{}) (*handlers.HargaOutput, error) {
	return nil, nil
}
