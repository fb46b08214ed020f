// Package routes provides shared route registration for the lm-api server.
// Both the server and the OpenAPI generator register through it so the
// published document always matches what is served.
package routes

import (
	"github.com/danielgtaylor/huma/v2"

	"github.com/tint-us/lm-api/internal/constants"
	"github.com/tint-us/lm-api/internal/http/mw"
	"github.com/tint-us/lm-api/internal/version"
)

// NewHumaConfig creates the shared Huma configuration for the API.
func NewHumaConfig(baseURL string) huma.Config {
	cfg := huma.DefaultConfig(constants.ServiceName, version.Get().Short())
	cfg.Info.Description = "Daily ANTAM 1 gram gold buyback quotation, scraped from the public price page and cached."

	// Keep response bodies exactly as documented, without a $schema link.
	cfg.CreateHooks = nil

	if baseURL != "" {
		cfg.Servers = []*huma.Server{
			{URL: baseURL, Description: "API Server"},
		}
	}

	cfg.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		mw.SecurityScheme: {
			Type:        "http",
			Scheme:      "bearer",
			Description: "Shared secret configured as APP_TOKEN. Send it as `Authorization: Bearer <token>`.",
		},
	}

	cfg.Tags = []*huma.Tag{
		{Name: "Harga", Description: "Current gold price quotation", Extensions: map[string]any{"x-displayName": "Harga"}},
		{Name: "Health", Description: "Service health and status", Extensions: map[string]any{"x-displayName": "Health"}},
	}

	return cfg
}
