package routes

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/tint-us/lm-api/internal/http/mw"
)

// Register registers all API routes with the given Huma API instance.
func Register(api huma.API, h *Handlers) {
	// =========================================================================
	// Public Routes (no auth required)
	// =========================================================================

	mw.PublicGet(api, "/health", h.HealthCheck,
		mw.WithTags("Health"),
		mw.WithSummary("Health check"),
		mw.WithDescription("Reports liveness and the configured source URL. Never contacts the source."),
		mw.WithOperationID("healthCheck"))

	mw.HiddenGet(api, "/healthz", h.Livez)

	// =========================================================================
	// Protected Routes (require bearer auth)
	// =========================================================================

	mw.ProtectedGet(api, "/harga", h.GetHarga,
		mw.WithTags("Harga"),
		mw.WithSummary("Current ANTAM 1 gram price"),
		mw.WithDescription("Returns the cached quotation when it is fresher than CACHE_TTL_SEC, otherwise scrapes the source first."),
		mw.WithOperationID("getHarga"),
		mw.WithErrors(http.StatusBadGateway, http.StatusGatewayTimeout))
}
