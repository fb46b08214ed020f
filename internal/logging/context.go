package logging

import (
	"context"
	"log/slog"

	"github.com/go-chi/chi/v5/middleware"
)

// ContextKey is the type for logging context keys.
type ContextKey string

// RunIDKey carries the ID of the scrape run a log line belongs to.
const RunIDKey ContextKey = "log_run_id"

// WithRunID returns a context carrying the given scrape run ID.
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, RunIDKey, runID)
}

// GetRunID returns the scrape run ID from the context, or "".
func GetRunID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(RunIDKey).(string); ok {
		return v
	}
	return ""
}

// FromContext returns logger enriched with the run ID and the chi request ID
// found in ctx. The given logger is returned when neither is present.
func FromContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if ctx == nil {
		return logger
	}
	var attrs []any
	if runID := GetRunID(ctx); runID != "" {
		attrs = append(attrs, "run_id", runID)
	}
	if reqID := middleware.GetReqID(ctx); reqID != "" {
		attrs = append(attrs, "request_id", reqID)
	}
	if len(attrs) == 0 {
		return logger
	}
	return logger.With(attrs...)
}
