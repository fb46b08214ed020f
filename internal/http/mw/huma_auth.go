package mw

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"github.com/tint-us/lm-api/internal/service"
)

// SecurityScheme is the name of the security scheme used in OpenAPI.
const SecurityScheme = "bearerAuth"

// TokenValidator checks a bearer token.
type TokenValidator interface {
	Configured() bool
	Validate(token string) error
}

// HumaAuth returns a Huma middleware enforcing bearer auth on operations that
// list SecurityScheme in their security requirements.
//
// Order of checks: no secret configured (500), missing header (401), wrong
// scheme or token (401 "Invalid token").
func HumaAuth(api huma.API, validator TokenValidator) func(ctx huma.Context, next func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		op := ctx.Operation()
		if op == nil || !operationRequiresAuth(op) {
			next(ctx)
			return
		}

		if !validator.Configured() {
			slog.Error("bearer auth requested but no token configured", "path", op.Path)
			huma.WriteErr(api, ctx, http.StatusInternalServerError, service.ErrAuthNotConfigured.Error())
			return
		}

		authHeader := ctx.Header("Authorization")
		if authHeader == "" {
			ctx.SetHeader("WWW-Authenticate", "Bearer")
			huma.WriteErr(api, ctx, http.StatusUnauthorized, "missing authorization header")
			return
		}

		token, ok := parseBearer(authHeader)
		if !ok {
			writeInvalidToken(api, ctx)
			return
		}

		if err := validator.Validate(token); err != nil {
			if errors.Is(err, service.ErrAuthNotConfigured) {
				huma.WriteErr(api, ctx, http.StatusInternalServerError, err.Error())
				return
			}
			slog.Debug("auth validation failed", "path", op.Path, "error", err)
			writeInvalidToken(api, ctx)
			return
		}

		next(ctx)
	}
}

func writeInvalidToken(api huma.API, ctx huma.Context) {
	ctx.SetHeader("WWW-Authenticate", `Bearer error="invalid_token"`)
	huma.WriteErr(api, ctx, http.StatusUnauthorized, "Invalid token")
}

// parseBearer splits "Bearer <token>", matching the scheme case-insensitively.
func parseBearer(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// operationRequiresAuth checks if the operation has bearerAuth in its security requirements.
func operationRequiresAuth(op *huma.Operation) bool {
	for _, secReq := range op.Security {
		if _, ok := secReq[SecurityScheme]; ok {
			return true
		}
	}
	return false
}
