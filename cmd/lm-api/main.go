// Package main is the entry point for the lm-api server.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/tint-us/lm-api/internal/config"
	"github.com/tint-us/lm-api/internal/constants"
	"github.com/tint-us/lm-api/internal/http/handlers"
	"github.com/tint-us/lm-api/internal/http/mw"
	"github.com/tint-us/lm-api/internal/http/routes"
	"github.com/tint-us/lm-api/internal/logging"
	"github.com/tint-us/lm-api/internal/service"
	"github.com/tint-us/lm-api/internal/shutdown"
	"github.com/tint-us/lm-api/internal/version"
)

func main() {
	logger := logging.SetDefault()

	v := version.Get()
	logger.Info("starting "+constants.ServiceName,
		"version", v.Version,
		"commit", v.Commit,
		"built", v.Date,
		"go_version", v.GoVersion,
	)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	if !cfg.AuthConfigured() {
		logger.Warn("APP_TOKEN not set - /harga will answer 500 until it is configured")
	}

	services := service.NewServices(cfg, logger)

	// Worst case for an uncached /harga: every attempt times out and every backoff is slept.
	hargaTimeout := cfg.PipelineBudget() + constants.RequestTimeoutSlack
	logger.Info("scraper configured",
		"source_url", cfg.SourceURL,
		"http_timeout", cfg.HTTPTimeout,
		"http_retries", cfg.HTTPRetries,
		"cache_ttl", cfg.CacheTTL,
		"request_timeout", hargaTimeout,
	)

	idleMonitor := shutdown.NewIdleMonitor(shutdown.IdleMonitorConfig{
		Timeout:      cfg.IdleTimeout,
		Logger:       logger,
		ExcludePaths: []string{"/health"},
		Busy:         services.Price.Busy,
	})
	idleMonitor.Start()

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(idleMonitor.Middleware)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(mw.APIVersion())
	router.Use(mw.Cache(mw.DefaultCacheConfig()))
	router.Use(mw.Timeout(mw.TimeoutConfig{
		Default:          constants.DefaultRequestTimeout,
		Extended:         hargaTimeout,
		ExtendedPatterns: []string{"/harga"},
		SkipPatterns:     []string{"/healthz"},
	}))

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID", "X-API-Version", "X-RateLimit-Limit", "X-RateLimit-Remaining", "Retry-After"},
		MaxAge:         300,
	}))

	// GET-only API, nothing legitimate sends a body.
	router.Use(middleware.RequestSize(64 * 1024))
	if cfg.RateLimitPerMinute > 0 {
		router.Use(mw.RateLimitByIP(cfg.RateLimitPerMinute, "/healthz"))
		router.Use(middleware.Throttle(constants.ThrottleLimit))
		logger.Info("inbound rate limiting enabled", "per_minute", cfg.RateLimitPerMinute, "max_concurrent", constants.ThrottleLimit)
	}

	api := humachi.New(router, routes.NewHumaConfig(cfg.BaseURL))
	api.UseMiddleware(mw.HumaAuth(api, services.Auth))

	routes.Register(api, routes.NewHandlers(
		handlers.NewHealthHandler(services.Price),
		handlers.NewHargaHandler(services.Price, logger),
	))

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: max(60*time.Second, hargaTimeout+constants.RequestTimeoutSlack),
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

		select {
		case sig := <-sigChan:
			logger.Info("shutting down server", "signal", sig.String())
		case <-idleMonitor.ShutdownChan():
			logger.Info("shutting down server", "reason", "idle")
		}
		idleMonitor.Stop()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("server shutdown error", "error", err)
		}
	}()

	logger.Info("starting server", "port", cfg.Port, "base_url", cfg.BaseURL, "auth_configured", cfg.AuthConfigured())
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}
