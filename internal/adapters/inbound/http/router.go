package http

import (
	"net/http"

	"github.com/architeacher/device-registry/internal/adapters/inbound/http/handlers"
	"github.com/architeacher/device-registry/internal/adapters/inbound/http/middleware"
	"github.com/architeacher/device-registry/internal/config"
	"github.com/architeacher/device-registry/internal/ports"
	"github.com/architeacher/device-registry/internal/usecases"
	"github.com/architeacher/device-registry/pkg/logger"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/throttled/throttled/v2/store/memstore"
)

const baseURL = "/v1"

type RouterConfig struct {
	App              *usecases.Application
	Logger           logger.Logger
	Config           *config.ServiceConfig
	IdempotencyCache ports.IdempotencyCache
}

func NewRouter(cfg RouterConfig) http.Handler {
	router := chi.NewRouter()

	// Core middlewares - always applied
	router.Use(middleware.RequestID())
	router.Use(chimiddleware.RealIP)
	router.Use(middleware.Recovery(cfg.Logger))
	router.Use(chimiddleware.Timeout(cfg.Config.HTTPServer.WriteTimeout))

	if cfg.Config.RateLimit.Enabled {
		store, err := memstore.NewCtx(int(cfg.Config.RateLimit.MaxKeys))
		if err != nil {
			cfg.Logger.Fatal().Err(err).Msg("failed to create rate limit store")
		}

		router.Use(middleware.RateLimiting(cfg.Config.RateLimit, store, cfg.Logger))
		cfg.Logger.Info().
			Uint("requests_per_second", cfg.Config.RateLimit.RequestsPerSecond).
			Msg("rate limiting enabled")
	}

	if cfg.Config.Idempotency.Enabled && cfg.IdempotencyCache != nil {
		router.Use(middleware.Idempotency(cfg.IdempotencyCache, cfg.Config.Idempotency, cfg.Logger))
		cfg.Logger.Info().
			Str("header", cfg.Config.Idempotency.HeaderName).
			Msg("idempotency replay enabled")
	}

	if cfg.Config.Logging.AccessLog.Enabled {
		router.Use(middleware.AccessLogger(cfg.Logger, cfg.Config.Logging.AccessLog.IncludeQueryParams))
		cfg.Logger.Info().Msg("structured access logging enabled")
	}

	handler := handlers.NewDeviceHandler(cfg.App)

	router.Route(baseURL+"/devices", func(r chi.Router) {
		r.Post("/", handler.CreateDevice)
		r.Get("/", handler.ListDevices)

		r.Route("/{deviceID}", func(r chi.Router) {
			r.Get("/", handler.GetDevice)
			r.Put("/", handler.UpdateDevice)
			r.Patch("/", handler.PatchDevice)
			r.Delete("/", handler.DeleteDevice)
		})
	})

	router.Get("/health", handler.HealthCheck)
	router.Get("/health/live", handler.LivenessCheck)
	router.Get("/health/ready", handler.ReadinessCheck)

	return router
}
