package runtime

import (
	"context"
	"fmt"
	"net"
	"net/http"

	inboundhttp "github.com/architeacher/device-registry/internal/adapters/inbound/http"
	"github.com/architeacher/device-registry/internal/adapters/repos"
	"github.com/architeacher/device-registry/internal/config"
	"github.com/architeacher/device-registry/internal/domain/model"
	"github.com/architeacher/device-registry/internal/infrastructure"
	"github.com/architeacher/device-registry/internal/infrastructure/postgres"
	"github.com/architeacher/device-registry/internal/services"
	"github.com/architeacher/device-registry/internal/usecases"
	"github.com/architeacher/device-registry/internal/usecases/queries"
	"github.com/architeacher/device-registry/pkg/circuitbreaker"
	"github.com/architeacher/device-registry/pkg/decorator"
	"github.com/architeacher/device-registry/pkg/logger"
	"github.com/architeacher/device-registry/pkg/metrics/noop"
)

func defaultOptions(ctx context.Context) []DependencyOption {
	return []DependencyOption{
		WithConfig(),
		WithLogger(),
		WithMetrics(),
		WithTracing(),
		WithDatabase(ctx),
		WithCache(),
		WithDevicesRepository(),
		WithDevicesService(),
		WithApplication(),
		WithHTTPServer(),
	}
}

func WithConfig() DependencyOption {
	return func(d *dependencies) error {
		cfg, err := config.Init()
		if err != nil {
			return fmt.Errorf("initializing configuration: %w", err)
		}

		d.config = cfg

		return nil
	}
}

func WithLogger() DependencyOption {
	return func(d *dependencies) error {
		d.infra.logger = logger.New(d.config.Logging.Level, d.config.Logging.Format)

		return nil
	}
}

func WithMetrics() DependencyOption {
	return func(d *dependencies) error {
		d.infra.metricsClient = noop.NewMetricsClient()

		return nil
	}
}

func WithTracing() DependencyOption {
	return func(d *dependencies) error {
		if !d.config.Telemetry.Traces.Enabled || d.config.Telemetry.OTLPEndpoint == "" {
			d.infra.tracerProvider = infrastructure.NewNoopTracerProvider()

			return nil
		}

		tp, shutdown, err := infrastructure.NewTracerProvider(
			d.config.Telemetry.ServiceName,
			d.config.Telemetry.ServiceVersion,
			d.config.Telemetry.OTLPEndpoint,
		)
		if err != nil {
			return fmt.Errorf("initializing tracer: %w", err)
		}

		d.infra.tracerProvider = tp
		d.cleanupFuncs["tracer"] = shutdown

		return nil
	}
}

func WithDatabase(ctx context.Context) DependencyOption {
	return func(d *dependencies) error {
		pool, err := postgres.NewPool(ctx, d.config.Database)
		if err != nil {
			return fmt.Errorf("connecting to postgres: %w", err)
		}

		d.infra.dbPool = pool
		d.cleanupFuncs["postgres"] = func(context.Context) error {
			pool.Close()

			return nil
		}

		return nil
	}
}

func WithCache() DependencyOption {
	return func(d *dependencies) error {
		if !d.config.Cache.Enabled {
			return nil
		}

		client := infrastructure.NewCacheClient(d.config.Cache, d.infra.logger)
		d.infra.cacheClient = client
		d.cleanupFuncs["cache"] = func(context.Context) error {
			return client.Close()
		}

		breaker := circuitbreaker.New[[]byte](circuitbreaker.Config{
			Name:             "devices-cache",
			Enabled:          d.config.Cache.Breaker.Enabled,
			MaxRequests:      d.config.Cache.Breaker.MaxRequests,
			Interval:         d.config.Cache.Breaker.Interval,
			Timeout:          d.config.Cache.Breaker.Timeout,
			FailureThreshold: d.config.Cache.Breaker.FailureThreshold,
		})

		d.repos.devicesCache = repos.NewDevicesCacheRepository(client, breaker, d.infra.logger)

		if d.config.Idempotency.Enabled {
			d.repos.idempotencyCache = repos.NewIdempotencyRepository(client)
		}

		return nil
	}
}

func WithDevicesRepository() DependencyOption {
	return func(d *dependencies) error {
		d.repos.devicesRepo = repos.NewDevicesRepository(d.infra.dbPool, repos.NewPgxScanner(), d.infra.logger)

		return nil
	}
}

func WithDevicesService() DependencyOption {
	return func(d *dependencies) error {
		d.services.devices = services.NewDevicesService(d.repos.devicesRepo, d.repos.devicesCache, d.infra.logger)

		return nil
	}
}

func WithApplication() DependencyOption {
	return func(d *dependencies) error {
		var deviceCache decorator.Cache[queries.GetDeviceQuery, *model.Device]
		if d.repos.devicesCache != nil {
			deviceCache = repos.NewGetDeviceCacheAdapter(d.repos.devicesCache)
		}

		d.apps.app = usecases.NewApplication(
			d.services.devices,
			d.infra.dbPool,
			deviceCache,
			decorator.CacheConfig{
				Enabled: d.config.Cache.Enabled,
				TTL:     d.config.Cache.DeviceTTL,
			},
			d.infra.logger,
			d.infra.metricsClient,
			d.infra.tracerProvider,
		)

		return nil
	}
}

func WithHTTPServer() DependencyOption {
	return func(d *dependencies) error {
		router := inboundhttp.NewRouter(inboundhttp.RouterConfig{
			App:              d.apps.app,
			Logger:           d.infra.logger,
			Config:           d.config,
			IdempotencyCache: d.repos.idempotencyCache,
		})

		d.infra.httpServer = &http.Server{
			Addr:         net.JoinHostPort(d.config.HTTPServer.Host, fmt.Sprintf("%d", d.config.HTTPServer.Port)),
			Handler:      router,
			ReadTimeout:  d.config.HTTPServer.ReadTimeout,
			WriteTimeout: d.config.HTTPServer.WriteTimeout,
			IdleTimeout:  d.config.HTTPServer.IdleTimeout,
		}
		d.cleanupFuncs["http_server"] = d.infra.httpServer.Shutdown

		return nil
	}
}
