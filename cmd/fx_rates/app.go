package main

import (
	"context"
	"fmt"
	"log/slog"

	rediscache "github.com/SscSPs/fx_rates_service/internal/adapters/cache"
	"github.com/SscSPs/fx_rates_service/internal/adapters/events"
	"github.com/SscSPs/fx_rates_service/internal/adapters/providers"
	portscache "github.com/SscSPs/fx_rates_service/internal/core/ports/cache"
	portsevents "github.com/SscSPs/fx_rates_service/internal/core/ports/events"
	portssvc "github.com/SscSPs/fx_rates_service/internal/core/ports/services"
	"github.com/SscSPs/fx_rates_service/internal/core/services"
	"github.com/SscSPs/fx_rates_service/internal/middleware"
	"github.com/SscSPs/fx_rates_service/internal/platform/config"
	"github.com/SscSPs/fx_rates_service/internal/platform/metrics"
	"github.com/SscSPs/fx_rates_service/internal/repositories/database/pgsql"
	"github.com/SscSPs/fx_rates_service/pkg/database"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
)

// application holds the process-wide dependencies shared by every command.
// limiterStore stays nil without redis and the router then counts in memory.
type application struct {
	cfg          *config.Config
	logger       *slog.Logger
	pool         *pgxpool.Pool
	registry     *prometheus.Registry
	metrics      *metrics.Metrics
	publisher    *events.KafkaRefreshPublisher
	redis        *redis.Client
	limiterStore limiter.Store
	services     *portssvc.ServiceContainer
}

func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database pool: %w", err)
	}
	logger.Info("Database connection pool established.")

	rateProviders, err := providers.NewProvidersFromConfig(cfg.Providers, providers.DefaultHTTPClient, logger)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("invalid provider configuration: %w", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.NewMetrics(registry)

	app := &application{
		cfg:      cfg,
		logger:   logger,
		pool:     pool,
		registry: registry,
		metrics:  m,
	}

	var rateCache portscache.RateCache
	if cfg.Redis.URL != "" {
		client, err := database.NewRedisClient(ctx, cfg.Redis.URL)
		if err != nil {
			app.Close()
			return nil, err
		}
		app.redis = client
		rateCache = rediscache.NewRedisRateCache(client, cfg.Redis.RateCacheTTL)
		if app.limiterStore, err = middleware.NewRedisStore(client); err != nil {
			app.Close()
			return nil, err
		}
		logger.Info("Redis rate cache enabled", slog.Duration("ttl", cfg.Redis.RateCacheTTL))
	}

	var publisher portsevents.RefreshEventPublisher
	if len(cfg.Kafka.Brokers) > 0 {
		app.publisher = events.NewKafkaRefreshPublisher(cfg.Kafka.Brokers, cfg.Kafka.RefreshTopic)
		publisher = app.publisher
		logger.Info("Refresh events enabled",
			slog.Any("brokers", cfg.Kafka.Brokers),
			slog.String("topic", cfg.Kafka.RefreshTopic))
	}

	app.services = services.NewServiceContainer(cfg, pgsql.NewRepositoryProvider(pool), services.ContainerDeps{
		Providers: rateProviders,
		Metrics:   m,
		Publisher: publisher,
		RateCache: rateCache,
		Logger:    logger,
	})
	return app, nil
}

// Close releases the event writer, redis and the database pool.
func (a *application) Close() {
	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			a.logger.Error("Failed to close event publisher", slog.String("error", err.Error()))
		}
	}
	database.CloseRedisClient(a.redis)
	database.ClosePgxPool(a.pool)
}
