package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/tair/stockledger/config"
	_ "github.com/tair/stockledger/docs"
	"github.com/tair/stockledger/internal/inventory"
	httpDelivery "github.com/tair/stockledger/internal/inventory/delivery/http"
	"github.com/tair/stockledger/internal/inventory/domain"
	"github.com/tair/stockledger/internal/inventory/repository"
	"github.com/tair/stockledger/internal/inventory/workspace"
	"github.com/tair/stockledger/kafka"
	"github.com/tair/stockledger/pkg/database"
	"github.com/tair/stockledger/pkg/logger"
	"github.com/tair/stockledger/pkg/tracing"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Init("stockledger", true)
		logger.Logger.Fatal().Err(err).Msg("Invalid configuration")
	}

	// Initialize logger
	logger.Init(cfg.ServiceName, cfg.IsDevelopment())
	logger.SetLevel(cfg.LogLevel)

	logger.Logger.Info().
		Str("service", cfg.ServiceName).
		Str("environment", cfg.Environment).
		Str("log_level", cfg.LogLevel).
		Str("store", cfg.StoreDriver).
		Msg("Starting inventory service")

	tp, err := tracing.InitTracer(cfg.Tracing)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize tracer")
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracing.Shutdown(ctx, tp); err != nil {
			logger.Logger.Error().Err(err).Msg("Failed to shut down tracer")
		}
	}()

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()
	}

	repo, health, closeStore := openStore(cfg, redisClient)
	defer closeStore()

	// Every instance gets its own origin so it can ignore its own broadcasts
	origin := cfg.ServiceName + "-" + uuid.NewString()[:8]
	var notifier workspace.Notifier
	if len(cfg.Kafka.Brokers) > 0 {
		publisher, err := kafka.NewPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic, origin)
		if err != nil {
			logger.Logger.Fatal().Err(err).Msg("Failed to create Kafka publisher")
		}
		defer publisher.Close()
		notifier = publisher
	}

	// Initialize service with Wire DI
	svc, err := inventory.InitializeService(repo, notifier, cfg.FieldLabels)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize service")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := svc.Workspace.Reload(ctx); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to load inventory")
	}

	if len(cfg.Kafka.Brokers) > 0 {
		consumer, err := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID+"-"+origin, []string{cfg.Kafka.Topic}, origin)
		if err != nil {
			logger.Logger.Fatal().Err(err).Msg("Failed to create Kafka consumer")
		}
		defer consumer.Close()
		consumer.RegisterHandler(kafka.EventTypeDataUpdated, func(ctx context.Context, event kafka.DataUpdatedEvent) error {
			logger.Info(ctx).
				Str("origin", event.Origin).
				Str("change", event.Change).
				Msg("Peer updated inventory, reloading")
			return svc.Workspace.Reload(ctx)
		})
		if err := consumer.Start(ctx); err != nil {
			logger.Logger.Fatal().Err(err).Msg("Failed to start Kafka consumer")
		}
	}

	server := newHTTPServer(cfg, svc.Handler, health, redisClient)
	go func() {
		logger.Logger.Info().
			Str("port", cfg.HTTPPort).
			Str("metrics_endpoint", "/metrics").
			Str("swagger_endpoint", "/swagger/").
			Msg("HTTP server started")

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Logger.Fatal().Err(err).Msg("Failed to start HTTP server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info().Msg("Shutting down server...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Logger.Error().Err(err).Msg("Server forced to shut down")
	}
}

// openStore builds the configured store wrapped with tracing, plus its health probe
func openStore(cfg *config.Config, redisClient *redis.Client) (domain.InventoryRepository, httpDelivery.HealthCheck, func()) {
	switch cfg.StoreDriver {
	case config.StorePostgres:
		sqlDB, err := database.NewPostgresConnection(cfg.Database)
		if err != nil {
			logger.Logger.Fatal().Err(err).Msg("Failed to connect to database")
		}
		db, err := database.NewGormConnection(sqlDB)
		if err != nil {
			logger.Logger.Fatal().Err(err).Msg("Failed to open gorm session")
		}
		gormRepo := repository.NewGormInventoryRepository(db)
		if err := gormRepo.AutoMigrate(); err != nil {
			logger.Logger.Fatal().Err(err).Msg("Failed to run migrations")
		}
		logger.Logger.Info().Msg("Database initialized successfully")
		return repository.NewInventoryRepositoryWithTracing(gormRepo, config.StorePostgres),
			sqlDB.PingContext,
			func() { sqlDB.Close() }

	case config.StoreRedis:
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			logger.Logger.Fatal().Err(err).Msg("Failed to connect to redis")
		}
		return repository.NewInventoryRepositoryWithTracing(repository.NewRedisInventoryRepository(redisClient, ""), config.StoreRedis),
			func(ctx context.Context) error { return redisClient.Ping(ctx).Err() },
			func() {}

	default:
		logger.Logger.Info().Str("path", cfg.DataFile).Msg("Using file store")
		return repository.NewInventoryRepositoryWithTracing(repository.NewFileInventoryRepository(cfg.DataFile), config.StoreFile),
			nil,
			func() {}
	}
}

func newHTTPServer(cfg *config.Config, handler *httpDelivery.InventoryHandler, health httpDelivery.HealthCheck, redisClient *redis.Client) *http.Server {
	router := mux.NewRouter()

	mwConfig := httpDelivery.DefaultMiddlewareConfig()
	mwConfig.EnableTracing = cfg.Tracing.Enabled
	mwConfig.TimeoutDuration = cfg.RequestTimeout
	httpDelivery.RegisterMiddlewares(router, mwConfig)

	if redisClient != nil && cfg.UploadRateLimit > 0 {
		limiter := httpDelivery.NewRedisRateLimiter(redisClient, cfg.UploadRateLimit, time.Minute)
		handler.UseUploadLimiter(httpDelivery.RateLimitMiddleware(limiter))
	}

	handler.RegisterRoutes(router)
	handler.RegisterHealthCheck(router, health)

	// Prometheus metrics endpoint
	router.Handle("/metrics", promhttp.Handler())

	httpDelivery.RegisterSwaggerDocs(router, httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	return &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           httpDelivery.SetupCORS(mwConfig)(router),
		ReadHeaderTimeout: 10 * time.Second,
	}
}
