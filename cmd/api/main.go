package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"seocrawler/internal/api"
	"seocrawler/internal/config"
	"seocrawler/internal/log"
	"seocrawler/internal/messagebus"
	"seocrawler/internal/metrics"
	"seocrawler/internal/repository"
	"seocrawler/internal/tracing"

	"github.com/nats-io/nats.go"
)

// Config holds all configuration for the API service
type Config struct {
	Service  config.ServiceConfig
	HTTP     config.HTTPServerConfig
	Metrics  config.MetricsConfig
	Tracing  config.TracingConfig
	DynamoDB config.DynamoDBConfig
	NATS     config.NATSConfig
	Crawl    config.CrawlConfig
}

// Load loads the configuration for the API service
func Load() *Config {
	return &Config{
		Service:  config.NewServiceConfig("api"),
		HTTP:     config.NewHTTPServerConfig(":8080"),
		Metrics:  config.NewMetricsConfig("9090"),
		Tracing:  config.NewTracingConfig("api"),
		DynamoDB: config.NewDynamoDBConfig(),
		NATS:     config.NewNATSConfig(),
		Crawl:    config.NewCrawlConfig(),
	}
}

func main() {
	ctx := context.Background()
	cfg := Load()

	// Setup logging
	logger := log.SetupFromEnv(cfg.Service.Name)
	logger.Info("Starting API service", slog.String("version", cfg.Service.Version))

	// Setup tracing
	otelShutdown, err := tracing.SetupOTelSDK(ctx, cfg.Tracing)
	if err != nil {
		logger.Error("Failed to setup tracing", slog.Any("error", err))
		os.Exit(1)
	}
	defer otelShutdown(ctx)

	// Initialize dependencies
	deps, cleanup, err := initializeDependencies(cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize dependencies", slog.Any("error", err))
		os.Exit(1)
	}
	defer cleanup()

	// Create API service
	apiService := api.NewAPI(
		deps.JobRepo,
		deps.PageRepo,
		deps.ReportRepo,
		deps.MessageBus,
		deps.Metrics,
		cfg.Crawl,
		logger,
	)

	// Start server in goroutine
	go func() {
		if err := apiService.Start(ctx, cfg.HTTP); err != nil && err != http.ErrServerClosed {
			logger.Error("Failed to start server", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh

	logger.Info("Shutting down API service", slog.String("signal", sig.String()))

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := apiService.Shutdown(shutdownCtx); err != nil {
		logger.Error("Failed to shutdown server gracefully", slog.Any("error", err))
	}

	logger.Info("API service stopped")
}

type dependencies struct {
	JobRepo    *repository.JobRepository
	PageRepo   *repository.PageRepository
	ReportRepo *repository.ReportRepository
	MessageBus *messagebus.MessageBus
	Metrics    *metrics.APIMetrics
	NC         *nats.Conn
}

func initializeDependencies(cfg *Config, logger *slog.Logger) (*dependencies, func(), error) {
	// Initialize metrics
	m := metrics.NewAPIMetrics()
	m.MustRegisterAPI()
	m.SetServiceInfo(cfg.Service.Version, runtime.Version())

	// Start metrics server
	metricsServer := m.StartMetricsServer(cfg.Metrics.Port)

	// Initialize DynamoDB client
	dynamodb, err := repository.NewDynamoDBClient(cfg.DynamoDB)
	if err != nil {
		return nil, nil, err
	}

	// Seed tables
	if err := repository.SeedTables(dynamodb, m); err != nil {
		return nil, nil, err
	}

	// Create repositories
	jobRepo, err := repository.NewJobRepository(cfg.DynamoDB, m)
	if err != nil {
		return nil, nil, err
	}

	pageRepo, err := repository.NewPageRepository(cfg.DynamoDB, m)
	if err != nil {
		return nil, nil, err
	}

	reportRepo, err := repository.NewReportRepository(cfg.DynamoDB, m)
	if err != nil {
		return nil, nil, err
	}

	// Connect to NATS
	nc, err := nats.Connect(cfg.NATS.URL)
	if err != nil {
		return nil, nil, err
	}

	// Create message bus
	mb := messagebus.New(nc, m)

	deps := &dependencies{
		JobRepo:    jobRepo,
		PageRepo:   pageRepo,
		ReportRepo: reportRepo,
		MessageBus: mb,
		Metrics:    m,
		NC:         nc,
	}

	cleanup := func() {
		logger.Info("Cleaning up dependencies")

		// Shutdown metrics server
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("Failed to shutdown metrics server", slog.Any("error", err))
		}

		// Close NATS connection
		nc.Close()
	}

	return deps, cleanup, nil
}
