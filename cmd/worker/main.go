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

	"seocrawler/internal/config"
	"seocrawler/internal/log"
	"seocrawler/internal/messagebus"
	"seocrawler/internal/metrics"
	"seocrawler/internal/repository"
	"seocrawler/internal/tracing"
	"seocrawler/internal/worker"

	"github.com/nats-io/nats.go"
)

// Config holds all configuration for the worker service
type Config struct {
	Service  config.ServiceConfig
	Metrics  config.MetricsConfig
	Tracing  config.TracingConfig
	DynamoDB config.DynamoDBConfig
	NATS     config.NATSConfig
	Crawl    config.CrawlConfig
	Worker   config.WorkerConfig
}

// Load loads the configuration for the worker service
func Load() *Config {
	return &Config{
		Service:  config.NewServiceConfig("worker"),
		Metrics:  config.NewMetricsConfig("9091"),
		Tracing:  config.NewTracingConfig("worker"),
		DynamoDB: config.NewDynamoDBConfig(),
		NATS:     config.NewNATSConfig(),
		Crawl:    config.NewCrawlConfig(),
		Worker:   config.NewWorkerConfig(),
	}
}

func main() {
	cfg := Load()
	logger := log.SetupFromEnv(cfg.Service.Name)

	logger.Info("Starting worker service", slog.String("version", cfg.Service.Version))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdown, err := tracing.SetupOTelSDK(ctx, cfg.Tracing)
	if err != nil {
		logger.Error("Failed to setup tracing", slog.Any("error", err))
		os.Exit(1)
	}
	defer shutdown(context.Background())

	jobRepo, pageRepo, reportRepo, bus, client, m, cleanup, err := initializeDependencies(cfg)
	if err != nil {
		logger.Error("Failed to initialize dependencies", slog.Any("error", err))
		os.Exit(1)
	}
	defer cleanup()

	wrkr := worker.NewWorker(
		jobRepo,
		pageRepo,
		reportRepo,
		bus,
		cfg.Crawl,
		cfg.Worker,
		worker.WithHTTPClient(client),
		worker.WithMetrics(m),
		worker.WithLogger(logger),
	)

	sub, err := bus.SubscribeToCrawlMessage(wrkr.ProcessCrawlMessage)
	if err != nil {
		logger.Error("Failed to subscribe to crawl message", slog.Any("error", err))
		os.Exit(1)
	}
	defer sub.Unsubscribe()

	// Return jobs abandoned by crashed workers to the queue
	wrkr.StartReaper(ctx)

	logger.Info("Worker service is running")

	<-ctx.Done()
	logger.Info("Shutting down worker service")
}

// initializeDependencies initializes individual dependencies
func initializeDependencies(cfg *Config) (
	*repository.JobRepository,
	*repository.PageRepository,
	*repository.ReportRepository,
	*messagebus.MessageBus,
	*http.Client,
	metrics.WorkerMetricsInterface,
	func(),
	error,
) {
	// Initialize metrics
	m := metrics.NewWorkerMetrics()
	m.MustRegisterWorker()
	m.SetServiceInfo(cfg.Service.Version, runtime.Version())

	// Start metrics server
	srv := m.StartMetricsServer(cfg.Metrics.Port)

	// Initialize database
	ddc, err := repository.NewDynamoDBClient(cfg.DynamoDB)
	if err != nil {
		return nil, nil, nil, nil, nil, nil, nil, err
	}
	if err := repository.SeedTables(ddc, m); err != nil {
		return nil, nil, nil, nil, nil, nil, nil, err
	}

	jobs, err := repository.NewJobRepository(cfg.DynamoDB, m)
	if err != nil {
		return nil, nil, nil, nil, nil, nil, nil, err
	}

	pages, err := repository.NewPageRepository(cfg.DynamoDB, m)
	if err != nil {
		return nil, nil, nil, nil, nil, nil, nil, err
	}

	reports, err := repository.NewReportRepository(cfg.DynamoDB, m)
	if err != nil {
		return nil, nil, nil, nil, nil, nil, nil, err
	}

	// Initialize HTTP client with tracing
	tr := http.DefaultTransport
	tr = tracing.HTTPClientMiddleware()(tr)

	client := &http.Client{
		Timeout:   cfg.Crawl.RequestTimeout,
		Transport: tr,
	}

	// Initialize NATS connection
	nc, err := nats.Connect(cfg.NATS.URL)
	if err != nil {
		return nil, nil, nil, nil, nil, nil, nil, err
	}

	bus := messagebus.New(nc, m)

	cleanup := func() {
		nc.Close()
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if srv != nil {
			srv.Shutdown(ctx)
		}
	}

	return jobs, pages, reports, bus, client, m, cleanup, nil
}
