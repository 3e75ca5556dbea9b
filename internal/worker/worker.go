// Package worker runs crawl jobs end to end: it claims a pending job, drives
// the crawler, scores each fetched page, checkpoints progress, and moves the
// job to its terminal state.
package worker

import (
	"context"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"seocrawler/internal/config"
	"seocrawler/internal/messagebus"
	"seocrawler/internal/metrics"
	"seocrawler/internal/repository"
	"seocrawler/internal/seo"
)

// Worker processes crawl jobs with all dependencies consolidated
type Worker struct {
	jobRepo    repository.JobRepositoryInterface
	pageRepo   repository.PageRepositoryInterface
	reportRepo repository.ReportRepositoryInterface
	publisher  messagebus.MessageBusInterface
	analyzer   *seo.Analyzer
	client     *http.Client
	metrics    metrics.WorkerMetricsInterface
	log        *slog.Logger
	crawlCfg   config.CrawlConfig
	workerCfg  config.WorkerConfig

	activeCrawls atomic.Int64
}

// Option configures the Worker
type Option func(*Worker)

// WithHTTPClient sets a custom HTTP client for page and robots fetches
func WithHTTPClient(client *http.Client) Option {
	return func(w *Worker) {
		w.client = client
	}
}

// WithMetrics sets the metrics collector
func WithMetrics(metrics metrics.WorkerMetricsInterface) Option {
	return func(w *Worker) {
		w.metrics = metrics
	}
}

// WithLogger sets the logger
func WithLogger(log *slog.Logger) Option {
	return func(w *Worker) {
		w.log = log
	}
}

// WithThresholds overrides the default SEO rule thresholds
func WithThresholds(thresholds seo.Thresholds) Option {
	return func(w *Worker) {
		w.analyzer = seo.NewAnalyzer(thresholds)
	}
}

// NewWorker creates a new worker with required dependencies and optional configurations
func NewWorker(
	jobRepo repository.JobRepositoryInterface,
	pageRepo repository.PageRepositoryInterface,
	reportRepo repository.ReportRepositoryInterface,
	publisher messagebus.MessageBusInterface,
	crawlCfg config.CrawlConfig,
	workerCfg config.WorkerConfig,
	opts ...Option,
) *Worker {
	w := &Worker{
		jobRepo:    jobRepo,
		pageRepo:   pageRepo,
		reportRepo: reportRepo,
		publisher:  publisher,
		analyzer:   seo.NewAnalyzer(seo.DefaultThresholds()),
		client:     &http.Client{Timeout: crawlCfg.RequestTimeout},
		metrics:    metrics.NewNoopWorkerMetrics(),
		log:        slog.Default(),
		crawlCfg:   crawlCfg,
		workerCfg:  workerCfg,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// StartReaper periodically releases running jobs whose heartbeat has gone
// stale, so work abandoned by a crashed worker re-enters the queue. Runs until
// the context is cancelled.
func (w *Worker) StartReaper(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(w.workerCfg.ReapInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				reaped, err := w.jobRepo.ReapStaleJobs(ctx, w.workerCfg.StaleJobTimeout, w.workerCfg.MaxAttempts)
				if err != nil {
					w.log.Error("Stale job reap failed", slog.Any("error", err))
					continue
				}
				if reaped > 0 {
					w.log.Info("Reaped stale jobs", slog.Int("count", reaped))
				}
			}
		}
	}()
}

func (w *Worker) crawlStarted() {
	w.metrics.SetActiveCrawls(int(w.activeCrawls.Add(1)))
}

func (w *Worker) crawlFinished() {
	w.metrics.SetActiveCrawls(int(w.activeCrawls.Add(-1)))
}
