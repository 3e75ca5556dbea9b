// Package api exposes the HTTP surface for creating, tracking, cancelling,
// and reading out crawl jobs.
package api

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"time"

	"seocrawler/internal/config"
	"seocrawler/internal/messagebus"
	"seocrawler/internal/metrics"
	"seocrawler/internal/middleware"
	"seocrawler/internal/models"
	"seocrawler/internal/repository"
	"seocrawler/internal/tracing"

	"github.com/yousuf64/shift"
)

// API handles the HTTP server and routes
type API struct {
	jobRepo    repository.JobRepositoryInterface
	pageRepo   repository.PageRepositoryInterface
	reportRepo repository.ReportRepositoryInterface
	mb         messagebus.MessageBusInterface
	metrics    *metrics.APIMetrics
	crawlCfg   config.CrawlConfig
	log        *slog.Logger
	srv        *http.Server
}

// CrawlRequest is the request body for creating a crawl
type CrawlRequest struct {
	Domain   string `json:"domain"`
	MaxPages int    `json:"max_pages"`
}

// CrawlResponse is the response body for a created crawl
type CrawlResponse struct {
	Job models.CrawlJob `json:"job"`
}

// ProgressResponse is the progress read model polled while a crawl runs
type ProgressResponse struct {
	ID           string           `json:"id"`
	Status       models.JobStatus `json:"status"`
	PagesCrawled int              `json:"pages_crawled"`
	PagesTotal   *int             `json:"pages_total"`
	ErrorMessage string           `json:"error_message,omitempty"`
}

// NewAPI creates a new API with all dependencies
func NewAPI(
	jobRepo repository.JobRepositoryInterface,
	pageRepo repository.PageRepositoryInterface,
	reportRepo repository.ReportRepositoryInterface,
	mb messagebus.MessageBusInterface,
	apiMetrics *metrics.APIMetrics,
	crawlCfg config.CrawlConfig,
	log *slog.Logger,
) *API {
	return &API{
		jobRepo:    jobRepo,
		pageRepo:   pageRepo,
		reportRepo: reportRepo,
		mb:         mb,
		metrics:    apiMetrics,
		crawlCfg:   crawlCfg,
		log:        log,
	}
}

// Start starts the HTTP server
func (a *API) Start(ctx context.Context, cfg config.HTTPServerConfig) error {
	router := shift.New()
	router.Use(tracing.OtelMiddleware)
	router.Use(middleware.CORSMiddleware)
	if a.metrics != nil {
		router.Use(a.metrics.HTTPMiddleware)
	}
	router.Use(middleware.ErrorMiddleware(a.log))

	// Register routes
	router.OPTIONS("/*wildcard", middleware.OptionsHandler)
	router.POST("/crawls", a.handleCreateCrawl)
	router.GET("/crawls", a.handleGetCrawls)
	router.GET("/crawls/:job_id", a.handleGetCrawl)
	router.POST("/crawls/:job_id/cancel", a.handleCancelCrawl)
	router.GET("/crawls/:job_id/report", a.handleGetReport)

	addr := cfg.Addr
	if addr == "" {
		addr = ":8080"
	}

	a.srv = &http.Server{
		Addr:         addr,
		Handler:      router.Serve(),
		BaseContext:  func(_ net.Listener) context.Context { return ctx },
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	a.log.Info("API server starting", slog.String("addr", addr))
	return a.srv.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (a *API) Shutdown(ctx context.Context) error {
	a.log.Info("Shutting down API server")
	if a.srv != nil {
		return a.srv.Shutdown(ctx)
	}
	return nil
}
