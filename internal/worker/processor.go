package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"sync/atomic"
	"time"

	"seocrawler/internal/crawler"
	"seocrawler/internal/messagebus"
	"seocrawler/internal/models"
	"seocrawler/internal/repository"
	"seocrawler/internal/robots"
	"seocrawler/internal/seo"

	"github.com/nats-io/nats.go"
)

// errCancelled marks a crawl stopped by a user cancellation request, which is
// a terminal state of its own, not a failure.
var errCancelled = errors.New("cancellation requested")

// ProcessCrawlMessage handles incoming crawl messages
func (w *Worker) ProcessCrawlMessage(ctx context.Context, msg *nats.Msg) {
	var cm messagebus.CrawlMessage
	if err := json.Unmarshal(msg.Data, &cm); err != nil {
		w.log.Error("Failed to unmarshal crawl message",
			slog.Any("error", err),
			slog.String("data", string(msg.Data)))
		return
	}

	w.log.Info("Processing crawl job",
		slog.String("jobId", cm.JobID),
		slog.String("rootDomain", cm.RootDomain))

	start := time.Now()
	finalStatus, err := w.runJob(ctx, cm)
	if err != nil {
		w.log.Error("Crawl job failed",
			slog.String("jobId", cm.JobID),
			slog.Any("error", err))
	} else {
		w.log.Info("Crawl job finished",
			slog.String("jobId", cm.JobID),
			slog.String("status", finalStatus),
			slog.Duration("processingTime", time.Since(start)))
	}

	w.metrics.RecordCrawlJob(finalStatus, time.Since(start).Seconds())
}

// runJob drives one job through its full lifecycle and returns its final
// status for metrics.
func (w *Worker) runJob(ctx context.Context, cm messagebus.CrawlMessage) (string, error) {
	job, err := w.jobRepo.GetJob(ctx, cm.JobID)
	if err != nil {
		return "error", fmt.Errorf("load job: %w", err)
	}

	if job.Status.IsTerminal() {
		w.log.Info("Job already terminal, skipping",
			slog.String("jobId", job.ID),
			slog.String("status", string(job.Status)))
		return "skipped", nil
	}

	// Honor a cancellation that arrived before any worker picked the job up.
	if job.CancellationRequested {
		return w.finalize(ctx, job.ID, models.JobStatusCancelled, 0, "")
	}

	root, err := crawler.ParseRoot(job.RootDomain)
	if err != nil {
		return w.finalize(ctx, job.ID, models.JobStatusFailed, 0,
			fmt.Sprintf("invalid root domain %q: %v", job.RootDomain, err))
	}

	if err := w.jobRepo.ClaimJob(ctx, job.ID, job.Attempts+1); err != nil {
		if errors.Is(err, repository.ErrJobAlreadyClaimed) {
			w.log.Info("Job claimed by another worker, skipping", slog.String("jobId", job.ID))
			return "skipped", nil
		}
		return "error", fmt.Errorf("claim job: %w", err)
	}

	w.publishJobUpdate(ctx, job.ID, models.JobStatusRunning, "")

	w.crawlStarted()
	defer w.crawlFinished()

	var (
		pagesCrawled int
		runErr       error
	)
	for attempt := 1; ; attempt++ {
		pagesCrawled, runErr = w.runCrawl(ctx, job.ID, root, job.MaxPages, pagesCrawled)
		if runErr == nil || errors.Is(runErr, errCancelled) ||
			errors.Is(runErr, context.Canceled) || attempt >= w.workerCfg.MaxAttempts {
			break
		}

		// Infrastructure hiccup. Back off and rerun: page writes are keyed
		// by URL, so a rerun overwrites earlier results rather than
		// duplicating them.
		backoff := w.workerCfg.RetryBackoffBase << (attempt - 1)
		w.log.Warn("Crawl run failed, retrying",
			slog.String("jobId", job.ID),
			slog.Int("attempt", attempt),
			slog.Duration("backoff", backoff),
			slog.Any("error", runErr))

		select {
		case <-ctx.Done():
			return "error", ctx.Err()
		case <-time.After(backoff):
		}
	}

	switch {
	case runErr == nil:
		return w.finalize(ctx, job.ID, models.JobStatusCompleted, pagesCrawled, "")
	case errors.Is(runErr, errCancelled):
		return w.finalize(ctx, job.ID, models.JobStatusCancelled, pagesCrawled, "")
	case errors.Is(runErr, context.Canceled):
		// Worker shutdown, not a job failure. Leave the job running so the
		// reaper releases it back to pending.
		return "error", runErr
	default:
		return w.finalize(ctx, job.ID, models.JobStatusFailed, pagesCrawled, runErr.Error())
	}
}

// runCrawl executes one crawl attempt, persisting and scoring pages as they
// arrive. Returns how many fetches completed, counting transport failures.
// A rerun re-crawls pages the earlier attempt already persisted, so floor is
// the prior attempt's count and reported progress never drops below it:
// pages_crawled stays non-decreasing for pollers across retries.
func (w *Worker) runCrawl(ctx context.Context, jobID string, root *url.URL, maxPages, floor int) (int, error) {
	crawlCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var cancelled atomic.Bool
	pollerDone := make(chan struct{})
	go w.pollCancellation(crawlCtx, jobID, &cancelled, cancel, pollerDone)

	fetcher := crawler.NewFetcher(w.client, w.crawlCfg.UserAgent, w.crawlCfg.RequestTimeout, w.crawlCfg.MaxBodyBytes)

	// robots.txt gets its own client: a hung policy fetch gives up after
	// RobotsTimeout and fails open instead of holding the slot for the full
	// page timeout.
	robotsClient := &http.Client{
		Timeout:   w.crawlCfg.RobotsTimeout,
		Transport: w.client.Transport,
	}
	agent := robots.NewAgent(robotsClient, w.crawlCfg.UserAgent, w.crawlCfg.RobotsCacheTTL, w.metrics)
	c := crawler.New(w.crawlCfg, root, maxPages, fetcher, agent, w.log.With(slog.String("jobId", jobID)))

	pagesCrawled := 0
	for result := range c.Run(crawlCtx) {
		w.metrics.RecordPageFetch(string(result.Outcome), result.Elapsed.Seconds())

		if result.Outcome.Analyzable() {
			// Persistence uses the parent context so results still land
			// while a cancellation is winding the crawl down.
			if err := w.analyzeAndSave(ctx, jobID, result); err != nil {
				return max(pagesCrawled, floor), err
			}
		} else {
			w.log.Warn("Page fetch failed",
				slog.String("jobId", jobID),
				slog.String("url", result.URL.String()),
				slog.String("outcome", string(result.Outcome)),
				slog.Any("error", result.Err))
		}

		// Every completed fetch counts toward progress, so percent-complete
		// stays accurate even when pages 404 or time out.
		pagesCrawled++
		if err := w.checkpoint(ctx, jobID, max(pagesCrawled, floor), c.Discovered()); err != nil {
			return max(pagesCrawled, floor), err
		}
	}

	cancel()
	<-pollerDone

	if cancelled.Load() {
		return max(pagesCrawled, floor), errCancelled
	}
	if err := ctx.Err(); err != nil {
		return max(pagesCrawled, floor), err
	}
	return max(pagesCrawled, floor), nil
}

// pollCancellation periodically re-reads the job record and cancels the crawl
// context once cancellation_requested is set.
func (w *Worker) pollCancellation(ctx context.Context, jobID string, cancelled *atomic.Bool, cancel context.CancelFunc, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(w.workerCfg.CancelPollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			job, err := w.jobRepo.GetJob(ctx, jobID)
			if err != nil {
				w.log.Warn("Cancellation poll failed",
					slog.String("jobId", jobID),
					slog.Any("error", err))
				continue
			}
			if job.CancellationRequested {
				w.log.Info("Cancellation requested, stopping crawl", slog.String("jobId", jobID))
				cancelled.Store(true)
				cancel()
				return
			}
		}
	}
}

// analyzeAndSave scores one fetched page and persists the result immediately,
// so partial progress survives a crash.
func (w *Worker) analyzeAndSave(ctx context.Context, jobID string, result *crawler.FetchResult) error {
	start := time.Now()
	page := w.analyzer.Analyze(seo.AnalyzeInput{
		HTML:         result.Body,
		URL:          result.URL.String(),
		StatusCode:   result.StatusCode,
		ResponseTime: result.Elapsed,
		FetchedAt:    result.FetchedAt,
	})
	w.metrics.RecordPageAnalysis(time.Since(start).Seconds())

	if err := w.pageRepo.SavePageResult(ctx, jobID, &page); err != nil {
		return fmt.Errorf("save page result: %w", err)
	}
	return nil
}

// checkpoint persists progress (doubling as the liveness heartbeat) and
// publishes a progress event for pollers.
func (w *Worker) checkpoint(ctx context.Context, jobID string, pagesCrawled, discovered int) error {
	pagesTotal := &discovered
	if err := w.jobRepo.UpdateProgress(ctx, jobID, pagesCrawled, pagesTotal); err != nil {
		return fmt.Errorf("update progress: %w", err)
	}

	if err := w.publisher.PublishProgressUpdate(ctx, messagebus.ProgressMessage{
		JobID:        jobID,
		PagesCrawled: pagesCrawled,
		PagesTotal:   pagesTotal,
	}); err != nil {
		w.log.Error("Failed to publish progress",
			slog.String("jobId", jobID),
			slog.Any("error", err))
	}
	return nil
}

// finalize moves the job to a terminal status, materializes the report, and
// emits the corresponding events.
func (w *Worker) finalize(ctx context.Context, jobID string, status models.JobStatus, pagesCrawled int, errorMessage string) (string, error) {
	if err := w.jobRepo.FinalizeJob(ctx, jobID, status, pagesCrawled, errorMessage); err != nil {
		return "error", fmt.Errorf("finalize job as %s: %w", status, err)
	}

	summary := w.saveReport(ctx, jobID)

	w.publishJobUpdate(ctx, jobID, status, errorMessage)

	if status == models.JobStatusCompleted || status == models.JobStatusFailed {
		if err := w.publisher.PublishReportReady(ctx, messagebus.ReportReadyMessage{
			JobID:   jobID,
			Status:  string(status),
			Summary: summary,
		}); err != nil {
			w.log.Error("Failed to publish report ready",
				slog.String("jobId", jobID),
				slog.Any("error", err))
		}
	}

	return string(status), nil
}

// saveReport materializes the report from whatever pages were persisted.
// A cancelled or failed job keeps its partial report.
func (w *Worker) saveReport(ctx context.Context, jobID string) *models.ReportSummary {
	job, err := w.jobRepo.GetJob(ctx, jobID)
	if err != nil {
		w.log.Error("Failed to load job for report", slog.String("jobId", jobID), slog.Any("error", err))
		return nil
	}

	pages, err := w.pageRepo.GetPagesByJobID(ctx, jobID)
	if err != nil {
		w.log.Error("Failed to load pages for report", slog.String("jobId", jobID), slog.Any("error", err))
		return nil
	}

	report := models.BuildReport(*job, pages)
	if err := w.reportRepo.SaveReport(ctx, &report); err != nil {
		w.log.Error("Failed to save report", slog.String("jobId", jobID), slog.Any("error", err))
		return nil
	}

	return &report.Summary
}

func (w *Worker) publishJobUpdate(ctx context.Context, jobID string, status models.JobStatus, errorMessage string) {
	if err := w.publisher.PublishJobUpdate(ctx, messagebus.JobUpdateMessage{
		JobID:  jobID,
		Status: string(status),
		Error:  errorMessage,
	}); err != nil {
		w.log.Error("Failed to publish job update",
			slog.String("jobId", jobID),
			slog.Any("error", err))
	}
}
