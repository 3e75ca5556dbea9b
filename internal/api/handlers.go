package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"seocrawler/internal/messagebus"
	"seocrawler/internal/middleware"
	"seocrawler/internal/models"
	"seocrawler/internal/repository"

	"github.com/yousuf64/shift"
)

// handleCreateCrawl validates the requested domain, stores a pending job, and
// enqueues it for a worker.
func (a *API) handleCreateCrawl(w http.ResponseWriter, r *http.Request, route shift.Route) error {
	ctx := r.Context()
	start := time.Now()

	var success bool
	defer func() {
		if a.metrics != nil {
			a.metrics.RecordJobCreation(success, time.Since(start))
		}
	}()

	var req CrawlRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return middleware.NewStatusError(http.StatusBadRequest,
			errors.Join(err, errors.New("failed to decode request")))
	}

	rootDomain, err := validateDomain(req.Domain)
	if err != nil {
		return middleware.NewStatusError(http.StatusBadRequest,
			fmt.Errorf("domain validation failed: %w", err))
	}

	maxPages, err := a.resolveMaxPages(req.MaxPages)
	if err != nil {
		return middleware.NewStatusError(http.StatusBadRequest, err)
	}

	jobID := generateID()
	a.log.Info("Creating crawl job",
		slog.String("jobId", jobID),
		slog.String("rootDomain", rootDomain),
		slog.Int("maxPages", maxPages))

	now := time.Now().UTC()
	job := &models.CrawlJob{
		ID:         jobID,
		RootDomain: rootDomain,
		Status:     models.JobStatusPending,
		MaxPages:   maxPages,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := a.jobRepo.CreateJob(ctx, job); err != nil {
		return errors.Join(err, errors.New("failed to create job"))
	}

	if err := a.mb.PublishCrawlMessage(ctx, messagebus.CrawlMessage{
		JobID:      jobID,
		RootDomain: rootDomain,
		MaxPages:   maxPages,
	}); err != nil {
		return errors.Join(err, errors.New("failed to publish crawl message"))
	}

	a.log.Info("Crawl request published",
		slog.String("jobId", jobID),
		slog.Duration("duration", time.Since(start)))

	success = true
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	return json.NewEncoder(w).Encode(CrawlResponse{Job: *job})
}

// handleGetCrawls lists all crawl jobs.
func (a *API) handleGetCrawls(w http.ResponseWriter, r *http.Request, route shift.Route) error {
	ctx := r.Context()

	jobs, err := a.jobRepo.GetAllJobs(ctx)
	if err != nil {
		return errors.Join(err, errors.New("failed to get jobs"))
	}

	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(jobs)
}

// handleGetCrawl returns the progress read model for one job.
func (a *API) handleGetCrawl(w http.ResponseWriter, r *http.Request, route shift.Route) error {
	ctx := r.Context()
	jobID := route.Params.Get("job_id")
	if jobID == "" {
		return middleware.NewStatusError(http.StatusBadRequest, errors.New("job_id is required"))
	}

	job, err := a.jobRepo.GetJob(ctx, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return middleware.NewStatusError(http.StatusNotFound, err)
		}
		return errors.Join(err, errors.New("failed to get job"))
	}

	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(ProgressResponse{
		ID:           job.ID,
		Status:       job.Status,
		PagesCrawled: job.PagesCrawled,
		PagesTotal:   job.PagesTotal,
		ErrorMessage: job.ErrorMessage,
	})
}

// handleCancelCrawl flags a job for cooperative cancellation. The worker
// observes the flag at its next loop boundary.
func (a *API) handleCancelCrawl(w http.ResponseWriter, r *http.Request, route shift.Route) error {
	ctx := r.Context()
	jobID := route.Params.Get("job_id")
	if jobID == "" {
		return middleware.NewStatusError(http.StatusBadRequest, errors.New("job_id is required"))
	}

	if err := a.jobRepo.RequestCancellation(ctx, jobID); err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return middleware.NewStatusError(http.StatusNotFound,
				errors.New("job not found or already finished"))
		}
		return errors.Join(err, errors.New("failed to request cancellation"))
	}

	if a.metrics != nil {
		a.metrics.RecordCancellationRequest()
	}
	a.log.Info("Cancellation requested", slog.String("jobId", jobID))

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	return json.NewEncoder(w).Encode(map[string]string{"status": "cancellation_requested"})
}

// handleGetReport returns the full crawl report once the job is terminal.
func (a *API) handleGetReport(w http.ResponseWriter, r *http.Request, route shift.Route) error {
	ctx := r.Context()
	jobID := route.Params.Get("job_id")
	if jobID == "" {
		return middleware.NewStatusError(http.StatusBadRequest, errors.New("job_id is required"))
	}

	job, err := a.jobRepo.GetJob(ctx, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return middleware.NewStatusError(http.StatusNotFound, err)
		}
		return errors.Join(err, errors.New("failed to get job"))
	}

	if !job.Status.IsTerminal() {
		return middleware.NewStatusError(http.StatusConflict,
			fmt.Errorf("report not ready: job is %s", job.Status))
	}

	summary, err := a.reportRepo.GetReportSummary(ctx, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrReportNotFound) {
			return middleware.NewStatusError(http.StatusConflict, errors.New("report not ready"))
		}
		return errors.Join(err, errors.New("failed to get report summary"))
	}

	pages, err := a.pageRepo.GetPagesByJobID(ctx, jobID)
	if err != nil {
		return errors.Join(err, errors.New("failed to get pages"))
	}

	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(models.CrawlReport{
		CrawlJob: *job,
		Pages:    pages,
		Summary:  *summary,
	})
}
