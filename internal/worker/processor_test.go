package worker

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"seocrawler/internal/config"
	"seocrawler/internal/messagebus"
	"seocrawler/internal/mocks"
	"seocrawler/internal/models"
	"seocrawler/internal/repository"

	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type workerMocks struct {
	jobRepo    *mocks.MockJobRepositoryInterface
	pageRepo   *mocks.MockPageRepositoryInterface
	reportRepo *mocks.MockReportRepositoryInterface
	publisher  *mocks.MockMessageBusInterface
}

func setupMockWorker(t *testing.T, client *http.Client) (*Worker, workerMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)

	m := workerMocks{
		jobRepo:    mocks.NewMockJobRepositoryInterface(ctrl),
		pageRepo:   mocks.NewMockPageRepositoryInterface(ctrl),
		reportRepo: mocks.NewMockReportRepositoryInterface(ctrl),
		publisher:  mocks.NewMockMessageBusInterface(ctrl),
	}

	crawlCfg := config.CrawlConfig{
		UserAgent:       "TestBot/1.0",
		RequestTimeout:  5 * time.Second,
		RobotsTimeout:   2 * time.Second,
		RobotsCacheTTL:  time.Hour,
		RequestInterval: time.Millisecond,
		MaxBodyBytes:    1 << 20,
		WorkerCount:     2,
	}
	workerCfg := config.WorkerConfig{
		MaxAttempts:        2,
		RetryBackoffBase:   time.Millisecond,
		CancelPollInterval: 10 * time.Millisecond,
		StaleJobTimeout:    time.Minute,
		ReapInterval:       10 * time.Millisecond,
	}

	w := NewWorker(m.jobRepo, m.pageRepo, m.reportRepo, m.publisher, crawlCfg, workerCfg,
		WithHTTPClient(client),
		WithLogger(slog.New(slog.DiscardHandler)),
	)
	return w, m
}

// newPageServer serves a tiny site: / links to /about, both valid HTML.
func newPageServer(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/":
			w.Write([]byte(`<html><head><title>Home</title></head><body><h1>Home</h1><a href="/about">about</a></body></html>`))
		case "/about":
			w.Write([]byte(`<html><head><title>About</title></head><body><h1>About</h1></body></html>`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func crawlMsg(t *testing.T, jobID, rootDomain string) *nats.Msg {
	t.Helper()
	data, err := json.Marshal(messagebus.CrawlMessage{JobID: jobID, RootDomain: rootDomain, MaxPages: 10})
	require.NoError(t, err)
	return &nats.Msg{Data: data}
}

func pendingJob(id, rootDomain string) *models.CrawlJob {
	return &models.CrawlJob{
		ID:         id,
		RootDomain: rootDomain,
		Status:     models.JobStatusPending,
		MaxPages:   10,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
}

func TestWorker_CompletesJob(t *testing.T) {
	server := newPageServer(t)
	w, m := setupMockWorker(t, server.Client())

	job := pendingJob("job-1", server.URL)
	m.jobRepo.EXPECT().GetJob(gomock.Any(), "job-1").Return(job, nil).AnyTimes()
	m.jobRepo.EXPECT().ClaimJob(gomock.Any(), "job-1", 1).Return(nil)
	m.jobRepo.EXPECT().UpdateProgress(gomock.Any(), "job-1", gomock.Any(), gomock.Any()).Return(nil).Times(2)
	m.jobRepo.EXPECT().FinalizeJob(gomock.Any(), "job-1", models.JobStatusCompleted, 2, "").Return(nil)

	var saved atomic.Int32
	m.pageRepo.EXPECT().SavePageResult(gomock.Any(), "job-1", gomock.Any()).
		DoAndReturn(func(ctx context.Context, jobID string, page *models.PageResult) error {
			saved.Add(1)
			assert.NotZero(t, page.SEOScore)
			return nil
		}).Times(2)
	m.pageRepo.EXPECT().GetPagesByJobID(gomock.Any(), "job-1").Return([]models.PageResult{{SEOScore: 80}, {SEOScore: 90}}, nil)

	m.reportRepo.EXPECT().SaveReport(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, report *models.CrawlReport) error {
			assert.Equal(t, 2, report.Summary.PagesAnalyzed)
			assert.Equal(t, 85.0, report.Summary.AvgScore)
			return nil
		})

	m.publisher.EXPECT().PublishJobUpdate(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	m.publisher.EXPECT().PublishProgressUpdate(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	m.publisher.EXPECT().PublishReportReady(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, msg messagebus.ReportReadyMessage) error {
			assert.Equal(t, "job-1", msg.JobID)
			assert.Equal(t, string(models.JobStatusCompleted), msg.Status)
			require.NotNil(t, msg.Summary)
			return nil
		})

	w.ProcessCrawlMessage(context.Background(), crawlMsg(t, "job-1", server.URL))

	assert.Equal(t, int32(2), saved.Load())
}

func TestWorker_SkipsTerminalJob(t *testing.T) {
	w, m := setupMockWorker(t, nil)

	job := pendingJob("job-2", "https://example.com")
	job.Status = models.JobStatusCompleted
	m.jobRepo.EXPECT().GetJob(gomock.Any(), "job-2").Return(job, nil)

	w.ProcessCrawlMessage(context.Background(), crawlMsg(t, "job-2", "https://example.com"))
}

func TestWorker_SkipsAlreadyClaimedJob(t *testing.T) {
	w, m := setupMockWorker(t, nil)

	job := pendingJob("job-3", "https://example.com")
	m.jobRepo.EXPECT().GetJob(gomock.Any(), "job-3").Return(job, nil)
	m.jobRepo.EXPECT().ClaimJob(gomock.Any(), "job-3", 1).Return(repository.ErrJobAlreadyClaimed)

	w.ProcessCrawlMessage(context.Background(), crawlMsg(t, "job-3", "https://example.com"))
}

func TestWorker_HonorsPreStartCancellation(t *testing.T) {
	w, m := setupMockWorker(t, nil)

	job := pendingJob("job-4", "https://example.com")
	job.CancellationRequested = true
	m.jobRepo.EXPECT().GetJob(gomock.Any(), "job-4").Return(job, nil).Times(2) // runJob + report
	m.jobRepo.EXPECT().FinalizeJob(gomock.Any(), "job-4", models.JobStatusCancelled, 0, "").Return(nil)

	m.pageRepo.EXPECT().GetPagesByJobID(gomock.Any(), "job-4").Return(nil, nil)
	m.reportRepo.EXPECT().SaveReport(gomock.Any(), gomock.Any()).Return(nil)

	// Cancelled jobs publish a job update but never a report-ready event.
	m.publisher.EXPECT().PublishJobUpdate(gomock.Any(), gomock.Any()).Return(nil)

	w.ProcessCrawlMessage(context.Background(), crawlMsg(t, "job-4", "https://example.com"))
}

func TestWorker_CancellationDuringCrawl(t *testing.T) {
	// A big slow site so the cancellation poller fires mid-crawl.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(20 * time.Millisecond)
		w.Write([]byte(`<html><body><h1>p</h1>
			<a href="/a">a</a><a href="/b">b</a><a href="/c">c</a><a href="/d">d</a>
			<a href="/e">e</a><a href="/f">f</a><a href="/g">g</a><a href="/h">h</a>
		</body></html>`))
	}))
	defer server.Close()

	w, m := setupMockWorker(t, server.Client())

	var polls atomic.Int32
	m.jobRepo.EXPECT().GetJob(gomock.Any(), "job-5").
		DoAndReturn(func(ctx context.Context, id string) (*models.CrawlJob, error) {
			job := pendingJob("job-5", server.URL)
			if polls.Add(1) > 1 {
				job.CancellationRequested = true
			}
			return job, nil
		}).AnyTimes()
	m.jobRepo.EXPECT().ClaimJob(gomock.Any(), "job-5", 1).Return(nil)
	m.jobRepo.EXPECT().UpdateProgress(gomock.Any(), "job-5", gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	m.jobRepo.EXPECT().FinalizeJob(gomock.Any(), "job-5", models.JobStatusCancelled, gomock.Any(), "").Return(nil)

	m.pageRepo.EXPECT().SavePageResult(gomock.Any(), "job-5", gomock.Any()).Return(nil).AnyTimes()
	m.pageRepo.EXPECT().GetPagesByJobID(gomock.Any(), "job-5").Return(nil, nil)
	m.reportRepo.EXPECT().SaveReport(gomock.Any(), gomock.Any()).Return(nil)

	m.publisher.EXPECT().PublishJobUpdate(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	m.publisher.EXPECT().PublishProgressUpdate(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	w.ProcessCrawlMessage(context.Background(), crawlMsg(t, "job-5", server.URL))
}

func TestWorker_InfraErrorRetriesThenFails(t *testing.T) {
	server := newPageServer(t)
	w, m := setupMockWorker(t, server.Client())

	job := pendingJob("job-6", server.URL)
	m.jobRepo.EXPECT().GetJob(gomock.Any(), "job-6").Return(job, nil).AnyTimes()
	m.jobRepo.EXPECT().ClaimJob(gomock.Any(), "job-6", 1).Return(nil)
	m.jobRepo.EXPECT().FinalizeJob(gomock.Any(), "job-6", models.JobStatusFailed, gomock.Any(), gomock.Any()).Return(nil)

	// Both attempts fail on the first page write.
	m.pageRepo.EXPECT().SavePageResult(gomock.Any(), "job-6", gomock.Any()).
		Return(errors.New("dynamodb unavailable")).Times(2)
	m.pageRepo.EXPECT().GetPagesByJobID(gomock.Any(), "job-6").Return(nil, nil)
	m.reportRepo.EXPECT().SaveReport(gomock.Any(), gomock.Any()).Return(nil)

	m.publisher.EXPECT().PublishJobUpdate(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	m.publisher.EXPECT().PublishProgressUpdate(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	m.publisher.EXPECT().PublishReportReady(gomock.Any(), gomock.Any()).Return(nil)

	w.ProcessCrawlMessage(context.Background(), crawlMsg(t, "job-6", server.URL))
}

func TestWorker_InvalidRootDomainFailsJob(t *testing.T) {
	w, m := setupMockWorker(t, nil)

	job := pendingJob("job-7", "https://")
	m.jobRepo.EXPECT().GetJob(gomock.Any(), "job-7").Return(job, nil).Times(2)
	m.jobRepo.EXPECT().FinalizeJob(gomock.Any(), "job-7", models.JobStatusFailed, 0, gomock.Any()).Return(nil)

	m.pageRepo.EXPECT().GetPagesByJobID(gomock.Any(), "job-7").Return(nil, nil)
	m.reportRepo.EXPECT().SaveReport(gomock.Any(), gomock.Any()).Return(nil)

	m.publisher.EXPECT().PublishJobUpdate(gomock.Any(), gomock.Any()).Return(nil)
	m.publisher.EXPECT().PublishReportReady(gomock.Any(), gomock.Any()).Return(nil)

	w.ProcessCrawlMessage(context.Background(), crawlMsg(t, "job-7", "https://"))
}

func TestWorker_RobotsTimeoutFailsOpen(t *testing.T) {
	// robots.txt hangs past the robots timeout but well inside the page
	// timeout, and would disallow everything if it ever loaded. The policy
	// fetch must give up on its own deadline and fail open.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/robots.txt":
			time.Sleep(300 * time.Millisecond)
			w.Write([]byte("User-agent: *\nDisallow: /\n"))
		case "/":
			w.Write([]byte(`<html><head><title>Home</title></head><body><h1>Home</h1></body></html>`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	w, m := setupMockWorker(t, server.Client())
	w.crawlCfg.RobotsTimeout = 50 * time.Millisecond

	job := pendingJob("job-8", server.URL)
	m.jobRepo.EXPECT().GetJob(gomock.Any(), "job-8").Return(job, nil).AnyTimes()
	m.jobRepo.EXPECT().ClaimJob(gomock.Any(), "job-8", 1).Return(nil)
	m.jobRepo.EXPECT().UpdateProgress(gomock.Any(), "job-8", gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	m.jobRepo.EXPECT().FinalizeJob(gomock.Any(), "job-8", models.JobStatusCompleted, 1, "").Return(nil)

	m.pageRepo.EXPECT().SavePageResult(gomock.Any(), "job-8", gomock.Any()).Return(nil).Times(1)
	m.pageRepo.EXPECT().GetPagesByJobID(gomock.Any(), "job-8").Return([]models.PageResult{{SEOScore: 80}}, nil)
	m.reportRepo.EXPECT().SaveReport(gomock.Any(), gomock.Any()).Return(nil)

	m.publisher.EXPECT().PublishJobUpdate(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	m.publisher.EXPECT().PublishProgressUpdate(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	m.publisher.EXPECT().PublishReportReady(gomock.Any(), gomock.Any()).Return(nil)

	w.ProcessCrawlMessage(context.Background(), crawlMsg(t, "job-8", server.URL))
}

func TestWorker_RetryKeepsProgressMonotonic(t *testing.T) {
	// Three-page site. The first attempt dies writing the third page; the
	// rerun starts its own count at zero but reported progress must never
	// drop below the first attempt's high-water mark.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/":
			w.Write([]byte(`<html><head><title>Home</title></head><body><h1>Home</h1><a href="/a">a</a><a href="/b">b</a></body></html>`))
		case "/a":
			w.Write([]byte(`<html><head><title>A</title></head><body><h1>A</h1></body></html>`))
		case "/b":
			w.Write([]byte(`<html><head><title>B</title></head><body><h1>B</h1></body></html>`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	w, m := setupMockWorker(t, server.Client())

	job := pendingJob("job-9", server.URL)
	m.jobRepo.EXPECT().GetJob(gomock.Any(), "job-9").Return(job, nil).AnyTimes()
	m.jobRepo.EXPECT().ClaimJob(gomock.Any(), "job-9", 1).Return(nil)
	m.jobRepo.EXPECT().FinalizeJob(gomock.Any(), "job-9", models.JobStatusCompleted, 3, "").Return(nil)

	// Checkpoints run on the single consumer goroutine, so a plain slice is safe.
	var progress []int
	m.jobRepo.EXPECT().UpdateProgress(gomock.Any(), "job-9", gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, id string, pagesCrawled int, pagesTotal *int) error {
			progress = append(progress, pagesCrawled)
			return nil
		}).AnyTimes()

	var saves atomic.Int32
	m.pageRepo.EXPECT().SavePageResult(gomock.Any(), "job-9", gomock.Any()).
		DoAndReturn(func(ctx context.Context, jobID string, page *models.PageResult) error {
			if saves.Add(1) == 3 {
				return errors.New("dynamodb unavailable")
			}
			return nil
		}).AnyTimes()
	m.pageRepo.EXPECT().GetPagesByJobID(gomock.Any(), "job-9").Return(nil, nil)
	m.reportRepo.EXPECT().SaveReport(gomock.Any(), gomock.Any()).Return(nil)

	m.publisher.EXPECT().PublishJobUpdate(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	m.publisher.EXPECT().PublishProgressUpdate(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	m.publisher.EXPECT().PublishReportReady(gomock.Any(), gomock.Any()).Return(nil)

	w.ProcessCrawlMessage(context.Background(), crawlMsg(t, "job-9", server.URL))

	require.NotEmpty(t, progress)
	for i := 1; i < len(progress); i++ {
		assert.GreaterOrEqual(t, progress[i], progress[i-1])
	}
	assert.Equal(t, 3, progress[len(progress)-1])
}

func TestWorker_ReaperReleasesStaleJobs(t *testing.T) {
	w, m := setupMockWorker(t, nil)

	m.jobRepo.EXPECT().ReapStaleJobs(gomock.Any(), time.Minute, 2).Return(1, nil).MinTimes(1)

	ctx, cancel := context.WithCancel(context.Background())
	w.StartReaper(ctx)

	time.Sleep(50 * time.Millisecond)
	cancel()
}
