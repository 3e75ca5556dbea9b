package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"seocrawler/internal/config"
	"seocrawler/internal/middleware"
	"seocrawler/internal/mocks"
	"seocrawler/internal/models"
	"seocrawler/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yousuf64/shift"
	"go.uber.org/mock/gomock"
)

// handlerTestCase is a test case for API handler testing
type handlerTestCase struct {
	name           string
	body           any
	setupMocks     func(*mocks.MockJobRepositoryInterface, *mocks.MockMessageBusInterface)
	expectedStatus int
	description    string
}

// setupMockAPI creates an API instance with mocked dependencies
func setupMockAPI(t *testing.T) (*API, *mocks.MockJobRepositoryInterface, *mocks.MockPageRepositoryInterface, *mocks.MockReportRepositoryInterface, *mocks.MockMessageBusInterface) {
	t.Helper()
	ctrl := gomock.NewController(t)

	mockJobRepo := mocks.NewMockJobRepositoryInterface(ctrl)
	mockPageRepo := mocks.NewMockPageRepositoryInterface(ctrl)
	mockReportRepo := mocks.NewMockReportRepositoryInterface(ctrl)
	mockMessageBus := mocks.NewMockMessageBusInterface(ctrl)

	a := &API{
		jobRepo:    mockJobRepo,
		pageRepo:   mockPageRepo,
		reportRepo: mockReportRepo,
		mb:         mockMessageBus,
		crawlCfg: config.CrawlConfig{
			DefaultMaxPages: 50,
			MaxPagesLimit:   500,
		},
		log: slog.New(slog.DiscardHandler),
	}

	return a, mockJobRepo, mockPageRepo, mockReportRepo, mockMessageBus
}

// makeRequest creates an HTTP request with the given method, path, and body.
func makeRequest(t *testing.T, method, path string, body any) *http.Request {
	t.Helper()

	var reqBody bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&reqBody).Encode(body))
	}

	req, err := http.NewRequest(method, path, &reqBody)
	require.NoError(t, err)

	req.Header.Set("Content-Type", "application/json")
	return req
}

// setupRouter creates a router with the error middleware and one route.
func setupRouter(method, path string, handler shift.HandlerFunc) *shift.Router {
	router := shift.New()
	router.Use(middleware.ErrorMiddleware(slog.New(slog.DiscardHandler)))
	router.Map([]string{method}, path, handler)
	return router
}

func TestAPI_HandleCreateCrawl_TableDriven(t *testing.T) {
	testCases := []handlerTestCase{
		{
			name: "SuccessfulCreate",
			body: CrawlRequest{Domain: "example.com", MaxPages: 25},
			setupMocks: func(jobRepo *mocks.MockJobRepositoryInterface, mb *mocks.MockMessageBusInterface) {
				jobRepo.EXPECT().CreateJob(gomock.Any(), gomock.Any()).
					DoAndReturn(func(ctx any, job *models.CrawlJob) error {
						assert.Equal(t, "https://example.com", job.RootDomain)
						assert.Equal(t, models.JobStatusPending, job.Status)
						assert.Equal(t, 25, job.MaxPages)
						assert.NotEmpty(t, job.ID)
						return nil
					})
				mb.EXPECT().PublishCrawlMessage(gomock.Any(), gomock.Any()).Return(nil)
			},
			expectedStatus: http.StatusAccepted,
			description:    "Create a pending job and publish the work order",
		},
		{
			name: "DefaultMaxPagesApplied",
			body: CrawlRequest{Domain: "https://example.com"},
			setupMocks: func(jobRepo *mocks.MockJobRepositoryInterface, mb *mocks.MockMessageBusInterface) {
				jobRepo.EXPECT().CreateJob(gomock.Any(), gomock.Any()).
					DoAndReturn(func(ctx any, job *models.CrawlJob) error {
						assert.Equal(t, 50, job.MaxPages)
						return nil
					})
				mb.EXPECT().PublishCrawlMessage(gomock.Any(), gomock.Any()).Return(nil)
			},
			expectedStatus: http.StatusAccepted,
			description:    "Zero max_pages falls back to the configured default",
		},
		{
			name:           "MaxPagesOverLimit",
			body:           CrawlRequest{Domain: "example.com", MaxPages: 501},
			setupMocks:     func(jobRepo *mocks.MockJobRepositoryInterface, mb *mocks.MockMessageBusInterface) {},
			expectedStatus: http.StatusBadRequest,
			description:    "Reject page budgets above the configured limit",
		},
		{
			name:           "NegativeMaxPages",
			body:           CrawlRequest{Domain: "example.com", MaxPages: -1},
			setupMocks:     func(jobRepo *mocks.MockJobRepositoryInterface, mb *mocks.MockMessageBusInterface) {},
			expectedStatus: http.StatusBadRequest,
			description:    "Reject negative page budgets",
		},
		{
			name:           "EmptyDomain",
			body:           CrawlRequest{Domain: ""},
			setupMocks:     func(jobRepo *mocks.MockJobRepositoryInterface, mb *mocks.MockMessageBusInterface) {},
			expectedStatus: http.StatusBadRequest,
			description:    "Reject empty domain",
		},
		{
			name:           "UnsupportedScheme",
			body:           CrawlRequest{Domain: "ftp://example.com"},
			setupMocks:     func(jobRepo *mocks.MockJobRepositoryInterface, mb *mocks.MockMessageBusInterface) {},
			expectedStatus: http.StatusBadRequest,
			description:    "Reject non-HTTP schemes",
		},
		{
			name:           "LocalhostRejected",
			body:           CrawlRequest{Domain: "localhost:8080"},
			setupMocks:     func(jobRepo *mocks.MockJobRepositoryInterface, mb *mocks.MockMessageBusInterface) {},
			expectedStatus: http.StatusBadRequest,
			description:    "Reject loopback crawl targets",
		},
		{
			name:           "PrivateIPRejected",
			body:           CrawlRequest{Domain: "https://192.168.1.1"},
			setupMocks:     func(jobRepo *mocks.MockJobRepositoryInterface, mb *mocks.MockMessageBusInterface) {},
			expectedStatus: http.StatusBadRequest,
			description:    "Reject private IP crawl targets",
		},
		{
			name:           "InvalidJSON",
			body:           "not-a-crawl-request",
			setupMocks:     func(jobRepo *mocks.MockJobRepositoryInterface, mb *mocks.MockMessageBusInterface) {},
			expectedStatus: http.StatusBadRequest,
			description:    "Reject malformed request bodies",
		},
		{
			name: "DatabaseError",
			body: CrawlRequest{Domain: "example.com"},
			setupMocks: func(jobRepo *mocks.MockJobRepositoryInterface, mb *mocks.MockMessageBusInterface) {
				jobRepo.EXPECT().CreateJob(gomock.Any(), gomock.Any()).Return(errors.New("database error"))
			},
			expectedStatus: http.StatusInternalServerError,
			description:    "Surface job creation failures",
		},
		{
			name: "MessageBusError",
			body: CrawlRequest{Domain: "example.com"},
			setupMocks: func(jobRepo *mocks.MockJobRepositoryInterface, mb *mocks.MockMessageBusInterface) {
				jobRepo.EXPECT().CreateJob(gomock.Any(), gomock.Any()).Return(nil)
				mb.EXPECT().PublishCrawlMessage(gomock.Any(), gomock.Any()).Return(errors.New("message bus error"))
			},
			expectedStatus: http.StatusInternalServerError,
			description:    "Surface publish failures",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			a, mockJobRepo, _, _, mockMessageBus := setupMockAPI(t)
			tc.setupMocks(mockJobRepo, mockMessageBus)

			req := makeRequest(t, "POST", "/crawls", tc.body)
			rr := httptest.NewRecorder()

			router := setupRouter("POST", "/crawls", a.handleCreateCrawl)
			router.Serve().ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code, tc.description)
		})
	}
}

func TestAPI_HandleGetCrawls(t *testing.T) {
	a, mockJobRepo, _, _, _ := setupMockAPI(t)

	pagesTotal := 12
	jobs := []models.CrawlJob{
		{ID: "job-1", RootDomain: "https://example.com", Status: models.JobStatusCompleted, PagesCrawled: 12, PagesTotal: &pagesTotal},
		{ID: "job-2", RootDomain: "https://test.com", Status: models.JobStatusRunning, PagesCrawled: 3},
	}
	mockJobRepo.EXPECT().GetAllJobs(gomock.Any()).Return(jobs, nil)

	req := makeRequest(t, "GET", "/crawls", nil)
	rr := httptest.NewRecorder()

	router := setupRouter("GET", "/crawls", a.handleGetCrawls)
	router.Serve().ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var got []models.CrawlJob
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Len(t, got, 2)
}

func TestAPI_HandleGetCrawl(t *testing.T) {
	t.Run("ReturnsProgress", func(t *testing.T) {
		a, mockJobRepo, _, _, _ := setupMockAPI(t)

		pagesTotal := 40
		mockJobRepo.EXPECT().GetJob(gomock.Any(), "job-1").Return(&models.CrawlJob{
			ID:           "job-1",
			Status:       models.JobStatusRunning,
			PagesCrawled: 17,
			PagesTotal:   &pagesTotal,
		}, nil)

		req := makeRequest(t, "GET", "/crawls/job-1", nil)
		rr := httptest.NewRecorder()

		router := setupRouter("GET", "/crawls/:job_id", a.handleGetCrawl)
		router.Serve().ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)

		var got ProgressResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		assert.Equal(t, models.JobStatusRunning, got.Status)
		assert.Equal(t, 17, got.PagesCrawled)
		require.NotNil(t, got.PagesTotal)
		assert.Equal(t, 40, *got.PagesTotal)
	})

	t.Run("NotFound", func(t *testing.T) {
		a, mockJobRepo, _, _, _ := setupMockAPI(t)

		mockJobRepo.EXPECT().GetJob(gomock.Any(), "missing").Return(nil, repository.ErrJobNotFound)

		req := makeRequest(t, "GET", "/crawls/missing", nil)
		rr := httptest.NewRecorder()

		router := setupRouter("GET", "/crawls/:job_id", a.handleGetCrawl)
		router.Serve().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestAPI_HandleCancelCrawl(t *testing.T) {
	t.Run("Accepted", func(t *testing.T) {
		a, mockJobRepo, _, _, _ := setupMockAPI(t)

		mockJobRepo.EXPECT().RequestCancellation(gomock.Any(), "job-1").Return(nil)

		req := makeRequest(t, "POST", "/crawls/job-1/cancel", nil)
		rr := httptest.NewRecorder()

		router := setupRouter("POST", "/crawls/:job_id/cancel", a.handleCancelCrawl)
		router.Serve().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusAccepted, rr.Code)
	})

	t.Run("NotFoundOrTerminal", func(t *testing.T) {
		a, mockJobRepo, _, _, _ := setupMockAPI(t)

		mockJobRepo.EXPECT().RequestCancellation(gomock.Any(), "job-1").Return(repository.ErrJobNotFound)

		req := makeRequest(t, "POST", "/crawls/job-1/cancel", nil)
		rr := httptest.NewRecorder()

		router := setupRouter("POST", "/crawls/:job_id/cancel", a.handleCancelCrawl)
		router.Serve().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestAPI_HandleGetReport(t *testing.T) {
	terminalJob := func() *models.CrawlJob {
		now := time.Now().UTC()
		return &models.CrawlJob{
			ID:           "job-1",
			RootDomain:   "https://example.com",
			Status:       models.JobStatusCompleted,
			PagesCrawled: 2,
			CompletedAt:  &now,
		}
	}

	t.Run("ReturnsReport", func(t *testing.T) {
		a, mockJobRepo, mockPageRepo, mockReportRepo, _ := setupMockAPI(t)

		mockJobRepo.EXPECT().GetJob(gomock.Any(), "job-1").Return(terminalJob(), nil)
		mockReportRepo.EXPECT().GetReportSummary(gomock.Any(), "job-1").Return(&models.ReportSummary{
			AvgScore:      85,
			TotalIssues:   3,
			PagesAnalyzed: 2,
		}, nil)
		mockPageRepo.EXPECT().GetPagesByJobID(gomock.Any(), "job-1").Return([]models.PageResult{
			{URL: "https://example.com/", SEOScore: 80},
			{URL: "https://example.com/about", SEOScore: 90},
		}, nil)

		req := makeRequest(t, "GET", "/crawls/job-1/report", nil)
		rr := httptest.NewRecorder()

		router := setupRouter("GET", "/crawls/:job_id/report", a.handleGetReport)
		router.Serve().ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)

		var got models.CrawlReport
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		assert.Equal(t, "job-1", got.CrawlJob.ID)
		assert.Len(t, got.Pages, 2)
		assert.Equal(t, 85.0, got.Summary.AvgScore)
	})

	t.Run("ConflictWhileRunning", func(t *testing.T) {
		a, mockJobRepo, _, _, _ := setupMockAPI(t)

		mockJobRepo.EXPECT().GetJob(gomock.Any(), "job-1").Return(&models.CrawlJob{
			ID:     "job-1",
			Status: models.JobStatusRunning,
		}, nil)

		req := makeRequest(t, "GET", "/crawls/job-1/report", nil)
		rr := httptest.NewRecorder()

		router := setupRouter("GET", "/crawls/:job_id/report", a.handleGetReport)
		router.Serve().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusConflict, rr.Code)
	})

	t.Run("NotFound", func(t *testing.T) {
		a, mockJobRepo, _, _, _ := setupMockAPI(t)

		mockJobRepo.EXPECT().GetJob(gomock.Any(), "missing").Return(nil, repository.ErrJobNotFound)

		req := makeRequest(t, "GET", "/crawls/missing/report", nil)
		rr := httptest.NewRecorder()

		router := setupRouter("GET", "/crawls/:job_id/report", a.handleGetReport)
		router.Serve().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("SummaryNotYetPersisted", func(t *testing.T) {
		a, mockJobRepo, _, mockReportRepo, _ := setupMockAPI(t)

		mockJobRepo.EXPECT().GetJob(gomock.Any(), "job-1").Return(terminalJob(), nil)
		mockReportRepo.EXPECT().GetReportSummary(gomock.Any(), "job-1").Return(nil, repository.ErrReportNotFound)

		req := makeRequest(t, "GET", "/crawls/job-1/report", nil)
		rr := httptest.NewRecorder()

		router := setupRouter("GET", "/crawls/:job_id/report", a.handleGetReport)
		router.Serve().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusConflict, rr.Code)
	})
}
