package repository

import (
	"time"

	"seocrawler/internal/models"
)

// JobEntity represents a crawl job as stored in DynamoDB
type JobEntity struct {
	PartitionKey          string     `dynamodbav:"partition_key"`
	ID                    string     `dynamodbav:"id"`
	RootDomain            string     `dynamodbav:"root_domain"`
	Status                string     `dynamodbav:"status"`
	PagesCrawled          int        `dynamodbav:"pages_crawled"`
	PagesTotal            *int       `dynamodbav:"pages_total"`
	MaxPages              int        `dynamodbav:"max_pages"`
	CancellationRequested bool       `dynamodbav:"cancellation_requested"`
	ErrorMessage          string     `dynamodbav:"error_message"`
	Attempts              int        `dynamodbav:"attempts"`
	CreatedAt             time.Time  `dynamodbav:"created_at"`
	UpdatedAt             time.Time  `dynamodbav:"updated_at"`
	StartedAt             *time.Time `dynamodbav:"started_at"`
	CompletedAt           *time.Time `dynamodbav:"completed_at"`
}

// ToModel converts JobEntity to domain model
func (e *JobEntity) ToModel() *models.CrawlJob {
	return &models.CrawlJob{
		ID:                    e.ID,
		RootDomain:            e.RootDomain,
		Status:                models.JobStatus(e.Status),
		PagesCrawled:          e.PagesCrawled,
		PagesTotal:            e.PagesTotal,
		MaxPages:              e.MaxPages,
		CancellationRequested: e.CancellationRequested,
		ErrorMessage:          e.ErrorMessage,
		Attempts:              e.Attempts,
		CreatedAt:             e.CreatedAt,
		UpdatedAt:             e.UpdatedAt,
		StartedAt:             e.StartedAt,
		CompletedAt:           e.CompletedAt,
	}
}

// FromModel converts domain model to JobEntity
func (e *JobEntity) FromModel(job *models.CrawlJob) {
	e.PartitionKey = jobsPartitionKey
	e.ID = job.ID
	e.RootDomain = job.RootDomain
	e.Status = string(job.Status)
	e.PagesCrawled = job.PagesCrawled
	e.PagesTotal = job.PagesTotal
	e.MaxPages = job.MaxPages
	e.CancellationRequested = job.CancellationRequested
	e.ErrorMessage = job.ErrorMessage
	e.Attempts = job.Attempts
	e.CreatedAt = job.CreatedAt
	e.UpdatedAt = job.UpdatedAt
	e.StartedAt = job.StartedAt
	e.CompletedAt = job.CompletedAt
}

// PageResultEntity represents an analyzed page as stored in DynamoDB
type PageResultEntity struct {
	JobID            string        `dynamodbav:"job_id"`
	URL              string        `dynamodbav:"url"`
	StatusCode       int           `dynamodbav:"status_code"`
	Title            string        `dynamodbav:"title"`
	MetaDescription  string        `dynamodbav:"meta_description"`
	H1Tags           []string      `dynamodbav:"h1_tags"`
	WordCount        int           `dynamodbav:"word_count"`
	MobileFriendly   bool          `dynamodbav:"mobile_friendly"`
	HasSSL           bool          `dynamodbav:"has_ssl"`
	CanonicalURL     string        `dynamodbav:"canonical_url"`
	SEOScore         int           `dynamodbav:"seo_score"`
	ReadabilityScore float64       `dynamodbav:"readability_score"`
	ReadabilityGrade string        `dynamodbav:"readability_grade"`
	Issues           []IssueEntity `dynamodbav:"issues"`
	FetchedAt        time.Time     `dynamodbav:"fetched_at"`
	ResponseTimeMs   int64         `dynamodbav:"response_time_ms"`
}

// ToModel converts PageResultEntity to domain model
func (e *PageResultEntity) ToModel() *models.PageResult {
	issues := make([]models.Issue, 0, len(e.Issues))
	for _, issue := range e.Issues {
		issues = append(issues, *issue.ToModel())
	}

	return &models.PageResult{
		URL:              e.URL,
		StatusCode:       e.StatusCode,
		Title:            e.Title,
		MetaDescription:  e.MetaDescription,
		H1Tags:           e.H1Tags,
		WordCount:        e.WordCount,
		MobileFriendly:   e.MobileFriendly,
		HasSSL:           e.HasSSL,
		CanonicalURL:     e.CanonicalURL,
		SEOScore:         e.SEOScore,
		ReadabilityScore: e.ReadabilityScore,
		ReadabilityGrade: e.ReadabilityGrade,
		Issues:           issues,
		FetchedAt:        e.FetchedAt,
		ResponseTimeMs:   e.ResponseTimeMs,
	}
}

// FromModel converts domain model to PageResultEntity
func (e *PageResultEntity) FromModel(jobID string, page *models.PageResult) {
	e.JobID = jobID
	e.URL = page.URL
	e.StatusCode = page.StatusCode
	e.Title = page.Title
	e.MetaDescription = page.MetaDescription
	e.H1Tags = page.H1Tags
	e.WordCount = page.WordCount
	e.MobileFriendly = page.MobileFriendly
	e.HasSSL = page.HasSSL
	e.CanonicalURL = page.CanonicalURL
	e.SEOScore = page.SEOScore
	e.ReadabilityScore = page.ReadabilityScore
	e.ReadabilityGrade = page.ReadabilityGrade
	e.FetchedAt = page.FetchedAt
	e.ResponseTimeMs = page.ResponseTimeMs

	e.Issues = make([]IssueEntity, 0, len(page.Issues))
	for _, issue := range page.Issues {
		entity := IssueEntity{}
		entity.FromModel(&issue)
		e.Issues = append(e.Issues, entity)
	}
}

// IssueEntity represents an SEO issue as stored in DynamoDB
type IssueEntity struct {
	Type             string `dynamodbav:"type"`
	Severity         string `dynamodbav:"severity"`
	Message          string `dynamodbav:"message"`
	SimpleMessage    string `dynamodbav:"simple_message"`
	Suggestion       string `dynamodbav:"suggestion"`
	SimpleSuggestion string `dynamodbav:"simple_suggestion"`
}

// ToModel converts IssueEntity to domain model
func (e *IssueEntity) ToModel() *models.Issue {
	return &models.Issue{
		Type:             e.Type,
		Severity:         models.Severity(e.Severity),
		Message:          e.Message,
		SimpleMessage:    e.SimpleMessage,
		Suggestion:       e.Suggestion,
		SimpleSuggestion: e.SimpleSuggestion,
	}
}

// FromModel converts domain model to IssueEntity
func (e *IssueEntity) FromModel(issue *models.Issue) {
	e.Type = issue.Type
	e.Severity = string(issue.Severity)
	e.Message = issue.Message
	e.SimpleMessage = issue.SimpleMessage
	e.Suggestion = issue.Suggestion
	e.SimpleSuggestion = issue.SimpleSuggestion
}

// ReportEntity represents a finished crawl's summary snapshot as stored in
// DynamoDB. Pages live in their own table, so the full report is composed
// from job, pages and this snapshot on read.
type ReportEntity struct {
	JobID       string              `dynamodbav:"job_id"`
	RootDomain  string              `dynamodbav:"root_domain"`
	Status      string              `dynamodbav:"status"`
	Summary     ReportSummaryEntity `dynamodbav:"summary"`
	GeneratedAt time.Time           `dynamodbav:"generated_at"`
}

// ReportSummaryEntity holds aggregate counters for a report
type ReportSummaryEntity struct {
	AvgScore       float64 `dynamodbav:"avg_score"`
	TotalIssues    int     `dynamodbav:"total_issues"`
	CriticalIssues int     `dynamodbav:"critical_issues"`
	WarningIssues  int     `dynamodbav:"warning_issues"`
	InfoIssues     int     `dynamodbav:"info_issues"`
	PagesAnalyzed  int     `dynamodbav:"pages_analyzed"`
}

// ToSummary converts the stored snapshot to the domain summary
func (e *ReportEntity) ToSummary() models.ReportSummary {
	return models.ReportSummary{
		AvgScore:       e.Summary.AvgScore,
		TotalIssues:    e.Summary.TotalIssues,
		CriticalIssues: e.Summary.CriticalIssues,
		WarningIssues:  e.Summary.WarningIssues,
		InfoIssues:     e.Summary.InfoIssues,
		PagesAnalyzed:  e.Summary.PagesAnalyzed,
	}
}

// FromModel converts a finished report to its stored snapshot
func (e *ReportEntity) FromModel(report *models.CrawlReport) {
	e.JobID = report.CrawlJob.ID
	e.RootDomain = report.CrawlJob.RootDomain
	e.Status = string(report.CrawlJob.Status)
	e.Summary = ReportSummaryEntity{
		AvgScore:       report.Summary.AvgScore,
		TotalIssues:    report.Summary.TotalIssues,
		CriticalIssues: report.Summary.CriticalIssues,
		WarningIssues:  report.Summary.WarningIssues,
		InfoIssues:     report.Summary.InfoIssues,
		PagesAnalyzed:  report.Summary.PagesAnalyzed,
	}
	e.GeneratedAt = report.CrawlJob.UpdatedAt
}
