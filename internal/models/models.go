package models

import (
	"time"
)

// CrawlJob tracks one crawl run over a domain.
type CrawlJob struct {
	ID                    string     `json:"id"`
	RootDomain            string     `json:"root_domain"`
	Status                JobStatus  `json:"status"`
	PagesCrawled          int        `json:"pages_crawled"`
	PagesTotal            *int       `json:"pages_total"`
	MaxPages              int        `json:"max_pages"`
	CancellationRequested bool       `json:"cancellation_requested"`
	ErrorMessage          string     `json:"error_message,omitempty"`
	Attempts              int        `json:"attempts"`
	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at"`
	StartedAt             *time.Time `json:"started_at"`
	CompletedAt           *time.Time `json:"completed_at"`
}

// JobStatus represents the lifecycle state of a crawl job
type JobStatus string

const (
	JobStatusPending   JobStatus = "pending"
	JobStatusRunning   JobStatus = "running"
	JobStatusCompleted JobStatus = "completed"
	JobStatusFailed    JobStatus = "failed"
	JobStatusCancelled JobStatus = "cancelled"
)

// IsTerminal reports whether a job in this status can never change again.
func (s JobStatus) IsTerminal() bool {
	return s == JobStatusCompleted || s == JobStatusFailed || s == JobStatusCancelled
}

// Severity classifies how badly an SEO issue hurts a page.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
	SeverityInfo     Severity = "info"
)

// Issue is a single rule violation found on a page. Every rule carries both a
// technical and a plain-language wording.
type Issue struct {
	Type             string   `json:"type"`
	Severity         Severity `json:"severity"`
	Message          string   `json:"message"`
	SimpleMessage    string   `json:"simple_message"`
	Suggestion       string   `json:"suggestion"`
	SimpleSuggestion string   `json:"simple_suggestion"`
}

// PageResult is one fetched-and-scored page. Never mutated after creation.
type PageResult struct {
	URL              string    `json:"url"`
	StatusCode       int       `json:"status_code"`
	Title            string    `json:"title"`
	MetaDescription  string    `json:"meta_description"`
	H1Tags           []string  `json:"h1_tags"`
	WordCount        int       `json:"word_count"`
	MobileFriendly   bool      `json:"mobile_friendly"`
	HasSSL           bool      `json:"has_ssl"`
	CanonicalURL     string    `json:"canonical_url,omitempty"`
	SEOScore         int       `json:"seo_score"`
	ReadabilityScore float64   `json:"readability_score"`
	ReadabilityGrade string    `json:"readability_grade"`
	Issues           []Issue   `json:"issues"`
	FetchedAt        time.Time `json:"fetched_at"`
	ResponseTimeMs   int64     `json:"response_time_ms"`
}

// ReportSummary holds aggregate statistics derived from a report's pages.
type ReportSummary struct {
	AvgScore       float64 `json:"avg_score"`
	TotalIssues    int     `json:"total_issues"`
	CriticalIssues int     `json:"critical_issues"`
	WarningIssues  int     `json:"warning_issues"`
	InfoIssues     int     `json:"info_issues"`
	PagesAnalyzed  int     `json:"pages_analyzed"`
}

// CrawlReport is the aggregate view over a finished job. Materialized once
// when the job reaches a terminal state, immutable afterwards.
type CrawlReport struct {
	CrawlJob CrawlJob      `json:"crawl_job"`
	Pages    []PageResult  `json:"pages"`
	Summary  ReportSummary `json:"summary"`
}

// BuildReport assembles a report, recomputing the summary from the pages.
func BuildReport(job CrawlJob, pages []PageResult) CrawlReport {
	var summary ReportSummary
	summary.PagesAnalyzed = len(pages)

	var scoreSum int
	for _, p := range pages {
		scoreSum += p.SEOScore
		summary.TotalIssues += len(p.Issues)
		for _, issue := range p.Issues {
			switch issue.Severity {
			case SeverityCritical:
				summary.CriticalIssues++
			case SeverityWarning:
				summary.WarningIssues++
			case SeverityInfo:
				summary.InfoIssues++
			}
		}
	}
	if len(pages) > 0 {
		summary.AvgScore = float64(scoreSum) / float64(len(pages))
	}

	return CrawlReport{
		CrawlJob: job,
		Pages:    pages,
		Summary:  summary,
	}
}
