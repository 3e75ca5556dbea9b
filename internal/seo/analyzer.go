// Package seo turns fetched page bodies into scored PageResults. Analysis is
// pure and deterministic: the same input always produces the same score and
// the same ordered issue list, with no I/O and no wall-clock reads.
package seo

import (
	"strings"
	"time"

	"seocrawler/internal/models"
)

// AnalyzeInput is one fetched page handed to the analyzer.
type AnalyzeInput struct {
	HTML         []byte
	URL          string
	StatusCode   int
	ResponseTime time.Duration
	FetchedAt    time.Time
}

// Analyzer evaluates pages against a fixed rule set.
type Analyzer struct {
	thresholds Thresholds
}

// NewAnalyzer builds an analyzer with the given rule thresholds.
func NewAnalyzer(thresholds Thresholds) *Analyzer {
	return &Analyzer{thresholds: thresholds}
}

// Analyze extracts page features, evaluates the rule table, and produces the
// scored result for one page.
func (a *Analyzer) Analyze(input AnalyzeInput) models.PageResult {
	features := extractFeatures(input.HTML)

	in := ruleInput{
		features:    features,
		hasSSL:      strings.HasPrefix(input.URL, "https://"),
		readability: FleschReadingEase(features.visibleText),
	}

	issues := evaluate(in, a.thresholds)

	return models.PageResult{
		URL:              input.URL,
		StatusCode:       input.StatusCode,
		Title:            features.title,
		MetaDescription:  features.metaDescription,
		H1Tags:           features.h1Tags,
		WordCount:        features.wordCount,
		MobileFriendly:   features.hasViewport,
		HasSSL:           in.hasSSL,
		CanonicalURL:     features.canonicalURL,
		SEOScore:         scoreFor(issues, in, a.thresholds),
		ReadabilityScore: in.readability,
		ReadabilityGrade: ReadabilityGrade(in.readability),
		Issues:           issues,
		FetchedAt:        input.FetchedAt,
		ResponseTimeMs:   input.ResponseTime.Milliseconds(),
	}
}
