package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	apiServiceName = "api"
)

type APIMetrics struct {
	*ServiceMetrics

	CrawlJobsCreatedTotal       *prometheus.CounterVec
	CrawlJobCreationDuration    *prometheus.HistogramVec
	CancellationsRequestedTotal prometheus.Counter
}

func NewAPIMetrics() *APIMetrics {
	baseMetrics := NewServiceMetrics(apiServiceName)

	apiMetrics := &APIMetrics{
		ServiceMetrics: baseMetrics,

		CrawlJobsCreatedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "crawl_jobs_created_total",
				Help:        "Total number of crawl jobs created",
				ConstLabels: prometheus.Labels{LabelService: apiServiceName},
			},
			[]string{LabelStatus},
		),

		CrawlJobCreationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:        "crawl_job_creation_duration_seconds",
				Help:        "Time taken to create a crawl job in seconds",
				Buckets:     prometheus.DefBuckets,
				ConstLabels: prometheus.Labels{LabelService: apiServiceName},
			},
			[]string{},
		),

		CancellationsRequestedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name:        "crawl_job_cancellations_requested_total",
				Help:        "Total number of crawl job cancellations requested",
				ConstLabels: prometheus.Labels{LabelService: apiServiceName},
			},
		),
	}

	return apiMetrics
}

func (m *APIMetrics) MustRegisterAPI() {
	m.ServiceMetrics.MustRegister()

	prometheus.MustRegister(
		m.CrawlJobsCreatedTotal,
		m.CrawlJobCreationDuration,
		m.CancellationsRequestedTotal,
	)
}

func (m *APIMetrics) RecordJobCreation(success bool, duration time.Duration) {
	status := "success"
	if !success {
		status = "error"
	}
	m.CrawlJobsCreatedTotal.WithLabelValues(status).Inc()
	m.CrawlJobCreationDuration.WithLabelValues().Observe(duration.Seconds())
}

func (m *APIMetrics) RecordCancellationRequest() {
	m.CancellationsRequestedTotal.Inc()
}
