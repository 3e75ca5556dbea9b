package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	workerServiceName = "worker"
)

type WorkerMetricsInterface interface {
	MustRegisterWorker()
	RecordCrawlJob(finalStatus string, duration float64)
	RecordPageFetch(outcome string, duration float64)
	RecordPageAnalysis(duration float64)
	RecordRobotsFetch(success bool)
	SetActiveCrawls(count int)
}

type NoopWorkerMetrics struct{}

func NewNoopWorkerMetrics() WorkerMetricsInterface {
	return &NoopWorkerMetrics{}
}

func (n *NoopWorkerMetrics) MustRegisterWorker()                                 {}
func (n *NoopWorkerMetrics) RecordCrawlJob(finalStatus string, duration float64) {}
func (n *NoopWorkerMetrics) RecordPageFetch(outcome string, duration float64)    {}
func (n *NoopWorkerMetrics) RecordPageAnalysis(duration float64)                 {}
func (n *NoopWorkerMetrics) RecordRobotsFetch(success bool)                      {}
func (n *NoopWorkerMetrics) SetActiveCrawls(count int)                           {}

type WorkerMetrics struct {
	*ServiceMetrics

	CrawlJobsProcessedTotal *prometheus.CounterVec
	CrawlDuration           *prometheus.HistogramVec

	PagesFetchedTotal    *prometheus.CounterVec
	PageFetchDuration    *prometheus.HistogramVec
	PageAnalysisDuration *prometheus.HistogramVec

	RobotsFetchesTotal *prometheus.CounterVec
	ActiveCrawls       prometheus.Gauge
}

func NewWorkerMetrics() *WorkerMetrics {
	baseMetrics := NewServiceMetrics(workerServiceName)

	workerMetrics := &WorkerMetrics{
		ServiceMetrics: baseMetrics,

		CrawlJobsProcessedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "crawl_jobs_processed_total",
				Help:        "Total number of crawl jobs processed by terminal status",
				ConstLabels: prometheus.Labels{LabelService: workerServiceName},
			},
			[]string{LabelJobStatus},
		),

		CrawlDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:        "crawl_duration_seconds",
				Help:        "Total crawl time per job in seconds",
				Buckets:     []float64{1, 5, 15, 30, 60, 120, 300, 600},
				ConstLabels: prometheus.Labels{LabelService: workerServiceName},
			},
			[]string{},
		),

		PagesFetchedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "pages_fetched_total",
				Help:        "Total number of page fetches by outcome",
				ConstLabels: prometheus.Labels{LabelService: workerServiceName},
			},
			[]string{LabelOutcome},
		),

		PageFetchDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:        "page_fetch_duration_seconds",
				Help:        "Page fetch time in seconds",
				Buckets:     prometheus.DefBuckets,
				ConstLabels: prometheus.Labels{LabelService: workerServiceName},
			},
			[]string{LabelOutcome},
		),

		PageAnalysisDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:        "page_analysis_duration_seconds",
				Help:        "Page analysis time in seconds",
				Buckets:     prometheus.DefBuckets,
				ConstLabels: prometheus.Labels{LabelService: workerServiceName},
			},
			[]string{},
		),

		RobotsFetchesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "robots_fetches_total",
				Help:        "Total number of robots.txt fetches",
				ConstLabels: prometheus.Labels{LabelService: workerServiceName},
			},
			[]string{LabelStatus},
		),

		ActiveCrawls: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name:        "active_crawls",
				Help:        "Current number of crawl jobs being processed",
				ConstLabels: prometheus.Labels{LabelService: workerServiceName},
			},
		),
	}

	return workerMetrics
}

func (m *WorkerMetrics) MustRegisterWorker() {
	m.ServiceMetrics.MustRegister()

	prometheus.MustRegister(
		m.CrawlJobsProcessedTotal,
		m.CrawlDuration,
		m.PagesFetchedTotal,
		m.PageFetchDuration,
		m.PageAnalysisDuration,
		m.RobotsFetchesTotal,
		m.ActiveCrawls,
	)
}

func (m *WorkerMetrics) RecordCrawlJob(finalStatus string, duration float64) {
	m.CrawlJobsProcessedTotal.WithLabelValues(finalStatus).Inc()
	m.CrawlDuration.WithLabelValues().Observe(duration)
}

func (m *WorkerMetrics) RecordPageFetch(outcome string, duration float64) {
	m.PagesFetchedTotal.WithLabelValues(outcome).Inc()
	m.PageFetchDuration.WithLabelValues(outcome).Observe(duration)
}

func (m *WorkerMetrics) RecordPageAnalysis(duration float64) {
	m.PageAnalysisDuration.WithLabelValues().Observe(duration)
}

func (m *WorkerMetrics) RecordRobotsFetch(success bool) {
	status := "success"
	if !success {
		status = "error"
	}
	m.RobotsFetchesTotal.WithLabelValues(status).Inc()
}

func (m *WorkerMetrics) SetActiveCrawls(count int) {
	m.ActiveCrawls.Set(float64(count))
}
