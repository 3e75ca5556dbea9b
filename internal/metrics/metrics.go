package metrics

import (
	"net/http"
	"strconv"
	"time"

	"seocrawler/internal/middleware"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/yousuf64/shift"
)

const (
	LabelService     = "service"
	LabelMethod      = "method"
	LabelEndpoint    = "endpoint"
	LabelStatus      = "status"
	LabelOperation   = "operation"
	LabelTable       = "table"
	LabelJobStatus   = "job_status"
	LabelOutcome     = "outcome"
	LabelMessageType = "message_type"
)

// ServiceMetrics carries the instruments every service exposes regardless of
// role: the HTTP surface, the NATS bus, DynamoDB calls, and process info.
// APIMetrics and WorkerMetrics embed it and add their own instruments.
type ServiceMetrics struct {
	// HTTP
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight *prometheus.GaugeVec

	// System
	ServiceUptime prometheus.Gauge
	ServiceInfo   *prometheus.GaugeVec

	// Message bus
	NATSMessagesPublished *prometheus.CounterVec
	NATSMessagesReceived  *prometheus.CounterVec
	NATSMessageDuration   *prometheus.HistogramVec

	// Database
	DatabaseOperationsTotal   *prometheus.CounterVec
	DatabaseOperationDuration *prometheus.HistogramVec

	uptimeTicker *time.Ticker
}

// NewServiceMetrics builds the shared instrument set. Every instrument is
// stamped with the service name so the api and worker processes can be told
// apart on a shared dashboard.
func NewServiceMetrics(serviceName string) *ServiceMetrics {
	stamp := prometheus.Labels{LabelService: serviceName}

	return &ServiceMetrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "http_requests_total",
				Help:        "HTTP requests handled, by method, endpoint, and status code",
				ConstLabels: stamp,
			},
			[]string{LabelMethod, LabelEndpoint, LabelStatus},
		),

		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:        "http_request_duration_seconds",
				Help:        "Wall time spent serving each HTTP request",
				Buckets:     prometheus.DefBuckets,
				ConstLabels: stamp,
			},
			[]string{LabelMethod, LabelEndpoint},
		),

		HTTPRequestsInFlight: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name:        "http_requests_in_flight",
				Help:        "HTTP requests currently being served",
				ConstLabels: stamp,
			},
			[]string{LabelMethod, LabelEndpoint},
		),

		ServiceUptime: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name:        "service_uptime_seconds",
				Help:        "Seconds since this process started serving",
				ConstLabels: stamp,
			},
		),

		ServiceInfo: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name:        "service_info",
				Help:        "Build and runtime versions, value always 1",
				ConstLabels: stamp,
			},
			[]string{"version", "go_version"},
		),

		NATSMessagesPublished: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "nats_messages_published_total",
				Help:        "Messages published to the bus, by type and result",
				ConstLabels: stamp,
			},
			[]string{LabelMessageType, LabelStatus},
		),

		NATSMessagesReceived: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "nats_messages_received_total",
				Help:        "Messages delivered off the bus, by type and result",
				ConstLabels: stamp,
			},
			[]string{LabelMessageType, LabelStatus},
		),

		NATSMessageDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:        "nats_message_processing_duration_seconds",
				Help:        "Handler time per delivered message",
				Buckets:     prometheus.DefBuckets,
				ConstLabels: stamp,
			},
			[]string{LabelMessageType},
		),

		DatabaseOperationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "database_operations_total",
				Help:        "DynamoDB calls, by operation, table, and result",
				ConstLabels: stamp,
			},
			[]string{LabelOperation, LabelTable, LabelStatus},
		),

		DatabaseOperationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:        "database_operation_duration_seconds",
				Help:        "Wall time per DynamoDB call",
				Buckets:     prometheus.DefBuckets,
				ConstLabels: stamp,
			},
			[]string{LabelOperation, LabelTable},
		),
	}
}

// MustRegister registers the shared instruments with the default registry.
func (m *ServiceMetrics) MustRegister() {
	prometheus.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.HTTPRequestsInFlight,
		m.ServiceUptime,
		m.ServiceInfo,
		m.NATSMessagesPublished,
		m.NATSMessagesReceived,
		m.NATSMessageDuration,
		m.DatabaseOperationsTotal,
		m.DatabaseOperationDuration,
	)
}

// HTTPMiddleware instruments every routed request with count, duration, and
// in-flight gauges.
func (m *ServiceMetrics) HTTPMiddleware(next shift.HandlerFunc) shift.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request, route shift.Route) error {
		start := time.Now()

		m.HTTPRequestsInFlight.WithLabelValues(r.Method, r.URL.Path).Inc()
		defer m.HTTPRequestsInFlight.WithLabelValues(r.Method, r.URL.Path).Dec()

		// The handler writes the status before returning, so capture it here
		rec := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}

		err := next(rec, r, route)

		m.HTTPRequestsTotal.WithLabelValues(r.Method, r.URL.Path, strconv.Itoa(rec.statusCode)).Inc()
		m.HTTPRequestDuration.WithLabelValues(r.Method, r.URL.Path).Observe(time.Since(start).Seconds())

		return err
	}
}

// RecordNATSPublish counts one publish attempt.
func (m *ServiceMetrics) RecordNATSPublish(messageType string, success bool) {
	m.NATSMessagesPublished.WithLabelValues(messageType, statusLabel(success)).Inc()
}

// RecordNATSReceive counts one delivered message and its handler time.
func (m *ServiceMetrics) RecordNATSReceive(messageType string, duration time.Duration, success bool) {
	m.NATSMessagesReceived.WithLabelValues(messageType, statusLabel(success)).Inc()
	m.NATSMessageDuration.WithLabelValues(messageType).Observe(duration.Seconds())
}

// RecordDatabaseOperation counts one DynamoDB call and its wall time.
func (m *ServiceMetrics) RecordDatabaseOperation(operation, table string, start time.Time, err error) {
	m.DatabaseOperationsTotal.WithLabelValues(operation, table, statusLabel(err == nil)).Inc()
	m.DatabaseOperationDuration.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
}

// SetServiceInfo publishes the build and runtime versions.
func (m *ServiceMetrics) SetServiceInfo(version, goVersion string) {
	m.ServiceInfo.WithLabelValues(version, goVersion).Set(1)
}

func statusLabel(success bool) string {
	if success {
		return "success"
	}
	return "error"
}

func (m *ServiceMetrics) startUptimeTracking() {
	startTime := time.Now()

	m.ServiceUptime.Set(0)
	m.uptimeTicker = time.NewTicker(30 * time.Second)

	go func() {
		for range m.uptimeTicker.C {
			m.ServiceUptime.Set(time.Since(startTime).Seconds())
		}
	}()
}

func (m *ServiceMetrics) stopUptimeTracking() {
	if m.uptimeTicker != nil {
		m.uptimeTicker.Stop()
		m.uptimeTicker = nil
	}
}

// StartMetricsServer serves /metrics and /health on a side port and starts
// uptime tracking. The returned server is the caller's to shut down.
func (m *ServiceMetrics) StartMetricsServer(port string) *http.Server {
	router := shift.New()
	router.Use(middleware.CORSMiddleware)

	router.GET("/metrics", func(w http.ResponseWriter, r *http.Request, route shift.Route) error {
		promhttp.Handler().ServeHTTP(w, r)
		return nil
	})

	router.GET("/health", func(w http.ResponseWriter, r *http.Request, route shift.Route) error {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
		return nil
	})

	router.OPTIONS("/*wildcard", middleware.OptionsHandler)

	server := &http.Server{
		Addr:    ":" + port,
		Handler: router.Serve(),
	}

	server.RegisterOnShutdown(func() {
		m.stopUptimeTracking()
	})

	go func() {
		m.startUptimeTracking()

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			panic("Failed to start metrics server: " + err.Error())
		}
	}()

	return server
}

// statusRecorder wraps [http.ResponseWriter] to remember the written status.
type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (rec *statusRecorder) WriteHeader(code int) {
	rec.statusCode = code
	rec.ResponseWriter.WriteHeader(code)
}
