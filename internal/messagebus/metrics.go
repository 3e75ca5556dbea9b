package messagebus

import "time"

// MetricsCollector receives publish and delivery outcomes. ServiceMetrics
// satisfies it; tests and wiring that do not care pass the no-op.
type MetricsCollector interface {
	RecordNATSPublish(messageType string, success bool)
	RecordNATSReceive(messageType string, duration time.Duration, success bool)
}

// NoOpMetricsCollector discards every observation.
type NoOpMetricsCollector struct{}

func (NoOpMetricsCollector) RecordNATSPublish(messageType string, success bool) {}
func (NoOpMetricsCollector) RecordNATSReceive(messageType string, duration time.Duration, success bool) {
}
