package messagebus

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"seocrawler/internal/models"
	"seocrawler/internal/tracing"

	"github.com/nats-io/nats.go"
)

//go:generate mockgen -destination=../mocks/mock_messagebus.go -package=mocks . MessageBusInterface

type MessageBusInterface interface {
	PublishCrawlMessage(ctx context.Context, m CrawlMessage) error
	PublishJobUpdate(ctx context.Context, m JobUpdateMessage) error
	PublishProgressUpdate(ctx context.Context, m ProgressMessage) error
	PublishReportReady(ctx context.Context, m ReportReadyMessage) error
	SubscribeToCrawlMessage(handler func(ctx context.Context, m *nats.Msg)) (*nats.Subscription, error)
	SubscribeToJobUpdate(handler func(ctx context.Context, m *nats.Msg)) (*nats.Subscription, error)
	SubscribeToProgressUpdate(handler func(ctx context.Context, m *nats.Msg)) (*nats.Subscription, error)
	SubscribeToReportReady(handler func(ctx context.Context, m *nats.Msg)) (*nats.Subscription, error)
}

type MessageType string

const (
	CrawlMessageType       MessageType = "crawl.start"
	JobUpdateMessageType   MessageType = "crawl.job_update"
	ProgressMessageType    MessageType = "crawl.progress"
	ReportReadyMessageType MessageType = "crawl.report_ready"
)

type CrawlMessage struct {
	Type       MessageType `json:"type"`
	JobID      string      `json:"job_id"`
	RootDomain string      `json:"root_domain"`
	MaxPages   int         `json:"max_pages"`
}

type JobUpdateMessage struct {
	Type   MessageType `json:"type"`
	JobID  string      `json:"job_id"`
	Status string      `json:"status"`
	Error  string      `json:"error,omitempty"`
}

type ProgressMessage struct {
	Type         MessageType `json:"type"`
	JobID        string      `json:"job_id"`
	PagesCrawled int         `json:"pages_crawled"`
	PagesTotal   *int        `json:"pages_total,omitempty"`
}

type ReportReadyMessage struct {
	Type    MessageType           `json:"type"`
	JobID   string                `json:"job_id"`
	Status  string                `json:"status"`
	Summary *models.ReportSummary `json:"summary,omitempty"`
}

// MessageBus provides a NATS message bus for publishing and subscribing to messages
type MessageBus struct {
	nc      *nats.Conn
	metrics MetricsCollector
}

// New creates a new message bus
func New(nc *nats.Conn, metrics MetricsCollector) *MessageBus {
	if metrics == nil {
		metrics = NoOpMetricsCollector{}
	}
	return &MessageBus{
		nc:      nc,
		metrics: metrics,
	}
}

// PublishCrawlMessage enqueues a crawl job for a worker to pick up
func (b *MessageBus) PublishCrawlMessage(ctx context.Context, m CrawlMessage) (err error) {
	defer func() {
		b.metrics.RecordNATSPublish(string(CrawlMessageType), err == nil)
	}()

	m.Type = CrawlMessageType
	data, err := json.Marshal(m)
	if err != nil {
		log.Printf("Failed to marshal crawl message: %v", err)
		return err
	}

	err = b.publishMsg(ctx, data, CrawlMessageType)
	if err != nil {
		log.Printf("Failed to publish crawl message: %v", err)
	}
	return err
}

// PublishJobUpdate publishes a job status transition to NATS
func (b *MessageBus) PublishJobUpdate(ctx context.Context, m JobUpdateMessage) (err error) {
	defer func() {
		b.metrics.RecordNATSPublish(string(JobUpdateMessageType), err == nil)
	}()

	m.Type = JobUpdateMessageType
	data, err := json.Marshal(m)
	if err != nil {
		log.Printf("Failed to marshal job update: %v", err)
		return err
	}

	err = b.publishMsg(ctx, data, JobUpdateMessageType)
	if err != nil {
		log.Printf("Failed to publish job update: %v", err)
	}
	return err
}

// PublishProgressUpdate publishes crawl progress counters to NATS
func (b *MessageBus) PublishProgressUpdate(ctx context.Context, m ProgressMessage) (err error) {
	defer func() {
		b.metrics.RecordNATSPublish(string(ProgressMessageType), err == nil)
	}()

	m.Type = ProgressMessageType
	data, err := json.Marshal(m)
	if err != nil {
		log.Printf("Failed to marshal progress update: %v", err)
		return err
	}

	err = b.publishMsg(ctx, data, ProgressMessageType)
	if err != nil {
		log.Printf("Failed to publish progress update: %v", err)
	}
	return err
}

// PublishReportReady publishes a report ready notification to NATS
func (b *MessageBus) PublishReportReady(ctx context.Context, m ReportReadyMessage) (err error) {
	defer func() {
		b.metrics.RecordNATSPublish(string(ReportReadyMessageType), err == nil)
	}()

	m.Type = ReportReadyMessageType
	data, err := json.Marshal(m)
	if err != nil {
		log.Printf("Failed to marshal report ready message: %v", err)
		return err
	}

	err = b.publishMsg(ctx, data, ReportReadyMessageType)
	if err != nil {
		log.Printf("Failed to publish report ready message: %v", err)
	}
	return err
}

// publishMsg publishes a message to NATS with trace context in headers
func (b *MessageBus) publishMsg(ctx context.Context, data []byte, messageType MessageType) (err error) {
	ctx, span := tracing.StartNATSPublishSpan(ctx, string(messageType))
	defer span.End()

	msg := &nats.Msg{
		Subject: string(messageType),
		Data:    data,
		Header:  make(nats.Header),
	}

	tracing.InjectNATSHeaders(ctx, msg)

	err = b.nc.PublishMsg(msg)
	if err != nil {
		tracing.SetError(ctx, err)
	}
	return err
}

// SubscribeToCrawlMessage subscribes to crawl job submissions
func (b *MessageBus) SubscribeToCrawlMessage(handler func(ctx context.Context, m *nats.Msg)) (*nats.Subscription, error) {
	h := b.wrapHandler(CrawlMessageType, handler)
	return b.nc.Subscribe(string(CrawlMessageType), h)
}

// SubscribeToJobUpdate subscribes to job status transitions
func (b *MessageBus) SubscribeToJobUpdate(handler func(ctx context.Context, m *nats.Msg)) (*nats.Subscription, error) {
	h := b.wrapHandler(JobUpdateMessageType, handler)
	return b.nc.Subscribe(string(JobUpdateMessageType), h)
}

// SubscribeToProgressUpdate subscribes to crawl progress updates
func (b *MessageBus) SubscribeToProgressUpdate(handler func(ctx context.Context, m *nats.Msg)) (*nats.Subscription, error) {
	h := b.wrapHandler(ProgressMessageType, handler)
	return b.nc.Subscribe(string(ProgressMessageType), h)
}

// SubscribeToReportReady subscribes to report ready notifications
func (b *MessageBus) SubscribeToReportReady(handler func(ctx context.Context, m *nats.Msg)) (*nats.Subscription, error) {
	h := b.wrapHandler(ReportReadyMessageType, handler)
	return b.nc.Subscribe(string(ReportReadyMessageType), h)
}

// wrapHandler wraps the original handler to automatically inject trace context and record receive metrics
func (b *MessageBus) wrapHandler(messageType MessageType, handler func(ctx context.Context, m *nats.Msg)) nats.MsgHandler {
	return func(m *nats.Msg) {
		ctx := tracing.ExtractNATSHeaders(context.Background(), m)
		ctx, span := tracing.StartNATSDeliverSpan(ctx, m.Subject)
		defer span.End()

		start := time.Now()
		defer func() {
			if r := recover(); r != nil {
				// If handler panics, record as error
				b.metrics.RecordNATSReceive(string(messageType), time.Since(start), false)
				panic(r)
			} else {
				// Record successful processing
				b.metrics.RecordNATSReceive(string(messageType), time.Since(start), true)
			}
		}()

		handler(ctx, m)
	}
}
