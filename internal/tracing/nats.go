package tracing

import (
	"context"

	"github.com/nats-io/nats.go"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// InjectNATSHeaders copies the active trace context into the message headers
// so the subscriber side can continue the same trace.
func InjectNATSHeaders(ctx context.Context, msg *nats.Msg) {
	if msg.Header == nil {
		msg.Header = make(nats.Header)
	}
	GetPropagator().Inject(ctx, &natsHeaderCarrier{msg.Header})
}

// ExtractNATSHeaders resumes the trace context carried in the message
// headers, or returns ctx unchanged for messages without one.
func ExtractNATSHeaders(ctx context.Context, msg *nats.Msg) context.Context {
	if msg.Header == nil {
		return ctx
	}
	return GetPropagator().Extract(ctx, &natsHeaderCarrier{msg.Header})
}

// StartNATSPublishSpan opens a producer span for one published message.
func StartNATSPublishSpan(ctx context.Context, subject string) (context.Context, trace.Span) {
	ctx, span := StartSpan(ctx, "nats.publish "+subject)
	span.SetAttributes(
		attribute.String("messaging.system", "nats"),
		attribute.String("messaging.operation", "publish"),
		attribute.String("messaging.destination.name", subject),
	)
	return ctx, span
}

// StartNATSDeliverSpan opens a consumer span for one delivered message.
func StartNATSDeliverSpan(ctx context.Context, subject string) (context.Context, trace.Span) {
	ctx, span := StartSpan(ctx, "nats.deliver "+subject)
	span.SetAttributes(
		attribute.String("messaging.system", "nats"),
		attribute.String("messaging.operation", "deliver"),
		attribute.String("messaging.destination.name", subject),
	)
	return ctx, span
}

// natsHeaderCarrier adapts nats.Header to the propagator's carrier interface.
type natsHeaderCarrier struct {
	header nats.Header
}

func (n *natsHeaderCarrier) Get(key string) string {
	return n.header.Get(key)
}

func (n *natsHeaderCarrier) Set(key, value string) {
	n.header.Set(key, value)
}

func (n *natsHeaderCarrier) Keys() []string {
	keys := make([]string, 0, len(n.header))
	for k := range n.header {
		keys = append(keys, k)
	}
	return keys
}
