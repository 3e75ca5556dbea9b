package tracing

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// DatabaseSpan is a span for one storage call. Close records the outcome and
// ends the span, so callers can defer a single call with their named error.
type DatabaseSpan struct {
	trace.Span

	Close func(error)
}

// StartDatabaseSpan opens a span around a single DynamoDB call.
func StartDatabaseSpan(ctx context.Context, operation, table string) (context.Context, *DatabaseSpan) {
	ctx, span := StartSpan(ctx, "dynamodb."+operation)
	span.SetAttributes(
		attribute.String("db.system", "dynamodb"),
		attribute.String("db.operation", operation),
		attribute.String("db.collection.name", table),
	)
	return ctx, &DatabaseSpan{
		Span: span,
		Close: func(err error) {
			if err != nil {
				SetError(ctx, err)
			}
			span.End()
		},
	}
}
