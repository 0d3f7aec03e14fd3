package telemetry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"customerapp/internal/core/domain"
	"customerapp/internal/core/port"
)

const tracerName = "customerapp"

// OTELProbe records spans through the global tracer provider and feeds the
// optional application metrics.
type OTELProbe struct {
	logger  *otelzap.Logger
	metrics port.Metrics
}

func NewOTELProbe(logger *otelzap.Logger, metrics port.Metrics) port.Telemetry {
	return &OTELProbe{
		logger:  logger,
		metrics: metrics,
	}
}

func (p *OTELProbe) StartRepositorySpan(ctx context.Context, operation string, entity string, attrs []attribute.KeyValue) (context.Context, trace.Span) {
	spanName := fmt.Sprintf("repository.%s.%s", entity, operation)

	standardAttrs := []attribute.KeyValue{
		attribute.String("repository.entity", entity),
		attribute.String("repository.operation", operation),
		attribute.String("component", "repository"),
	}
	standardAttrs = append(standardAttrs, attrs...)

	return otel.Tracer(tracerName).Start(ctx, spanName, trace.WithAttributes(standardAttrs...))
}

func (p *OTELProbe) StartServiceSpan(ctx context.Context, service string, operation string, attrs []attribute.KeyValue) (context.Context, trace.Span) {
	spanName := fmt.Sprintf("service.%s.%s", service, operation)

	standardAttrs := []attribute.KeyValue{
		attribute.String("service.name", service),
		attribute.String("service.operation", operation),
		attribute.String("component", "service"),
	}
	standardAttrs = append(standardAttrs, attrs...)

	return otel.Tracer(tracerName).Start(ctx, spanName, trace.WithAttributes(standardAttrs...))
}

func (p *OTELProbe) RecordRepositoryOperation(ctx context.Context, operation string, entity string, duration time.Duration, err error) {
	span := trace.SpanFromContext(ctx)

	span.SetAttributes(
		attribute.Int64("duration_ns", duration.Nanoseconds()),
		attribute.Bool("has_error", err != nil),
	)

	// Not-found and unique violations are outcomes the service answers as 404 and 409.
	if err != nil && !errors.Is(err, domain.ErrCustomerNotFound) && !domain.IsConflictError(err) {
		span.SetStatus(codes.Error, err.Error())
		span.RecordError(err)
		p.logger.Ctx(ctx).Error("repository operation failed",
			zap.String("operation", operation),
			zap.String("entity", entity),
			zap.Duration("duration", duration),
			zap.Error(err))
		return
	}

	span.SetStatus(codes.Ok, "")
}

func (p *OTELProbe) RecordServiceOperation(ctx context.Context, service string, operation string, duration time.Duration, err error) {
	span := trace.SpanFromContext(ctx)

	span.SetAttributes(
		attribute.Int64("duration_ns", duration.Nanoseconds()),
		attribute.Bool("has_error", err != nil),
	)

	outcome := outcomeOf(err)
	if p.metrics != nil {
		p.metrics.RecordCustomerOperation(ctx, operation, outcome)
	}

	if outcome == "error" {
		span.SetStatus(codes.Error, err.Error())
		span.RecordError(err)
		p.logger.Ctx(ctx).Error("service operation failed",
			zap.String("service", service),
			zap.String("operation", operation),
			zap.Duration("duration", duration),
			zap.Error(err))
		return
	}

	span.SetAttributes(attribute.String("outcome", outcome))
	span.SetStatus(codes.Ok, "")
}

func (p *OTELProbe) RecordBusinessEvent(ctx context.Context, event string, entity string, entityID string, metadata map[string]interface{}) {
	span := trace.SpanFromContext(ctx)

	span.AddEvent(event, trace.WithAttributes(
		attribute.String("entity", entity),
		attribute.String("entity_id", entityID),
	))

	fields := []zap.Field{
		zap.String("event", event),
		zap.String("entity", entity),
		zap.String("entity_id", entityID),
	}
	for key, value := range metadata {
		fields = append(fields, zap.Any(key, value))
	}

	p.logger.Ctx(ctx).Info("business event recorded", fields...)
}

func (p *OTELProbe) RecordBatchSize(ctx context.Context, requested int, distinct int) {
	trace.SpanFromContext(ctx).SetAttributes(
		attribute.Int("batch.requested", requested),
		attribute.Int("batch.distinct", distinct),
	)

	if p.metrics != nil {
		p.metrics.ObserveBatchSize(ctx, distinct)
	}
}

// outcomeOf classifies a service error into a metric label. Client errors
// are not failures of the service.
func outcomeOf(err error) string {
	switch {
	case err == nil:
		return "ok"
	case domain.IsValidationError(err):
		return "invalid"
	case domain.IsConflictError(err):
		return "conflict"
	case errors.Is(err, domain.ErrCustomerNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrBatchEmpty), errors.Is(err, domain.ErrBatchTooLarge):
		return "rejected"
	default:
		return "error"
	}
}
