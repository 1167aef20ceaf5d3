package metrics

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	apperrors "github.com/allisson/coffeeshop/internal/errors"
)

// Operation outcomes used as the "outcome" label.
const (
	OutcomeSuccess  = "success"
	OutcomeNotFound = "not_found"
	OutcomeInvalid  = "invalid"
	OutcomeError    = "error"
)

// BusinessMetrics records drink menu operations.
type BusinessMetrics interface {
	// RecordOperation counts one operation (e.g. "drink_create") and observes its
	// duration. The outcome label is derived from err.
	RecordOperation(ctx context.Context, operation string, duration time.Duration, err error)

	// RecordMenuSize reports how many drinks the menu held when it was last listed.
	RecordMenuSize(ctx context.Context, drinks int)
}

// Outcome classifies err for the outcome label.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeSuccess
	case apperrors.Is(err, apperrors.ErrNotFound):
		return OutcomeNotFound
	case apperrors.Is(err, apperrors.ErrInvalidInput):
		return OutcomeInvalid
	default:
		return OutcomeError
	}
}

type businessMetrics struct {
	operations metric.Int64Counter
	durations  metric.Float64Histogram
	menuSize   metric.Int64Gauge
}

// NewBusinessMetrics creates the menu instruments, prefixed with namespace
// (e.g. "coffeeshop_operations_total").
func NewBusinessMetrics(meterProvider metric.MeterProvider, namespace string) (BusinessMetrics, error) {
	meter := meterProvider.Meter(namespace)

	operations, errCounter := meter.Int64Counter(
		fmt.Sprintf("%s_operations_total", namespace),
		metric.WithDescription("Drink menu operations by outcome"),
		metric.WithUnit("{operation}"),
	)
	durations, errHisto := meter.Float64Histogram(
		fmt.Sprintf("%s_operation_duration_seconds", namespace),
		metric.WithDescription("Drink menu operation latency"),
		metric.WithUnit("s"),
	)
	menuSize, errGauge := meter.Int64Gauge(
		fmt.Sprintf("%s_menu_drinks", namespace),
		metric.WithDescription("Drinks on the menu at the last listing"),
		metric.WithUnit("{drink}"),
	)
	if err := errors.Join(errCounter, errHisto, errGauge); err != nil {
		return nil, fmt.Errorf("failed to create business instruments: %w", err)
	}

	return &businessMetrics{
		operations: operations,
		durations:  durations,
		menuSize:   menuSize,
	}, nil
}

func (b *businessMetrics) RecordOperation(
	ctx context.Context,
	operation string,
	duration time.Duration,
	err error,
) {
	attrs := metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.String("outcome", Outcome(err)),
	)
	b.operations.Add(ctx, 1, attrs)
	b.durations.Record(ctx, duration.Seconds(), attrs)
}

func (b *businessMetrics) RecordMenuSize(ctx context.Context, drinks int) {
	b.menuSize.Record(ctx, int64(drinks))
}

// NoOpBusinessMetrics discards every measurement. Used when metrics are disabled.
type NoOpBusinessMetrics struct{}

// NewNoOpBusinessMetrics creates a no-op BusinessMetrics implementation.
func NewNoOpBusinessMetrics() BusinessMetrics {
	return &NoOpBusinessMetrics{}
}

func (n *NoOpBusinessMetrics) RecordOperation(context.Context, string, time.Duration, error) {}

func (n *NoOpBusinessMetrics) RecordMenuSize(context.Context, int) {}
