package otel

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "pane-columns"

// Operation outcomes.
const (
	OutcomeApplied = "applied"
	OutcomeNoop    = "noop"
	OutcomeError   = "error"
)

// Metrics holds the counters recorded by column operations.
// A nil *Metrics records nothing.
type Metrics struct {
	// Operations is partitioned by operation name and outcome.
	Operations metric.Int64Counter
	// Swaps counts swap-pane commands issued during reconciliation.
	Swaps metric.Int64Counter
	// ParseErrors is partitioned by kind: syntax, checksum.
	ParseErrors metric.Int64Counter
}

// NewMetrics creates the instruments on the global MeterProvider.
func NewMetrics() (*Metrics, error) {
	meter := otel.Meter(meterName)
	m := &Metrics{}
	var err error

	m.Operations, err = meter.Int64Counter("column.operations",
		metric.WithDescription("Column operations partitioned by operation and outcome (applied, noop, error)"))
	if err != nil {
		return nil, err
	}

	m.Swaps, err = meter.Int64Counter("column.swaps",
		metric.WithDescription("swap-pane commands issued while reconciling live pane order"),
		metric.WithUnit("{command}"))
	if err != nil {
		return nil, err
	}

	m.ParseErrors, err = meter.Int64Counter("layout.parse_errors",
		metric.WithDescription("Layout strings rejected by the parser, partitioned by kind (syntax, checksum)"))
	if err != nil {
		return nil, err
	}

	return m, nil
}

// RecordOperation counts one finished operation.
func (m *Metrics) RecordOperation(ctx context.Context, operation, outcome string) {
	if m == nil {
		return
	}
	m.Operations.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.String("outcome", outcome),
	))
}

// RecordSwaps counts issued swap commands.
func (m *Metrics) RecordSwaps(ctx context.Context, n int) {
	if m == nil || n == 0 {
		return
	}
	m.Swaps.Add(ctx, int64(n))
}

// RecordParseError counts a rejected layout string.
func (m *Metrics) RecordParseError(ctx context.Context, kind string) {
	if m == nil {
		return
	}
	m.ParseErrors.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", kind)))
}
