package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics holds the client-side instruments. A nil *Metrics is valid
// and records nothing, so telemetry stays optional everywhere.
type Metrics struct {
	APIRequestsTotal  metric.Int64Counter
	APIDurationMs     metric.Float64Histogram
	RefreshTotal      metric.Int64Counter
	AvailabilityTotal metric.Int64Counter
}

// InitMetrics initializes the client instruments.
func InitMetrics() (*Metrics, error) {
	meter := otel.Meter("github.com/arun-kumar-js/heal-doc")

	apiRequestsTotal, err := meter.Int64Counter(
		"api_client_requests_total",
		metric.WithDescription("Total number of API requests issued by the client"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, err
	}

	apiDurationMs, err := meter.Float64Histogram(
		"api_client_duration_milliseconds",
		metric.WithDescription("API request duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	refreshTotal, err := meter.Int64Counter(
		"sync_refresh_total",
		metric.WithDescription("Total number of dashboard/appointment refresh passes"),
		metric.WithUnit("{refresh}"),
	)
	if err != nil {
		return nil, err
	}

	availabilityTotal, err := meter.Int64Counter(
		"availability_transitions_total",
		metric.WithDescription("Total number of availability state transitions"),
		metric.WithUnit("{transition}"),
	)
	if err != nil {
		return nil, err
	}

	return &Metrics{
		APIRequestsTotal:  apiRequestsTotal,
		APIDurationMs:     apiDurationMs,
		RefreshTotal:      refreshTotal,
		AvailabilityTotal: availabilityTotal,
	}, nil
}

// RecordAPIRequest records one gateway round-trip.
func (m *Metrics) RecordAPIRequest(ctx context.Context, endpoint, method, outcome string, durationMs float64) {
	if m == nil {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String("endpoint", endpoint),
		attribute.String("http_method", method),
		attribute.String("outcome", outcome),
	}

	m.APIRequestsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.APIDurationMs.Record(ctx, durationMs, metric.WithAttributes(attrs...))
}

// RecordRefresh records a view refresh pass.
func (m *Metrics) RecordRefresh(ctx context.Context, view string) {
	if m == nil {
		return
	}
	m.RefreshTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("view", view),
	))
}

// RecordAvailabilityTransition records a state machine transition.
func (m *Metrics) RecordAvailabilityTransition(ctx context.Context, to string) {
	if m == nil {
		return
	}
	m.AvailabilityTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("to", to),
	))
}
