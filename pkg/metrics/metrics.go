// Package metrics holds the registrar's business counters and tracing helpers.
// Counters are OpenTelemetry instruments; the server exports them through the
// Prometheus registry next to the client_golang collectors.
package metrics

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "registrar"

// DefaultBuckets provides a common set of histogram buckets in seconds that can
// be reused across the application for latency metrics.
var DefaultBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10} //nolint: gochecknoglobals

// NewMeterProvider creates a meter provider whose readings are exported to
// the given Prometheus registerer and installs it as the global provider.
func NewMeterProvider(registerer prometheus.Registerer) (*sdkmetric.MeterProvider, error) {
	exp, err := otelprom.New(otelprom.WithRegisterer(registerer))
	if err != nil {
		return nil, fmt.Errorf("could not create otel exporter: %w", err)
	}
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(exp))
	otel.SetMeterProvider(mp)

	return mp, nil
}

// Recorder records business events. A nil Recorder records nothing.
type Recorder struct {
	requestsSubmitted metric.Int64Counter
	transitions       metric.Int64Counter
	emailsSent        metric.Int64Counter
	emailFailures     metric.Int64Counter
	rowsLoaded        metric.Int64Counter
	tableLatency      metric.Float64Histogram
}

// NewRecorder creates the counters on the given provider.
func NewRecorder(mp metric.MeterProvider) (*Recorder, error) {
	meter := mp.Meter(instrumentationName)
	r := &Recorder{}

	var err error
	if r.requestsSubmitted, err = meter.Int64Counter("registrar.domain_requests.submitted",
		metric.WithDescription("Domain requests submitted by applicants")); err != nil {
		return nil, fmt.Errorf("could not create counter: %w", err)
	}
	if r.transitions, err = meter.Int64Counter("registrar.domain_requests.transitions",
		metric.WithDescription("Domain request status transitions")); err != nil {
		return nil, fmt.Errorf("could not create counter: %w", err)
	}
	if r.emailsSent, err = meter.Int64Counter("registrar.emails.sent",
		metric.WithDescription("Emails handed to the mail backend")); err != nil {
		return nil, fmt.Errorf("could not create counter: %w", err)
	}
	if r.emailFailures, err = meter.Int64Counter("registrar.emails.failed",
		metric.WithDescription("Emails the mail backend rejected")); err != nil {
		return nil, fmt.Errorf("could not create counter: %w", err)
	}
	if r.rowsLoaded, err = meter.Int64Counter("registrar.migration.rows",
		metric.WithDescription("Rows written by data migration commands")); err != nil {
		return nil, fmt.Errorf("could not create counter: %w", err)
	}
	if r.tableLatency, err = meter.Float64Histogram("registrar.tables.latency",
		metric.WithDescription("Latency of the paginated table endpoints"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(DefaultBuckets...)); err != nil {
		return nil, fmt.Errorf("could not create histogram: %w", err)
	}

	return r, nil
}

func (r *Recorder) RequestSubmitted(ctx context.Context) {
	if r == nil {
		return
	}
	r.requestsSubmitted.Add(ctx, 1)
}

func (r *Recorder) Transition(ctx context.Context, transition, to string) {
	if r == nil {
		return
	}
	r.transitions.Add(ctx, 1, metric.WithAttributes(
		attribute.String("transition", transition),
		attribute.String("status", to),
	))
}

func (r *Recorder) EmailSent(ctx context.Context, template string, err error) {
	if r == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("template", template))
	if err != nil {
		r.emailFailures.Add(ctx, 1, attrs)

		return
	}
	r.emailsSent.Add(ctx, 1, attrs)
}

func (r *Recorder) RowsLoaded(ctx context.Context, command, table string, n int64) {
	if r == nil || n == 0 {
		return
	}
	r.rowsLoaded.Add(ctx, n, metric.WithAttributes(
		attribute.String("command", command),
		attribute.String("table", table),
	))
}

func (r *Recorder) TableServed(ctx context.Context, table string, seconds float64) {
	if r == nil {
		return
	}
	r.tableLatency.Record(ctx, seconds, metric.WithAttributes(attribute.String("table", table)))
}

// StartSpan starts a span on the global tracer provider.
func StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return otel.Tracer(instrumentationName).Start(ctx, name, trace.WithAttributes(attrs...))
}

// EndSpan records err on the span, if any, and ends it.
func EndSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
	}
	span.End()
}
