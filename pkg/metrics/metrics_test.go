package metrics_test

import (
	"context"
	"errors"
	"testing"

	"registrar/pkg/metrics"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func TestRecorder(t *testing.T) {
	ctx := context.Background()
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	rec, err := metrics.NewRecorder(mp)
	require.NoError(t, err)

	rec.RequestSubmitted(ctx)
	rec.RequestSubmitted(ctx)
	rec.Transition(ctx, "approve", "approved")
	rec.EmailSent(ctx, "status_approved", nil)
	rec.EmailSent(ctx, "status_approved", errors.New("boom"))
	rec.RowsLoaded(ctx, "load_transition_domain", "transition_domains", 5)
	rec.TableServed(ctx, "domains", 0.01)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &rm))
	require.Len(t, rm.ScopeMetrics, 1)

	sums := map[string]int64{}
	for _, m := range rm.ScopeMetrics[0].Metrics {
		if sum, ok := m.Data.(metricdata.Sum[int64]); ok {
			for _, dp := range sum.DataPoints {
				sums[m.Name] += dp.Value
			}
		}
	}
	require.EqualValues(t, 2, sums["registrar.domain_requests.submitted"])
	require.EqualValues(t, 1, sums["registrar.domain_requests.transitions"])
	require.EqualValues(t, 1, sums["registrar.emails.sent"])
	require.EqualValues(t, 1, sums["registrar.emails.failed"])
	require.EqualValues(t, 5, sums["registrar.migration.rows"])
}

func TestRecorder_Nil(t *testing.T) {
	var rec *metrics.Recorder
	rec.RequestSubmitted(context.Background())
	rec.EmailSent(context.Background(), "x", nil)
}

func TestStartSpan(t *testing.T) {
	ctx, span := metrics.StartSpan(context.Background(), "test", attribute.String("k", "v"))
	require.NotNil(t, ctx)
	metrics.EndSpan(span, errors.New("boom"))
}
