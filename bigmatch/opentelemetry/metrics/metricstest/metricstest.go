// Package metricstest wires a MetricsFactory to an in-memory reader so tests
// can inspect recorded counters without an exporter.
package metricstest

import (
	"context"
	"testing"

	"github.com/LerianStudio/lib-bigmatch/bigmatch/log"
	"github.com/LerianStudio/lib-bigmatch/bigmatch/opentelemetry/metrics"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

// NewFactory returns a factory backed by a ManualReader. The provider is shut
// down on test cleanup.
func NewFactory(t testing.TB) (*metrics.MetricsFactory, *sdkmetric.ManualReader) {
	t.Helper()

	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	factory, err := metrics.NewMetricsFactory(mp.Meter("bigmatch-test"), log.NewNop())
	require.NoError(t, err)

	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })

	return factory, reader
}

// CounterPoints collects the reader and returns the data points of the named
// counter, or nil when it was never recorded.
func CounterPoints(t testing.TB, reader *sdkmetric.ManualReader, name string) []metricdata.DataPoint[int64] {
	t.Helper()

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != name {
				continue
			}

			data, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok, "expected Sum[int64] data type, got %T", m.Data)

			return data.DataPoints
		}
	}

	return nil
}

// Sum returns the total of the named counter across all label sets.
func Sum(t testing.TB, reader *sdkmetric.ManualReader, name string) int64 {
	t.Helper()

	var total int64
	for _, dp := range CounterPoints(t, reader, name) {
		total += dp.Value
	}

	return total
}

// SumWhere returns the total of the named counter for points carrying every
// given label.
func SumWhere(t testing.TB, reader *sdkmetric.ManualReader, name string, labels map[string]string) int64 {
	t.Helper()

	var total int64

	for _, dp := range CounterPoints(t, reader, name) {
		if hasLabels(dp.Attributes, labels) {
			total += dp.Value
		}
	}

	return total
}

func hasLabels(set attribute.Set, labels map[string]string) bool {
	for key, want := range labels {
		got, ok := set.Value(attribute.Key(key))
		if !ok || got.AsString() != want {
			return false
		}
	}

	return true
}
