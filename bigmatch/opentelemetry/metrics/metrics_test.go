//go:build unit

package metrics_test

import (
	"context"
	"sync"
	"testing"

	"github.com/LerianStudio/lib-bigmatch/bigmatch/log"
	"github.com/LerianStudio/lib-bigmatch/bigmatch/opentelemetry/metrics"
	"github.com/LerianStudio/lib-bigmatch/bigmatch/opentelemetry/metrics/metricstest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var dispatchMetric = metrics.Metric{
	Name:        "bigmatch_dispatch_total",
	Unit:        "1",
	Description: "dispatches",
}

func TestNewMetricsFactoryNilMeter(t *testing.T) {
	t.Parallel()

	factory, err := metrics.NewMetricsFactory(nil, log.NewNop())
	require.ErrorIs(t, err, metrics.ErrNilMeter)
	assert.Nil(t, factory)
}

func TestCounterRecordsWithLabels(t *testing.T) {
	t.Parallel()

	factory, reader := metricstest.NewFactory(t)

	counter, err := factory.Counter(dispatchMetric)
	require.NoError(t, err)

	require.NoError(t, counter.WithLabels(map[string]string{"matcher": "above", "path": "bignumber"}).AddOne(context.Background()))
	require.NoError(t, counter.WithLabels(map[string]string{"matcher": "above", "path": "delegate"}).Add(context.Background(), 2))

	assert.Equal(t, int64(3), metricstest.Sum(t, reader, dispatchMetric.Name))
	assert.Equal(t, int64(2), metricstest.SumWhere(t, reader, dispatchMetric.Name, map[string]string{"path": "delegate"}))
	assert.Len(t, metricstest.CounterPoints(t, reader, dispatchMetric.Name), 2)
}

func TestCounterIsCached(t *testing.T) {
	t.Parallel()

	factory, reader := metricstest.NewFactory(t)

	var wg sync.WaitGroup

	for i := 0; i < 8; i++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			counter, err := factory.Counter(dispatchMetric)
			assert.NoError(t, err)
			assert.NoError(t, counter.AddOne(context.Background()))
		}()
	}

	wg.Wait()

	assert.Equal(t, int64(8), metricstest.Sum(t, reader, dispatchMetric.Name))
}

func TestWithLabelsDoesNotMutateParent(t *testing.T) {
	t.Parallel()

	factory, reader := metricstest.NewFactory(t)

	base, err := factory.Counter(dispatchMetric)
	require.NoError(t, err)

	_ = base.WithLabels(map[string]string{"matcher": "within"})
	require.NoError(t, base.AddOne(context.Background()))

	points := metricstest.CounterPoints(t, reader, dispatchMetric.Name)
	require.Len(t, points, 1)
	assert.Equal(t, 0, points[0].Attributes.Len())
}

func TestNilCounterBuilder(t *testing.T) {
	t.Parallel()

	var builder *metrics.CounterBuilder
	assert.ErrorIs(t, builder.AddOne(context.Background()), metrics.ErrNilCounter)
	assert.ErrorIs(t, (&metrics.CounterBuilder{}).AddOne(context.Background()), metrics.ErrNilCounter)
}

func TestNopFactory(t *testing.T) {
	t.Parallel()

	counter, err := metrics.NewNopFactory().Counter(dispatchMetric)
	require.NoError(t, err)
	assert.NoError(t, counter.AddOne(context.Background()))
}
