//go:build unit

package assert

import (
	"context"
	"math/big"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	constant "github.com/LerianStudio/lib-bigmatch/bigmatch/constants"
	"github.com/LerianStudio/lib-bigmatch/bigmatch/log"
	"github.com/LerianStudio/lib-bigmatch/bigmatch/opentelemetry/metrics/metricstest"
)

type testLogger struct {
	mu       sync.Mutex
	messages []string
	fields   [][]log.Field
}

func (l *testLogger) Log(_ context.Context, _ log.Level, msg string, fields ...log.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.messages = append(l.messages, msg)
	l.fields = append(l.fields, fields)
}

func TestAssertionError_NilReceiver(t *testing.T) {
	t.Parallel()

	var entry *AssertionError
	require.Equal(t, ErrAssertionFailed.Error(), entry.Error())
}

func TestAssertionError_Error(t *testing.T) {
	t.Parallel()

	entry := &AssertionError{Message: "some message"}
	require.Equal(t, "assertion failed: some message", entry.Error())

	entry.Details = "    key=value"
	require.Equal(t, "assertion failed: some message\n    key=value", entry.Error())
	require.ErrorIs(t, entry, ErrAssertionFailed)
}

func TestConfigurationError(t *testing.T) {
	t.Parallel()

	var nilErr *ConfigurationError
	require.Equal(t, ErrConfiguration.Error(), nilErr.Error())

	err := &ConfigurationError{Matcher: "closeTo", Message: "a delta is required"}
	require.Equal(t, "closeTo: a delta is required", err.Error())
	require.ErrorIs(t, err, ErrConfiguration)
	require.NotErrorIs(t, err, ErrAssertionFailed)

	require.Equal(t, "bare", (&ConfigurationError{Message: "bare"}).Error())
}

func TestThat(t *testing.T) {
	t.Parallel()

	logger := &testLogger{}
	asserter := New(context.Background(), logger, "comp", "op")

	require.NoError(t, asserter.That(context.Background(), true, "never shown"))

	err := asserter.That(context.Background(), false, "delta must be positive", "delta", -1)
	require.ErrorIs(t, err, ErrAssertionFailed)

	var aerr *AssertionError
	require.ErrorAs(t, err, &aerr)
	assert.Equal(t, "That", aerr.Assertion)
	assert.Contains(t, aerr.Details, "delta=-1")
	assert.Contains(t, aerr.Details, "component=comp")
	require.Len(t, logger.messages, 1)
	assert.True(t, strings.HasPrefix(logger.messages[0], "ASSERTION FAILED: delta must be positive"))
}

func TestExpect_Negation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		pass    bool
		negate  bool
		wantErr string
	}{
		{name: "pass", pass: true, negate: false},
		{name: "fail", pass: false, negate: false, wantErr: "positive"},
		{name: "negated pass", pass: false, negate: true},
		{name: "negated fail", pass: true, negate: true, wantErr: "negative"},
	}

	for _, tt := range tests {

		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			asserter := New(context.Background(), &testLogger{}, "", "")
			err := asserter.Expect(context.Background(), Result{
				Assertion:      "equal",
				Pass:           tt.pass,
				Negate:         tt.negate,
				Message:        "positive",
				NegatedMessage: "negative",
				Expected:       big.NewInt(1),
				Actual:         big.NewInt(2),
			})

			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}

			var aerr *AssertionError
			require.ErrorAs(t, err, &aerr)
			assert.Equal(t, tt.wantErr, aerr.Message)
			assert.Equal(t, "equal", aerr.Assertion)
			assert.Equal(t, big.NewInt(1), aerr.Expected)
			assert.Equal(t, big.NewInt(2), aerr.Actual)

			id, parseErr := uuid.Parse(aerr.ID)
			require.NoError(t, parseErr)
			assert.Equal(t, uuid.Version(7), id.Version())
		})
	}
}

func TestExpect_DefaultAssertionName(t *testing.T) {
	t.Parallel()

	err := New(context.Background(), &testLogger{}, "", "").Expect(context.Background(), Result{Message: "m"})

	var aerr *AssertionError
	require.ErrorAs(t, err, &aerr)
	assert.Equal(t, "Expect", aerr.Assertion)
}

func TestMisconfigured(t *testing.T) {
	t.Parallel()

	logger := &testLogger{}
	asserter := New(context.Background(), logger, "bigmatch", "")

	err := asserter.Misconfigured(context.Background(), "closeTo", "a delta is required")
	require.ErrorIs(t, err, ErrConfiguration)

	var cerr *ConfigurationError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "closeTo", cerr.Matcher)
	require.Len(t, logger.messages, 1)
	assert.Equal(t, "matcher misconfigured", logger.messages[0])
}

func TestNilAsserter(t *testing.T) {
	t.Parallel()

	var asserter *Asserter

	err := asserter.WithMetrics(nil).Fail(context.Background(), "", "unreachable")
	require.ErrorIs(t, err, ErrAssertionFailed)

	err = asserter.Misconfigured(nil, "within", "bad bounds") //nolint:staticcheck // nil ctx on purpose
	require.ErrorIs(t, err, ErrConfiguration)
}

func TestWithOperation(t *testing.T) {
	t.Parallel()

	base := New(context.Background(), &testLogger{}, "comp", "op")
	derived := base.WithOperation("above")

	assert.Equal(t, "op", base.operation)
	assert.Equal(t, "above", derived.operation)
	assert.Equal(t, "comp", derived.component)
}

func TestTruncateValue(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "short", truncateValue("short"))
	assert.Equal(t, strings.Repeat("x", maxValueLength), truncateValue(strings.Repeat("x", maxValueLength)))

	long := truncateValue(strings.Repeat("y", maxValueLength+5))
	assert.True(t, strings.HasSuffix(long, "... (truncated 5 chars)"))
	assert.Equal(t, "42", truncateValue(42))
}

func TestFormatKeyValueLines(t *testing.T) {
	t.Parallel()

	assert.Empty(t, formatKeyValueLines(nil))
	assert.Equal(t, "    a=1\n    b=MISSING_VALUE", formatKeyValueLines([]any{"a", 1, "b"}))
}

func TestAssertionStatusMessage(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "assertion failed in c/o", assertionStatusMessage("c", "o"))
	assert.Equal(t, "assertion failed in c", assertionStatusMessage("c", ""))
	assert.Equal(t, "assertion failed in o", assertionStatusMessage("", "o"))
	assert.Equal(t, "assertion failed", assertionStatusMessage("", ""))
}

func TestFailure_RecordsSpanEvent(t *testing.T) {
	t.Parallel()

	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	ctx, span := tp.Tracer("test").Start(context.Background(), "assertion")

	asserter := New(ctx, &testLogger{}, "comp", "op")
	err := asserter.Expect(ctx, Result{Assertion: "above", Message: "expected 1 to be above 2", Expected: 2, Actual: 1})
	require.Error(t, err)

	span.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)

	var found bool

	for _, ev := range spans[0].Events() {
		if ev.Name != AssertionSpanEventName {
			continue
		}

		found = true

		attrs := map[string]string{}
		for _, kv := range ev.Attributes {
			attrs[string(kv.Key)] = kv.Value.Emit()
		}

		assert.Equal(t, "above", attrs["assertion.name"])
		assert.Equal(t, "2", attrs["assertion.expected"])
		assert.Equal(t, "1", attrs["assertion.actual"])
		assert.NotEmpty(t, attrs["assertion.id"])
	}

	assert.True(t, found, "assertion event not recorded")
	assert.Equal(t, "assertion failed in comp/op", spans[0].Status().Description)
}

func TestFailure_RecordsMetric(t *testing.T) {
	t.Parallel()

	factory, reader := metricstest.NewFactory(t)
	asserter := New(context.Background(), &testLogger{}, "comp", "").WithMetrics(NewAssertionMetrics(factory))

	require.Error(t, asserter.Fail(context.Background(), "within", "boom"))
	require.NoError(t, asserter.That(context.Background(), true, "fine"))
	require.Error(t, asserter.That(context.Background(), false, "bad"))

	assert.Equal(t, int64(2), metricstest.Sum(t, reader, constant.MetricAssertionFailedTotal))
	assert.Equal(t, int64(1), metricstest.SumWhere(t, reader, constant.MetricAssertionFailedTotal,
		map[string]string{"assertion": "within", "component": "comp"}))
}

func TestNewAssertionMetrics_NilFactory(t *testing.T) {
	t.Parallel()

	assert.Nil(t, NewAssertionMetrics(nil))

	var am *AssertionMetrics
	am.RecordAssertionFailed(context.Background(), "c", "o", "a")
}

func TestFail_WithoutMetricsRecordsNothing(t *testing.T) {
	t.Parallel()

	asserter := New(context.Background(), &testLogger{}, "comp", "")

	assert.NotPanics(t, func() {
		require.Error(t, asserter.Fail(context.Background(), "within", "boom"))
	})
}

