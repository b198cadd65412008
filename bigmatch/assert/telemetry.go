package assert

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	constant "github.com/LerianStudio/lib-bigmatch/bigmatch/constants"
	"github.com/LerianStudio/lib-bigmatch/bigmatch/opentelemetry/metrics"
)

// AssertionSpanEventName is the event name used when recording assertion failures on spans.
const AssertionSpanEventName = constant.EventAssertionFailed

// AssertionMetrics provides assertion-related metrics using OpenTelemetry.
type AssertionMetrics struct {
	factory *metrics.MetricsFactory
}

// assertionFailedMetric defines the metric for counting failed assertions.
var assertionFailedMetric = metrics.Metric{
	Name:        constant.MetricAssertionFailedTotal,
	Unit:        "1",
	Description: "Total number of failed assertions",
}

// NewAssertionMetrics wraps factory. It returns nil for a nil factory.
func NewAssertionMetrics(factory *metrics.MetricsFactory) *AssertionMetrics {
	if factory == nil {
		return nil
	}

	return &AssertionMetrics{factory: factory}
}

// RecordAssertionFailed increments assertion_failed_total. A nil receiver,
// as held by an Asserter built without WithMetrics, records nothing.
func (am *AssertionMetrics) RecordAssertionFailed(
	ctx context.Context,
	component, operation, assertion string,
) {
	if am == nil || am.factory == nil {
		return
	}

	counter, err := am.factory.Counter(assertionFailedMetric)
	if err != nil {
		logAssertion(ctx, nil, "", fmt.Sprintf("failed to create assertion metric counter: %v", err))
		return
	}

	err = counter.
		WithLabels(map[string]string{
			"component": constant.SanitizeMetricLabel(component),
			"operation": constant.SanitizeMetricLabel(operation),
			"assertion": constant.SanitizeMetricLabel(assertion),
		}).
		AddOne(ctx)
	if err != nil {
		logAssertion(ctx, nil, "", fmt.Sprintf("failed to record assertion metric: %v", err))
	}
}

type observation struct {
	id        string
	assertion string
	message   string
	stack     []byte
	component string
	operation string
	expected  any
	actual    any
}

func (asserter *Asserter) recordObservability(ctx context.Context, obs observation) {
	var am *AssertionMetrics
	if asserter != nil {
		am = asserter.metrics
	}

	am.RecordAssertionFailed(ctx, obs.component, obs.operation, obs.assertion)
	recordAssertionToSpan(ctx, obs)
}

func recordAssertionToSpan(ctx context.Context, obs observation) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String(constant.AttrPrefixAssertion+"id", obs.id),
		attribute.String(constant.AttrPrefixAssertion+"name", obs.assertion),
		attribute.String(constant.AttrPrefixAssertion+"message", obs.message),
	}

	if obs.component != "" {
		attrs = append(attrs, attribute.String(constant.AttrPrefixAssertion+"component", obs.component))
	}

	if obs.operation != "" {
		attrs = append(attrs, attribute.String(constant.AttrPrefixAssertion+"operation", obs.operation))
	}

	if obs.expected != nil {
		attrs = append(attrs, attribute.String(constant.AttrPrefixAssertion+"expected", truncateValue(obs.expected)))
	}

	if obs.actual != nil {
		attrs = append(attrs, attribute.String(constant.AttrPrefixAssertion+"actual", truncateValue(obs.actual)))
	}

	if len(obs.stack) > 0 {
		attrs = append(attrs, attribute.String(constant.AttrPrefixAssertion+"stack", string(obs.stack)))
	}

	span.AddEvent(AssertionSpanEventName, trace.WithAttributes(attrs...))
	span.RecordError(fmt.Errorf("%w: %s", ErrAssertionFailed, obs.message))
	span.SetStatus(codes.Error, assertionStatusMessage(obs.component, obs.operation))
}

func assertionStatusMessage(component, operation string) string {
	switch {
	case component != "" && operation != "":
		return fmt.Sprintf("assertion failed in %s/%s", component, operation)
	case component != "":
		return "assertion failed in " + component
	case operation != "":
		return "assertion failed in " + operation
	default:
		return "assertion failed"
	}
}
