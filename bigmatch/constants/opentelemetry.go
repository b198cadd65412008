package constant

// TelemetrySDKName identifies this library in OTEL telemetry resource attributes.
const TelemetrySDKName = "lib-bigmatch/opentelemetry"

// MaxMetricLabelLength is the maximum length for metric labels to prevent cardinality explosion.
const MaxMetricLabelLength = 64

// Telemetry attribute key prefixes.
const (
	// AttrPrefixAssertion is the prefix for assertion event attributes.
	AttrPrefixAssertion = "assertion."
)

// Telemetry metric names.
const (
	// MetricAssertionFailedTotal is the counter metric for failed assertions.
	MetricAssertionFailedTotal = "assertion_failed_total"
	// MetricMatcherDispatchTotal counts matcher invocations by the path they took.
	MetricMatcherDispatchTotal = "bigmatch_dispatch_total"
)

// Telemetry event names.
const (
	// EventAssertionFailed is the span event name for assertion failures.
	EventAssertionFailed = "assertion.failed"
)

// Dispatch paths recorded on MetricMatcherDispatchTotal.
const (
	// DispatchPathBigNumber marks a call handled by the canonical integer comparison.
	DispatchPathBigNumber = "bignumber"
	// DispatchPathDelegate marks a call forwarded to the overwritten matcher.
	DispatchPathDelegate = "delegate"
)

// SanitizeMetricLabel truncates a label value to MaxMetricLabelLength
// to prevent metric cardinality explosion in OTEL backends.
func SanitizeMetricLabel(value string) string {
	if len(value) > MaxMetricLabelLength {
		return value[:MaxMetricLabelLength]
	}

	return value
}
