package bigmatch

import (
	constant "github.com/LerianStudio/lib-bigmatch/bigmatch/constants"
	"github.com/LerianStudio/lib-bigmatch/bigmatch/expect"
	"github.com/LerianStudio/lib-bigmatch/bigmatch/log"
	"github.com/LerianStudio/lib-bigmatch/bigmatch/opentelemetry/metrics"
)

var dispatchMetric = metrics.Metric{
	Name:        constant.MetricMatcherDispatchTotal,
	Unit:        "1",
	Description: "Total number of matcher calls by dispatch path",
}

// recordDispatch logs and counts which path a matcher took.
func recordDispatch(a *expect.Assertion, matcher, path string) {
	ctx, logger := a.Context(), a.Logger()

	if logger.Enabled(log.LevelDebug) {
		logger.Log(ctx, log.LevelDebug, "matcher dispatch",
			log.String("matcher", matcher),
			log.String("path", path),
		)
	}

	counter, err := a.Metrics().Counter(dispatchMetric)
	if err != nil {
		logger.Log(ctx, log.LevelWarn, "dispatch counter unavailable", log.Err(err))
		return
	}

	err = counter.
		WithLabels(map[string]string{
			"matcher": constant.SanitizeMetricLabel(matcher),
			"path":    path,
		}).
		AddOne(ctx)
	if err != nil {
		logger.Log(ctx, log.LevelWarn, "failed to record dispatch", log.Err(err))
	}
}

// recordOperands logs the canonical integers a big-number path is about to
// compare.
func recordOperands(a *expect.Assertion, matcher string, operands ...log.Field) {
	logger := a.Logger()
	if !logger.Enabled(log.LevelDebug) {
		return
	}

	fields := make([]log.Field, 0, len(operands)+2)
	fields = append(fields, log.String("matcher", matcher), log.Bool("negate", a.Negated()))
	fields = append(fields, operands...)

	logger.Log(a.Context(), log.LevelDebug, "matcher operands", fields...)
}

func delegate(a *expect.Assertion, matcher string, original expect.Method, args []any) error {
	recordDispatch(a, matcher, constant.DispatchPathDelegate)
	return original(a, args...)
}
