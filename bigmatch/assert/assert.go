package assert

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/LerianStudio/lib-bigmatch/bigmatch/log"
	"github.com/LerianStudio/lib-bigmatch/bigmatch/runtime"
)

// Logger defines the minimal logging interface required by assertions.
// This interface is satisfied by bigmatch/log.Logger.
type Logger interface {
	Log(ctx context.Context, level log.Level, msg string, fields ...log.Field)
}

// Asserter evaluates outcomes and emits telemetry on failure.
type Asserter struct {
	ctx       context.Context
	logger    Logger
	metrics   *AssertionMetrics
	component string
	operation string
}

// Result is one evaluated matcher outcome.
type Result struct {
	// Assertion names the matcher, e.g. "above".
	Assertion string
	// Pass is the raw outcome before negation is applied.
	Pass bool
	// Negate inverts the expectation.
	Negate bool
	// Message is used when a positive expectation fails.
	Message string
	// NegatedMessage is used when a negated expectation fails.
	NegatedMessage string
	Expected       any
	Actual         any
}

// New creates an Asserter with context, logging, and labels.
// component and operation are used for telemetry labeling.
//
//nolint:contextcheck // Intentionally creates a fallback context when nil is passed
func New(ctx context.Context, logger Logger, component, operation string) *Asserter {
	if ctx == nil {
		ctx = context.Background()
	}

	return &Asserter{
		ctx:       ctx,
		logger:    logger,
		component: component,
		operation: operation,
	}
}

// WithMetrics returns a copy of the asserter that records failures through m
// instead of the process-wide instance.
func (asserter *Asserter) WithMetrics(m *AssertionMetrics) *Asserter {
	if asserter == nil {
		return &Asserter{ctx: context.Background(), metrics: m}
	}

	clone := *asserter
	clone.metrics = m

	return &clone
}

// WithOperation returns a copy of the asserter labelled with operation.
func (asserter *Asserter) WithOperation(operation string) *Asserter {
	if asserter == nil {
		return &Asserter{ctx: context.Background(), operation: operation}
	}

	clone := *asserter
	clone.operation = operation

	return &clone
}

// That returns an error if ok is false.
//
// Example:
//
//	if err := asserter.That(ctx, n.Sign() >= 0, "delta must not be negative", "delta", n); err != nil {
//		return err
//	}
func (asserter *Asserter) That(ctx context.Context, ok bool, msg string, kv ...any) error {
	if ok {
		return nil
	}

	return asserter.fail(ctx, failure{assertion: "That", message: msg, kv: kv})
}

// Expect applies negation to r and returns an *AssertionError when the
// expectation does not hold. The message matching the expectation direction is
// reported, together with the expected and actual payloads.
//
// Example:
//
//	return asserter.Expect(ctx, assert.Result{
//		Assertion:      "above",
//		Pass:           actual.Cmp(limit) > 0,
//		Negate:         negate,
//		Message:        "expected 3 to be above 5",
//		NegatedMessage: "expected 3 to be at most 5",
//		Expected:       limit,
//		Actual:         actual,
//	})
func (asserter *Asserter) Expect(ctx context.Context, r Result) error {
	if r.Pass != r.Negate {
		return nil
	}

	msg := r.Message
	if r.Negate {
		msg = r.NegatedMessage
	}

	assertion := r.Assertion
	if assertion == "" {
		assertion = "Expect"
	}

	return asserter.fail(ctx, failure{
		assertion: assertion,
		message:   msg,
		expected:  r.Expected,
		actual:    r.Actual,
		negate:    r.Negate,
		kv:        []any{"expected", r.Expected, "actual", r.Actual, "negated", r.Negate},
	})
}

// Misconfigured logs and returns a *ConfigurationError for matcher. It never
// counts as a failed assertion.
func (asserter *Asserter) Misconfigured(ctx context.Context, matcher, msg string) error {
	ctx, logger, component, _ := asserter.values(ctx)

	if logger != nil {
		logger.Log(ctx, log.LevelError, "matcher misconfigured",
			log.String("matcher", matcher),
			log.String("component", component),
			log.String("reason", msg),
		)
	}

	return &ConfigurationError{Matcher: matcher, Message: msg}
}

// Fail always returns an *AssertionError for assertion, regardless of any
// negation. Matchers use it for operands they cannot evaluate at all.
//
// Example:
//
//	return asserter.Fail(ctx, "above", "expected 'abc' to be a number", "subject", subject)
func (asserter *Asserter) Fail(ctx context.Context, assertion, msg string, kv ...any) error {
	if assertion == "" {
		assertion = "Fail"
	}

	return asserter.fail(ctx, failure{assertion: assertion, message: msg, kv: kv})
}

const maxValueLength = 200 // Truncate values longer than this

// truncateValue truncates long values for logging safety.
func truncateValue(v any) string {
	s := fmt.Sprintf("%v", v)
	if len(s) <= maxValueLength {
		return s
	}

	return s[:maxValueLength] + "... (truncated " + strconv.Itoa(len(s)-maxValueLength) + " chars)"
}

type failure struct {
	assertion string
	message   string
	expected  any
	actual    any
	negate    bool
	kv        []any
}

func (asserter *Asserter) fail(ctx context.Context, f failure) error {
	ctx, logger, component, operation := asserter.values(ctx)
	id := newFailureID()
	contextPairs := withContextPairs(f.assertion, component, operation, f.kv)
	details := formatKeyValueLines(contextPairs)

	stack := []byte(nil)
	if runtime.ShouldIncludeStack() {
		stack = debug.Stack()
	}

	logAssertion(ctx, logger, id, formatLogMessage(f.message, details, stack))
	asserter.recordObservability(ctx, observation{
		id:        id,
		assertion: f.assertion,
		message:   f.message,
		stack:     stack,
		component: component,
		operation: operation,
		expected:  f.expected,
		actual:    f.actual,
	})

	return &AssertionError{
		ID:        id,
		Assertion: f.assertion,
		Message:   f.message,
		Component: component,
		Operation: operation,
		Details:   details,
		Expected:  f.expected,
		Actual:    f.actual,
	}
}

func (asserter *Asserter) values(ctx context.Context) (context.Context, Logger, string, string) {
	if asserter == nil {
		if ctx == nil {
			ctx = context.Background()
		}

		return ctx, nil, "", ""
	}

	if ctx == nil {
		ctx = asserter.ctx
	}

	if ctx == nil {
		ctx = context.Background()
	}

	return ctx, asserter.logger, asserter.component, asserter.operation
}

func newFailureID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return id.String()
}

// contextPairsCapacity is the capacity for the fixed context pairs (assertion, component, operation).
const contextPairsCapacity = 6

func withContextPairs(assertion, component, operation string, kv []any) []any {
	contextPairs := make([]any, 0, len(kv)+contextPairsCapacity)
	contextPairs = append(contextPairs, "assertion", assertion)

	if component != "" {
		contextPairs = append(contextPairs, "component", component)
	}

	if operation != "" {
		contextPairs = append(contextPairs, "operation", operation)
	}

	contextPairs = append(contextPairs, kv...)

	return contextPairs
}

func formatKeyValueLines(kv []any) string {
	if len(kv) == 0 {
		return ""
	}

	var sb strings.Builder

	for i := 0; i < len(kv); i += 2 {
		if i > 0 {
			sb.WriteString("\n")
		}

		var value any
		if i+1 < len(kv) {
			value = kv[i+1]
		} else {
			value = "MISSING_VALUE"
		}

		fmt.Fprintf(&sb, "    %v=%v", kv[i], truncateValue(value))
	}

	return sb.String()
}

func formatLogMessage(msg, details string, stack []byte) string {
	var sb strings.Builder

	sb.WriteString("ASSERTION FAILED: ")
	sb.WriteString(msg)

	if details != "" {
		sb.WriteString("\n")
		sb.WriteString(details)
	}

	if len(stack) > 0 {
		sb.WriteString("\nstack trace:\n")
		sb.WriteString(string(stack))
	}

	return sb.String()
}

func logAssertion(ctx context.Context, logger Logger, id, message string) {
	if logger != nil {
		logger.Log(ctx, log.LevelError, message, log.String("assertion_id", id))
		return
	}

	fmt.Fprintln(os.Stderr, message)
}
