package expect

import (
	"context"

	"github.com/LerianStudio/lib-bigmatch/bigmatch/assert"
	constant "github.com/LerianStudio/lib-bigmatch/bigmatch/constants"
	"github.com/LerianStudio/lib-bigmatch/bigmatch/log"
	"github.com/LerianStudio/lib-bigmatch/bigmatch/opentelemetry/metrics"
)

// Assertion is the state of one assertion expression.
type Assertion struct {
	ctx      context.Context
	flags    map[string]any
	registry *Registry
	asserter *assert.Asserter
}

func newAssertion(ctx context.Context, reg *Registry, subject any) *Assertion {
	if ctx == nil {
		ctx = context.Background()
	}

	return &Assertion{
		ctx:      ctx,
		flags:    map[string]any{constant.FlagObject: subject},
		registry: reg,
		asserter: assert.New(ctx, reg.logger, reg.component, "").WithMetrics(reg.assertionMetrics),
	}
}

// NewAssertion creates a standalone Assertion bound to reg, for calling
// methods directly.
func NewAssertion(ctx context.Context, reg *Registry, subject any) *Assertion {
	if reg == nil {
		reg = NewRegistry()
	}

	return newAssertion(ctx, reg, subject)
}

// Context returns the caller's context.
func (a *Assertion) Context() context.Context { return a.ctx }

// Flag returns the named flag, or nil.
func (a *Assertion) Flag(name string) any { return a.flags[name] }

// SetFlag sets the named flag.
func (a *Assertion) SetFlag(name string, value any) { a.flags[name] = value }

// Object returns the subject under test.
func (a *Assertion) Object() any { return a.flags[constant.FlagObject] }

// Negated reports whether the expression was negated with Not.
func (a *Assertion) Negated() bool { return a.boolFlag(constant.FlagNegate) }

// DoLength reports whether a length or size qualifier is active.
func (a *Assertion) DoLength() bool { return a.boolFlag(constant.FlagDoLength) }

// Logger returns the registry logger.
func (a *Assertion) Logger() log.Logger { return a.registry.logger }

// Metrics returns the registry metrics factory.
func (a *Assertion) Metrics() *metrics.MetricsFactory { return a.registry.metrics }

func (a *Assertion) boolFlag(name string) bool {
	v, _ := a.flags[name].(bool)
	return v
}

// Assert emits a pass/fail outcome for matcher. msg is reported when a positive
// expectation fails and negMsg when a negated one does.
func (a *Assertion) Assert(matcher string, ok bool, msg, negMsg string, expected, actual any) error {
	prefix := a.messagePrefix()

	return a.asserter.WithOperation(matcher).Expect(a.ctx, assert.Result{
		Assertion:      matcher,
		Pass:           ok,
		Negate:         a.Negated(),
		Message:        prefix + msg,
		NegatedMessage: prefix + negMsg,
		Expected:       expected,
		Actual:         actual,
	})
}

// Fail reports a failure that does not depend on negation.
func (a *Assertion) Fail(matcher, msg string) error {
	return a.asserter.WithOperation(matcher).Fail(a.ctx, matcher, a.messagePrefix()+msg, "subject", Inspect(a.Object()))
}

// Misconfigured reports matcher misuse as an *assert.ConfigurationError.
func (a *Assertion) Misconfigured(matcher, msg string) error {
	return a.asserter.Misconfigured(a.ctx, matcher, msg)
}

func (a *Assertion) messagePrefix() string {
	if msg, _ := a.flags[constant.FlagMessage].(string); msg != "" {
		return msg + ": "
	}

	return ""
}
