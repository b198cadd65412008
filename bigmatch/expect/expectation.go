package expect

import (
	constant "github.com/LerianStudio/lib-bigmatch/bigmatch/constants"
)

// Expectation is the fluent surface over one Assertion. After the first error
// every further call is skipped, and Err reports that error.
type Expectation struct {
	a   *Assertion
	err error
}

// Err returns the first failure of the chain, or nil.
func (e *Expectation) Err() error { return e.err }

// Assertion exposes the underlying state.
func (e *Expectation) Assertion() *Assertion { return e.a }

func (e *Expectation) call(name string, args ...any) *Expectation {
	if e.err != nil {
		return e
	}

	e.err = e.a.registry.Call(e.a, name, args...)

	return e
}

func (e *Expectation) chainable(name string, args []any) *Expectation {
	if e.err != nil {
		return e
	}

	// The property form always runs first, as when a qualifier is read before
	// it is called.
	if e.err = e.a.registry.CallChain(e.a, name); e.err != nil || len(args) == 0 {
		return e
	}

	return e.call(name, args...)
}

// Not negates every following matcher.
func (e *Expectation) Not() *Expectation {
	if e.a != nil {
		e.a.SetFlag(constant.FlagNegate, !e.a.Negated())
	}

	return e
}

// WithMessage prefixes every failure message with msg.
func (e *Expectation) WithMessage(msg string) *Expectation {
	if e.a != nil {
		e.a.SetFlag(constant.FlagMessage, msg)
	}

	return e
}

// To is a readability no-op.
func (e *Expectation) To() *Expectation { return e }

// Be is a readability no-op.
func (e *Expectation) Be() *Expectation { return e }

// Have is a readability no-op.
func (e *Expectation) Have() *Expectation { return e }

// And is a readability no-op.
func (e *Expectation) And() *Expectation { return e }

// Equal asserts the subject equals v. Numbers of different Go types compare
// by value.
func (e *Expectation) Equal(v any) *Expectation { return e.call(MethodEqual, v) }

// Equals is an alias of Equal.
func (e *Expectation) Equals(v any) *Expectation { return e.call(MethodEquals, v) }

// Eq is an alias of Equal.
func (e *Expectation) Eq(v any) *Expectation { return e.call(MethodEq, v) }

// Above asserts subject > n, or length > n after Length().
func (e *Expectation) Above(n any) *Expectation { return e.call(MethodAbove, n) }

// Gt is an alias of Above.
func (e *Expectation) Gt(n any) *Expectation { return e.call(MethodGt, n) }

// GreaterThan is an alias of Above.
func (e *Expectation) GreaterThan(n any) *Expectation { return e.call(MethodGreaterThan, n) }

// Below asserts subject < n, or length < n after Length().
func (e *Expectation) Below(n any) *Expectation { return e.call(MethodBelow, n) }

// Lt is an alias of Below.
func (e *Expectation) Lt(n any) *Expectation { return e.call(MethodLt, n) }

// LessThan is an alias of Below.
func (e *Expectation) LessThan(n any) *Expectation { return e.call(MethodLessThan, n) }

// Least asserts subject >= n, or length >= n after Length().
func (e *Expectation) Least(n any) *Expectation { return e.call(MethodLeast, n) }

// Gte is an alias of Least.
func (e *Expectation) Gte(n any) *Expectation { return e.call(MethodGte, n) }

// GreaterThanOrEqual is an alias of Least.
func (e *Expectation) GreaterThanOrEqual(n any) *Expectation {
	return e.call(MethodGreaterThanOrEqual, n)
}

// Most asserts subject <= n, or length <= n after Length().
func (e *Expectation) Most(n any) *Expectation { return e.call(MethodMost, n) }

// Lte is an alias of Most.
func (e *Expectation) Lte(n any) *Expectation { return e.call(MethodLte, n) }

// LessThanOrEqual is an alias of Most.
func (e *Expectation) LessThanOrEqual(n any) *Expectation { return e.call(MethodLessThanOrEqual, n) }

// Length asserts the length or size of the subject when n is given. Without
// arguments it only switches following ordering matchers to length mode.
func (e *Expectation) Length(n ...any) *Expectation { return e.chainable(MethodLength, n) }

// LengthOf is an alias of Length.
func (e *Expectation) LengthOf(n ...any) *Expectation { return e.chainable(MethodLengthOf, n) }

// Within asserts start <= subject <= finish.
func (e *Expectation) Within(start, finish any) *Expectation {
	return e.call(MethodWithin, start, finish)
}

// CloseTo asserts |subject - target| <= delta. Omitting delta yields an
// *assert.ConfigurationError.
func (e *Expectation) CloseTo(target any, delta ...any) *Expectation {
	return e.call(MethodCloseTo, append([]any{target}, delta...)...)
}

// Approximately is an alias of CloseTo.
func (e *Expectation) Approximately(target any, delta ...any) *Expectation {
	return e.call(MethodApproximately, append([]any{target}, delta...)...)
}
