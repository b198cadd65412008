package expect

import (
	"fmt"

	testify "github.com/stretchr/testify/assert"

	"github.com/LerianStudio/lib-bigmatch/bigmatch/bignum"
	constant "github.com/LerianStudio/lib-bigmatch/bigmatch/constants"
)

// Method names defined by every new Registry.
const (
	MethodEqual              = "equal"
	MethodEquals             = "equals"
	MethodEq                 = "eq"
	MethodAbove              = "above"
	MethodGt                 = "gt"
	MethodGreaterThan        = "greaterThan"
	MethodBelow              = "below"
	MethodLt                 = "lt"
	MethodLessThan           = "lessThan"
	MethodLeast              = "least"
	MethodGte                = "gte"
	MethodGreaterThanOrEqual = "greaterThanOrEqual"
	MethodMost               = "most"
	MethodLte                = "lte"
	MethodLessThanOrEqual    = "lessThanOrEqual"
	MethodLength             = "length"
	MethodLengthOf           = "lengthOf"
	MethodWithin             = "within"
	MethodCloseTo            = "closeTo"
	MethodApproximately      = "approximately"
)

// MsgDeltaRequired is reported when closeTo is called without a usable delta.
const MsgDeltaRequired = "the arguments to closeTo or approximately must be numbers, and a delta is required"

// Ordering describes one of the four ordering matchers.
type Ordering struct {
	// Name is the canonical method name used in messages and telemetry.
	Name string
	Op   bignum.Op
	// Phrase and NegatedPhrase complete "expected X to ...".
	Phrase        string
	NegatedPhrase string
	// LengthPhrase completes "expected X to have a length ...".
	LengthPhrase string
}

// Orderings returns the ordering matchers keyed by every method name that
// resolves to them.
func Orderings() map[string]Ordering {
	above := Ordering{Name: MethodAbove, Op: bignum.OpGreaterThan, Phrase: "be above", NegatedPhrase: "be at most", LengthPhrase: "above"}
	below := Ordering{Name: MethodBelow, Op: bignum.OpLessThan, Phrase: "be below", NegatedPhrase: "be at least", LengthPhrase: "below"}
	least := Ordering{Name: MethodLeast, Op: bignum.OpGreaterOrEqual, Phrase: "be at least", NegatedPhrase: "be below", LengthPhrase: "at least"}
	most := Ordering{Name: MethodMost, Op: bignum.OpLessOrEqual, Phrase: "be at most", NegatedPhrase: "be above", LengthPhrase: "at most"}

	return map[string]Ordering{
		MethodAbove: above, MethodGt: above, MethodGreaterThan: above,
		MethodBelow: below, MethodLt: below, MethodLessThan: below,
		MethodLeast: least, MethodGte: least, MethodGreaterThanOrEqual: least,
		MethodMost: most, MethodLte: most, MethodLessThanOrEqual: most,
	}
}

func registerBuiltins(r *Registry) {
	for _, name := range []string{MethodEqual, MethodEquals, MethodEq} {
		r.Define(name, assertEqual)
	}

	for name, o := range Orderings() {
		r.Define(name, assertOrdering(o))
	}

	for _, name := range []string{MethodLength, MethodLengthOf} {
		r.DefineChainable(name, assertLength, assertLengthChain)
	}

	r.Define(MethodWithin, assertWithin)

	for _, name := range []string{MethodCloseTo, MethodApproximately} {
		r.Define(name, assertCloseTo)
	}
}

// Arg returns args[i], or nil when absent.
func Arg(args []any, i int) any {
	if i < len(args) {
		return args[i]
	}

	return nil
}

func valuesEqual(actual, expected any) bool {
	if c, ordered, ok := comparePlain(actual, expected); ok {
		return ordered && c == 0
	}

	return testify.ObjectsAreEqual(expected, actual)
}

func assertEqual(a *Assertion, args ...any) error {
	expected, obj := Arg(args, 0), a.Object()

	return a.Assert(MethodEqual, valuesEqual(obj, expected),
		fmt.Sprintf("expected %s to equal %s", Inspect(obj), Inspect(expected)),
		fmt.Sprintf("expected %s to not equal %s", Inspect(obj), Inspect(expected)),
		expected, obj,
	)
}

func assertOrdering(o Ordering) Method {
	return func(a *Assertion, args ...any) error {
		n, obj := Arg(args, 0), a.Object()

		if a.DoLength() {
			key, size, ok := Measure(obj)
			if !ok {
				return a.Fail(o.Name, fmt.Sprintf("expected %s to have property 'length'", Inspect(obj)))
			}

			c, ordered, ok := comparePlain(size, n)
			if !ok {
				return a.Fail(o.Name, fmt.Sprintf("the argument to %s must be a number", o.Name))
			}

			return a.Assert(o.Name, ordered && o.Op.Holds(c),
				fmt.Sprintf("expected %s to have a %s %s %s but got %d", Inspect(obj), key, o.LengthPhrase, Display(n), size),
				fmt.Sprintf("expected %s to not have a %s %s %s", Inspect(obj), key, o.LengthPhrase, Display(n)),
				n, size,
			)
		}

		if !isPlainNumber(obj) {
			return a.Fail(o.Name, fmt.Sprintf("expected %s to be a number", Inspect(obj)))
		}

		c, ordered, ok := comparePlain(obj, n)
		if !ok {
			return a.Fail(o.Name, fmt.Sprintf("the argument to %s must be a number", o.Name))
		}

		return a.Assert(o.Name, ordered && o.Op.Holds(c),
			fmt.Sprintf("expected %s to %s %s", Inspect(obj), o.Phrase, Display(n)),
			fmt.Sprintf("expected %s to %s %s", Inspect(obj), o.NegatedPhrase, Display(n)),
			n, obj,
		)
	}
}

func assertLength(a *Assertion, args ...any) error {
	n, obj := Arg(args, 0), a.Object()

	key, size, ok := Measure(obj)
	if !ok {
		return a.Fail(MethodLength, fmt.Sprintf("expected %s to have property 'length'", Inspect(obj)))
	}

	c, ordered, ok := comparePlain(size, n)

	return a.Assert(MethodLength, ok && ordered && c == 0,
		fmt.Sprintf("expected %s to have a %s of %s but got %d", Inspect(obj), key, Display(n), size),
		fmt.Sprintf("expected %s to not have a %s of %d", Inspect(obj), key, size),
		n, size,
	)
}

func assertLengthChain(a *Assertion) error {
	a.SetFlag(constant.FlagDoLength, true)
	return nil
}

func assertWithin(a *Assertion, args ...any) error {
	start, finish, obj := Arg(args, 0), Arg(args, 1), a.Object()
	rng := Display(start) + ".." + Display(finish)

	if !isPlainNumber(start) || !isPlainNumber(finish) {
		return a.Fail(MethodWithin, "the arguments to within must be numbers")
	}

	if a.DoLength() {
		key, size, ok := Measure(obj)
		if !ok {
			return a.Fail(MethodWithin, fmt.Sprintf("expected %s to have property 'length'", Inspect(obj)))
		}

		return a.Assert(MethodWithin, inRange(size, start, finish),
			fmt.Sprintf("expected %s to have a %s within %s", Inspect(obj), key, rng),
			fmt.Sprintf("expected %s to not have a %s within %s", Inspect(obj), key, rng),
			rng, size,
		)
	}

	if !isPlainNumber(obj) {
		return a.Fail(MethodWithin, fmt.Sprintf("expected %s to be a number", Inspect(obj)))
	}

	return a.Assert(MethodWithin, inRange(obj, start, finish),
		fmt.Sprintf("expected %s to be within %s", Inspect(obj), rng),
		fmt.Sprintf("expected %s to not be within %s", Inspect(obj), rng),
		rng, obj,
	)
}

func inRange(v, start, finish any) bool {
	lo, loOrdered, _ := comparePlain(v, start)
	hi, hiOrdered, _ := comparePlain(v, finish)

	return loOrdered && hiOrdered && lo >= 0 && hi <= 0
}

func assertCloseTo(a *Assertion, args ...any) error {
	target, delta, obj := Arg(args, 0), Arg(args, 1), a.Object()

	if !isPlainNumber(target) || !isPlainNumber(delta) {
		return a.Misconfigured(MethodCloseTo, MsgDeltaRequired)
	}

	if !isPlainNumber(obj) {
		return a.Fail(MethodCloseTo, fmt.Sprintf("expected %s to be a number", Inspect(obj)))
	}

	return a.Assert(MethodCloseTo, withinTolerance(obj, target, delta),
		fmt.Sprintf("expected %s to be close to %s +/- %s", Inspect(obj), Display(target), Display(delta)),
		fmt.Sprintf("expected %s not to be close to %s +/- %s", Inspect(obj), Display(target), Display(delta)),
		target, obj,
	)
}
