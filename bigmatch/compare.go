package bigmatch

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/LerianStudio/lib-bigmatch/bigmatch/bignum"
	constant "github.com/LerianStudio/lib-bigmatch/bigmatch/constants"
	"github.com/LerianStudio/lib-bigmatch/bigmatch/expect"
	"github.com/LerianStudio/lib-bigmatch/bigmatch/log"
)

// comparison parameterises the equality and ordering overrides.
type comparison struct {
	op               bignum.Op
	readable         string
	readableNegative string
	methods          []string
}

func comparisons() []comparison {
	return []comparison{
		{op: bignum.OpEqual, readable: "equal", readableNegative: "not equal",
			methods: []string{expect.MethodEquals, expect.MethodEqual, expect.MethodEq}},
		{op: bignum.OpGreaterThan, readable: "be above", readableNegative: "be at most",
			methods: []string{expect.MethodAbove, expect.MethodGt, expect.MethodGreaterThan}},
		{op: bignum.OpLessThan, readable: "be below", readableNegative: "be at least",
			methods: []string{expect.MethodBelow, expect.MethodLt, expect.MethodLessThan}},
		{op: bignum.OpGreaterOrEqual, readable: "be at least", readableNegative: "be below",
			methods: []string{expect.MethodLeast, expect.MethodGte, expect.MethodGreaterThanOrEqual}},
		{op: bignum.OpLessOrEqual, readable: "be at most", readableNegative: "be above",
			methods: []string{expect.MethodMost, expect.MethodLte, expect.MethodLessThanOrEqual}},
	}
}

func overwriteComparison(name string, c comparison) expect.Builder {
	return func(original expect.Method) expect.Method {
		return func(a *expect.Assertion, args ...any) error {
			subject, arg := a.Object(), expect.Arg(args, 0)

			switch {
			case a.DoLength() && bignum.IsBigNumber(arg):
				return compareLength(a, name, c, original, args)
			case bignum.IsBigNumber(subject) || bignum.IsBigNumber(arg):
				recordDispatch(a, name, constant.DispatchPathBigNumber)

				lhs, err := bignum.Normalize(subject)
				if err != nil {
					return err
				}

				rhs, err := bignum.Normalize(arg)
				if err != nil {
					return err
				}

				recordOperands(a, name, log.BigInt("lhs", lhs), log.BigInt("rhs", rhs))

				suffix := fmt.Sprintf(`. The numerical values of the given "%s" and "%s" inputs were compared, and they differed.`,
					bignum.FormatNumberType(subject), bignum.FormatNumberType(arg))

				return a.Assert(name, bignum.Compare(c.op, lhs, rhs),
					fmt.Sprintf("expected %s to %s %s%s", bignum.Format(subject), c.readable, bignum.Format(arg), suffix),
					fmt.Sprintf("expected %s to %s %s%s", bignum.Format(subject), c.readableNegative, bignum.Format(arg), suffix),
					rhs, lhs,
				)
			default:
				return delegate(a, name, original, args)
			}
		}
	}
}

// compareLength handles an ordering qualifier after Length() with a big
// number argument.
func compareLength(a *expect.Assertion, name string, c comparison, original expect.Method, args []any) error {
	subject := a.Object()

	key, size, ok := expect.Measure(subject)
	if !ok {
		return delegate(a, name, original, args)
	}

	recordDispatch(a, name, constant.DispatchPathBigNumber)

	want, err := bignum.Normalize(expect.Arg(args, 0))
	if err != nil {
		return err
	}

	got := big.NewInt(int64(size))
	recordOperands(a, name, log.String("key", key), log.BigInt("measured", got), log.BigInt("expected", want))

	return a.Assert(name, bignum.Compare(c.op, got, want),
		fmt.Sprintf("expected %s to have a %s %s %s but got %s",
			expect.Inspect(subject), key, strings.Replace(c.readable, "be ", "", 1), want, got),
		fmt.Sprintf("expected %s to have a %s %s %s",
			expect.Inspect(subject), key, c.readableNegative, want),
		want, got,
	)
}
