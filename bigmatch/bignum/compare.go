package bignum

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
)

// ErrUnknownOp is returned by ParseOp for names it does not recognise.
var ErrUnknownOp = errors.New("unknown comparison operation")

// Op is a comparison operation over canonical integers.
type Op uint8

// The zero Op is not Valid.
const (
	// OpEqual holds when lhs == rhs.
	OpEqual Op = iota + 1
	// OpGreaterThan holds when lhs > rhs.
	OpGreaterThan
	// OpLessThan holds when lhs < rhs.
	OpLessThan
	// OpGreaterOrEqual holds when lhs >= rhs.
	OpGreaterOrEqual
	// OpLessOrEqual holds when lhs <= rhs.
	OpLessOrEqual
)

var opNames = map[Op]string{
	OpEqual:          "eq",
	OpGreaterThan:    "gt",
	OpLessThan:       "lt",
	OpGreaterOrEqual: "gte",
	OpLessOrEqual:    "lte",
}

// Ops lists every valid operation in declaration order.
func Ops() []Op {
	return []Op{OpEqual, OpGreaterThan, OpLessThan, OpGreaterOrEqual, OpLessOrEqual}
}

// String returns the short name of the operation.
func (o Op) String() string {
	if name, ok := opNames[o]; ok {
		return name
	}

	return fmt.Sprintf("Op(%d)", uint8(o))
}

// Valid reports whether o is one of the declared operations.
func (o Op) Valid() bool {
	_, ok := opNames[o]
	return ok
}

// ParseOp parses a short operation name (eq, gt, lt, gte, lte).
func ParseOp(s string) (Op, error) {
	name := strings.ToLower(strings.TrimSpace(s))

	for op, n := range opNames {
		if n == name {
			return op, nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownOp, s)
}

// Holds reports whether a three-way comparison result c (as returned by
// big.Int.Cmp) satisfies o. It panics on an invalid Op.
func (o Op) Holds(c int) bool {
	switch o {
	case OpEqual:
		return c == 0
	case OpGreaterThan:
		return c > 0
	case OpLessThan:
		return c < 0
	case OpGreaterOrEqual:
		return c >= 0
	case OpLessOrEqual:
		return c <= 0
	default:
		panic(fmt.Sprintf("bignum: invalid comparison operation %s", o))
	}
}

// Compare evaluates lhs <op> rhs. It panics on an invalid Op or a nil operand,
// both of which are programming errors.
func Compare(op Op, lhs, rhs *big.Int) bool {
	if lhs == nil || rhs == nil {
		panic("bignum: Compare called with nil operand")
	}

	return op.Holds(lhs.Cmp(rhs))
}

// AbsDiff returns a fresh |a - b|.
func AbsDiff(a, b *big.Int) *big.Int {
	d := new(big.Int).Sub(a, b)
	return d.Abs(d)
}

// InRange reports whether lo <= v <= hi.
func InRange(v, lo, hi *big.Int) bool {
	return Compare(OpGreaterOrEqual, v, lo) && Compare(OpLessOrEqual, v, hi)
}
