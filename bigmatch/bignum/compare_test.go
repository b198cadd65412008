//go:build unit

package bignum

import (
	"math/big"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompare(t *testing.T) {
	t.Parallel()

	one, two := big.NewInt(1), big.NewInt(2)

	tests := []struct {
		op       Op
		lhs, rhs *big.Int
		want     bool
	}{
		{OpEqual, one, one, true},
		{OpEqual, one, two, false},
		{OpGreaterThan, two, one, true},
		{OpGreaterThan, one, one, false},
		{OpLessThan, one, two, true},
		{OpLessThan, two, two, false},
		{OpGreaterOrEqual, one, one, true},
		{OpGreaterOrEqual, one, two, false},
		{OpLessOrEqual, two, two, true},
		{OpLessOrEqual, two, one, false},
	}

	for _, tt := range tests {

		tt := tt
		t.Run(tt.op.String()+" "+tt.lhs.String()+" "+tt.rhs.String(), func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, Compare(tt.op, tt.lhs, tt.rhs))
		})
	}
}

func TestCompare_TotalOrder(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(42))
	limit := new(big.Int).Lsh(big.NewInt(1), 256)

	for i := 0; i < 1000; i++ {
		a := new(big.Int).Rand(rng, limit)
		b := new(big.Int).Rand(rng, limit)

		if i%10 == 0 {
			b.Set(a)
		}

		if rng.Intn(2) == 0 {
			a.Neg(a)
		}

		lt, eq, gt := Compare(OpLessThan, a, b), Compare(OpEqual, a, b), Compare(OpGreaterThan, a, b)

		held := 0
		for _, v := range []bool{lt, eq, gt} {
			if v {
				held++
			}
		}

		require.Equal(t, 1, held, "a=%s b=%s", a, b)
		require.Equal(t, gt || eq, Compare(OpGreaterOrEqual, a, b))
		require.Equal(t, lt || eq, Compare(OpLessOrEqual, a, b))
		require.Equal(t, lt, Compare(OpGreaterThan, b, a))
	}
}

func TestCompare_PanicsOnMisuse(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { Compare(Op(0), big.NewInt(1), big.NewInt(1)) })
	assert.Panics(t, func() { Compare(OpEqual, nil, big.NewInt(1)) })
}

func TestParseOp(t *testing.T) {
	t.Parallel()

	for _, op := range Ops() {
		got, err := ParseOp(op.String())
		require.NoError(t, err)
		assert.Equal(t, op, got)
		assert.True(t, op.Valid())
	}

	got, err := ParseOp(" GTE ")
	require.NoError(t, err)
	assert.Equal(t, OpGreaterOrEqual, got)

	_, err = ParseOp("ne")
	require.ErrorIs(t, err, ErrUnknownOp)

	assert.False(t, Op(9).Valid())
	assert.Equal(t, "Op(9)", Op(9).String())
}

func TestAbsDiff(t *testing.T) {
	t.Parallel()

	a, b := big.NewInt(3), big.NewInt(10)

	assert.Equal(t, "7", AbsDiff(a, b).String())
	assert.Equal(t, "7", AbsDiff(b, a).String())
	assert.Equal(t, "3", a.String())
	assert.Equal(t, "10", b.String())
}

func TestInRange(t *testing.T) {
	t.Parallel()

	lo, hi := big.NewInt(1), big.NewInt(10)

	assert.True(t, InRange(big.NewInt(1), lo, hi))
	assert.True(t, InRange(big.NewInt(10), lo, hi))
	assert.False(t, InRange(big.NewInt(11), lo, hi))
	assert.False(t, InRange(big.NewInt(0), lo, hi))
}

func TestOpHolds(t *testing.T) {
	t.Parallel()

	assert.True(t, OpEqual.Holds(0))
	assert.False(t, OpEqual.Holds(1))
	assert.True(t, OpGreaterOrEqual.Holds(0))
	assert.True(t, OpLessThan.Holds(-1))
	assert.Panics(t, func() { Op(0).Holds(0) })
}
