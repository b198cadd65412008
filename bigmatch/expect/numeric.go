package expect

import (
	"math"
	"math/big"
	"reflect"

	"github.com/LerianStudio/lib-bigmatch/bigmatch/bignum"
)

// diffPrecision bounds the mantissa used for closeTo differences.
const diffPrecision = 256

func isPlainNumber(v any) bool {
	return bignum.Classify(v) == bignum.KindPlainNumber
}

// plainValue converts a plain Go number to an exact *big.Float. NaN has no
// big.Float form and is reported separately.
func plainValue(v any) (f *big.Float, nan, ok bool) {
	if !isPlainNumber(v) {
		return nil, false, false
	}

	rv := reflect.ValueOf(v)

	switch {
	case rv.CanInt():
		return new(big.Float).SetInt64(rv.Int()), false, true
	case rv.CanUint():
		return new(big.Float).SetUint64(rv.Uint()), false, true
	default:
		fv := rv.Float()
		if math.IsNaN(fv) {
			return nil, true, true
		}

		return new(big.Float).SetFloat64(fv), false, true
	}
}

// comparePlain three-way compares two plain numbers. ordered is false when
// either side is NaN; ok is false when either side is not a plain number.
func comparePlain(x, y any) (c int, ordered, ok bool) {
	fx, xNaN, xOK := plainValue(x)
	fy, yNaN, yOK := plainValue(y)

	if !xOK || !yOK {
		return 0, false, false
	}

	if xNaN || yNaN {
		return 0, false, true
	}

	return fx.Cmp(fy), true, true
}

// withinTolerance reports whether |x - target| <= delta for plain numbers.
func withinTolerance(x, target, delta any) bool {
	fx, xNaN, _ := plainValue(x)
	ft, tNaN, _ := plainValue(target)
	fd, dNaN, _ := plainValue(delta)

	if xNaN || tNaN || dNaN {
		return false
	}

	// Inf - Inf has no value, so it is never close to anything.
	if fx.IsInf() && ft.IsInf() {
		return false
	}

	diff := new(big.Float).SetPrec(diffPrecision).Sub(fx, ft)

	return diff.Abs(diff).Cmp(fd) <= 0
}
