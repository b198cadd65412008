package bignum

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"reflect"
	"strings"

	"github.com/cockroachdb/apd/v3"
	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/constraints"
)

// ErrNormalization is the sentinel wrapped by every NormalizationError.
var ErrNormalization = errors.New("normalization failed")

// NormalizationError reports a value that cannot be converted to an integer
// without losing information.
type NormalizationError struct {
	Value  any
	Type   string
	Reason string
}

// Error returns the formatted normalization failure.
func (e *NormalizationError) Error() string {
	if e == nil {
		return ErrNormalization.Error()
	}

	return fmt.Sprintf("cannot normalize %s value %v to an integer: %s", e.Type, e.Value, e.Reason)
}

// Unwrap returns ErrNormalization for errors.Is.
func (e *NormalizationError) Unwrap() error {
	return ErrNormalization
}

const (
	reasonUnsupported = "unsupported type"
	reasonNil         = "value is nil"
	reasonFractional  = "value has a fractional component"
	reasonNotFinite   = "value is not a finite number"
	reasonNotDecimal  = "string is not a decimal integer"
)

func normalizationError(v any, reason string) *NormalizationError {
	return &NormalizationError{Value: v, Type: FormatNumberType(v), Reason: reason}
}

// Normalize converts v to a freshly allocated *big.Int. The input is never
// retained or mutated.
func Normalize(v any) (*big.Int, error) {
	switch x := v.(type) {
	case nil:
		return nil, normalizationError(v, reasonNil)
	case *big.Int:
		if x == nil {
			return nil, normalizationError(v, reasonNil)
		}

		return new(big.Int).Set(x), nil
	case big.Int:
		return new(big.Int).Set(&x), nil
	case decimal.Decimal:
		return fromDecimal(x, v)
	case *decimal.Decimal:
		if x == nil {
			return nil, normalizationError(v, reasonNil)
		}

		return fromDecimal(*x, v)
	case apd.Decimal:
		return fromAPD(&x, v)
	case *apd.Decimal:
		if x == nil {
			return nil, normalizationError(v, reasonNil)
		}

		return fromAPD(x, v)
	case uint256.Int:
		return x.ToBig(), nil
	case *uint256.Int:
		if x == nil {
			return nil, normalizationError(v, reasonNil)
		}

		return x.ToBig(), nil
	case string:
		return fromString(x, v)
	case int:
		return fromSigned(x), nil
	case int8:
		return fromSigned(x), nil
	case int16:
		return fromSigned(x), nil
	case int32:
		return fromSigned(x), nil
	case int64:
		return fromSigned(x), nil
	case uint:
		return fromUnsigned(x), nil
	case uint8:
		return fromUnsigned(x), nil
	case uint16:
		return fromUnsigned(x), nil
	case uint32:
		return fromUnsigned(x), nil
	case uint64:
		return fromUnsigned(x), nil
	case uintptr:
		return fromUnsigned(x), nil
	case float32:
		return fromFloat(x, v)
	case float64:
		return fromFloat(x, v)
	}

	return fromNamedPlain(v)
}

// MustNormalize is like Normalize but panics on error. Intended for fixtures.
func MustNormalize(v any) *big.Int {
	n, err := Normalize(v)
	if err != nil {
		panic(err)
	}

	return n
}

// NormalizeAll normalizes every value, stopping at the first failure.
func NormalizeAll(values ...any) ([]*big.Int, error) {
	out := make([]*big.Int, len(values))

	for i, v := range values {
		n, err := Normalize(v)
		if err != nil {
			return nil, err
		}

		out[i] = n
	}

	return out, nil
}

func fromSigned[T constraints.Signed](n T) *big.Int {
	return big.NewInt(int64(n))
}

func fromUnsigned[T constraints.Unsigned](n T) *big.Int {
	return new(big.Int).SetUint64(uint64(n))
}

func fromFloat[T constraints.Float](f T, original any) (*big.Int, error) {
	value := float64(f)

	if math.IsNaN(value) || math.IsInf(value, 0) {
		return nil, normalizationError(original, reasonNotFinite)
	}

	if value != math.Trunc(value) {
		return nil, normalizationError(original, reasonFractional)
	}

	// Integral finite floats convert exactly.
	n, _ := big.NewFloat(value).Int(nil)

	return n, nil
}

// fromNamedPlain handles named types whose underlying kind is numeric, such as
// `type Wei uint64`.
func fromNamedPlain(v any) (*big.Int, error) {
	rv := reflect.ValueOf(v)

	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return fromSigned(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return fromUnsigned(rv.Uint()), nil
	case reflect.Float32, reflect.Float64:
		return fromFloat(rv.Float(), v)
	default:
		return nil, normalizationError(v, reasonUnsupported)
	}
}

func fromString(s string, original any) (*big.Int, error) {
	trimmed := strings.TrimSpace(s)
	if !isDecimalInteger(trimmed) {
		return nil, normalizationError(original, reasonNotDecimal)
	}

	n, ok := new(big.Int).SetString(trimmed, 10)
	if !ok {
		return nil, normalizationError(original, reasonNotDecimal)
	}

	return n, nil
}

func isDecimalInteger(s string) bool {
	if s != "" && (s[0] == '+' || s[0] == '-') {
		s = s[1:]
	}

	if s == "" {
		return false
	}

	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}

	return true
}

func fromDecimal(d decimal.Decimal, original any) (*big.Int, error) {
	n := d.BigInt()
	if !decimal.NewFromBigInt(n, 0).Equal(d) {
		return nil, normalizationError(original, reasonFractional)
	}

	return n, nil
}

func fromAPD(d *apd.Decimal, original any) (*big.Int, error) {
	if d.Form != apd.Finite {
		return nil, normalizationError(original, reasonNotFinite)
	}

	// 'f' never uses exponent notation, so the integer part is plain digits.
	intPart, fracPart, _ := strings.Cut(d.Text('f'), ".")
	if strings.Trim(fracPart, "0") != "" {
		return nil, normalizationError(original, reasonFractional)
	}

	n, ok := new(big.Int).SetString(intPart, 10)
	if !ok {
		return nil, normalizationError(original, reasonUnsupported)
	}

	return n, nil
}
