package bignum

import (
	"math/big"
	"reflect"

	"github.com/cockroachdb/apd/v3"
	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"
)

// Kind is the closed classification of numeric operands.
type Kind uint8

const (
	// KindUnsupported covers every value that is not numeric, including nil
	// and typed-nil pointers to supported types.
	KindUnsupported Kind = iota
	// KindNativeInteger is *big.Int or big.Int.
	KindNativeInteger
	// KindWrappedBigNumber is a big number from a third-party numeric library.
	KindWrappedBigNumber
	// KindNumericString is a string, whether or not its content parses.
	KindNumericString
	// KindPlainNumber is a Go integer or floating point value.
	KindPlainNumber
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindNativeInteger:
		return "native integer"
	case KindWrappedBigNumber:
		return "wrapped big number"
	case KindNumericString:
		return "numeric string"
	case KindPlainNumber:
		return "plain number"
	default:
		return "unsupported"
	}
}

// Classify returns the Kind of v. It never panics.
func Classify(v any) Kind {
	switch x := v.(type) {
	case nil:
		return KindUnsupported
	case *big.Int:
		if x == nil {
			return KindUnsupported
		}

		return KindNativeInteger
	case big.Int:
		return KindNativeInteger
	case *decimal.Decimal:
		if x == nil {
			return KindUnsupported
		}

		return KindWrappedBigNumber
	case *apd.Decimal:
		if x == nil {
			return KindUnsupported
		}

		return KindWrappedBigNumber
	case *uint256.Int:
		if x == nil {
			return KindUnsupported
		}

		return KindWrappedBigNumber
	case decimal.Decimal, apd.Decimal, uint256.Int:
		return KindWrappedBigNumber
	case string:
		return KindNumericString
	}

	if plainKind(reflect.ValueOf(v).Kind()) {
		return KindPlainNumber
	}

	return KindUnsupported
}

// IsBigNumber reports whether v is a native integer or a wrapped big number.
func IsBigNumber(v any) bool {
	switch Classify(v) {
	case KindNativeInteger, KindWrappedBigNumber:
		return true
	default:
		return false
	}
}

// AnyBigNumber reports whether at least one of values is big-number-like.
func AnyBigNumber(values ...any) bool {
	for _, v := range values {
		if IsBigNumber(v) {
			return true
		}
	}

	return false
}

func plainKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}
