package bignum

import (
	"fmt"
	"math/big"

	"github.com/cockroachdb/apd/v3"
	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"
)

// FormatNumberType returns a label naming the representation of v, for use in
// diagnostic messages only.
func FormatNumberType(v any) string {
	switch v.(type) {
	case nil:
		return "nil"
	case *big.Int, big.Int:
		return "big.Int"
	case *decimal.Decimal, decimal.Decimal:
		return "decimal.Decimal"
	case *apd.Decimal, apd.Decimal:
		return "apd.Decimal"
	case *uint256.Int, uint256.Int:
		return "uint256.Int"
	case string:
		return "string"
	default:
		return fmt.Sprintf("%T", v)
	}
}

// Format renders a numeric value in plain decimal notation. Non-numeric values
// fall back to %v.
func Format(v any) string {
	switch x := v.(type) {
	case nil:
		return "nil"
	case *big.Int:
		if x == nil {
			return "nil"
		}

		return x.String()
	case big.Int:
		return x.String()
	case decimal.Decimal:
		return x.String()
	case *decimal.Decimal:
		if x == nil {
			return "nil"
		}

		return x.String()
	case apd.Decimal:
		return x.Text('f')
	case *apd.Decimal:
		if x == nil {
			return "nil"
		}

		return x.Text('f')
	case uint256.Int:
		return x.Dec()
	case *uint256.Int:
		if x == nil {
			return "nil"
		}

		return x.Dec()
	case string:
		return x
	default:
		return fmt.Sprintf("%v", v)
	}
}
