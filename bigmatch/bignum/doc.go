// Package bignum classifies numeric operands and converts them to one canonical
// arbitrary-precision integer (*big.Int).
//
// Supported representations form a closed set:
//
//   - native integers: *big.Int and big.Int
//   - wrapped big numbers: shopspring decimal.Decimal, cockroachdb apd.Decimal
//     and holiman uint256.Int (value or pointer)
//   - numeric strings: optional sign followed by decimal digits
//   - plain numbers: Go integer and floating point kinds, named types included
//
// Only native integers and wrapped big numbers are "big-number-like". Plain
// numbers and strings normalize, but never trigger the big-number path of a
// matcher on their own.
//
// Normalization is exact. Values with a fractional part, NaN or infinities are
// rejected with a *NormalizationError instead of being truncated.
package bignum
