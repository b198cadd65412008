// Package bigmatch teaches an expect.Registry to compare big numbers.
//
// Install decorates the equality, ordering, length, within and closeTo
// matchers. When any relevant operand is big-number-like (a *big.Int, a
// decimal.Decimal, an apd.Decimal or a uint256.Int) every operand is
// normalized to a *big.Int and compared exactly. Otherwise the matcher that
// was installed before runs untouched.
//
//	reg := expect.NewRegistry()
//	if err := bigmatch.Install(reg); err != nil {
//		return err
//	}
//
//	err := reg.Expect(ctx, big.NewInt(5)).Equal(5).Err()
//
// Operands that cannot be converted exactly, such as 1.5, fail with a
// *bignum.NormalizationError instead of an assertion failure.
package bigmatch
