package bigmatch

import (
	"fmt"
	"math/big"

	"github.com/LerianStudio/lib-bigmatch/bigmatch/bignum"
	constant "github.com/LerianStudio/lib-bigmatch/bigmatch/constants"
	"github.com/LerianStudio/lib-bigmatch/bigmatch/expect"
	"github.com/LerianStudio/lib-bigmatch/bigmatch/log"
)

func overwriteLength(name string) expect.Builder {
	return func(original expect.Method) expect.Method {
		return func(a *expect.Assertion, args ...any) error {
			arg, subject := expect.Arg(args, 0), a.Object()
			if !bignum.IsBigNumber(arg) {
				return delegate(a, name, original, args)
			}

			key, size, ok := expect.Measure(subject)
			if !ok {
				return delegate(a, name, original, args)
			}

			recordDispatch(a, name, constant.DispatchPathBigNumber)

			want, err := bignum.Normalize(arg)
			if err != nil {
				return err
			}

			got := big.NewInt(int64(size))
			recordOperands(a, name, log.String("key", key), log.BigInt("measured", got), log.BigInt("expected", want))

			return a.Assert(name, got.Cmp(want) == 0,
				fmt.Sprintf("expected %s to have a %s of %s but got %s", expect.Inspect(subject), key, want, got),
				fmt.Sprintf("expected %s not to have a %s of %s but got %s", expect.Inspect(subject), key, want, got),
				want, got,
			)
		}
	}
}

// overwriteLengthChain keeps the property form intact so qualifiers such as
// Above still see the length flag.
func overwriteLengthChain(original expect.ChainFunc) expect.ChainFunc {
	return func(a *expect.Assertion) error {
		return original(a)
	}
}
