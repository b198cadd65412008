package bigmatch

import (
	"fmt"

	"github.com/LerianStudio/lib-bigmatch/bigmatch/bignum"
	constant "github.com/LerianStudio/lib-bigmatch/bigmatch/constants"
	"github.com/LerianStudio/lib-bigmatch/bigmatch/expect"
	"github.com/LerianStudio/lib-bigmatch/bigmatch/log"
)

func overwriteWithin(name string) expect.Builder {
	return func(original expect.Method) expect.Method {
		return func(a *expect.Assertion, args ...any) error {
			subject, start, finish := a.Object(), expect.Arg(args, 0), expect.Arg(args, 1)
			if !bignum.AnyBigNumber(subject, start, finish) {
				return delegate(a, name, original, args)
			}

			recordDispatch(a, name, constant.DispatchPathBigNumber)

			values, err := bignum.NormalizeAll(subject, start, finish)
			if err != nil {
				return err
			}

			v, lo, hi := values[0], values[1], values[2]
			recordOperands(a, name, log.BigInt("subject", v), log.BigInt("start", lo), log.BigInt("finish", hi))

			rng := fmt.Sprintf("%s..%s", lo, hi)

			return a.Assert(name, bignum.InRange(v, lo, hi),
				fmt.Sprintf("expected %s to be within %s", v, rng),
				fmt.Sprintf("expected %s to not be within %s", v, rng),
				rng, v,
			)
		}
	}
}
