package bigmatch

import (
	"fmt"
	"math/big"

	"github.com/LerianStudio/lib-bigmatch/bigmatch/bignum"
	constant "github.com/LerianStudio/lib-bigmatch/bigmatch/constants"
	"github.com/LerianStudio/lib-bigmatch/bigmatch/expect"
	"github.com/LerianStudio/lib-bigmatch/bigmatch/log"
)

func overwriteCloseTo(name string) expect.Builder {
	return func(original expect.Method) expect.Method {
		return func(a *expect.Assertion, args ...any) error {
			subject, target, delta := a.Object(), expect.Arg(args, 0), expect.Arg(args, 1)
			if !bignum.AnyBigNumber(subject, target, delta) {
				return delegate(a, name, original, args)
			}

			recordDispatch(a, name, constant.DispatchPathBigNumber)

			if delta == nil {
				return a.Misconfigured(name, expect.MsgDeltaRequired)
			}

			values, err := bignum.NormalizeAll(subject, target, delta)
			if err != nil {
				return err
			}

			v, t, d := values[0], values[1], values[2]
			recordOperands(a, name, log.BigInt("subject", v), log.BigInt("target", t), log.BigInt("delta", d))

			lo, hi := new(big.Int).Sub(t, d), new(big.Int).Add(t, d)

			return a.Assert(name, bignum.AbsDiff(v, t).Cmp(d) <= 0,
				fmt.Sprintf("expected %s to be close to %s +/- %s", v, t, d),
				fmt.Sprintf("expected %s not to be close to %s +/- %s", v, t, d),
				fmt.Sprintf("A number between %s and %s", lo, hi), v,
			)
		}
	}
}
