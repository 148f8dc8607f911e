// core/dec/dec.go
package dec

import (
	"math/big"

	"github.com/cockroachdb/apd/v3"
)

// Context returns the shared arithmetic context: the requested number of
// significant digits with round-half-up rounding. All engines route their
// divisions and square roots through one of these so results stay comparable
// at equal precision. precision must be ≥ 1 (callers validate).
func Context(precision int) *apd.Context {
	ctx := apd.BaseContext.WithPrecision(uint32(precision))
	ctx.Rounding = apd.RoundHalfUp
	return ctx
}

// FromBig converts an exact integer accumulator into a decimal.
func FromBig(x *big.Int) *apd.Decimal {
	var c apd.BigInt
	c.SetMathBigInt(x)
	return apd.NewWithBigInt(&c, 0)
}

// FromInt64 returns x as a decimal.
func FromInt64(x int64) *apd.Decimal { return apd.New(x, 0) }

// String renders d in plain (non-scientific) form. This is the canonical
// shape: step output, the accuracy comparator, and the examiner's scratch
// file parser all agree on it.
func String(d *apd.Decimal) string { return d.Text('f') }
