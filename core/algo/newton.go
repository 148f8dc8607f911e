// core/algo/newton.go
package algo

import (
	"fmt"
	"math/big"

	"github.com/cockroachdb/apd/v3"

	"picalc-core/dec"
	"picalc-core/memsize"
)

func init() {
	register(&Algorithm{
		Code:  3,
		Name:  "NEWTON",
		Title: "Newton method",
		Banner: []string{
			"Calculating an approximation of pi using Issac Newton's method:",
			"pi = (3*sqrt(3))/4 + 24 * sum of -(2n-2)! / (2^(4n-2) * ((n-1)!)^2 * (2n-3) * (2n+1))",
		},
		Run: newton,
	})
}

// newton sums the alternating factorial series
//
//	term(n) = -(2n-2)! / (2^(4n-2) * ((n-1)!)^2 * (2n-3) * (2n+1))
//
// around the closed first term (3*sqrt(3))/4. The alternating sign falls out
// of the (2n-3) factor, which is negative only at n=1. Term numerator and
// denominator stay exact integers; only the per-term division rounds.
func newton(o Options) (*Result, error) {
	if err := o.validate(); err != nil {
		return nil, err
	}
	ctx := dec.Context(o.Precision)
	w := o.out()

	three := dec.FromInt64(3)
	twentyFour := dec.FromInt64(24)

	firstTerm := new(apd.Decimal)
	if _, err := ctx.Sqrt(firstTerm, three); err != nil {
		return nil, fmt.Errorf("newton: %w", err)
	}
	if _, err := ctx.Mul(firstTerm, firstTerm, three); err != nil {
		return nil, fmt.Errorf("newton: %w", err)
	}
	if _, err := ctx.Quo(firstTerm, firstTerm, dec.FromInt64(4)); err != nil {
		return nil, fmt.Errorf("newton: %w", err)
	}

	sum := apd.New(0, 0)
	var result, prev *apd.Decimal
	res := &Result{}
	format := stepFormat(o.Iterations)

	approximate := func() (*apd.Decimal, error) {
		r := new(apd.Decimal)
		if _, err := ctx.Mul(r, twentyFour, sum); err != nil {
			return nil, fmt.Errorf("newton: %w", err)
		}
		if _, err := ctx.Add(r, firstTerm, r); err != nil {
			return nil, fmt.Errorf("newton: %w", err)
		}
		return r, nil
	}

	for n := 1; n <= o.Iterations; n++ {
		numerator := factorial(2*n - 2)
		numerator.Neg(numerator)

		denominator := new(big.Int).Lsh(big.NewInt(1), uint(4*n-2))
		sq := factorial(n - 1)
		sq.Mul(sq, sq)
		denominator.Mul(denominator, sq)
		denominator.Mul(denominator, big.NewInt(int64(2*n-3)))
		denominator.Mul(denominator, big.NewInt(int64(2*n+1)))

		term := new(apd.Decimal)
		if _, err := ctx.Quo(term, dec.FromBig(numerator), dec.FromBig(denominator)); err != nil {
			return nil, fmt.Errorf("newton: %w", err)
		}
		if _, err := ctx.Add(sum, sum, term); err != nil {
			return nil, fmt.Errorf("newton: %w", err)
		}

		res.Iterations = n
		if o.Flags.CompareValues {
			prev = result
		}
		if o.Flags.CompareValues || o.Flags.PrintSteps {
			r, err := approximate()
			if err != nil {
				return nil, err
			}
			result = r
		}
		if o.Flags.PrintSteps {
			emitStep(res, w, format, n, result)
		}
		if o.Flags.CompareValues && converged(prev, result) {
			res.Converged = true
			break
		}
	}
	if !o.Flags.PrintSteps {
		r, err := approximate()
		if err != nil {
			return nil, err
		}
		result = r
	}
	if o.Flags.EstimateMemory {
		res.MemoryBytes = memsize.Decimal(firstTerm) + memsize.Decimal(sum) +
			memsize.Decimal(twentyFour) + memsize.Decimal(result) + memsize.Decimal(prev)
		memsize.WriteUsage(w, res.MemoryBytes)
	}
	res.Approximation = result
	return res, nil
}

// factorial computes n! exactly; n ≤ 1 yields 1.
func factorial(n int) *big.Int {
	if n <= 1 {
		return big.NewInt(1)
	}
	return new(big.Int).MulRange(1, int64(n))
}
