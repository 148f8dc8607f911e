// core/algo/wallis.go
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
		Code:  5,
		Name:  "WALLIS",
		Title: "Wallis product",
		Banner: []string{
			"Calculating an approximation of pi using the Wallis product:",
			"pi/2 = (2/1)*(2/3) * (4/3)*(4/5) * (6/5)*(6/7) ...",
		},
		Run: wallis,
	})
}

// wallis accumulates the product pairwise: each iteration multiplies the
// exact fraction by 4n^2 / ((2n-1)(2n+1)).
func wallis(o Options) (*Result, error) {
	if err := o.validate(); err != nil {
		return nil, err
	}
	ctx := dec.Context(o.Precision)
	w := o.out()

	num := big.NewInt(1)
	den := big.NewInt(1)
	two := dec.FromInt64(2)

	var result, prev *apd.Decimal
	res := &Result{}
	format := stepFormat(o.Iterations)

	approximate := func() (*apd.Decimal, error) {
		r := new(apd.Decimal)
		if _, err := ctx.Quo(r, dec.FromBig(num), dec.FromBig(den)); err != nil {
			return nil, fmt.Errorf("wallis: %w", err)
		}
		if _, err := ctx.Mul(r, r, two); err != nil {
			return nil, fmt.Errorf("wallis: %w", err)
		}
		return r, nil
	}

	for n := 1; n <= o.Iterations; n++ {
		k := int64(n)
		num.Mul(num, big.NewInt(4*k*k))
		den.Mul(den, big.NewInt((2*k-1)*(2*k+1)))

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
		res.MemoryBytes = memsize.Int(num) + memsize.Int(den) + memsize.Decimal(two) +
			memsize.Decimal(result) + memsize.Decimal(prev)
		memsize.WriteUsage(w, res.MemoryBytes)
	}
	res.Approximation = result
	return res, nil
}
