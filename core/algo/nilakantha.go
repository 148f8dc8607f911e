// core/algo/nilakantha.go
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
		Code:  2,
		Name:  "NILAKANTHA",
		Title: "Nilakantha series",
		Banner: []string{
			"Calculating an approximation of pi using the Nilakantha series:",
			"pi = 3 + 4/(2*3*4) - 4/(4*5*6) + 4/(6*7*8) - 4/(8*9*10) ...",
		},
		Run: nilakantha,
	})
}

// nilakantha starts the sum at 3 and merges the alternating terms
// 4/((2n)(2n+1)(2n+2)) into one exact fraction by cross-multiplication.
func nilakantha(o Options) (*Result, error) {
	if err := o.validate(); err != nil {
		return nil, err
	}
	ctx := dec.Context(o.Precision)
	w := o.out()

	num := big.NewInt(3)
	den := big.NewInt(1)
	four := big.NewInt(4)
	negate := false

	var result, prev *apd.Decimal
	res := &Result{}
	format := stepFormat(o.Iterations)

	quotient := func() (*apd.Decimal, error) {
		q := new(apd.Decimal)
		if _, err := ctx.Quo(q, dec.FromBig(num), dec.FromBig(den)); err != nil {
			return nil, fmt.Errorf("nilakantha: %w", err)
		}
		return q, nil
	}

	for n := 1; n <= o.Iterations; n++ {
		nextNum := new(big.Int).Set(four)
		if negate {
			nextNum.Neg(nextNum)
		}
		even := int64(2 * n)
		nextDen := big.NewInt(even)
		nextDen.Mul(nextDen, big.NewInt(even+1))
		nextDen.Mul(nextDen, big.NewInt(even+2))
		nextNum.Mul(nextNum, den)

		num.Mul(num, nextDen)
		num.Add(num, nextNum)
		den.Mul(den, nextDen)
		negate = !negate

		res.Iterations = n
		if o.Flags.CompareValues {
			prev = result
		}
		if o.Flags.CompareValues || o.Flags.PrintSteps {
			q, err := quotient()
			if err != nil {
				return nil, err
			}
			result = q
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
		q, err := quotient()
		if err != nil {
			return nil, err
		}
		result = q
	}
	if o.Flags.EstimateMemory {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "numerator:   %s\n", sciNotation(num))
		fmt.Fprintf(w, "denominator: %s\n", sciNotation(den))
		res.MemoryBytes = memsize.Int(num) + memsize.Int(den) + memsize.Int(four) +
			memsize.Decimal(result) + memsize.Decimal(prev)
		memsize.WriteUsage(w, res.MemoryBytes)
	}
	res.Approximation = result
	return res, nil
}
