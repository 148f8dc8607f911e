// core/algo/viete.go
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
		Code:  4,
		Name:  "VIETE",
		Title: "Viete formula",
		Banner: []string{
			"Calculating an approximation of pi using Viete's formula:",
			"2/pi = (sqrt(2)/2) * (sqrt(2+sqrt(2))/2) * (sqrt(2+sqrt(2+sqrt(2)))/2) ...",
		},
		Run: viete,
	})
}

// viete keeps the nested-radical product as a fraction 2^n / (a_0*a_1*...),
// where a_0 = sqrt(2) and a_n = sqrt(2+a_{n-1}). Accumulating the
// denominator as a running product avoids inverting the partial product
// every iteration.
func viete(o Options) (*Result, error) {
	if err := o.validate(); err != nil {
		return nil, err
	}
	ctx := dec.Context(o.Precision)
	w := o.out()

	two := dec.FromInt64(2)
	a := new(apd.Decimal)
	if _, err := ctx.Sqrt(a, two); err != nil {
		return nil, fmt.Errorf("viete: %w", err)
	}

	num := big.NewInt(1) // exact power of two
	den := apd.New(1, 0)

	var result, prev *apd.Decimal
	res := &Result{}
	format := stepFormat(o.Iterations)

	approximate := func() (*apd.Decimal, error) {
		r := new(apd.Decimal)
		if _, err := ctx.Quo(r, dec.FromBig(num), den); err != nil {
			return nil, fmt.Errorf("viete: %w", err)
		}
		if _, err := ctx.Mul(r, r, two); err != nil {
			return nil, fmt.Errorf("viete: %w", err)
		}
		return r, nil
	}

	for n := 1; n <= o.Iterations; n++ {
		num.Lsh(num, 1)
		if _, err := ctx.Mul(den, den, a); err != nil {
			return nil, fmt.Errorf("viete: %w", err)
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
		// Deepen the radical only after the convergence check; the last
		// compared approximation belongs to the current a.
		if _, err := ctx.Add(a, a, two); err != nil {
			return nil, fmt.Errorf("viete: %w", err)
		}
		if _, err := ctx.Sqrt(a, a); err != nil {
			return nil, fmt.Errorf("viete: %w", err)
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
		res.MemoryBytes = memsize.Decimal(a) + memsize.Int(num) + memsize.Decimal(den) +
			memsize.Decimal(two) + memsize.Decimal(result) + memsize.Decimal(prev)
		memsize.WriteUsage(w, res.MemoryBytes)
	}
	res.Approximation = result
	return res, nil
}
