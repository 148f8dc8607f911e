// core/algo/chudnovsky.go
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
		Code:  6,
		Name:  "CHUDNOVSKY",
		Title: "Chudnovsky algorithm",
		Banner: []string{
			"Calculating an approximation of pi using the Chudnovsky algorithm:",
			"pi = 426880*sqrt(10005) / sum of M(n)*L(n)/X(n)",
		},
		Run: chudnovsky,
	})
}

// chudnovsky runs the four-term recurrence
//
//	L += 545140134;  X *= -262537412640768000;  K += 12
//	M *= (K^3 - 16K) / (n+1)^3
//
// adding M*L/X to the running sum each iteration; the approximation is
// C/sum with C = 426880*sqrt(10005). L, X and K are exact integers; M picks
// up rounding only through its cubic ratio.
func chudnovsky(o Options) (*Result, error) {
	if err := o.validate(); err != nil {
		return nil, err
	}
	ctx := dec.Context(o.Precision)
	w := o.out()

	c := new(apd.Decimal)
	if _, err := ctx.Sqrt(c, dec.FromInt64(10005)); err != nil {
		return nil, fmt.Errorf("chudnovsky: %w", err)
	}
	if _, err := ctx.Mul(c, c, dec.FromInt64(426880)); err != nil {
		return nil, fmt.Errorf("chudnovsky: %w", err)
	}

	l := big.NewInt(13591409)
	x := big.NewInt(1)
	k := big.NewInt(6)
	m := apd.New(1, 0)
	sum := apd.New(0, 0)

	lAddend := big.NewInt(545140134)
	xMultiplicand := big.NewInt(-262537412640768000)
	sixteen := big.NewInt(16)
	twelve := big.NewInt(12)

	var result, prev *apd.Decimal
	res := &Result{}
	format := stepFormat(o.Iterations)

	approximate := func() (*apd.Decimal, error) {
		r := new(apd.Decimal)
		if _, err := ctx.Quo(r, c, sum); err != nil {
			return nil, fmt.Errorf("chudnovsky: %w", err)
		}
		return r, nil
	}

	for n := 0; n < o.Iterations; n++ {
		term := new(apd.Decimal)
		if _, err := ctx.Mul(term, m, dec.FromBig(l)); err != nil {
			return nil, fmt.Errorf("chudnovsky: %w", err)
		}
		if _, err := ctx.Quo(term, term, dec.FromBig(x)); err != nil {
			return nil, fmt.Errorf("chudnovsky: %w", err)
		}
		if _, err := ctx.Add(sum, sum, term); err != nil {
			return nil, fmt.Errorf("chudnovsky: %w", err)
		}

		res.Iterations = n + 1
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
			emitStep(res, w, format, n+1, result)
		}
		if o.Flags.CompareValues && converged(prev, result) {
			res.Converged = true
			break
		}

		// Advance the recurrence for the next term.
		multNum := new(big.Int).Mul(k, k)
		multNum.Mul(multNum, k)
		multNum.Sub(multNum, new(big.Int).Mul(sixteen, k))
		cube := big.NewInt(int64(n + 1))
		cube.Mul(cube, cube).Mul(cube, big.NewInt(int64(n+1)))

		ratio := new(apd.Decimal)
		if _, err := ctx.Quo(ratio, dec.FromBig(multNum), dec.FromBig(cube)); err != nil {
			return nil, fmt.Errorf("chudnovsky: %w", err)
		}
		if _, err := ctx.Mul(m, m, ratio); err != nil {
			return nil, fmt.Errorf("chudnovsky: %w", err)
		}
		l.Add(l, lAddend)
		x.Mul(x, xMultiplicand)
		k.Add(k, twelve)
	}
	if !o.Flags.PrintSteps {
		r, err := approximate()
		if err != nil {
			return nil, err
		}
		result = r
	}
	if o.Flags.EstimateMemory {
		res.MemoryBytes = memsize.Decimal(c) + memsize.Int(l) + memsize.Int(x) +
			memsize.Int(k) + memsize.Decimal(m) + memsize.Decimal(sum) +
			memsize.Int(lAddend) + memsize.Int(xMultiplicand) +
			memsize.Decimal(result) + memsize.Decimal(prev)
		memsize.WriteUsage(w, res.MemoryBytes)
	}
	res.Approximation = result
	return res, nil
}
