// core/algo/brent_salamin.go
package algo

import (
	"fmt"

	"github.com/cockroachdb/apd/v3"

	"picalc-core/dec"
	"picalc-core/memsize"
)

func init() {
	register(&Algorithm{
		Code:    7,
		Name:    "BRENT_SALAMIN",
		Aliases: []string{"GAUSS_LEGENDRE"},
		Title:   "Brent-Salamin formula (Gauss-Legendre algorithm)",
		Banner: []string{
			"Calculating an approximation of pi using the Brent-Salamin formula (or Gauss-Legendre algorithm):",
			"a=1, b=1/sqrt(2), t=1/4, p=1; pi ~ (a+b)^2 / (4t)",
		},
		Run: brentSalamin,
	})
}

// brentSalamin is the arithmetic-geometric-mean iteration: quadratic
// convergence, roughly doubling the accurate digits every pass.
//
//	a' = (a+b)/2;  b' = sqrt(ab);  t' = t - p*(a-a')^2;  p' = 2p
func brentSalamin(o Options) (*Result, error) {
	if err := o.validate(); err != nil {
		return nil, err
	}
	ctx := dec.Context(o.Precision)
	w := o.out()

	fail := func(err error) (*Result, error) {
		return nil, fmt.Errorf("brent-salamin: %w", err)
	}

	one := dec.FromInt64(1)
	two := dec.FromInt64(2)
	four := dec.FromInt64(4)

	a := apd.New(1, 0)
	b := new(apd.Decimal)
	if _, err := ctx.Sqrt(b, two); err != nil {
		return fail(err)
	}
	if _, err := ctx.Quo(b, one, b); err != nil {
		return fail(err)
	}
	t := new(apd.Decimal)
	if _, err := ctx.Quo(t, one, four); err != nil {
		return fail(err)
	}
	p := apd.New(1, 0)

	var result, prev *apd.Decimal
	res := &Result{}
	format := stepFormat(o.Iterations)

	approximate := func() (*apd.Decimal, error) {
		r := new(apd.Decimal)
		if _, err := ctx.Add(r, a, b); err != nil {
			return nil, err
		}
		if _, err := ctx.Mul(r, r, r); err != nil {
			return nil, err
		}
		den := new(apd.Decimal)
		if _, err := ctx.Mul(den, four, t); err != nil {
			return nil, err
		}
		if _, err := ctx.Quo(r, r, den); err != nil {
			return nil, err
		}
		return r, nil
	}

	for n := 0; n < o.Iterations; n++ {
		res.Iterations = n + 1
		if o.Flags.CompareValues {
			prev = result
		}
		if o.Flags.CompareValues || o.Flags.PrintSteps {
			r, err := approximate()
			if err != nil {
				return fail(err)
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

		aNext := new(apd.Decimal)
		if _, err := ctx.Add(aNext, a, b); err != nil {
			return fail(err)
		}
		if _, err := ctx.Quo(aNext, aNext, two); err != nil {
			return fail(err)
		}
		bNext := new(apd.Decimal)
		if _, err := ctx.Mul(bNext, a, b); err != nil {
			return fail(err)
		}
		if _, err := ctx.Sqrt(bNext, bNext); err != nil {
			return fail(err)
		}
		diff := new(apd.Decimal)
		if _, err := ctx.Sub(diff, a, aNext); err != nil {
			return fail(err)
		}
		if _, err := ctx.Mul(diff, diff, diff); err != nil {
			return fail(err)
		}
		if _, err := ctx.Mul(diff, p, diff); err != nil {
			return fail(err)
		}
		tNext := new(apd.Decimal)
		if _, err := ctx.Sub(tNext, t, diff); err != nil {
			return fail(err)
		}
		pNext := new(apd.Decimal)
		if _, err := ctx.Mul(pNext, two, p); err != nil {
			return fail(err)
		}
		a, b, t, p = aNext, bNext, tNext, pNext
	}
	if !o.Flags.PrintSteps {
		r, err := approximate()
		if err != nil {
			return fail(err)
		}
		result = r
	}
	if o.Flags.EstimateMemory {
		res.MemoryBytes = memsize.Decimal(a) + memsize.Decimal(b) +
			memsize.Decimal(t) + memsize.Decimal(p) +
			memsize.Decimal(result) + memsize.Decimal(prev)
		memsize.WriteUsage(w, res.MemoryBytes)
	}
	res.Approximation = result
	return res, nil
}
