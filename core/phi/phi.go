// core/phi/phi.go

// Package phi approximates the golden ratio as the ratio of successive
// terms of a Fibonacci-like series seeded with two caller-chosen positive
// integers. The series converges to φ regardless of the seed.
package phi

import (
	"fmt"
	"io"
	"math/big"
	"strings"

	"github.com/cockroachdb/apd/v3"

	"picalc-core/algo"
	"picalc-core/dec"
)

// Options parameterize one series run.
type Options struct {
	First, Second *big.Int
	Iterations    int
	Precision     int

	PrintSteps    bool
	CompareValues bool
	AllDigits     bool

	Out io.Writer // per-step lines; nil discards
}

// Result is the outcome of one series run. Accuracy is self-referential:
// the count of leading characters the final approximation shares with the
// previous one, minus the radix point. An Exact run (early convergence) is
// accurate to every computed digit.
type Result struct {
	Approximation  *apd.Decimal
	Iterations     int
	Exact          bool
	AccurateDigits int
	// Rendered is the approximation string, truncated to the accurate
	// prefix unless AllDigits was set.
	Rendered string
}

func (o Options) validate() error {
	if o.First == nil || o.First.Sign() <= 0 {
		return fmt.Errorf("%w: first term must be a positive integer", algo.ErrInvalidArgument)
	}
	if o.Second == nil || o.Second.Sign() <= 0 {
		return fmt.Errorf("%w: second term must be a positive integer", algo.ErrInvalidArgument)
	}
	if o.Iterations < 1 {
		return fmt.Errorf("%w: iterations must be a positive integer (got %d)", algo.ErrInvalidArgument, o.Iterations)
	}
	if o.Precision < 1 {
		return fmt.Errorf("%w: precision must be a positive integer (got %d)", algo.ErrInvalidArgument, o.Precision)
	}
	return nil
}

// FirstTerms renders the opening of the series for banners, e.g.
// "1, 1, 2, 3, 5, 8, 13, 21 ...".
func FirstTerms(first, second *big.Int, n int) string {
	terms := make([]string, 0, n)
	a := new(big.Int).Set(first)
	b := new(big.Int).Set(second)
	for i := 0; i < n; i++ {
		terms = append(terms, a.String())
		a, b = b, new(big.Int).Add(a, b)
	}
	return strings.Join(terms, ", ") + " ..."
}

// Series runs the recurrence. Each iteration divides the newest term by its
// predecessor under the shared context; the terms themselves stay exact.
func Series(o Options) (*Result, error) {
	if err := o.validate(); err != nil {
		return nil, err
	}
	ctx := dec.Context(o.Precision)
	w := o.Out
	if w == nil {
		w = io.Discard
	}

	prevTerm := new(big.Int).Set(o.First)
	nthTerm := new(big.Int).Set(o.Second)

	var approx, prevApprox *apd.Decimal
	res := &Result{}
	format := "%" + fmt.Sprint(len(fmt.Sprint(o.Iterations))) + "d: %s\n"

	quotient := func() (*apd.Decimal, error) {
		q := new(apd.Decimal)
		if _, err := ctx.Quo(q, dec.FromBig(nthTerm), dec.FromBig(prevTerm)); err != nil {
			return nil, fmt.Errorf("phi: %w", err)
		}
		return q, nil
	}

	for n := 1; n <= o.Iterations; n++ {
		res.Iterations = n
		if o.CompareValues || n == o.Iterations {
			prevApprox = approx
		}
		if o.CompareValues || o.PrintSteps || n >= o.Iterations-1 {
			q, err := quotient()
			if err != nil {
				return nil, err
			}
			approx = q
		}
		if o.PrintSteps {
			fmt.Fprintf(w, format, n, dec.String(approx))
		}
		if o.CompareValues && prevApprox != nil && approx.Cmp(prevApprox) == 0 {
			res.Exact = true
			break
		}
		if n != o.Iterations {
			prevTerm, nthTerm = nthTerm, new(big.Int).Add(prevTerm, nthTerm)
		}
	}

	res.Approximation = approx
	s := dec.String(approx)
	switch {
	case res.Exact || (prevApprox != nil && approx.Cmp(prevApprox) == 0):
		res.Exact = true
		res.AccurateDigits = len(s) - 1
		res.Rendered = s
	case prevApprox == nil:
		// Single iteration: nothing to compare against yet.
		res.AccurateDigits = 0
		res.Rendered = s
	default:
		p := dec.String(prevApprox)
		i := 0
		for i < len(s) && i < len(p) && s[i] == p[i] {
			i++
		}
		if i < 1 {
			res.AccurateDigits = 0
		} else {
			res.AccurateDigits = i - 1
		}
		res.Rendered = s
		if !o.AllDigits && i < len(s) {
			res.Rendered = s[:i]
		}
	}
	return res, nil
}
