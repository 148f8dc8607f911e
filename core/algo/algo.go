// core/algo/algo.go

// Package algo implements the iterative π approximation engines. Each engine
// is a self-contained recurrence sharing one protocol: mutate state, emit the
// current approximation when asked, stop early once successive values agree
// at the configured precision, and report an estimate of live-state memory
// afterwards.
package algo

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/cockroachdb/apd/v3"

	"picalc-core/dec"
)

// ErrInvalidArgument reports configuration an engine refuses to start with.
var ErrInvalidArgument = errors.New("invalid argument")

// Flags alter engine behavior for a single invocation.
type Flags struct {
	PrintSteps     bool // emit the approximation at every iteration
	CompareValues  bool // stop early once successive approximations are equal
	AllDigits      bool // downstream report shows every computed digit
	EstimateMemory bool // report bytes held by live state afterwards
}

// Options parameterize one engine invocation.
type Options struct {
	Iterations int
	Precision  int
	Flags      Flags
	// Out receives per-step lines, digit milestones, and the memory-usage
	// line as the engine runs. Nil discards them; Result records the steps
	// either way when PrintSteps is set.
	Out io.Writer
}

func (o Options) validate() error {
	if o.Iterations < 1 {
		return fmt.Errorf("%w: iterations must be a positive integer (got %d)", ErrInvalidArgument, o.Iterations)
	}
	if o.Precision < 1 {
		return fmt.Errorf("%w: precision must be a positive integer (got %d)", ErrInvalidArgument, o.Precision)
	}
	return nil
}

func (o Options) out() io.Writer {
	if o.Out == nil {
		return io.Discard
	}
	return o.Out
}

// Step is one recorded per-iteration approximation.
type Step struct {
	Index int
	Value string
}

// Result is the structured outcome of one engine invocation.
type Result struct {
	Approximation *apd.Decimal
	Steps         []Step // filled when Flags.PrintSteps
	Iterations    int    // iterations actually executed
	Converged     bool   // stopped early: successive values equal at precision
	MemoryBytes   int    // filled when Flags.EstimateMemory
}

// String returns the canonical plain-form approximation.
func (r *Result) String() string { return dec.String(r.Approximation) }

// Func runs one algorithm to completion (or early convergence).
type Func func(Options) (*Result, error)

// stepFormat right-aligns iteration indices to the decimal width of N.
func stepFormat(iterations int) string {
	return "%" + strconv.Itoa(len(strconv.Itoa(iterations))) + "d: %s\n"
}

// emitStep records and prints one per-iteration approximation.
func emitStep(r *Result, w io.Writer, format string, index int, value *apd.Decimal) {
	s := dec.String(value)
	r.Steps = append(r.Steps, Step{Index: index, Value: s})
	fmt.Fprintf(w, format, index, s)
}

// converged reports value equality at the configured precision. Equality is
// by value, not representation: 3.140 and 3.14 agree.
func converged(prev, cur *apd.Decimal) bool {
	return prev != nil && cur != nil && cur.Cmp(prev) == 0
}
