// core/memsize/memsize.go

// Package memsize estimates the bytes held by live arbitrary-precision
// values: the length of the minimal two's-complement encoding of each
// value's unscaled integer part. The figure is for comparing algorithms
// against each other, not an exact heap measurement.
package memsize

import (
	"fmt"
	"io"
	"math/big"

	"github.com/cockroachdb/apd/v3"
)

// Decimal estimates d. Nil contributes zero.
func Decimal(d *apd.Decimal) int {
	if d == nil {
		return 0
	}
	return d.Coeff.MathBigInt().BitLen()/8 + 1
}

// Int estimates an exact integer accumulator. Nil contributes zero.
func Int(x *big.Int) int {
	if x == nil {
		return 0
	}
	return x.BitLen()/8 + 1
}

// Format renders a byte count in KB, e.g. "1.237 KB".
func Format(bytes int) string {
	return fmt.Sprintf("%.3f KB", float64(bytes)/1024.0)
}

// WriteUsage emits the memory-usage line. Downstream tooling parses this
// verbatim; do not reformat.
func WriteUsage(w io.Writer, bytes int) {
	fmt.Fprintf(w, "Memory usage: %s\n", Format(bytes))
}
