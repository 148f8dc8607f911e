// core/digits/compare.go

// Package digits scores an approximation against a trusted reference digit
// stream and renders the accuracy report.
package digits

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Count walks approx and the reference stream in lockstep from the first
// character, counting matches until the first mismatch or either end. The
// radix point participates in the walk but is not a digit, so the result is
// matched characters minus one, clamped at zero. A reference shorter than
// the approximation is not an error; counting just stops there.
func Count(approx string, ref io.Reader) (int, error) {
	br := bufio.NewReader(ref)
	i := 0
	for i < len(approx) {
		b, err := br.ReadByte()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("read reference: %w", err)
		}
		if b != approx[i] {
			break
		}
		i++
	}
	if i <= 1 {
		return 0, nil
	}
	return i - 1, nil
}

// CountString is Count against an in-memory reference window.
func CountString(approx, ref string) int {
	n, _ := Count(approx, strings.NewReader(ref))
	return n
}

// WriteReport emits the accuracy report block. Unless allDigits is set the
// approximation is truncated to its accurate prefix (radix point included);
// otherwise the full string is shown with a caret under the last accurate
// digit.
func WriteReport(w io.Writer, approx string, accurate int, allDigits bool) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Approximation accurate to %d digits:\n", accurate)
	if !allDigits && accurate+1 < len(approx) {
		approx = approx[:accurate+1]
	}
	fmt.Fprintln(w, approx)
	if allDigits {
		fmt.Fprintf(w, "%s^ (last accurate digit)\n", strings.Repeat(" ", accurate))
	}
	fmt.Fprintln(w)
}
