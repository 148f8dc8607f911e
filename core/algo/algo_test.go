package algo

import (
	"bytes"
	"math/big"
	"os"
	"strings"
	"testing"

	"picalc-core/digits"
)

func bigInt(n int64) *big.Int { return big.NewInt(n) }

// piRef returns 2100 reference digits of pi ("3.14159...").
func piRef(t *testing.T) string {
	t.Helper()
	b, err := os.ReadFile("testdata/pi_2100.txt")
	if err != nil {
		t.Fatalf("reference digits: %v", err)
	}
	return strings.TrimSpace(string(b))
}

func run(t *testing.T, id string, o Options) *Result {
	t.Helper()
	a, err := Resolve(id)
	if err != nil {
		t.Fatalf("Resolve(%q): %v", id, err)
	}
	res, err := a.Run(o)
	if err != nil {
		t.Fatalf("%s: %v", id, err)
	}
	return res
}

func TestSingleIterationIsDefined(t *testing.T) {
	for _, a := range All() {
		res := run(t, a.Name, Options{Iterations: 1, Precision: 10})
		if res.Approximation == nil {
			t.Fatalf("%s: nil approximation after one iteration", a.Name)
		}
		if s := res.String(); s == "" {
			t.Fatalf("%s: empty approximation string", a.Name)
		}
	}
}

func TestInvalidOptions(t *testing.T) {
	for _, a := range All() {
		if _, err := a.Run(Options{Iterations: 0, Precision: 10}); err == nil {
			t.Fatalf("%s: accepted zero iterations", a.Name)
		}
		if _, err := a.Run(Options{Iterations: 1, Precision: 0}); err == nil {
			t.Fatalf("%s: accepted zero precision", a.Name)
		}
	}
}

func TestDeterminism(t *testing.T) {
	for _, a := range All() {
		first := run(t, a.Name, Options{Iterations: 5, Precision: 50})
		second := run(t, a.Name, Options{Iterations: 5, Precision: 50})
		if first.String() != second.String() {
			t.Fatalf("%s: %q != %q across identical runs", a.Name, first.String(), second.String())
		}
	}
}

// Accuracy after 20 iterations at precision 100, checked against the
// reference digits. These counts pin down the exact recurrences; an
// off-by-one in any starting value or index shifts them.
func TestAccuracyAfterTwentyIterations(t *testing.T) {
	ref := piRef(t)
	tests := []struct {
		id         string
		iterations int
		want       int
	}{
		{"NILAKANTHA", 20, 5},
		{"NEWTON", 20, 16},
		{"VIETE", 20, 12},
		{"WALLIS", 20, 2},
		{"CHUDNOVSKY", 5, 70},
	}
	for _, tc := range tests {
		t.Run(tc.id, func(t *testing.T) {
			res := run(t, tc.id, Options{Iterations: tc.iterations, Precision: 100})
			if got := digits.CountString(res.String(), ref); got != tc.want {
				t.Fatalf("%s after %d iterations: %d accurate digits, want %d (value %s)",
					tc.id, tc.iterations, got, tc.want, res.String())
			}
		})
	}
}

// Per-iteration accuracy from documented reference runs at precision 2000.
func TestAccuracyByIteration(t *testing.T) {
	ref := piRef(t)
	tests := []struct {
		id   string
		want []int
	}{
		{"GREGORY_LEIBNIZ", []int{0, 1, 0, 1, 0, 1, 1, 1, 1, 1}},
		{"BRENT_SALAMIN", []int{0, 3, 8, 19, 41, 84, 171, 345, 694, 1392}},
	}
	for _, tc := range tests {
		t.Run(tc.id, func(t *testing.T) {
			res := run(t, tc.id, Options{
				Iterations: 10,
				Precision:  2000,
				Flags:      Flags{PrintSteps: true},
			})
			if len(res.Steps) != len(tc.want) {
				t.Fatalf("%d steps recorded, want %d", len(res.Steps), len(tc.want))
			}
			for i, step := range res.Steps {
				if got := digits.CountString(step.Value, ref); got != tc.want[i] {
					t.Fatalf("iteration %d: %d accurate digits, want %d", step.Index, got, tc.want[i])
				}
			}
		})
	}
}

func TestWallisConvergesEarly(t *testing.T) {
	res := run(t, "WALLIS", Options{
		Iterations: 100000,
		Precision:  5,
		Flags:      Flags{CompareValues: true},
	})
	if !res.Converged {
		t.Fatal("expected early convergence at precision 5")
	}
	if res.Iterations != 70 {
		t.Fatalf("converged after %d iterations, want 70", res.Iterations)
	}
	if got := res.String(); got != "3.1304" {
		t.Fatalf("converged value = %q, want 3.1304", got)
	}
}

func TestMoreIterationsNeverLessAccurate(t *testing.T) {
	ref := piRef(t)
	for _, a := range All() {
		shorter := run(t, a.Name, Options{Iterations: 3, Precision: 50})
		longer := run(t, a.Name, Options{Iterations: 9, Precision: 50})
		s := digits.CountString(shorter.String(), ref)
		l := digits.CountString(longer.String(), ref)
		if l < s {
			t.Fatalf("%s: accuracy fell from %d to %d with more iterations", a.Name, s, l)
		}
	}
}

func TestMorePrecisionNeverLessAccurate(t *testing.T) {
	ref := piRef(t)
	for _, a := range All() {
		low := run(t, a.Name, Options{Iterations: 8, Precision: 5})
		high := run(t, a.Name, Options{Iterations: 8, Precision: 60})
		lo := digits.CountString(low.String(), ref)
		hi := digits.CountString(high.String(), ref)
		if hi < lo {
			t.Fatalf("%s: accuracy fell from %d to %d with more precision", a.Name, lo, hi)
		}
	}
}

func TestStepLineFormat(t *testing.T) {
	var buf bytes.Buffer
	run(t, "WALLIS", Options{
		Iterations: 12,
		Precision:  10,
		Flags:      Flags{PrintSteps: true},
		Out:        &buf,
	})
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 12 {
		t.Fatalf("%d step lines, want 12", len(lines))
	}
	if !strings.HasPrefix(lines[0], " 1: ") {
		t.Fatalf("first line %q not right-aligned to width 2", lines[0])
	}
	if !strings.HasPrefix(lines[11], "12: ") {
		t.Fatalf("last line %q", lines[11])
	}
}

func TestMemoryEstimate(t *testing.T) {
	var buf bytes.Buffer
	res := run(t, "GREGORY_LEIBNIZ", Options{
		Iterations: 25,
		Precision:  30,
		Flags:      Flags{EstimateMemory: true},
		Out:        &buf,
	})
	if res.MemoryBytes <= 0 {
		t.Fatalf("memory estimate = %d", res.MemoryBytes)
	}
	out := buf.String()
	if !strings.Contains(out, "numerator:   ") || !strings.Contains(out, "denominator: ") {
		t.Fatalf("missing accumulator summary in %q", out)
	}
	if !strings.Contains(out, "Memory usage: ") || !strings.Contains(out, " KB\n") {
		t.Fatalf("missing memory usage line in %q", out)
	}
}

func TestSciNotation(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{8, "8.00 * 10 ^ 0"},
		{1234, "1.23 * 10 ^ 3"},
		{1235, "1.24 * 10 ^ 3"},
		{999, "9.99 * 10 ^ 2"},
		{9999, "1.00 * 10 ^ 4"},
		{-1500, "-1.50 * 10 ^ 3"},
	}
	for _, tc := range tests {
		if got := sciNotation(bigInt(tc.in)); got != tc.want {
			t.Fatalf("sciNotation(%d) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestTruncFraction(t *testing.T) {
	if got := truncFraction(bigInt(22), bigInt(7), 0); got != "3" {
		t.Fatalf("scale 0 = %q", got)
	}
	if got := truncFraction(bigInt(22), bigInt(7), 3); got != "3.142" {
		t.Fatalf("scale 3 = %q", got)
	}
	if got := truncFraction(bigInt(1), bigInt(8), 2); got != "0.12" {
		t.Fatalf("round-down = %q", got)
	}
}
