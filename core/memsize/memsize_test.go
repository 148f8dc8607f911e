package memsize

import (
	"bytes"
	"math/big"
	"testing"

	"github.com/cockroachdb/apd/v3"
)

func TestInt(t *testing.T) {
	tests := []struct {
		name string
		x    *big.Int
		want int
	}{
		{"nil", nil, 0},
		{"zero", big.NewInt(0), 1},
		{"small", big.NewInt(127), 1},  // 7 bits
		{"boundary", big.NewInt(255), 2}, // 8 bits needs a sign byte
		{"negative", big.NewInt(-255), 2},
		{"wide", new(big.Int).Lsh(big.NewInt(1), 64), 9},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Int(tc.x); got != tc.want {
				t.Fatalf("Int(%v) = %d, want %d", tc.x, got, tc.want)
			}
		})
	}
}

func TestDecimal(t *testing.T) {
	if got := Decimal(nil); got != 0 {
		t.Fatalf("Decimal(nil) = %d", got)
	}
	// The exponent does not contribute: 255e10 and 255 weigh the same.
	if a, b := Decimal(apd.New(255, 10)), Decimal(apd.New(255, 0)); a != b || a != 2 {
		t.Fatalf("Decimal coefficients weigh %d and %d, want 2 and 2", a, b)
	}
}

func TestWriteUsage(t *testing.T) {
	var buf bytes.Buffer
	WriteUsage(&buf, 1267)
	if got := buf.String(); got != "Memory usage: 1.237 KB\n" {
		t.Fatalf("usage line = %q", got)
	}
	buf.Reset()
	WriteUsage(&buf, 0)
	if got := buf.String(); got != "Memory usage: 0.000 KB\n" {
		t.Fatalf("usage line = %q", got)
	}
	if got := Format(2048); got != "2.000 KB" {
		t.Fatalf("Format = %q", got)
	}
}
