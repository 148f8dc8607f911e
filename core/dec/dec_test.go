package dec

import (
	"math/big"
	"testing"

	"github.com/cockroachdb/apd/v3"
)

func TestContextRoundsHalfUp(t *testing.T) {
	tests := []struct {
		name      string
		precision int
		num, den  int64
		want      string
	}{
		{"exact half rounds away", 2, 1, 8, "0.13"},        // 0.125
		{"below half rounds down", 3, 1, 3, "0.333"},       // 0.333...
		{"above half rounds up", 3, 2, 3, "0.667"},         // 0.666...
		{"single digit", 1, 5, 2, "3"},                     // 2.5
		{"pi-ish quotient", 5, 355, 113, "3.1416"},         // 3.14159...
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctx := Context(tc.precision)
			q := new(apd.Decimal)
			if _, err := ctx.Quo(q, FromInt64(tc.num), FromInt64(tc.den)); err != nil {
				t.Fatalf("Quo: %v", err)
			}
			if got := String(q); got != tc.want {
				t.Fatalf("Quo(%d/%d) @%d = %q, want %q", tc.num, tc.den, tc.precision, got, tc.want)
			}
		})
	}
}

func TestFromBig(t *testing.T) {
	x := new(big.Int)
	x.SetString("123456789012345678901234567890", 10)
	d := FromBig(x)
	if got := String(d); got != "123456789012345678901234567890" {
		t.Fatalf("FromBig round-trip = %q", got)
	}
	if got := String(FromBig(big.NewInt(-42))); got != "-42" {
		t.Fatalf("FromBig(-42) = %q", got)
	}
}

func TestDivisionByZeroIsAnError(t *testing.T) {
	ctx := Context(10)
	q := new(apd.Decimal)
	if _, err := ctx.Quo(q, FromInt64(1), FromInt64(0)); err == nil {
		t.Fatal("expected division-by-zero error")
	}
}

func TestStringIsPlainForm(t *testing.T) {
	ctx := Context(20)
	q := new(apd.Decimal)
	if _, err := ctx.Quo(q, FromInt64(22), FromInt64(7)); err != nil {
		t.Fatalf("Quo: %v", err)
	}
	if got := String(q); got != "3.1428571428571428571" {
		t.Fatalf("String = %q", got)
	}
}
