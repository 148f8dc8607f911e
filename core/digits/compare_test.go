package digits

import (
	"bytes"
	"strings"
	"testing"
)

func TestCount(t *testing.T) {
	tests := []struct {
		name   string
		approx string
		ref    string
		want   int
	}{
		// Seed pair: "3.14159" matches for 7 characters, minus the point.
		{"seed pair", "3.14159999", "3.14159265", 6},
		{"full match", "3.14159", "3.14159265", 5},
		{"reference longer", "3.1", "3.14159265", 1},
		{"reference shorter", "3.14159265", "3.14", 3},
		{"first digit wrong", "2.71828", "3.14159", 0},
		{"only integer digit", "3.24159", "3.14159", 0},
		{"empty approximation", "", "3.14159", 0},
		{"empty reference", "3.14", "", 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Count(tc.approx, strings.NewReader(tc.ref))
			if err != nil {
				t.Fatalf("Count: %v", err)
			}
			if got != tc.want {
				t.Fatalf("Count(%q, %q) = %d, want %d", tc.approx, tc.ref, got, tc.want)
			}
			if gs := CountString(tc.approx, tc.ref); gs != tc.want {
				t.Fatalf("CountString = %d, want %d", gs, tc.want)
			}
		})
	}
}

func TestWriteReportTruncates(t *testing.T) {
	var buf bytes.Buffer
	WriteReport(&buf, "3.14159999", 6, false)
	want := "\nApproximation accurate to 6 digits:\n3.14159\n\n"
	if buf.String() != want {
		t.Fatalf("report = %q, want %q", buf.String(), want)
	}
}

func TestWriteReportAllDigits(t *testing.T) {
	var buf bytes.Buffer
	WriteReport(&buf, "3.14159999", 6, true)
	want := "\nApproximation accurate to 6 digits:\n3.14159999\n      ^ (last accurate digit)\n\n"
	if buf.String() != want {
		t.Fatalf("report = %q, want %q", buf.String(), want)
	}
}

func TestWriteReportZeroAccurate(t *testing.T) {
	var buf bytes.Buffer
	WriteReport(&buf, "2.71828", 0, false)
	want := "\nApproximation accurate to 0 digits:\n2\n\n"
	if buf.String() != want {
		t.Fatalf("report = %q, want %q", buf.String(), want)
	}
}
