package algo

import (
	"errors"
	"testing"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		id   string
		want string
	}{
		{"1", "GREGORY_LEIBNIZ"},
		{"2", "NILAKANTHA"},
		{"3", "NEWTON"},
		{"4", "VIETE"},
		{"5", "WALLIS"},
		{"6", "CHUDNOVSKY"},
		{"7", "BRENT_SALAMIN"},
		{"brent-salamin", "BRENT_SALAMIN"},
		{"BRENT_SALAMIN", "BRENT_SALAMIN"},
		{"GAUSS_LEGENDRE", "BRENT_SALAMIN"},
		{"gauss-legendre", "BRENT_SALAMIN"},
		{"newton", "NEWTON"},
		{"Viete", "VIETE"},
	}
	for _, tc := range tests {
		a, err := Resolve(tc.id)
		if err != nil {
			t.Fatalf("Resolve(%q): %v", tc.id, err)
		}
		if a.Name != tc.want {
			t.Fatalf("Resolve(%q) = %s, want %s", tc.id, a.Name, tc.want)
		}
	}
}

func TestResolveUnknown(t *testing.T) {
	for _, id := range []string{"", "0", "8", "ARCHIMEDES", "-1"} {
		if _, err := Resolve(id); !errors.Is(err, ErrInvalidArgument) {
			t.Fatalf("Resolve(%q) = %v, want ErrInvalidArgument", id, err)
		}
	}
}

func TestAllOrderedByCode(t *testing.T) {
	all := All()
	if len(all) != 7 {
		t.Fatalf("All() returned %d engines, want 7", len(all))
	}
	for i, a := range all {
		if a.Code != i+1 {
			t.Fatalf("All()[%d].Code = %d, want %d", i, a.Code, i+1)
		}
		if a.Run == nil || a.Title == "" || len(a.Banner) == 0 {
			t.Fatalf("engine %s incompletely registered", a.Name)
		}
	}
}
