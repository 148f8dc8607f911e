// core/algo/registry.go
package algo

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Algorithm describes one registered engine.
type Algorithm struct {
	Code    int      // 1-based selector
	Name    string   // canonical identifier, e.g. "GREGORY_LEIBNIZ"
	Aliases []string // alternate canonical identifiers
	Title   string   // human name for usage listings
	Banner  []string // lines announcing the calculation
	Run     Func
}

// Engine registry (identifier → engine). Engine files register themselves
// from init() blocks.
var registry = map[string]*Algorithm{}

func register(a *Algorithm) {
	registry[a.Name] = a
	for _, alias := range a.Aliases {
		registry[alias] = a
	}
}

// Canonical normalizes an identifier: upper-case, hyphens to underscores.
func Canonical(id string) string {
	return strings.ToUpper(strings.ReplaceAll(id, "-", "_"))
}

// Resolve maps a numeric code ("1".."7") or a name (case-insensitive,
// hyphens and underscores interchangeable) to its engine. Unrecognized
// identifiers fail with ErrInvalidArgument; the caller surfaces usage help.
func Resolve(id string) (*Algorithm, error) {
	name := Canonical(id)
	if code, err := strconv.Atoi(name); err == nil {
		for _, a := range registry {
			if a.Code == code {
				return a, nil
			}
		}
		return nil, fmt.Errorf("%w: unknown algorithm %q", ErrInvalidArgument, id)
	}
	if a, ok := registry[name]; ok {
		return a, nil
	}
	return nil, fmt.Errorf("%w: unknown algorithm %q", ErrInvalidArgument, id)
}

// All lists the registered engines ordered by code, aliases folded in.
func All() []*Algorithm {
	byCode := map[int]*Algorithm{}
	for _, a := range registry {
		byCode[a.Code] = a
	}
	out := make([]*Algorithm, 0, len(byCode))
	for _, a := range byCode {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}
