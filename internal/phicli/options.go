// internal/phicli/options.go
package phicli

import (
	"flag"
	"fmt"
	"math/big"
	"strconv"

	"picalc/internal/cli"
	"picalc/internal/cliutil"
	"picalc/internal/version"
)

// Options holds all CLI flags and arguments.
type Options struct {
	// Required positionals
	First      *big.Int
	Second     *big.Int
	Iterations int
	Precision  int

	// Behavior
	PrintSteps    bool
	CompareValues bool
	AllDigits     bool

	Version bool
}

// NewFlagSet returns a clean FlagSet with ContinueOnError.
func NewFlagSet(name string) *flag.FlagSet { return cli.NewFlagSet(name) }

// SetUsage installs the full usage text on fs.
func SetUsage(fs *flag.FlagSet, name string) {
	fs.Usage = func() {
		out := fs.Output()
		fmt.Fprintf(out, "usage: %s <first-term> <second-term> <iterations> <precision> [options]\n\n", name)
		fmt.Fprintf(out, "Version: %s\n\n", version.Version)
		fmt.Fprintln(out, "Approximates Phi (the Golden Ratio) as the ratio of successive terms of the")
		fmt.Fprintln(out, "Fibonacci-like series seeded with <first-term> and <second-term>.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Options:")
		fmt.Fprintln(out, "  -p, --print-steps     print the approximation at each iteration")
		fmt.Fprintln(out, "  -c, --compare-values  compare successive approximations, stopping early when equal")
		fmt.Fprintln(out, "  -a, --all-digits      print every computed digit, not only the accurate prefix")
		fmt.Fprintln(out, "  -v, --version         print version and exit")
		fmt.Fprintln(out, "  -h, --help            show this help and exit")
	}
}

// ParseArgs registers and parses all flags and positionals.
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var opt Options
	var help bool

	fs.BoolVar(&opt.PrintSteps, "print-steps", false, "print the approximation at each iteration")
	fs.BoolVar(&opt.PrintSteps, "p", false, "alias of --print-steps")
	fs.BoolVar(&opt.CompareValues, "compare-values", false, "stop early when successive approximations are equal")
	fs.BoolVar(&opt.CompareValues, "c", false, "alias of --compare-values")
	fs.BoolVar(&opt.AllDigits, "all-digits", false, "print every computed digit")
	fs.BoolVar(&opt.AllDigits, "a", false, "alias of --all-digits")
	fs.BoolVar(&opt.Version, "v", false, "print version and exit")
	fs.BoolVar(&opt.Version, "version", false, "print version and exit")
	fs.BoolVar(&help, "h", false, "show this help message")
	fs.BoolVar(&help, "help", false, "show this help message")

	SetUsage(fs, fs.Name())

	flagArgs, posArgs := cliutil.SplitFlagsAndPositionals(fs, argv)
	if err := fs.Parse(flagArgs); err != nil {
		return opt, err
	}
	if help || (len(posArgs) > 0 && posArgs[0] == "help") {
		return opt, flag.ErrHelp
	}
	if opt.Version {
		return opt, nil
	}

	if len(posArgs) < 4 {
		return opt, fmt.Errorf("missing required arguments")
	}
	if len(posArgs) > 4 {
		return opt, fmt.Errorf("unknown argument %q", posArgs[4])
	}

	var ok bool
	if opt.First, ok = parsePositiveBig(posArgs[0]); !ok {
		return opt, fmt.Errorf("1st argument %q is invalid; must be a positive integer", posArgs[0])
	}
	if opt.Second, ok = parsePositiveBig(posArgs[1]); !ok {
		return opt, fmt.Errorf("2nd argument %q is invalid; must be a positive integer", posArgs[1])
	}
	var err error
	opt.Iterations, err = parsePositive(posArgs[2])
	if err != nil {
		return opt, fmt.Errorf("3rd argument %q is invalid; must be a positive integer", posArgs[2])
	}
	opt.Precision, err = parsePositive(posArgs[3])
	if err != nil {
		return opt, fmt.Errorf("4th argument %q is invalid; must be a positive integer", posArgs[3])
	}
	return opt, nil
}

func parsePositiveBig(s string) (*big.Int, bool) {
	n, ok := new(big.Int).SetString(s, 10)
	if !ok || n.Sign() <= 0 {
		return nil, false
	}
	return n, true
}

func parsePositive(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n < 1 {
		return 0, fmt.Errorf("not positive: %d", n)
	}
	return n, nil
}
