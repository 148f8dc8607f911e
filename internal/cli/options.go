// internal/cli/options.go
package cli

import (
	"flag"
	"fmt"
	"strconv"

	"picalc-core/algo"
	"picalc/internal/cliutil"
	"picalc/internal/version"
)

// DefaultReference is the precomputed digit file consulted after a run.
const DefaultReference = "pi1000000.txt"

// Options holds all CLI flags and arguments.
type Options struct {
	// Required positionals
	Algorithm  string
	Iterations int
	Precision  int

	// Behavior
	PrintSteps     bool
	CompareValues  bool
	AllDigits      bool
	EstimateMemory bool

	// Accuracy check
	Reference string

	Version bool
}

// SetUsage installs the full usage text on fs.
func SetUsage(fs *flag.FlagSet, name string) {
	fs.Usage = func() {
		out := fs.Output()
		fmt.Fprintf(out, "usage: %s <algorithm> <iterations> <precision> [options]\n\n", name)
		fmt.Fprintf(out, "Version: %s\n\n", version.Version)
		fmt.Fprintln(out, "1st argument details:")
		fmt.Fprintln(out, "Pass a number to select from the following algorithms:")
		for _, a := range algo.All() {
			fmt.Fprintf(out, "%d - %s\n", a.Code, a.Title)
		}
		fmt.Fprintln(out, "(Or, pass the name of the algorithm, i.e. NEWTON.)")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "2nd argument details:")
		fmt.Fprintln(out, "<number> - The number of iterations to run.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "3rd argument details:")
		fmt.Fprintln(out, "<number> - The precision to use in calculations.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Options:")
		fmt.Fprintln(out, "  -p, --print-steps      print the approximation at each iteration")
		fmt.Fprintln(out, "  -c, --compare-values   compare successive approximations, stopping early when equal")
		fmt.Fprintln(out, "  -a, --all-digits       print every computed digit, not only the accurate prefix")
		fmt.Fprintln(out, "  -e, --estimate-memory  print an estimation of memory consumption afterwards")
		fmt.Fprintf(out, "      --reference file   precomputed digit file for the accuracy check [%s]\n", DefaultReference)
		fmt.Fprintln(out, "  -v, --version          print version and exit")
		fmt.Fprintln(out, "  -h, --help             show this help and exit")
	}
}

// ParseArgs registers and parses all flags and positionals.
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	opt := Options{Reference: DefaultReference}
	var help bool

	fs.BoolVar(&opt.PrintSteps, "print-steps", false, "print the approximation at each iteration")
	fs.BoolVar(&opt.PrintSteps, "p", false, "alias of --print-steps")
	fs.BoolVar(&opt.CompareValues, "compare-values", false, "stop early when successive approximations are equal")
	fs.BoolVar(&opt.CompareValues, "c", false, "alias of --compare-values")
	fs.BoolVar(&opt.AllDigits, "all-digits", false, "print every computed digit")
	fs.BoolVar(&opt.AllDigits, "a", false, "alias of --all-digits")
	fs.BoolVar(&opt.EstimateMemory, "estimate-memory", false, "print an estimation of memory consumption")
	fs.BoolVar(&opt.EstimateMemory, "e", false, "alias of --estimate-memory")
	fs.StringVar(&opt.Reference, "reference", DefaultReference, "precomputed digit file")
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

	if len(posArgs) < 3 {
		return opt, fmt.Errorf("missing required arguments")
	}
	if len(posArgs) > 3 {
		return opt, fmt.Errorf("unknown argument %q", posArgs[3])
	}
	opt.Algorithm = posArgs[0]

	var err error
	opt.Iterations, err = parsePositive(posArgs[1])
	if err != nil {
		return opt, fmt.Errorf("2nd argument %q is invalid; must be a positive integer", posArgs[1])
	}
	opt.Precision, err = parsePositive(posArgs[2])
	if err != nil {
		return opt, fmt.Errorf("3rd argument %q is invalid; must be a positive integer", posArgs[2])
	}
	return opt, nil
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
