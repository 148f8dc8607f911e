// internal/examinecli/options.go
package examinecli

import (
	"flag"
	"fmt"
	"strconv"
	"strings"

	"picalc-core/algo"
	"picalc/internal/cli"
	"picalc/internal/cliutil"
	"picalc/internal/version"
)

// DefaultScratch is the file battery output is captured to and re-parsed from.
const DefaultScratch = "output.txt"

// Options holds all CLI flags and arguments.
type Options struct {
	// Required positionals
	Algorithms []string // canonical names, resolution already checked
	Iterations int
	Precision  int

	// Behavior
	SkipTests  bool
	PrintTable bool

	// Files
	Scratch   string
	Reference string

	Verbose bool
	Version bool
}

// NewFlagSet returns a clean FlagSet with ContinueOnError.
func NewFlagSet(name string) *flag.FlagSet { return cli.NewFlagSet(name) }

// SetUsage installs the full usage text on fs.
func SetUsage(fs *flag.FlagSet, name string) {
	fs.Usage = func() {
		out := fs.Output()
		fmt.Fprintf(out, "usage: %s <algorithms> <iterations> <precision> [options]\n", name)
		fmt.Fprintf(out, "Runs a battery of tests, stores results in %s, and then analyzes the results.\n\n", DefaultScratch)
		fmt.Fprintf(out, "Version: %s\n\n", version.Version)
		fmt.Fprintln(out, "1st argument details:")
		fmt.Fprintln(out, "Pass a comma-delimited list of numbers (or algorithm names) from the following:")
		for _, a := range algo.All() {
			fmt.Fprintf(out, "%d - %s\n", a.Code, a.Title)
		}
		fmt.Fprintln(out)
		fmt.Fprintln(out, "2nd argument details:")
		fmt.Fprintln(out, "<number> - The number of iterations to run.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "3rd argument details:")
		fmt.Fprintln(out, "<number> - The precision to use in calculations.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Options:")
		fmt.Fprintf(out, "  -s, --skip-tests   skip running the tests, only analyze the existing %s\n", DefaultScratch)
		fmt.Fprintln(out, "                     (assumes the file matches <iterations> and <precision>)")
		fmt.Fprintln(out, "  -p, --print-table  print the analysis formatted in a bordered table")
		fmt.Fprintln(out, "                     (default prints rows in a key:value format)")
		fmt.Fprintf(out, "      --scratch file     battery capture file [%s]\n", DefaultScratch)
		fmt.Fprintf(out, "      --reference file   precomputed digit file for scoring [%s]\n", cli.DefaultReference)
		fmt.Fprintln(out, "      --verbose          structured diagnostics on stderr")
		fmt.Fprintln(out, "  -v, --version      print version and exit")
		fmt.Fprintln(out, "  -h, --help         show this help and exit")
	}
}

// ParseArgs registers and parses all flags and positionals.
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	opt := Options{Scratch: DefaultScratch, Reference: cli.DefaultReference}
	var help bool

	fs.BoolVar(&opt.SkipTests, "skip-tests", false, "only analyze the existing scratch file")
	fs.BoolVar(&opt.SkipTests, "s", false, "alias of --skip-tests")
	fs.BoolVar(&opt.PrintTable, "print-table", false, "print the analysis formatted in a table")
	fs.BoolVar(&opt.PrintTable, "p", false, "alias of --print-table")
	fs.StringVar(&opt.Scratch, "scratch", DefaultScratch, "battery capture file")
	fs.StringVar(&opt.Reference, "reference", cli.DefaultReference, "precomputed digit file")
	fs.BoolVar(&opt.Verbose, "verbose", false, "structured diagnostics on stderr")
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

	for _, id := range strings.Split(posArgs[0], ",") {
		eng, err := algo.Resolve(strings.TrimSpace(id))
		if err != nil {
			return opt, fmt.Errorf("1st argument: unknown algorithm %q", id)
		}
		opt.Algorithms = append(opt.Algorithms, eng.Name)
	}

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
