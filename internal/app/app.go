// internal/app/app.go
package app

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"syscall"
	"time"

	"picalc-core/algo"
	"picalc-core/dec"
	"picalc-core/digits"
	"picalc/internal/cli"
	"picalc/internal/version"
)

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)
	isBrokenPipe := func(err error) bool {
		return err != nil && (errors.Is(err, syscall.EPIPE) || errors.Is(err, io.ErrClosedPipe))
	}
	flush := func() (int, bool) {
		err := outw.Flush()
		if isBrokenPipe(err) {
			return 0, true
		} else if err != nil {
			fmt.Fprintln(stderr, err)
			return 3, true
		}
		return 0, false
	}

	fs := cli.NewFlagSet("picalc")
	fs.SetOutput(io.Discard) // silence default flag pkg

	// No args => register flags then print usage
	if len(argv) == 0 {
		_, _ = cli.ParseArgs(fs, []string{"-h"})
		fs.SetOutput(outw)
		fs.Usage()
		if code, done := flush(); done {
			return code
		}
		return 0
	}

	opts, err := cli.ParseArgs(fs, argv)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fs.SetOutput(outw)
			fs.Usage()
			if code, done := flush(); done {
				return code
			}
			return 0
		}
		fmt.Fprintf(stderr, "Error: %v.\n", err)
		fs.SetOutput(outw)
		fs.Usage()
		if code, done := flush(); done {
			return code
		}
		return 2
	}
	if opts.Version {
		fmt.Fprintf(outw, "picalc version %s\n", version.Version)
		if code, done := flush(); done {
			return code
		}
		return 0
	}

	eng, err := algo.Resolve(opts.Algorithm)
	if err != nil {
		fmt.Fprintf(stderr, "Error: unknown algorithm %q.\n", opts.Algorithm)
		fs.SetOutput(outw)
		fs.Usage()
		if code, done := flush(); done {
			return code
		}
		return 2
	}

	for _, line := range eng.Banner {
		fmt.Fprintln(outw, line)
	}

	start := time.Now()
	res, err := eng.Run(algo.Options{
		Iterations: opts.Iterations,
		Precision:  opts.Precision,
		Flags: algo.Flags{
			PrintSteps:     opts.PrintSteps,
			CompareValues:  opts.CompareValues,
			AllDigits:      opts.AllDigits,
			EstimateMemory: opts.EstimateMemory,
		},
		Out: outw,
	})
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v.\n", err)
		if code, done := flush(); done {
			return code
		}
		return 2
	}
	fmt.Fprintf(outw, "Elapsed time: %.3f seconds\n", time.Since(start).Seconds())

	if err := compareDigits(outw, res, opts); err != nil {
		fmt.Fprintf(stderr, "warning: %v; skipping accuracy check\n", err)
	}
	if code, done := flush(); done {
		return code
	}
	return 0
}

// compareDigits scores the approximation against the precomputed digit file
// and writes the accuracy report. An unreadable reference is not fatal; the
// run already printed its result.
func compareDigits(outw io.Writer, res *algo.Result, opts cli.Options) error {
	f, err := os.Open(opts.Reference)
	if err != nil {
		return err
	}
	defer f.Close()

	approx := dec.String(res.Approximation)
	accurate, err := digits.Count(approx, f)
	if err != nil {
		return err
	}
	digits.WriteReport(outw, approx, accurate, opts.AllDigits)
	return nil
}
