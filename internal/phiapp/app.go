// internal/phiapp/app.go
package phiapp

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"syscall"
	"time"

	"picalc-core/dec"
	"picalc-core/digits"
	"picalc-core/phi"
	"picalc/internal/phicli"
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

	fs := phicli.NewFlagSet("picalc-phi")
	fs.SetOutput(io.Discard)

	if len(argv) == 0 {
		_, _ = phicli.ParseArgs(fs, []string{"-h"})
		fs.SetOutput(outw)
		fs.Usage()
		if code, done := flush(); done {
			return code
		}
		return 0
	}

	opts, err := phicli.ParseArgs(fs, argv)
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
		fmt.Fprintf(outw, "picalc-phi version %s\n", version.Version)
		if code, done := flush(); done {
			return code
		}
		return 0
	}

	fmt.Fprintln(outw, "Calculating Phi (the Golden Ratio) using the following Fibonacci-like series:")
	fmt.Fprintln(outw, phi.FirstTerms(opts.First, opts.Second, 8))
	fmt.Fprintln(outw)

	start := time.Now()
	res, err := phi.Series(phi.Options{
		First:         opts.First,
		Second:        opts.Second,
		Iterations:    opts.Iterations,
		Precision:     opts.Precision,
		PrintSteps:    opts.PrintSteps,
		CompareValues: opts.CompareValues,
		AllDigits:     opts.AllDigits,
		Out:           outw,
	})
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v.\n", err)
		_, _ = flush()
		return 2
	}
	if opts.PrintSteps {
		fmt.Fprintln(outw)
	}
	fmt.Fprintf(outw, "Iterations: %d\n", res.Iterations)
	fmt.Fprintf(outw, "Elapsed time: %.3f seconds\n", time.Since(start).Seconds())

	digits.WriteReport(outw, dec.String(res.Approximation), res.AccurateDigits, opts.AllDigits)

	if code, done := flush(); done {
		return code
	}
	return 0
}
