// internal/examineapp/app.go

// Package examineapp runs a battery of π engines, captures their full output
// to a scratch file, then re-parses that file to score every iteration of
// every algorithm against the reference digits.
package examineapp

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"picalc-core/algo"
	"picalc-core/digits"
	"picalc-core/memsize"
	"picalc/internal/examinecli"
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

	fs := examinecli.NewFlagSet("picalc-examine")
	fs.SetOutput(io.Discard)

	if len(argv) == 0 {
		_, _ = examinecli.ParseArgs(fs, []string{"-h"})
		fs.SetOutput(outw)
		fs.Usage()
		if code, done := flush(); done {
			return code
		}
		return 0
	}

	opts, err := examinecli.ParseArgs(fs, argv)
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
		fmt.Fprintf(outw, "picalc-examine version %s\n", version.Version)
		if code, done := flush(); done {
			return code
		}
		return 0
	}

	logger := zap.NewNop()
	if opts.Verbose {
		enc := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
		logger = zap.New(zapcore.NewCore(enc, zapcore.AddSync(stderr), zapcore.DebugLevel))
	}
	defer func() { _ = logger.Sync() }()

	if !opts.SkipTests {
		if err := runBattery(outw, opts, logger); err != nil {
			fmt.Fprintf(stderr, "Error: %v.\n", err)
			_, _ = flush()
			return 2
		}
	}

	approximations, err := collectApproximations(opts, logger)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v.\n", err)
		_, _ = flush()
		return 2
	}

	piDigits, err := readReference(opts.Reference, opts.Precision+1)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v.\n", err)
		_, _ = flush()
		return 2
	}

	accuracy := scoreApproximations(approximations, piDigits)
	if opts.PrintTable {
		writeTable(outw, opts, accuracy)
	} else {
		writeRows(outw, opts, accuracy)
	}

	if code, done := flush(); done {
		return code
	}
	return 0
}

// runBattery runs every requested engine with print-steps, compare-values and
// estimate-memory, streaming engine output to the scratch file and echoing a
// one-line summary (wall time, memory figure) per algorithm.
func runBattery(outw *bufio.Writer, opts examinecli.Options, logger *zap.Logger) error {
	scratch, err := os.Create(opts.Scratch)
	if err != nil {
		return err
	}
	defer scratch.Close()

	fmt.Fprintln(outw, "Testing algorithms:")
	fmt.Fprintln(outw)

	for _, name := range opts.Algorithms {
		eng, err := algo.Resolve(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(outw, "%-15s %d %d --print-steps --compare-values --estimate-memory",
			name, opts.Iterations, opts.Precision)
		if err := outw.Flush(); err != nil {
			return err
		}

		for _, line := range eng.Banner {
			fmt.Fprintln(scratch, line)
		}
		start := time.Now()
		res, err := eng.Run(algo.Options{
			Iterations: opts.Iterations,
			Precision:  opts.Precision,
			Flags:      algo.Flags{PrintSteps: true, CompareValues: true, EstimateMemory: true},
			Out:        scratch,
		})
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		elapsed := time.Since(start)

		fmt.Fprintf(outw, " %10.3f seconds", elapsed.Seconds())
		fmt.Fprintf(outw, " %13s\n", memsize.Format(res.MemoryBytes))
		logger.Debug("algorithm finished",
			zap.String("algorithm", name),
			zap.Int("iterations", res.Iterations),
			zap.Bool("converged", res.Converged),
			zap.Duration("elapsed", elapsed),
			zap.Int("memory_bytes", res.MemoryBytes))
	}
	fmt.Fprintln(outw)
	return nil
}

// stepRe matches one per-iteration line: optional left padding, the
// iteration index, a colon, one space, then the approximation.
var stepRe = regexp.MustCompile(`^\s*\d+: `)

// collectApproximations re-reads the scratch file into one column of
// per-iteration approximations per algorithm. An engine that stopped early
// emits fewer step lines than requested; its last value carries forward so
// every column has exactly opts.Iterations rows.
func collectApproximations(opts examinecli.Options, logger *zap.Logger) ([][]string, error) {
	f, err := os.Open(opts.Scratch)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	br := bufio.NewReader(f)
	width := len(strconv.Itoa(opts.Iterations))
	startPrefix := fmt.Sprintf("%*d: ", width, 1)

	out := make([][]string, len(opts.Algorithms))
	for col, name := range opts.Algorithms {
		// advance to the column's first step line
		var line string
		var ok bool
		for {
			line, ok = readLine(br)
			if !ok {
				return nil, fmt.Errorf("rows missing in %s for %s algorithm", opts.Scratch, name)
			}
			if strings.HasPrefix(line, startPrefix) {
				break
			}
		}

		var approx string
		rows := make([]string, opts.Iterations)
		steps := 0
		for row := 0; row < opts.Iterations; row++ {
			if !ok {
				return nil, fmt.Errorf("rows terminated early in %s for %s", opts.Scratch, name)
			}
			if loc := stepRe.FindStringIndex(line); loc != nil {
				approx = line[loc[1]:]
				steps++
				line, ok = readLine(br)
			}
			rows[row] = approx
		}
		out[col] = rows
		logger.Debug("column parsed", zap.String("algorithm", name), zap.Int("steps", steps))
	}
	return out, nil
}

func readLine(br *bufio.Reader) (string, bool) {
	line, err := br.ReadString('\n')
	if err != nil && line == "" {
		return "", false
	}
	return strings.TrimRight(line, "\n"), true
}

// readReference returns the first n characters of the digit file. A shorter
// file is fine; scoring stops where the reference runs out.
func readReference(path string, n int) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	buf := make([]byte, n)
	read, err := io.ReadFull(f, buf)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", err
	}
	return string(buf[:read]), nil
}

func scoreApproximations(approximations [][]string, piDigits string) [][]int {
	out := make([][]int, len(approximations))
	for col, rows := range approximations {
		out[col] = make([]int, len(rows))
		for row, approx := range rows {
			out[col][row] = digits.CountString(approx, piDigits)
		}
	}
	return out
}

// writeRows prints one key:value line per iteration, e.g.
//
//	ITERATIONS:1  GREGORY_LEIBNIZ:0   NILAKANTHA:2
func writeRows(w io.Writer, opts examinecli.Options, accuracy [][]int) {
	itFormat := "%-" + strconv.Itoa(len(strconv.Itoa(opts.Iterations))) + "d "
	accFormat := "%-" + strconv.Itoa(len(strconv.Itoa(opts.Precision))) + "d "

	for row := 0; row < opts.Iterations; row++ {
		fmt.Fprint(w, "ITERATIONS:")
		fmt.Fprintf(w, itFormat, row+1)
		for col, name := range opts.Algorithms {
			fmt.Fprint(w, name)
			fmt.Fprint(w, ":")
			fmt.Fprintf(w, accFormat, accuracy[col][row])
		}
		fmt.Fprintln(w)
	}
}

// writeTable prints the same analysis as a bordered table.
func writeTable(w io.Writer, opts examinecli.Options, accuracy [][]int) {
	headers := append([]string{"ITERATIONS"}, opts.Algorithms...)
	t := table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			return lipgloss.NewStyle().Padding(0, 1).Align(lipgloss.Right)
		}).
		Headers(headers...)
	for row := 0; row < opts.Iterations; row++ {
		cells := make([]string, 0, len(headers))
		cells = append(cells, strconv.Itoa(row+1))
		for col := range opts.Algorithms {
			cells = append(cells, strconv.Itoa(accuracy[col][row]))
		}
		t.Row(cells...)
	}
	fmt.Fprintln(w, t)
}
