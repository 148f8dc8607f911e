// internal/examinecli/options_test.go
package examinecli

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, args ...string) (Options, error) {
	t.Helper()
	fs := NewFlagSet("test")
	fs.SetOutput(io.Discard)
	return ParseArgs(fs, args)
}

func TestParseAlgorithmList(t *testing.T) {
	opts, err := parse(t, "1,nilakantha,GAUSS_LEGENDRE", "10", "100")
	require.NoError(t, err)
	assert.Equal(t, []string{"GREGORY_LEIBNIZ", "NILAKANTHA", "BRENT_SALAMIN"}, opts.Algorithms)
	assert.Equal(t, 10, opts.Iterations)
	assert.Equal(t, 100, opts.Precision)
	assert.Equal(t, DefaultScratch, opts.Scratch)
}

func TestParseFlags(t *testing.T) {
	opts, err := parse(t, "7", "10", "100", "-s", "--print-table", "--scratch", "x.txt", "--verbose")
	require.NoError(t, err)
	assert.True(t, opts.SkipTests)
	assert.True(t, opts.PrintTable)
	assert.True(t, opts.Verbose)
	assert.Equal(t, "x.txt", opts.Scratch)
}

func TestParseRejectsUnknownAlgorithm(t *testing.T) {
	_, err := parse(t, "1,8", "10", "100")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown algorithm "8"`)
}

func TestParseRejectsBadNumbers(t *testing.T) {
	_, err := parse(t, "1", "0", "100")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `2nd argument "0" is invalid`)

	_, err = parse(t, "1", "10", "-1")
	require.Error(t, err)
	assert.Error(t, err)
}
