package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/segfit/errs"
)

const stepCSV = `x,y
0,0
1,1
2,2
3,3
4,10
5,9
6,8
7,7
`

func runCmd(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	a := newApp(strings.NewReader(stdin), &stdout, &stderr)
	cmd := newRootCmd(a)
	cmd.SetArgs(args)
	err := cmd.Execute()

	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestFitCmd_Text(t *testing.T) {
	stdout, _, err := runCmd(t, stepCSV, "fit")
	require.NoError(t, err)
	require.Contains(t, stdout, "series stdin (")
	require.Contains(t, stdout, "2 segments over 8 points")
	require.Contains(t, stdout, "0-3")
	require.Contains(t, stdout, "4-7")
}

func TestFitCmd_JSON(t *testing.T) {
	path := writeFile(t, "disk.csv", stepCSV)

	stdout, _, err := runCmd(t, "", "fit", "--format", "json", "--summary", path)
	require.NoError(t, err)

	var out fitOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))
	require.Equal(t, "disk", out.Series)
	require.Equal(t, 8, out.Points)
	require.Len(t, out.Segments, 2)
	require.Equal(t, 0, out.Segments[0].First)
	require.Equal(t, 3, out.Segments[0].Last)
	require.Equal(t, int64(4), out.Segments[1].Start)
	require.InDelta(t, 1.0, out.Segments[0].Slope, 1e-9)
	require.InDelta(t, -1.0, out.Segments[1].Slope, 1e-9)
	require.InDelta(t, 14.0, out.Segments[1].Intercept, 1e-9)
	require.InDelta(t, 2.0, out.TotalCost, 1e-9)
	require.NotNil(t, out.RSquared)
	require.InDelta(t, 1.0, *out.RSquared, 1e-9)
}

func TestFitCmd_BlobRoundTrip(t *testing.T) {
	dir := t.TempDir()
	blobPath := filepath.Join(dir, "disk.seg")

	_, _, err := runCmd(t, stepCSV, "fit", "--format", "blob", "--compression", "s2",
		"--coefficient-encoding", "gorilla", "--name", "disk", "-o", blobPath)
	require.NoError(t, err)

	data, err := os.ReadFile(blobPath)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	stdout, _, err := runCmd(t, "", "decode", "--format", "json", blobPath)
	require.NoError(t, err)

	var out fitOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))
	require.Len(t, out.Segments, 2)
	require.Equal(t, 8, out.Points)
	require.Equal(t, 7, out.Segments[1].Last)

	// decode from stdin
	stdout, _, err = runCmd(t, string(data), "decode")
	require.NoError(t, err)
	require.Contains(t, stdout, "2 segments over 8 points")
}

func TestFitCmd_Config(t *testing.T) {
	cfgPath := writeFile(t, "segfit.yaml", "cost: 1000\nformat: json\n")

	stdout, _, err := runCmd(t, stepCSV, "--config", cfgPath, "fit")
	require.NoError(t, err)

	var out fitOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))
	require.Len(t, out.Segments, 1)

	// flags override the config file
	stdout, _, err = runCmd(t, stepCSV, "--config", cfgPath, "fit", "--cost", "1")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))
	require.Len(t, out.Segments, 2)
}

func TestFitCmd_Verbose(t *testing.T) {
	_, stderr, err := runCmd(t, stepCSV, "fit", "-v")
	require.NoError(t, err)
	require.Contains(t, stderr, "fitted series")

	_, stderr, err = runCmd(t, stepCSV, "fit")
	require.NoError(t, err)
	require.NotContains(t, stderr, "fitted series")
}

func TestFitCmd_Errors(t *testing.T) {
	t.Run("bad value", func(t *testing.T) {
		_, _, err := runCmd(t, "0,1\n1,abc\n", "fit")
		require.ErrorContains(t, err, "line 2")
	})

	t.Run("out of order", func(t *testing.T) {
		_, _, err := runCmd(t, "0,1\n2,2\n1,3\n", "fit")
		require.ErrorIs(t, err, errs.ErrOutOfOrderPoints)
	})

	t.Run("single point", func(t *testing.T) {
		_, _, err := runCmd(t, "0,1\n", "fit")
		require.ErrorIs(t, err, errs.ErrInsufficientPoints)
	})

	t.Run("negative cost", func(t *testing.T) {
		_, _, err := runCmd(t, stepCSV, "fit", "--cost", "-1")
		require.Error(t, err)
	})

	t.Run("unknown format", func(t *testing.T) {
		_, _, err := runCmd(t, stepCSV, "fit", "--format", "xml")
		require.ErrorContains(t, err, "unknown output format")
	})

	t.Run("invalid encoding", func(t *testing.T) {
		_, _, err := runCmd(t, stepCSV, "fit", "--boundary-encoding", "gorilla")
		require.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, _, err := runCmd(t, "", "fit", filepath.Join(t.TempDir(), "missing.csv"))
		require.Error(t, err)
	})

	t.Run("missing config", func(t *testing.T) {
		_, _, err := runCmd(t, stepCSV, "--config", filepath.Join(t.TempDir(), "none.yaml"), "fit")
		require.ErrorContains(t, err, "failed to read config file")
	})
}

func TestDecodeCmd_Errors(t *testing.T) {
	_, _, err := runCmd(t, "not a blob", "decode")
	require.ErrorIs(t, err, errs.ErrInvalidHeaderSize)

	_, _, err = runCmd(t, "", "decode", "--format", "xml")
	require.ErrorContains(t, err, "unknown output format")
}

func TestIsTerminal(t *testing.T) {
	require.False(t, isTerminal(&bytes.Buffer{}))

	f, err := os.CreateTemp(t.TempDir(), "out")
	require.NoError(t, err)
	defer f.Close()
	require.False(t, isTerminal(f))
}

type failingCloser struct{ err error }

func (c failingCloser) Close() error { return c.err }

func TestCloseOutput(t *testing.T) {
	closeErr := errors.New("disk full")

	var err error
	closeOutput(failingCloser{closeErr}, "out.seg", &err)
	require.ErrorIs(t, err, closeErr)
	require.ErrorContains(t, err, "out.seg")

	first := errors.New("encode failed")
	err = first
	closeOutput(failingCloser{closeErr}, "out.seg", &err)
	require.Same(t, first, err)

	err = nil
	closeOutput(failingCloser{}, "out.seg", &err)
	require.NoError(t, err)
}
