// Package testutil provides shared fixture helpers for file based tests.
//
// Typical usage:
//
//	func TestMyTransform(t *testing.T) {
//	    in := testutil.WriteFile(t, "train.txt", testutil.Records("a b c", "3"))
//	    out := testutil.OutputPath(t, "train.out")
//	    ...
//	    got := testutil.ReadLines(t, out)
//	}
package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Records builds training file content from alternating feature and label
// lines, each terminated by a newline.
func Records(lines ...string) string {
	var b strings.Builder
	for _, l := range lines {
		b.WriteString(l)
		b.WriteByte('\n')
	}

	return b.String()
}

// WriteFile writes content to name inside a per-test temporary directory and
// returns the full path.
func WriteFile(tb testing.TB, name, content string) string {
	tb.Helper()

	path := filepath.Join(tb.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		tb.Fatalf("write fixture %s: %v", name, err)
	}

	return path
}

// OutputPath returns a not yet existing path inside a per-test temporary
// directory.
func OutputPath(tb testing.TB, name string) string {
	tb.Helper()

	return filepath.Join(tb.TempDir(), name)
}

// ReadFile returns the content of path, failing the test on error.
func ReadFile(tb testing.TB, path string) string {
	tb.Helper()

	// #nosec G304 -- Test helper reads paths created by the test itself.
	b, err := os.ReadFile(path)
	if err != nil {
		tb.Fatalf("read %s: %v", path, err)
	}

	return string(b)
}

// ReadLines returns the lines of path with their terminators kept.
func ReadLines(tb testing.TB, path string) []string {
	tb.Helper()

	return SplitLines(ReadFile(tb, path))
}

// SplitLines splits s after each newline. A trailing fragment without a
// newline is returned as the last element.
func SplitLines(s string) []string {
	if s == "" {
		return nil
	}

	lines := strings.SplitAfter(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	return lines
}
