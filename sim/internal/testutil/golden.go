// Package testutil provides shared test infrastructure for the simulator.
// It loads golden event transcripts from the repository's testdata/ directory
// and compares timestamp-free event messages against them.
package testutil

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// RepoPath resolves a path relative to the repository root.
// The path is resolved relative to this source file: sim/internal/testutil/ → repo root.
func RepoPath(t *testing.T, elem ...string) string {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}
	parts := append([]string{filepath.Dir(thisFile), "..", "..", ".."}, elem...)
	return filepath.Join(parts...)
}

// LoadGolden returns the non-empty lines of testdata/golden/<name>.txt.
func LoadGolden(t *testing.T, name string) []string {
	t.Helper()

	path := RepoPath(t, "testdata", "golden", name+".txt")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read golden transcript: %v", err)
	}
	var lines []string
	for _, line := range strings.Split(string(data), "\n") {
		if line = strings.TrimRight(line, "\r"); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// StripTimestamps removes the "<elapsed> - " prefix from rendered event lines.
// Lines without the separator are returned unchanged.
func StripTimestamps(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if _, msg, ok := strings.Cut(line, " - "); ok {
			out = append(out, msg)
			continue
		}
		out = append(out, line)
	}
	return out
}

// AssertMessagesEqual compares two message transcripts line by line and
// reports the first divergence.
func AssertMessagesEqual(t *testing.T, want, got []string) {
	t.Helper()
	n := min(len(want), len(got))
	for i := 0; i < n; i++ {
		if want[i] != got[i] {
			t.Errorf("line %d: got %q, want %q", i+1, got[i], want[i])
			return
		}
	}
	if len(want) != len(got) {
		t.Errorf("got %d lines, want %d", len(got), len(want))
	}
}
