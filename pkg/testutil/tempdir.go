// Package testutil provides shared helpers for tests.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

var (
	testRunDirOnce sync.Once
	testRunDir     string
)

// GetTestRunDir returns a per-process directory under the system temp
// directory where all test artifacts for this run are collected. The same
// directory is returned for every call within a process, which makes it easy
// to inspect leftovers from a failed run.
func GetTestRunDir() string {
	testRunDirOnce.Do(func() {
		base := filepath.Join(os.TempDir(), "flowc-test-runs")
		dir := filepath.Join(base, fmt.Sprintf("run-%d-%d", os.Getpid(), time.Now().UnixNano()))
		if err := os.MkdirAll(dir, 0o755); err != nil {
			// Fall back to the system temp dir rather than failing test setup
			testRunDir = os.TempDir()
			return
		}
		testRunDir = dir
	})
	return testRunDir
}

// TempDir creates a temporary directory under the test run directory using
// the given pattern and registers cleanup with the test. Unlike t.TempDir,
// all directories live under one inspectable root.
func TempDir(t *testing.T, pattern string) string {
	t.Helper()

	dir, err := os.MkdirTemp(GetTestRunDir(), pattern)
	if err != nil {
		t.Fatalf("failed to create temp directory: %v", err)
	}

	t.Cleanup(func() {
		os.RemoveAll(dir)
	})

	return dir
}
