package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// fixedNow is the clock used by test environments.
var fixedNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// newTestEnv returns an Environment with captured output. Non-empty stdin
// is reported as piped.
func newTestEnv(stdin string) (*Environment, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	env := &Environment{
		Now:        func() time.Time { return fixedNow },
		Stdout:     &stdout,
		Stderr:     &stderr,
		Stdin:      strings.NewReader(stdin),
		StdinPiped: func() bool { return stdin != "" },
	}
	return env, &stdout, &stderr
}

// writeFile creates a file under dir, creating parent directories.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

// readFile returns the content of path or fails the test.
func readFile(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return string(data)
}
