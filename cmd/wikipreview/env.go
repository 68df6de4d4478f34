package main

import (
	"io"
	"os"
	"time"
)

// Environment holds injectable dependencies for testability.
// Includes I/O streams and the clock used for verbose timing.
type Environment struct {
	Now    func() time.Time
	Stdout io.Writer
	Stderr io.Writer
	Stdin  io.Reader
	// StdinPiped reports whether stdin is a pipe or file rather than a terminal.
	StdinPiped func() bool
}

// DefaultEnv returns the production environment bound to the process streams.
func DefaultEnv() *Environment {
	return &Environment{
		Now:        time.Now,
		Stdout:     os.Stdout,
		Stderr:     os.Stderr,
		Stdin:      os.Stdin,
		StdinPiped: stdinPiped,
	}
}

// stdinPiped reports whether os.Stdin is anything but a character device.
func stdinPiped() bool {
	info, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice == 0
}
