//go:build windows

package main

import "os"

// Windows delivers only os.Interrupt (Ctrl+C, Ctrl+Break).
var stopSignals = []os.Signal{os.Interrupt}
