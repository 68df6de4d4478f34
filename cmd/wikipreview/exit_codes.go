package main

import (
	"errors"
	"os"

	"github.com/alnah/go-wikipreview"
	"github.com/alnah/go-wikipreview/internal/config"
)

// Exit codes for the wikipreview CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, custom codes
// below 126, and 130 for a run stopped by a signal.
const (
	ExitSuccess     = 0   // All inputs rendered
	ExitGeneral     = 1   // General/unexpected error, including failed renders
	ExitUsage       = 2   // Invalid flags, config, or validation
	ExitIO          = 3   // File not found, permission denied
	ExitInterrupted = 130 // Stopped by Ctrl+C or a termination signal
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	if errors.Is(err, ErrInterrupted) {
		return ExitInterrupted
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadInput) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, ErrNoInput) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, ErrInvalidPattern) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, wikipreview.ErrUnknownHighlightStyle) ||
		errors.Is(err, wikipreview.ErrStyleNotFound) ||
		errors.Is(err, wikipreview.ErrInvalidAssetPath) {
		return ExitUsage
	}

	return ExitGeneral
}
