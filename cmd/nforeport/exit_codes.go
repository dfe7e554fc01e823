package main

import (
	"errors"
	"os"

	nforeport "github.com/ChenC2022/Automatic-content-processing-flow"
	"github.com/ChenC2022/Automatic-content-processing-flow/internal/config"
)

// Exit codes for the nforeport CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Report generated (or nothing to do)
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags or config
	ExitIO      = 3 // File not found, permission denied, write failure
	ExitBrowser = 4 // Browser/Chrome errors during PDF rendering
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must wrap with %w.
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, nforeport.ErrBrowserConnect) ||
		errors.Is(err, nforeport.ErrPageCreate) ||
		errors.Is(err, nforeport.ErrPageLoad) ||
		errors.Is(err, nforeport.ErrPDFGeneration) ||
		errors.Is(err, nforeport.ErrPDFInvalid) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrWriteOutput) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrInvalidFormat) ||
		errors.Is(err, config.ErrInvalidTimeout) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, ErrTooManyArgs) ||
		errors.Is(err, ErrUnknownFormat) ||
		errors.Is(err, ErrNegativeTimeout) {
		return ExitUsage
	}

	return ExitGeneral
}
