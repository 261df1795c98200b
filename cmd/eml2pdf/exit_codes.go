package main

import (
	"errors"
	"os"

	eml2pdf "github.com/emlkit/eml2pdf"
	"github.com/emlkit/eml2pdf/internal/config"
	"github.com/emlkit/eml2pdf/internal/hints"
)

// Exit codes for the eml2pdf CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful conversion
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied
	ExitBrowser = 4 // Browser/Chrome errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, eml2pdf.ErrBrowserConnect) ||
		errors.Is(err, eml2pdf.ErrPageCreate) ||
		errors.Is(err, eml2pdf.ErrPageLoad) ||
		errors.Is(err, eml2pdf.ErrPDFGeneration) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadMessage) ||
		errors.Is(err, ErrWritePDF) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, ErrNoMessagesFound) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrConfigInvalid) ||
		errors.Is(err, eml2pdf.ErrEmptyMessage) {
		return ExitUsage
	}

	return ExitGeneral
}

// hintFor returns an actionable hint to append after an error message,
// or "" when there is nothing useful to suggest.
func hintFor(err error) string {
	switch {
	case errors.Is(err, eml2pdf.ErrBrowserConnect):
		return hints.ForBrowserConnect()
	case errors.Is(err, eml2pdf.ErrPageLoad):
		return hints.ForRenderTimeout()
	case errors.Is(err, config.ErrConfigNotFound):
		return hints.ForConfigNotFound()
	case errors.Is(err, os.ErrPermission):
		return hints.ForOutputDirectory()
	}
	return ""
}
