package errors

import (
	"fmt"
	"log/slog"
	"os"
)

// CLIAdapter handles error presentation and exit-code determination for the
// command line surface.
type CLIAdapter struct {
	verbose bool
	logger  *slog.Logger
}

// NewCLIAdapter creates a new CLI error adapter.
func NewCLIAdapter(verbose bool, logger *slog.Logger) *CLIAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CLIAdapter{verbose: verbose, logger: logger}
}

// ExitCodeFor determines the appropriate exit code for an error.
func (a *CLIAdapter) ExitCodeFor(err error) int {
	if err == nil {
		return 0
	}
	switch GetCategory(err) {
	case CategoryValidation, CategoryCapacity, CategoryNotFound:
		return 2 // Invalid usage
	case CategoryConfig:
		return 7 // Configuration error
	case CategoryReference:
		return 3 // Seed integrity error
	case CategoryStorage:
		return 11 // Storage error
	case CategoryPublish:
		return 8 // External system error
	case CategoryInternal:
		return 10 // Internal error
	default:
		return 1
	}
}

// FormatError formats an error for user-facing display.
func (a *CLIAdapter) FormatError(err error) string {
	if err == nil {
		return ""
	}
	e, ok := err.(*Error)
	if !ok {
		return fmt.Sprintf("Error: %v", err)
	}
	if a.verbose {
		return e.Error()
	}
	switch e.Category {
	case CategoryValidation, CategoryCapacity, CategoryNotFound, CategoryConfig:
		return e.Message
	default:
		return fmt.Sprintf("%s: %s", e.Category, e.Message)
	}
}

// HandleError prints an error and exits with the mapped code.
func (a *CLIAdapter) HandleError(err error) {
	if err == nil {
		return
	}
	if a.verbose || GetCategory(err) == CategoryInternal {
		a.logger.Error("Command failed", slog.String("category", string(GetCategory(err))), slog.String("error", err.Error()))
	}
	fmt.Fprintf(os.Stderr, "%s\n", a.FormatError(err))
	os.Exit(a.ExitCodeFor(err))
}
