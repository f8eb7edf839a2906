package errors

import (
	"fmt"
	"log/slog"
)

// CLIErrorAdapter handles error presentation and exit code determination for
// the inkwell command line.
type CLIErrorAdapter struct {
	verbose bool
	logger  *slog.Logger
}

// NewCLIErrorAdapter creates a new CLI error adapter.
func NewCLIErrorAdapter(verbose bool, logger *slog.Logger) *CLIErrorAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CLIErrorAdapter{verbose: verbose, logger: logger}
}

// ExitCodeFor determines the appropriate exit code for an error.
func (a *CLIErrorAdapter) ExitCodeFor(err error) int {
	if err == nil {
		return 0
	}
	if ie, ok := AsInkwell(err); ok {
		switch ie.Category {
		case CategoryValidation:
			return 2
		case CategoryConfig:
			return 7
		case CategoryContent, CategoryNotFound:
			return 3
		case CategoryBuild, CategoryFileSystem:
			return 11
		case CategoryDeploy:
			return 8
		case CategoryInternal:
			return 10
		}
	}
	return 1
}

// FormatError formats an error for user-facing display.
func (a *CLIErrorAdapter) FormatError(err error) string {
	if err == nil {
		return ""
	}
	ie, ok := AsInkwell(err)
	if !ok {
		return fmt.Sprintf("Error: %v", err)
	}
	if a.verbose {
		return ie.Error()
	}
	msg := fmt.Sprintf("Error: %s", ie.Message)
	if reason, ok := ie.Context["reason"]; ok {
		msg += fmt.Sprintf(" (%v)", reason)
	}
	return msg
}
