package errors

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// CLIErrorAdapter handles error presentation and exit code determination for CLI applications.
type CLIErrorAdapter struct {
	verbose bool
	logger  *slog.Logger
	stderr  io.Writer
	exit    func(int)
}

// NewCLIErrorAdapter creates a new CLI error adapter.
func NewCLIErrorAdapter(verbose bool, logger *slog.Logger) *CLIErrorAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CLIErrorAdapter{
		verbose: verbose,
		logger:  logger,
		stderr:  os.Stderr,
		exit:    os.Exit,
	}
}

// ExitCodeFor determines the appropriate exit code for an error.
func (a *CLIErrorAdapter) ExitCodeFor(err error) int {
	if err == nil {
		return 0
	}

	if fe, ok := As(err); ok {
		return a.exitCodeFromFolio(fe)
	}

	return 1
}

// exitCodeFromFolio maps FolioError to exit codes.
func (a *CLIErrorAdapter) exitCodeFromFolio(err *FolioError) int {
	switch err.Category {
	case CategoryValidation:
		return 2 // Invalid usage
	case CategoryConfig:
		return 7 // Configuration error
	case CategoryScan, CategoryUpdate:
		return 11 // Update error
	case CategoryRuntime:
		return 12 // Runtime error
	case CategoryInternal:
		return 10 // Internal error
	default:
		return 1 // General error
	}
}

// FormatError formats an error for user-friendly display.
func (a *CLIErrorAdapter) FormatError(err error) string {
	if err == nil {
		return ""
	}

	if fe, ok := As(err); ok {
		return a.formatFolio(fe)
	}

	return fmt.Sprintf("Error: %v", err)
}

// formatFolio formats a FolioError for display.
func (a *CLIErrorAdapter) formatFolio(err *FolioError) string {
	if a.verbose {
		return err.Error()
	}

	switch err.Category {
	case CategoryConfig, CategoryValidation:
		return err.Message
	default:
		return fmt.Sprintf("%s: %s", err.Category, err.Message)
	}
}

// HandleError processes an error and exits the program with appropriate code.
func (a *CLIErrorAdapter) HandleError(err error) {
	if err == nil {
		return
	}

	exitCode := a.ExitCodeFor(err)
	message := a.FormatError(err)

	if a.shouldLog(err) {
		a.logError(err)
	}

	_, _ = fmt.Fprintf(a.stderr, "%s\n", message)
	a.exit(exitCode)
}

// shouldLog determines if an error should be logged.
func (a *CLIErrorAdapter) shouldLog(err error) bool {
	if a.verbose {
		return true
	}

	if fe, ok := As(err); ok {
		return fe.Category == CategoryInternal ||
			fe.Category == CategoryRuntime ||
			fe.Severity == SeverityFatal
	}

	return true
}

// logError logs an error with appropriate level and context.
func (a *CLIErrorAdapter) logError(err error) {
	if fe, ok := As(err); ok {
		attrs := []slog.Attr{
			slog.String("category", string(fe.Category)),
		}
		for k, v := range fe.Context {
			attrs = append(attrs, slog.Any(k, v))
		}
		if fe.Cause != nil {
			attrs = append(attrs, slog.String("cause", fe.Cause.Error()))
		}
		a.logger.LogAttrs(context.Background(), slog.LevelError, fe.Message, attrs...)
		return
	}

	a.logger.Error("Unclassified error", "error", err)
}
