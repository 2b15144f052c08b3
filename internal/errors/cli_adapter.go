package errors

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// exitCodes maps categories to process exit codes. Unclassified errors and
// unknown categories exit with 1.
var exitCodes = map[ErrorCategory]int{
	CategoryValidation: 2,
	CategoryConfig:     7,
	CategoryExport:     8,
	CategoryInternal:   10,
	CategoryDocument:   11,
	CategoryFileSystem: 11,
	CategoryRuntime:    12,
}

// CLIErrorAdapter turns a command error into a message on stderr and a
// process exit code.
type CLIErrorAdapter struct {
	verbose bool
	logger  *slog.Logger
	stderr  io.Writer
	exit    func(int)
}

// NewCLIErrorAdapter creates an adapter writing to os.Stderr. A nil logger
// falls back to slog.Default().
func NewCLIErrorAdapter(verbose bool, logger *slog.Logger) *CLIErrorAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CLIErrorAdapter{verbose: verbose, logger: logger, stderr: os.Stderr, exit: os.Exit}
}

// ExitCodeFor returns the exit code for err; 0 for nil.
func (a *CLIErrorAdapter) ExitCodeFor(err error) int {
	if err == nil {
		return 0
	}
	ce, ok := As(err)
	if !ok {
		return 1
	}
	if code, known := exitCodes[ce.Category]; known {
		return code
	}
	return 1
}

// FormatError renders err for the terminal. Verbose mode prints the full
// classified chain; otherwise user-facing categories show only the message.
func (a *CLIErrorAdapter) FormatError(err error) string {
	if err == nil {
		return ""
	}
	ce, ok := As(err)
	switch {
	case !ok:
		return fmt.Sprintf("Error: %v", err)
	case a.verbose:
		return ce.Error()
	case ce.Category == CategoryConfig, ce.Category == CategoryValidation:
		return ce.Message
	}
	return fmt.Sprintf("%s: %s", ce.Category, ce.Message)
}

// HandleError reports err and terminates the process. It returns without
// exiting when err is nil.
func (a *CLIErrorAdapter) HandleError(err error) {
	if err == nil {
		return
	}
	if a.shouldLog(err) {
		a.log(err)
	}
	fmt.Fprintln(a.stderr, a.FormatError(err))
	a.exit(a.ExitCodeFor(err))
}

// Failures the user caused are already explained by the message.
func (a *CLIErrorAdapter) shouldLog(err error) bool {
	ce, ok := As(err)
	if a.verbose || !ok {
		return true
	}
	return ce.Category == CategoryInternal || ce.Category == CategoryRuntime || ce.Severity == SeverityFatal
}

func (a *CLIErrorAdapter) log(err error) {
	ce, ok := As(err)
	if !ok {
		a.logger.Error("Unclassified error", "error", err)
		return
	}
	attrs := make([]slog.Attr, 0, len(ce.Context)+1)
	attrs = append(attrs, slog.String("category", string(ce.Category)))
	for k, v := range ce.Context {
		attrs = append(attrs, slog.Any(k, v))
	}
	level := slog.LevelError
	switch ce.Severity {
	case SeverityInfo:
		level = slog.LevelInfo
	case SeverityWarning:
		level = slog.LevelWarn
	}
	a.logger.LogAttrs(context.Background(), level, ce.Message, attrs...)
}
