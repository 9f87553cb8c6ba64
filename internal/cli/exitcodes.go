package cli

import (
	"errors"

	"github.com/yaklabco/oakwood/pkg/lang"
)

// Exit codes for oakwood.
const (
	// ExitSuccess indicates successful execution with no diagnostics.
	ExitSuccess = 0

	// ExitDiagnostics indicates parsing completed but produced diagnostics.
	ExitDiagnostics = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

var (
	// ErrDiagnosticsFound is returned when a parse produced diagnostics.
	// It only signals the exit code; the diagnostics were already printed.
	ErrDiagnosticsFound = errors.New("diagnostics found")

	// ErrConfig marks configuration failures.
	ErrConfig = errors.New("configuration error")

	// ErrIO marks failures reading or writing files.
	ErrIO = errors.New("i/o error")
)

// ExitCode maps an error returned by a command to a process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrDiagnosticsFound):
		return ExitDiagnostics
	case errors.Is(err, ErrConfig):
		return ExitConfigError
	case errors.Is(err, ErrIO):
		return ExitIOError
	case errors.Is(err, lang.ErrUnknownLanguage):
		return ExitInvalidUsage
	default:
		return ExitInternalError
	}
}
