package reporter

import (
	"io"
	"os"
	"path/filepath"
	"strings"
)

// bufWriterSize is the buffer size for buffered output writers (64 KiB).
const bufWriterSize = 64 * 1024

// Options configures reporter behavior.
type Options struct {
	// Writer is the destination for output (typically os.Stdout).
	Writer io.Writer

	// Format specifies the output format.
	Format Format

	// Color controls colorized output: "auto" (default), "always", "never".
	Color string

	// ShowContext includes the source line and a caret under text
	// diagnostics.
	ShowContext bool

	// DetailedSummary prints the full statistics block instead of one line.
	DetailedSummary bool

	// Compact disables indentation in JSON and SARIF output.
	Compact bool

	// WorkingDir is the directory to make paths relative to.
	// If empty, paths are kept as-is (typically absolute).
	WorkingDir string

	// ToolVersion is reported in SARIF output.
	ToolVersion string
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		Writer:      os.Stdout,
		Format:      FormatText,
		Color:       "auto",
		ShowContext: true,
		ToolVersion: "dev",
	}
}

// displayPath returns path relative to the working directory when it lies
// below it, and path unchanged otherwise.
func (o Options) displayPath(path string) string {
	if o.WorkingDir == "" {
		return path
	}

	rel, err := filepath.Rel(o.WorkingDir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}

	return rel
}
