// Package logging wraps charmbracelet/log with the defaults oakwood uses:
// no timestamps, an "oakwood" prefix and level names taken from
// configuration.
package logging

import (
	"io"
	"os"
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/log"
)

// Prefix is printed before every message.
const Prefix = "oakwood"

//nolint:gochecknoglobals // process-wide fallback logger
var defaultLogger atomic.Pointer[log.Logger]

// ParseLevel maps a configuration level name to a log level. Unknown and
// empty names give InfoLevel; "warning" is accepted for "warn".
func ParseLevel(name string) log.Level {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "warning" {
		name = "warn"
	}

	level, err := log.ParseLevel(name)
	if err != nil || name == "" {
		return log.InfoLevel
	}

	return level
}

// New creates a logger on stderr at the named level.
func New(level string) *log.Logger {
	return NewWriter(os.Stderr, level)
}

// NewWriter creates a logger writing to w at the named level.
func NewWriter(w io.Writer, level string) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:  ParseLevel(level),
		Prefix: Prefix,
	})
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.New(io.Discard)
}

// Default returns the process-wide logger, creating an info-level stderr
// logger on first use.
func Default() *log.Logger {
	if logger := defaultLogger.Load(); logger != nil {
		return logger
	}

	defaultLogger.CompareAndSwap(nil, New("info"))

	return defaultLogger.Load()
}

// SetDefault replaces the process-wide logger. A nil logger is ignored.
func SetDefault(logger *log.Logger) {
	if logger != nil {
		defaultLogger.Store(logger)
	}
}

// SetLevel changes the level of the process-wide logger.
func SetLevel(level string) {
	Default().SetLevel(ParseLevel(level))
}
