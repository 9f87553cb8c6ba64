// Package config defines the configuration types for oakwood.
// These types are pure data; discovery and merging live in
// internal/configloader.
package config

import (
	"errors"
	"fmt"
	"strings"
)

// OutputFormat selects how parse results are printed.
type OutputFormat string

const (
	FormatText  OutputFormat = "text"
	FormatSExpr OutputFormat = "sexpr"
	FormatJSON  OutputFormat = "json"
)

// IsValid reports whether f is a known output format.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatText, FormatSExpr, FormatJSON:
		return true
	default:
		return false
	}
}

// ColorMode controls styled output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// IsValid reports whether m is a known color mode.
func (m ColorMode) IsValid() bool {
	switch m {
	case ColorAuto, ColorAlways, ColorNever:
		return true
	default:
		return false
	}
}

// Config is the root configuration structure.
type Config struct {
	// Language forces a plugin instead of detecting one per file.
	Language string `yaml:"language,omitempty" toml:"language,omitempty"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level,omitempty" toml:"log_level,omitempty"`

	// MaxDepth bounds nested sub-lexing. Zero uses the lexer default.
	MaxDepth int `yaml:"max_depth,omitempty" toml:"max_depth,omitempty"`

	// Jobs is the number of parallel parses. Zero means one per CPU.
	Jobs int `yaml:"jobs,omitempty" toml:"jobs,omitempty"`

	// Format selects the output format.
	Format OutputFormat `yaml:"format,omitempty" toml:"format,omitempty"`

	// Color controls styled output.
	Color ColorMode `yaml:"color,omitempty" toml:"color,omitempty"`

	// Ignore contains glob patterns for files to skip.
	Ignore []string `yaml:"ignore,omitempty" toml:"ignore,omitempty"`

	// ShowTrivia includes whitespace and comments in tree dumps.
	ShowTrivia *bool `yaml:"show_trivia,omitempty" toml:"show_trivia,omitempty"`

	// Markdown parses fenced code blocks in Markdown files.
	Markdown *bool `yaml:"markdown,omitempty" toml:"markdown,omitempty"`
}

// NewConfig returns a Config with defaults.
func NewConfig() *Config {
	return &Config{
		LogLevel: "info",
		Format:   FormatText,
		Color:    ColorAuto,
	}
}

// Bool returns the value of an optional flag, false when unset.
func Bool(b *bool) bool {
	return b != nil && *b
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}

// FieldError describes one invalid configuration field.
type FieldError struct {
	Field   string
	Value   any
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s (got %v)", e.Field, e.Message, e.Value)
}

// Validate checks every field and returns all problems joined.
func (c *Config) Validate() error {
	var errs []error

	if c.Format != "" && !c.Format.IsValid() {
		errs = append(errs, &FieldError{Field: "format", Value: c.Format, Message: "must be text, sexpr or json"})
	}

	if c.Color != "" && !c.Color.IsValid() {
		errs = append(errs, &FieldError{Field: "color", Value: c.Color, Message: "must be auto, always or never"})
	}

	switch strings.ToLower(c.LogLevel) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, &FieldError{Field: "log_level", Value: c.LogLevel, Message: "unknown level"})
	}

	if c.Jobs < 0 {
		errs = append(errs, &FieldError{Field: "jobs", Value: c.Jobs, Message: "must not be negative"})
	}

	if c.MaxDepth < 0 {
		errs = append(errs, &FieldError{Field: "max_depth", Value: c.MaxDepth, Message: "must not be negative"})
	}

	return errors.Join(errs...)
}

// Clone creates a deep copy of the configuration.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}

	clone := *c

	if c.Ignore != nil {
		clone.Ignore = append([]string(nil), c.Ignore...)
	}
	if c.ShowTrivia != nil {
		clone.ShowTrivia = Ptr(*c.ShowTrivia)
	}
	if c.Markdown != nil {
		clone.Markdown = Ptr(*c.Markdown)
	}

	return &clone
}
