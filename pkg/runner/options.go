// Package runner parses many documents in parallel.
package runner

import (
	"github.com/charmbracelet/log"

	"github.com/yaklabco/oakwood/pkg/lang"
)

// Options controls discovery and parsing of a batch of documents.
type Options struct {
	// Paths are the user-specified paths (files or directories) to process.
	// If empty, defaults to the current working directory.
	Paths []string

	// WorkingDir is the base directory used to resolve relative Paths.
	// If empty, the current process working directory is used.
	WorkingDir string

	// Extensions is the set of file extensions (lowercase, with leading dot)
	// to pick up while walking directories. Defaults to every extension the
	// registry knows, plus Markdown when Markdown is set.
	Extensions []string

	// IncludeGlobs are additional doublestar patterns to include, relative
	// to WorkingDir. Empty means "include everything that matches
	// Extensions".
	IncludeGlobs []string

	// ExcludeGlobs are doublestar patterns used to skip files or
	// directories.
	ExcludeGlobs []string

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// Jobs controls the maximum number of concurrent parses.
	// 0 or negative means "auto" (runtime.NumCPU()).
	Jobs int

	// Language forces one plugin for every file instead of detecting it.
	Language string

	// Markdown parses the fenced code blocks of Markdown files.
	Markdown bool

	// MaxDepth bounds nested sub-lexing; zero uses the lexer default.
	MaxDepth int

	// Logger receives per-file debug output. Nil discards.
	Logger *log.Logger
}

// MarkdownExtensions are the host document extensions handled when
// Options.Markdown is set.
func MarkdownExtensions() []string {
	return []string{".md", ".markdown"}
}

// effectiveExtensions returns the extensions to use, defaulting if empty.
func (o Options) effectiveExtensions(registry *lang.Registry) []string {
	if len(o.Extensions) > 0 {
		return o.Extensions
	}

	exts := registry.Extensions()
	if o.Markdown {
		exts = append(exts, MarkdownExtensions()...)
	}

	return exts
}

// effectivePaths returns the paths to process, defaulting to "." if empty.
func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}
