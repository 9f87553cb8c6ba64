// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldWorkingDir = "working_dir"
	FieldConfig     = "config"

	// Parse fields.
	FieldLanguage    = "language"
	FieldVersion     = "version"
	FieldTokens      = "tokens"
	FieldDiagnostics = "diagnostics"
	FieldDuration    = "duration"
	FieldJobs        = "jobs"

	// Incremental fields.
	FieldEdits        = "edits"
	FieldTokensReused = "tokens_reused"
	FieldNodesReused  = "nodes_reused"
	FieldIncremental  = "incremental"

	// Statistics fields.
	FieldFilesDiscovered  = "files_discovered"
	FieldFilesProcessed   = "files_processed"
	FieldFilesWithIssues  = "files_with_issues"
	FieldDiagnosticsTotal = "diagnostics_total"

	// Build fields.
	FieldCommit = "commit"
	FieldBuilt  = "built"
)
