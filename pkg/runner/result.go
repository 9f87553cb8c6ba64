package runner

import (
	"github.com/yaklabco/oakwood/pkg/diag"
	"github.com/yaklabco/oakwood/pkg/embedded"
	"github.com/yaklabco/oakwood/pkg/incremental"
	"github.com/yaklabco/oakwood/pkg/source"
)

// FileOutcome is the parse of one discovered file.
type FileOutcome struct {
	// Path is the file path that was processed.
	Path string

	// Language is the plugin name, or "markdown" for host documents whose
	// fenced blocks were parsed.
	Language string

	// Buffer is the file's text. Nil when the file could not be read.
	Buffer *source.Buffer

	// Result holds the parse of a plain document. Nil for Markdown hosts
	// and for files that failed.
	Result *incremental.Result

	// Regions holds the parsed fenced blocks of a Markdown host.
	Regions []embedded.Parsed

	// Error is set if the file could not be read or its language is unknown.
	Error error
}

// Diagnostics returns every diagnostic of the outcome with host offsets.
func (o FileOutcome) Diagnostics() []*diag.Error {
	if o.Result != nil {
		return o.Result.Diagnostics
	}

	var out []*diag.Error
	for _, region := range o.Regions {
		out = append(out, region.Diagnostics...)
	}

	return out
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the total number of files found during discovery.
	FilesDiscovered int

	// FilesProcessed is the number of files parsed.
	FilesProcessed int

	// FilesErrored is the number of files that could not be parsed.
	FilesErrored int

	// FilesWithIssues is the number of files with at least one diagnostic.
	FilesWithIssues int

	// RegionsParsed counts fenced blocks parsed inside Markdown hosts.
	RegionsParsed int

	// Tokens is the total token count across all parses.
	Tokens int

	// DiagnosticsTotal is the total number of diagnostics across all files.
	DiagnosticsTotal int

	// DiagnosticsByKind maps diag.Kind names to counts.
	DiagnosticsByKind map[string]int
}

// Result is the overall runner result.
type Result struct {
	// Files contains the outcome for each processed file, ordered by path.
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats
}

// HasFailures reports whether any file could not be parsed.
func (r *Result) HasFailures() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesErrored > 0
}

// HasIssues reports whether any diagnostics were found.
func (r *Result) HasIssues() bool {
	if r == nil {
		return false
	}
	return r.Stats.DiagnosticsTotal > 0
}

func newStats() Stats {
	return Stats{
		DiagnosticsByKind: make(map[string]int),
	}
}

// accumulate updates the result with a file outcome.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}

	r.Stats.FilesProcessed++
	r.Stats.RegionsParsed += len(outcome.Regions)

	if outcome.Result != nil {
		r.Stats.Tokens += len(outcome.Result.Tokens)
	}
	for _, region := range outcome.Regions {
		r.Stats.Tokens += len(region.Tokens)
	}

	diags := outcome.Diagnostics()
	r.Stats.DiagnosticsTotal += len(diags)

	if len(diags) > 0 {
		r.Stats.FilesWithIssues++
	}

	for _, d := range diags {
		r.Stats.DiagnosticsByKind[d.Kind.String()]++
	}
}
