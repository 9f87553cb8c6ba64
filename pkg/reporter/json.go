package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"maps"

	"github.com/yaklabco/oakwood/pkg/diag"
	"github.com/yaklabco/oakwood/pkg/runner"
	"github.com/yaklabco/oakwood/pkg/source"
)

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version string           `json:"version"`
	Files   []JSONFileResult `json:"files"`
	Summary JSONSummary      `json:"summary"`
}

// JSONFileResult represents a single file's results.
type JSONFileResult struct {
	Path        string           `json:"path"`
	Language    string           `json:"language,omitempty"`
	Regions     int              `json:"regions,omitempty"`
	Diagnostics []JSONDiagnostic `json:"diagnostics"`
	Error       string           `json:"error,omitempty"`
}

// JSONDiagnostic represents a single diagnostic.
type JSONDiagnostic struct {
	Kind        string `json:"kind"`
	Message     string `json:"message"`
	StartOffset int    `json:"startOffset"`
	EndOffset   int    `json:"endOffset"`
	StartLine   int    `json:"startLine"`
	StartColumn int    `json:"startColumn"`
	EndLine     int    `json:"endLine"`
	EndColumn   int    `json:"endColumn"`
	Suggestion  string `json:"suggestion,omitempty"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	FilesChecked    int            `json:"filesChecked"`
	FilesWithIssues int            `json:"filesWithIssues"`
	FilesErrored    int            `json:"filesErrored"`
	RegionsParsed   int            `json:"regionsParsed"`
	Tokens          int            `json:"tokens"`
	TotalIssues     int            `json:"totalIssues"`
	ByKind          map[string]int `json:"byKind"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := r.buildOutput(result)

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return output.Summary.TotalIssues, nil
}

func (r *JSONReporter) buildOutput(result *runner.Result) *JSONOutput {
	output := &JSONOutput{
		Version: "1.0.0",
		Files:   make([]JSONFileResult, 0, len(result.Files)),
		Summary: JSONSummary{
			FilesChecked:    result.Stats.FilesProcessed,
			FilesWithIssues: result.Stats.FilesWithIssues,
			FilesErrored:    result.Stats.FilesErrored,
			RegionsParsed:   result.Stats.RegionsParsed,
			Tokens:          result.Stats.Tokens,
			TotalIssues:     result.Stats.DiagnosticsTotal,
			ByKind:          make(map[string]int, len(result.Stats.DiagnosticsByKind)),
		},
	}
	maps.Copy(output.Summary.ByKind, result.Stats.DiagnosticsByKind)

	for _, outcome := range result.Files {
		fileResult := JSONFileResult{
			Path:        r.opts.displayPath(outcome.Path),
			Language:    outcome.Language,
			Regions:     len(outcome.Regions),
			Diagnostics: make([]JSONDiagnostic, 0),
		}

		if outcome.Error != nil {
			fileResult.Error = outcome.Error.Error()
		}

		if outcome.Buffer != nil {
			lines := outcome.Buffer.Lines()
			for _, d := range outcome.Diagnostics() {
				fileResult.Diagnostics = append(fileResult.Diagnostics, jsonDiagnostic(d, lines))
			}
		}

		output.Files = append(output.Files, fileResult)
	}

	return output
}

func jsonDiagnostic(d *diag.Error, lines *source.LineIndex) JSONDiagnostic {
	pos := d.Resolve(lines)

	return JSONDiagnostic{
		Kind:        d.Kind.String(),
		Message:     d.Message,
		StartOffset: d.Offset,
		EndOffset:   d.End,
		StartLine:   pos.StartLine,
		StartColumn: pos.StartColumn,
		EndLine:     pos.EndLine,
		EndColumn:   pos.EndColumn,
		Suggestion:  d.Suggestion,
	}
}
