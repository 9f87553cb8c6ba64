package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"
	"unicode/utf8"

	"github.com/yaklabco/oakwood/pkg/diag"
	"github.com/yaklabco/oakwood/pkg/runner"
	"github.com/yaklabco/oakwood/pkg/source"
)

const (
	sarifVersion = "2.1.0"
	sarifSchema  = "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/master/Schemata/sarif-schema-2.1.0.json"
	toolName     = "oakwood"
	toolURI      = "https://github.com/yaklabco/oakwood"
)

// SARIFOutput is the top-level SARIF log structure.
type SARIFOutput struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []SARIFRun `json:"runs"`
}

// SARIFRun represents a single run of the tool.
type SARIFRun struct {
	Tool    SARIFTool     `json:"tool"`
	Results []SARIFResult `json:"results"`
}

// SARIFTool describes the analysis tool.
type SARIFTool struct {
	Driver SARIFDriver `json:"driver"`
}

// SARIFDriver contains tool metadata and rules.
type SARIFDriver struct {
	Name           string      `json:"name"`
	Version        string      `json:"version"`
	InformationURI string      `json:"informationUri"`
	Rules          []SARIFRule `json:"rules"`
}

// SARIFRule describes one diagnostic kind.
type SARIFRule struct {
	ID               string       `json:"id"`
	Name             string       `json:"name"`
	ShortDescription SARIFMessage `json:"shortDescription"`
}

// SARIFMessage holds message text.
type SARIFMessage struct {
	Text string `json:"text"`
}

// SARIFResult represents a single diagnostic.
type SARIFResult struct {
	RuleID    string          `json:"ruleId"`
	RuleIndex int             `json:"ruleIndex"`
	Level     string          `json:"level"`
	Message   SARIFMessage    `json:"message"`
	Locations []SARIFLocation `json:"locations"`
	Fixes     []SARIFFix      `json:"fixes,omitempty"`
}

// SARIFLocation specifies where a result was found.
type SARIFLocation struct {
	PhysicalLocation SARIFPhysicalLocation `json:"physicalLocation"`
}

// SARIFPhysicalLocation specifies a file and region.
type SARIFPhysicalLocation struct {
	ArtifactLocation SARIFArtifactLocation `json:"artifactLocation"`
	Region           SARIFRegion           `json:"region"`
}

// SARIFArtifactLocation identifies a file.
type SARIFArtifactLocation struct {
	URI string `json:"uri"`
}

// SARIFRegion specifies a range within a file. Lines and columns are
// 1-based; charOffset and charLength count characters from the start of
// the file.
type SARIFRegion struct {
	StartLine   int `json:"startLine"`
	StartColumn int `json:"startColumn"`
	EndLine     int `json:"endLine"`
	EndColumn   int `json:"endColumn"`
	CharOffset  int `json:"charOffset"`
	CharLength  int `json:"charLength"`
}

// SARIFFix describes a proposed replacement.
type SARIFFix struct {
	Description     SARIFMessage          `json:"description"`
	ArtifactChanges []SARIFArtifactChange `json:"artifactChanges"`
}

// SARIFArtifactChange describes changes to a single file.
type SARIFArtifactChange struct {
	ArtifactLocation SARIFArtifactLocation `json:"artifactLocation"`
	Replacements     []SARIFReplacement    `json:"replacements"`
}

// SARIFReplacement describes a text replacement.
type SARIFReplacement struct {
	DeletedRegion   SARIFRegion  `json:"deletedRegion"`
	InsertedContent SARIFMessage `json:"insertedContent"`
}

// SARIFReporter formats results as SARIF 2.1.0.
type SARIFReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewSARIFReporter creates a new SARIF reporter.
func NewSARIFReporter(opts Options) *SARIFReporter {
	return &SARIFReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *SARIFReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output, total := r.buildOutput(result)

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode SARIF: %w", err)
	}

	return total, nil
}

func (r *SARIFReporter) buildOutput(result *runner.Result) (*SARIFOutput, int) {
	rules, ruleIndex := collectRules(result)
	results := make([]SARIFResult, 0, result.Stats.DiagnosticsTotal)

	for _, outcome := range result.Files {
		if outcome.Buffer == nil {
			continue
		}

		uri := filepath.ToSlash(r.opts.displayPath(outcome.Path))
		text := outcome.Buffer.Bytes()
		lines := outcome.Buffer.Lines()

		for _, d := range outcome.Diagnostics() {
			kind := d.Kind.String()
			region := sarifRegion(d, text, lines)

			res := SARIFResult{
				RuleID:    kind,
				RuleIndex: ruleIndex[kind],
				Level:     "error",
				Message:   SARIFMessage{Text: diagMessage(d)},
				Locations: []SARIFLocation{{
					PhysicalLocation: SARIFPhysicalLocation{
						ArtifactLocation: SARIFArtifactLocation{URI: uri},
						Region:           region,
					},
				}},
			}

			if d.Suggestion != "" {
				res.Fixes = []SARIFFix{{
					Description: SARIFMessage{Text: "Replace with " + d.Suggestion},
					ArtifactChanges: []SARIFArtifactChange{{
						ArtifactLocation: SARIFArtifactLocation{URI: uri},
						Replacements: []SARIFReplacement{{
							DeletedRegion:   region,
							InsertedContent: SARIFMessage{Text: d.Suggestion},
						}},
					}},
				}}
			}

			results = append(results, res)
		}
	}

	output := &SARIFOutput{
		Schema:  sarifSchema,
		Version: sarifVersion,
		Runs: []SARIFRun{{
			Tool: SARIFTool{
				Driver: SARIFDriver{
					Name:           toolName,
					Version:        r.opts.ToolVersion,
					InformationURI: toolURI,
					Rules:          rules,
				},
			},
			Results: results,
		}},
	}

	return output, len(results)
}

// collectRules builds one rule per diagnostic kind seen in the run, sorted
// by kind name.
func collectRules(result *runner.Result) ([]SARIFRule, map[string]int) {
	kinds := make([]string, 0, len(result.Stats.DiagnosticsByKind))
	for kind := range result.Stats.DiagnosticsByKind {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)

	rules := make([]SARIFRule, 0, len(kinds))
	index := make(map[string]int, len(kinds))
	for i, kind := range kinds {
		index[kind] = i
		rules = append(rules, SARIFRule{
			ID:               kind,
			Name:             kind,
			ShortDescription: SARIFMessage{Text: kind},
		})
	}

	return rules, index
}

func sarifRegion(d *diag.Error, text []byte, lines *source.LineIndex) SARIFRegion {
	span := d.Range()
	pos := lines.SourcePosition(span)
	start := min(span.Start, len(text))
	end := min(span.End, len(text))

	return SARIFRegion{
		StartLine:   pos.StartLine,
		StartColumn: pos.StartColumn,
		EndLine:     pos.EndLine,
		EndColumn:   pos.EndColumn,
		CharOffset:  utf8.RuneCount(text[:start]),
		CharLength:  utf8.RuneCount(text[start:end]),
	}
}

func diagMessage(d *diag.Error) string {
	if d.Message != "" {
		return d.Message
	}
	return d.Kind.String()
}
