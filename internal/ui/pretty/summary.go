package pretty

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/yaklabco/oakwood/pkg/incremental"
	"github.com/yaklabco/oakwood/pkg/runner"
)

const (
	summaryDividerWidth = 40
	wordFile            = "file"
	wordFiles           = "files"
)

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "3 issues in 2 files (1 trailing_comma_not_allowed, 2 expected_token)".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	var msg string

	if stats.DiagnosticsTotal == 0 {
		msg = s.Success.Render("No issues found") +
			s.Dim.Render(fmt.Sprintf(" (%d %s parsed)", stats.FilesProcessed, plural(stats.FilesProcessed, wordFile, wordFiles)))
	} else {
		msg = fmt.Sprintf("%s in %d %s",
			s.Failure.Render(fmt.Sprintf("%d %s", stats.DiagnosticsTotal, plural(stats.DiagnosticsTotal, "issue", "issues"))),
			stats.FilesWithIssues,
			plural(stats.FilesWithIssues, wordFile, wordFiles),
		)

		var kinds []string
		for _, kind := range sortedKinds(stats.DiagnosticsByKind) {
			kinds = append(kinds, fmt.Sprintf("%d %s", stats.DiagnosticsByKind[kind], kind))
		}
		msg += " " + s.Dim.Render("("+strings.Join(kinds, ", ")+")")
	}

	if stats.FilesErrored > 0 {
		msg += ", " + s.Error.Render(fmt.Sprintf("%d %s failed", stats.FilesErrored, plural(stats.FilesErrored, wordFile, wordFiles)))
	}

	return msg + "\n"
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	builder.WriteString("  Files parsed:      " +
		s.SummaryValue.Render(strconv.Itoa(stats.FilesProcessed)) + "\n")

	if stats.RegionsParsed > 0 {
		builder.WriteString("  Embedded regions:  " +
			s.SummaryValue.Render(strconv.Itoa(stats.RegionsParsed)) + "\n")
	}

	builder.WriteString("  Tokens:            " +
		s.SummaryValue.Render(strconv.Itoa(stats.Tokens)) + "\n")

	if stats.FilesWithIssues > 0 {
		builder.WriteString("  Files with issues: " +
			s.Failure.Render(strconv.Itoa(stats.FilesWithIssues)) + "\n")
	}

	if stats.FilesErrored > 0 {
		builder.WriteString("  Files failed:      " +
			s.Error.Render(strconv.Itoa(stats.FilesErrored)) + "\n")
	}

	builder.WriteString("\n")
	builder.WriteString("  Total issues:      " +
		s.SummaryValue.Render(strconv.Itoa(stats.DiagnosticsTotal)) + "\n")

	for _, kind := range sortedKinds(stats.DiagnosticsByKind) {
		builder.WriteString(fmt.Sprintf("    %-32s %s\n", kind+":", s.Error.Render(strconv.Itoa(stats.DiagnosticsByKind[kind]))))
	}

	builder.WriteString("\n")

	switch {
	case stats.FilesErrored > 0:
		builder.WriteString(s.Failure.Render("Some files could not be parsed"))
	case stats.DiagnosticsTotal > 0:
		builder.WriteString(s.Failure.Render("Parse completed with errors"))
	default:
		builder.WriteString(s.Success.Render("Parse clean"))
	}
	builder.WriteString("\n")

	return builder.String()
}

// FormatReuse describes how much of the previous version an incremental
// parse carried over.
func (s *Styles) FormatReuse(stats incremental.Stats) string {
	mode := s.Dim.Render("full parse")
	if stats.Incremental {
		mode = s.Success.Render("incremental")
	}

	return fmt.Sprintf("%s: %d tokens (%d reused), %d nodes reused in %s\n",
		mode, stats.Tokens, stats.TokensReused, stats.NodesReused, stats.Duration)
}

func sortedKinds(counts map[string]int) []string {
	kinds := make([]string, 0, len(counts))
	for kind := range counts {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	return kinds
}
