package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/oakwood/pkg/diag"
	"github.com/yaklabco/oakwood/pkg/source"
)

// FormatDiagnostic formats a single diagnostic for terminal output:
//
//	path:line:col  error  message  (kind)
//
// followed by the source line with a caret when showContext is set, and
// the suggestion if there is one.
func (s *Styles) FormatDiagnostic(path string, d *diag.Error, lines *source.LineIndex, showContext bool) string {
	var builder strings.Builder

	pos := lines.Position(d.Offset)
	location := fmt.Sprintf("%s:%d:%d", s.FilePath.Render(path), pos.Line, pos.Column)

	message := d.Message
	if message == "" {
		message = d.Kind.String()
	}

	builder.WriteString(fmt.Sprintf("  %s  %s  %s  %s\n",
		location,
		s.Error.Render("error"),
		s.Message.Render(message),
		s.Kind.Render("("+d.Kind.String()+")"),
	))

	if showContext {
		if line := lines.LineContent(pos.Line); len(line) > 0 {
			builder.WriteString(s.FormatSourceContext(string(line), pos.Column))
		}
	}

	if d.Suggestion != "" {
		builder.WriteString("    " + s.Dim.Render("Did you mean:") + " " +
			s.Suggestion.Render(d.Suggestion) + "\n")
	}

	return builder.String()
}

// FormatSourceContext formats the source line with a caret marker.
func (s *Styles) FormatSourceContext(line string, column int) string {
	var builder strings.Builder

	const indent = "        "

	builder.WriteString(indent + s.SourceLine.Render(strings.ReplaceAll(line, "\t", " ")) + "\n")

	if column > 0 {
		padding := indent + strings.Repeat(" ", column-1)
		builder.WriteString(padding + s.Caret.Render("^") + "\n")
	}

	return builder.String()
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path, language string, issueCount int) string {
	header := s.FilePath.Render(path)
	if language != "" {
		header += s.Dim.Render(" [" + language + "]")
	}
	if issueCount > 0 {
		word := "issues"
		if issueCount == 1 {
			word = "issue"
		}
		header += s.Dim.Render(fmt.Sprintf(" (%d %s)", issueCount, word))
	}
	return header
}
