package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/yaklabco/oakwood/internal/ui/pretty"
	"github.com/yaklabco/oakwood/pkg/diag"
	"github.com/yaklabco/oakwood/pkg/incremental"
	"github.com/yaklabco/oakwood/pkg/source"
	"github.com/yaklabco/oakwood/pkg/syntax"
	"github.com/yaklabco/oakwood/pkg/tree"
)

// printDiagnostics writes every diagnostic of one file.
func printDiagnostics(w io.Writer, styles *pretty.Styles, path string, diags []*diag.Error, lines *source.LineIndex, showContext bool) {
	for _, d := range diags {
		fmt.Fprint(w, styles.FormatDiagnostic(path, d, lines, showContext))
	}
}

// treeWidth returns the width token text is truncated to. Output that is
// not an interactive terminal is never truncated.
func treeWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !isatty.IsTerminal(f.Fd()) {
		return 0
	}

	return pretty.TermWidth(w)
}

// jsonElement is one tree element in JSON output.
type jsonElement struct {
	Kind     string         `json:"kind"`
	Start    int            `json:"start"`
	End      int            `json:"end"`
	Text     *string        `json:"text,omitempty"`
	Children []*jsonElement `json:"children,omitempty"`
}

type jsonDiagnostic struct {
	Kind       string `json:"kind"`
	Line       int    `json:"line"`
	Column     int    `json:"column"`
	Start      int    `json:"start"`
	End        int    `json:"end"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion,omitempty"`
}

type jsonDocument struct {
	Path        string            `json:"path"`
	Language    string            `json:"language"`
	Tree        *jsonElement      `json:"tree"`
	Diagnostics []*jsonDiagnostic `json:"diagnostics"`
}

// writeJSON encodes a parse result as an indented JSON document.
func writeJSON(w io.Writer, language string, result *incremental.Result, trivia bool) error {
	src := result.Buffer.Bytes()
	lines := result.Buffer.Lines()

	doc := jsonDocument{
		Path:        result.Buffer.Path(),
		Language:    language,
		Tree:        jsonNode(result.Root, result.Vocabulary(), src, trivia),
		Diagnostics: make([]*jsonDiagnostic, 0, len(result.Diagnostics)),
	}

	for _, d := range result.Diagnostics {
		pos := lines.Position(d.Offset)
		doc.Diagnostics = append(doc.Diagnostics, &jsonDiagnostic{
			Kind:       d.Kind.String(),
			Line:       pos.Line,
			Column:     pos.Column,
			Start:      d.Offset,
			End:        d.End,
			Message:    d.Message,
			Suggestion: d.Suggestion,
		})
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}

	return nil
}

func jsonNode(node *tree.RedNode, vocab syntax.Vocabulary, src []byte, trivia bool) *jsonElement {
	span := node.Span()
	out := &jsonElement{Kind: vocab.Name(node.Kind()), Start: span.Start, End: span.End}

	for _, child := range node.Children() {
		if sub := child.AsNode(); sub != nil {
			out.Children = append(out.Children, jsonNode(sub, vocab, src, trivia))
			continue
		}

		if !trivia && syntax.IsTrivia(vocab, child.Kind()) {
			continue
		}

		text := child.Text(src)
		childSpan := child.Span()
		out.Children = append(out.Children, &jsonElement{
			Kind:  vocab.Name(child.Kind()),
			Start: childSpan.Start,
			End:   childSpan.End,
			Text:  &text,
		})
	}

	return out
}
