package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/oakwood/pkg/syntax"
	"github.com/yaklabco/oakwood/pkg/tree"
)

// TreeOptions controls FormatTree.
type TreeOptions struct {
	// Trivia includes whitespace and comment tokens.
	Trivia bool

	// Width truncates token text so lines fit. Zero disables truncation.
	Width int
}

// FormatTree renders a syntax tree one element per line, the way
// tree.Dump does, with styled kinds and spans.
func (s *Styles) FormatTree(root *tree.RedNode, vocab syntax.Vocabulary, src []byte, opts TreeOptions) string {
	var sb strings.Builder
	s.formatNode(&sb, root, vocab, src, opts, 0)
	return sb.String()
}

func (s *Styles) formatNode(sb *strings.Builder, node *tree.RedNode, vocab syntax.Vocabulary, src []byte, opts TreeOptions, depth int) {
	indent := strings.Repeat("  ", depth)
	kindStyle := s.NodeKind
	if node.Kind() == vocab.Error() {
		kindStyle = s.ErrorNode
	}

	fmt.Fprintf(sb, "%s%s%s\n", indent, kindStyle.Render(vocab.Name(node.Kind())), s.Span.Render("@"+node.Span().String()))

	for _, child := range node.Children() {
		if sub := child.AsNode(); sub != nil {
			s.formatNode(sb, sub, vocab, src, opts, depth+1)
			continue
		}

		trivia := vocab.Role(child.Kind()) == syntax.RoleTrivia
		if trivia && !opts.Trivia {
			continue
		}

		prefix := indent + "  "
		kind := vocab.Name(child.Kind())
		span := "@" + child.Span().String()
		text := strconv.Quote(string(src[child.Span().Start:child.Span().End]))

		if opts.Width > 0 {
			room := opts.Width - len(prefix) - len(kind) - len(span) - 1
			text = truncate(text, room)
		}

		style := s.TokenText
		if trivia {
			style = s.Trivia
		}

		fmt.Fprintf(sb, "%s%s%s %s\n", prefix, s.TokenKind.Render(kind), s.Span.Render(span), style.Render(text))
	}
}

// truncate shortens text to at most width bytes, marking the cut.
func truncate(text string, width int) string {
	const ellipsis = "..."
	if width <= 0 || len(text) <= width {
		return text
	}
	if width <= len(ellipsis) {
		return ellipsis[:width]
	}
	return text[:width-len(ellipsis)] + ellipsis
}
