package tree

import (
	"fmt"
	"strings"

	"github.com/yaklabco/oakwood/pkg/syntax"
)

// DumpOptions controls Dump output.
type DumpOptions struct {
	// Trivia includes whitespace and comment tokens.
	Trivia bool
}

// Dump renders the tree one element per line with kind names, spans and
// token text.
func Dump(root *RedNode, vocab syntax.Vocabulary, src []byte, opts DumpOptions) string {
	var sb strings.Builder
	dumpNode(&sb, root, vocab, src, opts, 0)

	return sb.String()
}

func dumpNode(sb *strings.Builder, node *RedNode, vocab syntax.Vocabulary, src []byte, opts DumpOptions, depth int) {
	span := node.Span()
	fmt.Fprintf(sb, "%s%s@%d..%d\n", strings.Repeat("  ", depth), vocab.Name(node.Kind()), span.Start, span.End)

	for _, child := range node.Children() {
		if sub := child.AsNode(); sub != nil {
			dumpNode(sb, sub, vocab, src, opts, depth+1)
			continue
		}

		if !opts.Trivia && vocab.Role(child.Kind()) == syntax.RoleTrivia {
			continue
		}

		span := child.Span()
		fmt.Fprintf(sb, "%s%s@%d..%d %q\n", strings.Repeat("  ", depth+1), vocab.Name(child.Kind()), span.Start, span.End, child.Text(src))
	}
}

// SExpr renders the tree compactly as nested lists: nodes become
// "(Kind children...)" and tokens their source text. Trivia and empty tokens
// are omitted.
func SExpr(root *RedNode, vocab syntax.Vocabulary, src []byte) string {
	var sb strings.Builder
	sexpr(&sb, root, vocab, src)

	return sb.String()
}

func sexpr(sb *strings.Builder, node *RedNode, vocab syntax.Vocabulary, src []byte) {
	sb.WriteByte('(')
	sb.WriteString(vocab.Name(node.Kind()))

	for _, child := range node.Children() {
		if sub := child.AsNode(); sub != nil {
			sb.WriteByte(' ')
			sexpr(sb, sub, vocab, src)

			continue
		}

		if child.Span().IsEmpty() || vocab.Role(child.Kind()) == syntax.RoleTrivia {
			continue
		}

		sb.WriteByte(' ')
		sb.WriteString(child.Text(src))
	}

	sb.WriteByte(')')
}
