package incremental

import (
	"time"

	"github.com/yaklabco/oakwood/pkg/diag"
	"github.com/yaklabco/oakwood/pkg/source"
	"github.com/yaklabco/oakwood/pkg/syntax"
	"github.com/yaklabco/oakwood/pkg/tree"
)

// Stats describes how much of the previous version a parse reused.
type Stats struct {
	Tokens       int
	TokensReused int
	NodesReused  int

	// Incremental reports whether anything was carried over from the
	// previous version.
	Incremental bool

	Duration time.Duration
}

// Result is one parsed version of a document. It is immutable.
type Result struct {
	Buffer *source.Buffer
	Tokens []syntax.Token
	Green  *tree.Node

	// Root is a red view of Green. Walks create fresh red nodes, so holding
	// on to Root across versions is safe but its offsets describe Buffer.
	Root *tree.RedNode

	// Diagnostics holds lexer and parser diagnostics ordered by offset.
	Diagnostics []*diag.Error

	Stats Stats

	vocab syntax.Vocabulary
}

// Vocabulary returns the kind table the tree was built with.
func (r *Result) Vocabulary() syntax.Vocabulary { return r.vocab }

// Dump renders the tree with kind names and spans.
func (r *Result) Dump(trivia bool) string {
	return tree.Dump(r.Root, r.vocab, r.Buffer.Bytes(), tree.DumpOptions{Trivia: trivia})
}

// SExpr renders the tree compactly.
func (r *Result) SExpr() string {
	return tree.SExpr(r.Root, r.vocab, r.Buffer.Bytes())
}

// HasErrors reports whether any diagnostic was produced.
func (r *Result) HasErrors() bool { return len(r.Diagnostics) > 0 }
