package incremental

import (
	"sort"

	"github.com/yaklabco/oakwood/pkg/diag"
	"github.com/yaklabco/oakwood/pkg/edit"
	"github.com/yaklabco/oakwood/pkg/syntax"
	"github.com/yaklabco/oakwood/pkg/tree"
)

// reuser hands old subtrees to the builder. A subtree qualifies when it
// starts at the mapped offset and no edit touches it or the significant
// token after it, which is the only lookahead the grammar may have used to
// decide where the node ends.
type reuser struct {
	cursor  *tree.Cursor
	changes *edit.Changes
	tokens  []syntax.Token
	diags   []*diag.Error
	vocab   syntax.Vocabulary
	oldLen  int

	// lastOffset keeps queries monotonic; the cursor cannot move backwards.
	lastOffset int
}

func newReuser(root *tree.Node, tokens []syntax.Token, diags []*diag.Error, changes *edit.Changes, vocab syntax.Vocabulary) *reuser {
	return &reuser{
		cursor:  tree.NewCursor(root),
		changes: changes,
		tokens:  tokens,
		diags:   diags,
		vocab:   vocab,
		oldLen:  root.Len(),
	}
}

// Reuse implements builder.Reuser.
func (r *reuser) Reuse(kind syntax.Kind, offset int) (*tree.Node, bool) {
	old, ok := r.changes.MapNewToOld(offset)
	if !ok || old < r.lastOffset {
		return nil, false
	}
	r.lastOffset = old

	node, ok := r.cursor.Find(old, kind)
	if !ok {
		return nil, false
	}

	end := old + node.Len()
	guard := r.lookaheadEnd(end)
	if r.changes.Touches(old, guard) {
		return nil, false
	}

	for _, d := range r.diags {
		if d.Offset <= guard && d.End >= old {
			return nil, false
		}
	}

	return node, true
}

// lookaheadEnd returns the end of the first significant old token at or
// after offset, or the end of the old text.
func (r *reuser) lookaheadEnd(offset int) int {
	idx := sort.Search(len(r.tokens), func(i int) bool {
		return r.tokens[i].Start >= offset
	})

	for ; idx < len(r.tokens); idx++ {
		tok := r.tokens[idx]
		if tok.Kind == r.vocab.EOF() {
			break
		}
		if !syntax.IsTrivia(r.vocab, tok.Kind) {
			return tok.End
		}
	}

	return r.oldLen
}
