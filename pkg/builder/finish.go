package builder

import (
	"github.com/yaklabco/oakwood/pkg/diag"
	"github.com/yaklabco/oakwood/pkg/syntax"
	"github.com/yaklabco/oakwood/pkg/tree"
)

// TryReuse asks the Reuser for an old subtree of kind at the current
// position. The subtree is accepted only if the new tokens line up with its
// leaves exactly and it contains no error nodes; it is then recorded as a
// single event and the position jumps past it. The returned Completed can be
// wrapped like any other node.
func (b *Builder) TryReuse(kind syntax.Kind) (Completed, bool) {
	if b.opts.Reuser == nil {
		return Completed{}, false
	}

	b.flushTrivia()
	last := len(b.tokens) - 1
	if b.pos >= last {
		return Completed{}, false
	}

	node, ok := b.opts.Reuser.Reuse(kind, b.tokens[b.pos].Start)
	if !ok {
		return Completed{}, false
	}

	end, ok := b.matchLeaves(node, b.pos)
	if !ok {
		return Completed{}, false
	}

	if b.opts.Logger != nil {
		b.opts.Logger.Debug("reused subtree", "kind", b.vocab.Name(kind), "tokens", end-b.pos)
	}

	at := b.mark()
	b.events = append(b.events,
		event{kind: evTombstone},
		event{kind: evNode, index: b.pos, green: node},
	)
	b.pos = end
	b.reusedNodes++

	return Completed{at: at, kind: node.Kind()}, true
}

// matchLeaves walks node's leaves against the tokens starting at idx and
// returns the index after the last matched token.
func (b *Builder) matchLeaves(node *tree.Node, idx int) (int, bool) {
	if node.Kind() == b.vocab.Error() {
		return 0, false
	}

	last := len(b.tokens) - 1
	for _, child := range node.Children() {
		if sub, isNode := child.(*tree.Node); isNode {
			next, ok := b.matchLeaves(sub, idx)
			if !ok {
				return 0, false
			}
			idx = next

			continue
		}

		if idx >= last {
			return 0, false
		}

		tok := b.tokens[idx]
		if tok.Kind != child.Kind() || tok.Len() != child.Len() {
			return 0, false
		}
		idx++
	}

	return idx, true
}

// Finish closes any nodes still open, wraps unconsumed significant tokens in
// an error node, and folds the event log into a green tree whose root covers
// every token. The builder must not be used afterwards.
func (b *Builder) Finish() (*tree.Node, []*diag.Error) {
	for len(b.open) > 0 {
		b.Close()
	}

	b.RecoverUntil()
	b.flushTrivia()
	b.events = append(b.events, event{kind: evToken, index: len(b.tokens) - 1})
	b.pos = len(b.tokens)

	return b.fold(), b.diags
}

func (b *Builder) fold() *tree.Node {
	type pending struct {
		kind     syntax.Kind
		children []tree.Element
	}

	stack := []pending{{kind: b.vocab.Root()}}
	var chain []syntax.Kind

	for i := range b.events {
		ev := b.events[i]

		switch ev.kind {
		case evTombstone:
		case evOpen:
			chain = append(chain[:0], ev.nodeKind)
			for j, fp := i, ev.forwardParent; fp != 0; {
				j += fp
				chain = append(chain, b.events[j].nodeKind)
				fp = b.events[j].forwardParent
				b.events[j].kind = evTombstone
			}

			for k := len(chain) - 1; k >= 0; k-- {
				stack = append(stack, pending{kind: chain[k]})
			}
		case evClose:
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			parent := &stack[len(stack)-1]
			parent.children = append(parent.children, b.node(top.kind, top.children))
		case evToken:
			tok := b.tokens[ev.index]
			stack[len(stack)-1].children = append(stack[len(stack)-1].children, tree.NewLeaf(tok.Kind, tok.Len()))
		case evNode:
			stack[len(stack)-1].children = append(stack[len(stack)-1].children, ev.green)
		}
	}

	return b.node(stack[0].kind, stack[0].children)
}

func (b *Builder) node(kind syntax.Kind, children []tree.Element) *tree.Node {
	node := tree.NewNode(kind, children)
	if b.opts.Interner != nil {
		return b.opts.Interner.Intern(node)
	}

	return node
}
