package tree

import (
	"sort"

	"github.com/yaklabco/oakwood/pkg/source"
	"github.com/yaklabco/oakwood/pkg/syntax"
)

// RedNode is a positioned view of a green node. It is cheap to create and
// holds no state beyond its green node, offset, parent and index.
type RedNode struct {
	green  *Node
	offset int
	parent *RedNode
	index  int
}

// NewRoot creates the red view of a root green node at offset 0.
func NewRoot(green *Node) *RedNode {
	return &RedNode{green: green, index: -1}
}

// NewRootAt creates a red view rooted at an arbitrary offset, used for trees
// parsed from a sub-range of a larger document.
func NewRootAt(green *Node, offset int) *RedNode {
	return &RedNode{green: green, offset: offset, index: -1}
}

// Green returns the underlying green node.
func (r *RedNode) Green() *Node { return r.green }

// Kind returns the node's kind.
func (r *RedNode) Kind() syntax.Kind { return r.green.kind }

// Offset returns the absolute start offset.
func (r *RedNode) Offset() int { return r.offset }

// Span returns the absolute byte range the node covers.
func (r *RedNode) Span() source.Range {
	return source.Range{Start: r.offset, End: r.offset + r.green.length}
}

// Parent returns the parent node, or nil at the root.
func (r *RedNode) Parent() *RedNode { return r.parent }

// Index returns the node's position among its parent's children, or -1.
func (r *RedNode) Index() int { return r.index }

// Text returns the node's source text.
func (r *RedNode) Text(src []byte) string {
	span := r.Span()
	if span.End > len(src) {
		return ""
	}

	return string(src[span.Start:span.End])
}

// Children returns positioned views of all direct children.
func (r *RedNode) Children() []RedElement {
	out := make([]RedElement, len(r.green.children))
	offset := r.offset

	for i, child := range r.green.children {
		out[i] = RedElement{parent: r, green: child, index: i, offset: offset}
		offset += child.Len()
	}

	return out
}

// ChildAt returns the i-th child.
func (r *RedNode) ChildAt(i int) RedElement {
	return RedElement{parent: r, green: r.green.children[i], index: i, offset: r.offset + r.green.ChildOffset(i)}
}

// ChildNodes returns only the children that are nodes.
func (r *RedNode) ChildNodes() []*RedNode {
	var out []*RedNode
	for _, child := range r.Children() {
		if node := child.AsNode(); node != nil {
			out = append(out, node)
		}
	}

	return out
}

// FirstChildOfKind returns the first direct child node of kind, or nil.
func (r *RedNode) FirstChildOfKind(kind syntax.Kind) *RedNode {
	for _, child := range r.Children() {
		if node := child.AsNode(); node != nil && node.Kind() == kind {
			return node
		}
	}

	return nil
}

// ChildIndexAtOffset returns the index of the child whose span contains the
// absolute offset, or -1. An offset at the very end of the node selects a
// trailing empty child if there is one.
func (r *RedNode) ChildIndexAtOffset(offset int) int {
	children := r.Children()
	idx := sort.Search(len(children), func(i int) bool {
		return children[i].Span().End > offset
	})

	if idx < len(children) && children[idx].offset <= offset {
		return idx
	}

	for i := len(children) - 1; i >= 0; i-- {
		if children[i].offset == offset && children[i].green.Len() == 0 {
			return i
		}
	}

	return -1
}

// OverlappingChildren returns the half-open index range [lo, hi) of children
// whose spans intersect span.
func (r *RedNode) OverlappingChildren(span source.Range) (int, int) {
	children := r.Children()
	lo := sort.Search(len(children), func(i int) bool {
		return children[i].Span().End > span.Start
	})

	hi := lo
	for hi < len(children) && children[hi].offset < span.End {
		hi++
	}

	return lo, hi
}

// CoveringElement returns the deepest element containing offset.
func (r *RedNode) CoveringElement(offset int) (RedElement, bool) {
	node := r
	for {
		idx := node.ChildIndexAtOffset(offset)
		if idx < 0 {
			return RedElement{}, false
		}

		child := node.ChildAt(idx)
		next := child.AsNode()
		if next == nil || next.green.length == 0 {
			return child, true
		}
		node = next
	}
}

// Ancestors returns the chain of parents from the nearest to the root.
func (r *RedNode) Ancestors() []*RedNode {
	var out []*RedNode
	for node := r.parent; node != nil; node = node.parent {
		out = append(out, node)
	}

	return out
}

// Tokens returns every token leaf under the node in source order.
func (r *RedNode) Tokens() []RedElement {
	var out []RedElement

	var visit func(node *RedNode)
	visit = func(node *RedNode) {
		for _, child := range node.Children() {
			if sub := child.AsNode(); sub != nil {
				visit(sub)
				continue
			}
			out = append(out, child)
		}
	}
	visit(r)

	return out
}

// NonTriviaTokens filters Tokens by role.
func (r *RedNode) NonTriviaTokens(vocab syntax.Vocabulary) []RedElement {
	var out []RedElement
	for _, tok := range r.Tokens() {
		if vocab.Role(tok.Kind()) != syntax.RoleTrivia {
			out = append(out, tok)
		}
	}

	return out
}

// RedElement is a positioned child: either a node or a token.
type RedElement struct {
	parent *RedNode
	green  Element
	index  int
	offset int
}

// Kind returns the element's kind.
func (e RedElement) Kind() syntax.Kind { return e.green.Kind() }

// Green returns the underlying green element.
func (e RedElement) Green() Element { return e.green }

// Span returns the element's absolute range.
func (e RedElement) Span() source.Range {
	return source.Range{Start: e.offset, End: e.offset + e.green.Len()}
}

// Parent returns the node containing the element.
func (e RedElement) Parent() *RedNode { return e.parent }

// Index returns the element's position among its siblings.
func (e RedElement) Index() int { return e.index }

// IsToken reports whether the element is a token leaf.
func (e RedElement) IsToken() bool {
	_, ok := e.green.(Leaf)
	return ok
}

// AsNode returns the red node for a node element, or nil for a token.
func (e RedElement) AsNode() *RedNode {
	green, ok := e.green.(*Node)
	if !ok {
		return nil
	}

	return &RedNode{green: green, offset: e.offset, parent: e.parent, index: e.index}
}

// Token returns the element as a syntax token.
func (e RedElement) Token() syntax.Token {
	return syntax.Token{Kind: e.green.Kind(), Start: e.offset, End: e.offset + e.green.Len()}
}

// Text returns the element's source text.
func (e RedElement) Text(src []byte) string {
	span := e.Span()
	if span.End > len(src) {
		return ""
	}

	return string(src[span.Start:span.End])
}
