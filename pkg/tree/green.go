// Package tree implements the two-layer syntax tree.
//
// The green layer is immutable and position-free: a node knows its kind, its
// children and its total length, nothing else. Structurally equal subtrees
// are interchangeable, so a green tree can be shared between document
// versions and across goroutines.
//
// The red layer is a thin, short-lived view over a green tree that adds
// absolute offsets and parent links. Red nodes are created on demand while
// traversing and are never stored in the green tree.
package tree

import (
	"encoding/binary"
	"fmt"

	"github.com/cespare/xxhash/v2"

	"github.com/yaklabco/oakwood/pkg/syntax"
)

// Element is a green node or a green token leaf.
type Element interface {
	// Kind returns the element's kind.
	Kind() syntax.Kind

	// Len returns the number of source bytes the element covers.
	Len() int

	// Hash returns a structural hash: equal elements hash equally.
	Hash() uint64

	isElement()
}

// Leaf is a green token: a kind and a length.
type Leaf struct {
	kind   syntax.Kind
	length int
}

// NewLeaf creates a token leaf.
func NewLeaf(kind syntax.Kind, length int) Leaf {
	return Leaf{kind: kind, length: length}
}

// Kind implements Element.
func (l Leaf) Kind() syntax.Kind { return l.kind }

// Len implements Element.
func (l Leaf) Len() int { return l.length }

// Hash implements Element.
func (l Leaf) Hash() uint64 {
	var buf [10]byte
	binary.LittleEndian.PutUint16(buf[:2], uint16(l.kind))
	binary.LittleEndian.PutUint64(buf[2:], uint64(l.length)) //nolint:gosec // lengths are non-negative

	return xxhash.Sum64(buf[:])
}

func (Leaf) isElement() {}

func (l Leaf) String() string {
	return fmt.Sprintf("Leaf(%d, %d)", l.kind, l.length)
}

// Node is an interior green node.
type Node struct {
	kind     syntax.Kind
	children []Element
	length   int
	hash     uint64
}

// NewNode creates a node. Its length is the sum of its children's lengths.
// The children slice is owned by the node afterwards.
func NewNode(kind syntax.Kind, children []Element) *Node {
	digest := xxhash.New()

	var head [3]byte
	binary.LittleEndian.PutUint16(head[:2], uint16(kind))
	head[2] = 'N'
	_, _ = digest.Write(head[:])

	length := 0
	var childHash [8]byte
	for _, child := range children {
		length += child.Len()
		binary.LittleEndian.PutUint64(childHash[:], child.Hash())
		_, _ = digest.Write(childHash[:])
	}

	return &Node{
		kind:     kind,
		children: children,
		length:   length,
		hash:     digest.Sum64(),
	}
}

// Kind implements Element.
func (n *Node) Kind() syntax.Kind { return n.kind }

// Len implements Element.
func (n *Node) Len() int { return n.length }

// Hash implements Element.
func (n *Node) Hash() uint64 { return n.hash }

func (*Node) isElement() {}

// Children returns the node's children. Callers must not modify the slice.
func (n *Node) Children() []Element { return n.children }

// ChildCount returns the number of direct children.
func (n *Node) ChildCount() int { return len(n.children) }

// Child returns the i-th child.
func (n *Node) Child(i int) Element { return n.children[i] }

// ChildOffset returns the offset of the i-th child relative to the node.
func (n *Node) ChildOffset(i int) int {
	offset := 0
	for _, child := range n.children[:i] {
		offset += child.Len()
	}

	return offset
}

// Equal reports whether two elements are structurally identical.
func Equal(a, b Element) bool {
	if a.Kind() != b.Kind() || a.Len() != b.Len() || a.Hash() != b.Hash() {
		return false
	}

	an, aIsNode := a.(*Node)
	bn, bIsNode := b.(*Node)
	if aIsNode != bIsNode {
		return false
	}
	if !aIsNode || an == bn {
		return true
	}
	if len(an.children) != len(bn.children) {
		return false
	}

	for i := range an.children {
		if !Equal(an.children[i], bn.children[i]) {
			return false
		}
	}

	return true
}

// LengthError reports a node whose length disagrees with its children.
type LengthError struct {
	Kind     syntax.Kind
	Length   int
	Children int
}

func (e *LengthError) Error() string {
	return fmt.Sprintf("node kind %d has length %d but its children sum to %d", e.Kind, e.Length, e.Children)
}

// Validate checks the length invariant over a whole subtree.
func Validate(root *Node) error {
	sum := 0
	for _, child := range root.children {
		if node, ok := child.(*Node); ok {
			if err := Validate(node); err != nil {
				return err
			}
		}
		sum += child.Len()
	}

	if sum != root.length {
		return &LengthError{Kind: root.kind, Length: root.length, Children: sum}
	}

	return nil
}
