package tree

import "github.com/yaklabco/oakwood/pkg/syntax"

// MaxCursorSteps bounds the work a single Find call may do. The cursor keeps
// its position between calls, so a search that gives up still makes progress
// for the next one.
const MaxCursorSteps = 100

type frame struct {
	node       *Node
	start      int
	child      int
	childStart int
}

// Cursor navigates a green tree in pre-order while tracking offsets. It is
// used to locate reusable subtrees of a previous parse; queries are expected
// at non-decreasing offsets.
type Cursor struct {
	stack []frame
}

// NewCursor positions a cursor on the first child of root.
func NewCursor(root *Node) *Cursor {
	return &Cursor{stack: []frame{{node: root}}}
}

func (c *Cursor) top() *frame { return &c.stack[len(c.stack)-1] }

// Current returns the element under the cursor and its offset.
func (c *Cursor) Current() (Element, int, bool) {
	top := c.top()
	if top.child >= len(top.node.children) {
		return nil, 0, false
	}

	return top.node.children[top.child], top.childStart, true
}

// Depth returns how many nodes enclose the current element.
func (c *Cursor) Depth() int { return len(c.stack) }

// StepInto moves to the first child of the current element.
func (c *Cursor) StepInto() bool {
	cur, offset, ok := c.Current()
	if !ok {
		return false
	}

	node, isNode := cur.(*Node)
	if !isNode || len(node.children) == 0 {
		return false
	}

	c.stack = append(c.stack, frame{node: node, start: offset, childStart: offset})

	return true
}

// StepOver moves to the next sibling.
func (c *Cursor) StepOver() bool {
	top := c.top()
	if top.child+1 >= len(top.node.children) {
		return false
	}

	top.childStart += top.node.children[top.child].Len()
	top.child++

	return true
}

// StepOut moves to the enclosing node.
func (c *Cursor) StepOut() bool {
	if len(c.stack) == 1 {
		return false
	}
	c.stack = c.stack[:len(c.stack)-1]

	return true
}

// StepNext moves to the next element in pre-order.
func (c *Cursor) StepNext() bool {
	if c.StepInto() || c.StepOver() {
		return true
	}

	for c.StepOut() {
		if c.StepOver() {
			return true
		}
	}

	return false
}

// Find looks for a non-empty node of kind starting exactly at offset,
// preferring the outermost such node.
func (c *Cursor) Find(offset int, kind syntax.Kind) (*Node, bool) {
	for len(c.stack) > 1 {
		top := c.top()
		if top.start <= offset && offset < top.start+top.node.length {
			break
		}
		c.StepOut()
	}

	for range MaxCursorSteps {
		cur, start, ok := c.Current()
		if !ok || start > offset {
			return nil, false
		}

		node, isNode := cur.(*Node)
		if start == offset && isNode && node.kind == kind && node.length > 0 {
			return node, true
		}

		if start+cur.Len() <= offset {
			if !c.advancePast() {
				return nil, false
			}

			continue
		}

		if !c.StepInto() {
			return nil, false
		}
	}

	return nil, false
}

// advancePast moves to the element after the current subtree.
func (c *Cursor) advancePast() bool {
	if c.StepOver() {
		return true
	}

	for c.StepOut() {
		if c.StepOver() {
			return true
		}
	}

	return false
}
