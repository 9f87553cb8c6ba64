package tree

import "github.com/yaklabco/oakwood/pkg/syntax"

// WalkFunc is the function signature for Walk callbacks.
// Return a non-nil error to stop the walk.
type WalkFunc func(n *RedNode) error

// Walk performs a pre-order traversal of the nodes under root, root included.
// Tokens are not visited; use RedNode.Tokens for those.
func Walk(root *RedNode, walkFunc WalkFunc) error {
	if root == nil {
		return nil
	}

	if err := walkFunc(root); err != nil {
		return err
	}

	for _, child := range root.Children() {
		if node := child.AsNode(); node != nil {
			if err := Walk(node, walkFunc); err != nil {
				return err
			}
		}
	}

	return nil
}

// WalkWithContext performs a traversal with enter and leave callbacks.
// Either callback may be nil.
func WalkWithContext(root *RedNode, enter, leave WalkFunc) error {
	if root == nil {
		return nil
	}

	if enter != nil {
		if err := enter(root); err != nil {
			return err
		}
	}

	for _, child := range root.Children() {
		if node := child.AsNode(); node != nil {
			if err := WalkWithContext(node, enter, leave); err != nil {
				return err
			}
		}
	}

	if leave != nil {
		if err := leave(root); err != nil {
			return err
		}
	}

	return nil
}

// FindAll returns all nodes matching the predicate.
func FindAll(root *RedNode, predicate func(n *RedNode) bool) []*RedNode {
	var result []*RedNode

	//nolint:errcheck,revive // Walk only returns nil errors in this usage
	Walk(root, func(node *RedNode) error {
		if predicate(node) {
			result = append(result, node)
		}
		return nil
	})

	return result
}

// FindFirst returns the first node matching the predicate, or nil if none found.
func FindFirst(root *RedNode, predicate func(n *RedNode) bool) *RedNode {
	var found *RedNode

	//nolint:errcheck,revive // errStopWalk is expected and intentionally ignored
	Walk(root, func(node *RedNode) error {
		if predicate(node) {
			found = node
			return errStopWalk
		}
		return nil
	})

	return found
}

// FindByKind returns all nodes of the specified kind.
func FindByKind(root *RedNode, kind syntax.Kind) []*RedNode {
	return FindAll(root, func(n *RedNode) bool {
		return n.Kind() == kind
	})
}

// errStopWalk is a sentinel error used to stop walking early.
var errStopWalk = &stopWalkError{}

type stopWalkError struct{}

func (e *stopWalkError) Error() string {
	return "stop walk"
}
