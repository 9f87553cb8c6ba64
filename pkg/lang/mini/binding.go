package mini

import (
	"github.com/yaklabco/oakwood/pkg/tree"
)

// Binding describes the name introduced by a let statement.
type Binding struct {
	Name    string
	Mutable bool
	Const   bool
}

// LetBinding reads a LetStatement node. Modifiers apply left to right and
// each one replaces the previous, so "let mut const x" is a constant and
// "let const mut x" is mutable. It returns false for other nodes or when the
// name is missing.
func LetBinding(node *tree.RedNode, src []byte) (Binding, bool) {
	if node == nil || node.Kind() != LetStatement {
		return Binding{}, false
	}

	var binding Binding
	for _, tok := range node.Children() {
		if !tok.IsToken() {
			break
		}

		switch tok.Kind() {
		case Mut:
			binding.Mutable, binding.Const = true, false
		case Const:
			binding.Mutable, binding.Const = false, true
		case Ident:
			binding.Name = tok.Text(src)
			return binding, true
		}
	}

	return Binding{}, false
}
