// Package pratt implements operator-precedence expression parsing on top of
// the tree builder.
//
// A language supplies a Grammar with three hooks. Parse calls Prefix for the
// first operand and then keeps calling Infix with the operand built so far
// until Infix declines. Grown expressions wrap the existing left operand with
// CheckpointBefore and FinishAt, so nothing is ever rebuilt.
package pratt

import (
	"github.com/yaklabco/oakwood/pkg/builder"
	"github.com/yaklabco/oakwood/pkg/syntax"
)

// Grammar is the per-language part of expression parsing.
type Grammar interface {
	// Primary parses an atom: a literal, a name or a bracketed group.
	Primary(b *builder.Builder) builder.Completed

	// Prefix parses the start of an expression. Languages without prefix
	// operators delegate to Primary.
	Prefix(b *builder.Builder) builder.Completed

	// Infix extends left with the operator at the current token if that
	// operator binds at or above minPrec. It returns false to stop.
	Infix(b *builder.Builder, left builder.Completed, minPrec int) (builder.Completed, bool)
}

// Operand parses a sub-expression with the given minimum precedence.
type Operand func(minPrec int) builder.Completed

// Parse parses one expression whose operators all bind at or above minPrec.
func Parse(b *builder.Builder, g Grammar, minPrec int) builder.Completed {
	left := g.Prefix(b)

	for {
		before := b.Pos()
		next, ok := g.Infix(b, left, minPrec)
		if !ok || b.Stuck(before) {
			return left
		}
		left = next
	}
}

// Operands returns the Operand that recurses into Parse with g.
func Operands(b *builder.Builder, g Grammar) Operand {
	return func(minPrec int) builder.Completed {
		return Parse(b, g, minPrec)
	}
}

// Binary consumes the operator token after left, parses the right operand at
// op.NextMin() and wraps both into a node of kind.
func Binary(b *builder.Builder, left builder.Completed, op Operator, kind syntax.Kind, operand Operand) builder.Completed {
	cp := b.CheckpointBefore(left)
	b.Bump()
	operand(op.NextMin())

	return b.FinishAt(cp, kind)
}

// Unary consumes a prefix operator and parses its operand at op.Prec.
func Unary(b *builder.Builder, op Operator, kind syntax.Kind, operand Operand) builder.Completed {
	cp := b.Checkpoint()
	b.Bump()
	operand(op.Prec)

	return b.FinishAt(cp, kind)
}

// Postfix consumes an operator that takes no right operand, such as x++.
func Postfix(b *builder.Builder, left builder.Completed, kind syntax.Kind) builder.Completed {
	cp := b.CheckpointBefore(left)
	b.Bump()

	return b.FinishAt(cp, kind)
}

// Ternary parses `left ? then : else`. The middle branch accepts any
// expression; the last one binds at op.NextMin().
func Ternary(b *builder.Builder, left builder.Completed, op Operator, colon, kind syntax.Kind, operand Operand) builder.Completed {
	cp := b.CheckpointBefore(left)
	b.Bump()
	operand(0)
	if b.Expect(colon) {
		operand(op.NextMin())
	}

	return b.FinishAt(cp, kind)
}

// Missing reports an absent operand and leaves an empty error node in its
// place. It consumes nothing.
func Missing(b *builder.Builder, what string) builder.Completed {
	b.ReportExpected(what)

	return b.FinishAt(b.Checkpoint(), b.Vocab().Error())
}
