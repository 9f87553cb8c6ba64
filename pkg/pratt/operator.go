package pratt

import (
	"github.com/yaklabco/oakwood/pkg/builder"
	"github.com/yaklabco/oakwood/pkg/syntax"
)

// Assoc is operator associativity.
type Assoc uint8

// Associativities.
const (
	AssocLeft Assoc = iota
	AssocRight
	AssocNone
)

// Standard precedence levels, loosest first.
const (
	PrecAssign = iota + 1
	PrecTernary
	PrecNullCoalesce
	PrecLogicalOr
	PrecLogicalAnd
	PrecBitOr
	PrecBitXor
	PrecBitAnd
	PrecEquality
	PrecRelational
	PrecShift
	PrecAdditive
	PrecMultiplicative
	PrecUnary
	PrecPostfix
)

// Operator is a binding strength and associativity.
type Operator struct {
	Prec  int
	Assoc Assoc
}

// Left returns a left-associative operator.
func Left(prec int) Operator { return Operator{Prec: prec, Assoc: AssocLeft} }

// Right returns a right-associative operator.
func Right(prec int) Operator { return Operator{Prec: prec, Assoc: AssocRight} }

// None returns a non-associative operator.
func None(prec int) Operator { return Operator{Prec: prec, Assoc: AssocNone} }

// NextMin is the minimum precedence for the right operand: the same level
// for right-associative operators, one above otherwise.
func (op Operator) NextMin() int {
	if op.Assoc == AssocRight {
		return op.Prec
	}

	return op.Prec + 1
}

// Entry binds a token kind to an operator and the node kind it produces.
type Entry struct {
	Operator

	Node syntax.Kind
}

// Table maps token kinds to prefix and infix operators.
type Table struct {
	prefix map[syntax.Kind]Entry
	infix  map[syntax.Kind]Entry
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{
		prefix: make(map[syntax.Kind]Entry),
		infix:  make(map[syntax.Kind]Entry),
	}
}

// AddInfix registers tokens as binary operators producing node.
func (t *Table) AddInfix(node syntax.Kind, op Operator, tokens ...syntax.Kind) *Table {
	for _, tok := range tokens {
		t.infix[tok] = Entry{Operator: op, Node: node}
	}

	return t
}

// AddPrefix registers tokens as prefix operators producing node.
func (t *Table) AddPrefix(node syntax.Kind, prec int, tokens ...syntax.Kind) *Table {
	for _, tok := range tokens {
		t.prefix[tok] = Entry{Operator: Right(prec), Node: node}
	}

	return t
}

// InfixOf returns the infix entry for kind.
func (t *Table) InfixOf(kind syntax.Kind) (Entry, bool) {
	entry, ok := t.infix[kind]
	return entry, ok
}

// PrefixOf returns the prefix entry for kind.
func (t *Table) PrefixOf(kind syntax.Kind) (Entry, bool) {
	entry, ok := t.prefix[kind]
	return entry, ok
}

// ParseInfix handles the current token as a binary operator from the table
// if it binds at or above minPrec.
func (t *Table) ParseInfix(b *builder.Builder, left builder.Completed, minPrec int, operand Operand) (builder.Completed, bool) {
	entry, ok := t.infix[b.Current()]
	if !ok || entry.Prec < minPrec {
		return left, false
	}

	return Binary(b, left, entry.Operator, entry.Node, operand), true
}

// ParsePrefix handles the current token as a prefix operator from the table.
func (t *Table) ParsePrefix(b *builder.Builder, operand Operand) (builder.Completed, bool) {
	entry, ok := t.prefix[b.Current()]
	if !ok {
		return builder.Completed{}, false
	}

	return Unary(b, entry.Operator, entry.Node, operand), true
}
