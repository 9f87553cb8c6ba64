package mini

import (
	"github.com/yaklabco/oakwood/pkg/builder"
	"github.com/yaklabco/oakwood/pkg/pratt"
	"github.com/yaklabco/oakwood/pkg/syntax"
)

// Primary implements pratt.Grammar.
func (p *parser) Primary(b *builder.Builder) builder.Completed {
	switch b.Current() {
	case Int, Float, True, False, Null:
		return p.leaf(Literal)
	case String:
		return p.leaf(StringLiteral)
	case Ident:
		return p.leaf(NameRef)
	case StringStart:
		return p.interpolatedString()
	case LParen:
		return p.parenOrCast()
	case If:
		return p.ifExpression()
	case While:
		return p.whileExpression()
	case LBrace:
		return p.block()
	default:
		return pratt.Missing(b, "expression")
	}
}

// Prefix implements pratt.Grammar.
func (p *parser) Prefix(b *builder.Builder) builder.Completed {
	if node, ok := table.ParsePrefix(b, p.operand); ok {
		return node
	}

	return p.Primary(b)
}

// Infix implements pratt.Grammar.
func (p *parser) Infix(b *builder.Builder, left builder.Completed, minPrec int) (builder.Completed, bool) {
	switch b.Current() {
	case Question:
		op := pratt.Right(pratt.PrecTernary)
		if op.Prec < minPrec {
			return left, false
		}

		return pratt.Ternary(b, left, op, Colon, TernaryExpression, p.operand), true
	case LParen, Dot, LBracket, PlusPlus, MinusMinus:
		if pratt.PrecPostfix < minPrec {
			return left, false
		}

		return p.postfix(left), true
	}

	return table.ParseInfix(b, left, minPrec, p.operand)
}

func (p *parser) leaf(kind syntax.Kind) builder.Completed {
	p.b.Open(kind)
	p.b.Bump()

	return p.b.Close()
}

func (p *parser) postfix(left builder.Completed) builder.Completed {
	b := p.b
	cp := b.CheckpointBefore(left)

	switch b.Current() {
	case LParen:
		b.Open(ArgList)
		b.ParseList(builder.ListOptions{
			Open:          LParen,
			Close:         RParen,
			Separator:     Comma,
			AllowTrailing: true,
			Stop:          []syntax.Kind{RBrace, Semicolon},
		}, p.expression)
		b.Close()

		return b.FinishAt(cp, CallExpression)
	case Dot:
		b.Bump()
		b.ExpectName("member")

		return b.FinishAt(cp, MemberExpression)
	case LBracket:
		b.Bump()
		p.expression()
		b.Expect(RBracket)

		return b.FinishAt(cp, IndexExpression)
	default:
		b.Bump()

		return b.FinishAt(cp, PostfixExpression)
	}
}

// parenOrCast tries "(Type) operand" first and falls back to a
// parenthesized expression.
func (p *parser) parenOrCast() builder.Completed {
	b := p.b
	cp := b.Checkpoint()

	if b.Try(p.cast) {
		return b.FinishAt(cp, CastExpression)
	}

	b.Bump()
	p.expression()
	b.Expect(RParen)

	return b.FinishAt(cp, ParenExpression)
}

func (p *parser) cast() bool {
	b := p.b
	b.Bump()

	if !b.At(Ident) {
		return false
	}
	p.leaf(NameRef)

	if !b.Eat(RParen) || !startsCastOperand(b.Current()) {
		return false
	}

	pratt.Parse(b, p, pratt.PrecUnary)

	return true
}

func (p *parser) interpolatedString() builder.Completed {
	b := p.b
	b.Open(StringLiteral)
	b.Bump()

loop:
	for !b.AtEnd() {
		switch b.Current() {
		case StringPart:
			b.Bump()
		case InterpStart:
			b.Open(Interpolation)
			b.Bump()
			if !b.At(InterpEnd) {
				p.expression()
			}
			b.RecoverUntil(InterpEnd, InterpStart, ControlStart, StringPart, StringEnd)
			b.Expect(InterpEnd)
			b.Close()
		case ControlStart:
			b.Open(Interpolation)
			b.Bump()
			b.ParseUntil(func() bool { return b.AtAny(ControlEnd, StringPart, StringEnd) }, p.statement)
			b.Expect(ControlEnd)
			b.Close()
		default:
			break loop
		}
	}

	b.Expect(StringEnd)

	return b.Close()
}
