package mini

import (
	"github.com/yaklabco/oakwood/pkg/builder"
	"github.com/yaklabco/oakwood/pkg/pratt"
	"github.com/yaklabco/oakwood/pkg/syntax"
)

var table = pratt.NewTable().
	AddInfix(AssignExpression, pratt.Right(pratt.PrecAssign),
		Assign, PlusAssign, MinusAssign, StarAssign, SlashAssign, CoalesceAssign).
	AddInfix(BinaryExpression, pratt.Right(pratt.PrecNullCoalesce), Coalesce).
	AddInfix(BinaryExpression, pratt.Left(pratt.PrecLogicalOr), OrOr).
	AddInfix(BinaryExpression, pratt.Left(pratt.PrecLogicalAnd), AndAnd).
	AddInfix(BinaryExpression, pratt.Left(pratt.PrecBitOr), Pipe).
	AddInfix(BinaryExpression, pratt.Left(pratt.PrecBitXor), Caret).
	AddInfix(BinaryExpression, pratt.Left(pratt.PrecBitAnd), Amp).
	AddInfix(BinaryExpression, pratt.Left(pratt.PrecEquality), EqEq, NotEq).
	AddInfix(BinaryExpression, pratt.Left(pratt.PrecRelational), Lt, LtEq, Gt, GtEq, Is, Instanceof).
	AddInfix(BinaryExpression, pratt.Left(pratt.PrecShift), Shl, Shr).
	AddInfix(BinaryExpression, pratt.Left(pratt.PrecAdditive), Plus, Minus).
	AddInfix(BinaryExpression, pratt.Left(pratt.PrecMultiplicative), Star, Slash, Percent).
	AddPrefix(UnaryExpression, pratt.PrecUnary, Minus, Bang, Tilde, PlusPlus, MinusMinus)

type parser struct {
	b       *builder.Builder
	operand pratt.Operand
}

func newParser(b *builder.Builder) *parser {
	p := &parser{b: b}
	p.operand = pratt.Operands(b, p)

	return p
}

func startsExpression(kind syntax.Kind) bool {
	switch kind {
	case Ident, Int, Float, String, StringStart, True, False, Null,
		LParen, LBrace, If, While, Minus, Bang, Tilde, PlusPlus, MinusMinus:
		return true
	}

	return false
}

// startsCastOperand lists tokens that may follow "(Type)" in a cast. An
// opening parenthesis is left out so that "(f)(x)" stays a call.
func startsCastOperand(kind syntax.Kind) bool {
	switch kind {
	case Ident, Int, Float, String, StringStart, True, False, Null, Bang, Tilde:
		return true
	}

	return false
}

func (p *parser) statement() {
	b := p.b

	switch b.Current() {
	case Let:
		if _, ok := b.TryReuse(LetStatement); !ok {
			p.letStatement()
		}
	case Fn:
		if _, ok := b.TryReuse(FnDecl); !ok {
			p.fnDecl()
		}
	case Return:
		p.returnStatement()
	case Semicolon:
		b.Bump()
	default:
		if !startsExpression(b.Current()) {
			b.ErrorAndBump()
			return
		}
		if _, ok := b.TryReuse(ExpressionStatement); !ok {
			p.expressionStatement()
		}
	}
}

// expressionStatement wraps an expression and an optional semicolon. Block
// forms at the start of a statement end it, so a following "(" starts a new
// statement rather than a call.
func (p *parser) expressionStatement() {
	b := p.b
	cp := b.Checkpoint()

	switch b.Current() {
	case If:
		p.ifExpression()
	case While:
		p.whileExpression()
	case LBrace:
		p.block()
	default:
		p.expression()
	}

	b.Eat(Semicolon)
	b.FinishAt(cp, ExpressionStatement)
}

func (p *parser) letStatement() {
	b := p.b
	b.Open(LetStatement)
	b.Bump()

	for b.AtAny(Mut, Const) {
		b.Bump()
	}

	b.ExpectName("binding")
	if b.Eat(Assign) {
		p.expression()
	}
	b.Eat(Semicolon)
	b.Close()
}

func (p *parser) fnDecl() {
	b := p.b
	b.Open(FnDecl)
	b.Bump()
	b.ExpectName("function")

	b.Open(ParamList)
	b.ParseList(builder.ListOptions{
		Open:          LParen,
		Close:         RParen,
		Separator:     Comma,
		AllowTrailing: true,
		Stop:          []syntax.Kind{LBrace, RBrace, Semicolon},
	}, func() { b.ExpectName("parameter") })
	b.Close()

	p.block()
	b.Close()
}

func (p *parser) returnStatement() {
	b := p.b
	b.Open(ReturnStatement)
	b.Bump()

	if startsExpression(b.Current()) {
		p.expression()
	}
	b.Eat(Semicolon)
	b.Close()
}

func (p *parser) block() builder.Completed {
	b := p.b
	if reused, ok := b.TryReuse(Block); ok {
		return reused
	}

	b.Open(Block)
	if b.Expect(LBrace) {
		b.ParseUntil(func() bool { return b.At(RBrace) }, p.statement)
		b.Expect(RBrace)
	}

	return b.Close()
}

func (p *parser) ifExpression() builder.Completed {
	b := p.b
	b.Open(IfExpression)
	b.Bump()

	p.condition()
	p.block()

	if b.Eat(Else) {
		if b.At(If) {
			p.ifExpression()
		} else {
			p.block()
		}
	}

	return b.Close()
}

func (p *parser) whileExpression() builder.Completed {
	b := p.b
	b.Open(WhileExpression)
	b.Bump()

	p.condition()
	p.block()

	return b.Close()
}

// condition parses the expression before a block; a missing condition is
// reported without consuming the block.
func (p *parser) condition() {
	if p.b.At(LBrace) {
		p.b.ReportExpected("condition")
		return
	}

	p.expression()
}

func (p *parser) expression() {
	pratt.Parse(p.b, p, 0)
}
