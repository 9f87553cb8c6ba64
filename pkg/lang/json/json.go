// Package json is a JSON front end for the parsing engine. It is strict
// about trailing commas and keeps going after errors, so it doubles as a
// small test of the builder's recovery helpers.
package json

import (
	"fmt"

	"github.com/yaklabco/oakwood/pkg/builder"
	"github.com/yaklabco/oakwood/pkg/diag"
	"github.com/yaklabco/oakwood/pkg/lexer"
	"github.com/yaklabco/oakwood/pkg/syntax"
)

// Name is the registry name of the language.
const Name = "json"

// Token and node kinds.
const (
	Whitespace syntax.Kind = iota
	LBrace
	RBrace
	LBracket
	RBracket
	Colon
	Comma
	String
	Number
	True
	False
	Null
	Ident
	Error
	EOF

	Root
	Object
	Member
	Array
	Literal
)

var literals = []string{"true", "false", "null"}

var vocabulary = syntax.NewTable(EOF, Error, Root,
	syntax.KindInfo{Kind: Whitespace, Name: "Whitespace", Role: syntax.RoleTrivia},
	syntax.KindInfo{Kind: LBrace, Name: "LBrace", Role: syntax.RoleStructural},
	syntax.KindInfo{Kind: RBrace, Name: "RBrace", Role: syntax.RoleStructural},
	syntax.KindInfo{Kind: LBracket, Name: "LBracket", Role: syntax.RoleStructural},
	syntax.KindInfo{Kind: RBracket, Name: "RBracket", Role: syntax.RoleStructural},
	syntax.KindInfo{Kind: Colon, Name: "Colon", Role: syntax.RoleStructural},
	syntax.KindInfo{Kind: Comma, Name: "Comma", Role: syntax.RoleStructural},
	syntax.KindInfo{Kind: String, Name: "String", Role: syntax.RoleLiteral},
	syntax.KindInfo{Kind: Number, Name: "Number", Role: syntax.RoleLiteral},
	syntax.KindInfo{Kind: True, Name: "True", Role: syntax.RoleKeyword},
	syntax.KindInfo{Kind: False, Name: "False", Role: syntax.RoleKeyword},
	syntax.KindInfo{Kind: Null, Name: "Null", Role: syntax.RoleKeyword},
	syntax.KindInfo{Kind: Ident, Name: "Ident", Role: syntax.RoleIdentifier},
	syntax.KindInfo{Kind: Error, Name: "Error"},
	syntax.KindInfo{Kind: EOF, Name: "EOF"},
	syntax.KindInfo{Kind: Root, Name: "Root"},
	syntax.KindInfo{Kind: Object, Name: "Object"},
	syntax.KindInfo{Kind: Member, Name: "Member"},
	syntax.KindInfo{Kind: Array, Name: "Array"},
	syntax.KindInfo{Kind: Literal, Name: "Literal"},
)

var rules = []lexer.Rule{
	lexer.Whitespace(Whitespace),
	lexer.Newline(Whitespace),
	lexer.QuotedString(String, '"', '\\', false),
	number,
	lexer.Identifier(Ident, map[string]syntax.Kind{"true": True, "false": False, "null": Null}),
	lexer.Delimiters(map[rune]syntax.Kind{
		'{': LBrace, '}': RBrace, '[': LBracket, ']': RBracket, ':': Colon, ',': Comma,
	}),
}

// number matches -?digits(.digits)?([eE][+-]?digits)?. Leading zeros are
// accepted; validating the value is left to consumers.
func number(s *lexer.State) bool {
	start := s.Offset()
	s.AdvanceIf("-")

	if s.AdvanceWhile(isDigit) == 0 {
		s.Seek(start)
		return false
	}

	if s.PeekByte(0) == '.' && isDigit(rune(s.PeekByte(1))) {
		s.Advance(1)
		s.AdvanceWhile(isDigit)
	}

	if b := s.PeekByte(0); b == 'e' || b == 'E' {
		next := 1
		if sign := s.PeekByte(1); sign == '+' || sign == '-' {
			next = 2
		}
		if isDigit(rune(s.PeekByte(next))) {
			s.Advance(next)
			s.AdvanceWhile(isDigit)
		}
	}

	s.Emit(Number, start)

	return true
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

// Plugin implements lang.Language for JSON.
type Plugin struct{}

// New returns the JSON plugin.
func New() *Plugin { return &Plugin{} }

// Name implements lang.Language.
func (*Plugin) Name() string { return Name }

// Extensions implements lang.Language.
func (*Plugin) Extensions() []string { return []string{".json"} }

// Vocabulary implements lang.Language.
func (*Plugin) Vocabulary() syntax.Vocabulary { return vocabulary }

// Rules implements lang.Language.
func (*Plugin) Rules() []lexer.Rule { return rules }

// ParseRoot implements lang.Language. A document holds one value; anything
// after it is left for the builder to report.
func (*Plugin) ParseRoot(b *builder.Builder) {
	if b.AtEnd() {
		return
	}

	value(b)
}

// Vocabulary is the JSON kind table.
func Vocabulary() *syntax.Table { return vocabulary }

func value(b *builder.Builder) {
	switch b.Current() {
	case LBrace:
		b.Open(Object)
		b.ParseList(builder.ListOptions{
			Open:      LBrace,
			Close:     RBrace,
			Separator: Comma,
			Stop:      []syntax.Kind{RBracket},
		}, func() { member(b) })
		b.Close()
	case LBracket:
		b.Open(Array)
		b.ParseList(builder.ListOptions{
			Open:      LBracket,
			Close:     RBracket,
			Separator: Comma,
			Stop:      []syntax.Kind{RBrace},
		}, func() { value(b) })
		b.Close()
	case String, Number, True, False, Null:
		b.Open(Literal)
		b.Bump()
		b.Close()
	case Ident:
		bareword(b)
	default:
		if b.AtEnd() || b.AtAny(RBrace, RBracket, Comma, Colon) {
			b.ReportExpected("value")
			return
		}
		b.ErrorAndBump()
	}
}

func member(b *builder.Builder) {
	if !b.AtAny(String, Ident) {
		b.ReportExpected("member")
		return
	}

	b.Open(Member)
	if b.At(Ident) {
		bareword(b)
	} else {
		b.Bump()
	}

	if b.Expect(Colon) {
		value(b)
	}
	b.Close()
}

// bareword wraps an unquoted word in an error node and suggests the literal
// it most likely misspells.
func bareword(b *builder.Builder) {
	tok := b.CurrentToken()
	text := b.CurrentText()

	b.Report(diag.UnexpectedToken(tok.Start, tok.End, fmt.Sprintf("identifier %q", text)).
		WithSuggestion(text, literals))
	b.Open(Error)
	b.Bump()
	b.Close()
}
