// Package mini is a small expression language used to exercise the parsing
// engine: blocks, if/else and while expressions, let bindings, functions,
// operator precedence, casts and interpolated strings.
package mini

import (
	"github.com/yaklabco/oakwood/pkg/builder"
	"github.com/yaklabco/oakwood/pkg/lexer"
	"github.com/yaklabco/oakwood/pkg/syntax"
)

// Name is the registry name of the language.
const Name = "mini"

// Plugin implements lang.Language for mini.
type Plugin struct{}

// New returns the mini plugin.
func New() *Plugin { return &Plugin{} }

// Name implements lang.Language.
func (*Plugin) Name() string { return Name }

// Extensions implements lang.Language.
func (*Plugin) Extensions() []string { return []string{".mini", ".mn"} }

// Vocabulary implements lang.Language.
func (*Plugin) Vocabulary() syntax.Vocabulary { return vocabulary }

// Rules implements lang.Language.
func (*Plugin) Rules() []lexer.Rule { return rules }

// ParseRoot implements lang.Language. A document is a sequence of
// statements.
func (*Plugin) ParseRoot(b *builder.Builder) {
	p := newParser(b)
	b.ParseUntil(func() bool { return false }, p.statement)
}

// Vocabulary is the mini kind table.
func Vocabulary() *syntax.Table { return vocabulary }

var rules = []lexer.Rule{
	lexer.Whitespace(Whitespace),
	lexer.Newline(Newline),
	lexer.LineComment(LineComment, "//"),
	lexer.BlockComment(BlockComment, "/*", "*/", true),
	lexer.SymmetricString(lexer.SymmetricConfig{
		Quotes:            []byte{'"', '\''},
		Literal:           String,
		AllowTag:          true,
		InterpolatingTags: []string{"", "f"},
		Start:             StringStart,
		Part:              StringPart,
		End:               StringEnd,
		InterpStart:       InterpStart,
		InterpEnd:         InterpEnd,
		ControlStart:      ControlStart,
		ControlEnd:        ControlEnd,
		TemplateComment:   TemplateComment,
	}),
	lexer.Number(Int, Float),
	lexer.Identifier(Ident, keywords),
	lexer.Operators(operators),
	lexer.Delimiters(delimiters),
}
