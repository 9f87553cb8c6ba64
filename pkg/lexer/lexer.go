// Package lexer runs ordered rule lists over a source buffer and produces a
// token stream that covers every byte of the input exactly once.
//
// A rule inspects the input at the current position and either emits one or
// more tokens and reports a match, or reports no match. The first matching
// rule wins. When no rule matches, the engine consumes exactly one character
// as an error token, so lexing always terminates.
package lexer

import (
	"github.com/charmbracelet/log"

	"github.com/yaklabco/oakwood/pkg/diag"
	"github.com/yaklabco/oakwood/pkg/source"
	"github.com/yaklabco/oakwood/pkg/syntax"
)

// DefaultMaxDepth bounds nested sub-lexing such as interpolation inside
// interpolation.
const DefaultMaxDepth = 64

// Rule tries to lex a token at the state's current position. A rule that
// returns false must not have consumed input or emitted tokens; the engine
// rolls back anything it did.
type Rule func(s *State) bool

// Language is what a plugin supplies to the lexer.
type Language struct {
	Vocab syntax.Vocabulary
	Rules []Rule
}

// Options configures a Lexer.
type Options struct {
	// MaxDepth limits sub-lexing recursion. Zero means DefaultMaxDepth.
	MaxDepth int

	// Logger receives debug output about rule misbehaviour and cache reuse.
	// Nil disables logging.
	Logger *log.Logger
}

// Result is the output of one lexing pass.
type Result struct {
	Tokens      []syntax.Token
	Diagnostics []*diag.Error

	// restart[i] is true when a top-level rule invocation began at token i.
	// Incremental relexing may only resume at such tokens.
	restart []bool

	// Reused counts tokens carried over from a previous result.
	Reused int
}

// Lexer binds a language to options.
type Lexer struct {
	lang *Language
	opts Options
}

// New creates a lexer for lang.
func New(lang *Language, opts Options) *Lexer {
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}

	return &Lexer{lang: lang, opts: opts}
}

// Language returns the lexer's language.
func (l *Lexer) Language() *Language { return l.lang }

// Lex tokenizes the whole buffer.
func (l *Lexer) Lex(buf *source.Buffer) *Result {
	return l.LexRange(buf, 0, buf.Len())
}

// LexRange tokenizes buf[start:end). Token spans are absolute offsets into
// buf and the trailing EOF token sits at end.
func (l *Lexer) LexRange(buf *source.Buffer, start, end int) *Result {
	s := l.newState(buf.Bytes(), start, end)
	s.run(nil)

	return s.finish()
}

func (l *Lexer) newState(src []byte, start, end int) *State {
	start = max(0, min(start, len(src)))
	end = max(start, min(end, len(src)))

	return &State{
		Cursor: Cursor{src: src, pos: start, limit: end},
		lexer:  l,
		vocab:  l.lang.Vocab,
	}
}
