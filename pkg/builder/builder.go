// Package builder turns a token stream into a green tree through an
// append-only event log.
//
// Grammars drive the builder with Bump, Eat and Expect, open nodes either up
// front with Open/Close or after the fact with Checkpoint/FinishAt, and may
// rewind speculative work with Restore. Trivia tokens are attached
// automatically and are invisible to At and Nth. Finish folds the log into a
// green tree that covers every token, including ones the grammar never
// consumed.
package builder

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/oakwood/pkg/diag"
	"github.com/yaklabco/oakwood/pkg/syntax"
	"github.com/yaklabco/oakwood/pkg/tree"
)

// Reuser supplies subtrees from a previous parse.
type Reuser interface {
	// Reuse returns an old node of kind that may be placed at the given
	// offset of the new text, or false.
	Reuse(kind syntax.Kind, offset int) (*tree.Node, bool)
}

// Options configures a Builder.
type Options struct {
	// Interner, if set, deduplicates the nodes Finish creates.
	Interner *tree.Interner

	// Reuser, if set, lets TryReuse splice in subtrees from a previous parse.
	Reuser Reuser

	// Logger receives debug output. Nil disables logging.
	Logger *log.Logger
}

type eventKind uint8

const (
	evTombstone eventKind = iota
	evOpen
	evClose
	evToken
	evNode
)

type event struct {
	kind eventKind

	// nodeKind is the node kind for evOpen.
	nodeKind syntax.Kind

	// forwardParent is the distance to a later evOpen that must become this
	// node's parent. Zero means none.
	forwardParent int

	// index is the token index for evToken and the first token for evNode.
	index int

	// green is the reused subtree for evNode.
	green *tree.Node
}

// Builder records parse events. It is not safe for concurrent use.
type Builder struct {
	src    []byte
	tokens []syntax.Token
	vocab  syntax.Vocabulary
	opts   Options

	pos    int
	events []event
	open   []frame
	diags  []*diag.Error

	// links lists events whose forwardParent is set, in creation order.
	links []int

	reusedNodes int
}

// New creates a builder over tokens, which must end with an EOF token.
func New(src []byte, tokens []syntax.Token, vocab syntax.Vocabulary, opts Options) *Builder {
	if len(tokens) == 0 || tokens[len(tokens)-1].Kind != vocab.EOF() {
		tokens = append(tokens, syntax.Token{Kind: vocab.EOF(), Start: len(src), End: len(src)})
	}

	return &Builder{
		src:    src,
		tokens: tokens,
		vocab:  vocab,
		opts:   opts,
		events: make([]event, 0, len(tokens)*2),
	}
}

// Vocab returns the vocabulary.
func (b *Builder) Vocab() syntax.Vocabulary { return b.vocab }

// Source returns the text being parsed.
func (b *Builder) Source() []byte { return b.src }

// Pos returns the index of the next unconsumed token, trivia included.
func (b *Builder) Pos() int { return b.pos }

// ReusedNodes counts subtrees spliced in by TryReuse.
func (b *Builder) ReusedNodes() int { return b.reusedNodes }

// Diagnostics returns the diagnostics recorded so far.
func (b *Builder) Diagnostics() []*diag.Error { return b.diags }

func (b *Builder) isTrivia(idx int) bool {
	return b.vocab.Role(b.tokens[idx].Kind) == syntax.RoleTrivia
}

// significant returns the index of the n-th non-trivia token at or after the
// current position, clamped to the EOF token.
func (b *Builder) significant(n int) int {
	last := len(b.tokens) - 1
	idx := b.pos

	for {
		for idx < last && b.isTrivia(idx) {
			idx++
		}
		if n == 0 || idx >= last {
			return idx
		}
		n--
		idx++
	}
}

// Nth returns the kind of the n-th significant token ahead; Nth(0) is Current.
func (b *Builder) Nth(n int) syntax.Kind {
	return b.tokens[b.significant(n)].Kind
}

// Current returns the kind of the next significant token.
func (b *Builder) Current() syntax.Kind { return b.Nth(0) }

// CurrentToken returns the next significant token.
func (b *Builder) CurrentToken() syntax.Token {
	return b.tokens[b.significant(0)]
}

// NthToken returns the n-th significant token ahead.
func (b *Builder) NthToken(n int) syntax.Token {
	return b.tokens[b.significant(n)]
}

// CurrentText returns the source text of the next significant token.
func (b *Builder) CurrentText() string {
	return string(b.CurrentToken().Text(b.src))
}

// Offset returns where the next significant token starts.
func (b *Builder) Offset() int { return b.CurrentToken().Start }

// At reports whether the next significant token has kind.
func (b *Builder) At(kind syntax.Kind) bool { return b.Current() == kind }

// AtAny reports whether the next significant token has one of kinds.
func (b *Builder) AtAny(kinds ...syntax.Kind) bool {
	current := b.Current()
	for _, kind := range kinds {
		if current == kind {
			return true
		}
	}

	return false
}

// AtEnd reports whether only trivia remains.
func (b *Builder) AtEnd() bool { return b.Current() == b.vocab.EOF() }

// flushTrivia attaches pending trivia to the currently open node.
func (b *Builder) flushTrivia() {
	last := len(b.tokens) - 1
	for b.pos < last && b.isTrivia(b.pos) {
		b.events = append(b.events, event{kind: evToken, index: b.pos})
		b.pos++
	}
}

// Bump consumes the next significant token and any trivia before it. It does
// nothing at the end of input.
func (b *Builder) Bump() bool {
	b.flushTrivia()
	if b.pos >= len(b.tokens)-1 {
		return false
	}

	b.events = append(b.events, event{kind: evToken, index: b.pos})
	b.pos++

	return true
}

// Eat consumes the next token if it has kind.
func (b *Builder) Eat(kind syntax.Kind) bool {
	if !b.At(kind) {
		return false
	}

	return b.Bump()
}

// Expect consumes a token of kind or records a diagnostic without consuming
// anything.
func (b *Builder) Expect(kind syntax.Kind) bool {
	if b.Eat(kind) {
		return true
	}

	b.Report(b.expected(b.vocab.Name(kind)))

	return false
}

// ExpectName consumes an identifier or reports a missing name; what
// describes the name, such as "binding".
func (b *Builder) ExpectName(what string) bool {
	if b.vocab.Role(b.Current()) == syntax.RoleIdentifier {
		return b.Bump()
	}

	tok := b.CurrentToken()
	if tok.Kind == b.vocab.EOF() {
		b.Report(diag.UnexpectedEOF(tok.Start))
	} else {
		b.Report(diag.ExpectedName(tok.Start, tok.End, what))
	}

	return false
}

// ReportExpected records that what was expected at the next significant
// token, or an unexpected EOF at the end of input.
func (b *Builder) ReportExpected(what string) {
	b.Report(b.expected(what))
}

func (b *Builder) expected(what string) *diag.Error {
	tok := b.CurrentToken()
	if tok.Kind == b.vocab.EOF() {
		return diag.UnexpectedEOF(tok.Start)
	}

	return diag.ExpectedToken(tok.Start, tok.End, what, b.describe(tok))
}

func (b *Builder) describe(tok syntax.Token) string {
	return fmt.Sprintf("%s %q", b.vocab.Name(tok.Kind), tok.Text(b.src))
}

// Report records a diagnostic.
func (b *Builder) Report(err *diag.Error) {
	b.diags = append(b.diags, err)
}

// ErrorHere records a syntax diagnostic at the next significant token.
func (b *Builder) ErrorHere(message string) {
	tok := b.CurrentToken()
	b.Report(diag.Syntax(tok.Start, tok.End, message))
}

// ErrorAndBump wraps the next token in an error node and reports it as
// unexpected. At the end of input it reports an unexpected EOF instead.
func (b *Builder) ErrorAndBump() {
	tok := b.CurrentToken()
	if tok.Kind == b.vocab.EOF() {
		b.Report(diag.UnexpectedEOF(tok.Start))
		return
	}

	b.Report(diag.UnexpectedToken(tok.Start, tok.End, b.describe(tok)))
	b.Open(b.vocab.Error())
	b.Bump()
	b.Close()
}

// RecoverUntil skips tokens until one of kinds or the end of input, wrapping
// everything skipped in a single error node. It reports whether anything was
// skipped.
func (b *Builder) RecoverUntil(kinds ...syntax.Kind) bool {
	if b.AtEnd() || b.AtAny(kinds...) {
		return false
	}

	tok := b.CurrentToken()
	b.Open(b.vocab.Error())
	end := tok.End
	for !b.AtEnd() && !b.AtAny(kinds...) {
		end = b.CurrentToken().End
		b.Bump()
	}
	b.Close()
	b.Report(diag.UnexpectedToken(tok.Start, end, b.describe(tok)))

	return true
}

// ParseUntil calls item until stop reports true or the input ends. An item
// that consumes nothing triggers ErrorAndBump, so the loop always makes
// progress.
func (b *Builder) ParseUntil(stop func() bool, item func()) {
	for !b.AtEnd() && !stop() {
		before := b.pos
		item()
		if b.Stuck(before) {
			b.ErrorAndBump()
		}
	}
}

// Stuck reports whether no significant token was consumed since before.
func (b *Builder) Stuck(before int) bool {
	for idx := before; idx < b.pos; idx++ {
		if !b.isTrivia(idx) {
			return false
		}
	}

	return true
}

// frame is a node opened with Open and not yet closed.
type frame struct {
	at   Checkpoint
	kind syntax.Kind
}

// Open starts a node of kind. Pending trivia stays outside it.
func (b *Builder) Open(kind syntax.Kind) {
	b.flushTrivia()
	at := b.mark()
	b.open = append(b.open, frame{at: at, kind: kind})
	b.events = append(b.events, event{kind: evOpen, nodeKind: kind})
}

// Close finishes the innermost node started by Open.
func (b *Builder) Close() Completed {
	if len(b.open) == 0 {
		panic("builder: Close without matching Open")
	}

	top := b.open[len(b.open)-1]
	b.open = b.open[:len(b.open)-1]
	b.events = append(b.events, event{kind: evClose})

	return Completed{at: top.at, kind: top.kind}
}
