// Package incremental keeps one document's parse up to date as it is
// edited.
//
// A Session remembers the last token stream, green tree and parser
// diagnostics. Apply relexes only around the edited region and lets the
// grammar splice unchanged subtrees of the previous tree back in through
// builder.TryReuse. The result is always identical to parsing the new text
// from scratch.
package incremental

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/oakwood/pkg/builder"
	"github.com/yaklabco/oakwood/pkg/diag"
	"github.com/yaklabco/oakwood/pkg/edit"
	"github.com/yaklabco/oakwood/pkg/lang"
	"github.com/yaklabco/oakwood/pkg/lexer"
	"github.com/yaklabco/oakwood/pkg/source"
	"github.com/yaklabco/oakwood/pkg/tree"
)

var (
	// ErrConcurrentApply is returned when a session is used from two
	// goroutines at once. Sessions are sequential; callers must serialise.
	ErrConcurrentApply = errors.New("concurrent use of incremental session")

	// ErrNotOpen is returned by Apply before Open.
	ErrNotOpen = errors.New("session has no open document")
)

// Options configures a Session.
type Options struct {
	// Logger receives debug output about reuse. Nil discards it.
	Logger *log.Logger

	// Interner deduplicates green nodes across versions. Nil disables
	// interning.
	Interner *tree.Interner

	// MaxDepth bounds nested sub-lexing; zero uses the lexer default.
	MaxDepth int

	// NoReuse turns off subtree reuse. Tokens are still relexed
	// incrementally.
	NoReuse bool
}

// Session is the incremental state of one document.
type Session struct {
	lang  lang.Language
	lexer *lexer.Lexer
	opts  Options
	log   *log.Logger

	mu sync.Mutex

	lexed      *lexer.Result
	parseDiags []*diag.Error
	result     *Result
}

// NewSession creates a session for documents in l.
func NewSession(l lang.Language, opts Options) *Session {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return &Session{
		lang:  l,
		lexer: lang.NewLexer(l, lexer.Options{MaxDepth: opts.MaxDepth, Logger: opts.Logger}),
		opts:  opts,
		log:   logger,
	}
}

// Parse parses buf from scratch without keeping a session.
func Parse(l lang.Language, buf *source.Buffer, opts Options) *Result {
	s := NewSession(l, opts)
	s.open(buf)

	return s.result
}

// Language returns the session's language.
func (s *Session) Language() lang.Language { return s.lang }

// Result returns the latest parse, or nil before Open. It waits for a
// running Apply to finish.
func (s *Session) Result() *Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.result
}

// Open parses buf from scratch and makes it the session's document,
// discarding any earlier state.
func (s *Session) Open(buf *source.Buffer) (*Result, error) {
	if !s.mu.TryLock() {
		return nil, ErrConcurrentApply
	}
	defer s.mu.Unlock()

	s.open(buf)

	return s.result, nil
}

func (s *Session) open(buf *source.Buffer) {
	started := time.Now()

	lexed := s.lexer.Lex(buf)
	s.commit(buf, lexed, nil, started)
}

// Apply is ApplyContext with a background context.
func (s *Session) Apply(edits []edit.TextEdit) (*Result, error) {
	return s.ApplyContext(context.Background(), edits)
}

// ApplyContext applies edits, given against the current text, and
// reparses. An empty edit list returns the current result unchanged.
// Cancellation is checked before lexing and before parsing; a cancelled
// call leaves the session untouched.
func (s *Session) ApplyContext(ctx context.Context, edits []edit.TextEdit) (*Result, error) {
	if !s.mu.TryLock() {
		return nil, ErrConcurrentApply
	}
	defer s.mu.Unlock()

	return s.apply(ctx, edits)
}

// ApplyLSP applies didChange content changes in order. Each change is
// interpreted against the text produced by the previous one.
func (s *Session) ApplyLSP(ctx context.Context, changes []any) (*Result, error) {
	if !s.mu.TryLock() {
		return nil, ErrConcurrentApply
	}
	defer s.mu.Unlock()

	if s.result == nil {
		return nil, ErrNotOpen
	}

	for i, change := range changes {
		buf := s.result.Buffer

		textEdit, err := edit.FromLSP(buf.Lines(), buf.Len(), change)
		if err != nil {
			return nil, fmt.Errorf("content change %d: %w", i, err)
		}

		if _, err := s.apply(ctx, []edit.TextEdit{textEdit}); err != nil {
			return nil, err
		}
	}

	return s.result, nil
}

func (s *Session) apply(ctx context.Context, edits []edit.TextEdit) (*Result, error) {
	if s.result == nil {
		return nil, ErrNotOpen
	}

	prev := s.result
	changes, err := edit.NewChanges(edits, prev.Buffer.Len())
	if err != nil {
		return nil, fmt.Errorf("prepare edits: %w", err)
	}

	if changes.IsEmpty() {
		return prev, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	started := time.Now()
	buf := prev.Buffer.WithText(changes.Apply(prev.Buffer.Bytes()))

	envelope, _ := changes.Envelope()
	lexed := s.lexer.Relex(buf, s.lexed, envelope)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var reuse builder.Reuser
	if !s.opts.NoReuse {
		reuse = newReuser(prev.Green, s.lexed.Tokens, s.parseDiags, changes, s.lang.Vocabulary())
	}

	s.commit(buf, lexed, reuse, started)

	return s.result, nil
}

// commit parses lexed tokens and stores the outcome as the current state.
func (s *Session) commit(buf *source.Buffer, lexed *lexer.Result, reuse builder.Reuser, started time.Time) {
	b := builder.New(buf.Bytes(), lexed.Tokens, s.lang.Vocabulary(), builder.Options{
		Interner: s.opts.Interner,
		Reuser:   reuse,
		Logger:   s.opts.Logger,
	})
	s.lang.ParseRoot(b)
	green, parseDiags := b.Finish()

	diags := make([]*diag.Error, 0, len(lexed.Diagnostics)+len(parseDiags))
	diags = append(diags, lexed.Diagnostics...)
	diags = append(diags, parseDiags...)
	slices.SortStableFunc(diags, func(x, y *diag.Error) int {
		return cmp.Compare(x.Offset, y.Offset)
	})

	stats := Stats{
		Tokens:       len(lexed.Tokens),
		TokensReused: lexed.Reused,
		NodesReused:  b.ReusedNodes(),
		Incremental:  lexed.Reused > 0 || b.ReusedNodes() > 0,
		Duration:     time.Since(started),
	}

	s.lexed = lexed
	s.parseDiags = parseDiags
	s.result = &Result{
		Buffer:      buf,
		Tokens:      lexed.Tokens,
		Green:       green,
		Root:        tree.NewRoot(green),
		Diagnostics: diags,
		Stats:       stats,
		vocab:       s.lang.Vocabulary(),
	}

	s.log.Debug("parsed",
		"language", s.lang.Name(),
		"path", buf.Path(),
		"version", buf.Version(),
		"tokens", stats.Tokens,
		"tokens_reused", stats.TokensReused,
		"nodes_reused", stats.NodesReused,
		"diagnostics", len(diags),
		"duration", stats.Duration,
	)
}
