package lexer

import (
	"bytes"
	"unicode/utf8"

	"github.com/yaklabco/oakwood/pkg/diag"
	"github.com/yaklabco/oakwood/pkg/syntax"
)

// State is the mutable lexing state handed to rules. It embeds the cursor, so
// rules read input with Peek, Advance and friends and then Emit tokens.
type State struct {
	Cursor

	lexer   *Lexer
	vocab   syntax.Vocabulary
	tokens  []syntax.Token
	restart []bool
	diags   []*diag.Error
	depth   int
}

// Snapshot captures everything a rule may change.
type Snapshot struct {
	pos    int
	tokens int
	diags  int
}

// Vocab returns the language vocabulary.
func (s *State) Vocab() syntax.Vocabulary { return s.vocab }

// Depth returns the current sub-lexing depth; zero at top level.
func (s *State) Depth() int { return s.depth }

// Emit appends a token spanning [start, Offset()).
func (s *State) Emit(kind syntax.Kind, start int) {
	s.EmitSpan(kind, start, s.pos)
}

// EmitSpan appends a token spanning [start, end). Empty spans are dropped.
func (s *State) EmitSpan(kind syntax.Kind, start, end int) {
	if end <= start {
		return
	}

	s.tokens = append(s.tokens, syntax.Token{Kind: kind, Start: start, End: end})
	s.restart = append(s.restart, false)
}

// Report records a diagnostic.
func (s *State) Report(err *diag.Error) {
	s.diags = append(s.diags, err)
}

// Snapshot captures the position, token count and diagnostic count.
func (s *State) Snapshot() Snapshot {
	return Snapshot{pos: s.pos, tokens: len(s.tokens), diags: len(s.diags)}
}

// Restore rewinds to a snapshot, discarding tokens and diagnostics produced
// after it.
func (s *State) Restore(snap Snapshot) {
	s.pos = snap.pos
	s.tokens = s.tokens[:snap.tokens]
	s.restart = s.restart[:snap.tokens]
	s.diags = s.diags[:snap.diags]
}

// Try runs fn and rewinds if it reports failure.
func (s *State) Try(fn func() bool) bool {
	snap := s.Snapshot()
	if fn() {
		return true
	}
	s.Restore(snap)

	return false
}

// SubLex runs the language's rules over exactly [start, end), appending
// tokens with absolute spans, then leaves the cursor at end. Past the depth
// limit the region becomes a single fallback token and a diagnostic.
func (s *State) SubLex(start, end int, fallback syntax.Kind) {
	if start >= end {
		s.pos = max(s.pos, end)
		return
	}

	if s.depth >= s.lexer.opts.MaxDepth {
		s.EmitSpan(fallback, start, end)
		s.Report(diag.Custom(start, end, "nesting deeper than %d levels", s.lexer.opts.MaxDepth))
		s.pos = end

		return
	}

	savedLimit := s.limit
	s.pos, s.limit = start, end
	s.depth++

	s.run(nil)

	s.depth--
	s.pos, s.limit = end, savedLimit
}

// FindClosing searches from offset for the close marker matching an already
// consumed open marker. Only nested open markers of the same kind count
// towards depth. A backslash escapes the following byte.
func (s *State) FindClosing(open, closer string, from int) (int, bool) {
	depth := 1
	region := s.src[:s.limit]

	for at := from; at < len(region); {
		switch {
		case region[at] == '\\':
			at += 2
		case bytes.HasPrefix(region[at:], []byte(closer)):
			depth--
			if depth == 0 {
				return at, true
			}
			at += len(closer)
		case bytes.HasPrefix(region[at:], []byte(open)):
			depth++
			at += len(open)
		default:
			at++
		}
	}

	return 0, false
}

// run lexes until the end of the current region. At top level, sync may end
// the loop early once the remaining input is known to lex identically to a
// previous result.
func (s *State) run(sync func(*State) bool) {
	for !s.AtEnd() {
		if sync != nil && s.depth == 0 && sync(s) {
			return
		}
		s.step()
	}
}

func (s *State) step() {
	start := s.pos
	snap := s.Snapshot()

	for idx, rule := range s.lexer.lang.Rules {
		matched := rule(s)
		if matched && s.pos > start {
			s.fillGap(start)
			s.markRestart(snap.tokens)

			return
		}

		if matched && s.lexer.opts.Logger != nil {
			s.lexer.opts.Logger.Debug("lexer rule matched without progress", "rule", idx, "offset", start)
		}
		s.Restore(snap)
	}

	r, size := utf8.DecodeRune(s.src[start:s.limit])
	size = max(size, 1)
	s.pos = start + size
	s.EmitSpan(s.vocab.Error(), start, s.pos)
	s.Report(diag.UnexpectedCharacter(start, r, size))
	s.markRestart(snap.tokens)
}

// fillGap covers bytes a rule consumed without emitting tokens for them.
func (s *State) fillGap(start int) {
	covered := start
	if n := len(s.tokens); n > 0 && s.tokens[n-1].End > start {
		covered = s.tokens[n-1].End
	}

	if covered < s.pos {
		s.EmitSpan(s.vocab.Error(), covered, s.pos)
	}
}

func (s *State) markRestart(idx int) {
	if s.depth == 0 && idx < len(s.restart) {
		s.restart[idx] = true
	}
}

func (s *State) finish() *Result {
	s.tokens = append(s.tokens, syntax.Token{Kind: s.vocab.EOF(), Start: s.limit, End: s.limit})
	s.restart = append(s.restart, true)

	return &Result{Tokens: s.tokens, Diagnostics: s.diags, restart: s.restart}
}
