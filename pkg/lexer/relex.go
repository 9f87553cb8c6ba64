package lexer

import (
	"github.com/yaklabco/oakwood/pkg/source"
	"github.com/yaklabco/oakwood/pkg/syntax"
)

// BacktrackTokens is how many tokens before an edit are relexed in addition
// to the tokens the edit touches. Two covers rules that look one token ahead,
// such as a number deciding whether "1." starts a float.
const BacktrackTokens = 2

// Change summarises a set of edits as one contiguous region: old text
// [Start, OldEnd) became new text [Start, NewEnd).
type Change struct {
	Start  int
	OldEnd int
	NewEnd int
}

// Delta is the length difference the change introduces.
func (c Change) Delta() int {
	return c.NewEnd - c.OldEnd
}

// Relex tokenizes buf reusing prev, the result for the text before change.
// Tokens wholly before the change are kept, lexing resumes a little before
// it, and as soon as the new stream reaches a top-level token boundary past
// the change that the old stream also had, the remaining old tokens are
// shifted and reused.
func (l *Lexer) Relex(buf *source.Buffer, prev *Result, change Change) *Result {
	if prev == nil || len(prev.Tokens) == 0 || len(prev.restart) != len(prev.Tokens) {
		return l.Lex(buf)
	}

	keep := prefixTokens(prev, change.Start)
	resume := 0
	if keep > 0 {
		resume = prev.Tokens[keep-1].End
	}

	s := l.newState(buf.Bytes(), resume, buf.Len())
	s.tokens = append(s.tokens, prev.Tokens[:keep]...)
	s.restart = append(s.restart, prev.restart[:keep]...)
	for _, d := range prev.Diagnostics {
		if d.Offset < resume && d.End <= resume {
			s.diags = append(s.diags, d)
		}
	}

	oldStarts := make(map[int]int)
	for idx := keep; idx < len(prev.Tokens); idx++ {
		if prev.restart[idx] && prev.Tokens[idx].Start >= change.OldEnd {
			oldStarts[prev.Tokens[idx].Start] = idx
		}
	}

	delta := change.Delta()
	reused := keep
	synced := false

	s.run(func(s *State) bool {
		at := s.Offset()
		if at < change.NewEnd {
			return false
		}

		idx, ok := oldStarts[at-delta]
		if !ok {
			return false
		}

		for _, tok := range prev.Tokens[idx : len(prev.Tokens)-1] {
			s.tokens = append(s.tokens, tok.Shift(delta))
		}
		s.restart = append(s.restart, prev.restart[idx:len(prev.Tokens)-1]...)
		for _, d := range prev.Diagnostics {
			if d.Offset >= at-delta {
				s.diags = append(s.diags, d.Shift(delta))
			}
		}

		reused += len(prev.Tokens) - 1 - idx
		synced = true
		s.Seek(s.Limit())

		return true
	})

	result := s.finish()
	result.Reused = reused

	if l.opts.Logger != nil {
		l.opts.Logger.Debug("relexed",
			"resume", resume,
			"reused", reused,
			"tokens", len(result.Tokens),
			"synced", synced,
		)
	}

	return result
}

// prefixTokens returns how many leading tokens of prev can be kept unchanged
// for an edit starting at offset.
func prefixTokens(prev *Result, offset int) int {
	last := len(prev.Tokens) - 1 // EOF is always relexed.

	keep := 0
	for keep < last && prev.Tokens[keep].End <= offset {
		keep++
	}

	keep = max(0, keep-BacktrackTokens)
	for keep > 0 && !prev.restart[keep] {
		keep--
	}

	return keep
}

// Kinds lists the token kinds in order, which is handy in tests.
func (r *Result) Kinds() []syntax.Kind {
	kinds := make([]syntax.Kind, len(r.Tokens))
	for i, tok := range r.Tokens {
		kinds[i] = tok.Kind
	}

	return kinds
}
