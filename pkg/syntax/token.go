package syntax

import "fmt"

// Token is a classified span of bytes. Spans are half-open; only the EOF token
// may be empty.
type Token struct {
	Kind  Kind
	Start int
	End   int
}

// Text returns the source text of this token from the given content.
func (t Token) Text(content []byte) []byte {
	if t.Start < 0 || t.End > len(content) || t.Start > t.End {
		return nil
	}

	return content[t.Start:t.End]
}

// Len returns the length of this token in bytes.
func (t Token) Len() int {
	return t.End - t.Start
}

// IsEmpty returns true if this token has zero length.
func (t Token) IsEmpty() bool {
	return t.Start == t.End
}

// Shift returns the token moved by delta bytes.
func (t Token) Shift(delta int) Token {
	return Token{Kind: t.Kind, Start: t.Start + delta, End: t.End + delta}
}

// CoverageError describes the first place a token stream fails to cover its
// input exactly once.
type CoverageError struct {
	Index  int
	Offset int
	Reason string
}

func (e *CoverageError) Error() string {
	return fmt.Sprintf("token %d at offset %d: %s", e.Index, e.Offset, e.Reason)
}

// CheckTokens verifies that tokens are contiguous and non-overlapping, cover
// [0, contentLen), that only the final token is empty, and that the final
// token is an EOF token sitting at contentLen.
func CheckTokens(vocab Vocabulary, tokens []Token, contentLen int) error {
	if len(tokens) == 0 {
		return &CoverageError{Reason: "missing EOF token"}
	}

	last := len(tokens) - 1
	next := 0

	for i, tok := range tokens {
		switch {
		case tok.Start != next:
			return &CoverageError{Index: i, Offset: tok.Start, Reason: fmt.Sprintf("expected start %d", next)}
		case tok.End < tok.Start:
			return &CoverageError{Index: i, Offset: tok.Start, Reason: "negative length"}
		case tok.IsEmpty() && i != last:
			return &CoverageError{Index: i, Offset: tok.Start, Reason: "empty token before end of input"}
		}

		next = tok.End
	}

	eof := tokens[last]
	if eof.Kind != vocab.EOF() || !eof.IsEmpty() {
		return &CoverageError{Index: last, Offset: eof.Start, Reason: "stream must end with an empty EOF token"}
	}

	if next != contentLen {
		return &CoverageError{Index: last, Offset: next, Reason: fmt.Sprintf("coverage stops short of %d", contentLen)}
	}

	return nil
}

// ValidateTokens is CheckTokens reduced to a boolean.
func ValidateTokens(vocab Vocabulary, tokens []Token, contentLen int) bool {
	return CheckTokens(vocab, tokens, contentLen) == nil
}
