package lexer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/oakwood/pkg/diag"
	"github.com/yaklabco/oakwood/pkg/lexer"
	"github.com/yaklabco/oakwood/pkg/source"
	"github.com/yaklabco/oakwood/pkg/syntax"
)

const relexBase = "if x == 1 { y = 2 }\n// note\nz = \"a{b}c\" + 3.5\n/* c */ w"

func replace(text string, start, end int, with string) (string, lexer.Change) {
	return text[:start] + with + text[end:], lexer.Change{Start: start, OldEnd: end, NewEnd: start + len(with)}
}

func TestRelex_MatchesFullLex(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		start, end int
		with       string
	}{
		{"insert inside identifier", 4, 4, "yz"},
		{"extend operator", 8, 8, "="},
		{"delete keyword", 0, 2, ""},
		{"replace number", 8, 9, "4.25"},
		{"append at end", len(relexBase), len(relexBase), " + 1"},
		{"open comment swallowing the rest", 20, 20, "/*"},
		{"edit inside interpolation", 35, 36, "bb + 1"},
		{"break the string", 32, 33, ""},
		{"insert newline", 11, 11, "\n"},
		{"number becomes float", 9, 9, ".5"},
		{"delete everything", 0, len(relexBase), ""},
		{"unexpected character", 5, 5, "$"},
	}

	lang := testLanguage()
	lx := lexer.New(lang, lexer.Options{})
	prev := lx.Lex(source.NewBufferString("", relexBase))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			text, change := replace(relexBase, tt.start, tt.end, tt.with)
			buf := source.NewBufferString("", text)

			got := lx.Relex(buf, prev, change)
			want := lx.Lex(buf)

			require.NoError(t, syntax.CheckTokens(lang.Vocab, got.Tokens, len(text)))
			assert.Equal(t, spans(want.Tokens), spans(got.Tokens))
			assert.Equal(t, diag.Summary(want.Diagnostics), diag.Summary(got.Diagnostics))
		})
	}
}

func TestRelex_ReusesTokens(t *testing.T) {
	t.Parallel()

	lx := lexer.New(testLanguage(), lexer.Options{})
	prev := lx.Lex(source.NewBufferString("", relexBase))

	text, change := replace(relexBase, 4, 5, "xyz")
	got := lx.Relex(source.NewBufferString("", text), prev, change)

	// Only a handful of tokens around the edit are produced afresh.
	assert.Greater(t, got.Reused, len(prev.Tokens)-8)
}

func TestRelex_WithoutPreviousResult(t *testing.T) {
	t.Parallel()

	lx := lexer.New(testLanguage(), lexer.Options{})
	buf := source.NewBufferString("", "a b")

	got := lx.Relex(buf, nil, lexer.Change{})

	assert.Equal(t, lx.Lex(buf).Kinds(), got.Kinds())
	assert.Zero(t, got.Reused)
}
