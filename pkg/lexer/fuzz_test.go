package lexer_test

import (
	"testing"

	"github.com/yaklabco/oakwood/pkg/lexer"
	"github.com/yaklabco/oakwood/pkg/source"
	"github.com/yaklabco/oakwood/pkg/syntax"
)

// FuzzLex_Coverage checks that every input lexes to a gapless stream.
func FuzzLex_Coverage(f *testing.F) {
	f.Add("")
	f.Add(")))))")
	f.Add(relexBase)
	f.Add(`s"{'{x}'}" <% %>`)
	f.Add("'''\n'''")
	f.Add("/* /* */")
	f.Add("\xff\x00\xc3")

	lang := testLanguage()
	lx := lexer.New(lang, lexer.Options{MaxDepth: 4})

	f.Fuzz(func(t *testing.T, input string) {
		result := lx.Lex(source.NewBufferString("", input))
		if err := syntax.CheckTokens(lang.Vocab, result.Tokens, len(input)); err != nil {
			t.Fatalf("coverage broken for %q: %v", input, err)
		}
	})
}

// FuzzRelex_MatchesLex checks incremental relexing against a full pass.
func FuzzRelex_MatchesLex(f *testing.F) {
	f.Add(relexBase, 3, 5, "abc")
	f.Add("a b c", 0, 0, "/*")
	f.Add(`"x{y}z"`, 3, 4, "}")

	lx := lexer.New(testLanguage(), lexer.Options{})

	f.Fuzz(func(t *testing.T, text string, start, end int, with string) {
		if start < 0 || end < start || end > len(text) {
			return
		}

		prev := lx.Lex(source.NewBufferString("", text))
		edited, change := replace(text, start, end, with)
		buf := source.NewBufferString("", edited)

		got := lx.Relex(buf, prev, change)
		want := lx.Lex(buf)

		if len(got.Tokens) != len(want.Tokens) {
			t.Fatalf("token count %d, want %d", len(got.Tokens), len(want.Tokens))
		}
		for i := range want.Tokens {
			if got.Tokens[i] != want.Tokens[i] {
				t.Fatalf("token %d = %+v, want %+v", i, got.Tokens[i], want.Tokens[i])
			}
		}
	})
}
