package builder_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yaklabco/oakwood/pkg/builder"
	"github.com/yaklabco/oakwood/pkg/diag"
	"github.com/yaklabco/oakwood/pkg/lexer"
	"github.com/yaklabco/oakwood/pkg/source"
	"github.com/yaklabco/oakwood/pkg/syntax"
	"github.com/yaklabco/oakwood/pkg/tree"
)

const (
	kWs syntax.Kind = iota
	kIdent
	kInt
	kPlus
	kStar
	kLParen
	kRParen
	kComma
	kError
	kEOF
	kRoot
	kName
	kPair
	kWrap
	kBinary
	kEmpty
	kList
)

func vocab() *syntax.Table {
	return syntax.NewTable(kEOF, kError, kRoot,
		syntax.KindInfo{Kind: kWs, Name: "Ws", Role: syntax.RoleTrivia},
		syntax.KindInfo{Kind: kIdent, Name: "Ident", Role: syntax.RoleIdentifier},
		syntax.KindInfo{Kind: kInt, Name: "Int", Role: syntax.RoleLiteral},
		syntax.KindInfo{Kind: kPlus, Name: "Plus", Role: syntax.RoleOperator},
		syntax.KindInfo{Kind: kStar, Name: "Star", Role: syntax.RoleOperator},
		syntax.KindInfo{Kind: kLParen, Name: "LParen", Role: syntax.RoleStructural},
		syntax.KindInfo{Kind: kRParen, Name: "RParen", Role: syntax.RoleStructural},
		syntax.KindInfo{Kind: kComma, Name: "Comma", Role: syntax.RoleStructural},
		syntax.KindInfo{Kind: kError, Name: "Error"},
		syntax.KindInfo{Kind: kEOF, Name: "EOF"},
		syntax.KindInfo{Kind: kRoot, Name: "Root"},
		syntax.KindInfo{Kind: kName, Name: "Name"},
		syntax.KindInfo{Kind: kPair, Name: "Pair"},
		syntax.KindInfo{Kind: kWrap, Name: "Wrap"},
		syntax.KindInfo{Kind: kBinary, Name: "Binary"},
		syntax.KindInfo{Kind: kEmpty, Name: "Empty"},
		syntax.KindInfo{Kind: kList, Name: "List"},
	)
}

func testLexer() *lexer.Lexer {
	return lexer.New(&lexer.Language{
		Vocab: vocab(),
		Rules: []lexer.Rule{
			lexer.Whitespace(kWs),
			lexer.Number(kInt, kInt),
			lexer.Identifier(kIdent, nil),
			lexer.Delimiters(map[rune]syntax.Kind{
				'+': kPlus, '*': kStar, '(': kLParen, ')': kRParen, ',': kComma,
			}),
		},
	}, lexer.Options{})
}

type fixture struct {
	text string
	b    *builder.Builder
}

func newFixture(t *testing.T, text string, opts builder.Options) *fixture {
	t.Helper()

	result := testLexer().Lex(source.NewBufferString("", text))

	return &fixture{text: text, b: builder.New([]byte(text), result.Tokens, vocab(), opts)}
}

// finish folds the tree, checks it covers the input and renders it.
func (f *fixture) finish(t *testing.T) (string, []*diag.Error, *tree.Node) {
	t.Helper()

	root, diags := f.b.Finish()
	require.NoError(t, tree.Validate(root))
	require.Equal(t, len(f.text), root.Len(), "tree must cover the input")

	return tree.SExpr(tree.NewRoot(root), vocab(), []byte(f.text)), diags, root
}
