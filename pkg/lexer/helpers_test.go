package lexer_test

import (
	"github.com/yaklabco/oakwood/pkg/lexer"
	"github.com/yaklabco/oakwood/pkg/syntax"
)

const (
	kWs syntax.Kind = iota
	kNl
	kComment
	kIdent
	kIf
	kInt
	kFloat
	kStr
	kStrStart
	kStrPart
	kStrEnd
	kInterpStart
	kInterpEnd
	kCtlStart
	kCtlEnd
	kTplComment
	kPlus
	kEq
	kEqEq
	kLBrace
	kRBrace
	kError
	kEOF
	kRoot
)

func testVocab() *syntax.Table {
	return syntax.NewTable(kEOF, kError, kRoot,
		syntax.KindInfo{Kind: kWs, Name: "Ws", Role: syntax.RoleTrivia},
		syntax.KindInfo{Kind: kNl, Name: "Nl", Role: syntax.RoleTrivia},
		syntax.KindInfo{Kind: kComment, Name: "Comment", Role: syntax.RoleTrivia},
		syntax.KindInfo{Kind: kIdent, Name: "Ident", Role: syntax.RoleIdentifier},
		syntax.KindInfo{Kind: kIf, Name: "If", Role: syntax.RoleKeyword},
		syntax.KindInfo{Kind: kInt, Name: "Int", Role: syntax.RoleLiteral},
		syntax.KindInfo{Kind: kFloat, Name: "Float", Role: syntax.RoleLiteral},
		syntax.KindInfo{Kind: kStr, Name: "Str", Role: syntax.RoleLiteral},
		syntax.KindInfo{Kind: kStrStart, Name: "StrStart", Role: syntax.RoleLiteral},
		syntax.KindInfo{Kind: kStrPart, Name: "StrPart", Role: syntax.RoleLiteral},
		syntax.KindInfo{Kind: kStrEnd, Name: "StrEnd", Role: syntax.RoleLiteral},
		syntax.KindInfo{Kind: kInterpStart, Name: "InterpStart", Role: syntax.RoleStructural},
		syntax.KindInfo{Kind: kInterpEnd, Name: "InterpEnd", Role: syntax.RoleStructural},
		syntax.KindInfo{Kind: kCtlStart, Name: "CtlStart", Role: syntax.RoleStructural},
		syntax.KindInfo{Kind: kCtlEnd, Name: "CtlEnd", Role: syntax.RoleStructural},
		syntax.KindInfo{Kind: kTplComment, Name: "TplComment", Role: syntax.RoleTrivia},
		syntax.KindInfo{Kind: kPlus, Name: "Plus", Role: syntax.RoleOperator},
		syntax.KindInfo{Kind: kEq, Name: "Eq", Role: syntax.RoleOperator},
		syntax.KindInfo{Kind: kEqEq, Name: "EqEq", Role: syntax.RoleOperator},
		syntax.KindInfo{Kind: kLBrace, Name: "LBrace", Role: syntax.RoleStructural},
		syntax.KindInfo{Kind: kRBrace, Name: "RBrace", Role: syntax.RoleStructural},
		syntax.KindInfo{Kind: kError, Name: "Error"},
		syntax.KindInfo{Kind: kEOF, Name: "EOF"},
		syntax.KindInfo{Kind: kRoot, Name: "Root"},
	)
}

func stringConfig() lexer.SymmetricConfig {
	return lexer.SymmetricConfig{
		Quotes:            []byte{'"', '\''},
		Literal:           kStr,
		AllowTag:          true,
		InterpolatingTags: []string{"", "s", "f", "t"},
		Start:             kStrStart,
		Part:              kStrPart,
		End:               kStrEnd,
		InterpStart:       kInterpStart,
		InterpEnd:         kInterpEnd,
		ControlStart:      kCtlStart,
		ControlEnd:        kCtlEnd,
		TemplateComment:   kTplComment,
	}
}

func testLanguage(extra ...lexer.Rule) *lexer.Language {
	rules := append([]lexer.Rule{}, extra...)
	rules = append(rules,
		lexer.Whitespace(kWs),
		lexer.Newline(kNl),
		lexer.LineComment(kComment, "//"),
		lexer.BlockComment(kComment, "/*", "*/", true),
		lexer.SymmetricString(stringConfig()),
		lexer.Number(kInt, kFloat),
		lexer.Identifier(kIdent, map[string]syntax.Kind{"if": kIf}),
		lexer.Operators(map[string]syntax.Kind{"+": kPlus, "=": kEq, "==": kEqEq}),
		lexer.Delimiters(map[rune]syntax.Kind{'{': kLBrace, '}': kRBrace}),
	)

	return &lexer.Language{Vocab: testVocab(), Rules: rules}
}

type span struct {
	Kind       syntax.Kind
	Start, End int
}

func spans(tokens []syntax.Token) []span {
	out := make([]span, len(tokens))
	for i, tok := range tokens {
		out[i] = span{tok.Kind, tok.Start, tok.End}
	}

	return out
}
