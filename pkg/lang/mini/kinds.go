package mini

import "github.com/yaklabco/oakwood/pkg/syntax"

// Token kinds.
const (
	Whitespace syntax.Kind = iota
	Newline
	LineComment
	BlockComment
	TemplateComment

	Ident
	Int
	Float
	String
	StringStart
	StringPart
	StringEnd
	InterpStart
	InterpEnd
	ControlStart
	ControlEnd

	If
	Else
	Let
	Mut
	Const
	While
	Fn
	Return
	True
	False
	Null
	Is
	Instanceof

	Plus
	Minus
	Star
	Slash
	Percent
	Assign
	PlusAssign
	MinusAssign
	StarAssign
	SlashAssign
	CoalesceAssign
	EqEq
	NotEq
	Lt
	LtEq
	Gt
	GtEq
	AndAnd
	OrOr
	Bang
	Amp
	Pipe
	Caret
	Tilde
	Shl
	Shr
	Question
	Coalesce
	PlusPlus
	MinusMinus

	LParen
	RParen
	LBrace
	RBrace
	LBracket
	RBracket
	Comma
	Semicolon
	Colon
	Dot

	Error
	EOF

	// Node kinds.
	Root
	Block
	IfExpression
	WhileExpression
	LetStatement
	ExpressionStatement
	FnDecl
	ParamList
	ReturnStatement
	BinaryExpression
	AssignExpression
	TernaryExpression
	UnaryExpression
	PostfixExpression
	CallExpression
	ArgList
	MemberExpression
	IndexExpression
	ParenExpression
	CastExpression
	Literal
	NameRef
	StringLiteral
	Interpolation
)

var keywords = map[string]syntax.Kind{
	"if":         If,
	"else":       Else,
	"let":        Let,
	"mut":        Mut,
	"const":      Const,
	"while":      While,
	"fn":         Fn,
	"return":     Return,
	"true":       True,
	"false":      False,
	"null":       Null,
	"is":         Is,
	"instanceof": Instanceof,
}

var operators = map[string]syntax.Kind{
	"+":   Plus,
	"-":   Minus,
	"*":   Star,
	"/":   Slash,
	"%":   Percent,
	"=":   Assign,
	"+=":  PlusAssign,
	"-=":  MinusAssign,
	"*=":  StarAssign,
	"/=":  SlashAssign,
	"??=": CoalesceAssign,
	"==":  EqEq,
	"!=":  NotEq,
	"<":   Lt,
	"<=":  LtEq,
	">":   Gt,
	">=":  GtEq,
	"&&":  AndAnd,
	"||":  OrOr,
	"!":   Bang,
	"&":   Amp,
	"|":   Pipe,
	"^":   Caret,
	"~":   Tilde,
	"<<":  Shl,
	">>":  Shr,
	"?":   Question,
	"??":  Coalesce,
	"++":  PlusPlus,
	"--":  MinusMinus,
}

var delimiters = map[rune]syntax.Kind{
	'(': LParen,
	')': RParen,
	'{': LBrace,
	'}': RBrace,
	'[': LBracket,
	']': RBracket,
	',': Comma,
	';': Semicolon,
	':': Colon,
	'.': Dot,
}

var kindInfos = []syntax.KindInfo{
	{Kind: Whitespace, Name: "Whitespace", Role: syntax.RoleTrivia},
	{Kind: Newline, Name: "Newline", Role: syntax.RoleTrivia},
	{Kind: LineComment, Name: "LineComment", Role: syntax.RoleTrivia},
	{Kind: BlockComment, Name: "BlockComment", Role: syntax.RoleTrivia},
	{Kind: TemplateComment, Name: "TemplateComment", Role: syntax.RoleTrivia},
	{Kind: Ident, Name: "Ident", Role: syntax.RoleIdentifier},
	{Kind: Int, Name: "Int", Role: syntax.RoleLiteral},
	{Kind: Float, Name: "Float", Role: syntax.RoleLiteral},
	{Kind: String, Name: "String", Role: syntax.RoleLiteral},
	{Kind: StringStart, Name: "StringStart", Role: syntax.RoleLiteral},
	{Kind: StringPart, Name: "StringPart", Role: syntax.RoleLiteral},
	{Kind: StringEnd, Name: "StringEnd", Role: syntax.RoleLiteral},
	{Kind: InterpStart, Name: "InterpStart", Role: syntax.RoleStructural},
	{Kind: InterpEnd, Name: "InterpEnd", Role: syntax.RoleStructural},
	{Kind: ControlStart, Name: "ControlStart", Role: syntax.RoleStructural},
	{Kind: ControlEnd, Name: "ControlEnd", Role: syntax.RoleStructural},
	{Kind: If, Name: "If", Role: syntax.RoleKeyword},
	{Kind: Else, Name: "Else", Role: syntax.RoleKeyword},
	{Kind: Let, Name: "Let", Role: syntax.RoleKeyword},
	{Kind: Mut, Name: "Mut", Role: syntax.RoleKeyword},
	{Kind: Const, Name: "Const", Role: syntax.RoleKeyword},
	{Kind: While, Name: "While", Role: syntax.RoleKeyword},
	{Kind: Fn, Name: "Fn", Role: syntax.RoleKeyword},
	{Kind: Return, Name: "Return", Role: syntax.RoleKeyword},
	{Kind: True, Name: "True", Role: syntax.RoleKeyword},
	{Kind: False, Name: "False", Role: syntax.RoleKeyword},
	{Kind: Null, Name: "Null", Role: syntax.RoleKeyword},
	{Kind: Is, Name: "Is", Role: syntax.RoleKeyword},
	{Kind: Instanceof, Name: "Instanceof", Role: syntax.RoleKeyword},
	{Kind: Plus, Name: "Plus", Role: syntax.RoleOperator},
	{Kind: Minus, Name: "Minus", Role: syntax.RoleOperator},
	{Kind: Star, Name: "Star", Role: syntax.RoleOperator},
	{Kind: Slash, Name: "Slash", Role: syntax.RoleOperator},
	{Kind: Percent, Name: "Percent", Role: syntax.RoleOperator},
	{Kind: Assign, Name: "Assign", Role: syntax.RoleOperator},
	{Kind: PlusAssign, Name: "PlusAssign", Role: syntax.RoleOperator},
	{Kind: MinusAssign, Name: "MinusAssign", Role: syntax.RoleOperator},
	{Kind: StarAssign, Name: "StarAssign", Role: syntax.RoleOperator},
	{Kind: SlashAssign, Name: "SlashAssign", Role: syntax.RoleOperator},
	{Kind: CoalesceAssign, Name: "CoalesceAssign", Role: syntax.RoleOperator},
	{Kind: EqEq, Name: "EqEq", Role: syntax.RoleOperator},
	{Kind: NotEq, Name: "NotEq", Role: syntax.RoleOperator},
	{Kind: Lt, Name: "Lt", Role: syntax.RoleOperator},
	{Kind: LtEq, Name: "LtEq", Role: syntax.RoleOperator},
	{Kind: Gt, Name: "Gt", Role: syntax.RoleOperator},
	{Kind: GtEq, Name: "GtEq", Role: syntax.RoleOperator},
	{Kind: AndAnd, Name: "AndAnd", Role: syntax.RoleOperator},
	{Kind: OrOr, Name: "OrOr", Role: syntax.RoleOperator},
	{Kind: Bang, Name: "Bang", Role: syntax.RoleOperator},
	{Kind: Amp, Name: "Amp", Role: syntax.RoleOperator},
	{Kind: Pipe, Name: "Pipe", Role: syntax.RoleOperator},
	{Kind: Caret, Name: "Caret", Role: syntax.RoleOperator},
	{Kind: Tilde, Name: "Tilde", Role: syntax.RoleOperator},
	{Kind: Shl, Name: "Shl", Role: syntax.RoleOperator},
	{Kind: Shr, Name: "Shr", Role: syntax.RoleOperator},
	{Kind: Question, Name: "Question", Role: syntax.RoleOperator},
	{Kind: Coalesce, Name: "Coalesce", Role: syntax.RoleOperator},
	{Kind: PlusPlus, Name: "PlusPlus", Role: syntax.RoleOperator},
	{Kind: MinusMinus, Name: "MinusMinus", Role: syntax.RoleOperator},
	{Kind: LParen, Name: "LParen", Role: syntax.RoleStructural},
	{Kind: RParen, Name: "RParen", Role: syntax.RoleStructural},
	{Kind: LBrace, Name: "LBrace", Role: syntax.RoleStructural},
	{Kind: RBrace, Name: "RBrace", Role: syntax.RoleStructural},
	{Kind: LBracket, Name: "LBracket", Role: syntax.RoleStructural},
	{Kind: RBracket, Name: "RBracket", Role: syntax.RoleStructural},
	{Kind: Comma, Name: "Comma", Role: syntax.RoleStructural},
	{Kind: Semicolon, Name: "Semicolon", Role: syntax.RoleStructural},
	{Kind: Colon, Name: "Colon", Role: syntax.RoleStructural},
	{Kind: Dot, Name: "Dot", Role: syntax.RoleStructural},
	{Kind: Error, Name: "Error"},
	{Kind: EOF, Name: "EOF"},
	{Kind: Root, Name: "Root"},
	{Kind: Block, Name: "Block"},
	{Kind: IfExpression, Name: "IfExpression"},
	{Kind: WhileExpression, Name: "WhileExpression"},
	{Kind: LetStatement, Name: "LetStatement"},
	{Kind: ExpressionStatement, Name: "ExpressionStatement"},
	{Kind: FnDecl, Name: "FnDecl"},
	{Kind: ParamList, Name: "ParamList"},
	{Kind: ReturnStatement, Name: "ReturnStatement"},
	{Kind: BinaryExpression, Name: "BinaryExpression"},
	{Kind: AssignExpression, Name: "AssignExpression"},
	{Kind: TernaryExpression, Name: "TernaryExpression"},
	{Kind: UnaryExpression, Name: "UnaryExpression"},
	{Kind: PostfixExpression, Name: "PostfixExpression"},
	{Kind: CallExpression, Name: "CallExpression"},
	{Kind: ArgList, Name: "ArgList"},
	{Kind: MemberExpression, Name: "MemberExpression"},
	{Kind: IndexExpression, Name: "IndexExpression"},
	{Kind: ParenExpression, Name: "ParenExpression"},
	{Kind: CastExpression, Name: "CastExpression"},
	{Kind: Literal, Name: "Literal"},
	{Kind: NameRef, Name: "NameRef"},
	{Kind: StringLiteral, Name: "StringLiteral"},
	{Kind: Interpolation, Name: "Interpolation"},
}

var vocabulary = syntax.NewTable(EOF, Error, Root, kindInfos...)
