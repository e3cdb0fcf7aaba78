package token

import "strconv"

// Kind represents the category of a source token.
// Related kinds are declared in contiguous runs so that the class
// predicates below are simple range checks.
type Kind uint8

const (
	// Invalid is the zero Kind; the lexer never produces it.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	Dot        // .
	Comma      // ,
	Colon      // :
	ColonColon // ::
	Semicolon  // ;
	Question   // ?

	LParen   // (
	RParen   // )
	LBrace   // {
	RBrace   // }
	LBracket // [
	RBracket // ]

	Plus       // +
	Minus      // -
	Star       // *
	Slash      // /
	Bang       // !
	Shl        // <<
	Shr        // >>
	Pipe       // |
	Amp        // &
	Caret      // ^
	OrOr       // ||
	AndAnd     // &&
	PlusPlus   // ++
	MinusMinus // --
	DotDot     // ..
	DotDotDot  // ...
	DotDotEq   // ..=

	// Assign opens the run of assignment operators.
	Assign      // =
	PlusAssign  // +=
	MinusAssign // -=
	StarAssign  // *=
	SlashAssign // /=
	ShlAssign   // <<=
	ShrAssign   // >>=
	PipeAssign  // |=
	AmpAssign   // &=
	CaretAssign // ^=

	// Lt opens the run of comparison operators.
	Lt     // <
	Gt     // >
	LtEq   // <=
	GtEq   // >=
	EqEq   // ==
	BangEq // !=

	// KwIf opens the run of keywords.
	KwIf       // if
	KwElse     // else
	KwWhile    // while
	KwFor      // for
	KwLoop     // loop
	KwFn       // fn
	KwReturn   // return
	KwLet      // let
	KwConst    // const
	KwContinue // continue
	KwTrue     // true
	KwFalse    // false
	KwStruct   // struct
	KwEnum     // enum
	KwMatch    // match
	KwBreak    // break
	KwPub      // pub
	KwDefine   // define
	KwSection  // section
	KwScript   // script

	// IntLit represents an integer literal in any base, prefix included.
	IntLit
	// FloatLit represents a float literal.
	FloatLit
	// CharLit represents a character literal, quotes included.
	CharLit
	// StringLit represents a string literal, quotes included.
	StringLit

	// Ident represents any identifier that is not a keyword.
	Ident

	kindCount
)

var kindNames = [kindCount]string{
	Invalid: "Invalid",
	EOF:     "EOF",

	Dot:        ".",
	Comma:      ",",
	Colon:      ":",
	ColonColon: "::",
	Semicolon:  ";",
	Question:   "?",

	LParen:   "(",
	RParen:   ")",
	LBrace:   "{",
	RBrace:   "}",
	LBracket: "[",
	RBracket: "]",

	Plus:       "+",
	Minus:      "-",
	Star:       "*",
	Slash:      "/",
	Bang:       "!",
	Shl:        "<<",
	Shr:        ">>",
	Pipe:       "|",
	Amp:        "&",
	Caret:      "^",
	OrOr:       "||",
	AndAnd:     "&&",
	PlusPlus:   "++",
	MinusMinus: "--",
	DotDot:     "..",
	DotDotDot:  "...",
	DotDotEq:   "..=",

	Assign:      "=",
	PlusAssign:  "+=",
	MinusAssign: "-=",
	StarAssign:  "*=",
	SlashAssign: "/=",
	ShlAssign:   "<<=",
	ShrAssign:   ">>=",
	PipeAssign:  "|=",
	AmpAssign:   "&=",
	CaretAssign: "^=",

	Lt:     "<",
	Gt:     ">",
	LtEq:   "<=",
	GtEq:   ">=",
	EqEq:   "==",
	BangEq: "!=",

	KwIf:       "if",
	KwElse:     "else",
	KwWhile:    "while",
	KwFor:      "for",
	KwLoop:     "loop",
	KwFn:       "fn",
	KwReturn:   "return",
	KwLet:      "let",
	KwConst:    "const",
	KwContinue: "continue",
	KwTrue:     "true",
	KwFalse:    "false",
	KwStruct:   "struct",
	KwEnum:     "enum",
	KwMatch:    "match",
	KwBreak:    "break",
	KwPub:      "pub",
	KwDefine:   "define",
	KwSection:  "section",
	KwScript:   "script",

	IntLit:    "Int",
	FloatLit:  "Float",
	CharLit:   "Char",
	StringLit: "String",
	Ident:     "Ident",
}

// String returns the lexeme of fixed-spelling kinds and a class name otherwise.
func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// IsAssignment reports whether k is '=' or a compound assignment.
func (k Kind) IsAssignment() bool { return k >= Assign && k <= CaretAssign }

// IsComparison reports whether k is a relational or equality operator.
func (k Kind) IsComparison() bool { return k >= Lt && k <= BangEq }

// IsKeyword reports whether k is a reserved word.
func (k Kind) IsKeyword() bool { return k >= KwIf && k <= KwScript }

// IsLiteral reports whether k is an Int, Float, Char or String literal.
func (k Kind) IsLiteral() bool { return k >= IntLit && k <= StringLit }

// Valid reports whether k is a kind the lexer can produce.
func (k Kind) Valid() bool { return k > Invalid && k < kindCount }
