package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	Ident     // name
	NumberLit // 3, 0x1F, 1e10, 0x1p4
	StringLit // "a", 'b', [[c]], [==[d]==]

	KwAnd      // and
	KwBreak    // break
	KwDo       // do
	KwElse     // else
	KwElseif   // elseif
	KwEnd      // end
	KwFalse    // false
	KwFor      // for
	KwFunction // function
	KwGoto     // goto
	KwIf       // if
	KwIn       // in
	KwLocal    // local
	KwNil      // nil
	KwNot      // not
	KwOr       // or
	KwRepeat   // repeat
	KwReturn   // return
	KwThen     // then
	KwTrue     // true
	KwUntil    // until
	KwWhile    // while

	Plus       // +
	Minus      // -
	Star       // *
	Slash      // /
	SlashSlash // //
	Percent    // %
	Caret      // ^
	Hash       // #
	Amp        // &
	Tilde      // ~
	Pipe       // |
	Shl        // <<
	Shr        // >>
	EqEq       // ==
	TildeEq    // ~=
	LtEq       // <=
	GtEq       // >=
	Lt         // <
	Gt         // >
	Assign     // =
	LParen     // (
	RParen     // )
	LBrace     // {
	RBrace     // }
	LBracket   // [
	RBracket   // ]
	ColonColon // ::
	Semicolon  // ;
	Colon      // :
	Comma      // ,
	Dot        // .
	DotDot     // ..
	DotDotDot  // ...
	numKinds
)

var kindNames = [numKinds]string{
	Invalid:    "Invalid",
	EOF:        "EOF",
	Ident:      "Ident",
	NumberLit:  "NumberLit",
	StringLit:  "StringLit",
	KwAnd:      "and",
	KwBreak:    "break",
	KwDo:       "do",
	KwElse:     "else",
	KwElseif:   "elseif",
	KwEnd:      "end",
	KwFalse:    "false",
	KwFor:      "for",
	KwFunction: "function",
	KwGoto:     "goto",
	KwIf:       "if",
	KwIn:       "in",
	KwLocal:    "local",
	KwNil:      "nil",
	KwNot:      "not",
	KwOr:       "or",
	KwRepeat:   "repeat",
	KwReturn:   "return",
	KwThen:     "then",
	KwTrue:     "true",
	KwUntil:    "until",
	KwWhile:    "while",
	Plus:       "+",
	Minus:      "-",
	Star:       "*",
	Slash:      "/",
	SlashSlash: "//",
	Percent:    "%",
	Caret:      "^",
	Hash:       "#",
	Amp:        "&",
	Tilde:      "~",
	Pipe:       "|",
	Shl:        "<<",
	Shr:        ">>",
	EqEq:       "==",
	TildeEq:    "~=",
	LtEq:       "<=",
	GtEq:       ">=",
	Lt:         "<",
	Gt:         ">",
	Assign:     "=",
	LParen:     "(",
	RParen:     ")",
	LBrace:     "{",
	RBrace:     "}",
	LBracket:   "[",
	RBracket:   "]",
	ColonColon: "::",
	Semicolon:  ";",
	Colon:      ":",
	Comma:      ",",
	Dot:        ".",
	DotDot:     "..",
	DotDotDot:  "...",
}

// String returns the lexeme for keywords and punctuation, the kind name otherwise.
func (k Kind) String() string {
	if k < numKinds {
		return kindNames[k]
	}
	return "Kind(?)"
}

// IsKeyword reports whether k is a reserved word.
func (k Kind) IsKeyword() bool {
	return k >= KwAnd && k <= KwWhile
}

// IsPunctOrOp reports whether k is an operator or punctuation token.
func (k Kind) IsPunctOrOp() bool {
	return k >= Plus && k <= DotDotDot
}
