package token

import (
	"luapretty/internal/source"
)

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia
}

// IsLiteral reports whether the token is a number, string, boolean or nil.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case NumberLit, StringLit, KwTrue, KwFalse, KwNil:
		return true
	default:
		return false
	}
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// IsLongString reports whether a string literal uses the [[...]] / [=[...]=] form.
func (t Token) IsLongString() bool {
	return t.Kind == StringLit && len(t.Text) > 0 && t.Text[0] == '['
}
