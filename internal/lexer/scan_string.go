package lexer

import (
	"luapretty/internal/diag"
	"luapretty/internal/token"
)

// scanString читает "..." или '...'. Экранирование проверяется мягко:
// после '\' съедается один байт (включая перевод строки), \z и \x/\u
// не декодируются: форматтер переносит текст литерала как есть.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	quote := lx.cursor.Bump()
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch b {
		case quote:
			lx.cursor.Bump()
			return lx.emit(token.StringLit, start)
		case '\\':
			lx.cursor.Bump()
			if lx.cursor.EOF() {
				continue
			}
			lx.cursor.Bump()
		case '\n':
			tok := lx.emit(token.Invalid, start)
			lx.errLex(diag.LexUnterminatedString, tok.Span, "unfinished string")
			return tok
		default:
			lx.cursor.Bump()
		}
	}
	tok := lx.emit(token.Invalid, start)
	lx.errLex(diag.LexUnterminatedString, tok.Span, "unfinished string")
	return tok
}

// scanLongString читает [[...]] / [==[...]==].
func (lx *Lexer) scanLongString() token.Token {
	start := lx.cursor.Mark()
	if !lx.skipLongBracket(lx.longBracketLevel()) {
		tok := lx.emit(token.Invalid, start)
		lx.errLex(diag.LexUnterminatedLongString, tok.Span, "unfinished long string")
		return tok
	}
	return lx.emit(token.StringLit, start)
}
