package lexer

import (
	"luapretty/internal/diag"
	"luapretty/internal/token"
)

var singleOps = [256]token.Kind{
	'+': token.Plus,
	'-': token.Minus,
	'*': token.Star,
	'/': token.Slash,
	'%': token.Percent,
	'^': token.Caret,
	'#': token.Hash,
	'&': token.Amp,
	'~': token.Tilde,
	'|': token.Pipe,
	'<': token.Lt,
	'>': token.Gt,
	'=': token.Assign,
	'(': token.LParen,
	')': token.RParen,
	'{': token.LBrace,
	'}': token.RBrace,
	'[': token.LBracket,
	']': token.RBracket,
	';': token.Semicolon,
	':': token.Colon,
	',': token.Comma,
	'.': token.Dot,
}

// Жадность: сначала 3-символьные, затем 2-символьные, затем 1-символьные.
// Версионные операторы (//, &, |, ~, <<, >>, ::) лексятся всегда,
// их допустимость проверяет парсер.
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()

	switch {
	case lx.try3('.', '.', '.'):
		return lx.emit(token.DotDotDot, start)
	case lx.try2('.', '.'):
		return lx.emit(token.DotDot, start)
	case lx.try2(':', ':'):
		return lx.emit(token.ColonColon, start)
	case lx.try2('=', '='):
		return lx.emit(token.EqEq, start)
	case lx.try2('~', '='):
		return lx.emit(token.TildeEq, start)
	case lx.try2('<', '='):
		return lx.emit(token.LtEq, start)
	case lx.try2('>', '='):
		return lx.emit(token.GtEq, start)
	case lx.try2('<', '<'):
		return lx.emit(token.Shl, start)
	case lx.try2('>', '>'):
		return lx.emit(token.Shr, start)
	case lx.try2('/', '/'):
		return lx.emit(token.SlashSlash, start)
	}

	ch := lx.cursor.Bump()
	if k := singleOps[ch]; k != token.Invalid {
		return lx.emit(k, start)
	}
	tok := lx.emit(token.Invalid, start)
	lx.errLex(diag.LexUnknownChar, tok.Span, "unexpected character '"+tok.Text+"'")
	return tok
}
