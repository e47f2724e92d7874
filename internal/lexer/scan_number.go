package lexer

import (
	"luapretty/internal/diag"
	"luapretty/internal/token"
)

// scanNumber читает числовой литерал так же жадно, как эталонный лексер Lua:
// буквы, цифры, точки и знак сразу после экспоненты. Затем форма проверяется:
// 3, 3.0, .5, 3e-2, 0xFF, 0x1.8p4.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()

	expo := [2]byte{'e', 'E'}
	if lx.cursor.Peek() == '0' && (lx.cursor.PeekAt(1) == 'x' || lx.cursor.PeekAt(1) == 'X') {
		expo = [2]byte{'p', 'P'}
		lx.cursor.BumpN(2)
	}
	for {
		b := lx.cursor.Peek()
		switch {
		case b == expo[0] || b == expo[1]:
			lx.cursor.Bump()
			if s := lx.cursor.Peek(); s == '+' || s == '-' {
				lx.cursor.Bump()
			}
		case isIdentContinueByte(b) || b == '.':
			lx.cursor.Bump()
		default:
			tok := lx.emit(token.NumberLit, start)
			if !validNumber(tok.Text) {
				lx.errLex(diag.LexBadNumber, tok.Span, "malformed number near '"+tok.Text+"'")
				tok.Kind = token.Invalid
			}
			return tok
		}
	}
}

func validNumber(s string) bool {
	i := 0
	digit := isDec
	expo := byte('e')
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		i = 2
		digit = isHex
		expo = 'p'
	}
	mantissa := 0
	for i < len(s) && digit(s[i]) {
		i++
		mantissa++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && digit(s[i]) {
			i++
			mantissa++
		}
	}
	if mantissa == 0 {
		return false
	}
	if i < len(s) && (s[i]|0x20) == expo {
		i++
		if i < len(s) && (s[i] == '+' || s[i] == '-') {
			i++
		}
		exp := 0
		for i < len(s) && isDec(s[i]) {
			i++
			exp++
		}
		if exp == 0 {
			return false
		}
	}
	return i == len(s)
}
