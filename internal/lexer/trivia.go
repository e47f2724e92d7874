package lexer

import (
	"luapretty/internal/diag"
	"luapretty/internal/token"
)

// collectLeadingTrivia собирает подряд идущие trivia перед значимым токеном.
//   - ' ', '\t', '\r', '\f', '\v' коалесцируются в один TriviaSpace
//   - последовательные '\n' коалесцируются в один TriviaNewline
//   - --... до \n -> TriviaLineComment
//   - --[[ ... ]] / --[==[ ... ]==] -> TriviaBlockComment
func (lx *Lexer) collectLeadingTrivia() {
	lx.hold = lx.hold[:0]
	for !lx.cursor.EOF() {
		start := lx.cursor.Mark()
		b := lx.cursor.Peek()

		switch {
		case isSpace(b):
			for isSpace(lx.cursor.Peek()) {
				lx.cursor.Bump()
			}
			lx.pushTrivia(token.TriviaSpace, start)
		case b == '\n':
			for lx.cursor.Peek() == '\n' {
				lx.cursor.Bump()
			}
			lx.pushTrivia(token.TriviaNewline, start)
		case b == '-' && lx.cursor.PeekAt(1) == '-':
			lx.scanComment()
		default:
			return
		}
	}
}

func (lx *Lexer) pushTrivia(kind token.TriviaKind, start Mark) {
	sp := lx.cursor.SpanFrom(start)
	lx.hold = append(lx.hold, token.Trivia{Kind: kind, Span: sp, Text: lx.text(sp)})
}

func (lx *Lexer) scanComment() {
	start := lx.cursor.Mark()
	lx.cursor.BumpN(2) // "--"

	if level := lx.longBracketLevel(); level >= 0 {
		if !lx.skipLongBracket(level) {
			lx.errLex(diag.LexUnterminatedBlockComment, lx.cursor.SpanFrom(start), "unterminated block comment")
		}
		lx.pushTrivia(token.TriviaBlockComment, start)
		return
	}

	for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
		lx.cursor.Bump()
	}
	lx.pushTrivia(token.TriviaLineComment, start)
}

// longBracketLevel inspects an opening long bracket at the cursor without
// consuming it: "[[" is level 0, "[==[" level 2, -1 when absent.
func (lx *Lexer) longBracketLevel() int {
	if lx.cursor.Peek() != '[' {
		return -1
	}
	var n uint32 = 1
	for lx.cursor.PeekAt(n) == '=' {
		n++
	}
	if lx.cursor.PeekAt(n) == '[' {
		return int(n - 1)
	}
	return -1
}

// skipLongBracket consumes "[=*[ ... ]=*]" of the given level. It reports
// false and stops at EOF when the closing bracket is missing.
func (lx *Lexer) skipLongBracket(level int) bool {
	lx.cursor.BumpN(uint32(level) + 2) //nolint:gosec // level is small and non-negative
	for !lx.cursor.EOF() {
		if lx.cursor.Peek() == ']' && lx.closesLongBracket(level) {
			lx.cursor.BumpN(uint32(level) + 2) //nolint:gosec // see above
			return true
		}
		lx.cursor.Bump()
	}
	return false
}

func (lx *Lexer) closesLongBracket(level int) bool {
	var i uint32 = 1
	for ; int(i) <= level; i++ {
		if lx.cursor.PeekAt(i) != '=' {
			return false
		}
	}
	return lx.cursor.PeekAt(i) == ']'
}
