package lexer

import (
	"luapretty/internal/source"
	"luapretty/internal/token"
)

type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	look   *token.Token   // 1 элементный буфер для токена
	hold   []token.Trivia // накопленные leading trivia
}

// New creates a lexer over file. A "#!" first line is skipped: it is not Lua
// and is surfaced to the formatter separately.
func New(file *source.File, opts Options) *Lexer {
	lx := &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
	}
	if lx.cursor.PeekAt(0) == '#' && lx.cursor.PeekAt(1) == '!' {
		for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
			lx.cursor.Bump()
		}
	}
	return lx
}

// Next возвращает следующий значимый токен с уже собранным Leading.
// После EOF всегда возвращает EOF; trivia в конце файла приклеивается к EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	lx.collectLeadingTrivia()

	var tok token.Token
	if lx.cursor.EOF() {
		tok = token.Token{Kind: token.EOF, Span: lx.emptySpan()}
	} else {
		tok = lx.scanToken()
	}

	tok.Leading = lx.hold
	lx.hold = nil
	return tok
}

func (lx *Lexer) scanToken() token.Token {
	ch := lx.cursor.Peek()
	switch {
	case isIdentStartByte(ch), ch >= utf8RuneSelf:
		return lx.scanIdentOrKeyword()
	case isDec(ch), ch == '.' && isDec(lx.cursor.PeekAt(1)):
		return lx.scanNumber()
	case ch == '"' || ch == '\'':
		return lx.scanString()
	case ch == '[' && lx.longBracketLevel() >= 0:
		return lx.scanLongString()
	default:
		return lx.scanOperatorOrPunct()
	}
}

// Peek возвращает следующий токен, не потребляя его.
func (lx *Lexer) Peek() token.Token {
	t := lx.Next()
	lx.look = &t
	return t
}

// All drains the lexer and returns every token including the final EOF.
func (lx *Lexer) All() []token.Token {
	var out []token.Token
	for {
		tok := lx.Next()
		out = append(out, tok)
		if tok.Kind == token.EOF {
			return out
		}
	}
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

func (lx *Lexer) text(sp source.Span) string {
	return string(lx.file.Content[sp.Start:sp.End])
}

func (lx *Lexer) emit(k token.Kind, start Mark) token.Token {
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: k, Span: sp, Text: lx.text(sp)}
}
