package format

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"luapretty/internal/diag"
	"luapretty/internal/lexer"
	"luapretty/internal/source"
	"luapretty/internal/token"
)

// lexeme is one significant token as the round-trip check compares it.
type lexeme struct {
	kind token.Kind
	text string
}

func (l lexeme) String() string {
	if l.text == "" {
		return l.kind.String()
	}
	return strconv.Quote(l.text)
}

// CheckRoundTrip re-lexes formatted and compares it with orig. Both must
// hold the same significant tokens in the same order and the same comments.
// Punctuation the printer is free to add or drop (parentheses, separators)
// is not compared; string literals are compared by value.
func CheckRoundTrip(orig, formatted string) (ok bool, msg string) {
	origToks, origComments, err := significant("original", orig)
	if err != nil {
		return false, "fmt-check: original does not lex: " + err.Error()
	}
	newToks, newComments, err := significant("formatted", formatted)
	if err != nil {
		return false, "fmt-check: output does not lex: " + err.Error()
	}

	for i := 0; i < len(origToks) || i < len(newToks); i++ {
		switch {
		case i >= len(origToks):
			return false, fmt.Sprintf("fmt-check: extra token %s in output", newToks[i])
		case i >= len(newToks):
			return false, fmt.Sprintf("fmt-check: token %s missing from output", origToks[i])
		case origToks[i] != newToks[i]:
			return false, fmt.Sprintf("fmt-check: token %d is %s, was %s", i, newToks[i], origToks[i])
		}
	}

	slices.Sort(origComments)
	slices.Sort(newComments)
	if !slices.Equal(origComments, newComments) {
		return false, fmt.Sprintf("fmt-check: comments differ (%d before, %d after)", len(origComments), len(newComments))
	}
	return true, ""
}

func significant(name, text string) ([]lexeme, []string, error) {
	fs := source.NewFileSet()
	file := fs.Get(fs.Add(name, []byte(text), 0))
	bag := diag.NewBag(1)
	lx := lexer.New(file, lexer.Options{Reporter: &diag.BagReporter{Bag: bag}})

	var toks []lexeme
	var comments []string
	if strings.HasPrefix(text, "#!") {
		line, _, _ := strings.Cut(text, "\n")
		comments = append(comments, strings.TrimRight(line, " \t\r"))
	}
	for _, tok := range lx.All() {
		for _, tr := range tok.Leading {
			switch tr.Kind {
			case token.TriviaLineComment:
				comments = append(comments, strings.TrimRight(tr.Text, " \t\r"))
			case token.TriviaBlockComment:
				comments = append(comments, tr.Text)
			}
		}
		switch tok.Kind {
		case token.EOF, token.LParen, token.RParen, token.Semicolon, token.Comma:
			continue
		case token.StringLit:
			toks = append(toks, lexeme{kind: tok.Kind, text: stringValue(tok)})
		default:
			toks = append(toks, lexeme{kind: tok.Kind, text: tok.Text})
		}
	}
	if d, ok := bag.First(); ok {
		lc := file.Position(d.Primary.Start)
		return nil, nil, fmt.Errorf("%d:%d: %s", lc.Line, lc.Col, d.Message)
	}
	return toks, comments, nil
}

// stringValue returns the bytes a string literal denotes, or its raw text
// when it cannot be decoded.
func stringValue(tok token.Token) string {
	if tok.IsLongString() {
		return longStringValue(tok.Text)
	}
	if v, ok := unescape(tok.Text); ok {
		return v
	}
	return tok.Text
}

func longStringValue(raw string) string {
	level := token.LongBracketLevel(raw)
	if level < 0 || len(raw) < 2*(level+2) {
		return raw
	}
	body := raw[level+2 : len(raw)-level-2]
	// перевод строки сразу после открывающей скобки не входит в значение
	switch {
	case strings.HasPrefix(body, "\r\n"):
		body = body[2:]
	case strings.HasPrefix(body, "\n"):
		body = body[1:]
	}
	return body
}

// unescape decodes a quoted Lua string literal including its quotes.
func unescape(raw string) (string, bool) {
	if len(raw) < 2 || raw[0] != raw[len(raw)-1] {
		return "", false
	}
	s := raw[1 : len(raw)-1]
	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' {
			sb.WriteByte(s[i])
			continue
		}
		i++
		if i >= len(s) {
			return "", false
		}
		switch c := s[i]; c {
		case 'a':
			sb.WriteByte('\a')
		case 'b':
			sb.WriteByte('\b')
		case 'f':
			sb.WriteByte('\f')
		case 'n', '\n':
			sb.WriteByte('\n')
		case 'r':
			sb.WriteByte('\r')
		case 't':
			sb.WriteByte('\t')
		case 'v':
			sb.WriteByte('\v')
		case '\\', '"', '\'':
			sb.WriteByte(c)
		case '\r':
			sb.WriteByte('\n')
			if i+1 < len(s) && s[i+1] == '\n' {
				i++
			}
		case 'z':
			for i+1 < len(s) && isSpace(s[i+1]) {
				i++
			}
		case 'x':
			if i+2 >= len(s) {
				return "", false
			}
			v, err := strconv.ParseUint(s[i+1:i+3], 16, 8)
			if err != nil {
				return "", false
			}
			sb.WriteByte(byte(v))
			i += 2
		case 'u':
			end := strings.IndexByte(s[i:], '}')
			if i+1 >= len(s) || s[i+1] != '{' || end < 0 {
				return "", false
			}
			v, err := strconv.ParseUint(s[i+2:i+end], 16, 31)
			if err != nil {
				return "", false
			}
			sb.WriteString(utf8Encode(v))
			i += end
		default:
			if c < '0' || c > '9' {
				return "", false
			}
			j := i
			for j < len(s) && j < i+3 && s[j] >= '0' && s[j] <= '9' {
				j++
			}
			v, err := strconv.ParseUint(s[i:j], 10, 8)
			if err != nil {
				return "", false
			}
			sb.WriteByte(byte(v))
			i = j - 1
		}
	}
	return sb.String(), true
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v'
}

// utf8Encode follows Lua's \u{XXX}, which accepts values up to 2^31 in the
// original six-byte UTF-8 scheme.
func utf8Encode(v uint64) string {
	if v <= utf8.MaxRune && !(v >= 0xD800 && v <= 0xDFFF) {
		return string(rune(v))
	}
	// суррогаты и значения за пределами Unicode кодируем побайтно
	var buf []byte
	limit := uint64(0x3f)
	for v > limit {
		buf = append(buf, byte(0x80|(v&0x3f)))
		v >>= 6
		limit >>= 1
	}
	buf = append(buf, byte((^limit<<1)|v))
	slices.Reverse(buf)
	return string(buf)
}
