package printer

import (
	"fmt"
	"strings"
)

// Quotemark is the preferred delimiter of short string literals.
type Quotemark uint8

const (
	QuoteDouble Quotemark = iota
	QuoteSingle
)

// ParseQuotemark accepts "double", "single" and "" (double).
func ParseQuotemark(s string) (Quotemark, error) {
	switch strings.ToLower(s) {
	case "", "double":
		return QuoteDouble, nil
	case "single":
		return QuoteSingle, nil
	}
	return QuoteDouble, fmt.Errorf("unknown quotemark %q (want single or double)", s)
}

func (q Quotemark) String() string {
	if q == QuoteSingle {
		return "single"
	}
	return "double"
}

func (q Quotemark) char() byte {
	if q == QuoteSingle {
		return '\''
	}
	return '"'
}

func (q Quotemark) other() Quotemark {
	if q == QuoteSingle {
		return QuoteDouble
	}
	return QuoteSingle
}

// FormatString re-quotes the raw text of a string literal. Long bracket
// strings are returned unchanged. A quoted string switches to the preferred
// delimiter unless its content contains that character, in which case the
// other delimiter is used.
func FormatString(raw string, q Quotemark) string {
	if len(raw) < 2 || raw[0] == '[' {
		return raw
	}
	content := raw[1 : len(raw)-1]
	if strings.IndexByte(content, q.char()) >= 0 {
		q = q.other()
	}
	return makeStringLiteral(content, q)
}

// makeStringLiteral wraps content in q's delimiter: escapes of the other
// delimiter are dropped and bare occurrences of q are escaped. Every other
// byte, escapes included, is kept as is.
func makeStringLiteral(content string, q Quotemark) string {
	quote, alt := q.char(), q.other().char()
	var b strings.Builder
	b.Grow(len(content) + 2)
	b.WriteByte(quote)
	for i := 0; i < len(content); i++ {
		c := content[i]
		switch {
		case c == '\\' && i+1 < len(content):
			i++
			if content[i] != alt {
				b.WriteByte('\\')
			}
			b.WriteByte(content[i])
		case c == quote:
			b.WriteByte('\\')
			b.WriteByte(c)
		default:
			b.WriteByte(c)
		}
	}
	b.WriteByte(quote)
	return b.String()
}
