package printer

import "testing"

func TestFormatString(t *testing.T) {
	tests := []struct {
		raw  string
		q    Quotemark
		want string
	}{
		{`'abc'`, QuoteDouble, `"abc"`},
		{`"abc"`, QuoteSingle, `'abc'`},
		{`'say "hi"'`, QuoteDouble, `'say "hi"'`},
		{`"it's"`, QuoteSingle, `"it's"`},
		{`'it\'s'`, QuoteDouble, `"it's"`},
		{`"a\"b"`, QuoteDouble, `'a"b'`},
		{`'a"b\'c'`, QuoteDouble, `'a"b\'c'`},
		{`'tab\tnew\nline'`, QuoteDouble, `"tab\tnew\nline"`},
		{`'back\\'`, QuoteDouble, `"back\\"`},
		{`'\65\x41\u{41}'`, QuoteDouble, `"\65\x41\u{41}"`},
		{`''`, QuoteDouble, `""`},
		{`[[raw 'x' "y"]]`, QuoteDouble, `[[raw 'x' "y"]]`},
		{`[==[a]]b]==]`, QuoteSingle, `[==[a]]b]==]`},
	}
	for _, tt := range tests {
		if got := FormatString(tt.raw, tt.q); got != tt.want {
			t.Errorf("FormatString(%s, %s) = %s, want %s", tt.raw, tt.q, got, tt.want)
		}
	}
}

func TestParseQuotemark(t *testing.T) {
	for in, want := range map[string]Quotemark{"": QuoteDouble, "double": QuoteDouble, "Single": QuoteSingle} {
		got, err := ParseQuotemark(in)
		if err != nil || got != want {
			t.Errorf("ParseQuotemark(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseQuotemark("backtick"); err == nil {
		t.Error("expected an error for an unknown quotemark")
	}
}
