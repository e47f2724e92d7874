package doc

import (
	"testing"
)

func callDoc(args ...string) *Doc {
	parts := make([]*Doc, len(args))
	for i, a := range args {
		parts[i] = Text(a)
	}
	return Group(
		Text("f("),
		Indent(Softline, Join(Concat(Text(","), Line), parts)),
		Softline,
		Text(")"),
	)
}

func TestRenderGroups(t *testing.T) {
	tests := []struct {
		name  string
		doc   *Doc
		width int
		want  string
	}{
		{"fits", callDoc("a", "b"), 80, "f(a, b)"},
		{"breaks", callDoc("a", "b"), 5, "f(\n    a,\n    b\n)"},
		{"exact width", callDoc("a", "b"), 7, "f(a, b)"},
		{
			"rest of line counts",
			Concat(Group(Text("aaa"), Line, Text("bbb")), Text("ccccc"), Hardline),
			10,
			"aaa\nbbbccccc\n",
		},
		{"wide runes break", Group(Text("日本語"), Line, Text("x")), 7, "日本語\nx"},
		{"wide runes fit", Group(Text("日本語"), Line, Text("x")), 8, "日本語 x"},
		{
			"multi-line literal ends measuring",
			Group(Text("f("), Softline, Text("[[x\ny]]"), Softline, Text(")")),
			5,
			"f([[x\ny]])",
		},
		{
			"preset break",
			GroupBreak(true, Text("{"), Indent(Line, Text("1")), Line, Text("}")),
			80,
			"{\n    1\n}",
		},
		{
			"broken inner group lets outer fit",
			Group(Text("x = "), GroupBreak(true, Text("{"), Indent(Line, Text("1")), Line, Text("}"))),
			80,
			"x = {\n    1\n}",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			PropagateBreaks(tt.doc)
			if got := Render(tt.doc, Options{Width: tt.width}); got != tt.want {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderLineSuffix(t *testing.T) {
	d := Concat(
		Text("a"), LineSuffix(Text(" -- c")), BreakParent, Text(";"), Hardline,
		Text("b"), LineSuffix(Text(" -- end")),
	)
	if got, want := Render(d, Options{}), "a; -- c\nb -- end"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestRenderTrimsTrailingBlanks(t *testing.T) {
	d := Concat(Text("a "), Indent(Hardline, Hardline, Text("b")), Hardline)
	if got, want := Render(d, Options{}), "a\n\n    b\n"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
	tabs := Render(Concat(Text("a"), Indent(Hardline, Text("b"))), Options{Indent: "\t"})
	if tabs != "a\n\tb" {
		t.Fatalf("tab indent: %q", tabs)
	}
}

func TestTabIndentWidth(t *testing.T) {
	// таб в отступе считается за TabWidth колонок
	d := Indent(Hardline, Group(Text("aaaa"), Line, Text("bbbb")))
	got := Render(d, Options{Width: 12, Indent: "\t", TabWidth: 4})
	if got != "\n\taaaa\n\tbbbb" {
		t.Fatalf("got %q", got)
	}
	got = Render(d, Options{Width: 12, Indent: "\t", TabWidth: 2})
	if got != "\n\taaaa bbbb" {
		t.Fatalf("got %q", got)
	}
}

func TestPropagateBreaks(t *testing.T) {
	inner := Group(Text("a"), Hardline, Text("b"))
	outer := Group(Text("x"), Indent(inner))
	if !PropagateBreaks(outer) {
		t.Fatal("hardline must propagate")
	}
	if !inner.Break || !outer.Break {
		t.Fatal("every enclosing group must be broken")
	}

	preset := GroupBreak(true, Text("y"))
	holder := Group(Text("x"), preset)
	if PropagateBreaks(holder) || holder.Break {
		t.Fatal("a preset flag alone must not propagate")
	}

	suffix := Group(LineSuffix(Text("--c"), BreakParent))
	if !PropagateBreaks(suffix) || !suffix.Break {
		t.Fatal("break marker inside a line suffix propagates")
	}
	if PropagateBreaks(Group(Text("a"), Line, Softline)) {
		t.Fatal("soft content must not propagate")
	}
}

func TestRenderDoesNotMutate(t *testing.T) {
	d := callDoc("alpha", "beta", "gamma")
	PropagateBreaks(d)
	wide := Render(d, Options{Width: 80})
	narrow := Render(d, Options{Width: 10})
	if wide == narrow {
		t.Fatal("widths should lay out differently")
	}
	if d.Break {
		t.Fatal("render changed the group flag")
	}
	if again := Render(d, Options{Width: 80}); again != wide {
		t.Fatalf("re-render differs: %q vs %q", again, wide)
	}
}

func TestBuilders(t *testing.T) {
	if Concat(nil, nil) != nil || Text("") != nil {
		t.Fatal("empty builders must yield nil")
	}
	single := Text("x")
	if Concat(nil, single) != single {
		t.Fatal("single-part concat collapses")
	}
	if !Group().IsEmpty() || Group(Text("a")).IsEmpty() || Line.IsEmpty() {
		t.Fatal("IsEmpty misclassifies")
	}
	if WillBreak(callDoc("a")) || !WillBreak(Concat(Text("a"), Indent(Hardline))) || !WillBreak(GroupBreak(true)) {
		t.Fatal("WillBreak misclassifies")
	}
	if !HasNewlineText(Concat(Text("a"), Text("[[\n]]"))) || HasNewlineText(Hardline) {
		t.Fatal("HasNewlineText misclassifies")
	}
	if got := Render(Join(Text(", "), []*Doc{Text("a"), Text("b"), Text("c")}), Options{}); got != "a, b, c" {
		t.Fatalf("Join: %q", got)
	}
}

func TestDump(t *testing.T) {
	d := Concat(GroupBreak(true, Text("a"), Indent(Line)), LineSuffix(Text("-- c")), Hardline)
	want := `concat {
  group! {
    concat {
      "a"
      indent {
        line
      }
    }
  }
  lineSuffix {
    "-- c"
  }
  hardline
}`
	if got := d.String(); got != want {
		t.Fatalf("dump:\n%s\nwant:\n%s", got, want)
	}
	var nilDoc *Doc
	if nilDoc.String() != "nil" {
		t.Fatalf("nil dump = %q", nilDoc.String())
	}
}
