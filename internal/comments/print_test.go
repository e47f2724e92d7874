package comments

import (
	"testing"

	"luapretty/internal/ast"
	"luapretty/internal/astpath"
	"luapretty/internal/doc"
)

func render(d *doc.Doc) string {
	return doc.Render(d, doc.Options{Width: 40})
}

func TestPrintLeading(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"-- a\nx = 1", "-- a\nX"},
		{"-- a\n\nx = 1", "-- a\n\nX"},
		{"--[[ a ]] x = 1", "--[[ a ]] X"},
		{"--[[ a ]]\nx = 1", "--[[ a ]]\nX"},
		{"--[[ a ]] -- b\nx = 1", "--[[ a ]]\nX"},
	}
	for _, tt := range tests {
		tree := attachSource(t, tt.src)
		got := render(doc.Concat(PrintLeading(tree.Text(), &tree.Comments[0]), doc.Text("X")))
		if got != tt.want {
			t.Errorf("PrintLeading(%q) = %q, want %q", tt.src, got, tt.want)
		}
	}
}

func TestPrintTrailing(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"x = 1 -- a", "X -- a"},
		{"x = 1 --[[ a ]]", "X --[[ a ]]"},
		{"x = 1\n-- a", "X\n-- a"},
		{"x = 1\n\n-- a", "X\n\n-- a"},
	}
	for _, tt := range tests {
		tree := attachSource(t, tt.src)
		got := render(doc.Concat(doc.Text("X"), PrintTrailing(tree.Text(), &tree.Comments[0])))
		if got != tt.want {
			t.Errorf("PrintTrailing(%q) = %q, want %q", tt.src, got, tt.want)
		}
	}
}

func TestTrailingLineCommentBreaksGroup(t *testing.T) {
	tree := attachSource(t, "x = 1 -- a")
	d := doc.Group(doc.Text("f("), doc.Softline, doc.Text("X"), PrintTrailing(tree.Text(), &tree.Comments[0]), doc.Softline, doc.Text(")"))
	doc.PropagateBreaks(d)
	want := "f(\nX -- a\n)"
	if got := render(d); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestPrintComments(t *testing.T) {
	tree := attachSource(t, "-- lead\nx = 1 -- tail")
	p := astpath.New(tree)
	got := astpath.DescendEach(p, ast.FieldBody, func(p *astpath.Path) string {
		return render(PrintComments(p, doc.Text("x = 1")))
	})
	if want := "-- lead\nx = 1 -- tail"; len(got) != 1 || got[0] != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestPrintDangling(t *testing.T) {
	tree := attachSource(t, "-- one\n-- two")
	p := astpath.New(tree)
	if !HasDangling(p) {
		t.Fatal("root should own dangling comments")
	}
	if got, want := render(PrintDangling(p, true)), "-- one\n-- two"; got != want {
		t.Errorf("same indent: got %q, want %q", got, want)
	}
	d := doc.Concat(doc.Text("{"), PrintDangling(p, false), doc.Hardline, doc.Text("}"))
	if got, want := doc.Render(d, doc.Options{Width: 40, Indent: "  "}), "{\n  -- one\n  -- two\n}"; got != want {
		t.Errorf("indented: got %q, want %q", got, want)
	}
	if got, want := render(doc.Concat(doc.Text("t = {}"), PrintDanglingSuffix(p))), "t = {} -- one\n-- two"; got != want {
		t.Errorf("suffix: got %q, want %q", got, want)
	}
}

func TestPrintDanglingStatement(t *testing.T) {
	tree := attachSource(t, "while x do -- loop\nend")
	p := astpath.New(tree)
	got := astpath.DescendEach(p, ast.FieldBody, func(p *astpath.Path) string {
		return render(doc.Concat(doc.Text("while x do"), PrintDanglingStatement(p)))
	})
	if want := "while x do -- loop"; len(got) != 1 || got[0] != want {
		t.Fatalf("got %q, want %q", got, want)
	}
	if HasDangling(p) {
		t.Fatal("root has no dangling comments")
	}
}

func TestPrintClauseComments(t *testing.T) {
	tree := attachSource(t, "if a then\n  x()\n  -- c\nelse\n  y()\n  -- d\nend")
	clauses := tree.Node(tree.Node(tree.Root).Body[0]).Clauses
	for i, c := range tree.Comments {
		if !InClauseBody(tree, &tree.Comments[i]) {
			t.Errorf("%q should stay in the clause body", c.Raw)
		}
	}
	d := doc.Concat(doc.Text("if a then"), PrintClauseComments(tree, clauses[0], clauses[1]), doc.Hardline, doc.Text("else"),
		PrintClauseComments(tree, clauses[1], ast.NoNodeID), doc.Hardline, doc.Text("end"))
	if got, want := render(d), "if a then\n    -- c\nelse\n    -- d\nend"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
	if PrintClauseComments(tree, clauses[0], ast.NoNodeID) != nil {
		t.Fatal("a clause without trailing comments prints nothing")
	}
}
