package testkit

import (
	"strings"
	"testing"

	"luapretty/internal/ast"
	"luapretty/internal/parser"
	"luapretty/internal/source"
)

func parse(t *testing.T, src string) *ast.Tree {
	t.Helper()
	fs := source.NewFileSet()
	id, err := fs.AddVirtual("test.lua", []byte(src))
	if err != nil {
		t.Fatal(err)
	}
	res := parser.ParseFile(fs.Get(id), parser.Options{})
	if !res.OK() {
		t.Fatalf("parse %q failed", src)
	}
	return res.Tree
}

func TestCheckSpanInvariantsAccepts(t *testing.T) {
	for _, src := range []string{
		"local x = 1",
		"-- lead\nlocal t = { a = 1, [b] = (2 + 3) * 4, 'v' } -- tail\n",
		"function M.a:b(x, ...) return (x):rep(2) end",
		"for i = 1, 10, 2 do if i then break elseif j then f() else g{} end end",
		"--[[ one ]] --[==[ two ]==]\nrepeat local a, b = f'x' until not a",
	} {
		if err := CheckSpanInvariants(parse(t, src)); err != nil {
			t.Errorf("%q: %v", src, err)
		}
	}
}

func TestCheckSpanInvariantsRejects(t *testing.T) {
	tree := parse(t, "local x = f(y)")
	local := tree.Node(tree.Node(tree.Root).Body[0])
	arg := tree.Node(local.Init[0])
	arg.Span.End = local.Span.End + 3

	err := CheckSpanInvariants(tree)
	if err == nil || !strings.Contains(err.Error(), "outside its parent") {
		t.Fatalf("err = %v", err)
	}

	tree = parse(t, "-- a\n-- b\nx()")
	tree.Comments[0], tree.Comments[1] = tree.Comments[1], tree.Comments[0]
	if err := CheckSpanInvariants(tree); err == nil || !strings.Contains(err.Error(), "out of order") {
		t.Fatalf("err = %v", err)
	}

	if err := CheckSpanInvariants(nil); err == nil {
		t.Fatal("nil tree accepted")
	}
}
