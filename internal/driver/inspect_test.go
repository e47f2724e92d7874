package driver

import (
	"context"
	"path/filepath"
	"testing"

	"luapretty/internal/ast"
	"luapretty/internal/format"
	"luapretty/internal/token"
)

func TestTokenize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "t.lua")
	writeFile(t, path, "local x = 1 -- c\n")
	res, err := Tokenize(path, 10)
	if err != nil {
		t.Fatal(err)
	}
	if res.Bag.HasErrors() {
		t.Fatalf("diagnostics: %v", res.Bag.Items())
	}
	kinds := make([]token.Kind, 0, len(res.Tokens))
	for _, tok := range res.Tokens {
		kinds = append(kinds, tok.Kind)
	}
	want := []token.Kind{token.KwLocal, token.Ident, token.Assign, token.NumberLit, token.EOF}
	if len(kinds) != len(want) {
		t.Fatalf("kinds = %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("kinds = %v, want %v", kinds, want)
		}
	}
	if eof := res.Tokens[len(res.Tokens)-1]; len(eof.Leading) == 0 {
		t.Fatal("trailing comment not kept as EOF trivia")
	}
}

func TestParseAndBuildDoc(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.lua")
	bad := filepath.Join(dir, "bad.lua")
	writeFile(t, good, "f(a) -- c\n")
	writeFile(t, bad, "f(")

	res, err := Parse(context.Background(), good, format.Options{})
	if err != nil {
		t.Fatal(err)
	}
	if res.Tree == nil || res.Tree.Kind(res.Tree.Root) != ast.Chunk {
		t.Fatal("no chunk parsed")
	}
	if len(res.Tree.Comments) != 1 {
		t.Fatalf("comments = %d, want 1", len(res.Tree.Comments))
	}

	res, err = Parse(context.Background(), bad, format.Options{})
	if err != nil {
		t.Fatal(err)
	}
	if res.Tree != nil || !res.Bag.HasErrors() {
		t.Fatal("syntax error not reported in the bag")
	}

	dres, err := BuildDoc(context.Background(), good, format.Options{})
	if err != nil {
		t.Fatal(err)
	}
	if dres.Doc == nil {
		t.Fatal("no document")
	}
	if _, err := BuildDoc(context.Background(), filepath.Join(dir, "missing.lua"), format.Options{}); err == nil {
		t.Fatal("missing file accepted")
	}
}
