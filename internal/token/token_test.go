package token

import "testing"

func TestLookupKeyword(t *testing.T) {
	cases := map[string]Kind{
		"and":      KwAnd,
		"elseif":   KwElseif,
		"function": KwFunction,
		"goto":     KwGoto,
		"until":    KwUntil,
		"nil":      KwNil,
	}
	for lexeme, want := range cases {
		got, ok := LookupKeyword(lexeme)
		if !ok || got != want {
			t.Fatalf("LookupKeyword(%q) = %v, %v; want %v", lexeme, got, ok, want)
		}
	}

	// регистр важен
	for _, s := range []string{"And", "END", "self", "continue"} {
		if _, ok := LookupKeyword(s); ok {
			t.Fatalf("LookupKeyword(%q) returned ok=true, want false", s)
		}
	}
}

func TestKindString(t *testing.T) {
	if KwFunction.String() != "function" || DotDotDot.String() != "..." || Ident.String() != "Ident" {
		t.Fatalf("unexpected kind names: %s %s %s", KwFunction, DotDotDot, Ident)
	}
	if !KwWhile.IsKeyword() || Plus.IsKeyword() {
		t.Fatal("IsKeyword misclassifies")
	}
	if !DotDotDot.IsPunctOrOp() || StringLit.IsPunctOrOp() {
		t.Fatal("IsPunctOrOp misclassifies")
	}
}

func TestCommentValue(t *testing.T) {
	tests := []struct {
		tr   Trivia
		want string
	}{
		{Trivia{Kind: TriviaLineComment, Text: "-- note"}, " note"},
		{Trivia{Kind: TriviaBlockComment, Text: "--[[ a\nb ]]"}, " a\nb "},
		{Trivia{Kind: TriviaBlockComment, Text: "--[==[x]==]"}, "x"},
	}
	for _, tt := range tests {
		if got := tt.tr.CommentValue(); got != tt.want {
			t.Errorf("CommentValue(%q) = %q, want %q", tt.tr.Text, got, tt.want)
		}
	}
}

func TestLongBracketLevel(t *testing.T) {
	cases := map[string]int{"[[": 0, "[==[x": 2, "[=x": -1, "x": -1, "[": -1}
	for s, want := range cases {
		if got := LongBracketLevel(s); got != want {
			t.Errorf("LongBracketLevel(%q) = %d, want %d", s, got, want)
		}
	}
}
