package token

import (
	"strings"

	"luapretty/internal/source"
)

type TriviaKind uint8

const (
	TriviaSpace TriviaKind = iota
	TriviaNewline
	TriviaLineComment  // -- ...
	TriviaBlockComment // --[[ ... ]] or --[==[ ... ]==]
)

func (k TriviaKind) String() string {
	switch k {
	case TriviaSpace:
		return "space"
	case TriviaNewline:
		return "newline"
	case TriviaLineComment:
		return "line-comment"
	case TriviaBlockComment:
		return "block-comment"
	}
	return "trivia?"
}

type Trivia struct {
	Kind TriviaKind
	Span source.Span
	Text string
}

// IsComment reports whether the trivia is a line or block comment.
func (tr Trivia) IsComment() bool {
	return tr.Kind == TriviaLineComment || tr.Kind == TriviaBlockComment
}

// CommentValue returns the comment text without its "--" marker and, for
// block comments, without the long brackets.
func (tr Trivia) CommentValue() string {
	body := strings.TrimPrefix(tr.Text, "--")
	if tr.Kind != TriviaBlockComment {
		return body
	}
	level := LongBracketLevel(body)
	if level < 0 {
		return body
	}
	open := level + 2
	if len(body) < open*2 {
		return body
	}
	return body[open : len(body)-open]
}

// LongBracketLevel returns the number of '=' in an opening long bracket at the
// start of s ("[[" is 0, "[==[" is 2), or -1 if s does not start with one.
func LongBracketLevel(s string) int {
	if len(s) < 2 || s[0] != '[' {
		return -1
	}
	i := 1
	for i < len(s) && s[i] == '=' {
		i++
	}
	if i < len(s) && s[i] == '[' {
		return i - 1
	}
	return -1
}
