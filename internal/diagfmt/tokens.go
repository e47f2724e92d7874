package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"luapretty/internal/source"
	"luapretty/internal/token"
)

type TokenOutput struct {
	Kind    string         `json:"kind"`
	Text    string         `json:"text,omitempty"`
	Span    source.Span    `json:"span"`
	Leading []TriviaOutput `json:"leading,omitempty"`
}

type TriviaOutput struct {
	Kind string `json:"kind"`
	Text string `json:"text,omitempty"`
}

// FormatTokensPretty выводит токены в человекочитаемом формате
func FormatTokensPretty(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	for i, tok := range tokens {
		startPos, endPos := fs.Resolve(tok.Span)

		// пробелы и переводы строк только шумят, комментарии показываем целиком
		var leading []string
		for _, trivia := range tok.Leading {
			if trivia.IsComment() {
				leading = append(leading, fmt.Sprintf("%s %q", trivia.Kind, trivia.Text))
			}
		}

		var sb strings.Builder
		fmt.Fprintf(&sb, "%3d: %-15s", i+1, tok.Kind.String())
		if tok.Text != "" {
			fmt.Fprintf(&sb, " %q", tok.Text)
		}
		fmt.Fprintf(&sb, " at %d:%d-%d:%d", startPos.Line, startPos.Col, endPos.Line, endPos.Col)
		if len(leading) > 0 {
			fmt.Fprintf(&sb, " (leading: %s)", strings.Join(leading, ", "))
		}
		sb.WriteByte('\n')
		if _, err := io.WriteString(w, sb.String()); err != nil {
			return err
		}

		if tok.Kind == token.EOF {
			break
		}
	}
	return nil
}

// FormatTokensJSON выводит токены в JSON формате
func FormatTokensJSON(w io.Writer, tokens []token.Token) error {
	output := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		tokenOut := TokenOutput{
			Kind: tok.Kind.String(),
			Text: tok.Text,
			Span: tok.Span,
		}
		for _, trivia := range tok.Leading {
			tr := TriviaOutput{Kind: trivia.Kind.String()}
			if trivia.IsComment() {
				tr.Text = trivia.Text
			}
			tokenOut.Leading = append(tokenOut.Leading, tr)
		}
		output = append(output, tokenOut)

		if tok.Kind == token.EOF {
			break
		}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
