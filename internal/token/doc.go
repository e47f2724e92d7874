// Package token defines Lua token kinds and trivia.
// Invariants:
//   - Token.Text is a slice of the original source (no copies).
//   - Token.Span matches Text exactly.
//   - Whitespace, newlines and comments never appear in the token stream;
//     they are attached to the following token as Leading trivia. Trivia
//     before EOF is attached to the EOF token.
package token
