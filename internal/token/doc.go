// Package token defines the lexical token kinds of the akuru language.
// Invariants:
//   - Token.Text is the exact source slice under Token.Span.
//   - Char and String literal spans include their quotes.
//   - Comments and whitespace never produce tokens.
//   - Type names (f32, i64, ...) are identifiers, not keywords.
package token
