package lexer

import (
	"akuru/internal/token"
)

// scanIdentOrKeyword сканирует [A-Za-z_][A-Za-z0-9_]* и проверяет через LookupKeyword.
// Ключевые слова регистрозависимые.
func (lx *Lexer) scanIdentOrKeyword() token.Kind {
	lx.cursor.Bump()
	lx.eatWhile(isIdentContinueByte)

	sp := lx.cursor.SpanFrom(lx.start)
	if k, ok := token.LookupKeyword(string(lx.src.Content[sp.Start:sp.End])); ok {
		return k
	}
	return token.Ident
}
