package lexer

import (
	"akuru/internal/diag"
	"akuru/internal/token"
)

// scanChar разбирает 'x', '\n' и т.п. Токен CharLit выдаётся всегда,
// даже если литерал испорчен; его span включает обе кавычки.
func (lx *Lexer) scanChar() token.Kind {
	lx.cursor.Bump() // opening '\''
	// start переносится за кавычку на время разбора и возвращается в конце
	lx.start = lx.cursor.Mark()
	defer func() { lx.start-- }()

	switch lx.cursor.Peek() {
	case '\'':
		lx.cursor.Bump()
		lx.errLex(diag.LexEmptyChar, msgEmptyChar).
			Primary(lx.cursor.SpanFrom(lx.start-1), diag.LabelMessage{}).
			Emit()
		return token.CharLit
	case '\n':
		lx.reportNewline()
		return token.CharLit
	case '\\':
		backslash := lx.cursor.Off
		lx.cursor.Bump()
		switch {
		case lx.cursor.EOF():
			lx.reportUnterminated(lx.start - 1)
			return token.CharLit
		case lx.cursor.Peek() == '\n':
			lx.reportNewline()
			return token.CharLit
		}
		lx.scanEscape(backslash)
	default:
		if lx.cursor.EOF() {
			lx.reportUnterminated(lx.start - 1)
			return token.CharLit
		}
		lx.bumpRune()
	}

	if !lx.cursor.Eat('\'') {
		lx.reportUnterminated(lx.start - 1)
	}
	return token.CharLit
}

// scanString разбирает "...". Перевод строки внутри литерала: ошибка,
// после которой лексер ищет следующую '"' (или EOF), чтобы продолжить.
func (lx *Lexer) scanString() token.Kind {
	lx.cursor.Bump() // opening '"'
	for !lx.cursor.EOF() {
		switch lx.cursor.Peek() {
		case '"':
			lx.cursor.Bump()
			return token.StringLit
		case '\n':
			lx.reportNewline()
			lx.resyncString()
			return token.StringLit
		case '\\':
			backslash := lx.cursor.Off
			lx.cursor.Bump()
			if lx.cursor.EOF() || lx.cursor.Peek() == '\n' {
				continue
			}
			lx.scanEscape(backslash)
		default:
			lx.bumpRune()
		}
	}
	lx.reportUnterminated(lx.start)
	return token.StringLit
}

// resyncString пропускает всё до следующей '"' включительно.
// Если кавычки нет, литерал считается незакрытым.
func (lx *Lexer) resyncString() {
	for !lx.cursor.EOF() {
		if lx.cursor.Bump() == '"' {
			return
		}
	}
	lx.reportUnterminated(lx.start)
}
