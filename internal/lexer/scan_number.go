package lexer

import (
	"akuru/internal/diag"
	"akuru/internal/token"
)

// scanNumber разбирает 123, 0x1F, 0b1010, 017, 1.5, .5, 1e3, 2.5E-3.
// Префикс основания входит в текст токена. После цифр любого основания
// '.' или e/E переводят литерал во Float (0b1.5, 0x1.8); у hex 'e' уже
// съедена как цифра. Точка, за которой идёт ещё одна точка, числу
// не принадлежит: 1..5 остаётся диапазоном.
// Возвращает false, если экспонента без цифр: диагностика уже записана,
// токен не выдаётся.
func (lx *Lexer) scanNumber() (token.Kind, bool) {
	// ".5": дробная часть без целой
	if lx.cursor.Peek() == '.' {
		return lx.scanFloatTail()
	}

	digit := isDec
	if lx.cursor.Bump() == '0' {
		switch b := lx.cursor.Peek(); {
		case b == 'x' || b == 'X':
			lx.cursor.Bump()
			digit = isHex
		case b == 'b' || b == 'B':
			lx.cursor.Bump()
			digit = isBin
		case isOct(b):
			// маркер основания: сама цифра, не потребляем отдельно
			digit = isOct
		}
	}
	lx.eatWhile(digit)

	switch b := lx.cursor.Peek(); {
	case b == '.':
		if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '.' && b1 == '.' {
			return token.IntLit, true
		}
		return lx.scanFloatTail()
	case b == 'e' || b == 'E':
		return lx.scanExponent()
	}
	return token.IntLit, true
}

// scanFloatTail потребляет '.', цифры дробной части и необязательную экспоненту.
func (lx *Lexer) scanFloatTail() (token.Kind, bool) {
	lx.cursor.Bump() // '.'
	lx.eatWhile(isDec)
	if b := lx.cursor.Peek(); b == 'e' || b == 'E' {
		return lx.scanExponent()
	}
	return token.FloatLit, true
}

func (lx *Lexer) scanExponent() (token.Kind, bool) {
	lx.cursor.Bump() // e/E
	if b := lx.cursor.Peek(); b == '+' || b == '-' {
		lx.cursor.Bump()
	}
	if !isDec(lx.cursor.Peek()) {
		lx.errLex(diag.LexBadNumber, msgInvalidFloat).
			Primary(lx.cursor.SpanFrom(lx.start), diag.LabelMessage{}).
			Secondary(lx.spanAt(lx.cursor.Off, 0), diag.Text(labelExpectedDigit)).
			Emit()
		return token.Invalid, false
	}
	lx.eatWhile(isDec)
	return token.FloatLit, true
}
