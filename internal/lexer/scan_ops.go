package lexer

import (
	"akuru/internal/diag"
	"akuru/internal/token"
)

// scanOperatorOrPunct разбирает пунктуацию и операторы, жадно: сначала
// удвоенная форма, затем форма с '=', затем одиночный символ.
// Возвращает false для комментария и для неизвестного символа.
func (lx *Lexer) scanOperatorOrPunct() (token.Kind, bool) {
	// pick выбирает вариант по следующему байту
	pick := func(next byte, matched, otherwise token.Kind) token.Kind {
		if lx.cursor.Eat(next) {
			return matched
		}
		return otherwise
	}

	switch ch := lx.cursor.Bump(); ch {
	case ',':
		return token.Comma, true
	case ';':
		return token.Semicolon, true
	case '?':
		return token.Question, true
	case '(':
		return token.LParen, true
	case ')':
		return token.RParen, true
	case '{':
		return token.LBrace, true
	case '}':
		return token.RBrace, true
	case '[':
		return token.LBracket, true
	case ']':
		return token.RBracket, true
	case ':':
		return pick(':', token.ColonColon, token.Colon), true
	case '.':
		if !lx.cursor.Eat('.') {
			return token.Dot, true
		}
		switch {
		case lx.cursor.Eat('.'):
			return token.DotDotDot, true
		case lx.cursor.Eat('='):
			return token.DotDotEq, true
		}
		return token.DotDot, true
	case '+':
		if lx.cursor.Eat('+') {
			return token.PlusPlus, true
		}
		return pick('=', token.PlusAssign, token.Plus), true
	case '-':
		if lx.cursor.Eat('-') {
			return token.MinusMinus, true
		}
		return pick('=', token.MinusAssign, token.Minus), true
	case '*':
		return pick('=', token.StarAssign, token.Star), true
	case '/':
		if lx.cursor.Eat('/') {
			lx.skipLineComment()
			return token.Invalid, false
		}
		return pick('=', token.SlashAssign, token.Slash), true
	case '<':
		if lx.cursor.Eat('<') {
			return pick('=', token.ShlAssign, token.Shl), true
		}
		return pick('=', token.LtEq, token.Lt), true
	case '>':
		if lx.cursor.Eat('>') {
			return pick('=', token.ShrAssign, token.Shr), true
		}
		return pick('=', token.GtEq, token.Gt), true
	case '|':
		if lx.cursor.Eat('|') {
			return token.OrOr, true
		}
		return pick('=', token.PipeAssign, token.Pipe), true
	case '&':
		if lx.cursor.Eat('&') {
			return token.AndAnd, true
		}
		return pick('=', token.AmpAssign, token.Amp), true
	case '^':
		return pick('=', token.CaretAssign, token.Caret), true
	case '=':
		return pick('=', token.EqEq, token.Assign), true
	case '!':
		return pick('=', token.BangEq, token.Bang), true
	}

	// неизвестный символ: потребляем его целиком (вся UTF-8 последовательность)
	lx.cursor.Reset(lx.start)
	lx.bumpRune()
	lx.errLex(diag.LexUnknownChar, msgSyntaxError).
		Primary(lx.cursor.SpanFrom(lx.start), diag.Quote("unexpected token '", "'")).
		Emit()
	return token.Invalid, false
}
