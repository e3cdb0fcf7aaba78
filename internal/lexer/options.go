package lexer

import (
	"akuru/internal/diag"
	"akuru/internal/source"
	"akuru/internal/token"
)

// Options tunes a lexing run. The zero value is ready to use.
type Options struct {
	// Interner, when set, receives the spelling of every identifier and the
	// resulting handle is stored in Token.Sym. It may be shared by lexers
	// running in parallel.
	Interner *source.Interner
	// MaxDiagnostics caps the owned bag; 0 means unlimited.
	MaxDiagnostics int
}

// Сообщения лексических диагностик.
const (
	msgSyntaxError   = "syntax error"
	msgInvalidFloat  = "invalid float literal"
	msgEmptyChar     = "char literal cannot be empty"
	msgInvalidEscape = "invalid escape sequence"

	labelEOFInLiteral  = "unexpected end of file within literal"
	labelMissingQuote  = "missing closing quote"
	labelNewline       = "newline is not allowed within literal"
	labelExpectedDigit = "expected digit"
)

func (lx *Lexer) errLex(code diag.Code, msg string) *diag.ReportBuilder {
	return diag.ReportError(lx.bag, code, msg)
}

// spanAt returns an n-byte span starting at off.
func (lx *Lexer) spanAt(off, n uint32) source.Span {
	return source.Span{File: lx.src.ID, Start: off, End: off + n}
}

// reportUnterminated records a literal that ran into EOF or lost its closing quote.
func (lx *Lexer) reportUnterminated(from Mark) {
	label := labelMissingQuote
	if lx.cursor.EOF() {
		label = labelEOFInLiteral
	}
	lx.errLex(diag.LexUnterminated, msgSyntaxError).
		Primary(lx.cursor.SpanFrom(from), diag.Text(label)).
		Emit()
}

// reportNewline records a raw newline inside a literal; the cursor must sit on it.
func (lx *Lexer) reportNewline() {
	lx.errLex(diag.LexNewlineInLiteral, msgSyntaxError).
		Primary(lx.spanAt(lx.cursor.Off, 1), diag.Text(labelNewline)).
		Emit()
}

// scanEscape validates the escape whose backslash was just consumed.
// The cursor must not sit on EOF or a newline.
func (lx *Lexer) scanEscape(backslash uint32) {
	if _, ok := token.Unescape(lx.cursor.Peek()); ok {
		lx.cursor.Bump()
		return
	}
	lx.bumpRune()
	lx.errLex(diag.LexBadEscape, msgInvalidEscape).
		Primary(source.Span{File: lx.src.ID, Start: backslash, End: lx.cursor.Off}, diag.Quote("unknown escape '", "'")).
		Emit()
}
