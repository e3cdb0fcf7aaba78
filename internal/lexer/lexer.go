package lexer

import (
	"akuru/internal/diag"
	"akuru/internal/source"
	"akuru/internal/token"
)

// Lexer is a pull-based scanner over one Source. Each call to Next produces
// exactly one token; malformed input is reported to the owned bag and never
// stops the scan.
type Lexer struct {
	src    *source.Source
	cursor Cursor
	start  Mark // начало текущего токена
	opts   Options
	bag    *diag.Bag
}

func New(src *source.Source, opts Options) *Lexer {
	return &Lexer{
		src:    src,
		cursor: NewCursor(src),
		opts:   opts,
		bag:    diag.NewBag(opts.MaxDiagnostics),
	}
}

// Next возвращает следующий значимый токен.
// После EOF всегда возвращает EOF.
func (lx *Lexer) Next() token.Token {
	for {
		lx.skipWhitespace()
		lx.start = lx.cursor.Mark()

		if lx.cursor.EOF() {
			return lx.emit(token.EOF)
		}

		// ok == false: комментарий или ошибка, символы уже потреблены
		if kind, ok := lx.scan(); ok {
			return lx.emit(kind)
		}
	}
}

func (lx *Lexer) scan() (token.Kind, bool) {
	ch := lx.cursor.Peek()
	switch {
	case isIdentStartByte(ch):
		return lx.scanIdentOrKeyword(), true
	case isDec(ch):
		return lx.scanNumber()
	case ch == '.' && lx.isNumberAfterDot():
		return lx.scanNumber()
	case ch == '\'':
		return lx.scanChar(), true
	case ch == '"':
		return lx.scanString(), true
	default:
		return lx.scanOperatorOrPunct()
	}
}

// Pos returns the number of bytes consumed so far.
func (lx *Lexer) Pos() uint32 {
	return lx.cursor.Off
}

// Bag returns the diagnostics collected so far. The lexer keeps ownership
// until the run is finished.
func (lx *Lexer) Bag() *diag.Bag {
	return lx.bag
}

// Source returns the file being scanned.
func (lx *Lexer) Source() *source.Source {
	return lx.src
}

func (lx *Lexer) emit(k token.Kind) token.Token {
	sp := lx.cursor.SpanFrom(lx.start)
	tok := token.Token{
		Kind: k,
		Span: sp,
		Text: string(lx.src.Content[sp.Start:sp.End]),
	}
	if k == token.Ident && lx.opts.Interner != nil {
		tok.Sym = lx.opts.Interner.Intern(tok.Text)
	}
	return tok
}

// Tokenize runs a fresh lexer over src until EOF. The returned slice always
// ends with the EOF token.
func Tokenize(src *source.Source, opts Options) ([]token.Token, *diag.Bag) {
	lx := New(src, opts)
	tokens := make([]token.Token, 0, len(src.Content)/4+1)
	for {
		tok := lx.Next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			return tokens, lx.Bag()
		}
	}
}
