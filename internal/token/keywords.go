package token

var keywords = map[string]Kind{
	"if":       KwIf,
	"else":     KwElse,
	"while":    KwWhile,
	"for":      KwFor,
	"loop":     KwLoop,
	"fn":       KwFn,
	"return":   KwReturn,
	"let":      KwLet,
	"const":    KwConst,
	"continue": KwContinue,
	"true":     KwTrue,
	"false":    KwFalse,
	"struct":   KwStruct,
	"enum":     KwEnum,
	"match":    KwMatch,
	"break":    KwBreak,
	"pub":      KwPub,
	"define":   KwDefine,
	"section":  KwSection,
	"script":   KwScript,
}

// LookupKeyword возвращает тип и bool если это ключевое слово.
// Ключевые слова регистрозависимые: распознаётся только точное написание.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}

// Unescape maps the letter after a backslash to the byte it denotes.
// The second result is false for letters outside the escape set.
func Unescape(c byte) (byte, bool) {
	switch c {
	case 'n':
		return '\n', true
	case 'r':
		return '\r', true
	case 't':
		return '\t', true
	case 'v':
		return '\v', true
	case 'b':
		return '\b', true
	case 'a':
		return '\a', true
	case '0':
		return 0, true
	case '\\', '\'', '"':
		return c, true
	default:
		return 0, false
	}
}
