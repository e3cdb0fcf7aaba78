package token

import (
	"testing"
)

func TestLookupKeyword_Positive(t *testing.T) {
	cases := map[string]Kind{
		"fn":      KwFn,
		"let":     KwLet,
		"return":  KwReturn,
		"loop":    KwLoop,
		"match":   KwMatch,
		"define":  KwDefine,
		"section": KwSection,
		"script":  KwScript,
		"true":    KwTrue,
		"false":   KwFalse,
	}

	for lexeme, want := range cases {
		got, ok := LookupKeyword(lexeme)
		if !ok {
			t.Fatalf("LookupKeyword(%q) = !ok, want %v", lexeme, want)
		}
		if got != want {
			t.Fatalf("LookupKeyword(%q) = %v, want %v", lexeme, got, want)
		}
	}
}

func TestLookupKeyword_Negative(t *testing.T) {
	// Заведомо НЕ ключевые слова
	notKw := []string{
		"Fn", "LET", "Script", // регистр важен
		"f32", "i64", "string", // имена типов: Ident
		"identifier", "iff", "",
	}
	for _, s := range notKw {
		if _, ok := LookupKeyword(s); ok {
			t.Fatalf("LookupKeyword(%q) returned ok=true, want false", s)
		}
	}
}

func TestKeywordTableMatchesKinds(t *testing.T) {
	for lexeme, k := range keywords {
		if !k.IsKeyword() {
			t.Fatalf("%q maps to non-keyword kind %v", lexeme, k)
		}
		if k.String() != lexeme {
			t.Fatalf("%v prints as %q, want %q", k, k.String(), lexeme)
		}
	}
	if got, want := len(keywords), int(KwScript-KwIf)+1; got != want {
		t.Fatalf("keyword table has %d entries, want %d", got, want)
	}
}

func TestUnescape(t *testing.T) {
	valid := map[byte]byte{
		'n': '\n', 'r': '\r', 't': '\t', 'v': '\v',
		'b': '\b', 'a': '\a', '0': 0,
		'\\': '\\', '\'': '\'', '"': '"',
	}
	for in, want := range valid {
		got, ok := Unescape(in)
		if !ok || got != want {
			t.Errorf("Unescape(%q) = %q, %v; want %q", in, got, ok, want)
		}
	}
	for _, in := range []byte{'x', 'q', '1', 'N'} {
		if _, ok := Unescape(in); ok {
			t.Errorf("Unescape(%q) must fail", in)
		}
	}
}
