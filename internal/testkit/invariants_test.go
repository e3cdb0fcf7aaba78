package testkit

import (
	"strings"
	"testing"

	"akuru/internal/diag"
	"akuru/internal/lexer"
	"akuru/internal/source"
	"akuru/internal/token"
)

func TestCheckTokenInvariantsAcceptsLexerOutput(t *testing.T) {
	sm := source.NewSourceMap()
	src := sm.Get(sm.AddVirtual("ok.ak", []byte("let s = \"a\\n\"; // hi\nx..=9 @")))
	toks, bag := lexer.Tokenize(src, lexer.Options{})
	if err := CheckTokenInvariants(toks, src); err != nil {
		t.Fatal(err)
	}
	if err := CheckDiagnosticInvariants(bag, src); err != nil {
		t.Fatal(err)
	}
}

func TestCheckTokenInvariantsRejects(t *testing.T) {
	sm := source.NewSourceMap()
	src := sm.Get(sm.AddVirtual("bad.ak", []byte("ab")))
	sp := func(lo, hi uint32) source.Span { return source.Span{File: src.ID, Start: lo, End: hi} }
	eof := token.Token{Kind: token.EOF, Span: sp(2, 2)}

	tests := []struct {
		name string
		toks []token.Token
		want string
	}{
		{"empty", nil, "empty token stream"},
		{"no eof", []token.Token{{Kind: token.Ident, Span: sp(0, 2), Text: "ab"}}, "want EOF"},
		{"bad text", []token.Token{{Kind: token.Ident, Span: sp(0, 2), Text: "xy"}, eof}, "source has"},
		{"overlap", []token.Token{
			{Kind: token.Ident, Span: sp(0, 2), Text: "ab"},
			{Kind: token.Ident, Span: sp(1, 2), Text: "b"},
			eof,
		}, "overlaps"},
		{"empty span", []token.Token{{Kind: token.Dot, Span: sp(1, 1)}, eof}, "empty span"},
		{"eof misplaced", []token.Token{{Kind: token.EOF, Span: sp(1, 1)}}, "EOF span"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckTokenInvariants(tt.toks, src)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestCheckDiagnosticInvariantsRejectsOutOfBounds(t *testing.T) {
	sm := source.NewSourceMap()
	src := sm.Get(sm.AddVirtual("d.ak", []byte("@@")))
	bag := diag.NewBag(0)
	bag.Push(diag.Error("x").WithLabel(diag.Primary(source.Span{File: src.ID, Start: 1, End: 5}, diag.LabelMessage{})))
	if err := CheckDiagnosticInvariants(bag, src); err == nil {
		t.Fatal("expected out-of-bounds label to be rejected")
	}
}
