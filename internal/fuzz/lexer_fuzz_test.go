package fuzztests

import (
	"testing"

	"akuru/internal/lexer"
	"akuru/internal/source"
	"akuru/internal/testkit"
)

const maxFuzzInput = 1 << 16 // 64 KiB

func FuzzLexerTokens(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		if len(input) > maxFuzzInput {
			input = input[:maxFuzzInput]
		}
		input = append([]byte(nil), input...)

		sm := source.NewSourceMap()
		src := sm.Get(sm.AddVirtual("fuzz.ak", input))

		toks, bag := lexer.Tokenize(src, lexer.Options{MaxDiagnostics: 64, Interner: source.NewInterner()})
		if err := testkit.CheckTokenInvariants(toks, src); err != nil {
			t.Fatalf("token invariants: %v\ninput: %q", err, input)
		}
		if err := testkit.CheckDiagnosticInvariants(bag, src); err != nil {
			t.Fatalf("diagnostic invariants: %v\ninput: %q", err, input)
		}
	})
}
