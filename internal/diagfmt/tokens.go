package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"akuru/internal/source"
	"akuru/internal/token"
)

// TokenOutput is the JSON view of one token.
type TokenOutput struct {
	Kind  string `json:"kind"`
	Text  string `json:"text,omitempty"`
	Start uint32 `json:"start"`
	End   uint32 `json:"end"`
	Line  uint32 `json:"line"`
	Col   uint32 `json:"col"`
}

// FormatTokensPretty выводит токены в человекочитаемом формате
func FormatTokensPretty(w io.Writer, tokens []token.Token, sm *source.SourceMap) error {
	for i, tok := range tokens {
		pos := sm.Resolve(tok.Span).Start()

		if _, err := fmt.Fprintf(w, "%3d: %-8s", i+1, tok.Kind.String()); err != nil {
			return err
		}
		if tok.Kind == token.Ident || tok.Kind.IsLiteral() {
			fmt.Fprintf(w, " %q", tok.Text)
		}
		fmt.Fprintf(w, " at %d:%d", pos.Line, pos.Col)
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}

		if tok.Kind == token.EOF {
			break
		}
	}
	return nil
}

// TokensOutput builds the JSON view of a token stream, stopping after EOF.
func TokensOutput(tokens []token.Token, sm *source.SourceMap) []TokenOutput {
	output := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		pos := sm.Resolve(tok.Span).Start()
		output = append(output, TokenOutput{
			Kind:  tok.Kind.String(),
			Text:  tok.Text,
			Start: tok.Span.Start,
			End:   tok.Span.End,
			Line:  pos.Line,
			Col:   pos.Col,
		})

		if tok.Kind == token.EOF {
			break
		}
	}
	return output
}

// FormatTokensJSON выводит токены в JSON формате
func FormatTokensJSON(w io.Writer, tokens []token.Token, sm *source.SourceMap) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(TokensOutput(tokens, sm))
}
