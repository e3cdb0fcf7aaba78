// Package testkit holds checks shared by lexer tests and fuzz harnesses.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"akuru/internal/diag"
	"akuru/internal/source"
	"akuru/internal/token"
)

// CheckTokenInvariants validates a complete token stream of src:
// 1) every span belongs to src and lies within its content
// 2) spans are non-empty (except EOF), ascending and non-overlapping
// 3) Text is exactly the source slice under the span
// 4) the stream ends with exactly one EOF at [len, len)
func CheckTokenInvariants(toks []token.Token, src *source.Source) error {
	if src == nil {
		return fmt.Errorf("nil source")
	}
	size, err := safecast.Conv[uint32](len(src.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	if len(toks) == 0 {
		return fmt.Errorf("empty token stream")
	}

	var prevEnd uint32
	for i, tok := range toks {
		sp := tok.Span
		if sp.File != src.ID {
			return fmt.Errorf("token %d: span points to file %d, want %d", i, sp.File, src.ID)
		}
		if sp.Start > sp.End || sp.End > size {
			return fmt.Errorf("token %d: span %v outside of content (%d bytes)", i, sp, size)
		}
		if sp.Start < prevEnd {
			return fmt.Errorf("token %d: span %v overlaps previous end %d", i, sp, prevEnd)
		}
		if got := src.Text(sp); got != tok.Text {
			return fmt.Errorf("token %d: text %q, source has %q", i, tok.Text, got)
		}

		last := i == len(toks)-1
		switch {
		case tok.Kind == token.EOF && !last:
			return fmt.Errorf("token %d: EOF before the end of the stream", i)
		case tok.Kind != token.EOF && last:
			return fmt.Errorf("stream ends with %s, want EOF", tok.Kind)
		case tok.Kind == token.EOF && (sp.Start != size || sp.End != size):
			return fmt.Errorf("EOF span %v, want [%d, %d)", sp, size, size)
		case tok.Kind != token.EOF && sp.Start == sp.End:
			return fmt.Errorf("token %d (%s): empty span", i, tok.Kind)
		case !tok.Kind.Valid():
			return fmt.Errorf("token %d: invalid kind %d", i, tok.Kind)
		}
		prevEnd = sp.End
	}
	return nil
}

// CheckDiagnosticInvariants validates a bag produced for src:
// every label lies within src and no two neighbours could still be merged.
func CheckDiagnosticInvariants(bag *diag.Bag, src *source.Source) error {
	if bag == nil {
		return fmt.Errorf("nil bag")
	}
	size, err := safecast.Conv[uint32](len(src.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	items := bag.Items()
	if limit := bag.Cap(); limit > 0 && len(items) > limit {
		return fmt.Errorf("bag holds %d diagnostics, limit is %d", len(items), limit)
	}
	for i := range items {
		d := &items[i]
		for j, l := range d.Labels {
			if l.Span.File != src.ID || l.Span.Start > l.Span.End || l.Span.End > size {
				return fmt.Errorf("diagnostic %d label %d: span %v outside of content", i, j, l.Span)
			}
		}
		if i > 0 && items[i-1].CanMerge(d) {
			return fmt.Errorf("diagnostics %d and %d should have been merged", i-1, i)
		}
	}
	return nil
}
