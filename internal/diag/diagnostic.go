package diag

import (
	"slices"

	"akuru/internal/source"
)

// Diagnostic is one reported finding with its labels.
// Code is metadata for tooling and never influences merging.
type Diagnostic struct {
	Kind    Kind
	Code    Code
	Message string
	Labels  []Label
}

func newDiagnostic(kind Kind, msg string) Diagnostic {
	return Diagnostic{Kind: kind, Message: msg}
}

// Error builds an error diagnostic without labels.
func Error(msg string) Diagnostic { return newDiagnostic(KindError, msg) }

// Warning builds a warning diagnostic without labels.
func Warning(msg string) Diagnostic { return newDiagnostic(KindWarning, msg) }

// Note builds a note diagnostic without labels.
func Note(msg string) Diagnostic { return newDiagnostic(KindNote, msg) }

// Help builds a help diagnostic without labels.
func Help(msg string) Diagnostic { return newDiagnostic(KindHelp, msg) }

// WithLabel appends a label.
func (d Diagnostic) WithLabel(l Label) Diagnostic {
	d.Labels = append(slices.Clip(d.Labels), l)
	return d
}

// WithLabels appends several labels in order.
func (d Diagnostic) WithLabels(ls ...Label) Diagnostic {
	d.Labels = append(slices.Clip(d.Labels), ls...)
	return d
}

// WithCode sets the diagnostic code.
func (d Diagnostic) WithCode(c Code) Diagnostic {
	d.Code = c
	return d
}

// PrimarySpan returns the span of the first primary label, falling back to
// the first label of any style.
func (d *Diagnostic) PrimarySpan() (source.Span, bool) {
	for _, l := range d.Labels {
		if l.Style == StylePrimary {
			return l.Span, true
		}
	}
	if len(d.Labels) > 0 {
		return d.Labels[0].Span, true
	}
	return source.Span{}, false
}

// CanMerge reports whether other may be folded into d: same kind and message,
// and the first labels share a span or touch. A side without labels merges freely.
func (d *Diagnostic) CanMerge(other *Diagnostic) bool {
	if d.Kind != other.Kind || d.Message != other.Message {
		return false
	}
	if len(d.Labels) == 0 || len(other.Labels) == 0 {
		return true
	}
	a, b := d.Labels[0].Span, other.Labels[0].Span
	return a == b || (a.File == b.File && a.Adjacent(b))
}

// Merge absorbs other's labels and re-normalizes them.
func (d *Diagnostic) Merge(other Diagnostic) {
	d.Labels = append(d.Labels, other.Labels...)
	d.normalizeLabels()
}

// normalizeLabels sorts labels by start offset, drops exact duplicates and
// fuses touching labels that share style and message.
func (d *Diagnostic) normalizeLabels() {
	slices.SortStableFunc(d.Labels, func(a, b Label) int {
		switch {
		case a.Span.Start < b.Span.Start:
			return -1
		case a.Span.Start > b.Span.Start:
			return 1
		}
		return 0
	})

	merged := d.Labels[:0]
	for _, l := range d.Labels {
		if n := len(merged); n > 0 {
			last := &merged[n-1]
			if last.Style == l.Style && last.Span == l.Span {
				continue
			}
			if last.Style == l.Style && last.Message == l.Message &&
				last.Span.File == l.Span.File && last.Span.End == l.Span.Start {
				last.Span.End = l.Span.End
				continue
			}
		}
		merged = append(merged, l)
	}
	d.Labels = merged
}
