package diag

import "akuru/internal/source"

// Reporter: минимальный контракт получения диагностик от фаз.
// Реализации: *Bag, NopReporter.
type Reporter interface {
	Report(d Diagnostic)
}

// NopReporter discards everything.
type NopReporter struct{}

func (NopReporter) Report(Diagnostic) {}

// ReportBuilder accumulates diagnostic details before emitting to Reporter.
type ReportBuilder struct {
	reporter Reporter
	diag     Diagnostic
	emitted  bool
}

// NewReportBuilder constructs a builder bound to Reporter.
func NewReportBuilder(r Reporter, kind Kind, code Code, msg string) *ReportBuilder {
	return &ReportBuilder{
		reporter: r,
		diag:     Diagnostic{Kind: kind, Code: code, Message: msg},
	}
}

// ReportError is a shortcut for error diagnostics.
func ReportError(r Reporter, code Code, msg string) *ReportBuilder {
	return NewReportBuilder(r, KindError, code, msg)
}

// Primary appends a primary label.
func (b *ReportBuilder) Primary(sp source.Span, msg LabelMessage) *ReportBuilder {
	if b == nil {
		return nil
	}
	b.diag = b.diag.WithLabel(Primary(sp, msg))
	return b
}

// Secondary appends a secondary label.
func (b *ReportBuilder) Secondary(sp source.Span, msg LabelMessage) *ReportBuilder {
	if b == nil {
		return nil
	}
	b.diag = b.diag.WithLabel(Secondary(sp, msg))
	return b
}

// Emit sends diagnostic to underlying reporter exactly once.
func (b *ReportBuilder) Emit() {
	if b == nil || b.emitted {
		return
	}
	if b.reporter != nil {
		b.reporter.Report(b.diag)
	}
	b.emitted = true
}

// Diagnostic returns accumulated diagnostic without emitting.
func (b *ReportBuilder) Diagnostic() Diagnostic {
	if b == nil {
		return Diagnostic{}
	}
	return b.diag
}
