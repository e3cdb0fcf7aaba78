package diagfmt

import (
	"encoding/json"
	"io"

	"akuru/internal/diag"
	"akuru/internal/source"
)

// LocationJSON представляет местоположение в файле для JSON
type LocationJSON struct {
	File      string `json:"file"`
	StartByte uint32 `json:"start_byte"`
	EndByte   uint32 `json:"end_byte"`
	StartLine uint32 `json:"start_line,omitempty"`
	StartCol  uint32 `json:"start_col,omitempty"`
	EndLine   uint32 `json:"end_line,omitempty"`
	EndCol    uint32 `json:"end_col,omitempty"`
}

// LabelJSON представляет метку диагностики для JSON
type LabelJSON struct {
	Style    string       `json:"style"`
	Message  string       `json:"message,omitempty"`
	Location LocationJSON `json:"location"`
}

// DiagnosticJSON представляет диагностику в JSON формате
type DiagnosticJSON struct {
	Kind     string        `json:"kind"`
	Code     string        `json:"code"`
	Message  string        `json:"message"`
	Location *LocationJSON `json:"location,omitempty"`
	Labels   []LabelJSON   `json:"labels,omitempty"`
}

// DiagnosticsOutput представляет корневую структуру JSON вывода
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
}

// makeLocation создаёт LocationJSON из Span
func makeLocation(span source.Span, sm *source.SourceMap, pathMode PathMode, includePositions bool) LocationJSON {
	f := sm.Get(span.File)

	loc := LocationJSON{
		File:      formatPath(f, pathMode, sm.BaseDir()),
		StartByte: span.Start,
		EndByte:   span.End,
	}

	if includePositions {
		startPos := f.ResolvePosition(span).Start()
		endPos := f.ResolvePosition(source.Span{File: span.File, Start: span.End, End: span.End}).Start()
		loc.StartLine = startPos.Line
		loc.StartCol = startPos.Col
		loc.EndLine = endPos.Line
		loc.EndCol = endPos.Col
	}

	return loc
}

// BuildDiagnosticsOutput формирует структуру JSON-вывода без сериализации.
func BuildDiagnosticsOutput(bag *diag.Bag, sm *source.SourceMap, opts JSONOpts) DiagnosticsOutput {
	items := bag.Items()
	maxItems := len(items)
	if opts.Max > 0 && opts.Max < maxItems {
		maxItems = opts.Max
	}

	diagnostics := make([]DiagnosticJSON, 0, maxItems)
	for i := range maxItems {
		d := &items[i]

		diagJSON := DiagnosticJSON{
			Kind:    d.Kind.String(),
			Code:    d.Code.ID(),
			Message: d.Message,
		}
		if primary, ok := d.PrimarySpan(); ok {
			loc := makeLocation(primary, sm, opts.PathMode, opts.IncludePositions)
			diagJSON.Location = &loc
		}

		if len(d.Labels) > 0 {
			diagJSON.Labels = make([]LabelJSON, len(d.Labels))
			for j, l := range d.Labels {
				diagJSON.Labels[j] = LabelJSON{
					Style:    l.Style.String(),
					Message:  l.Message.Render(sm.Get(l.Span.File).Text(l.Span)),
					Location: makeLocation(l.Span, sm, opts.PathMode, opts.IncludePositions),
				}
			}
		}

		diagnostics = append(diagnostics, diagJSON)
	}

	return DiagnosticsOutput{
		Diagnostics: diagnostics,
		Count:       len(diagnostics),
	}
}

// JSON форматирует диагностики в JSON формат.
func JSON(w io.Writer, bag *diag.Bag, sm *source.SourceMap, opts JSONOpts) error {
	output := BuildDiagnosticsOutput(bag, sm, opts)

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
