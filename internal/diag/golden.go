package diag

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"akuru/internal/source"
)

type goldenDiagnostic struct {
	Kind    string
	Code    string
	Path    string
	Line    uint32
	Column  uint32
	Message string
}

// FormatGoldenDiagnostics renders diagnostics into a stable, single-line-per-entry
// representation suitable for golden files. Entries are sorted deterministically
// and returned as a single string (empty when nothing remains).
// With includeLabels every labelled span is listed, not just the primary one.
func FormatGoldenDiagnostics(diags []Diagnostic, sm *source.SourceMap, includeLabels bool) string {
	return formatDiagnostics(diags, sm, includeLabels, true)
}

// FormatShortDiagnostics renders one line per diagnostic in emission order,
// intended for CLI short output.
func FormatShortDiagnostics(diags []Diagnostic, sm *source.SourceMap) string {
	return formatDiagnostics(diags, sm, false, false)
}

func formatDiagnostics(diags []Diagnostic, sm *source.SourceMap, includeLabels, sorted bool) string {
	if sm == nil || len(diags) == 0 {
		return ""
	}

	rendered := make([]goldenDiagnostic, 0, len(diags))
	for i := range diags {
		rendered = appendDiagnostic(rendered, &diags[i], sm, includeLabels)
	}

	if sorted {
		sort.SliceStable(rendered, func(i, j int) bool {
			di, dj := rendered[i], rendered[j]
			if di.Path != dj.Path {
				return di.Path < dj.Path
			}
			if di.Line != dj.Line {
				return di.Line < dj.Line
			}
			if di.Column != dj.Column {
				return di.Column < dj.Column
			}
			if di.Kind != dj.Kind {
				return di.Kind < dj.Kind
			}
			if di.Code != dj.Code {
				return di.Code < dj.Code
			}
			return di.Message < dj.Message
		})
	}

	var b strings.Builder
	for i, d := range rendered {
		fmt.Fprintf(&b, "%s %s %s:%d:%d %s", d.Kind, d.Code, d.Path, d.Line, d.Column, d.Message)
		if i < len(rendered)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func appendDiagnostic(out []goldenDiagnostic, d *Diagnostic, sm *source.SourceMap, includeLabels bool) []goldenDiagnostic {
	primary, hasSpan := d.PrimarySpan()
	entry := goldenDiagnostic{
		Kind:    d.Kind.String(),
		Code:    d.Code.ID(),
		Message: sanitizeMessage(d.Message),
	}
	if hasSpan {
		if loc, ok := resolveSpan(sm, primary); ok {
			entry.Path, entry.Line, entry.Column = loc.Path, loc.Line, loc.Column
		}
	}
	out = append(out, entry)

	if !includeLabels {
		return out
	}
	for _, l := range d.Labels {
		loc, ok := resolveSpan(sm, l.Span)
		if !ok {
			continue
		}
		snippet := ""
		if src, found := sm.Lookup(l.Span.File); found {
			snippet = src.Text(l.Span)
		}
		out = append(out, goldenDiagnostic{
			Kind:    l.Style.String(),
			Code:    d.Code.ID(),
			Path:    loc.Path,
			Line:    loc.Line,
			Column:  loc.Column,
			Message: sanitizeMessage(l.Message.Render(snippet)),
		})
	}
	return out
}

type resolvedSpan struct {
	Path   string
	Line   uint32
	Column uint32
}

func resolveSpan(sm *source.SourceMap, span source.Span) (resolvedSpan, bool) {
	file, ok := sm.Lookup(span.File)
	if !ok {
		return resolvedSpan{}, false
	}
	start := file.ResolvePosition(span).Start()
	return resolvedSpan{
		Path:   normalizePath(file.FormatPath("relative", sm.BaseDir())),
		Line:   start.Line,
		Column: start.Col,
	}, true
}

func normalizePath(path string) string {
	p := filepath.ToSlash(path)
	for strings.HasPrefix(p, "./") {
		p = strings.TrimPrefix(p, "./")
	}
	return p
}

func sanitizeMessage(msg string) string {
	msg = strings.ReplaceAll(msg, "\r\n", "\n")
	msg = strings.ReplaceAll(msg, "\r", "\n")
	msg = strings.ReplaceAll(msg, "\n", " ")
	return strings.TrimSpace(msg)
}
