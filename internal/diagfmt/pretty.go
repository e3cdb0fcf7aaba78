package diagfmt

import (
	"cmp"
	"fmt"
	"io"
	"slices"
	"strings"
	"unicode"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"akuru/internal/diag"
	"akuru/internal/source"
)

type palette struct {
	kinds     map[diag.Kind]*color.Color
	primary   *color.Color
	secondary *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		kinds: map[diag.Kind]*color.Color{
			diag.KindError:   color.New(color.FgRed),
			diag.KindWarning: color.New(color.FgYellow),
			diag.KindNote:    color.New(color.FgBlue),
			diag.KindHelp:    color.New(color.FgGreen),
		},
		primary:   color.New(color.FgHiRed),
		secondary: color.New(color.FgHiBlue),
	}
	all := []*color.Color{p.primary, p.secondary}
	for _, c := range p.kinds {
		all = append(all, c)
	}
	for _, c := range all {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) label(s diag.Style) *color.Color {
	if s == diag.StylePrimary {
		return p.primary
	}
	return p.secondary
}

// lineEntry is one label occurrence on one source line.
type lineEntry struct {
	label *diag.Label
	col   uint32 // 1-based, в байтах
	width uint32 // длина подчёркивания в байтах: max(1, длина спана)
}

type lineKey struct {
	file source.FileID
	line uint32
}

// Pretty форматирует диагностики в человекочитаемый вид:
//
//	error: <message>
//	   --> <path>:<line>:<col>
//	     |
//	  12 | <source line>
//	     |     ^^^ <label message>
//
// Метки группируются по (файл, строка) и выводятся по возрастанию.
func Pretty(w io.Writer, bag *diag.Bag, sm *source.SourceMap, opts PrettyOpts) {
	if bag == nil || sm == nil {
		return
	}
	pal := newPalette(opts.Color)

	items := bag.Items()
	if opts.Max > 0 && opts.Max < len(items) {
		items = items[:opts.Max]
	}
	for i := range items {
		if i > 0 {
			fmt.Fprintln(w)
		}
		prettyOne(w, &items[i], sm, opts, pal)
	}
}

func prettyOne(w io.Writer, d *diag.Diagnostic, sm *source.SourceMap, opts PrettyOpts, pal palette) {
	kindColor := pal.kinds[d.Kind]
	if kindColor == nil {
		kindColor = pal.kinds[diag.KindError]
	}
	fmt.Fprintf(w, "%s %s\n", kindColor.Sprint(d.Kind.String()+":"), d.Message)

	groups := make(map[lineKey][]lineEntry)
	for i := range d.Labels {
		l := &d.Labels[i]
		src, ok := sm.Lookup(l.Span.File)
		if !ok {
			continue
		}
		for _, e := range labelEntries(src, l) {
			key := lineKey{file: l.Span.File, line: e.line}
			groups[key] = append(groups[key], e.entry)
		}
	}

	keys := make([]lineKey, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b lineKey) int {
		if c := cmp.Compare(a.file, b.file); c != 0 {
			return c
		}
		return cmp.Compare(a.line, b.line)
	})

	for _, key := range keys {
		src := sm.Get(key.file)
		entries := groups[key]
		slices.SortStableFunc(entries, func(a, b lineEntry) int { return cmp.Compare(a.col, b.col) })

		text := src.Line(key.line)
		fmt.Fprintf(w, "   --> %s:%d:%d\n", formatPath(src, opts.PathMode, sm.BaseDir()), key.line, entries[0].col)
		fmt.Fprintln(w, "     |")
		fmt.Fprintf(w, "%4d | %s\n", key.line, strings.TrimRightFunc(text, unicode.IsSpace))

		for _, e := range entries {
			pad, width := int(e.col-1), int(e.width)
			if opts.VisualColumns {
				pad, width = visualExtent(text, e.col, e.width)
			}
			var b strings.Builder
			b.WriteString("     | ")
			b.WriteString(strings.Repeat(" ", pad))
			b.WriteString(pal.label(e.label.Style).Sprint(strings.Repeat("^", max(1, width))))
			if !e.label.Message.IsZero() {
				b.WriteByte(' ')
				b.WriteString(e.label.Message.Render(src.Text(e.label.Span)))
			}
			fmt.Fprintln(w, b.String())
		}
	}
}

type placedEntry struct {
	line  uint32
	entry lineEntry
}

// labelEntries projects a label onto the lines it touches, one entry per
// line of its Position. Every entry underlines the whole span length
// starting at that line's column.
func labelEntries(src *source.Source, l *diag.Label) []placedEntry {
	pos := src.ResolvePosition(l.Span)
	out := make([]placedEntry, 0, len(pos.Lines))
	for _, lc := range pos.Lines {
		out = append(out, placedEntry{line: lc.Line, entry: lineEntry{
			label: l,
			col:   lc.Col,
			width: max(1, l.Span.Len()),
		}})
	}
	return out
}

// visualExtent converts a byte column and width on line into display cells.
// Bytes past the end of line (a span running onto later lines) count one
// cell each.
func visualExtent(line string, col, width uint32) (pad, cells int) {
	start := min(int(col-1), len(line))
	end := min(start+int(width), len(line))
	pad = runewidth.StringWidth(line[:start])
	cells = runewidth.StringWidth(line[start:end]) + int(width) - (end - start)
	return pad, cells
}
