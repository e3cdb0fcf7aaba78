package diag

import "akuru/internal/source"

// Style selects how a label is drawn.
type Style uint8

const (
	// StylePrimary points at the offending text.
	StylePrimary Style = iota
	// StyleSecondary points at related context.
	StyleSecondary
)

func (s Style) String() string {
	if s == StylePrimary {
		return "primary"
	}
	return "secondary"
}

// LabelMessage is a label text with an optional slot for the source text
// under the label's span. The zero value means "no message".
type LabelMessage struct {
	Before  string
	After   string
	Snippet bool // вставлять ли текст из исходника между Before и After
}

// Text builds a message without a snippet slot.
func Text(s string) LabelMessage {
	return LabelMessage{Before: s}
}

// Quote builds a message that splices the labelled source text between before and after.
func Quote(before, after string) LabelMessage {
	return LabelMessage{Before: before, After: after, Snippet: true}
}

// IsZero reports whether the message is absent.
func (m LabelMessage) IsZero() bool {
	return m == LabelMessage{}
}

// Render produces the final text, substituting snippet into the slot.
func (m LabelMessage) Render(snippet string) string {
	if !m.Snippet {
		return m.Before + m.After
	}
	return m.Before + snippet + m.After
}

// Label attaches a message and a style to a span.
type Label struct {
	Span    source.Span
	Message LabelMessage
	Style   Style
}

// Primary builds a primary label.
func Primary(sp source.Span, msg LabelMessage) Label {
	return Label{Span: sp, Message: msg, Style: StylePrimary}
}

// Secondary builds a secondary label.
func Secondary(sp source.Span, msg LabelMessage) Label {
	return Label{Span: sp, Message: msg, Style: StyleSecondary}
}
