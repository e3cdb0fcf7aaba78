package diag

import (
	"testing"
)

func unexpected(lo, hi uint32) Diagnostic {
	return Error("syntax error").
		WithCode(LexUnknownChar).
		WithLabel(Primary(span(lo, hi), Quote("unexpected token '", "'")))
}

func TestBagPushIdenticalTwice(t *testing.T) {
	bag := NewBag(0)
	bag.Push(Error("x").WithLabel(Primary(span(4, 5), Text("m"))))
	bag.Push(Error("x").WithLabel(Primary(span(4, 5), Text("m"))))

	if bag.Len() != 1 {
		t.Fatalf("expected 1 diagnostic, got %d", bag.Len())
	}
	if n := len(bag.Items()[0].Labels); n != 1 {
		t.Fatalf("expected 1 label, got %d", n)
	}
}

func TestBagPushCoalescesAdjacent(t *testing.T) {
	bag := NewBag(0)
	bag.Push(Error("x").WithLabel(Primary(span(4, 5), LabelMessage{})))
	bag.Push(Error("x").WithLabel(Primary(span(5, 6), LabelMessage{})))

	if bag.Len() != 1 {
		t.Fatalf("expected 1 diagnostic, got %d", bag.Len())
	}
	labels := bag.Items()[0].Labels
	if len(labels) != 1 || labels[0].Span != span(4, 6) {
		t.Fatalf("expected one label [4,6), got %+v", labels)
	}
}

func TestBagRunOfIllegalCharacters(t *testing.T) {
	bag := NewBag(0)
	for i := uint32(0); i < 5; i++ {
		bag.Push(unexpected(i, i+1))
	}
	bag.Push(unexpected(9, 10))

	if bag.Len() != 2 {
		t.Fatalf("expected 2 diagnostics, got %d", bag.Len())
	}
	if got := bag.Items()[0].Labels; len(got) != 1 || got[0].Span != span(0, 5) {
		t.Fatalf("first diagnostic labels = %+v", got)
	}
}

func TestBagOnlyMergesWithLast(t *testing.T) {
	bag := NewBag(0)
	bag.Push(Error("x").WithLabel(Primary(span(0, 1), LabelMessage{})))
	bag.Push(Error("y").WithLabel(Primary(span(1, 2), LabelMessage{})))
	bag.Push(Error("x").WithLabel(Primary(span(1, 2), LabelMessage{})))

	if bag.Len() != 3 {
		t.Fatalf("expected 3 diagnostics, got %d", bag.Len())
	}
}

func TestBagLimit(t *testing.T) {
	bag := NewBag(2)
	if !bag.Push(Error("a")) || !bag.Push(Warning("b")) {
		t.Fatal("pushes under the limit must succeed")
	}
	if bag.Push(Note("c")) {
		t.Fatal("push over the limit must be rejected")
	}
	// слияние с последним не занимает новую ячейку
	if !bag.Push(Warning("b")) {
		t.Fatal("merge into the last entry must succeed at the limit")
	}
	if bag.Len() != 2 || bag.Cap() != 2 {
		t.Fatalf("len=%d cap=%d", bag.Len(), bag.Cap())
	}
}

func TestBagQueries(t *testing.T) {
	bag := NewBag(0)
	if !bag.IsEmpty() || bag.HasErrors() || bag.HasWarnings() {
		t.Fatal("fresh bag must be empty")
	}
	bag.Push(Warning("w"))
	if bag.HasErrors() || !bag.HasWarnings() {
		t.Fatal("warning only")
	}
	bag.Push(Error("e"))
	if !bag.HasErrors() {
		t.Fatal("error expected")
	}
	bag.Clear()
	if !bag.IsEmpty() {
		t.Fatal("Clear must empty the bag")
	}
}

func TestBagAppend(t *testing.T) {
	a := NewBag(1)
	a.Push(unexpected(0, 1))
	b := NewBag(0)
	b.Push(unexpected(1, 2))
	b.Push(Warning("w"))

	a.Append(b)
	if a.Len() != 2 {
		t.Fatalf("expected 2 diagnostics after append, got %d", a.Len())
	}
	if got := a.Items()[0].Labels[0].Span; got != span(0, 2) {
		t.Fatalf("seam must coalesce, got %v", got)
	}
	a.Append(nil)
}

func TestReportBuilderEmitsOnce(t *testing.T) {
	bag := NewBag(0)
	b := ReportError(bag, LexBadNumber, "invalid float literal").
		Primary(span(0, 3), LabelMessage{}).
		Secondary(span(3, 3), Text("expected digit"))
	b.Emit()
	b.Emit()

	if bag.Len() != 1 {
		t.Fatalf("expected single emission, got %d", bag.Len())
	}
	d := bag.Items()[0]
	if d.Code != LexBadNumber || len(d.Labels) != 2 || d.Labels[1].Style != StyleSecondary {
		t.Fatalf("unexpected diagnostic %+v", d)
	}

	var nilBuilder *ReportBuilder
	nilBuilder.Primary(span(0, 1), LabelMessage{}).Emit()
	NewReportBuilder(NopReporter{}, KindWarning, UnknownCode, "ignored").Emit()
}

func TestCodeID(t *testing.T) {
	cases := map[Code]string{
		LexUnknownChar:  "LEX1001",
		LexBadEscape:    "LEX1008",
		IOLoadFileError: "IO4001",
		UnknownCode:     "E0000",
	}
	for c, want := range cases {
		if got := c.ID(); got != want {
			t.Errorf("ID() = %q, want %q", got, want)
		}
	}
	if LexBadNumber.String() != "[LEX1004]: Invalid float literal" {
		t.Errorf("String() = %q", LexBadNumber.String())
	}
	if Code(1999).Title() != "Unknown error" {
		t.Error("unknown codes fall back to the generic title")
	}
}
