package lexer

import (
	"testing"

	"akuru/internal/source"
)

// newTestSource регистрирует виртуальный файл и возвращает его
func newTestSource(content string) (*source.SourceMap, *source.Source) {
	sm := source.NewSourceMap()
	id := sm.AddVirtual("test.ak", []byte(content))
	return sm, sm.Get(id)
}

// TestSequentialReading проверяет последовательное чтение: "a\nb" → a, \n, b, EOF
func TestSequentialReading(t *testing.T) {
	_, src := newTestSource("a\nb")
	cursor := NewCursor(src)

	for _, want := range []byte{'a', '\n', 'b'} {
		if cursor.EOF() {
			t.Fatalf("unexpected EOF before %q", want)
		}
		if got := cursor.Peek(); got != want {
			t.Fatalf("Peek = %q, want %q", got, want)
		}
		if got := cursor.Bump(); got != want {
			t.Fatalf("Bump = %q, want %q", got, want)
		}
	}

	if !cursor.EOF() {
		t.Error("Expected EOF at end")
	}
	if cursor.Peek() != 0 || cursor.Bump() != 0 {
		t.Error("Peek/Bump at EOF must return 0")
	}
	if cursor.Off != 3 {
		t.Errorf("Bump at EOF must not advance, Off=%d", cursor.Off)
	}
}

// TestPeek2 проверяет Peek2 на середине и конце файла
func TestPeek2(t *testing.T) {
	_, src := newTestSource("abc")
	cursor := NewCursor(src)

	if b0, b1, ok := cursor.Peek2(); !ok || b0 != 'a' || b1 != 'b' {
		t.Errorf("Peek2 at start = (%q, %q, %v)", b0, b1, ok)
	}
	cursor.Bump()
	if b0, b1, ok := cursor.Peek2(); !ok || b0 != 'b' || b1 != 'c' {
		t.Errorf("Peek2 in middle = (%q, %q, %v)", b0, b1, ok)
	}
	cursor.Bump()
	if b0, b1, ok := cursor.Peek2(); ok || b0 != 0 || b1 != 0 {
		t.Errorf("Peek2 with one byte left = (%q, %q, %v)", b0, b1, ok)
	}
}

// TestSpanFromResolve проверяет SpanFrom и позицию с многобайтовыми символами
func TestSpanFromResolve(t *testing.T) {
	// "α\nβ": α=2 байта, \n=1 байт, β=2 байта
	sm, src := newTestSource("α\nβ")
	cursor := NewCursor(src)

	mark := cursor.Mark()
	cursor.Bump()
	cursor.Bump()
	span := cursor.SpanFrom(mark)
	if span.Start != 0 || span.End != 2 {
		t.Fatalf("span = %v, want 0..2", span)
	}
	if got := sm.Resolve(span); got.IsMulti() || got.Start() != (source.LineCol{Line: 1, Col: 1}) {
		t.Errorf("Resolve(α) = %+v", got)
	}

	cursor.Bump() // '\n'
	mark2 := cursor.Mark()
	cursor.Bump()
	cursor.Bump()
	span2 := cursor.SpanFrom(mark2)
	// колонки считаются в байтах
	if got := sm.Resolve(span2); got.Start() != (source.LineCol{Line: 2, Col: 1}) {
		t.Errorf("Resolve(β) = %+v", got)
	}
}

// TestEatAndReset проверяет Eat, Mark и Reset
func TestEatAndReset(t *testing.T) {
	_, src := newTestSource("a\nb")
	cursor := NewCursor(src)

	start := cursor.Mark()
	if !cursor.Eat('a') || !cursor.Eat('\n') {
		t.Fatal("Eat must consume matching bytes")
	}
	if cursor.Eat('x') {
		t.Fatal("Eat must not consume a different byte")
	}
	if cursor.Peek() != 'b' {
		t.Fatalf("failed Eat moved the cursor: %q", cursor.Peek())
	}
	cursor.Bump()
	if cursor.Eat('b') {
		t.Fatal("Eat at EOF must fail")
	}

	cursor.Reset(start)
	if cursor.Peek() != 'a' || cursor.Off != 0 {
		t.Fatalf("Reset did not restore position, Off=%d", cursor.Off)
	}
}
