package source

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestLineOffsets(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []uint32
	}{
		{"three lines", "first line\nsecond line\nthird line\n", []uint32{0, 11, 23, 34}},
		{"empty", "", []uint32{0}},
		{"no trailing newline", "a\nb", []uint32{0, 2}},
		{"blank lines", "\n\n", []uint32{0, 1, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sm := NewSourceMap()
			id := sm.AddVirtual("test.ak", []byte(tt.content))
			if got := sm.Get(id).LineOffsets; !reflect.DeepEqual(got, tt.want) {
				t.Errorf("LineOffsets = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResolvePosition(t *testing.T) {
	tests := []struct {
		name    string
		content string
		lo, hi  uint32
		want    Position
	}{
		{
			name:    "single line",
			content: "hello world\nsecond line\n",
			lo:      6, hi: 9,
			want: Single(1, 7),
		},
		{
			name:    "three lines",
			content: "line 1\nline 2\nline 3\n",
			lo:      5, hi: 18,
			want: Multi(LineCol{1, 6}, LineCol{2, 1}, LineCol{3, 5}),
		},
		{
			name:    "starts on a line boundary",
			content: "a\nb\nc\nd\n",
			lo:      2, hi: 4,
			want: Multi(LineCol{2, 1}, LineCol{3, 1}),
		},
		{
			name:    "start of file",
			content: "x",
			lo:      0, hi: 1,
			want: Single(1, 1),
		},
		{
			name:    "empty span at end of file",
			content: "ab\n",
			lo:      3, hi: 3,
			want: Single(2, 1),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sm := NewSourceMap()
			id := sm.AddVirtual("pos.ak", []byte(tt.content))
			got := sm.Resolve(NewSpan(id, tt.lo, tt.hi))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Resolve = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestSourceMap_AddAssignsSequentialIDs(t *testing.T) {
	sm := NewSourceMap()
	a := sm.AddVirtual("a.ak", []byte("a"))
	b := sm.AddVirtual("b.ak", []byte("b"))
	again := sm.AddVirtual("a.ak", []byte("a2"))

	if a != 0 || b != 1 || again != 2 {
		t.Fatalf("unexpected ids %d %d %d", a, b, again)
	}
	if sm.Len() != 3 {
		t.Fatalf("Len = %d, want 3", sm.Len())
	}
	if latest, ok := sm.GetLatest("a.ak"); !ok || latest != again {
		t.Fatalf("GetLatest = %d, %v; want %d", latest, ok, again)
	}
	if sm.Get(a).Flags&FileVirtual == 0 {
		t.Fatal("virtual file must carry FileVirtual")
	}
	if _, ok := sm.Lookup(FileID(99)); ok {
		t.Fatal("Lookup of unknown id must fail")
	}
}

func TestSourceMap_GetUnknownPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("Get must panic for an unregistered id")
		}
	}()
	NewSourceMap().Get(3)
}

func TestSourceMap_Load(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.ak")
	raw := append([]byte{0xEF, 0xBB, 0xBF}, []byte("let a = 1;\r\nlet b = 2;\r\n")...)
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		t.Fatal(err)
	}

	sm := NewSourceMap()
	id, err := sm.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	src := sm.Get(id)
	if string(src.Content) != "let a = 1;\nlet b = 2;\n" {
		t.Fatalf("content not normalized: %q", src.Content)
	}
	if src.Flags&FileHadBOM == 0 || src.Flags&FileNormalizedCRLF == 0 {
		t.Fatalf("flags = %b, want BOM and CRLF bits", src.Flags)
	}
	if got := src.Line(2); got != "let b = 2;" {
		t.Fatalf("Line(2) = %q", got)
	}
	if got := src.Line(42); got != "" {
		t.Fatalf("Line(42) = %q, want empty", got)
	}
	if got := src.Text(NewSpan(id, 4, 5)); got != "a" {
		t.Fatalf("Text = %q", got)
	}
}

func TestSourceMap_LoadMissingFile(t *testing.T) {
	sm := NewSourceMap()
	_, err := sm.Load(filepath.Join(t.TempDir(), "missing.ak"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !errors.Is(err, ErrFileNotFound) {
		t.Fatalf("expected ErrFileNotFound, got %v", err)
	}
	var le *LoadError
	if !errors.As(err, &le) {
		t.Fatalf("expected *LoadError, got %T", err)
	}
	if sm.Len() != 0 {
		t.Fatal("failed load must not register a file")
	}
}

func TestSourceMap_LoadDirectoryIsIOError(t *testing.T) {
	sm := NewSourceMap()
	_, err := sm.Load(t.TempDir())
	if !errors.Is(err, ErrIO) {
		t.Fatalf("expected ErrIO, got %v", err)
	}
}

func TestFormatPath(t *testing.T) {
	src := &Source{Path: "dir/sub/file.ak"}
	if got := src.FormatPath("basename", ""); got != "file.ak" {
		t.Errorf("basename = %q", got)
	}
	if got := src.FormatPath("auto", ""); got != "dir/sub/file.ak" {
		t.Errorf("auto = %q", got)
	}
	if got := src.FormatPath("", ""); got != "dir/sub/file.ak" {
		t.Errorf("default = %q", got)
	}
}
