package driver

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"akuru/internal/diag"
	"akuru/internal/lexer"
	"akuru/internal/source"
)

func TestDiskCacheRoundTrip(t *testing.T) {
	cache, err := NewDiskCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	sm := source.NewSourceMap()
	id := sm.AddVirtual("c.ak", []byte("let x = @ 'ab';"))
	src := sm.Get(id)
	toks, bag := lexer.Tokenize(src, lexer.Options{})
	if bag.IsEmpty() {
		t.Fatal("setup: expected diagnostics")
	}
	if err := cache.Store(src, toks, bag, 0); err != nil {
		t.Fatalf("Store: %v", err)
	}

	// тот же текст под другим FileID и с новым интернером
	sm2 := source.NewSourceMap()
	sm2.AddVirtual("pad.ak", nil)
	id2 := sm2.AddVirtual("c.ak", []byte("let x = @ 'ab';"))
	interner := source.NewInterner()
	gotToks, gotBag, ok, err := cache.Load(sm2.Get(id2), interner, 0)
	if err != nil || !ok {
		t.Fatalf("Load = %v, %v", ok, err)
	}

	if len(gotToks) != len(toks) {
		t.Fatalf("token count %d, want %d", len(gotToks), len(toks))
	}
	for i := range toks {
		g, w := gotToks[i], toks[i]
		if g.Kind != w.Kind || g.Text != w.Text || g.Span.Start != w.Span.Start || g.Span.End != w.Span.End {
			t.Errorf("token %d: got %+v, want %+v", i, g, w)
		}
		if g.Span.File != id2 {
			t.Errorf("token %d not rebound to new file", i)
		}
	}
	if got := interner.MustLookup(gotToks[1].Sym); got != "x" {
		t.Errorf("identifier re-interned as %q", got)
	}

	want := diag.FormatShortDiagnostics(bag.Items(), sm)
	if got := diag.FormatShortDiagnostics(gotBag.Items(), sm2); got != want {
		t.Errorf("diagnostics differ:\nwant:\n%s\ngot:\n%s", want, got)
	}
}

func TestDiskCacheMiss(t *testing.T) {
	cache, err := NewDiskCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	sm := source.NewSourceMap()
	src := sm.Get(sm.AddVirtual("m.ak", []byte("x")))

	if _, _, ok, err := cache.Load(src, nil, 0); ok || err != nil {
		t.Fatalf("empty cache: ok=%v err=%v", ok, err)
	}

	toks, bag := lexer.Tokenize(src, lexer.Options{})
	if err := cache.Store(src, toks, bag, 0); err != nil {
		t.Fatal(err)
	}
	if _, _, ok, _ := cache.Load(src, nil, 5); ok {
		t.Error("a different diagnostic cap must miss")
	}
	if err := cache.DropAll(); err != nil {
		t.Fatal(err)
	}
	if _, _, ok, _ := cache.Load(src, nil, 0); ok {
		t.Error("DropAll must clear entries")
	}
}

func TestDiskCacheSchemaMismatch(t *testing.T) {
	cache, err := NewDiskCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	key := Key([32]byte{1}, 0)
	if err := cache.Put(key, &DiskPayload{}); err != nil {
		t.Fatal(err)
	}
	var out DiskPayload
	if ok, err := cache.Get(key, &out); !ok || err != nil {
		t.Fatalf("Get = %v, %v", ok, err)
	}

	// подменяем файл записью старой схемы
	p := cache.pathFor(key)
	if err := os.WriteFile(p, []byte{0x81, 0xa6, 'S', 'c', 'h', 'e', 'm', 'a', 0x00}, 0o600); err != nil {
		t.Fatal(err)
	}
	out = DiskPayload{}
	if ok, err := cache.Get(key, &out); ok || err != nil {
		t.Fatalf("old schema must miss: ok=%v err=%v", ok, err)
	}

	if err := os.WriteFile(p, []byte{0xc1}, 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := cache.Get(key, &out); err == nil {
		t.Error("corrupt entry must report an error")
	}
	if matches, _ := filepath.Glob(filepath.Join(filepath.Dir(p), "tmp-*")); len(matches) != 0 {
		t.Errorf("temp files left behind: %v", matches)
	}
}

func TestTokenizeUsesCache(t *testing.T) {
	cache, err := NewDiskCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	path := writeFile(t, t.TempDir(), "x.ak", "while i < 10 { i += 1; }")
	opts := Options{Cache: cache}

	first, err := Tokenize(context.Background(), path, opts)
	if err != nil {
		t.Fatal(err)
	}
	second, err := Tokenize(context.Background(), path, opts)
	if err != nil {
		t.Fatal(err)
	}
	if first.Cached || !second.Cached {
		t.Fatalf("cached flags: first=%v second=%v", first.Cached, second.Cached)
	}
	if len(first.Tokens) != len(second.Tokens) {
		t.Fatalf("token counts differ: %d vs %d", len(first.Tokens), len(second.Tokens))
	}
	for i := range first.Tokens {
		if first.Tokens[i].Kind != second.Tokens[i].Kind || first.Tokens[i].Span != second.Tokens[i].Span {
			t.Errorf("token %d differs: %+v vs %+v", i, first.Tokens[i], second.Tokens[i])
		}
	}
}
