package source

import (
	"fmt"
	"sync"
	"testing"
)

func TestInternerBasic(t *testing.T) {
	interner := NewInterner()

	// NoStringID зарезервирован для пустой строки
	if s, ok := interner.Lookup(NoStringID); !ok || s != "" {
		t.Errorf("NoStringID должен возвращать пустую строку, получили: %q, ok=%v", s, ok)
	}

	id1 := interner.Intern("hello")
	if id1 == NoStringID {
		t.Error("Intern не должен возвращать NoStringID для непустой строки")
	}
	if id2 := interner.Intern("hello"); id1 != id2 {
		t.Errorf("одинаковые строки должны давать одинаковые ID: %d != %d", id1, id2)
	}
	if s := interner.MustLookup(id1); s != "hello" {
		t.Errorf("MustLookup вернул %q", s)
	}
	if id3 := interner.Intern("world"); id3 == id1 {
		t.Error("разные строки должны иметь разные ID")
	}
	if interner.Len() != 3 { // "", "hello", "world"
		t.Errorf("Len должен быть 3, получили: %d", interner.Len())
	}
}


func TestInternerUnknownID(t *testing.T) {
	interner := NewInterner()
	if interner.Has(StringID(42)) {
		t.Fatal("Has must be false for an unknown handle")
	}
	if _, ok := interner.Lookup(StringID(42)); ok {
		t.Fatal("Lookup must fail for an unknown handle")
	}

	defer func() {
		if r := recover(); r == nil {
			t.Error("MustLookup должен паниковать для невалидного ID")
		}
	}()
	interner.MustLookup(StringID(42))
}

func TestInternerSnapshotIsCopy(t *testing.T) {
	interner := NewInterner()
	interner.Intern("a")

	snapshot := interner.Snapshot()
	snapshot[0] = "modified"
	if s, _ := interner.Lookup(NoStringID); s != "" {
		t.Error("изменение snapshot не должно влиять на интернер")
	}
}

func TestInternerConcurrentIntern(t *testing.T) {
	interner := NewInterner()
	const workers = 32
	const words = 500

	var wg sync.WaitGroup
	wg.Add(workers)
	for range workers {
		go func() {
			defer wg.Done()
			for i := range words {
				interner.Intern(fmt.Sprintf("w%d", i))
			}
		}()
	}
	wg.Wait()

	if got, want := interner.Len(), words+1; got != want {
		t.Fatalf("expected %d strings, got %d", want, got)
	}
	seen := make(map[StringID]bool, words)
	for i := range words {
		id := interner.Intern(fmt.Sprintf("w%d", i))
		if seen[id] {
			t.Fatalf("duplicate handle %d", id)
		}
		seen[id] = true
	}
}
