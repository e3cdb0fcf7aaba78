package observ

import (
	"strings"
	"testing"
	"time"
)

func TestTimer_PhasesAndTotal(t *testing.T) {
	tm := NewTimer()
	load := tm.Begin("load")
	time.Sleep(time.Millisecond)
	tm.End(load, "2 files")
	lex := tm.Begin("lex")
	tm.End(lex, "")

	// неизвестный индекс игнорируется
	tm.End(42, "ignored")
	tm.End(-1, "ignored")

	rep := tm.Report()
	if len(rep.Phases) != 2 {
		t.Fatalf("phases = %d, want 2", len(rep.Phases))
	}
	if rep.Phases[0].Name != "load" || rep.Phases[0].Note != "2 files" {
		t.Errorf("unexpected first phase: %+v", rep.Phases[0])
	}
	if rep.Phases[0].DurationMS <= 0 {
		t.Errorf("load duration must be positive, got %v", rep.Phases[0].DurationMS)
	}
	if tm.Total() < time.Millisecond {
		t.Errorf("Total() = %v, want >= 1ms", tm.Total())
	}
	if got, want := rep.TotalMS, durationToMillis(tm.Total()); got != want {
		t.Errorf("TotalMS = %v, want %v", got, want)
	}
}

func TestTimer_Summary(t *testing.T) {
	tm := NewTimer()
	tm.End(tm.Begin("lex"), "cached")

	out := tm.Summary()
	for _, want := range []string{"timings:\n", "lex", "// cached", "total"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary %q missing %q", out, want)
		}
	}
}

func TestTimer_EmptyReport(t *testing.T) {
	rep := NewTimer().Report()
	if rep.TotalMS != 0 || rep.Phases != nil {
		t.Errorf("empty timer report = %+v", rep)
	}
}
