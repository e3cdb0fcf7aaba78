package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
		ok   bool
	}{
		{"off", LevelOff, true},
		{"PHASE", LevelPhase, true},
		{"detail", LevelDetail, true},
		{"debug", LevelDebug, true},
		{"loud", LevelOff, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if (err == nil) != tt.ok || got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, %v", tt.in, got, err)
			}
		})
	}
}

func TestShouldEmit(t *testing.T) {
	if LevelPhase.ShouldEmit(ScopeFile) {
		t.Error("phase level must skip file events")
	}
	if !LevelPhase.ShouldEmit(ScopePass) || !LevelDetail.ShouldEmit(ScopeFile) {
		t.Error("expected pass events at phase level and file events at detail level")
	}
	if LevelOff.ShouldEmit(ScopeDriver) || LevelError.ShouldEmit(ScopeDriver) {
		t.Error("off and error levels emit nothing through spans")
	}
}

func TestStreamTracerText(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelPhase, FormatText)

	root := Begin(tr, ScopeDriver, "tokenize_dir", 0)
	pass := Begin(tr, ScopePass, "lex", root.ID())
	file := Begin(tr, ScopeFile, "lex", pass.ID()) // отфильтруется
	file.End("")
	pass.WithExtra("files", "3").WithExtra("cached", "1").End("")
	root.End("ok")

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 events, got %d:\n%s", len(lines), buf.String())
	}
	if !strings.Contains(lines[0], "→ driver:tokenize_dir") {
		t.Errorf("unexpected begin line %q", lines[0])
	}
	if !strings.Contains(lines[1], "  → pass:lex") {
		t.Errorf("pass events must be indented: %q", lines[1])
	}
	if !strings.Contains(lines[2], "← pass:lex {cached=1, files=3}") {
		t.Errorf("extras must be sorted: %q", lines[2])
	}
	if !strings.Contains(lines[3], "← driver:tokenize_dir (ok)") || !strings.HasSuffix(lines[3], "ms") {
		t.Errorf("unexpected end line %q", lines[3])
	}
}

func TestStreamTracerNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDebug, FormatNDJSON)

	sp := Begin(tr, ScopeFile, "cache_get", 0)
	Point(tr, ScopeFile, "cache_put", sp.ID(), "disk full")
	sp.End("miss")

	dec := json.NewDecoder(&buf)
	var kinds []string
	for dec.More() {
		var ev map[string]any
		if err := dec.Decode(&ev); err != nil {
			t.Fatalf("invalid ndjson: %v", err)
		}
		kinds = append(kinds, ev["kind"].(string))
		if ev["scope"] != "file" {
			t.Errorf("unexpected scope %v", ev["scope"])
		}
	}
	want := []string{"begin", "point", "end"}
	if strings.Join(kinds, ",") != strings.Join(want, ",") {
		t.Errorf("kinds = %v, want %v", kinds, want)
	}
}

func TestNewOffIsNop(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	if err != nil {
		t.Fatal(err)
	}
	if tr.Enabled() {
		t.Error("off tracer must be disabled")
	}
	sp := Begin(tr, ScopeDriver, "x", 0)
	if sp.ID() != 0 || sp.End("") != 0 {
		t.Error("spans of a disabled tracer are inert")
	}
}

func TestNewAutoFormat(t *testing.T) {
	var buf bytes.Buffer
	tr, err := New(Config{Level: LevelPhase, Output: &buf, OutputPath: "run.ndjson", AutoFormat: true})
	if err != nil {
		t.Fatal(err)
	}
	Begin(tr, ScopeDriver, "x", 0).End("")
	if !strings.HasPrefix(buf.String(), "{") {
		t.Errorf("expected ndjson, got %q", buf.String())
	}
}

func TestContext(t *testing.T) {
	if FromContext(context.Background()) != Nop {
		t.Error("empty context must yield Nop")
	}
	tr := NewStreamTracer(&bytes.Buffer{}, LevelPhase, FormatText)
	ctx := WithTracer(context.Background(), tr)
	if FromContext(ctx) != tr {
		t.Error("tracer lost in context")
	}
}

func TestParseFormat(t *testing.T) {
	if f, err := ParseFormat("ndjson"); err != nil || f != FormatNDJSON {
		t.Errorf("ParseFormat(ndjson) = %v, %v", f, err)
	}
	if _, err := ParseFormat("chrome"); err == nil {
		t.Error("expected error")
	}
}
