package trace_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"featsync/internal/trace"
)

func TestParseLevel(t *testing.T) {
	for _, s := range []string{"off", "error", "phase", "detail", "DEBUG"} {
		if _, err := trace.ParseLevel(s); err != nil {
			t.Fatalf("ParseLevel(%q): %v", s, err)
		}
	}
	if _, err := trace.ParseLevel("loud"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestLevelFiltersScopes(t *testing.T) {
	tests := []struct {
		level trace.Level
		scope trace.Scope
		want  bool
	}{
		{trace.LevelOff, trace.ScopeCommand, false},
		{trace.LevelError, trace.ScopeCommand, false},
		{trace.LevelPhase, trace.ScopeCommand, true},
		{trace.LevelPhase, trace.ScopeStage, false},
		{trace.LevelDetail, trace.ScopeStage, true},
		{trace.LevelDetail, trace.ScopeEntry, false},
		{trace.LevelDebug, trace.ScopeEntry, true},
	}
	for _, tt := range tests {
		if got := tt.level.ShouldEmit(trace.KindPoint, tt.scope); got != tt.want {
			t.Errorf("%v.ShouldEmit(%v) = %v, want %v", tt.level, tt.scope, got, tt.want)
		}
	}
	if !trace.LevelError.ShouldEmit(trace.KindError, trace.ScopeEntry) {
		t.Errorf("errors must pass LevelError")
	}
}

func TestStreamTracerText(t *testing.T) {
	var buf bytes.Buffer
	tr := trace.NewStreamTracer(&buf, trace.LevelDetail, trace.FormatText)

	cmd := trace.Begin(tr, trace.ScopeCommand, "sync", 0)
	stage := trace.Begin(tr, trace.ScopeStage, "parse", cmd.ID())
	trace.Point(tr, trace.ScopeEntry, "shape", stage.ID(), "hidden at detail")
	stage.WithExtra("tables", "3").End("")
	cmd.Fail(errors.New("boom"))
	cmd.End("done")

	out := buf.String()
	for _, want := range []string{"→ sync", "  → parse", "← parse {tables=3}", "! sync (boom)", "← sync (done)"} {
		if !strings.Contains(out, want) {
			t.Errorf("output lacks %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "shape") {
		t.Errorf("entry point leaked at detail level:\n%s", out)
	}
}

func TestStreamTracerNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr := trace.NewStreamTracer(&buf, trace.LevelDebug, trace.FormatNDJSON)
	trace.Point(tr, trace.ScopeEntry, "shape", 7, "", "shape", "inline-table")

	var ev map[string]any
	if err := json.Unmarshal(buf.Bytes(), &ev); err != nil {
		t.Fatalf("invalid json %q: %v", buf.String(), err)
	}
	if ev["kind"] != "point" || ev["scope"] != "entry" || ev["name"] != "shape" {
		t.Fatalf("unexpected event %v", ev)
	}
	extra, _ := ev["extra"].(map[string]any)
	if extra["shape"] != "inline-table" {
		t.Fatalf("extra = %v", ev["extra"])
	}
}

func TestContextPropagation(t *testing.T) {
	if trace.FromContext(context.Background()) != trace.Nop {
		t.Fatalf("empty context should yield Nop")
	}
	tr := trace.NewStreamTracer(&bytes.Buffer{}, trace.LevelPhase, trace.FormatText)
	ctx := trace.WithTracer(context.Background(), tr)
	if trace.FromContext(ctx) != trace.Tracer(tr) {
		t.Fatalf("tracer not propagated")
	}
	span := trace.Begin(tr, trace.ScopeCommand, "members", 0)
	ctx = trace.WithSpan(ctx, span)
	if trace.SpanID(ctx) != span.ID() {
		t.Fatalf("span id not propagated")
	}
}

func TestNewOff(t *testing.T) {
	tr, err := trace.New(trace.Config{Level: trace.LevelOff})
	if err != nil || tr.Enabled() {
		t.Fatalf("off tracer: %v enabled=%v", err, tr.Enabled())
	}
	format, err := trace.ParseFormat("ndjson")
	if err != nil || format != trace.FormatNDJSON {
		t.Fatalf("ParseFormat = %v, %v", format, err)
	}
}
