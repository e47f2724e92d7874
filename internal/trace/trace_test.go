package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestLevelFiltering(t *testing.T) {
	tests := []struct {
		level Level
		scope Scope
		want  bool
	}{
		{LevelOff, ScopeRun, false},
		{LevelPhase, ScopeFile, true},
		{LevelPhase, ScopeStage, false},
		{LevelDetail, ScopeStage, true},
		{LevelDetail, ScopeInternal, false},
		{LevelError, ScopeStage, true},
		{LevelDebug, ScopeInternal, true},
	}
	for _, tt := range tests {
		if got := tt.level.ShouldEmit(tt.scope); got != tt.want {
			t.Errorf("%s.ShouldEmit(%s) = %v, want %v", tt.level, tt.scope, got, tt.want)
		}
	}
}

func TestParse(t *testing.T) {
	if l, err := ParseLevel("DETAIL"); err != nil || l != LevelDetail {
		t.Errorf("ParseLevel = %v, %v", l, err)
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Error("ParseLevel accepted an unknown level")
	}
	if m, err := ParseMode("both"); err != nil || m != ModeBoth {
		t.Errorf("ParseMode = %v, %v", m, err)
	}
	if f, err := ParseFormat("json"); err != nil || f != FormatNDJSON {
		t.Errorf("ParseFormat = %v, %v", f, err)
	}
}

func TestStreamSpans(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDetail, FormatText)
	ctx := WithTracer(context.Background(), tr)

	ctx, file := StartFile(ctx, "a.lua")
	_, stage := Start(ctx, ScopeStage, "parse")
	stage.WithExtra("nodes", "12").End("")
	Point(ctx, ScopeInternal, "cache", "miss")
	file.End("changed")

	out := buf.String()
	for _, want := range []string{"\u2192 file <a.lua>", "\u2192 parse <a.lua>", "<a.lua> {nodes=12}", "\u2190 file (changed)"} {
		if !strings.Contains(out, want) {
			t.Errorf("output lacks %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "cache") {
		t.Errorf("internal event leaked at detail level:\n%s", out)
	}
}

func TestStartFileBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDebug, FormatNDJSON)
	ctx := WithTracer(context.Background(), NewMultiTracer(LevelDebug, tr))
	ctx, run := Start(ctx, ScopeRun, "fmt")
	ctx, file := StartFile(ctx, "b.lua")
	Point(ctx, ScopeInternal, "cache", "hit")
	file.End("")
	run.End("")

	var ev struct {
		Kind     string `json:"kind"`
		File     string `json:"file"`
		ParentID uint64 `json:"parent_id"`
		Micros   int64  `json:"elapsed_us"`
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 5 {
		t.Fatalf("got %d events, want 5:\n%s", len(lines), buf.String())
	}
	if err := json.Unmarshal([]byte(lines[2]), &ev); err != nil {
		t.Fatal(err)
	}
	if ev.Kind != "point" || ev.File != "b.lua" || ev.ParentID != file.ID() {
		t.Fatalf("point = %+v, file span %d", ev, file.ID())
	}

	// уровень phase отбрасывает стадии, но файл всё равно помечается
	buf.Reset()
	ctx = WithTracer(context.Background(), NewStreamTracer(&buf, LevelPhase, FormatNDJSON))
	ctx, _ = StartFile(ctx, "c.lua")
	if got := CurrentSpan(ctx).File; got != "c.lua" {
		t.Fatalf("file = %q", got)
	}
}

func TestNDJSONParent(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDebug, FormatNDJSON)
	ctx := WithTracer(context.Background(), tr)
	ctx, parent := Start(ctx, ScopeRun, "run")
	_, child := Start(ctx, ScopeFile, "file")
	child.End("")
	parent.End("")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d events, want 4", len(lines))
	}
	var ev struct {
		Kind     string `json:"kind"`
		Name     string `json:"name"`
		ParentID uint64 `json:"parent_id"`
	}
	if err := json.Unmarshal([]byte(lines[1]), &ev); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if ev.Name != "file" || ev.Kind != "begin" || ev.ParentID != parent.ID() {
		t.Fatalf("child event = %+v, parent id %d", ev, parent.ID())
	}
}

func TestRingWraps(t *testing.T) {
	r := NewRingTracer(3, LevelDebug)
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		r.Emit(&Event{Kind: KindPoint, Scope: ScopeFile, Name: name})
	}
	snap := r.Snapshot()
	var names []string
	for _, ev := range snap {
		names = append(names, ev.Name)
	}
	if got := strings.Join(names, ","); got != "c,d,e" {
		t.Fatalf("snapshot = %s, want c,d,e", got)
	}
	var buf bytes.Buffer
	if err := r.Dump(&buf, FormatText); err != nil {
		t.Fatal(err)
	}
	if strings.Count(buf.String(), "\n") != 3 {
		t.Fatalf("dump:\n%s", buf.String())
	}
}

func TestNewAndRingOf(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	if err != nil || tr.Enabled() {
		t.Fatalf("off tracer: %v, enabled=%v", err, tr.Enabled())
	}
	var buf bytes.Buffer
	tr, err = New(Config{Level: LevelPhase, Mode: ModeBoth, Output: &buf})
	if err != nil {
		t.Fatal(err)
	}
	if RingOf(tr) == nil {
		t.Fatal("both mode should keep a ring")
	}
	Begin(tr, ScopeRun, "run", SpanContext{}).End("")
	if len(RingOf(tr).Snapshot()) != 2 || buf.Len() == 0 {
		t.Fatalf("events not fanned out: ring=%d stream=%q", len(RingOf(tr).Snapshot()), buf.String())
	}
}

func TestFromContextDefaults(t *testing.T) {
	if FromContext(context.Background()) != Nop {
		t.Fatal("missing tracer should be Nop")
	}
	span := Begin(Nop, ScopeRun, "x", SpanContext{})
	if span.ID() != 0 || span.End("") != 0 {
		t.Fatal("nop span should be inert")
	}
}

func TestRingDumpFiles(t *testing.T) {
	r := NewRingTracer(8, LevelDebug)
	r.Emit(&Event{Kind: KindSpanBegin, Scope: ScopeRun, Name: "fmt"})
	r.Emit(&Event{Kind: KindSpanBegin, Scope: ScopeFile, Name: "file", File: "ok.lua"})
	r.Emit(&Event{Kind: KindSpanBegin, Scope: ScopeFile, Name: "file", File: "bad.lua"})

	var buf bytes.Buffer
	if err := r.Dump(&buf, FormatText, "bad.lua"); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "fmt") || !strings.Contains(out, "<bad.lua>") || strings.Contains(out, "ok.lua") {
		t.Fatalf("dump:\n%s", out)
	}
}
