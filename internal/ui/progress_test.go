package ui

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"luapretty/internal/pipeline"
)

func apply(m *progressModel, events ...pipeline.Event) {
	for _, ev := range events {
		m.applyEvent(ev)
	}
}

func TestProgressModelTracksFiles(t *testing.T) {
	m := NewProgressModel("formatting", []string{"a.lua"}, nil).(*progressModel)
	apply(m,
		pipeline.Event{File: "a.lua", Stage: pipeline.StageFormat, Status: pipeline.StatusWorking},
		pipeline.Event{File: "b.lua", Stage: pipeline.StageRead, Status: pipeline.StatusQueued},
	)
	if len(m.items) != 2 {
		t.Fatalf("items = %d, want 2", len(m.items))
	}
	if m.items[0].state != stateFormatting || m.items[1].state != stateQueued {
		t.Fatalf("states = %s, %s", m.items[0].state, m.items[1].state)
	}
	if got := m.percent(); got <= 0 || got >= 1 {
		t.Fatalf("percent = %v mid-run", got)
	}

	apply(m,
		pipeline.Event{File: "a.lua", Stage: pipeline.StageWrite, Status: pipeline.StatusDone, Changed: true},
		pipeline.Event{File: "b.lua", Stage: pipeline.StageFormat, Status: pipeline.StatusError, Err: errors.New("bad")},
	)
	if got := m.percent(); got != 1 {
		t.Fatalf("percent = %v after all files finished", got)
	}
	if m.counts[stateQueued] != 0 || m.counts[stateFormatted] != 1 || m.counts[stateFailed] != 1 {
		t.Fatalf("counts = %v", m.counts)
	}
	view := m.View()
	for _, want := range []string{"formatted", "a.lua", "error", "b.lua", "1 formatted, 0 unchanged, 0 cached, 1 errors"} {
		if !strings.Contains(view, want) {
			t.Errorf("view has no %q:\n%s", want, view)
		}
	}
}

func TestProgressModelHidesUnchangedOnLargeRuns(t *testing.T) {
	m := NewProgressModel("formatting", nil, nil).(*progressModel)
	for i := range maxRows + 5 {
		apply(m, pipeline.Event{File: fmt.Sprintf("f%02d.lua", i), Stage: pipeline.StageWrite, Status: pipeline.StatusDone})
	}
	apply(m, pipeline.Event{File: "changed.lua", Stage: pipeline.StageWrite, Status: pipeline.StatusDone, Changed: true})
	rows, hidden := m.visibleItems()
	if len(rows) != 1 || rows[0].path != "changed.lua" {
		t.Fatalf("rows = %+v", rows)
	}
	if hidden != maxRows+5 {
		t.Fatalf("hidden = %d", hidden)
	}
}

func TestStateOfIgnoresUnknownEvents(t *testing.T) {
	m := NewProgressModel("formatting", []string{"a.lua"}, nil).(*progressModel)
	if cmd := m.applyEvent(pipeline.Event{File: "a.lua", Status: pipeline.StatusWorking}); cmd != nil {
		t.Fatal("working event without a stage changed the screen")
	}
	if cmd := m.applyEvent(pipeline.Event{Stage: pipeline.StageRead, Status: pipeline.StatusWorking}); cmd != nil {
		t.Fatal("run-level event changed the screen")
	}
	if m.items[0].state != stateQueued {
		t.Fatalf("state = %s", m.items[0].state)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"short.lua", 20, "short.lua"},
		{"very/long/path/file.lua", 10, "very/lo..."},
		{"abcdef", 2, "ab"},
		{"文字文字.lua", 7, "文字..."},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.width); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}
