package pipeline

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestDisplayPaths(t *testing.T) {
	base := t.TempDir()
	files := []string{
		filepath.Join(base, "src", "a.lua"),
		filepath.Join(base, "b.lua"),
		"",
		filepath.Join(filepath.Dir(base), "outside.lua"),
	}
	got := DisplayPaths(files, base)
	want := []string{"src/a.lua", "b.lua", filepath.ToSlash(filepath.Join(filepath.Dir(base), "outside.lua"))}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("DisplayPaths (-want +got):\n%s", diff)
	}
	if got := DisplayPath("x/../y.lua", ""); got != "y.lua" {
		t.Fatalf("DisplayPath without base = %q", got)
	}
}

func TestTextSink(t *testing.T) {
	var buf bytes.Buffer
	sink := &TextSink{W: &buf}
	sink.OnEvent(Event{File: "a.lua", Stage: StageFormat, Status: StatusWorking})
	sink.OnEvent(Event{File: "a.lua", Stage: StageWrite, Status: StatusDone, Changed: true, Elapsed: time.Millisecond})
	sink.OnEvent(Event{File: "b.lua", Stage: StageWrite, Status: StatusDone})
	sink.OnEvent(Event{File: "c.lua", Stage: StageFormat, Status: StatusError, Err: errors.New("boom")})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	want := []string{"formatted a.lua (1ms)", "error     c.lua: boom"}
	if diff := cmp.Diff(want, lines); diff != "" {
		t.Fatalf("output (-want +got):\n%s", diff)
	}

	buf.Reset()
	sink.Verbose = true
	sink.OnEvent(Event{File: "b.lua", Status: StatusDone})
	sink.OnEvent(Event{File: "d.lua", Status: StatusSkipped})
	if got := buf.String(); got != "unchanged b.lua\ncached    d.lua\n" {
		t.Fatalf("verbose output = %q", got)
	}
}

func TestChannelAndFuncSink(t *testing.T) {
	ch := make(chan Event, 4)
	EmitQueued(ChannelSink{Ch: ch}, []string{"a", "b"})
	close(ch)
	var got []string
	for evt := range ch {
		got = append(got, evt.File+":"+string(evt.Status))
	}
	if diff := cmp.Diff([]string{"a:queued", "b:queued"}, got); diff != "" {
		t.Fatalf("events (-want +got):\n%s", diff)
	}

	var seen int
	Emit(FuncSink(func(Event) { seen++ }), Event{})
	Emit(nil, Event{})
	if seen != 1 {
		t.Fatalf("FuncSink saw %d events", seen)
	}
}
