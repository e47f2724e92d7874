package trace

import (
	"io"
	"slices"
	"sync"
)

// DefaultRingSize is the ring capacity used when none is configured.
const DefaultRingSize = 4096

// RingTracer keeps the last N events in memory so that a failed run can
// show what led up to the failure.
type RingTracer struct {
	mu     sync.Mutex
	events []Event // len grows up to cap, then next wraps
	next   int
	level  Level
}

// NewRingTracer creates a RingTracer holding up to capacity events.
func NewRingTracer(capacity int, level Level) *RingTracer {
	if capacity <= 0 {
		capacity = DefaultRingSize
	}
	return &RingTracer{events: make([]Event, 0, capacity), level: level}
}

// Emit stores a copy of ev, overwriting the oldest event when full.
func (t *RingTracer) Emit(ev *Event) {
	if !t.level.ShouldEmit(ev.Scope) {
		return
	}
	stored := *ev
	if stored.Seq == 0 {
		stored.Seq = NextSeq()
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.events) < cap(t.events) {
		t.events = append(t.events, stored)
		return
	}
	t.events[t.next] = stored
	t.next = (t.next + 1) % len(t.events)
}

// Snapshot returns the stored events, oldest first.
func (t *RingTracer) Snapshot() []Event {
	t.mu.Lock()
	defer t.mu.Unlock()
	return slices.Concat(t.events[t.next:], t.events[:t.next])
}

// Dump writes the stored events to w, oldest first. A non-empty files
// list keeps only run-level events and events of those files.
func (t *RingTracer) Dump(w io.Writer, format Format, files ...string) error {
	for _, ev := range t.Snapshot() {
		if len(files) > 0 && ev.File != "" && !slices.Contains(files, ev.File) {
			continue
		}
		if _, err := w.Write(FormatEvent(&ev, format)); err != nil {
			return err
		}
	}
	return nil
}

func (t *RingTracer) Flush() error { return nil }

func (t *RingTracer) Close() error { return nil }

func (t *RingTracer) Level() Level { return t.level }

func (t *RingTracer) Enabled() bool { return t.level > LevelOff }
