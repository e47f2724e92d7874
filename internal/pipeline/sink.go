package pipeline

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

// FuncSink adapts a function.
type FuncSink func(Event)

func (f FuncSink) OnEvent(evt Event) {
	if f != nil {
		f(evt)
	}
}

// TextSink prints one line per finished file.
type TextSink struct {
	mu sync.Mutex
	W  io.Writer
	// Verbose also reports unchanged and cached files.
	Verbose bool
}

func (s *TextSink) OnEvent(evt Event) {
	if evt.File == "" || !evt.Status.Terminal() {
		return
	}
	var line string
	switch {
	case evt.Status == StatusError:
		line = fmt.Sprintf("error     %s: %v", evt.File, evt.Err)
	case evt.Changed:
		line = fmt.Sprintf("formatted %s (%s)", evt.File, evt.Elapsed.Round(time.Microsecond))
	case !s.Verbose:
		return
	case evt.Status == StatusSkipped:
		line = fmt.Sprintf("cached    %s", evt.File)
	default:
		line = fmt.Sprintf("unchanged %s", evt.File)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, _ = fmt.Fprintln(s.W, line)
}

// Emit sends evt to sink when there is one.
func Emit(sink ProgressSink, evt Event) {
	if sink != nil {
		sink.OnEvent(evt)
	}
}

// EmitQueued reports every file as queued.
func EmitQueued(sink ProgressSink, files []string) {
	if sink == nil {
		return
	}
	for _, file := range files {
		sink.OnEvent(Event{File: file, Stage: StageRead, Status: StatusQueued})
	}
}
