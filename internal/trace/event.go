package trace

import "time"

// Kind represents the type of trace event.
type Kind uint8

const (
	KindSpanBegin Kind = iota + 1 // span start
	KindSpanEnd                   // span end
	KindPoint                     // instant event
)

func (k Kind) String() string {
	switch k {
	case KindSpanBegin:
		return "begin"
	case KindSpanEnd:
		return "end"
	case KindPoint:
		return "point"
	default:
		return "unknown"
	}
}

// Scope indicates the granularity of the event. Lower values are coarser.
type Scope uint8

const (
	ScopeRun      Scope = iota + 1 // one CLI invocation
	ScopeFile                      // one source file
	ScopeStage                     // parse, attach, print, render, verify
	ScopeInternal                  // cache lookups and other bookkeeping
)

func (s Scope) String() string {
	switch s {
	case ScopeRun:
		return "run"
	case ScopeFile:
		return "file"
	case ScopeStage:
		return "stage"
	case ScopeInternal:
		return "internal"
	default:
		return "unknown"
	}
}

// Event represents a single trace event. Files are formatted concurrently,
// so every event below a file span names that file.
type Event struct {
	Time     time.Time         // wall-clock timestamp
	Seq      uint64            // global sequence number (monotonic)
	Kind     Kind              // event kind
	Scope    Scope             // granularity level
	SpanID   uint64            // unique span identifier
	ParentID uint64            // parent span (0 if root)
	File     string            // file being formatted, "" above file scope
	Name     string            // e.g. "fmt", "file", "parse"
	Detail   string            // optional detail message
	Elapsed  time.Duration     // span length, end events only
	Extra    map[string]string // extensible key-value pairs
}
