// Package pipeline describes the progress events the driver reports while
// formatting many files.
package pipeline

import "time"

// Stage describes one step of formatting a file.
type Stage string

const (
	// StageRead loads and decodes the file.
	StageRead Stage = "read"
	// StageFormat parses, prints and renders it.
	StageFormat Stage = "format"
	// StageWrite writes the result back or prints it.
	StageWrite Stage = "write"
)

// Status captures progress state within a stage.
type Status string

const (
	// StatusQueued indicates the file is waiting for a worker.
	StatusQueued Status = "queued"
	// StatusWorking indicates the stage is running.
	StatusWorking Status = "working"
	// StatusSkipped marks a file the cache proved formatted.
	StatusSkipped Status = "skipped"
	// StatusDone indicates the file is finished.
	StatusDone Status = "done"
	// StatusError indicates the file failed.
	StatusError Status = "error"
)

// Terminal reports whether no further events follow for the file.
func (s Status) Terminal() bool {
	return s == StatusDone || s == StatusError || s == StatusSkipped
}

// Event reports progress for a file (or for the whole run when File is empty).
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
	// Changed is set on the final event of a file whose text changed.
	Changed bool
}

// ProgressSink consumes progress events. Implementations must be safe for
// concurrent use: workers report from their own goroutines.
type ProgressSink interface {
	OnEvent(Event)
}
