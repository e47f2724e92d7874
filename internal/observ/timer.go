package observ

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// Phase accumulates the time spent in one named formatting phase across
// every file of a run.
type Phase struct {
	Name  string
	Count int
	Dur   time.Duration
	Max   time.Duration
}

// Timer collects phase durations. It is safe for concurrent use; a nil
// *Timer records nothing.
type Timer struct {
	mu     sync.Mutex
	start  time.Time
	order  []string
	phases map[string]*Phase
}

// NewTimer creates a new empty Timer whose wall clock starts now.
func NewTimer() *Timer {
	return &Timer{start: time.Now(), phases: make(map[string]*Phase, 8)}
}

// Track starts timing name and returns the function that stops it.
func (t *Timer) Track(name string) func() {
	if t == nil {
		return func() {}
	}
	began := time.Now()
	return func() { t.Add(name, time.Since(began)) }
}

// Add records one run of phase name that took d.
func (t *Timer) Add(name string, d time.Duration) {
	if t == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	p, ok := t.phases[name]
	if !ok {
		p = &Phase{Name: name}
		t.phases[name] = p
		t.order = append(t.order, name)
	}
	p.Count++
	p.Dur += d
	p.Max = max(p.Max, d)
}

// PhaseReport представляет сжатую информацию о фазе таймера для сериализации.
type PhaseReport struct {
	Name       string  `json:"name"`
	Count      int     `json:"count"`
	DurationMS float64 `json:"duration_ms"`
	MaxMS      float64 `json:"max_ms"`
}

// Report описывает агрегированные данные таймера.
type Report struct {
	WallMS float64       `json:"wall_ms"`
	Phases []PhaseReport `json:"phases"`
}

// Report returns the phases in the order they were first seen.
func (t *Timer) Report() Report {
	if t == nil {
		return Report{}
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	report := Report{
		WallMS: durationToMillis(time.Since(t.start)),
		Phases: make([]PhaseReport, 0, len(t.order)),
	}
	for _, name := range t.order {
		p := t.phases[name]
		report.Phases = append(report.Phases, PhaseReport{
			Name:       p.Name,
			Count:      p.Count,
			DurationMS: durationToMillis(p.Dur),
			MaxMS:      durationToMillis(p.Max),
		})
	}
	return report
}

// Summary returns a human-readable table of all tracked phases. Phase times
// are summed over files and may exceed the wall time of a parallel run.
func (t *Timer) Summary() string {
	report := t.Report()
	var sb strings.Builder
	sb.WriteString("timings:\n")
	for _, p := range report.Phases {
		fmt.Fprintf(&sb, "  %-12s %9.2f ms  x%-5d max %7.2f ms\n", p.Name, p.DurationMS, p.Count, p.MaxMS)
	}
	fmt.Fprintf(&sb, "  %-12s %9.2f ms\n", "wall", report.WallMS)
	return sb.String()
}

func durationToMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
