package main

import (
	"fmt"
	"io"

	"luapretty/internal/observ"
)

// printTimings writes the phase table collected during the run. Nothing is
// printed when no phase was tracked.
func printTimings(out io.Writer, timer *observ.Timer) {
	if out == nil || len(timer.Report().Phases) == 0 {
		return
	}
	if _, err := fmt.Fprint(out, timer.Summary()); err != nil {
		panic(err)
	}
}
