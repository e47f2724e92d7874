package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"luapretty/internal/prof"
)

// setupProfiling inspects persistent profiling flags and enables the
// corresponding profilers. The returned cleanup stops them.
func setupProfiling(cmd *cobra.Command) (func(failed bool), error) {
	root := cmd.Root()

	cpuProfile, err := root.PersistentFlags().GetString("cpu-profile")
	if err != nil {
		return nil, fmt.Errorf("failed to get cpu-profile flag: %w", err)
	}
	memProfile, err := root.PersistentFlags().GetString("mem-profile")
	if err != nil {
		return nil, fmt.Errorf("failed to get mem-profile flag: %w", err)
	}
	tracePath, err := root.PersistentFlags().GetString("runtime-trace")
	if err != nil {
		return nil, fmt.Errorf("failed to get runtime-trace flag: %w", err)
	}

	cfg := prof.Config{CPUPath: cpuProfile, MemPath: memProfile, TracePath: tracePath}
	if !cfg.Enabled() {
		return func(bool) {}, nil
	}
	ps, err := prof.Start(cfg)
	if err != nil {
		return nil, err
	}
	return func(bool) {
		if err := ps.Stop(); err != nil {
			fmt.Fprintf(os.Stderr, "luapretty: profiling: %v\n", err)
		}
	}, nil
}
