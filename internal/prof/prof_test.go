package prof

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSessionWritesFiles(t *testing.T) {
	dir := t.TempDir()
	cfg := Config{
		CPUPath:   filepath.Join(dir, "cpu.out"),
		MemPath:   filepath.Join(dir, "mem.out"),
		TracePath: filepath.Join(dir, "trace.out"),
	}
	if !cfg.Enabled() {
		t.Fatal("config with paths reports disabled")
	}
	s, err := Start(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Stop(); err != nil {
		t.Fatal(err)
	}
	if err := s.Stop(); err != nil {
		t.Fatalf("second Stop: %v", err)
	}
	for _, p := range []string{cfg.CPUPath, cfg.MemPath, cfg.TracePath} {
		info, err := os.Stat(p)
		if err != nil {
			t.Fatal(err)
		}
		if info.Size() == 0 {
			t.Errorf("%s is empty", filepath.Base(p))
		}
	}
}

func TestStartFailureStopsCPU(t *testing.T) {
	dir := t.TempDir()
	_, err := Start(Config{
		CPUPath:   filepath.Join(dir, "cpu.out"),
		TracePath: filepath.Join(dir, "missing", "trace.out"),
	})
	if err == nil {
		t.Fatal("trace into a missing directory started")
	}
	// the CPU profiler must be free again
	s, err := Start(Config{CPUPath: filepath.Join(dir, "cpu2.out")})
	if err != nil {
		t.Fatalf("cpu profiler left running: %v", err)
	}
	if err := s.Stop(); err != nil {
		t.Fatal(err)
	}
}

func TestDisabled(t *testing.T) {
	if (Config{}).Enabled() {
		t.Fatal("empty config enabled")
	}
	var s *Session
	if err := s.Stop(); err != nil {
		t.Fatal(err)
	}
}
