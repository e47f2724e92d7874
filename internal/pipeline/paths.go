package pipeline

import (
	"path/filepath"
	"strings"
)

// DisplayPath shortens file for progress output: relative to baseDir when
// it lies below it, slash separated.
func DisplayPath(file, baseDir string) string {
	path := filepath.Clean(file)
	base := strings.TrimSpace(baseDir)
	if base != "" {
		if abs, err := filepath.Abs(base); err == nil {
			base = abs
		}
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
		if rel, err := filepath.Rel(base, path); err == nil && rel != "." && !strings.HasPrefix(rel, "..") {
			path = rel
		}
	}
	return filepath.ToSlash(path)
}

// DisplayPaths applies DisplayPath to every file, keeping order.
func DisplayPaths(files []string, baseDir string) []string {
	out := make([]string, 0, len(files))
	for _, file := range files {
		if file == "" {
			continue
		}
		out = append(out, DisplayPath(file, baseDir))
	}
	return out
}
