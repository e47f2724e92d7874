package diagfmt

import (
	"fmt"
	"path/filepath"
	"strings"
)

// PathMode specifies how file paths are displayed.
type PathMode uint8

const (
	// PathModeAuto prints paths below BaseDir relative to it and the rest
	// as they were given.
	PathModeAuto PathMode = iota
	// PathModeAbsolute always uses absolute paths.
	PathModeAbsolute
	PathModeRelative
	PathModeBasename
)

// ParsePathMode accepts auto, absolute, relative and basename.
func ParsePathMode(s string) (PathMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return PathModeAuto, nil
	case "absolute", "abs":
		return PathModeAbsolute, nil
	case "relative", "rel":
		return PathModeRelative, nil
	case "basename", "base":
		return PathModeBasename, nil
	}
	return 0, fmt.Errorf("unknown path mode %q", s)
}

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color bool
	// Context is the number of source lines shown around the primary line.
	Context  int8
	PathMode PathMode
	BaseDir  string
	Width    uint8 // максимальная ширина строки, 0 - не ограничено
	// ShowNotes prints the notes of each diagnostic with their locations.
	ShowNotes bool
}

// JSONOpts configures JSON output of diagnostics.
type JSONOpts struct {
	IncludePositions bool // добавить line/col
	PathMode         PathMode
	BaseDir          string
	Max              int // обрезка вывода, не Bag
	IncludeNotes     bool
}

// formatPath renders path according to mode. Virtual names such as
// "<stdin>" are never rewritten.
func formatPath(path string, mode PathMode, baseDir string) string {
	if path == "" || strings.HasPrefix(path, "<") {
		return path
	}
	switch mode {
	case PathModeAbsolute:
		if abs, err := filepath.Abs(filepath.FromSlash(path)); err == nil {
			return filepath.ToSlash(abs)
		}
	case PathModeRelative:
		if rel, ok := relativeTo(path, baseDir); ok {
			return rel
		}
	case PathModeBasename:
		return filepath.Base(filepath.FromSlash(path))
	case PathModeAuto:
		if rel, ok := relativeTo(path, baseDir); ok && !strings.HasPrefix(rel, "..") {
			return rel
		}
	}
	return path
}

func relativeTo(path, baseDir string) (string, bool) {
	if baseDir == "" {
		wd, err := filepath.Abs(".")
		if err != nil {
			return "", false
		}
		baseDir = wd
	}
	base, err := filepath.Abs(baseDir)
	if err != nil {
		return "", false
	}
	abs, err := filepath.Abs(filepath.FromSlash(path))
	if err != nil {
		return "", false
	}
	rel, err := filepath.Rel(base, abs)
	if err != nil {
		return "", false
	}
	return filepath.ToSlash(rel), true
}
