package driver

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/pmezard/go-difflib/difflib"
)

// WriteMode selects what happens to a formatted file.
type WriteMode uint8

const (
	// ModeStdout returns the formatted text for printing.
	ModeStdout WriteMode = iota
	// ModeReplace writes changed files back in place.
	ModeReplace
	// ModeDiff returns a unified diff of the changes.
	ModeDiff
	// ModeCheck only reports which files would change.
	ModeCheck
)

func (m WriteMode) String() string {
	switch m {
	case ModeStdout:
		return "stdout"
	case ModeReplace:
		return "replace"
	case ModeDiff:
		return "diff"
	case ModeCheck:
		return "check"
	}
	return fmt.Sprintf("WriteMode(%d)", uint8(m))
}

// ParseWriteMode accepts the names printed by WriteMode.String.
func ParseWriteMode(s string) (WriteMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "stdout":
		return ModeStdout, nil
	case "replace", "write":
		return ModeReplace, nil
	case "diff":
		return ModeDiff, nil
	case "check":
		return ModeCheck, nil
	}
	return 0, fmt.Errorf("unknown write mode %q (want stdout, replace, diff or check)", s)
}

// writeAtomic replaces path with data through a temporary file in the same
// directory, keeping the permissions of the original.
func writeAtomic(path string, data []byte) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	tmp, err := os.CreateTemp(dir, "."+base+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return err
	}
	if err := tmp.Chmod(mode); err != nil {
		_ = tmp.Close()
		cleanup()
		return err
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return err
	}
	return nil
}

// unifiedDiff returns the diff from orig to formatted, "" when equal.
func unifiedDiff(name string, orig, formatted []byte) (string, error) {
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(orig)),
		B:        difflib.SplitLines(string(formatted)),
		FromFile: "a/" + name,
		ToFile:   "b/" + name,
		Context:  3,
	})
}

// ColorizeDiff colours the lines of a unified diff. With colour disabled in
// fatih/color the text is returned unchanged.
func ColorizeDiff(diff string) string {
	if color.NoColor {
		return diff
	}
	var (
		add    = color.New(color.FgGreen)
		del    = color.New(color.FgRed)
		header = color.New(color.Bold)
		hunk   = color.New(color.FgCyan)
	)
	lines := strings.SplitAfter(diff, "\n")
	var sb strings.Builder
	sb.Grow(len(diff) + len(lines)*8)
	for _, line := range lines {
		if line == "" {
			continue
		}
		body, nl := strings.CutSuffix(line, "\n")
		switch {
		case strings.HasPrefix(body, "+++"), strings.HasPrefix(body, "---"):
			sb.WriteString(header.Sprint(body))
		case strings.HasPrefix(body, "@@"):
			sb.WriteString(hunk.Sprint(body))
		case strings.HasPrefix(body, "+"):
			sb.WriteString(add.Sprint(body))
		case strings.HasPrefix(body, "-"):
			sb.WriteString(del.Sprint(body))
		default:
			sb.WriteString(body)
		}
		if nl {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
