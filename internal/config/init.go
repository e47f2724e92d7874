package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// InitName is the file written by WriteInit.
const InitName = ".luapretty.toml"

const initTemplate = `# luapretty configuration.
# Keys left out keep their defaults.

# Maximum line width.
line_width = 120

# Spaces per indentation level, ignored when use_tabs is true.
indent_count = 4
use_tabs = false

# "double" or "single". Strings holding the preferred quote keep the other.
quotemark = "double"

# "lf", "crlf" or "auto" (keep what the file uses).
line_ending = "lf"

# "5.1", "5.2" or "5.3".
lua_version = "5.3"

# Glob patterns relative to this file, e.g. "vendor/**".
exclude = []
`

// ErrExists is returned by WriteInit when the file is already there.
var ErrExists = errors.New("config file already exists")

// WriteInit writes the default configuration into dir and returns its path.
// An existing file is only replaced when force is set.
func WriteInit(dir string, force bool) (string, error) {
	if dir == "" {
		dir = "."
	}
	path := filepath.Join(dir, InitName)
	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !force {
		flags |= os.O_EXCL
	}
	// #nosec G302 G304 -- a config file is meant to be shared
	f, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return "", fmt.Errorf("%s: %w", path, ErrExists)
		}
		return "", err
	}
	if _, err := f.WriteString(initTemplate); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("%s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("%s: %w", path, err)
	}
	return path, nil
}
