// Package config finds and decodes the project configuration file.
//
// The file is looked up from the directory of the formatted path upwards;
// the first of Names found wins. Keys missing from the file keep their
// defaults, so an empty file is valid.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"luapretty/internal/format"
	"luapretty/internal/parser"
	"luapretty/internal/printer"
)

// Names are the recognised file names, in lookup order.
var Names = []string{".luapretty.toml", "luapretty.toml", ".luapretty.yaml", ".luapretty.yml"}

// Config is a decoded configuration file.
type Config struct {
	// Path of the file, "" for the built-in defaults.
	Path string
	// Root is the directory exclude patterns are relative to.
	Root    string
	Options format.Options
	Exclude []string
}

// Default returns the configuration used when no file is found.
func Default() *Config {
	return &Config{}
}

// raw mirrors the file keys. Pointers tell a missing key from a zero one.
type raw struct {
	LineWidth   *int     `toml:"line_width" yaml:"line_width"`
	IndentCount *int     `toml:"indent_count" yaml:"indent_count"`
	UseTabs     *bool    `toml:"use_tabs" yaml:"use_tabs"`
	Quotemark   *string  `toml:"quotemark" yaml:"quotemark"`
	LineEnding  *string  `toml:"line_ending" yaml:"line_ending"`
	LuaVersion  *string  `toml:"lua_version" yaml:"lua_version"`
	Exclude     []string `toml:"exclude" yaml:"exclude"`
}

// Find walks up from startDir looking for a configuration file.
func Find(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		for _, name := range Names {
			candidate := filepath.Join(dir, name)
			info, err := os.Stat(candidate)
			if err == nil && !info.IsDir() {
				return candidate, true, nil
			} else if err != nil && !errors.Is(err, os.ErrNotExist) {
				return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Discover returns the configuration that applies to target, a file or a
// directory. Without a file the defaults are returned.
func Discover(target string) (*Config, error) {
	start := target
	if info, err := os.Stat(target); err == nil && !info.IsDir() {
		start = filepath.Dir(target)
	}
	path, ok, err := Find(start)
	if err != nil {
		return nil, err
	}
	if !ok {
		return Default(), nil
	}
	return Load(path)
}

// Load decodes the file at path. The format follows the extension.
func Load(path string) (*Config, error) {
	var (
		r   raw
		err error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		r, err = decodeTOML(path)
	case ".yaml", ".yml":
		r, err = decodeYAML(path)
	default:
		return nil, fmt.Errorf("%s: unsupported config format", path)
	}
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %q: %w", path, err)
	}
	cfg := &Config{Path: abs, Root: filepath.Dir(abs)}
	if err := r.apply(cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (r *raw) apply(cfg *Config) error {
	opt := &cfg.Options
	if r.LineWidth != nil {
		if *r.LineWidth <= 0 {
			return fmt.Errorf("line_width must be positive, got %d", *r.LineWidth)
		}
		opt.LineWidth = *r.LineWidth
	}
	if r.IndentCount != nil {
		if *r.IndentCount <= 0 {
			return fmt.Errorf("indent_count must be positive, got %d", *r.IndentCount)
		}
		opt.IndentCount = *r.IndentCount
	}
	if r.UseTabs != nil {
		opt.UseTabs = *r.UseTabs
	}
	if r.Quotemark != nil {
		q, err := printer.ParseQuotemark(*r.Quotemark)
		if err != nil {
			return fmt.Errorf("quotemark: %w", err)
		}
		opt.Quotemark = q
	}
	if r.LineEnding != nil {
		e, err := format.ParseLineEnding(*r.LineEnding)
		if err != nil {
			return fmt.Errorf("line_ending: %w", err)
		}
		opt.LineEnding = e
	}
	if r.LuaVersion != nil {
		v, err := parser.ParseVersion(*r.LuaVersion)
		if err != nil {
			return fmt.Errorf("lua_version: %w", err)
		}
		opt.LuaVersion = v
	}
	for _, pattern := range r.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("exclude: invalid pattern %q", pattern)
		}
	}
	cfg.Exclude = r.Exclude
	if err := opt.Validate(); err != nil {
		return err
	}
	return nil
}

// Excluded reports whether path matches one of the exclude patterns. Paths
// outside Root are never excluded.
func (c *Config) Excluded(path string) bool {
	if c == nil || len(c.Exclude) == 0 || c.Root == "" {
		return false
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(c.Root, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return false
	}
	rel = filepath.ToSlash(rel)
	for _, pattern := range c.Exclude {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}
