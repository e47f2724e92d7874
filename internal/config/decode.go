package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

type tomlFile struct {
	LineWidth   int      `toml:"line_width"`
	IndentCount int      `toml:"indent_count"`
	UseTabs     bool     `toml:"use_tabs"`
	Quotemark   string   `toml:"quotemark"`
	LineEnding  string   `toml:"line_ending"`
	LuaVersion  string   `toml:"lua_version"`
	Exclude     []string `toml:"exclude"`
}

func decodeTOML(path string) (raw, error) {
	var f tomlFile
	meta, err := toml.DecodeFile(path, &f)
	if err != nil {
		return raw{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return raw{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}

	var r raw
	if meta.IsDefined("line_width") {
		r.LineWidth = &f.LineWidth
	}
	if meta.IsDefined("indent_count") {
		r.IndentCount = &f.IndentCount
	}
	if meta.IsDefined("use_tabs") {
		r.UseTabs = &f.UseTabs
	}
	if meta.IsDefined("quotemark") {
		r.Quotemark = &f.Quotemark
	}
	if meta.IsDefined("line_ending") {
		r.LineEnding = &f.LineEnding
	}
	if meta.IsDefined("lua_version") {
		r.LuaVersion = &f.LuaVersion
	}
	r.Exclude = f.Exclude
	return r, nil
}

func decodeYAML(path string) (raw, error) {
	// #nosec G304 -- path comes from Find or the command line
	data, err := os.ReadFile(path)
	if err != nil {
		return raw{}, err
	}
	var r raw
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&r); err != nil && !errors.Is(err, io.EOF) {
		// пустой файл даёт io.EOF, это не ошибка
		return raw{}, fmt.Errorf("%s: failed to parse YAML: %w", path, err)
	}
	return r, nil
}
