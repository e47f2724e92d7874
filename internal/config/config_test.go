package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"luapretty/internal/format"
	"luapretty/internal/parser"
	"luapretty/internal/printer"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestLoadTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".luapretty.toml")
	writeFile(t, path, `
line_width = 80
use_tabs = true
quotemark = "single"
lua_version = "5.1"
exclude = ["vendor/**"]
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	want := format.Options{
		LineWidth:  80,
		UseTabs:    true,
		Quotemark:  printer.QuoteSingle,
		LuaVersion: parser.Lua51,
	}
	if diff := cmp.Diff(want, cfg.Options); diff != "" {
		t.Fatalf("options (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"vendor/**"}, cfg.Exclude); diff != "" {
		t.Fatalf("exclude (-want +got):\n%s", diff)
	}
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".luapretty.yml")
	writeFile(t, path, "indent_count: 2\nline_ending: crlf\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	want := format.Options{IndentCount: 2, LineEnding: format.CRLF}
	if diff := cmp.Diff(want, cfg.Options); diff != "" {
		t.Fatalf("options (-want +got):\n%s", diff)
	}
}

func TestLoadEmpty(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"luapretty.toml", ".luapretty.yaml"} {
		path := filepath.Join(dir, name)
		writeFile(t, path, "")
		cfg, err := Load(path)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if diff := cmp.Diff(format.Options{}, cfg.Options); diff != "" {
			t.Fatalf("%s: options (-want +got):\n%s", name, diff)
		}
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"bad toml", ".luapretty.toml", "line_width = "},
		{"unknown toml key", ".luapretty.toml", "width = 3"},
		{"unknown yaml key", ".luapretty.yaml", "width: 3"},
		{"bad quotemark", ".luapretty.toml", `quotemark = "backtick"`},
		{"bad line ending", ".luapretty.yaml", "line_ending: cr"},
		{"bad version", ".luapretty.toml", `lua_version = "5.4"`},
		{"zero width", ".luapretty.toml", "line_width = 0"},
		{"bad glob", ".luapretty.toml", `exclude = ["[a"]`},
		{"unsupported extension", "luapretty.json", "{}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			writeFile(t, path, tt.content)
			if _, err := Load(path); err == nil {
				t.Fatal("Load succeeded")
			}
		})
	}
}

func TestDiscoverWalksUp(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "luapretty.toml"), "line_width = 60\n")
	writeFile(t, filepath.Join(root, "src", "deep", "a.lua"), "x = 1\n")

	cfg, err := Discover(filepath.Join(root, "src", "deep", "a.lua"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Options.LineWidth != 60 {
		t.Fatalf("LineWidth = %d, want 60", cfg.Options.LineWidth)
	}
	if cfg.Root != root {
		t.Fatalf("Root = %q, want %q", cfg.Root, root)
	}

	// the dotted name is preferred in the same directory
	writeFile(t, filepath.Join(root, ".luapretty.toml"), "line_width = 70\n")
	cfg, err = Discover(filepath.Join(root, "src"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Options.LineWidth != 70 {
		t.Fatalf("LineWidth = %d, want 70", cfg.Options.LineWidth)
	}
}

func TestExcluded(t *testing.T) {
	root := t.TempDir()
	cfg := &Config{Root: root, Exclude: []string{"vendor/**", "**/*_gen.lua"}}
	tests := map[string]bool{
		filepath.Join(root, "vendor", "lib", "x.lua"): true,
		filepath.Join(root, "src", "api_gen.lua"):     true,
		filepath.Join(root, "src", "api.lua"):         false,
		filepath.Join(filepath.Dir(root), "other.lua"): false,
	}
	for path, want := range tests {
		if got := cfg.Excluded(path); got != want {
			t.Errorf("Excluded(%q) = %v, want %v", path, got, want)
		}
	}
	if Default().Excluded(filepath.Join(root, "vendor", "x.lua")) {
		t.Error("defaults exclude nothing")
	}
}

func TestWriteInit(t *testing.T) {
	dir := t.TempDir()
	path, err := WriteInit(dir, false)
	if err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("template does not load: %v", err)
	}
	want := format.Options{LineWidth: 120, IndentCount: 4, LuaVersion: parser.Lua53}
	if diff := cmp.Diff(want, cfg.Options); diff != "" {
		t.Fatalf("template options (-want +got):\n%s", diff)
	}
	if _, err := WriteInit(dir, false); !errors.Is(err, ErrExists) {
		t.Fatalf("second WriteInit: err = %v, want ErrExists", err)
	}
	if _, err := WriteInit(dir, true); err != nil {
		t.Fatalf("forced WriteInit: %v", err)
	}
}
