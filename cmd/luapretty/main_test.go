package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"luapretty/internal/format"
	"luapretty/internal/parser"
	"luapretty/internal/printer"
)

// run executes the CLI with args, starting every flag from its default.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := execute(context.Background())
	return out.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestFmtStdout(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.lua")
	writeFile(t, path, "local t={1,2}")

	out, err := run(t, "fmt", "--no-config", "--color=off", path)
	if err != nil {
		t.Fatal(err)
	}
	if out != "local t = {1, 2}\n" {
		t.Fatalf("out = %q", out)
	}

	writeFile(t, path, "do x() end")
	out, err = run(t, "fmt", "--no-config", "--indent-count=2", path)
	if err != nil {
		t.Fatal(err)
	}
	if out != "do\n  x()\nend\n" {
		t.Fatalf("--indent-count=2: out = %q", out)
	}
}

func TestFmtCheckAndWrite(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.lua")
	good := filepath.Join(dir, "good.lua")
	writeFile(t, bad, "x=1")
	writeFile(t, good, "y = 2\n")

	out, err := run(t, "fmt", "--check", "--no-config", "--cache=false", "--ui=off", "--color=off", dir)
	if !errors.Is(err, errSilent) {
		t.Fatalf("check: err = %v, want exit status 1", err)
	}
	if !strings.Contains(out, "bad.lua") || strings.Contains(out, "good.lua") {
		t.Fatalf("check listed:\n%s", out)
	}

	if _, err := run(t, "fmt", "--write", "--no-config", "--cache=false", "--ui=off", "--quiet", dir); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(bad)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "x = 1\n" {
		t.Fatalf("bad.lua = %q", data)
	}

	if _, err := run(t, "fmt", "--check", "--no-config", "--cache=false", "--ui=off", dir); err != nil {
		t.Fatalf("check after write: %v", err)
	}
}

func TestFmtJSONReport(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.lua"), "x=1")
	out, err := run(t, "fmt", "--check", "--format=json", "--no-config", "--cache=false", dir)
	if !errors.Is(err, errSilent) {
		t.Fatalf("err = %v", err)
	}
	var report []struct {
		Path    string `json:"path"`
		Changed bool   `json:"changed"`
		Mode    string `json:"mode"`
	}
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out)
	}
	if len(report) != 1 || !report[0].Changed || report[0].Mode != "check" {
		t.Fatalf("report = %+v", report)
	}

	if _, err := run(t, "fmt", "--format=json", dir); err == nil {
		t.Fatal("--format json accepted in stdout mode")
	}
}

func TestFmtFlagErrors(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.lua"), "x = 1\n")
	for _, args := range [][]string{
		{"fmt", "--write", "--check", dir},
		{"fmt", "--quotemark=backtick", dir},
		{"fmt", "--line-width=0", dir},
		{"fmt", "--ui=maybe", "--write", dir},
		{"fmt", "-", dir},
		{"fmt", "--write", "-"},
		{"fmt", "--color=sometimes", dir},
	} {
		if _, err := run(t, args...); err == nil || errors.Is(err, errSilent) {
			t.Errorf("%v: err = %v, want a usage error", args, err)
		}
	}
}

func TestFmtSyntaxError(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.lua"), "local = 1")
	if _, err := run(t, "fmt", "--no-config", "--color=off", dir); !errors.Is(err, errSilent) {
		t.Fatalf("err = %v, want exit status 1", err)
	}
}

func TestOptionOverride(t *testing.T) {
	cmd := &cobra.Command{Use: "x"}
	addOptionFlags(cmd)
	if err := cmd.Flags().Parse([]string{"--indent-count=2", "--quotemark=single", "--lua-version=5.1", "--verify"}); err != nil {
		t.Fatal(err)
	}
	override, err := optionOverride(cmd)
	if err != nil {
		t.Fatal(err)
	}
	opt := format.Options{LineWidth: 80, IndentCount: 8}
	override(&opt)
	want := format.Options{
		LineWidth:   80,
		IndentCount: 2,
		Quotemark:   printer.QuoteSingle,
		LuaVersion:  parser.Lua51,
		Verify:      true,
	}
	if opt != want {
		t.Fatalf("options = %+v, want %+v", opt, want)
	}
}

func TestResolveOptionsUsesConfig(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".luapretty.toml"), "line_width = 60\n")
	path := filepath.Join(dir, "a.lua")
	writeFile(t, path, "x = 1\n")

	resetFlags(rootCmd)
	opt, err := resolveOptions(docCmd, path)
	if err != nil {
		t.Fatal(err)
	}
	if opt.LineWidth != 60 {
		t.Fatalf("line width = %d, want 60", opt.LineWidth)
	}
}

func TestInspectCommands(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.lua")
	writeFile(t, path, "-- c\nf(x)\n")

	out, err := run(t, "tokenize", "--format=json", path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, `"line-comment"`) {
		t.Errorf("tokenize output:\n%s", out)
	}

	out, err = run(t, "parse", path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Chunk") || !strings.Contains(out, "CallExpression") {
		t.Errorf("parse output:\n%s", out)
	}

	out, err = run(t, "doc", path)
	if err != nil {
		t.Fatal(err)
	}
	if out == "" {
		t.Error("doc printed nothing")
	}

	writeFile(t, path, "f(")
	out, err = run(t, "parse", "--format=json", path)
	if !errors.Is(err, errSilent) {
		t.Fatalf("parse of bad file: err = %v", err)
	}
	var report struct {
		Count int `json:"count"`
	}
	if err := json.Unmarshal([]byte(out), &report); err != nil || report.Count == 0 {
		t.Errorf("parse json output (%v):\n%s", err, out)
	}
}

func TestInitCommand(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "proj")
	out, err := run(t, "init", dir)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, ".luapretty.toml") {
		t.Fatalf("out = %q", out)
	}
	if _, err := run(t, "init", dir); err == nil {
		t.Fatal("second init overwrote the file")
	}
	if _, err := run(t, "init", "--force", dir); err != nil {
		t.Fatalf("--force: %v", err)
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version", "--format=json")
	if err != nil {
		t.Fatal(err)
	}
	var payload versionPayload
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out)
	}
	if payload.Tool != "luapretty" || payload.DefaultLua != parser.DefaultVersion.String() || len(payload.LuaVersions) != 3 {
		t.Fatalf("payload = %+v", payload)
	}
	if out, err = run(t, "version"); err != nil || !strings.HasPrefix(out, "luapretty ") {
		t.Fatalf("pretty output %q, %v", out, err)
	}
	if _, err := run(t, "version", "--format=xml"); err == nil {
		t.Fatal("unknown format accepted")
	}
}

func TestReadUIMode(t *testing.T) {
	for in, want := range map[string]uiMode{"": uiModeAuto, "ON": uiModeOn, " off ": uiModeOff} {
		got, err := readUIMode(in)
		if err != nil || got != want {
			t.Errorf("readUIMode(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := readUIMode("sometimes"); err == nil {
		t.Error("invalid mode accepted")
	}
	if !shouldUseTUI(uiModeOn) || shouldUseTUI(uiModeOff) {
		t.Error("explicit modes ignored")
	}
}

func TestProfilingFlags(t *testing.T) {
	dir := t.TempDir()
	cpu := filepath.Join(dir, "cpu.out")
	mem := filepath.Join(dir, "mem.out")
	if _, err := run(t, "version", "--cpu-profile", cpu, "--mem-profile", mem); err != nil {
		t.Fatal(err)
	}
	for _, p := range []string{cpu, mem} {
		if _, err := os.Stat(p); err != nil {
			t.Errorf("profile not written: %v", err)
		}
	}
}
