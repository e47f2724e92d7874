package driver

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/fatih/color"
	"github.com/google/go-cmp/cmp"

	"luapretty/internal/format"
	"luapretty/internal/pipeline"
	"luapretty/internal/trace"
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

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

// project lays out a small tree:
//
//	a.lua        needs formatting
//	b.lua        already formatted
//	sub/c.lua    needs formatting
//	.hidden/d.lua
//	notes.txt
func project(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.lua"), "local x=1")
	writeFile(t, filepath.Join(root, "b.lua"), "local y = 2\n")
	writeFile(t, filepath.Join(root, "sub", "c.lua"), "f(a,b)")
	writeFile(t, filepath.Join(root, ".hidden", "d.lua"), "x=1")
	writeFile(t, filepath.Join(root, "notes.txt"), "not lua")
	return root
}

func paths(results []FormatResult, root string) []string {
	out := make([]string, 0, len(results))
	for _, r := range results {
		rel, _ := filepath.Rel(root, r.Path)
		out = append(out, filepath.ToSlash(rel))
	}
	return out
}

func TestFormatPathsStdout(t *testing.T) {
	root := project(t)
	results, err := FormatPaths(context.Background(), []string{root}, FormatOptions{Mode: ModeStdout, NoConfig: true})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"a.lua", "b.lua", "sub/c.lua"}, paths(results, root)); diff != "" {
		t.Fatalf("files (-want +got):\n%s", diff)
	}
	want := []struct {
		changed   bool
		formatted string
	}{
		{true, "local x = 1\n"},
		{false, "local y = 2\n"},
		{true, "f(a, b)\n"},
	}
	for i, r := range results {
		if r.Err != nil {
			t.Fatalf("%s: %v", r.Path, r.Err)
		}
		if r.Changed != want[i].changed || string(r.Formatted) != want[i].formatted {
			t.Errorf("%s: changed=%v formatted=%q", r.Path, r.Changed, r.Formatted)
		}
	}
	if got := readFile(t, filepath.Join(root, "a.lua")); got != "local x=1" {
		t.Fatalf("stdout mode modified the file: %q", got)
	}
}

func TestFormatPathsReplace(t *testing.T) {
	root := project(t)
	path := filepath.Join(root, "a.lua")
	if err := os.Chmod(path, 0o640); err != nil {
		t.Fatal(err)
	}
	results, err := FormatPaths(context.Background(), []string{root}, FormatOptions{Mode: ModeReplace, NoConfig: true, Jobs: 2})
	if err != nil {
		t.Fatal(err)
	}
	for _, r := range results {
		if r.Err != nil {
			t.Fatalf("%s: %v", r.Path, r.Err)
		}
	}
	if got := readFile(t, path); got != "local x = 1\n" {
		t.Fatalf("a.lua = %q", got)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o640 {
		t.Fatalf("mode = %v, want 0640", info.Mode().Perm())
	}
	if got := readFile(t, filepath.Join(root, ".hidden", "d.lua")); got != "x=1" {
		t.Fatal("hidden directory was formatted")
	}
	leftovers, _ := filepath.Glob(filepath.Join(root, ".a.lua.tmp-*"))
	if len(leftovers) != 0 {
		t.Fatalf("temporary files left: %v", leftovers)
	}
}

func TestFormatPathsDiffAndCheck(t *testing.T) {
	root := project(t)
	file := filepath.Join(root, "a.lua")

	results, err := FormatPaths(context.Background(), []string{file}, FormatOptions{Mode: ModeDiff, NoConfig: true, BaseDir: root})
	if err != nil {
		t.Fatal(err)
	}
	diff := results[0].Diff
	for _, want := range []string{"--- a/a.lua", "+++ b/a.lua", "-local x=1", "+local x = 1"} {
		if !strings.Contains(diff, want) {
			t.Errorf("diff has no %q:\n%s", want, diff)
		}
	}

	results, err = FormatPaths(context.Background(), []string{file, filepath.Join(root, "b.lua")}, FormatOptions{Mode: ModeCheck, NoConfig: true})
	if err != nil {
		t.Fatal(err)
	}
	if !results[0].Changed || results[1].Changed {
		t.Fatalf("check: changed = %v, %v", results[0].Changed, results[1].Changed)
	}
	if got := readFile(t, file); got != "local x=1" {
		t.Fatal("check mode modified the file")
	}
}

func TestFormatPathsExplicitFileAndDuplicates(t *testing.T) {
	root := project(t)
	script := filepath.Join(root, "script")
	writeFile(t, script, "print( 1 )")
	results, err := FormatPaths(context.Background(), []string{script, script, filepath.Join(root, "sub")}, FormatOptions{NoConfig: true})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"script", "sub/c.lua"}, paths(results, root)); diff != "" {
		t.Fatalf("files (-want +got):\n%s", diff)
	}
	if got := string(results[0].Formatted); got != "print(1)\n" {
		t.Fatalf("script = %q", got)
	}
}

func TestFormatPathsConfig(t *testing.T) {
	root := project(t)
	writeFile(t, filepath.Join(root, ".luapretty.toml"), "indent_count = 2\nexclude = [\"sub/**\"]\n")
	writeFile(t, filepath.Join(root, "e.lua"), "do x() end")

	results, err := FormatPaths(context.Background(), []string{root}, FormatOptions{Mode: ModeStdout})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"a.lua", "b.lua", "e.lua"}, paths(results, root)); diff != "" {
		t.Fatalf("files (-want +got):\n%s", diff)
	}
	if got := string(results[2].Formatted); got != "do\n  x()\nend\n" {
		t.Fatalf("e.lua = %q", got)
	}

	override := func(o *format.Options) { o.IndentCount = 3 }
	results, err = FormatPaths(context.Background(), []string{filepath.Join(root, "e.lua")}, FormatOptions{Override: override})
	if err != nil {
		t.Fatal(err)
	}
	if got := string(results[0].Formatted); got != "do\n   x()\nend\n" {
		t.Fatalf("override: e.lua = %q", got)
	}
}

func TestFormatPathsErrors(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "bad.lua"), "local = 1")
	writeFile(t, filepath.Join(root, "good.lua"), "x = 1\n")

	results, err := FormatPaths(context.Background(), []string{root}, FormatOptions{NoConfig: true})
	if err != nil {
		t.Fatal(err)
	}
	if !errors.Is(results[0].Err, format.ErrSyntax) {
		t.Fatalf("bad.lua: err = %v, want ErrSyntax", results[0].Err)
	}
	if results[1].Err != nil {
		t.Fatalf("good.lua: %v", results[1].Err)
	}

	if _, err := FormatPaths(context.Background(), []string{filepath.Join(root, "missing")}, FormatOptions{}); err == nil {
		t.Fatal("missing path accepted")
	}
	empty := t.TempDir()
	if _, err := FormatPaths(context.Background(), []string{empty}, FormatOptions{NoConfig: true}); !errors.Is(err, ErrNoFiles) {
		t.Fatalf("empty dir: err = %v, want ErrNoFiles", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := FormatPaths(ctx, []string{root}, FormatOptions{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("canceled: err = %v", err)
	}
}

func TestFormatPathsProgress(t *testing.T) {
	root := project(t)
	var (
		mu     sync.Mutex
		events = map[string][]pipeline.Status{}
	)
	sink := pipeline.FuncSink(func(ev pipeline.Event) {
		mu.Lock()
		defer mu.Unlock()
		events[ev.File] = append(events[ev.File], ev.Status)
	})
	_, err := FormatPaths(context.Background(), []string{root}, FormatOptions{Mode: ModeCheck, NoConfig: true, Progress: sink, BaseDir: root})
	if err != nil {
		t.Fatal(err)
	}
	got := events["sub/c.lua"]
	want := []pipeline.Status{
		pipeline.StatusQueued, pipeline.StatusWorking, pipeline.StatusWorking,
		pipeline.StatusWorking, pipeline.StatusDone,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("events for sub/c.lua (-want +got):\n%s", diff)
	}
}

func TestFormatPathsCache(t *testing.T) {
	root := project(t)
	cache, err := OpenCacheDir(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	opts := FormatOptions{Mode: ModeReplace, NoConfig: true, Cache: cache}
	first, err := FormatPaths(context.Background(), []string{root}, opts)
	if err != nil {
		t.Fatal(err)
	}
	for _, r := range first {
		if r.Cached {
			t.Fatalf("%s: cached on first run", r.Path)
		}
	}
	second, err := FormatPaths(context.Background(), []string{root}, opts)
	if err != nil {
		t.Fatal(err)
	}
	for _, r := range second {
		if !r.Cached || r.Changed {
			t.Fatalf("%s: cached=%v changed=%v on second run", r.Path, r.Cached, r.Changed)
		}
	}

	// другие опции дают промах
	opts.Override = func(o *format.Options) { o.UseTabs = true }
	third, err := FormatPaths(context.Background(), []string{filepath.Join(root, "b.lua")}, opts)
	if err != nil {
		t.Fatal(err)
	}
	if third[0].Cached {
		t.Fatal("cache hit under different options")
	}
}

func TestFormatPathsTrace(t *testing.T) {
	root := project(t)
	cache, err := OpenCacheDir(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	opts := FormatOptions{Mode: ModeCheck, NoConfig: true, Cache: cache, BaseDir: root}
	if _, err := FormatPaths(context.Background(), []string{filepath.Join(root, "b.lua")}, opts); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	ctx := trace.WithTracer(context.Background(), trace.NewStreamTracer(&buf, trace.LevelDebug, trace.FormatText))
	if _, err := FormatPaths(ctx, []string{root}, opts); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{
		"\u2192 fmt",
		"\u2192 file <sub/c.lua>",
		"\u2192 parse <sub/c.lua>",
		"\u2022 cache (hit) <b.lua>",
		"{files=3, mode=check}",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("trace lacks %q:\n%s", want, out)
		}
	}
}

func TestFormatReader(t *testing.T) {
	var out bytes.Buffer
	err := FormatReader(context.Background(), strings.NewReader("x=1"), &out, "<stdin>", t.TempDir(), FormatOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if out.String() != "x = 1\n" {
		t.Fatalf("out = %q", out.String())
	}
}

func TestColorizeDiff(t *testing.T) {
	diff := "--- a/x\n+++ b/x\n@@ -1 +1 @@\n-a\n+b\n"
	saved := color.NoColor
	defer func() { color.NoColor = saved }()

	color.NoColor = true
	if got := ColorizeDiff(diff); got != diff {
		t.Fatalf("without colour: %q", got)
	}
	color.NoColor = false
	got := ColorizeDiff(diff)
	if got == diff || !strings.Contains(got, "\x1b[") {
		t.Fatalf("with colour: %q", got)
	}
	if !strings.HasSuffix(got, "\n") {
		t.Fatal("trailing newline lost")
	}
}

func TestParseWriteMode(t *testing.T) {
	for _, m := range []WriteMode{ModeStdout, ModeReplace, ModeDiff, ModeCheck} {
		got, err := ParseWriteMode(m.String())
		if err != nil || got != m {
			t.Errorf("ParseWriteMode(%q) = %v, %v", m.String(), got, err)
		}
	}
	if _, err := ParseWriteMode("inplace"); err == nil {
		t.Error("unknown mode accepted")
	}
}
