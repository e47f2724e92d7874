// Package driver formats many files at once: it expands the command line
// paths, resolves the configuration of each file, runs the formatter in
// parallel and applies the write mode.
package driver

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"luapretty/internal/config"
	"luapretty/internal/format"
	"luapretty/internal/observ"
	"luapretty/internal/pipeline"
	"luapretty/internal/source"
	"luapretty/internal/trace"
)

// ErrNoFiles is returned when the paths expand to nothing.
var ErrNoFiles = errors.New("no lua files found")

// FormatOptions configures FormatPaths.
type FormatOptions struct {
	Mode WriteMode
	// Jobs limits the number of files formatted at once; <= 0 means
	// GOMAXPROCS.
	Jobs int
	// ConfigPath forces one configuration file for every input. When empty
	// each file uses the file found above it.
	ConfigPath string
	// NoConfig ignores configuration files.
	NoConfig bool
	// Override is applied to the options of every file after its
	// configuration, typically the command line flags.
	Override func(*format.Options)
	Cache    *Cache
	Progress pipeline.ProgressSink
	// BaseDir shortens the paths reported to Progress and used in diffs.
	BaseDir string
}

// FormatResult captures the result of formatting a single file.
type FormatResult struct {
	Path    string
	Changed bool
	// Formatted is set in ModeStdout.
	Formatted []byte
	// Diff is set in ModeDiff for changed files.
	Diff   string
	Err    error
	Cached bool
}

// FormatPaths formats provided files or directories (recursively collecting
// .lua files). Results follow the sorted file order. Errors of single files
// are reported in their result; the returned error is for failures that
// stop the whole run.
func FormatPaths(ctx context.Context, paths []string, opts FormatOptions) ([]FormatResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	configs := newConfigSet(opts)
	if opts.ConfigPath != "" {
		if _, err := configs.forFile(""); err != nil {
			return nil, err
		}
	}

	files, err := collectSourceFiles(ctx, paths, configs.excluded)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, ErrNoFiles
	}

	display := pipeline.DisplayPaths(files, opts.BaseDir)
	pipeline.EmitQueued(opts.Progress, display)
	ctx, run := trace.Start(ctx, trace.ScopeRun, "fmt")
	run.WithExtra("files", strconv.Itoa(len(files))).WithExtra("mode", opts.Mode.String())
	defer run.End("")

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// индексы уникальны для каждой горутины, мьютекс не нужен
	results := make([]FormatResult, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = formatOne(gctx, path, display[i], configs, opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

func formatOne(ctx context.Context, path, name string, configs *configSet, opts FormatOptions) FormatResult {
	ctx, span := trace.StartFile(ctx, name)
	began := time.Now()
	result := FormatResult{Path: path}

	emit := func(stage pipeline.Stage, status pipeline.Status) {
		pipeline.Emit(opts.Progress, pipeline.Event{
			File:    name,
			Stage:   stage,
			Status:  status,
			Err:     result.Err,
			Elapsed: time.Since(began),
			Changed: result.Changed,
		})
	}
	fail := func(stage pipeline.Stage, err error) FormatResult {
		result.Err = err
		emit(stage, pipeline.StatusError)
		span.End(err.Error())
		return result
	}

	emit(pipeline.StageRead, pipeline.StatusWorking)
	cfg, err := configs.forFile(path)
	if err != nil {
		return fail(pipeline.StageRead, err)
	}
	opt := cfg.Options
	if opts.Override != nil {
		opts.Override(&opt)
	}
	stop := observ.FromContext(ctx).Track("read")
	// #nosec G304 -- path comes from the command line
	data, err := os.ReadFile(path)
	stop()
	if err != nil {
		return fail(pipeline.StageRead, err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	fingerprint := opt.Fingerprint()
	hash := digestOf(data)
	hit, err := opts.Cache.Formatted(abs, fingerprint, hash)
	if err != nil {
		trace.Point(ctx, trace.ScopeInternal, "cache", err.Error())
	}
	if hit {
		trace.Point(ctx, trace.ScopeInternal, "cache", "hit")
		result.Cached = true
		if opts.Mode == ModeStdout {
			result.Formatted = data
		}
		emit(pipeline.StageFormat, pipeline.StatusSkipped)
		span.End("cached")
		return result
	}

	emit(pipeline.StageFormat, pipeline.StatusWorking)
	formatted, err := formatBytes(ctx, path, data, opt)
	if err != nil {
		return fail(pipeline.StageFormat, err)
	}
	result.Changed = !bytes.Equal(data, formatted)

	emit(pipeline.StageWrite, pipeline.StatusWorking)
	stop = observ.FromContext(ctx).Track("write")
	switch opts.Mode {
	case ModeStdout:
		result.Formatted = formatted
	case ModeDiff:
		if result.Changed {
			result.Diff, err = unifiedDiff(name, data, formatted)
		}
	case ModeReplace:
		if result.Changed {
			err = writeAtomic(path, formatted)
		}
	case ModeCheck:
	}
	stop()
	if err != nil {
		return fail(pipeline.StageWrite, err)
	}

	if opts.Mode == ModeReplace || !result.Changed {
		// ошибки кэша не мешают форматированию
		_ = opts.Cache.Record(abs, fingerprint, digestOf(formatted))
	}
	emit(pipeline.StageWrite, pipeline.StatusDone)
	if result.Changed {
		span.End("changed")
	} else {
		span.End("unchanged")
	}
	return result
}

func formatBytes(ctx context.Context, path string, data []byte, opt format.Options) ([]byte, error) {
	normalized, flags, err := source.Normalize(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	fs := source.NewFileSet()
	file := fs.Get(fs.Add(path, normalized, flags))
	return format.FormatFile(ctx, file, opt)
}

// FormatReader formats everything read from r as a file called name and
// writes the result to w. The configuration is looked up from dir.
func FormatReader(ctx context.Context, r io.Reader, w io.Writer, name, dir string, opts FormatOptions) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	cfg, err := newConfigSet(opts).forDir(dir)
	if err != nil {
		return err
	}
	opt := cfg.Options
	if opts.Override != nil {
		opts.Override(&opt)
	}
	formatted, err := format.FormatText(ctx, name, data, opt)
	if err != nil {
		return err
	}
	_, err = w.Write(formatted)
	return err
}

// configSet resolves and memoizes the configuration of each directory.
type configSet struct {
	opts  FormatOptions
	mu    sync.Mutex
	byDir map[string]*config.Config
	fixed *config.Config
	err   error
}

func newConfigSet(opts FormatOptions) *configSet {
	return &configSet{opts: opts, byDir: make(map[string]*config.Config)}
}

func (s *configSet) forFile(path string) (*config.Config, error) {
	return s.forDir(filepath.Dir(path))
}

func (s *configSet) forDir(dir string) (*config.Config, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch {
	case s.opts.NoConfig:
		return config.Default(), nil
	case s.opts.ConfigPath != "":
		if s.fixed == nil && s.err == nil {
			s.fixed, s.err = config.Load(s.opts.ConfigPath)
		}
		return s.fixed, s.err
	}
	if cfg, ok := s.byDir[dir]; ok {
		return cfg, nil
	}
	cfg, err := config.Discover(dir)
	if err != nil {
		return nil, err
	}
	s.byDir[dir] = cfg
	return cfg, nil
}

func (s *configSet) excluded(path string) bool {
	cfg, err := s.forFile(path)
	if err != nil {
		// ошибка конфигурации всплывёт при форматировании файла
		return false
	}
	return cfg.Excluded(path)
}
