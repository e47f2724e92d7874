package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"

	"github.com/spf13/cobra"

	"luapretty/internal/diagfmt"
	"luapretty/internal/driver"
	"luapretty/internal/format"
	"luapretty/internal/pipeline"
	"luapretty/internal/ui"
)

var fmtCmd = &cobra.Command{
	Use:   "fmt [flags] <path|-> [path...]",
	Short: "Format Lua source files",
	Long: `Fmt formats the given files and every *.lua file below the given
directories. Without a mode flag the result is printed to stdout; "-" reads
standard input.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runFmt,
}

func init() {
	f := fmtCmd.Flags()
	f.BoolP("write", "w", false, "write the result back to the files")
	f.BoolP("diff", "d", false, "print a unified diff of the changes")
	f.BoolP("check", "c", false, "list files that need formatting and exit 1 if any")
	fmtCmd.MarkFlagsMutuallyExclusive("write", "diff", "check")
	f.String("format", "text", "report format for --write and --check (text|json)")
	f.String("ui", "auto", "progress UI for --write and --check (auto|on|off)")
	f.IntP("jobs", "j", 0, "max parallel workers (0=auto)")
	f.Bool("cache", true, "skip files recorded as already formatted (default for --write and --check)")
	f.Bool("no-config", false, "ignore config files")
	f.String("stdin-path", "", "path standard input is formatted as, for config lookup")
	f.BoolP("verbose", "v", false, "report unchanged and cached files too")
	addOptionFlags(fmtCmd)
}

func fmtMode(cmd *cobra.Command) driver.WriteMode {
	f := cmd.Flags()
	write, _ := f.GetBool("write")
	diff, _ := f.GetBool("diff")
	check, _ := f.GetBool("check")
	switch {
	case write:
		return driver.ModeReplace
	case diff:
		return driver.ModeDiff
	case check:
		return driver.ModeCheck
	}
	return driver.ModeStdout
}

func runFmt(cmd *cobra.Command, args []string) error {
	mode := fmtMode(cmd)
	outputFormat, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	switch outputFormat {
	case "text":
	case "json":
		if mode == driver.ModeStdout || mode == driver.ModeDiff {
			return fmt.Errorf("fmt: --format json needs --write or --check")
		}
	default:
		return fmt.Errorf("fmt: unsupported output format %q", outputFormat)
	}

	uiFlag, _ := cmd.Flags().GetString("ui")
	uiSetting, err := readUIMode(uiFlag)
	if err != nil {
		return err
	}
	override, err := optionOverride(cmd)
	if err != nil {
		return fmt.Errorf("fmt: %w", err)
	}
	configPath, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return err
	}
	noConfig, _ := cmd.Flags().GetBool("no-config")
	jobs, _ := cmd.Flags().GetInt("jobs")
	cwd, err := os.Getwd()
	if err != nil {
		return err
	}
	opts := driver.FormatOptions{
		Mode:       mode,
		Jobs:       jobs,
		ConfigPath: configPath,
		NoConfig:   noConfig,
		Override:   override,
		BaseDir:    cwd,
	}

	if slices.Contains(args, "-") {
		if len(args) > 1 {
			return errors.New("fmt: \"-\" cannot be mixed with paths")
		}
		if mode != driver.ModeStdout {
			return errors.New("fmt: standard input is only formatted to stdout")
		}
		return fmtStdin(cmd, opts)
	}

	opts.Cache = openCache(cmd, mode)
	quiet := quietFlag(cmd)

	var results []driver.FormatResult
	work := func(sink pipeline.ProgressSink) error {
		opts.Progress = sink
		var err error
		results, err = driver.FormatPaths(cmd.Context(), args, opts)
		return err
	}

	useProgress := (mode == driver.ModeReplace || mode == driver.ModeCheck) && outputFormat == "text" && !quiet
	switch {
	case useProgress && shouldUseTUI(uiSetting):
		err = ui.Run("luapretty fmt", os.Stdout, work)
	case useProgress && mode == driver.ModeReplace:
		verbose, _ := cmd.Flags().GetBool("verbose")
		text := &pipeline.TextSink{W: os.Stderr, Verbose: verbose}
		// ошибки печатаются ниже с полной диагностикой
		err = work(pipeline.FuncSink(func(ev pipeline.Event) {
			if ev.Status != pipeline.StatusError {
				text.OnEvent(ev)
			}
		}))
	default:
		err = work(nil)
	}
	if err != nil {
		return fmt.Errorf("fmt: %w", err)
	}
	for _, res := range results {
		if res.Err != nil {
			session.failedFiles = append(session.failedFiles, pipeline.DisplayPath(res.Path, cwd))
		}
	}

	if outputFormat == "json" {
		if err := renderFmtJSON(cmd.OutOrStdout(), results, mode, cwd); err != nil {
			return err
		}
		return fmtStatus(results, mode)
	}

	out := cmd.OutOrStdout()
	for _, res := range results {
		if res.Err != nil {
			reportFileError(cmd, res.Path, res.Err)
			continue
		}
		switch mode {
		case driver.ModeStdout:
			if _, err := out.Write(res.Formatted); err != nil {
				return err
			}
		case driver.ModeDiff:
			if res.Diff != "" {
				if _, err := io.WriteString(out, driver.ColorizeDiff(res.Diff)); err != nil {
					return err
				}
			}
		case driver.ModeCheck:
			if res.Changed && !quiet {
				fmt.Fprintln(out, pipeline.DisplayPath(res.Path, cwd))
			}
		case driver.ModeReplace:
		}
	}
	return fmtStatus(results, mode)
}

// fmtStatus turns per-file errors, and pending changes under --check, into
// exit status 1.
func fmtStatus(results []driver.FormatResult, mode driver.WriteMode) error {
	for _, res := range results {
		if res.Err != nil || (mode == driver.ModeCheck && res.Changed) {
			return errSilent
		}
	}
	return nil
}

func fmtStdin(cmd *cobra.Command, opts driver.FormatOptions) error {
	name := "<stdin>"
	dir := opts.BaseDir
	if stdinPath, _ := cmd.Flags().GetString("stdin-path"); stdinPath != "" {
		name = stdinPath
		dir = filepath.Dir(stdinPath)
	}
	err := driver.FormatReader(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), name, dir, opts)
	if err != nil {
		reportFileError(cmd, name, err)
		return errSilent
	}
	return nil
}

// openCache opens the cache for --write and --check runs, or whenever
// --cache is given explicitly. A cache that cannot be opened only costs
// speed.
func openCache(cmd *cobra.Command, mode driver.WriteMode) *driver.Cache {
	use := mode == driver.ModeReplace || mode == driver.ModeCheck
	if cmd.Flags().Changed("cache") {
		use, _ = cmd.Flags().GetBool("cache")
	}
	if !use {
		return nil
	}
	cache, err := driver.OpenCache("luapretty")
	if err != nil {
		if !quietFlag(cmd) {
			fmt.Fprintf(os.Stderr, "luapretty: cache disabled: %v\n", err)
		}
		return nil
	}
	return cache
}

// reportFileError prints syntax errors with their source context and any
// other error on one line.
func reportFileError(cmd *cobra.Command, path string, err error) {
	var se *format.SyntaxError
	if errors.As(err, &se) && se.Bag.Len() > 0 {
		se.Bag.Sort()
		cwd, _ := os.Getwd()
		_ = diagfmt.Pretty(os.Stderr, se.Bag, diagfmt.OneFile(se.File), diagfmt.PrettyOpts{
			Color:     stderrColor(cmd),
			Context:   1,
			BaseDir:   cwd,
			ShowNotes: true,
		})
		return
	}
	if errors.Is(err, format.ErrRoundTrip) {
		fmt.Fprintf(os.Stderr, "luapretty: %s: %v (please report this as a bug)\n", path, err)
		return
	}
	fmt.Fprintf(os.Stderr, "luapretty: %s: %v\n", path, err)
}

func renderFmtJSON(out io.Writer, results []driver.FormatResult, mode driver.WriteMode, cwd string) error {
	type jsonResult struct {
		Path    string `json:"path"`
		Changed bool   `json:"changed"`
		Cached  bool   `json:"cached,omitempty"`
		Error   string `json:"error,omitempty"`
		Mode    string `json:"mode"`
	}

	payload := make([]jsonResult, 0, len(results))
	for _, res := range results {
		jr := jsonResult{
			Path:    pipeline.DisplayPath(res.Path, cwd),
			Changed: res.Changed,
			Cached:  res.Cached,
			Mode:    mode.String(),
		}
		if res.Err != nil {
			jr.Error = res.Err.Error()
		}
		payload = append(payload, jr)
	}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}
