package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"luapretty/internal/observ"
	"luapretty/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "luapretty",
	Short: "Lua source formatter",
	Long: `luapretty reprints Lua 5.1-5.3 sources in one canonical layout,
keeping every comment and never changing what the program means`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupSession,
}

// errSilent ends the run with status 1 after the command already said why.
var errSilent = errors.New("silent failure")

// session holds what PersistentPreRunE set up for the running command.
var session struct {
	cleanup []func(failed bool)
	// failedFiles narrows the ring dump to the files that went wrong.
	failedFiles []string
}

func init() {
	// Устанавливаем версию для автоматического флага --version
	rootCmd.Version = version.Version

	rootCmd.AddCommand(fmtCmd)
	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(docCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to show")
	rootCmd.PersistentFlags().String("config", "", "use this config file instead of searching for one")
	rootCmd.PersistentFlags().String("trace", "", "trace output file (\"-\" for stderr)")
	rootCmd.PersistentFlags().String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	rootCmd.PersistentFlags().String("trace-format", "auto", "trace format (auto|text|ndjson)")
	rootCmd.PersistentFlags().String("trace-mode", "stream", "trace storage (stream|ring|both)")
	rootCmd.PersistentFlags().Int("trace-ring-size", 4096, "events kept by the ring tracer")
	rootCmd.PersistentFlags().String("cpu-profile", "", "write a CPU profile to this file")
	rootCmd.PersistentFlags().String("mem-profile", "", "write a heap profile to this file on exit")
	rootCmd.PersistentFlags().String("runtime-trace", "", "write a Go runtime trace to this file")
}

// main runs the root command and exits with status 1 on any error.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := execute(ctx)
	stop()
	if err != nil {
		if !errors.Is(err, errSilent) {
			fmt.Fprintf(os.Stderr, "luapretty: %v\n", err)
		}
		os.Exit(1)
	}
}

// execute runs the command line already set on rootCmd and then the cleanup
// registered by setupSession.
func execute(ctx context.Context) error {
	session.cleanup = nil
	session.failedFiles = nil
	err := rootCmd.ExecuteContext(ctx)
	for i := len(session.cleanup) - 1; i >= 0; i-- {
		session.cleanup[i](err != nil)
	}
	return err
}

func setupSession(cmd *cobra.Command, _ []string) error {
	if err := setupColor(cmd); err != nil {
		return err
	}
	cleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	session.cleanup = append(session.cleanup, cleanup)

	cleanup, err = setupProfiling(cmd)
	if err != nil {
		return err
	}
	session.cleanup = append(session.cleanup, cleanup)

	timings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}
	if timings {
		timer := observ.NewTimer()
		cmd.SetContext(observ.WithTimer(cmd.Context(), timer))
		session.cleanup = append(session.cleanup, func(bool) {
			printTimings(os.Stderr, timer)
		})
	}
	return nil
}

// setupColor applies --color to fatih/color's global switch, which the
// diff and version output follow.
func setupColor(cmd *cobra.Command) error {
	value, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return fmt.Errorf("failed to get color flag: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "auto":
		color.NoColor = !isTerminal(os.Stdout)
	case "on", "always":
		color.NoColor = false
	case "off", "never":
		color.NoColor = true
	default:
		return fmt.Errorf("invalid --color value %q (expected auto|on|off)", value)
	}
	return nil
}

// stderrColor reports whether diagnostics written to stderr get colour.
func stderrColor(cmd *cobra.Command) bool {
	value, _ := cmd.Root().PersistentFlags().GetString("color")
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "on", "always":
		return true
	case "off", "never":
		return false
	}
	return isTerminal(os.Stderr)
}

func quietFlag(cmd *cobra.Command) bool {
	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")
	return quiet
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd())) //nolint:gosec // fd fits in int
}
