package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"luapretty/internal/ast"
	"luapretty/internal/diag"
	"luapretty/internal/diagfmt"
	"luapretty/internal/driver"
	"luapretty/internal/source"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] file.lua",
	Short: "Parse a Lua source file and print its syntax tree",
	Long: `Parse prints the syntax tree of a Lua source file with the comments
attached to each node. With --format json only the diagnostics are printed,
which makes it a syntax check for editors and CI`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().String("format", "tree", "output format (tree|json)")
	addOptionFlags(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "tree" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	opt, err := resolveOptions(cmd, filePath)
	if err != nil {
		return err
	}

	result, err := driver.Parse(cmd.Context(), filePath, opt)
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}

	if format == "json" {
		if err := diagfmt.JSON(cmd.OutOrStdout(), result.Bag, result.FileSet, diagfmt.JSONOpts{
			IncludePositions: true,
			IncludeNotes:     true,
			Max:              maxDiagnostics,
		}); err != nil {
			return err
		}
	} else if result.Tree != nil {
		if err := ast.Dump(cmd.OutOrStdout(), result.Tree); err != nil {
			return err
		}
	}
	if result.Tree == nil {
		if format == "tree" {
			if err := printDiagnostics(cmd, result.Bag, result.FileSet, maxDiagnostics); err != nil {
				return err
			}
		}
		return errSilent
	}
	return nil
}

// printDiagnostics writes at most max diagnostics of bag to stderr.
func printDiagnostics(cmd *cobra.Command, bag *diag.Bag, fs *source.FileSet, limit int) error {
	bag.Sort()
	if limit > 0 && bag.Len() > limit {
		trimmed := diag.NewBag(limit)
		for _, d := range bag.Items() {
			trimmed.Add(d)
		}
		bag = trimmed
	}
	return diagfmt.Pretty(os.Stderr, bag, fs, diagfmt.PrettyOpts{
		Color:     stderrColor(cmd),
		Context:   1,
		ShowNotes: !quietFlag(cmd),
	})
}
