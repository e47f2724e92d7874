package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"luapretty/internal/diagfmt"
	"luapretty/internal/driver"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] file.lua",
	Short: "Tokenize a Lua source file",
	Long:  `Tokenize prints the tokens of a Lua source file with the comments attached to them`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	result, err := driver.Tokenize(filePath, maxDiagnostics)
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}

	// Выводим диагностику в stderr, если есть
	if result.Bag.Len() > 0 {
		opts := diagfmt.PrettyOpts{
			Color:     stderrColor(cmd),
			Context:   2,
			ShowNotes: true,
		}
		if err := diagfmt.Pretty(os.Stderr, result.Bag, result.FileSet, opts); err != nil {
			return err
		}
	}

	switch format {
	case "pretty":
		err = diagfmt.FormatTokensPretty(cmd.OutOrStdout(), result.Tokens, result.FileSet)
	case "json":
		err = diagfmt.FormatTokensJSON(cmd.OutOrStdout(), result.Tokens)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	if err != nil {
		return err
	}
	if result.Bag.HasErrors() {
		return errSilent
	}
	return nil
}
