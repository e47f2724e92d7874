package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"luapretty/internal/doc"
	"luapretty/internal/driver"
)

var docCmd = &cobra.Command{
	Use:   "doc [flags] file.lua",
	Short: "Print the layout document built for a Lua source file",
	Long: `Doc prints the document the formatter renders for a file, after break
propagation and before line fitting. It shows which groups exist and which
of them are forced to break`,
	Args: cobra.ExactArgs(1),
	RunE: runDoc,
}

func init() {
	addOptionFlags(docCmd)
}

func runDoc(cmd *cobra.Command, args []string) error {
	filePath := args[0]
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	opt, err := resolveOptions(cmd, filePath)
	if err != nil {
		return err
	}

	result, err := driver.BuildDoc(cmd.Context(), filePath, opt)
	if err != nil {
		return fmt.Errorf("doc: %w", err)
	}
	if result.Doc == nil {
		if err := printDiagnostics(cmd, result.Bag, result.FileSet, maxDiagnostics); err != nil {
			return err
		}
		return errSilent
	}
	return doc.Dump(cmd.OutOrStdout(), result.Doc)
}
