package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"luapretty/internal/config"
	"luapretty/internal/format"
	"luapretty/internal/parser"
	"luapretty/internal/printer"
)

// addOptionFlags registers the formatting options. Only flags set on the
// command line override the config file.
func addOptionFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.Int("line-width", format.DefaultLineWidth, "maximum line width")
	f.Int("indent-count", format.DefaultIndentCount, "spaces per indentation level")
	f.Bool("use-tabs", false, "indent with tabs")
	f.String("quotemark", "double", "preferred string quote (double|single)")
	f.String("line-ending", "lf", "line ending of the output (lf|crlf|auto)")
	f.String("lua-version", parser.DefaultVersion.String(), "Lua dialect (5.1|5.2|5.3)")
	f.Bool("verify", false, "check that the output lexes to the same tokens and comments")
}

// optionOverride turns the changed option flags into a function applied
// after the config file.
func optionOverride(cmd *cobra.Command) (func(*format.Options), error) {
	f := cmd.Flags()
	var edits []func(*format.Options)

	if f.Changed("line-width") {
		v, err := f.GetInt("line-width")
		if err != nil {
			return nil, err
		}
		if v <= 0 {
			return nil, fmt.Errorf("--line-width must be positive, got %d", v)
		}
		edits = append(edits, func(o *format.Options) { o.LineWidth = v })
	}
	if f.Changed("indent-count") {
		v, err := f.GetInt("indent-count")
		if err != nil {
			return nil, err
		}
		if v <= 0 {
			return nil, fmt.Errorf("--indent-count must be positive, got %d", v)
		}
		edits = append(edits, func(o *format.Options) { o.IndentCount = v })
	}
	if f.Changed("use-tabs") {
		v, err := f.GetBool("use-tabs")
		if err != nil {
			return nil, err
		}
		edits = append(edits, func(o *format.Options) { o.UseTabs = v })
	}
	if f.Changed("quotemark") {
		s, _ := f.GetString("quotemark")
		q, err := printer.ParseQuotemark(s)
		if err != nil {
			return nil, err
		}
		edits = append(edits, func(o *format.Options) { o.Quotemark = q })
	}
	if f.Changed("line-ending") {
		s, _ := f.GetString("line-ending")
		le, err := format.ParseLineEnding(s)
		if err != nil {
			return nil, err
		}
		edits = append(edits, func(o *format.Options) { o.LineEnding = le })
	}
	if f.Changed("lua-version") {
		s, _ := f.GetString("lua-version")
		v, err := parser.ParseVersion(s)
		if err != nil {
			return nil, err
		}
		edits = append(edits, func(o *format.Options) { o.LuaVersion = v })
	}
	if verify, _ := f.GetBool("verify"); verify {
		edits = append(edits, func(o *format.Options) { o.Verify = true })
	}

	return func(o *format.Options) {
		for _, edit := range edits {
			edit(o)
		}
	}, nil
}

// resolveOptions returns the options that apply to path: --config or the
// file found above path, then the option flags.
func resolveOptions(cmd *cobra.Command, path string) (format.Options, error) {
	cfgPath, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return format.Options{}, err
	}
	var cfg *config.Config
	if cfgPath != "" {
		cfg, err = config.Load(cfgPath)
	} else {
		cfg, err = config.Discover(path)
	}
	if err != nil {
		return format.Options{}, err
	}
	opt := cfg.Options
	override, err := optionOverride(cmd)
	if err != nil {
		return format.Options{}, err
	}
	override(&opt)
	return opt, nil
}
