package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"luapretty/internal/parser"
	"luapretty/internal/version"
)

// versionPayload is what editor integrations read to decide whether the
// installed formatter understands the dialect they need.
type versionPayload struct {
	Tool        string   `json:"tool"`
	Version     string   `json:"version"`
	GitCommit   string   `json:"git_commit,omitempty"`
	BuildDate   string   `json:"build_date,omitempty"`
	LuaVersions []string `json:"lua_versions"`
	DefaultLua  string   `json:"default_lua"`
}

var versionFormat string

func init() {
	versionCmd.Flags().StringVar(&versionFormat, "format", "pretty", "output format (pretty|json)")
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show luapretty version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		out := cmd.OutOrStdout()
		switch strings.ToLower(versionFormat) {
		case "pretty":
			fmt.Fprintln(out, version.Line())
			return nil
		case "json":
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(versionPayload{
				Tool:        "luapretty",
				Version:     version.Version,
				GitCommit:   version.GitCommit,
				BuildDate:   version.BuildDate,
				LuaVersions: []string{parser.Lua51.String(), parser.Lua52.String(), parser.Lua53.String()},
				DefaultLua:  parser.DefaultVersion.String(),
			})
		}
		return fmt.Errorf("unsupported format %q (must be pretty or json)", versionFormat)
	},
}
