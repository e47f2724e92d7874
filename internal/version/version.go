package version

import (
	"strings"

	"github.com/fatih/color"
)

// Version information for the luapretty CLI.
// These variables can be overridden at build time via -ldflags.

var (
	versionMajorColor = color.New(color.FgYellow, color.Bold)
	versionMinorColor = color.New(color.FgGreen, color.Bold)
	versionPatchColor = color.New(color.FgBlue, color.Bold)

	// Version is the semantic version of the CLI.
	Version = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

// Colored returns Version with its major, minor and patch numbers coloured.
// Colour follows fatih/color's global switch.
func Colored() string {
	core, suffix, _ := strings.Cut(Version, "-")
	parts := strings.SplitN(core, ".", 3)
	if len(parts) != 3 {
		return Version
	}
	out := versionMajorColor.Sprint(parts[0]) + "." + versionMinorColor.Sprint(parts[1]) + "." + versionPatchColor.Sprint(parts[2])
	if suffix != "" {
		out += "-" + suffix
	}
	return out
}

// Line is the text printed by "luapretty version".
func Line() string {
	var sb strings.Builder
	sb.WriteString("luapretty ")
	sb.WriteString(Colored())
	var extra []string
	if GitCommit != "" {
		extra = append(extra, GitCommit)
	}
	if BuildDate != "" {
		extra = append(extra, BuildDate)
	}
	if len(extra) > 0 {
		sb.WriteString(" (")
		sb.WriteString(strings.Join(extra, ", "))
		sb.WriteString(")")
	}
	return sb.String()
}
