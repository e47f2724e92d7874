package version

import (
	"strings"
	"testing"

	"github.com/fatih/color"
)

func withVersion(t *testing.T, version, commit, date string) {
	t.Helper()
	origVersion, origCommit, origDate := Version, GitCommit, BuildDate
	Version, GitCommit, BuildDate = version, commit, date
	t.Cleanup(func() {
		Version, GitCommit, BuildDate = origVersion, origCommit, origDate
	})
}

func withColor(t *testing.T, on bool) {
	t.Helper()
	saved := color.NoColor
	color.NoColor = !on
	t.Cleanup(func() { color.NoColor = saved })
}

func TestVersion_DefaultValues(t *testing.T) {
	if Version == "" {
		t.Error("Version should have a default value")
	}
}

func TestLine(t *testing.T) {
	withColor(t, false)
	tests := []struct {
		version, commit, date string
		want                  string
	}{
		{"1.2.3", "", "", "luapretty 1.2.3"},
		{"0.1.0-dev", "abc123", "", "luapretty 0.1.0-dev (abc123)"},
		{"1.0.0", "abc123", "2024-01-15", "luapretty 1.0.0 (abc123, 2024-01-15)"},
		{"nightly", "", "2024-01-15", "luapretty nightly (2024-01-15)"},
	}
	for _, tt := range tests {
		withVersion(t, tt.version, tt.commit, tt.date)
		if got := Line(); got != tt.want {
			t.Errorf("Line() = %q, want %q", got, tt.want)
		}
	}
}

func TestColored(t *testing.T) {
	withColor(t, true)
	withVersion(t, "1.2.3-rc.1", "", "")
	got := Colored()
	if !strings.Contains(got, "\x1b[") {
		t.Fatalf("Colored() = %q has no escape codes", got)
	}
	if !strings.HasSuffix(got, "-rc.1") {
		t.Fatalf("Colored() = %q lost the suffix", got)
	}
}
