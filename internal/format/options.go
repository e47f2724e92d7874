package format

import (
	"errors"
	"fmt"
	"strings"

	"luapretty/internal/parser"
	"luapretty/internal/printer"
)

// LineEnding selects the line terminator of the output.
type LineEnding uint8

const (
	LF LineEnding = iota
	CRLF
	// Auto writes CRLF when the input used CRLF and LF otherwise.
	Auto
)

func (e LineEnding) String() string {
	switch e {
	case LF:
		return "lf"
	case CRLF:
		return "crlf"
	case Auto:
		return "auto"
	}
	return fmt.Sprintf("LineEnding(%d)", uint8(e))
}

// ParseLineEnding accepts "lf", "crlf" and "auto"; "" means lf.
func ParseLineEnding(s string) (LineEnding, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "lf":
		return LF, nil
	case "crlf":
		return CRLF, nil
	case "auto":
		return Auto, nil
	}
	return 0, fmt.Errorf("unknown line ending %q (want lf, crlf or auto)", s)
}

const (
	DefaultLineWidth   = 120
	DefaultIndentCount = 4

	maxIndentCount = 16
)

type Options struct {
	LineWidth   int
	IndentCount int
	UseTabs     bool
	Quotemark   printer.Quotemark
	LineEnding  LineEnding
	LuaVersion  parser.Version
	// Verify re-lexes the output and fails when it is not token-equivalent
	// to the input.
	Verify bool
}

func (o Options) withDefaults() Options {
	if o.LineWidth == 0 {
		o.LineWidth = DefaultLineWidth
	}
	if o.IndentCount == 0 {
		o.IndentCount = DefaultIndentCount
	}
	if o.LuaVersion == 0 {
		o.LuaVersion = parser.DefaultVersion
	}
	return o
}

// Validate reports every option that is out of range. Zero values are valid
// and mean the default.
func (o Options) Validate() error {
	var errs []error
	if o.LineWidth < 0 {
		errs = append(errs, fmt.Errorf("line width must be positive, got %d", o.LineWidth))
	}
	if o.IndentCount < 0 || o.IndentCount > maxIndentCount {
		errs = append(errs, fmt.Errorf("indent count must be between 1 and %d, got %d", maxIndentCount, o.IndentCount))
	}
	if o.Quotemark > printer.QuoteSingle {
		errs = append(errs, fmt.Errorf("invalid quotemark %d", uint8(o.Quotemark)))
	}
	if o.LineEnding > Auto {
		errs = append(errs, fmt.Errorf("invalid line ending %s", o.LineEnding))
	}
	if o.LuaVersion > parser.Lua53 {
		errs = append(errs, fmt.Errorf("invalid lua version %s", o.LuaVersion))
	}
	return errors.Join(errs...)
}

// Fingerprint identifies the output-affecting options. Two option sets with
// the same fingerprint format every input identically.
func (o Options) Fingerprint() string {
	o = o.withDefaults()
	return fmt.Sprintf("w%d/i%d/t%t/q%s/e%s/v%s", o.LineWidth, o.IndentCount, o.UseTabs, o.Quotemark, o.LineEnding, o.LuaVersion)
}

func (o Options) indent() string {
	if o.UseTabs {
		return "\t"
	}
	return strings.Repeat(" ", o.IndentCount)
}
