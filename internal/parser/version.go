package parser

import "fmt"

// Version selects the Lua dialect accepted by the parser.
type Version uint8

const (
	Lua51 Version = iota + 1
	Lua52
	Lua53
)

// DefaultVersion is used when no version is configured.
const DefaultVersion = Lua53

func (v Version) String() string {
	switch v {
	case Lua51:
		return "5.1"
	case Lua52:
		return "5.2"
	case Lua53:
		return "5.3"
	}
	return fmt.Sprintf("Version(%d)", uint8(v))
}

// ParseVersion accepts "5.1", "5.2", "5.3" with an optional "lua" prefix.
// The empty string selects DefaultVersion.
func ParseVersion(s string) (Version, error) {
	switch s {
	case "":
		return DefaultVersion, nil
	case "5.1", "lua5.1", "lua51":
		return Lua51, nil
	case "5.2", "lua5.2", "lua52":
		return Lua52, nil
	case "5.3", "lua5.3", "lua53":
		return Lua53, nil
	}
	return 0, fmt.Errorf("unknown lua version %q (want 5.1, 5.2 or 5.3)", s)
}

func (v Version) hasGoto() bool    { return v >= Lua52 }
func (v Version) hasBitwise() bool { return v >= Lua53 }
