package ast

import (
	"strings"

	"luapretty/internal/source"
)

// Role says where an attached comment is emitted relative to its node.
type Role uint8

const (
	RoleUnattached Role = iota
	Leading
	Trailing
	Dangling
	DanglingStatement
)

func (r Role) String() string {
	switch r {
	case Leading:
		return "Leading"
	case Trailing:
		return "Trailing"
	case Dangling:
		return "Dangling"
	case DanglingStatement:
		return "DanglingStatement"
	}
	return "Unattached"
}

// Comment is one source comment. Enclosing, Preceding and Following are
// lookup references into the node arena filled by the comment engine; Owner
// is the node whose Comments list holds it.
type Comment struct {
	Raw   string // including "--" or "#!"
	Value string
	Span  source.Span

	Role      Role
	Owner     NodeID
	Enclosing NodeID
	Preceding NodeID
	Following NodeID
}

// IsBlock reports whether the comment uses the --[[ ]] form.
func (c *Comment) IsBlock() bool {
	body, ok := strings.CutPrefix(c.Raw, "--[")
	if !ok {
		return false
	}
	body = strings.TrimLeft(body, "=")
	return strings.HasPrefix(body, "[")
}
