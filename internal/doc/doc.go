// Package doc is the layout-agnostic document model used between the syntax
// tree and the final text.
//
// A Doc says what text exists and where it may break; Render decides how.
// Groups render either fully flat or fully broken. A group breaks when its
// Break flag is set (by the printer or by PropagateBreaks) or when its flat
// form does not fit the remaining width.
package doc

import "strings"

// Kind is the variant of a Doc node.
type Kind uint8

const (
	KindText        Kind = iota + 1 // literal text
	KindLine                        // space when flat, newline when broken
	KindSoftline                    // nothing when flat, newline when broken
	KindHardline                    // always a newline
	KindBreakParent                 // forces enclosing groups to break
	KindConcat                      // sequence
	KindIndent                      // one more indent level for the child
	KindGroup                       // flat-or-broken unit
	KindLineSuffix                  // deferred to the next newline
)

var kindNames = [...]string{
	KindText:        "text",
	KindLine:        "line",
	KindSoftline:    "softline",
	KindHardline:    "hardline",
	KindBreakParent: "breakParent",
	KindConcat:      "concat",
	KindIndent:      "indent",
	KindGroup:       "group",
	KindLineSuffix:  "lineSuffix",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(?)"
}

// Doc is one node of a document. A nil *Doc is the empty document.
type Doc struct {
	kind  Kind
	text  string
	parts []*Doc // concat: elements; indent, group, lineSuffix: ровно один

	// Break is the force-break flag of a group. It is the only field that
	// changes after construction.
	Break bool
}

// Shared markers. They carry no state and are never mutated.
var (
	Line        = &Doc{kind: KindLine}
	Softline    = &Doc{kind: KindSoftline}
	Hardline    = &Doc{kind: KindHardline}
	BreakParent = &Doc{kind: KindBreakParent}
)

// Text returns a literal. The empty string yields nil.
func Text(s string) *Doc {
	if s == "" {
		return nil
	}
	return &Doc{kind: KindText, text: s}
}

// Concat joins parts in order, dropping nil ones.
func Concat(parts ...*Doc) *Doc {
	kept := make([]*Doc, 0, len(parts))
	for _, p := range parts {
		if p != nil {
			kept = append(kept, p)
		}
	}
	switch len(kept) {
	case 0:
		return nil
	case 1:
		return kept[0]
	}
	return &Doc{kind: KindConcat, parts: kept}
}

// Join concatenates parts with sep between consecutive elements.
func Join(sep *Doc, parts []*Doc) *Doc {
	out := make([]*Doc, 0, 2*len(parts))
	for i, p := range parts {
		if i > 0 {
			out = append(out, sep)
		}
		out = append(out, p)
	}
	return Concat(out...)
}

func Indent(parts ...*Doc) *Doc {
	return wrap(KindIndent, Concat(parts...))
}

// Group wraps parts in a group decided by the fits check.
func Group(parts ...*Doc) *Doc {
	return GroupBreak(false, parts...)
}

// GroupBreak is Group with the force-break flag preset.
func GroupBreak(shouldBreak bool, parts ...*Doc) *Doc {
	g := wrap(KindGroup, Concat(parts...))
	g.Break = shouldBreak
	return g
}

func LineSuffix(parts ...*Doc) *Doc {
	return wrap(KindLineSuffix, Concat(parts...))
}

func wrap(k Kind, child *Doc) *Doc {
	d := &Doc{kind: k}
	if child != nil {
		d.parts = []*Doc{child}
	}
	return d
}

// Kind returns the variant of d; the empty document has kind 0.
func (d *Doc) Kind() Kind {
	if d == nil {
		return 0
	}
	return d.kind
}

// Value returns the literal of a text node.
func (d *Doc) Value() string {
	if d == nil {
		return ""
	}
	return d.text
}

// Parts returns the children: the elements of a concat, or the single
// contents of an indent, group or line suffix. Callers must not modify it.
func (d *Doc) Parts() []*Doc {
	if d == nil {
		return nil
	}
	return d.parts
}

// Contents returns the wrapped child of an indent, group or line suffix.
func (d *Doc) Contents() *Doc {
	if d == nil || d.kind == KindConcat || len(d.parts) == 0 {
		return nil
	}
	return d.parts[0]
}

// IsEmpty reports whether d renders nothing.
func (d *Doc) IsEmpty() bool {
	switch d.Kind() {
	case 0:
		return true
	case KindText:
		return d.text == ""
	case KindConcat, KindIndent, KindGroup, KindLineSuffix:
		for _, p := range d.parts {
			if !p.IsEmpty() {
				return false
			}
		}
		return true
	}
	return false
}

// WillBreak reports whether d certainly renders broken: it holds a hard
// line, a break marker or a group whose Break flag is set.
func WillBreak(d *Doc) bool {
	switch d.Kind() {
	case KindHardline, KindBreakParent:
		return true
	case KindGroup:
		if d.Break {
			return true
		}
	}
	for _, p := range d.Parts() {
		if WillBreak(p) {
			return true
		}
	}
	return false
}

// HasNewlineText reports whether a literal inside d spans several lines.
func HasNewlineText(d *Doc) bool {
	if d.Kind() == KindText {
		return strings.Contains(d.text, "\n")
	}
	for _, p := range d.Parts() {
		if HasNewlineText(p) {
			return true
		}
	}
	return false
}
