package doc

import (
	"fmt"
	"io"
	"strings"
)

// Dump writes d as an indented outline for debugging: literals quoted,
// markers by name, containers as blocks. Broken groups print as "group!".
func Dump(w io.Writer, d *Doc) error {
	dd := dumper{w: w}
	dd.doc(d, 0)
	return dd.err
}

type dumper struct {
	w   io.Writer
	err error
}

func (dd *dumper) line(depth int, format string, args ...any) {
	if dd.err != nil {
		return
	}
	_, dd.err = fmt.Fprintf(dd.w, "%s"+format+"\n", append([]any{strings.Repeat("  ", depth)}, args...)...)
}

func (dd *dumper) doc(d *Doc, depth int) {
	switch d.Kind() {
	case 0:
		dd.line(depth, "nil")
	case KindText:
		dd.line(depth, "%q", d.text)
	case KindLine, KindSoftline, KindHardline, KindBreakParent:
		dd.line(depth, "%s", d.kind)
	default:
		name := d.kind.String()
		if d.kind == KindGroup && d.Break {
			name += "!"
		}
		dd.line(depth, "%s {", name)
		for _, p := range d.parts {
			dd.doc(p, depth+1)
		}
		dd.line(depth, "}")
	}
}

// String renders the outline produced by Dump.
func (d *Doc) String() string {
	var sb strings.Builder
	_ = Dump(&sb, d)
	return strings.TrimSuffix(sb.String(), "\n")
}
