package ast

import (
	"fmt"
	"io"
	"strings"
)

// Dump writes an indented outline of the tree: one node per line with its
// field name, kind, span and payload, followed by its attached comments.
func Dump(w io.Writer, t *Tree) error {
	d := dumper{w: w, t: t}
	d.node(t.Root, FieldNone, -1, 0)
	return d.err
}

type dumper struct {
	w   io.Writer
	t   *Tree
	err error
}

func (d *dumper) printf(depth int, format string, args ...any) {
	if d.err != nil {
		return
	}
	_, d.err = fmt.Fprintf(d.w, "%s"+format+"\n", append([]any{strings.Repeat("  ", depth)}, args...)...)
}

func (d *dumper) node(id NodeID, field Field, index, depth int) {
	n := d.t.Node(id)
	if n == nil {
		return
	}
	label := ""
	switch {
	case field != FieldNone && index >= 0:
		label = fmt.Sprintf("%s[%d]: ", field, index)
	case field != FieldNone:
		label = field.String() + ": "
	}
	extra := ""
	switch {
	case n.Raw != "":
		extra = fmt.Sprintf(" %q", n.Raw)
	case n.Op != "":
		extra = fmt.Sprintf(" op=%q", n.Op)
	case n.Indexer != "":
		extra = fmt.Sprintf(" indexer=%q", n.Indexer)
	}
	if n.IsLocal {
		extra += " local"
	}
	if n.InParens {
		extra += " parens"
	}
	d.printf(depth, "%s%s [%d,%d)%s", label, n.Kind, n.Span.Start, n.Span.End, extra)

	for _, cid := range n.Comments {
		c := d.t.Comment(cid)
		d.printf(depth+1, "comment %s %q", c.Role, c.Raw)
	}
	for _, c := range d.t.Children(id) {
		f, i := n.FieldOf(c)
		d.node(c, f, i, depth+1)
	}
}
