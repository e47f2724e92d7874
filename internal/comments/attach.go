// Package comments attaches source comments to syntax nodes and prints them
// around the nodes they belong to.
//
// Attach runs once per tree. For every comment it finds the innermost node
// containing it and the nearest children before and after it, then picks an
// owner and a role (ast.Leading, ast.Trailing, ast.Dangling or
// ast.DanglingStatement). No comment is dropped: the tree root is the owner
// of last resort.
package comments

import (
	"strings"

	"luapretty/internal/ast"
	"luapretty/internal/source"
)

// InjectShebang adds the "#!" first line as an ordinary comment so that it
// is attached and printed like the others. It must run before Attach.
func InjectShebang(t *ast.Tree) {
	text := t.Text()
	if !strings.HasPrefix(text, "#!") {
		return
	}
	end := strings.IndexByte(text, '\n')
	if end < 0 {
		end = len(text)
	}
	t.PrependComment(ast.Comment{
		Raw:   text[:end],
		Value: text[2:end],
		Span:  source.Span{File: t.File.ID, Start: 0, End: uint32(end)}, //nolint:gosec // bounded by file size
	})
}

// Attach classifies every comment of t and appends it to its owner's
// Comments list.
func Attach(t *ast.Tree) {
	text := t.Text()
	var prev *ast.Comment
	for i := range t.Comments {
		id := ast.CommentID(i + 1) //nolint:gosec // bounded by source size
		c := &t.Comments[i]
		decorate(t, c)

		// подряд идущие комментарии с той же парой соседей наследуют роль
		if prev != nil && prev.Preceding == c.Preceding && prev.Following == c.Following &&
			prev.Span.End <= c.Span.Start && prev.Owner.IsValid() &&
			(prev.Role == ast.Leading || prev.Role == ast.Trailing) {
			add(t, prev.Owner, id, prev.Role)
			prev = c
			continue
		}
		prev = c

		if source.HasNewline(text, int(c.Span.Start), source.Backward) {
			attachOwnLine(t, id, c)
		} else {
			attachSameLine(t, id, c)
		}
	}
}

func attachOwnLine(t *ast.Tree, id ast.CommentID, c *ast.Comment) {
	switch {
	case handleEmptyBody(t, id, c),
		handleEmptyFunction(t, id, c),
		handleIfClauses(t, id, c),
		handleEmptyCall(t, id, c):
	case c.Following.IsValid():
		add(t, c.Following, id, ast.Leading)
	case c.Preceding.IsValid():
		add(t, c.Preceding, id, ast.Trailing)
	case c.Enclosing.IsValid():
		add(t, c.Enclosing, id, ast.Dangling)
	default:
		add(t, t.Root, id, ast.Dangling)
	}
}

func attachSameLine(t *ast.Tree, id ast.CommentID, c *ast.Comment) {
	switch {
	case handleHeaderComment(t, id, c),
		handleEmptyClause(t, id, c):
	case c.Preceding.IsValid():
		add(t, c.Preceding, id, ast.Trailing)
	case c.Following.IsValid():
		add(t, c.Following, id, ast.Leading)
	case c.Enclosing.IsValid():
		add(t, c.Enclosing, id, ast.Dangling)
	default:
		add(t, t.Root, id, ast.Dangling)
	}
}

func add(t *ast.Tree, owner ast.NodeID, id ast.CommentID, role ast.Role) {
	c := t.Comment(id)
	c.Role = role
	c.Owner = owner
	n := t.Node(owner)
	n.Comments = append(n.Comments, id)
}

// decorate binary-searches the sorted children level by level, descending
// into the child that contains c. At the innermost level it records the
// closest children before and after c.
func decorate(t *ast.Tree, c *ast.Comment) {
	node := t.Root
	for {
		kids := t.Children(node)
		var preceding, following ast.NodeID
		descend := false
		lo, hi := 0, len(kids)
		for lo < hi {
			mid := (lo + hi) / 2
			sp := t.Node(kids[mid]).Span
			switch {
			case sp.Start <= c.Span.Start && c.Span.End <= sp.End:
				c.Enclosing = kids[mid]
				node = kids[mid]
				descend = true
			case sp.End <= c.Span.Start:
				preceding = kids[mid]
				lo = mid + 1
				continue
			case c.Span.End <= sp.Start:
				following = kids[mid]
				hi = mid
				continue
			}
			// либо нашли вмещающий узел, либо частичное перекрытие
			break
		}
		if !descend {
			c.Preceding = preceding
			c.Following = following
			return
		}
	}
}
