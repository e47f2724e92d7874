package comments

import (
	"luapretty/internal/ast"
	"luapretty/internal/astpath"
	"luapretty/internal/doc"
	"luapretty/internal/source"
)

// PrintLeading prints a comment placed before its node. A block comment
// followed by code on the same line keeps it there; a line comment ends the
// line and keeps one blank line after it if the source had one.
func PrintLeading(text string, c *ast.Comment) *doc.Doc {
	end := int(c.Span.End)
	if c.IsBlock() {
		if source.HasCommentNewline(text, end) {
			return doc.Concat(doc.Text(c.Raw), doc.Hardline)
		}
		return doc.Concat(doc.Text(c.Raw), doc.Text(" "))
	}
	parts := []*doc.Doc{doc.Text(c.Raw), doc.Hardline}
	if source.IsNextLineEmpty(text, end) {
		parts = append(parts, doc.Hardline)
	}
	return doc.Concat(parts...)
}

// PrintTrailing prints a comment placed after its node. An own-line comment
// goes on a new line (after a blank line if the source had one); a same-line
// block comment follows after a space; a same-line line comment is deferred
// to the end of the line.
func PrintTrailing(text string, c *ast.Comment) *doc.Doc {
	start := int(c.Span.Start)
	if source.HasNewline(text, start, source.Backward) {
		var blank *doc.Doc
		if source.IsPreviousLineEmpty(text, start) {
			blank = doc.Hardline
		}
		return doc.Concat(doc.Hardline, blank, doc.Text(c.Raw))
	}
	if c.IsBlock() {
		return doc.Concat(doc.Text(" "), doc.Text(c.Raw))
	}
	return doc.Concat(doc.LineSuffix(doc.Text(" "+c.Raw)), doc.BreakParent)
}

// PrintComments surrounds printed with the leading and trailing comments of
// the current node.
func PrintComments(p *astpath.Path, printed *doc.Doc) *doc.Doc {
	t := p.Tree()
	ids := p.Node().Comments
	if len(ids) == 0 {
		return printed
	}
	text := t.Text()
	var leading, trailing []*doc.Doc
	for _, id := range ids {
		c := t.Comment(id)
		if InClauseBody(t, c) {
			continue
		}
		switch c.Role {
		case ast.Leading:
			leading = append(leading, PrintLeading(text, c))
		case ast.Trailing:
			trailing = append(trailing, PrintTrailing(text, c))
		}
	}
	if leading == nil && trailing == nil {
		return printed
	}
	parts := append(leading, printed)
	return doc.Concat(append(parts, trailing...)...)
}

// PrintDangling prints the dangling comments of the current node one per
// line. Unless sameIndent is set they open an indented block.
func PrintDangling(p *astpath.Path, sameIndent bool) *doc.Doc {
	raws := raws(p, ast.Dangling)
	if len(raws) == 0 {
		return nil
	}
	joined := doc.Join(doc.Hardline, raws)
	if sameIndent {
		return joined
	}
	return doc.Indent(doc.Hardline, joined)
}

// PrintDanglingStatement prints header comments inline, each after a space.
func PrintDanglingStatement(p *astpath.Path) *doc.Doc {
	var parts []*doc.Doc
	for _, r := range raws(p, ast.DanglingStatement) {
		parts = append(parts, doc.Text(" "), r)
	}
	return doc.Concat(parts...)
}

// PrintDanglingSuffix prints dangling comments of a node that has no block
// to host them as end-of-line comments. A comment after a line comment
// starts a new line.
func PrintDanglingSuffix(p *astpath.Path) *doc.Doc {
	t := p.Tree()
	var parts []*doc.Doc
	open := false
	for _, id := range p.Node().Comments {
		c := t.Comment(id)
		if c.Role != ast.Dangling {
			continue
		}
		sep := doc.Text(" ")
		if open {
			sep = doc.Hardline
		}
		parts = append(parts, doc.LineSuffix(sep, doc.Text(c.Raw)))
		open = !c.IsBlock()
	}
	if parts == nil {
		return nil
	}
	return doc.Concat(append(parts, doc.BreakParent)...)
}

// InClauseBody reports whether c is an own-line comment between the body of
// an if clause and the keyword after it. Such comments are printed by
// PrintClauseComments at body indentation instead of around their owner.
func InClauseBody(t *ast.Tree, c *ast.Comment) bool {
	if !t.Kind(c.Owner).IsClause() {
		return false
	}
	switch c.Role {
	case ast.Leading:
		if prev := t.Node(c.Preceding); prev == nil || !prev.Kind.IsClause() || len(prev.Body) == 0 {
			return false
		}
	case ast.Trailing:
	default:
		return false
	}
	return source.HasNewline(t.Text(), int(c.Span.Start), source.Backward)
}

// PrintClauseComments prints the comments kept between clause before and the
// clause after it (or "end" when after is zero), one per line, one level
// deeper than the clause keywords.
func PrintClauseComments(t *ast.Tree, before, after ast.NodeID) *doc.Doc {
	var out []*doc.Doc
	collect := func(owner ast.NodeID, role ast.Role) {
		n := t.Node(owner)
		if n == nil {
			return
		}
		for _, id := range n.Comments {
			if c := t.Comment(id); c.Role == role && InClauseBody(t, c) {
				out = append(out, doc.Text(c.Raw))
			}
		}
	}
	collect(before, ast.Trailing)
	collect(after, ast.Leading)
	if out == nil {
		return nil
	}
	return doc.Indent(doc.Hardline, doc.Join(doc.Hardline, out))
}

// HasDangling reports whether the current node owns dangling comments.
func HasDangling(p *astpath.Path) bool {
	return len(raws(p, ast.Dangling)) > 0
}

func raws(p *astpath.Path, role ast.Role) []*doc.Doc {
	t := p.Tree()
	var out []*doc.Doc
	for _, id := range p.Node().Comments {
		if c := t.Comment(id); c.Role == role {
			out = append(out, doc.Text(c.Raw))
		}
	}
	return out
}
