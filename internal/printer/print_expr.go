package printer

import (
	"strings"

	"luapretty/internal/ast"
	"luapretty/internal/astpath"
	"luapretty/internal/comments"
	"luapretty/internal/doc"
	"luapretty/internal/source"
)

// printBinary keeps the operator with its right operand. A chain of the same
// operator kind shares one group so that it breaks as a unit.
func (p *printer) printBinary(path *astpath.Path) *doc.Doc {
	n := path.Node()
	shouldGroup := path.ParentKind() != n.Kind &&
		p.tree.Kind(n.Left) != n.Kind &&
		p.tree.Kind(n.Right) != n.Kind
	left := p.child(path, ast.FieldLeft)
	right := doc.Concat(doc.Text(n.Op), doc.Line, p.child(path, ast.FieldRight))
	if shouldGroup {
		right = doc.Group(right)
	}
	return doc.Group(left, doc.Indent(doc.Text(" "), right))
}

func (p *printer) printUnary(path *astpath.Path) *doc.Doc {
	n := path.Node()
	op := n.Op
	if op == "not" {
		op += " "
	}
	return doc.Concat(doc.Text(op), p.child(path, ast.FieldArgument))
}

func (p *printer) printIndex(path *astpath.Path) *doc.Doc {
	index := p.child(path, ast.FieldIndex)
	if p.opensLongBracket(path.Node().Index) {
		return doc.Concat(p.child(path, ast.FieldBase), doc.Text("[ "), index, doc.Text(" ]"))
	}
	return doc.Concat(
		p.child(path, ast.FieldBase),
		doc.Text("["),
		doc.Group(doc.Indent(doc.Softline, index), doc.Softline),
		doc.Text("]"),
	)
}

func (p *printer) printTableKey(path *astpath.Path) *doc.Doc {
	key := p.child(path, ast.FieldKey)
	lb, rb := "[", "]"
	if p.opensLongBracket(path.Node().Key) {
		lb, rb = "[ ", " ]"
	}
	return doc.Concat(doc.Text(lb), key, doc.Text(rb), doc.Text(" = "), p.child(path, ast.FieldValue))
}

// opensLongBracket reports whether id prints starting with "[", which right
// after another "[" would read as a long bracket.
func (p *printer) opensLongBracket(id ast.NodeID) bool {
	n := p.tree.Node(id)
	return n != nil && n.Kind == ast.StringLiteral && strings.HasPrefix(n.Raw, "[")
}

// printCall breaks the argument list, one argument per line, when it does not
// fit or when one of the arguments is already broken.
func (p *printer) printCall(path *astpath.Path) *doc.Doc {
	base := p.child(path, ast.FieldBase)
	args := p.list(path, ast.FieldArguments)
	broken := false
	for _, a := range args {
		if doc.WillBreak(a) {
			broken = true
			break
		}
	}
	return doc.Concat(base, doc.GroupBreak(broken,
		doc.Text("("),
		doc.Indent(doc.Softline, doc.Join(commaLine, args)),
		doc.Softline,
		doc.Text(")"),
	))
}

// printTable keeps the single-line or multi-line shape the table had in the
// source.
func (p *printer) printTable(path *astpath.Path) *doc.Doc {
	n := path.Node()
	if len(n.Fields) == 0 {
		if !comments.HasDangling(path) {
			return doc.Text("{}")
		}
		return doc.Concat(doc.Text("{"), comments.PrintDangling(path, false), doc.Hardline, doc.Text("}"))
	}
	fields := astpath.DescendEach(path, ast.FieldFields, func(fp *astpath.Path) *doc.Doc {
		return doc.Group(p.print(fp))
	})
	multiline := source.HasNewlineInRange(p.text, int(n.Span.Start), int(n.Span.End))
	return doc.GroupBreak(multiline,
		doc.Text("{"),
		doc.Indent(doc.Softline, doc.Join(commaLine, fields)),
		doc.Softline,
		doc.Text("}"),
	)
}

func (p *printer) printString(path *astpath.Path) *doc.Doc {
	n := path.Node()
	if n.Kind != ast.StringLiteral {
		p.fail(ErrContract, "string literal expected, got %s at %s", n.Kind, p.pos(n))
	}
	return doc.Text(FormatString(n.Raw, p.opt.Quotemark))
}
