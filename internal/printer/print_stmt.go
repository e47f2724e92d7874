package printer

import (
	"luapretty/internal/ast"
	"luapretty/internal/astpath"
	"luapretty/internal/comments"
	"luapretty/internal/doc"
)

var commaLine = doc.Concat(doc.Text(","), doc.Line)

func (p *printer) printChunk(path *astpath.Path) *doc.Doc {
	hasBody := len(path.Node().Body) > 0
	parts := []*doc.Doc{p.printStatements(path)}
	dangling := comments.PrintDangling(path, true)
	if dangling != nil && hasBody {
		parts = append(parts, doc.Hardline)
	}
	parts = append(parts, dangling)
	if hasBody || dangling != nil {
		parts = append(parts, doc.Hardline)
	}
	return doc.Concat(parts...)
}

func (p *printer) printReturn(path *astpath.Path) *doc.Doc {
	if len(path.Node().Arguments) == 0 {
		return doc.Text("return")
	}
	return doc.Concat(doc.Text("return "), doc.Join(doc.Text(", "), p.list(path, ast.FieldArguments)))
}

// printAssignment lays out local and plain assignments. The values may move
// to the next line only when none of them carries a table or function
// literal of its own and none is already broken.
func (p *printer) printAssignment(path *astpath.Path) *doc.Doc {
	n := path.Node()
	var local *doc.Doc
	if n.Kind == ast.LocalStatement {
		local = doc.Text("local ")
	}
	left := doc.Concat(local, doc.Indent(doc.Join(commaLine, p.list(path, ast.FieldVariables))))
	if len(n.Init) == 0 {
		return doc.Group(left)
	}

	init := p.list(path, ast.FieldInit)
	canBreak := false
	for i, id := range n.Init {
		if p.hugsLiteral(id) || doc.WillBreak(init[i]) {
			canBreak = false
			break
		}
		canBreak = true
	}
	gap := doc.Text(" ")
	if canBreak {
		gap = doc.Indent(doc.Line)
	}
	return doc.Group(left, doc.Group(doc.Text(" ="), gap, doc.Join(commaLine, init)))
}

// hugsLiteral reports whether id is a table or function literal, or a call
// taking one. Such values stay on the line of "=": whether they break later
// must not depend on the layout chosen for the assignment.
func (p *printer) hugsLiteral(id ast.NodeID) bool {
	n := p.tree.Node(id)
	switch n.Kind {
	case ast.TableConstructorExpression, ast.FunctionDeclaration, ast.TableCallExpression:
		return true
	case ast.CallExpression:
		for _, a := range n.Arguments {
			if k := p.tree.Kind(a); k == ast.TableConstructorExpression || k == ast.FunctionDeclaration {
				return true
			}
		}
	}
	return false
}

func (p *printer) printFunction(path *astpath.Path) *doc.Doc {
	n := path.Node()
	parts := make([]*doc.Doc, 0, 8)
	if n.IsLocal {
		parts = append(parts, doc.Text("local "))
	}
	parts = append(parts, doc.Text("function"))
	if n.Identifier.IsValid() {
		parts = append(parts, doc.Text(" "), p.child(path, ast.FieldIdentifier))
	}
	parts = append(parts,
		doc.Text("("),
		doc.Group(doc.Indent(doc.Softline, doc.Join(commaLine, p.list(path, ast.FieldParameters)))),
		doc.Text(")"),
		p.printBody(path),
		doc.Hardline, doc.Text("end"),
	)
	return doc.Concat(parts...)
}

func (p *printer) printForNumeric(path *astpath.Path) *doc.Doc {
	parts := []*doc.Doc{
		doc.Text("for "), p.child(path, ast.FieldVariable),
		doc.Text(" = "), p.child(path, ast.FieldStart),
		doc.Text(", "), p.child(path, ast.FieldEnd),
	}
	if path.Node().Step.IsValid() {
		parts = append(parts, doc.Text(", "), p.child(path, ast.FieldStep))
	}
	parts = append(parts, doc.Text(" do"), p.printBody(path), doc.Hardline, doc.Text("end"))
	return doc.Concat(parts...)
}

// printCondition prints an if or elseif condition; a condition too long for
// the line moves between "if" and "then" on lines of its own.
func (p *printer) printCondition(path *astpath.Path) *doc.Doc {
	return doc.Group(doc.Indent(doc.Softline, p.child(path, ast.FieldCondition)), doc.Softline)
}

// printIf joins the clauses. Own-line comments after a clause body stay
// indented with that body.
func (p *printer) printIf(path *astpath.Path) *doc.Doc {
	clauses := path.Node().Clauses
	parts := make([]*doc.Doc, 0, 3*len(clauses)+2)
	astpath.DescendEach(path, ast.FieldClauses, func(cp *astpath.Path) struct{} {
		if i := cp.Frame().Index; i > 0 {
			parts = append(parts, comments.PrintClauseComments(p.tree, clauses[i-1], clauses[i]), doc.Hardline)
		}
		parts = append(parts, p.print(cp))
		return struct{}{}
	})
	if len(clauses) > 0 {
		parts = append(parts, comments.PrintClauseComments(p.tree, clauses[len(clauses)-1], ast.NoNodeID))
	}
	return doc.Concat(append(parts, doc.Hardline, doc.Text("end"))...)
}
