// Package printer turns an annotated syntax tree into a doc.Doc.
//
// Print walks the tree with an astpath.Path, dispatching on node kind. Every
// node is wrapped in parentheses when its position requires them and
// surrounded by its attached comments. The finished document has its breaks
// propagated and is ready for doc.Render.
package printer

import (
	"errors"
	"fmt"

	"luapretty/internal/ast"
	"luapretty/internal/astpath"
	"luapretty/internal/comments"
	"luapretty/internal/doc"
	"luapretty/internal/source"
)

var (
	// ErrUnhandledNode reports a node kind the printer does not know.
	ErrUnhandledNode = errors.New("printer: unhandled node kind")
	// ErrContract reports a printing routine invoked on the wrong input.
	ErrContract = errors.New("printer: internal contract violated")
)

// Options controls the printed form of literals.
type Options struct {
	Quotemark Quotemark
}

type printer struct {
	tree *ast.Tree
	text string
	opt  Options
}

// failure carries an internal error through the recursive walk.
type failure struct{ err error }

// Print builds the document for tree. Comments must already be attached.
// On failure no document is returned.
func Print(tree *ast.Tree, opt Options) (d *doc.Doc, err error) {
	if tree == nil || !tree.Root.IsValid() {
		return nil, fmt.Errorf("%w: nil tree", ErrContract)
	}
	defer func() {
		if r := recover(); r != nil {
			f, ok := r.(failure)
			if !ok {
				panic(r)
			}
			d, err = nil, f.err
		}
	}()
	p := &printer{tree: tree, text: tree.Text(), opt: opt}
	d = p.print(astpath.New(tree))
	doc.PropagateBreaks(d)
	return d, nil
}

func (p *printer) fail(sentinel error, format string, args ...any) {
	panic(failure{err: fmt.Errorf("%w: %s", sentinel, fmt.Sprintf(format, args...))})
}

// print prints the current node with its parentheses and comments.
func (p *printer) print(path *astpath.Path) *doc.Doc {
	printed := p.printNoParens(path)
	if k := path.Node().Kind; !k.HasBody() && k != ast.TableConstructorExpression {
		printed = p.withDangling(path, printed)
	}
	if path.NeedsParens() {
		printed = doc.Concat(doc.Text("("), printed, doc.Text(")"))
	}
	return comments.PrintComments(path, printed)
}

func (p *printer) child(path *astpath.Path, f ast.Field) *doc.Doc {
	return astpath.Descend(path, f, p.print)
}

func (p *printer) list(path *astpath.Path, f ast.Field) []*doc.Doc {
	return astpath.DescendEach(path, f, p.print)
}

func (p *printer) printNoParens(path *astpath.Path) *doc.Doc {
	n := path.Node()
	switch n.Kind {
	case ast.Chunk:
		return p.printChunk(path)
	case ast.LabelStatement:
		return doc.Concat(doc.Text("::"), p.child(path, ast.FieldLabel), doc.Text("::"))
	case ast.GotoStatement:
		return doc.Concat(doc.Text("goto "), p.child(path, ast.FieldLabel))
	case ast.BreakStatement:
		return doc.Text("break")
	case ast.ReturnStatement:
		return p.printReturn(path)
	case ast.WhileStatement:
		return doc.Concat(
			doc.Text("while "), p.child(path, ast.FieldCondition), doc.Text(" do"),
			p.printBody(path),
			doc.Hardline, doc.Text("end"),
		)
	case ast.DoStatement:
		return doc.Concat(doc.Text("do"), p.printBody(path), doc.Hardline, doc.Text("end"))
	case ast.RepeatStatement:
		return doc.Concat(
			doc.Text("repeat"), p.printBody(path),
			doc.Hardline, doc.Text("until "), p.child(path, ast.FieldCondition),
		)
	case ast.LocalStatement, ast.AssignmentStatement:
		return p.printAssignment(path)
	case ast.CallStatement:
		return p.child(path, ast.FieldExpression)
	case ast.FunctionDeclaration:
		return p.printFunction(path)
	case ast.ForNumericStatement:
		return p.printForNumeric(path)
	case ast.ForGenericStatement:
		return doc.Concat(
			doc.Text("for "), doc.Join(doc.Text(", "), p.list(path, ast.FieldVariables)),
			doc.Text(" in "), doc.Join(doc.Text(", "), p.list(path, ast.FieldIterators)),
			doc.Text(" do"), p.printBody(path),
			doc.Hardline, doc.Text("end"),
		)
	case ast.IfStatement:
		return p.printIf(path)
	case ast.IfClause:
		return doc.Concat(doc.Text("if "), p.printCondition(path), doc.Text(" then"), p.printBody(path))
	case ast.ElseifClause:
		return doc.Concat(doc.Text("elseif "), p.printCondition(path), doc.Text(" then"), p.printBody(path))
	case ast.ElseClause:
		return doc.Concat(doc.Text("else"), p.printBody(path))

	case ast.Identifier, ast.BooleanLiteral, ast.NumericLiteral:
		return doc.Text(n.Raw)
	case ast.NilLiteral:
		return doc.Text("nil")
	case ast.VarargLiteral:
		return doc.Text("...")
	case ast.StringLiteral:
		return p.printString(path)
	case ast.BinaryExpression, ast.LogicalExpression:
		return p.printBinary(path)
	case ast.UnaryExpression:
		return p.printUnary(path)
	case ast.MemberExpression:
		return doc.Concat(
			p.child(path, ast.FieldBase), doc.Text(n.Indexer), p.child(path, ast.FieldIdentifier),
		)
	case ast.IndexExpression:
		return p.printIndex(path)
	case ast.CallExpression:
		return p.printCall(path)
	case ast.TableCallExpression, ast.StringCallExpression:
		return doc.Concat(p.child(path, ast.FieldBase), doc.Text(" "), p.child(path, ast.FieldArgument))
	case ast.TableConstructorExpression:
		return p.printTable(path)
	case ast.TableKeyString:
		return doc.Concat(p.child(path, ast.FieldKey), doc.Text(" = "), p.child(path, ast.FieldValue))
	case ast.TableKey:
		return p.printTableKey(path)
	case ast.TableValue:
		return p.child(path, ast.FieldValue)
	}
	p.fail(ErrUnhandledNode, "%s at %s", n.Kind, p.pos(n))
	return nil
}

// withDangling appends the dangling comments of a node that has no block to
// host them as end-of-line comments.
func (p *printer) withDangling(path *astpath.Path, printed *doc.Doc) *doc.Doc {
	if !comments.HasDangling(path) {
		return printed
	}
	return doc.Concat(printed, comments.PrintDanglingSuffix(path))
}

func (p *printer) pos(n *ast.Node) string {
	lc := p.tree.Pos(n.Span.Start)
	return fmt.Sprintf("%s:%d:%d", p.tree.File.Path, lc.Line, lc.Col)
}

// printStatements joins the statements of the current node's body with hard
// lines. A blank line in the source between two statements is kept as
// exactly one blank line.
func (p *printer) printStatements(path *astpath.Path) *doc.Doc {
	body := path.Node().Body
	printed := make([]*doc.Doc, 0, len(body))
	astpath.DescendEach(path, ast.FieldBody, func(sp *astpath.Path) struct{} {
		parts := []*doc.Doc{p.print(sp)}
		if sp.Frame().Index < len(body)-1 && source.IsNextLineEmpty(p.text, p.statementEnd(sp.Node())) {
			parts = append(parts, doc.Hardline)
		}
		printed = append(printed, doc.Concat(parts...))
		return struct{}{}
	})
	return doc.Join(doc.Hardline, printed)
}

// statementEnd is where a statement ends in the source including the
// comments that trail it on lines of their own.
func (p *printer) statementEnd(n *ast.Node) int {
	end := n.Span.End
	for _, id := range n.Comments {
		if c := p.tree.Comment(id); c.Role == ast.Trailing && c.Span.End > end {
			end = c.Span.End
		}
	}
	return int(end)
}

// printBody prints what follows a block header: comments kept on the header
// line, the indented statements and the dangling comments of the block.
func (p *printer) printBody(path *astpath.Path) *doc.Doc {
	parts := []*doc.Doc{comments.PrintDanglingStatement(path)}
	if len(path.Node().Body) > 0 {
		parts = append(parts, doc.Indent(doc.Hardline, p.printStatements(path)))
	}
	parts = append(parts, comments.PrintDangling(path, false))
	return doc.Concat(parts...)
}
