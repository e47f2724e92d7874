package comments

import "luapretty/internal/ast"

// handleEmptyBody: an own-line comment inside a construct with an empty body
// stays inside it.
func handleEmptyBody(t *ast.Tree, id ast.CommentID, c *ast.Comment) bool {
	n := t.Node(c.Enclosing)
	if n == nil || !n.Kind.HasBody() || len(n.Body) > 0 {
		return false
	}
	add(t, c.Enclosing, id, ast.Dangling)
	return true
}

// handleEmptyFunction: an own-line comment after the name or parameters of a
// function with an empty body.
func handleEmptyFunction(t *ast.Tree, id ast.CommentID, c *ast.Comment) bool {
	n := t.Node(c.Enclosing)
	if n == nil || n.Kind != ast.FunctionDeclaration || len(n.Body) > 0 {
		return false
	}
	if last := n.Last(ast.FieldParameters); last.IsValid() && last == c.Preceding {
		add(t, c.Enclosing, id, ast.Dangling)
		return true
	}
	if t.Kind(c.Preceding) == ast.Identifier {
		add(t, c.Enclosing, id, ast.Dangling)
		return true
	}
	return false
}

// handleIfClauses: an own-line comment after an empty clause, when an
// elseif or else follows or the clause is the else itself, stays inside that
// clause. Anything else falls through to the generic rules.
func handleIfClauses(t *ast.Tree, id ast.CommentID, c *ast.Comment) bool {
	if t.Kind(c.Enclosing) != ast.IfStatement {
		return false
	}
	clause := t.Node(c.Preceding)
	if clause == nil || !clause.Kind.IsClause() || len(clause.Body) > 0 {
		return false
	}
	next := t.Kind(c.Following)
	if next != ast.ElseifClause && next != ast.ElseClause && clause.Kind != ast.ElseClause {
		return false
	}
	add(t, c.Preceding, id, ast.Dangling)
	return true
}

// handleEmptyCall: an own-line comment between the parentheses of a call
// without arguments. Left to the generic rules it would trail the callee and
// end up between the callee and "(".
func handleEmptyCall(t *ast.Tree, id ast.CommentID, c *ast.Comment) bool {
	n := t.Node(c.Enclosing)
	if n == nil || n.Kind != ast.CallExpression || len(n.Arguments) > 0 || c.Preceding != n.Base {
		return false
	}
	add(t, c.Enclosing, id, ast.Dangling)
	return true
}

// handleHeaderComment: a same-line line comment right after a block header
// (loop condition, function signature, for range, if condition, "do",
// "repeat" or "else") stays on the header line.
func handleHeaderComment(t *ast.Tree, id ast.CommentID, c *ast.Comment) bool {
	if c.IsBlock() {
		return false
	}
	n := t.Node(c.Enclosing)
	if n == nil {
		return false
	}
	match := false
	switch n.Kind {
	case ast.WhileStatement:
		match = c.Preceding == n.Condition
	case ast.DoStatement, ast.RepeatStatement, ast.ElseClause:
		match = !c.Preceding.IsValid()
	case ast.FunctionDeclaration:
		last := n.Last(ast.FieldParameters)
		match = (last.IsValid() && c.Preceding == last) || c.Preceding == n.Identifier
	case ast.ForNumericStatement:
		match = c.Preceding == n.End || (n.Step.IsValid() && c.Preceding == n.Step)
	case ast.ForGenericStatement:
		match = c.Preceding == n.Last(ast.FieldIterators)
	case ast.IfClause, ast.ElseifClause:
		if c.Preceding == n.Condition {
			cond := t.Node(n.Condition)
			match = t.Pos(c.Span.Start).Col > t.Pos(cond.Span.Start).Col
		}
	}
	if match {
		add(t, c.Enclosing, id, ast.DanglingStatement)
	}
	return match
}

// handleEmptyClause: a same-line comment after the header of an empty if
// clause.
func handleEmptyClause(t *ast.Tree, id ast.CommentID, c *ast.Comment) bool {
	if t.Kind(c.Enclosing) != ast.IfStatement {
		return false
	}
	n := t.Node(c.Preceding)
	if n == nil || !n.Kind.IsClause() || len(n.Body) > 0 {
		return false
	}
	add(t, c.Preceding, id, ast.DanglingStatement)
	return true
}
