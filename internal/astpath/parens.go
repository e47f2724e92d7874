package astpath

import "luapretty/internal/ast"

// NeedsParens decides whether node id, stored in field f of parent, must be
// parenthesized when printed. It only reads the tree.
//
// Rules:
//   - a call or "..." the source parenthesized keeps its parentheses, they
//     truncate a value list to one value;
//   - the base of a member, index or call must be a prefix expression;
//   - a binary operand binding weaker than its parent, or equally but on the
//     side the operator does not associate to, is wrapped;
//   - a unary expression as the left operand of "^" is wrapped;
//   - a binary operand of a unary operator is wrapped unless it is "^";
//   - "-" directly under "-" is wrapped so it does not print as a comment;
//   - a function expression is wrapped as any operator operand.
func NeedsParens(t *ast.Tree, id, parent ast.NodeID, f ast.Field) bool {
	n, par := t.Node(id), t.Node(parent)
	if n == nil || par == nil {
		return false
	}
	if n.InParens && (n.Kind.IsCallLike() || n.Kind == ast.VarargLiteral) {
		return true
	}

	switch f {
	case ast.FieldBase:
		return !n.Kind.IsPrefixExp()
	case ast.FieldLeft, ast.FieldRight:
		if par.Kind != ast.BinaryExpression && par.Kind != ast.LogicalExpression {
			return false
		}
		return operandNeedsParens(n, par.Op, f == ast.FieldLeft)
	case ast.FieldArgument:
		if par.Kind != ast.UnaryExpression {
			return false
		}
		switch n.Kind {
		case ast.BinaryExpression, ast.LogicalExpression:
			return n.Op != "^"
		case ast.UnaryExpression:
			return par.Op == "-" && n.Op == "-"
		case ast.FunctionDeclaration:
			return true
		}
	}
	return false
}

func operandNeedsParens(n *ast.Node, parentOp string, left bool) bool {
	switch n.Kind {
	case ast.BinaryExpression, ast.LogicalExpression:
		childPrio, _, ok := ast.BinaryPriority(n.Op)
		parentPrio, _, pok := ast.BinaryPriority(parentOp)
		if !ok || !pok {
			return false
		}
		switch {
		case childPrio < parentPrio:
			return true
		case childPrio > parentPrio:
			return false
		}
		// одинаковый приоритет: скобки там, куда оператор не ассоциирует
		if left {
			return ast.IsRightAssoc(parentOp)
		}
		return !ast.IsRightAssoc(parentOp)
	case ast.UnaryExpression:
		return left && parentOp == "^"
	case ast.FunctionDeclaration:
		return true
	}
	return false
}
