package parser

import (
	"fmt"

	"luapretty/internal/ast"
	"luapretty/internal/diag"
	"luapretty/internal/token"
)

func (p *Parser) parseExpressionList() []ast.NodeID {
	list := []ast.NodeID{p.parseExpectedExpression()}
	for p.accept(token.Comma) {
		list = append(list, p.parseExpectedExpression())
	}
	return list
}

func (p *Parser) parseExpectedExpression() ast.NodeID {
	if !p.startsExpression() {
		p.fail(diag.SynExpectExpression, p.tok.Span, fmt.Sprintf("unexpected symbol near %s", p.near()))
	}
	return p.parseSubExpression(0)
}

func (p *Parser) startsExpression() bool {
	switch p.tok.Kind {
	case token.NumberLit, token.StringLit, token.KwNil, token.KwTrue, token.KwFalse,
		token.DotDotDot, token.LBrace, token.KwFunction, token.LParen, token.Ident,
		token.KwNot, token.Minus, token.Hash, token.Tilde:
		return true
	}
	return p.isName()
}

// parseSubExpression: разбор по приоритетам: операнд, затем операторы сильнее limit.
func (p *Parser) parseSubExpression(limit int) ast.NodeID {
	start := p.tok.Span.Start
	var left ast.NodeID
	if p.isUnaryOp() {
		op := p.next()
		if op.Kind == token.Tilde {
			p.requireBitwise(op)
		}
		arg := p.parseSubExpression(ast.PrioUnary)
		left = p.tree.New(ast.UnaryExpression, p.from(start))
		n := p.node(left)
		n.Op = op.Text
		n.Argument = arg
	} else {
		left = p.parseSimpleExpression()
	}

	for {
		lp, rp, ok := p.binaryOp()
		if !ok || lp <= limit {
			return left
		}
		op := p.next()
		switch op.Kind {
		case token.Amp, token.Pipe, token.Tilde, token.Shl, token.Shr, token.SlashSlash:
			p.requireBitwise(op)
		}
		right := p.parseSubExpression(rp)
		kind := ast.BinaryExpression
		if ast.IsLogicalOp(op.Text) {
			kind = ast.LogicalExpression
		}
		id := p.tree.New(kind, p.from(p.node(left).Span.Start))
		n := p.node(id)
		n.Op = op.Text
		n.Left = left
		n.Right = right
		left = id
	}
}

func (p *Parser) isUnaryOp() bool {
	switch p.tok.Kind {
	case token.KwNot, token.Minus, token.Hash, token.Tilde:
		return true
	}
	return false
}

func (p *Parser) binaryOp() (left, right int, ok bool) {
	if !p.tok.Kind.IsPunctOrOp() && !p.at(token.KwAnd) && !p.at(token.KwOr) {
		return 0, 0, false
	}
	return ast.BinaryPriority(p.tok.Text)
}

func (p *Parser) requireBitwise(op token.Token) {
	if !p.opts.Version.hasBitwise() {
		p.fail(diag.SynUnsupportedSyntax, op.Span,
			fmt.Sprintf("operator '%s' requires lua 5.3 (targeting %s)", op.Text, p.opts.Version))
	}
}

func (p *Parser) parseSimpleExpression() ast.NodeID {
	tok := p.tok
	var kind ast.Kind
	switch tok.Kind {
	case token.NumberLit:
		kind = ast.NumericLiteral
	case token.StringLit:
		kind = ast.StringLiteral
	case token.KwNil:
		kind = ast.NilLiteral
	case token.KwTrue, token.KwFalse:
		kind = ast.BooleanLiteral
	case token.DotDotDot:
		if !p.funcs[len(p.funcs)-1] {
			p.fail(diag.SynVarargOutsideFunc, tok.Span, "cannot use '...' outside a vararg function")
		}
		kind = ast.VarargLiteral
	case token.LBrace:
		return p.parseTable()
	case token.KwFunction:
		p.next()
		return p.parseFunctionBody(tok.Span.Start, ast.NoNodeID, false, tok)
	default:
		return p.parseSuffixedExpression()
	}
	p.next()
	return p.literal(kind, tok)
}

func (p *Parser) literal(kind ast.Kind, tok token.Token) ast.NodeID {
	id := p.tree.New(kind, tok.Span)
	p.node(id).Raw = tok.Text
	return id
}

// parsePrimaryExpression: Name | '(' expr ')'. Скобки расширяют спан выражения.
func (p *Parser) parsePrimaryExpression() ast.NodeID {
	if p.isName() {
		return p.parseName()
	}
	if !p.at(token.LParen) {
		p.fail(diag.SynExpectExpression, p.tok.Span, fmt.Sprintf("unexpected symbol near %s", p.near()))
	}
	open := p.next()
	inner := p.parseExpectedExpression()
	p.expectMatch(token.RParen, diag.SynUnclosedParen, ")", "(", open.Span)
	n := p.node(inner)
	n.InParens = true
	n.Span = p.from(open.Span.Start)
	return inner
}

func (p *Parser) parseSuffixedExpression() ast.NodeID {
	base := p.parsePrimaryExpression()
	start := p.node(base).Span.Start
	for {
		switch p.tok.Kind {
		case token.Dot:
			p.next()
			field := p.parseName()
			id := p.tree.New(ast.MemberExpression, p.from(start))
			n := p.node(id)
			n.Base = base
			n.Indexer = "."
			n.Identifier = field
			base = id
		case token.LBracket:
			open := p.next()
			index := p.parseExpectedExpression()
			p.expectMatch(token.RBracket, diag.SynUnclosedBracket, "]", "[", open.Span)
			id := p.tree.New(ast.IndexExpression, p.from(start))
			n := p.node(id)
			n.Base = base
			n.Index = index
			base = id
		case token.Colon:
			p.next()
			field := p.parseName()
			method := p.tree.New(ast.MemberExpression, p.from(start))
			m := p.node(method)
			m.Base = base
			m.Indexer = ":"
			m.Identifier = field
			if !p.at(token.LParen) && !p.at(token.StringLit) && !p.at(token.LBrace) {
				p.fail(diag.SynUnexpectedToken, p.tok.Span, fmt.Sprintf("function arguments expected near %s", p.near()))
			}
			base = p.parseCallArguments(method, start)
		case token.LParen, token.StringLit, token.LBrace:
			base = p.parseCallArguments(base, start)
		default:
			return base
		}
	}
}

func (p *Parser) parseCallArguments(base ast.NodeID, start uint32) ast.NodeID {
	switch p.tok.Kind {
	case token.StringLit:
		str := p.next()
		arg := p.literal(ast.StringLiteral, str)
		id := p.tree.New(ast.StringCallExpression, p.from(start))
		n := p.node(id)
		n.Base = base
		n.Argument = arg
		return id
	case token.LBrace:
		arg := p.parseTable()
		id := p.tree.New(ast.TableCallExpression, p.from(start))
		n := p.node(id)
		n.Base = base
		n.Argument = arg
		return id
	}
	open := p.next()
	var args []ast.NodeID
	if !p.at(token.RParen) {
		args = p.parseExpressionList()
	}
	p.expectMatch(token.RParen, diag.SynUnclosedParen, ")", "(", open.Span)
	id := p.tree.New(ast.CallExpression, p.from(start))
	n := p.node(id)
	n.Base = base
	n.Arguments = args
	return id
}

// parseFunctionBody читает "(params) block end" после ключевого слова function.
func (p *Parser) parseFunctionBody(start uint32, name ast.NodeID, local bool, kw token.Token) ast.NodeID {
	open := p.expect(token.LParen, diag.SynUnexpectedToken, "(")
	var params []ast.NodeID
	vararg := false
	if !p.at(token.RParen) {
		for {
			if p.at(token.DotDotDot) {
				params = append(params, p.literal(ast.VarargLiteral, p.next()))
				vararg = true
				break
			}
			params = append(params, p.parseName())
			if !p.accept(token.Comma) {
				break
			}
		}
	}
	p.expectMatch(token.RParen, diag.SynUnclosedParen, ")", "(", open.Span)

	p.funcs = append(p.funcs, vararg)
	body := p.parseBlock()
	p.funcs = p.funcs[:len(p.funcs)-1]
	p.expectMatch(token.KwEnd, diag.SynExpectEnd, "end", "function", kw.Span)

	id := p.tree.New(ast.FunctionDeclaration, p.from(start))
	n := p.node(id)
	n.Identifier = name
	n.IsLocal = local
	n.Parameters = params
	n.Body = body
	return id
}

func (p *Parser) parseTable() ast.NodeID {
	open := p.expect(token.LBrace, diag.SynUnexpectedToken, "{")
	var fields []ast.NodeID
	for !p.at(token.RBrace) {
		fields = append(fields, p.parseTableField())
		if !p.accept(token.Comma) && !p.accept(token.Semicolon) {
			break
		}
	}
	p.expectMatch(token.RBrace, diag.SynUnclosedBrace, "}", "{", open.Span)
	id := p.tree.New(ast.TableConstructorExpression, p.from(open.Span.Start))
	p.node(id).Fields = fields
	return id
}

func (p *Parser) parseTableField() ast.NodeID {
	start := p.tok.Span.Start
	switch {
	case p.at(token.LBracket):
		open := p.next()
		key := p.parseExpectedExpression()
		p.expectMatch(token.RBracket, diag.SynUnclosedBracket, "]", "[", open.Span)
		p.expect(token.Assign, diag.SynExpectAssign, "=")
		value := p.parseExpectedExpression()
		id := p.tree.New(ast.TableKey, p.from(start))
		n := p.node(id)
		n.Key = key
		n.Value = value
		return id
	case p.isName() && p.lx.Peek().Kind == token.Assign:
		key := p.parseName()
		p.next()
		value := p.parseExpectedExpression()
		id := p.tree.New(ast.TableKeyString, p.from(start))
		n := p.node(id)
		n.Key = key
		n.Value = value
		return id
	}
	value := p.parseExpectedExpression()
	id := p.tree.New(ast.TableValue, p.from(start))
	p.node(id).Value = value
	return id
}

// isName: в 5.1 "goto" это обычный идентификатор.
func (p *Parser) isName() bool {
	return p.at(token.Ident) || (p.at(token.KwGoto) && !p.opts.Version.hasGoto())
}

func (p *Parser) parseName() ast.NodeID {
	if !p.isName() {
		p.fail(diag.SynExpectIdentifier, p.tok.Span, fmt.Sprintf("<name> expected near %s", p.near()))
	}
	return p.literal(ast.Identifier, p.next())
}
