package parser

import (
	"fmt"

	"luapretty/internal/ast"
	"luapretty/internal/diag"
	"luapretty/internal/token"
)

// blockEnds reports whether the current token closes a block.
func (p *Parser) blockEnds() bool {
	switch p.tok.Kind {
	case token.EOF, token.KwEnd, token.KwElse, token.KwElseif, token.KwUntil:
		return true
	}
	return false
}

// parseBlock читает операторы до конца блока; return может быть только последним.
func (p *Parser) parseBlock() []ast.NodeID {
	var body []ast.NodeID
	for !p.blockEnds() {
		if p.accept(token.Semicolon) {
			continue
		}
		if p.at(token.KwReturn) {
			body = append(body, p.parseReturn())
			p.accept(token.Semicolon)
			if !p.blockEnds() {
				p.fail(diag.SynTrailingInput, p.tok.Span, fmt.Sprintf("'<eof>' expected near %s", p.near()))
			}
			break
		}
		body = append(body, p.parseStatement())
	}
	return body
}

func (p *Parser) parseStatement() ast.NodeID {
	start := p.tok.Span.Start
	switch p.tok.Kind {
	case token.ColonColon:
		return p.parseLabel()
	case token.KwBreak:
		p.next()
		return p.tree.New(ast.BreakStatement, p.from(start))
	case token.KwGoto:
		if p.opts.Version.hasGoto() {
			return p.parseGoto()
		}
	case token.KwDo:
		return p.parseDo()
	case token.KwWhile:
		return p.parseWhile()
	case token.KwRepeat:
		return p.parseRepeat()
	case token.KwIf:
		return p.parseIf()
	case token.KwFor:
		return p.parseFor()
	case token.KwFunction:
		return p.parseFunctionStatement()
	case token.KwLocal:
		p.next()
		if p.at(token.KwFunction) {
			return p.parseLocalFunction(start)
		}
		return p.parseLocal(start)
	}
	return p.parseExpressionStatement()
}

func (p *Parser) parseLabel() ast.NodeID {
	open := p.next()
	if !p.opts.Version.hasGoto() {
		p.fail(diag.SynUnsupportedSyntax, open.Span, fmt.Sprintf("labels require lua 5.2 or later (targeting %s)", p.opts.Version))
	}
	name := p.parseName()
	p.expect(token.ColonColon, diag.SynUnexpectedToken, "::")
	id := p.tree.New(ast.LabelStatement, p.from(open.Span.Start))
	p.node(id).Label = name
	return id
}

func (p *Parser) parseGoto() ast.NodeID {
	kw := p.next()
	name := p.parseName()
	id := p.tree.New(ast.GotoStatement, p.from(kw.Span.Start))
	p.node(id).Label = name
	return id
}

func (p *Parser) parseReturn() ast.NodeID {
	kw := p.next()
	var args []ast.NodeID
	if !p.blockEnds() && !p.at(token.Semicolon) {
		args = p.parseExpressionList()
	}
	id := p.tree.New(ast.ReturnStatement, p.from(kw.Span.Start))
	p.node(id).Arguments = args
	return id
}

func (p *Parser) parseDo() ast.NodeID {
	kw := p.next()
	body := p.parseBlock()
	p.expectMatch(token.KwEnd, diag.SynExpectEnd, "end", "do", kw.Span)
	id := p.tree.New(ast.DoStatement, p.from(kw.Span.Start))
	p.node(id).Body = body
	return id
}

func (p *Parser) parseWhile() ast.NodeID {
	kw := p.next()
	cond := p.parseExpectedExpression()
	p.expect(token.KwDo, diag.SynExpectDo, "do")
	body := p.parseBlock()
	p.expectMatch(token.KwEnd, diag.SynExpectEnd, "end", "while", kw.Span)
	id := p.tree.New(ast.WhileStatement, p.from(kw.Span.Start))
	n := p.node(id)
	n.Condition = cond
	n.Body = body
	return id
}

func (p *Parser) parseRepeat() ast.NodeID {
	kw := p.next()
	body := p.parseBlock()
	p.expectMatch(token.KwUntil, diag.SynExpectUntil, "until", "repeat", kw.Span)
	cond := p.parseExpectedExpression()
	id := p.tree.New(ast.RepeatStatement, p.from(kw.Span.Start))
	n := p.node(id)
	n.Body = body
	n.Condition = cond
	return id
}

// parseIf строит IfStatement; каждая ветка заканчивается на последнем токене своего тела.
func (p *Parser) parseIf() ast.NodeID {
	kw := p.tok
	var clauses []ast.NodeID
	for {
		clauseStart := p.tok.Span.Start
		kind := ast.IfClause
		if p.at(token.KwElseif) {
			kind = ast.ElseifClause
		}
		p.next()
		cond := p.parseExpectedExpression()
		p.expect(token.KwThen, diag.SynExpectThen, "then")
		body := p.parseBlock()
		clause := p.tree.New(kind, p.from(clauseStart))
		c := p.node(clause)
		c.Condition = cond
		c.Body = body
		clauses = append(clauses, clause)
		if !p.at(token.KwElseif) {
			break
		}
	}
	if p.at(token.KwElse) {
		elseStart := p.next().Span.Start
		body := p.parseBlock()
		clause := p.tree.New(ast.ElseClause, p.from(elseStart))
		p.node(clause).Body = body
		clauses = append(clauses, clause)
	}
	p.expectMatch(token.KwEnd, diag.SynExpectEnd, "end", "if", kw.Span)
	id := p.tree.New(ast.IfStatement, p.from(kw.Span.Start))
	p.node(id).Clauses = clauses
	return id
}

func (p *Parser) parseFor() ast.NodeID {
	kw := p.next()
	first := p.parseName()

	if p.accept(token.Assign) {
		start := p.parseExpectedExpression()
		p.expect(token.Comma, diag.SynForBadHeader, ",")
		end := p.parseExpectedExpression()
		step := ast.NoNodeID
		if p.accept(token.Comma) {
			step = p.parseExpectedExpression()
		}
		p.expect(token.KwDo, diag.SynExpectDo, "do")
		body := p.parseBlock()
		p.expectMatch(token.KwEnd, diag.SynExpectEnd, "end", "for", kw.Span)
		id := p.tree.New(ast.ForNumericStatement, p.from(kw.Span.Start))
		n := p.node(id)
		n.Variable = first
		n.Start = start
		n.End = end
		n.Step = step
		n.Body = body
		return id
	}

	if !p.at(token.Comma) && !p.at(token.KwIn) {
		p.fail(diag.SynForBadHeader, p.tok.Span, fmt.Sprintf("'=' or 'in' expected near %s", p.near()))
	}
	vars := []ast.NodeID{first}
	for p.accept(token.Comma) {
		vars = append(vars, p.parseName())
	}
	p.expect(token.KwIn, diag.SynForBadHeader, "in")
	iters := p.parseExpressionList()
	p.expect(token.KwDo, diag.SynExpectDo, "do")
	body := p.parseBlock()
	p.expectMatch(token.KwEnd, diag.SynExpectEnd, "end", "for", kw.Span)
	id := p.tree.New(ast.ForGenericStatement, p.from(kw.Span.Start))
	n := p.node(id)
	n.Variables = vars
	n.Iterators = iters
	n.Body = body
	return id
}

// parseFunctionStatement: function a.b.c:m(...) ... end
func (p *Parser) parseFunctionStatement() ast.NodeID {
	kw := p.next()
	name := p.parseName()
	for p.at(token.Dot) || p.at(token.Colon) {
		indexer := p.next().Text
		field := p.parseName()
		member := p.tree.New(ast.MemberExpression, p.from(p.node(name).Span.Start))
		m := p.node(member)
		m.Base = name
		m.Indexer = indexer
		m.Identifier = field
		name = member
		if indexer == ":" {
			break
		}
	}
	return p.parseFunctionBody(kw.Span.Start, name, false, kw)
}

func (p *Parser) parseLocalFunction(start uint32) ast.NodeID {
	kw := p.next()
	name := p.parseName()
	return p.parseFunctionBody(start, name, true, kw)
}

func (p *Parser) parseLocal(start uint32) ast.NodeID {
	vars := []ast.NodeID{p.parseName()}
	for p.accept(token.Comma) {
		vars = append(vars, p.parseName())
	}
	var init []ast.NodeID
	if p.accept(token.Assign) {
		init = p.parseExpressionList()
	}
	id := p.tree.New(ast.LocalStatement, p.from(start))
	n := p.node(id)
	n.Variables = vars
	n.Init = init
	return id
}

// parseExpressionStatement разбирает присваивание или вызов.
func (p *Parser) parseExpressionStatement() ast.NodeID {
	start := p.tok.Span.Start
	first := p.parseSuffixedExpression()

	if p.at(token.Assign) || p.at(token.Comma) {
		vars := []ast.NodeID{p.checkAssignable(first)}
		for p.accept(token.Comma) {
			vars = append(vars, p.checkAssignable(p.parseSuffixedExpression()))
		}
		p.expect(token.Assign, diag.SynExpectAssign, "=")
		init := p.parseExpressionList()
		id := p.tree.New(ast.AssignmentStatement, p.from(start))
		n := p.node(id)
		n.Variables = vars
		n.Init = init
		return id
	}

	fn := p.node(first)
	if !fn.Kind.IsCallLike() {
		p.fail(diag.SynUnexpectedToken, p.tok.Span, fmt.Sprintf("syntax error near %s", p.near()))
	}
	id := p.tree.New(ast.CallStatement, p.from(start))
	p.node(id).Expression = first
	return id
}

func (p *Parser) checkAssignable(id ast.NodeID) ast.NodeID {
	n := p.node(id)
	switch n.Kind {
	case ast.Identifier, ast.MemberExpression, ast.IndexExpression:
	default:
		p.fail(diag.SynNotAssignable, n.Span, "cannot assign to this expression")
	}
	if n.InParens {
		p.fail(diag.SynNotAssignable, n.Span, "cannot assign to a parenthesized expression")
	}
	return id
}
