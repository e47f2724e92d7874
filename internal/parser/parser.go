package parser

import (
	"fmt"

	"luapretty/internal/ast"
	"luapretty/internal/diag"
	"luapretty/internal/lexer"
	"luapretty/internal/source"
	"luapretty/internal/token"
)

type Options struct {
	Version  Version
	Reporter diag.Reporter // если nil, диагностики собираются только в Result.Bag
}

type Result struct {
	Tree *ast.Tree
	Bag  *diag.Bag
}

// OK reports whether the file parsed without errors.
func (r Result) OK() bool {
	return r.Tree != nil && (r.Bag == nil || !r.Bag.HasErrors())
}

// Parser: состояние парсера на один файл.
type Parser struct {
	lx      *lexer.Lexer
	file    *source.File
	tree    *ast.Tree
	opts    Options
	rep     diag.Reporter
	tok     token.Token // текущий, ещё не съеденный токен
	lastEnd uint32      // конец последнего съеденного токена
	funcs   []bool      // стек функций: допускает ли каждая "..."
}

// bailout прерывает разбор на первой синтаксической ошибке.
type bailout struct{}

// ParseFile parses file into a tree. Parsing stops at the first error; on
// failure Result.Tree is nil and Result.Bag holds the reason.
func ParseFile(file *source.File, opts Options) (res Result) {
	if opts.Version == 0 {
		opts.Version = DefaultVersion
	}
	bag := diag.NewBag(0)
	var rep diag.Reporter = diag.BagReporter{Bag: bag}
	if opts.Reporter != nil {
		rep = teeReporter{rep, opts.Reporter}
	}

	p := &Parser{
		lx:   lexer.New(file, lexer.Options{Reporter: rep}),
		file: file,
		tree: ast.NewTree(file, uint(len(file.Content)/4)), //nolint:gosec // small
		opts: opts,
		rep:  rep,
	}

	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(bailout); !ok {
				panic(r)
			}
			res = Result{Bag: bag}
		}
	}()

	p.next()
	p.tree.Root = p.parseChunk()
	return Result{Tree: p.tree, Bag: bag}
}

func (p *Parser) parseChunk() ast.NodeID {
	end := uint32(len(p.file.Content)) //nolint:gosec // bounded by FileSet
	root := p.tree.New(ast.Chunk, p.span(0, end))
	p.funcs = append(p.funcs, true)
	body := p.parseBlock()
	if !p.at(token.EOF) {
		p.fail(diag.SynTrailingInput, p.tok.Span, fmt.Sprintf("'<eof>' expected near %s", p.near()))
	}
	p.tree.Node(root).Body = body
	return root
}

// next съедает текущий токен и подтягивает следующий, собирая комментарии из trivia.
func (p *Parser) next() token.Token {
	prev := p.tok
	p.lastEnd = prev.Span.End
	p.tok = p.lx.Next()
	for _, tr := range p.tok.Leading {
		if !tr.IsComment() {
			continue
		}
		p.tree.AddComment(ast.Comment{Raw: tr.Text, Value: tr.CommentValue(), Span: tr.Span})
	}
	if p.tok.Kind == token.Invalid {
		// лексер уже отчитался об ошибке
		panic(bailout{})
	}
	return prev
}

func (p *Parser) at(k token.Kind) bool {
	return p.tok.Kind == k
}

// accept съедает токен вида k, если он текущий.
func (p *Parser) accept(k token.Kind) bool {
	if p.at(k) {
		p.next()
		return true
	}
	return false
}

func (p *Parser) expect(k token.Kind, code diag.Code, what string) token.Token {
	if !p.at(k) {
		p.fail(code, p.tok.Span, fmt.Sprintf("'%s' expected near %s", what, p.near()))
	}
	return p.next()
}

// expectMatch checks the closing token of a construct opened at open.
func (p *Parser) expectMatch(k token.Kind, code diag.Code, what, opener string, open source.Span) {
	if p.at(k) {
		p.next()
		return
	}
	line := p.file.Position(open.Start).Line
	msg := fmt.Sprintf("'%s' expected near %s", what, p.near())
	if line != p.file.Position(p.tok.Span.Start).Line {
		msg = fmt.Sprintf("'%s' expected (to close '%s' at line %d) near %s", what, opener, line, p.near())
	}
	diag.ReportError(p.rep, code, p.tok.Span, msg).
		WithNote(open, fmt.Sprintf("'%s' opened here", opener)).
		Emit()
	panic(bailout{})
}

func (p *Parser) fail(code diag.Code, sp source.Span, msg string) {
	p.rep.Report(code, diag.SevError, sp, msg, nil)
	panic(bailout{})
}

// near describes the current token the way lua does in its messages.
func (p *Parser) near() string {
	if p.at(token.EOF) {
		return "<eof>"
	}
	return "'" + p.tok.Text + "'"
}

func (p *Parser) span(start, end uint32) source.Span {
	return source.Span{File: p.file.ID, Start: start, End: end}
}

// from returns the span from start to the end of the last consumed token.
func (p *Parser) from(start uint32) source.Span {
	return p.span(start, p.lastEnd)
}

func (p *Parser) node(id ast.NodeID) *ast.Node {
	return p.tree.Node(id)
}

type teeReporter []diag.Reporter

func (t teeReporter) Report(code diag.Code, sev diag.Severity, primary source.Span, msg string, notes []diag.Note) {
	for _, r := range t {
		r.Report(code, sev, primary, msg, notes)
	}
}
