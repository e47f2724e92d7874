package driver

import (
	"context"
	"errors"

	"luapretty/internal/ast"
	"luapretty/internal/diag"
	"luapretty/internal/doc"
	"luapretty/internal/format"
	"luapretty/internal/lexer"
	"luapretty/internal/source"
	"luapretty/internal/token"
)

type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Bag     *diag.Bag
}

// Tokenize lexes the file at path. Lexical errors are collected in Bag.
func Tokenize(path string, maxDiagnostics int) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)

	bag := diag.NewBag(maxDiagnostics)
	lx := lexer.New(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
	return &TokenizeResult{
		FileSet: fs,
		File:    file,
		Tokens:  lx.All(),
		Bag:     bag,
	}, nil
}

type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tree    *ast.Tree
	Bag     *diag.Bag
}

// Parse parses the file at path and attaches its comments. A syntax error
// leaves Tree nil and is reported in Bag, not as the returned error.
func Parse(ctx context.Context, path string, opt format.Options) (*ParseResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)
	res := &ParseResult{FileSet: fs, File: file, Bag: diag.NewBag(0)}

	tree, err := format.Parse(ctx, file, opt)
	if se, ok := asSyntaxError(err); ok {
		res.Bag = se.Bag
		return res, nil
	}
	if err != nil {
		return nil, err
	}
	res.Tree = tree
	return res, nil
}

type DocResult struct {
	FileSet *source.FileSet
	File    *source.File
	Doc     *doc.Doc
	Bag     *diag.Bag
}

// BuildDoc returns the document the formatter would render for path.
func BuildDoc(ctx context.Context, path string, opt format.Options) (*DocResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)
	res := &DocResult{FileSet: fs, File: file, Bag: diag.NewBag(0)}

	d, err := format.BuildDoc(ctx, file, opt)
	if se, ok := asSyntaxError(err); ok {
		res.Bag = se.Bag
		return res, nil
	}
	if err != nil {
		return nil, err
	}
	res.Doc = d
	return res, nil
}

func asSyntaxError(err error) (*format.SyntaxError, bool) {
	var se *format.SyntaxError
	ok := errors.As(err, &se)
	return se, ok
}
