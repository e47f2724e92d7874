// Package format runs the whole formatting pipeline for one file: parse,
// attach comments, print to a document, render it and restore the file's
// line endings and byte order mark.
package format

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"luapretty/internal/ast"
	"luapretty/internal/comments"
	"luapretty/internal/diag"
	"luapretty/internal/doc"
	"luapretty/internal/observ"
	"luapretty/internal/parser"
	"luapretty/internal/printer"
	"luapretty/internal/source"
	"luapretty/internal/trace"
)

var (
	// ErrSyntax is wrapped by every SyntaxError.
	ErrSyntax = errors.New("syntax error")
	// ErrRoundTrip reports output that does not lex to the input's tokens.
	ErrRoundTrip = errors.New("formatted output is not equivalent to the input")
)

// SyntaxError carries the diagnostics of a file that failed to parse.
type SyntaxError struct {
	File *source.File
	Bag  *diag.Bag
}

func (e *SyntaxError) Error() string {
	d, ok := e.Bag.First()
	if !ok {
		return fmt.Sprintf("%s: %s", e.File.Path, ErrSyntax)
	}
	lc := e.File.Position(d.Primary.Start)
	return fmt.Sprintf("%s:%d:%d: %s", e.File.Path, lc.Line, lc.Col, d.Message)
}

func (e *SyntaxError) Unwrap() error { return ErrSyntax }

// FormatText formats src as if it were read from a file called name.
func FormatText(ctx context.Context, name string, src []byte, opt Options) ([]byte, error) {
	fs := source.NewFileSet()
	id, err := fs.AddVirtual(name, src)
	if err != nil {
		return nil, err
	}
	return FormatFile(ctx, fs.Get(id), opt)
}

// FormatFile formats a loaded file. The result is UTF-8 and carries a BOM
// if the input did.
func FormatFile(ctx context.Context, file *source.File, opt Options) ([]byte, error) {
	if file == nil {
		return nil, errors.New("format: nil source file")
	}
	if err := opt.Validate(); err != nil {
		return nil, fmt.Errorf("format: %w", err)
	}
	opt = opt.withDefaults()
	if len(file.Content) == 0 {
		return []byte{}, nil
	}

	d, err := buildDoc(ctx, file, opt)
	if err != nil {
		return nil, err
	}

	done := stage(ctx, "render")
	out := doc.Render(d, doc.Options{
		Width:    opt.LineWidth,
		Indent:   opt.indent(),
		TabWidth: opt.IndentCount,
	})
	done()

	if opt.Verify {
		done = stage(ctx, "verify")
		ok, msg := CheckRoundTrip(string(file.Content), out)
		done()
		if !ok {
			return nil, fmt.Errorf("%s: %w: %s", file.Path, ErrRoundTrip, msg)
		}
	}
	return finish(file, out, opt), nil
}

// BuildDoc parses file and returns its propagated document without
// rendering it.
func BuildDoc(ctx context.Context, file *source.File, opt Options) (*doc.Doc, error) {
	if file == nil {
		return nil, errors.New("format: nil source file")
	}
	if err := opt.Validate(); err != nil {
		return nil, fmt.Errorf("format: %w", err)
	}
	return buildDoc(ctx, file, opt.withDefaults())
}

// Parse parses file and attaches its comments.
func Parse(ctx context.Context, file *source.File, opt Options) (*ast.Tree, error) {
	done := stage(ctx, "parse")
	res := parser.ParseFile(file, parser.Options{Version: opt.withDefaults().LuaVersion})
	done()
	if !res.OK() {
		return nil, &SyntaxError{File: file, Bag: res.Bag}
	}

	done = stage(ctx, "attach")
	comments.InjectShebang(res.Tree)
	comments.Attach(res.Tree)
	done()
	return res.Tree, nil
}

func buildDoc(ctx context.Context, file *source.File, opt Options) (*doc.Doc, error) {
	tree, err := Parse(ctx, file, opt)
	if err != nil {
		return nil, err
	}
	done := stage(ctx, "print")
	d, err := printer.Print(tree, printer.Options{Quotemark: opt.Quotemark})
	done()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file.Path, err)
	}
	return d, nil
}

// stage opens a trace span and a timer phase that end together.
func stage(ctx context.Context, name string) func() {
	_, span := trace.Start(ctx, trace.ScopeStage, name)
	stop := observ.FromContext(ctx).Track(name)
	return func() {
		stop()
		span.End("")
	}
}

// finish restores what source.Normalize took from the input.
func finish(file *source.File, out string, opt Options) []byte {
	crlf := opt.LineEnding == CRLF || (opt.LineEnding == Auto && file.Flags&source.FileNormalizedCRLF != 0)
	var buf bytes.Buffer
	buf.Grow(len(out) + len(out)/32 + 3)
	if file.Flags&source.FileHadBOM != 0 {
		buf.Write(source.UTF8BOM())
	}
	if !crlf {
		buf.WriteString(out)
		return buf.Bytes()
	}
	for i := 0; i < len(out); i++ {
		if out[i] == '\n' {
			buf.WriteByte('\r')
		}
		buf.WriteByte(out[i])
	}
	return buf.Bytes()
}
