package diagfmt

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"luapretty/internal/diag"
	"luapretty/internal/source"
)

const tabWidth = 4

// Files looks up the file a span points into. *source.FileSet implements it.
type Files interface {
	Get(id source.FileID) *source.File
}

type singleFile struct{ f *source.File }

func (s singleFile) Get(source.FileID) *source.File { return s.f }

// OneFile serves every span from f, for diagnostics that outlived their
// FileSet (format.SyntaxError keeps only the file).
func OneFile(f *source.File) Files { return singleFile{f} }

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes с аналогичным форматом.
// Цвет включается опцией.
func Pretty(w io.Writer, bag *diag.Bag, fs Files, opts PrettyOpts) error {
	bw := bufio.NewWriter(w)
	p := prettyPrinter{w: bw, fs: fs, opts: opts, pal: newPalette(opts.Color)}
	for i, d := range bag.Items() {
		if i > 0 {
			p.line("")
		}
		p.diagnostic(d)
	}
	return bw.Flush()
}

type palette struct {
	sev      map[diag.Severity]*color.Color
	location *color.Color
	gutter   *color.Color
	marker   *color.Color
	note     *color.Color
}

func newPalette(enabled bool) palette {
	mk := func(attrs ...color.Attribute) *color.Color {
		c := color.New(attrs...)
		// глобальный color.NoColor не должен перекрывать явную опцию
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c
	}
	return palette{
		sev: map[diag.Severity]*color.Color{
			diag.SevError:   mk(color.FgRed, color.Bold),
			diag.SevWarning: mk(color.FgYellow, color.Bold),
			diag.SevInfo:    mk(color.FgCyan, color.Bold),
		},
		location: mk(color.Bold),
		gutter:   mk(color.FgBlue),
		marker:   mk(color.FgGreen, color.Bold),
		note:     mk(color.FgCyan),
	}
}

type prettyPrinter struct {
	w    *bufio.Writer
	fs   Files
	opts PrettyOpts
	pal  palette
}

func (p *prettyPrinter) line(format string, args ...any) {
	fmt.Fprintf(p.w, format, args...)
	p.w.WriteByte('\n')
}

func (p *prettyPrinter) location(span source.Span) string {
	f := p.fs.Get(span.File)
	start := f.Position(span.Start)
	path := formatPath(f.Path, p.opts.PathMode, p.opts.BaseDir)
	return fmt.Sprintf("%s:%d:%d", path, start.Line, start.Col)
}

func (p *prettyPrinter) diagnostic(d diag.Diagnostic) {
	sev, ok := p.pal.sev[d.Severity]
	if !ok {
		sev = p.pal.sev[diag.SevInfo]
	}
	p.line("%s: %s %s: %s",
		p.pal.location.Sprint(p.location(d.Primary)),
		sev.Sprint(d.Severity.String()),
		d.Code.ID(),
		d.Message,
	)
	p.snippet(d.Primary)
	if !p.opts.ShowNotes {
		return
	}
	for _, n := range d.Notes {
		p.line("  %s %s: %s", p.pal.note.Sprint("note:"), p.location(n.Span), n.Msg)
	}
}

// snippet prints the primary line with Context lines around it and marks
// the span under it. Spans that continue past the line are marked to its end.
func (p *prettyPrinter) snippet(span source.Span) {
	f := p.fs.Get(span.File)
	start, end := f.Position(span.Start), f.Position(span.End)
	if start.Line == 0 {
		return
	}
	ctxLines := uint32(max(p.opts.Context, 0)) //nolint:gosec // неотрицательно
	first := uint32(1)
	if start.Line > ctxLines {
		first = start.Line - ctxLines
	}
	last := start.Line + ctxLines
	numWidth := len(fmt.Sprint(last))
	gutter := func(label string) string {
		return p.pal.gutter.Sprintf("%*s |", numWidth, label)
	}

	for n := first; n <= last; n++ {
		text := f.GetLine(n)
		if n != start.Line && text == "" && n > start.Line {
			break
		}
		shown := p.clip(expandTabs(text))
		if shown == "" {
			p.line("%s", gutter(fmt.Sprint(n)))
		} else {
			p.line("%s %s", gutter(fmt.Sprint(n)), shown)
		}
		if n != start.Line {
			continue
		}
		from := displayWidth(text, int(start.Col)-1)
		to := runewidth.StringWidth(expandTabs(text))
		if end.Line == start.Line {
			to = displayWidth(text, int(end.Col)-1)
		}
		if p.opts.Width > 0 {
			from = min(from, int(p.opts.Width))
			to = min(to, int(p.opts.Width))
		}
		marker := "^" + strings.Repeat("~", max(to-from-1, 0))
		p.line("%s %s%s", gutter(""), strings.Repeat(" ", from), p.pal.marker.Sprint(marker))
	}
}

func (p *prettyPrinter) clip(s string) string {
	if p.opts.Width == 0 || runewidth.StringWidth(s) <= int(p.opts.Width) {
		return s
	}
	return runewidth.Truncate(s, int(p.opts.Width), "...")
}

func expandTabs(s string) string {
	if !strings.Contains(s, "\t") {
		return s
	}
	var sb strings.Builder
	col := 0
	for _, r := range s {
		if r == '\t' {
			pad := tabWidth - col%tabWidth
			sb.WriteString(strings.Repeat(" ", pad))
			col += pad
			continue
		}
		sb.WriteRune(r)
		col += runewidth.RuneWidth(r)
	}
	return sb.String()
}

// displayWidth returns the screen column of byte offset off in line after
// tab expansion.
func displayWidth(line string, off int) int {
	off = min(max(off, 0), len(line))
	return runewidth.StringWidth(expandTabs(line[:off]))
}
