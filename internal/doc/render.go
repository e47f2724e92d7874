package doc

import (
	"bytes"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Options configures Render.
type Options struct {
	// Maximum line width a group may occupy flat. Zero means 80.
	Width int
	// Indent is the literal string written per nesting level. Empty means
	// four spaces.
	Indent string
	// TabWidth is the column count of a tab in Indent. Zero means 4.
	TabWidth int
}

// WithDefaults replaces unset fields with their defaults.
func (o Options) WithDefaults() Options {
	if o.Width == 0 {
		o.Width = 80
	}
	if o.Indent == "" {
		o.Indent = "    "
	}
	if o.TabWidth == 0 {
		o.TabWidth = 4
	}
	return o
}

type mode uint8

const (
	modeBreak mode = iota
	modeFlat
)

// indentation is one level of the indent stack.
type indentation struct {
	value string
	width int
}

// command is a pending piece of work on the render stack.
type command struct {
	ind  *indentation
	mode mode
	doc  *Doc
}

type renderer struct {
	Options

	out      []byte
	pos      int       // текущая колонка
	cmds     []command // стек, вершина в конце
	suffixes []command // отложенные lineSuffix
}

// Render lays d out under opts and returns the text. The root is rendered
// broken. Render reads the Break flags but never changes d, so the same
// document can be rendered again under other options.
func Render(d *Doc, opts Options) string {
	r := &renderer{Options: opts.WithDefaults()}
	root := &indentation{}
	r.cmds = append(r.cmds, command{ind: root, mode: modeBreak, doc: d})
	for {
		for len(r.cmds) > 0 {
			c := r.cmds[len(r.cmds)-1]
			r.cmds = r.cmds[:len(r.cmds)-1]
			r.step(c)
		}
		if len(r.suffixes) == 0 {
			break
		}
		r.flushSuffixes()
	}
	return string(r.out)
}

func (r *renderer) push(c command) { r.cmds = append(r.cmds, c) }

func (r *renderer) step(c command) {
	d := c.doc
	switch d.Kind() {
	case 0, KindBreakParent:
	case KindText:
		r.write(d.text)
	case KindConcat:
		for i := len(d.parts) - 1; i >= 0; i-- {
			r.push(command{ind: c.ind, mode: c.mode, doc: d.parts[i]})
		}
	case KindIndent:
		r.push(command{ind: r.indent(c.ind), mode: c.mode, doc: d.Contents()})
	case KindLineSuffix:
		r.suffixes = append(r.suffixes, command{ind: c.ind, mode: c.mode, doc: d.Contents()})
	case KindGroup:
		next := command{ind: c.ind, mode: modeFlat, doc: d.Contents()}
		switch {
		case d.Break:
			next.mode = modeBreak
		case c.mode == modeFlat:
		case !r.fits(next, r.Width-r.pos):
			next.mode = modeBreak
		}
		r.push(next)
	case KindLine, KindSoftline, KindHardline:
		if c.mode == modeFlat && d.kind != KindHardline {
			if d.kind == KindLine {
				r.write(" ")
			}
			return
		}
		if len(r.suffixes) > 0 {
			// сначала отложенные комментарии, потом сам перевод строки
			r.push(c)
			r.flushSuffixes()
			return
		}
		r.newline(c.ind)
	}
}

// flushSuffixes moves buffered line suffixes onto the stack in the order
// they were buffered.
func (r *renderer) flushSuffixes() {
	for i := len(r.suffixes) - 1; i >= 0; i-- {
		r.push(r.suffixes[i])
	}
	r.suffixes = r.suffixes[:0]
}

func (r *renderer) write(s string) {
	r.out = append(r.out, s...)
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		r.pos = runewidth.StringWidth(s[i+1:])
		return
	}
	r.pos += runewidth.StringWidth(s)
}

func (r *renderer) newline(ind *indentation) {
	// хвостовые пробелы строки не выводим
	r.out = bytes.TrimRight(r.out, " \t")
	r.out = append(r.out, '\n')
	r.out = append(r.out, ind.value...)
	r.pos = ind.width
}

func (r *renderer) indent(ind *indentation) *indentation {
	return &indentation{
		value: ind.value + r.Indent,
		width: ind.width + r.indentWidth(),
	}
}

func (r *renderer) indentWidth() int {
	w := 0
	for _, ch := range r.Indent {
		if ch == '\t' {
			w += r.TabWidth
		} else {
			w += runewidth.RuneWidth(ch)
		}
	}
	return w
}

// fits simulates rendering next flat within width columns. Once next is
// exhausted it keeps measuring the rest of the stack up to the first line
// that breaks there. A hard line inside next fails the check; a multi-line
// literal ends it.
func (r *renderer) fits(next command, width int) bool {
	rest := len(r.cmds)
	stack := []command{next}
	for width >= 0 {
		if len(stack) == 0 {
			if rest == 0 {
				return true
			}
			rest--
			stack = append(stack, r.cmds[rest])
			continue
		}
		c := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		d := c.doc
		switch d.Kind() {
		case KindText:
			if i := strings.IndexByte(d.text, '\n'); i >= 0 {
				return width-runewidth.StringWidth(d.text[:i]) >= 0
			}
			width -= runewidth.StringWidth(d.text)
		case KindConcat:
			for i := len(d.parts) - 1; i >= 0; i-- {
				stack = append(stack, command{ind: c.ind, mode: c.mode, doc: d.parts[i]})
			}
		case KindIndent, KindGroup:
			m := c.mode
			if d.kind == KindGroup && d.Break {
				m = modeBreak
			}
			stack = append(stack, command{ind: c.ind, mode: m, doc: d.Contents()})
		case KindLine, KindSoftline:
			if c.mode == modeBreak {
				return true
			}
			if d.kind == KindLine {
				width--
			}
		case KindHardline:
			return c.mode == modeBreak
		}
	}
	return false
}
