// Package astpath provides Path, a traversal handle over an ast.Tree that
// remembers how it reached the current node: the chain of ancestors and the
// field (and list index) each step went through.
package astpath

import (
	"errors"
	"fmt"

	"luapretty/internal/ast"
)

// ErrOutOfRange is returned by Parent when the path is shallower than asked.
var ErrOutOfRange = errors.New("astpath: ancestor out of range")

// Frame is one step of a Path. Index is -1 for single-valued fields and for
// the root frame.
type Frame struct {
	Node  ast.NodeID
	Field ast.Field
	Index int
}

type Path struct {
	tree  *ast.Tree
	stack []Frame
}

// New returns a path positioned at the tree root.
func New(tree *ast.Tree) *Path {
	p := &Path{tree: tree, stack: make([]Frame, 0, 32)}
	p.stack = append(p.stack, Frame{Node: tree.Root, Field: ast.FieldNone, Index: -1})
	return p
}

func (p *Path) Tree() *ast.Tree { return p.tree }

// Current returns the node at the top of the path.
func (p *Path) Current() ast.NodeID {
	return p.stack[len(p.stack)-1].Node
}

// Node is a shorthand for Tree().Node(Current()).
func (p *Path) Node() *ast.Node {
	return p.tree.Node(p.Current())
}

// Frame returns the top frame.
func (p *Path) Frame() Frame {
	return p.stack[len(p.stack)-1]
}

// Depth counts the frames; the root alone is depth 1.
func (p *Path) Depth() int { return len(p.stack) }

// Parent returns the n-th ancestor of the current node. Parent(0) is the
// current node itself.
func (p *Path) Parent(n int) (ast.NodeID, error) {
	if n < 0 || n >= len(p.stack) {
		return ast.NoNodeID, fmt.Errorf("%w: parent(%d) at depth %d", ErrOutOfRange, n, len(p.stack))
	}
	return p.stack[len(p.stack)-1-n].Node, nil
}

// ParentKind returns the kind of the direct parent, KindInvalid at the root.
func (p *Path) ParentKind() ast.Kind {
	parent, err := p.Parent(1)
	if err != nil {
		return ast.KindInvalid
	}
	return p.tree.Kind(parent)
}

func (p *Path) push(f Frame) { p.stack = append(p.stack, f) }
func (p *Path) pop()         { p.stack = p.stack[:len(p.stack)-1] }

// Descend moves into the single-valued field f of the current node, calls fn
// and moves back. An absent child yields the zero T without calling fn.
func Descend[T any](p *Path, f ast.Field, fn func(*Path) T) T {
	child := p.Node().Child(f)
	if !child.IsValid() {
		var zero T
		return zero
	}
	p.push(Frame{Node: child, Field: f, Index: -1})
	defer p.pop()
	return fn(p)
}

// DescendEach calls fn for every element of the list field f in order and
// collects the results.
func DescendEach[T any](p *Path, f ast.Field, fn func(*Path) T) []T {
	list := p.Node().List(f)
	out := make([]T, 0, len(list))
	for i, child := range list {
		p.push(Frame{Node: child, Field: f, Index: i})
		out = append(out, fn(p))
		p.pop()
	}
	return out
}

// NeedsParens reports whether the current expression must be wrapped in
// parentheses to keep its meaning in the parent's position.
func (p *Path) NeedsParens() bool {
	parent, err := p.Parent(1)
	if err != nil {
		return false
	}
	return NeedsParens(p.tree, p.Current(), parent, p.Frame().Field)
}
