// Package testkit holds checks shared by the parser, formatter and fuzz tests.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"luapretty/internal/ast"
)

// CheckSpanInvariants walks a parsed tree and checks its spans:
// 1) the root covers the whole file
// 2) every node span lies inside its parent and inside the file
// 3) siblings are ordered and do not overlap
// 4) comments are in source order, inside the file and outside each other
func CheckSpanInvariants(tree *ast.Tree) error {
	if tree == nil || tree.File == nil {
		return fmt.Errorf("nil tree or file")
	}
	size, err := safecast.Conv[uint32](len(tree.File.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	root := tree.Node(tree.Root)
	if root == nil {
		return fmt.Errorf("root node not found")
	}
	if root.Span.Start != 0 || root.Span.End != size {
		return fmt.Errorf("root span %v does not cover the file (0-%d)", root.Span, size)
	}

	var seen uint32
	var walk func(id ast.NodeID) error
	walk = func(id ast.NodeID) error {
		seen++
		parent := tree.Node(id)
		if parent.Span.File != tree.File.ID {
			return fmt.Errorf("%s span file mismatch: got=%d want=%d", parent.Kind, parent.Span.File, tree.File.ID)
		}
		var prev *ast.Node
		for _, kid := range tree.Children(id) {
			child := tree.Node(kid)
			if child == nil {
				return fmt.Errorf("nil child %d of %s", kid, parent.Kind)
			}
			if child.Span.End < child.Span.Start {
				return fmt.Errorf("%s span is inverted: %v", child.Kind, child.Span)
			}
			if !parent.Span.Contains(child.Span) {
				return fmt.Errorf("%s span %v is outside its parent %s %v", child.Kind, child.Span, parent.Kind, parent.Span)
			}
			// пустые узлы не пересекаются ни с чем
			if prev != nil && !prev.Span.Before(child.Span) && !prev.Span.Empty() && !child.Span.Empty() {
				return fmt.Errorf("%s %v overlaps its sibling %s %v", child.Kind, child.Span, prev.Kind, prev.Span)
			}
			prev = child
			if err := walk(kid); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(tree.Root); err != nil {
		return err
	}
	if seen != tree.Nodes.Len() {
		return fmt.Errorf("%d nodes reachable from the root, arena holds %d", seen, tree.Nodes.Len())
	}

	var last uint32
	for i := range tree.Comments {
		c := &tree.Comments[i]
		if c.Span.End > size || c.Span.Empty() {
			return fmt.Errorf("comment %q has bad span %v", c.Raw, c.Span)
		}
		if c.Span.Start < last {
			return fmt.Errorf("comment %q at %v is out of order", c.Raw, c.Span)
		}
		last = c.Span.End
	}
	return nil
}
