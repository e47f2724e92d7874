package ast

import (
	"cmp"
	"slices"

	"luapretty/internal/source"
)

// Tree owns every node and comment produced for one source file.
type Tree struct {
	File     *source.File
	Nodes    *Arena[Node]
	Root     NodeID
	Comments []Comment // source order; CommentID is index+1

	text     string
	children map[NodeID][]NodeID
}

// NewTree prepares an empty tree for file with room for capHint nodes.
func NewTree(file *source.File, capHint uint) *Tree {
	return &Tree{
		File:     file,
		Nodes:    NewArena[Node](capHint),
		text:     string(file.Content),
		children: make(map[NodeID][]NodeID),
	}
}

// New allocates a node of the given kind.
func (t *Tree) New(kind Kind, sp source.Span) NodeID {
	return NodeID(t.Nodes.Allocate(Node{Kind: kind, Span: sp}))
}

func (t *Tree) Node(id NodeID) *Node {
	return t.Nodes.Get(uint32(id))
}

// Kind returns the kind of id, KindInvalid for NoNodeID.
func (t *Tree) Kind(id NodeID) Kind {
	if n := t.Node(id); n != nil {
		return n.Kind
	}
	return KindInvalid
}

// AddComment appends c to the comment list.
func (t *Tree) AddComment(c Comment) CommentID {
	t.Comments = append(t.Comments, c)
	return CommentID(len(t.Comments)) //nolint:gosec // bounded by source size
}

// PrependComment inserts c before all other comments. It must run before
// comments are attached, since it renumbers every CommentID.
func (t *Tree) PrependComment(c Comment) {
	t.Comments = slices.Insert(t.Comments, 0, c)
}

func (t *Tree) Comment(id CommentID) *Comment {
	if id == NoCommentID || int(id) > len(t.Comments) {
		return nil
	}
	return &t.Comments[id-1]
}

// Text returns the full source text.
func (t *Tree) Text() string {
	return t.text
}

// Pos returns the 1-based line and column of a byte offset.
func (t *Tree) Pos(off uint32) source.LineCol {
	return t.File.Position(off)
}

// Children returns every direct child of id ordered by start offset. The
// slice is computed once per node and shared; callers must not modify it.
func (t *Tree) Children(id NodeID) []NodeID {
	if kids, ok := t.children[id]; ok {
		return kids
	}
	n := t.Node(id)
	if n == nil {
		return nil
	}
	var kids []NodeID
	for _, f := range singleFields {
		if c := n.Child(f); c.IsValid() {
			kids = append(kids, c)
		}
	}
	for _, f := range listFields {
		kids = append(kids, n.List(f)...)
	}
	slices.SortStableFunc(kids, func(a, b NodeID) int {
		sa, sb := t.Node(a).Span, t.Node(b).Span
		if c := cmp.Compare(sa.Start, sb.Start); c != 0 {
			return c
		}
		return cmp.Compare(sa.End, sb.End)
	})
	t.children[id] = kids
	return kids
}
