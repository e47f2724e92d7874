package ast

type (
	NodeID    uint32
	CommentID uint32
)

const (
	NoNodeID    NodeID    = 0
	NoCommentID CommentID = 0
)

func (id NodeID) IsValid() bool    { return id != NoNodeID }
func (id CommentID) IsValid() bool { return id != NoCommentID }
