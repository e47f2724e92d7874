package ast

import (
	"luapretty/internal/source"
)

// Node is a single syntax node. Which fields are meaningful depends on Kind:
//
//	Chunk                       Body
//	LabelStatement, Goto        Label
//	ReturnStatement             Arguments
//	IfStatement                 Clauses
//	IfClause, ElseifClause      Condition, Body
//	ElseClause                  Body
//	WhileStatement              Condition, Body
//	DoStatement                 Body
//	RepeatStatement             Body, Condition
//	LocalStatement, Assignment  Variables, Init
//	CallStatement               Expression
//	FunctionDeclaration         Identifier (optional), Parameters, Body, IsLocal
//	ForNumericStatement         Variable, Start, End, Step (optional), Body
//	ForGenericStatement         Variables, Iterators, Body
//	literals, Identifier        Raw
//	TableKey, TableKeyString    Key, Value
//	TableValue                  Value
//	TableConstructorExpression  Fields
//	Binary, LogicalExpression   Op, Left, Right
//	UnaryExpression             Op, Argument
//	MemberExpression            Base, Indexer, Identifier
//	IndexExpression             Base, Index
//	CallExpression              Base, Arguments
//	TableCall, StringCall       Base, Argument
type Node struct {
	Kind Kind
	Span source.Span

	Raw      string
	Op       string
	Indexer  string
	IsLocal  bool
	InParens bool // the source wrapped this expression in parentheses

	Condition  NodeID
	Label      NodeID
	Expression NodeID
	Identifier NodeID
	Variable   NodeID
	Start      NodeID
	End        NodeID
	Step       NodeID
	Left       NodeID
	Right      NodeID
	Argument   NodeID
	Base       NodeID
	Index      NodeID
	Key        NodeID
	Value      NodeID

	Body       []NodeID
	Clauses    []NodeID
	Arguments  []NodeID
	Variables  []NodeID
	Init       []NodeID
	Parameters []NodeID
	Iterators  []NodeID
	Fields     []NodeID

	// Comments attached by the comment engine, in source order.
	Comments []CommentID
}

// Child returns the node stored in a single-valued field.
func (n *Node) Child(f Field) NodeID {
	switch f {
	case FieldCondition:
		return n.Condition
	case FieldLabel:
		return n.Label
	case FieldExpression:
		return n.Expression
	case FieldIdentifier:
		return n.Identifier
	case FieldVariable:
		return n.Variable
	case FieldStart:
		return n.Start
	case FieldEnd:
		return n.End
	case FieldStep:
		return n.Step
	case FieldLeft:
		return n.Left
	case FieldRight:
		return n.Right
	case FieldArgument:
		return n.Argument
	case FieldBase:
		return n.Base
	case FieldIndex:
		return n.Index
	case FieldKey:
		return n.Key
	case FieldValue:
		return n.Value
	}
	return NoNodeID
}

// List returns the nodes stored in a sequence-valued field.
func (n *Node) List(f Field) []NodeID {
	switch f {
	case FieldBody:
		return n.Body
	case FieldClauses:
		return n.Clauses
	case FieldArguments:
		return n.Arguments
	case FieldVariables:
		return n.Variables
	case FieldInit:
		return n.Init
	case FieldParameters:
		return n.Parameters
	case FieldIterators:
		return n.Iterators
	case FieldFields:
		return n.Fields
	}
	return nil
}

// Last returns the final element of a list field, or NoNodeID.
func (n *Node) Last(f Field) NodeID {
	l := n.List(f)
	if len(l) == 0 {
		return NoNodeID
	}
	return l[len(l)-1]
}

// FieldOf locates child among n's fields. The index is -1 for single-valued
// fields; FieldNone means child is not a direct child of n.
func (n *Node) FieldOf(child NodeID) (Field, int) {
	for _, f := range singleFields {
		if n.Child(f) == child {
			return f, -1
		}
	}
	for _, f := range listFields {
		for i, c := range n.List(f) {
			if c == child {
				return f, i
			}
		}
	}
	return FieldNone, -1
}
