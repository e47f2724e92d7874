package ast

// Kind enumerates every syntax node the formatter understands.
type Kind uint8

const (
	KindInvalid Kind = iota

	Chunk

	LabelStatement
	BreakStatement
	GotoStatement
	ReturnStatement
	IfStatement
	IfClause
	ElseifClause
	ElseClause
	WhileStatement
	DoStatement
	RepeatStatement
	LocalStatement
	AssignmentStatement
	CallStatement
	FunctionDeclaration
	ForNumericStatement
	ForGenericStatement

	Identifier
	BooleanLiteral
	NilLiteral
	NumericLiteral
	StringLiteral
	VarargLiteral
	TableKey
	TableKeyString
	TableValue
	TableConstructorExpression
	BinaryExpression
	LogicalExpression
	UnaryExpression
	MemberExpression
	IndexExpression
	CallExpression
	TableCallExpression
	StringCallExpression

	numKinds
)

var kindNames = [numKinds]string{
	KindInvalid:                "Invalid",
	Chunk:                      "Chunk",
	LabelStatement:             "LabelStatement",
	BreakStatement:             "BreakStatement",
	GotoStatement:              "GotoStatement",
	ReturnStatement:            "ReturnStatement",
	IfStatement:                "IfStatement",
	IfClause:                   "IfClause",
	ElseifClause:               "ElseifClause",
	ElseClause:                 "ElseClause",
	WhileStatement:             "WhileStatement",
	DoStatement:                "DoStatement",
	RepeatStatement:            "RepeatStatement",
	LocalStatement:             "LocalStatement",
	AssignmentStatement:        "AssignmentStatement",
	CallStatement:              "CallStatement",
	FunctionDeclaration:        "FunctionDeclaration",
	ForNumericStatement:        "ForNumericStatement",
	ForGenericStatement:        "ForGenericStatement",
	Identifier:                 "Identifier",
	BooleanLiteral:             "BooleanLiteral",
	NilLiteral:                 "NilLiteral",
	NumericLiteral:             "NumericLiteral",
	StringLiteral:              "StringLiteral",
	VarargLiteral:              "VarargLiteral",
	TableKey:                   "TableKey",
	TableKeyString:             "TableKeyString",
	TableValue:                 "TableValue",
	TableConstructorExpression: "TableConstructorExpression",
	BinaryExpression:           "BinaryExpression",
	LogicalExpression:          "LogicalExpression",
	UnaryExpression:            "UnaryExpression",
	MemberExpression:           "MemberExpression",
	IndexExpression:            "IndexExpression",
	CallExpression:             "CallExpression",
	TableCallExpression:        "TableCallExpression",
	StringCallExpression:       "StringCallExpression",
}

func (k Kind) String() string {
	if k < numKinds {
		return kindNames[k]
	}
	return "Kind(?)"
}

// IsClause reports whether k is one of the if-statement clause kinds.
func (k Kind) IsClause() bool {
	return k == IfClause || k == ElseifClause || k == ElseClause
}

// HasBody reports whether nodes of kind k carry a statement list in Body.
func (k Kind) HasBody() bool {
	switch k {
	case Chunk, IfClause, ElseifClause, ElseClause, WhileStatement, DoStatement, RepeatStatement,
		FunctionDeclaration, ForNumericStatement, ForGenericStatement:
		return true
	}
	return false
}

// IsCallLike reports whether k is one of the call expression kinds.
func (k Kind) IsCallLike() bool {
	return k == CallExpression || k == TableCallExpression || k == StringCallExpression
}

// IsPrefixExp reports whether a node of kind k may stand, unparenthesized,
// as the base of a member, index or call expression.
func (k Kind) IsPrefixExp() bool {
	switch k {
	case Identifier, MemberExpression, IndexExpression, CallExpression, TableCallExpression, StringCallExpression:
		return true
	}
	return false
}
