package ast

// Field names a child slot of a node.
type Field uint8

const (
	FieldNone Field = iota
	FieldBody
	FieldClauses
	FieldCondition
	FieldLabel
	FieldArguments
	FieldVariables
	FieldInit
	FieldExpression
	FieldIdentifier
	FieldParameters
	FieldVariable
	FieldStart
	FieldEnd
	FieldStep
	FieldIterators
	FieldLeft
	FieldRight
	FieldArgument
	FieldBase
	FieldIndex
	FieldKey
	FieldValue
	FieldFields
	numFields
)

var fieldNames = [numFields]string{
	FieldNone:       "",
	FieldBody:       "body",
	FieldClauses:    "clauses",
	FieldCondition:  "condition",
	FieldLabel:      "label",
	FieldArguments:  "arguments",
	FieldVariables:  "variables",
	FieldInit:       "init",
	FieldExpression: "expression",
	FieldIdentifier: "identifier",
	FieldParameters: "parameters",
	FieldVariable:   "variable",
	FieldStart:      "start",
	FieldEnd:        "end",
	FieldStep:       "step",
	FieldIterators:  "iterators",
	FieldLeft:       "left",
	FieldRight:      "right",
	FieldArgument:   "argument",
	FieldBase:       "base",
	FieldIndex:      "index",
	FieldKey:        "key",
	FieldValue:      "value",
	FieldFields:     "fields",
}

func (f Field) String() string {
	if f < numFields {
		return fieldNames[f]
	}
	return "field(?)"
}

// IsList reports whether the field holds a sequence of nodes.
func (f Field) IsList() bool {
	switch f {
	case FieldBody, FieldClauses, FieldArguments, FieldVariables, FieldInit, FieldParameters, FieldIterators, FieldFields:
		return true
	}
	return false
}

// singleFields and listFields fix the enumeration order used by Children.
var (
	singleFields = []Field{
		FieldCondition, FieldLabel, FieldExpression, FieldIdentifier, FieldVariable, FieldStart, FieldEnd,
		FieldStep, FieldLeft, FieldRight, FieldArgument, FieldBase, FieldIndex, FieldKey, FieldValue,
	}
	listFields = []Field{
		FieldBody, FieldClauses, FieldArguments, FieldVariables, FieldInit, FieldParameters, FieldIterators, FieldFields,
	}
)
