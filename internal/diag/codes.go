package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Лексические
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexBadNumber                Code = 1004
	LexBadEscape                Code = 1005
	LexUnterminatedLongString   Code = 1006
	LexUnsupportedOperator      Code = 1007

	// Синтаксические
	SynInfo              Code = 2000
	SynUnexpectedToken   Code = 2001
	SynUnclosedParen     Code = 2002
	SynUnclosedBrace     Code = 2003
	SynUnclosedBracket   Code = 2004
	SynExpectEnd         Code = 2005
	SynExpectIdentifier  Code = 2006
	SynExpectExpression  Code = 2007
	SynExpectAssign      Code = 2008
	SynForBadHeader      Code = 2009
	SynNotAssignable     Code = 2010
	SynVarargOutsideFunc Code = 2011
	SynUnsupportedSyntax Code = 2012
	SynTrailingInput     Code = 2013
	SynExpectThen        Code = 2014
	SynExpectDo          Code = 2015
	SynExpectUntil       Code = 2016

	// Ввод-вывод
	IOReadError  Code = 4001
	IOWriteError Code = 4002
)

var codeDescription = map[Code]string{
	UnknownCode:                 "Unknown error",
	LexInfo:                     "Lexical information",
	LexUnknownChar:              "Unknown character",
	LexUnterminatedString:       "Unterminated string literal",
	LexUnterminatedBlockComment: "Unterminated block comment",
	LexBadNumber:                "Malformed number",
	LexBadEscape:                "Invalid escape sequence",
	LexUnterminatedLongString:   "Unterminated long string",
	LexUnsupportedOperator:      "Operator not available in this Lua version",
	SynInfo:                     "Syntax information",
	SynUnexpectedToken:          "Unexpected token",
	SynUnclosedParen:            "Unclosed parenthesis",
	SynUnclosedBrace:            "Unclosed brace",
	SynUnclosedBracket:          "Unclosed bracket",
	SynExpectEnd:                "Expected 'end'",
	SynExpectIdentifier:         "Expected identifier",
	SynExpectExpression:         "Expected expression",
	SynExpectAssign:             "Expected '='",
	SynForBadHeader:             "Malformed for loop header",
	SynNotAssignable:            "Expression cannot be assigned to",
	SynVarargOutsideFunc:        "'...' outside a vararg function",
	SynUnsupportedSyntax:        "Syntax not available in this Lua version",
	SynTrailingInput:            "Unexpected input after end of chunk",
	SynExpectThen:               "Expected 'then'",
	SynExpectDo:                 "Expected 'do'",
	SynExpectUntil:              "Expected 'until'",
	IOReadError:                 "Cannot read file",
	IOWriteError:                "Cannot write file",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
