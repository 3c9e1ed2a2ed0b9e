package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка
	UnknownCode           Code = 0
	// Лексические
	LexInfo               Code = 1000
	LexUnknownChar        Code = 1001
	LexUnterminatedString Code = 1002
	LexBadEscape          Code = 1003
	LexBareCarriageReturn Code = 1004
	LexControlChar        Code = 1005

	// Парсерные
	SynInfo              Code = 2000
	SynUnexpectedToken   Code = 2001
	SynExpectKey         Code = 2002
	SynExpectEquals      Code = 2003
	SynExpectValue       Code = 2004
	SynExpectNewline     Code = 2005
	SynUnclosedBracket   Code = 2006
	SynUnclosedBrace     Code = 2007
	SynBadBareKey        Code = 2008
	SynInvalidValue      Code = 2009
	SynDuplicateKey      Code = 2010
	SynDuplicateTable    Code = 2011
	SynNewlineInInline   Code = 2012
	SynMultilineKey      Code = 2013
	SynBadHeader         Code = 2014
	SynTableRedefinition Code = 2015
)

var codeDescription = map[Code]string{
	UnknownCode:           "Unknown error",
	LexInfo:               "Lexical information",
	LexUnknownChar:        "Unknown character",
	LexUnterminatedString: "Unterminated string",
	LexBadEscape:          "Invalid escape sequence",
	LexBareCarriageReturn: "Carriage return without line feed",
	LexControlChar:        "Control character in string",
	SynInfo:               "Syntax information",
	SynUnexpectedToken:    "Unexpected token",
	SynExpectKey:          "Expected key",
	SynExpectEquals:       "Expected '=' after key",
	SynExpectValue:        "Expected value",
	SynExpectNewline:      "Expected newline after entry",
	SynUnclosedBracket:    "Unclosed bracket",
	SynUnclosedBrace:      "Unclosed inline table",
	SynBadBareKey:         "Invalid bare key",
	SynInvalidValue:       "Invalid value",
	SynDuplicateKey:       "Duplicate key",
	SynDuplicateTable:     "Duplicate table",
	SynNewlineInInline:    "Newline in inline table",
	SynMultilineKey:       "Multi-line string used as key",
	SynBadHeader:          "Invalid table header",
	SynTableRedefinition:  "Table redefined",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
