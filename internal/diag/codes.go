package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка - на первое время
	UnknownCode Code = 0
	// Лексические
	LexInfo             Code = 1000
	LexUnknownChar      Code = 1001
	LexUnterminated     Code = 1002
	LexBadNumber        Code = 1004
	LexEmptyChar        Code = 1006
	LexNewlineInLiteral Code = 1007
	LexBadEscape        Code = 1008

	// Ввод-вывод
	IOLoadFileError Code = 4001
)

var (
	codeDescription = map[Code]string{
		UnknownCode:         "Unknown error",
		LexInfo:             "Lexical information",
		LexUnknownChar:      "Unexpected character",
		LexUnterminated:     "Unterminated literal",
		LexBadNumber:        "Invalid float literal",
		LexEmptyChar:        "Empty char literal",
		LexNewlineInLiteral: "Newline inside literal",
		LexBadEscape:        "Invalid escape sequence",
		IOLoadFileError:     "I/O load file error",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
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
