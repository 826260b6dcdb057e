package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Лексические
	LexInfo                Code = 1000
	LexUnknownChar         Code = 1001
	LexUnterminatedString  Code = 1002
	LexUnterminatedComment Code = 1003
	LexUnterminatedHeredoc Code = 1004

	// Фиксеры
	FixInfo             Code = 2000
	FixUnmatchedBracket Code = 2001
	FixRegionSkipped    Code = 2002

	// Прогон правил
	RunInfo         Code = 3000
	RunNotConverged Code = 3001

	// IO
	IOInfo       Code = 4000
	IOLoadError  Code = 4001
	IOWriteError Code = 4002

	// Конфигурация
	CfgInfo          Code = 5000
	CfgDuplicateRule Code = 5001
	CfgEmptyLevel    Code = 5002
	CfgUnknownRule   Code = 5003
	CfgBadRoot       Code = 5004
	CfgBadCustomRule Code = 5005
	CfgBadPattern    Code = 5006
)

var codeDescription = map[Code]string{
	UnknownCode: "Unknown error",

	LexInfo:                "Lexical information",
	LexUnknownChar:         "Unknown character",
	LexUnterminatedString:  "Unterminated string literal",
	LexUnterminatedComment: "Unterminated block comment",
	LexUnterminatedHeredoc: "Unterminated heredoc",

	FixInfo:             "Fixer information",
	FixUnmatchedBracket: "Unmatched bracket, region left unchanged",
	FixRegionSkipped:    "Region skipped by fixer",

	RunInfo:         "Runner information",
	RunNotConverged: "Rules did not converge",

	IOInfo:       "IO information",
	IOLoadError:  "Failed to load file",
	IOWriteError: "Failed to write file",

	CfgInfo:          "Configuration information",
	CfgDuplicateRule: "Duplicate rule name",
	CfgEmptyLevel:    "Empty level selection",
	CfgUnknownRule:   "Unknown rule",
	CfgBadRoot:       "Unreachable file root",
	CfgBadCustomRule: "Invalid custom rule",
	CfgBadPattern:    "Invalid file pattern",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("FIX%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("RUN%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("CFG%04d", ic)
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
