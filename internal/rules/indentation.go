package rules

import (
	"strings"

	"csfix/internal/diag"
	"csfix/internal/rule"
	"csfix/internal/source"
	"csfix/internal/tokens"
)

const indentWidth = 4

// Indentation converts leading runs of four spaces into tabs. Only
// whitespace tokens are touched: string, heredoc and comment contents are
// kept as written.
func Indentation() rule.Rule {
	return &rule.Func{
		RuleName:        "indentation",
		RuleDescription: "Code MUST use an indent of 1 tab, and MUST NOT use spaces for indenting.",
		RuleLevel:       rule.LevelPSR2,
		RulePriority:    50,
		Extensions:      phpExtensions,
		Sniff:           isPHPSource,
		Apply:           fixIndentation,
	}
}

func fixIndentation(_ *source.File, text string, _ diag.Reporter) string {
	s := tokens.FromSource(text)

	for i := range s.Count() {
		tok := s.At(i)
		if !tok.IsWhitespace() {
			continue
		}
		atLineStart := i > 0 && strings.HasSuffix(s.At(i-1).Text, "\n")
		tok.SetText(reindent(tok.Text, atLineStart))
	}

	return s.GenerateText()
}

// reindent rewrites the indentation after every "\n" in ws, and at the
// start of ws when atLineStart is set.
func reindent(ws string, atLineStart bool) string {
	if !atLineStart && !strings.Contains(ws, "\n") {
		return ws
	}

	var sb strings.Builder
	sb.Grow(len(ws))
	lineStart := atLineStart
	for i := 0; i < len(ws); {
		if !lineStart {
			sb.WriteByte(ws[i])
			lineStart = ws[i] == '\n'
			i++
			continue
		}
		lineStart = false

		tabs := 0
		for i < len(ws) && ws[i] == '\t' {
			tabs++
			i++
		}
		spaces := 0
		for i < len(ws) && ws[i] == ' ' {
			spaces++
			i++
		}
		sb.WriteString(strings.Repeat("\t", tabs+spaces/indentWidth))
		sb.WriteString(strings.Repeat(" ", spaces%indentWidth))
	}
	return sb.String()
}
