package rules

import (
	"strings"

	"csfix/internal/diag"
	"csfix/internal/rule"
	"csfix/internal/source"
)

// EOFEnding makes non-empty files end with exactly one "\n". It works on
// the final text, so it runs after every other rule.
func EOFEnding() rule.Rule {
	return &rule.Func{
		RuleName:        "eof_ending",
		RuleDescription: "A file must always end with an empty line feed.",
		RuleLevel:       rule.LevelPSR2,
		RulePriority:    -50,
		Apply:           fixEOFEnding,
	}
}

func fixEOFEnding(_ *source.File, text string, _ diag.Reporter) string {
	trimmed := strings.TrimRight(text, " \t\n\r\x00\x0B")
	if trimmed == "" {
		return ""
	}
	return trimmed + "\n"
}
