package rules

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"csfix/internal/diag"
	"csfix/internal/rule"
	"csfix/internal/source"
	"csfix/internal/tokens"
)

// LowercaseKeywords writes every reserved word in lower case.
func LowercaseKeywords() rule.Rule {
	return &rule.Func{
		RuleName:        "lowercase_keywords",
		RuleDescription: "PHP keywords MUST be in lower case.",
		RuleLevel:       rule.LevelPSR2,
		Extensions:      phpExtensions,
		Sniff:           isPHPSource,
		Apply:           fixLowercaseKeywords,
	}
}

func fixLowercaseKeywords(_ *source.File, text string, _ diag.Reporter) string {
	s := tokens.FromSource(text)
	// Caser хранит состояние, поэтому создаётся на каждый вызов
	lower := cases.Lower(language.Und)

	for i := range s.Count() {
		tok := s.At(i)
		if tok.IsKeyword() {
			tok.SetText(lower.String(tok.Text))
		}
	}
	return s.GenerateText()
}
