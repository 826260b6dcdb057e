package rules

import (
	"strings"

	"csfix/internal/diag"
	"csfix/internal/rule"
	"csfix/internal/source"
	"csfix/internal/token"
	"csfix/internal/tokens"
)

// SpacesCast removes whitespace inside casts and leaves exactly one space
// after them: "( int )  $x" becomes "(int) $x". A line break after the cast
// is kept.
func SpacesCast() rule.Rule {
	return &rule.Func{
		RuleName:        "spaces_cast",
		RuleDescription: "A single space should be between cast and variable.",
		RuleLevel:       rule.LevelSymfony,
		Extensions:      phpExtensions,
		Sniff:           isPHPSource,
		Apply:           fixSpacesCast,
	}
}

var castSpaceRemover = strings.NewReplacer(" ", "", "\t", "", "\n", "")

func fixSpacesCast(_ *source.File, text string, _ diag.Reporter) string {
	s := tokens.FromSource(text)

	for i := s.Count() - 1; i >= 0; i-- {
		cast := s.At(i)
		if !cast.IsCast() {
			continue
		}
		cast.SetText(castSpaceRemover.Replace(cast.Text))

		if i+1 >= s.Count() {
			continue
		}
		next := s.At(i + 1)
		switch {
		case next.IsWhitespace() && strings.Trim(next.Text, " \t") == "":
			next.SetText(" ")
		case !next.IsWhitespace():
			s.InsertAt(i+1, token.NewWhitespace(" "))
		}
	}

	return s.GenerateText()
}
