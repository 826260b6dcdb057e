package rules

import (
	"csfix/internal/diag"
	"csfix/internal/rule"
	"csfix/internal/source"
	"csfix/internal/token"
	"csfix/internal/tokens"
)

// OperatorsSpaces puts whitespace on both sides of binary, logical and
// assignment operators. Existing whitespace of any width is kept.
func OperatorsSpaces() rule.Rule {
	return &rule.Func{
		RuleName:        "operators_spaces",
		RuleDescription: "Binary operators should be surrounded by at least one space.",
		RuleLevel:       rule.LevelSymfony,
		Extensions:      phpExtensions,
		Sniff:           isPHPSource,
		Apply:           fixOperatorsSpaces,
	}
}

var spacedOperators = map[token.Kind]bool{
	token.AndEqual:         true,
	token.BooleanAnd:       true,
	token.BooleanOr:        true,
	token.ConcatEqual:      true,
	token.DivEqual:         true,
	token.DoubleArrow:      true,
	token.IsEqual:          true,
	token.IsGreaterOrEqual: true,
	token.IsIdentical:      true,
	token.IsNotEqual:       true,
	token.IsNotIdentical:   true,
	token.IsSmallerOrEqual: true,
	token.KwAnd:            true,
	token.KwOr:             true,
	token.KwXor:            true,
	token.MinusEqual:       true,
	token.ModEqual:         true,
	token.MulEqual:         true,
	token.OrEqual:          true,
	token.PlusEqual:        true,
	token.Sl:               true,
	token.SlEqual:          true,
	token.Sr:               true,
	token.SrEqual:          true,
	token.XorEqual:         true,
}

func isSpacedOperator(t *token.Token) bool {
	if t.Kind == token.Char {
		return t.Text == "="
	}
	return spacedOperators[t.Kind]
}

func fixOperatorsSpaces(_ *source.File, text string, _ diag.Reporter) string {
	s := tokens.FromSource(text)

	for i := s.Count() - 1; i >= 0; i-- {
		if !isSpacedOperator(s.At(i)) {
			continue
		}
		if i+1 < s.Count() && !s.At(i + 1).IsWhitespace() {
			s.InsertAt(i+1, token.NewWhitespace(" "))
		}
		if i > 0 && !s.At(i - 1).IsWhitespace() {
			s.InsertAt(i, token.NewWhitespace(" "))
		}
	}

	return s.GenerateText()
}
