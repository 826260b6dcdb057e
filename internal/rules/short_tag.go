package rules

import (
	"strings"

	"csfix/internal/diag"
	"csfix/internal/rule"
	"csfix/internal/source"
	"csfix/internal/token"
	"csfix/internal/tokens"
)

// ShortTag replaces the short open tag "<?" with "<?php". The echo tag
// "<?=" is allowed and left alone.
func ShortTag() rule.Rule {
	return &rule.Func{
		RuleName:        "short_tag",
		RuleDescription: "PHP code must use the long <?php ?> tags or the short-echo <?= ?> tags; it must not use the other tag variations.",
		RuleLevel:       rule.LevelPSR1,
		Extensions:      phpExtensions,
		Sniff:           isPHPSource,
		Apply:           fixShortTag,
	}
}

func fixShortTag(_ *source.File, text string, _ diag.Reporter) string {
	s := tokens.FromSource(text)
	for i := range s.Count() {
		tok := s.At(i)
		if tok.Kind != token.OpenTag || strings.HasPrefix(strings.ToLower(tok.Text), "<?php") {
			continue
		}
		// "<?" + один пробельный символ (или ничего в конце файла)
		rest := strings.TrimPrefix(tok.Text, "<?")
		if rest == "" {
			rest = " "
		}
		tok.SetText("<?php" + rest)
	}
	return s.GenerateText()
}
