package rules

import (
	"strings"

	"csfix/internal/diag"
	"csfix/internal/rule"
	"csfix/internal/source"
	"csfix/internal/tokens"
)

// MultipleUse splits "use A, B as C;" into one declaration per line. The
// new lines get the indentation of the original declaration. Group uses
// ("use A\{B, C};") are left alone.
func MultipleUse() rule.Rule {
	return &rule.Func{
		RuleName:        "multiple_use",
		RuleDescription: "There MUST be one use keyword per declaration.",
		RuleLevel:       rule.LevelPSR2,
		Extensions:      phpExtensions,
		Sniff:           isPHPSource,
		Apply:           fixMultipleUse,
	}
}

func fixMultipleUse(_ *source.File, text string, _ diag.Reporter) string {
	s := tokens.FromSource(text)
	uses := s.NamespaceUseIndexes()

	for k := len(uses) - 1; k >= 0; k-- {
		idx := uses[k]
		ref, ok := s.FindNext(idx, tokens.Ch(";"))
		if !ok {
			continue
		}
		end := s.Index(ref)

		decl := s.GenerateRange(idx+1, end-1)
		if strings.Contains(decl, "{") {
			continue
		}
		parts := strings.Split(decl, ",")
		if len(parts) < 2 {
			continue
		}

		kind, first := useKindPrefix(strings.TrimSpace(parts[0]))
		parts[0] = first

		indent := s.LineIndent(idx)
		lines := make([]string, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p == "" {
				continue
			}
			lines = append(lines, "use "+kind+p+";")
		}

		s.ClearRange(idx, end)
		s.InsertAt(idx, tokens.FromCode(strings.Join(lines, "\n"+indent)).Tokens()...)
	}

	return s.GenerateText()
}

// useKindPrefix splits a leading "function " or "const " off an import.
// The returned prefix keeps its trailing space.
func useKindPrefix(decl string) (prefix, rest string) {
	for _, kw := range []string{"function", "const"} {
		if len(decl) > len(kw) && strings.EqualFold(decl[:len(kw)], kw) && isBlank(decl[len(kw)]) {
			return strings.ToLower(kw) + " ", strings.TrimSpace(decl[len(kw):])
		}
	}
	return "", decl
}

func isBlank(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
