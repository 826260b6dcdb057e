package rules

import (
	"csfix/internal/diag"
	"csfix/internal/rule"
	"csfix/internal/source"
	"csfix/internal/token"
	"csfix/internal/tokens"
)

const newWithBracesName = "new_with_braces"

// NewWithBraces adds "()" to instantiations written without them:
// "new Foo;" becomes "new Foo();". Index syntax on the class reference
// ("new $classes['x']") is skipped over before deciding.
func NewWithBraces() rule.Rule {
	return &rule.Func{
		RuleName:        newWithBracesName,
		RuleDescription: "All instances created with new keyword must be followed by braces.",
		RuleLevel:       rule.LevelSymfony,
		Extensions:      phpExtensions,
		Sniff:           isPHPSource,
		Apply:           fixNewWithBraces,
	}
}

var newBoundary = []tokens.Pattern{
	tokens.Ch(";"), tokens.Ch(","), tokens.Ch("("), tokens.Ch(")"), tokens.Ch("["), tokens.Ch("]"),
}

var indexTerminators = []tokens.Pattern{tokens.Ch(";"), tokens.Ch(","), tokens.Ch(")"), tokens.Ch("]")}

func matchesAny(t *token.Token, patterns []tokens.Pattern) bool {
	for _, p := range patterns {
		if p.Match(*t) {
			return true
		}
	}
	return false
}

func fixNewWithBraces(file *source.File, text string, rep diag.Reporter) string {
	s := tokens.FromSource(text)

	for i := s.Count() - 1; i >= 0; i-- {
		if s.At(i).Kind != token.KwNew {
			continue
		}
		// анонимные классы не трогаем
		if ref, ok := s.FindNextNonTrivial(i); ok && s.At(s.Index(ref)).Kind == token.KwClass {
			continue
		}

		ref, ok := s.FindNext(i, newBoundary...)
		if !ok {
			continue
		}
		next := s.Index(ref)

		// цепочка индексов после имени класса: new $a['x'][1]
		skip := false
		for s.At(next).IsChar("[") && s.IsIndexOpener(next) {
			closer, ok := s.MatchBalanced(next, tokens.Ch("["), tokens.Ch("]"))
			if !ok {
				reportUnmatched(rep, file, s, next, newWithBracesName)
				skip = true
				break
			}
			// after the index only a terminator proves it was a class name
			after, ok := s.FindNextNonTrivial(s.Index(closer))
			if !ok {
				skip = true
				break
			}
			next = s.Index(after)
			if !s.At(next).IsChar("[") && !s.At(next).IsChar("(") && !matchesAny(s.At(next), indexTerminators) {
				skip = true
				break
			}
		}
		if skip || s.At(next).IsChar("(") {
			continue
		}

		end, ok := s.FindPrevNonTrivial(next)
		if !ok {
			continue
		}
		at := s.Index(end) + 1
		s.InsertAt(at, token.NewChar("("), token.NewChar(")"))
	}

	return s.GenerateText()
}
