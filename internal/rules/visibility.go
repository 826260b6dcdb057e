package rules

import (
	"sort"
	"strings"

	"csfix/internal/diag"
	"csfix/internal/rule"
	"csfix/internal/source"
	"csfix/internal/token"
	"csfix/internal/tokens"
)

// Visibility declares visibility on every property and method and orders
// modifiers as "abstract/final, visibility, static, readonly". "var" is
// replaced with "public".
func Visibility() rule.Rule {
	return &rule.Func{
		RuleName:        "visibility",
		RuleDescription: "Visibility MUST be declared on all properties and methods; abstract and final MUST be declared before the visibility; static MUST be declared after the visibility.",
		RuleLevel:       rule.LevelPSR2,
		Extensions:      phpExtensions,
		Sniff:           isPHPSource,
		Apply:           fixVisibility,
	}
}

// member is a class-level declaration: modifiers at first..target-1,
// the function keyword or property at target.
type member struct {
	first, target int
	mods          []token.Kind
}

func fixVisibility(file *source.File, text string, rep diag.Reporter) string {
	s := tokens.FromSource(text)

	var members []member
	for i := range s.Count() {
		if !opensClassLike(s, i) {
			continue
		}
		ref, ok := s.FindNext(i, tokens.Ch("{"), tokens.Ch(";"))
		if !ok || !s.At(s.Index(ref)).IsChar("{") {
			continue
		}
		open := s.Index(ref)
		cref, ok := s.MatchBalanced(open, tokens.Ch("{"), tokens.Ch("}"))
		if !ok {
			reportUnmatched(rep, file, s, open, "visibility")
			continue
		}
		members = append(members, classMembers(s, open, s.Index(cref))...)
	}

	sort.Slice(members, func(a, b int) bool { return members[a].first > members[b].first })
	for _, m := range members {
		rewriteModifiers(s, m)
	}

	return s.GenerateText()
}

func opensClassLike(s *tokens.Stream, i int) bool {
	switch s.At(i).Kind {
	case token.KwInterface, token.KwTrait:
		return true
	case token.KwClass:
		return !prevKind(s, i, token.DoubleColon)
	}
	return false
}

func prevKind(s *tokens.Stream, i int, k token.Kind) bool {
	ref, ok := s.FindPrevNonTrivial(i)
	return ok && s.At(s.Index(ref)).Kind == k
}

// classMembers collects declarations directly inside the body open..closing.
func classMembers(s *tokens.Stream, open, closing int) []member {
	var out []member
	depth := 0
	expectStart := true
	for i := open + 1; i < closing; i++ {
		tok := s.At(i)
		switch {
		case tok.IsTrivia():
			continue
		case tok.IsChar("{"):
			depth++
			expectStart = false
			continue
		case tok.IsChar("}"):
			depth--
			expectStart = depth == 0
			continue
		}
		if depth > 0 {
			continue
		}
		if tok.IsChar(";") {
			expectStart = true
			continue
		}
		if !expectStart {
			continue
		}
		expectStart = false
		if m, ok := scanMember(s, i, closing); ok {
			out = append(out, m)
		}
	}
	return out
}

var memberModifiers = map[token.Kind]bool{
	token.KwPublic:    true,
	token.KwProtected: true,
	token.KwPrivate:   true,
	token.KwStatic:    true,
	token.KwAbstract:  true,
	token.KwFinal:     true,
	token.KwVar:       true,
	token.KwReadonly:  true,
}

func scanMember(s *tokens.Stream, start, limit int) (member, bool) {
	m := member{first: start}
	i := start
	for i < limit {
		tok := s.At(i)
		if tok.IsTrivia() {
			if tok.IsComment() {
				return member{}, false
			}
			i++
			continue
		}
		if !memberModifiers[tok.Kind] {
			break
		}
		m.mods = append(m.mods, tok.Kind)
		i++
	}
	if i >= limit {
		return member{}, false
	}
	m.target = i

	switch target := s.At(i); {
	case target.Kind == token.KwFunction, target.Kind == token.Variable:
		return m, true
	case len(m.mods) > 0 && typedProperty(s, i, limit):
		return m, true
	}
	return member{}, false
}

// typedProperty reports whether a type declaration starting at i is
// followed by a property variable.
func typedProperty(s *tokens.Stream, i, limit int) bool {
	for ; i < limit; i++ {
		tok := s.At(i)
		switch {
		case tok.IsTrivia():
		case tok.Kind == token.Variable:
			return true
		case tok.Kind == token.Ident, tok.Kind == token.NsSeparator, tok.Kind == token.KwArray,
			tok.Kind == token.KwStatic, tok.IsChar("?"), tok.IsChar("|"), tok.IsChar("&"),
			tok.IsChar("("), tok.IsChar(")"):
		default:
			return false
		}
	}
	return false
}

func rewriteModifiers(s *tokens.Stream, m member) {
	var (
		visibility = "public"
		prefix     []string
		static     bool
		readonly   bool
	)
	for _, k := range m.mods {
		switch k {
		case token.KwPublic, token.KwProtected, token.KwPrivate:
			visibility = token.KeywordSpelling(k)
		case token.KwAbstract, token.KwFinal:
			prefix = append(prefix, token.KeywordSpelling(k))
		case token.KwStatic:
			static = true
		case token.KwReadonly:
			readonly = true
		}
	}

	words := append(prefix, visibility)
	if static {
		words = append(words, "static")
	}
	if readonly {
		words = append(words, "readonly")
	}
	want := strings.Join(words, " ") + " "

	if m.first < m.target && s.GenerateRange(m.first, m.target-1) == want {
		return
	}
	if m.first < m.target {
		s.ClearRange(m.first, m.target-1)
	}
	s.InsertAt(m.first, tokens.FromCode(want).Tokens()...)
}
