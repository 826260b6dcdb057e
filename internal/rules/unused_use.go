package rules

import (
	"strings"

	"csfix/internal/diag"
	"csfix/internal/rule"
	"csfix/internal/source"
	"csfix/internal/token"
	"csfix/internal/tokens"
)

// UnusedUse removes namespace-level imports that nothing refers to, and
// imports of names from the current namespace. Declarations importing
// several names are left for multiple_use to split first.
func UnusedUse() rule.Rule {
	return &rule.Func{
		RuleName:        "unused_use",
		RuleDescription: "Unused use statements must be removed.",
		RuleLevel:       rule.LevelSymfony,
		RulePriority:    -5,
		Extensions:      phpExtensions,
		Sniff:           isPHPSource,
		Apply:           fixUnusedUse,
	}
}

type useDecl struct {
	start, end int // "use" .. ";"
	name       string
	alias      string // explicit "as" alias
	namespace  string // namespace the declaration sits in
	single     bool
}

func (u useDecl) shortName() string {
	if u.alias != "" {
		return u.alias
	}
	if i := strings.LastIndexByte(u.name, '\\'); i >= 0 {
		return u.name[i+1:]
	}
	return u.name
}

// sameNamespace reports whether the import names a class of the namespace
// it is declared in, which makes it a no-op.
func (u useDecl) sameNamespace() bool {
	if u.alias != "" || u.namespace == "" {
		return false
	}
	i := strings.LastIndexByte(u.name, '\\')
	return i >= 0 && strings.EqualFold(u.name[:i], u.namespace)
}

func fixUnusedUse(_ *source.File, text string, _ diag.Reporter) string {
	s := tokens.FromSource(text)

	decls := collectUses(s)
	if len(decls) == 0 {
		return text
	}
	rest := textWithout(s, decls)

	for k := len(decls) - 1; k >= 0; k-- {
		d := decls[k]
		if !d.single {
			continue
		}
		if d.sameNamespace() || !containsWord(rest, d.shortName()) {
			removeUse(s, d)
		}
	}
	return s.GenerateText()
}

func collectUses(s *tokens.Stream) []useDecl {
	uses := s.NamespaceUseIndexes()
	out := make([]useDecl, 0, len(uses))
	for _, idx := range uses {
		ref, ok := s.FindNext(idx, tokens.Ch(";"))
		if !ok {
			continue
		}
		end := s.Index(ref)
		d := useDecl{start: idx, end: end, namespace: namespaceAt(s, idx)}
		d.name, d.alias, d.single = parseImport(s.GenerateRange(idx+1, end-1))
		out = append(out, d)
	}
	return out
}

// parseImport reads "Foo\Bar", "Foo\Bar as Baz" or "function foo". single
// is false for lists, groups and anything containing comments.
func parseImport(decl string) (name, alias string, single bool) {
	if strings.ContainsAny(decl, ",{/#") {
		return "", "", false
	}
	_, decl = useKindPrefix(strings.TrimSpace(decl))
	fields := strings.Fields(decl)
	switch {
	case len(fields) == 1:
		return strings.TrimPrefix(fields[0], `\`), "", true
	case len(fields) == 3 && strings.EqualFold(fields[1], "as"):
		return strings.TrimPrefix(fields[0], `\`), fields[2], true
	}
	return "", "", false
}

// namespaceAt returns the name of the last namespace declaration before i.
func namespaceAt(s *tokens.Stream, i int) string {
	for j := i - 1; j >= 0; j-- {
		if s.At(j).Kind != token.KwNamespace {
			continue
		}
		// namespace\foo() is a relative name, not a declaration
		if next, ok := s.FindNextNonTrivial(j); ok && s.At(s.Index(next)).Kind == token.NsSeparator {
			continue
		}
		ref, ok := s.FindNext(j, tokens.Ch(";"), tokens.Ch("{"))
		if !ok {
			return ""
		}
		return strings.TrimSpace(s.GenerateRange(j+1, s.Index(ref)-1))
	}
	return ""
}

func textWithout(s *tokens.Stream, decls []useDecl) string {
	var sb strings.Builder
	next := 0
	for i := range s.Count() {
		if next < len(decls) && i >= decls[next].start {
			if i <= decls[next].end {
				continue
			}
			next++
		}
		sb.WriteString(s.At(i).Text)
	}
	return sb.String()
}

// removeUse clears the declaration together with its line: indentation
// before it and the first line break after it.
func removeUse(s *tokens.Stream, d useDecl) {
	s.ClearRange(d.start, d.end)

	if d.start > 0 {
		if prev := s.At(d.start - 1); prev.IsWhitespace() {
			prev.SetText(strings.TrimRight(prev.Text, " \t"))
		}
	}
	if d.end+1 < s.Count() {
		if next := s.At(d.end + 1); next.IsWhitespace() {
			switch {
			case strings.HasPrefix(next.Text, "\r\n"):
				next.SetText(next.Text[2:])
			case strings.HasPrefix(next.Text, "\n"):
				next.SetText(next.Text[1:])
			}
		}
	}
}

// containsWord is a case-insensitive search for word that is not part of
// a longer identifier.
func containsWord(haystack, word string) bool {
	if word == "" {
		return false
	}
	h, w := asciiLower(haystack), asciiLower(word)
	for off := 0; ; {
		i := strings.Index(h[off:], w)
		if i < 0 {
			return false
		}
		i += off
		end := i + len(w)
		if (i == 0 || !isWordByte(h[i-1])) && (end == len(h) || !isWordByte(h[end])) {
			return true
		}
		off = i + 1
	}
}

func isWordByte(c byte) bool {
	return c == '_' || c >= 0x80 ||
		('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9')
}

func asciiLower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if 'A' <= c && c <= 'Z' {
			b[i] = c + 'a' - 'A'
		}
	}
	return string(b)
}
