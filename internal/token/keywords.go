package token

import "strings"

var keywords = map[string]Kind{
	"abstract":        KwAbstract,
	"and":             KwAnd,
	"array":           KwArray,
	"as":              KwAs,
	"break":           KwBreak,
	"callable":        KwCallable,
	"case":            KwCase,
	"catch":           KwCatch,
	"class":           KwClass,
	"clone":           KwClone,
	"const":           KwConst,
	"continue":        KwContinue,
	"declare":         KwDeclare,
	"default":         KwDefault,
	"die":             KwExit,
	"do":              KwDo,
	"echo":            KwEcho,
	"else":            KwElse,
	"elseif":          KwElseif,
	"empty":           KwEmpty,
	"enddeclare":      KwEnddeclare,
	"endfor":          KwEndfor,
	"endforeach":      KwEndforeach,
	"endif":           KwEndif,
	"endswitch":       KwEndswitch,
	"endwhile":        KwEndwhile,
	"eval":            KwEval,
	"exit":            KwExit,
	"extends":         KwExtends,
	"final":           KwFinal,
	"finally":         KwFinally,
	"fn":              KwFn,
	"for":             KwFor,
	"foreach":         KwForeach,
	"function":        KwFunction,
	"global":          KwGlobal,
	"goto":            KwGoto,
	"__halt_compiler": KwHaltCompiler,
	"if":              KwIf,
	"implements":      KwImplements,
	"include":         KwInclude,
	"include_once":    KwIncludeOnce,
	"instanceof":      KwInstanceof,
	"insteadof":       KwInsteadof,
	"interface":       KwInterface,
	"isset":           KwIsset,
	"list":            KwList,
	"match":           KwMatch,
	"namespace":       KwNamespace,
	"new":             KwNew,
	"or":              KwOr,
	"print":           KwPrint,
	"private":         KwPrivate,
	"protected":       KwProtected,
	"public":          KwPublic,
	"readonly":        KwReadonly,
	"require":         KwRequire,
	"require_once":    KwRequireOnce,
	"return":          KwReturn,
	"static":          KwStatic,
	"switch":          KwSwitch,
	"throw":           KwThrow,
	"trait":           KwTrait,
	"try":             KwTry,
	"unset":           KwUnset,
	"use":             KwUse,
	"var":             KwVar,
	"while":           KwWhile,
	"xor":             KwXor,
	"yield":           KwYield,
}

// keywordSpelling maps a keyword kind back to its canonical lowercase form.
var keywordSpelling = func() map[Kind]string {
	out := make(map[Kind]string, len(keywords))
	for word, k := range keywords {
		if prev, ok := out[k]; ok && prev < word {
			continue // exit/die: keep the lexically smaller spelling
		}
		out[k] = word
	}
	return out
}()

// LookupKeyword resolves a name to its keyword kind. PHP keywords are
// case-insensitive, so "NEW" and "New" both yield KwNew.
func LookupKeyword(name string) (Kind, bool) {
	if k, ok := keywords[name]; ok {
		return k, true
	}
	k, ok := keywords[strings.ToLower(name)]
	return k, ok
}

// KeywordSpelling returns the lowercase source form of a keyword kind, or
// "" for other kinds.
func KeywordSpelling(k Kind) string {
	return keywordSpelling[k]
}
