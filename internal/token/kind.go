package token

import "fmt"

// Kind represents the category of a PHP source token.
type Kind uint8

const (
	// Unknown holds bytes the lexer could not classify. The text is kept
	// so the stream stays lossless.
	Unknown Kind = iota
	// Void is a cleared token. It renders as nothing.
	Void
	// Char is a single punctuation character with no dedicated kind
	// (";", "(", "=", ...). Match it by Text.
	Char

	// InlineHTML is text outside of <?php ... ?>.
	InlineHTML
	// OpenTag is "<?php" or "<?" including one trailing whitespace character.
	OpenTag
	// OpenTagWithEcho is "<?=".
	OpenTagWithEcho
	// CloseTag is "?>" including one directly following newline.
	CloseTag

	// Whitespace is a maximal run of spaces, tabs and line breaks.
	Whitespace
	// Comment is a //, # or /* */ comment. Line comments exclude the newline.
	Comment
	// DocComment is a /** */ comment.
	DocComment

	// Variable is $name.
	Variable
	// Ident is a bare name: class, function or constant names, true/false/null.
	Ident
	// NsSeparator is the namespace separator "\".
	NsSeparator
	// LNumber is an integer literal.
	LNumber
	// DNumber is a floating point literal.
	DNumber
	// ConstantString is a quoted string without interpolation.
	ConstantString
	// InterpolatedString is a double-quoted string containing variables.
	InterpolatedString
	// Heredoc is a heredoc or nowdoc, from "<<<" through the closing label.
	Heredoc
	// Backtick is a shell-exec string.
	Backtick
	// Cast is a type cast such as "(int)" or "( string )".
	Cast

	kwFirst
	KwAbstract     // abstract
	KwAnd          // and
	KwArray        // array
	KwAs           // as
	KwBreak        // break
	KwCallable     // callable
	KwCase         // case
	KwCatch        // catch
	KwClass        // class
	KwClone        // clone
	KwConst        // const
	KwContinue     // continue
	KwDeclare      // declare
	KwDefault      // default
	KwDo           // do
	KwEcho         // echo
	KwElse         // else
	KwElseif       // elseif
	KwEmpty        // empty
	KwEnddeclare   // enddeclare
	KwEndfor       // endfor
	KwEndforeach   // endforeach
	KwEndif        // endif
	KwEndswitch    // endswitch
	KwEndwhile     // endwhile
	KwEval         // eval
	KwExit         // exit, die
	KwExtends      // extends
	KwFinal        // final
	KwFinally      // finally
	KwFn           // fn
	KwFor          // for
	KwForeach      // foreach
	KwFunction     // function
	KwGlobal       // global
	KwGoto         // goto
	KwHaltCompiler // __halt_compiler
	KwIf           // if
	KwImplements   // implements
	KwInclude      // include
	KwIncludeOnce  // include_once
	KwInstanceof   // instanceof
	KwInsteadof    // insteadof
	KwInterface    // interface
	KwIsset        // isset
	KwList         // list
	KwMatch        // match
	KwNamespace    // namespace
	KwNew          // new
	KwOr           // or
	KwPrint        // print
	KwPrivate      // private
	KwProtected    // protected
	KwPublic       // public
	KwReadonly     // readonly
	KwRequire      // require
	KwRequireOnce  // require_once
	KwReturn       // return
	KwStatic       // static
	KwSwitch       // switch
	KwThrow        // throw
	KwTrait        // trait
	KwTry          // try
	KwUnset        // unset
	KwUse          // use
	KwVar          // var
	KwWhile        // while
	KwXor          // xor
	KwYield        // yield
	kwLast

	opFirst
	IsIdentical            // ===
	IsNotIdentical         // !==
	IsEqual                // ==
	IsNotEqual             // != <>
	Spaceship              // <=>
	IsSmallerOrEqual       // <=
	IsGreaterOrEqual       // >=
	BooleanAnd             // &&
	BooleanOr              // ||
	Coalesce               // ??
	CoalesceEqual          // ??=
	Inc                    // ++
	Dec                    // --
	PlusEqual              // +=
	MinusEqual             // -=
	MulEqual               // *=
	DivEqual               // /=
	ConcatEqual            // .=
	ModEqual               // %=
	AndEqual               // &=
	OrEqual                // |=
	XorEqual               // ^=
	Sl                     // <<
	Sr                     // >>
	SlEqual                // <<=
	SrEqual                // >>=
	Pow                    // **
	PowEqual               // **=
	DoubleArrow            // =>
	ObjectOperator         // ->
	NullsafeObjectOperator // ?->
	DoubleColon            // ::
	Ellipsis               // ...
	opLast
)

var kindNames = map[Kind]string{
	Unknown:            "Unknown",
	Void:               "Void",
	Char:               "Char",
	InlineHTML:         "InlineHTML",
	OpenTag:            "OpenTag",
	OpenTagWithEcho:    "OpenTagWithEcho",
	CloseTag:           "CloseTag",
	Whitespace:         "Whitespace",
	Comment:            "Comment",
	DocComment:         "DocComment",
	Variable:           "Variable",
	Ident:              "Ident",
	NsSeparator:        "NsSeparator",
	LNumber:            "LNumber",
	DNumber:            "DNumber",
	ConstantString:     "ConstantString",
	InterpolatedString: "InterpolatedString",
	Heredoc:            "Heredoc",
	Backtick:           "Backtick",
	Cast:               "Cast",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	if k.IsKeyword() {
		return "Kw(" + keywordSpelling[k] + ")"
	}
	if k.IsOperator() {
		return "Op(" + operatorSpelling[k] + ")"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// IsKeyword reports whether k is a reserved word.
func (k Kind) IsKeyword() bool { return k > kwFirst && k < kwLast }

// IsOperator reports whether k is a multi-character operator.
func (k Kind) IsOperator() bool { return k > opFirst && k < opLast }
