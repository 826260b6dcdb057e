package token

var operators = map[string]Kind{
	"===": IsIdentical,
	"!==": IsNotIdentical,
	"==":  IsEqual,
	"!=":  IsNotEqual,
	"<>":  IsNotEqual,
	"<=>": Spaceship,
	"<=":  IsSmallerOrEqual,
	">=":  IsGreaterOrEqual,
	"&&":  BooleanAnd,
	"||":  BooleanOr,
	"??":  Coalesce,
	"??=": CoalesceEqual,
	"++":  Inc,
	"--":  Dec,
	"+=":  PlusEqual,
	"-=":  MinusEqual,
	"*=":  MulEqual,
	"/=":  DivEqual,
	".=":  ConcatEqual,
	"%=":  ModEqual,
	"&=":  AndEqual,
	"|=":  OrEqual,
	"^=":  XorEqual,
	"<<":  Sl,
	">>":  Sr,
	"<<=": SlEqual,
	">>=": SrEqual,
	"**":  Pow,
	"**=": PowEqual,
	"=>":  DoubleArrow,
	"->":  ObjectOperator,
	"?->": NullsafeObjectOperator,
	"::":  DoubleColon,
	"...": Ellipsis,
}

var operatorSpelling = map[Kind]string{}

func init() {
	for text, k := range operators {
		if k == IsNotEqual {
			text = "!="
		}
		operatorSpelling[k] = text
	}
}

// LookupOperator resolves an exact operator spelling.
func LookupOperator(text string) (Kind, bool) {
	k, ok := operators[text]
	return k, ok
}
