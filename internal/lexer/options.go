package lexer

import (
	"csfix/internal/diag"
	"csfix/internal/source"
)

type Options struct {
	Reporter diag.Reporter // может быть nil, тогда ошибки игнорируем (но продолжаем лексить)
	// CodeMode starts lexing inside PHP code even when the input has no
	// open tag. Used for fragments spliced into existing streams.
	CodeMode bool
}

func (lx *Lexer) report(code diag.Code, sp source.Span, msg string) {
	diag.ReportWarning(lx.opts.Reporter, code, sp, msg).Emit()
}
