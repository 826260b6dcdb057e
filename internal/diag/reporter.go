package diag

import "csfix/internal/source"

// Reporter принимает диагностики от лексера, фиксеров и раннера.
// nil допустим: отчёт просто теряется.
type Reporter interface {
	Report(code Code, sev Severity, primary source.Span, msg string, notes []Note)
}

// ReportBuilder collects notes before the diagnostic is handed to a Reporter.
type ReportBuilder struct {
	to   Reporter
	d    Diagnostic
	sent bool
}

func newBuilder(r Reporter, sev Severity, code Code, primary source.Span, msg string) *ReportBuilder {
	return &ReportBuilder{to: r, d: Diagnostic{Severity: sev, Code: code, Message: msg, Primary: primary}}
}

func ReportError(r Reporter, code Code, primary source.Span, msg string) *ReportBuilder {
	return newBuilder(r, SevError, code, primary, msg)
}

func ReportWarning(r Reporter, code Code, primary source.Span, msg string) *ReportBuilder {
	return newBuilder(r, SevWarning, code, primary, msg)
}

func ReportInfo(r Reporter, code Code, primary source.Span, msg string) *ReportBuilder {
	return newBuilder(r, SevInfo, code, primary, msg)
}

func (b *ReportBuilder) WithNote(sp source.Span, msg string) *ReportBuilder {
	if b != nil {
		b.d.Notes = append(b.d.Notes, Note{Span: sp, Msg: msg})
	}
	return b
}

// Emit forwards the diagnostic; repeated calls are no-ops.
func (b *ReportBuilder) Emit() {
	if b == nil || b.sent {
		return
	}
	b.sent = true
	if b.to != nil {
		b.to.Report(b.d.Code, b.d.Severity, b.d.Primary, b.d.Message, b.d.Notes)
	}
}

// BagReporter stores everything it receives in Bag.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(code Code, sev Severity, primary source.Span, msg string, notes []Note) {
	if r.Bag != nil {
		r.Bag.Add(Diagnostic{Severity: sev, Code: code, Message: msg, Primary: primary, Notes: notes})
	}
}

type seenKey struct {
	code Code
	sev  Severity
	span source.Span
	msg  string
}

type dedup struct {
	next Reporter
	seen map[seenKey]struct{}
}

// Dedup drops reports identical to one already forwarded to next.
// Every pass of the runner re-runs the same rules over mostly the same text,
// so without it a skipped region would be reported once per pass.
func Dedup(next Reporter) Reporter {
	if next == nil {
		return nil
	}
	return &dedup{next: next, seen: make(map[seenKey]struct{})}
}

func (r *dedup) Report(code Code, sev Severity, primary source.Span, msg string, notes []Note) {
	k := seenKey{code: code, sev: sev, span: primary, msg: msg}
	if _, ok := r.seen[k]; ok {
		return
	}
	r.seen[k] = struct{}{}
	r.next.Report(code, sev, primary, msg, notes)
}
