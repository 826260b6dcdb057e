package diag

import "csfix/internal/source"

// Severity orders diagnostics; a higher value is more serious.
type Severity uint8

const (
	SevInfo Severity = iota
	SevWarning
	SevError
)

var severityNames = [...]string{
	SevInfo:    "INFO",
	SevWarning: "WARNING",
	SevError:   "ERROR",
}

func (s Severity) String() string {
	if int(s) < len(severityNames) {
		return severityNames[s]
	}
	return "UNKNOWN"
}

// Note points at a secondary location, e.g. where an unmatched bracket was opened.
type Note struct {
	Span source.Span
	Msg  string
}

// Diagnostic is one finding about a file. Fixers report regions they
// refused to touch; the runner reports non-convergence; the driver
// reports I/O failures.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
}
