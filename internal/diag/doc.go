// Package diag defines the diagnostic model shared by the lexer, the fixers,
// the runner and the driver.
//
// # Purpose
//
//   - Provide deterministic data structures that capture findings produced
//     while tokenizing and fixing files.
//   - Offer light-weight utilities (Reporter, Bag) that let producers emit
//     diagnostics without coupling to concrete storage or formatting layers.
//
// Diagnostics never change what a fixer produces. A fixer that declines to
// touch a malformed region reports it and returns the region unchanged; the
// report only explains the decision to the user.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity – tri-level enum (Info, Warning, Error) see diagnostic.go.
//   - Code – compact numeric identifier (see codes.go) with stable string form
//     such as LEX1001 or CFG5001.
//   - Message – human oriented text; keep it short and actionable.
//   - Primary span – the source.Span pointing to the issue.
//   - Notes – optional secondary spans/messages for additional context.
//
// # Reporting
//
// Producers receive a Reporter and use ReportError/ReportWarning/ReportInfo
// followed by Emit. A nil Reporter is accepted everywhere and drops records,
// so rule code never needs to check for it.
//
// Rendering lives in internal/diagfmt.
package diag
