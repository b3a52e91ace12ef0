package diag

import (
	"julint/internal/source"
)

// Note attaches secondary context to a diagnostic.
type Note struct {
	Span source.Span
	Msg  string
}

// FixEdit is one textual replacement inside a file.
type FixEdit struct {
	Span    source.Span
	NewText string
}

// Fix is a titled group of edits that together resolve a diagnostic.
type Fix struct {
	Title string
	Edits []FixEdit
}

// Diagnostic is one issue found by a rule. Primary may be the zero span
// for whole-file findings (quote parity, indentation).
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
	Fixes    []Fix
}
