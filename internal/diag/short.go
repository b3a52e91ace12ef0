package diag

import (
	"fmt"
	"strings"

	"julint/internal/source"
)

// FormatShortDiagnostics renders diagnostics into a single-line-per-entry
// representation for CLI short output and golden tests. Entries keep their
// emission order; a zero primary span renders as line 1, column 1.
// Returns "" when there are no diagnostics.
func FormatShortDiagnostics(diags []Diagnostic, fs *source.FileSet, includeNotes bool) string {
	if fs == nil || len(diags) == 0 {
		return ""
	}

	var b strings.Builder
	for i, d := range diags {
		if i > 0 {
			b.WriteByte('\n')
		}
		start, _ := fs.Resolve(d.Primary)
		path := fs.Get(d.Primary.File).FormatPath("auto", fs.BaseDir())
		fmt.Fprintf(&b, "%s %s %s:%d:%d %s", d.Severity, d.Code, path, start.Line, start.Col, d.Message)

		if includeNotes {
			for _, n := range d.Notes {
				noteStart, _ := fs.Resolve(n.Span)
				fmt.Fprintf(&b, "\n  note %s:%d:%d %s", path, noteStart.Line, noteStart.Col, n.Msg)
			}
		}
	}
	return b.String()
}
