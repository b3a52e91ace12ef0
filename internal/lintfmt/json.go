package lintfmt

import (
	"encoding/json"
	"io"

	"julint/internal/lint"
	"julint/internal/source"
)

// IssueOutput is one diagnostic in machine-readable form.
type IssueOutput struct {
	Severity string      `json:"severity"`
	Code     string      `json:"code"`
	Message  string      `json:"message"`
	Line     uint32      `json:"line"`
	Col      uint32      `json:"col"`
	Fixes    []FixOutput `json:"fixes,omitempty"`
}

// FixOutput is one suggested edit in machine-readable form.
type FixOutput struct {
	Title   string `json:"title"`
	Start   uint32 `json:"start"`
	End     uint32 `json:"end"`
	NewText string `json:"newText"`
}

// ReportOutput is the JSON shape of one file's report.
type ReportOutput struct {
	Path      string        `json:"path"`
	Clean     bool          `json:"clean"`
	Total     int           `json:"total"`
	Truncated bool          `json:"truncated"`
	Issues    []IssueOutput `json:"issues"`
	AutoFixed bool          `json:"autoFixed"`
	Code      string        `json:"code,omitempty"`
}

// BuildReportOutput converts a report into its JSON shape.
func BuildReportOutput(rep *lint.Report, fs *source.FileSet, opts JSONOpts) ReportOutput {
	file := rep.File
	out := ReportOutput{
		Path:      file.FormatPath(opts.PathMode.FormatArg(), fs.BaseDir()),
		Clean:     rep.Clean(),
		Total:     rep.Bag.Len(),
		Truncated: rep.Bag.Len() > rep.MaxIssues(),
		Issues:    make([]IssueOutput, 0, len(rep.Issues())),
		AutoFixed: rep.AutoFixed,
	}

	for _, d := range rep.Issues() {
		start, _ := fs.Resolve(d.Primary)
		issue := IssueOutput{
			Severity: d.Severity.String(),
			Code:     d.Code.ID(),
			Message:  d.Message,
			Line:     start.Line,
			Col:      start.Col,
		}
		if opts.IncludeFixes {
			for _, f := range d.Fixes {
				for _, e := range f.Edits {
					issue.Fixes = append(issue.Fixes, FixOutput{
						Title:   f.Title,
						Start:   e.Span.Start,
						End:     e.Span.End,
						NewText: e.NewText,
					})
				}
			}
		}
		out.Issues = append(out.Issues, issue)
	}

	if opts.IncludeCode {
		out.Code = string(rep.EmbeddedCode())
	}
	return out
}

// JSON encodes a single report to w.
func JSON(w io.Writer, rep *lint.Report, fs *source.FileSet, opts JSONOpts) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildReportOutput(rep, fs, opts))
}

// JSONAll encodes reports for several files keyed by display path.
func JSONAll(w io.Writer, reps []*lint.Report, fs *source.FileSet, opts JSONOpts) error {
	out := make(map[string]ReportOutput, len(reps))
	for _, rep := range reps {
		data := BuildReportOutput(rep, fs, opts)
		out[data.Path] = data
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}
