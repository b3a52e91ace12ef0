package lintfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"julint/internal/diag"
	"julint/internal/lint"
	"julint/internal/source"
)

var (
	cleanHeader = color.New(color.FgGreen, color.Bold)
	dirtyHeader = color.New(color.FgRed, color.Bold)
	contextDim  = color.New(color.Faint)
)

// Pretty renders the report in its canonical human shape: a success
// banner with the input echoed unchanged, or the issue count, the first
// N issues as a bulleted list, and the embedded code at the end. The
// embedded code is the fixed text only when the auto-fix note survived
// truncation.
func Pretty(w io.Writer, rep *lint.Report, fs *source.FileSet, opts PrettyOpts) {
	if rep.Clean() {
		writeHeader(w, cleanHeader, opts.Color, "✅ Clean! Ready for Julia.")
		fmt.Fprintf(w, "\nCode:\n%s\n", rep.File.Content)
		return
	}

	writeHeader(w, dirtyHeader, opts.Color, fmt.Sprintf("❌ Fixes (%d):", rep.Bag.Len()))
	for _, d := range rep.Issues() {
		fmt.Fprintf(w, "- %s\n", d.Message)
		if opts.ShowContext && !d.Primary.Empty() {
			writeContext(w, fs, d, opts)
		}
	}

	label := "Code"
	if rep.EmbedsFixed() {
		label = "Fixed code"
	}
	fmt.Fprintf(w, "\n%s:\n%s\n", label, rep.EmbeddedCode())
}

func writeHeader(w io.Writer, c *color.Color, colored bool, text string) {
	if colored {
		c.Fprintln(w, text)
		return
	}
	fmt.Fprintln(w, text)
}

// writeContext prints the source line the span starts on, with a caret
// run underneath covering the spanned text. Widths are computed with
// runewidth so the caret stays aligned for wide runes.
func writeContext(w io.Writer, fs *source.FileSet, d diag.Diagnostic, opts PrettyOpts) {
	file := fs.Get(d.Primary.File)
	start, end := fs.Resolve(d.Primary)
	line := file.GetLine(start.Line)
	if line == "" {
		return
	}

	path := file.FormatPath(opts.PathMode.FormatArg(), fs.BaseDir())
	location := fmt.Sprintf("  --> %s:%d:%d", path, start.Line, start.Col)
	if opts.Color {
		contextDim.Fprintln(w, location)
	} else {
		fmt.Fprintln(w, location)
	}

	prefix := fmt.Sprintf("  %d | ", start.Line)
	fmt.Fprintf(w, "%s%s\n", prefix, line)

	// caret run: from span start to span end, clipped to this line
	startCol := int(start.Col) - 1
	if startCol > len(line) {
		startCol = len(line)
	}
	endCol := len(line)
	if end.Line == start.Line && int(end.Col)-1 < endCol {
		endCol = int(end.Col) - 1
	}
	if endCol < startCol {
		endCol = startCol
	}

	pad := len(prefix) + runewidth.StringWidth(line[:startCol])
	carets := runewidth.StringWidth(line[startCol:endCol])
	if carets < 1 {
		carets = 1
	}
	fmt.Fprintf(w, "%s^%s\n", strings.Repeat(" ", pad), strings.Repeat("~", carets-1))
}
