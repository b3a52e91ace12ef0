package lint

import (
	"julint/internal/diag"
	"julint/internal/source"
)

// DefaultMaxIssues is how many issues a rendered report lists before
// truncating. The total count is always reported in full.
const DefaultMaxIssues = 10

// Options configures one checker run. The zero value gives the stock
// behavior: all rules enabled, reports truncated to DefaultMaxIssues.
type Options struct {
	// MaxIssues caps the rendered issue list. Zero means DefaultMaxIssues.
	MaxIssues int
	// Disable lists rule names (see RuleNames) to skip.
	Disable []string
}

func (o Options) maxIssues() int {
	if o.MaxIssues <= 0 {
		return DefaultMaxIssues
	}
	return o.MaxIssues
}

func (o Options) disabled(name string) bool {
	for _, d := range o.Disable {
		if d == name {
			return true
		}
	}
	return false
}

// Report is the result of checking one file.
type Report struct {
	File *source.File
	Bag  *diag.Bag

	// Fixed is the content after the auto-fix pass. Equal to the input
	// when no substitution changed the text.
	Fixed []byte
	// AutoFixed records whether the auto-fix pass changed the text.
	AutoFixed bool

	maxIssues int
}

// Rehydrate rebuilds a report from previously serialized parts (the disk
// cache). The diagnostics must be in their original emission order.
func Rehydrate(file *source.File, diags []diag.Diagnostic, fixed []byte, autoFixed bool, opts Options) *Report {
	bag := diag.NewBag(len(diags))
	for _, d := range diags {
		bag.Add(d)
	}
	return &Report{
		File:      file,
		Bag:       bag,
		Fixed:     fixed,
		AutoFixed: autoFixed,
		maxIssues: opts.maxIssues(),
	}
}

// Clean reports whether the run found no issues.
func (r *Report) Clean() bool {
	return r.Bag.Len() == 0
}

// MaxIssues returns the render cap this report was produced with.
func (r *Report) MaxIssues() int {
	return r.maxIssues
}

// Issues returns the issues that a rendering should list: the first
// MaxIssues diagnostics in rule order.
func (r *Report) Issues() []diag.Diagnostic {
	return r.Bag.Head(r.maxIssues)
}

// EmbedsFixed reports whether renderings should embed the fixed text
// instead of the original: the auto-fix happened and its note survived
// the first-N truncation.
func (r *Report) EmbedsFixed() bool {
	if !r.AutoFixed {
		return false
	}
	for _, d := range r.Issues() {
		if d.Code == diag.NotInRewritten {
			return true
		}
	}
	return false
}

// EmbeddedCode returns the code a rendering should echo: the fixed text
// when EmbedsFixed, otherwise the original input.
func (r *Report) EmbeddedCode() []byte {
	if r.EmbedsFixed() {
		return r.Fixed
	}
	return r.File.Content
}
