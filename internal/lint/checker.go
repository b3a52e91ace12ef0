// Package lint implements the heuristic Julia source checker.
//
// The checker is a fixed ordered battery of nine independent pattern
// rules over one immutable input text. There is deliberately no lexer,
// parser, or AST: every rule is a stateless match over the raw text, the
// heuristics are approximate, and a true parse would change the tool's
// observable behavior. One rule additionally produces a mechanically
// fixed copy of the input.
package lint

import (
	"julint/internal/diag"
	"julint/internal/source"
)

// Check runs every enabled rule against the file in the fixed rule order
// and assembles the report. It is a pure function of the file content and
// options: no side effects, no state across calls, and no failure mode on
// any input.
func Check(file *source.File, opts Options) *Report {
	rc := &ruleContext{
		file:  file,
		text:  string(file.Content),
		bag:   diag.NewBag(opts.maxIssues()),
		fixed: string(file.Content),
	}

	for _, r := range rules {
		if opts.disabled(r.name) {
			continue
		}
		r.run(rc)
	}

	return &Report{
		File:      file,
		Bag:       rc.bag,
		Fixed:     []byte(rc.fixed),
		AutoFixed: rc.autoFixed,
		maxIssues: opts.maxIssues(),
	}
}
