package lint

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode"

	"julint/internal/diag"
	"julint/internal/source"
)

// A rule is one independent pattern check over the full input text.
// Rules never fail: an absent pattern simply produces no issue.
type rule struct {
	name string
	run  func(rc *ruleContext)
}

// ruleContext carries the immutable input and the mutable outputs of one
// checker run. Only the auto-fix rule touches fixed/autoFixed.
type ruleContext struct {
	file *source.File
	text string
	bag  *diag.Bag

	fixed     string
	autoFixed bool
}

func (rc *ruleContext) span(start, end int) source.Span {
	return source.Span{File: rc.file.ID, Start: uint32(start), End: uint32(end)}
}

func (rc *ruleContext) fileSpan() source.Span {
	return source.Span{File: rc.file.ID}
}

// rules run in this exact order. The order is observable: reports list
// issues in rule order and truncate to the first N, and the embedded code
// depends on whether the auto-fix note survived that truncation.
var rules = []rule{
	{"block-balance", checkBlockBalance},
	{"catch-syntax", checkCatchSyntax},
	{"quote-balance", checkQuoteBalance},
	{"char-literal", checkCharLiterals},
	{"indent", checkIndentation},
	{"redundant-conv", checkRedundantConv},
	{"vague-filter", checkVagueFilter},
	{"python-ops", checkPythonOps},
	{"not-in-fix", applyNotInFix},
}

// RuleNames returns the rule identifiers in execution order, for
// configuration and usage output.
func RuleNames() []string {
	names := make([]string, len(rules))
	for i, r := range rules {
		names[i] = r.name
	}
	return names
}

var (
	functionDefRe   = regexp.MustCompile(`function\s+\w`)
	endLineRe       = regexp.MustCompile(`(?m)^\s*end\s*$`)
	identSemiRe     = regexp.MustCompile(`^\w+\s*;`)
	charLiteralRe   = regexp.MustCompile(`'([^']{2,})'`)
	redundantConvRe = regexp.MustCompile(`T\([0-9.]+\)`)
	vagueFilterRe   = regexp.MustCompile(`filter\(tf -> "([^"]*)?" not in .*?\)`)
	quotedSubstrRe  = regexp.MustCompile(`"[^"]*"`)
	pythonOpRe      = regexp.MustCompile(`\b(and|or|elif|True|False|is not)\b`)
	notInRe         = regexp.MustCompile(`("([^"]*)"|'([^']*)')\s*not\s+in\s*([^;,\)\n]+)`)
)

// checkBlockBalance compares the number of function definitions against the
// number of lines holding nothing but "end". A coarse proxy for block
// matching: loops and conditionals also close with "end", so the rule both
// over- and under-reports.
func checkBlockBalance(rc *ruleContext) {
	functions := len(functionDefRe.FindAllStringIndex(rc.text, -1))
	ends := len(endLineRe.FindAllStringIndex(rc.text, -1))
	if functions != ends {
		rc.bag.Add(diag.NewError(diag.BlockImbalance, rc.fileSpan(),
			fmt.Sprintf("imbalance: %d 'function' vs %d 'end'", functions, ends)))
	}
}

// checkCatchSyntax flags every `catch` whose tail is neither `_`-prefixed
// nor a bare identifier followed by `;`. The offending fragment runs up to
// the earliest newline or "end"; with neither present there is no match.
// Whitespace after `catch` is consumed greedily and given back one
// character at a time until the tail test and the terminator search both
// succeed, which is why `catch  _` (two spaces) is still flagged.
func checkCatchSyntax(rc *ruleContext) {
	text := rc.text
	pos := 0
	for {
		rel := strings.Index(text[pos:], "catch")
		if rel < 0 {
			return
		}
		start := pos + rel
		after := start + len("catch")

		run := 0
		for after+run < len(text) && isSpaceByte(text[after+run]) {
			run++
		}
		if run == 0 {
			pos = start + 1
			continue
		}

		matched := false
		for k := run; k >= 1; k-- {
			rest := text[after+k:]
			if strings.HasPrefix(rest, "_") || identSemiRe.MatchString(rest) {
				continue
			}
			stop := earliestTerminator(rest)
			if stop < 0 {
				continue
			}
			frag := strings.TrimSpace(text[start : after+k+stop])
			rc.bag.Add(diag.NewError(diag.InvalidCatch, rc.span(start, after+k+stop),
				fmt.Sprintf("invalid catch: '%s' - use 'catch _;' or 'catch err;'", frag)))
			pos = after + k + stop
			matched = true
			break
		}
		if !matched {
			pos = start + 1
		}
	}
}

// earliestTerminator returns the smallest index in s where a newline or
// the literal "end" begins, or -1 when neither occurs.
func earliestTerminator(s string) int {
	nl := strings.IndexByte(s, '\n')
	end := strings.Index(s, "end")
	switch {
	case nl < 0:
		return end
	case end < 0:
		return nl
	case nl < end:
		return nl
	default:
		return end
	}
}

func isSpaceByte(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	}
	return false
}

// checkQuoteBalance is a whole-text parity check over every double and
// single quote character. Quotes inside comments or nested literals can
// make it miss or falsely flag.
func checkQuoteBalance(rc *ruleContext) {
	total := strings.Count(rc.text, `"`) + strings.Count(rc.text, `'`)
	if total%2 != 0 {
		rc.bag.Add(diag.NewError(diag.UnbalancedQuotes, rc.fileSpan(),
			"unbalanced quotes (odd count)"))
	}
}

// checkCharLiterals reports single-quoted literals holding two or more
// characters, which are invalid char literals in Julia. The first three
// are listed in one issue.
func checkCharLiterals(rc *ruleContext) {
	idx := charLiteralRe.FindAllStringSubmatchIndex(rc.text, -1)
	if len(idx) == 0 {
		return
	}
	listed := make([]string, 0, 3)
	for i, m := range idx {
		if i == 3 {
			break
		}
		listed = append(listed, "'"+rc.text[m[2]:m[3]]+"'")
	}
	msg := fmt.Sprintf("multi-char literals: %s - use double-quoted strings", strings.Join(listed, ", "))
	if len(idx) > 3 {
		msg += fmt.Sprintf(" (%d total)", len(idx))
	}
	rc.bag.Add(diag.NewWarning(diag.MultiCharLiteral, rc.span(idx[0][0], idx[0][1]), msg))
}

// checkIndentation computes leading-whitespace width mod 4 for every
// non-blank line. Any nonzero residue yields one issue carrying the full
// residue histogram, offending and clean values alike.
func checkIndentation(rc *ruleContext) {
	counts := make(map[int]int)
	inconsistent := false
	for _, line := range strings.Split(rc.text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		width := 0
		for _, r := range line {
			if !unicode.IsSpace(r) {
				break
			}
			width++
		}
		residue := width % 4
		counts[residue]++
		if residue != 0 {
			inconsistent = true
		}
	}
	if !inconsistent {
		return
	}

	residues := make([]int, 0, len(counts))
	for residue := range counts {
		residues = append(residues, residue)
	}
	sort.Ints(residues)
	parts := make([]string, 0, len(residues))
	for _, residue := range residues {
		parts = append(parts, fmt.Sprintf("%d:%d", residue, counts[residue]))
	}
	rc.bag.Add(diag.NewWarning(diag.IndentResidue, rc.fileSpan(),
		fmt.Sprintf("inconsistent indentation (width mod 4 histogram %s) - use 4 spaces", strings.Join(parts, " "))))
}

// checkRedundantConv reports T(<number>) calls, where wrapping a literal
// in the type parameter is a no-op. The first three are listed in one
// issue.
func checkRedundantConv(rc *ruleContext) {
	idx := redundantConvRe.FindAllStringIndex(rc.text, -1)
	if len(idx) == 0 {
		return
	}
	listed := make([]string, 0, 3)
	for i, m := range idx {
		if i == 3 {
			break
		}
		listed = append(listed, rc.text[m[0]:m[1]])
	}
	msg := fmt.Sprintf("redundant conversion: %s - remove the T() wrapper", strings.Join(listed, ", "))
	if len(idx) > 3 {
		msg += fmt.Sprintf(" (%d total)", len(idx))
	}
	rc.bag.Add(diag.NewWarning(diag.RedundantConv, rc.span(idx[0][0], idx[0][1]), msg))
}

// checkVagueFilter re-tests the text captured from a
// filter(tf -> "<text>" not in <expr>) lambda for a quoted substring and
// reports it when none is found. The capture excludes quote characters,
// so the inner test never passes and every match is reported. Do not
// tighten the inner test: downstream output depends on every match
// being reported.
func checkVagueFilter(rc *ruleContext) {
	for _, m := range vagueFilterRe.FindAllStringSubmatchIndex(rc.text, -1) {
		captured := ""
		if m[2] >= 0 {
			captured = rc.text[m[2]:m[3]]
		}
		if quotedSubstrRe.MatchString(captured) {
			continue
		}
		rc.bag.Add(diag.NewWarning(diag.VagueFilter, rc.span(m[0], m[1]),
			fmt.Sprintf("vague filter 'not in' for '%s' - check quotes", captured)))
	}
}

// pythonOpReplacement maps a Python token to its Julia counterpart.
// Tokens without an entry fall back to the literal "Unknown".
var pythonOpReplacement = map[string]string{
	"and":    "&&",
	"or":     "||",
	"elif":   "elseif",
	"True":   "true",
	"False":  "false",
	"is not": "!==",
}

// checkPythonOps reports keywords and operators borrowed from Python.
// Distinct matches are sorted and the first three listed with their
// Julia replacements.
func checkPythonOps(rc *ruleContext) {
	idx := pythonOpRe.FindAllStringSubmatchIndex(rc.text, -1)
	if len(idx) == 0 {
		return
	}

	seen := make(map[string]bool)
	for _, m := range idx {
		seen[rc.text[m[2]:m[3]]] = true
	}
	ops := make([]string, 0, len(seen))
	for op := range seen {
		ops = append(ops, op)
	}
	sort.Strings(ops)

	info := make([]string, 0, 3)
	for i, op := range ops {
		if i == 3 {
			break
		}
		repl, ok := pythonOpReplacement[op]
		if !ok {
			repl = "Unknown"
		}
		info = append(info, fmt.Sprintf("'%s' (use '%s')", op, repl))
	}
	msg := fmt.Sprintf("Python operators: %s", strings.Join(info, ", "))
	if len(ops) > 3 {
		msg += ", ..."
	}
	rc.bag.Add(diag.NewWarning(diag.PythonOperator, rc.span(idx[0][0], idx[0][1]), msg))
}

// applyNotInFix rewrites `"<s>" not in <expr>` into `!<s> in <expr>` and
// records an informational note when the text changed. The replacement
// reconstructs the negation from the double-quote capture group only, so
// a single-quoted match loses its content.
func applyNotInFix(rc *ruleContext) {
	if !strings.Contains(rc.text, "not in") {
		return
	}
	fixed := notInRe.ReplaceAllString(rc.text, "!${2} in ${4}")
	if fixed == rc.text {
		return
	}

	d := diag.NewInfo(diag.NotInRewritten, rc.fileSpan(),
		"auto-fixed 'not in' to '!(... in ...)' - see fixed code below")
	edits := make([]diag.FixEdit, 0, 1)
	for _, m := range notInRe.FindAllStringSubmatchIndex(rc.text, -1) {
		inner := ""
		if m[4] >= 0 {
			inner = rc.text[m[4]:m[5]]
		}
		expr := rc.text[m[8]:m[9]]
		edits = append(edits, diag.FixEdit{
			Span:    rc.span(m[0], m[1]),
			NewText: "!" + inner + " in " + expr,
		})
	}
	rc.bag.Add(d.WithFix("rewrite negated membership", edits...))

	rc.fixed = fixed
	rc.autoFixed = true
}
