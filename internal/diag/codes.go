package diag

import (
	"fmt"
)

// Code identifies one lint rule. Codes are grouped by concern: 1xxx block
// structure, 2xxx literals and quoting, 3xxx style, 4xxx foreign syntax,
// 5xxx applied fixes.
type Code uint16

const (
	UnknownCode Code = 0

	// Block structure
	BlockImbalance Code = 1001
	InvalidCatch   Code = 1002

	// Literals and quoting
	UnbalancedQuotes Code = 2001
	MultiCharLiteral Code = 2002

	// Style
	IndentResidue Code = 3001
	RedundantConv Code = 3002
	VagueFilter   Code = 3003

	// Foreign syntax
	PythonOperator Code = 4001

	// Applied fixes
	NotInRewritten Code = 5001
)

// ID renders the stable textual form of the code, e.g. "BLK1001".
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("BLK%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("LIT%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("STY%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("PY%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("FIX%04d", ic)
	}
	return "E0000"
}

func (c Code) String() string {
	return c.ID()
}

var codeDescription = map[Code]string{
	UnknownCode:      "unknown issue",
	BlockImbalance:   "function/end imbalance",
	InvalidCatch:     "invalid catch syntax",
	UnbalancedQuotes: "unbalanced quotes",
	MultiCharLiteral: "multi-character quote literal",
	IndentResidue:    "inconsistent indentation",
	RedundantConv:    "redundant conversion call",
	VagueFilter:      "vague filter expression",
	PythonOperator:   "Python keyword or operator",
	NotInRewritten:   "negated membership rewritten",
}

// Title returns a short human description of the code.
func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}
