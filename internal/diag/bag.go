package diag

// Bag collects diagnostics in the order rules emitted them. The order is
// part of the observable contract: reports list issues in rule order, not
// lexical order, so the bag is never sorted.
type Bag struct {
	items []Diagnostic
}

func NewBag(capHint int) *Bag {
	return &Bag{
		items: make([]Diagnostic, 0, capHint),
	}
}

// Add appends a diagnostic. The bag itself is unbounded; truncation to the
// first N issues happens at render time so the total count stays accurate.
func (b *Bag) Add(d Diagnostic) {
	b.items = append(b.items, d)
}

// HasErrors reports whether any diagnostic has Severity >= Error.
func (b *Bag) HasErrors() bool {
	for i := range b.items {
		if b.items[i].Severity >= SevError {
			return true
		}
	}
	return false
}

// HasWarnings reports whether any diagnostic has Severity >= Warning.
func (b *Bag) HasWarnings() bool {
	for i := range b.items {
		if b.items[i].Severity >= SevWarning {
			return true
		}
	}
	return false
}

func (b *Bag) Len() int {
	return len(b.items)
}

// Items returns a read-only view of the diagnostics.
// Do not modify the returned slice: it aliases the bag's backing array.
func (b *Bag) Items() []Diagnostic {
	return b.items
}

// Head returns at most the first n diagnostics in emission order.
func (b *Bag) Head(n int) []Diagnostic {
	if n < 0 || n >= len(b.items) {
		return b.items
	}
	return b.items[:n]
}

// Contains reports whether any collected diagnostic carries the code.
func (b *Bag) Contains(code Code) bool {
	for i := range b.items {
		if b.items[i].Code == code {
			return true
		}
	}
	return false
}
