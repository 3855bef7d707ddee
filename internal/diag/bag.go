package diag

import "sort"

// Bag accumulates diagnostics in emission order, with a stable Sort for
// deterministic rendering.
type Bag struct {
	items []Diagnostic
}

// NewBag returns an empty diagnostic bag.
func NewBag() *Bag { return &Bag{} }

// Add appends a diagnostic.
func (b *Bag) Add(d Diagnostic) { b.items = append(b.items, d) }

// Items returns the accumulated diagnostics in emission order. Callers must
// not mutate the returned slice.
func (b *Bag) Items() []Diagnostic { return b.items }

// Len reports how many diagnostics have been recorded.
func (b *Bag) Len() int { return len(b.items) }

// HasErrors reports whether any diagnostic reached SevError.
func (b *Bag) HasErrors() bool {
	for _, d := range b.items {
		if d.Severity == SevError {
			return true
		}
	}
	return false
}

// Sort orders diagnostics by file, then start offset, then end offset, then
// severity (errors first), then code, for deterministic output.
func (b *Bag) Sort() {
	sort.SliceStable(b.items, func(i, j int) bool {
		a, c := b.items[i], b.items[j]
		if a.Primary.File != c.Primary.File {
			return a.Primary.File < c.Primary.File
		}
		if a.Primary.Start != c.Primary.Start {
			return a.Primary.Start < c.Primary.Start
		}
		if a.Primary.End != c.Primary.End {
			return a.Primary.End < c.Primary.End
		}
		if a.Severity != c.Severity {
			return a.Severity > c.Severity
		}
		return a.Code < c.Code
	})
}
