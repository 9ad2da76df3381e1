package syntax

import (
	"github.com/rjkroege/livemark/catalog"
	"github.com/rjkroege/livemark/document"
)

// Fixer strips annotations whose delimiters no longer pair up, which is
// what an edit deleting half of a delimiter pair leaves behind.
type Fixer struct {
	cat *catalog.Catalog
}

// NewFixer returns a Fixer pairing delimiters by the rules of cat.
func NewFixer(cat *catalog.Catalog) *Fixer {
	if cat == nil {
		cat = catalog.Default()
	}
	return &Fixer{cat: cat}
}

// Run repairs every textblock of doc and returns how many changed.
func (f *Fixer) Run(doc *document.Document) int {
	changed := 0
	for _, ref := range doc.Textblocks() {
		if f.Repair(ref.Block) {
			changed++
		}
	}
	return changed
}

// Repair demotes every region of b holding an unpaired delimiter to
// plain text.
func (f *Fixer) Repair(b *document.Block) bool {
	if !b.IsTextblock() || len(b.Inline) == 0 {
		return false
	}
	cells := document.Explode(b.Inline)
	var runs []document.MarkerRun
	for _, r := range document.MarkerRuns(cells) {
		if r.Mark.Role == document.RoleOpen || r.Mark.Role == document.RoleClose {
			runs = append(runs, r)
		}
	}
	if len(runs) == 0 {
		return false
	}
	partner := f.cat.Pair(runs)

	// paired[i] holds the syntax type of the paired run covering cell i.
	paired := make([]document.MarkType, len(cells))
	for i, r := range runs {
		if partner[i] < 0 {
			continue
		}
		for c := r.From; c < r.To; c++ {
			paired[c] = r.Mark.Syntax
		}
	}

	changed := false
	for i, r := range runs {
		if partner[i] >= 0 {
			continue
		}
		k := r.Mark.Syntax
		strip := []document.MarkType{k}
		if rule := f.cat.RuleFor(k, r.Literal); rule != nil {
			strip = rule.Types()
		}
		from, to := enclosing(cells, paired, r, k)
		for c := from; c < to; c++ {
			cells[c].Marks = cells[c].Marks.Without(func(m document.Mark) bool {
				if m.IsMarker() {
					return m.Syntax == k
				}
				return hasType(strip, m.Type)
			})
		}
		changed = true
	}
	if changed {
		b.Inline = document.Implode(cells)
	}
	return changed
}

// enclosing returns the contiguous cells around run r carrying semantic
// type k, never crossing into a paired delimiter of the same type. The run
// itself is always included.
func enclosing(cells []document.Cell, paired []document.MarkType, r document.MarkerRun, k document.MarkType) (int, int) {
	inside := func(c int) bool {
		return cells[c].Marks.Has(k) && paired[c] != k
	}
	from, to := r.From, r.To
	for from > 0 && inside(from-1) {
		from--
	}
	for to < len(cells) && inside(to) {
		to++
	}
	return from, to
}
