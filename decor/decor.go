// Package decor projects a document's marker annotations into
// decorations: which literal syntax spans a rendering surface shows and
// which it collapses. It only reads the document.
package decor

import (
	"sort"

	"github.com/rjkroege/livemark/catalog"
	"github.com/rjkroege/livemark/document"
)

// Decoration is one marker run. From and To are document positions.
type Decoration struct {
	From, To int
	Visible  bool
	Syntax   document.MarkType
	Role     document.Role
	Block    int // textblock index
}

// Compute returns a decoration for every marker run of d, in document
// order. A marker is visible when head lies within the whole construct it
// belongs to, both ends included: for a delimiter pair that is opener
// through closer, for an escape the backslash and the escaped character,
// for a heading marker the heading. In source view every marker is
// visible.
func Compute(d *document.Document, cat *catalog.Catalog, head int, sourceView bool) []Decoration {
	if cat == nil {
		cat = catalog.Default()
	}
	var out []Decoration
	for k, ref := range d.Textblocks() {
		cells := document.Explode(ref.Block.Inline)
		runs := document.MarkerRuns(cells)
		if len(runs) == 0 {
			continue
		}
		var pairable []document.MarkerRun
		var at []int
		for i, r := range runs {
			if r.Mark.Role == document.RoleOpen || r.Mark.Role == document.RoleClose {
				pairable = append(pairable, r)
				at = append(at, i)
			}
		}
		partner := make([]int, len(runs))
		for i := range partner {
			partner[i] = -1
		}
		for i, p := range cat.Pair(pairable) {
			if p >= 0 {
				partner[at[i]] = at[p]
			}
		}

		for i, r := range runs {
			lo, hi := r.From, r.To
			switch r.Mark.Role {
			case document.RoleEscape:
				hi = r.From + 2
				if hi > len(cells) {
					hi = len(cells)
				}
			case document.RoleBlock:
				lo, hi = 0, len(cells)
			case document.RoleOpen:
				if p := partner[i]; p >= 0 {
					hi = runs[p].To
				}
			case document.RoleClose:
				if p := partner[i]; p >= 0 {
					lo = runs[p].From
				}
			}
			out = append(out, Decoration{
				From:    ref.Start + r.From,
				To:      ref.Start + r.To,
				Visible: sourceView || (head >= ref.Start+lo && head <= ref.Start+hi),
				Syntax:  r.Mark.Syntax,
				Role:    r.Mark.Role,
				Block:   k,
			})
		}
	}
	return out
}

// Visible returns the decorations that render as literal text.
func Visible(decos []Decoration) []Decoration {
	var out []Decoration
	for _, dc := range decos {
		if dc.Visible {
			out = append(out, dc)
		}
	}
	return out
}

// At returns the decoration covering pos, if any.
func At(decos []Decoration, pos int) (Decoration, bool) {
	i := sort.Search(len(decos), func(i int) bool { return decos[i].To > pos })
	if i < len(decos) && decos[i].From <= pos {
		return decos[i], true
	}
	return Decoration{}, false
}
