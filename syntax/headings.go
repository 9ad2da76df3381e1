package syntax

import (
	"github.com/rjkroege/livemark/catalog"
	"github.com/rjkroege/livemark/document"
)

// HeadingSync derives the level of every heading in doc from the number
// of '#' characters in its leading heading marker. A heading without one,
// or with more than six, becomes a paragraph. It returns the number of blocks changed.
func HeadingSync(doc *document.Document) int {
	changed := 0
	document.Walk(doc.Blocks, func(b, _ *document.Block, _ int) bool {
		if b.Type == document.Heading && syncHeading(b) {
			changed++
		}
		return !b.IsTextblock()
	})
	return changed
}

func syncHeading(b *document.Block) bool {
	cells := document.Explode(b.Inline)
	n := 0
	for n < len(cells) && cells[n].Marks.HasMarker(document.MarkHeading) {
		n++
	}
	count := 0
	if n > 0 {
		count = catalog.HeadingCount(document.CellText(cells, 0, n))
	}
	switch {
	case count == 0 || count > 6:
		b.Type = document.Paragraph
		b.Level = 0
		for i := range cells {
			cells[i].Marks = cells[i].Marks.Without(func(m document.Mark) bool {
				return m.IsMarker() && m.Syntax == document.MarkHeading
			})
		}
		b.Inline = document.Implode(cells)
		return true
	case count != b.Level:
		b.Level = count
		return true
	}
	return false
}
