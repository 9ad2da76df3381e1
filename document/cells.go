package document

// Cell is one position of a textblock: either a rune of text or an atomic
// inline. A block exploded into cells is an index-addressed flat list;
// passes that need "the contiguous region around offset i" scan it
// linearly instead of walking the tree.
type Cell struct {
	R     rune
	Marks MarkSet
	Atom  *Inline
}

// Explode converts inline content into cells.
func Explode(inl []Inline) []Cell {
	var cells []Cell
	for i := range inl {
		in := inl[i]
		if in.Kind != Text {
			a := in.clone()
			cells = append(cells, Cell{Marks: a.Marks, Atom: &a})
			continue
		}
		for _, r := range in.Text {
			cells = append(cells, Cell{R: r, Marks: in.Marks})
		}
	}
	return cells
}

// Implode converts cells back into inline content, merging neighbouring
// text cells with equal marks.
func Implode(cells []Cell) []Inline {
	var out []Inline
	var run []rune
	var marks MarkSet
	flush := func() {
		if len(run) > 0 {
			out = append(out, Inline{Kind: Text, Text: string(run), Marks: marks})
			run = nil
		}
	}
	for _, c := range cells {
		if c.Atom != nil {
			flush()
			a := c.Atom.clone()
			a.Marks = c.Marks
			out = append(out, a)
			continue
		}
		if len(run) > 0 && !marks.Equal(c.Marks) {
			flush()
		}
		if len(run) == 0 {
			marks = c.Marks
		}
		run = append(run, c.R)
	}
	flush()
	return out
}

// PlainCells returns unmarked cells for s.
func PlainCells(s string) []Cell {
	cells := make([]Cell, 0, len(s))
	for _, r := range s {
		cells = append(cells, Cell{R: r})
	}
	return cells
}

// ScanText returns one rune per cell: the text rune, '\n' for a hard
// break and ObjectReplacement for other atoms.
func ScanText(cells []Cell) string {
	rs := make([]rune, len(cells))
	for i, c := range cells {
		switch {
		case c.Atom == nil:
			rs[i] = c.R
		case c.Atom.Kind == HardBreak:
			rs[i] = '\n'
		default:
			rs[i] = ObjectReplacement
		}
	}
	return string(rs)
}

// CellText returns the literal markdown of cells[from:to].
func CellText(cells []Cell, from, to int) string {
	var rs []rune
	for _, c := range cells[from:to] {
		if c.Atom != nil {
			rs = append(rs, []rune(c.Atom.Markdown())...)
			continue
		}
		rs = append(rs, c.R)
	}
	return string(rs)
}

// MarkerRun is a maximal run of cells carrying the same marker annotation.
type MarkerRun struct {
	From, To int
	Mark     Mark
	Literal  string
}

// MarkerRuns lists the marker runs of cells in order.
func MarkerRuns(cells []Cell) []MarkerRun {
	var runs []MarkerRun
	for i := 0; i < len(cells); {
		m, ok := cells[i].Marks.Marker()
		if !ok {
			i++
			continue
		}
		j := i + 1
		for j < len(cells) {
			n, ok := cells[j].Marks.Marker()
			if !ok || n != m {
				break
			}
			j++
		}
		runs = append(runs, MarkerRun{From: i, To: j, Mark: m, Literal: CellText(cells, i, j)})
		i = j
	}
	return runs
}
