package document

import (
	"errors"
	"strconv"
	"strings"
)

var (
	ErrOutOfRange   = errors.New("document: position out of range")
	ErrInvalidRange = errors.New("document: invalid range")
	ErrCannotSplit  = errors.New("document: block cannot be split")
)

// InsertText inserts s, unannotated, at pos. Annotations are the
// Detector's business; inserted text never inherits them.
func (d *Document) InsertText(pos int, s string) (EditRecord, error) {
	if s == "" {
		return EditRecord{Pos: pos}, nil
	}
	ref, off, ok := d.Resolve(pos)
	if !ok {
		return EditRecord{}, ErrOutOfRange
	}
	cells := Explode(ref.Block.Inline)
	ins := PlainCells(s)
	out := make([]Cell, 0, len(cells)+len(ins))
	out = append(out, cells[:off]...)
	out = append(out, ins...)
	out = append(out, cells[off:]...)
	ref.Block.Inline = Implode(out)
	return EditRecord{Pos: pos, NewLen: len(ins)}, nil
}

// DeleteRange removes positions [from, to). A range spanning several
// textblocks joins the last one into the first and drops every block in
// between.
func (d *Document) DeleteRange(from, to int) (EditRecord, bool, error) {
	if from > to {
		return EditRecord{}, false, ErrInvalidRange
	}
	if from == to {
		return EditRecord{Pos: from}, false, nil
	}
	a, offA, ok := d.Resolve(from)
	if !ok {
		return EditRecord{}, false, ErrOutOfRange
	}
	b, offB, ok := d.Resolve(to)
	if !ok {
		return EditRecord{}, false, ErrOutOfRange
	}
	rec := EditRecord{Pos: from, OldLen: to - from}
	if a.Block == b.Block {
		cells := Explode(a.Block.Inline)
		a.Block.Inline = Implode(append(cells[:offA:offA], cells[offB:]...))
		return rec, false, nil
	}

	head := Explode(a.Block.Inline)[:offA]
	tail := Explode(b.Block.Inline)[offB:]
	a.Block.Inline = Implode(append(head, tail...))

	leaves := d.leaves()
	var doomed []*Block
	between := false
	for _, l := range leaves {
		if l == a.Block {
			between = true
			continue
		}
		if !between {
			continue
		}
		doomed = append(doomed, l)
		if l == b.Block {
			break
		}
	}
	for _, l := range doomed {
		d.remove(l)
	}
	return rec, true, nil
}

// SplitBlock splits the textblock at pos in two, as the Enter key does.
// Code and math blocks take a literal newline instead. A heading's tail
// becomes a paragraph; a list item's paragraph splits into a new item.
func (d *Document) SplitBlock(pos int) (EditRecord, bool, error) {
	ref, off, ok := d.Resolve(pos)
	if !ok {
		return EditRecord{}, false, ErrOutOfRange
	}
	b := ref.Block
	switch b.Type {
	case CodeBlock, MathBlock:
		rec, err := d.InsertText(pos, "\n")
		return rec, false, err
	case TableCell:
		return EditRecord{}, false, ErrCannotSplit
	}

	cells := Explode(b.Inline)
	nb := &Block{Type: b.Type, Inline: Implode(cells[off:])}
	if b.Type == Heading {
		nb.Type = Paragraph
	}
	// Enter at the end of a closing fence line starts text after the
	// block, outside its group.
	group := b.SourceGroup
	if group != "" && (b.LineIndex < b.LineTotal-1 || off < len(cells)) {
		nb.SourceGroup = group
		nb.Language = b.Language
	}
	b.Inline = Implode(cells[:off])

	parent := ref.Parent
	if parent != nil && parent.Type == ListItem && ref.Index == 0 && group == "" {
		item := &Block{Type: ListItem, Markup: nextItemMarkup(parent.Markup), Task: parent.Task, Children: []*Block{nb}}
		d.insertAfter(parent, item)
		return EditRecord{Pos: pos, NewLen: 1}, true, nil
	}
	d.insertAfter(b, nb)
	if nb.SourceGroup != "" {
		d.renumberGroup(ref.Parent, group)
	}
	return EditRecord{Pos: pos, NewLen: 1}, true, nil
}

// renumberGroup rewrites the line numbers of the source-view lines of
// group among parent's children.
func (d *Document) renumberGroup(parent *Block, group string) {
	var lines []*Block
	for _, c := range *d.children(parent) {
		if c.SourceGroup == group {
			lines = append(lines, c)
		}
	}
	for i, c := range lines {
		c.LineIndex = i
		c.LineTotal = len(lines)
	}
}

// nextItemMarkup returns the marker for the item following one marked m:
// bullets repeat, ordered markers count up.
func nextItemMarkup(m string) string {
	if m == "" {
		return "-"
	}
	delim := m[len(m)-1]
	if delim != '.' && delim != ')' {
		return m
	}
	n := 0
	for _, r := range strings.TrimSuffix(m, string(delim)) {
		if r < '0' || r > '9' {
			return m
		}
		n = n*10 + int(r-'0')
	}
	return strconv.Itoa(n+1) + string(delim)
}
