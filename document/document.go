// Package document holds the live markdown document model: a tree of
// blocks whose literal text is always valid markdown, with annotations
// attached to text runs rather than consuming characters.
//
// Positions address textblocks in document order. Each textblock
// contributes its Len plus one separator position, so the first position
// of textblock k is the sum of (Len+1) over the textblocks before it.
package document

// Document is the single authoritative tree for one open file.
type Document struct {
	Blocks []*Block
}

// New returns a document holding blocks.
func New(blocks ...*Block) *Document {
	return &Document{Blocks: blocks}
}

// Clone returns a deep copy of d.
func (d *Document) Clone() *Document {
	c := &Document{Blocks: make([]*Block, len(d.Blocks))}
	for i, b := range d.Blocks {
		c.Blocks[i] = b.Clone()
	}
	return c
}

// Walk calls fn for every block in document order, passing its parent
// (nil for top-level blocks) and its index among the parent's children.
// Returning false from fn skips the block's children.
func Walk(blocks []*Block, fn func(b, parent *Block, index int) bool) {
	walk(blocks, nil, fn)
}

func walk(blocks []*Block, parent *Block, fn func(b, parent *Block, index int) bool) {
	for i, b := range blocks {
		if fn(b, parent, i) && len(b.Children) > 0 {
			walk(b.Children, b, fn)
		}
	}
}

// TextRef locates a textblock.
type TextRef struct {
	Block  *Block
	Parent *Block // nil for top-level blocks
	Index  int    // index among the parent's children
	Start  int    // first position
}

// End returns the position just past the textblock's content.
func (r TextRef) End() int {
	return r.Start + r.Block.Len()
}

// Textblocks lists the textblocks of d in document order.
func (d *Document) Textblocks() []TextRef {
	var refs []TextRef
	pos := 0
	Walk(d.Blocks, func(b, parent *Block, i int) bool {
		if b.IsTextblock() {
			refs = append(refs, TextRef{Block: b, Parent: parent, Index: i, Start: pos})
			pos += b.Len() + 1
			return false
		}
		return true
	})
	return refs
}

// Size returns the number of positions in d.
func (d *Document) Size() int {
	refs := d.Textblocks()
	if len(refs) == 0 {
		return 0
	}
	return refs[len(refs)-1].End()
}

// Resolve maps a global position to the textblock holding it and the
// offset inside that block. A position at a block's end resolves to that
// block.
func (d *Document) Resolve(pos int) (TextRef, int, bool) {
	if pos < 0 {
		return TextRef{}, 0, false
	}
	for _, r := range d.Textblocks() {
		if pos >= r.Start && pos <= r.End() {
			return r, pos - r.Start, true
		}
	}
	return TextRef{}, 0, false
}

// children returns the slice holding parent's children; parent nil is the
// document root.
func (d *Document) children(parent *Block) *[]*Block {
	if parent == nil {
		return &d.Blocks
	}
	return &parent.Children
}

// path returns the ancestors of target, outermost first.
func (d *Document) path(target *Block) []*Block {
	var found []*Block
	var stack []*Block
	var search func(blocks []*Block) bool
	search = func(blocks []*Block) bool {
		for _, b := range blocks {
			if b == target {
				found = append([]*Block(nil), stack...)
				return true
			}
			stack = append(stack, b)
			if search(b.Children) {
				return true
			}
			stack = stack[:len(stack)-1]
		}
		return false
	}
	search(d.Blocks)
	return found
}

// remove detaches b from the tree and prunes container ancestors left
// empty.
func (d *Document) remove(b *Block) {
	ancestors := d.path(b)
	target := b
	for {
		var parent *Block
		if len(ancestors) > 0 {
			parent = ancestors[len(ancestors)-1]
			ancestors = ancestors[:len(ancestors)-1]
		}
		kids := d.children(parent)
		for i, c := range *kids {
			if c == target {
				*kids = append((*kids)[:i:i], (*kids)[i+1:]...)
				break
			}
		}
		if parent == nil || len(parent.Children) > 0 {
			return
		}
		target = parent
	}
}

// insertAfter places b right after sibling in sibling's parent.
func (d *Document) insertAfter(sibling, b *Block) {
	var parent *Block
	if anc := d.path(sibling); len(anc) > 0 {
		parent = anc[len(anc)-1]
	}
	kids := d.children(parent)
	for i, c := range *kids {
		if c == sibling {
			out := make([]*Block, 0, len(*kids)+1)
			out = append(out, (*kids)[:i+1]...)
			out = append(out, b)
			out = append(out, (*kids)[i+1:]...)
			*kids = out
			return
		}
	}
}

// parentOf returns the parent of b, or nil for top-level blocks.
func (d *Document) parentOf(b *Block) *Block {
	if anc := d.path(b); len(anc) > 0 {
		return anc[len(anc)-1]
	}
	return nil
}

// leaves lists every childless block in document order.
func (d *Document) leaves() []*Block {
	var out []*Block
	Walk(d.Blocks, func(b, _ *Block, _ int) bool {
		if b.IsTextblock() || len(b.Children) == 0 {
			out = append(out, b)
			return false
		}
		return true
	})
	return out
}
