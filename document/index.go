package document

import "sort"

// EditRecord describes a single edit operation in the position space.
type EditRecord struct {
	Pos    int // position where the edit occurred
	OldLen int // positions removed (0 for pure insert)
	NewLen int // positions inserted (0 for pure delete)
}

// BlockInfo records the extent of one textblock.
type BlockInfo struct {
	Start int // first position
	End   int // position just past the content (exclusive)
	Type  BlockType
}

// BlockIndex maps positions to textblock extents.
type BlockIndex struct {
	Blocks []BlockInfo
}

// Index builds the BlockIndex of d.
func (d *Document) Index() *BlockIndex {
	refs := d.Textblocks()
	bi := &BlockIndex{Blocks: make([]BlockInfo, len(refs))}
	for i, r := range refs {
		bi.Blocks[i] = BlockInfo{Start: r.Start, End: r.End(), Type: r.Block.Type}
	}
	return bi
}

// AffectedRange returns the range of textblocks that must be rescanned
// given the edits. Returns (startBlock, endBlock) indices into
// BlockIndex.Blocks, or (-1, -1) if a full rescan is needed.
func (bi *BlockIndex) AffectedRange(edits []EditRecord) (int, int) {
	if len(edits) == 0 || len(bi.Blocks) == 0 {
		return 0, 0
	}

	// Coalesce edits into a single range [editStart, editEnd) of the old
	// position space.
	editStart := edits[0].Pos
	editEnd := edits[0].Pos + edits[0].OldLen
	for _, e := range edits[1:] {
		if e.Pos < editStart {
			editStart = e.Pos
		}
		if end := e.Pos + e.OldLen; end > editEnd {
			editEnd = end
		}
	}

	// A pure insert still has to find the block it lands in. Positions
	// at a block's end belong to that block, so search on End >= start.
	startBlock := sort.Search(len(bi.Blocks), func(i int) bool {
		return bi.Blocks[i].End >= editStart
	})
	endBlock := sort.Search(len(bi.Blocks), func(i int) bool {
		return bi.Blocks[i].Start > editEnd
	})

	if startBlock >= len(bi.Blocks) {
		startBlock = len(bi.Blocks) - 1
	}
	if endBlock <= startBlock {
		endBlock = startBlock + 1
	}

	// Expand by one block in each direction to handle boundary effects.
	if startBlock > 0 {
		startBlock--
	}
	if endBlock < len(bi.Blocks) {
		endBlock++
	}

	// Fence check: an edit touching a code block may change what the
	// flattened form reconstructs to, so rescan everything.
	for i := startBlock; i < endBlock; i++ {
		b := &bi.Blocks[i]
		if b.Type != CodeBlock {
			continue
		}
		if editStart <= b.End && editEnd >= b.Start {
			return -1, -1
		}
	}

	return startBlock, endBlock
}
