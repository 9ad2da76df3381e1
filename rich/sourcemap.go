package rich

// SourceMap maps positions in rendered content back to positions in the
// literal document, and the reverse.
type SourceMap struct {
	entries []SourceMapEntry
}

// SourceMapEntry maps a range in rendered content to a range of equal
// length in the literal document.
type SourceMapEntry struct {
	RenderedStart int // Rune position in rendered content
	RenderedEnd   int
	SourceStart   int // Document position
	SourceEnd     int
	PrefixLen     int // Hidden literal positions just before SourceStart (e.g. "**")
	SuffixLen     int // Hidden literal positions just after SourceEnd
}

// Add appends an entry. Entries must be added in rendered order.
func (sm *SourceMap) Add(e SourceMapEntry) {
	sm.entries = append(sm.entries, e)
}

// Entries returns the entries in rendered order.
func (sm *SourceMap) Entries() []SourceMapEntry {
	return append([]SourceMapEntry(nil), sm.entries...)
}

// ToSource maps a range in rendered content (renderedStart, renderedEnd) to
// the corresponding range in the document.
// When the selection spans formatted elements, it expands to include the full
// source markup (e.g., selecting "bold" in "**bold**" returns 0-8).
func (sm *SourceMap) ToSource(renderedStart, renderedEnd int) (srcStart, srcEnd int) {
	if len(sm.entries) == 0 {
		return renderedStart, renderedEnd
	}

	startEntry := sm.find(renderedStart)
	switch {
	case startEntry == nil:
		srcStart = renderedStart
	case renderedStart == startEntry.RenderedStart:
		// If the selection starts at the beginning of a formatted element,
		// include the opening marker
		srcStart = startEntry.SourceStart - startEntry.PrefixLen
	default:
		srcStart = startEntry.SourceStart + renderedStart - startEntry.RenderedStart
	}

	lookupPos := renderedEnd
	if renderedEnd > renderedStart {
		lookupPos = renderedEnd - 1
	}
	endEntry := sm.find(lookupPos)
	switch {
	case endEntry == nil:
		srcEnd = renderedEnd
	case renderedEnd == endEntry.RenderedEnd:
		// If the selection ends at the end of a formatted element,
		// include the closing marker
		srcEnd = endEntry.SourceEnd + endEntry.SuffixLen
	default:
		srcEnd = endEntry.SourceStart + renderedEnd - endEntry.RenderedStart
	}
	return srcStart, srcEnd
}

func (sm *SourceMap) find(rendered int) *SourceMapEntry {
	for i := range sm.entries {
		e := &sm.entries[i]
		if rendered >= e.RenderedStart && rendered < e.RenderedEnd {
			return e
		}
	}
	return nil
}

// ToRendered maps a document position to rendered content. Positions
// inside hidden markup map to the nearest edge of the visible text they
// surround.
func (sm *SourceMap) ToRendered(pos int) int {
	best := 0
	for _, e := range sm.entries {
		switch {
		case pos >= e.SourceStart && pos < e.SourceEnd:
			return e.RenderedStart + pos - e.SourceStart
		case pos >= e.SourceStart-e.PrefixLen && pos < e.SourceStart:
			return e.RenderedStart
		case pos >= e.SourceEnd && pos <= e.SourceEnd+e.SuffixLen:
			best = e.RenderedEnd
		case e.SourceEnd < pos:
			best = e.RenderedEnd
		}
	}
	return best
}
