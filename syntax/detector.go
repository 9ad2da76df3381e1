package syntax

import (
	"strings"

	"github.com/rjkroege/livemark/catalog"
	"github.com/rjkroege/livemark/document"
)

// Detector assigns annotations to textblocks from their literal text.
// A Detector holds no scan state and may be shared.
type Detector struct {
	cat *catalog.Catalog
}

// NewDetector returns a Detector matching the rules of cat.
func NewDetector(cat *catalog.Catalog) *Detector {
	if cat == nil {
		cat = catalog.Default()
	}
	return &Detector{cat: cat}
}

// Catalog returns the catalog d matches with.
func (d *Detector) Catalog() *catalog.Catalog {
	return d.cat
}

// Options restricts a Run.
type Options struct {
	// SourceView disables image promotion.
	SourceView bool
	// Dirty selects the textblocks to scan by index. Nil scans all.
	Dirty func(index int) bool
}

// Run annotates the textblocks of doc and returns how many changed.
func (d *Detector) Run(doc *document.Document, opts Options) int {
	changed := 0
	for i, ref := range doc.Textblocks() {
		if opts.Dirty != nil && !opts.Dirty(i) {
			continue
		}
		c := false
		if !opts.SourceView {
			c = d.PromoteImages(ref.Block)
		}
		if d.Annotate(ref.Block) {
			c = true
		}
		if c {
			changed++
		}
	}
	return changed
}

// Regions scans text as paragraph content and returns regions covering
// all of it. Offsets are rune indices.
func (d *Detector) Regions(text string) []Region {
	return d.regions(text, false)
}

func (d *Detector) regions(text string, heading bool) []Region {
	return toRunes(text, d.scanBytes(text, heading))
}

// Annotate brings b's annotations in line with its text. It reports
// whether anything changed; a block whose annotations are already correct
// is left untouched.
func (d *Detector) Annotate(b *document.Block) bool {
	if !b.IsTextblock() {
		return false
	}
	cells := document.Explode(b.Inline)
	want := make([]document.MarkSet, len(cells))
	if b.AllowsMarks() {
		text := document.ScanText(cells)
		for _, r := range d.regions(text, b.Type == document.Heading) {
			m := r.Marks()
			for i := r.From; i < r.To; i++ {
				want[i] = m
			}
		}
	}
	if hasCorrectMarks(cells, want) {
		return false
	}
	for i := range cells {
		cells[i].Marks = want[i]
	}
	b.Inline = document.Implode(cells)
	return true
}

func hasCorrectMarks(cells []document.Cell, want []document.MarkSet) bool {
	for i, c := range cells {
		if !c.Marks.Equal(want[i]) {
			return false
		}
	}
	return true
}

// PromoteImages replaces completed image syntax in b with image atoms.
// Image syntax inside code or math spans stays literal.
func (d *Detector) PromoteImages(b *document.Block) bool {
	if !b.AllowsMarks() {
		return false
	}
	cells := document.Explode(b.Inline)
	text := document.ScanText(cells)
	if !strings.Contains(text, "![") {
		return false
	}
	masked, _ := maskEscapes(text)
	var literal []Region
	for _, r := range d.scanBytes(text, b.Type == document.Heading) {
		if hasType(r.Types, document.MarkCode) || hasType(r.Types, document.MarkMath) {
			literal = append(literal, r)
		}
	}
	locs := catalog.ImageSyntax.FindAllStringSubmatchIndex(masked, -1)
	if len(locs) == 0 {
		return false
	}
	idx := runeIndex(text)
	changed := false
	for k := len(locs) - 1; k >= 0; k-- {
		loc := locs[k]
		if overlaps(literal, loc[0], loc[1]) {
			continue
		}
		attrs := catalog.ImageAt(text, loc)
		atom := document.Inline{Kind: document.Image, Image: &attrs}
		from, to := idx[loc[0]], idx[loc[1]]
		out := make([]document.Cell, 0, len(cells)-(to-from)+1)
		out = append(out, cells[:from]...)
		out = append(out, document.Cell{Atom: &atom})
		out = append(out, cells[to:]...)
		cells = out
		changed = true
	}
	if changed {
		b.Inline = document.Implode(cells)
		b.Image = nil
	}
	return changed
}

func overlaps(rs []Region, from, to int) bool {
	for _, r := range rs {
		if r.From < to && from < r.To {
			return true
		}
	}
	return false
}

func hasType(ts []document.MarkType, t document.MarkType) bool {
	for _, x := range ts {
		if x == t {
			return true
		}
	}
	return false
}

// maskEscapes blanks every escape pair so no rule can match across it.
// It returns the masked text and the byte offsets of the escapes.
func maskEscapes(text string) (string, []int) {
	locs := catalog.Escape.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return text, nil
	}
	buf := []byte(text)
	at := make([]int, len(locs))
	for i, l := range locs {
		at[i] = l[0]
		for j := l[0]; j < l[1]; j++ {
			buf[j] = 0
		}
	}
	return string(buf), at
}

// scanBytes returns regions in byte offsets.
func (d *Detector) scanBytes(text string, heading bool) []Region {
	if text == "" {
		return nil
	}
	masked, escapes := maskEscapes(text)
	s := &scan{cat: d.cat, orig: text, masked: masked, escapes: escapes}
	lo := 0
	if heading {
		if loc := catalog.HeadingMarker.FindStringIndex(text); loc != nil {
			s.out = append(s.out, Region{
				From: 0, To: loc[1],
				IsMarker: true, Syntax: document.MarkHeading, Role: document.RoleBlock,
			})
			lo = loc[1]
		}
	}
	s.nest(lo, len(text), nil, document.Mark{})
	return s.out
}

type scan struct {
	cat     *catalog.Catalog
	orig    string
	masked  string
	escapes []int
	out     []Region
}

// nest resolves text[lo:hi] under the inherited types and recurses into
// the content of every accepted match.
func (s *scan) nest(lo, hi int, inherited []document.MarkType, link document.Mark) {
	if lo >= hi {
		return
	}
	pos := lo
	for _, m := range catalog.Resolve(s.cat.Matches(s.masked, lo, hi)) {
		s.plain(pos, m.Start, inherited, link)
		types := append(append([]document.MarkType(nil), inherited...), m.Rule.Types()...)
		l := link
		if m.Rule.Attrs != nil {
			l = m.Rule.Attrs(s.orig, m.Loc)
		}
		syn := m.Rule.Type
		s.out = append(s.out, Region{
			From: m.Start, To: m.ContentStart, Types: types, Link: l,
			IsMarker: true, Syntax: syn, Role: document.RoleOpen,
		})
		if m.Rule.NoNest {
			if m.ContentStart < m.ContentEnd {
				s.out = append(s.out, Region{From: m.ContentStart, To: m.ContentEnd, Types: types, Link: l})
			}
		} else {
			s.nest(m.ContentStart, m.ContentEnd, types, l)
		}
		s.out = append(s.out, Region{
			From: m.ContentEnd, To: m.End, Types: types, Link: l,
			IsMarker: true, Syntax: syn, Role: document.RoleClose,
		})
		pos = m.End
	}
	s.plain(pos, hi, inherited, link)
}

// plain emits text[lo:hi], splitting out the backslash of every escape.
func (s *scan) plain(lo, hi int, types []document.MarkType, link document.Mark) {
	for _, e := range s.escapes {
		if e < lo || e+2 > hi {
			continue
		}
		if lo < e {
			s.out = append(s.out, Region{From: lo, To: e, Types: types, Link: link})
		}
		s.out = append(s.out, Region{
			From: e, To: e + 1, Types: types, Link: link,
			IsMarker: true, IsEscape: true, Syntax: document.MarkEscape, Role: document.RoleEscape,
		})
		lo = e + 1
	}
	if lo < hi {
		s.out = append(s.out, Region{From: lo, To: hi, Types: types, Link: link})
	}
}

// runeIndex maps every byte offset of text, and len(text), to a rune
// index.
func runeIndex(text string) []int {
	idx := make([]int, len(text)+1)
	n := 0
	for i := range text {
		idx[i] = n
		n++
	}
	// Continuation bytes take the index of the following rune.
	next := n
	idx[len(text)] = next
	for i := len(text) - 1; i >= 0; i-- {
		if text[i]&0xC0 == 0x80 {
			idx[i] = next
		} else {
			next = idx[i]
		}
	}
	return idx
}

func toRunes(text string, rs []Region) []Region {
	if len(rs) == 0 {
		return nil
	}
	idx := runeIndex(text)
	out := make([]Region, 0, len(rs))
	for _, r := range rs {
		r.From, r.To = idx[r.From], idx[r.To]
		if r.From < r.To {
			out = append(out, r)
		}
	}
	return out
}
