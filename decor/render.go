package decor

import (
	"path/filepath"
	"strings"

	"github.com/rjkroege/livemark/document"
	"github.com/rjkroege/livemark/rich"
)

// RenderOptions controls Render.
type RenderOptions struct {
	// BasePath is the directory relative image sources resolve against.
	BasePath string
}

// Render projects d into styled content. Hidden markers are dropped,
// visible ones keep their text with the Syntax style. Textblocks are
// separated by newlines; a horizontal rule renders as one placeholder
// rune. The SourceMap relates rendered runes to document positions and
// the LinkMap rendered runes to link targets.
func Render(d *document.Document, decos []Decoration, opts RenderOptions) (rich.Content, *rich.SourceMap, *rich.LinkMap) {
	hidden := make(map[int]bool)
	for _, dc := range decos {
		if dc.Visible {
			continue
		}
		for p := dc.From; p < dc.To; p++ {
			hidden[p] = true
		}
	}

	r := &renderer{sm: &rich.SourceMap{}, lm: rich.NewLinkMap(), hidden: hidden, opts: opts, sep: -1}
	pos := 0
	document.Walk(d.Blocks, func(b, _ *document.Block, _ int) bool {
		switch {
		case b.IsTextblock():
			r.textblock(b, pos)
			pos += b.Len() + 1
			return false
		case b.Type == document.HorizontalRule:
			r.newline()
			r.add(rich.Span{Text: "\uFFFC", Style: rich.Style{Rule: true, Scale: 1.0}})
			r.sep = -1
		}
		return true
	})
	return r.content, r.sm, r.lm
}

type renderer struct {
	content rich.Content
	sm      *rich.SourceMap
	lm      *rich.LinkMap
	hidden  map[int]bool
	opts    RenderOptions
	rpos    int  // rendered runes so far
	started bool // something has been rendered
	sep     int  // separator position after the last textblock, or -1
}

func (r *renderer) add(s rich.Span) {
	r.content = r.content.Append(s)
	r.rpos++
	r.started = true
}

// newline separates blocks, mapping the newline to the preceding
// textblock's separator position.
func (r *renderer) newline() {
	if !r.started {
		return
	}
	if r.sep >= 0 {
		r.sm.Add(rich.SourceMapEntry{
			RenderedStart: r.rpos, RenderedEnd: r.rpos + 1,
			SourceStart: r.sep, SourceEnd: r.sep + 1,
		})
	}
	r.add(rich.Span{Text: "\n", Style: rich.DefaultStyle()})
}

func (r *renderer) textblock(b *document.Block, start int) {
	r.newline()
	r.started = true
	base := baseStyle(b)
	cells := document.Explode(b.Inline)

	var seg *rich.SourceMapEntry
	gap := 0
	for i, c := range cells {
		p := start + i
		if r.hidden[p] {
			if seg != nil {
				seg.SuffixLen++
			}
			gap++
			continue
		}
		if seg == nil || seg.SourceEnd != p {
			if seg != nil {
				r.sm.Add(*seg)
			}
			seg = &rich.SourceMapEntry{RenderedStart: r.rpos, SourceStart: p, PrefixLen: gap}
		}
		gap = 0
		seg.RenderedEnd = r.rpos + 1
		seg.SourceEnd = p + 1

		if l, ok := c.Marks.Get(document.MarkLink); ok {
			r.lm.Add(r.rpos, r.rpos+1, l.Href)
		}
		r.add(r.span(base, c))
	}
	if seg != nil {
		r.sm.Add(*seg)
	}
	r.sep = start + len(cells)
}

func (r *renderer) span(base rich.Style, c document.Cell) rich.Span {
	s := cellStyle(base, c.Marks)
	switch {
	case c.Atom == nil:
		return rich.Span{Text: string(c.R), Style: s}
	case c.Atom.Kind == document.HardBreak:
		return rich.Span{Text: "\n", Style: s}
	case c.Atom.Image != nil:
		s.Image = true
		s.ImageURL = ResolveImagePath(r.opts.BasePath, c.Atom.Image.Src)
		s.ImageAlt = c.Atom.Image.Alt
	}
	return rich.Span{Text: "\uFFFC", Style: s}
}

func baseStyle(b *document.Block) rich.Style {
	switch {
	case b.Type == document.Heading:
		return rich.HeadingStyle(b.Level)
	case b.Type == document.CodeBlock:
		return rich.Style{Code: true, Block: true, Scale: 1.0}
	case b.Type == document.MathBlock:
		return rich.Style{Math: true, Block: true, Scale: 1.0}
	case b.SourceGroup != "":
		return rich.StyleCode
	}
	return rich.DefaultStyle()
}

func cellStyle(s rich.Style, marks document.MarkSet) rich.Style {
	for _, m := range marks {
		switch m.Type {
		case document.MarkStrong:
			s.Bold = true
		case document.MarkEmphasis:
			s.Italic = true
		case document.MarkCode:
			s.Code = true
			s.Bg = rich.InlineCodeBg
		case document.MarkStrike:
			s.Strike = true
		case document.MarkHighlight:
			s.Highlight = true
			s.Bg = rich.HighlightBg
		case document.MarkLink:
			s.Link = true
			s.Fg = rich.LinkBlue
		case document.MarkMath:
			s.Math = true
		case document.MarkFootnote:
			s.Footnote = true
		case document.MarkSyntax:
			s.Syntax = true
			s.Fg = rich.SyntaxGray
		}
	}
	return s
}

// ResolveImagePath resolves an image source against basePath. URLs,
// absolute paths and sources seen without a base path are returned
// unchanged.
func ResolveImagePath(basePath, src string) string {
	switch {
	case src == "", basePath == "":
		return src
	case strings.Contains(src, "://"), strings.HasPrefix(src, "data:"):
		return src
	case filepath.IsAbs(src):
		return src
	}
	return filepath.Join(basePath, filepath.FromSlash(src))
}
