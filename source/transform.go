// Package source converts a document between its rendered form and the
// source view, in which code blocks, images and horizontal rules become
// paragraphs of literal markdown text that can be edited character by
// character.
//
// Both directions rebuild the block list and replace it in one step.
// Folding never discards text: a run of paragraphs that no longer forms a
// valid construct is left as it is.
package source

import (
	"strings"

	"github.com/google/uuid"

	"github.com/rjkroege/livemark/catalog"
	"github.com/rjkroege/livemark/document"
)

// Transformer flattens and folds documents.
type Transformer struct {
	// NewID returns the group id shared by the lines of one flattened code
	// block. Nil uses random UUIDs.
	NewID func() string
}

// FoldReport summarises a Fold.
type FoldReport struct {
	Folded int
	Failed []Failure
}

// Failure describes a tagged run that could not be reconstructed.
type Failure struct {
	Kind  string // "code", "image" or "rule"
	Group string
	Text  string
}

func (t *Transformer) newID() string {
	if t != nil && t.NewID != nil {
		return t.NewID()
	}
	return uuid.NewString()
}

// NeedsFlatten reports whether d holds a code block, image or rule that
// the source view shows as literal text.
func NeedsFlatten(d *document.Document) bool {
	found := false
	document.Walk(d.Blocks, func(b, _ *document.Block, _ int) bool {
		switch {
		case found:
		case b.Type == document.CodeBlock, b.Type == document.HorizontalRule:
			found = true
		case b.IsTextblock():
			for _, in := range b.Inline {
				if in.Kind == document.Image {
					found = true
				}
			}
		}
		return !found && !b.IsTextblock()
	})
	return found
}

// Flatten rewrites d for the source view and reports whether anything
// changed.
func (t *Transformer) Flatten(d *document.Document) bool {
	out, changed := t.flatten(d.Blocks)
	if changed {
		d.Blocks = out
	}
	return changed
}

func (t *Transformer) flatten(blocks []*document.Block) ([]*document.Block, bool) {
	out := make([]*document.Block, 0, len(blocks))
	changed := false
	for _, b := range blocks {
		switch {
		case b.Type == document.CodeBlock:
			out = append(out, t.flattenCode(b)...)
			changed = true
		case b.Type == document.HorizontalRule:
			out = append(out, flattenRule(b))
			changed = true
		case b.IsTextblock():
			nb, c := flattenImages(b)
			out = append(out, nb)
			changed = changed || c
		default:
			kids, c := t.flatten(b.Children)
			if c {
				nb := *b
				nb.Children = kids
				b = &nb
				changed = true
			}
			out = append(out, b)
		}
	}
	return out, changed
}

// CodeLines returns the fenced source lines of a code block: the opening
// fence with its info string, every content line and the closing fence.
func CodeLines(b *document.Block) []string {
	fence := b.Fence
	if fence == "" {
		fence = "```"
	}
	lines := []string{fence + b.Language}
	if text := b.Text(); text != "" {
		lines = append(lines, strings.Split(strings.TrimSuffix(text, "\n"), "\n")...)
	}
	return append(lines, fence)
}

func (t *Transformer) flattenCode(b *document.Block) []*document.Block {
	lines := CodeLines(b)
	id := t.newID()
	out := make([]*document.Block, len(lines))
	for i, l := range lines {
		p := document.NewText(document.Paragraph, l)
		p.SourceGroup = id
		p.LineIndex = i
		p.LineTotal = len(lines)
		p.Language = b.Language
		out[i] = p
	}
	return out
}

func flattenRule(b *document.Block) *document.Block {
	markup := b.Markup
	if markup == "" {
		markup = "---"
	}
	p := document.NewText(document.Paragraph, markup)
	p.HRSource = true
	return p
}

// flattenImages turns image atoms back into literal text. A paragraph
// holding a single image is tagged so Fold can restore it.
func flattenImages(b *document.Block) (*document.Block, bool) {
	n := 0
	for _, in := range b.Inline {
		if in.Kind == document.Image {
			n++
		}
	}
	if n == 0 {
		return b, false
	}
	nb := b.Clone()
	if b.Type == document.Paragraph && len(b.Inline) == 1 && b.Inline[0].Image != nil {
		img := *b.Inline[0].Image
		nb.Inline = document.NewText(document.Paragraph, img.Markdown()).Inline
		nb.Image = &img
		return nb, true
	}
	cells := document.Explode(b.Inline)
	var out []document.Cell
	for _, c := range cells {
		if c.Atom == nil || c.Atom.Kind != document.Image {
			out = append(out, c)
			continue
		}
		out = append(out, document.PlainCells(c.Atom.Markdown())...)
	}
	nb.Inline = document.Implode(out)
	return nb, true
}

// Fold restores the rendered form of every tagged run in d. Runs that
// cannot be reconstructed are left in place and listed in the report.
func (t *Transformer) Fold(d *document.Document) FoldReport {
	var r FoldReport
	out, changed := fold(d.Blocks, &r)
	if changed {
		d.Blocks = out
	}
	return r
}

func fold(blocks []*document.Block, r *FoldReport) ([]*document.Block, bool) {
	out := make([]*document.Block, 0, len(blocks))
	changed := false
	for i := 0; i < len(blocks); i++ {
		b := blocks[i]
		switch {
		case b.Type == document.Paragraph && b.SourceGroup != "":
			j := i + 1
			for j < len(blocks) && blocks[j].Type == document.Paragraph && blocks[j].SourceGroup == b.SourceGroup {
				j++
			}
			run := blocks[i:j]
			if cb, ok := foldCode(run); ok {
				out = append(out, cb)
				r.Folded++
				changed = true
			} else {
				out = append(out, run...)
				r.Failed = append(r.Failed, Failure{Kind: "code", Group: b.SourceGroup, Text: joinLines(run)})
			}
			i = j - 1
		case b.Type == document.Paragraph && b.Image != nil:
			if img, ok := catalog.ParseImage(b.Text()); ok {
				out = append(out, &document.Block{
					Type:   document.Paragraph,
					Inline: []document.Inline{{Kind: document.Image, Image: &img}},
				})
				r.Folded++
				changed = true
			} else {
				out = append(out, b)
				r.Failed = append(r.Failed, Failure{Kind: "image", Text: b.Text()})
			}
		case b.Type == document.Paragraph && b.HRSource:
			if text := b.Text(); catalog.IsThematicBreak(text) {
				out = append(out, &document.Block{Type: document.HorizontalRule, Markup: strings.TrimSpace(text)})
				r.Folded++
				changed = true
			} else {
				out = append(out, b)
				r.Failed = append(r.Failed, Failure{Kind: "rule", Text: text})
			}
		case !b.IsTextblock() && len(b.Children) > 0:
			kids, c := fold(b.Children, r)
			if c {
				nb := *b
				nb.Children = kids
				b = &nb
				changed = true
			}
			out = append(out, b)
		default:
			out = append(out, b)
		}
	}
	return out, changed
}

func joinLines(run []*document.Block) string {
	lines := make([]string, len(run))
	for i, p := range run {
		lines[i] = p.Text()
	}
	return strings.Join(lines, "\n")
}

// foldCode reconstructs a fenced code block from its source lines. The
// first line must open a fence, the last must close it and no line in
// between may close it early.
func foldCode(run []*document.Block) (*document.Block, bool) {
	if len(run) < 2 {
		return nil, false
	}
	lines := make([]string, len(run))
	for i, p := range run {
		for _, in := range p.Inline {
			if in.Kind != document.Text {
				return nil, false
			}
		}
		lines[i] = p.Text()
		if strings.Contains(lines[i], "\n") {
			return nil, false
		}
	}
	fence, info, ok := catalog.ParseFenceOpen(lines[0])
	if !ok || !catalog.IsFenceClose(lines[len(lines)-1], fence) {
		return nil, false
	}
	body := lines[1 : len(lines)-1]
	var sb strings.Builder
	for _, l := range body {
		if catalog.IsFenceClose(l, fence) {
			return nil, false
		}
		sb.WriteString(l)
		sb.WriteByte('\n')
	}
	cb := &document.Block{Type: document.CodeBlock, Fence: fence, Language: info}
	if sb.Len() > 0 {
		cb.Inline = []document.Inline{{Kind: document.Text, Text: sb.String()}}
	}
	return cb, true
}
