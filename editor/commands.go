package editor

import (
	"strings"
	"unicode/utf8"

	"github.com/rjkroege/livemark/catalog"
	"github.com/rjkroege/livemark/document"
)

// Commands edit literal syntax text only. The Detector assigns whatever
// annotations the new text implies.

// Wrap surrounds the selection with prefix and suffix and keeps the
// wrapped text selected.
func (e *Editor) Wrap(prefix, suffix string) (Result, error) {
	from, to := e.sel.Range()
	res, err := e.Apply(Batch{Origin: OriginCommand, Steps: []Step{
		Insert{Pos: to, Text: suffix},
		Insert{Pos: from, Text: prefix},
	}})
	if err != nil {
		return res, err
	}
	n := utf8.RuneCountInString(prefix)
	e.Select(from+n, to+n)
	return res, nil
}

// SetHeading rewrites the leading # run of the textblock at the cursor
// so that it reads as a level heading. Level 0 removes the run.
func (e *Editor) SetHeading(level int) (Result, error) {
	if level < 0 || level > 6 {
		return Result{}, ErrInvalidLevel
	}
	ref, _, ok := e.doc.Resolve(e.sel.Head)
	if !ok {
		return Result{}, ErrPositionOutOfRange
	}
	old := 0
	if ref.Block.Type == document.Heading {
		if loc := catalog.HeadingMarker.FindStringIndex(ref.Block.Text()); loc != nil {
			old = loc[1]
		}
	}
	var steps []Step
	if old > 0 {
		steps = append(steps, Delete{From: ref.Start, To: ref.Start + old})
	}
	if level > 0 {
		steps = append(steps, Insert{Pos: ref.Start, Text: strings.Repeat("#", level) + " "})
	}
	if len(steps) == 0 {
		return Result{Converged: true}, nil
	}
	return e.Apply(Batch{Origin: OriginCommand, Steps: steps})
}

// InsertImage inserts literal image syntax at the cursor. Outside source
// view the Detector turns it into an image atom.
func (e *Editor) InsertImage(alt, src, title string) (Result, error) {
	img := document.ImageAttrs{Alt: alt, Src: src, Title: title}
	return e.Apply(Batch{Origin: OriginCommand, Steps: []Step{
		Insert{Pos: e.sel.Head, Text: img.Markdown()},
	}})
}
