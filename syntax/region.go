// Package syntax holds the post-commit passes that keep a document's
// annotations consistent with its literal text: the Detector assigns them,
// the Fixer strips the ones an edit has broken, HeadingSync derives heading
// levels from typed '#' runs and InputRules promotes paragraphs whose text
// has become a block construct.
//
// None of these passes reports errors. Text that does not match a syntax
// form stays plain.
package syntax

import "github.com/rjkroege/livemark/document"

// Region is a run of a textblock with uniform annotations. Offsets are
// cell indices.
type Region struct {
	From, To int
	Types    []document.MarkType
	IsMarker bool
	IsEscape bool
	Syntax   document.MarkType // marker only
	Role     document.Role     // marker only
	Link     document.Mark     // attributes when Types holds MarkLink
}

// Marks returns the annotations every cell of r carries.
func (r Region) Marks() document.MarkSet {
	var marks []document.Mark
	for _, t := range r.Types {
		if t == document.MarkLink {
			marks = append(marks, r.Link)
			continue
		}
		marks = append(marks, document.Mark{Type: t})
	}
	if r.IsMarker {
		marks = append(marks, document.Mark{Type: document.MarkSyntax, Syntax: r.Syntax, Role: r.Role})
	}
	return document.NewMarkSet(marks...)
}
