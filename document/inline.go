package document

import (
	"strings"
	"unicode/utf8"
)

// InlineKind identifies the kind of an inline span.
type InlineKind int

const (
	Text InlineKind = iota
	HardBreak
	Image
)

// ObjectReplacement stands in for atomic inlines in scan text.
const ObjectReplacement = '\uFFFC'

// Inline is a leaf of a textblock: a run of text with its marks, a hard
// line break or an atomic image.
type Inline struct {
	Kind  InlineKind
	Text  string
	Marks MarkSet
	Image *ImageAttrs
}

// Len returns the size of the inline in positions. Atomic inlines occupy
// a single position.
func (in Inline) Len() int {
	if in.Kind == Text {
		return utf8.RuneCountInString(in.Text)
	}
	return 1
}

// Markdown returns the literal markdown for the inline.
func (in Inline) Markdown() string {
	switch in.Kind {
	case HardBreak:
		return "\\\n"
	case Image:
		if in.Image == nil {
			return ""
		}
		return in.Image.Markdown()
	}
	return in.Text
}

func (in Inline) clone() Inline {
	c := in
	if in.Marks != nil {
		c.Marks = append(MarkSet(nil), in.Marks...)
	}
	if in.Image != nil {
		img := *in.Image
		c.Image = &img
	}
	return c
}

// InlineText returns the literal markdown of a run of inlines.
func InlineText(inl []Inline) string {
	var sb strings.Builder
	for _, in := range inl {
		sb.WriteString(in.Markdown())
	}
	return sb.String()
}
