// Package rich is the styled-span model handed to a rendering surface:
// content as styled runs, plus maps from rendered positions back to the
// literal document and to link targets.
package rich

import "unicode/utf8"

// Span represents a run of text with uniform style.
type Span struct {
	Text  string
	Style Style
}

// Content is a sequence of styled spans representing a document.
type Content []Span

// Plain creates Content from unstyled text.
func Plain(text string) Content {
	return Content{{Text: text, Style: DefaultStyle()}}
}

// Len returns total rune count.
func (c Content) Len() int {
	n := 0
	for _, s := range c {
		n += utf8.RuneCountInString(s.Text)
	}
	return n
}

// Append adds a span, merging it into the last one when the styles
// match.
func (c Content) Append(s Span) Content {
	if s.Text == "" {
		return c
	}
	if n := len(c); n > 0 && c[n-1].Style == s.Style && !s.Style.Image {
		c[n-1].Text += s.Text
		return c
	}
	return append(c, s)
}

// String returns the concatenated text of c.
func (c Content) String() string {
	var b []byte
	for _, s := range c {
		b = append(b, s.Text...)
	}
	return string(b)
}
