package syntax

import (
	"strings"

	"github.com/rjkroege/livemark/catalog"
	"github.com/rjkroege/livemark/document"
)

// InputRules promotes paragraphs whose literal text has become a block
// construct: "## " makes a heading and a thematic break line makes a
// horizontal rule. Source-view paragraphs are never promoted. It returns
// the number of blocks changed.
//
// active is the paragraph holding the cursor, or nil. A "***" or "___"
// rule in the active paragraph waits for a trailing space or for the
// cursor to leave, since the same characters open strong emphasis.
func InputRules(doc *document.Document, active *document.Block) int {
	changed := 0
	document.Walk(doc.Blocks, func(b, _ *document.Block, _ int) bool {
		if b.Type != document.Paragraph || b.IsSourceTagged() {
			return !b.IsTextblock()
		}
		if promote(b, b == active) {
			changed++
		}
		return false
	})
	return changed
}

func promote(b *document.Block, typing bool) bool {
	text := b.Text()
	if m := catalog.HeadingInput.FindStringSubmatch(text); m != nil {
		b.Type = document.Heading
		b.Level = len(m[1])
		return true
	}
	if !catalog.IsThematicBreak(text) {
		return false
	}
	markup := strings.TrimSpace(text)
	if typing && markup[0] != '-' && strings.TrimRight(text, " \t") == text {
		return false
	}
	b.Type = document.HorizontalRule
	b.Markup = markup
	b.Inline = nil
	return true
}
