package markdown

import (
	"strings"

	"github.com/adrg/frontmatter"

	"github.com/rjkroege/livemark/document"
)

// splitFrontMatter separates a leading YAML front matter block from text.
// The block is kept verbatim; its decoded fields become Meta. Text that
// merely looks like front matter but does not decode is left alone.
func splitFrontMatter(text string) (*document.Block, string, bool) {
	if !strings.HasPrefix(text, "---\n") {
		return nil, text, false
	}
	end := -1
	off := 4
	for off <= len(text) {
		nl := strings.IndexByte(text[off:], '\n')
		line := text[off:]
		if nl >= 0 {
			line = text[off : off+nl]
		}
		if line == "---" {
			end = off + len(line)
			break
		}
		if nl < 0 {
			break
		}
		off += nl + 1
	}
	if end < 0 || strings.TrimSpace(text[4:end-3]) == "" {
		return nil, text, false
	}

	literal := text[:end]
	meta := map[string]any{}
	if _, err := frontmatter.Parse(strings.NewReader(literal+"\n"), &meta); err != nil {
		return nil, text, false
	}
	b := &document.Block{Type: document.FrontMatter, Literal: literal, Meta: meta}
	return b, strings.TrimPrefix(text[end:], "\n"), true
}
