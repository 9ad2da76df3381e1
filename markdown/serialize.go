package markdown

import (
	"strings"

	"github.com/rjkroege/livemark/document"
)

// Serialize returns the markdown text of d. Top-level blocks are separated
// by blank lines; the flattened lines of one source-view code block by
// single newlines. Annotations play no part: the text of every textblock
// is already literal markdown.
func Serialize(d *document.Document) string {
	s := serializeBlocks(d.Blocks, "\n\n")
	if s == "" {
		return ""
	}
	return s + "\n"
}

func serializeBlocks(blocks []*document.Block, sep string) string {
	var sb strings.Builder
	for i, b := range blocks {
		if i > 0 {
			prev := blocks[i-1]
			if b.SourceGroup != "" && b.SourceGroup == prev.SourceGroup {
				sb.WriteByte('\n')
			} else {
				sb.WriteString(sep)
			}
		}
		sb.WriteString(serializeBlock(b))
	}
	return sb.String()
}

func serializeBlock(b *document.Block) string {
	switch b.Type {
	case document.CodeBlock:
		fence := b.Fence
		if fence == "" {
			fence = "```"
		}
		return fence + b.Language + "\n" + withNewline(b.Text()) + fence
	case document.MathBlock:
		return "$$\n" + withNewline(b.Text()) + "$$"
	case document.HorizontalRule:
		if b.Markup == "" {
			return "---"
		}
		return b.Markup
	case document.FrontMatter:
		return b.Literal
	case document.Blockquote:
		return prefixLines(serializeBlocks(b.Children, "\n\n"), "> ", ">")
	case document.BulletList, document.OrderedList:
		return serializeBlocks(b.Children, "\n")
	case document.ListItem:
		return listItem(b)
	case document.Table:
		return table2md(b)
	case document.Container, document.TableRow:
		return serializeBlocks(b.Children, "\n\n")
	}
	return b.Text()
}

func withNewline(s string) string {
	if s == "" || strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
}

// prefixLines prefixes every line of s; empty lines get bare instead.
func prefixLines(s, prefix, bare string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		if l == "" {
			lines[i] = bare
		} else {
			lines[i] = prefix + l
		}
	}
	return strings.Join(lines, "\n")
}

func listItem(b *document.Block) string {
	marker := b.Markup
	if marker == "" {
		marker = "-"
	}
	body := serializeBlocks(b.Children, "\n")
	if b.Task {
		box := "[ ] "
		if b.Checked {
			box = "[x] "
		}
		body = box + body
	}
	if body == "" {
		return marker
	}
	lines := strings.Split(body, "\n")
	indent := strings.Repeat(" ", len(marker)+1)
	for i := 1; i < len(lines); i++ {
		if lines[i] != "" {
			lines[i] = indent + lines[i]
		}
	}
	return marker + " " + strings.Join(lines, "\n")
}

func table2md(t *document.Block) string {
	var lines []string
	row := func(r *document.Block) string {
		cells := make([]string, len(r.Children))
		for i, c := range r.Children {
			cells[i] = c.Text()
		}
		return "| " + strings.Join(cells, " | ") + " |"
	}
	for i, r := range t.Children {
		lines = append(lines, row(r))
		if i == 0 {
			seps := make([]string, len(r.Children))
			for k := range seps {
				a := ""
				if k < len(t.Align) {
					a = t.Align[k]
				}
				seps[k] = alignMarkup(a)
			}
			lines = append(lines, "| "+strings.Join(seps, " | ")+" |")
		}
	}
	return strings.Join(lines, "\n")
}

func alignMarkup(a string) string {
	switch a {
	case "left":
		return ":---"
	case "right":
		return "---:"
	case "center":
		return ":---:"
	}
	return "---"
}
