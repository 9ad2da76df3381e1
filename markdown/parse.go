// Package markdown converts between markdown text and the live document
// tree. Parsing never fails: constructs it does not recognise, including
// unterminated fences, degrade to paragraphs of literal text.
package markdown

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/rjkroege/livemark/catalog"
	"github.com/rjkroege/livemark/document"
	"github.com/rjkroege/livemark/syntax"
)

// Parser turns markdown text into an annotated document.
type Parser struct {
	det *syntax.Detector
}

// NewParser returns a Parser annotating with the rules of cat. A nil cat
// uses the default catalog.
func NewParser(cat *catalog.Catalog) *Parser {
	return &Parser{det: syntax.NewDetector(cat)}
}

// Parse parses text with the default catalog.
func Parse(text string) *document.Document {
	return NewParser(nil).Parse(text)
}

// Parse converts text to a document in rendered form, with annotations
// and image atoms already assigned.
func (p *Parser) Parse(text string) *document.Document {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	doc := document.New()
	if fm, rest, ok := splitFrontMatter(text); ok {
		doc.Blocks = append(doc.Blocks, fm)
		text = rest
	}
	doc.Blocks = append(doc.Blocks, parseBlocks(strings.Split(text, "\n"))...)
	p.det.Run(doc, syntax.Options{})
	return doc
}

var (
	bulletItem  = regexp.MustCompile(`^([-*+])[ \t]+`)
	orderedItem = regexp.MustCompile(`^(\d{1,9})([.)])[ \t]+`)
	taskPrefix  = regexp.MustCompile(`^\[([ xX])\][ \t]+`)
	tableSep    = regexp.MustCompile(`^\|?[ \t]*:?-+:?[ \t]*(\|[ \t]*:?-+:?[ \t]*)*\|?[ \t]*$`)
)

// headingLevel returns the ATX heading level of line, or 0.
func headingLevel(line string) int {
	n := catalog.HeadingCount(line)
	if n < 1 || n > 6 {
		return 0
	}
	if n < len(line) && line[n] != ' ' && line[n] != '\t' {
		return 0
	}
	return n
}

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

func isMathFence(line string) bool {
	return strings.TrimRight(line, " \t") == "$$"
}

func isQuoteLine(line string) bool {
	return strings.HasPrefix(line, ">")
}

func isTableRow(line string) bool {
	t := strings.TrimSpace(line)
	return strings.HasPrefix(t, "|") && len(t) > 1
}

func isTableSeparatorRow(line string) bool {
	return isTableRow(line) && tableSep.MatchString(strings.TrimSpace(line))
}

// listMarker returns the marker of a list item line and the width of the
// marker with its following whitespace.
func listMarker(line string) (marker string, width int, ordered bool) {
	if loc := bulletItem.FindStringSubmatchIndex(line); loc != nil {
		return line[loc[2]:loc[3]], loc[1], false
	}
	if loc := orderedItem.FindStringSubmatchIndex(line); loc != nil {
		return line[loc[2]:loc[5]], loc[1], true
	}
	return "", 0, false
}

// startsBlock reports whether line interrupts a paragraph.
func startsBlock(line string, next string) bool {
	if _, _, ok := catalog.ParseFenceOpen(line); ok {
		return true
	}
	if m, _, _ := listMarker(line); m != "" {
		return true
	}
	return headingLevel(line) > 0 || catalog.IsThematicBreak(line) || isQuoteLine(line) ||
		isMathFence(line) || (isTableRow(line) && isTableSeparatorRow(next))
}

func parseBlocks(lines []string) []*document.Block {
	var out []*document.Block
	var para []string
	flush := func() {
		if len(para) > 0 {
			out = append(out, paragraph(para))
			para = nil
		}
	}
	at := func(i int) string {
		if i < len(lines) {
			return lines[i]
		}
		return ""
	}

	for i := 0; i < len(lines); i++ {
		line := lines[i]
		if isBlank(line) {
			flush()
			continue
		}
		if len(para) > 0 && !startsBlock(line, at(i+1)) {
			para = append(para, line)
			continue
		}
		flush()

		if fence, info, ok := catalog.ParseFenceOpen(line); ok {
			if j := closingLine(lines, i+1, func(l string) bool { return catalog.IsFenceClose(l, fence) }); j > 0 {
				b := document.NewText(document.CodeBlock, joinContent(lines[i+1:j]))
				b.Fence = fence
				b.Language = info
				out = append(out, b)
				i = j
				continue
			}
		}
		if isMathFence(line) {
			if j := closingLine(lines, i+1, isMathFence); j > 0 {
				out = append(out, document.NewText(document.MathBlock, joinContent(lines[i+1:j])))
				i = j
				continue
			}
		}
		if level := headingLevel(line); level > 0 {
			b := document.NewText(document.Heading, line)
			b.Level = level
			out = append(out, b)
			continue
		}
		if catalog.IsThematicBreak(line) {
			out = append(out, &document.Block{Type: document.HorizontalRule, Markup: strings.TrimSpace(line)})
			continue
		}
		if isTableRow(line) && isTableSeparatorRow(at(i + 1)) {
			j := i + 2
			for j < len(lines) && isTableRow(lines[j]) {
				j++
			}
			out = append(out, table(lines[i], lines[i+1], lines[i+2:j]))
			i = j - 1
			continue
		}
		if isQuoteLine(line) {
			j := i
			var inner []string
			for j < len(lines) && isQuoteLine(lines[j]) {
				l := strings.TrimPrefix(lines[j], ">")
				inner = append(inner, strings.TrimPrefix(l, " "))
				j++
			}
			out = append(out, &document.Block{Type: document.Blockquote, Children: parseBlocks(inner)})
			i = j - 1
			continue
		}
		if m, _, _ := listMarker(line); m != "" {
			list, next := parseList(lines, i)
			out = append(out, list)
			i = next - 1
			continue
		}
		para = append(para, line)
	}
	flush()
	return out
}

// closingLine returns the index of the first line from start satisfying
// closes, or -1.
func closingLine(lines []string, start int, closes func(string) bool) int {
	for j := start; j < len(lines); j++ {
		if closes(lines[j]) {
			return j
		}
	}
	return -1
}

// joinContent returns code block content: every line followed by a
// newline.
func joinContent(lines []string) string {
	var sb strings.Builder
	for _, l := range lines {
		sb.WriteString(l)
		sb.WriteByte('\n')
	}
	return sb.String()
}

// paragraph builds a paragraph from its lines. Line breaks stay literal
// newlines; a line ending in an unescaped backslash is a hard break.
func paragraph(lines []string) *document.Block {
	var inl []document.Inline
	var text strings.Builder
	flushText := func() {
		if text.Len() > 0 {
			inl = append(inl, document.Inline{Kind: document.Text, Text: text.String()})
			text.Reset()
		}
	}
	for k, l := range lines {
		last := k == len(lines)-1
		if !last && hardBreak(l) {
			text.WriteString(l[:len(l)-1])
			flushText()
			inl = append(inl, document.Inline{Kind: document.HardBreak})
			continue
		}
		text.WriteString(l)
		if !last {
			text.WriteByte('\n')
		}
	}
	flushText()
	return &document.Block{Type: document.Paragraph, Inline: inl}
}

// hardBreak reports whether line ends with an odd run of backslashes.
func hardBreak(line string) bool {
	n := 0
	for i := len(line) - 1; i >= 0 && line[i] == '\\'; i-- {
		n++
	}
	return n%2 == 1
}

func table(header, sep string, body []string) *document.Block {
	t := &document.Block{Type: document.Table}
	for _, c := range splitRow(sep) {
		t.Align = append(t.Align, alignOf(c))
	}
	row := func(line string, head bool) *document.Block {
		r := &document.Block{Type: document.TableRow, Header: head}
		for _, c := range splitRow(line) {
			r.Children = append(r.Children, document.NewText(document.TableCell, c))
		}
		return r
	}
	t.Children = append(t.Children, row(header, true))
	for _, l := range body {
		t.Children = append(t.Children, row(l, false))
	}
	return t
}

// splitRow splits a table row on unescaped pipes and trims each cell.
func splitRow(line string) []string {
	t := strings.TrimSpace(line)
	t = strings.TrimPrefix(t, "|")
	if strings.HasSuffix(t, "|") && !strings.HasSuffix(t, `\|`) {
		t = t[:len(t)-1]
	}
	var cells []string
	start := 0
	for i := 0; i < len(t); i++ {
		switch t[i] {
		case '\\':
			i++
		case '|':
			cells = append(cells, strings.TrimSpace(t[start:i]))
			start = i + 1
		}
	}
	return append(cells, strings.TrimSpace(t[start:]))
}

func alignOf(sep string) string {
	left := strings.HasPrefix(sep, ":")
	right := strings.HasSuffix(sep, ":")
	switch {
	case left && right:
		return "center"
	case left:
		return "left"
	case right:
		return "right"
	}
	return ""
}

// parseList parses the tight list starting at lines[i] and returns it with
// the index of the first line after it. A blank line, or an item of a
// different kind, ends the list.
func parseList(lines []string, i int) (*document.Block, int) {
	first, _, ordered := listMarker(lines[i])
	list := &document.Block{Type: document.BulletList, Markup: first}
	if ordered {
		list.Type = document.OrderedList
		list.Markup = first[len(first)-1:]
		list.Start, _ = strconv.Atoi(first[:len(first)-1])
	}
	for i < len(lines) {
		marker, width, ord := listMarker(lines[i])
		if marker == "" || ord != ordered || !sameKind(marker, list.Markup, ordered) {
			break
		}
		// A list item line may also be a thematic break ("- - -").
		if catalog.IsThematicBreak(lines[i]) {
			break
		}
		content := []string{lines[i][width:]}
		indent := strings.Repeat(" ", width)
		j := i + 1
		for j < len(lines) && !isBlank(lines[j]) && strings.HasPrefix(lines[j], indent) {
			content = append(content, lines[j][width:])
			j++
		}
		item := &document.Block{Type: document.ListItem, Markup: marker}
		if m := taskPrefix.FindStringSubmatch(content[0]); m != nil {
			item.Task = true
			item.Checked = m[1] != " "
			content[0] = content[0][len(m[0]):]
		}
		item.Children = parseBlocks(content)
		if len(item.Children) == 0 {
			item.Children = []*document.Block{{Type: document.Paragraph}}
		}
		list.Children = append(list.Children, item)
		i = j
	}
	return list, i
}

func sameKind(marker, listMarkup string, ordered bool) bool {
	if ordered {
		return strings.HasSuffix(marker, listMarkup)
	}
	return marker == listMarkup
}
