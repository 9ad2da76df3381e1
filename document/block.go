package document

// BlockType identifies the kind of a block node.
type BlockType int

const (
	Paragraph BlockType = iota
	Heading
	Blockquote
	CodeBlock
	HorizontalRule
	BulletList
	OrderedList
	ListItem
	Table
	TableRow
	TableCell
	MathBlock
	Container
	FrontMatter
)

var blockNames = [...]string{
	Paragraph:      "paragraph",
	Heading:        "heading",
	Blockquote:     "blockquote",
	CodeBlock:      "code_block",
	HorizontalRule: "horizontal_rule",
	BulletList:     "bullet_list",
	OrderedList:    "ordered_list",
	ListItem:       "list_item",
	Table:          "table",
	TableRow:       "table_row",
	TableCell:      "table_cell",
	MathBlock:      "math_block",
	Container:      "container",
	FrontMatter:    "front_matter",
}

func (t BlockType) String() string {
	if int(t) < len(blockNames) {
		return blockNames[t]
	}
	return "unknown"
}

// ImageAttrs describes an image: ![Alt](Src "Title").
type ImageAttrs struct {
	Alt   string
	Src   string
	Title string
}

// Markdown returns the literal syntax for the image.
func (a ImageAttrs) Markdown() string {
	s := "![" + a.Alt + "](" + a.Src
	if a.Title != "" {
		s += ` "` + a.Title + `"`
	}
	return s + ")"
}

// Block is a node of the document tree. Textblocks (see IsTextblock) hold
// Inline content; every other block holds Children.
type Block struct {
	Type BlockType

	Level    int    // heading level, 1..6
	Language string // code block info string
	Fence    string // code block fence, "```" or "~~~"
	Markup   string // rule literal, list bullet or delimiter, list item marker
	Start    int    // ordered list start number
	Task     bool   // list item is a task item
	Checked  bool   // task item state
	Header   bool   // table row is the header row
	Align    []string
	Literal  string         // verbatim front matter
	Meta     map[string]any // decoded front matter

	Children []*Block
	Inline   []Inline

	// Source view only. A code block flattens to paragraphs sharing a
	// SourceGroup; an image to a paragraph with Image set; a rule to a
	// paragraph with HRSource set.
	SourceGroup string
	LineIndex   int
	LineTotal   int
	Image       *ImageAttrs
	HRSource    bool
}

// IsTextblock reports whether b holds inline content addressed by the
// editor's position space.
func (b *Block) IsTextblock() bool {
	switch b.Type {
	case Paragraph, Heading, CodeBlock, MathBlock, TableCell:
		return true
	}
	return false
}

// AllowsMarks reports whether the Detector annotates b. Code, math and
// flattened code and rule lines stay literal.
func (b *Block) AllowsMarks() bool {
	switch b.Type {
	case Paragraph:
		return b.SourceGroup == "" && !b.HRSource
	case Heading, TableCell:
		return true
	}
	return false
}

// IsSourceTagged reports whether b carries source-view attributes.
func (b *Block) IsSourceTagged() bool {
	return b.SourceGroup != "" || b.Image != nil || b.HRSource
}

// ClearSourceTags drops the transient source-view attributes.
func (b *Block) ClearSourceTags() {
	b.SourceGroup = ""
	b.LineIndex = 0
	b.LineTotal = 0
	b.Image = nil
	b.HRSource = false
}

// Len returns the size of b's inline content in positions.
func (b *Block) Len() int {
	n := 0
	for _, in := range b.Inline {
		n += in.Len()
	}
	return n
}

// Text returns the literal markdown of b's inline content.
func (b *Block) Text() string {
	return InlineText(b.Inline)
}

// Clone returns a deep copy of b.
func (b *Block) Clone() *Block {
	if b == nil {
		return nil
	}
	c := *b
	if b.Align != nil {
		c.Align = append([]string(nil), b.Align...)
	}
	if b.Meta != nil {
		c.Meta = make(map[string]any, len(b.Meta))
		for k, v := range b.Meta {
			c.Meta[k] = v
		}
	}
	if b.Image != nil {
		img := *b.Image
		c.Image = &img
	}
	if b.Children != nil {
		c.Children = make([]*Block, len(b.Children))
		for i, ch := range b.Children {
			c.Children[i] = ch.Clone()
		}
	}
	if b.Inline != nil {
		c.Inline = make([]Inline, len(b.Inline))
		for i, in := range b.Inline {
			c.Inline[i] = in.clone()
		}
	}
	return &c
}

// NewText returns a textblock of type t holding the plain text s.
func NewText(t BlockType, s string) *Block {
	b := &Block{Type: t}
	if s != "" {
		b.Inline = []Inline{{Kind: Text, Text: s}}
	}
	return b
}
