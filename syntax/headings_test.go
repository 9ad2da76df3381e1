package syntax

import (
	"testing"

	"github.com/rjkroege/livemark/document"
)

func heading(level int, s string) *document.Block {
	b := document.NewText(document.Heading, s)
	b.Level = level
	return b
}

func TestHeadingSync(t *testing.T) {
	tests := []struct {
		name      string
		block     *document.Block
		edit      func(b *document.Block)
		wantType  document.BlockType
		wantLevel int
		wantText  string
	}{
		{
			name:      "demote after deleting marker",
			block:     heading(1, "# Title"),
			edit:      func(b *document.Block) { deleteAt(b, 0, 2) },
			wantType:  document.Paragraph,
			wantLevel: 0,
			wantText:  "Title",
		},
		{
			name:      "level follows typed hashes",
			block:     heading(1, "# Title"),
			edit:      func(b *document.Block) { b.Inline = []document.Inline{{Text: "### Title"}} },
			wantType:  document.Heading,
			wantLevel: 3,
			wantText:  "### Title",
		},
		{
			name:      "one hash removed",
			block:     heading(2, "## Title"),
			edit:      func(b *document.Block) { deleteAt(b, 0, 1) },
			wantType:  document.Heading,
			wantLevel: 1,
			wantText:  "# Title",
		},
		{
			name:      "seven hashes demote",
			block:     heading(6, "###### Title"),
			edit:      func(b *document.Block) { b.Inline = []document.Inline{{Text: "####### Title"}} },
			wantType:  document.Paragraph,
			wantLevel: 0,
			wantText:  "####### Title",
		},
		{
			name:      "space removed",
			block:     heading(1, "# Title"),
			edit:      func(b *document.Block) { deleteAt(b, 1, 2) },
			wantType:  document.Paragraph,
			wantLevel: 0,
			wantText:  "#Title",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := document.New(tt.block)
			d := NewDetector(nil)
			d.Run(doc, Options{})
			tt.edit(doc.Blocks[0])
			d.Run(doc, Options{})
			HeadingSync(doc)

			b := doc.Blocks[0]
			if b.Type != tt.wantType || b.Level != tt.wantLevel {
				t.Errorf("block = %v level %d, want %v level %d", b.Type, b.Level, tt.wantType, tt.wantLevel)
			}
			if got := b.Text(); got != tt.wantText {
				t.Errorf("text = %q, want %q", got, tt.wantText)
			}
			for i, c := range document.Explode(b.Inline) {
				if b.Type == document.Paragraph && c.Marks.HasMarker(document.MarkHeading) {
					t.Errorf("paragraph cell %d keeps a heading marker", i)
				}
			}
			if HeadingSync(doc) != 0 {
				t.Errorf("second HeadingSync changed the document")
			}
		})
	}
}

func TestHeadingSyncWithoutDetector(t *testing.T) {
	// A heading that never got a marker has nothing to count.
	doc := document.New(heading(2, "plain"))
	if n := HeadingSync(doc); n != 1 {
		t.Fatalf("HeadingSync = %d, want 1", n)
	}
	if doc.Blocks[0].Type != document.Paragraph {
		t.Errorf("type = %v, want paragraph", doc.Blocks[0].Type)
	}
}

func TestInputRules(t *testing.T) {
	tests := []struct {
		in        string
		wantType  document.BlockType
		wantLevel int
		markup    string
	}{
		{in: "## Title", wantType: document.Heading, wantLevel: 2},
		{in: "####### x", wantType: document.Paragraph},
		{in: "#hashtag", wantType: document.Paragraph},
		{in: "---", wantType: document.HorizontalRule, markup: "---"},
		{in: "* * *", wantType: document.HorizontalRule, markup: "* * *"},
		{in: "--", wantType: document.Paragraph},
		{in: "text", wantType: document.Paragraph},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			doc := document.New(para(tt.in))
			InputRules(doc, nil)
			b := doc.Blocks[0]
			if b.Type != tt.wantType || b.Level != tt.wantLevel || b.Markup != tt.markup {
				t.Errorf("InputRules(%q) = %v/%d/%q, want %v/%d/%q",
					tt.in, b.Type, b.Level, b.Markup, tt.wantType, tt.wantLevel, tt.markup)
			}
		})
	}
}

func TestInputRulesSkipSourceParagraphs(t *testing.T) {
	b := para("---")
	b.HRSource = true
	doc := document.New(b)
	if n := InputRules(doc, nil); n != 0 {
		t.Errorf("InputRules promoted a source-view rule paragraph")
	}
}

func TestInputRulesWaitWhileTyping(t *testing.T) {
	tests := []struct {
		in   string
		want document.BlockType
	}{
		{in: "***", want: document.Paragraph},
		{in: "___", want: document.Paragraph},
		{in: "*** ", want: document.HorizontalRule},
		{in: "___\t", want: document.HorizontalRule},
		{in: "---", want: document.HorizontalRule},
		{in: "## x", want: document.Heading},
	}
	for _, tt := range tests {
		b := para(tt.in)
		InputRules(document.New(b), b)
		if b.Type != tt.want {
			t.Errorf("InputRules(%q) while typing = %v, want %v", tt.in, b.Type, tt.want)
		}
	}

	typed, other := para("***"), para("next")
	if n := InputRules(document.New(typed, other), other); n != 1 || typed.Markup != "***" {
		t.Errorf("rule left behind by the cursor: changed %d, markup %q", n, typed.Markup)
	}
}
