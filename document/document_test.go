package document

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// sample holds "# A", a list item "item" and, after a rule, "x".
func sample() *Document {
	return New(
		&Block{Type: Heading, Level: 1, Inline: []Inline{{Kind: Text, Text: "# A"}}},
		&Block{Type: BulletList, Markup: "-", Children: []*Block{
			{Type: ListItem, Markup: "-", Children: []*Block{NewText(Paragraph, "item")}},
		}},
		&Block{Type: HorizontalRule, Markup: "---"},
		NewText(Paragraph, "x"),
	)
}

func TestTextblocks(t *testing.T) {
	var got []int
	for _, r := range sample().Textblocks() {
		got = append(got, r.Start)
	}
	if diff := cmp.Diff([]int{0, 4, 9}, got); diff != "" {
		t.Errorf("starts mismatch (-want +got):\n%s", diff)
	}
	if n := sample().Size(); n != 10 {
		t.Errorf("Size() = %d, want 10", n)
	}
	if n := New().Size(); n != 0 {
		t.Errorf("empty Size() = %d", n)
	}
}

func TestResolve(t *testing.T) {
	d := sample()
	tests := []struct {
		pos  int
		text string
		off  int
		ok   bool
	}{
		{0, "# A", 0, true},
		{3, "# A", 3, true},
		{4, "item", 0, true},
		{8, "item", 4, true},
		{10, "x", 1, true},
		{11, "", 0, false},
		{-1, "", 0, false},
	}
	for _, tt := range tests {
		ref, off, ok := d.Resolve(tt.pos)
		if ok != tt.ok {
			t.Errorf("Resolve(%d) ok = %v, want %v", tt.pos, ok, tt.ok)
			continue
		}
		if !ok {
			continue
		}
		if ref.Block.Text() != tt.text || off != tt.off {
			t.Errorf("Resolve(%d) = %q+%d, want %q+%d", tt.pos, ref.Block.Text(), off, tt.text, tt.off)
		}
	}
	ref, _, _ := d.Resolve(5)
	if ref.Parent == nil || ref.Parent.Type != ListItem {
		t.Errorf("list paragraph parent = %+v", ref.Parent)
	}
}

func TestCloneIsDeep(t *testing.T) {
	d := sample()
	d.Blocks[0].Inline[0].Marks = NewMarkSet(Mark{Type: MarkStrong})
	c := d.Clone()
	if diff := cmp.Diff(d, c); diff != "" {
		t.Fatalf("clone differs (-orig +clone):\n%s", diff)
	}
	c.Blocks[0].Inline[0].Text = "## B"
	c.Blocks[0].Inline[0].Marks[0].Type = MarkCode
	c.Blocks[1].Children[0].Children[0].Inline = nil
	if d.Blocks[0].Text() != "# A" || !d.Blocks[0].Inline[0].Marks.Has(MarkStrong) {
		t.Errorf("clone shares inline state with original")
	}
	if d.Blocks[1].Children[0].Children[0].Text() != "item" {
		t.Errorf("clone shares children with original")
	}
}

func TestSourceTags(t *testing.T) {
	p := NewText(Paragraph, "```go")
	p.SourceGroup, p.LineIndex, p.LineTotal = "g", 0, 3
	if !p.IsSourceTagged() || p.AllowsMarks() {
		t.Errorf("flattened line: tagged %v, allows marks %v", p.IsSourceTagged(), p.AllowsMarks())
	}
	p.ClearSourceTags()
	if p.IsSourceTagged() || !p.AllowsMarks() {
		t.Errorf("cleared line: tagged %v, allows marks %v", p.IsSourceTagged(), p.AllowsMarks())
	}
	if NewText(CodeBlock, "x").AllowsMarks() {
		t.Errorf("code block allows marks")
	}
}
