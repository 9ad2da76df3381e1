package document

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestExplodeImplode(t *testing.T) {
	strong := NewMarkSet(Mark{Type: MarkStrong})
	in := []Inline{
		{Kind: Text, Text: "ab", Marks: strong},
		{Kind: Text, Text: "c", Marks: strong},
		{Kind: HardBreak},
		{Kind: Image, Image: &ImageAttrs{Alt: "x", Src: "y.png"}},
		{Kind: Text, Text: "世"},
	}
	cells := Explode(in)
	if len(cells) != 6 {
		t.Fatalf("got %d cells, want 6", len(cells))
	}
	if got, want := ScanText(cells), "abc\n\uFFFC世"; got != want {
		t.Errorf("ScanText = %q, want %q", got, want)
	}
	if got, want := CellText(cells, 2, 5), "c\\\n![x](y.png)"; got != want {
		t.Errorf("CellText = %q, want %q", got, want)
	}

	want := []Inline{
		{Kind: Text, Text: "abc", Marks: strong},
		{Kind: HardBreak},
		{Kind: Image, Image: &ImageAttrs{Alt: "x", Src: "y.png"}},
		{Kind: Text, Text: "世"},
	}
	if diff := cmp.Diff(want, Implode(cells)); diff != "" {
		t.Errorf("Implode mismatch (-want +got):\n%s", diff)
	}
}

func TestMarkerRuns(t *testing.T) {
	open := NewMarkSet(Mark{Type: MarkStrong}, Mark{Type: MarkSyntax, Syntax: MarkStrong, Role: RoleOpen})
	closing := NewMarkSet(Mark{Type: MarkStrong}, Mark{Type: MarkSyntax, Syntax: MarkStrong, Role: RoleClose})
	body := NewMarkSet(Mark{Type: MarkStrong})
	cells := []Cell{
		{R: '*', Marks: open}, {R: '*', Marks: open},
		{R: 'b', Marks: body},
		{R: '*', Marks: closing}, {R: '*', Marks: closing},
		{R: 'x'},
	}
	var got []string
	for _, r := range MarkerRuns(cells) {
		got = append(got, r.Literal)
		if r.Mark.Syntax != MarkStrong {
			t.Errorf("run %d-%d syntax = %v", r.From, r.To, r.Mark.Syntax)
		}
	}
	if diff := cmp.Diff([]string{"**", "**"}, got); diff != "" {
		t.Errorf("runs mismatch (-want +got):\n%s", diff)
	}
}

func TestMarkSet(t *testing.T) {
	link := Mark{Type: MarkLink, Href: "u"}
	s := NewMarkSet(link, Mark{Type: MarkStrong}, link)
	if len(s) != 2 || s[0].Type != MarkStrong {
		t.Errorf("NewMarkSet = %v, want sorted and deduplicated", s)
	}
	if m, ok := s.Get(MarkLink); !ok || m.Href != "u" {
		t.Errorf("Get(link) = %v, %v", m, ok)
	}
	if _, ok := s.Marker(); ok {
		t.Errorf("semantic set reports a marker")
	}
	rest := s.Without(func(m Mark) bool { return m.Type == MarkLink })
	if !rest.Equal(NewMarkSet(Mark{Type: MarkStrong})) {
		t.Errorf("Without = %v", rest)
	}
	if NewMarkSet() != nil {
		t.Errorf("NewMarkSet() should be nil")
	}
}

func TestParseMarkType(t *testing.T) {
	for _, name := range []string{"strong", "highlight", "strikethrough"} {
		typ, ok := ParseMarkType(name)
		if !ok || typ.String() != name {
			t.Errorf("ParseMarkType(%q) = %v, %v", name, typ, ok)
		}
	}
	if _, ok := ParseMarkType("bogus"); ok {
		t.Errorf("ParseMarkType(bogus) succeeded")
	}
}
