package rich

import "testing"

func TestContentLen(t *testing.T) {
	tests := []struct {
		name    string
		content Content
		want    int
	}{
		{
			name:    "empty content",
			content: Content{},
			want:    0,
		},
		{
			name: "multiple spans",
			content: Content{
				{Text: "hello ", Style: DefaultStyle()},
				{Text: "world", Style: StyleBold},
			},
			want: 11,
		},
		{
			name: "unicode across spans",
			content: Content{
				{Text: "hello", Style: DefaultStyle()},
				{Text: "\u4e16\u754c", Style: StyleBold}, // 2 CJK chars
			},
			want: 7,
		},
		{
			name: "placeholder rune",
			content: Content{
				{Text: "\uFFFC", Style: Style{Image: true, Scale: 1.0}},
			},
			want: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.content.Len()
			if got != tt.want {
				t.Errorf("Content.Len() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestContentAppend(t *testing.T) {
	var c Content
	c = c.Append(Span{Text: "a", Style: StyleBold})
	c = c.Append(Span{Text: "b", Style: StyleBold})
	c = c.Append(Span{Text: "", Style: StyleItalic})
	c = c.Append(Span{Text: "c", Style: StyleItalic})
	img := Style{Image: true, ImageURL: "x.png", Scale: 1.0}
	c = c.Append(Span{Text: "\uFFFC", Style: img})
	c = c.Append(Span{Text: "\uFFFC", Style: img})

	if len(c) != 4 {
		t.Fatalf("Append produced %d spans, want 4: %+v", len(c), c)
	}
	if c[0].Text != "ab" {
		t.Errorf("c[0].Text = %q, want %q", c[0].Text, "ab")
	}
	if got, want := c.String(), "abc\uFFFC\uFFFC"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestPlainContent(t *testing.T) {
	for _, text := range []string{"", "hello world", "line1\nline2", "hello\u4e16\u754c"} {
		content := Plain(text)
		if len(content) != 1 {
			t.Fatalf("Plain(%q) returned %d spans, want 1", text, len(content))
		}
		if content[0].Text != text {
			t.Errorf("Plain(%q)[0].Text = %q, want %q", text, content[0].Text, text)
		}
		if content[0].Style != DefaultStyle() {
			t.Errorf("Plain(%q)[0].Style = %v, want DefaultStyle()", text, content[0].Style)
		}
	}
}
