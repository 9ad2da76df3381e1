package editor

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rjkroege/livemark/decor"
	"github.com/rjkroege/livemark/document"
)

func ids() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("g%d", n)
	}
}

func load(t *testing.T, md string, opts Options) *Editor {
	t.Helper()
	if opts.NewID == nil {
		opts.NewID = ids()
	}
	e := New(opts)
	e.Load(md)
	return e
}

func apply(t *testing.T, e *Editor, steps ...Step) Result {
	t.Helper()
	res, err := e.Apply(Batch{Origin: OriginUser, Steps: steps})
	if err != nil {
		t.Fatalf("Apply(%+v) failed: %v", steps, err)
	}
	return res
}

func cellsOf(e *Editor, block int) []document.Cell {
	return document.Explode(e.Document().Textblocks()[block].Block.Inline)
}

func TestApplyTypedBold(t *testing.T) {
	e := load(t, "hello", Options{})
	res := apply(t, e, Insert{Pos: 5, Text: "**"}, Insert{Pos: 0, Text: "**"})

	if got, want := e.Markdown(), "**hello**\n"; got != want {
		t.Errorf("Markdown() = %q, want %q", got, want)
	}
	if !cellsOf(e, 0)[2].Marks.Has(document.MarkStrong) {
		t.Errorf("typed bold not annotated")
	}
	if !res.Changed || !res.Converged {
		t.Errorf("result = %+v, want changed and converged", res)
	}
	if e.Selection() != (Selection{Anchor: 2, Head: 2}) {
		t.Errorf("Selection() = %+v, want cursor after last step", e.Selection())
	}
}

func TestHeadingDemotion(t *testing.T) {
	e := load(t, "# Title", Options{})
	apply(t, e, Delete{From: 0, To: 2})

	b := e.Document().Blocks[0]
	if b.Type != document.Paragraph || b.Text() != "Title" {
		t.Errorf("after deleting marker: %v %q, want paragraph %q", b.Type, b.Text(), "Title")
	}
	for _, c := range cellsOf(e, 0) {
		if len(c.Marks) != 0 {
			t.Errorf("stray marks %v on %q", c.Marks, c.R)
		}
	}
}

func TestTypedHeading(t *testing.T) {
	e := load(t, "Title", Options{})
	apply(t, e, Insert{Pos: 0, Text: "## "})

	b := e.Document().Blocks[0]
	if b.Type != document.Heading || b.Level != 2 {
		t.Errorf("got %v level %d, want heading level 2", b.Type, b.Level)
	}
}

func TestTypedHeadingInSourceView(t *testing.T) {
	e := load(t, "Title", Options{SourceView: true})
	apply(t, e, Insert{Pos: 0, Text: "## "})

	if b := e.Document().Blocks[0]; b.Type != document.Paragraph {
		t.Errorf("source view promoted paragraph to %v", b.Type)
	}
}

func TestPartialDeleteStripsStrong(t *testing.T) {
	e := load(t, "**bold**", Options{})
	apply(t, e, Delete{From: 7, To: 8})

	if got := e.Document().Blocks[0].Text(); got != "**bold*" {
		t.Fatalf("text = %q", got)
	}
	for i, c := range cellsOf(e, 0) {
		if c.Marks.Has(document.MarkStrong) {
			t.Errorf("cell %d still strong", i)
		}
	}
}

func TestApplyIsAtomic(t *testing.T) {
	e := load(t, "abc", Options{})
	_, err := e.Apply(Batch{Steps: []Step{Insert{Pos: 0, Text: "x"}, Insert{Pos: 99, Text: "y"}}})
	if !errors.Is(err, ErrPositionOutOfRange) {
		t.Fatalf("Apply error = %v, want ErrPositionOutOfRange", err)
	}
	if got := e.Markdown(); got != "abc\n" {
		t.Errorf("document changed by failed batch: %q", got)
	}
	if e.Undo() {
		t.Errorf("failed batch was recorded in history")
	}

	if _, err := e.Apply(Batch{}); !errors.Is(err, ErrEmptyBatch) {
		t.Errorf("Apply(empty) error = %v, want ErrEmptyBatch", err)
	}
	if _, err := e.Apply(Batch{Steps: []Step{Delete{From: 2, To: 1}}}); !errors.Is(err, ErrPositionOutOfRange) {
		t.Errorf("reversed delete error = %v", err)
	}
}

func TestEmptyDocumentIsEditable(t *testing.T) {
	e := New(Options{})
	apply(t, e, Insert{Pos: 0, Text: "x"})
	if got := e.Markdown(); got != "x\n" {
		t.Errorf("Markdown() = %q, want %q", got, "x\n")
	}
}

func TestUndoRedo(t *testing.T) {
	e := load(t, "a", Options{})
	apply(t, e, Insert{Pos: 1, Text: "b"})
	apply(t, e, Insert{Pos: 2, Text: "c"})

	steps := []struct {
		op   func() bool
		ok   bool
		want string
	}{
		{e.Undo, true, "ab\n"},
		{e.Undo, true, "a\n"},
		{e.Undo, false, "a\n"},
		{e.Redo, true, "ab\n"},
	}
	for i, s := range steps {
		if ok := s.op(); ok != s.ok {
			t.Errorf("step %d: got %v, want %v", i, ok, s.ok)
		}
		if got := e.Markdown(); got != s.want {
			t.Errorf("step %d: Markdown() = %q, want %q", i, got, s.want)
		}
	}

	if !e.Dirty() {
		t.Errorf("Dirty() = false after edits")
	}
	e.Clean()
	if e.Dirty() {
		t.Errorf("Dirty() = true after Clean")
	}
	apply(t, e, Insert{Pos: 0, Text: "z"})
	if e.Redo() {
		t.Errorf("Redo succeeded after a new edit")
	}
}

func TestHistoryLimit(t *testing.T) {
	e := load(t, "", Options{HistoryLimit: 2})
	for i := 0; i < 3; i++ {
		apply(t, e, Insert{Pos: 0, Text: "x"})
	}
	n := 0
	for e.Undo() {
		n++
	}
	if n != 2 {
		t.Errorf("undid %d actions, want 2", n)
	}
	if got := e.Markdown(); got != "x\n" {
		t.Errorf("Markdown() = %q, want %q", got, "x\n")
	}
}

func TestSourceViewToggle(t *testing.T) {
	md := "```go\nx\n```\n\n---\n\n![a](b.png)\n"
	e := load(t, md, Options{})

	e.SetSourceView(true)
	var got []string
	for _, b := range e.Document().Blocks {
		if b.Type != document.Paragraph {
			t.Errorf("source view kept a %v block", b.Type)
		}
		got = append(got, b.Text())
	}
	want := []string{"```go", "x", "```", "---", "![a](b.png)"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("flattened lines mismatch (-want +got):\n%s", diff)
	}
	if e.Markdown() != md {
		t.Errorf("source view Markdown() = %q, want %q", e.Markdown(), md)
	}

	res := e.SetSourceView(false)
	if len(res.FoldFailures) != 0 {
		t.Errorf("fold failures: %+v", res.FoldFailures)
	}
	blocks := e.Document().Blocks
	if blocks[0].Type != document.CodeBlock || blocks[0].Text() != "x\n" || blocks[0].Language != "go" {
		t.Errorf("code block not restored: %+v", blocks[0])
	}
	if blocks[1].Type != document.HorizontalRule {
		t.Errorf("rule not restored: %v", blocks[1].Type)
	}
	if in := blocks[2].Inline; len(in) != 1 || in[0].Kind != document.Image {
		t.Errorf("image not restored: %+v", in)
	}
	if e.Markdown() != md {
		t.Errorf("Markdown() = %q, want %q", e.Markdown(), md)
	}
}

func TestSourceViewFoldFailure(t *testing.T) {
	e := load(t, "```go\nx\n```\n", Options{SourceView: true})
	// Join the closing fence line into the line before it, removing it.
	apply(t, e, Delete{From: 7, To: 11})

	res := e.SetSourceView(false)
	if len(res.FoldFailures) != 1 || res.FoldFailures[0].Kind != "code" {
		t.Fatalf("FoldFailures = %+v, want one code failure", res.FoldFailures)
	}
	var got []string
	for _, b := range e.Document().Blocks {
		got = append(got, b.Type.String()+":"+b.Text())
	}
	want := []string{"paragraph:```go", "paragraph:x"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("paragraphs not preserved (-want +got):\n%s", diff)
	}
	if got := e.Markdown(); got != "```go\nx\n" {
		t.Errorf("Markdown() = %q", got)
	}
}

func TestLoadInSourceViewFlattens(t *testing.T) {
	e := load(t, "```\ncode\n```\n", Options{SourceView: true})
	if n := len(e.Document().Blocks); n != 3 {
		t.Errorf("got %d blocks, want 3 flattened lines", n)
	}
}

func TestDecorationsFollowCursor(t *testing.T) {
	e := load(t, "**bold** x", Options{})

	e.Select(4, 4)
	if n := len(decor.Visible(e.Decorations())); n != 2 {
		t.Errorf("cursor inside: %d visible markers, want 2", n)
	}
	e.Select(10, 10)
	if n := len(decor.Visible(e.Decorations())); n != 0 {
		t.Errorf("cursor outside: %d visible markers, want 0", n)
	}
	e.Select(-5, 500)
	if got := e.Selection(); got != (Selection{Anchor: 0, Head: 10}) {
		t.Errorf("Select did not clamp: %+v", got)
	}
}

func TestRender(t *testing.T) {
	e := load(t, "**b** and [l](u)", Options{})
	e.Select(7, 7)
	content, _, links := e.Render()
	if got := content.String(); got != "b and l" {
		t.Errorf("rendered %q, want %q", got, "b and l")
	}
	if got := links.URLAt(6); got != "u" {
		t.Errorf("URLAt(6) = %q, want %q", got, "u")
	}
}

func TestSplitListItem(t *testing.T) {
	e := load(t, "- a", Options{})
	apply(t, e, Split{Pos: 1})
	list := e.Document().Blocks[0]
	if len(list.Children) != 2 {
		t.Fatalf("got %d items, want 2", len(list.Children))
	}
	if got := e.Markdown(); got != "- a\n-\n" {
		t.Errorf("Markdown() = %q", got)
	}
}

type recorder struct {
	origins []string
}

func (r *recorder) Committed(ev Event) {
	r.origins = append(r.origins, ev.Origin.String())
}

func TestObservers(t *testing.T) {
	e := New(Options{})
	rec := &recorder{}
	e.AddObserver(rec)

	e.Load("a")
	apply(t, e, Insert{Pos: 1, Text: "b"})
	e.Undo()
	e.SetSourceView(true)

	want := []string{"load", "user", "history", "transformer"}
	if diff := cmp.Diff(want, rec.origins); diff != "" {
		t.Errorf("notifications mismatch (-want +got):\n%s", diff)
	}
	if err := e.DelObserver(rec); err != nil {
		t.Errorf("DelObserver: %v", err)
	}
	if err := e.DelObserver(rec); err == nil {
		t.Errorf("DelObserver of a removed observer succeeded")
	}
}

func TestIncrementalMatchesFull(t *testing.T) {
	md := "# A\n\nsome *text*\n\n- item **b**\n\nlast"
	full := load(t, md, Options{})
	inc := load(t, md, Options{IncrementalDetect: true})

	edits := []func(d *document.Document) Step{
		func(d *document.Document) Step { return Insert{Pos: d.Size(), Text: " **tail**"} },
		func(*document.Document) Step { return Insert{Pos: 0, Text: "#"} },
		func(*document.Document) Step { return Split{Pos: 3} },
		func(*document.Document) Step { return Delete{From: 2, To: 8} },
		func(*document.Document) Step { return Insert{Pos: 0, Text: "`"} },
		func(d *document.Document) Step { return Insert{Pos: d.Size(), Text: "`"} },
	}
	for i, edit := range edits {
		for _, e := range []*Editor{full, inc} {
			if _, err := e.Apply(Batch{Steps: []Step{edit(e.Document())}}); err != nil {
				t.Fatalf("edit %d: %v", i, err)
			}
		}
		if diff := cmp.Diff(full.Document(), inc.Document()); diff != "" {
			t.Fatalf("edit %d: incremental detection diverged (-full +inc):\n%s", i, diff)
		}
	}
}

func TestTypedStrongEmphasis(t *testing.T) {
	e := load(t, "", Options{})
	for i, r := range "***x***" {
		apply(t, e, Insert{Pos: i, Text: string(r)})
	}
	if got, want := e.Markdown(), "***x***\n"; got != want {
		t.Fatalf("Markdown() = %q, want %q", got, want)
	}
	if n := len(e.Document().Blocks); n != 1 {
		t.Errorf("got %d blocks, want 1", n)
	}
	x := cellsOf(e, 0)[3]
	if x.R != 'x' || !x.Marks.Has(document.MarkStrong) || !x.Marks.Has(document.MarkEmphasis) {
		t.Errorf("cell 3 = %q %v, want strong and emphasis", x.R, x.Marks)
	}
}

func TestTypedRuleNeedsTrigger(t *testing.T) {
	tests := []struct {
		name  string
		steps []Step
	}{
		{"trailing space", []Step{Insert{Pos: 0, Text: "*** "}}},
		{"enter", []Step{Insert{Pos: 0, Text: "___"}, Split{Pos: 3}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := load(t, "", Options{})
			for _, s := range tt.steps {
				apply(t, e, s)
			}
			if b := e.Document().Blocks[0]; b.Type != document.HorizontalRule {
				t.Errorf("first block = %v %q, want horizontal rule", b.Type, b.Text())
			}
		})
	}
}

func TestTypingAfterSourceCodeBlock(t *testing.T) {
	e := load(t, "```go\nx := 1\n```", Options{})
	e.SetSourceView(true)
	// "```go" 0-5, "x := 1" 6-12, "```" 13-16.
	apply(t, e, Split{Pos: 16})
	apply(t, e, Insert{Pos: 17, Text: "**after**"})

	want := "```go\nx := 1\n```\n\n**after**\n"
	if got := e.Markdown(); got != want {
		t.Errorf("source view Markdown() = %q, want %q", got, want)
	}
	if after := e.Document().Blocks[3]; after.SourceGroup != "" {
		t.Errorf("typed paragraph joined group %q", after.SourceGroup)
	}

	res := e.SetSourceView(false)
	if len(res.FoldFailures) != 0 {
		t.Fatalf("fold failures: %+v", res.FoldFailures)
	}
	blocks := e.Document().Blocks
	if len(blocks) != 2 || blocks[0].Type != document.CodeBlock || blocks[1].Type != document.Paragraph {
		t.Fatalf("blocks = %v, want code block then paragraph", blocks)
	}
	if got := e.Markdown(); got != want {
		t.Errorf("rendered Markdown() = %q, want %q", got, want)
	}
	if !cellsOf(e, 1)[2].Marks.Has(document.MarkStrong) {
		t.Errorf("text after the code block not annotated")
	}
}

func TestSeventhHashDemotes(t *testing.T) {
	e := load(t, "###### T", Options{})
	apply(t, e, Insert{Pos: 0, Text: "#"})

	b := e.Document().Blocks[0]
	if b.Type != document.Paragraph {
		t.Errorf("block = %v level %d, want paragraph", b.Type, b.Level)
	}
	reloaded := load(t, e.Markdown(), Options{})
	if got := reloaded.Document().Blocks[0].Type; got != b.Type {
		t.Errorf("reloaded as %v, edited as %v", got, b.Type)
	}
}
