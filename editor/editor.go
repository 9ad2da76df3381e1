// Package editor owns the live document of one open file. Every change
// arrives as a Batch; once it commits, the post-commit passes (input
// rules, Detector, Fixer, heading sync and, in source view, the
// structural transformer) run until the document stops changing.
package editor

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/rjkroege/livemark/catalog"
	"github.com/rjkroege/livemark/decor"
	"github.com/rjkroege/livemark/document"
	"github.com/rjkroege/livemark/internal/logging"
	"github.com/rjkroege/livemark/markdown"
	"github.com/rjkroege/livemark/rich"
	"github.com/rjkroege/livemark/source"
	"github.com/rjkroege/livemark/syntax"
)

// DefaultMaxPasses bounds the post-commit loop when Options leaves it 0.
const DefaultMaxPasses = 4

// Options configures an Editor.
type Options struct {
	SourceView bool
	// MaxPasses bounds the post-commit iterations per batch.
	MaxPasses int
	// IncrementalDetect limits the Detector to the textblocks touched by
	// a single-step batch. The Fixer still scans everything.
	IncrementalDetect bool
	// DisabledSyntax drops catalog rules producing these mark types.
	DisabledSyntax []document.MarkType
	// HistoryLimit caps the undo stack; 0 is unbounded.
	HistoryLimit int
	// BasePath is the directory relative image sources resolve against.
	BasePath string
	Logger   logging.Logger
	// NewID generates source-view group ids.
	NewID func() string
}

// Selection is a cursor (Anchor == Head) or a range in global positions.
type Selection struct {
	Anchor, Head int
}

// Range returns the selection ordered.
func (s Selection) Range() (from, to int) {
	if s.Anchor <= s.Head {
		return s.Anchor, s.Head
	}
	return s.Head, s.Anchor
}

// Editor is not safe for concurrent use.
type Editor struct {
	opts       Options
	cat        *catalog.Catalog
	parser     *markdown.Parser
	det        *syntax.Detector
	fix        *syntax.Fixer
	tr         *source.Transformer
	log        logging.Logger
	doc        *document.Document
	sourceView bool
	sel        Selection
	hist       *history
	observers  []Observer
}

// New returns an editor holding an empty document.
func New(opts Options) *Editor {
	if opts.MaxPasses <= 0 {
		opts.MaxPasses = DefaultMaxPasses
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOp()
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}
	cat := catalog.Default()
	if len(opts.DisabledSyntax) > 0 {
		cat = cat.Without(opts.DisabledSyntax...)
	}
	e := &Editor{
		opts:       opts,
		cat:        cat,
		parser:     markdown.NewParser(cat),
		det:        syntax.NewDetector(cat),
		fix:        syntax.NewFixer(cat),
		tr:         &source.Transformer{NewID: opts.NewID},
		log:        opts.Logger,
		sourceView: opts.SourceView,
		hist:       newHistory(opts.HistoryLimit),
	}
	e.doc = ensureTextblock(document.New())
	return e
}

// Load replaces the document with the parse of md and clears history.
func (e *Editor) Load(md string) Result {
	doc := ensureTextblock(e.parser.Parse(md))
	var res Result
	if e.sourceView && e.tr.Flatten(doc) {
		res.Passes = append(res.Passes, PassReport{Pass: "transformer", Changed: 1})
	}
	e.settle(doc, nil, nil, OriginLoad, &res)
	res.Changed = true
	e.doc = doc
	e.sel = Selection{}
	e.hist.reset()
	e.notify(OriginLoad, res)
	return res
}

// Markdown serializes the current document.
func (e *Editor) Markdown() string {
	return markdown.Serialize(e.doc)
}

// Document returns the committed document. Callers must not modify it.
func (e *Editor) Document() *document.Document {
	return e.doc
}

// Catalog returns the pattern catalog in effect.
func (e *Editor) Catalog() *catalog.Catalog {
	return e.cat
}

// SourceView reports the mode flag.
func (e *Editor) SourceView() bool {
	return e.sourceView
}

// SetSourceView switches mode, flattening or folding the whole document
// in one substitution. Fold failures leave literal paragraphs in place
// and are listed in the result.
func (e *Editor) SetSourceView(on bool) Result {
	if on == e.sourceView {
		return Result{Converged: true}
	}
	before := e.snapshot()
	work := e.doc.Clone()
	var res Result
	if on {
		if e.tr.Flatten(work) {
			res.Changed = true
			res.Passes = append(res.Passes, PassReport{Pass: "flatten", Changed: 1})
		}
	} else {
		rep := e.tr.Fold(work)
		if rep.Folded > 0 {
			res.Changed = true
			res.Passes = append(res.Passes, PassReport{Pass: "fold", Changed: rep.Folded})
		}
		res.FoldFailures = rep.Failed
		for _, f := range rep.Failed {
			e.log.Warn("editor.fold.failed", "kind", f.Kind, "group", f.Group, "text", f.Text)
		}
	}
	e.sourceView = on
	e.settle(work, nil, nil, OriginTransformer, &res)
	e.commit(before, work)
	e.notify(OriginTransformer, res)
	return res
}

// Select sets the selection, clamped to the document.
func (e *Editor) Select(anchor, head int) {
	e.sel = Selection{Anchor: e.clamp(anchor), Head: e.clamp(head)}
}

// Selection returns the current selection.
func (e *Editor) Selection() Selection {
	return e.sel
}

// Decorations computes marker visibility for the selection head.
func (e *Editor) Decorations() []decor.Decoration {
	return decor.Compute(e.doc, e.cat, e.sel.Head, e.sourceView)
}

// Render projects the document for display with the editor's base path.
func (e *Editor) Render() (rich.Content, *rich.SourceMap, *rich.LinkMap) {
	return decor.Render(e.doc, e.Decorations(), decor.RenderOptions{BasePath: e.opts.BasePath})
}

// Apply commits b. Steps run in order against a copy of the document; if
// any fails, nothing changes and the error is returned. The cursor ends
// up after the last step.
func (e *Editor) Apply(b Batch) (Result, error) {
	if len(b.Steps) == 0 {
		return Result{}, ErrEmptyBatch
	}
	before := e.snapshot()
	work := e.doc.Clone()
	index := work.Index()
	edits := make([]document.EditRecord, 0, len(b.Steps))
	for i, s := range b.Steps {
		rec, err := s.apply(work)
		if err != nil {
			return Result{}, stepError(i, s, err)
		}
		edits = append(edits, rec)
	}

	var dirty func(int) bool
	if e.opts.IncrementalDetect && len(edits) == 1 {
		dirty = dirtyBlocks(index, work, edits)
	}
	last := b.Steps[len(b.Steps)-1].caret()
	var active *document.Block
	if ref, _, ok := work.Resolve(last); ok {
		active = ref.Block
	}
	res := Result{Changed: true}
	e.settle(work, dirty, active, b.Origin, &res)
	e.commit(before, work)
	e.sel = Selection{Anchor: e.clamp(last), Head: e.clamp(last)}
	e.notify(b.Origin, res)
	return res, nil
}

// Undo reverts the last committed batch. It reports false when there is
// nothing to undo.
func (e *Editor) Undo() bool {
	a := e.hist.undo()
	if a == nil {
		return false
	}
	e.restore(a.before)
	return true
}

// Redo repeats the last undone batch.
func (e *Editor) Redo() bool {
	a := e.hist.redo()
	if a == nil {
		return false
	}
	e.restore(a.after)
	return true
}

// Clean marks the current state as saved.
func (e *Editor) Clean() {
	e.hist.clean()
}

// Dirty reports whether the document changed since Load or Clean.
func (e *Editor) Dirty() bool {
	return e.hist.dirty()
}

func (e *Editor) snapshot() snapshot {
	return snapshot{doc: e.doc, sourceView: e.sourceView, sel: e.sel}
}

func (e *Editor) commit(before snapshot, work *document.Document) {
	e.doc = ensureTextblock(work)
	e.sel = Selection{Anchor: e.clamp(e.sel.Anchor), Head: e.clamp(e.sel.Head)}
	e.hist.push(&action{before: before, after: e.snapshot(), time: time.Now()})
}

func (e *Editor) restore(s snapshot) {
	e.doc = s.doc
	e.sourceView = s.sourceView
	e.sel = s.sel
	e.notify(OriginHistory, Result{Changed: true, Converged: true})
}

func (e *Editor) clamp(pos int) int {
	if max := e.doc.Size(); pos > max {
		pos = max
	}
	if pos < 0 {
		pos = 0
	}
	return pos
}

// dirtyBlocks maps the edits of a batch to the textblocks of the edited
// document that need a rescan. Nil means all of them.
func dirtyBlocks(before *document.BlockIndex, after *document.Document, edits []document.EditRecord) func(int) bool {
	lo, hi := before.AffectedRange(edits)
	if lo < 0 {
		return nil
	}
	if grow := len(after.Textblocks()) - len(before.Blocks); grow > 0 {
		hi += grow
	}
	return func(i int) bool { return i >= lo && i < hi }
}

// ensureTextblock gives an empty document one empty paragraph so that it
// has a position to edit.
func ensureTextblock(d *document.Document) *document.Document {
	if len(d.Textblocks()) == 0 {
		d.Blocks = append(d.Blocks, &document.Block{Type: document.Paragraph})
	}
	return d
}

func (e *Editor) String() string {
	return fmt.Sprintf("editor{blocks: %d, size: %d, source: %v}", len(e.doc.Blocks), e.doc.Size(), e.sourceView)
}
