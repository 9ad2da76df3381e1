package editor

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/rjkroege/livemark/document"
	"github.com/rjkroege/livemark/source"
)

var (
	// ErrEmptyBatch is returned for a batch without steps.
	ErrEmptyBatch = errors.New("editor: empty batch")
	// ErrPositionOutOfRange is returned when a step addresses a position
	// outside the document. The batch is not applied.
	ErrPositionOutOfRange = errors.New("editor: position out of range")
	// ErrInvalidLevel is returned by SetHeading for levels outside 0..6.
	ErrInvalidLevel = errors.New("editor: heading level out of range")
)

// Origin records who produced a change.
type Origin int

const (
	OriginUser Origin = iota
	OriginCommand
	OriginLoad
	OriginDetector
	OriginFixer
	OriginHeadings
	OriginInputRules
	OriginTransformer
	OriginHistory
)

var originNames = [...]string{
	OriginUser:        "user",
	OriginCommand:     "command",
	OriginLoad:        "load",
	OriginDetector:    "detector",
	OriginFixer:       "fixer",
	OriginHeadings:    "headings",
	OriginInputRules:  "input-rules",
	OriginTransformer: "transformer",
	OriginHistory:     "history",
}

func (o Origin) String() string {
	if o >= 0 && int(o) < len(originNames) {
		return originNames[o]
	}
	return "unknown"
}

// Step is one primitive edit in a Batch.
type Step interface {
	apply(d *document.Document) (document.EditRecord, error)
	// caret is where the cursor lands after the step.
	caret() int
}

// Insert inserts Text at Pos.
type Insert struct {
	Pos  int
	Text string
}

// Delete removes positions [From, To). A range crossing textblocks joins
// them.
type Delete struct {
	From, To int
}

// Split breaks the textblock at Pos, as Enter does.
type Split struct {
	Pos int
}

func (s Insert) apply(d *document.Document) (document.EditRecord, error) {
	return d.InsertText(s.Pos, s.Text)
}

func (s Insert) caret() int { return s.Pos + utf8.RuneCountInString(s.Text) }

func (s Delete) apply(d *document.Document) (document.EditRecord, error) {
	rec, _, err := d.DeleteRange(s.From, s.To)
	return rec, err
}

func (s Delete) caret() int { return s.From }

func (s Split) apply(d *document.Document) (document.EditRecord, error) {
	rec, _, err := d.SplitBlock(s.Pos)
	return rec, err
}

func (s Split) caret() int { return s.Pos + 1 }

// Batch is an atomic group of steps. Either every step applies or the
// document is left untouched.
type Batch struct {
	Origin Origin
	Steps  []Step
}

// PassReport records one post-commit pass that changed the document.
type PassReport struct {
	Pass      string
	Iteration int
	Changed   int
}

// Result describes what a committed batch or mode change did.
type Result struct {
	Changed   bool
	Passes    []PassReport
	Converged bool
	// FoldFailures lists source-view groups that could not be folded
	// back and were left as literal paragraphs.
	FoldFailures []source.Failure
}

func stepError(i int, s Step, err error) error {
	if errors.Is(err, document.ErrOutOfRange) || errors.Is(err, document.ErrInvalidRange) {
		return fmt.Errorf("%w: step %d %+v", ErrPositionOutOfRange, i, s)
	}
	return fmt.Errorf("editor: step %d %+v: %w", i, s, err)
}
