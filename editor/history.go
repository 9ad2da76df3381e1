package editor

import (
	"time"

	"github.com/rjkroege/livemark/document"
)

// Undo and redo work with actions: one action per committed batch, holding
// the editor state on either side of it. Committed documents are never
// mutated in place, so snapshots share them without copying.

type snapshot struct {
	doc        *document.Document
	sourceView bool
	sel        Selection
}

type action struct {
	before, after snapshot
	time          time.Time // when the action was committed
}

type history struct {
	actions []*action
	head    int // actions[:head] are undoable
	saved   *action
	limit   int
}

func newHistory(limit int) *history {
	return &history{limit: limit}
}

// push records a, discarding anything that was undone, and drops the
// oldest actions beyond the limit.
func (h *history) push(a *action) {
	h.actions = append(h.actions[:h.head], a)
	if h.limit > 0 && len(h.actions) > h.limit {
		h.actions = append([]*action(nil), h.actions[len(h.actions)-h.limit:]...)
	}
	h.head = len(h.actions)
}

func (h *history) undo() *action {
	if h.head == 0 {
		return nil
	}
	h.head--
	return h.actions[h.head]
}

func (h *history) redo() *action {
	if h.head > len(h.actions)-1 {
		return nil
	}
	h.head++
	return h.actions[h.head-1]
}

// clean marks the current state as saved.
func (h *history) clean() {
	if h.head > 0 {
		h.saved = h.actions[h.head-1]
	} else {
		h.saved = nil
	}
}

// dirty reports whether the current state differs from the saved one.
func (h *history) dirty() bool {
	return h.head == 0 && h.saved != nil ||
		h.head > 0 && h.saved != h.actions[h.head-1]
}

func (h *history) reset() {
	h.actions = nil
	h.head = 0
	h.saved = nil
}
