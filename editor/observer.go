package editor

import (
	"errors"

	"github.com/rjkroege/livemark/document"
)

// Event describes a committed state.
type Event struct {
	Origin     Origin
	Result     Result
	Doc        *document.Document
	SourceView bool
	Selection  Selection
}

// Observer is told about every committed state: batches, mode changes,
// loads and history moves.
type Observer interface {
	Committed(ev Event)
}

// AddObserver registers o.
func (e *Editor) AddObserver(o Observer) {
	e.observers = append(e.observers, o)
}

// DelObserver removes o.
func (e *Editor) DelObserver(o Observer) error {
	for i, ob := range e.observers {
		if ob == o {
			e.observers = append(e.observers[:i:i], e.observers[i+1:]...)
			return nil
		}
	}
	return errors.New("editor: can't find observer in DelObserver")
}

func (e *Editor) notify(origin Origin, res Result) {
	ev := Event{Origin: origin, Result: res, Doc: e.doc, SourceView: e.sourceView, Selection: e.sel}
	for _, o := range e.observers {
		o.Committed(ev)
	}
}
