package editor

import (
	"github.com/rjkroege/livemark/document"
	"github.com/rjkroege/livemark/source"
	"github.com/rjkroege/livemark/syntax"
)

// settle runs the post-commit passes over doc until an iteration changes
// nothing or the pass budget runs out. dirty restricts the Detector in
// the first iteration; later iterations rescan everything the previous
// one may have disturbed. active is the textblock holding the cursor, if
// known.
func (e *Editor) settle(doc *document.Document, dirty func(int) bool, active *document.Block, origin Origin, res *Result) {
	for iter := 1; iter <= e.opts.MaxPasses; iter++ {
		changed := 0
		record := func(pass string, n int) {
			if n == 0 {
				return
			}
			changed += n
			res.Passes = append(res.Passes, PassReport{Pass: pass, Iteration: iter, Changed: n})
			e.log.Debug("editor.pass", "pass", pass, "origin", origin.String(), "iteration", iter, "changed", n)
		}

		if e.sourceView {
			if source.NeedsFlatten(doc) && e.tr.Flatten(doc) {
				record("transformer", 1)
			}
		} else {
			record("input-rules", syntax.InputRules(doc, active))
		}
		opts := syntax.Options{SourceView: e.sourceView}
		if iter == 1 {
			opts.Dirty = dirty
		}
		record("detector", e.det.Run(doc, opts))
		record("fixer", e.fix.Run(doc))
		record("headings", syntax.HeadingSync(doc))

		if changed == 0 {
			res.Converged = true
			return
		}
		res.Changed = true
	}
	e.log.Warn("editor.settle.unconverged", "origin", origin.String(), "max_passes", e.opts.MaxPasses)
}
