package annotate

import (
	"github.com/gogpu/annotate/geom"
	"github.com/gogpu/annotate/history"
	"github.com/gogpu/annotate/traits"
)

// SelectItem selects the topmost visible item under rect, committing
// pending edits of the previous selection first. It reports whether an
// item was selected.
func (d *Document) SelectItem(rect geom.Rect) bool {
	if d.create != nil {
		d.log.Warn("select during creation ignored")
		return false
	}
	d.commitSelection()
	h, ok := d.hist.ItemAt(rect)
	if !ok || !d.editor.SetSelectedItem(h) {
		return false
	}
	d.markItem(h)
	return true
}

// Selected returns the selected item.
func (d *Document) Selected() (history.Handle, bool) {
	return d.editor.Selected()
}

// DeleteSelectedItem hides the selected item by pushing a deletion as its
// child, so Undo brings it back. An unfinished invalid item is simply
// discarded.
func (d *Document) DeleteSelectedItem() bool {
	if d.create != nil {
		d.log.Warn("delete during creation ignored")
		return false
	}
	sel, ok := d.editor.Selected()
	if !ok {
		return false
	}
	d.markItem(sel)
	d.editor.Reset()

	if sel == d.hist.Current() && !d.hist.IsValid(sel) {
		_, redoChanged := d.hist.Pop()
		d.historyChanged(history.Changes{Undo: true, Redo: redoChanged})
		return true
	}
	_, ch := d.hist.Push(&traits.Traits{Delete: &traits.Delete{}}, sel)
	d.invalidateEffects()
	d.historyChanged(ch)
	return true
}

// CancelSelection drops the selection and any creation in progress. If
// the dropped item is the newest one and is invalid, it is discarded. It
// reports whether there was a selection.
func (d *Document) CancelSelection() bool {
	d.create = nil
	sel, ok := d.editor.Selected()
	if !ok {
		return false
	}
	d.deselect()
	if sel == d.hist.Current() && !d.hist.IsValid(sel) {
		d.markItem(sel)
		_, redoChanged := d.hist.Pop()
		d.historyChanged(history.Changes{Undo: true, Redo: redoChanged})
	}
	return true
}

// commitSelection commits pending edits and drops the selection.
func (d *Document) commitSelection() {
	if d.editor.Modified() {
		d.editor.CommitChanges()
	}
	d.deselect()
}

// deselect drops the selection and its uncommitted edits.
func (d *Document) deselect() {
	sel, ok := d.editor.Selected()
	if !ok {
		return
	}
	if d.editor.Modified() {
		d.markItem(sel)
	}
	d.editor.Reset()
}
