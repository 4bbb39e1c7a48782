// Package history keeps the undo and redo sequences of annotation items.
//
// Items live in an arena and are addressed by Handle. An edit never
// changes an item in place: it pushes a new item whose parent is the
// edited one, forming a replace chain. Only the newest item of a chain
// that is still on the undo sequence is visible, so undoing the edit
// brings the parent back.
//
// An item is released when it leaves both sequences. Releasing bumps the
// slot generation, so every outstanding Handle to it stops being Alive
// and any child whose parent it was becomes invalid.
package history

import (
	"github.com/gogpu/annotate/geom"
	"github.com/gogpu/annotate/traits"
)

// Handle addresses an item. The zero Handle addresses nothing.
type Handle struct {
	index uint32
	gen   uint32
}

// IsZero reports whether h is the zero Handle.
func (h Handle) IsZero() bool { return h == Handle{} }

type list uint8

const (
	released list = iota
	undoList
	redoList
)

type slot struct {
	gen       uint32
	list      list
	traits    *traits.Traits
	parent    Handle
	hasParent bool
	child     Handle
}

// Changes reports which sequences an operation modified.
type Changes struct {
	Undo, Redo bool
}

// History owns the items and both sequences. The zero value is empty and
// ready to use. History is not safe for concurrent use.
type History struct {
	slots []slot
	free  []uint32
	undo  []Handle
	// redo is kept in reverse chronological order so undo and redo both
	// work on slice tails.
	redo []Handle
}

// New returns an empty History.
func New() *History {
	return &History{}
}

func (h *History) slot(hd Handle) *slot {
	if hd.gen == 0 || int(hd.index) >= len(h.slots) {
		return nil
	}
	s := &h.slots[hd.index]
	if s.gen != hd.gen || s.list == released {
		return nil
	}
	return s
}

func (h *History) alloc(t *traits.Traits) Handle {
	if n := len(h.free); n > 0 {
		idx := h.free[n-1]
		h.free = h.free[:n-1]
		s := &h.slots[idx]
		*s = slot{gen: s.gen, traits: t}
		return Handle{index: idx, gen: s.gen}
	}
	h.slots = append(h.slots, slot{gen: 1, traits: t})
	return Handle{index: uint32(len(h.slots) - 1), gen: 1}
}

// release frees the slot of hd. Its traits are returned to the caller.
func (h *History) release(hd Handle) *traits.Traits {
	s := h.slot(hd)
	if s == nil {
		return nil
	}
	t := s.traits
	gen := s.gen + 1
	if gen == 0 {
		gen = 1
	}
	*s = slot{gen: gen}
	h.free = append(h.free, hd.index)
	return t
}

// Alive reports whether hd still addresses an item on either sequence.
func (h *History) Alive(hd Handle) bool {
	return h.slot(hd) != nil
}

// Traits returns the attributes of hd, or nil if hd is not alive. Items
// on the history are treated as immutable; only the document mutates the
// item it is currently creating.
func (h *History) Traits(hd Handle) *traits.Traits {
	if s := h.slot(hd); s != nil {
		return s.traits
	}
	return nil
}

// Parent returns the parent of hd if it is still alive.
func (h *History) Parent(hd Handle) (Handle, bool) {
	s := h.slot(hd)
	if s == nil || !s.hasParent || !h.Alive(s.parent) {
		return Handle{}, false
	}
	return s.parent, true
}

// Child returns the child of hd if it is still alive.
func (h *History) Child(hd Handle) (Handle, bool) {
	s := h.slot(hd)
	if s == nil || !h.Alive(s.child) {
		return Handle{}, false
	}
	return s.child, true
}

// InUndo reports whether hd is on the undo sequence.
func (h *History) InUndo(hd Handle) bool {
	s := h.slot(hd)
	return s != nil && s.list == undoList
}

// IsValid reports whether hd is alive, its traits are valid and, if it was
// linked to a parent, that parent is still alive.
func (h *History) IsValid(hd Handle) bool {
	s := h.slot(hd)
	if s == nil || !s.traits.IsValid() {
		return false
	}
	return !s.hasParent || h.Alive(s.parent)
}

// ItemVisible reports whether hd paints: it is on the undo sequence, its
// traits are visible and no child of it is on the undo sequence.
func (h *History) ItemVisible(hd Handle) bool {
	s := h.slot(hd)
	if s == nil || s.list != undoList || !s.traits.IsVisible() {
		return false
	}
	return !h.InUndo(s.child)
}

// RenderRect returns the area hd paints over. Items that paint nothing
// themselves, such as deletions, cover their parent's area.
func (h *History) RenderRect(hd Handle) geom.Rect {
	s := h.slot(hd)
	if s == nil {
		return geom.Rect{}
	}
	r := s.traits.VisualRect()
	if r.IsEmpty() {
		if parent, ok := h.Parent(hd); ok {
			return h.RenderRect(parent)
		}
	}
	return r
}

// Current returns the undo tail, or the zero Handle.
func (h *History) Current() Handle {
	if n := len(h.undo); n > 0 {
		return h.undo[n-1]
	}
	return Handle{}
}

// UndoList returns the undo sequence in chronological order.
func (h *History) UndoList() []Handle {
	return append([]Handle(nil), h.undo...)
}

// RedoList returns the redo sequence in reverse chronological order: the
// next item to redo is last.
func (h *History) RedoList() []Handle {
	return append([]Handle(nil), h.redo...)
}

// UndoLen returns the length of the undo sequence.
func (h *History) UndoLen() int { return len(h.undo) }

// RedoLen returns the length of the redo sequence.
func (h *History) RedoLen() int { return len(h.redo) }

// FilteredLists returns the items of both sequences for which keep
// returns true, in sequence order.
func (h *History) FilteredLists(keep func(Handle) bool) (undo, redo []Handle) {
	for _, hd := range h.undo {
		if keep(hd) {
			undo = append(undo, hd)
		}
	}
	for _, hd := range h.redo {
		if keep(hd) {
			redo = append(redo, hd)
		}
	}
	return undo, redo
}

// Push appends t to the undo sequence and clears the redo sequence. An
// invalid undo tail is discarded first. A non-zero parent is linked as
// the new item's parent, and the new item as the parent's child.
func (h *History) Push(t *traits.Traits, parent Handle) (Handle, Changes) {
	if t == nil {
		return Handle{}, Changes{}
	}
	if cur := h.Current(); !cur.IsZero() && !h.IsValid(cur) {
		h.undo = h.undo[:len(h.undo)-1]
		h.release(cur)
	}

	hd := h.alloc(t)
	s := &h.slots[hd.index]
	s.list = undoList
	if !parent.IsZero() {
		s.parent, s.hasParent = parent, true
		if ps := h.slot(parent); ps != nil {
			ps.child = hd
		}
	}
	h.undo = append(h.undo, hd)
	return hd, Changes{Undo: true, Redo: h.ClearRedo()}
}

// Pop removes the undo tail permanently and returns its traits. Redo items
// that became invalid as a result are discarded too; redoChanged reports
// whether any were.
func (h *History) Pop() (t *traits.Traits, redoChanged bool) {
	n := len(h.undo)
	if n == 0 {
		return nil, false
	}
	hd := h.undo[n-1]
	h.undo = h.undo[:n-1]
	t = h.release(hd)
	return t, h.eraseInvalidRedo()
}

// eraseInvalidRedo drops invalid redo items in chronological order, so a
// released item invalidates its descendants within the same pass.
func (h *History) eraseInvalidRedo() bool {
	changed := false
	for i := len(h.redo) - 1; i >= 0; i-- {
		hd := h.redo[i]
		if h.IsValid(hd) {
			continue
		}
		h.redo = append(h.redo[:i], h.redo[i+1:]...)
		h.release(hd)
		changed = true
	}
	return changed
}

// Undo moves the undo tail to the redo sequence.
func (h *History) Undo() bool {
	n := len(h.undo)
	if n == 0 {
		return false
	}
	hd := h.undo[n-1]
	h.undo = h.undo[:n-1]
	h.redo = append(h.redo, hd)
	h.slots[hd.index].list = redoList
	return true
}

// Redo moves the next redo item back to the undo sequence.
func (h *History) Redo() bool {
	n := len(h.redo)
	if n == 0 {
		return false
	}
	hd := h.redo[n-1]
	h.redo = h.redo[:n-1]
	h.undo = append(h.undo, hd)
	h.slots[hd.index].list = undoList
	return true
}

// ClearRedo releases every redo item. It reports whether any existed.
func (h *History) ClearRedo() bool {
	if len(h.redo) == 0 {
		return false
	}
	for _, hd := range h.redo {
		h.release(hd)
	}
	h.redo = h.redo[:0]
	return true
}

// ClearLists releases every item.
func (h *History) ClearLists() Changes {
	c := Changes{Undo: len(h.undo) > 0}
	for _, hd := range h.undo {
		h.release(hd)
	}
	h.undo = h.undo[:0]
	c.Redo = h.ClearRedo()
	return c
}
