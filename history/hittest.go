package history

import (
	"github.com/gogpu/annotate/geom"
	"github.com/gogpu/annotate/traits"
)

// ItemAt returns the most recent visible item under the centre of rect.
//
// The first pass needs the centre to lie inside an item's hit-test path.
// When rect has an area, a second pass accepts any item whose hit-test
// path touches the ellipse inscribed in rect, which forgives imprecise
// pointers on thin shapes.
func (h *History) ItemAt(rect geom.Rect) (Handle, bool) {
	center := rect.Normalized().Center()
	for i := len(h.undo) - 1; i >= 0; i-- {
		hd := h.undo[i]
		if !h.ItemVisible(hd) {
			continue
		}
		if h.mousePath(hd).Contains(center) {
			return hd, true
		}
	}

	if rect.Normalized().IsEmpty() {
		return Handle{}, false
	}
	ellipse := geom.NewPath()
	ellipse.Ellipse(rect)
	for i := len(h.undo) - 1; i >= 0; i-- {
		hd := h.undo[i]
		if !h.ItemVisible(hd) {
			continue
		}
		if h.mousePath(hd).Intersects(ellipse) {
			return hd, true
		}
	}
	return Handle{}, false
}

// mousePath returns the cached hit-test path of hd, deriving an uncached
// one for items still being created.
func (h *History) mousePath(hd Handle) *geom.Path {
	t := h.Traits(hd)
	if mp := t.MousePath(); !mp.IsEmpty() {
		return mp
	}
	return traits.MousePath(t)
}
