// Package dirty tracks which parts of a canvas need repainting.
package dirty

import "github.com/gogpu/annotate/geom"

// Region is an accumulated set of rects waiting to be repainted.
//
// Overlapping or touching rects are merged as they are marked, so the
// region stays a short list of disjoint rects. Region is not safe for
// concurrent use.
type Region struct {
	rects []geom.Rect
}

// MarkRect adds r to the region. Empty rects are ignored.
func (d *Region) MarkRect(r geom.Rect) {
	r = r.Normalized()
	if r.IsEmpty() {
		return
	}
	// Merging can make the grown rect touch rects it missed before, so
	// repeat until it absorbs nothing new.
	for merged := true; merged; {
		merged = false
		kept := d.rects[:0]
		for _, o := range d.rects {
			if touches(r, o) {
				r = r.Union(o)
				merged = true
				continue
			}
			kept = append(kept, o)
		}
		d.rects = kept
	}
	d.rects = append(d.rects, r)
}

// MarkAll replaces the region with the whole canvas.
func (d *Region) MarkAll(canvas geom.Rect) {
	d.Clear()
	d.MarkRect(canvas)
}

// Clear empties the region.
func (d *Region) Clear() {
	d.rects = d.rects[:0]
}

// IsEmpty reports whether nothing is marked.
func (d *Region) IsEmpty() bool {
	return len(d.rects) == 0
}

// Intersects reports whether r overlaps any marked area.
func (d *Region) Intersects(r geom.Rect) bool {
	for _, o := range d.rects {
		if o.Intersects(r) {
			return true
		}
	}
	return false
}

// Bounds returns the bounding rect of the region, or the zero Rect.
func (d *Region) Bounds() geom.Rect {
	var b geom.Rect
	for _, o := range d.rects {
		b = b.Union(o)
	}
	return b
}

// Rects returns a copy of the marked rects.
func (d *Region) Rects() []geom.Rect {
	return append([]geom.Rect(nil), d.rects...)
}

// ForEach calls fn for each marked rect.
func (d *Region) ForEach(fn func(r geom.Rect)) {
	if fn == nil {
		return
	}
	for _, o := range d.rects {
		fn(o)
	}
}

// touches reports whether a and b overlap or share an edge.
func touches(a, b geom.Rect) bool {
	return a.Min.X <= b.Max.X && b.Min.X <= a.Max.X &&
		a.Min.Y <= b.Max.Y && b.Min.Y <= a.Max.Y
}
