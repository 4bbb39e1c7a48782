package geom

import (
	"image"
	"math"

	"github.com/gogpu/gg"
)

// Rect is an axis-aligned rectangle given by two corners. It shares gg.Rect's
// layout, so the two convert freely.
//
// Min is the top-left corner and Max the bottom-right corner of a
// normalized rect. A rect under construction may have Max above or left of
// Min; Width and Height are then negative and Normalized swaps the corners.
type Rect gg.Rect

// NewRect returns the rect with top-left (x, y) and size (w, h).
func NewRect(x, y, w, h float64) Rect {
	return Rect{Min: Pt(x, y), Max: Pt(x+w, y+h)}
}

// RectFromPoints returns the rect spanning from a to b without normalizing.
func RectFromPoints(a, b Point) Rect {
	return Rect{Min: a, Max: b}
}

// PointRect returns a zero-sized rect located at p.
func PointRect(p Point) Rect {
	return Rect{Min: p, Max: p}
}

// Width returns the signed width.
func (r Rect) Width() float64 { return r.Max.X - r.Min.X }

// Height returns the signed height.
func (r Rect) Height() float64 { return r.Max.Y - r.Min.Y }

// Size returns the width and height as a vector.
func (r Rect) Size() Point { return r.Max.Sub(r.Min) }

// IsEmpty reports whether the rect encloses no area.
// Rects with negative width or height are empty.
func (r Rect) IsEmpty() bool {
	return !(r.Width() > 0 && r.Height() > 0)
}

// IsNull reports whether both width and height are zero.
func (r Rect) IsNull() bool {
	return r.Width() == 0 && r.Height() == 0
}

// Normalized returns the rect with non-negative width and height.
func (r Rect) Normalized() Rect {
	return Rect{
		Min: Pt(math.Min(r.Min.X, r.Max.X), math.Min(r.Min.Y, r.Max.Y)),
		Max: Pt(math.Max(r.Min.X, r.Max.X), math.Max(r.Min.Y, r.Max.Y)),
	}
}

// Union returns the bounding rect of r and o.
// A null rect does not contribute, so a degenerate line still does.
func (r Rect) Union(o Rect) Rect {
	if r.IsNull() {
		return o.Normalized()
	}
	if o.IsNull() {
		return r.Normalized()
	}
	a, b := r.Normalized(), o.Normalized()
	return Rect{
		Min: Pt(math.Min(a.Min.X, b.Min.X), math.Min(a.Min.Y, b.Min.Y)),
		Max: Pt(math.Max(a.Max.X, b.Max.X), math.Max(a.Max.Y, b.Max.Y)),
	}
}

// Intersect returns the largest rect contained in both r and o,
// or the zero Rect when they do not overlap.
func (r Rect) Intersect(o Rect) Rect {
	a, b := r.Normalized(), o.Normalized()
	out := Rect{
		Min: Pt(math.Max(a.Min.X, b.Min.X), math.Max(a.Min.Y, b.Min.Y)),
		Max: Pt(math.Min(a.Max.X, b.Max.X), math.Min(a.Max.Y, b.Max.Y)),
	}
	if out.IsEmpty() {
		return Rect{}
	}
	return out
}

// Intersects reports whether r and o share a region of non-zero area.
func (r Rect) Intersects(o Rect) bool {
	return !r.Intersect(o).IsEmpty()
}

// ContainsPoint reports whether p lies inside r or on its edges.
func (r Rect) ContainsPoint(p Point) bool {
	n := r.Normalized()
	return p.X >= n.Min.X && p.X <= n.Max.X && p.Y >= n.Min.Y && p.Y <= n.Max.Y
}

// Contains reports whether o lies entirely inside r.
func (r Rect) Contains(o Rect) bool {
	n := o.Normalized()
	return r.ContainsPoint(n.Min) && r.ContainsPoint(n.Max)
}

// Center returns the center point.
func (r Rect) Center() Point {
	return r.Min.Lerp(r.Max, 0.5)
}

// TopRight returns the top-right corner.
func (r Rect) TopRight() Point { return Pt(r.Max.X, r.Min.Y) }

// BottomLeft returns the bottom-left corner.
func (r Rect) BottomLeft() Point { return Pt(r.Min.X, r.Max.Y) }

// MoveCenter returns r moved so that its center is c. The size is unchanged.
func (r Rect) MoveCenter(c Point) Rect {
	return r.Translated(c.Sub(r.Center()))
}

// MoveTo returns r moved so that Min is at p. The size is unchanged.
func (r Rect) MoveTo(p Point) Rect {
	return r.Translated(p.Sub(r.Min))
}

// Translated returns r offset by d.
func (r Rect) Translated(d Point) Rect {
	return Rect{Min: r.Min.Add(d), Max: r.Max.Add(d)}
}

// Adjusted adds dx1, dy1 to Min and dx2, dy2 to Max.
func (r Rect) Adjusted(dx1, dy1, dx2, dy2 float64) Rect {
	return Rect{
		Min: Pt(r.Min.X+dx1, r.Min.Y+dy1),
		Max: Pt(r.Max.X+dx2, r.Max.Y+dy2),
	}
}

// AdjustedVisually is like Adjusted but swaps the adjustments along an
// axis where the rect is flipped, so the margins stay on the same visual side.
func (r Rect) AdjustedVisually(dx1, dy1, dx2, dy2 float64) Rect {
	if r.Width() < 0 {
		dx1, dx2 = dx2, dx1
	}
	if r.Height() < 0 {
		dy1, dy2 = dy2, dy1
	}
	return r.Adjusted(dx1, dy1, dx2, dy2)
}

// Scaled multiplies both the position and the size of r by s.
func (r Rect) Scaled(s float64) Rect {
	if s == 1 {
		return r
	}
	return Rect{Min: r.Min.Mul(s), Max: r.Max.Mul(s)}
}

// Bounded moves r so it lies inside bounds without resizing it.
// If r is larger than bounds along an axis it is aligned to the bounds' start.
func (r Rect) Bounded(bounds Rect) Rect {
	if r == bounds {
		return r
	}
	b := bounds.Normalized()
	n := r.Normalized()
	w, h := n.Width(), n.Height()
	x := clamp(n.Min.X, b.Min.X, math.Max(b.Min.X, b.Max.X-w))
	y := clamp(n.Min.Y, b.Min.Y, math.Max(b.Min.Y, b.Max.Y-h))
	return n.MoveTo(Pt(x, y))
}

// AlignedOut returns the smallest integer rectangle containing r.
func (r Rect) AlignedOut() image.Rectangle {
	n := r.Normalized()
	return image.Rect(
		int(math.Floor(n.Min.X)), int(math.Floor(n.Min.Y)),
		int(math.Ceil(n.Max.X)), int(math.Ceil(n.Max.Y)),
	)
}

// FromImageRect converts an integer rectangle to a Rect.
func FromImageRect(ir image.Rectangle) Rect {
	return Rect{
		Min: Pt(float64(ir.Min.X), float64(ir.Min.Y)),
		Max: Pt(float64(ir.Max.X), float64(ir.Max.Y)),
	}
}

// extend grows r to include p. r must be normalized.
func (r Rect) extend(p Point) Rect {
	return Rect{
		Min: Pt(math.Min(r.Min.X, p.X), math.Min(r.Min.Y, p.Y)),
		Max: Pt(math.Max(r.Max.X, p.X), math.Max(r.Max.Y, p.Y)),
	}
}
