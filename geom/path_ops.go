package geom

import (
	"math"

	"github.com/gogpu/gg"
)

// Area queries close every open subpath implicitly, the way a fill does,
// before handing the outline to gg.

// DefaultTolerance is the flattening tolerance used when none is given.
const DefaultTolerance = 0.1

// BoundingBox returns the tight axis-aligned bounding box of the path.
func (p *Path) BoundingBox() Rect {
	if p.Len() == 0 {
		return Rect{}
	}
	return Rect(p.g.BoundingBox())
}

// subpaths splits the elements at every MoveTo.
func (p *Path) subpaths() [][]Element {
	els := p.Elements()
	var out [][]Element
	start := 0
	for i, el := range els {
		if _, ok := el.(MoveTo); ok && i > start {
			out = append(out, els[start:i])
			start = i
		}
	}
	if start < len(els) {
		out = append(out, els[start:])
	}
	return out
}

// drawing reports whether a subpath has at least one drawing element.
func drawing(sp []Element) bool {
	for _, el := range sp {
		switch el.(type) {
		case LineTo, QuadTo, CubicTo:
			return true
		}
	}
	return false
}

func closed(sp []Element) bool {
	_, ok := sp[len(sp)-1].(Close)
	return ok
}

// filled returns the outline a fill would rasterize.
func (p *Path) filled() *gg.Path {
	g := gg.NewPath()
	for _, sp := range p.subpaths() {
		if !drawing(sp) {
			continue
		}
		replay(g, sp)
		if !closed(sp) {
			g.Close()
		}
	}
	return g
}

// Flatten converts every subpath to a polyline with the given tolerance.
// A closed subpath ends with its start point.
func (p *Path) Flatten(tolerance float64) [][]Point {
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}
	var polys [][]Point
	for _, sp := range p.subpaths() {
		if !drawing(sp) {
			continue
		}
		g := gg.NewPath()
		replay(g, sp)
		if poly := g.Flatten(tolerance); len(poly) > 1 {
			polys = append(polys, poly)
		}
	}
	return polys
}

// Winding returns the winding number of pt relative to the filled path.
// 0 = outside, non-zero = inside (for non-zero fill rule).
func (p *Path) Winding(pt Point) int {
	if p.Len() == 0 {
		return 0
	}
	return p.filled().Winding(pt)
}

// Contains tests if a point is inside the path using the non-zero fill rule.
func (p *Path) Contains(pt Point) bool {
	if !p.BoundingBox().ContainsPoint(pt) {
		return false
	}
	return p.Winding(pt) != 0
}

// SignedArea returns the signed area enclosed by the path, closing every
// subpath implicitly. The sign follows the orientation of the outlines.
func (p *Path) SignedArea() float64 {
	if p.Len() == 0 {
		return 0
	}
	return p.filled().Area()
}

// Reversed returns a new path with every subpath traversed backwards.
func (p *Path) Reversed() *Path {
	if p.Len() == 0 {
		return NewPath()
	}
	return &Path{g: p.g.Reversed()}
}

// Simplified returns a copy without subpaths that draw nothing.
func (p *Path) Simplified() *Path {
	result := NewPath()
	for _, sp := range p.subpaths() {
		if drawing(sp) {
			replay(result.g, sp)
		}
	}
	return result
}

// Union returns a path whose non-zero fill covers the union of the fills of
// paths. Each operand is oriented to a positive area first, so overlapping
// regions accumulate instead of cancelling.
func Union(paths ...*Path) *Path {
	result := NewPath()
	for _, p := range paths {
		if p.IsEmpty() {
			continue
		}
		s := p.Simplified()
		if s.SignedArea() < 0 {
			s = s.Reversed()
		}
		result.AddPath(s)
	}
	return result
}

// Intersects reports whether the filled areas of p and o overlap or touch.
func (p *Path) Intersects(o *Path) bool {
	if p.IsEmpty() || o.IsEmpty() {
		return false
	}
	pb, ob := p.BoundingBox(), o.BoundingBox()
	if pb.Max.X < ob.Min.X || ob.Max.X < pb.Min.X || pb.Max.Y < ob.Min.Y || ob.Max.Y < pb.Min.Y {
		return false
	}

	ppolys := p.Flatten(DefaultTolerance)
	opolys := o.Flatten(DefaultTolerance)
	for _, pp := range ppolys {
		for _, op := range opolys {
			if polylinesCross(pp, op) {
				return true
			}
		}
	}
	// No edge crossings: one area may still contain the other entirely.
	for _, op := range opolys {
		if p.Winding(op[0]) != 0 {
			return true
		}
	}
	for _, pp := range ppolys {
		if o.Winding(pp[0]) != 0 {
			return true
		}
	}
	return false
}

// polylinesCross reports whether any edge of a crosses any edge of b,
// including the implicit closing edges.
func polylinesCross(a, b []Point) bool {
	na, nb := len(a), len(b)
	for i := range a {
		a0, a1 := a[i], a[(i+1)%na]
		for j := range b {
			if segmentsIntersect(a0, a1, b[j], b[(j+1)%nb]) {
				return true
			}
		}
	}
	return false
}

func segmentsIntersect(p1, p2, q1, q2 Point) bool {
	d1 := isLeft(q1, q2, p1)
	d2 := isLeft(q1, q2, p2)
	d3 := isLeft(p1, p2, q1)
	d4 := isLeft(p1, p2, q2)
	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}
	return (d1 == 0 && onSegment(q1, q2, p1)) ||
		(d2 == 0 && onSegment(q1, q2, p2)) ||
		(d3 == 0 && onSegment(p1, p2, q1)) ||
		(d4 == 0 && onSegment(p1, p2, q2))
}

// isLeft returns positive if pt is left of line p0-p1, negative if right, 0 if on.
func isLeft(p0, p1, pt Point) float64 {
	return (p1.X-p0.X)*(pt.Y-p0.Y) - (pt.X-p0.X)*(p1.Y-p0.Y)
}

// onSegment reports whether pt, known to be collinear with (a, b), lies on it.
func onSegment(a, b, pt Point) bool {
	return pt.X >= math.Min(a.X, b.X) && pt.X <= math.Max(a.X, b.X) &&
		pt.Y >= math.Min(a.Y, b.Y) && pt.Y <= math.Max(a.Y, b.Y)
}
