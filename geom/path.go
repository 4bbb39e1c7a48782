package geom

import "github.com/gogpu/gg"

// Element is a single element of a path. The concrete element types are
// gg's, so paths built here can be replayed into a gg.Context unchanged.
type Element = gg.PathElement

// Path element types.
type (
	MoveTo  = gg.MoveTo
	LineTo  = gg.LineTo
	QuadTo  = gg.QuadTo
	CubicTo = gg.CubicTo
	Close   = gg.Close
)

// Path is a vector path in logical units backed by a gg.Path.
//
// Unlike gg.Path it takes points instead of coordinate pairs, starts a
// subpath implicitly when drawing on an empty or closed path, and ignores
// Close on an empty path. Every subpath therefore begins with a MoveTo.
// The zero value is an empty path ready to use.
type Path struct {
	g *gg.Path
}

// NewPath creates a new empty path.
func NewPath() *Path {
	return &Path{g: gg.NewPath()}
}

// NewPathAt returns a path holding a single MoveTo to pt. It marks a
// position but draws nothing.
func NewPathAt(pt Point) *Path {
	p := NewPath()
	p.MoveTo(pt)
	return p
}

func (p *Path) path() *gg.Path {
	if p.g == nil {
		p.g = gg.NewPath()
	}
	return p.g
}

// begin returns the backing path ready for a drawing element. An empty
// path starts at from. A closed subpath restarts at its start point.
func (p *Path) begin(from Point) *gg.Path {
	g := p.path()
	els := g.Elements()
	if len(els) == 0 {
		g.MoveTo(from.X, from.Y)
		return g
	}
	if _, ok := els[len(els)-1].(Close); ok {
		cur := g.CurrentPoint()
		g.MoveTo(cur.X, cur.Y)
	}
	return g
}

// MoveTo starts a new subpath at pt.
func (p *Path) MoveTo(pt Point) {
	p.path().MoveTo(pt.X, pt.Y)
}

// LineTo draws a line to pt. On an empty path it only moves to pt.
func (p *Path) LineTo(pt Point) {
	if p.Len() == 0 {
		p.MoveTo(pt)
		return
	}
	p.begin(pt).LineTo(pt.X, pt.Y)
}

// QuadTo draws a quadratic Bezier curve to pt.
func (p *Path) QuadTo(ctrl, pt Point) {
	p.begin(ctrl).QuadraticTo(ctrl.X, ctrl.Y, pt.X, pt.Y)
}

// CubicTo draws a cubic Bezier curve to pt.
func (p *Path) CubicTo(c1, c2, pt Point) {
	p.begin(c1).CubicTo(c1.X, c1.Y, c2.X, c2.Y, pt.X, pt.Y)
}

// Close closes the current subpath by drawing a line to the start point.
func (p *Path) Close() {
	if p.Len() == 0 {
		return
	}
	p.g.Close()
}

// Clear removes all elements from the path.
func (p *Path) Clear() {
	p.path().Clear()
}

// Elements returns the path elements.
func (p *Path) Elements() []Element {
	if p == nil || p.g == nil {
		return nil
	}
	return p.g.Elements()
}

// Len returns the number of elements.
func (p *Path) Len() int {
	return len(p.Elements())
}

// IsEmpty reports whether the path draws nothing: it has no elements, or
// its only element is a MoveTo.
func (p *Path) IsEmpty() bool {
	els := p.Elements()
	if len(els) == 0 {
		return true
	}
	if len(els) == 1 {
		_, ok := els[0].(MoveTo)
		return ok
	}
	return false
}

// CurrentPoint returns the current point.
func (p *Path) CurrentPoint() Point {
	if p.Len() == 0 {
		return Point{}
	}
	return p.g.CurrentPoint()
}

// FirstPoint returns the first point of the path and whether one exists.
func (p *Path) FirstPoint() (Point, bool) {
	if p.Len() == 0 {
		return Point{}, false
	}
	return endPoint(p.g.Elements()[0], Point{}), true
}

// LastSegment returns the direction of the final drawing element as a
// (from, to) pair. For curves, from is the last control point.
func (p *Path) LastSegment() (from, to Point, ok bool) {
	els := p.Elements()
	var prev Point
	for i, el := range els {
		switch e := el.(type) {
		case MoveTo:
			prev = e.Point
			if i == len(els)-1 {
				return Point{}, Point{}, false
			}
		case LineTo:
			from, to, ok = prev, e.Point, true
			prev = e.Point
		case QuadTo:
			from, to, ok = e.Control, e.Point, true
			prev = e.Point
		case CubicTo:
			from, to, ok = e.Control2, e.Point, true
			prev = e.Point
		}
	}
	return from, to, ok
}

// Clone returns a deep copy of the path. Clone of nil is nil.
func (p *Path) Clone() *Path {
	if p == nil {
		return nil
	}
	return &Path{g: p.path().Clone()}
}

// AddPath appends all elements of other.
func (p *Path) AddPath(other *Path) {
	replay(p.path(), other.Elements())
}

// Translate offsets every point of the path in place.
func (p *Path) Translate(d Point) {
	if p == nil || d == (Point{}) || p.Len() == 0 {
		return
	}
	p.g = p.g.Transform(gg.Translate(d.X, d.Y))
}

// Transform returns a copy of the path with m applied to every point.
func (p *Path) Transform(m Matrix) *Path {
	if p.Len() == 0 {
		return NewPath()
	}
	return &Path{g: p.g.Transform(m)}
}

// Rectangle adds a closed rectangle subpath.
func (p *Path) Rectangle(r Rect) {
	n := r.Normalized()
	p.path().Rectangle(n.Min.X, n.Min.Y, n.Width(), n.Height())
}

// Ellipse adds a closed ellipse subpath inscribed in r.
func (p *Path) Ellipse(r Rect) {
	n := r.Normalized()
	c := n.Center()
	p.path().Ellipse(c.X, c.Y, n.Width()/2, n.Height()/2)
}

// Circle adds a closed circle subpath.
func (p *Path) Circle(center Point, radius float64) {
	p.path().Circle(center.X, center.Y, radius)
}

// Polyline adds an open subpath through pts.
func (p *Path) Polyline(pts ...Point) {
	for i, pt := range pts {
		if i == 0 {
			p.MoveTo(pt)
			continue
		}
		p.LineTo(pt)
	}
}

// replay appends els to dst.
func replay(dst *gg.Path, els []Element) {
	for _, el := range els {
		switch e := el.(type) {
		case MoveTo:
			dst.MoveTo(e.Point.X, e.Point.Y)
		case LineTo:
			dst.LineTo(e.Point.X, e.Point.Y)
		case QuadTo:
			dst.QuadraticTo(e.Control.X, e.Control.Y, e.Point.X, e.Point.Y)
		case CubicTo:
			dst.CubicTo(e.Control1.X, e.Control1.Y, e.Control2.X, e.Control2.Y, e.Point.X, e.Point.Y)
		case Close:
			dst.Close()
		}
	}
}

// endPoint returns the on-curve end point of an element.
// Close has no point of its own, so fallback is returned.
func endPoint(el Element, fallback Point) Point {
	switch e := el.(type) {
	case MoveTo:
		return e.Point
	case LineTo:
		return e.Point
	case QuadTo:
		return e.Point
	case CubicTo:
		return e.Point
	default:
		return fallback
	}
}
