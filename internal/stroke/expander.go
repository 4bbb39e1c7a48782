// Package stroke converts a stroked path into a filled outline path.
//
// The outline is built from two offset paths. The forward path runs on
// one side of the centerline, the backward path on the other; the
// backward path is reversed and joined to the forward one with caps.
// Closed subpaths produce two closed contours with opposite orientation,
// so a non-zero fill leaves the interior open.
//
// Curves are flattened before offsetting. The algorithm follows the
// tiny-skia and kurbo stroke expanders.
package stroke

import (
	"math"

	"github.com/gogpu/annotate/geom"
)

// LineCap specifies the shape of line endpoints.
type LineCap int

const (
	// LineCapButt specifies a flat line cap.
	LineCapButt LineCap = iota
	// LineCapRound specifies a rounded line cap.
	LineCapRound
	// LineCapSquare specifies a square line cap.
	LineCapSquare
)

// LineJoin specifies the shape of line joins.
type LineJoin int

const (
	// LineJoinMiter specifies a sharp (mitered) join.
	LineJoinMiter LineJoin = iota
	// LineJoinRound specifies a rounded join.
	LineJoinRound
	// LineJoinBevel specifies a beveled join.
	LineJoinBevel
)

// Style defines the pen used for stroke expansion.
type Style struct {
	Width      float64
	Cap        LineCap
	Join       LineJoin
	MiterLimit float64
}

// RoundStyle returns a pen with round caps and joins, the pen used for
// every annotation stroke.
func RoundStyle(width float64) Style {
	return Style{
		Width:      width,
		Cap:        LineCapRound,
		Join:       LineJoinRound,
		MiterLimit: 4.0,
	}
}

// Outline expands path with style and returns the filled outline.
func Outline(path *geom.Path, style Style) *geom.Path {
	return NewExpander(style).Expand(path)
}

// Expander converts stroked paths to filled paths.
type Expander struct {
	style Style

	// Tolerance for curve flattening.
	tolerance float64

	forward  *geom.Path
	backward *geom.Path
	output   *geom.Path

	startPt   geom.Point
	startNorm geom.Point
	startTan  geom.Point
	lastPt    geom.Point
	lastTan   geom.Point
	lastNorm  geom.Point // normal at lastPt scaled by half width, used for the end cap

	// Join threshold for skipping near-collinear joins
	joinThresh float64
}

// NewExpander creates a new stroke expander with the given style.
func NewExpander(style Style) *Expander {
	return &Expander{
		style:     style,
		tolerance: 0.25,
	}
}

// SetTolerance sets the curve flattening tolerance.
func (e *Expander) SetTolerance(tolerance float64) {
	if tolerance > 0 {
		e.tolerance = tolerance
	}
}

// Expand converts a stroked path to a fill path.
// Zero-length segments are skipped; a subpath with no remaining
// segments produces no outline.
func (e *Expander) Expand(path *geom.Path) *geom.Path {
	e.reset()

	for _, el := range path.Elements() {
		switch elem := el.(type) {
		case geom.MoveTo:
			e.finish()
			e.startPt = elem.Point
			e.lastPt = elem.Point
		case geom.LineTo:
			if elem.Point != e.lastPt {
				e.segment(elem.Point)
			}
		case geom.QuadTo:
			if elem.Control != e.lastPt || elem.Point != e.lastPt {
				pts := []geom.Point{e.lastPt}
				flattenQuad(e.lastPt, elem.Control, elem.Point, e.tolerance, &pts)
				e.polyline(pts)
			}
		case geom.CubicTo:
			if elem.Control1 != e.lastPt || elem.Control2 != e.lastPt || elem.Point != e.lastPt {
				pts := []geom.Point{e.lastPt}
				flattenCubic(e.lastPt, elem.Control1, elem.Control2, elem.Point, e.tolerance, &pts)
				e.polyline(pts)
			}
		case geom.Close:
			if e.lastPt != e.startPt {
				e.segment(e.startPt)
			}
			e.finishClosed()
			e.lastPt = e.startPt
		}
	}

	e.finish()
	return e.output
}

func (e *Expander) reset() {
	e.forward = geom.NewPath()
	e.backward = geom.NewPath()
	e.output = geom.NewPath()
	e.startPt = geom.Point{}
	e.startNorm = geom.Point{}
	e.startTan = geom.Point{}
	e.lastPt = geom.Point{}
	e.lastTan = geom.Point{}
	e.lastNorm = geom.Point{}
	e.joinThresh = 2.0 * e.tolerance / e.style.Width
}

// segment joins to the previous segment and extends both sides to p1.
func (e *Expander) segment(p1 geom.Point) {
	tangent := p1.Sub(e.lastPt)
	e.doJoin(tangent)
	e.lastTan = tangent
	e.doLine(tangent, p1)
}

func (e *Expander) polyline(pts []geom.Point) {
	for i := 1; i < len(pts); i++ {
		tangent := pts[i].Sub(pts[i-1])
		if tangent.Dot(tangent) > 1e-10 {
			e.segment(pts[i])
		}
	}
}

// normal returns the left normal of tangent scaled to half the pen width.
func (e *Expander) normal(tangent geom.Point) geom.Point {
	return perp(tangent).Mul(0.5 * e.style.Width / tangent.Length())
}

func perp(v geom.Point) geom.Point {
	return geom.Point{X: -v.Y, Y: v.X}
}

func neg(v geom.Point) geom.Point {
	return geom.Point{X: -v.X, Y: -v.Y}
}

// doJoin handles joining the current segment to the previous one.
func (e *Expander) doJoin(tan0 geom.Point) {
	norm := e.normal(tan0)
	p0 := e.lastPt

	if e.forward.Len() == 0 {
		e.forward.MoveTo(p0.Add(neg(norm)))
		e.backward.MoveTo(p0.Add(norm))
		e.startTan = tan0
		e.startNorm = norm
		return
	}

	ab := e.lastTan
	cd := tan0
	cross := ab.Cross(cd)
	dot := ab.Dot(cd)
	hypot := math.Hypot(cross, dot)

	// Skip the join for an insignificant angle change but keep both sides
	// connected.
	if dot > 0.0 && math.Abs(cross) < hypot*e.joinThresh {
		e.forward.LineTo(p0.Add(neg(norm)))
		e.backward.LineTo(p0.Add(norm))
		return
	}

	switch e.style.Join {
	case LineJoinBevel:
		e.forward.LineTo(p0.Add(neg(norm)))
		e.backward.LineTo(p0.Add(norm))
	case LineJoinMiter:
		e.miterJoin(p0, norm, ab, cd, cross, dot, hypot)
	case LineJoinRound:
		e.roundJoin(p0, norm, cross, dot)
	}
}

func (e *Expander) miterJoin(p0, norm, ab, cd geom.Point, cross, dot, hypot float64) {
	limitSq := e.style.MiterLimit * e.style.MiterLimit
	if 2.0*hypot < (hypot+dot)*limitSq {
		lastNorm := e.normal(ab)
		switch {
		case cross > 0.0:
			fpLast := p0.Add(neg(lastNorm))
			fpThis := p0.Add(neg(norm))
			h := ab.Cross(fpThis.Sub(fpLast)) / cross
			e.forward.LineTo(fpThis.Add(cd.Mul(-h)))
			e.backward.LineTo(p0)
		case cross < 0.0:
			fpLast := p0.Add(lastNorm)
			fpThis := p0.Add(norm)
			h := ab.Cross(fpThis.Sub(fpLast)) / cross
			e.backward.LineTo(fpThis.Add(cd.Mul(-h)))
			e.forward.LineTo(p0)
		}
	}
	e.forward.LineTo(p0.Add(neg(norm)))
	e.backward.LineTo(p0.Add(norm))
}

// roundJoin sweeps an arc from the previous segment's normal to norm on the
// outer side of the turn.
func (e *Expander) roundJoin(p0, norm geom.Point, cross, dot float64) {
	lastNorm := e.normal(e.lastTan)
	angle := math.Atan2(cross, dot)
	if angle > 0.0 {
		e.backward.LineTo(p0.Add(norm))
		arc(e.forward, p0, neg(lastNorm), angle)
	} else {
		e.forward.LineTo(p0.Add(neg(norm)))
		arc(e.backward, p0, lastNorm, angle)
	}
}

func (e *Expander) doLine(tangent, p1 geom.Point) {
	norm := e.normal(tangent)
	e.forward.LineTo(p1.Add(neg(norm)))
	e.backward.LineTo(p1.Add(norm))
	e.lastPt = p1
	e.lastNorm = norm
}

// finish completes an open subpath with end caps.
func (e *Expander) finish() {
	if e.forward.Len() == 0 {
		return
	}

	e.output.AddPath(e.forward)
	// lastNorm points toward the backward side; the cap starts on the
	// forward side.
	e.applyCap(e.lastPt, neg(e.lastNorm), false)
	e.appendReversed(e.backward)
	e.applyCap(e.startPt, e.startNorm, true)

	e.forward = geom.NewPath()
	e.backward = geom.NewPath()
}

// finishClosed completes a closed subpath.
func (e *Expander) finishClosed() {
	if e.forward.Len() == 0 {
		return
	}

	e.doJoin(e.startTan)

	e.output.AddPath(e.forward)
	e.output.Close()

	e.output.MoveTo(e.backward.CurrentPoint())
	e.appendReversed(e.backward)
	e.output.Close()

	e.forward = geom.NewPath()
	e.backward = geom.NewPath()
}

func (e *Expander) applyCap(center, norm geom.Point, closePath bool) {
	switch e.style.Cap {
	case LineCapButt:
		if !closePath {
			e.output.LineTo(center.Add(neg(norm)))
		}
	case LineCapRound:
		arc(e.output, center, norm, math.Pi)
	case LineCapSquare:
		// Square corners in the (norm, perp(norm)) frame at (+1, +1) and (-1, +1).
		e.output.LineTo(capPoint(center, norm, 1, 1))
		e.output.LineTo(capPoint(center, norm, -1, 1))
		if !closePath {
			e.output.LineTo(center.Add(neg(norm)))
		}
	}
	if closePath {
		e.output.Close()
	}
}

func capPoint(center, norm geom.Point, x, y float64) geom.Point {
	return geom.Point{
		X: norm.X*x - norm.Y*y + center.X,
		Y: norm.Y*x + norm.X*y + center.Y,
	}
}

// arc adds a circular arc around center starting at center+norm and
// sweeping angle radians, approximated by cubic segments of at most 90°.
func arc(out *geom.Path, center, norm geom.Point, angle float64) {
	n := int(math.Ceil(math.Abs(angle) / (math.Pi / 2)))
	if n < 1 {
		n = 1
	}
	step := angle / float64(n)
	a := geom.Angle(norm)
	radius := norm.Length()
	for i := 0; i < n; i++ {
		arcSegment(out, center, radius, a, a+step)
		a += step
	}
}

func arcSegment(out *geom.Path, center geom.Point, radius, a0, a1 float64) {
	da := a1 - a0
	alpha := math.Sin(da) * (math.Sqrt(4+3*math.Tan(da/2)*math.Tan(da/2)) - 1) / 3

	sin0, cos0 := math.Sincos(a0)
	sin1, cos1 := math.Sincos(a1)

	p2 := geom.Point{X: center.X + radius*cos1, Y: center.Y + radius*sin1}
	p1 := geom.Point{X: center.X + radius*cos0, Y: center.Y + radius*sin0}
	c1 := geom.Point{X: p1.X - alpha*radius*sin0, Y: p1.Y + alpha*radius*cos0}
	c2 := geom.Point{X: p2.X + alpha*radius*sin1, Y: p2.Y - alpha*radius*cos1}

	out.CubicTo(c1, c2, p2)
}

// appendReversed appends the backward path to the output in reverse order.
func (e *Expander) appendReversed(back *geom.Path) {
	elems := back.Elements()
	for i := len(elems) - 1; i >= 1; i-- {
		to := elementEnd(elems[i-1])
		switch el := elems[i].(type) {
		case geom.LineTo:
			e.output.LineTo(to)
		case geom.QuadTo:
			e.output.QuadTo(el.Control, to)
		case geom.CubicTo:
			e.output.CubicTo(el.Control2, el.Control1, to)
		}
	}
}

func elementEnd(el geom.Element) geom.Point {
	switch e := el.(type) {
	case geom.MoveTo:
		return e.Point
	case geom.LineTo:
		return e.Point
	case geom.QuadTo:
		return e.Point
	case geom.CubicTo:
		return e.Point
	default:
		return geom.Point{}
	}
}
