package traits

import (
	"math"

	"github.com/gogpu/annotate/geom"
	"github.com/gogpu/annotate/internal/stroke"
)

// minDotLength is the length of the segment that makes a bare point
// visible under a round pen.
const minDotLength = 0.0001

// MinPath returns path, or a tiny horizontal segment at its start when it
// is empty, so that a stroke of it still paints a dot.
func MinPath(path *geom.Path) *geom.Path {
	if !path.IsEmpty() {
		return path
	}
	start, _ := path.FirstPoint()
	dot := geom.NewPath()
	dot.MoveTo(start)
	dot.LineTo(start.Add(geom.Pt(minDotLength, 0)))
	return dot
}

// ArrowHead returns the open two-armed head for a line ending at to. The
// arms are max(8, 3*strokeWidth) long and 30 degrees either side of the
// reversed line.
func ArrowHead(from, to geom.Point, strokeWidth float64) *geom.Path {
	const armAngle = 30 * math.Pi / 180
	length := max(8, strokeWidth*3)
	back := geom.Angle(from.Sub(to))
	head := geom.NewPath()
	head.Polyline(geom.Polar(to, length, back+armAngle), to, geom.Polar(to, length, back-armAngle))
	return head
}

// TextPath returns the text box for t: a rect anchored at the left middle
// of its first line for strings, a circle around the centre for numbers.
// Without Text it returns the geometry path unchanged.
func TextPath(t *Traits) *geom.Path {
	if t.Geometry == nil {
		return nil
	}
	if t.Text == nil || t.Text.Face == nil {
		return t.Geometry.Path
	}
	start, _ := t.Geometry.Path.FirstPoint()
	path := geom.NewPath()
	switch t.Text.Kind {
	case TextNumber:
		path.Circle(start, t.Text.NumberRadius())
	default:
		fh := fontHeight(t.Text.Face.Metrics())
		size := t.Text.Size()
		path.Rectangle(geom.RectFromPoints(start, start).Adjusted(0, -fh/2, size.X, size.Y-fh/2))
	}
	return path
}

// StrokePath returns the filled outline of the geometry path under the
// Stroke pen, with an arrow head unioned in when Arrow is present.
func StrokePath(t *Traits) *geom.Path {
	if t.Geometry == nil || t.Stroke == nil {
		return nil
	}
	style := stroke.RoundStyle(t.Stroke.Width)
	base := MinPath(t.Geometry.Path)
	outline := stroke.Outline(base, style)
	if t.Arrow == nil {
		return outline
	}
	from, to, ok := base.LastSegment()
	if !ok {
		return outline
	}
	head := stroke.Outline(ArrowHead(from, to, t.Stroke.Width), style)
	return geom.Union(outline, head)
}

// MousePath returns the hit-test area: the filled geometry path united
// with the stroke outline, with subpaths that draw nothing dropped.
func MousePath(t *Traits) *geom.Path {
	var parts []*geom.Path
	if t.Geometry != nil {
		parts = append(parts, t.Geometry.Path)
	}
	if t.Stroke != nil {
		parts = append(parts, t.Stroke.Path)
	}
	return geom.Union(parts...)
}

// VisualRect returns the bounds of everything t paints, grown by the
// shadow margins when a shadow is enabled.
func VisualRect(t *Traits) geom.Rect {
	if t.Geometry == nil {
		return geom.Rect{}
	}
	r := t.Geometry.Path.BoundingBox()
	if t.Stroke != nil {
		r = t.Stroke.Path.BoundingBox().Union(r)
	}
	if t.HasShadow() && !r.IsEmpty() {
		m := ShadowMargins
		r = r.Adjusted(-m[0], -m[1], m[2], m[3])
	}
	return r
}

// FastInit fills in every empty derived value except the hit-test path:
// first the text box, then the stroke outline, then the visual rect.
// That is all rendering needs.
func (t *Traits) FastInit() {
	if t.Geometry == nil {
		return
	}
	if t.Text != nil && t.Geometry.Path.IsEmpty() {
		t.Geometry.Path = TextPath(t)
	}
	if t.Stroke != nil && t.Stroke.Path.IsEmpty() {
		t.Stroke.Path = StrokePath(t)
	}
	if t.Geometry.VisualRect.IsEmpty() {
		t.Geometry.VisualRect = VisualRect(t)
	}
}

// Init runs FastInit and then derives the hit-test path if it is missing.
func (t *Traits) Init() {
	t.FastInit()
	if t.Geometry != nil && t.Geometry.MousePath.IsEmpty() {
		t.Geometry.MousePath = MousePath(t)
	}
}

// ClearForInit drops every derived value. A text object's geometry
// collapses back to its anchor point.
func (t *Traits) ClearForInit() {
	if t.Geometry == nil {
		if t.Stroke != nil {
			t.Stroke.Path = nil
		}
		return
	}
	t.Geometry.MousePath = nil
	t.Geometry.VisualRect = geom.Rect{}
	if t.Stroke != nil {
		t.Stroke.Path = nil
	}
	if t.Text != nil {
		t.Geometry.Path = geom.NewPathAt(TextAnchor(t))
	}
}

// TextAnchor returns the point a text object is laid out from: the left
// middle of its first line for strings, the centre for numbers.
func TextAnchor(t *Traits) geom.Point {
	p := t.GeometryPath()
	if p.Len() == 1 {
		pt, _ := p.FirstPoint()
		return pt
	}
	bounds := p.BoundingBox()
	if t.Text != nil && t.Text.Kind == TextNumber {
		return bounds.Center()
	}
	var fh float64
	if t.Text != nil && t.Text.Face != nil {
		fh = fontHeight(t.Text.Face.Metrics())
	}
	return bounds.Min.Add(geom.Pt(0, fh/2))
}

// ReInit clears and fully re-derives t.
func (t *Traits) ReInit() {
	t.ClearForInit()
	t.Init()
}
