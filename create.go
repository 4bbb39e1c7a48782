package annotate

import (
	"math"

	"github.com/gogpu/annotate/geom"
	"github.com/gogpu/annotate/history"
	"github.com/gogpu/annotate/traits"
)

// Modifiers alter how Continue shapes the item being created.
type Modifiers uint8

const (
	// SnapModifier snaps lines to multiples of 45 degrees and makes
	// rectangles and ellipses square.
	SnapModifier Modifiers = 1 << iota
	// CenterModifier grows rectangles and ellipses symmetrically about
	// the start point.
	CenterModifier
)

// snapRatio is how much longer one axis must be than the other before a
// snapped line goes horizontal or vertical instead of diagonal.
const snapRatio = 1.5

// creation is the state of the item being drawn.
type creation struct {
	tool  Tool
	item  history.Handle
	start geom.Point
	// points are the distinct samples of a freehand stroke.
	points []geom.Point
}

// Begin starts a new item with the active tool at pt. An invalid newest
// item, such as an unfinished degenerate stroke, is discarded first.
// Begin reports whether creation started.
func (d *Document) Begin(pt geom.Point) bool {
	if !d.tool.Creates() {
		d.log.Warn("begin without a drawing tool", "tool", d.tool)
		return false
	}
	if d.create != nil {
		d.Finish()
	}
	d.commitSelection()
	d.discardInvalidCurrent()

	t := d.newItem(d.tool, pt)
	t.FastInit()
	h, ch := d.hist.Push(t, history.Handle{})
	d.create = &creation{tool: d.tool, item: h, start: pt, points: []geom.Point{pt}}
	d.editor.SetSelectedItem(h)
	d.SetRepaintRegion(t.VisualRect())
	d.historyChanged(ch)
	d.log.Debug("begin", "tool", d.tool, "at", pt)
	return true
}

// Continue reshapes the item being created for the pointer at pt. Only
// the geometry needed for painting is derived.
func (d *Document) Continue(pt geom.Point, mods Modifiers) bool {
	c := d.create
	if c == nil {
		d.log.Warn("continue without begin")
		return false
	}
	t := d.hist.Traits(c.item)
	if t == nil {
		d.create = nil
		return false
	}
	d.SetRepaintRegion(t.VisualRect())
	t.ClearForInit()

	switch c.tool {
	case FreehandTool, HighlighterTool:
		if pt != c.points[len(c.points)-1] {
			c.points = append(c.points, pt)
		}
		t.Geometry.Path = smoothPath(c.points)
	case LineTool, ArrowTool:
		end := pt
		if mods&SnapModifier != 0 {
			end = snapLine(c.start, pt)
		}
		path := geom.NewPathAt(c.start)
		path.LineTo(end)
		t.Geometry.Path = path
	case RectangleTool, BlurTool, PixelateTool:
		path := geom.NewPath()
		path.Rectangle(dragRect(c.start, pt, mods))
		t.Geometry.Path = path
	case EllipseTool:
		path := geom.NewPath()
		path.Ellipse(dragRect(c.start, pt, mods))
		t.Geometry.Path = path
	case TextTool, NumberTool:
		t.Geometry.Path = geom.NewPathAt(pt)
	case NoTool, SelectTool, toolCount:
	}

	t.FastInit()
	d.SetRepaintRegion(t.VisualRect())
	return true
}

// Finish completes the item being created, deriving its hit-test path,
// and leaves it selected.
func (d *Document) Finish() bool {
	c := d.create
	if c == nil {
		d.log.Warn("finish without begin")
		return false
	}
	d.create = nil
	t := d.hist.Traits(c.item)
	if t == nil {
		return false
	}
	t.Init()
	d.SetRepaintRegion(t.VisualRect())
	d.editor.SetSelectedItem(c.item)
	d.log.Debug("finish", "tool", c.tool, "valid", d.hist.IsValid(c.item))
	return true
}

// Creating reports whether an item is being created.
func (d *Document) Creating() bool { return d.create != nil }

// discardInvalidCurrent pops the newest item if it is invalid.
func (d *Document) discardInvalidCurrent() {
	cur := d.hist.Current()
	if cur.IsZero() || d.hist.IsValid(cur) {
		return
	}
	d.markItem(cur)
	if sel, ok := d.editor.Selected(); ok && sel == cur {
		d.editor.Reset()
	}
	_, redoChanged := d.hist.Pop()
	d.historyChanged(history.Changes{Undo: true, Redo: redoChanged})
	d.log.Debug("discarded invalid item")
}

// newItem returns the initial attributes of an item drawn with tool from
// pt. Number markers take the running counter.
func (d *Document) newItem(tool Tool, pt geom.Point) *traits.Traits {
	s := d.tools[tool]
	path := geom.NewPathAt(pt)
	t := &traits.Traits{}

	switch tool {
	case FreehandTool:
		path = traits.MinPath(path)
	case HighlighterTool:
		path = traits.MinPath(path)
		t.Highlight = &traits.Highlight{}
	case ArrowTool:
		t.Arrow = &traits.Arrow{}
	case BlurTool:
		t.Fill = &traits.Fill{Effect: traits.NewBlur(s.Strength)}
	case PixelateTool:
		t.Fill = &traits.Fill{Effect: traits.NewPixelate(s.Strength)}
	case TextTool:
		t.Text = &traits.Text{Kind: traits.TextString, Color: s.FontColor, Face: d.face(s.FontSize), Lang: d.locale}
	case NumberTool:
		t.Text = &traits.Text{Kind: traits.TextNumber, Number: d.counter, Color: s.FontColor, Face: d.face(s.FontSize), Lang: d.locale}
		d.counter++
	case NoTool, SelectTool, LineTool, RectangleTool, EllipseTool, toolCount:
	}

	t.Geometry = &traits.Geometry{Path: path, VisualRect: geom.PointRect(pt)}
	opts := tool.Options()
	if opts.Has(FillOption) {
		t.Fill = &traits.Fill{Color: s.FillColor}
	}
	if opts.Has(StrokeOption) {
		t.Stroke = &traits.Stroke{Width: s.StrokeWidth, Color: s.StrokeColor}
	}
	if opts.Has(ShadowOption) {
		t.Shadow = &traits.Shadow{Enabled: s.Shadow}
	}
	return t
}

// smoothPath joins freehand samples with quadratic curves through the
// midpoints between them. A single sample is a bare MoveTo.
func smoothPath(pts []geom.Point) *geom.Path {
	path := geom.NewPathAt(pts[0])
	n := len(pts)
	if n == 1 {
		return path
	}
	for i := 1; i < n-1; i++ {
		path.QuadTo(pts[i], pts[i].Lerp(pts[i+1], 0.5))
	}
	path.LineTo(pts[n-1])
	return path
}

// snapLine returns the end point of a line from start towards p, snapped
// horizontal, vertical or diagonal.
func snapLine(start, p geom.Point) geom.Point {
	d := p.Sub(start)
	ax, ay := math.Abs(d.X), math.Abs(d.Y)
	switch {
	case ax/snapRatio > ay:
		return geom.Pt(p.X, start.Y)
	case ax < ay/snapRatio:
		return geom.Pt(start.X, p.Y)
	default:
		m := max(ax, ay)
		return start.Add(geom.Pt(math.Copysign(m, d.X), math.Copysign(m, d.Y)))
	}
}

// dragRect returns the normalized rect dragged from start to p.
func dragRect(start, p geom.Point, mods Modifiers) geom.Rect {
	d := p.Sub(start)
	if mods&SnapModifier != 0 {
		m := max(math.Abs(d.X), math.Abs(d.Y))
		d = geom.Pt(math.Copysign(m, d.X), math.Copysign(m, d.Y))
	}
	if mods&CenterModifier != 0 {
		return geom.RectFromPoints(start.Sub(d), start.Add(d)).Normalized()
	}
	return geom.RectFromPoints(start, start.Add(d)).Normalized()
}
