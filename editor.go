package annotate

import (
	"image/color"
	"math"

	"github.com/gogpu/gg/text"

	"github.com/gogpu/annotate/geom"
	"github.com/gogpu/annotate/history"
	"github.com/gogpu/annotate/traits"
)

// Capabilities are the edits the selected item supports.
type Capabilities uint16

const (
	EditStroke Capabilities = 1 << iota
	EditFill
	EditStrength
	EditFont
	EditText
	EditNumber
	EditShadow
)

// Has reports whether all of o are set.
func (c Capabilities) Has(o Capabilities) bool {
	return c&o == o
}

// Edges selects the sides of an item's bounds a resize moves.
type Edges uint8

const (
	LeftEdge Edges = 1 << iota
	TopEdge
	RightEdge
	BottomEdge
)

// Editor edits the selected item through a detached scratch copy. The
// document paints the scratch copy in place of the selection until the
// edit is committed as a new item or dropped.
type Editor struct {
	doc      *Document
	selected history.Handle
	temp     *traits.Traits
	caps     Capabilities
	modified bool
}

// Selected returns the selected item.
func (e *Editor) Selected() (history.Handle, bool) {
	return e.selected, e.temp != nil
}

// Item returns the scratch copy of the selection, or nil.
func (e *Editor) Item() *traits.Traits { return e.temp }

// Capabilities returns the edits the selection supports.
func (e *Editor) Capabilities() Capabilities { return e.caps }

// Modified reports whether the scratch copy has uncommitted edits.
func (e *Editor) Modified() bool { return e.modified }

// SetSelectedItem selects h. Items that can never paint are rejected and
// leave nothing selected.
func (e *Editor) SetSelectedItem(h history.Handle) bool {
	t := e.doc.hist.Traits(h)
	if !t.CanBeVisible() {
		e.Reset()
		return false
	}
	e.selected = h
	e.temp = t.Clone()
	e.caps = capabilitiesOf(e.temp)
	e.modified = false
	return true
}

func capabilitiesOf(t *traits.Traits) Capabilities {
	var c Capabilities
	if t.Stroke != nil {
		c |= EditStroke
	}
	if t.Fill != nil {
		switch t.Fill.Kind() {
		case traits.FillBrush:
			c |= EditFill
		case traits.FillBlur, traits.FillPixelate:
			c |= EditStrength
		}
	}
	if t.Text != nil {
		c |= EditFont
		switch t.Text.Kind {
		case traits.TextString:
			c |= EditText
		case traits.TextNumber:
			c |= EditNumber
		}
	}
	if t.Shadow != nil {
		c |= EditShadow
	}
	return c
}

// Reset drops the selection and its scratch copy without repainting. It
// reports whether there was a selection.
func (e *Editor) Reset() bool {
	had := e.temp != nil
	e.selected = history.Handle{}
	e.temp = nil
	e.caps = 0
	e.modified = false
	return had
}

// Transform moves the scratch copy by (dx, dy). With edges set it resizes
// instead, keeping the opposite edges fixed. Text only moves.
func (e *Editor) Transform(dx, dy float64, edges Edges) bool {
	if e.temp == nil || (dx == 0 && dy == 0) {
		return false
	}
	e.doc.SetRepaintRegion(e.temp.VisualRect())
	if edges == 0 || e.temp.Text != nil {
		traits.Transform(geom.Translate(dx, dy), e.temp)
	} else {
		e.resize(dx, dy, edges)
	}
	e.modified = true
	e.doc.SetRepaintRegion(e.temp.VisualRect())
	return true
}

func (e *Editor) resize(dx, dy float64, edges Edges) {
	r := e.temp.GeometryBounds()
	moved := r
	anchor := r.Min
	switch {
	case edges&LeftEdge != 0:
		moved.Min.X += dx
		anchor.X = r.Max.X
	case edges&RightEdge != 0:
		moved.Max.X += dx
	}
	switch {
	case edges&TopEdge != 0:
		moved.Min.Y += dy
		anchor.Y = r.Max.Y
	case edges&BottomEdge != 0:
		moved.Max.Y += dy
	}

	s := traits.ScaleForSize(r.Size(), atLeastUnit(moved.Size()))
	// Translate after scaling about the origin so the anchor stays put.
	off := traits.UnTranslateScale(s.SX, s.SY, anchor)
	m := geom.Translate(off.X, off.Y).Multiply(geom.Scale(s.SX, s.SY))
	traits.Transform(m, e.temp)
	e.temp.ClearForInit()
	e.temp.FastInit()
}

// atLeastUnit keeps each component of size at least one unit in magnitude.
func atLeastUnit(size geom.Point) geom.Point {
	if math.Abs(size.X) < 1 {
		size.X = math.Copysign(1, size.X)
	}
	if math.Abs(size.Y) < 1 {
		size.Y = math.Copysign(1, size.Y)
	}
	return size
}

// CommitChanges pushes the scratch copy as a new item replacing the
// selection, and selects it. Unchanged or invalid scratch copies are not
// committed. An unfinished invalid selection at the top of the history is
// replaced outright instead of becoming the new item's parent.
func (e *Editor) CommitChanges() (history.Handle, bool) {
	if e.temp == nil || !e.modified || !e.temp.IsValid() {
		return history.Handle{}, false
	}
	d := e.doc
	orig, t := e.selected, e.temp
	t.Init()
	d.SetRepaintRegion(d.hist.RenderRect(orig))

	var (
		h  history.Handle
		ch history.Changes
	)
	if d.hist.Current() == orig && !d.hist.IsValid(orig) {
		d.hist.Pop()
		h, ch = d.hist.Push(t, history.Handle{})
	} else {
		h, ch = d.hist.Push(t, orig)
	}
	e.Reset()
	e.SetSelectedItem(h)
	d.SetRepaintRegion(t.VisualRect())
	d.invalidateEffects()
	d.historyChanged(ch)
	return h, true
}

// edit applies fn to the scratch copy if the selection supports need,
// then re-derives it. Text keeps its anchor.
func (e *Editor) edit(need Capabilities, fn func(t *traits.Traits)) bool {
	if e.temp == nil || !e.caps.Has(need) {
		return false
	}
	t := e.temp
	e.doc.SetRepaintRegion(t.VisualRect())
	var anchor geom.Point
	if t.Text != nil {
		anchor = traits.TextAnchor(t)
	}
	fn(t)
	t.ClearForInit()
	if t.Text != nil {
		t.Geometry.Path = geom.NewPathAt(anchor)
	}
	t.FastInit()
	e.modified = true
	e.doc.SetRepaintRegion(t.VisualRect())
	return true
}

// SetStrokeWidth sets the pen width. Negative widths become zero.
func (e *Editor) SetStrokeWidth(w float64) bool {
	return e.edit(EditStroke, func(t *traits.Traits) { t.Stroke.Width = max(0, w) })
}

// SetStrokeColor sets the pen colour.
func (e *Editor) SetStrokeColor(c color.Color) bool {
	return e.edit(EditStroke, func(t *traits.Traits) { t.Stroke.Color = c })
}

// SetFillColor sets the brush colour of a solid fill.
func (e *Editor) SetFillColor(c color.Color) bool {
	return e.edit(EditFill, func(t *traits.Traits) { t.Fill.Color = c })
}

// SetStrength sets the blur or pixelate strength.
func (e *Editor) SetStrength(s float64) bool {
	return e.edit(EditStrength, func(t *traits.Traits) { t.Fill.Effect.SetStrength(s) })
}

// SetFontFace sets the text face.
func (e *Editor) SetFontFace(face text.Face) bool {
	if face == nil {
		return false
	}
	return e.edit(EditFont, func(t *traits.Traits) { t.Text.Face = face })
}

// SetFontColor sets the text colour.
func (e *Editor) SetFontColor(c color.Color) bool {
	return e.edit(EditFont, func(t *traits.Traits) { t.Text.Color = c })
}

// SetText sets the string of a text item.
func (e *Editor) SetText(s string) bool {
	return e.edit(EditText, func(t *traits.Traits) { t.Text.Value = s })
}

// SetNumber sets the number of a number marker.
func (e *Editor) SetNumber(n int) bool {
	return e.edit(EditNumber, func(t *traits.Traits) { t.Text.Number = n })
}

// SetShadow turns the drop shadow on or off.
func (e *Editor) SetShadow(on bool) bool {
	return e.edit(EditShadow, func(t *traits.Traits) { t.Shadow.Enabled = on })
}
