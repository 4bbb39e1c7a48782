package traits

import "image/color"

func geometryWellFormed(g *Geometry) bool {
	return !g.Path.IsEmpty() && !g.VisualRect.IsEmpty()
}

func strokeWellFormed(s *Stroke) bool {
	return !s.Path.IsEmpty()
}

func fillWellFormed(f *Fill) bool {
	if f.Effect != nil {
		return true
	}
	return visibleColor(f.Color)
}

func textWellFormed(t *Text) bool {
	return t.Color != nil && (t.Kind == TextNumber || t.Value != "")
}

func visibleColor(c color.Color) bool {
	if c == nil {
		return false
	}
	_, _, _, a := c.RGBA()
	return a != 0
}

// geometryValid reports whether Geometry is present and well formed.
func (t *Traits) geometryValid() bool {
	return t.Geometry != nil && geometryWellFormed(t.Geometry)
}

// anyPaintWellFormed reports whether one of Stroke, Fill or Text is present
// and well formed on its own.
func (t *Traits) anyPaintWellFormed() bool {
	return (t.Stroke != nil && strokeWellFormed(t.Stroke)) ||
		(t.Fill != nil && fillWellFormed(t.Fill)) ||
		(t.Text != nil && textWellFormed(t.Text))
}

// IsValid reports whether every present attribute is valid. A tuple with
// no attributes is valid.
//
// Stroke, Fill, Text and Crop need valid Geometry. Highlight, Arrow and
// Shadow also need one valid paint attribute. Delete is always valid.
func (t *Traits) IsValid() bool {
	if t == nil {
		return true
	}
	geo := t.geometryValid()
	if t.Geometry != nil && !geo {
		return false
	}
	if t.Stroke != nil && !(geo && strokeWellFormed(t.Stroke)) {
		return false
	}
	if t.Fill != nil && !(geo && fillWellFormed(t.Fill)) {
		return false
	}
	if t.Text != nil && !(geo && textWellFormed(t.Text)) {
		return false
	}
	if t.Crop != nil && !geo {
		return false
	}
	decorated := geo && t.anyPaintWellFormed()
	if (t.Highlight != nil || t.Arrow != nil || t.Shadow != nil) && !decorated {
		return false
	}
	return true
}

// IsVisible reports whether t paints something: valid Geometry and at
// least one well-formed paint attribute.
func (t *Traits) IsVisible() bool {
	return t != nil && t.geometryValid() && t.anyPaintWellFormed()
}

// CanBeVisible reports whether t has the attributes needed to paint, even
// if they are not yet derived.
func (t *Traits) CanBeVisible() bool {
	return t != nil && t.Geometry != nil &&
		(t.Stroke != nil || t.Fill != nil || t.Text != nil)
}
