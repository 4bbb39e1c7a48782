// Package traits describes annotation objects as tuples of independently
// optional attributes.
//
// Which attributes are present decides what an object is: a freehand or
// highlighter stroke has Geometry and Stroke, an arrow adds Arrow, a
// rectangle may add Fill, a text box carries Text instead of Stroke.
// Dependent geometry (text box, stroke outline, hit-test path, visual
// bounds) is derived on demand and cached in Geometry.
package traits

import (
	"image/color"

	"github.com/gogpu/annotate/geom"
)

// Traits is one snapshot of an annotation's attributes. A nil field means
// the attribute is absent.
type Traits struct {
	Geometry  *Geometry
	Stroke    *Stroke
	Fill      *Fill
	Highlight *Highlight
	Arrow     *Arrow
	Text      *Text
	Shadow    *Shadow
	Delete    *Delete
	Crop      *Crop
}

// Geometry is the base shape of an object plus the values derived from it.
type Geometry struct {
	// Path is the base geometry. Text objects keep only their anchor point
	// here until the text box is derived.
	Path *geom.Path
	// MousePath is the generous hit-test area. Nil until a full derivation.
	MousePath *geom.Path
	// VisualRect bounds everything the object paints, shadow included.
	VisualRect geom.Rect
}

// Stroke is a round-capped, round-joined pen and its filled outline.
type Stroke struct {
	Width float64
	Color color.Color
	// Path is the derived outline. Paint it with a fill, not a pen.
	Path *geom.Path
}

// FillKind identifies the variant held by a Fill.
type FillKind uint8

const (
	FillBrush FillKind = iota
	FillBlur
	FillPixelate
)

// Fill is either a solid colour or an image effect.
type Fill struct {
	// Color is the brush colour. Ignored when Effect is set.
	Color  color.Color
	Effect *Effect
}

// Kind reports which variant f holds.
func (f *Fill) Kind() FillKind {
	if f.Effect != nil {
		return FillKind(f.Effect.kind)
	}
	return FillBrush
}

// Highlight marks an object painted with darken composition.
type Highlight struct{}

// Arrow marks a line whose last segment ends in an arrow head.
type Arrow struct{}

// Shadow constants, in logical pixels.
const (
	ShadowRadius  = 2
	ShadowXOffset = 2
	ShadowYOffset = 2
)

// ShadowMargins grow a visual rect so it contains the shadow:
// left, top, right, bottom.
var ShadowMargins = [4]float64{
	max(0, ShadowRadius-ShadowXOffset),
	max(0, ShadowRadius-ShadowYOffset),
	max(0, ShadowRadius+ShadowXOffset),
	max(0, ShadowRadius+ShadowYOffset),
}

// Shadow adds a soft drop shadow when enabled.
type Shadow struct {
	Enabled bool
}

// Delete marks an item that hides its parent.
type Delete struct{}

// Crop marks an item whose geometry bounds are the new canvas rect.
type Crop struct{}

// Clone returns a deep copy of t. Paths are copied, font faces are shared
// and effects get an empty cache.
func (t *Traits) Clone() *Traits {
	if t == nil {
		return nil
	}
	c := &Traits{}
	if t.Geometry != nil {
		c.Geometry = &Geometry{
			Path:       t.Geometry.Path.Clone(),
			MousePath:  t.Geometry.MousePath.Clone(),
			VisualRect: t.Geometry.VisualRect,
		}
	}
	if t.Stroke != nil {
		s := *t.Stroke
		s.Path = t.Stroke.Path.Clone()
		c.Stroke = &s
	}
	if t.Fill != nil {
		f := *t.Fill
		if t.Fill.Effect != nil {
			f.Effect = t.Fill.Effect.Clone()
		}
		c.Fill = &f
	}
	if t.Highlight != nil {
		c.Highlight = &Highlight{}
	}
	if t.Arrow != nil {
		c.Arrow = &Arrow{}
	}
	if t.Text != nil {
		txt := *t.Text
		c.Text = &txt
	}
	if t.Shadow != nil {
		sh := *t.Shadow
		c.Shadow = &sh
	}
	if t.Delete != nil {
		c.Delete = &Delete{}
	}
	if t.Crop != nil {
		c.Crop = &Crop{}
	}
	return c
}

// GeometryPath returns the base path, or nil.
func (t *Traits) GeometryPath() *geom.Path {
	if t == nil || t.Geometry == nil {
		return nil
	}
	return t.Geometry.Path
}

// GeometryBounds returns the bounding box of the base path.
func (t *Traits) GeometryBounds() geom.Rect {
	return t.GeometryPath().BoundingBox()
}

// MousePath returns the hit-test path, or nil.
func (t *Traits) MousePath() *geom.Path {
	if t == nil || t.Geometry == nil {
		return nil
	}
	return t.Geometry.MousePath
}

// VisualRect returns the painted bounds, or the zero Rect.
func (t *Traits) VisualRect() geom.Rect {
	if t == nil || t.Geometry == nil {
		return geom.Rect{}
	}
	return t.Geometry.VisualRect
}

// HasShadow reports whether a shadow is present and enabled.
func (t *Traits) HasShadow() bool {
	return t != nil && t.Shadow != nil && t.Shadow.Enabled
}
