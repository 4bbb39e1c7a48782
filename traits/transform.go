package traits

import (
	"math"

	"github.com/gogpu/annotate/geom"
)

// Transform applies m to the geometry and every cached derived value of t.
//
// A translation moves cached paths in place. Anything else remaps them,
// which keeps a scaled stroke outline consistent with the scaled geometry
// without re-stroking. Objects with Text only ever translate.
func Transform(m geom.Matrix, t *Traits) {
	if m.IsIdentity() || t == nil {
		return
	}
	translate := m.IsTranslation() || t.Text != nil
	d := geom.Translation(m)

	if g := t.Geometry; g != nil {
		if translate {
			g.Path.Translate(d)
			g.MousePath.Translate(d)
			g.VisualRect = g.VisualRect.Translated(d)
		} else {
			g.Path = g.Path.Transform(m)
			if g.MousePath != nil {
				g.MousePath = g.MousePath.Transform(m)
			}
			g.VisualRect = geom.TransformRect(m, g.VisualRect)
		}
	}
	if s := t.Stroke; s != nil && s.Path != nil {
		if translate {
			s.Path.Translate(d)
		} else {
			s.Path = s.Path.Transform(m)
		}
	}
}

// Scale is a pair of axis scale factors.
type Scale struct {
	SX, SY float64
}

// ScaleForSize returns the factors that turn oldSize into newSize. Sizes
// smaller than one unit are treated as one so nothing divides by zero; the
// sign of oldSize is kept.
func ScaleForSize(oldSize, newSize geom.Point) Scale {
	wDiv := math.Max(1, math.Abs(oldSize.X)) * math.Copysign(1, oldSize.X)
	hDiv := math.Max(1, math.Abs(oldSize.Y)) * math.Copysign(1, oldSize.Y)
	return Scale{SX: newSize.X / wDiv, SY: newSize.Y / hDiv}
}

// UnTranslateScale returns the translation that cancels the drift a scale
// by (sx, sy) about the origin gives to p.
func UnTranslateScale(sx, sy float64, p geom.Point) geom.Point {
	return geom.Pt(-p.X*sx+p.X, -p.Y*sy+p.Y)
}
