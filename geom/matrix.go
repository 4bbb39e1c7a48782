package geom

import "github.com/gogpu/gg"

// Matrix is a 2D affine transformation in gg's row-major layout:
//
//	x' = a*x + b*y + c
//	y' = d*x + e*y + f
type Matrix = gg.Matrix

// Identity returns the identity transformation matrix.
func Identity() Matrix { return gg.Identity() }

// Translate creates a translation matrix.
func Translate(x, y float64) Matrix { return gg.Translate(x, y) }

// Scale creates a scaling matrix.
func Scale(x, y float64) Matrix { return gg.Scale(x, y) }

// ScaleAbout creates a matrix that scales by (sx, sy) while keeping
// anchor fixed. The translation is applied after the scale, so the scale
// never distorts it.
func ScaleAbout(sx, sy float64, anchor Point) Matrix {
	return Matrix{
		A: sx, C: anchor.X - anchor.X*sx,
		E: sy, F: anchor.Y - anchor.Y*sy,
	}
}

// TransformRect maps the four corners of r through m and returns their
// bounding rect.
func TransformRect(m Matrix, r Rect) Rect {
	corners := [4]Point{
		m.TransformPoint(r.Min),
		m.TransformPoint(r.TopRight()),
		m.TransformPoint(r.Max),
		m.TransformPoint(r.BottomLeft()),
	}
	out := PointRect(corners[0])
	for _, c := range corners[1:] {
		out = out.extend(c)
	}
	return out
}

// Translation returns the translation component of m.
func Translation(m Matrix) Point {
	return Point{X: m.C, Y: m.F}
}
