package geom

import (
	"image"
	"math"

	"golang.org/x/exp/constraints"
)

// clamp limits v to [lo, hi]. When hi < lo, lo wins.
func clamp[T constraints.Float | constraints.Integer](v, lo, hi T) T {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}

// Clamp limits v to [lo, hi].
func Clamp[T constraints.Float | constraints.Integer](v, lo, hi T) T {
	return clamp(v, lo, hi)
}

// DPX returns the logical length of one device pixel at the given scale.
func DPX(scale float64) float64 {
	return 1 / scale
}

// DPRRound rounds v to the nearest device pixel boundary.
func DPRRound(v, scale float64) float64 {
	return math.Round(v*scale) / scale
}

// DPRCeil rounds v up to a device pixel boundary.
func DPRCeil(v, scale float64) float64 {
	return math.Ceil(v*scale) / scale
}

// DPRFloor rounds v down to a device pixel boundary.
func DPRFloor(v, scale float64) float64 {
	return math.Floor(v*scale) / scale
}

// RawSize returns the device pixel size of a logical size at scale.
func RawSize(size Point, scale float64) image.Point {
	return image.Pt(int(math.Round(size.X*scale)), int(math.Round(size.Y*scale)))
}

// EllipseContains reports whether p lies inside the ellipse inscribed in r.
func EllipseContains(r Rect, p Point) bool {
	n := r.Normalized()
	rx, ry := n.Width()/2, n.Height()/2
	if rx <= 0 || ry <= 0 {
		return false
	}
	c := n.Center()
	dx, dy := (p.X-c.X)/rx, (p.Y-c.Y)/ry
	return dx*dx+dy*dy <= 1
}
