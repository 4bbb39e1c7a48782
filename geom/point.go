package geom

import (
	"math"

	"github.com/gogpu/gg"
)

// Point is a 2D point or vector in logical canvas units.
type Point = gg.Point

// Pt is a convenience function to create a Point.
func Pt(x, y float64) Point {
	return gg.Pt(x, y)
}

// Angle returns the direction of the vector v in radians.
func Angle(v Point) float64 {
	return math.Atan2(v.Y, v.X)
}

// Polar returns the point at distance length from p in direction angle (radians).
func Polar(p Point, length, angle float64) Point {
	sin, cos := math.Sincos(angle)
	return Point{X: p.X + length*cos, Y: p.Y + length*sin}
}
