// Package geom provides the vector geometry used by annotations: points,
// rects, affine matrices and paths.
//
// Points, matrices and path elements are gg's own types, and Path is backed
// by a gg.Path. The package adds what annotations need on top: point-based
// path building, per-subpath flattening, area union and overlap tests, and
// rect arithmetic in logical and device units.
//
// Paths follow fill semantics for area queries. A subpath that is not
// explicitly closed is closed implicitly by Contains, Winding, SignedArea,
// Intersects and Union, the same way a rasterizer closes it when filling.
//
// A path is empty when it has no elements or only a single MoveTo. Such a
// path marks a position but draws nothing.
package geom
