// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package surface provides the 2D drawing target annotations are painted on.
//
// A Surface works in logical coordinates. Each surface has an origin (the
// logical point at its top-left device pixel) and a device scale, so a
// logical point p lands on device pixel (p - origin) * scale.
//
// # Backends
//
// ImageSurface is the built-in CPU backend. It rasterises path coverage
// with gg, draws glyphs with gg/text and composites through the
// premultiplied blend functions in internal/blend.
//
// Other backends register themselves by name:
//
//	func init() {
//	    surface.Register("mybackend", 50, newMyBackend, nil)
//	}
//
// and are created with NewSurfaceByName or, picking the highest-priority
// available backend, NewSurface.
//
// # Example
//
//	s := surface.NewImageSurface(surface.Options{Width: 800, Height: 600, Scale: 2})
//	defer s.Close()
//
//	p := geom.NewPath()
//	p.Ellipse(geom.NewRect(10, 10, 100, 50))
//	s.FillPath(p, surface.FillStyle{Color: color.RGBA{255, 0, 0, 255}})
//
//	img := s.Snapshot()
package surface
