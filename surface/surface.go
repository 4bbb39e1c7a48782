// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"image"
	"image/color"

	"github.com/gogpu/gg/text"

	"github.com/gogpu/annotate/geom"
	"github.com/gogpu/annotate/internal/blend"
)

// Surface is a logical-coordinate drawing target backed by device pixels.
//
// Drawing outside the clip rect set with SetClip has no effect. All
// methods are no-ops after Close.
type Surface interface {
	// Width returns the width in device pixels.
	Width() int

	// Height returns the height in device pixels.
	Height() int

	// Scale returns the number of device pixels per logical unit.
	Scale() float64

	// Origin returns the logical point at device pixel (0, 0).
	Origin() geom.Point

	// Clear makes the logical rect r fully transparent.
	Clear(r geom.Rect)

	// SetClip restricts drawing to the logical rect r.
	SetClip(r geom.Rect)

	// ResetClip removes the clip rect.
	ResetClip()

	// FillPath fills path with the non-zero winding rule.
	FillPath(path *geom.Path, style FillStyle)

	// DrawImage composites img with source-over. Pixel (0, 0) of img's
	// coordinate space lands on the logical point at; a non-nil clip path
	// limits the drawn area.
	DrawImage(img image.Image, at geom.Point, clip *geom.Path)

	// DrawMask fills the coverage in mask with c, positioned like DrawImage.
	DrawMask(mask *image.Alpha, at geom.Point, c color.Color)

	// DrawText draws a single line of text with its baseline origin at
	// the logical point baseline. The face is given at logical size.
	DrawText(s string, face text.Face, baseline geom.Point, c color.Color)

	// Snapshot returns a copy of the device pixels.
	Snapshot() *image.RGBA

	// Close releases the surface.
	Close() error
}

// FillStyle defines how FillPath paints.
type FillStyle struct {
	// Color is the fill colour. Nil paints nothing.
	Color color.Color

	// Blend selects the composition of the fill over existing pixels.
	// The zero value is source-over.
	Blend blend.Mode
}

// Options configures a new surface.
type Options struct {
	// Width and Height are the device pixel size.
	Width  int
	Height int

	// Scale is the number of device pixels per logical unit.
	// Zero means 1.
	Scale float64

	// Origin is the logical point at device pixel (0, 0).
	Origin geom.Point
}

func (o Options) normalized() Options {
	if o.Width <= 0 {
		o.Width = 1
	}
	if o.Height <= 0 {
		o.Height = 1
	}
	if o.Scale <= 0 {
		o.Scale = 1
	}
	return o
}

// DeviceMatrix returns the logical to device transform of s.
func DeviceMatrix(s Surface) geom.Matrix {
	return deviceMatrix(s.Origin(), s.Scale())
}

func deviceMatrix(origin geom.Point, scale float64) geom.Matrix {
	return geom.Scale(scale, scale).Multiply(geom.Translate(-origin.X, -origin.Y))
}

// toRGBA converts c to premultiplied 8-bit RGBA.
func toRGBA(c color.Color) color.RGBA {
	if c == nil {
		return color.RGBA{}
	}
	r, g, b, a := c.RGBA()
	return color.RGBA{
		R: uint8(r >> 8), //nolint:gosec // G115: r>>8 is always in [0, 255]
		G: uint8(g >> 8), //nolint:gosec // G115
		B: uint8(b >> 8), //nolint:gosec // G115
		A: uint8(a >> 8), //nolint:gosec // G115
	}
}
