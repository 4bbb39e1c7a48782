// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/gogpu/gg/text"

	"github.com/gogpu/annotate/geom"
	"github.com/gogpu/annotate/internal/blend"
)

// ImageSurface is a CPU surface that renders to an *image.RGBA.
//
// Path coverage is rasterised by gg and composited with internal/blend.
// Text goes through gg/text with the face scaled to device pixels.
type ImageSurface struct {
	img    *image.RGBA
	scale  float64
	origin geom.Point
	m      geom.Matrix

	// clip is the device clip rect, always within img bounds.
	clip image.Rectangle

	closed bool
}

// NewImageSurface creates a transparent surface.
func NewImageSurface(opts Options) *ImageSurface {
	opts = opts.normalized()
	return newImageSurface(image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height)), opts)
}

// NewImageSurfaceFromImage creates a surface that renders directly into img.
// The image bounds must start at (0, 0).
func NewImageSurfaceFromImage(img *image.RGBA, scale float64, origin geom.Point) *ImageSurface {
	opts := Options{Width: img.Bounds().Dx(), Height: img.Bounds().Dy(), Scale: scale, Origin: origin}.normalized()
	return newImageSurface(img, opts)
}

func newImageSurface(img *image.RGBA, opts Options) *ImageSurface {
	return &ImageSurface{
		img:    img,
		scale:  opts.Scale,
		origin: opts.Origin,
		m:      deviceMatrix(opts.Origin, opts.Scale),
		clip:   img.Bounds(),
	}
}

// Width returns the surface width in device pixels.
func (s *ImageSurface) Width() int { return s.img.Bounds().Dx() }

// Height returns the surface height in device pixels.
func (s *ImageSurface) Height() int { return s.img.Bounds().Dy() }

// Scale returns the device scale.
func (s *ImageSurface) Scale() float64 { return s.scale }

// Origin returns the logical point at device pixel (0, 0).
func (s *ImageSurface) Origin() geom.Point { return s.origin }

// Image returns the backing image. It is shared, not copied.
func (s *ImageSurface) Image() *image.RGBA { return s.img }

// Clear makes the logical rect r transparent, within the clip.
func (s *ImageSurface) Clear(r geom.Rect) {
	if s.closed {
		return
	}
	blend.FillMask(s.img, s.deviceRect(r), color.RGBA{}, nil, blend.Source)
}

// SetClip restricts drawing to the logical rect r.
func (s *ImageSurface) SetClip(r geom.Rect) {
	s.clip = geom.TransformRect(s.m, r).AlignedOut().Intersect(s.img.Bounds())
}

// ResetClip removes the clip rect.
func (s *ImageSurface) ResetClip() {
	s.clip = s.img.Bounds()
}

// FillPath fills path with style.
func (s *ImageSurface) FillPath(path *geom.Path, style FillStyle) {
	if s.closed || style.Color == nil {
		return
	}
	c := toRGBA(style.Color)
	if c.A == 0 {
		return
	}
	mask := Coverage(path, s.m, s.clip)
	if mask == nil {
		return
	}
	blend.FillMask(s.img, mask.Bounds(), c, mask, style.Blend)
}

// DrawImage composites img with its pixel origin at the logical point at,
// optionally clipped to a path.
func (s *ImageSurface) DrawImage(img image.Image, at geom.Point, clip *geom.Path) {
	if s.closed || img == nil {
		return
	}
	off := s.devicePoint(at)
	sb := img.Bounds()
	r := sb.Add(off).Intersect(s.clip)
	if r.Empty() {
		return
	}
	var mask *image.Alpha
	if clip != nil {
		if mask = Coverage(clip, s.m, r); mask == nil {
			return
		}
		r = mask.Bounds()
	}
	src := asRGBA(img)
	blend.DrawImage(s.img, r, src, r.Min.Sub(off), mask, blend.SourceOver)
}

// DrawMask fills the coverage in mask with c. Pixel (0, 0) of the mask's
// coordinate space lands on the logical point at.
func (s *ImageSurface) DrawMask(mask *image.Alpha, at geom.Point, c color.Color) {
	if s.closed || mask == nil || c == nil {
		return
	}
	off := s.devicePoint(at)
	shifted := &image.Alpha{Pix: mask.Pix, Stride: mask.Stride, Rect: mask.Rect.Add(off)}
	blend.FillMask(s.img, shifted.Rect.Intersect(s.clip), toRGBA(c), shifted, blend.SourceOver)
}

// DrawText draws s with its baseline origin at the logical point baseline.
func (s *ImageSurface) DrawText(str string, face text.Face, baseline geom.Point, c color.Color) {
	if s.closed || str == "" || face == nil || c == nil || s.clip.Empty() {
		return
	}
	dst := s.img.SubImage(s.clip).(*image.RGBA)
	at := s.m.TransformPoint(baseline)
	text.Draw(dst, str, deviceFace(face, s.scale), at.X, at.Y, c)
}

// Snapshot returns a copy of the surface pixels.
func (s *ImageSurface) Snapshot() *image.RGBA {
	b := s.img.Bounds()
	out := image.NewRGBA(b)
	draw.Draw(out, b, s.img, b.Min, draw.Src)
	return out
}

// Close releases the surface. Further drawing is ignored.
func (s *ImageSurface) Close() error {
	s.closed = true
	return nil
}

func (s *ImageSurface) deviceRect(r geom.Rect) image.Rectangle {
	return geom.TransformRect(s.m, r).AlignedOut().Intersect(s.clip)
}

func (s *ImageSurface) devicePoint(p geom.Point) image.Point {
	d := s.m.TransformPoint(p)
	return image.Pt(int(math.Round(d.X)), int(math.Round(d.Y)))
}

// asRGBA returns img as premultiplied RGBA, converting when needed. The
// bounds are preserved.
func asRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	b := img.Bounds()
	out := image.NewRGBA(b)
	draw.Draw(out, b, img, b.Min, draw.Src)
	return out
}

var _ Surface = (*ImageSurface)(nil)
