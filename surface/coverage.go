// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"image"
	"image/color"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"

	"github.com/gogpu/annotate/geom"
)

// Coverage rasterises path after transforming it by m and returns its
// anti-aliased coverage within bounds, in device coordinates. It returns
// nil when nothing is covered.
func Coverage(path *geom.Path, m geom.Matrix, bounds image.Rectangle) *image.Alpha {
	if path.IsEmpty() || bounds.Empty() {
		return nil
	}
	dp := path.Transform(m)
	// One extra pixel for anti-aliasing spill.
	box := dp.BoundingBox().AlignedOut().Inset(-1).Intersect(bounds)
	if box.Empty() {
		return nil
	}

	dc := gg.NewContext(box.Dx(), box.Dy())
	defer func() { _ = dc.Close() }()
	tracePath(dc, dp, geom.Pt(-float64(box.Min.X), -float64(box.Min.Y)))

	mask := dc.AsMask()
	out := image.NewAlpha(box)
	covered := false
	for y := 0; y < box.Dy(); y++ {
		row := out.Pix[y*out.Stride : y*out.Stride+box.Dx()]
		for x := range row {
			row[x] = mask.At(x, y)
			covered = covered || row[x] != 0
		}
	}
	if !covered {
		return nil
	}
	return out
}

// TextCoverage rasterises a single line of text with its baseline at the
// logical point baseline and returns its coverage within bounds. The face
// is given at logical size and scaled by m's horizontal scale.
func TextCoverage(s string, face text.Face, baseline geom.Point, m geom.Matrix, bounds image.Rectangle) *image.Alpha {
	if s == "" || face == nil || bounds.Empty() {
		return nil
	}
	out := image.NewAlpha(bounds)
	at := m.TransformPoint(baseline)
	text.Draw(out, s, deviceFace(face, m.A), at.X, at.Y, color.Opaque)
	return out
}

// tracePath replays p into dc shifted by off.
func tracePath(dc *gg.Context, p *geom.Path, off geom.Point) {
	for _, el := range p.Elements() {
		switch e := el.(type) {
		case geom.MoveTo:
			q := e.Point.Add(off)
			dc.MoveTo(q.X, q.Y)
		case geom.LineTo:
			q := e.Point.Add(off)
			dc.LineTo(q.X, q.Y)
		case geom.QuadTo:
			c, q := e.Control.Add(off), e.Point.Add(off)
			dc.QuadraticTo(c.X, c.Y, q.X, q.Y)
		case geom.CubicTo:
			c1, c2, q := e.Control1.Add(off), e.Control2.Add(off), e.Point.Add(off)
			dc.CubicTo(c1.X, c1.Y, c2.X, c2.Y, q.X, q.Y)
		case geom.Close:
			dc.ClosePath()
		}
	}
}

// deviceFace returns face at scale times its size.
func deviceFace(face text.Face, scale float64) text.Face {
	src := face.Source()
	if scale == 1 || src == nil {
		return face
	}
	size := face.Size() * scale
	return faces.GetOrCreate(faceKey{src: src, size: size}, func() text.Face {
		return src.Face(size)
	})
}
