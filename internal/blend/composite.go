package blend

import (
	"image"
	"image/color"
)

// FillMask paints the premultiplied color c into dst over r, modulated by
// mask coverage. The mask shares dst's coordinate space; pixels outside the
// mask bounds are left untouched. A nil mask means full coverage.
func FillMask(dst *image.RGBA, r image.Rectangle, c color.RGBA, mask *image.Alpha, mode Mode) {
	r = r.Intersect(dst.Bounds())
	if mask != nil {
		r = r.Intersect(mask.Bounds())
	}
	if r.Empty() || (c.A == 0 && mode != Source) {
		return
	}

	fn := GetFunc(mode)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		di := dst.PixOffset(r.Min.X, y)
		mi := -1
		if mask != nil {
			mi = mask.PixOffset(r.Min.X, y)
		}
		for x := 0; x < r.Dx(); x, di = x+1, di+4 {
			cr, cg, cb, ca := c.R, c.G, c.B, c.A
			if mi >= 0 {
				m := mask.Pix[mi+x]
				if m == 0 {
					continue
				}
				if m != 255 {
					cr, cg, cb, ca = premultiply(cr, m), premultiply(cg, m), premultiply(cb, m), premultiply(ca, m)
				}
			}
			p := dst.Pix[di : di+4 : di+4]
			p[0], p[1], p[2], p[3] = fn(cr, cg, cb, ca, p[0], p[1], p[2], p[3])
		}
	}
}

// DrawImage composites src onto dst over r. The source pixel for dst point
// p is src at sp + (p - r.Min). A non-nil mask in dst coordinates clips the
// drawing with its coverage.
func DrawImage(dst *image.RGBA, r image.Rectangle, src *image.RGBA, sp image.Point, mask *image.Alpha, mode Mode) {
	clipped := r.Intersect(dst.Bounds())
	if mask != nil {
		clipped = clipped.Intersect(mask.Bounds())
	}
	// Keep the source in range.
	clipped = clipped.Intersect(src.Bounds().Add(r.Min.Sub(sp)))
	if clipped.Empty() {
		return
	}
	sp = sp.Add(clipped.Min.Sub(r.Min))

	fn := GetFunc(mode)
	for y := 0; y < clipped.Dy(); y++ {
		di := dst.PixOffset(clipped.Min.X, clipped.Min.Y+y)
		si := src.PixOffset(sp.X, sp.Y+y)
		mi := -1
		if mask != nil {
			mi = mask.PixOffset(clipped.Min.X, clipped.Min.Y+y)
		}
		for x := 0; x < clipped.Dx(); x, di, si = x+1, di+4, si+4 {
			s := src.Pix[si : si+4 : si+4]
			sr, sg, sb, sa := s[0], s[1], s[2], s[3]
			if mi >= 0 {
				m := mask.Pix[mi+x]
				if m == 0 {
					continue
				}
				if m != 255 {
					sr, sg, sb, sa = premultiply(sr, m), premultiply(sg, m), premultiply(sb, m), premultiply(sa, m)
				}
			}
			p := dst.Pix[di : di+4 : di+4]
			p[0], p[1], p[2], p[3] = fn(sr, sg, sb, sa, p[0], p[1], p[2], p[3])
		}
	}
}
