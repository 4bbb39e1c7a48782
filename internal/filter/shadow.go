package filter

import "image"

// ShadowAlpha is the peak alpha of an annotation shadow, reached under
// fully opaque content.
const ShadowAlpha = 28

// Accumulate composites src over dst, both coverage masks with identical
// bounds, after scaling src by alpha/255.
func Accumulate(dst, src *image.Alpha, alpha uint8) {
	if dst == nil || src == nil || alpha == 0 {
		return
	}
	b := dst.Bounds().Intersect(src.Bounds())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		di := dst.PixOffset(b.Min.X, y)
		si := src.PixOffset(b.Min.X, y)
		for x := 0; x < b.Dx(); x++ {
			s := uint32(src.Pix[si+x]) * uint32(alpha) / 255
			d := uint32(dst.Pix[di+x])
			dst.Pix[di+x] = uint8(s + d*(255-s)/255)
		}
	}
}

// DropShadow turns an accumulated coverage mask into a soft shadow mask by
// scaling it to ShadowAlpha and blurring it with radius.
func DropShadow(coverage *image.Alpha, radius float64) *image.Alpha {
	if coverage == nil {
		return nil
	}
	scaled := image.NewAlpha(coverage.Bounds())
	Accumulate(scaled, coverage, ShadowAlpha)
	return BlurAlpha(scaled, radius)
}
