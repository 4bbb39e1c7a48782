package traits

import (
	"image"
	"math"

	"github.com/disintegration/imaging"

	"github.com/gogpu/annotate/geom"
)

// EffectKind selects the image effect of a Fill.
type EffectKind uint8

const (
	Blur     EffectKind = EffectKind(FillBlur)
	Pixelate EffectKind = EffectKind(FillPixelate)
)

// Blur sigma limits. Below the minimum the effect is nearly invisible;
// above the maximum colour splotches appear.
const (
	minBlurSigma = 0.5
	maxBlurSigma = 60
)

// minPixelateFactor is the smallest block size that visibly pixelates.
const minPixelateFactor = 2

// ImageFunc produces the image an effect is applied to, in device pixels
// with its origin at logical (0, 0).
type ImageFunc func() image.Image

// Effect is a blur or pixelate filter over everything painted before the
// object. The filtered image is cached per scale and strength.
type Effect struct {
	kind     EffectKind
	strength float64

	cache         *image.NRGBA
	cacheScale    float64
	cacheStrength float64
}

// NewBlur returns a blur effect with the given strength in [0, 1].
func NewBlur(strength float64) *Effect {
	return &Effect{kind: Blur, strength: ClampStrength(strength)}
}

// NewPixelate returns a pixelate effect with the given strength in [0, 1].
func NewPixelate(strength float64) *Effect {
	return &Effect{kind: Pixelate, strength: ClampStrength(strength)}
}

// ClampStrength limits s to [0, 1]. NaN maps to 0 and infinities to 1.
func ClampStrength(s float64) float64 {
	switch {
	case math.IsNaN(s):
		return 0
	case math.IsInf(s, 0):
		return 1
	}
	return geom.Clamp(s, 0, 1)
}

// Kind returns the effect kind.
func (e *Effect) Kind() EffectKind { return e.kind }

// Strength returns the effect strength in [0, 1].
func (e *Effect) Strength() float64 { return e.strength }

// SetStrength changes the strength and drops the cache if it changed.
func (e *Effect) SetStrength(s float64) {
	s = ClampStrength(s)
	if s == e.strength {
		return
	}
	e.strength = s
	e.Invalidate()
}

// Invalidate drops the cached image. Call it when the content below the
// object may have changed.
func (e *Effect) Invalidate() {
	e.cache = nil
}

// Cached reports whether a filtered image is cached.
func (e *Effect) Cached() bool {
	return e.cache != nil
}

// Clone returns a copy with an empty cache.
func (e *Effect) Clone() *Effect {
	return &Effect{kind: e.kind, strength: e.strength}
}

// Image returns the filtered pixels under rect, a logical rect in the
// coordinate space of src. The result keeps device-pixel bounds, so its
// Min is where it belongs on the canvas. Nil means src produced nothing.
func (e *Effect) Image(src ImageFunc, rect geom.Rect, scale float64) *image.NRGBA {
	if e.cache == nil || e.cacheScale != scale || e.cacheStrength != e.strength {
		if src == nil {
			return nil
		}
		img := src()
		if img == nil || img.Bounds().Empty() {
			return nil
		}
		switch e.kind {
		case Pixelate:
			e.cache = pixelate(img, PixelateFactor(e.strength, scale))
		default:
			e.cache = blur(img, BlurSigma(e.strength, scale))
		}
		e.cacheScale, e.cacheStrength = scale, e.strength
	}

	r := rect.Scaled(scale).AlignedOut().Intersect(e.cache.Bounds())
	if r == e.cache.Bounds() {
		return e.cache
	}
	return e.cache.SubImage(r).(*image.NRGBA)
}

// BlurSigma returns the Gaussian standard deviation for a blur strength at
// the given device scale.
func BlurSigma(strength, scale float64) float64 {
	lo, hi := 1*scale, 16*scale
	return geom.Clamp(ClampStrength(strength)*(hi-lo)+lo, minBlurSigma, maxBlurSigma)
}

// PixelateFactor returns the block size in device pixels for a pixelate
// strength at the given device scale.
func PixelateFactor(strength, scale float64) int {
	lo, hi := minPixelateFactor*scale, 16*scale
	return int(max(math.Round(ClampStrength(strength)*(hi-lo)+lo), minPixelateFactor))
}

// blur downsamples by up to a quarter of sigma before blurring so large
// radii stay cheap, then scales back up smoothly.
func blur(img image.Image, sigma float64) *image.NRGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	down := max(1, int(math.Floor(sigma/4)))
	if down == 1 {
		return imaging.Blur(img, sigma)
	}
	small := imaging.Resize(img, max(1, w/down), max(1, h/down), imaging.Linear)
	small = imaging.Blur(small, sigma/float64(down))
	return imaging.Resize(small, w, h, imaging.Linear)
}

// pixelate averages blocks of factor pixels, then scales back up without
// smoothing so the blocks stay sharp.
func pixelate(img image.Image, factor int) *image.NRGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	sw := max(1, int(math.Round(float64(w)/float64(factor))))
	sh := max(1, int(math.Round(float64(h)/float64(factor))))
	small := imaging.Resize(img, sw, sh, imaging.Linear)
	return imaging.Resize(small, w, h, imaging.NearestNeighbor)
}
