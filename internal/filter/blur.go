package filter

import (
	"image"
	"sync"
)

// BlurAlpha applies a separable Gaussian blur to mask and returns the
// result with the same bounds. Samples outside the mask count as zero.
//
// The two passes run horizontal (mask -> temp) then vertical
// (temp -> result), giving O(w*h*r) work instead of O(w*h*r²).
func BlurAlpha(mask *image.Alpha, radius float64) *image.Alpha {
	if mask == nil {
		return nil
	}
	b := mask.Bounds()
	out := image.NewAlpha(b)
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return out
	}

	k := CachedGaussianKernel(radius)
	if k.Half == 0 {
		for y := 0; y < h; y++ {
			copy(out.Pix[y*out.Stride:y*out.Stride+w], mask.Pix[y*mask.Stride:y*mask.Stride+w])
		}
		return out
	}

	temp := getTempBuffer(w * h)
	defer putTempBuffer(temp)

	blurRows(mask, temp.data, w, h, k)
	blurColumns(temp.data, out, w, h, k)
	return out
}

// blurRows convolves every row of mask into temp.
func blurRows(mask *image.Alpha, temp []float32, w, h int, k Kernel) {
	for y := 0; y < h; y++ {
		row := mask.Pix[y*mask.Stride : y*mask.Stride+w]
		for x := 0; x < w; x++ {
			var acc float32
			lo, hi := x-k.Half, x+k.Half
			for sx := max(lo, 0); sx <= min(hi, w-1); sx++ {
				acc += float32(row[sx]) * k.Weights[sx-lo]
			}
			temp[y*w+x] = acc
		}
	}
}

// blurColumns convolves every column of temp into out.
func blurColumns(temp []float32, out *image.Alpha, w, h int, k Kernel) {
	for y := 0; y < h; y++ {
		lo, hi := y-k.Half, y+k.Half
		for x := 0; x < w; x++ {
			var acc float32
			for sy := max(lo, 0); sy <= min(hi, h-1); sy++ {
				acc += temp[sy*w+x] * k.Weights[sy-lo]
			}
			out.Pix[y*out.Stride+x] = clampUint8(acc)
		}
	}
}

func clampUint8(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}

// floatBuffer wraps a slice for sync.Pool to avoid allocation warnings.
type floatBuffer struct {
	data []float32
}

var tempBufferPool = sync.Pool{
	New: func() any {
		return &floatBuffer{data: make([]float32, 256*256)}
	},
}

// getTempBuffer returns a pooled buffer with exactly size elements.
func getTempBuffer(size int) *floatBuffer {
	buf := tempBufferPool.Get().(*floatBuffer)
	if cap(buf.data) < size {
		buf.data = make([]float32, size)
	}
	buf.data = buf.data[:size]
	return buf
}

func putTempBuffer(buf *floatBuffer) {
	tempBufferPool.Put(buf)
}
