package filter

import (
	"math"

	"github.com/gogpu/annotate/internal/cache"
)

// Kernel is a normalized, symmetric 1D convolution kernel.
type Kernel struct {
	// Weights has 2*Half+1 entries summing to 1.
	Weights []float32
	// Half is the number of taps on each side of the center.
	Half int
}

// identityKernel leaves its input unchanged.
var identityKernel = Kernel{Weights: []float32{1}}

// GaussianKernel generates a Gaussian kernel using radius as sigma.
// The kernel spans ceil(3*sigma) taps on each side, which covers 99.7% of
// the distribution. For radius <= 0 it returns the identity kernel.
func GaussianKernel(radius float64) Kernel {
	if radius <= 0 || math.IsNaN(radius) {
		return identityKernel
	}

	half := int(math.Ceil(radius * 3))
	weights := make([]float32, 2*half+1)
	twoSigmaSq := 2 * radius * radius

	var sum float64
	for i := range weights {
		x := float64(i - half)
		w := math.Exp(-(x * x) / twoSigmaSq)
		weights[i] = float32(w)
		sum += w
	}
	inv := float32(1 / sum)
	for i := range weights {
		weights[i] *= inv
	}
	return Kernel{Weights: weights, Half: half}
}

// kernels memoizes Gaussian kernels by radius quantized to 0.01.
var kernels = cache.New[int, Kernel](32)

// CachedGaussianKernel returns a cached Gaussian kernel for the radius.
// Shadow radii depend only on the device scale, so the same few kernels
// are requested for every item.
func CachedGaussianKernel(radius float64) Kernel {
	key := int(math.Round(radius * 100))
	return kernels.GetOrCreate(key, func() Kernel {
		return GaussianKernel(float64(key) / 100)
	})
}
