// Package filter provides the alpha-mask filters used for annotation shadows.
//
// Shadows are computed on a single coverage channel:
//   - Gaussian blur (separable, kernels cached per radius)
//   - Drop shadow (attenuate + blur of an item's coverage mask)
//
// Pixels outside the mask are treated as transparent, so a blurred mask
// fades out at its borders instead of smearing edge pixels.
package filter
