// Package cache provides a small generic memoization cache with
// least-recently-used eviction.
//
// It backs the derived-resource caches of the renderer: Gaussian kernels
// keyed by shadow radius and font faces keyed by device size. Both are
// requested with a handful of distinct keys over and over, so a soft
// limit keeps memory bounded without tuning.
package cache
