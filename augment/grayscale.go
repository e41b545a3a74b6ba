// Copyright 2026 Strand ML Toolkit. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package augment

import (
	"fmt"
	"math/rand"

	"github.com/strand-ml/strand/tensor"
)

// grayGeom validates a [batch, h*w] tensor and returns its row count.
func grayGeom(batch *tensor.Tensor, h, w int) int {
	shape := batch.Shape()
	if len(shape) != 2 || shape[1] != h*w {
		panic(fmt.Sprintf("augment: grayscale batch must be [n, %d], got %v", h*w, shape))
	}
	return shape[0]
}

// mapGray applies a per-image inverse coordinate map to a flattened
// grayscale batch [n, h*w] and returns a new tensor.
func mapGray(batch *tensor.Tensor, h, w int, invMap func(i int) func(y, x float32) (float32, float32)) *tensor.Tensor {
	n := grayGeom(batch, h, w)
	out := tensor.New(batch.Shape(), batch.Backend())
	src, dst := batch.Data(), out.Data()
	stride := h * w
	for i := 0; i < n; i++ {
		resample(dst[i*stride:(i+1)*stride], src[i*stride:(i+1)*stride], h, w, invMap(i))
	}
	return out
}

// RotateGray rotates each h×w image in a flattened [n, h*w] batch by its
// angle in degrees, bilinearly interpolated with zero fill.
func RotateGray(batch *tensor.Tensor, h, w int, degrees []float32) *tensor.Tensor {
	return mapGray(batch, h, w, func(i int) func(y, x float32) (float32, float32) {
		return rotateMap(h, w, degrees[i])
	})
}

// TranslateGray shifts each image down by dy[i] and right by dx[i]
// pixels (fractional shifts interpolate), with zero fill.
func TranslateGray(batch *tensor.Tensor, h, w int, dy, dx []float32) *tensor.Tensor {
	return mapGray(batch, h, w, func(i int) func(y, x float32) (float32, float32) {
		sy, sx := dy[i], dx[i]
		return func(y, x float32) (float32, float32) {
			return y - sy, x - sx
		}
	})
}

// ZoomGray zooms every image in the batch by the same factor about its
// center. Factors above 1 magnify and crop, below 1 shrink and pad.
func ZoomGray(batch *tensor.Tensor, h, w int, factor float32) *tensor.Tensor {
	return mapGray(batch, h, w, func(int) func(y, x float32) (float32, float32) {
		return zoomMap(h, w, factor)
	})
}

// NoiseGray adds Gaussian noise with the given standard deviation to
// every pixel, clamping the result to [0, max].
func NoiseGray(batch *tensor.Tensor, rng *rand.Rand, stddev, max float32) *tensor.Tensor {
	out := tensor.New(batch.Shape(), batch.Backend())
	src, dst := batch.Data(), out.Data()
	for i, v := range src {
		v += float32(rng.NormFloat64()) * stddev
		if v < 0 {
			v = 0
		} else if v > max {
			v = max
		}
		dst[i] = v
	}
	return out
}

// RandomRotateGray rotates each image by an angle drawn uniformly from
// [-maxDeg, maxDeg].
func RandomRotateGray(rng *rand.Rand, batch *tensor.Tensor, h, w int, maxDeg float32) *tensor.Tensor {
	n := grayGeom(batch, h, w)
	degrees := make([]float32, n)
	for i := range degrees {
		degrees[i] = uniform(rng, -maxDeg, maxDeg)
	}
	return RotateGray(batch, h, w, degrees)
}

// RandomTranslateGray shifts each image by offsets drawn uniformly from
// [-maxShift, maxShift] on both axes.
func RandomTranslateGray(rng *rand.Rand, batch *tensor.Tensor, h, w int, maxShift float32) *tensor.Tensor {
	n := grayGeom(batch, h, w)
	dy := make([]float32, n)
	dx := make([]float32, n)
	for i := range dy {
		dy[i] = uniform(rng, -maxShift, maxShift)
		dx[i] = uniform(rng, -maxShift, maxShift)
	}
	return TranslateGray(batch, h, w, dy, dx)
}

// RandomZoomGray zooms the whole batch by a single factor drawn
// uniformly from [lo, hi].
func RandomZoomGray(rng *rand.Rand, batch *tensor.Tensor, h, w int, lo, hi float32) *tensor.Tensor {
	return ZoomGray(batch, h, w, uniform(rng, lo, hi))
}

func uniform(rng *rand.Rand, lo, hi float32) float32 {
	return lo + float32(rng.Float64())*(hi-lo)
}
