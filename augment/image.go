// Copyright 2026 Strand ML Toolkit. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package augment

import (
	"fmt"
	"math/rand"

	"github.com/strand-ml/strand/tensor"
)

func nhwcGeom(batch *tensor.Tensor) (n, h, w, c int) {
	shape := batch.Shape()
	if len(shape) != 4 {
		panic(fmt.Sprintf("augment: batch must be NHWC, got %v", shape))
	}
	return shape[0], shape[1], shape[2], shape[3]
}

// Rotate rotates each NHWC image by its angle in degrees about the
// image center, applying the same bilinear resampling to every channel.
func Rotate(batch *tensor.Tensor, degrees []float32) *tensor.Tensor {
	n, h, w, c := nhwcGeom(batch)
	out := tensor.New(batch.Shape(), batch.Backend())
	src, dst := batch.Data(), out.Data()
	plane := make([]float32, h*w)
	rotated := make([]float32, h*w)
	imgStride := h * w * c
	for i := 0; i < n; i++ {
		invMap := rotateMap(h, w, degrees[i])
		for ch := 0; ch < c; ch++ {
			base := i * imgStride
			for p := 0; p < h*w; p++ {
				plane[p] = src[base+p*c+ch]
			}
			resample(rotated, plane, h, w, invMap)
			for p := 0; p < h*w; p++ {
				dst[base+p*c+ch] = rotated[p]
			}
		}
	}
	return out
}

// RandomRotate rotates each image by an angle drawn uniformly from
// [-maxDeg, maxDeg].
func RandomRotate(rng *rand.Rand, batch *tensor.Tensor, maxDeg float32) *tensor.Tensor {
	n, _, _, _ := nhwcGeom(batch)
	degrees := make([]float32, n)
	for i := range degrees {
		degrees[i] = uniform(rng, -maxDeg, maxDeg)
	}
	return Rotate(batch, degrees)
}

// PadOrCrop resizes each NHWC image to outH×outW by centered
// zero-padding when growing and centered cropping when shrinking.
func PadOrCrop(batch *tensor.Tensor, outH, outW int) *tensor.Tensor {
	n, h, w, c := nhwcGeom(batch)
	out := tensor.New(tensor.Shape{n, outH, outW, c}, batch.Backend())
	src, dst := batch.Data(), out.Data()
	// Offsets from output coordinates back into the source.
	offH := (h - outH) / 2
	offW := (w - outW) / 2
	for i := 0; i < n; i++ {
		for r := 0; r < outH; r++ {
			sr := r + offH
			if sr < 0 || sr >= h {
				continue
			}
			for col := 0; col < outW; col++ {
				sc := col + offW
				if sc < 0 || sc >= w {
					continue
				}
				sBase := ((i*h+sr)*w + sc) * c
				dBase := ((i*outH+r)*outW + col) * c
				copy(dst[dBase:dBase+c], src[sBase:sBase+c])
			}
		}
	}
	return out
}

// RandomCrop crops each NHWC image to outH×outW at an offset drawn
// uniformly per image. The output size must not exceed the input size.
func RandomCrop(rng *rand.Rand, batch *tensor.Tensor, outH, outW int) *tensor.Tensor {
	n, h, w, c := nhwcGeom(batch)
	if outH > h || outW > w {
		panic(fmt.Sprintf("augment: cannot crop %dx%d from %dx%d", outH, outW, h, w))
	}
	out := tensor.New(tensor.Shape{n, outH, outW, c}, batch.Backend())
	src, dst := batch.Data(), out.Data()
	for i := 0; i < n; i++ {
		offH := rng.Intn(h - outH + 1)
		offW := rng.Intn(w - outW + 1)
		for r := 0; r < outH; r++ {
			sBase := ((i*h+r+offH)*w + offW) * c
			dBase := (i*outH + r) * outW * c
			copy(dst[dBase:dBase+outW*c], src[sBase:sBase+outW*c])
		}
	}
	return out
}

// RandomFlipLeftRight mirrors each NHWC image horizontally with
// probability 0.5.
func RandomFlipLeftRight(rng *rand.Rand, batch *tensor.Tensor) *tensor.Tensor {
	n, h, w, c := nhwcGeom(batch)
	out := tensor.New(batch.Shape(), batch.Backend())
	src, dst := batch.Data(), out.Data()
	for i := 0; i < n; i++ {
		flip := rng.Float64() < 0.5
		for r := 0; r < h; r++ {
			rowBase := ((i*h + r) * w) * c
			if !flip {
				copy(dst[rowBase:rowBase+w*c], src[rowBase:rowBase+w*c])
				continue
			}
			for col := 0; col < w; col++ {
				sBase := rowBase + (w-1-col)*c
				dBase := rowBase + col*c
				copy(dst[dBase:dBase+c], src[sBase:sBase+c])
			}
		}
	}
	return out
}
