// Copyright 2026 Strand ML Toolkit. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package augment provides image transforms for training-time data
// augmentation: rotation, translation, zoom and noise for grayscale
// batches, plus rotation, pad-or-crop, random crop and horizontal flip
// for NHWC batches.
//
// All transforms are pure float32 kernels on raw tensor data; they never
// touch a gradient tape, so they can run on tensors bound to an autodiff
// backend without recording anything. Deterministic kernels take
// explicit transform values, the Random variants draw them from an
// *rand.Rand per image.
package augment

import "github.com/chewxy/math32"

// bilinear samples img (h×w, row-major) at fractional coordinates
// (y, x). Samples outside the image read as zero, which shows up as
// black borders on rotated or shifted images.
func bilinear(img []float32, h, w int, y, x float32) float32 {
	y0 := math32.Floor(y)
	x0 := math32.Floor(x)
	fy := y - y0
	fx := x - x0
	iy, ix := int(y0), int(x0)

	at := func(r, c int) float32 {
		if r < 0 || r >= h || c < 0 || c >= w {
			return 0
		}
		return img[r*w+c]
	}

	top := at(iy, ix)*(1-fx) + at(iy, ix+1)*fx
	bot := at(iy+1, ix)*(1-fx) + at(iy+1, ix+1)*fx
	return top*(1-fy) + bot*fy
}

// resample fills dst (h×w) by evaluating the inverse coordinate map at
// every output pixel and bilinearly sampling src.
func resample(dst, src []float32, h, w int, invMap func(y, x float32) (sy, sx float32)) {
	for r := 0; r < h; r++ {
		for c := 0; c < w; c++ {
			sy, sx := invMap(float32(r), float32(c))
			dst[r*w+c] = bilinear(src, h, w, sy, sx)
		}
	}
}

// rotateMap returns the inverse map of a rotation by deg degrees about
// the image center. Positive angles rotate clockwise when viewed with
// row 0 at the top.
func rotateMap(h, w int, deg float32) func(y, x float32) (float32, float32) {
	rad := deg * math32.Pi / 180
	sin, cos := math32.Sin(rad), math32.Cos(rad)
	cy := float32(h-1) / 2
	cx := float32(w-1) / 2
	return func(y, x float32) (float32, float32) {
		dy := y - cy
		dx := x - cx
		return cy + cos*dy - sin*dx, cx + sin*dy + cos*dx
	}
}

// zoomMap returns the inverse map of a zoom by factor about the image
// center. Factors above 1 magnify (crop), below 1 shrink (pad).
func zoomMap(h, w int, factor float32) func(y, x float32) (float32, float32) {
	cy := float32(h-1) / 2
	cx := float32(w-1) / 2
	return func(y, x float32) (float32, float32) {
		return cy + (y-cy)/factor, cx + (x-cx)/factor
	}
}
