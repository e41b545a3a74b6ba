// Copyright 2026 Strand ML Toolkit. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"math/rand"

	"github.com/chewxy/math32"
	"github.com/strand-ml/strand/tensor"
)

// glorotNormal samples from N(0, 2/(fanIn+fanOut)), the Glorot/Xavier
// normal initializer used for weight matrices and convolution kernels.
func glorotNormal(rng *rand.Rand, b tensor.Backend, shape tensor.Shape, fanIn, fanOut int) *tensor.Tensor {
	stddev := math32.Sqrt(2 / float32(fanIn+fanOut))
	return normal(rng, b, shape, stddev)
}

// normal samples from N(0, stddev²).
func normal(rng *rand.Rand, b tensor.Backend, shape tensor.Shape, stddev float32) *tensor.Tensor {
	t := tensor.New(shape, b)
	data := t.Data()
	for i := range data {
		data[i] = float32(rng.NormFloat64()) * stddev
	}
	return t
}
