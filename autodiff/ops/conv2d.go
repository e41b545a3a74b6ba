// Copyright 2026 Strand ML Toolkit. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package ops

import "github.com/strand-ml/strand/tensor"

// Conv2DOp represents a 2D convolution (NHWC data, HWIO kernel).
//
// Backward delegates to the backend's explicit convolution-backward
// kernel, which mirrors the forward loops and scatters gradients to both
// the input and the kernel.
type Conv2DOp struct {
	inputs  []*tensor.Tensor
	output  *tensor.Tensor
	strides [2]int
	pad     tensor.Padding
}

// NewConv2DOp creates a Conv2DOp.
func NewConv2DOp(x, w, output *tensor.Tensor, strides [2]int, pad tensor.Padding) *Conv2DOp {
	return &Conv2DOp{
		inputs:  []*tensor.Tensor{x, w},
		output:  output,
		strides: strides,
		pad:     pad,
	}
}

// Backward computes [dx, dw].
func (op *Conv2DOp) Backward(outputGrad *tensor.Tensor, backend tensor.Backend) []*tensor.Tensor {
	dx, dw := backend.Conv2DBackward(op.inputs[0], op.inputs[1], outputGrad, op.strides, op.pad)
	return []*tensor.Tensor{dx, dw}
}

// Inputs returns [x, w].
func (op *Conv2DOp) Inputs() []*tensor.Tensor { return op.inputs }

// Output returns the convolution result.
func (op *Conv2DOp) Output() *tensor.Tensor { return op.output }
