// Copyright 2026 Strand ML Toolkit. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package ops

import "github.com/strand-ml/strand/tensor"

// Pool2DOp represents window pooling (max, sum or average).
//
// Max pooling routes each window's gradient to the position that held
// the maximum; sum and average pooling spread it over the window.
type Pool2DOp struct {
	inputs  []*tensor.Tensor
	output  *tensor.Tensor
	kind    tensor.PoolKind
	window  [2]int
	strides [2]int
	pad     tensor.Padding
}

// NewPool2DOp creates a Pool2DOp.
func NewPool2DOp(x, output *tensor.Tensor, kind tensor.PoolKind, window, strides [2]int, pad tensor.Padding) *Pool2DOp {
	return &Pool2DOp{
		inputs:  []*tensor.Tensor{x},
		output:  output,
		kind:    kind,
		window:  window,
		strides: strides,
		pad:     pad,
	}
}

// Backward computes [dx].
func (op *Pool2DOp) Backward(outputGrad *tensor.Tensor, backend tensor.Backend) []*tensor.Tensor {
	dx := backend.Pool2DBackward(op.inputs[0], outputGrad, op.kind, op.window, op.strides, op.pad)
	return []*tensor.Tensor{dx}
}

// Inputs returns [x].
func (op *Pool2DOp) Inputs() []*tensor.Tensor { return op.inputs }

// Output returns the pooled tensor.
func (op *Pool2DOp) Output() *tensor.Tensor { return op.output }
