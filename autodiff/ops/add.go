// Copyright 2026 Strand ML Toolkit. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package ops

import "github.com/strand-ml/strand/tensor"

// AddOp represents element-wise addition: output = a + b.
//
// The gradient flows unchanged to both inputs.
type AddOp struct {
	inputs []*tensor.Tensor
	output *tensor.Tensor
}

// NewAddOp creates an AddOp.
func NewAddOp(a, b, output *tensor.Tensor) *AddOp {
	return &AddOp{inputs: []*tensor.Tensor{a, b}, output: output}
}

// Backward returns the output gradient for both inputs.
func (op *AddOp) Backward(outputGrad *tensor.Tensor, _ tensor.Backend) []*tensor.Tensor {
	return []*tensor.Tensor{outputGrad, outputGrad}
}

// Inputs returns [a, b].
func (op *AddOp) Inputs() []*tensor.Tensor { return op.inputs }

// Output returns a + b.
func (op *AddOp) Output() *tensor.Tensor { return op.output }
