// Copyright 2026 Strand ML Toolkit. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package ops

import "github.com/strand-ml/strand/tensor"

// ReshapeOp represents a shape change that preserves element order.
//
// Backward reshapes the gradient back to the input's shape.
type ReshapeOp struct {
	inputs []*tensor.Tensor
	output *tensor.Tensor
}

// NewReshapeOp creates a ReshapeOp.
func NewReshapeOp(x, output *tensor.Tensor) *ReshapeOp {
	return &ReshapeOp{inputs: []*tensor.Tensor{x}, output: output}
}

// Backward reshapes the gradient to the input shape.
func (op *ReshapeOp) Backward(outputGrad *tensor.Tensor, backend tensor.Backend) []*tensor.Tensor {
	return []*tensor.Tensor{backend.Reshape(outputGrad, op.inputs[0].Shape())}
}

// Inputs returns [x].
func (op *ReshapeOp) Inputs() []*tensor.Tensor { return op.inputs }

// Output returns the reshaped tensor.
func (op *ReshapeOp) Output() *tensor.Tensor { return op.output }
