// Copyright 2026 Strand ML Toolkit. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package ops

import "github.com/strand-ml/strand/tensor"

// MulOp represents element-wise multiplication: output = a * b.
//
// Backward: d(a*b)/da = b, d(a*b)/db = a.
type MulOp struct {
	inputs []*tensor.Tensor
	output *tensor.Tensor
}

// NewMulOp creates a MulOp.
func NewMulOp(a, b, output *tensor.Tensor) *MulOp {
	return &MulOp{inputs: []*tensor.Tensor{a, b}, output: output}
}

// Backward computes [grad*b, grad*a].
func (op *MulOp) Backward(outputGrad *tensor.Tensor, backend tensor.Backend) []*tensor.Tensor {
	a, b := op.inputs[0], op.inputs[1]
	return []*tensor.Tensor{
		backend.Mul(outputGrad, b),
		backend.Mul(outputGrad, a),
	}
}

// Inputs returns [a, b].
func (op *MulOp) Inputs() []*tensor.Tensor { return op.inputs }

// Output returns a * b.
func (op *MulOp) Output() *tensor.Tensor { return op.output }
