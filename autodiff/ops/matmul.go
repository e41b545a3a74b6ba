// Copyright 2026 Strand ML Toolkit. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package ops

import "github.com/strand-ml/strand/tensor"

// MatMulOp represents matrix multiplication: output = a @ b.
//
// Backward:
//   - d(A@B)/dA = grad @ Bᵀ
//   - d(A@B)/dB = Aᵀ @ grad
type MatMulOp struct {
	inputs []*tensor.Tensor
	output *tensor.Tensor
}

// NewMatMulOp creates a MatMulOp.
func NewMatMulOp(a, b, output *tensor.Tensor) *MatMulOp {
	return &MatMulOp{inputs: []*tensor.Tensor{a, b}, output: output}
}

// Backward computes the matmul input gradients.
func (op *MatMulOp) Backward(outputGrad *tensor.Tensor, backend tensor.Backend) []*tensor.Tensor {
	a, b := op.inputs[0], op.inputs[1]
	gradA := backend.MatMul(outputGrad, backend.Transpose2D(b))
	gradB := backend.MatMul(backend.Transpose2D(a), outputGrad)
	return []*tensor.Tensor{gradA, gradB}
}

// Inputs returns [a, b].
func (op *MatMulOp) Inputs() []*tensor.Tensor { return op.inputs }

// Output returns a @ b.
func (op *MatMulOp) Output() *tensor.Tensor { return op.output }
