// Copyright 2026 Strand ML Toolkit. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package ops

import "github.com/strand-ml/strand/tensor"

// ConcatOp represents concatenation of several tensors along one axis.
//
// Backward splits the gradient back into the input extents.
type ConcatOp struct {
	inputs []*tensor.Tensor
	output *tensor.Tensor
	axis   int
}

// NewConcatOp creates a ConcatOp.
func NewConcatOp(xs []*tensor.Tensor, output *tensor.Tensor, axis int) *ConcatOp {
	inputs := make([]*tensor.Tensor, len(xs))
	copy(inputs, xs)
	return &ConcatOp{inputs: inputs, output: output, axis: axis}
}

// Backward splits the gradient by the input sizes along the concat axis.
func (op *ConcatOp) Backward(outputGrad *tensor.Tensor, backend tensor.Backend) []*tensor.Tensor {
	sizes := make([]int, len(op.inputs))
	for i, x := range op.inputs {
		sizes[i] = x.Shape()[op.axis]
	}
	return backend.Split(outputGrad, op.axis, sizes)
}

// Inputs returns the concatenated tensors.
func (op *ConcatOp) Inputs() []*tensor.Tensor { return op.inputs }

// Output returns the concatenation.
func (op *ConcatOp) Output() *tensor.Tensor { return op.output }
