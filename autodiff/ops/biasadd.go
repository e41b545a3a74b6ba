// Copyright 2026 Strand ML Toolkit. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package ops

import "github.com/strand-ml/strand/tensor"

// BiasAddOp represents adding a bias vector along the trailing axis.
//
// Backward: the input gradient passes through unchanged; the bias
// gradient is the output gradient summed over every leading axis.
type BiasAddOp struct {
	inputs []*tensor.Tensor
	output *tensor.Tensor
}

// NewBiasAddOp creates a BiasAddOp.
func NewBiasAddOp(x, bias, output *tensor.Tensor) *BiasAddOp {
	return &BiasAddOp{inputs: []*tensor.Tensor{x, bias}, output: output}
}

// Backward computes [grad, reduce(grad)].
func (op *BiasAddOp) Backward(outputGrad *tensor.Tensor, backend tensor.Backend) []*tensor.Tensor {
	bias := op.inputs[1]
	n := bias.Shape()[0]

	gradBias := tensor.New(tensor.Shape{n}, backend)
	gd, bd := outputGrad.Data(), gradBias.Data()
	for i, g := range gd {
		bd[i%n] += g
	}
	return []*tensor.Tensor{outputGrad, gradBias}
}

// Inputs returns [x, bias].
func (op *BiasAddOp) Inputs() []*tensor.Tensor { return op.inputs }

// Output returns x + bias.
func (op *BiasAddOp) Output() *tensor.Tensor { return op.output }
