// Copyright 2026 Strand ML Toolkit. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package ops

import (
	"github.com/chewxy/math32"
	"github.com/strand-ml/strand/tensor"
)

// SoftmaxOp represents a row-wise softmax over [batch, classes].
//
// The Jacobian contracts to
//
//	dx[b,j] = y[b,j] * (grad[b,j] - Σ_i grad[b,i]*y[b,i])
type SoftmaxOp struct {
	inputs []*tensor.Tensor
	output *tensor.Tensor
}

// NewSoftmaxOp creates a SoftmaxOp.
func NewSoftmaxOp(x, output *tensor.Tensor) *SoftmaxOp {
	return &SoftmaxOp{inputs: []*tensor.Tensor{x}, output: output}
}

// Backward computes the softmax input gradient.
func (op *SoftmaxOp) Backward(outputGrad *tensor.Tensor, backend tensor.Backend) []*tensor.Tensor {
	shape := op.inputs[0].Shape()
	rows, cols := shape[0], shape[1]

	grad := tensor.New(shape, backend)
	yd, gd, od := op.output.Data(), outputGrad.Data(), grad.Data()
	for r := 0; r < rows; r++ {
		base := r * cols
		var dot float32
		for j := 0; j < cols; j++ {
			dot += gd[base+j] * yd[base+j]
		}
		for j := 0; j < cols; j++ {
			od[base+j] = yd[base+j] * (gd[base+j] - dot)
		}
	}
	return []*tensor.Tensor{grad}
}

// Inputs returns [x].
func (op *SoftmaxOp) Inputs() []*tensor.Tensor { return op.inputs }

// Output returns softmax(x).
func (op *SoftmaxOp) Output() *tensor.Tensor { return op.output }

// LogSoftmaxOp represents a row-wise log-softmax over [batch, classes].
//
// Backward:
//
//	dx[b,j] = grad[b,j] - exp(y[b,j]) * Σ_i grad[b,i]
type LogSoftmaxOp struct {
	inputs []*tensor.Tensor
	output *tensor.Tensor
}

// NewLogSoftmaxOp creates a LogSoftmaxOp.
func NewLogSoftmaxOp(x, output *tensor.Tensor) *LogSoftmaxOp {
	return &LogSoftmaxOp{inputs: []*tensor.Tensor{x}, output: output}
}

// Backward computes the log-softmax input gradient.
func (op *LogSoftmaxOp) Backward(outputGrad *tensor.Tensor, backend tensor.Backend) []*tensor.Tensor {
	shape := op.inputs[0].Shape()
	rows, cols := shape[0], shape[1]

	grad := tensor.New(shape, backend)
	yd, gd, od := op.output.Data(), outputGrad.Data(), grad.Data()
	for r := 0; r < rows; r++ {
		base := r * cols
		var sum float32
		for j := 0; j < cols; j++ {
			sum += gd[base+j]
		}
		for j := 0; j < cols; j++ {
			od[base+j] = gd[base+j] - math32.Exp(yd[base+j])*sum
		}
	}
	return []*tensor.Tensor{grad}
}

// Inputs returns [x].
func (op *LogSoftmaxOp) Inputs() []*tensor.Tensor { return op.inputs }

// Output returns log_softmax(x).
func (op *LogSoftmaxOp) Output() *tensor.Tensor { return op.output }
