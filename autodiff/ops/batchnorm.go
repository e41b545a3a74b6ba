// Copyright 2026 Strand ML Toolkit. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package ops

import "github.com/strand-ml/strand/tensor"

// BatchNormTrainOp represents batch normalization with batch statistics.
//
// The batch mean and variance are functions of x, so the backward pass
// uses the full training-mode gradient formula. They are captured here
// rather than recomputed so forward and backward agree exactly.
type BatchNormTrainOp struct {
	inputs         []*tensor.Tensor // [x, gamma, beta]
	output         *tensor.Tensor
	mean, variance *tensor.Tensor
	eps            float32
}

// NewBatchNormTrainOp creates a BatchNormTrainOp.
func NewBatchNormTrainOp(x, gamma, beta, output, mean, variance *tensor.Tensor, eps float32) *BatchNormTrainOp {
	return &BatchNormTrainOp{
		inputs:   []*tensor.Tensor{x, gamma, beta},
		output:   output,
		mean:     mean,
		variance: variance,
		eps:      eps,
	}
}

// Backward computes [dx, dgamma, dbeta].
func (op *BatchNormTrainOp) Backward(outputGrad *tensor.Tensor, backend tensor.Backend) []*tensor.Tensor {
	dx, dgamma, dbeta := backend.BatchNormTrainBackward(
		op.inputs[0], op.inputs[1], op.mean, op.variance, outputGrad, op.eps)
	return []*tensor.Tensor{dx, dgamma, dbeta}
}

// Inputs returns [x, gamma, beta].
func (op *BatchNormTrainOp) Inputs() []*tensor.Tensor { return op.inputs }

// Output returns the normalized tensor.
func (op *BatchNormTrainOp) Output() *tensor.Tensor { return op.output }

// BatchNormInferOp represents batch normalization with frozen statistics.
//
// Mean and variance are constants here (running statistics), so the
// backward pass is a per-channel affine gradient.
type BatchNormInferOp struct {
	inputs         []*tensor.Tensor // [x, gamma, beta]
	output         *tensor.Tensor
	mean, variance *tensor.Tensor
	eps            float32
}

// NewBatchNormInferOp creates a BatchNormInferOp.
func NewBatchNormInferOp(x, gamma, beta, mean, variance, output *tensor.Tensor, eps float32) *BatchNormInferOp {
	return &BatchNormInferOp{
		inputs:   []*tensor.Tensor{x, gamma, beta},
		output:   output,
		mean:     mean,
		variance: variance,
		eps:      eps,
	}
}

// Backward computes [dx, dgamma, dbeta].
func (op *BatchNormInferOp) Backward(outputGrad *tensor.Tensor, backend tensor.Backend) []*tensor.Tensor {
	dx, dgamma, dbeta := backend.BatchNormInferBackward(
		op.inputs[0], op.inputs[1], op.mean, op.variance, outputGrad, op.eps)
	return []*tensor.Tensor{dx, dgamma, dbeta}
}

// Inputs returns [x, gamma, beta].
func (op *BatchNormInferOp) Inputs() []*tensor.Tensor { return op.inputs }

// Output returns the normalized tensor.
func (op *BatchNormInferOp) Output() *tensor.Tensor { return op.output }
