// Copyright 2026 Strand ML Toolkit. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package ops

import "github.com/strand-ml/strand/tensor"

// CrossEntropyOp represents categorical cross-entropy over
// log-probabilities and one-hot targets.
//
// Forward: loss = -1/N * Σ targets * logProbs.
// Backward: d/dlogProbs = -targets * grad / N; targets get no gradient.
type CrossEntropyOp struct {
	inputs []*tensor.Tensor // [logProbs, targets]
	output *tensor.Tensor
}

// NewCrossEntropyOp creates a CrossEntropyOp.
func NewCrossEntropyOp(logProbs, targets, output *tensor.Tensor) *CrossEntropyOp {
	return &CrossEntropyOp{inputs: []*tensor.Tensor{logProbs, targets}, output: output}
}

// Backward computes [dlogProbs, nil].
func (op *CrossEntropyOp) Backward(outputGrad *tensor.Tensor, backend tensor.Backend) []*tensor.Tensor {
	logProbs, targets := op.inputs[0], op.inputs[1]
	rows := logProbs.Shape()[0]
	scale := -outputGrad.Item() / float32(rows)

	grad := tensor.New(logProbs.Shape(), backend)
	td, od := targets.Data(), grad.Data()
	for i, t := range td {
		if t != 0 {
			od[i] = t * scale
		}
	}
	return []*tensor.Tensor{grad, nil}
}

// Inputs returns [logProbs, targets].
func (op *CrossEntropyOp) Inputs() []*tensor.Tensor { return op.inputs }

// Output returns the scalar loss.
func (op *CrossEntropyOp) Output() *tensor.Tensor { return op.output }

// MSEOp represents mean squared error over all elements.
//
// Backward: d/dpred = 2 * (pred - target) * grad / N; the target gets no
// gradient.
type MSEOp struct {
	inputs []*tensor.Tensor // [pred, target]
	output *tensor.Tensor
}

// NewMSEOp creates an MSEOp.
func NewMSEOp(pred, target, output *tensor.Tensor) *MSEOp {
	return &MSEOp{inputs: []*tensor.Tensor{pred, target}, output: output}
}

// Backward computes [dpred, nil].
func (op *MSEOp) Backward(outputGrad *tensor.Tensor, backend tensor.Backend) []*tensor.Tensor {
	pred, target := op.inputs[0], op.inputs[1]
	n := float32(pred.NumElements())
	scale := 2 * outputGrad.Item() / n

	grad := tensor.New(pred.Shape(), backend)
	pd, td, od := pred.Data(), target.Data(), grad.Data()
	for i := range od {
		od[i] = scale * (pd[i] - td[i])
	}
	return []*tensor.Tensor{grad, nil}
}

// Inputs returns [pred, target].
func (op *MSEOp) Inputs() []*tensor.Tensor { return op.inputs }

// Output returns the scalar loss.
func (op *MSEOp) Output() *tensor.Tensor { return op.output }
