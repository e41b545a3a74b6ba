// Copyright 2026 Strand ML Toolkit. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package ops defines the differentiable operations recorded on the
// gradient tape.
//
// Each operation captures its input and output tensors during the
// forward pass and knows how to turn an output gradient into input
// gradients. Backward returns one entry per input; a nil entry marks an
// input that is not differentiated (loss targets, frozen statistics).
package ops

import "github.com/strand-ml/strand/tensor"

// Operation is one recorded step of the forward pass.
type Operation interface {
	// Backward computes input gradients given the output gradient.
	// The backend argument supplies non-recorded kernels (matmul,
	// transpose, the explicit *Backward kernels).
	Backward(outputGrad *tensor.Tensor, backend tensor.Backend) []*tensor.Tensor

	// Inputs returns the operation's input tensors, in the order
	// Backward returns gradients.
	Inputs() []*tensor.Tensor

	// Output returns the tensor the operation produced.
	Output() *tensor.Tensor
}
