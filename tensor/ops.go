// Copyright 2026 Strand ML Toolkit. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

// Operation methods dispatching through the tensor's backend. Layers use
// these so that the same code runs on a plain backend or records onto an
// autodiff tape, depending on what the tensors are bound to.

// MatMul performs matrix multiplication: t @ other.
func (t *Tensor) MatMul(other *Tensor) *Tensor {
	return t.backend.MatMul(t, other)
}

// Add performs element-wise addition. Shapes must match.
func (t *Tensor) Add(other *Tensor) *Tensor {
	return t.backend.Add(t, other)
}

// Mul performs element-wise multiplication. Shapes must match.
func (t *Tensor) Mul(other *Tensor) *Tensor {
	return t.backend.Mul(t, other)
}

// BiasAdd adds a bias vector along the trailing axis.
func (t *Tensor) BiasAdd(bias *Tensor) *Tensor {
	return t.backend.BiasAdd(t, bias)
}

// Reshape returns a tensor with the given dimensions and the same data.
func (t *Tensor) Reshape(dims ...int) *Tensor {
	return t.backend.Reshape(t, Shape(dims))
}
