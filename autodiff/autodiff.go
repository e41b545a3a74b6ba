// Copyright 2026 Strand ML Toolkit. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package autodiff implements reverse-mode automatic differentiation as a
// backend decorator.
//
// Backend wraps any tensor.Backend and records every differentiable
// operation on a GradientTape during the forward pass. Results are
// rebound to the decorator, so a network only has to be built on autodiff
// tensors once; everything downstream records automatically.
//
// Usage:
//
//	ad := autodiff.New(cpu.New())
//	ad.Tape().StartRecording()
//	y := x.MatMul(w).BiasAdd(b)  // recorded
//	loss := ad.CrossEntropy(ad.LogSoftmax(y), targets)
//	grads := ad.Backward(loss)   // map from tensor to gradient
//	ad.Tape().Clear()
package autodiff

import (
	"github.com/strand-ml/strand/autodiff/ops"
	"github.com/strand-ml/strand/tensor"
)

// Backend decorates a tensor.Backend with gradient tracking.
type Backend struct {
	inner tensor.Backend
	tape  *GradientTape
}

// New creates an autodiff backend wrapping the given backend.
func New(inner tensor.Backend) *Backend {
	return &Backend{
		inner: inner,
		tape:  NewGradientTape(),
	}
}

// Tape returns the gradient tape for manual control.
func (b *Backend) Tape() *GradientTape {
	return b.tape
}

// Inner returns the wrapped backend.
func (b *Backend) Inner() tensor.Backend {
	return b.inner
}

// Name returns the backend name.
func (b *Backend) Name() string {
	return "autodiff(" + b.inner.Name() + ")"
}

// Backward computes gradients of output with respect to every recorded
// tensor. Backward passes run on the wrapped backend so they are never
// themselves recorded.
func (b *Backend) Backward(output *tensor.Tensor) map[*tensor.Tensor]*tensor.Tensor {
	return b.tape.Backward(output, b.inner)
}

// rebind points a result produced by the inner backend back at the
// decorator, so follow-up operations keep recording.
func (b *Backend) rebind(t *tensor.Tensor) *tensor.Tensor {
	t.BindBackend(b)
	return t
}

// MatMul performs matrix multiplication and records the operation.
func (b *Backend) MatMul(x, y *tensor.Tensor) *tensor.Tensor {
	out := b.rebind(b.inner.MatMul(x, y))
	b.tape.Record(ops.NewMatMulOp(x, y, out))
	return out
}

// Add performs element-wise addition and records the operation.
func (b *Backend) Add(x, y *tensor.Tensor) *tensor.Tensor {
	out := b.rebind(b.inner.Add(x, y))
	b.tape.Record(ops.NewAddOp(x, y, out))
	return out
}

// Mul performs element-wise multiplication and records the operation.
func (b *Backend) Mul(x, y *tensor.Tensor) *tensor.Tensor {
	out := b.rebind(b.inner.Mul(x, y))
	b.tape.Record(ops.NewMulOp(x, y, out))
	return out
}

// BiasAdd adds a trailing-axis bias and records the operation.
func (b *Backend) BiasAdd(x, bias *tensor.Tensor) *tensor.Tensor {
	out := b.rebind(b.inner.BiasAdd(x, bias))
	b.tape.Record(ops.NewBiasAddOp(x, bias, out))
	return out
}

// Conv2D performs 2D convolution and records the operation.
func (b *Backend) Conv2D(x, w *tensor.Tensor, strides [2]int, pad tensor.Padding) *tensor.Tensor {
	out := b.rebind(b.inner.Conv2D(x, w, strides, pad))
	b.tape.Record(ops.NewConv2DOp(x, w, out, strides, pad))
	return out
}

// Pool2D applies window pooling and records the operation.
func (b *Backend) Pool2D(x *tensor.Tensor, kind tensor.PoolKind, window, strides [2]int, pad tensor.Padding) *tensor.Tensor {
	out := b.rebind(b.inner.Pool2D(x, kind, window, strides, pad))
	b.tape.Record(ops.NewPool2DOp(x, out, kind, window, strides, pad))
	return out
}

// BatchNormTrain normalizes with batch statistics and records the
// operation. The returned mean and variance are plain tensors for the
// caller's running statistics; only the normalized output participates
// in differentiation.
func (b *Backend) BatchNormTrain(x, gamma, beta *tensor.Tensor, eps float32) (y, mean, variance *tensor.Tensor) {
	y, mean, variance = b.inner.BatchNormTrain(x, gamma, beta, eps)
	b.rebind(y)
	b.tape.Record(ops.NewBatchNormTrainOp(x, gamma, beta, y, mean, variance, eps))
	return y, mean, variance
}

// BatchNormInfer normalizes with frozen statistics and records the
// operation.
func (b *Backend) BatchNormInfer(x, gamma, beta, mean, variance *tensor.Tensor, eps float32) *tensor.Tensor {
	out := b.rebind(b.inner.BatchNormInfer(x, gamma, beta, mean, variance, eps))
	b.tape.Record(ops.NewBatchNormInferOp(x, gamma, beta, mean, variance, out, eps))
	return out
}

// Relu applies ReLU and records the operation.
func (b *Backend) Relu(x *tensor.Tensor) *tensor.Tensor {
	out := b.rebind(b.inner.Relu(x))
	b.tape.Record(ops.NewReluOp(x, out))
	return out
}

// LeakyRelu applies leaky ReLU and records the operation.
func (b *Backend) LeakyRelu(x *tensor.Tensor, alpha float32) *tensor.Tensor {
	out := b.rebind(b.inner.LeakyRelu(x, alpha))
	b.tape.Record(ops.NewLeakyReluOp(x, out, alpha))
	return out
}

// Sigmoid applies the logistic function and records the operation.
func (b *Backend) Sigmoid(x *tensor.Tensor) *tensor.Tensor {
	out := b.rebind(b.inner.Sigmoid(x))
	b.tape.Record(ops.NewSigmoidOp(x, out))
	return out
}

// Tanh applies the hyperbolic tangent and records the operation.
func (b *Backend) Tanh(x *tensor.Tensor) *tensor.Tensor {
	out := b.rebind(b.inner.Tanh(x))
	b.tape.Record(ops.NewTanhOp(x, out))
	return out
}

// Softplus applies log(1+exp(x)) and records the operation.
func (b *Backend) Softplus(x *tensor.Tensor) *tensor.Tensor {
	out := b.rebind(b.inner.Softplus(x))
	b.tape.Record(ops.NewSoftplusOp(x, out))
	return out
}

// Softmax applies a row-wise softmax and records the operation.
func (b *Backend) Softmax(x *tensor.Tensor) *tensor.Tensor {
	out := b.rebind(b.inner.Softmax(x))
	b.tape.Record(ops.NewSoftmaxOp(x, out))
	return out
}

// LogSoftmax applies a row-wise log-softmax and records the operation.
func (b *Backend) LogSoftmax(x *tensor.Tensor) *tensor.Tensor {
	out := b.rebind(b.inner.LogSoftmax(x))
	b.tape.Record(ops.NewLogSoftmaxOp(x, out))
	return out
}

// Reshape reshapes a tensor and records the operation. Recording matters:
// without it, gradients would stop at the reshaped view instead of
// flowing back to the original tensor.
func (b *Backend) Reshape(x *tensor.Tensor, shape tensor.Shape) *tensor.Tensor {
	out := b.rebind(b.inner.Reshape(x, shape))
	b.tape.Record(ops.NewReshapeOp(x, out))
	return out
}

// Concat concatenates tensors along an axis and records the operation.
func (b *Backend) Concat(xs []*tensor.Tensor, axis int) *tensor.Tensor {
	out := b.rebind(b.inner.Concat(xs, axis))
	b.tape.Record(ops.NewConcatOp(xs, out, axis))
	return out
}

// CrossEntropy computes categorical cross-entropy and records the
// operation. The targets input is not differentiated.
func (b *Backend) CrossEntropy(logProbs, targets *tensor.Tensor) *tensor.Tensor {
	out := b.rebind(b.inner.CrossEntropy(logProbs, targets))
	b.tape.Record(ops.NewCrossEntropyOp(logProbs, targets, out))
	return out
}

// MSE computes mean squared error and records the operation. The target
// input is not differentiated.
func (b *Backend) MSE(pred, target *tensor.Tensor) *tensor.Tensor {
	out := b.rebind(b.inner.MSE(pred, target))
	b.tape.Record(ops.NewMSEOp(pred, target, out))
	return out
}

// The backward kernels pass straight through to the wrapped backend.

// Transpose2D returns the transpose of a matrix.
func (b *Backend) Transpose2D(x *tensor.Tensor) *tensor.Tensor {
	return b.inner.Transpose2D(x)
}

// Split splits a tensor along an axis.
func (b *Backend) Split(x *tensor.Tensor, axis int, sizes []int) []*tensor.Tensor {
	return b.inner.Split(x, axis, sizes)
}

// Conv2DBackward computes convolution gradients.
func (b *Backend) Conv2DBackward(x, w, grad *tensor.Tensor, strides [2]int, pad tensor.Padding) (dx, dw *tensor.Tensor) {
	return b.inner.Conv2DBackward(x, w, grad, strides, pad)
}

// Pool2DBackward computes pooling gradients.
func (b *Backend) Pool2DBackward(x, grad *tensor.Tensor, kind tensor.PoolKind, window, strides [2]int, pad tensor.Padding) *tensor.Tensor {
	return b.inner.Pool2DBackward(x, grad, kind, window, strides, pad)
}

// BatchNormTrainBackward computes batch-norm training gradients.
func (b *Backend) BatchNormTrainBackward(x, gamma, mean, variance, grad *tensor.Tensor, eps float32) (dx, dgamma, dbeta *tensor.Tensor) {
	return b.inner.BatchNormTrainBackward(x, gamma, mean, variance, grad, eps)
}

// BatchNormInferBackward computes batch-norm inference gradients.
func (b *Backend) BatchNormInferBackward(x, gamma, mean, variance, grad *tensor.Tensor, eps float32) (dx, dgamma, dbeta *tensor.Tensor) {
	return b.inner.BatchNormInferBackward(x, gamma, mean, variance, grad, eps)
}
