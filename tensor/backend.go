// Copyright 2026 Strand ML Toolkit. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

// PoolKind selects the reduction a pooling window applies.
type PoolKind int

const (
	// MaxPool keeps the maximum of each window.
	MaxPool PoolKind = iota
	// SumPool sums each window.
	SumPool
	// AvgPool averages each window.
	AvgPool
)

// String returns the pooling kind name.
func (k PoolKind) String() string {
	switch k {
	case MaxPool:
		return "max"
	case SumPool:
		return "sum"
	case AvgPool:
		return "avg"
	default:
		return "unknown"
	}
}

// Backend is the compute interface the toolkit is written against.
//
// The first group are the differentiable forward operations; an autodiff
// backend wraps another backend and records these on its tape. The second
// group are plain kernels the backward passes need; they are never
// recorded.
//
// Data layout conventions:
//   - matrices are [rows, cols]
//   - images are NHWC: [batch, height, width, channels]
//   - convolution kernels are HWIO: [kh, kw, in_channels, out_channels]
//   - bias vectors broadcast along the trailing (channel) axis
type Backend interface {
	Name() string

	// Differentiable forward operations.

	MatMul(a, b *Tensor) *Tensor
	Add(a, b *Tensor) *Tensor
	Mul(a, b *Tensor) *Tensor
	BiasAdd(x, bias *Tensor) *Tensor
	Conv2D(x, w *Tensor, strides [2]int, pad Padding) *Tensor
	Pool2D(x *Tensor, kind PoolKind, window, strides [2]int, pad Padding) *Tensor
	BatchNormTrain(x, gamma, beta *Tensor, eps float32) (y, mean, variance *Tensor)
	BatchNormInfer(x, gamma, beta, mean, variance *Tensor, eps float32) *Tensor
	Relu(x *Tensor) *Tensor
	LeakyRelu(x *Tensor, alpha float32) *Tensor
	Sigmoid(x *Tensor) *Tensor
	Tanh(x *Tensor) *Tensor
	Softplus(x *Tensor) *Tensor
	Softmax(x *Tensor) *Tensor
	LogSoftmax(x *Tensor) *Tensor
	Reshape(x *Tensor, shape Shape) *Tensor
	Concat(xs []*Tensor, axis int) *Tensor
	CrossEntropy(logProbs, targets *Tensor) *Tensor
	MSE(pred, target *Tensor) *Tensor

	// Kernels used by backward passes; never recorded.

	Transpose2D(a *Tensor) *Tensor
	Split(x *Tensor, axis int, sizes []int) []*Tensor
	Conv2DBackward(x, w, grad *Tensor, strides [2]int, pad Padding) (dx, dw *Tensor)
	Pool2DBackward(x, grad *Tensor, kind PoolKind, window, strides [2]int, pad Padding) *Tensor
	BatchNormTrainBackward(x, gamma, mean, variance, grad *Tensor, eps float32) (dx, dgamma, dbeta *Tensor)
	BatchNormInferBackward(x, gamma, mean, variance, grad *Tensor, eps float32) (dx, dgamma, dbeta *Tensor)
}
