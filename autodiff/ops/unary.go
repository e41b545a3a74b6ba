// Copyright 2026 Strand ML Toolkit. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package ops

import (
	"github.com/chewxy/math32"
	"github.com/strand-ml/strand/tensor"
)

// UnaryOp represents an element-wise function with a pointwise
// derivative. The derivative closure receives both the input and output
// value so each activation can use whichever form is cheaper (tanh and
// sigmoid differentiate through their output).
type UnaryOp struct {
	name   string
	inputs []*tensor.Tensor
	output *tensor.Tensor
	deriv  func(x, y float32) float32
}

func newUnaryOp(name string, x, output *tensor.Tensor, deriv func(x, y float32) float32) *UnaryOp {
	return &UnaryOp{
		name:   name,
		inputs: []*tensor.Tensor{x},
		output: output,
		deriv:  deriv,
	}
}

// NewReluOp creates the ReLU operation: d/dx = 1 for x > 0, else 0.
func NewReluOp(x, output *tensor.Tensor) *UnaryOp {
	return newUnaryOp("relu", x, output, func(x, _ float32) float32 {
		if x > 0 {
			return 1
		}
		return 0
	})
}

// NewLeakyReluOp creates the leaky ReLU operation: d/dx = 1 for x > 0,
// else alpha.
func NewLeakyReluOp(x, output *tensor.Tensor, alpha float32) *UnaryOp {
	return newUnaryOp("leaky_relu", x, output, func(x, _ float32) float32 {
		if x > 0 {
			return 1
		}
		return alpha
	})
}

// NewSigmoidOp creates the sigmoid operation: d/dx = y * (1 - y).
func NewSigmoidOp(x, output *tensor.Tensor) *UnaryOp {
	return newUnaryOp("sigmoid", x, output, func(_, y float32) float32 {
		return y * (1 - y)
	})
}

// NewTanhOp creates the tanh operation: d/dx = 1 - y².
func NewTanhOp(x, output *tensor.Tensor) *UnaryOp {
	return newUnaryOp("tanh", x, output, func(_, y float32) float32 {
		return 1 - y*y
	})
}

// NewSoftplusOp creates the softplus operation: d/dx = sigmoid(x).
func NewSoftplusOp(x, output *tensor.Tensor) *UnaryOp {
	return newUnaryOp("softplus", x, output, func(x, _ float32) float32 {
		return 1 / (1 + math32.Exp(-x))
	})
}

// Backward applies the pointwise derivative to the output gradient.
func (op *UnaryOp) Backward(outputGrad *tensor.Tensor, backend tensor.Backend) []*tensor.Tensor {
	x := op.inputs[0]
	grad := tensor.New(x.Shape(), backend)
	xd, yd, gd, od := x.Data(), op.output.Data(), outputGrad.Data(), grad.Data()
	for i, g := range gd {
		od[i] = g * op.deriv(xd[i], yd[i])
	}
	return []*tensor.Tensor{grad}
}

// Inputs returns [x].
func (op *UnaryOp) Inputs() []*tensor.Tensor { return op.inputs }

// Output returns f(x).
func (op *UnaryOp) Output() *tensor.Tensor { return op.output }

// Name returns the activation name.
func (op *UnaryOp) Name() string { return op.name }
