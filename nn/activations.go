// Copyright 2026 Strand ML Toolkit. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"fmt"

	"github.com/strand-ml/strand/tensor"
)

// activation builds a parameter-free element-wise layer that preserves
// its input shape.
func activation(name string, f func(x *tensor.Tensor) *tensor.Tensor) Layer {
	return unary(name,
		func(cfg InitConfig, in tensor.Shape) (tensor.Shape, Params, State, error) {
			return in.Clone(), Params{}, State{}, nil
		},
		func(p Params, s State, x *tensor.Tensor, cfg ApplyConfig) (*tensor.Tensor, State) {
			return f(x), State{}
		},
	)
}

// Relu is the rectified linear activation.
var Relu = activation("Relu", func(x *tensor.Tensor) *tensor.Tensor {
	return x.Backend().Relu(x)
})

// LeakyRelu returns a leaky ReLU activation with the given negative
// slope.
func LeakyRelu(alpha float32) Layer {
	return activation("LeakyRelu", func(x *tensor.Tensor) *tensor.Tensor {
		return x.Backend().LeakyRelu(x, alpha)
	})
}

// Sigmoid is the logistic activation.
var Sigmoid = activation("Sigmoid", func(x *tensor.Tensor) *tensor.Tensor {
	return x.Backend().Sigmoid(x)
})

// Tanh is the hyperbolic tangent activation.
var Tanh = activation("Tanh", func(x *tensor.Tensor) *tensor.Tensor {
	return x.Backend().Tanh(x)
})

// Softplus is the smooth ReLU approximation log(1 + exp(x)).
var Softplus = activation("Softplus", func(x *tensor.Tensor) *tensor.Tensor {
	return x.Backend().Softplus(x)
})

// rowwise builds an activation restricted to [batch, classes] inputs.
func rowwise(name string, f func(x *tensor.Tensor) *tensor.Tensor) Layer {
	return unary(name,
		func(cfg InitConfig, in tensor.Shape) (tensor.Shape, Params, State, error) {
			if len(in) != 2 {
				return nil, Params{}, State{}, fmt.Errorf("%s: input must be rank 2, got %v", name, in)
			}
			return in.Clone(), Params{}, State{}, nil
		},
		func(p Params, s State, x *tensor.Tensor, cfg ApplyConfig) (*tensor.Tensor, State) {
			return f(x), State{}
		},
	)
}

// Softmax normalizes each row into a probability distribution.
var Softmax = rowwise("Softmax", func(x *tensor.Tensor) *tensor.Tensor {
	return x.Backend().Softmax(x)
})

// LogSoftmax computes row-wise log-probabilities; pair it with
// CategoricalCrossEntropy for a numerically stable classification loss.
var LogSoftmax = rowwise("LogSoftmax", func(x *tensor.Tensor) *tensor.Tensor {
	return x.Backend().LogSoftmax(x)
})
