package cpu

import (
	"github.com/chewxy/math32"
	"github.com/strand-ml/strand/tensor"
)

func (c *Backend) unary(x *tensor.Tensor, f func(float32) float32) *tensor.Tensor {
	out := tensor.New(x.Shape(), c)
	xd, od := x.Data(), out.Data()
	for i, v := range xd {
		od[i] = f(v)
	}
	return out
}

// Relu applies max(0, x) element-wise.
func (c *Backend) Relu(x *tensor.Tensor) *tensor.Tensor {
	return c.unary(x, func(v float32) float32 {
		if v > 0 {
			return v
		}
		return 0
	})
}

// LeakyRelu applies x for x > 0 and alpha*x otherwise.
func (c *Backend) LeakyRelu(x *tensor.Tensor, alpha float32) *tensor.Tensor {
	return c.unary(x, func(v float32) float32 {
		if v > 0 {
			return v
		}
		return alpha * v
	})
}

// Sigmoid applies 1 / (1 + exp(-x)) element-wise.
func (c *Backend) Sigmoid(x *tensor.Tensor) *tensor.Tensor {
	return c.unary(x, func(v float32) float32 {
		return 1 / (1 + math32.Exp(-v))
	})
}

// Tanh applies the hyperbolic tangent element-wise.
func (c *Backend) Tanh(x *tensor.Tensor) *tensor.Tensor {
	return c.unary(x, math32.Tanh)
}

// Softplus applies log(1 + exp(x)) element-wise.
//
// For large inputs the identity is used directly: exp(x) would overflow
// while softplus(x) ≈ x to float32 precision anyway.
func (c *Backend) Softplus(x *tensor.Tensor) *tensor.Tensor {
	return c.unary(x, func(v float32) float32 {
		if v > 20 {
			return v
		}
		return math32.Log1p(math32.Exp(v))
	})
}
