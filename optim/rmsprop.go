// Copyright 2026 Strand ML Toolkit. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package optim

import (
	"github.com/chewxy/math32"
	"github.com/strand-ml/strand/tensor"
)

// RMSProp implements the RMSProp optimizer: an exponential moving
// average of squared gradients normalizes each update.
type RMSProp struct {
	params []*tensor.Tensor
	lr     float32
	decay  float32
	eps    float32
	cache  [][]float32
}

// NewRMSProp creates an RMSProp optimizer with the standard defaults
// decay 0.9 and eps 1e-8.
func NewRMSProp(params []*tensor.Tensor, lr float32) *RMSProp {
	return NewRMSPropWithDecay(params, lr, 0.9, 1e-8)
}

// NewRMSPropWithDecay creates an RMSProp optimizer with an explicit
// decay rate.
func NewRMSPropWithDecay(params []*tensor.Tensor, lr, decay, eps float32) *RMSProp {
	r := &RMSProp{
		params: params,
		lr:     lr,
		decay:  decay,
		eps:    eps,
		cache:  make([][]float32, len(params)),
	}
	for i, p := range params {
		r.cache[i] = make([]float32, p.NumElements())
	}
	return r
}

// Step applies one RMSProp update.
func (r *RMSProp) Step(grads Grads) {
	for i, p := range r.params {
		g, ok := grads[p]
		if !ok {
			continue
		}
		pd, gd := p.Data(), g.Data()
		c := r.cache[i]
		for j := range pd {
			c[j] = r.decay*c[j] + (1-r.decay)*gd[j]*gd[j]
			pd[j] -= r.lr * gd[j] / (math32.Sqrt(c[j]) + r.eps)
		}
	}
}

// LR returns the learning rate.
func (r *RMSProp) LR() float32 { return r.lr }

// SetLR sets the learning rate.
func (r *RMSProp) SetLR(lr float32) { r.lr = lr }
