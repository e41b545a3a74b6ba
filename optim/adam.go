// Copyright 2026 Strand ML Toolkit. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package optim

import (
	"github.com/chewxy/math32"
	"github.com/strand-ml/strand/tensor"
)

// Adam implements the Adam optimizer (Kingma & Ba, 2015) with bias
// correction.
type Adam struct {
	params []*tensor.Tensor
	lr     float32
	beta1  float32
	beta2  float32
	eps    float32
	m      [][]float32
	v      [][]float32
	step   int
}

// NewAdam creates an Adam optimizer with the standard defaults
// beta1 0.9, beta2 0.999, eps 1e-8.
func NewAdam(params []*tensor.Tensor, lr float32) *Adam {
	return NewAdamWithBetas(params, lr, 0.9, 0.999, 1e-8)
}

// NewAdamWithBetas creates an Adam optimizer with explicit moment decay
// rates.
func NewAdamWithBetas(params []*tensor.Tensor, lr, beta1, beta2, eps float32) *Adam {
	a := &Adam{
		params: params,
		lr:     lr,
		beta1:  beta1,
		beta2:  beta2,
		eps:    eps,
		m:      make([][]float32, len(params)),
		v:      make([][]float32, len(params)),
	}
	for i, p := range params {
		a.m[i] = make([]float32, p.NumElements())
		a.v[i] = make([]float32, p.NumElements())
	}
	return a
}

// Step applies one Adam update.
func (a *Adam) Step(grads Grads) {
	a.step++
	c1 := 1 - math32.Pow(a.beta1, float32(a.step))
	c2 := 1 - math32.Pow(a.beta2, float32(a.step))
	for i, p := range a.params {
		g, ok := grads[p]
		if !ok {
			continue
		}
		pd, gd := p.Data(), g.Data()
		m, v := a.m[i], a.v[i]
		for j := range pd {
			m[j] = a.beta1*m[j] + (1-a.beta1)*gd[j]
			v[j] = a.beta2*v[j] + (1-a.beta2)*gd[j]*gd[j]
			mHat := m[j] / c1
			vHat := v[j] / c2
			pd[j] -= a.lr * mHat / (math32.Sqrt(vHat) + a.eps)
		}
	}
}

// LR returns the learning rate.
func (a *Adam) LR() float32 { return a.lr }

// SetLR sets the learning rate.
func (a *Adam) SetLR(lr float32) { a.lr = lr }
