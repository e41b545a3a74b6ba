// Copyright 2026 Strand ML Toolkit. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package optim

import "github.com/strand-ml/strand/tensor"

// SGD implements stochastic gradient descent with optional classical
// momentum:
//
//	v = momentum*v + grad
//	p = p - lr*v
//
// With momentum 0 this reduces to plain gradient descent.
type SGD struct {
	params     []*tensor.Tensor
	lr         float32
	momentum   float32
	velocities [][]float32
}

// NewSGD creates a plain SGD optimizer.
func NewSGD(params []*tensor.Tensor, lr float32) *SGD {
	return NewSGDMomentum(params, lr, 0)
}

// NewSGDMomentum creates an SGD optimizer with classical momentum.
func NewSGDMomentum(params []*tensor.Tensor, lr, momentum float32) *SGD {
	s := &SGD{
		params:   params,
		lr:       lr,
		momentum: momentum,
	}
	if momentum != 0 {
		s.velocities = make([][]float32, len(params))
		for i, p := range params {
			s.velocities[i] = make([]float32, p.NumElements())
		}
	}
	return s
}

// Step applies one SGD update.
func (s *SGD) Step(grads Grads) {
	for i, p := range s.params {
		g, ok := grads[p]
		if !ok {
			continue
		}
		pd, gd := p.Data(), g.Data()
		if s.momentum == 0 {
			for j := range pd {
				pd[j] -= s.lr * gd[j]
			}
			continue
		}
		v := s.velocities[i]
		for j := range pd {
			v[j] = s.momentum*v[j] + gd[j]
			pd[j] -= s.lr * v[j]
		}
	}
}

// LR returns the learning rate.
func (s *SGD) LR() float32 { return s.lr }

// SetLR sets the learning rate.
func (s *SGD) SetLR(lr float32) { s.lr = lr }
