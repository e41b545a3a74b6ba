// Copyright 2026 Strand ML Toolkit. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim provides gradient-descent optimizers for parameters
// trained under the autodiff backend.
//
// An optimizer is constructed over a fixed parameter list (usually
// Model.Parameters()) and fed the gradient map returned by
// autodiff.Backend.Backward once per step:
//
//	opt := optim.NewAdam(model.Parameters(), 1e-3)
//	for each batch {
//	    loss := ...
//	    opt.Step(ad.Backward(loss))
//	    ad.Tape().Clear()
//	}
//
// Parameters without a gradient in the map are skipped, so frozen or
// unused branches cost nothing.
package optim

import "github.com/strand-ml/strand/tensor"

// Grads maps a parameter tensor to its gradient, as produced by the
// autodiff backward pass.
type Grads = map[*tensor.Tensor]*tensor.Tensor

// Optimizer updates parameters in place from a gradient map.
type Optimizer interface {
	// Step applies one update. Parameters missing from grads are left
	// untouched.
	Step(grads Grads)
	// LR returns the current learning rate.
	LR() float32
	// SetLR changes the learning rate; useful for manual schedules.
	SetLR(lr float32)
}
