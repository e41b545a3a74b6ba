// Copyright 2026 Strand ML Toolkit. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import "github.com/strand-ml/strand/tensor"

// Params is a tree of parameter tensors mirroring the combinator
// structure of the network that produced it: a plain layer holds its
// tensors in Tensors, a combinator holds one Sub entry per child.
// Layers without parameters contribute empty nodes.
type Params struct {
	Tensors []*tensor.Tensor
	Sub     []Params
}

// Flatten returns all parameter tensors in depth-first order. The order
// is deterministic for a fixed network structure, which is what
// optimizers rely on.
func (p Params) Flatten() []*tensor.Tensor {
	var out []*tensor.Tensor
	p.walk(func(t *tensor.Tensor) { out = append(out, t) })
	return out
}

// NumParameters returns the total number of scalar parameters.
func (p Params) NumParameters() int {
	var n int
	p.walk(func(t *tensor.Tensor) { n += t.NumElements() })
	return n
}

func (p Params) walk(fn func(*tensor.Tensor)) {
	for _, t := range p.Tensors {
		fn(t)
	}
	for _, sub := range p.Sub {
		sub.walk(fn)
	}
}

// State is a tree of auxiliary non-trained tensors (running statistics
// of BatchNorm) with the same structure conventions as Params. Apply
// returns a new State rather than mutating the old one, so a forward
// pass in Test mode can be discarded without touching training state.
type State struct {
	Tensors []*tensor.Tensor
	Sub     []State
}

// Flatten returns all state tensors in depth-first order.
func (s State) Flatten() []*tensor.Tensor {
	var out []*tensor.Tensor
	for _, t := range s.Tensors {
		out = append(out, t)
	}
	for _, sub := range s.Sub {
		out = append(out, sub.Flatten()...)
	}
	return out
}
