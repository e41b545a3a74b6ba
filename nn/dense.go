// Copyright 2026 Strand ML Toolkit. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"fmt"

	"github.com/strand-ml/strand/tensor"
)

// Dense returns a fully connected layer with the given number of output
// units. Input is [batch, features]; the weight matrix is [features,
// units] with Glorot-normal init and the bias is near-zero normal.
func Dense(units int) Layer {
	return unary("Dense",
		func(cfg InitConfig, in tensor.Shape) (tensor.Shape, Params, State, error) {
			if len(in) != 2 {
				return nil, Params{}, State{}, fmt.Errorf("dense: input must be rank 2, got %v", in)
			}
			features := in[1]
			if features == -1 {
				return nil, Params{}, State{}, fmt.Errorf("dense: feature dimension must be known, got %v", in)
			}
			w := glorotNormal(cfg.RNG, cfg.Backend, tensor.Shape{features, units}, features, units)
			b := normal(cfg.RNG, cfg.Backend, tensor.Shape{units}, 1e-2)
			out := tensor.Shape{in[0], units}
			return out, Params{Tensors: []*tensor.Tensor{w, b}}, State{}, nil
		},
		func(p Params, s State, x *tensor.Tensor, cfg ApplyConfig) (*tensor.Tensor, State) {
			w, b := p.Tensors[0], p.Tensors[1]
			return x.MatMul(w).BiasAdd(b), State{}
		},
	)
}
