// Copyright 2026 Strand ML Toolkit. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"fmt"

	"github.com/strand-ml/strand/tensor"
)

// Flatten collapses all axes after the batch axis into one feature
// axis, turning [batch, d1, ..., dn] into [batch, d1*...*dn].
var Flatten = unary("Flatten",
	func(cfg InitConfig, in tensor.Shape) (tensor.Shape, Params, State, error) {
		if len(in) < 2 {
			return nil, Params{}, State{}, fmt.Errorf("flatten: input must have at least rank 2, got %v", in)
		}
		features := 1
		for _, d := range in[1:] {
			if d == -1 {
				return nil, Params{}, State{}, fmt.Errorf("flatten: non-batch dimensions must be known, got %v", in)
			}
			features *= d
		}
		return tensor.Shape{in[0], features}, Params{}, State{}, nil
	},
	func(p Params, s State, x *tensor.Tensor, cfg ApplyConfig) (*tensor.Tensor, State) {
		shape := x.Shape()
		return x.Reshape(shape[0], x.NumElements()/shape[0]), State{}
	},
)
