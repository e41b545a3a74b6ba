// Copyright 2026 Strand ML Toolkit. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"fmt"

	"github.com/strand-ml/strand/tensor"
)

// Dropout returns a layer that zeroes each element with probability
// rate during training and rescales survivors by 1/(1-rate), so Test
// mode is a plain pass-through with no compensation needed. Train mode
// requires ApplyConfig.RNG.
func Dropout(rate float32) Layer {
	return unary("Dropout",
		func(cfg InitConfig, in tensor.Shape) (tensor.Shape, Params, State, error) {
			if rate < 0 || rate >= 1 {
				return nil, Params{}, State{}, fmt.Errorf("dropout: rate must be in [0, 1), got %v", rate)
			}
			return in.Clone(), Params{}, State{}, nil
		},
		func(p Params, s State, x *tensor.Tensor, cfg ApplyConfig) (*tensor.Tensor, State) {
			if cfg.Mode == Test || rate == 0 {
				return x, State{}
			}
			if cfg.RNG == nil {
				panic("nn: Dropout in Train mode requires ApplyConfig.RNG")
			}
			mask := tensor.New(x.Shape(), x.Backend())
			scale := 1 / (1 - rate)
			md := mask.Data()
			for i := range md {
				if float32(cfg.RNG.Float64()) >= rate {
					md[i] = scale
				}
			}
			return x.Mul(mask), State{}
		},
	)
}
