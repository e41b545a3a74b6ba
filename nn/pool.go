// Copyright 2026 Strand ML Toolkit. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"fmt"

	"github.com/strand-ml/strand/tensor"
)

// MaxPool returns a 2D max-pooling layer with a wh×ww window. Defaults
// are stride (1, 1) and Valid padding.
func MaxPool(wh, ww int, opts ...Option) Layer {
	return poolLayer("MaxPool", tensor.MaxPool, wh, ww, opts)
}

// SumPool returns a 2D sum-pooling layer with a wh×ww window.
func SumPool(wh, ww int, opts ...Option) Layer {
	return poolLayer("SumPool", tensor.SumPool, wh, ww, opts)
}

// AvgPool returns a 2D average-pooling layer with a wh×ww window. With
// Same padding, each window averages over its in-bounds elements only.
func AvgPool(wh, ww int, opts ...Option) Layer {
	return poolLayer("AvgPool", tensor.AvgPool, wh, ww, opts)
}

func poolLayer(name string, kind tensor.PoolKind, wh, ww int, opts []Option) Layer {
	o := buildOptions(options{strides: [2]int{1, 1}, padding: tensor.Valid}, opts)
	window := [2]int{wh, ww}
	return unary(name,
		func(cfg InitConfig, in tensor.Shape) (tensor.Shape, Params, State, error) {
			if len(in) != 4 {
				return nil, Params{}, State{}, fmt.Errorf("pool: input must be rank 4 (NHWC), got %v", in)
			}
			h, w := in[1], in[2]
			if h == -1 || w == -1 {
				return nil, Params{}, State{}, fmt.Errorf("pool: spatial dimensions must be known, got %v", in)
			}
			oh := tensor.OutSize(h, wh, o.strides[0], o.padding)
			ow := tensor.OutSize(w, ww, o.strides[1], o.padding)
			if oh <= 0 || ow <= 0 {
				return nil, Params{}, State{}, fmt.Errorf("pool: %dx%d window does not fit %v input", wh, ww, in)
			}
			out := tensor.Shape{in[0], oh, ow, in[3]}
			return out, Params{}, State{}, nil
		},
		func(p Params, s State, x *tensor.Tensor, cfg ApplyConfig) (*tensor.Tensor, State) {
			y := x.Backend().Pool2D(x, kind, window, o.strides, o.padding)
			return y, State{}
		},
	)
}
