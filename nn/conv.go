// Copyright 2026 Strand ML Toolkit. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"fmt"

	"github.com/strand-ml/strand/tensor"
)

// Conv returns a 2D convolution layer with the given number of output
// filters and a kh×kw kernel. Input is NHWC, the kernel is HWIO with
// Glorot-normal init. Defaults are stride (1, 1) and Valid padding;
// override with WithStrides and WithPadding.
func Conv(filters, kh, kw int, opts ...Option) Layer {
	o := buildOptions(options{strides: [2]int{1, 1}, padding: tensor.Valid}, opts)
	return unary("Conv",
		func(cfg InitConfig, in tensor.Shape) (tensor.Shape, Params, State, error) {
			if len(in) != 4 {
				return nil, Params{}, State{}, fmt.Errorf("conv: input must be rank 4 (NHWC), got %v", in)
			}
			h, w, ci := in[1], in[2], in[3]
			if h == -1 || w == -1 || ci == -1 {
				return nil, Params{}, State{}, fmt.Errorf("conv: spatial and channel dimensions must be known, got %v", in)
			}
			oh := tensor.OutSize(h, kh, o.strides[0], o.padding)
			ow := tensor.OutSize(w, kw, o.strides[1], o.padding)
			if oh <= 0 || ow <= 0 {
				return nil, Params{}, State{}, fmt.Errorf("conv: %dx%d kernel does not fit %v input", kh, kw, in)
			}
			fanIn := kh * kw * ci
			fanOut := kh * kw * filters
			kernel := glorotNormal(cfg.RNG, cfg.Backend, tensor.Shape{kh, kw, ci, filters}, fanIn, fanOut)
			bias := normal(cfg.RNG, cfg.Backend, tensor.Shape{filters}, 1e-6)
			out := tensor.Shape{in[0], oh, ow, filters}
			return out, Params{Tensors: []*tensor.Tensor{kernel, bias}}, State{}, nil
		},
		func(p Params, s State, x *tensor.Tensor, cfg ApplyConfig) (*tensor.Tensor, State) {
			kernel, bias := p.Tensors[0], p.Tensors[1]
			y := x.Backend().Conv2D(x, kernel, o.strides, o.padding)
			return y.BiasAdd(bias), State{}
		},
	)
}
