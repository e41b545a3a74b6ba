// Copyright 2026 Strand ML Toolkit. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import "github.com/strand-ml/strand/tensor"

// options holds the knobs shared by the configurable layers. Each layer
// reads only the fields it cares about.
type options struct {
	strides  [2]int
	padding  tensor.Padding
	eps      float32
	momentum float32
}

// Option configures a layer constructor.
type Option func(*options)

// WithStrides sets the vertical and horizontal stride of a convolution
// or pooling layer.
func WithStrides(sh, sw int) Option {
	return func(o *options) { o.strides = [2]int{sh, sw} }
}

// WithPadding sets the padding scheme of a convolution or pooling layer.
func WithPadding(p tensor.Padding) Option {
	return func(o *options) { o.padding = p }
}

// WithEpsilon sets the variance floor of a BatchNorm layer.
func WithEpsilon(eps float32) Option {
	return func(o *options) { o.eps = eps }
}

// WithMomentum sets the running-statistics momentum of a BatchNorm
// layer.
func WithMomentum(m float32) Option {
	return func(o *options) { o.momentum = m }
}

func buildOptions(defaults options, opts []Option) options {
	o := defaults
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
