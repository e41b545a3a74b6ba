// Copyright 2026 Strand ML Toolkit. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn is the layer-combinator and shape-inference engine of the
// Strand toolkit.
//
// A Layer is a pair of functions. Init maps an input shape and a source
// of randomness to an output shape, a parameter tree and an auxiliary
// state tree; Apply maps parameters, state and an input tensor to an
// output tensor and updated state. Combinators (Serial, Parallel,
// FanOut, FanInSum, ShapeDependent) compose layers into networks without
// the caller ever tracking shapes by hand:
//
//	net := nn.Serial(
//	    nn.Dense(1024), nn.Relu,
//	    nn.Dense(1024), nn.Relu,
//	    nn.Dense(10), nn.LogSoftmax,
//	)
//	model, err := nn.Build(net, nn.InitConfig{RNG: rng, Backend: ad},
//	    tensor.Shape{-1, 784})
//
// Layers pass tensors around as bundles ([]*tensor.Tensor): almost every
// layer consumes and produces exactly one tensor, but FanOut produces
// several and FanInSum folds several back into one, which is what makes
// residual wiring expressible. ShapeDependent defers constructing a
// layer until its input shape is known; ResNet identity blocks rely on
// it because the number of output channels of the block's main path must
// match whatever number of channels flows in.
package nn

import (
	"fmt"
	"math/rand"

	"github.com/strand-ml/strand/tensor"
)

// Mode selects training or inference behavior for layers that
// distinguish the two (BatchNorm, Dropout).
type Mode int

const (
	// Train uses batch statistics and enables stochastic layers.
	Train Mode = iota
	// Test uses frozen statistics and disables stochastic layers.
	Test
)

// String returns the mode name.
func (m Mode) String() string {
	if m == Test {
		return "test"
	}
	return "train"
}

// InitConfig carries what layers need to allocate parameters.
type InitConfig struct {
	// RNG drives parameter initialization.
	RNG *rand.Rand
	// Backend is the backend parameters and buffers are created on.
	// Build a network on an autodiff backend to make it trainable.
	Backend tensor.Backend
}

// ApplyConfig carries per-call settings of the forward pass.
type ApplyConfig struct {
	// Mode selects train or test behavior. The zero value is Train.
	Mode Mode
	// RNG drives stochastic layers (Dropout); only needed in Train mode
	// when such layers are present.
	RNG *rand.Rand
}

// InitFunc performs shape inference and parameter allocation for one
// layer: given an input shape bundle it returns the output shape bundle,
// the layer's parameters and its initial auxiliary state.
type InitFunc func(cfg InitConfig, in []tensor.Shape) ([]tensor.Shape, Params, State, error)

// ApplyFunc runs one layer's forward computation and returns the output
// bundle and the updated auxiliary state.
type ApplyFunc func(p Params, s State, xs []*tensor.Tensor, cfg ApplyConfig) ([]*tensor.Tensor, State)

// Layer is a network building block: an (Init, Apply) pair.
type Layer struct {
	Name  string
	Init  InitFunc
	Apply ApplyFunc
}

// unary builds a Layer from single-tensor init and apply functions,
// handling the bundle plumbing and arity checks.
func unary(name string,
	init func(cfg InitConfig, in tensor.Shape) (tensor.Shape, Params, State, error),
	apply func(p Params, s State, x *tensor.Tensor, cfg ApplyConfig) (*tensor.Tensor, State),
) Layer {
	return Layer{
		Name: name,
		Init: func(cfg InitConfig, in []tensor.Shape) ([]tensor.Shape, Params, State, error) {
			if len(in) != 1 {
				return nil, Params{}, State{}, fmt.Errorf("%s: expected 1 input, got %d", name, len(in))
			}
			out, p, s, err := init(cfg, in[0])
			if err != nil {
				return nil, Params{}, State{}, err
			}
			return []tensor.Shape{out}, p, s, nil
		},
		Apply: func(p Params, s State, xs []*tensor.Tensor, cfg ApplyConfig) ([]*tensor.Tensor, State) {
			if len(xs) != 1 {
				panic(fmt.Sprintf("nn: %s applied to %d inputs, expected 1", name, len(xs)))
			}
			y, ns := apply(p, s, xs[0], cfg)
			return []*tensor.Tensor{y}, ns
		},
	}
}

// shapesOf returns the shapes of a tensor bundle.
func shapesOf(xs []*tensor.Tensor) []tensor.Shape {
	shapes := make([]tensor.Shape, len(xs))
	for i, x := range xs {
		shapes[i] = x.Shape()
	}
	return shapes
}
