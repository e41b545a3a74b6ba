// Copyright 2026 Strand ML Toolkit. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"fmt"

	"github.com/strand-ml/strand/tensor"
)

// Model is a built network: a layer together with its allocated
// parameters, its auxiliary state and the inferred output shapes.
type Model struct {
	layer     Layer
	params    Params
	state     State
	inShapes  []tensor.Shape
	outShapes []tensor.Shape
}

// Build runs shape inference and parameter allocation for a network.
// Input shapes may use -1 for the batch axis; the wildcard flows through
// inference so one build serves every batch size. Build returns an error
// when the shapes are inconsistent with the network structure, which is
// where mis-wired architectures surface.
func Build(l Layer, cfg InitConfig, inputs ...tensor.Shape) (*Model, error) {
	if cfg.Backend == nil {
		return nil, fmt.Errorf("nn: Build requires a backend")
	}
	if cfg.RNG == nil {
		return nil, fmt.Errorf("nn: Build requires an RNG")
	}
	if len(inputs) == 0 {
		return nil, fmt.Errorf("nn: Build requires at least one input shape")
	}
	out, p, s, err := l.Init(cfg, inputs)
	if err != nil {
		return nil, fmt.Errorf("nn: build %s: %w", l.Name, err)
	}
	return &Model{
		layer:     l,
		params:    p,
		state:     s,
		inShapes:  inputs,
		outShapes: out,
	}, nil
}

// Apply runs the forward pass on a single input tensor and carries the
// state update. In Train mode this advances running statistics; in Test
// mode state is returned unchanged by the layers, so the assignment is a
// no-op in effect.
func (m *Model) Apply(x *tensor.Tensor, cfg ApplyConfig) *tensor.Tensor {
	ys, ns := m.layer.Apply(m.params, m.state, []*tensor.Tensor{x}, cfg)
	if len(ys) != 1 {
		panic(fmt.Sprintf("nn: model produced %d outputs, expected 1", len(ys)))
	}
	m.state = ns
	return ys[0]
}

// ApplyAll runs the forward pass on a bundle of inputs, for networks
// whose top-level layer consumes or produces more than one tensor.
func (m *Model) ApplyAll(xs []*tensor.Tensor, cfg ApplyConfig) []*tensor.Tensor {
	ys, ns := m.layer.Apply(m.params, m.state, xs, cfg)
	m.state = ns
	return ys
}

// Params returns the parameter tree.
func (m *Model) Params() Params { return m.params }

// State returns the current auxiliary state tree.
func (m *Model) State() State { return m.state }

// Parameters returns all trainable tensors in depth-first order.
func (m *Model) Parameters() []*tensor.Tensor { return m.params.Flatten() }

// InputShapes returns the shapes the model was built with.
func (m *Model) InputShapes() []tensor.Shape { return m.inShapes }

// OutputShapes returns the inferred output shapes.
func (m *Model) OutputShapes() []tensor.Shape { return m.outShapes }
