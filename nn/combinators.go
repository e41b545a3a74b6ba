// Copyright 2026 Strand ML Toolkit. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"fmt"

	"github.com/strand-ml/strand/tensor"
)

// Serial composes layers in sequence. Shape inference threads each
// layer's output shapes into the next layer's init, so only the
// network's input shape has to be written down.
func Serial(layers ...Layer) Layer {
	return Layer{
		Name: "Serial",
		Init: func(cfg InitConfig, in []tensor.Shape) ([]tensor.Shape, Params, State, error) {
			p := Params{Sub: make([]Params, len(layers))}
			s := State{Sub: make([]State, len(layers))}
			shapes := in
			for i, l := range layers {
				var err error
				shapes, p.Sub[i], s.Sub[i], err = l.Init(cfg, shapes)
				if err != nil {
					return nil, Params{}, State{}, fmt.Errorf("serial layer %d (%s): %w", i, l.Name, err)
				}
			}
			return shapes, p, s, nil
		},
		Apply: func(p Params, s State, xs []*tensor.Tensor, cfg ApplyConfig) ([]*tensor.Tensor, State) {
			ns := State{Sub: make([]State, len(layers))}
			for i, l := range layers {
				xs, ns.Sub[i] = l.Apply(p.Sub[i], s.Sub[i], xs, cfg)
			}
			return xs, ns
		},
	}
}

// Parallel applies one layer per input: input i goes to layer i and the
// children's output bundles are concatenated in order. Combined with
// FanOut and FanInSum it expresses residual branches:
//
//	Serial(FanOut(2), Parallel(mainPath, Identity), FanInSum)
func Parallel(layers ...Layer) Layer {
	return Layer{
		Name: "Parallel",
		Init: func(cfg InitConfig, in []tensor.Shape) ([]tensor.Shape, Params, State, error) {
			if len(in) != len(layers) {
				return nil, Params{}, State{}, fmt.Errorf("parallel: %d inputs for %d layers", len(in), len(layers))
			}
			p := Params{Sub: make([]Params, len(layers))}
			s := State{Sub: make([]State, len(layers))}
			var out []tensor.Shape
			for i, l := range layers {
				shapes, sp, ss, err := l.Init(cfg, in[i:i+1])
				if err != nil {
					return nil, Params{}, State{}, fmt.Errorf("parallel layer %d (%s): %w", i, l.Name, err)
				}
				p.Sub[i], s.Sub[i] = sp, ss
				out = append(out, shapes...)
			}
			return out, p, s, nil
		},
		Apply: func(p Params, s State, xs []*tensor.Tensor, cfg ApplyConfig) ([]*tensor.Tensor, State) {
			if len(xs) != len(layers) {
				panic(fmt.Sprintf("nn: Parallel applied to %d inputs, expected %d", len(xs), len(layers)))
			}
			ns := State{Sub: make([]State, len(layers))}
			var out []*tensor.Tensor
			for i, l := range layers {
				ys, ss := l.Apply(p.Sub[i], s.Sub[i], xs[i:i+1], cfg)
				ns.Sub[i] = ss
				out = append(out, ys...)
			}
			return out, ns
		},
	}
}

// FanOut duplicates its single input n times. No data is copied: all n
// outputs reference the same tensor, and gradient accumulation on the
// tape merges the branches' gradients on the way back.
func FanOut(n int) Layer {
	return Layer{
		Name: "FanOut",
		Init: func(cfg InitConfig, in []tensor.Shape) ([]tensor.Shape, Params, State, error) {
			if len(in) != 1 {
				return nil, Params{}, State{}, fmt.Errorf("fanout: expected 1 input, got %d", len(in))
			}
			out := make([]tensor.Shape, n)
			for i := range out {
				out[i] = in[0]
			}
			return out, Params{}, State{}, nil
		},
		Apply: func(p Params, s State, xs []*tensor.Tensor, cfg ApplyConfig) ([]*tensor.Tensor, State) {
			if len(xs) != 1 {
				panic(fmt.Sprintf("nn: FanOut applied to %d inputs, expected 1", len(xs)))
			}
			out := make([]*tensor.Tensor, n)
			for i := range out {
				out[i] = xs[0]
			}
			return out, State{}
		},
	}
}

// FanInSum sums all inputs element-wise into a single output.
var FanInSum = Layer{
	Name: "FanInSum",
	Init: func(cfg InitConfig, in []tensor.Shape) ([]tensor.Shape, Params, State, error) {
		if len(in) == 0 {
			return nil, Params{}, State{}, fmt.Errorf("faninsum: no inputs")
		}
		for i := 1; i < len(in); i++ {
			if !compatible(in[i], in[0]) {
				return nil, Params{}, State{}, fmt.Errorf("faninsum: input %d has shape %v, want %v", i, in[i], in[0])
			}
		}
		return []tensor.Shape{in[0]}, Params{}, State{}, nil
	},
	Apply: func(p Params, s State, xs []*tensor.Tensor, cfg ApplyConfig) ([]*tensor.Tensor, State) {
		y := xs[0]
		for _, x := range xs[1:] {
			y = y.Add(x)
		}
		return []*tensor.Tensor{y}, State{}
	},
}

// FanInConcat concatenates all inputs along the given axis.
func FanInConcat(axis int) Layer {
	return Layer{
		Name: "FanInConcat",
		Init: func(cfg InitConfig, in []tensor.Shape) ([]tensor.Shape, Params, State, error) {
			if len(in) == 0 {
				return nil, Params{}, State{}, fmt.Errorf("faninconcat: no inputs")
			}
			first := in[0]
			if axis < 0 || axis >= len(first) {
				return nil, Params{}, State{}, fmt.Errorf("faninconcat: axis %d out of range for rank %d", axis, len(first))
			}
			out := first.Clone()
			for i := 1; i < len(in); i++ {
				if len(in[i]) != len(first) {
					return nil, Params{}, State{}, fmt.Errorf("faninconcat: input %d has rank %d, want %d", i, len(in[i]), len(first))
				}
				for d := range first {
					if d == axis {
						continue
					}
					if in[i][d] != first[d] && in[i][d] != -1 && first[d] != -1 {
						return nil, Params{}, State{}, fmt.Errorf("faninconcat: input %d has shape %v, incompatible with %v on axis %d", i, in[i], first, d)
					}
				}
				if out[axis] == -1 || in[i][axis] == -1 {
					out[axis] = -1
				} else {
					out[axis] += in[i][axis]
				}
			}
			return []tensor.Shape{out}, Params{}, State{}, nil
		},
		Apply: func(p Params, s State, xs []*tensor.Tensor, cfg ApplyConfig) ([]*tensor.Tensor, State) {
			y := xs[0].Backend().Concat(xs, axis)
			return []*tensor.Tensor{y}, State{}
		},
	}
}

// Identity passes its input through unchanged. It records nothing, so in
// a residual block the shortcut costs nothing on the tape.
var Identity = Layer{
	Name: "Identity",
	Init: func(cfg InitConfig, in []tensor.Shape) ([]tensor.Shape, Params, State, error) {
		return in, Params{}, State{}, nil
	},
	Apply: func(p Params, s State, xs []*tensor.Tensor, cfg ApplyConfig) ([]*tensor.Tensor, State) {
		return xs, State{}
	},
}

// compatible reports whether two inferred shapes describe the same
// tensor, treating -1 on either side as a wildcard.
func compatible(a, b tensor.Shape) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] && a[i] != -1 && b[i] != -1 {
			return false
		}
	}
	return true
}

// ShapeDependent defers constructing a layer until its input shapes are
// known, so a block can adapt its structure to whatever flows into it
// (a ResNet identity block sizing its last convolution to the incoming
// channel count). make is called once at init time with the declared
// input shapes and again at every apply with the runtime shapes; it must
// build a structurally identical layer both times, so it may only depend
// on dimensions that are concrete at init time (anything but the batch
// axis, in practice).
func ShapeDependent(make func(in []tensor.Shape) Layer) Layer {
	return Layer{
		Name: "ShapeDependent",
		Init: func(cfg InitConfig, in []tensor.Shape) ([]tensor.Shape, Params, State, error) {
			return make(in).Init(cfg, in)
		},
		Apply: func(p Params, s State, xs []*tensor.Tensor, cfg ApplyConfig) ([]*tensor.Tensor, State) {
			return make(shapesOf(xs)).Apply(p, s, xs, cfg)
		},
	}
}
