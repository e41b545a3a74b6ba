// Copyright 2026 Strand ML Toolkit. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"fmt"

	"github.com/strand-ml/strand/tensor"
)

// BatchNorm returns a batch normalization layer over the trailing
// channel axis. Parameters are a per-channel scale (gamma, ones) and
// shift (beta, zeros); state is the running mean and variance used in
// Test mode. Defaults are eps 1e-5 and momentum 0.9; override with
// WithEpsilon and WithMomentum.
//
// In Train mode the layer normalizes with batch statistics and folds
// them into the running estimates; in Test mode it normalizes with the
// running estimates and leaves state untouched.
func BatchNorm(opts ...Option) Layer {
	o := buildOptions(options{eps: 1e-5, momentum: 0.9}, opts)
	return unary("BatchNorm",
		func(cfg InitConfig, in tensor.Shape) (tensor.Shape, Params, State, error) {
			if len(in) < 2 {
				return nil, Params{}, State{}, fmt.Errorf("batchnorm: input must have at least rank 2, got %v", in)
			}
			ch := in[len(in)-1]
			if ch == -1 {
				return nil, Params{}, State{}, fmt.Errorf("batchnorm: channel dimension must be known, got %v", in)
			}
			gamma := tensor.Ones(tensor.Shape{ch}, cfg.Backend)
			beta := tensor.Zeros(tensor.Shape{ch}, cfg.Backend)
			runMean := tensor.Zeros(tensor.Shape{ch}, cfg.Backend)
			runVar := tensor.Ones(tensor.Shape{ch}, cfg.Backend)
			return in.Clone(),
				Params{Tensors: []*tensor.Tensor{gamma, beta}},
				State{Tensors: []*tensor.Tensor{runMean, runVar}},
				nil
		},
		func(p Params, s State, x *tensor.Tensor, cfg ApplyConfig) (*tensor.Tensor, State) {
			gamma, beta := p.Tensors[0], p.Tensors[1]
			runMean, runVar := s.Tensors[0], s.Tensors[1]
			if cfg.Mode == Test {
				y := x.Backend().BatchNormInfer(x, gamma, beta, runMean, runVar, o.eps)
				return y, s
			}
			y, mean, variance := x.Backend().BatchNormTrain(x, gamma, beta, o.eps)
			m := x.NumElements() / x.Shape()[len(x.Shape())-1]
			return y, State{Tensors: []*tensor.Tensor{
				updateRunning(runMean, mean, o.momentum, 1),
				updateRunning(runVar, variance, o.momentum, varianceCorrection(m)),
			}}
		},
	)
}

// updateRunning folds a batch statistic into a running estimate:
// r = momentum*r + (1-momentum)*correction*batch. It works on raw data
// so the update never lands on a gradient tape.
func updateRunning(running, batch *tensor.Tensor, momentum, correction float32) *tensor.Tensor {
	out := tensor.New(running.Shape(), running.Backend())
	rd, bd, od := running.Data(), batch.Data(), out.Data()
	for i := range od {
		od[i] = momentum*rd[i] + (1-momentum)*correction*bd[i]
	}
	return out
}

// varianceCorrection converts the biased batch variance into the
// unbiased estimate tracked by the running variance.
func varianceCorrection(m int) float32 {
	if m <= 1 {
		return 1
	}
	return float32(m) / float32(m-1)
}
