// Copyright 2026 Strand ML Toolkit. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn_test

import (
	"math/rand"
	"testing"

	"github.com/strand-ml/strand/autodiff"
	"github.com/strand-ml/strand/backend/cpu"
	"github.com/strand-ml/strand/nn"
	"github.com/strand-ml/strand/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func initConfig() nn.InitConfig {
	return nn.InitConfig{
		RNG:     rand.New(rand.NewSource(42)),
		Backend: autodiff.New(cpu.New()),
	}
}

// TestSerial_ShapeInference tests that shapes thread through a stack of
// dense layers with the batch wildcard intact.
func TestSerial_ShapeInference(t *testing.T) {
	net := nn.Serial(
		nn.Dense(128), nn.Relu,
		nn.Dense(10), nn.LogSoftmax,
	)

	out, params, _, err := net.Init(initConfig(), []tensor.Shape{{-1, 784}})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, tensor.Shape{-1, 10}, out[0])

	// Two dense layers contribute two tensors each.
	assert.Len(t, params.Flatten(), 4)
}

// TestSerial_ErrorNamesLayer tests that init failures carry the layer
// position.
func TestSerial_ErrorNamesLayer(t *testing.T) {
	net := nn.Serial(
		nn.Dense(16),
		nn.Conv(8, 3, 3), // conv on a rank-2 input must fail
	)

	_, _, _, err := net.Init(initConfig(), []tensor.Shape{{-1, 20}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "serial layer 1")
}

// TestFanOutFanInSum_Shapes tests residual-style wiring shape inference.
func TestFanOutFanInSum_Shapes(t *testing.T) {
	net := nn.Serial(
		nn.FanOut(2),
		nn.Parallel(nn.Dense(8), nn.Dense(8)),
		nn.FanInSum,
	)

	out, _, _, err := net.Init(initConfig(), []tensor.Shape{{-1, 8}})
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{-1, 8}, out[0])
}

// TestFanOut_SharesTensor tests that FanOut aliases rather than copies.
func TestFanOut_SharesTensor(t *testing.T) {
	cfg := initConfig()
	layer := nn.FanOut(3)
	_, p, s, err := layer.Init(cfg, []tensor.Shape{{2, 2}})
	require.NoError(t, err)

	x := tensor.Ones(tensor.Shape{2, 2}, cfg.Backend)
	ys, _ := layer.Apply(p, s, []*tensor.Tensor{x}, nn.ApplyConfig{})
	require.Len(t, ys, 3)
	for _, y := range ys {
		assert.Same(t, x, y)
	}
}

// TestFanInSum_Values tests element-wise summation of a bundle.
func TestFanInSum_Values(t *testing.T) {
	cfg := initConfig()
	_, p, s, err := nn.FanInSum.Init(cfg, []tensor.Shape{{2}, {2}, {2}})
	require.NoError(t, err)

	a, _ := tensor.FromSlice([]float32{1, 2}, tensor.Shape{2}, cfg.Backend)
	b, _ := tensor.FromSlice([]float32{10, 20}, tensor.Shape{2}, cfg.Backend)
	c, _ := tensor.FromSlice([]float32{100, 200}, tensor.Shape{2}, cfg.Backend)

	ys, _ := nn.FanInSum.Apply(p, s, []*tensor.Tensor{a, b, c}, nn.ApplyConfig{})
	require.Len(t, ys, 1)
	assert.Equal(t, []float32{111, 222}, ys[0].Data())
}

// TestFanInSum_ShapeMismatch tests the compatibility check.
func TestFanInSum_ShapeMismatch(t *testing.T) {
	_, _, _, err := nn.FanInSum.Init(initConfig(), []tensor.Shape{{2, 3}, {2, 4}})
	require.Error(t, err)
}

// TestFanInConcat_Shapes tests concatenation shape inference with a
// batch wildcard.
func TestFanInConcat_Shapes(t *testing.T) {
	out, _, _, err := nn.FanInConcat(1).Init(initConfig(), []tensor.Shape{{-1, 3}, {-1, 5}})
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{-1, 8}, out[0])
}

// TestIdentity_PassThrough tests the no-op layer.
func TestIdentity_PassThrough(t *testing.T) {
	cfg := initConfig()
	out, p, s, err := nn.Identity.Init(cfg, []tensor.Shape{{-1, 7}})
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{-1, 7}, out[0])

	x := tensor.Ones(tensor.Shape{3, 7}, cfg.Backend)
	ys, _ := nn.Identity.Apply(p, s, []*tensor.Tensor{x}, nn.ApplyConfig{})
	assert.Same(t, x, ys[0])
}

// TestParallel_ArityMismatch tests the input-count check.
func TestParallel_ArityMismatch(t *testing.T) {
	_, _, _, err := nn.Parallel(nn.Dense(4), nn.Dense(4)).Init(
		initConfig(), []tensor.Shape{{-1, 8}})
	require.Error(t, err)
}

// TestShapeDependent_AdaptsToInputChannels tests deferred construction:
// the block's output width must follow the input width, whatever it is.
func TestShapeDependent_AdaptsToInputChannels(t *testing.T) {
	block := nn.ShapeDependent(func(in []tensor.Shape) nn.Layer {
		return nn.Dense(in[0][1])
	})

	for _, width := range []int{4, 16} {
		out, params, _, err := block.Init(initConfig(), []tensor.Shape{{-1, width}})
		require.NoError(t, err)
		assert.Equal(t, tensor.Shape{-1, width}, out[0])
		assert.Equal(t, width*width+width, params.NumParameters())
	}
}

// TestShapeDependent_ResidualBlock tests the ResNet identity-block
// pattern end to end: build with a wildcard batch, apply with a concrete
// one.
func TestShapeDependent_ResidualBlock(t *testing.T) {
	main := nn.ShapeDependent(func(in []tensor.Shape) nn.Layer {
		return nn.Serial(
			nn.Dense(6),
			nn.Relu,
			nn.Dense(in[0][1]),
		)
	})
	block := nn.Serial(
		nn.FanOut(2),
		nn.Parallel(main, nn.Identity),
		nn.FanInSum,
		nn.Relu,
	)

	cfg := initConfig()
	out, p, s, err := block.Init(cfg, []tensor.Shape{{-1, 5}})
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{-1, 5}, out[0])

	x := tensor.Randn(tensor.Shape{3, 5}, cfg.RNG, cfg.Backend)
	ys, _ := block.Apply(p, s, []*tensor.Tensor{x}, nn.ApplyConfig{})
	require.Len(t, ys, 1)
	assert.Equal(t, tensor.Shape{3, 5}, ys[0].Shape())
}
