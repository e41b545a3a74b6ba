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
	"github.com/strand-ml/strand/optim"
	"github.com/strand-ml/strand/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestBuild_InfersOutputShapes tests end-to-end shape inference on an
// MNIST-sized MLP.
func TestBuild_InfersOutputShapes(t *testing.T) {
	net := nn.Serial(
		nn.Dense(1024), nn.Relu,
		nn.Dense(1024), nn.Relu,
		nn.Dense(10), nn.LogSoftmax,
	)

	model, err := nn.Build(net, initConfig(), tensor.Shape{-1, 784})
	require.NoError(t, err)
	assert.Equal(t, []tensor.Shape{{-1, 10}}, model.OutputShapes())

	// 784*1024+1024 + 1024*1024+1024 + 1024*10+10
	assert.Equal(t, 1863690, model.Params().NumParameters())
}

// TestBuild_RequiresBackendAndRNG tests configuration validation.
func TestBuild_RequiresBackendAndRNG(t *testing.T) {
	net := nn.Dense(4)

	_, err := nn.Build(net, nn.InitConfig{RNG: rand.New(rand.NewSource(1))}, tensor.Shape{-1, 2})
	require.Error(t, err)

	_, err = nn.Build(net, nn.InitConfig{Backend: cpu.New()}, tensor.Shape{-1, 2})
	require.Error(t, err)

	_, err = nn.Build(net, nn.InitConfig{RNG: rand.New(rand.NewSource(1)), Backend: cpu.New()})
	require.Error(t, err)
}

// TestBuild_SurfacesShapeErrors tests that a mis-wired network fails at
// build time, not at apply time.
func TestBuild_SurfacesShapeErrors(t *testing.T) {
	net := nn.Serial(nn.Flatten, nn.Conv(8, 3, 3))
	_, err := nn.Build(net, initConfig(), tensor.Shape{-1, 8, 8, 1})
	require.Error(t, err)
}

// TestModel_ApplyBatchSizes tests that one build serves several batch
// sizes through the wildcard.
func TestModel_ApplyBatchSizes(t *testing.T) {
	cfg := initConfig()
	model, err := nn.Build(nn.Serial(nn.Dense(4), nn.Softmax), cfg, tensor.Shape{-1, 6})
	require.NoError(t, err)

	for _, batch := range []int{1, 5, 17} {
		x := tensor.Randn(tensor.Shape{batch, 6}, cfg.RNG, cfg.Backend)
		y := model.Apply(x, nn.ApplyConfig{Mode: nn.Test})
		assert.Equal(t, tensor.Shape{batch, 4}, y.Shape())
	}
}

// TestModel_CarriesState tests that Train-mode applications advance the
// model's running statistics.
func TestModel_CarriesState(t *testing.T) {
	cfg := initConfig()
	model, err := nn.Build(nn.Serial(nn.Dense(3), nn.BatchNorm()), cfg, tensor.Shape{-1, 3})
	require.NoError(t, err)

	before := model.State().Flatten()[0]
	x := tensor.Randn(tensor.Shape{8, 3}, cfg.RNG, cfg.Backend)
	model.Apply(x, nn.ApplyConfig{Mode: nn.Train})
	after := model.State().Flatten()[0]

	assert.NotSame(t, before, after, "Train mode must produce new running statistics")
}

// TestTraining_LossDecreases trains a small MLP on a separable synthetic
// problem and asserts the loss drops and accuracy reaches the ceiling.
func TestTraining_LossDecreases(t *testing.T) {
	ad := autodiff.New(cpu.New())
	rng := rand.New(rand.NewSource(7))

	// Two Gaussian blobs: class 0 centered at -2, class 1 at +2.
	const n = 64
	xData := make([]float32, n*2)
	labels := make([]int, n)
	for i := 0; i < n; i++ {
		center := float32(-2)
		if i%2 == 1 {
			center = 2
			labels[i] = 1
		}
		xData[i*2] = center + float32(rng.NormFloat64())*0.5
		xData[i*2+1] = center + float32(rng.NormFloat64())*0.5
	}
	x, err := tensor.FromSlice(xData, tensor.Shape{n, 2}, ad)
	require.NoError(t, err)
	targets := nn.OneHot(labels, 2, ad)

	model, err := nn.Build(
		nn.Serial(nn.Dense(16), nn.Relu, nn.Dense(2), nn.LogSoftmax),
		nn.InitConfig{RNG: rng, Backend: ad},
		tensor.Shape{-1, 2},
	)
	require.NoError(t, err)

	opt := optim.NewSGDMomentum(model.Parameters(), 0.1, 0.9)

	var first, last float32
	for step := 0; step < 50; step++ {
		ad.Tape().StartRecording()
		logProbs := model.Apply(x, nn.ApplyConfig{Mode: nn.Train})
		loss := nn.CategoricalCrossEntropy(logProbs, targets)
		opt.Step(ad.Backward(loss))
		ad.Tape().StopRecording()
		ad.Tape().Clear()

		if step == 0 {
			first = loss.Item()
		}
		last = loss.Item()
	}

	assert.Less(t, float64(last), float64(first)/10, "loss should drop by an order of magnitude")

	pred := model.Apply(x, nn.ApplyConfig{Mode: nn.Test})
	assert.Equal(t, float32(1), nn.Accuracy(pred, targets))
}
