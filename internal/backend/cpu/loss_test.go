package cpu

import (
	"math"
	"testing"

	"github.com/strand-ml/strand/tensor"
	"github.com/stretchr/testify/assert"
)

// TestCrossEntropy_KnownValues tests the mean negative log-likelihood.
func TestCrossEntropy_KnownValues(t *testing.T) {
	backend := New()
	// Two rows of log-probabilities.
	logProbs := fromSlice(t, []float32{
		float32(math.Log(0.7)), float32(math.Log(0.3)),
		float32(math.Log(0.1)), float32(math.Log(0.9)),
	}, tensor.Shape{2, 2}, backend)
	targets := fromSlice(t, []float32{1, 0, 0, 1}, tensor.Shape{2, 2}, backend)

	loss := backend.CrossEntropy(logProbs, targets)
	assert.Equal(t, tensor.Shape{1}, loss.Shape())

	want := -(math.Log(0.7) + math.Log(0.9)) / 2
	assert.InDelta(t, want, float64(loss.Item()), 1e-5)
}

// TestCrossEntropy_PerfectPrediction tests the zero-loss case.
func TestCrossEntropy_PerfectPrediction(t *testing.T) {
	backend := New()
	logProbs := fromSlice(t, []float32{0, -100, -100, 0}, tensor.Shape{2, 2}, backend)
	targets := fromSlice(t, []float32{1, 0, 0, 1}, tensor.Shape{2, 2}, backend)

	loss := backend.CrossEntropy(logProbs, targets)
	assert.InDelta(t, 0, float64(loss.Item()), 1e-6)
}

// TestMSE_KnownValues tests the mean squared error.
func TestMSE_KnownValues(t *testing.T) {
	backend := New()
	pred := fromSlice(t, []float32{1, 2, 3, 4}, tensor.Shape{2, 2}, backend)
	target := fromSlice(t, []float32{1, 1, 1, 1}, tensor.Shape{2, 2}, backend)

	loss := backend.MSE(pred, target)
	assert.Equal(t, tensor.Shape{1}, loss.Shape())
	// (0 + 1 + 4 + 9) / 4 = 3.5
	assert.InDelta(t, 3.5, float64(loss.Item()), 1e-6)
}

// TestMSE_Zero tests identical inputs.
func TestMSE_Zero(t *testing.T) {
	backend := New()
	x := fromSlice(t, []float32{0.5, -2}, tensor.Shape{2}, backend)
	loss := backend.MSE(x, x.Clone())
	assert.Equal(t, float32(0), loss.Item())
}
