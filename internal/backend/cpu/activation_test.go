package cpu

import (
	"math"
	"testing"

	"github.com/strand-ml/strand/tensor"
	"github.com/stretchr/testify/assert"
)

// TestRelu_Values tests ReLU clipping.
func TestRelu_Values(t *testing.T) {
	backend := New()
	x := fromSlice(t, []float32{-2, -0.5, 0, 0.5, 2}, tensor.Shape{5}, backend)

	out := backend.Relu(x)
	assert.Equal(t, []float32{0, 0, 0, 0.5, 2}, out.Data())
}

// TestLeakyRelu_Values tests the negative slope.
func TestLeakyRelu_Values(t *testing.T) {
	backend := New()
	x := fromSlice(t, []float32{-2, 0, 3}, tensor.Shape{3}, backend)

	out := backend.LeakyRelu(x, 0.1)
	assert.InDelta(t, -0.2, float64(out.Data()[0]), 1e-6)
	assert.Equal(t, float32(0), out.Data()[1])
	assert.Equal(t, float32(3), out.Data()[2])
}

// TestSigmoid_Values tests known sigmoid points.
func TestSigmoid_Values(t *testing.T) {
	backend := New()
	x := fromSlice(t, []float32{0, 2, -2}, tensor.Shape{3}, backend)

	out := backend.Sigmoid(x)
	assert.InDelta(t, 0.5, float64(out.Data()[0]), 1e-6)
	assert.InDelta(t, 1/(1+math.Exp(-2)), float64(out.Data()[1]), 1e-6)
	assert.InDelta(t, 1/(1+math.Exp(2)), float64(out.Data()[2]), 1e-6)
}

// TestTanh_Values tests known tanh points.
func TestTanh_Values(t *testing.T) {
	backend := New()
	x := fromSlice(t, []float32{0, 1, -1}, tensor.Shape{3}, backend)

	out := backend.Tanh(x)
	assert.InDelta(t, 0, float64(out.Data()[0]), 1e-6)
	assert.InDelta(t, math.Tanh(1), float64(out.Data()[1]), 1e-6)
	assert.InDelta(t, math.Tanh(-1), float64(out.Data()[2]), 1e-6)
}

// TestSoftplus_Values tests softplus including the large-input shortcut.
func TestSoftplus_Values(t *testing.T) {
	backend := New()
	x := fromSlice(t, []float32{0, 1, 30}, tensor.Shape{3}, backend)

	out := backend.Softplus(x)
	assert.InDelta(t, math.Log(2), float64(out.Data()[0]), 1e-6)
	assert.InDelta(t, math.Log(1+math.E), float64(out.Data()[1]), 1e-6)
	// For large x softplus(x) -> x.
	assert.InDelta(t, 30, float64(out.Data()[2]), 1e-4)
}
