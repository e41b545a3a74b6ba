package cpu

import (
	"math"
	"testing"

	"github.com/strand-ml/strand/tensor"
	"github.com/stretchr/testify/assert"
)

// TestSoftmax_RowsSumToOne tests normalization per row.
func TestSoftmax_RowsSumToOne(t *testing.T) {
	backend := New()
	x := fromSlice(t, []float32{1, 2, 3, -1, 0, 1}, tensor.Shape{2, 3}, backend)

	out := backend.Softmax(x)
	od := out.Data()
	for r := 0; r < 2; r++ {
		var sum float64
		for j := 0; j < 3; j++ {
			v := float64(od[r*3+j])
			assert.Greater(t, v, 0.0)
			sum += v
		}
		assert.InDelta(t, 1.0, sum, 1e-5, "row %d", r)
	}
	// Shift invariance: both rows differ by a constant, so the
	// distributions match.
	for j := 0; j < 3; j++ {
		assert.InDelta(t, float64(od[j]), float64(od[3+j]), 1e-5)
	}
}

// TestSoftmax_LargeInputsStable tests the max-shift trick.
func TestSoftmax_LargeInputsStable(t *testing.T) {
	backend := New()
	x := fromSlice(t, []float32{1000, 1001, 1002}, tensor.Shape{1, 3}, backend)

	out := backend.Softmax(x)
	for _, v := range out.Data() {
		assert.False(t, math.IsNaN(float64(v)))
		assert.False(t, math.IsInf(float64(v), 0))
	}
}

// TestLogSoftmax_MatchesLogOfSoftmax tests consistency of the two heads.
func TestLogSoftmax_MatchesLogOfSoftmax(t *testing.T) {
	backend := New()
	x := fromSlice(t, []float32{0.5, -1, 2, 3, 0, -2}, tensor.Shape{2, 3}, backend)

	sm := backend.Softmax(x)
	lsm := backend.LogSoftmax(x)
	for i := range sm.Data() {
		assert.InDelta(t, math.Log(float64(sm.Data()[i])), float64(lsm.Data()[i]), 1e-5, "index %d", i)
	}
}

// TestSoftmax_RequiresMatrix tests the rank guard.
func TestSoftmax_RequiresMatrix(t *testing.T) {
	backend := New()
	x := tensor.Ones(tensor.Shape{2, 3, 4}, backend)
	assert.Panics(t, func() { backend.Softmax(x) })
}
