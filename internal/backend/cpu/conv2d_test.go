package cpu

import (
	"testing"

	"github.com/strand-ml/strand/tensor"
	"github.com/stretchr/testify/assert"
)

// TestConv2D_Identity tests a 1x1 identity kernel.
func TestConv2D_Identity(t *testing.T) {
	backend := New()
	x := fromSlice(t, []float32{1, 2, 3, 4}, tensor.Shape{1, 2, 2, 1}, backend)
	w := fromSlice(t, []float32{1}, tensor.Shape{1, 1, 1, 1}, backend)

	out := backend.Conv2D(x, w, [2]int{1, 1}, tensor.Valid)
	assert.Equal(t, tensor.Shape{1, 2, 2, 1}, out.Shape())
	assert.Equal(t, x.Data(), out.Data())
}

// TestConv2D_SumKernel tests a 2x2 all-ones kernel on known values.
func TestConv2D_SumKernel(t *testing.T) {
	backend := New()
	// 3x3 image: 1..9 row-major.
	x := fromSlice(t, []float32{1, 2, 3, 4, 5, 6, 7, 8, 9}, tensor.Shape{1, 3, 3, 1}, backend)
	w := tensor.Ones(tensor.Shape{2, 2, 1, 1}, backend)

	out := backend.Conv2D(x, w, [2]int{1, 1}, tensor.Valid)
	assert.Equal(t, tensor.Shape{1, 2, 2, 1}, out.Shape())
	// Each output is a 2x2 window sum.
	assert.Equal(t, []float32{12, 16, 24, 28}, out.Data())
}

// TestConv2D_SamePadding tests that SAME keeps the spatial size at
// stride 1 and zero-pads the borders.
func TestConv2D_SamePadding(t *testing.T) {
	backend := New()
	x := tensor.Ones(tensor.Shape{1, 3, 3, 1}, backend)
	w := tensor.Ones(tensor.Shape{3, 3, 1, 1}, backend)

	out := backend.Conv2D(x, w, [2]int{1, 1}, tensor.Same)
	assert.Equal(t, tensor.Shape{1, 3, 3, 1}, out.Shape())
	// Center sees all 9 cells, edges 6, corners 4.
	assert.Equal(t, []float32{4, 6, 4, 6, 9, 6, 4, 6, 4}, out.Data())
}

// TestConv2D_Strides tests strided output geometry.
func TestConv2D_Strides(t *testing.T) {
	backend := New()
	x := tensor.Ones(tensor.Shape{1, 4, 4, 1}, backend)
	w := tensor.Ones(tensor.Shape{2, 2, 1, 1}, backend)

	out := backend.Conv2D(x, w, [2]int{2, 2}, tensor.Valid)
	assert.Equal(t, tensor.Shape{1, 2, 2, 1}, out.Shape())
	assert.Equal(t, []float32{4, 4, 4, 4}, out.Data())
}

// TestConv2D_MultiChannel tests input-channel accumulation and separate
// output filters.
func TestConv2D_MultiChannel(t *testing.T) {
	backend := New()
	// One pixel, two input channels: [3, 5].
	x := fromSlice(t, []float32{3, 5}, tensor.Shape{1, 1, 1, 2}, backend)
	// HWIO [1,1,2,2]: filter 0 = sum of channels, filter 1 = difference.
	w := fromSlice(t, []float32{1, 1, 1, -1}, tensor.Shape{1, 1, 2, 2}, backend)

	out := backend.Conv2D(x, w, [2]int{1, 1}, tensor.Valid)
	assert.Equal(t, tensor.Shape{1, 1, 1, 2}, out.Shape())
	assert.Equal(t, []float32{8, -2}, out.Data())
}

// TestConv2DBackward_MatchesNumeric checks dx and dw against central
// differences through the forward kernel.
func TestConv2DBackward_MatchesNumeric(t *testing.T) {
	backend := New()
	x := fromSlice(t, []float32{1, -2, 3, 0.5, -1, 2, 0, 1, -0.5}, tensor.Shape{1, 3, 3, 1}, backend)
	w := fromSlice(t, []float32{0.5, -1, 2, 1}, tensor.Shape{2, 2, 1, 1}, backend)
	strides := [2]int{1, 1}

	// Loss = sum of outputs, so the output gradient is all ones.
	grad := tensor.Ones(tensor.Shape{1, 2, 2, 1}, backend)
	dx, dw := backend.Conv2DBackward(x, w, grad, strides, tensor.Valid)

	sumOut := func() float32 {
		out := backend.Conv2D(x, w, strides, tensor.Valid)
		var s float32
		for _, v := range out.Data() {
			s += v
		}
		return s
	}

	const h = 1e-2
	checkGrad := func(param *tensor.Tensor, analytic *tensor.Tensor, name string) {
		pd := param.Data()
		for i := range pd {
			orig := pd[i]
			pd[i] = orig + h
			plus := sumOut()
			pd[i] = orig - h
			minus := sumOut()
			pd[i] = orig
			numeric := (plus - minus) / (2 * h)
			assert.InDelta(t, numeric, analytic.Data()[i], 1e-2, "%s[%d]", name, i)
		}
	}
	checkGrad(x, dx, "dx")
	checkGrad(w, dw, "dw")
}
