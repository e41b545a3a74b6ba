// Copyright 2026 Strand ML Toolkit. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor_test

import (
	"math/rand"
	"testing"

	"github.com/strand-ml/strand/backend/cpu"
	"github.com/strand-ml/strand/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNew_ZeroFilled tests that New allocates zeroed storage.
func TestNew_ZeroFilled(t *testing.T) {
	backend := cpu.New()
	x := tensor.New(tensor.Shape{2, 3}, backend)

	assert.Equal(t, tensor.Shape{2, 3}, x.Shape())
	assert.Equal(t, 6, x.NumElements())
	for _, v := range x.Data() {
		assert.Equal(t, float32(0), v)
	}
}

// TestFromSlice_CopiesData tests slice construction and isolation.
func TestFromSlice_CopiesData(t *testing.T) {
	backend := cpu.New()
	src := []float32{1, 2, 3, 4}

	x, err := tensor.FromSlice(src, tensor.Shape{2, 2}, backend)
	require.NoError(t, err)

	src[0] = 99
	assert.Equal(t, float32(1), x.Data()[0], "tensor must not alias the source slice")
}

// TestFromSlice_ShapeMismatch tests the element-count check.
func TestFromSlice_ShapeMismatch(t *testing.T) {
	backend := cpu.New()
	_, err := tensor.FromSlice([]float32{1, 2, 3}, tensor.Shape{2, 2}, backend)
	require.Error(t, err)
}

// TestAtSet_RowMajor tests index arithmetic.
func TestAtSet_RowMajor(t *testing.T) {
	backend := cpu.New()
	x, err := tensor.FromSlice([]float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3}, backend)
	require.NoError(t, err)

	assert.Equal(t, float32(1), x.At(0, 0))
	assert.Equal(t, float32(6), x.At(1, 2))

	x.Set(42, 1, 0)
	assert.Equal(t, float32(42), x.Data()[3])
}

// TestView_SharesStorage tests that views alias the original data.
func TestView_SharesStorage(t *testing.T) {
	backend := cpu.New()
	x := tensor.Ones(tensor.Shape{2, 3}, backend)

	v := x.View(tensor.Shape{6})
	v.Data()[0] = 7
	assert.Equal(t, float32(7), x.Data()[0])

	assert.Panics(t, func() { x.View(tensor.Shape{5}) })
}

// TestClone_Independent tests deep copies.
func TestClone_Independent(t *testing.T) {
	backend := cpu.New()
	x := tensor.Full(tensor.Shape{4}, 3, backend)

	c := x.Clone()
	c.Data()[0] = 0
	assert.Equal(t, float32(3), x.Data()[0])
}

// TestItem_SingleElement tests scalar extraction.
func TestItem_SingleElement(t *testing.T) {
	backend := cpu.New()
	x := tensor.Full(tensor.Shape{1}, 2.5, backend)
	assert.Equal(t, float32(2.5), x.Item())

	y := tensor.Zeros(tensor.Shape{2}, backend)
	assert.Panics(t, func() { y.Item() })
}

// TestRandn_Deterministic tests that a seeded RNG reproduces values.
func TestRandn_Deterministic(t *testing.T) {
	backend := cpu.New()
	a := tensor.Randn(tensor.Shape{10}, rand.New(rand.NewSource(7)), backend)
	b := tensor.Randn(tensor.Shape{10}, rand.New(rand.NewSource(7)), backend)
	assert.Equal(t, a.Data(), b.Data())
}
