// Copyright 2026 Strand ML Toolkit. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestShape_NumElements tests element counting.
func TestShape_NumElements(t *testing.T) {
	assert.Equal(t, 24, Shape{2, 3, 4}.NumElements())
	assert.Equal(t, 1, Shape{}.NumElements())
	assert.Equal(t, 5, Shape{5}.NumElements())
}

// TestShape_Matches tests wildcard-aware shape matching.
func TestShape_Matches(t *testing.T) {
	assert.True(t, Shape{-1, 784}.Matches(Shape{128, 784}))
	assert.True(t, Shape{-1, 784}.Matches(Shape{1, 784}))
	assert.False(t, Shape{-1, 784}.Matches(Shape{128, 100}))
	assert.False(t, Shape{-1, 784}.Matches(Shape{128, 784, 1}))
	assert.True(t, Shape{2, 3}.Matches(Shape{2, 3}))
}

// TestShape_WithBatch tests wildcard substitution.
func TestShape_WithBatch(t *testing.T) {
	s := Shape{-1, 32, 32, 3}
	pinned := s.WithBatch(64)
	assert.Equal(t, Shape{64, 32, 32, 3}, pinned)
	// Original is untouched.
	assert.Equal(t, Shape{-1, 32, 32, 3}, s)
	// No wildcard, no change.
	assert.Equal(t, Shape{4, 5}, Shape{4, 5}.WithBatch(64))
}

// TestShape_String tests wildcard rendering.
func TestShape_String(t *testing.T) {
	assert.Equal(t, "(*, 784)", Shape{-1, 784}.String())
	assert.Equal(t, "(2, 3)", Shape{2, 3}.String())
}

// TestOutSize_Valid tests Valid-padding output arithmetic.
func TestOutSize_Valid(t *testing.T) {
	// (28 - 2) / 2 + 1 = 14
	assert.Equal(t, 14, OutSize(28, 2, 2, Valid))
	// (7 - 3) / 2 + 1 = 3
	assert.Equal(t, 3, OutSize(7, 3, 2, Valid))
	// Window equal to input collapses to one.
	assert.Equal(t, 1, OutSize(8, 8, 1, Valid))
}

// TestOutSize_Same tests Same-padding output arithmetic.
func TestOutSize_Same(t *testing.T) {
	// ceil(in / stride), independent of window size.
	assert.Equal(t, 32, OutSize(32, 3, 1, Same))
	assert.Equal(t, 16, OutSize(32, 3, 2, Same))
	assert.Equal(t, 17, OutSize(33, 3, 2, Same))
}

// TestPadAmount_Same tests the asymmetric lo/hi padding split.
func TestPadAmount_Same(t *testing.T) {
	// 3x3 kernel, stride 1: one pixel each side.
	lo, hi := PadAmount(32, 3, 1, Same)
	assert.Equal(t, 1, lo)
	assert.Equal(t, 1, hi)

	// Even kernel pads more at the end.
	lo, hi = PadAmount(32, 2, 2, Same)
	assert.Equal(t, 0, lo)
	assert.Equal(t, 0, hi)

	lo, hi = PadAmount(5, 3, 2, Same)
	assert.Equal(t, 1, lo)
	assert.Equal(t, 1, hi)
}

// TestPadAmount_Valid tests that Valid padding is always zero.
func TestPadAmount_Valid(t *testing.T) {
	lo, hi := PadAmount(28, 5, 3, Valid)
	assert.Equal(t, 0, lo)
	assert.Equal(t, 0, hi)
}
