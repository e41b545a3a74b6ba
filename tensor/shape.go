// Copyright 2026 Strand ML Toolkit. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"fmt"
	"strings"
)

// Shape represents the dimensions of a tensor.
//
// A leading dimension of -1 acts as a batch wildcard during network
// construction: layers propagate it through shape inference and the real
// batch size is only pinned down when data flows through the network.
// Example: Shape{-1, 784} describes "any number of flattened MNIST digits".
type Shape []int

// NumElements returns the total number of elements.
//
// Not meaningful for shapes that still contain the batch wildcard.
func (s Shape) NumElements() int {
	n := 1
	for _, dim := range s {
		n *= dim
	}
	return n
}

// Equal reports whether two shapes have identical dimensions.
func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for i, dim := range s {
		if dim != other[i] {
			return false
		}
	}
	return true
}

// Matches reports whether a concrete shape satisfies this shape, treating
// -1 entries as wildcards. Used to validate runtime inputs against
// inferred shapes.
func (s Shape) Matches(concrete Shape) bool {
	if len(s) != len(concrete) {
		return false
	}
	for i, dim := range s {
		if dim != -1 && dim != concrete[i] {
			return false
		}
	}
	return true
}

// HasWildcard reports whether any dimension is the -1 wildcard.
func (s Shape) HasWildcard() bool {
	for _, dim := range s {
		if dim == -1 {
			return true
		}
	}
	return false
}

// WithBatch returns a copy of the shape with a -1 leading dimension
// replaced by the given batch size.
func (s Shape) WithBatch(batch int) Shape {
	out := s.Clone()
	if len(out) > 0 && out[0] == -1 {
		out[0] = batch
	}
	return out
}

// Clone returns a copy of the shape.
func (s Shape) Clone() Shape {
	out := make(Shape, len(s))
	copy(out, s)
	return out
}

// String renders the shape with the wildcard shown as *.
func (s Shape) String() string {
	parts := make([]string, len(s))
	for i, dim := range s {
		if dim == -1 {
			parts[i] = "*"
		} else {
			parts[i] = fmt.Sprintf("%d", dim)
		}
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// contiguousStrides computes row-major strides for a shape.
func contiguousStrides(s Shape) []int {
	strides := make([]int, len(s))
	acc := 1
	for i := len(s) - 1; i >= 0; i-- {
		strides[i] = acc
		acc *= s[i]
	}
	return strides
}
