// Copyright 2026 Strand ML Toolkit. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the float32 array substrate for the Strand
// toolkit.
//
// The package defines:
//   - Tensor: a contiguous row-major float32 array carrying its Backend
//   - Shape: dimensions, with -1 as the batch wildcard for shape inference
//   - Backend: the interface compute backends implement
//   - Padding arithmetic shared by shape inference and kernels
//
// Example:
//
//	backend := cpu.New()
//	x := tensor.Zeros(tensor.Shape{2, 3}, backend)
//	y := tensor.Ones(tensor.Shape{2, 3}, backend)
//	z := x.Add(y) // dispatched through the backend
package tensor

import (
	"fmt"
	"math/rand"
)

// Tensor is a dense float32 tensor.
//
// Every tensor carries the Backend that produced it; operation methods
// dispatch through that backend, so a network built on an autodiff
// backend records its tape without the calling code changing.
type Tensor struct {
	shape   Shape
	strides []int
	data    []float32
	backend Backend
}

// New creates a zero-filled tensor.
func New(shape Shape, b Backend) *Tensor {
	return &Tensor{
		shape:   shape.Clone(),
		strides: contiguousStrides(shape),
		data:    make([]float32, shape.NumElements()),
		backend: b,
	}
}

// FromSlice creates a tensor from a Go slice. The slice is copied.
func FromSlice(data []float32, shape Shape, b Backend) (*Tensor, error) {
	if shape.NumElements() != len(data) {
		return nil, fmt.Errorf("tensor: shape %v requires %d elements, got %d",
			shape, shape.NumElements(), len(data))
	}
	t := New(shape, b)
	copy(t.data, data)
	return t, nil
}

// Zeros creates a tensor filled with zeros.
func Zeros(shape Shape, b Backend) *Tensor {
	return New(shape, b)
}

// Ones creates a tensor filled with ones.
func Ones(shape Shape, b Backend) *Tensor {
	return Full(shape, 1, b)
}

// Full creates a tensor filled with a specific value.
func Full(shape Shape, value float32, b Backend) *Tensor {
	t := New(shape, b)
	for i := range t.data {
		t.data[i] = value
	}
	return t
}

// Randn creates a tensor with values drawn from N(0, 1) using the given
// source of randomness.
func Randn(shape Shape, rng *rand.Rand, b Backend) *Tensor {
	t := New(shape, b)
	for i := range t.data {
		t.data[i] = float32(rng.NormFloat64())
	}
	return t
}

// Shape returns the tensor's shape.
func (t *Tensor) Shape() Shape {
	return t.shape
}

// NumElements returns the total number of elements.
func (t *Tensor) NumElements() int {
	return len(t.data)
}

// Backend returns the backend the tensor is bound to.
func (t *Tensor) Backend() Backend {
	return t.backend
}

// BindBackend rebinds the tensor to a different backend.
//
// Used by decorator backends: the wrapped backend allocates the result,
// and the decorator rebinds it so later operations dispatch through the
// decorator again.
func (t *Tensor) BindBackend(b Backend) {
	t.backend = b
}

// Data returns the tensor's storage as a flat slice (zero-copy).
//
// Modifications to the returned slice modify the tensor.
func (t *Tensor) Data() []float32 {
	return t.data
}

// View returns a tensor of the given shape sharing this tensor's storage.
// The element count must match.
func (t *Tensor) View(shape Shape) *Tensor {
	if shape.NumElements() != len(t.data) {
		panic(fmt.Sprintf("tensor: cannot view %v as %v", t.shape, shape))
	}
	return &Tensor{
		shape:   shape.Clone(),
		strides: contiguousStrides(shape),
		data:    t.data,
		backend: t.backend,
	}
}

// Item returns the value of a single-element tensor.
func (t *Tensor) Item() float32 {
	if len(t.data) != 1 {
		panic(fmt.Sprintf("tensor: Item() needs exactly one element, shape is %v", t.shape))
	}
	return t.data[0]
}

// At returns the element at the given indices.
func (t *Tensor) At(indices ...int) float32 {
	return t.data[t.offset(indices)]
}

// Set writes the element at the given indices.
func (t *Tensor) Set(value float32, indices ...int) {
	t.data[t.offset(indices)] = value
}

func (t *Tensor) offset(indices []int) int {
	if len(indices) != len(t.shape) {
		panic(fmt.Sprintf("tensor: expected %d indices, got %d", len(t.shape), len(indices)))
	}
	off := 0
	for i, idx := range indices {
		if idx < 0 || idx >= t.shape[i] {
			panic(fmt.Sprintf("tensor: index %d out of bounds for dimension %d (size %d)",
				idx, i, t.shape[i]))
		}
		off += idx * t.strides[i]
	}
	return off
}

// Clone creates a deep copy of the tensor.
func (t *Tensor) Clone() *Tensor {
	c := New(t.shape, t.backend)
	copy(c.data, t.data)
	return c
}

// String returns a short description of the tensor.
func (t *Tensor) String() string {
	return fmt.Sprintf("Tensor%v on %s", t.shape, t.backend.Name())
}
