// Package cpu implements the reference CPU backend.
//
// Kernels are plain Go loops over contiguous float32 storage. The package
// implements both the differentiable forward operations and the explicit
// backward kernels of tensor.Backend, so the autodiff layer never needs
// CPU-specific code.
package cpu

import (
	"fmt"

	"github.com/strand-ml/strand/tensor"
)

// Backend is the CPU implementation of tensor.Backend.
type Backend struct{}

// New creates a CPU backend.
func New() *Backend {
	return &Backend{}
}

// Name returns the backend name.
func (c *Backend) Name() string {
	return "cpu"
}

// Add performs element-wise addition.
func (c *Backend) Add(a, b *tensor.Tensor) *tensor.Tensor {
	checkSameShape("Add", a, b)
	out := tensor.New(a.Shape(), c)
	ad, bd, od := a.Data(), b.Data(), out.Data()
	for i := range od {
		od[i] = ad[i] + bd[i]
	}
	return out
}

// Mul performs element-wise multiplication.
func (c *Backend) Mul(a, b *tensor.Tensor) *tensor.Tensor {
	checkSameShape("Mul", a, b)
	out := tensor.New(a.Shape(), c)
	ad, bd, od := a.Data(), b.Data(), out.Data()
	for i := range od {
		od[i] = ad[i] * bd[i]
	}
	return out
}

// BiasAdd adds a bias vector along the trailing axis.
func (c *Backend) BiasAdd(x, bias *tensor.Tensor) *tensor.Tensor {
	xs := x.Shape()
	bs := bias.Shape()
	if len(bs) != 1 || bs[0] != xs[len(xs)-1] {
		panic(fmt.Sprintf("cpu: BiasAdd needs bias (c,) matching trailing axis of %v, got %v", xs, bs))
	}
	n := bs[0]
	out := tensor.New(xs, c)
	xd, bd, od := x.Data(), bias.Data(), out.Data()
	for i := range od {
		od[i] = xd[i] + bd[i%n]
	}
	return out
}

// Reshape returns a view of x with the given shape.
func (c *Backend) Reshape(x *tensor.Tensor, shape tensor.Shape) *tensor.Tensor {
	return x.View(shape)
}

// Transpose2D returns the transpose of a matrix.
func (c *Backend) Transpose2D(a *tensor.Tensor) *tensor.Tensor {
	s := a.Shape()
	if len(s) != 2 {
		panic(fmt.Sprintf("cpu: Transpose2D needs a matrix, got %v", s))
	}
	m, n := s[0], s[1]
	out := tensor.New(tensor.Shape{n, m}, c)
	ad, od := a.Data(), out.Data()
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			od[j*m+i] = ad[i*n+j]
		}
	}
	return out
}

// Concat concatenates tensors along the given axis. All other dimensions
// must match.
func (c *Backend) Concat(xs []*tensor.Tensor, axis int) *tensor.Tensor {
	if len(xs) == 0 {
		panic("cpu: Concat of zero tensors")
	}
	first := xs[0].Shape()
	if axis < 0 || axis >= len(first) {
		panic(fmt.Sprintf("cpu: Concat axis %d out of range for %v", axis, first))
	}
	outShape := first.Clone()
	outShape[axis] = 0
	for _, x := range xs {
		s := x.Shape()
		if len(s) != len(first) {
			panic("cpu: Concat rank mismatch")
		}
		for i, dim := range s {
			if i != axis && dim != first[i] {
				panic(fmt.Sprintf("cpu: Concat shape mismatch %v vs %v on axis %d", first, s, i))
			}
		}
		outShape[axis] += s[axis]
	}

	outer := 1
	for i := 0; i < axis; i++ {
		outer *= first[i]
	}
	inner := 1
	for i := axis + 1; i < len(first); i++ {
		inner *= first[i]
	}

	out := tensor.New(outShape, c)
	od := out.Data()
	rowLen := outShape[axis] * inner
	offset := 0
	for _, x := range xs {
		xd := x.Data()
		chunk := x.Shape()[axis] * inner
		for o := 0; o < outer; o++ {
			copy(od[o*rowLen+offset:o*rowLen+offset+chunk], xd[o*chunk:(o+1)*chunk])
		}
		offset += chunk
	}
	return out
}

// Split is the inverse of Concat: it splits x along axis into pieces of
// the given sizes.
func (c *Backend) Split(x *tensor.Tensor, axis int, sizes []int) []*tensor.Tensor {
	s := x.Shape()
	if axis < 0 || axis >= len(s) {
		panic(fmt.Sprintf("cpu: Split axis %d out of range for %v", axis, s))
	}
	total := 0
	for _, size := range sizes {
		total += size
	}
	if total != s[axis] {
		panic(fmt.Sprintf("cpu: Split sizes %v do not cover axis %d of %v", sizes, axis, s))
	}

	outer := 1
	for i := 0; i < axis; i++ {
		outer *= s[i]
	}
	inner := 1
	for i := axis + 1; i < len(s); i++ {
		inner *= s[i]
	}

	xd := x.Data()
	rowLen := s[axis] * inner
	outs := make([]*tensor.Tensor, len(sizes))
	offset := 0
	for i, size := range sizes {
		shape := s.Clone()
		shape[axis] = size
		part := tensor.New(shape, c)
		pd := part.Data()
		chunk := size * inner
		for o := 0; o < outer; o++ {
			copy(pd[o*chunk:(o+1)*chunk], xd[o*rowLen+offset:o*rowLen+offset+chunk])
		}
		outs[i] = part
		offset += chunk
	}
	return outs
}

func checkSameShape(op string, a, b *tensor.Tensor) {
	if !a.Shape().Equal(b.Shape()) {
		panic(fmt.Sprintf("cpu: %s shape mismatch %v vs %v", op, a.Shape(), b.Shape()))
	}
}
