// Copyright 2026 Strand ML Toolkit. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu exposes the reference CPU backend.
//
// It is the backend to pass to nn.Build directly, or to autodiff.New
// when gradients are needed:
//
//	backend := autodiff.New(cpu.New())
package cpu

import (
	internalcpu "github.com/strand-ml/strand/internal/backend/cpu"
	"github.com/strand-ml/strand/tensor"
)

// Backend is the CPU implementation of tensor.Backend. Kernels are
// plain Go loops over contiguous float32 storage.
type Backend = internalcpu.Backend

// Compile-time check that Backend implements tensor.Backend.
var _ tensor.Backend = (*Backend)(nil)

// New creates a CPU backend.
func New() *Backend {
	return internalcpu.New()
}
