// Copyright 2026 Strand ML Toolkit. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

// Padding selects how convolution and pooling windows treat the borders
// of their input.
type Padding int

const (
	// Valid applies no padding: windows must fit entirely inside the input.
	Valid Padding = iota
	// Same pads so the output spatial size is ceil(input / stride).
	// The total pad is split low/high, with the extra cell on the high side.
	Same
)

// String returns the padding name.
func (p Padding) String() string {
	switch p {
	case Valid:
		return "VALID"
	case Same:
		return "SAME"
	default:
		return "UNKNOWN"
	}
}

// OutSize returns the output extent of one spatial dimension for a window
// of size k moved with the given stride over an input of size in.
//
// Shape inference and the compute kernels share this function so the two
// can never disagree about output geometry.
func OutSize(in, k, stride int, p Padding) int {
	if p == Same {
		return (in + stride - 1) / stride
	}
	return (in-k)/stride + 1
}

// PadAmount returns the low/high padding for one spatial dimension.
func PadAmount(in, k, stride int, p Padding) (lo, hi int) {
	if p == Valid {
		return 0, 0
	}
	out := OutSize(in, k, stride, p)
	total := (out-1)*stride + k - in
	if total < 0 {
		total = 0
	}
	return total / 2, total - total/2
}
