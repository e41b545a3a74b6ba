// Copyright 2026 Strand ML Toolkit. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package autodiff

import (
	"github.com/strand-ml/strand/autodiff/ops"
	"github.com/strand-ml/strand/tensor"
)

// GradientTape records operations during the forward pass and computes
// gradients by walking them in reverse.
type GradientTape struct {
	operations []ops.Operation
	recording  bool
}

// NewGradientTape creates an empty tape.
func NewGradientTape() *GradientTape {
	return &GradientTape{
		operations: make([]ops.Operation, 0, 64),
	}
}

// StartRecording enables operation recording.
func (t *GradientTape) StartRecording() {
	t.recording = true
}

// StopRecording disables operation recording.
func (t *GradientTape) StopRecording() {
	t.recording = false
}

// IsRecording reports whether the tape is currently recording.
func (t *GradientTape) IsRecording() bool {
	return t.recording
}

// Record appends an operation if the tape is recording.
func (t *GradientTape) Record(op ops.Operation) {
	if t.recording {
		t.operations = append(t.operations, op)
	}
}

// Clear drops all recorded operations. The recording flag is preserved.
func (t *GradientTape) Clear() {
	t.operations = t.operations[:0]
}

// Backward computes gradients of output with respect to every tensor on
// the tape, seeding the output with a ones gradient.
//
// Operations were recorded in execution order, so the reverse walk is a
// valid reverse-topological order. Gradients for tensors used by several
// operations accumulate; a FanOut that hands the same tensor to two
// branches therefore needs no operation of its own.
//
// Recording is suspended for the duration so the gradient computation
// itself never lands on the tape.
func (t *GradientTape) Backward(output *tensor.Tensor, backend tensor.Backend) map[*tensor.Tensor]*tensor.Tensor {
	grads := make(map[*tensor.Tensor]*tensor.Tensor)
	if len(t.operations) == 0 {
		return grads
	}

	wasRecording := t.recording
	t.recording = false
	defer func() { t.recording = wasRecording }()

	grads[output] = tensor.Ones(output.Shape(), backend)

	for i := len(t.operations) - 1; i >= 0; i-- {
		op := t.operations[i]
		outGrad, ok := grads[op.Output()]
		if !ok {
			// No gradient flows through this operation's output.
			continue
		}
		inputGrads := op.Backward(outGrad, backend)
		inputs := op.Inputs()
		for j, g := range inputGrads {
			if g == nil {
				// Non-differentiable input (e.g. targets).
				continue
			}
			if existing, ok := grads[inputs[j]]; ok {
				grads[inputs[j]] = backend.Add(existing, g)
			} else {
				grads[inputs[j]] = g
			}
		}
	}
	return grads
}
