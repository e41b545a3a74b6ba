// Copyright 2026 Strand ML Toolkit. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import "github.com/strand-ml/strand/tensor"

// CategoricalCrossEntropy computes the mean negative log-likelihood of
// one-hot targets under row-wise log-probabilities (the output of a
// LogSoftmax head). Returns a scalar tensor.
func CategoricalCrossEntropy(logProbs, targets *tensor.Tensor) *tensor.Tensor {
	return logProbs.Backend().CrossEntropy(logProbs, targets)
}

// MSE computes the mean squared error over all elements. Returns a
// scalar tensor.
func MSE(pred, target *tensor.Tensor) *tensor.Tensor {
	return pred.Backend().MSE(pred, target)
}

// OneHot encodes integer class labels as a [len(labels), classes]
// tensor of zeros and ones.
func OneHot(labels []int, classes int, b tensor.Backend) *tensor.Tensor {
	t := tensor.New(tensor.Shape{len(labels), classes}, b)
	data := t.Data()
	for i, l := range labels {
		data[i*classes+l] = 1
	}
	return t
}

// Accuracy returns the fraction of rows whose arg-max prediction matches
// the arg-max of the one-hot target.
func Accuracy(pred, targets *tensor.Tensor) float32 {
	shape := pred.Shape()
	rows, cols := shape[0], shape[1]
	pd, td := pred.Data(), targets.Data()
	var correct int
	for r := 0; r < rows; r++ {
		base := r * cols
		if argmaxRow(pd[base:base+cols]) == argmaxRow(td[base:base+cols]) {
			correct++
		}
	}
	return float32(correct) / float32(rows)
}

func argmaxRow(row []float32) int {
	best := 0
	for j, v := range row {
		if v > row[best] {
			best = j
		}
	}
	return best
}
