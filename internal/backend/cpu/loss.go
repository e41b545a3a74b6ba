package cpu

import (
	"github.com/strand-ml/strand/tensor"
)

// CrossEntropy computes categorical cross-entropy from log-probabilities
// and one-hot targets: -mean over the batch of the picked log-probability.
//
// logProbs and targets are both [batch, classes]; the result is a single
// element tensor.
func (c *Backend) CrossEntropy(logProbs, targets *tensor.Tensor) *tensor.Tensor {
	checkSameShape("CrossEntropy", logProbs, targets)
	rows, _ := rowGeom("CrossEntropy", logProbs.Shape())

	var sum float32
	pd, td := logProbs.Data(), targets.Data()
	for i, t := range td {
		if t != 0 {
			sum += t * pd[i]
		}
	}
	out := tensor.New(tensor.Shape{1}, c)
	out.Data()[0] = -sum / float32(rows)
	return out
}

// MSE computes the mean squared error over all elements.
func (c *Backend) MSE(pred, target *tensor.Tensor) *tensor.Tensor {
	checkSameShape("MSE", pred, target)
	pd, td := pred.Data(), target.Data()
	var sum float32
	for i, p := range pd {
		d := p - td[i]
		sum += d * d
	}
	out := tensor.New(tensor.Shape{1}, c)
	out.Data()[0] = sum / float32(len(pd))
	return out
}
