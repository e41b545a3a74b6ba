package cpu

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/strand-ml/strand/tensor"
)

func rowGeom(op string, xs tensor.Shape) (rows, cols int) {
	if len(xs) != 2 {
		panic(fmt.Sprintf("cpu: %s needs a matrix [batch, classes], got %v", op, xs))
	}
	return xs[0], xs[1]
}

// Softmax applies a row-wise softmax with max-shifting for stability.
func (c *Backend) Softmax(x *tensor.Tensor) *tensor.Tensor {
	rows, cols := rowGeom("Softmax", x.Shape())
	out := tensor.New(x.Shape(), c)
	xd, od := x.Data(), out.Data()

	for r := 0; r < rows; r++ {
		row := xd[r*cols : (r+1)*cols]
		outRow := od[r*cols : (r+1)*cols]
		maxV := row[0]
		for _, v := range row[1:] {
			if v > maxV {
				maxV = v
			}
		}
		var sum float32
		for i, v := range row {
			e := math32.Exp(v - maxV)
			outRow[i] = e
			sum += e
		}
		inv := 1 / sum
		for i := range outRow {
			outRow[i] *= inv
		}
	}
	return out
}

// LogSoftmax applies a row-wise log-softmax using the log-sum-exp trick.
func (c *Backend) LogSoftmax(x *tensor.Tensor) *tensor.Tensor {
	rows, cols := rowGeom("LogSoftmax", x.Shape())
	out := tensor.New(x.Shape(), c)
	xd, od := x.Data(), out.Data()

	for r := 0; r < rows; r++ {
		row := xd[r*cols : (r+1)*cols]
		outRow := od[r*cols : (r+1)*cols]
		maxV := row[0]
		for _, v := range row[1:] {
			if v > maxV {
				maxV = v
			}
		}
		var sum float32
		for _, v := range row {
			sum += math32.Exp(v - maxV)
		}
		lse := maxV + math32.Log(sum)
		for i, v := range row {
			outRow[i] = v - lse
		}
	}
	return out
}
