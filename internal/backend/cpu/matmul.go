package cpu

import (
	"fmt"

	"github.com/strand-ml/strand/tensor"
)

// MatMul performs matrix multiplication: out = a @ b.
//
// a: [m, k], b: [k, n], out: [m, n]. Uses the i-k-j loop order so the
// inner loop streams both b and out rows sequentially.
func (c *Backend) MatMul(a, b *tensor.Tensor) *tensor.Tensor {
	as, bs := a.Shape(), b.Shape()
	if len(as) != 2 || len(bs) != 2 {
		panic(fmt.Sprintf("cpu: MatMul needs matrices, got %v @ %v", as, bs))
	}
	m, k := as[0], as[1]
	if bs[0] != k {
		panic(fmt.Sprintf("cpu: MatMul inner dimension mismatch %v @ %v", as, bs))
	}
	n := bs[1]

	out := tensor.New(tensor.Shape{m, n}, c)
	ad, bd, od := a.Data(), b.Data(), out.Data()
	for i := 0; i < m; i++ {
		outRow := od[i*n : (i+1)*n]
		for kk := 0; kk < k; kk++ {
			av := ad[i*k+kk]
			if av == 0 {
				continue
			}
			bRow := bd[kk*n : (kk+1)*n]
			for j, bv := range bRow {
				outRow[j] += av * bv
			}
		}
	}
	return out
}
