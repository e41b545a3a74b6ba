package cpu

import (
	"fmt"
	"math"

	"github.com/strand-ml/strand/tensor"
)

// Pool2D applies a max, sum or average reduction over sliding windows.
//
// x: [n, h, w, c]. Average pooling divides by the number of in-bounds
// cells in each window, so SAME padding never dilutes border values.
func (c *Backend) Pool2D(x *tensor.Tensor, kind tensor.PoolKind, window, strides [2]int, pad tensor.Padding) *tensor.Tensor {
	g := resolveConv2D(x.Shape(), window[0], window[1], strides, pad)
	ch := g.ci

	out := tensor.New(tensor.Shape{g.n, g.oh, g.ow, ch}, c)
	xd, od := x.Data(), out.Data()

	for n := 0; n < g.n; n++ {
		for oh := 0; oh < g.oh; oh++ {
			for ow := 0; ow < g.ow; ow++ {
				outBase := ((n*g.oh+oh)*g.ow + ow) * ch
				for cc := 0; cc < ch; cc++ {
					acc := float32(0)
					if kind == tensor.MaxPool {
						acc = float32(math.Inf(-1))
					}
					count := 0
					for kh := 0; kh < g.kh; kh++ {
						ih := oh*g.sh - g.padTop + kh
						if ih < 0 || ih >= g.h {
							continue
						}
						for kw := 0; kw < g.kw; kw++ {
							iw := ow*g.sw - g.padLeft + kw
							if iw < 0 || iw >= g.w {
								continue
							}
							v := xd[((n*g.h+ih)*g.w+iw)*ch+cc]
							if kind == tensor.MaxPool {
								if v > acc {
									acc = v
								}
							} else {
								acc += v
							}
							count++
						}
					}
					if count == 0 {
						panic("cpu: Pool2D window fully outside input")
					}
					if kind == tensor.AvgPool {
						acc /= float32(count)
					}
					od[outBase+cc] = acc
				}
			}
		}
	}
	return out
}

// Pool2DBackward routes pooling gradients back to the input.
//
// Max pooling recomputes each window's argmax from x and sends the whole
// gradient there (first maximum wins on ties). Sum pooling copies the
// gradient to every in-bounds cell; average pooling divides it by the
// in-bounds cell count first.
func (c *Backend) Pool2DBackward(x, grad *tensor.Tensor, kind tensor.PoolKind, window, strides [2]int, pad tensor.Padding) *tensor.Tensor {
	g := resolveConv2D(x.Shape(), window[0], window[1], strides, pad)
	ch := g.ci
	gs := grad.Shape()
	if len(gs) != 4 || gs[0] != g.n || gs[1] != g.oh || gs[2] != g.ow || gs[3] != ch {
		panic(fmt.Sprintf("cpu: Pool2DBackward gradient shape %v does not match output (%d, %d, %d, %d)",
			gs, g.n, g.oh, g.ow, ch))
	}

	dx := tensor.New(x.Shape(), c)
	xd, gd, dxd := x.Data(), grad.Data(), dx.Data()

	for n := 0; n < g.n; n++ {
		for oh := 0; oh < g.oh; oh++ {
			for ow := 0; ow < g.ow; ow++ {
				gradBase := ((n*g.oh+oh)*g.ow + ow) * ch
				for cc := 0; cc < ch; cc++ {
					gv := gd[gradBase+cc]
					switch kind {
					case tensor.MaxPool:
						best := float32(math.Inf(-1))
						bestIdx := -1
						for kh := 0; kh < g.kh; kh++ {
							ih := oh*g.sh - g.padTop + kh
							if ih < 0 || ih >= g.h {
								continue
							}
							for kw := 0; kw < g.kw; kw++ {
								iw := ow*g.sw - g.padLeft + kw
								if iw < 0 || iw >= g.w {
									continue
								}
								idx := ((n*g.h+ih)*g.w+iw)*ch + cc
								if xd[idx] > best {
									best = xd[idx]
									bestIdx = idx
								}
							}
						}
						if bestIdx >= 0 {
							dxd[bestIdx] += gv
						}
					default:
						count := 0
						for kh := 0; kh < g.kh; kh++ {
							ih := oh*g.sh - g.padTop + kh
							if ih < 0 || ih >= g.h {
								continue
							}
							for kw := 0; kw < g.kw; kw++ {
								iw := ow*g.sw - g.padLeft + kw
								if iw >= 0 && iw < g.w {
									count++
								}
							}
						}
						share := gv
						if kind == tensor.AvgPool && count > 0 {
							share = gv / float32(count)
						}
						for kh := 0; kh < g.kh; kh++ {
							ih := oh*g.sh - g.padTop + kh
							if ih < 0 || ih >= g.h {
								continue
							}
							for kw := 0; kw < g.kw; kw++ {
								iw := ow*g.sw - g.padLeft + kw
								if iw < 0 || iw >= g.w {
									continue
								}
								dxd[((n*g.h+ih)*g.w+iw)*ch+cc] += share
							}
						}
					}
				}
			}
		}
	}
	return dx
}
