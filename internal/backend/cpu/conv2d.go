package cpu

import (
	"fmt"

	"github.com/strand-ml/strand/tensor"
)

// conv2dGeom holds the resolved geometry of one convolution or pooling
// call: output extents and low-side padding for both spatial dimensions.
type conv2dGeom struct {
	n, h, w, ci     int
	kh, kw          int
	sh, sw          int
	oh, ow          int
	padTop, padLeft int
}

func resolveConv2D(xs tensor.Shape, kh, kw int, strides [2]int, pad tensor.Padding) conv2dGeom {
	if len(xs) != 4 {
		panic(fmt.Sprintf("cpu: conv/pool input must be NHWC, got %v", xs))
	}
	sh, sw := strides[0], strides[1]
	if sh <= 0 || sw <= 0 {
		panic(fmt.Sprintf("cpu: invalid strides %v", strides))
	}
	g := conv2dGeom{
		n: xs[0], h: xs[1], w: xs[2], ci: xs[3],
		kh: kh, kw: kw, sh: sh, sw: sw,
		oh: tensor.OutSize(xs[1], kh, sh, pad),
		ow: tensor.OutSize(xs[2], kw, sw, pad),
	}
	g.padTop, _ = tensor.PadAmount(xs[1], kh, sh, pad)
	g.padLeft, _ = tensor.PadAmount(xs[2], kw, sw, pad)
	if g.oh <= 0 || g.ow <= 0 {
		panic(fmt.Sprintf("cpu: conv/pool output would be empty for input %v, window (%d, %d), strides %v", xs, kh, kw, strides))
	}
	return g
}

// Conv2D performs 2D convolution.
//
// x: [n, h, w, ci] (NHWC), w: [kh, kw, ci, co] (HWIO).
// Output: [n, oh, ow, co] with the geometry given by strides and padding.
func (c *Backend) Conv2D(x, w *tensor.Tensor, strides [2]int, pad tensor.Padding) *tensor.Tensor {
	ws := w.Shape()
	if len(ws) != 4 {
		panic(fmt.Sprintf("cpu: Conv2D kernel must be HWIO, got %v", ws))
	}
	g := resolveConv2D(x.Shape(), ws[0], ws[1], strides, pad)
	if ws[2] != g.ci {
		panic(fmt.Sprintf("cpu: Conv2D input channels %d != kernel channels %d", g.ci, ws[2]))
	}
	co := ws[3]

	out := tensor.New(tensor.Shape{g.n, g.oh, g.ow, co}, c)
	xd, wd, od := x.Data(), w.Data(), out.Data()

	for n := 0; n < g.n; n++ {
		for oh := 0; oh < g.oh; oh++ {
			for ow := 0; ow < g.ow; ow++ {
				outBase := ((n*g.oh+oh)*g.ow + ow) * co
				acc := od[outBase : outBase+co]
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
						inBase := ((n*g.h+ih)*g.w + iw) * g.ci
						wBase := ((kh*g.kw + kw) * g.ci) * co
						for ci := 0; ci < g.ci; ci++ {
							xv := xd[inBase+ci]
							if xv == 0 {
								continue
							}
							wRow := wd[wBase+ci*co : wBase+(ci+1)*co]
							for j, wv := range wRow {
								acc[j] += xv * wv
							}
						}
					}
				}
			}
		}
	}
	return out
}

// Conv2DBackward computes input and kernel gradients for Conv2D.
//
// grad: [n, oh, ow, co]. Returns dx with the shape of x and dw with the
// shape of w. The loops mirror the forward pass, scattering instead of
// gathering.
func (c *Backend) Conv2DBackward(x, w, grad *tensor.Tensor, strides [2]int, pad tensor.Padding) (dx, dw *tensor.Tensor) {
	ws := w.Shape()
	g := resolveConv2D(x.Shape(), ws[0], ws[1], strides, pad)
	co := ws[3]
	gs := grad.Shape()
	if len(gs) != 4 || gs[0] != g.n || gs[1] != g.oh || gs[2] != g.ow || gs[3] != co {
		panic(fmt.Sprintf("cpu: Conv2DBackward gradient shape %v does not match output (%d, %d, %d, %d)",
			gs, g.n, g.oh, g.ow, co))
	}

	dx = tensor.New(x.Shape(), c)
	dw = tensor.New(w.Shape(), c)
	xd, wd, gd := x.Data(), w.Data(), grad.Data()
	dxd, dwd := dx.Data(), dw.Data()

	for n := 0; n < g.n; n++ {
		for oh := 0; oh < g.oh; oh++ {
			for ow := 0; ow < g.ow; ow++ {
				gradBase := ((n*g.oh+oh)*g.ow + ow) * co
				gRow := gd[gradBase : gradBase+co]
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
						inBase := ((n*g.h+ih)*g.w + iw) * g.ci
						wBase := ((kh*g.kw + kw) * g.ci) * co
						for ci := 0; ci < g.ci; ci++ {
							xv := xd[inBase+ci]
							wOff := wBase + ci*co
							var acc float32
							for j, gv := range gRow {
								acc += wd[wOff+j] * gv
								dwd[wOff+j] += xv * gv
							}
							dxd[inBase+ci] += acc
						}
					}
				}
			}
		}
	}
	return dx, dw
}
