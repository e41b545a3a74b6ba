package cpu

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/strand-ml/strand/tensor"
)

// channelGeom splits a tensor into (reduced, channel) extents for batch
// normalization: every axis except the trailing channel axis is reduced.
func channelGeom(xs tensor.Shape) (m, ch int) {
	if len(xs) < 2 {
		panic(fmt.Sprintf("cpu: batch norm needs at least 2 dimensions, got %v", xs))
	}
	ch = xs[len(xs)-1]
	m = 1
	for _, dim := range xs[:len(xs)-1] {
		m *= dim
	}
	return m, ch
}

func checkChannelParam(name string, p *tensor.Tensor, ch int) {
	s := p.Shape()
	if len(s) != 1 || s[0] != ch {
		panic(fmt.Sprintf("cpu: batch norm %s must have shape (%d,), got %v", name, ch, s))
	}
}

// BatchNormTrain normalizes x with statistics computed over every axis
// except the trailing channel axis, then scales and shifts per channel.
//
// Returns the normalized output along with the batch mean and (biased)
// variance so callers can maintain running statistics.
func (c *Backend) BatchNormTrain(x, gamma, beta *tensor.Tensor, eps float32) (y, mean, variance *tensor.Tensor) {
	m, ch := channelGeom(x.Shape())
	checkChannelParam("gamma", gamma, ch)
	checkChannelParam("beta", beta, ch)

	mean = tensor.New(tensor.Shape{ch}, c)
	variance = tensor.New(tensor.Shape{ch}, c)
	y = tensor.New(x.Shape(), c)

	xd, gd, bd := x.Data(), gamma.Data(), beta.Data()
	md, vd, yd := mean.Data(), variance.Data(), y.Data()

	inv := 1 / float32(m)
	for i, v := range xd {
		md[i%ch] += v * inv
	}
	for i, v := range xd {
		d := v - md[i%ch]
		vd[i%ch] += d * d * inv
	}
	for cc := 0; cc < ch; cc++ {
		invStd := 1 / math32.Sqrt(vd[cc]+eps)
		// Fold gamma/invStd and the shift into one multiply-add per element.
		scale := gd[cc] * invStd
		shift := bd[cc] - md[cc]*scale
		for i := cc; i < len(xd); i += ch {
			yd[i] = xd[i]*scale + shift
		}
	}
	return y, mean, variance
}

// BatchNormInfer normalizes x with the given frozen statistics.
func (c *Backend) BatchNormInfer(x, gamma, beta, mean, variance *tensor.Tensor, eps float32) *tensor.Tensor {
	_, ch := channelGeom(x.Shape())
	checkChannelParam("gamma", gamma, ch)
	checkChannelParam("beta", beta, ch)
	checkChannelParam("mean", mean, ch)
	checkChannelParam("variance", variance, ch)

	y := tensor.New(x.Shape(), c)
	xd, gd, bd := x.Data(), gamma.Data(), beta.Data()
	md, vd, yd := mean.Data(), variance.Data(), y.Data()

	for cc := 0; cc < ch; cc++ {
		scale := gd[cc] / math32.Sqrt(vd[cc]+eps)
		shift := bd[cc] - md[cc]*scale
		for i := cc; i < len(xd); i += ch {
			yd[i] = xd[i]*scale + shift
		}
	}
	return y
}

// BatchNormTrainBackward computes gradients for BatchNormTrain.
//
// With xhat = (x - mean) / sqrt(var + eps) and m the reduced element
// count per channel:
//
//	dbeta  = Σ grad
//	dgamma = Σ grad * xhat
//	dx     = gamma/(m*sqrt(var+eps)) * (m*grad - dbeta - xhat*dgamma)
//
// The formula accounts for the dependence of the batch statistics on x.
func (c *Backend) BatchNormTrainBackward(x, gamma, mean, variance, grad *tensor.Tensor, eps float32) (dx, dgamma, dbeta *tensor.Tensor) {
	m, ch := channelGeom(x.Shape())
	checkSameShape("BatchNormTrainBackward", x, grad)

	dx = tensor.New(x.Shape(), c)
	dgamma = tensor.New(tensor.Shape{ch}, c)
	dbeta = tensor.New(tensor.Shape{ch}, c)

	xd, gd := x.Data(), gamma.Data()
	md, vd := mean.Data(), variance.Data()
	grd, dxd, dgd, dbd := grad.Data(), dx.Data(), dgamma.Data(), dbeta.Data()

	invStd := make([]float32, ch)
	for cc := 0; cc < ch; cc++ {
		invStd[cc] = 1 / math32.Sqrt(vd[cc]+eps)
	}
	for i, g := range grd {
		cc := i % ch
		dbd[cc] += g
		dgd[cc] += g * (xd[i] - md[cc]) * invStd[cc]
	}
	mf := float32(m)
	for i, g := range grd {
		cc := i % ch
		xhat := (xd[i] - md[cc]) * invStd[cc]
		dxd[i] = gd[cc] * invStd[cc] / mf * (mf*g - dbd[cc] - xhat*dgd[cc])
	}
	return dx, dgamma, dbeta
}

// BatchNormInferBackward computes gradients for BatchNormInfer, where the
// statistics are constants.
func (c *Backend) BatchNormInferBackward(x, gamma, mean, variance, grad *tensor.Tensor, eps float32) (dx, dgamma, dbeta *tensor.Tensor) {
	_, ch := channelGeom(x.Shape())
	checkSameShape("BatchNormInferBackward", x, grad)

	dx = tensor.New(x.Shape(), c)
	dgamma = tensor.New(tensor.Shape{ch}, c)
	dbeta = tensor.New(tensor.Shape{ch}, c)

	xd, gd := x.Data(), gamma.Data()
	md, vd := mean.Data(), variance.Data()
	grd, dxd, dgd, dbd := grad.Data(), dx.Data(), dgamma.Data(), dbeta.Data()

	for i, g := range grd {
		cc := i % ch
		invStd := 1 / math32.Sqrt(vd[cc]+eps)
		dbd[cc] += g
		dgd[cc] += g * (xd[i] - md[cc]) * invStd
		dxd[i] = g * gd[cc] * invStd
	}
	return dx, dgamma, dbeta
}
