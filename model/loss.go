// SPDX-License-Identifier: MIT

package model

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// problem is one fit at one navigation position.
type problem struct {
	m     *Model
	cfg   fitConfig
	free  []freeParam
	pts   Points
	data  []float64
	w     []float64 // 1/sqrt(variance); nil without variance
	trans []transform

	model, scratch, grad []float64
	x                    []float64
}

// freeParam locates a free parameter inside its component.
type freeParam struct {
	c Component
	k int
	p *Parameter
}

// apply writes the parameter values x.
func (pr *problem) apply(x []float64) {
	for j, f := range pr.free {
		f.p.Value = x[j]
	}
}

// toExternal maps internal variables y to parameter values in pr.x.
func (pr *problem) toExternal(y []float64) []float64 {
	for j, t := range pr.trans {
		pr.x[j] = t.external(y[j])
	}

	return pr.x
}

// weight returns w[i], 1 without variance.
func (pr *problem) weight(i int) float64 {
	if pr.w == nil {
		return 1
	}

	return pr.w[i]
}

// evalModel applies x and evaluates the model on the fit points.
func (pr *problem) evalModel(x []float64) []float64 {
	pr.apply(x)
	pr.m.evaluate(pr.pts, pr.model, pr.scratch)

	return pr.model
}

// loss evaluates the configured loss at parameter values x.
func (pr *problem) loss(x []float64) float64 {
	if pr.cfg.customLoss != nil {
		pr.apply(x)
		return pr.cfg.customLoss(pr.m, append([]float64(nil), x...), pr.data, pr.w)
	}
	mod := pr.evalModel(x)
	switch pr.cfg.loss {
	case LossPoisson:
		s := 0.0
		for i, v := range mod {
			if v <= 0 {
				return math.Inf(1)
			}
			s += v - pr.data[i]*math.Log(v)
		}
		return s
	case LossHuber:
		d := pr.cfg.huberDelta
		s := 0.0
		for i, v := range mod {
			e := math.Abs((pr.data[i] - v) * pr.weight(i))
			if e <= d {
				s += 0.5 * e * e
			} else {
				s += d * (e - 0.5*d)
			}
		}
		return s
	default:
		s := 0.0
		for i, v := range mod {
			e := (pr.data[i] - v) * pr.weight(i)
			s += e * e
		}
		return s
	}
}

// lossGradient writes dLoss/dx into dst using the components' analytical
// derivatives.
func (pr *problem) lossGradient(dst, x []float64) {
	mod := pr.evalModel(x)
	// coefficient c_i such that dL/dx_j = sum_i c_i * dM_i/dx_j
	coef := pr.scratch
	for i, v := range mod {
		switch pr.cfg.loss {
		case LossPoisson:
			coef[i] = 1 - pr.data[i]/v
		case LossHuber:
			w := pr.weight(i)
			e := (pr.data[i] - v) * w
			if math.Abs(e) > pr.cfg.huberDelta {
				e = math.Copysign(pr.cfg.huberDelta, e)
			}
			coef[i] = -w * e
		default:
			w := pr.weight(i)
			coef[i] = -2 * w * w * (pr.data[i] - v)
		}
	}
	scale := pr.m.binScale()
	for j, f := range pr.free {
		f.c.(GradientComponent).Gradient(f.k, pr.pts, pr.grad)
		dst[j] = scale * floats.Dot(coef, pr.grad)
	}
}

// residuals writes (data - model) * w for parameter values x.
func (pr *problem) residuals(dst, x []float64) {
	mod := pr.evalModel(x)
	for i, v := range mod {
		dst[i] = (pr.data[i] - v) * pr.weight(i)
	}
}
