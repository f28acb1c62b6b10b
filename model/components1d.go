// SPDX-License-Identifier: MIT

package model

import (
	"fmt"
	"math"
)

var sqrt2pi = math.Sqrt(2 * math.Pi)

// Gaussian is A / (sigma*sqrt(2*pi)) * exp(-(x-centre)^2 / (2*sigma^2)).
type Gaussian struct {
	base
	A, Centre, Sigma *Parameter
}

// NewGaussian returns a unit-area Gaussian centred on 0 with sigma 1.
func NewGaussian() *Gaussian {
	g := &Gaussian{
		A:      NewParameter("A", 1),
		Centre: NewParameter("centre", 0),
		Sigma:  NewParameter("sigma", 1),
	}
	g.base = base{name: "Gaussian", dim: 1, params: []*Parameter{g.A, g.Centre, g.Sigma}}

	return g
}

func (g *Gaussian) Evaluate(pts Points, out []float64) {
	a, c, s := g.A.Value, g.Centre.Value, g.Sigma.Value
	for i, x := range pts.X {
		d := x - c
		out[i] = a / (s * sqrt2pi) * math.Exp(-d*d/(2*s*s))
	}
}

func (g *Gaussian) Gradient(k int, pts Points, out []float64) {
	a, c, s := g.A.Value, g.Centre.Value, g.Sigma.Value
	for i, x := range pts.X {
		d := x - c
		unit := math.Exp(-d*d/(2*s*s)) / (s * sqrt2pi)
		switch k {
		case 0:
			out[i] = unit
		case 1:
			out[i] = a * unit * d / (s * s)
		default:
			out[i] = a * unit * (d*d/(s*s*s) - 1/s)
		}
	}
}

// PowerLaw is A * (x - origin)^-r, zero where x <= origin.
// origin is fixed by default.
type PowerLaw struct {
	base
	A, R, Origin *Parameter
}

// NewPowerLaw returns A=1e6, r=3, origin=0.
func NewPowerLaw() *PowerLaw {
	p := &PowerLaw{
		A:      NewParameter("A", 10e5),
		R:      NewParameter("r", 3),
		Origin: NewParameter("origin", 0),
	}
	p.Origin.Free = false
	p.base = base{name: "PowerLaw", dim: 1, params: []*Parameter{p.A, p.R, p.Origin}}

	return p
}

func (p *PowerLaw) Evaluate(pts Points, out []float64) {
	a, r, o := p.A.Value, p.R.Value, p.Origin.Value
	for i, x := range pts.X {
		if x <= o {
			out[i] = 0
			continue
		}
		out[i] = a * math.Pow(x-o, -r)
	}
}

func (p *PowerLaw) Gradient(k int, pts Points, out []float64) {
	a, r, o := p.A.Value, p.R.Value, p.Origin.Value
	for i, x := range pts.X {
		if x <= o {
			out[i] = 0
			continue
		}
		v := math.Pow(x-o, -r)
		switch k {
		case 0:
			out[i] = v
		case 1:
			out[i] = -a * math.Log(x-o) * v
		default:
			out[i] = a * r * v / (x - o)
		}
	}
}

// Offset is a constant.
type Offset struct {
	base
	Offset *Parameter
}

func NewOffset() *Offset {
	o := &Offset{Offset: NewParameter("offset", 0)}
	o.base = base{name: "Offset", dim: 1, params: []*Parameter{o.Offset}}

	return o
}

func (o *Offset) Evaluate(pts Points, out []float64) {
	for i := range pts.X {
		out[i] = o.Offset.Value
	}
}

func (o *Offset) Gradient(_ int, pts Points, out []float64) {
	for i := range pts.X {
		out[i] = 1
	}
}

// Polynomial is a0 + a1*x + ... + aN*x^N.
type Polynomial struct {
	base
	Coefficients []*Parameter
}

// NewPolynomial returns a polynomial of the given order with zero
// coefficients. Panics when order < 0.
func NewPolynomial(order int) *Polynomial {
	if order < 0 {
		panic("model: NewPolynomial: order must be >= 0")
	}
	p := &Polynomial{Coefficients: make([]*Parameter, order+1)}
	for k := range p.Coefficients {
		p.Coefficients[k] = NewParameter(fmt.Sprintf("a%d", k), 0)
	}
	p.base = base{name: "Polynomial", dim: 1, params: p.Coefficients}

	return p
}

// Order returns the polynomial degree.
func (p *Polynomial) Order() int { return len(p.Coefficients) - 1 }

func (p *Polynomial) Evaluate(pts Points, out []float64) {
	for i, x := range pts.X {
		// Horner
		v := 0.0
		for k := len(p.Coefficients) - 1; k >= 0; k-- {
			v = v*x + p.Coefficients[k].Value
		}
		out[i] = v
	}
}

func (p *Polynomial) Gradient(k int, pts Points, out []float64) {
	for i, x := range pts.X {
		out[i] = math.Pow(x, float64(k))
	}
}
