// SPDX-License-Identifier: MIT

package model

import "math"

// Gaussian2D is an axis-aligned two-dimensional Gaussian of total area A:
//
//	A / (2*pi*sx*sy) * exp(-(x-cx)^2/(2*sx^2) - (y-cy)^2/(2*sy^2))
type Gaussian2D struct {
	base
	A, CentreX, CentreY, SigmaX, SigmaY *Parameter
}

// NewGaussian2D returns a unit-area Gaussian2D with the given centre and widths.
func NewGaussian2D(centreX, centreY, sigmaX, sigmaY float64) *Gaussian2D {
	g := &Gaussian2D{
		A:       NewParameter("A", 1),
		CentreX: NewParameter("centre_x", centreX),
		CentreY: NewParameter("centre_y", centreY),
		SigmaX:  NewParameter("sigma_x", sigmaX),
		SigmaY:  NewParameter("sigma_y", sigmaY),
	}
	g.base = base{
		name:   "Gaussian2D",
		dim:    2,
		params: []*Parameter{g.A, g.CentreX, g.CentreY, g.SigmaX, g.SigmaY},
	}

	return g
}

func (g *Gaussian2D) Evaluate(pts Points, out []float64) {
	a := g.A.Value
	cx, cy := g.CentreX.Value, g.CentreY.Value
	sx, sy := g.SigmaX.Value, g.SigmaY.Value
	norm := a / (2 * math.Pi * sx * sy)
	for i := range pts.X {
		dx, dy := pts.X[i]-cx, pts.Y[i]-cy
		out[i] = norm * math.Exp(-dx*dx/(2*sx*sx)-dy*dy/(2*sy*sy))
	}
}

func (g *Gaussian2D) Gradient(k int, pts Points, out []float64) {
	a := g.A.Value
	cx, cy := g.CentreX.Value, g.CentreY.Value
	sx, sy := g.SigmaX.Value, g.SigmaY.Value
	for i := range pts.X {
		dx, dy := pts.X[i]-cx, pts.Y[i]-cy
		unit := math.Exp(-dx*dx/(2*sx*sx)-dy*dy/(2*sy*sy)) / (2 * math.Pi * sx * sy)
		switch k {
		case 0:
			out[i] = unit
		case 1:
			out[i] = a * unit * dx / (sx * sx)
		case 2:
			out[i] = a * unit * dy / (sy * sy)
		case 3:
			out[i] = a * unit * (dx*dx/(sx*sx*sx) - 1/sx)
		default:
			out[i] = a * unit * (dy*dy/(sy*sy*sy) - 1/sy)
		}
	}
}
