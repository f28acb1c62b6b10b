// SPDX-License-Identifier: MIT

package model

import (
	"errors"
	"math"

	"github.com/curioloop/optimizer/numdiff"
	"github.com/curioloop/optimizer/slsqp"
	"gonum.org/v1/gonum/optimize"
)

// solverResult is one optimizer run expressed in parameter values.
type solverResult struct {
	x      []float64
	f      float64
	status optimize.Status
	err    error // abnormal stop; x is still the best point found
	stats  optimize.Stats
}

var (
	errSubproblem = errors.New("least-squares subproblem has no solution")
	errLineSearch = errors.New("positive directional derivative for linesearch")
)

// bounds returns the box of the free parameters: -Inf/+Inf and nil
// numdiff bounds when the fit is unbounded.
func (pr *problem) bounds() (lo, hi []float64, nb []numdiff.Bound) {
	k := len(pr.free)
	lo, hi = make([]float64, k), make([]float64, k)
	for j, f := range pr.free {
		lo[j], hi[j] = math.Inf(-1), math.Inf(1)
		if pr.cfg.bounded {
			lo[j], hi[j] = f.p.Bmin, f.p.Bmax
		}
	}
	if pr.cfg.bounded {
		nb = make([]numdiff.Bound, k)
		for j := range nb {
			nb[j] = numdiff.Bound{lo[j], hi[j]}
		}
	}

	return lo, hi, nb
}

// clamp moves x into [lo, hi] in place.
func clamp(x, lo, hi []float64) {
	for j := range x {
		x[j] = math.Max(lo[j], math.Min(hi[j], x[j]))
	}
}

// approx is the finite-difference spec for an m-valued function of the
// free parameters, honouring the configured scheme and the box.
func (pr *problem) approx(m int, nb []numdiff.Bound, fn func(x, y []float64)) *numdiff.ApproxSpec {
	as := &numdiff.ApproxSpec{N: len(pr.free), M: m, Object: fn, Bounds: nb}
	if pr.cfg.fdScheme == FDThreePoint {
		as.Method = numdiff.Central
	} else {
		as.Method = numdiff.Forward
	}

	return as
}

// lossGrad writes dLoss/dx at x into grad for the native solvers.
func (pr *problem) lossGrad(grad, x []float64, nb []numdiff.Bound) error {
	switch pr.cfg.grad {
	case GradAnalytical:
		pr.lossGradient(grad, x)
	case "custom":
		p := append([]float64(nil), x...)
		pr.apply(p)
		copy(grad, pr.cfg.customGrad(pr.m, p, pr.data, pr.w))
	default:
		as := pr.approx(1, nb, func(x, y []float64) { y[0] = pr.loss(x) })
		return as.Diff(x, grad)
	}

	return nil
}

// residualJacobian writes d(residual_i)/dx_j row-major into jac.
func (pr *problem) residualJacobian(jac, x []float64, nb []numdiff.Bound) error {
	k := len(pr.free)
	if pr.cfg.grad != GradAnalytical {
		as := pr.approx(len(pr.data), nb, func(x, y []float64) { pr.residuals(y, x) })
		return as.Diff(x, jac)
	}
	pr.apply(x)
	scale := pr.m.binScale()
	for j, f := range pr.free {
		f.c.(GradientComponent).Gradient(f.k, pr.pts, pr.grad)
		for i, g := range pr.grad {
			jac[i*k+j] = -pr.weight(i) * scale * g
		}
	}

	return nil
}

// lsqSystem is min ||E d - f|| subject to C d = dc and G d >= h over n
// unknowns. Rows are kept row-major and handed to slsqp.LSEI column-major.
type lsqSystem struct {
	n        int
	e, c, g  []float64
	f, dc, h []float64
}

func (s *lsqSystem) addRow(row []float64, rhs float64) {
	s.e, s.f = append(s.e, row...), append(s.f, rhs)
}

func (s *lsqSystem) addEquality(row []float64, rhs float64) {
	s.c, s.dc = append(s.c, row...), append(s.dc, rhs)
}

func (s *lsqSystem) addInequality(row []float64, rhs float64) {
	s.g, s.h = append(s.g, row...), append(s.h, rhs)
}

// addBox keeps x+d inside [lo, hi] for every finite bound.
func (s *lsqSystem) addBox(x, lo, hi []float64) {
	for j := range x {
		if !math.IsInf(lo[j], -1) {
			row := make([]float64, s.n)
			row[j] = 1
			s.addInequality(row, lo[j]-x[j])
		}
		if !math.IsInf(hi[j], 1) {
			row := make([]float64, s.n)
			row[j] = -1
			s.addInequality(row, x[j]-hi[j])
		}
	}
}

// solve returns the minimiser and the multipliers of the equality rows
// followed by the inequality rows, in the order they were added.
func (s *lsqSystem) solve() (d, mult []float64, err error) {
	n := s.n
	me, mc, mg := len(s.f), len(s.dc), len(s.h)
	w := make([]float64, 2*mc+me+(me+mg)*(n-mc)+(n-mc+1)*(mg+2)+2*mg)
	jw := make([]int, max(mg, min(me, n-mc)))
	d = make([]float64, n)

	_, mode := slsqp.LSEI(colMajor(s.c, mc, n), s.dc, colMajor(s.e, me, n), s.f,
		colMajor(s.g, mg, n), s.h, mc, mc, me, me, mg, mg, n, d, w, jw, 0)
	if mode != slsqp.HasSolution {
		return nil, nil, errSubproblem
	}

	return d, append([]float64(nil), w[:mc+mg]...), nil
}

// colMajor transposes an r x n row-major block; nil when r is 0.
func colMajor(a []float64, r, n int) []float64 {
	if r == 0 {
		return nil
	}
	out := make([]float64, r*n)
	for i := 0; i < r; i++ {
		for j := 0; j < n; j++ {
			out[i+j*r] = a[i*n+j]
		}
	}

	return out
}
