// SPDX-License-Identifier: MIT

package model

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize"
)

const (
	// slsqpAcc is the requested accuracy of the SLSQP stopping tests.
	slsqpAcc = 1e-6
	// armijo is the sufficient decrease factor of the merit line search.
	armijo = 0.1
	// maxLineSearch caps the backtracking steps per iteration.
	maxLineSearch = 10
)

// sqpState is the objective and the constraints at one point.
type sqpState struct {
	x, g     []float64
	f        float64
	ce, ci   []float64 // equality and inequality values
	jce, jci []float64 // their jacobians, row-major
}

// runSLSQP minimises the loss by sequential quadratic programming.
//
// Each iteration solves the quadratic subproblem
//
//	min ½ dᵀBd + gᵀd  s.t.  Jce d = -ce,  Jci d >= -ci,  lo <= x+d <= hi
//
// as the least-squares problem ||Lᵀd + L⁻¹g|| with B = LLᵀ through
// slsqp.LSEI, then backtracks along d on an L1 merit function. B is a
// damped BFGS approximation of the Hessian of the Lagrangian.
func (m *Model) runSLSQP(pr *problem, x0 []float64) solverResult {
	k := len(x0)
	lo, hi, nb := pr.bounds()
	var eqs, ineqs []Constraint
	for _, c := range pr.cfg.constraints {
		if c.Kind == ConstraintEq {
			eqs = append(eqs, c)
		} else {
			ineqs = append(ineqs, c)
		}
	}
	maxIter := pr.cfg.maxIterations
	if maxIter == 0 {
		maxIter = DefaultSLSQPIterations
	}

	var stats optimize.Stats
	values := func(cs []Constraint, x, dst []float64) {
		p := append([]float64(nil), x...)
		for i, c := range cs {
			dst[i] = c.Fun(p)
		}
	}
	eval := func(x []float64) sqpState {
		s := sqpState{x: append([]float64(nil), x...), ce: make([]float64, len(eqs)), ci: make([]float64, len(ineqs))}
		s.f = pr.loss(s.x)
		values(eqs, s.x, s.ce)
		values(ineqs, s.x, s.ci)
		stats.FuncEvaluations++

		return s
	}
	derive := func(s *sqpState) error {
		s.g = make([]float64, k)
		if err := pr.lossGrad(s.g, s.x, nb); err != nil {
			return err
		}
		stats.GradEvaluations++
		for _, part := range []struct {
			cs  []Constraint
			dst *[]float64
		}{{eqs, &s.jce}, {ineqs, &s.jci}} {
			if len(part.cs) == 0 {
				continue
			}
			*part.dst = make([]float64, len(part.cs)*k)
			as := pr.approx(len(part.cs), nb, func(x, y []float64) { values(part.cs, x, y) })
			if err := as.Diff(s.x, *part.dst); err != nil {
				return err
			}
		}

		return nil
	}

	cur := eval(x0)
	result := func(status optimize.Status, err error) solverResult {
		return solverResult{x: cur.x, f: cur.f, status: status, err: err, stats: stats}
	}
	if err := derive(&cur); err != nil {
		return result(optimize.Failure, err)
	}

	b := identity(k)
	rho := make([]float64, len(eqs)+len(ineqs))
	firstUpdate := true
	for iter := 0; ; iter++ {
		if iter >= maxIter {
			return result(optimize.IterationLimit, nil)
		}
		stats.MajorIterations = iter + 1

		d, mult, err := sqpStep(b, cur, lo, hi)
		if err != nil {
			// restart from a unit Hessian once before giving up
			b, firstUpdate = identity(k), true
			if d, mult, err = sqpStep(b, cur, lo, hi); err != nil {
				return result(optimize.Failure, err)
			}
		}
		gd := floats.Dot(cur.g, d)
		if math.Abs(gd) < slsqpAcc && violation(cur) < slsqpAcc {
			return result(optimize.StepConvergence, nil)
		}

		for i, l := range mult[:len(rho)] {
			rho[i] = math.Max(math.Abs(l), (rho[i]+math.Abs(l))/2)
		}
		phi0 := merit(cur, rho)
		dphi := math.Min(0, gd-penalty(cur, rho))

		// backtrack on the merit function
		alpha := 1.0
		var next sqpState
		accepted := false
		for ls := 0; ls <= maxLineSearch; ls++ {
			x := make([]float64, k)
			floats.AddScaledTo(x, cur.x, alpha, d)
			clamp(x, lo, hi)
			next = eval(x)
			phi := merit(next, rho)
			if phi <= phi0+armijo*alpha*dphi {
				accepted = true
				break
			}
			// quadratic interpolation, kept within [0.1, 0.5] of the step
			denom := 2 * (phi - phi0 - alpha*dphi)
			a := 0.5 * alpha
			if denom > 0 && !math.IsInf(phi, 0) {
				a = math.Max(0.1*alpha, math.Min(a, -dphi*alpha*alpha/denom))
			}
			alpha = a
		}
		if !accepted {
			return result(optimize.Failure, errLineSearch)
		}
		if err := derive(&next); err != nil {
			return result(optimize.Failure, err)
		}

		s := make([]float64, k)
		floats.SubTo(s, next.x, cur.x)
		done := math.Abs(next.f-cur.f) < slsqpAcc && floats.Norm(s, 2) < slsqpAcc && violation(next) < slsqpAcc

		y := make([]float64, k)
		floats.SubTo(y, lagrangianGrad(next, mult, k), lagrangianGrad(cur, mult, k))
		bfgsUpdate(b, s, y, firstUpdate)
		firstUpdate = false
		cur = next
		if done {
			return result(optimize.FunctionConvergence, nil)
		}
	}
}

// sqpStep solves the quadratic subproblem at s for Hessian approximation b.
func sqpStep(b *mat.SymDense, s sqpState, lo, hi []float64) (d, mult []float64, err error) {
	k := len(s.x)
	var chol mat.Cholesky
	if !chol.Factorize(b) {
		return nil, nil, errSubproblem
	}
	var l mat.TriDense
	chol.LTo(&l)
	var z mat.VecDense
	if err := z.SolveVec(&l, mat.NewVecDense(k, append([]float64(nil), s.g...))); err != nil {
		return nil, nil, errSubproblem
	}

	sys := lsqSystem{n: k}
	for i := 0; i < k; i++ {
		row := make([]float64, k)
		for j := 0; j < k; j++ {
			row[j] = l.At(j, i)
		}
		sys.addRow(row, -z.AtVec(i))
	}
	for i, c := range s.ce {
		sys.addEquality(s.jce[i*k:(i+1)*k], -c)
	}
	for i, c := range s.ci {
		sys.addInequality(s.jci[i*k:(i+1)*k], -c)
	}
	sys.addBox(s.x, lo, hi)

	return sys.solve()
}

// violation is the L1 norm of the constraint violations at s.
func violation(s sqpState) float64 {
	v := 0.0
	for _, c := range s.ce {
		v += math.Abs(c)
	}
	for _, c := range s.ci {
		v += math.Max(0, -c)
	}

	return v
}

// penalty is the rho-weighted violation at s.
func penalty(s sqpState, rho []float64) float64 {
	p := 0.0
	for i, c := range s.ce {
		p += rho[i] * math.Abs(c)
	}
	for i, c := range s.ci {
		p += rho[len(s.ce)+i] * math.Max(0, -c)
	}

	return p
}

// merit is the L1 exact penalty function; NaN losses never pass the
// sufficient decrease test.
func merit(s sqpState, rho []float64) float64 {
	if math.IsNaN(s.f) {
		return math.Inf(1)
	}

	return s.f + penalty(s, rho)
}

// lagrangianGrad is g - Jceᵀλ - Jciᵀμ; bound multipliers are left out.
func lagrangianGrad(s sqpState, mult []float64, k int) []float64 {
	out := append([]float64(nil), s.g...)
	for i := range s.ce {
		floats.AddScaled(out, -mult[i], s.jce[i*k:(i+1)*k])
	}
	for i := range s.ci {
		floats.AddScaled(out, -mult[len(s.ce)+i], s.jci[i*k:(i+1)*k])
	}

	return out
}

func identity(k int) *mat.SymDense {
	b := mat.NewSymDense(k, nil)
	for i := 0; i < k; i++ {
		b.SetSym(i, i, 1)
	}

	return b
}

// bfgsUpdate applies Powell's damped BFGS update to b. The first update
// rescales the unit matrix to yᵀy/sᵀy.
func bfgsUpdate(b *mat.SymDense, s, y []float64, first bool) {
	k := len(s)
	sv, yv := mat.NewVecDense(k, s), mat.NewVecDense(k, y)
	sy := mat.Dot(sv, yv)
	if first && sy > 0 {
		b.ScaleSym(mat.Dot(yv, yv)/sy, b)
	}
	var bs mat.VecDense
	bs.MulVec(b, sv)
	sbs := mat.Dot(sv, &bs)
	if !(sbs > 0) {
		return
	}
	if sy < 0.2*sbs {
		theta := 0.8 * sbs / (sbs - sy)
		yv.ScaleVec(theta, yv)
		yv.AddScaledVec(yv, 1-theta, &bs)
		sy = mat.Dot(sv, yv)
	}
	if !(sy > 0) {
		return
	}
	b.SymRankOne(b, 1/sy, yv)
	b.SymRankOne(b, -1/sbs, &bs)
}
