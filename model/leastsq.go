// SPDX-License-Identifier: MIT

package model

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/optimize"
)

const (
	// lmFtol and lmXtol are the relative cost and step tolerances.
	lmFtol = 1.49012e-8
	lmXtol = 1.49012e-8
	// lmLambda0 is the starting damping; lmLambdaMax ends a run whose
	// steps keep failing.
	lmLambda0   = 1e-3
	lmLambdaMax = 1e16
)

// runLeastSquares minimises the weighted sum of squared residuals by
// Levenberg-Marquardt.
//
// Every trial step solves
//
//	min ||J d + r||² + λ||D d||²  s.t.  lo <= x+d <= hi
//
// with slsqp.LSEI, D being the column norms of J. The box rows are only
// present for bounded fits, so an unbounded run is plain Levenberg-Marquardt.
func (m *Model) runLeastSquares(pr *problem, x0 []float64) solverResult {
	n, k := len(pr.data), len(x0)
	lo, hi, nb := pr.bounds()
	maxIter := pr.cfg.maxIterations
	if maxIter == 0 {
		maxIter = DefaultLMIterations * (k + 1)
	}

	var stats optimize.Stats
	x := append([]float64(nil), x0...)
	r := make([]float64, n)
	pr.residuals(r, x)
	cost := floats.Dot(r, r)
	stats.FuncEvaluations++
	result := func(status optimize.Status, err error) solverResult {
		return solverResult{x: x, f: cost, status: status, err: err, stats: stats}
	}

	jac := make([]float64, n*k)
	if err := pr.residualJacobian(jac, x, nb); err != nil {
		return result(optimize.Failure, err)
	}
	stats.GradEvaluations++

	lambda := lmLambda0
	rn := make([]float64, n)
	for iter := 0; ; iter++ {
		if cost == 0 {
			return result(optimize.FunctionConvergence, nil)
		}
		if iter >= maxIter {
			return result(optimize.IterationLimit, nil)
		}
		stats.MajorIterations = iter + 1

		sys := lsqSystem{n: k}
		for i := 0; i < n; i++ {
			sys.addRow(jac[i*k:(i+1)*k], -r[i])
		}
		damp := math.Sqrt(lambda)
		for j := 0; j < k; j++ {
			col := 0.0
			for i := 0; i < n; i++ {
				col += jac[i*k+j] * jac[i*k+j]
			}
			if col == 0 {
				col = 1
			}
			row := make([]float64, k)
			row[j] = damp * math.Sqrt(col)
			sys.addRow(row, 0)
		}
		sys.addBox(x, lo, hi)
		d, _, err := sys.solve()
		if err != nil {
			return result(optimize.Failure, err)
		}

		xn := make([]float64, k)
		floats.AddTo(xn, x, d)
		clamp(xn, lo, hi)
		pr.residuals(rn, xn)
		costn := floats.Dot(rn, rn)
		stats.FuncEvaluations++
		small := floats.Norm(d, 2) <= lmXtol*(floats.Norm(x, 2)+lmXtol)

		if !(costn < cost) {
			lambda *= 10
			if small || lambda > lmLambdaMax {
				return result(optimize.StepConvergence, nil)
			}
			continue
		}

		reduction := cost - costn
		x, cost = xn, costn
		copy(r, rn)
		if err := pr.residualJacobian(jac, x, nb); err != nil {
			return result(optimize.Failure, err)
		}
		stats.GradEvaluations++
		lambda = math.Max(lambda/10, 1e-12)
		switch {
		case reduction <= lmFtol*(cost+reduction):
			return result(optimize.FunctionConvergence, nil)
		case small:
			return result(optimize.StepConvergence, nil)
		}
	}
}
