// SPDX-License-Identifier: MIT

package model

import (
	"fmt"
	"math"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize"
)

// FitOutput summarises one optimizer run.
type FitOutput struct {
	Optimizer       string
	Loss            string
	Grad            string
	Bounded         bool
	X               []float64 // free parameter values, fit order
	Fun             float64   // final loss
	Status          string
	Success         bool
	Message         string
	Iterations      int
	FuncEvaluations int
	GradEvaluations int
}

// Fit optimises the free parameters at the current navigation position.
//
// Implementation:
//   - Stage 1: validate the optimizer, loss, gradient and bounds settings.
//   - Stage 2: collect free parameters of active components; with bounds,
//     snap values onto [Bmin, Bmax]. gonum methods then switch to
//     unconstrained variables, lm and SLSQP keep the bounds as constraints.
//   - Stage 3: run the optimizer, write the optimum back.
//   - Stage 4: update chisq, dof, red_chisq and (1-D) parameter std.
//
// Behavior highlights:
//   - deprecated optimizer names are accepted with a warning.
//   - an optimizer that stops without converging is not an error: the best
//     point found is kept and FitOutput.Success is false.
//
// Errors:
//   - ErrOptimizer, ErrLossFunction, ErrGrad, ErrFDScheme for bad settings.
//   - ErrBoundsNotSupported, ErrFiniteBounds for bounded fits.
//   - ErrLeastSquaresOnly for lm with a loss other than ls.
//   - ErrConstraintsNotSupported, ErrEqualityConstraints for constraints.
//   - ErrWeightedPoisson, ErrNoFreeParameters, ErrNoAnalyticalGradient.
//   - ErrNotImplemented for non-ls losses or analytical gradients in 2-D.
func (m *Model) Fit(opts ...FitOption) error {
	return m.fit(gatherFitOptions(opts...))
}

// fdFormulas maps scheme names to gonum formulas.
var fdFormulas = map[string]fd.Formula{
	FDTwoPoint:   fd.Forward,
	FDThreePoint: fd.Central,
}

func (m *Model) fit(cfg fitConfig) error {
	// Stage 1: settings.
	cfg, spec, err := m.resolve(cfg)
	if err != nil {
		return modelErrorf("Fit", err)
	}
	name := cfg.optimizer

	// Stage 2: free parameters.
	pr, err := m.newProblem(cfg, spec)
	if err != nil {
		return modelErrorf("Fit", err)
	}
	y0 := make([]float64, len(pr.free))
	for j, f := range pr.free {
		if cfg.bounded {
			f.p.snap()
		}
		y0[j] = pr.trans[j].start(f.p.Value)
	}

	// Stage 3: optimise.
	var res solverResult
	if spec.native() {
		res = spec.solve(m, pr, y0)
	} else {
		res, err = m.minimize(pr, spec, y0)
		if err != nil {
			return modelErrorf("Fit", err)
		}
	}
	best := res.x
	pr.apply(best)
	out := FitOutput{
		Optimizer:       name,
		Loss:            cfg.loss,
		Grad:            cfg.grad,
		Bounded:         cfg.bounded,
		X:               best,
		Fun:             res.f,
		Status:          res.status.String(),
		Success:         res.err == nil && converged(res.status),
		Iterations:      res.stats.MajorIterations,
		FuncEvaluations: res.stats.FuncEvaluations,
		GradEvaluations: res.stats.GradEvaluations,
	}
	switch {
	case res.err != nil:
		out.Message = res.err.Error()
		m.logger.Warn("optimizer stopped without converging",
			zap.String("optimizer", name), zap.Error(res.err))
	case !out.Success:
		out.Message = out.Status
		m.logger.Warn("optimizer stopped before convergence",
			zap.String("optimizer", name), zap.String("status", out.Status))
	}
	m.fitOutput = out

	// Stage 4: goodness of fit.
	m.updateStatistics(pr, best)
	if cfg.printInfo {
		m.logger.Info("Fit info:",
			zap.String("optimizer", name),
			zap.String("loss_function", cfg.loss),
			zap.Bool("bounded", cfg.bounded),
			zap.String("grad", cfg.grad),
			zap.Int("iterations", out.Iterations),
			zap.Int("function_evaluations", out.FuncEvaluations),
			zap.String("status", out.Status))
	}

	return nil
}

// minimize runs a gonum/optimize method in the internal variables y and
// maps the result back to parameter values.
func (m *Model) minimize(pr *problem, spec optimizerSpec, y0 []float64) (solverResult, error) {
	objective := func(y []float64) float64 { return pr.loss(pr.toExternal(y)) }
	prob := optimize.Problem{Func: objective}
	if spec.needsGrad {
		prob.Grad = m.gradient(pr, objective)
	}
	settings := &optimize.Settings{MajorIterations: pr.cfg.maxIterations}
	if pr.cfg.optimizer == OptimizerCMAES && pr.cfg.maxIterations == 0 {
		settings.MajorIterations = DefaultCMAESIterations
	}

	res, err := optimize.Minimize(prob, y0, settings, spec.method())
	if res == nil {
		return solverResult{}, err
	}

	return solverResult{
		x:      append([]float64(nil), pr.toExternal(res.X)...),
		f:      res.F,
		status: res.Status,
		err:    err,
		stats:  res.Stats,
	}, nil
}

// resolve canonicalises the optimizer name, warning on deprecated aliases,
// and validates the rest of cfg.
func (m *Model) resolve(cfg fitConfig) (fitConfig, optimizerSpec, error) {
	name, replaced, spec, err := resolveOptimizer(cfg.optimizer)
	if err != nil {
		return cfg, spec, err
	}
	if replaced != "" {
		m.logger.Warn(fmt.Sprintf("`%s` has been deprecated and will be removed in a future release, use `%s` instead", replaced, name))
	}
	cfg.optimizer = name

	return cfg, spec, m.validate(cfg, spec)
}

// converged reports whether s ended the run on a convergence test rather
// than a limit.
func converged(s optimize.Status) bool {
	switch s {
	case optimize.IterationLimit, optimize.RuntimeLimit, optimize.FunctionEvaluationLimit,
		optimize.GradientEvaluationLimit, optimize.HessianEvaluationLimit, optimize.Failure:
		return false
	}

	return true
}

// validate checks the settings against the optimizer, signal and loss.
func (m *Model) validate(cfg fitConfig, spec optimizerSpec) error {
	switch cfg.loss {
	case LossLeastSquares, LossPoisson, LossHuber:
	case "custom":
		if cfg.customLoss == nil {
			return ErrLossFunction
		}
	default:
		return fmt.Errorf("%q: %w", cfg.loss, ErrLossFunction)
	}
	switch cfg.grad {
	case GradFD, GradAuto, GradNone:
		if _, ok := fdFormulas[cfg.fdScheme]; !ok {
			return fmt.Errorf("%q: %w", cfg.fdScheme, ErrFDScheme)
		}
	case GradAnalytical:
		if cfg.customLoss != nil {
			return fmt.Errorf("analytical gradient of a custom loss: %w", ErrGrad)
		}
		if m.dim != 1 {
			return fmt.Errorf("analytical gradient: %w", ErrNotImplemented)
		}
	case "custom":
		if cfg.customGrad == nil {
			return ErrGrad
		}
	default:
		return fmt.Errorf("%q: %w", cfg.grad, ErrGrad)
	}
	if cfg.bounded && !spec.bounds {
		return fmt.Errorf("%s: %w", cfg.optimizer, ErrBoundsNotSupported)
	}
	if len(cfg.constraints) > 0 && !spec.constraints {
		return fmt.Errorf("%s: %w", cfg.optimizer, ErrConstraintsNotSupported)
	}
	if spec.leastSquares {
		if cfg.loss != LossLeastSquares {
			return fmt.Errorf("%s with %s loss: %w", cfg.optimizer, cfg.loss, ErrLeastSquaresOnly)
		}
		if cfg.grad == "custom" {
			return fmt.Errorf("%s needs a residual jacobian: %w", cfg.optimizer, ErrGrad)
		}
	}
	if m.dim != 1 && cfg.loss != LossLeastSquares {
		return fmt.Errorf("%s loss: %w", cfg.loss, ErrNotImplemented)
	}
	if cfg.loss == LossPoisson && m.signal.HasNoiseVariance() {
		return ErrWeightedPoisson
	}

	return nil
}

// newProblem gathers the free parameters and the data at the current position.
func (m *Model) newProblem(cfg fitConfig, spec optimizerSpec) (*problem, error) {
	pr := &problem{m: m, cfg: cfg}
	for _, c := range m.components {
		if !c.Active() {
			continue
		}
		for k, p := range c.Parameters() {
			if !p.Free {
				continue
			}
			if cfg.grad == GradAnalytical {
				if _, ok := c.(GradientComponent); !ok {
					return nil, fmt.Errorf("%s: %w", c.Name(), ErrNoAnalyticalGradient)
				}
			}
			pr.free = append(pr.free, freeParam{c: c, k: k, p: p})
			pr.trans = append(pr.trans, newTransform(p, cfg.bounded && !spec.native()))
		}
	}
	if len(pr.free) == 0 {
		return nil, ErrNoFreeParameters
	}
	eq := 0
	for _, c := range cfg.constraints {
		if c.Kind == ConstraintEq {
			eq++
		}
	}
	if eq > len(pr.free) {
		return nil, fmt.Errorf("%d for %d free parameters: %w", eq, len(pr.free), ErrEqualityConstraints)
	}
	if cfg.bounded && cfg.optimizer == OptimizerCMAES {
		for _, t := range pr.trans {
			if t.kind != boundBoth {
				return nil, ErrFiniteBounds
			}
		}
	}

	row := m.signal.Row(m.index)
	variance := m.signal.varianceRow(m.index)
	pr.pts = m.grid().mask(m.switches)
	if pr.pts.Len() == 0 {
		return nil, ErrEmptyRange
	}
	for i, on := range m.switches {
		if !on {
			continue
		}
		pr.data = append(pr.data, row[i])
		if variance != nil {
			pr.w = append(pr.w, 1/math.Sqrt(variance[i]))
		}
	}
	n := pr.pts.Len()
	pr.model = make([]float64, n)
	pr.scratch = make([]float64, n)
	pr.grad = make([]float64, n)
	pr.x = make([]float64, len(pr.free))

	return pr, nil
}

// gradient builds the optimizer gradient in internal variables.
func (m *Model) gradient(pr *problem, objective func([]float64) float64) func(grad, y []float64) {
	chain := func(grad, y []float64) {
		for j, t := range pr.trans {
			grad[j] *= t.derivative(y[j])
		}
	}
	switch pr.cfg.grad {
	case GradAnalytical:
		return func(grad, y []float64) {
			pr.lossGradient(grad, pr.toExternal(y))
			chain(grad, y)
		}
	case "custom":
		return func(grad, y []float64) {
			x := append([]float64(nil), pr.toExternal(y)...)
			pr.apply(x)
			copy(grad, pr.cfg.customGrad(m, x, pr.data, pr.w))
			chain(grad, y)
		}
	default:
		settings := &fd.Settings{Formula: fdFormulas[pr.cfg.fdScheme]}
		return func(grad, y []float64) {
			fd.Gradient(grad, objective, y, settings)
		}
	}
}

// updateStatistics records chisq, dof and red_chisq at the current
// position and estimates the parameter standard deviations.
func (m *Model) updateStatistics(pr *problem, best []float64) {
	r := make([]float64, len(pr.data))
	pr.residuals(r, best)
	// residuals are weighted by 1/sqrt(variance)
	chisq := floats.Dot(r, r)
	n, k := len(pr.data), len(pr.free)
	m.chisq[m.index] = chisq
	m.dof[m.index] = k
	m.redChisq[m.index] = math.NaN()
	if n-k-1 > 0 {
		m.redChisq[m.index] = chisq / float64(n-k-1)
	} else {
		m.logger.Warn("not enough channels for the reduced chi-squared",
			zap.Int("channels", n), zap.Int("free_parameters", k))
	}

	m.pStd = nil
	if m.dim == 1 {
		m.pStd = m.parameterStd(pr, best, chisq)
	}
	for j, f := range pr.free {
		f.p.Std = math.NaN()
		if m.pStd != nil {
			f.p.Std = m.pStd[j]
		}
	}
	pr.apply(best)
}

// parameterStd returns sqrt(diag((J^T J)^-1)) of the weighted residuals,
// scaled by the residual variance when the signal has no noise variance.
func (m *Model) parameterStd(pr *problem, best []float64, chisq float64) []float64 {
	n, k := len(pr.data), len(pr.free)
	jac := mat.NewDense(n, k, nil)
	fd.Jacobian(jac, func(dst, x []float64) { pr.residuals(dst, x) }, best,
		&fd.JacobianSettings{Formula: fd.Central})

	std := make([]float64, k)
	var jtj mat.SymDense
	jtj.SymOuterK(1, jac.T())
	var chol mat.Cholesky
	if !chol.Factorize(&jtj) {
		m.logger.Warn("parameter covariance is singular")
		floats.AddConst(math.NaN(), std)
		return std
	}
	var cov mat.SymDense
	if err := chol.InverseTo(&cov); err != nil {
		floats.AddConst(math.NaN(), std)
		return std
	}
	scale := 1.0
	if pr.w == nil {
		if n-k <= 0 {
			m.logger.Warn("not enough channels to scale the parameter std",
				zap.Int("channels", n), zap.Int("free_parameters", k))
			floats.AddConst(math.NaN(), std)
			return std
		}
		scale = chisq / float64(n-k)
	}
	for j := range std {
		std[j] = math.Sqrt(cov.At(j, j) * scale)
	}

	return std
}
