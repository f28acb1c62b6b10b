// SPDX-License-Identifier: MIT

package model

import (
	"fmt"

	"gonum.org/v1/gonum/optimize"
)

// Optimizer names accepted by WithOptimizer.
const (
	OptimizerNelderMead      = "Nelder-Mead"
	OptimizerBFGS            = "BFGS"
	OptimizerLBFGSB          = "L-BFGS-B"
	OptimizerCG              = "CG"
	OptimizerGradientDescent = "Gradient Descent"
	OptimizerCMAES           = "CMA-ES"
	OptimizerSLSQP           = "SLSQP"
	// OptimizerLM is Levenberg-Marquardt on the weighted residuals.
	OptimizerLM = "lm"
)

// deprecatedOptimizers maps legacy names to their replacement.
var deprecatedOptimizers = map[string]string{
	"fmin":          OptimizerNelderMead,
	"fmin_bfgs":     OptimizerBFGS,
	"fmin_l_bfgs_b": OptimizerLBFGSB,
	"fmin_cg":       OptimizerCG,
	"leastsq":       OptimizerLM,
	"mpfit":         OptimizerLM,
}

// optimizerSpec describes what an optimizer needs and supports. Exactly
// one of method and solve is set: method runs through gonum/optimize in
// the transformed variables of bounds.go, solve works on the parameter
// values directly and honours bounds itself.
type optimizerSpec struct {
	needsGrad    bool
	bounds       bool
	constraints  bool
	leastSquares bool
	method       func() optimize.Method
	solve        func(m *Model, pr *problem, x0 []float64) solverResult
}

// native reports whether the optimizer handles bounds without a change
// of variables.
func (s optimizerSpec) native() bool { return s.solve != nil }

var optimizers = map[string]optimizerSpec{
	OptimizerNelderMead:      {method: func() optimize.Method { return &optimize.NelderMead{} }},
	OptimizerBFGS:            {needsGrad: true, method: func() optimize.Method { return &optimize.BFGS{} }},
	OptimizerLBFGSB:          {needsGrad: true, bounds: true, method: func() optimize.Method { return &optimize.LBFGS{} }},
	OptimizerCG:              {needsGrad: true, method: func() optimize.Method { return &optimize.CG{} }},
	OptimizerGradientDescent: {needsGrad: true, method: func() optimize.Method { return &optimize.GradientDescent{} }},
	OptimizerCMAES:           {bounds: true, method: func() optimize.Method { return &optimize.CmaEsChol{} }},
	OptimizerSLSQP:           {needsGrad: true, bounds: true, constraints: true, solve: (*Model).runSLSQP},
	OptimizerLM:              {bounds: true, leastSquares: true, solve: (*Model).runLeastSquares},
}

// resolveOptimizer returns the canonical name and its spec. replaced is
// the deprecated alias that was given, "" otherwise.
func resolveOptimizer(name string) (canonical, replaced string, spec optimizerSpec, err error) {
	if to, ok := deprecatedOptimizers[name]; ok {
		replaced, name = name, to
	}
	spec, ok := optimizers[name]
	if !ok {
		return "", "", optimizerSpec{}, fmt.Errorf("%q: %w", name, ErrOptimizer)
	}

	return name, replaced, spec, nil
}
