// SPDX-License-Identifier: MIT

// Package model fits parametric components to the signal axes of a dataset.
//
// A Model couples a Signal (an axes.Manager plus a navigation x signal data
// matrix) with a list of Components. Fit minimises a loss over the free
// parameters at the current navigation position; Multifit repeats Fit over
// every position along a flyback or serpentine path and stores the results
// in each parameter's map.
//
// Optimisation is delegated to gonum/optimize:
//
//	Nelder-Mead, BFGS, L-BFGS-B, CG, Gradient Descent, CMA-ES
//
// and, on top of the curioloop optimizer's LSEI subproblem solver and
// bound-aware finite differences, to two native solvers:
//
//	lm     Levenberg-Marquardt on the weighted residuals (ls loss only)
//	SLSQP  sequential quadratic programming with WithConstraints
//
// L-BFGS-B and CMA-ES honour bounds through a smooth change of variables;
// lm and SLSQP keep them as linear constraints of their subproblems.
// Starting values outside their bounds are snapped onto them.
//
// Losses: "ls" (weighted least squares when a noise variance is set),
// "ml-poisson", "huber", or a caller-supplied LossFunc. Gradients are
// analytical, finite differences (gonum/diff/fd, or curioloop numdiff for
// lm and SLSQP) or caller-supplied.
//
// Goodness of fit: Chisq, RedChisq (chisq / (n - dof - 1)) and PStd, the
// parameter standard deviations from the residual Jacobian.
//
// One-dimensional signals support every feature. Two-dimensional signals
// (Gaussian2D) support least-squares fitting only; signal ranges,
// non-ls losses and analytical gradients return ErrNotImplemented.
package model
