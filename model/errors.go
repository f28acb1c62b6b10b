// SPDX-License-Identifier: MIT

package model

import (
	"errors"
	"fmt"
)

var (
	// ErrNotImplemented marks features unavailable for the signal dimension.
	ErrNotImplemented = errors.New("model: not implemented for this signal dimension")

	// ErrShape is returned when data or variance do not match the axes.
	ErrShape = errors.New("model: data shape does not match the axes")

	// ErrComponentDimension is returned when a component does not match the signal dimension.
	ErrComponentDimension = errors.New("model: component dimension does not match the signal")

	// ErrIndex is returned for navigation positions outside the signal.
	ErrIndex = errors.New("model: navigation index out of range")

	// ErrOptimizer is returned for unknown optimizer names.
	ErrOptimizer = errors.New("model: optimizer must be one of lm, Nelder-Mead, BFGS, L-BFGS-B, CG, Gradient Descent, CMA-ES, SLSQP")

	// ErrLossFunction is returned for unknown loss names.
	ErrLossFunction = errors.New("model: loss_function must be one of ls, ml-poisson, huber or a custom function")

	// ErrGrad is returned for unknown or inapplicable gradient modes.
	ErrGrad = errors.New("model: `grad` must be one of fd, analytical, none or a custom function")

	// ErrFDScheme is returned for unknown finite-difference schemes.
	ErrFDScheme = errors.New("model: `fd_scheme` must be one of 2-point, 3-point")

	// ErrBoundsNotSupported is returned when bounded fitting is asked of an optimizer that cannot honour it.
	ErrBoundsNotSupported = errors.New("model: Bounded optimization is only supported by lm, L-BFGS-B, SLSQP and CMA-ES")

	// ErrFiniteBounds is returned when CMA-ES runs bounded without finite bounds.
	ErrFiniteBounds = errors.New("model: Finite upper and lower bounds must be specified for every free parameter")

	// ErrWeightedPoisson is returned for ml-poisson fits of a signal with noise variance.
	ErrWeightedPoisson = errors.New("model: Weighted fitting is not supported for the ml-poisson loss function")

	// ErrNoFreeParameters is returned by Fit when nothing can move.
	ErrNoFreeParameters = errors.New("model: no free parameters")

	// ErrIterPath is returned for unknown multifit iteration paths.
	ErrIterPath = errors.New("model: iterpath must be flyback or serpentine")

	// ErrNoAnalyticalGradient is returned when a component has no analytical gradient.
	ErrNoAnalyticalGradient = errors.New("model: component has no analytical gradient")

	// ErrLeastSquaresOnly is returned when a least-squares optimizer is given another loss.
	ErrLeastSquaresOnly = errors.New("model: optimizer only supports least-squares fitting")

	// ErrConstraintsNotSupported is returned when constraints are given to an optimizer other than SLSQP.
	ErrConstraintsNotSupported = errors.New("model: constraints are only supported by SLSQP")

	// ErrEqualityConstraints is returned when equality constraints outnumber the free parameters.
	ErrEqualityConstraints = errors.New("model: more equality constraints than free parameters")

	// ErrEmptyRange is returned when the signal range selects no channel.
	ErrEmptyRange = errors.New("model: signal range selects no channel")
)

// modelErrorf attaches the operation name to err.
func modelErrorf(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}
