// SPDX-License-Identifier: MIT

package model

import (
	"fmt"

	"go.uber.org/zap"
)

// Option configures a Model.
type Option func(*modelOptions)

type modelOptions struct {
	logger *zap.Logger
}

// WithLogger sets the model logger. nil is ignored.
func WithLogger(l *zap.Logger) Option {
	return func(o *modelOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

func gatherModelOptions(opts ...Option) modelOptions {
	o := modelOptions{logger: zap.NewNop()}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}

// Defaults for fit configuration.
const (
	DefaultOptimizer  = "L-BFGS-B"
	DefaultLoss       = LossLeastSquares
	DefaultGrad       = GradFD
	DefaultFDScheme   = FDTwoPoint
	DefaultHuberDelta = 1.0
	// DefaultCMAESIterations caps CMA-ES runs when WithMaxIterations is unset.
	DefaultCMAESIterations = 2000
	// DefaultSLSQPIterations caps SLSQP runs when WithMaxIterations is unset.
	DefaultSLSQPIterations = 100
	// DefaultLMIterations caps lm trial steps per free parameter (plus one)
	// when WithMaxIterations is unset.
	DefaultLMIterations = 200
)

// Loss function names.
const (
	LossLeastSquares = "ls"
	LossPoisson      = "ml-poisson"
	LossHuber        = "huber"
)

// Gradient modes.
const (
	GradFD         = "fd"
	GradAuto       = "auto" // alias of GradFD
	GradAnalytical = "analytical"
	GradNone       = "none"
)

// Finite-difference schemes.
const (
	FDTwoPoint   = "2-point"
	FDThreePoint = "3-point"
)

// Iteration paths for Multifit.
const (
	IterFlyback    = "flyback"
	IterSerpentine = "serpentine"
)

const (
	panicHuberDelta    = "model: WithHuberDelta: delta must be > 0"
	panicMaxIterations = "model: WithMaxIterations: n must be >= 0"
	panicNilLoss       = "model: WithCustomLoss: nil function"
	panicNilGrad       = "model: WithCustomGrad: nil function"
	panicConstraint    = "model: WithConstraints: constraint needs a function and a kind"
)

// ConstraintKind tells how a Constraint's function is bounded.
type ConstraintKind int

const (
	// ConstraintIneq requires Fun(params) >= 0.
	ConstraintIneq ConstraintKind = iota + 1
	// ConstraintEq requires Fun(params) == 0.
	ConstraintEq
)

// String implements fmt.Stringer.
func (k ConstraintKind) String() string {
	switch k {
	case ConstraintIneq:
		return "ineq"
	case ConstraintEq:
		return "eq"
	default:
		return fmt.Sprintf("ConstraintKind(%d)", int(k))
	}
}

// Constraint restricts the free parameters of a fit. Fun receives their
// values in fit order, the order of FitOutput.X.
type Constraint struct {
	Kind ConstraintKind
	Fun  func(params []float64) float64
}

// LossFunc is a caller-supplied objective. weights is nil when the signal
// has no noise variance, 1/sqrt(variance) otherwise.
type LossFunc func(m *Model, params, data, weights []float64) float64

// GradFunc is the gradient of a custom LossFunc with respect to params.
type GradFunc func(m *Model, params, data, weights []float64) []float64

// FitOption configures Fit and Multifit.
type FitOption func(*fitConfig)

type fitConfig struct {
	optimizer      string
	loss           string
	customLoss     LossFunc
	grad           string
	customGrad     GradFunc
	fdScheme       string
	huberDelta     float64
	bounded        bool
	maxIterations  int
	printInfo      bool
	iterPath       string
	fetchOnlyFixed bool
	constraints    []Constraint
}

func gatherFitOptions(opts ...FitOption) fitConfig {
	c := fitConfig{
		optimizer:  DefaultOptimizer,
		loss:       DefaultLoss,
		grad:       DefaultGrad,
		fdScheme:   DefaultFDScheme,
		huberDelta: DefaultHuberDelta,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&c)
		}
	}

	return c
}

// WithOptimizer selects the optimizer by name. Unknown names fail at Fit.
func WithOptimizer(name string) FitOption {
	return func(c *fitConfig) { c.optimizer = name }
}

// WithLossFunction selects "ls", "ml-poisson" or "huber". Unknown names fail at Fit.
func WithLossFunction(name string) FitOption {
	return func(c *fitConfig) { c.loss, c.customLoss = name, nil }
}

// WithCustomLoss minimises fn instead of a named loss.
func WithCustomLoss(fn LossFunc) FitOption {
	if fn == nil {
		panic(panicNilLoss)
	}

	return func(c *fitConfig) { c.loss, c.customLoss = "custom", fn }
}

// WithGrad selects "fd" ("auto"), "analytical" or "none".
func WithGrad(mode string) FitOption {
	return func(c *fitConfig) { c.grad, c.customGrad = mode, nil }
}

// WithCustomGrad supplies the gradient of a custom loss.
func WithCustomGrad(fn GradFunc) FitOption {
	if fn == nil {
		panic(panicNilGrad)
	}

	return func(c *fitConfig) { c.grad, c.customGrad = "custom", fn }
}

// WithFDScheme selects "2-point" (forward) or "3-point" (central) differences.
func WithFDScheme(scheme string) FitOption {
	return func(c *fitConfig) { c.fdScheme = scheme }
}

// WithHuberDelta sets the Huber transition point. Panics when delta <= 0.
func WithHuberDelta(delta float64) FitOption {
	if !(delta > 0) {
		panic(panicHuberDelta)
	}

	return func(c *fitConfig) { c.huberDelta = delta }
}

// WithBounded honours parameter bounds.
func WithBounded(bounded bool) FitOption {
	return func(c *fitConfig) { c.bounded = bounded }
}

// WithConstraints adds constraints to the fit; only SLSQP accepts them.
// Panics on a constraint without a function or with an unknown kind.
func WithConstraints(cs ...Constraint) FitOption {
	for _, c := range cs {
		if c.Fun == nil || (c.Kind != ConstraintIneq && c.Kind != ConstraintEq) {
			panic(panicConstraint)
		}
	}
	cs = append([]Constraint(nil), cs...)

	return func(c *fitConfig) { c.constraints = append(c.constraints, cs...) }
}

// WithMaxIterations caps the optimizer's major iterations; 0 means no cap.
func WithMaxIterations(n int) FitOption {
	if n < 0 {
		panic(panicMaxIterations)
	}

	return func(c *fitConfig) { c.maxIterations = n }
}

// WithPrintInfo logs a "Fit info:" summary after each fit.
func WithPrintInfo(on bool) FitOption {
	return func(c *fitConfig) { c.printInfo = on }
}

// WithIterPath selects the Multifit path: "flyback" or "serpentine".
func WithIterPath(path string) FitOption {
	return func(c *fitConfig) { c.iterPath = path }
}

// WithFetchOnlyFixed makes Multifit restore only fixed parameters from the
// stored maps at each position.
func WithFetchOnlyFixed(on bool) FitOption {
	return func(c *fitConfig) { c.fetchOnlyFixed = on }
}
